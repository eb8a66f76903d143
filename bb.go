package pogo

import (
	"fmt"

	"github.com/setanarut/v"
)

// BB is an axis-aligned 2D bounding box. (left, bottom, right, top)
type BB struct {
	L, B, R, T float64
}

// NewBB is a convenience constructor for BB structs.
func NewBB(l, b, r, t float64) BB {
	return BB{
		L: l,
		B: b,
		R: r,
		T: t,
	}
}

func (bb BB) String() string {
	return fmt.Sprintf("%v %v %v %v", bb.L, bb.B, bb.R, bb.T)
}

// NewBBForExtents constructs a BB centered on a point with the given extents (half sizes).
func NewBBForExtents(c v.Vec, hw, hh float64) BB {
	return BB{
		L: c.X - hw,
		B: c.Y - hh,
		R: c.X + hw,
		T: c.Y + hh,
	}
}

// NewBBForBody constructs a BB covering the body's collision box.
func NewBBForBody(body *Body) BB {
	return NewBBForExtents(body.position, body.size.X/2, body.size.Y/2)
}

// Intersects returns true if a and b intersect.
func (bb BB) Intersects(b BB) bool {
	return bb.L <= b.R && b.L <= bb.R && bb.B <= b.T && b.B <= bb.T
}

// Contains returns true if other lies completely within bb.
func (bb BB) Contains(other BB) bool {
	return bb.L <= other.L && bb.R >= other.R && bb.B <= other.B && bb.T >= other.T
}

// ContainsVect returns true if bb contains v.
func (bb BB) ContainsVect(v v.Vec) bool {
	return bb.L <= v.X && bb.R >= v.X && bb.B <= v.Y && bb.T >= v.Y
}

// Center returns the center of a bounding box.
func (bb BB) Center() v.Vec {
	return v.Vec{X: (bb.L + bb.R) / 2, Y: (bb.B + bb.T) / 2}
}

// Area returns the area of the bounding box.
func (bb BB) Area() float64 {
	return (bb.R - bb.L) * (bb.T - bb.B)
}

// ClampVect clamps a vector to bounding box.
func (bb BB) ClampVect(vect v.Vec) v.Vec {
	return v.Vec{X: clamp(vect.X, bb.L, bb.R), Y: clamp(vect.Y, bb.B, bb.T)}
}

// Offset returns a bounding box offseted by v.
func (bb BB) Offset(vect v.Vec) BB {
	return BB{
		bb.L + vect.X,
		bb.B + vect.Y,
		bb.R + vect.X,
		bb.T + vect.Y,
	}
}
