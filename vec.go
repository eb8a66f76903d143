package pogo

import (
	"math"
	"math/rand/v2"

	"github.com/setanarut/v"
)

// Rotated returns a rotated counterclockwise by angle radians.
func Rotated(a v.Vec, angle float64) v.Vec {
	c, s := math.Cos(angle), math.Sin(angle)
	return v.Vec{X: a.X*c - a.Y*s, Y: a.X*s + a.Y*c}
}

// Normalized returns a scaled to the given length.
//
// The zero vector has no direction, so it maps to {length, 0} instead of NaN.
func Normalized(a v.Vec, length float64) v.Vec {
	m := a.Mag()
	if m == 0 {
		return v.Vec{X: length, Y: 0}
	}
	return a.Scale(length / m)
}

// Cardinal returns the closest axis direction of a as an index:
// 0 up, 1 right, 2 down, 3 left. Ties prefer the vertical axis.
func Cardinal(a v.Vec) int {
	if math.Abs(a.X) > math.Abs(a.Y) {
		if a.X < 0 {
			return 3
		}
		return 1
	}
	if a.Y < 0 {
		return 2
	}
	return 0
}

// randDirection returns a vector of the given length pointing at a random angle.
func randDirection(length float64) v.Vec {
	angle := rand.Float64() * 2 * math.Pi
	return v.Vec{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// lerp interpolates from a to b by t, with t clamped to [0, 1].
func lerp(t, a, b float64) float64 {
	return a + clamp(t, 0, 1)*(b-a)
}

func sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
