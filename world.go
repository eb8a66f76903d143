// Package pogo is the per-frame physics and collision core of a small 2D
// simulation engine. Bodies are axis-aligned boxes integrated once per tick
// and resolved against each other and against an external tile grid, in
// registration order.
package pogo

import (
	"slices"

	"github.com/setanarut/v"
)

// Default world properties applied by NewWorld.
const (
	DefaultMaxSpeed  float64 = 1
	DefaultTimeDelta float64 = 1.0 / 60
)

// TileSource is the tile occupancy collaborator queried by the tile
// collision resolver.
type TileSource interface {
	// Blocked reports whether the axis-aligned box centered at pos with the
	// given size overlaps a blocking tile. The query has no side effects.
	// body may be nil; when set, its tile predicate is consulted per tile.
	Blocked(pos, size v.Vec, body *Body) bool
}

// World holds every registered body and steps the simulation.
//
// All access is single threaded: one Step per tick, then one render pass.
type World struct {
	UserData any

	// Gravity is added to each body's vertical velocity every tick, scaled
	// by the body's gravity scale. The coordinate system is y-up, so a
	// falling world uses a negative value. Defaults to 0.
	Gravity float64

	// MaxSpeed clamps each velocity component once per tick before
	// integration. There is no swept collision, so very fast bodies would
	// pass through thin obstacles without it. Defaults to 1.
	MaxSpeed float64

	// TimeDelta is added to the world clock each Step. It does not scale the
	// integration; velocities are per tick. Defaults to 1/60.
	TimeDelta float64

	// EnableSolver runs collision resolution during Step. With it off,
	// bodies still integrate but never collide. Defaults to true.
	EnableSolver bool

	// Tiles is the tile occupancy collaborator. nil disables tile collision
	// for every body.
	Tiles TileSource

	// Bodies is every registered body in insertion order. Treat as read
	// only; register with AddBody and remove with Body.Destroy.
	Bodies []*Body

	// Collidables is the subset of Bodies with solid-object collision
	// enabled, in insertion order. Collision pairs resolve in this order, so
	// it doubles as the tie break between simultaneous collisions.
	Collidables []*Body

	stamp uint
	time  float64
}

// NewWorld allocates and initializes a World.
func NewWorld() *World {
	return &World{
		MaxSpeed:     DefaultMaxSpeed,
		TimeDelta:    DefaultTimeDelta,
		EnableSolver: true,
		Bodies:       []*Body{},
		Collidables:  []*Body{},
	}
}

// AddBody registers body with the world and stamps its spawn time.
//
// Do not add the same Body twice.
func (w *World) AddBody(body *Body) {
	body.world = w
	body.spawnTime = w.time
	w.Bodies = append(w.Bodies, body)
	if body.collideSolids {
		w.Collidables = append(w.Collidables, body)
	}
}

// RemoveBody unregisters body immediately without destroying it. Most
// callers want Body.Destroy instead, which defers registry removal to the
// end of the step.
func (w *World) RemoveBody(body *Body) {
	w.Bodies = slices.DeleteFunc(w.Bodies, func(b *Body) bool {
		return b == body
	})
	w.Collidables = slices.DeleteFunc(w.Collidables, func(b *Body) bool {
		return b == body
	})
	body.world = nil
}

// BodyCount returns the total number of registered bodies.
func (w *World) BodyCount() int {
	return len(w.Bodies)
}

// CollidableCount returns the number of bodies with solid-object collision enabled.
func (w *World) CollidableCount() int {
	return len(w.Collidables)
}

// Time returns the world clock in seconds, advanced by TimeDelta each Step.
func (w *World) Time() float64 {
	return w.time
}

// Stamp returns the number of completed steps.
func (w *World) Stamp() uint {
	return w.stamp
}

// Step advances the simulation one tick: every body integrates and resolves
// collisions in registration order, then destroyed bodies are compacted out
// of both registries. Bodies registered during the step update in the same
// tick. A step always runs to completion.
func (w *World) Step() {
	w.stamp++
	w.time += w.TimeDelta

	// index loop so bodies added mid-step are picked up
	for i := 0; i < len(w.Bodies); i++ {
		if body := w.Bodies[i]; !body.destroyed {
			w.update(body)
		}
	}

	w.Bodies = compactLive(w.Bodies)
	w.Collidables = compactLive(w.Collidables)
}

// EachBody calls f once for each non-destroyed body in registration order.
func (w *World) EachBody(f func(body *Body)) {
	for _, body := range w.Bodies {
		if !body.destroyed {
			f(body)
		}
	}
}

// QueryBox calls f once for each non-destroyed body whose box overlaps the
// box centered at pos with the given size, in registration order.
func (w *World) QueryBox(pos, size v.Vec, f func(body *Body)) {
	bb := NewBBForExtents(pos, size.X/2, size.Y/2)
	for _, body := range w.Bodies {
		if body.destroyed {
			continue
		}
		if bb.Intersects(NewBBForExtents(body.position, body.size.X/2, body.size.Y/2)) {
			f(body)
		}
	}
}

// compactLive filters destroyed bodies out in place, preserving order.
func compactLive(bodies []*Body) []*Body {
	live := bodies[:0]
	for _, body := range bodies {
		if !body.destroyed {
			live = append(live, body)
		}
	}
	// nil the tail so dropped bodies are not retained
	for i := len(live); i < len(bodies); i++ {
		bodies[i] = nil
	}
	return live
}
