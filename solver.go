package pogo

import (
	"math"

	"github.com/setanarut/v"
)

const (
	// collisionEpsilon pushes a resolved body slightly outside the other box
	// so the same overlap does not trigger again next tick.
	collisionEpsilon = 1e-3

	// pushAwayAccel is the acceleration applied to separate bodies that were
	// already overlapping before this tick's move.
	pushAwayAccel = 1e-3

	// stuckTieBreak is the minimum previous-position delta below which the
	// push-apart direction is randomized.
	stuckTieBreak = 1e-2
)

// update advances one body by one tick: derived transform for parented
// bodies, otherwise integration followed by the collision passes.
func (w *World) update(body *Body) {
	if parent := body.parent; parent != nil {
		// kinematic follower; world transform is derived, not simulated
		m := body.mirrorSign()
		local := v.Vec{X: body.localPosition.X * m, Y: body.localPosition.Y}
		body.position = Rotated(local, -parent.angle).Add(parent.position)
		body.angle = m*body.localAngle + parent.angle
		return
	}

	// no swept collision exists, so component speed is hard clamped
	body.velocity.X = clamp(body.velocity.X, -w.MaxSpeed, w.MaxSpeed)
	body.velocity.Y = clamp(body.velocity.Y, -w.MaxSpeed, w.MaxSpeed)

	oldPos := body.position
	body.velocity.X *= body.damping
	body.velocity.Y *= body.damping
	if body.mass > 0 {
		// fixed bodies hold position under gravity
		body.velocity.Y += w.Gravity * body.gravityScale
	}
	body.position = body.position.Add(body.velocity)

	body.angleVelocity *= body.angleDamping
	body.angle += body.angleVelocity

	// fixed bodies integrate (their velocity is conventionally zero) but
	// never respond to collisions
	if !w.EnableSolver || body.mass == 0 {
		return
	}

	wasMovingDown := body.velocity.Y < 0

	if body.onGround {
		// pull horizontal velocity toward last tick's ground, then clear the
		// ground reference for re-detection below
		var groundVx float64
		if body.ground != nil {
			groundVx = body.ground.velocity.X
		}
		body.velocity.X = groundVx + (body.velocity.X-groundVx)*body.friction
		body.ground = nil
		body.onGround = false
	}

	if body.collideSolids {
		w.collideBodies(body, oldPos, wasMovingDown)
	}
	if body.collideTiles {
		w.collideWithTiles(body, oldPos, wasMovingDown)
	}
}

// collideBodies resolves body against every collidable in registry order.
// The order is an intentional tie break: simultaneous collisions resolve in
// registration order, not together.
func (w *World) collideBodies(body *Body, oldPos v.Vec, wasMovingDown bool) {
	for _, other := range w.Collidables {
		if (!body.isSolid && !other.isSolid) || other.destroyed || other.parent != nil || other == body {
			continue
		}
		if !overlapping(body.position, body.size, other.position, other.size) {
			continue
		}

		// both predicates run so each side observes the contact
		collide1 := body.collideObjectFunc(body, other)
		collide2 := other.collideObjectFunc(other, body)
		if !collide1 || !collide2 {
			continue
		}

		if overlapping(oldPos, body.size, other.position, other.size) {
			// stuck together since before the move; accelerate apart along
			// the previous-position delta instead of resolving an axis
			deltaPos := oldPos.Sub(other.position)
			length := deltaPos.Mag()
			push := randDirection(pushAwayAccel)
			if length >= stuckTieBreak {
				push = deltaPos.Scale(pushAwayAccel / length)
			}
			body.velocity = body.velocity.Add(push)
			if other.mass > 0 {
				other.velocity = other.velocity.Sub(push)
			}
			continue
		}

		sizeBoth := body.size.Add(other.size)

		// prefer pushing up over blocking sideways when the vertical gap at
		// the previous position nearly clears the other body
		smallStepUp := (oldPos.Y-other.position.Y)*2 > sizeBoth.Y+w.Gravity

		// which axes were already overlapped before the move
		blockedX := math.Abs(oldPos.Y-other.position.Y)*2 < sizeBoth.Y
		blockedY := math.Abs(oldPos.X-other.position.X)*2 < sizeBoth.X

		elasticity := math.Max(body.elasticity, other.elasticity)

		if smallStepUp || blockedY || !blockedX { // resolve vertically
			// push to the boundary of the other box
			body.position.Y = other.position.Y + (sizeBoth.Y/2+collisionEpsilon)*sign(oldPos.Y-other.position.Y)

			if (other.onGround && wasMovingDown) || other.mass == 0 {
				// landed on something fixed or grounded
				if wasMovingDown {
					body.ground = other
					body.onGround = true
				}
				body.velocity.Y *= -elasticity
			} else if other.mass > 0 {
				body.velocity.Y, other.velocity.Y = blend1D(
					body.mass, body.velocity.Y, other.mass, other.velocity.Y, elasticity)
			}
		}
		if !smallStepUp && blockedX { // resolve horizontally
			body.position.X = other.position.X + (sizeBoth.X/2+collisionEpsilon)*sign(oldPos.X-other.position.X)

			if other.mass > 0 {
				body.velocity.X, other.velocity.X = blend1D(
					body.mass, body.velocity.X, other.mass, other.velocity.X, elasticity)
			} else {
				// bounce off the fixed body
				body.velocity.X *= -elasticity
			}
		}
	}
}

// collideWithTiles resolves body against the world's tile source, one axis
// at a time. Bodies that were already embedded before the move are left
// alone rather than forcibly ejected.
func (w *World) collideWithTiles(body *Body, oldPos v.Vec, wasMovingDown bool) {
	if w.Tiles == nil {
		return
	}
	if !w.Tiles.Blocked(body.position, body.size, body) {
		return
	}
	if w.Tiles.Blocked(oldPos, body.size, body) {
		return
	}

	// substitute one previous coordinate at a time to find the blocked axis
	blockedY := w.Tiles.Blocked(v.Vec{X: oldPos.X, Y: body.position.Y}, body.size, body)
	blockedX := w.Tiles.Blocked(v.Vec{X: body.position.X, Y: oldPos.Y}, body.size, body)

	if blockedY || !blockedX {
		if wasMovingDown {
			body.onGround = true
		}
		body.velocity.Y *= -body.elasticity

		// settle on the grid line under the previous position: if the next
		// move would still sink below it, aim the velocity exactly at it.
		// The next move applies damping and gravity first, so both go into
		// the check and come back out of the assigned velocity.
		rest := math.Floor(oldPos.Y-body.size.Y/2) + body.size.Y/2
		gravity := w.Gravity * body.gravityScale
		if oldPos.Y+body.damping*body.velocity.Y+gravity < rest {
			if body.damping > 0 {
				body.velocity.Y = (rest - oldPos.Y - gravity) / body.damping
			} else {
				body.velocity.Y = 0
			}
		}
		body.position.Y = oldPos.Y
	}
	if blockedX {
		body.position.X = oldPos.X
		body.velocity.X *= -body.elasticity
	}
}

// overlapping is the axis-aligned overlap test between two centered boxes.
func overlapping(posA, sizeA, posB, sizeB v.Vec) bool {
	return math.Abs(posA.X-posB.X)*2 < sizeA.X+sizeB.X &&
		math.Abs(posA.Y-posB.Y)*2 < sizeA.Y+sizeB.Y
}

// blend1D returns the post-collision velocities of a colliding pair on one
// axis: the momentum-conserving common velocity and the 1D elastic solution,
// interpolated by elasticity and applied symmetrically.
func blend1D(m1, v1, m2, v2, elasticity float64) (float64, float64) {
	msum := m1 + m2
	inelastic := (m1*v1 + m2*v2) / msum
	elastic1 := v1*(m1-m2)/msum + v2*2*m2/msum
	elastic2 := v2*(m2-m1)/msum + v1*2*m1/msum
	return lerp(elasticity, inelastic, elastic1), lerp(elasticity, inelastic, elastic2)
}
