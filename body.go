package pogo

import (
	"fmt"
	"slices"

	"github.com/setanarut/v"
)

// Default body properties applied by NewBody.
const (
	DefaultMass         float64 = 1
	DefaultDamping      float64 = 0.99
	DefaultAngleDamping float64 = 0.99
	DefaultElasticity   float64 = 0
	DefaultFriction     float64 = 0.8
	DefaultGravityScale float64 = 1
)

var bodyCur int

// CollideTileFunc decides whether a collision with the given tile value at
// the given cell position should resolve. Tile predicates are also consulted
// by TileGrid region queries, so returning false makes the body pass through
// that tile entirely.
type CollideTileFunc func(body *Body, tile int, pos v.Vec) bool

// CollideObjectFunc decides whether a collision with another body should
// resolve. Both bodies' predicates run on every overlap; either side
// returning false skips the response.
type CollideObjectFunc func(body, other *Body) bool

// RaycastHitFunc decides whether a tile raycast should stop at the given
// tile value and cell position. Used by TileGrid.Raycast, never by the
// physics step itself.
type RaycastHitFunc func(body *Body, tile int, pos v.Vec) bool

// Body is a simulated entity: an axis-aligned box with position, velocity
// and collision flags. Angle affects rendering and child transforms only,
// never the collision shape.
type Body struct {
	// UserData is an object this body is associated with.
	//
	// You can use this to get a reference to your game object from within callbacks.
	UserData any

	// Color is handed to drawers untouched.
	Color FColor

	// DrawSize overrides Size for rendering when non-zero.
	DrawSize v.Vec

	id            int
	world         *World
	position      v.Vec
	size          v.Vec
	velocity      v.Vec
	angle         float64
	angleVelocity float64
	mass          float64 // 0 means immovable
	damping       float64
	angleDamping  float64
	elasticity    float64
	friction      float64
	gravityScale  float64
	collideSolids bool
	isSolid       bool
	collideTiles  bool

	// ground support from the most recent vertical resolution, cleared and
	// re-detected every tick. ground stays nil for tile landings.
	ground   *Body
	onGround bool

	// hierarchy; parent and ground are non-owning back references
	parent        *Body
	children      []*Body
	localPosition v.Vec
	localAngle    float64
	mirrored      bool

	destroyed bool
	spawnTime float64

	collideTileFunc   CollideTileFunc
	collideObjectFunc CollideObjectFunc
	raycastHitFunc    RaycastHitFunc
}

// NewBody initializes a body with the given world-space center and size.
//
// Collision is off by default; use SetCollision. The body simulates once it
// is added to a World.
func NewBody(position, size v.Vec) *Body {
	if size.X < 0 || size.Y < 0 {
		panic("pogo: body size must be non-negative")
	}
	body := &Body{
		id:                bodyCur,
		Color:             FColor{1, 1, 1, 1},
		position:          position,
		size:              size,
		mass:              DefaultMass,
		damping:           DefaultDamping,
		angleDamping:      DefaultAngleDamping,
		elasticity:        DefaultElasticity,
		friction:          DefaultFriction,
		gravityScale:      DefaultGravityScale,
		collideTileFunc:   CollideTileDefault,
		collideObjectFunc: CollideObjectDefault,
		raycastHitFunc:    RaycastHitDefault,
	}
	bodyCur++
	return body
}

// NewFixedBody initializes an immovable body (zero mass) that still blocks
// solid bodies and keeps its position under gravity.
func NewFixedBody(position, size v.Vec) *Body {
	body := NewBody(position, size)
	body.mass = 0
	return body
}

// String returns the body id as a string.
func (body Body) String() string {
	return fmt.Sprint("Body ", body.id)
}

// Position returns the world-space center of the body.
func (body *Body) Position() v.Vec {
	return body.position
}

// SetPosition sets the world-space center of the body.
func (body *Body) SetPosition(position v.Vec) {
	body.position = position
}

// Size returns the world-space extents of the body.
func (body *Body) Size() v.Vec {
	return body.size
}

// SetSize sets the world-space extents of the body.
func (body *Body) SetSize(size v.Vec) {
	if size.X < 0 || size.Y < 0 {
		panic("pogo: body size must be non-negative")
	}
	body.size = size
}

// VisualSize returns DrawSize when set, the collision size otherwise.
func (body *Body) VisualSize() v.Vec {
	if body.DrawSize.X != 0 || body.DrawSize.Y != 0 {
		return body.DrawSize
	}
	return body.size
}

// Velocity returns the velocity of the body.
func (body *Body) Velocity() v.Vec {
	return body.velocity
}

// SetVelocity sets the velocity of the body.
//
// Shorthand for Body.SetVelocityVector()
func (body *Body) SetVelocity(x, y float64) {
	body.velocity = v.Vec{X: x, Y: y}
}

// SetVelocityVector sets the velocity of the body.
func (body *Body) SetVelocityVector(vel v.Vec) {
	body.velocity = vel
}

// Angle returns the angle of the body in radians.
func (body *Body) Angle() float64 {
	return body.angle
}

// SetAngle sets the angle of the body in radians.
func (body *Body) SetAngle(angle float64) {
	body.angle = angle
}

// AngleVelocity returns the angular velocity of the body.
func (body *Body) AngleVelocity() float64 {
	return body.angleVelocity
}

// SetAngleVelocity sets the angular velocity of the body.
func (body *Body) SetAngleVelocity(w float64) {
	body.angleVelocity = w
}

// Mass returns the mass of the body. Zero means immovable.
func (body *Body) Mass() float64 {
	return body.mass
}

// SetMass sets the mass of the body. Zero makes the body immovable: it is
// skipped by the solver but still blocks solid bodies.
func (body *Body) SetMass(mass float64) {
	if mass < 0 {
		panic("pogo: body mass must be non-negative")
	}
	body.mass = mass
}

// Damping returns the multiplicative per-tick velocity decay.
func (body *Body) Damping() float64 {
	return body.damping
}

// SetDamping sets the per-tick velocity decay, in [0, 1].
func (body *Body) SetDamping(damping float64) {
	if damping < 0 || damping > 1 {
		panic("pogo: damping must be in [0, 1]")
	}
	body.damping = damping
}

// AngleDamping returns the multiplicative per-tick angular velocity decay.
func (body *Body) AngleDamping() float64 {
	return body.angleDamping
}

// SetAngleDamping sets the per-tick angular velocity decay, in [0, 1].
func (body *Body) SetAngleDamping(angleDamping float64) {
	if angleDamping < 0 || angleDamping > 1 {
		panic("pogo: angle damping must be in [0, 1]")
	}
	body.angleDamping = angleDamping
}

// Elasticity returns how much of the impact velocity is kept on bounce.
func (body *Body) Elasticity() float64 {
	return body.elasticity
}

// SetElasticity sets the bounce factor, in [0, 1]. Zero sticks, one bounces
// with no energy loss.
func (body *Body) SetElasticity(elasticity float64) {
	if elasticity < 0 || elasticity > 1 {
		panic("pogo: elasticity must be in [0, 1]")
	}
	body.elasticity = elasticity
}

// Friction returns the ground friction coefficient.
func (body *Body) Friction() float64 {
	return body.friction
}

// SetFriction sets the ground friction coefficient, in [0, 1]. While
// grounded, the body's horizontal velocity is pulled toward the ground
// body's by this factor each tick; zero matches the ground immediately,
// one slides freely.
func (body *Body) SetFriction(friction float64) {
	if friction < 0 || friction > 1 {
		panic("pogo: friction must be in [0, 1]")
	}
	body.friction = friction
}

// GravityScale returns the gravity multiplier for this body.
func (body *Body) GravityScale() float64 {
	return body.gravityScale
}

// SetGravityScale sets the gravity multiplier for this body.
func (body *Body) SetGravityScale(scale float64) {
	body.gravityScale = scale
}

// SetCollision sets what the body collides with.
//
// Solid bodies must also collide with solids, so collideSolids must be set
// whenever isSolid is. The world's collidable registry is kept in sync when
// the body is already registered.
func (body *Body) SetCollision(collideSolids, isSolid, collideTiles bool) {
	if isSolid && !collideSolids {
		panic("pogo: solid bodies must collide with solids")
	}

	if body.world != nil && collideSolids != body.collideSolids {
		if collideSolids {
			body.world.Collidables = append(body.world.Collidables, body)
		} else {
			body.world.Collidables = slices.DeleteFunc(body.world.Collidables, func(b *Body) bool {
				return b == body
			})
		}
	}

	body.collideSolids = collideSolids
	body.isSolid = isSolid
	body.collideTiles = collideTiles
}

// CollidesWithSolids reports whether the body collides with solid bodies.
func (body *Body) CollidesWithSolids() bool {
	return body.collideSolids
}

// IsSolid reports whether the body blocks other solid bodies.
func (body *Body) IsSolid() bool {
	return body.isSolid
}

// CollidesWithTiles reports whether the body collides with the tile grid.
func (body *Body) CollidesWithTiles() bool {
	return body.collideTiles
}

// GroundBody returns the body found supporting this one during the most
// recent tick, or nil. Landing on tiles grounds a body without a ground body.
func (body *Body) GroundBody() *Body {
	return body.ground
}

// OnGround reports whether the most recent tick found support below the
// body, from another body or from the tile grid.
func (body *Body) OnGround() bool {
	return body.onGround
}

// Destroyed reports whether the body has been destroyed.
func (body *Body) Destroyed() bool {
	return body.destroyed
}

// Destroy marks the body destroyed, detaches it from its parent and destroys
// all children depth first. Destroying an already-destroyed body is a no-op.
// The world's registries drop destroyed bodies at the end of the step, never
// mid-iteration.
func (body *Body) Destroy() {
	if body.destroyed {
		return
	}
	body.destroyed = true
	if body.parent != nil {
		body.parent.RemoveChild(body)
	}
	for _, child := range body.children {
		child.parent = nil
		child.Destroy()
	}
	body.children = nil
	body.ground = nil
}

// SpawnTime returns the world clock value at registration.
func (body *Body) SpawnTime() float64 {
	return body.spawnTime
}

// AliveTime returns seconds since the body was registered, zero before.
func (body *Body) AliveTime() float64 {
	if body.world == nil {
		return 0
	}
	return body.world.time - body.spawnTime
}

// Parent returns the body this one is attached to, or nil.
func (body *Body) Parent() *Body {
	return body.parent
}

// AddChild attaches child to this body with a local offset and angle.
// Parented bodies skip physics entirely; each tick their world transform is
// derived from the parent's. Attaching a body that already has a parent, or
// twice to the same parent, is a contract violation.
func (body *Body) AddChild(child *Body, localPosition v.Vec, localAngle float64) {
	if child.parent != nil || slices.Contains(body.children, child) {
		panic("pogo: body already has a parent")
	}
	body.children = append(body.children, child)
	child.parent = body
	child.localPosition = localPosition
	child.localAngle = localAngle
}

// RemoveChild detaches child from this body. Detaching a body that is not a
// child of this one is a contract violation.
func (body *Body) RemoveChild(child *Body) {
	if child.parent != body || !slices.Contains(body.children, child) {
		panic("pogo: body is not a child of this parent")
	}
	body.children = slices.DeleteFunc(body.children, func(b *Body) bool {
		return b == child
	})
	child.parent = nil
}

// EachChild calls f once for each child attached to this body.
func (body *Body) EachChild(f func(child *Body)) {
	for i := range body.children {
		f(body.children[i])
	}
}

// LocalPosition returns the offset from the parent, meaningful only while parented.
func (body *Body) LocalPosition() v.Vec {
	return body.localPosition
}

// SetLocalPosition sets the offset from the parent.
func (body *Body) SetLocalPosition(localPosition v.Vec) {
	body.localPosition = localPosition
}

// LocalAngle returns the angle relative to the parent.
func (body *Body) LocalAngle() float64 {
	return body.localAngle
}

// SetLocalAngle sets the angle relative to the parent.
func (body *Body) SetLocalAngle(localAngle float64) {
	body.localAngle = localAngle
}

// Mirrored reports whether the body is flipped horizontally.
func (body *Body) Mirrored() bool {
	return body.mirrored
}

// SetMirrored sets whether the body is flipped horizontally. Mirroring
// negates the local x offset and local angle of a parented body.
func (body *Body) SetMirrored(mirrored bool) {
	body.mirrored = mirrored
}

func (body *Body) mirrorSign() float64 {
	if body.mirrored {
		return -1
	}
	return 1
}

// SetCollideTileFunc sets the callback deciding whether tile collisions
// resolve. Pass nil to restore CollideTileDefault.
func (body *Body) SetCollideTileFunc(f CollideTileFunc) {
	if f == nil {
		f = CollideTileDefault
	}
	body.collideTileFunc = f
}

// SetCollideObjectFunc sets the callback deciding whether object collisions
// resolve. Pass nil to restore CollideObjectDefault.
func (body *Body) SetCollideObjectFunc(f CollideObjectFunc) {
	if f == nil {
		f = CollideObjectDefault
	}
	body.collideObjectFunc = f
}

// SetRaycastHitFunc sets the callback deciding whether raycasts stop on a
// tile. Pass nil to restore RaycastHitDefault.
func (body *Body) SetRaycastHitFunc(f RaycastHitFunc) {
	if f == nil {
		f = RaycastHitDefault
	}
	body.raycastHitFunc = f
}

// CollidesWithTile runs the body's tile predicate.
func (body *Body) CollidesWithTile(tile int, pos v.Vec) bool {
	return body.collideTileFunc(body, tile, pos)
}

// CollidesWithObject runs the body's object predicate against other.
func (body *Body) CollidesWithObject(other *Body) bool {
	return body.collideObjectFunc(body, other)
}

// RaycastHits runs the body's raycast predicate.
func (body *Body) RaycastHits(tile int, pos v.Vec) bool {
	return body.raycastHitFunc(body, tile, pos)
}

// CollideTileDefault resolves collisions with every non-zero tile value.
func CollideTileDefault(body *Body, tile int, pos v.Vec) bool {
	return tile != 0
}

// CollideObjectDefault resolves every object collision.
func CollideObjectDefault(body, other *Body) bool {
	return true
}

// RaycastHitDefault stops raycasts on every non-zero tile value.
func RaycastHitDefault(body *Body, tile int, pos v.Vec) bool {
	return tile != 0
}
