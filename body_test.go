package pogo_test

import (
	"math"
	"testing"

	"github.com/setanarut/v"
	"github.com/tlfgdj7/pogo"
)

func TestNewBodyDefaults(t *testing.T) {
	body := pogo.NewBody(v.Vec{X: 1, Y: 2}, v.Vec{X: 3, Y: 4})
	if got := body.Position(); got != (v.Vec{X: 1, Y: 2}) {
		t.Errorf("position got %v want {1 2}", got)
	}
	if got := body.Mass(); got != 1 {
		t.Errorf("mass got %v want 1", got)
	}
	if got := body.Damping(); got != 0.99 {
		t.Errorf("damping got %v want 0.99", got)
	}
	if got := body.Friction(); got != 0.8 {
		t.Errorf("friction got %v want 0.8", got)
	}
	if body.CollidesWithSolids() || body.IsSolid() || body.CollidesWithTiles() {
		t.Error("collision should be off for a new body")
	}
}

func TestNewFixedBodyHasZeroMass(t *testing.T) {
	body := pogo.NewFixedBody(v.Vec{}, v.Vec{X: 2, Y: 1})
	if got := body.Mass(); got != 0 {
		t.Errorf("mass got %v want 0", got)
	}
}

func TestSetterRangePanics(t *testing.T) {
	body := pogo.NewBody(v.Vec{}, v.Vec{X: 1, Y: 1})
	cases := []struct {
		name string
		f    func()
	}{
		{"negative mass", func() { body.SetMass(-1) }},
		{"damping above one", func() { body.SetDamping(1.5) }},
		{"negative elasticity", func() { body.SetElasticity(-0.1) }},
		{"friction above one", func() { body.SetFriction(2) }},
		{"negative size", func() { body.SetSize(v.Vec{X: -1, Y: 1}) }},
	}
	for _, c := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", c.name)
				}
			}()
			c.f()
		}()
	}
}

func TestSetCollisionSolidRequiresCollideSolids(t *testing.T) {
	body := pogo.NewBody(v.Vec{}, v.Vec{X: 1, Y: 1})
	defer func() {
		if recover() == nil {
			t.Error("expected panic for solid body that ignores solids")
		}
	}()
	body.SetCollision(false, true, false)
}

func TestDestroyCascadesToChildren(t *testing.T) {
	parent := pogo.NewBody(v.Vec{}, v.Vec{X: 1, Y: 1})
	child := pogo.NewBody(v.Vec{}, v.Vec{X: 1, Y: 1})
	grandchild := pogo.NewBody(v.Vec{}, v.Vec{X: 1, Y: 1})
	parent.AddChild(child, v.Vec{X: 1, Y: 0}, 0)
	child.AddChild(grandchild, v.Vec{X: 0, Y: 1}, 0)

	parent.Destroy()

	if !parent.Destroyed() || !child.Destroyed() || !grandchild.Destroyed() {
		t.Error("destroying a parent should destroy all descendants")
	}
	if child.Parent() != nil || grandchild.Parent() != nil {
		t.Error("destroyed bodies should be detached from their parents")
	}
	// must be a no-op the second time
	parent.Destroy()
}

func TestDestroyChildDetachesFromParent(t *testing.T) {
	parent := pogo.NewBody(v.Vec{}, v.Vec{X: 1, Y: 1})
	child := pogo.NewBody(v.Vec{}, v.Vec{X: 1, Y: 1})
	parent.AddChild(child, v.Vec{}, 0)

	child.Destroy()

	if parent.Destroyed() {
		t.Error("destroying a child must not destroy the parent")
	}
	count := 0
	parent.EachChild(func(*pogo.Body) { count++ })
	if count != 0 {
		t.Errorf("parent still has %d children after child destroy", count)
	}
}

func TestAddChildPanicsWhenAlreadyAttached(t *testing.T) {
	a := pogo.NewBody(v.Vec{}, v.Vec{X: 1, Y: 1})
	b := pogo.NewBody(v.Vec{}, v.Vec{X: 1, Y: 1})
	child := pogo.NewBody(v.Vec{}, v.Vec{X: 1, Y: 1})
	a.AddChild(child, v.Vec{}, 0)
	defer func() {
		if recover() == nil {
			t.Error("expected panic when attaching a body that already has a parent")
		}
	}()
	b.AddChild(child, v.Vec{}, 0)
}

func TestRemoveChildPanicsWhenNotAttached(t *testing.T) {
	parent := pogo.NewBody(v.Vec{}, v.Vec{X: 1, Y: 1})
	stranger := pogo.NewBody(v.Vec{}, v.Vec{X: 1, Y: 1})
	defer func() {
		if recover() == nil {
			t.Error("expected panic when detaching a body that is not a child")
		}
	}()
	parent.RemoveChild(stranger)
}

func TestChildFollowsParentTransform(t *testing.T) {
	w := pogo.NewWorld()
	w.Gravity = 0
	parent := pogo.NewBody(v.Vec{X: 2, Y: 3}, v.Vec{X: 1, Y: 1})
	parent.SetAngle(math.Pi / 2)
	child := pogo.NewBody(v.Vec{}, v.Vec{X: 1, Y: 1})
	parent.AddChild(child, v.Vec{X: 1, Y: 0}, 0.25)
	w.AddBody(parent)
	w.AddBody(child)

	w.Step()

	// local +X rotated by -angle lands one unit below the parent
	if got := child.Position(); !vecNear(got, v.Vec{X: 2, Y: 2}, 1e-9) {
		t.Errorf("child position got %v want {2 2}", got)
	}
	if got := child.Angle(); math.Abs(got-(0.25+math.Pi/2)) > 1e-9 {
		t.Errorf("child angle got %v want %v", got, 0.25+math.Pi/2)
	}
}

func TestMirroredChildTransform(t *testing.T) {
	w := pogo.NewWorld()
	w.Gravity = 0
	parent := pogo.NewBody(v.Vec{X: 5, Y: 5}, v.Vec{X: 1, Y: 1})
	child := pogo.NewBody(v.Vec{}, v.Vec{X: 1, Y: 1})
	parent.AddChild(child, v.Vec{X: 1, Y: 0.5}, 0.3)
	child.SetMirrored(true)
	w.AddBody(parent)
	w.AddBody(child)

	w.Step()

	if got := child.Position(); !vecNear(got, v.Vec{X: 4, Y: 5.5}, 1e-9) {
		t.Errorf("mirrored child position got %v want {4 5.5}", got)
	}
	if got := child.Angle(); math.Abs(got-(-0.3)) > 1e-9 {
		t.Errorf("mirrored child angle got %v want -0.3", got)
	}
}

func TestParentedBodySkipsPhysics(t *testing.T) {
	w := pogo.NewWorld()
	w.Gravity = -0.2
	parent := pogo.NewBody(v.Vec{X: 0, Y: 0}, v.Vec{X: 1, Y: 1})
	parent.SetGravityScale(0)
	child := pogo.NewBody(v.Vec{}, v.Vec{X: 1, Y: 1})
	child.SetVelocity(5, 5)
	parent.AddChild(child, v.Vec{X: 0, Y: 1}, 0)
	w.AddBody(parent)
	w.AddBody(child)

	for i := 0; i < 10; i++ {
		w.Step()
	}

	if got := child.Position(); !vecNear(got, v.Vec{X: 0, Y: 1}, 1e-9) {
		t.Errorf("child position got %v want {0 1}", got)
	}
}

func TestVisualSizeFallsBackToSize(t *testing.T) {
	body := pogo.NewBody(v.Vec{}, v.Vec{X: 2, Y: 3})
	if got := body.VisualSize(); got != (v.Vec{X: 2, Y: 3}) {
		t.Errorf("got %v want {2 3}", got)
	}
	body.DrawSize = v.Vec{X: 4, Y: 4}
	if got := body.VisualSize(); got != (v.Vec{X: 4, Y: 4}) {
		t.Errorf("got %v want {4 4}", got)
	}
}
