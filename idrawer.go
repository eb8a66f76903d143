package pogo

import (
	"github.com/setanarut/v"
)

// 16 bytes
type FColor struct {
	R, G, B, A float32
}

// IDrawer is the rendering collaborator. The physics core never reads
// anything back from it.
type IDrawer interface {
	DrawBox(pos, size v.Vec, angle float64, fill FColor, data any)
	Data() any
}

// DrawBody draws a body with the drawer implementation. Destroyed bodies
// are skipped.
func DrawBody(body *Body, drawer IDrawer) {
	if body.destroyed {
		return
	}
	drawer.DrawBox(body.position, body.VisualSize(), body.angle, body.Color, drawer.Data())
}

// DrawBodies draws every non-destroyed body in registration order. Call
// after Step; drawing has no feedback into physics.
func (w *World) DrawBodies(drawer IDrawer) {
	for _, body := range w.Bodies {
		DrawBody(body, drawer)
	}
}
