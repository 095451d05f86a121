package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/render"
)

const ringWidth = 1.5

// Canvas draws through raylib's own matrix stack, so Save and Restore map
// straight onto PushMatrix and PopMatrix.
type Canvas struct {
	depth int
	scale float64
}

func (c *Canvas) begin(fit render.Affine) {
	c.depth = 0
	c.scale = fit.ScaleFactor()
	rl.PushMatrix()
	rl.Translatef(float32(fit.E), float32(fit.F), 0)
	rl.Scalef(float32(fit.A), float32(fit.D), 1)
}

func (c *Canvas) end() {
	for c.depth > 0 {
		c.Restore()
	}
	rl.PopMatrix()
}

func (c *Canvas) Save() {
	c.depth++
	rl.PushMatrix()
}

func (c *Canvas) Restore() {
	if c.depth == 0 {
		return
	}
	c.depth--
	rl.PopMatrix()
}

func (c *Canvas) Translate(x, y float64) { rl.Translatef(float32(x), float32(y), 0) }

// Rotate turns clockwise on screen for positive theta, like the other
// contexts; rlgl wants degrees.
func (c *Canvas) Rotate(theta float64) { rl.Rotatef(float32(theta*180/math.Pi), 0, 0, 1) }

func (c *Canvas) Clear(bg colorful.Color) { rl.ClearBackground(toColor(bg)) }

func (c *Canvas) FillCircle(x, y, r float64, col colorful.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), toColor(col))
}

func (c *Canvas) StrokeCircle(x, y, r float64, col colorful.Color) {
	w := ringWidth / c.scale
	segments := int32(math.Max(24, r/2))
	rl.DrawRing(rl.NewVector2(float32(x), float32(y)), float32(r-w/2), float32(r+w/2), 0, 360, segments, toColor(col))
}

// FillPolygon fans out from the first vertex, which suits the star-shaped
// outlines the scene uses.
func (c *Canvas) FillPolygon(pts []render.Point, col colorful.Color) {
	if len(pts) < 3 {
		return
	}
	pts = render.CounterClockwise(pts)
	vs := make([]rl.Vector2, len(pts))
	for i, p := range pts {
		vs[i] = rl.NewVector2(float32(p.X), float32(p.Y))
	}
	rl.DrawTriangleFan(vs, toColor(col))
}

func toColor(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}
