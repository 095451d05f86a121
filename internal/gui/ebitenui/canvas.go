package ebitenui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/render"
)

const ringWidth = 1.5

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// Canvas maps the Context calls onto one ebiten frame. Ebiten has no matrix
// stack of its own, so transforms live in a render.Stack and geometry is
// transformed before it is drawn.
type Canvas struct {
	screen *ebiten.Image
	stack  *render.Stack
	path   vector.Path
	vs     []ebiten.Vertex
	is     []uint16
}

func NewCanvas() *Canvas {
	return &Canvas{stack: render.NewStack(render.Identity())}
}

func (c *Canvas) begin(screen *ebiten.Image, fit render.Affine) {
	c.screen = screen
	c.stack.Reset(fit)
}

func (c *Canvas) Save()                  { c.stack.Save() }
func (c *Canvas) Restore()               { c.stack.Restore() }
func (c *Canvas) Translate(x, y float64) { c.stack.Translate(x, y) }
func (c *Canvas) Rotate(theta float64)   { c.stack.Rotate(theta) }

func (c *Canvas) Clear(bg colorful.Color) { c.screen.Fill(toColor(bg)) }

func (c *Canvas) FillCircle(x, y, r float64, col colorful.Color) {
	m := c.stack.Current()
	cx, cy := m.Apply(x, y)
	vector.DrawFilledCircle(c.screen, float32(cx), float32(cy), float32(r*m.ScaleFactor()), toColor(col), true)
}

func (c *Canvas) StrokeCircle(x, y, r float64, col colorful.Color) {
	m := c.stack.Current()
	cx, cy := m.Apply(x, y)
	vector.StrokeCircle(c.screen, float32(cx), float32(cy), float32(r*m.ScaleFactor()), ringWidth, toColor(col), true)
}

func (c *Canvas) FillPolygon(pts []render.Point, col colorful.Color) {
	if len(pts) < 3 {
		return
	}
	m := c.stack.Current()
	c.path = vector.Path{}
	for i, p := range pts {
		x, y := m.Apply(p.X, p.Y)
		if i == 0 {
			c.path.MoveTo(float32(x), float32(y))
		} else {
			c.path.LineTo(float32(x), float32(y))
		}
	}
	c.path.Close()

	c.vs, c.is = c.path.AppendVerticesAndIndicesForFilling(c.vs[:0], c.is[:0])
	r, g, b, _ := col.Clamped().RGBA()
	for i := range c.vs {
		c.vs[i].SrcX, c.vs[i].SrcY = 1, 1
		c.vs[i].ColorR = float32(r) / 0xffff
		c.vs[i].ColorG = float32(g) / 0xffff
		c.vs[i].ColorB = float32(b) / 0xffff
		c.vs[i].ColorA = 1
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	c.screen.DrawTriangles(c.vs, c.is, whiteSubImage, op)
}

func toColor(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
