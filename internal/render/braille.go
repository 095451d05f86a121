package render

import (
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank rune = 0x2800

// Braille is a Context that rasterises into terminal cells. The dot grid is
// (Width*2) x (Height*4); each cell keeps the color of the last dot drawn in it.
type Braille struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]colorful.Color

	bg    colorful.Color
	stack *Stack
}

func NewBraille(w, h int) *Braille {
	b := &Braille{stack: NewStack(Identity())}
	b.Resize(w, h)
	return b
}

// Resize reallocates the grid to w x h cells and clears it.
func (b *Braille) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	b.Width, b.Height = w, h
	b.Grid = make([][]rune, h)
	b.Colors = make([][]colorful.Color, h)
	for i := range b.Grid {
		b.Grid[i] = make([]rune, w)
		b.Colors[i] = make([]colorful.Color, w)
	}
	b.Clear(b.bg)
}

// DotSize is the dot-grid resolution.
func (b *Braille) DotSize() (int, int) { return b.Width * 2, b.Height * 4 }

// SetViewport resets the transform stack so a w x h logical canvas fills the
// dot grid.
func (b *Braille) SetViewport(w, h float64) {
	dw, dh := b.DotSize()
	b.stack.Reset(FitViewport(w, h, float64(dw), float64(dh)))
}

// Set turns on the dot at (x, y) in dot coordinates.
func (b *Braille) Set(x, y int, c colorful.Color) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= b.Width || row >= b.Height {
		return
	}
	b.Grid[row][col] |= pixelMap[y%4][x%2]
	b.Colors[row][col] = c
}

// Unset clears the dot at (x, y).
func (b *Braille) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= b.Width || row >= b.Height {
		return
	}
	b.Grid[row][col] &^= pixelMap[y%4][x%2]
	if b.Grid[row][col] < blank {
		b.Grid[row][col] = blank
	}
}

// IsSet reports whether the dot at (x, y) is on.
func (b *Braille) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= b.Width || y/4 >= b.Height {
		return false
	}
	return b.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

// Lit counts the dots that are on.
func (b *Braille) Lit() int {
	n := 0
	for _, row := range b.Grid {
		for _, r := range row {
			for v := r - blank; v != 0; v &= v - 1 {
				n++
			}
		}
	}
	return n
}

// Background is the color passed to the last Clear.
func (b *Braille) Background() colorful.Color { return b.bg }

// DrawLine draws a line in dot coordinates using Bresenham's algorithm.
func (b *Braille) DrawLine(x0, y0, x1, y1 int, c colorful.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		b.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (b *Braille) String() string {
	var s strings.Builder
	for _, row := range b.Grid {
		s.WriteString(string(row))
		s.WriteByte('\n')
	}
	return s.String()
}

func (b *Braille) Save()                  { b.stack.Save() }
func (b *Braille) Restore()               { b.stack.Restore() }
func (b *Braille) Translate(x, y float64) { b.stack.Translate(x, y) }
func (b *Braille) Rotate(theta float64)   { b.stack.Rotate(theta) }
func (b *Braille) Transform() Affine      { return b.stack.Current() }
func (b *Braille) Depth() int             { return b.stack.Depth() }

func (b *Braille) Clear(bg colorful.Color) {
	b.bg = bg
	for i := range b.Grid {
		for j := range b.Grid[i] {
			b.Grid[i][j] = blank
			b.Colors[i][j] = bg
		}
	}
}

func (b *Braille) FillCircle(x, y, r float64, c colorful.Color) {
	if r <= 0 {
		return
	}
	m := b.stack.Current()
	cx, cy := m.Apply(x, y)
	rs := r * m.ScaleFactor()
	if rs < 0.75 {
		// Sub-dot bodies still get one dot so they never vanish.
		b.Set(int(math.Floor(cx)), int(math.Floor(cy)), c)
		return
	}
	x0, x1 := int(math.Floor(cx-rs)), int(math.Ceil(cx+rs))
	y0, y1 := int(math.Floor(cy-rs)), int(math.Ceil(cy+rs))
	r2 := rs * rs
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			dx := float64(px) + 0.5 - cx
			dy := float64(py) + 0.5 - cy
			if dx*dx+dy*dy <= r2 {
				b.Set(px, py, c)
			}
		}
	}
}

func (b *Braille) StrokeCircle(x, y, r float64, c colorful.Color) {
	m := b.stack.Current()
	cx, cy := m.Apply(x, y)
	rs := r * m.ScaleFactor()
	if rs < 1 {
		return
	}
	n := int(2 * math.Pi * rs)
	if n < 16 {
		n = 16
	}
	for i := 0; i < n; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		b.Set(int(math.Floor(cx+rs*cos)), int(math.Floor(cy+rs*sin)), c)
	}
}

func (b *Braille) FillPolygon(pts []Point, c colorful.Color) {
	if len(pts) == 0 {
		return
	}
	m := b.stack.Current()
	dev := make([]Point, len(pts))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, p := range pts {
		dev[i] = m.ApplyPoint(p)
		minX, maxX = math.Min(minX, dev[i].X), math.Max(maxX, dev[i].X)
		minY, maxY = math.Min(minY, dev[i].Y), math.Max(maxY, dev[i].Y)
	}
	filled := false
	for py := int(math.Floor(minY)); py <= int(math.Ceil(maxY)); py++ {
		for px := int(math.Floor(minX)); px <= int(math.Ceil(maxX)); px++ {
			if insidePolygon(dev, float64(px)+0.5, float64(py)+0.5) {
				b.Set(px, py, c)
				filled = true
			}
		}
	}
	if !filled {
		// Slivers thinner than a dot row keep their outline.
		j := len(dev) - 1
		for i := range dev {
			b.DrawLine(int(math.Floor(dev[j].X)), int(math.Floor(dev[j].Y)),
				int(math.Floor(dev[i].X)), int(math.Floor(dev[i].Y)), c)
			j = i
		}
	}
}

// insidePolygon is the even-odd crossing test.
func insidePolygon(poly []Point, x, y float64) bool {
	in := false
	j := len(poly) - 1
	for i := range poly {
		pi, pj := poly[i], poly[j]
		if (pi.Y > y) != (pj.Y > y) && x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			in = !in
		}
		j = i
	}
	return in
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
