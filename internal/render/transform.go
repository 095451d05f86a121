package render

import "math"

// Point is a 2D coordinate in the current drawing frame.
type Point struct {
	X, Y float64
}

// SignedArea is the shoelace area of a polygon. With y pointing down it is
// negative when the vertices run counter-clockwise on screen.
func SignedArea(pts []Point) float64 {
	a := 0.0
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// CounterClockwise returns pts ordered counter-clockwise on screen, copying
// only when the order has to change.
func CounterClockwise(pts []Point) []Point {
	if SignedArea(pts) <= 0 {
		return pts
	}
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// Affine is a 2D affine transform laid out like canvas setTransform(a, b, c, d, e, f):
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Mul returns m * n, so n is applied to points before m.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

func (m Affine) Translate(tx, ty float64) Affine {
	m.E += m.A*tx + m.C*ty
	m.F += m.B*tx + m.D*ty
	return m
}

// Rotate post-multiplies a rotation by theta radians. With y pointing down
// a positive angle turns clockwise on screen.
func (m Affine) Rotate(theta float64) Affine {
	sin, cos := math.Sincos(theta)
	return Affine{
		A: m.A*cos + m.C*sin,
		B: m.B*cos + m.D*sin,
		C: -m.A*sin + m.C*cos,
		D: -m.B*sin + m.D*cos,
		E: m.E,
		F: m.F,
	}
}

func (m Affine) Scale(sx, sy float64) Affine {
	m.A *= sx
	m.B *= sx
	m.C *= sy
	m.D *= sy
	return m
}

// Apply maps (x, y) through the transform.
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// ApplyPoint is Apply for a Point.
func (m Affine) ApplyPoint(p Point) Point {
	x, y := m.Apply(p.X, p.Y)
	return Point{X: x, Y: y}
}

// ScaleFactor is the uniform length scale of the transform. Exact for
// compositions of rotations, translations and uniform scales.
func (m Affine) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

// Angle is the rotation encoded in the transform.
func (m Affine) Angle() float64 {
	return math.Atan2(m.B, m.A)
}

// Stack holds the current transform and the saved ones beneath it.
type Stack struct {
	base    Affine
	current Affine
	saved   []Affine
}

// NewStack returns a stack whose current transform is base.
func NewStack(base Affine) *Stack {
	return &Stack{base: base, current: base, saved: make([]Affine, 0, 8)}
}

// Reset drops all saved state and starts again from base.
func (s *Stack) Reset(base Affine) {
	s.base = base
	s.current = base
	s.saved = s.saved[:0]
}

func (s *Stack) Save() {
	s.saved = append(s.saved, s.current)
}

// Restore pops the last saved transform. Restoring with nothing saved is a
// no-op, as on an HTML canvas.
func (s *Stack) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

func (s *Stack) Translate(tx, ty float64) { s.current = s.current.Translate(tx, ty) }
func (s *Stack) Rotate(theta float64)     { s.current = s.current.Rotate(theta) }
func (s *Stack) Current() Affine          { return s.current }
func (s *Stack) Base() Affine             { return s.base }

// Depth is the number of unmatched Save calls.
func (s *Stack) Depth() int { return len(s.saved) }
