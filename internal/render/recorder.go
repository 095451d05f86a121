package render

import colorful "github.com/lucasb-eyer/go-colorful"

// OpKind identifies a recorded draw call.
type OpKind int

const (
	OpClear OpKind = iota
	OpFillCircle
	OpStrokeCircle
	OpFillPolygon
)

// Op is one draw call with the transform that was current when it was made.
type Op struct {
	Kind      OpKind
	Transform Affine
	X, Y, R   float64
	Points    []Point
	Color     colorful.Color
	Depth     int
}

// Center maps the op's local (X, Y) to device space.
func (o Op) Center() (float64, float64) {
	return o.Transform.Apply(o.X, o.Y)
}

// Recorder is a Context that keeps every draw call instead of rasterising.
type Recorder struct {
	Ops      []Op
	MaxDepth int

	stack *Stack
}

func NewRecorder() *Recorder {
	return &Recorder{stack: NewStack(Identity())}
}

func (r *Recorder) Save() {
	r.stack.Save()
	if d := r.stack.Depth(); d > r.MaxDepth {
		r.MaxDepth = d
	}
}

func (r *Recorder) Restore()               { r.stack.Restore() }
func (r *Recorder) Translate(x, y float64) { r.stack.Translate(x, y) }
func (r *Recorder) Rotate(theta float64)   { r.stack.Rotate(theta) }
func (r *Recorder) Depth() int             { return r.stack.Depth() }

func (r *Recorder) Clear(bg colorful.Color) {
	r.record(Op{Kind: OpClear, Color: bg})
}

func (r *Recorder) FillCircle(x, y, rad float64, c colorful.Color) {
	r.record(Op{Kind: OpFillCircle, X: x, Y: y, R: rad, Color: c})
}

func (r *Recorder) StrokeCircle(x, y, rad float64, c colorful.Color) {
	r.record(Op{Kind: OpStrokeCircle, X: x, Y: y, R: rad, Color: c})
}

func (r *Recorder) FillPolygon(pts []Point, c colorful.Color) {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	r.record(Op{Kind: OpFillPolygon, Points: cp, Color: c})
}

// Filter returns the recorded ops of one kind, in order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.MaxDepth = 0
	r.stack.Reset(Identity())
}

func (r *Recorder) record(op Op) {
	op.Transform = r.stack.Current()
	op.Depth = r.stack.Depth()
	r.Ops = append(r.Ops, op)
}
