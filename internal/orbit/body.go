// Package orbit models a shallow tree of orbiting bodies.
//
// Every body sits at OrbitRadius from its parent's origin, rotated by its own
// Angle. Drawing composes the transforms top-down, isolating each subtree
// with save/restore so siblings never see each other's rotation.
package orbit

import (
	"errors"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/render"
)

var (
	ErrNilChild  = errors.New("orbit: child is nil")
	ErrSelfChild = errors.New("orbit: body cannot orbit itself")
	ErrHasParent = errors.New("orbit: body already has a parent")
	ErrCycle     = errors.New("orbit: adding child would create a cycle")
)

const twoPi = 2 * math.Pi

// Options configures a new body. OrbitSpeed is in radians per second.
type Options struct {
	Name         string
	Radius       float64
	Color        colorful.Color
	OrbitRadius  float64
	OrbitSpeed   float64
	InitialAngle float64
}

type Body struct {
	Name        string
	Radius      float64
	Color       colorful.Color
	OrbitRadius float64
	OrbitSpeed  float64
	Angle       float64

	initialAngle float64
	parent       *Body
	children     []*Body
}

func NewBody(opts Options) *Body {
	return &Body{
		Name:         opts.Name,
		Radius:       opts.Radius,
		Color:        opts.Color,
		OrbitRadius:  opts.OrbitRadius,
		OrbitSpeed:   opts.OrbitSpeed,
		Angle:        wrap(opts.InitialAngle),
		initialAngle: wrap(opts.InitialAngle),
	}
}

// AddChild attaches child to b.
func (b *Body) AddChild(child *Body) error {
	switch {
	case child == nil:
		return ErrNilChild
	case child == b:
		return ErrSelfChild
	case child.parent != nil:
		return ErrHasParent
	}
	for p := b; p != nil; p = p.parent {
		if p == child {
			return ErrCycle
		}
	}
	child.parent = b
	b.children = append(b.children, child)
	return nil
}

func (b *Body) Parent() *Body { return b.parent }

// Children returns the child list; callers must not modify it.
func (b *Body) Children() []*Body { return b.children }

// Depth is the number of ancestors; the root is at depth 0.
func (b *Body) Depth() int {
	d := 0
	for p := b.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Update advances b and its subtree by dt seconds.
func (b *Body) Update(dt float64) {
	b.Angle = wrap(b.Angle + b.OrbitSpeed*dt)
	for _, c := range b.children {
		c.Update(dt)
	}
}

// Draw renders b and its subtree in ctx's current frame.
func (b *Body) Draw(ctx render.Context) {
	ctx.Save()
	ctx.Rotate(b.Angle)
	ctx.Translate(b.OrbitRadius, 0)
	if b.Radius > 0 {
		ctx.FillCircle(0, 0, b.Radius, b.Color)
	}
	for _, c := range b.children {
		c.Draw(ctx)
	}
	ctx.Restore()
}

// DrawOrbits strokes the path of every descendant around its parent.
func (b *Body) DrawOrbits(ctx render.Context, c colorful.Color) {
	ctx.Save()
	ctx.Rotate(b.Angle)
	ctx.Translate(b.OrbitRadius, 0)
	for _, child := range b.children {
		if child.OrbitRadius > 0 {
			ctx.StrokeCircle(0, 0, child.OrbitRadius, c)
		}
		child.DrawOrbits(ctx, c)
	}
	ctx.Restore()
}

// LocalTransform maps b's own frame into its parent's frame.
func (b *Body) LocalTransform() render.Affine {
	return render.Identity().Rotate(b.Angle).Translate(b.OrbitRadius, 0)
}

// WorldTransform maps b's own frame into the root's parent frame.
func (b *Body) WorldTransform() render.Affine {
	m := b.LocalTransform()
	for p := b.parent; p != nil; p = p.parent {
		m = p.LocalTransform().Mul(m)
	}
	return m
}

// WorldPosition is b's centre in the frame the root is drawn in.
func (b *Body) WorldPosition() (float64, float64) {
	return b.WorldTransform().Apply(0, 0)
}

// Walk visits b and its descendants in pre-order. Returning false from fn
// stops the walk.
func (b *Body) Walk(fn func(*Body) bool) {
	b.walk(fn)
}

func (b *Body) walk(fn func(*Body) bool) bool {
	if !fn(b) {
		return false
	}
	for _, c := range b.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first body named name in pre-order, or nil.
func (b *Body) Find(name string) *Body {
	var found *Body
	b.Walk(func(x *Body) bool {
		if x.Name == name {
			found = x
			return false
		}
		return true
	})
	return found
}

// Count is the number of bodies in the subtree, b included.
func (b *Body) Count() int {
	n := 0
	b.Walk(func(*Body) bool { n++; return true })
	return n
}

// Reset restores every angle in the subtree to its initial value.
func (b *Body) Reset() {
	b.Walk(func(x *Body) bool {
		x.Angle = x.initialAngle
		return true
	})
}

// wrap keeps angles in [0, 2π) so long runs keep full float precision.
func wrap(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}
