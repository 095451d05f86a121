// Package ship implements the player-controlled sprite.
package ship

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/input"
	"github.com/san-kum/orrery/internal/render"
)

// ReverseFactor scales Speed while reversing.
const ReverseFactor = 0.5

var flameColor = render.MustColor("orange")

// Config places and tunes the ship. Speed is in canvas units per second,
// TurnRate in radians per second, Heading 0 points along +x.
type Config struct {
	X, Y     float64
	Heading  float64
	Speed    float64
	TurnRate float64
	Size     float64
	Color    colorful.Color
}

type Ship struct {
	X, Y      float64
	Heading   float64
	Thrusting bool

	cfg           Config
	width, height float64
}

// New places a ship inside a w x h canvas.
func New(cfg Config, w, h float64) *Ship {
	s := &Ship{cfg: cfg}
	s.SetBounds(w, h)
	s.Reset()
	return s
}

func (s *Ship) Config() Config { return s.cfg }

// Reset returns the ship to its configured spawn point.
func (s *Ship) Reset() {
	s.X, s.Y, s.Heading = s.cfg.X, s.cfg.Y, s.cfg.Heading
	s.Thrusting = false
	s.clamp()
}

// SetBounds changes the canvas size and pulls the ship back inside it.
func (s *Ship) SetBounds(w, h float64) {
	s.width, s.height = w, h
	s.clamp()
}

// Update applies one step of held controls.
func (s *Ship) Update(dt float64, in input.Snapshot) {
	if in.Held(input.TurnLeft) {
		s.Heading -= s.cfg.TurnRate * dt
	}
	if in.Held(input.TurnRight) {
		s.Heading += s.cfg.TurnRate * dt
	}
	s.Heading = math.Remainder(s.Heading, 2*math.Pi)

	move := 0.0
	if in.Held(input.Thrust) {
		move += s.cfg.Speed
	}
	if in.Held(input.Reverse) {
		move -= s.cfg.Speed * ReverseFactor
	}
	s.Thrusting = in.Held(input.Thrust)

	if move != 0 {
		sin, cos := math.Sincos(s.Heading)
		s.X += cos * move * dt
		s.Y += sin * move * dt
	}
	s.clamp()
}

// clamp keeps the whole hull on the canvas. A canvas smaller than the hull
// pins the ship to its centre.
func (s *Ship) clamp() {
	m := s.cfg.Size
	s.X = clampRange(s.X, m, s.width-m)
	s.Y = clampRange(s.Y, m, s.height-m)
}

func clampRange(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}

// Hull is the ship outline in its own frame, nose along +x.
func (s *Ship) Hull() []render.Point {
	z := s.cfg.Size
	return []render.Point{
		{X: z, Y: 0},
		{X: -z * 0.6, Y: z * 0.55},
		{X: -z * 0.3, Y: 0},
		{X: -z * 0.6, Y: -z * 0.55},
	}
}

func (s *Ship) Draw(ctx render.Context) {
	z := s.cfg.Size
	ctx.Save()
	ctx.Translate(s.X, s.Y)
	ctx.Rotate(s.Heading)
	if s.Thrusting {
		ctx.FillPolygon([]render.Point{
			{X: -z * 0.35, Y: z * 0.25},
			{X: -z * 1.1, Y: 0},
			{X: -z * 0.35, Y: -z * 0.25},
		}, flameColor)
	}
	ctx.FillPolygon(s.Hull(), s.cfg.Color)
	ctx.Restore()
}
