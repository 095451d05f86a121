// Package scene ties the orbit tree and the ship to one canvas.
package scene

import (
	"fmt"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/input"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/render"
	"github.com/san-kum/orrery/internal/ship"
)

type Scene struct {
	Root *orbit.Body
	Ship *ship.Ship
	Keys *input.Keys

	width, height float64
	background    colorful.Color
	orbitColor    colorful.Color
	showOrbits    bool
	now           func() time.Time
}

// New builds a scene from cfg, which must already be valid.
func New(cfg *config.Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root, err := buildTree(&cfg.Root)
	if err != nil {
		return nil, err
	}
	bg, _ := render.ParseColor(cfg.Background)
	oc, _ := render.ParseColor(cfg.OrbitColor)
	sc, _ := render.ParseColor(cfg.Ship.Color)

	s := &Scene{
		Root:       root,
		Keys:       input.NewKeys(cfg.Hold()),
		width:      cfg.Width,
		height:     cfg.Height,
		background: bg,
		orbitColor: oc,
		showOrbits: cfg.ShowOrbits,
		now:        time.Now,
	}
	s.Ship = ship.New(ship.Config{
		X:        cfg.Ship.X,
		Y:        cfg.Ship.Y,
		Heading:  cfg.Ship.Heading,
		Speed:    cfg.Ship.Speed,
		TurnRate: cfg.Ship.TurnRate,
		Size:     cfg.Ship.Size,
		Color:    sc,
	}, cfg.Width, cfg.Height)
	return s, nil
}

func buildTree(bc *config.BodyConfig) (*orbit.Body, error) {
	c, err := bc.BodyColor()
	if err != nil {
		return nil, err
	}
	b := orbit.NewBody(orbit.Options{
		Name:         bc.Name,
		Radius:       bc.Radius,
		Color:        c,
		OrbitRadius:  bc.OrbitRadius,
		OrbitSpeed:   bc.OrbitSpeed,
		InitialAngle: bc.InitialAngle,
	})
	for i := range bc.Children {
		child, err := buildTree(&bc.Children[i])
		if err != nil {
			return nil, err
		}
		if err := b.AddChild(child); err != nil {
			return nil, fmt.Errorf("body %q: %w", bc.Children[i].Name, err)
		}
	}
	return b, nil
}

// SetClock replaces the clock used to sample held keys.
func (s *Scene) SetClock(now func() time.Time) { s.now = now }

// Update advances the scene by one fixed step of dt seconds.
func (s *Scene) Update(dt float64) {
	s.Root.Update(dt)
	s.Ship.Update(dt, s.Keys.Snapshot(s.now()))
}

// Draw paints one frame. Orbit rings sit under the bodies, the ship above.
func (s *Scene) Draw(ctx render.Context) {
	ctx.Clear(s.background)
	ctx.Save()
	ctx.Translate(s.width/2, s.height/2)
	if s.showOrbits {
		s.Root.DrawOrbits(ctx, s.orbitColor)
	}
	s.Root.Draw(ctx)
	ctx.Restore()
	s.Ship.Draw(ctx)
}

// Reset returns every body and the ship to their starting state.
func (s *Scene) Reset() {
	s.Root.Reset()
	s.Ship.Reset()
	s.Keys.ReleaseAll()
}

func (s *Scene) ToggleOrbits()    { s.showOrbits = !s.showOrbits }
func (s *Scene) ShowOrbits() bool { return s.showOrbits }

// Bodies lists every body in pre-order.
func (s *Scene) Bodies() []*orbit.Body {
	var out []*orbit.Body
	s.Root.Walk(func(b *orbit.Body) bool {
		out = append(out, b)
		return true
	})
	return out
}

// Size is the logical canvas size.
func (s *Scene) Size() (float64, float64) { return s.width, s.height }

// Position is a body's centre in canvas coordinates.
func (s *Scene) Position(b *orbit.Body) (float64, float64) {
	x, y := b.WorldPosition()
	return x + s.width/2, y + s.height/2
}

func (s *Scene) Background() colorful.Color { return s.background }
