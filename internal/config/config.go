package config

import (
	"fmt"
	"math"
	"os"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/frame"
	"github.com/san-kum/orrery/internal/render"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth        = 1280.0
	DefaultHeight       = 720.0
	DefaultStepHz       = 60.0
	DefaultMaxSteps     = 5
	DefaultFPSSmoothing = 0.1
	DefaultTargetFPS    = 60
	DefaultHoldMs       = 300
	DefaultPreset       = "solar"

	maxRate = 1000
)

type Config struct {
	Name       string      `yaml:"name"`
	Width      float64     `yaml:"width"`
	Height     float64     `yaml:"height"`
	Background string      `yaml:"background"`
	OrbitColor string      `yaml:"orbit_color"`
	ShowOrbits bool        `yaml:"show_orbits"`
	Loop       LoopConfig  `yaml:"loop"`
	Input      InputConfig `yaml:"input"`
	Ship       ShipConfig  `yaml:"ship"`
	Root       BodyConfig  `yaml:"bodies"`
}

type LoopConfig struct {
	StepHz       float64 `yaml:"step_hz"`
	MaxSteps     int     `yaml:"max_steps"`
	FPSSmoothing float64 `yaml:"fps_smoothing"`
	TargetFPS    int     `yaml:"target_fps"`
}

type InputConfig struct {
	HoldMs int `yaml:"hold_ms"`
}

type ShipConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Heading  float64 `yaml:"heading"`
	Speed    float64 `yaml:"speed"`
	TurnRate float64 `yaml:"turn_rate"`
	Size     float64 `yaml:"size"`
	Color    string  `yaml:"color"`
}

// BodyConfig describes one body and, recursively, what orbits it.
// OrbitSpeed is in radians per second.
type BodyConfig struct {
	Name         string       `yaml:"name"`
	Radius       float64      `yaml:"radius"`
	Color        string       `yaml:"color,omitempty"`
	OrbitRadius  float64      `yaml:"orbit_radius,omitempty"`
	OrbitSpeed   float64      `yaml:"orbit_speed,omitempty"`
	InitialAngle float64      `yaml:"initial_angle,omitempty"`
	Children     []BodyConfig `yaml:"children,omitempty"`
}

func DefaultConfig() *Config {
	return GetPreset(DefaultPreset)
}

// Load reads a YAML scene. A top-level `preset:` key selects the base the
// file is applied on top of; a `bodies:` key replaces the whole tree.
func Load(path string) (*Config, error) {
	return LoadOnto(path, "")
}

// LoadOnto is Load with the base preset chosen by the caller. A non-empty
// preset wins over the file's `preset:` key.
func LoadOnto(path, preset string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOnto(data, preset)
}

func Parse(data []byte) (*Config, error) {
	return ParseOnto(data, "")
}

func ParseOnto(data []byte, preset string) (*Config, error) {
	var probe struct {
		Preset string    `yaml:"preset"`
		Bodies yaml.Node `yaml:"bodies"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	base := DefaultPreset
	switch {
	case preset != "":
		base = preset
	case probe.Preset != "":
		base = probe.Preset
	}
	cfg := GetPreset(base)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, base, ListPresets())
	}
	if probe.Bodies.Kind != 0 {
		cfg.Root = BodyConfig{}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Root = c.Root.clone()
	return &cp
}

func (b BodyConfig) clone() BodyConfig {
	cp := b
	if b.Children != nil {
		cp.Children = make([]BodyConfig, len(b.Children))
		for i, ch := range b.Children {
			cp.Children[i] = ch.clone()
		}
	}
	return cp
}

// Walk visits the body tree in pre-order.
func (b *BodyConfig) Walk(fn func(*BodyConfig)) {
	fn(b)
	for i := range b.Children {
		b.Children[i].Walk(fn)
	}
}

// Step is the fixed simulation step.
func (c *Config) Step() time.Duration {
	return time.Duration(float64(time.Second) / c.Loop.StepHz)
}

// Hold is how long a terminal key press counts as held.
func (c *Config) Hold() time.Duration {
	return time.Duration(c.Input.HoldMs) * time.Millisecond
}

func (c *Config) FrameConfig() frame.Config {
	return frame.Config{
		Step:         c.Step(),
		MaxSteps:     c.Loop.MaxSteps,
		FPSSmoothing: c.Loop.FPSSmoothing,
	}
}

// BodyColor resolves a body color; an empty color means white.
func (b *BodyConfig) BodyColor() (colorful.Color, error) {
	if b.Color == "" {
		return render.MustColor("white"), nil
	}
	return render.ParseColor(b.Color)
}

func (c *Config) Validate() error {
	if !finite(c.Width, c.Height) || c.Width <= 0 || c.Height <= 0 {
		return invalid("canvas must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.Loop.StepHz <= 0 || c.Loop.StepHz > maxRate || math.IsNaN(c.Loop.StepHz) {
		return invalid("loop.step_hz must be in (0, %d], got %g", maxRate, c.Loop.StepHz)
	}
	if c.Loop.MaxSteps < 1 || c.Loop.MaxSteps > maxRate {
		return invalid("loop.max_steps must be in [1, %d], got %d", maxRate, c.Loop.MaxSteps)
	}
	if c.Loop.TargetFPS < 1 || c.Loop.TargetFPS > maxRate {
		return invalid("loop.target_fps must be in [1, %d], got %d", maxRate, c.Loop.TargetFPS)
	}
	if err := c.FrameConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Input.HoldMs < 0 {
		return invalid("input.hold_ms must not be negative, got %d", c.Input.HoldMs)
	}
	if !finite(c.Ship.X, c.Ship.Y, c.Ship.Heading, c.Ship.Speed, c.Ship.TurnRate, c.Ship.Size) {
		return invalid("ship values must be finite")
	}
	if c.Ship.Speed < 0 || c.Ship.TurnRate < 0 {
		return invalid("ship speed and turn rate must not be negative")
	}
	if c.Ship.Size <= 0 {
		return invalid("ship.size must be positive, got %g", c.Ship.Size)
	}
	for field, col := range map[string]string{
		"background":  c.Background,
		"orbit_color": c.OrbitColor,
		"ship.color":  c.Ship.Color,
	} {
		if _, err := render.ParseColor(col); err != nil {
			return invalid("%s: %v", field, err)
		}
	}
	return c.validateBodies()
}

func (c *Config) validateBodies() error {
	seen := make(map[string]bool)
	var err error
	c.Root.Walk(func(b *BodyConfig) {
		if err != nil {
			return
		}
		switch {
		case b.Name == "":
			err = invalid("every body needs a name")
		case seen[b.Name]:
			err = invalid("duplicate body name %q", b.Name)
		case !finite(b.Radius, b.OrbitRadius, b.OrbitSpeed, b.InitialAngle):
			err = invalid("body %q: values must be finite", b.Name)
		case b.Radius < 0:
			err = invalid("body %q: radius must not be negative", b.Name)
		case b.OrbitRadius < 0:
			err = invalid("body %q: orbit_radius must not be negative", b.Name)
		}
		if err != nil {
			return
		}
		seen[b.Name] = true
		if _, cerr := b.BodyColor(); cerr != nil {
			err = invalid("body %q: %v", b.Name, cerr)
		}
	})
	return err
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
