package config

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != "solar" {
		t.Errorf("expected preset solar, got %s", cfg.Name)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Step() != time.Second/60 {
		t.Errorf("expected 60 Hz step, got %v", cfg.Step())
	}
	if cfg.Hold() != 300*time.Millisecond {
		t.Errorf("expected 300ms hold, got %v", cfg.Hold())
	}

	var names []string
	cfg.Root.Walk(func(b *BodyConfig) { names = append(names, b.Name) })
	want := []string{"sun", "earth", "moon", "mars"}
	if len(names) != len(want) {
		t.Fatalf("expected bodies %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("body %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s missing", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	a := GetPreset("solar")
	a.Root.Children[0].Radius = 999
	b := GetPreset("solar")
	if b.Root.Children[0].Radius == 999 {
		t.Error("presets must not share state")
	}

	c := b.Clone()
	c.Root.Children[0].Children[0].Name = "luna"
	if b.Root.Children[0].Children[0].Name != "moon" {
		t.Error("clone must be deep")
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte("loop:\n  max_steps: 8\nship:\n  speed: 100\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.Loop.MaxSteps != 8 || cfg.Ship.Speed != 100 {
		t.Errorf("overrides not applied: %+v", cfg.Loop)
	}
	if cfg.Loop.StepHz != DefaultStepHz {
		t.Errorf("unset fields should keep defaults, got step_hz %g", cfg.Loop.StepHz)
	}
	if cfg.Root.Name != "sun" {
		t.Errorf("expected default tree, got root %q", cfg.Root.Name)
	}
}

func TestParseReplacesBodies(t *testing.T) {
	doc := `
preset: jovian
bodies:
  name: star
  radius: 10
  children:
    - name: rock
      radius: 2
      orbit_radius: 50
      orbit_speed: 1
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.Name != "jovian" {
		t.Errorf("expected jovian base, got %s", cfg.Name)
	}
	if cfg.Root.Name != "star" || cfg.Root.Color != "" || len(cfg.Root.Children) != 1 {
		t.Errorf("expected tree to be replaced, got %+v", cfg.Root)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("replaced tree should validate: %v", err)
	}
}

func TestParseUnknownPreset(t *testing.T) {
	_, err := Parse([]byte("preset: andromeda\n"))
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestParseOntoPreset(t *testing.T) {
	doc := []byte("preset: binary\nwidth: 900\n")

	cfg, err := ParseOnto(doc, "jovian")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.Root.Name != "jupiter" {
		t.Errorf("caller preset should win over the file, got root %s", cfg.Root.Name)
	}
	if cfg.Width != 900 {
		t.Errorf("file values should apply on top of the preset, got width %g", cfg.Width)
	}

	cfg, err = ParseOnto(doc, "")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.Root.Name != "barycentre" {
		t.Errorf("empty preset should defer to the file, got root %s", cfg.Root.Name)
	}

	if _, err := ParseOnto(doc, "andromeda"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	cfg := GetPreset("binary")
	cfg.Loop.MaxSteps = 3

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Loop.MaxSteps != 3 || loaded.Root.Name != "barycentre" {
		t.Errorf("loaded config differs: %+v", loaded.Loop)
	}
	if got := len(loaded.Root.Children); got != 3 {
		t.Errorf("expected 3 children, got %d", got)
	}
}

func TestValidateRejectsNonFiniteYAML(t *testing.T) {
	for _, doc := range []string{
		"width: .nan",
		"ship:\n  speed: .nan",
		"bodies:\n  name: sun\n  radius: 10\n  children:\n    - name: p\n      radius: 2\n      orbit_radius: 50\n      orbit_speed: .inf",
	} {
		cfg, err := Parse([]byte(doc))
		if err != nil {
			t.Fatalf("%q: parse failed: %v", doc, err)
		}
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%q: expected ErrInvalidConfig, got %v", doc, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero step rate", func(c *Config) { c.Loop.StepHz = 0 }},
		{"zero cap", func(c *Config) { c.Loop.MaxSteps = 0 }},
		{"zero fps", func(c *Config) { c.Loop.TargetFPS = 0 }},
		{"smoothing above one", func(c *Config) { c.Loop.FPSSmoothing = 2 }},
		{"negative hold", func(c *Config) { c.Input.HoldMs = -1 }},
		{"zero ship size", func(c *Config) { c.Ship.Size = 0 }},
		{"bad ship color", func(c *Config) { c.Ship.Color = "nope" }},
		{"bad background", func(c *Config) { c.Background = "#12" }},
		{"unnamed body", func(c *Config) { c.Root.Children[0].Name = "" }},
		{"duplicate body", func(c *Config) { c.Root.Children[1].Name = "earth" }},
		{"negative radius", func(c *Config) { c.Root.Radius = -1 }},
		{"negative orbit", func(c *Config) { c.Root.Children[0].OrbitRadius = -5 }},
		{"bad body color", func(c *Config) { c.Root.Children[0].Children[0].Color = "plaid" }},
		{"NaN width", func(c *Config) { c.Width = math.NaN() }},
		{"infinite height", func(c *Config) { c.Height = math.Inf(1) }},
		{"NaN smoothing", func(c *Config) { c.Loop.FPSSmoothing = math.NaN() }},
		{"NaN ship speed", func(c *Config) { c.Ship.Speed = math.NaN() }},
		{"infinite ship heading", func(c *Config) { c.Ship.Heading = math.Inf(-1) }},
		{"infinite orbit speed", func(c *Config) { c.Root.Children[0].OrbitSpeed = math.Inf(1) }},
		{"NaN initial angle", func(c *Config) { c.Root.Children[1].InitialAngle = math.NaN() }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}
