package config

import (
	"math"
	"sort"
)

// Speeds in the solar preset are the classic per-frame increments (0.01,
// 0.05, 0.008 rad) expressed per second at 60 Hz.
func solar() *Config {
	return &Config{
		Name:       "solar",
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: "black",
		OrbitColor: "#303040",
		ShowOrbits: false,
		Loop:       defaultLoop(),
		Input:      InputConfig{HoldMs: DefaultHoldMs},
		Ship:       defaultShip(),
		Root: BodyConfig{
			Name: "sun", Radius: 50, Color: "yellow",
			Children: []BodyConfig{
				{
					Name: "earth", Radius: 20, Color: "blue", OrbitRadius: 200, OrbitSpeed: 0.6,
					Children: []BodyConfig{
						{Name: "moon", Radius: 5, Color: "grey", OrbitRadius: 40, OrbitSpeed: 3.0},
					},
				},
				{Name: "mars", Radius: 15, Color: "red", OrbitRadius: 300, OrbitSpeed: 0.48},
			},
		},
	}
}

func binary() *Config {
	cfg := solar()
	cfg.Name = "binary"
	cfg.ShowOrbits = true
	cfg.Root = BodyConfig{
		Name: "barycentre", Radius: 0,
		Children: []BodyConfig{
			{Name: "alpha", Radius: 30, Color: "orange", OrbitRadius: 70, OrbitSpeed: 0.9},
			{Name: "beta", Radius: 22, Color: "gold", OrbitRadius: 70, OrbitSpeed: 0.9, InitialAngle: math.Pi},
			{
				Name: "tatooine", Radius: 14, Color: "tan", OrbitRadius: 260, OrbitSpeed: 0.25,
				Children: []BodyConfig{
					{Name: "ghomrassen", Radius: 4, Color: "grey", OrbitRadius: 30, OrbitSpeed: 2.2},
				},
			},
		},
	}
	return cfg
}

func jovian() *Config {
	cfg := solar()
	cfg.Name = "jovian"
	cfg.ShowOrbits = true
	cfg.Root = BodyConfig{
		Name: "jupiter", Radius: 45, Color: "tan",
		Children: []BodyConfig{
			{Name: "io", Radius: 5, Color: "gold", OrbitRadius: 80, OrbitSpeed: 2.0},
			{Name: "europa", Radius: 4, Color: "wheat", OrbitRadius: 120, OrbitSpeed: 1.0, InitialAngle: 1},
			{Name: "ganymede", Radius: 7, Color: "silver", OrbitRadius: 180, OrbitSpeed: 0.5, InitialAngle: 2},
			{Name: "callisto", Radius: 6, Color: "darkgrey", OrbitRadius: 280, OrbitSpeed: 0.2, InitialAngle: 4},
		},
	}
	return cfg
}

func defaultLoop() LoopConfig {
	return LoopConfig{
		StepHz:       DefaultStepHz,
		MaxSteps:     DefaultMaxSteps,
		FPSSmoothing: DefaultFPSSmoothing,
		TargetFPS:    DefaultTargetFPS,
	}
}

func defaultShip() ShipConfig {
	return ShipConfig{
		X: 160, Y: 600, Heading: -math.Pi / 2,
		Speed: 240, TurnRate: 3.5, Size: 14,
		Color: "white",
	}
}

var Presets = map[string]func() *Config{
	"solar":  solar,
	"binary": binary,
	"jovian": jovian,
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
