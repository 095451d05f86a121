package render

import (
	"errors"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownColor is returned for a color that is neither a known name nor hex.
var ErrUnknownColor = errors.New("render: unknown color")

// named covers the CSS keywords the scene presets use, plus a few neighbours.
var named = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"grey":      "#808080",
	"gray":      "#808080",
	"lightgrey": "#d3d3d3",
	"lightgray": "#d3d3d3",
	"darkgrey":  "#a9a9a9",
	"darkgray":  "#a9a9a9",
	"silver":    "#c0c0c0",
	"red":       "#ff0000",
	"darkred":   "#8b0000",
	"orange":    "#ffa500",
	"gold":      "#ffd700",
	"yellow":    "#ffff00",
	"green":     "#008000",
	"lime":      "#00ff00",
	"teal":      "#008080",
	"cyan":      "#00ffff",
	"lightblue": "#add8e6",
	"skyblue":   "#87ceeb",
	"blue":      "#0000ff",
	"navy":      "#000080",
	"purple":    "#800080",
	"magenta":   "#ff00ff",
	"pink":      "#ffc0cb",
	"brown":     "#a52a2a",
	"tan":       "#d2b48c",
	"wheat":     "#f5deb3",
}

// ParseColor accepts a CSS color keyword or a #rrggbb / #rgb hex string.
func ParseColor(s string) (colorful.Color, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := named[key]; ok {
		key = hex
	}
	if !strings.HasPrefix(key, "#") {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	c, err := colorful.Hex(key)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	return c, nil
}

// MustColor is ParseColor for literals known to be valid.
func MustColor(s string) colorful.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
