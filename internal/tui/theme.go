package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var ErrUnknownTheme = errors.New("tui: unknown theme")

// Theme defines the panel colors. Scene colors come from the config.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Graph   lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeDeepSpace = Theme{
		Name:    "deepspace",
		Primary: lipgloss.Color("#7aa2f7"),
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0e6ff"),
		Muted:   lipgloss.Color("#565f89"),
		Border:  lipgloss.Color("#3b4261"),
		Graph:   lipgloss.Color("#73daca"),
		Warning: lipgloss.Color("#ff9e64"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Border:  lipgloss.Color("#003300"),
		Graph:   lipgloss.Color("#00cc00"),
		Warning: lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Border:  lipgloss.Color("#444444"),
		Graph:   lipgloss.Color("#cccccc"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Primary: lipgloss.Color("#ff6b6b"),
		Accent:  lipgloss.Color("#feca57"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Border:  lipgloss.Color("#4a2f4b"),
		Graph:   lipgloss.Color("#ff9ff3"),
		Warning: lipgloss.Color("#ffc048"),
	}

	Themes = []Theme{
		ThemeDeepSpace,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// themeIndex finds a theme by name. The empty name is the first theme.
func themeIndex(name string) (int, error) {
	if name == "" {
		return 0, nil
	}
	for i, t := range Themes {
		if t.Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s (available: %s)", ErrUnknownTheme, name, strings.Join(ThemeNames(), ", "))
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

type styles struct {
	stats  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style
	warn   lipgloss.Style
	paused lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(1, 2).
			Width(panelWidth),
		header: lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		graph:  lipgloss.NewStyle().Foreground(t.Graph).Padding(1, 0),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		warn:   lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		paused: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
	}
}
