package tui

import (
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/metrics"
)

// Options are the terminal-only settings.
type Options struct {
	// LogPath receives log output. The terminal owns stdout, so logs are
	// discarded when it is empty.
	LogPath string
	// MetricsPath, when set, receives the frame counters in Prometheus text
	// format on exit.
	MetricsPath string
	// Theme names the starting theme; empty means the first one.
	Theme string
}

// Run blocks until the user quits.
func Run(cfg *config.Config, opts Options) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	if m, err = m.WithTheme(opts.Theme); err != nil {
		return err
	}

	if opts.LogPath != "" {
		f, err := tea.LogToFile(opts.LogPath, "orrery")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	var col *metrics.Collector
	if opts.MetricsPath != "" {
		col = metrics.NewCollector()
		m.sched.AddObserver(col.Loop(cfg.Name, "tui"))
	}
	log.Printf("starting %s: %d bodies, step %v, cap %d", cfg.Name, len(m.scene.Bodies()), cfg.Step(), cfg.Loop.MaxSteps)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	if col != nil {
		return col.WriteFile(opts.MetricsPath)
	}
	return nil
}
