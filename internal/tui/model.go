// Package tui runs the scene in a terminal with bubbletea.
//
// The orbit view is rasterised into a braille canvas on the left; a stats
// panel with an FPS chart sits on the right. Terminals report key presses
// but not releases, so flight controls rely on the press-and-hold window
// of input.Keys.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/frame"
	"github.com/san-kum/orrery/internal/input"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/render"
	"github.com/san-kum/orrery/internal/scene"
)

const (
	panelWidth      = 42
	defaultCols     = 80
	defaultRows     = 24
	minCols         = 10
	minRows         = 5
	historyCapacity = 120
	capLogInterval  = time.Second
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	keymap      = input.DefaultKeymap()
)

type TickMsg time.Time

// Model is the bubbletea model. The scene, scheduler and canvas are shared
// between copies.
type Model struct {
	scene     *scene.Scene
	sched     *frame.Scheduler
	canvas    *render.Braille
	name      string
	targetFPS int

	theme    int
	styles   styles
	fps      []float64
	last     frame.Result
	showHelp bool
}

func NewModel(cfg *config.Config) (Model, error) {
	sc, err := scene.New(cfg)
	if err != nil {
		return Model{}, err
	}
	sched, err := frame.New(cfg.FrameConfig())
	if err != nil {
		return Model{}, err
	}

	m := Model{
		scene:     sc,
		sched:     sched,
		canvas:    render.NewBraille(defaultCols, defaultRows),
		name:      cfg.Name,
		targetFPS: cfg.Loop.TargetFPS,
		styles:    newStyles(Themes[0]),
		fps:       make([]float64, 0, historyCapacity),
	}
	m.canvas.SetViewport(sc.Size())
	sched.AddObserver(metrics.NewCapLog(nil, capLogInterval))
	return m, nil
}

// WithTheme returns m using the named theme.
func (m Model) WithTheme(name string) (Model, error) {
	i, err := themeIndex(name)
	if err != nil {
		return m, err
	}
	m.theme = i
	m.styles = newStyles(Themes[i])
	return m, nil
}

func (m Model) Scene() *scene.Scene         { return m.scene }
func (m Model) Scheduler() *frame.Scheduler { return m.sched }
func (m Model) Canvas() *render.Braille     { return m.canvas }
func (m Model) Theme() Theme                { return Themes[m.theme] }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.targetFPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if a, ok := keymap.Lookup(key); ok {
		m.scene.Keys.Press(a, time.Now())
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.sched.TogglePause()
	case "r":
		m.scene.Reset()
		m.sched.Reset()
		m.fps = m.fps[:0]
	case "o":
		m.scene.ToggleOrbits()
	case "+", "=":
		m.sched.SetTimeScale(m.sched.TimeScale() * 2)
	case "-", "_":
		m.sched.SetTimeScale(m.sched.TimeScale() / 2)
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
		m.styles = newStyles(Themes[m.theme])
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// resize fits the canvas to whatever the stats panel leaves free.
func (m *Model) resize(w, h int) {
	cols := w - panelWidth - 3
	rows := h - 1
	if cols < minCols {
		cols = minCols
	}
	if rows < minRows {
		rows = minRows
	}
	m.canvas.Resize(cols, rows)
	m.canvas.SetViewport(m.scene.Size())
}

func (m *Model) step(now time.Time) {
	m.last = m.sched.Frame(now, frame.Funcs{
		UpdateFunc: m.scene.Update,
		RenderFunc: m.draw,
	})

	if fps := m.sched.Stats().FPS; fps > 0 {
		m.fps = append(m.fps, fps)
		if len(m.fps) > historyCapacity {
			m.fps = m.fps[1:]
		}
	}
}

func (m *Model) draw() {
	m.scene.Draw(m.canvas)
}

func (m Model) View() string {
	main := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(colorize(m.canvas)),
		m.styles.stats.Render(m.panel()),
	)
	if m.showHelp {
		return helpText + "\n" + main
	}
	return main
}

func (m Model) panel() string {
	st := m.sched.Stats()
	ss := m.styles

	var s strings.Builder
	s.WriteString(ss.header.Render(strings.ToUpper(m.name)) + "\n")

	status := "RUNNING"
	switch {
	case m.sched.Paused():
		status = ss.paused.Render("PAUSED")
	case m.last.Capped:
		status = ss.warn.Render("CATCHING UP")
	}
	s.WriteString(status + "\n")

	if len(m.fps) > 1 {
		chart := asciigraph.Plot(m.fps, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("FPS"))
		s.WriteString(ss.graph.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(ss.label.Render(label) + ss.value.Render(value) + "\n")
	}
	row("FPS", fmt.Sprintf("%.1f", st.FPS))
	row("Time", fmt.Sprintf("%.2fs", st.SimTime))
	row("Steps", fmt.Sprintf("%d (%d this frame)", st.Steps, m.last.Steps))
	row("Capped", fmt.Sprintf("%d frames, %v lost", st.CappedFrames, st.Dropped.Round(time.Millisecond)))
	row("Scale", fmt.Sprintf("x%g", m.sched.TimeScale()))
	row("Alpha", fmt.Sprintf("%.2f", m.sched.Alpha()))

	sh := m.scene.Ship
	row("Ship", fmt.Sprintf("%.0f, %.0f", sh.X, sh.Y))
	row("Heading", fmt.Sprintf("%.0f°", sh.Heading*180/math.Pi))

	s.WriteString(ss.help.Render("─────────────────────\nARROWS/WASD:Fly  SP:Pause\nR:Reset  O:Orbits  +/-:Speed\nT:Theme  ?:Help  Q:Quit"))
	return s.String()
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  ←/A →/D  - Turn ship                ║
║  ↑/W      - Thrust                   ║
║  ↓/S      - Reverse                  ║
║  Space    - Pause/Resume             ║
║  R        - Reset scene              ║
║  O        - Toggle orbit rings       ║
║  + / -    - Faster / slower time     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`

// colorize renders the canvas with one foreground escape per run of
// same-colored cells.
func colorize(b *render.Braille) string {
	var out strings.Builder
	var run strings.Builder
	for y, line := range b.Grid {
		var cur colorful.Color
		lit := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if lit {
				out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cur.Hex())).Render(run.String()))
			} else {
				out.WriteString(run.String())
			}
			run.Reset()
		}
		for x, r := range line {
			on := r != blankCell
			c := b.Colors[y][x]
			if on != lit || (on && c != cur) {
				flush()
				lit, cur = on, c
			}
			run.WriteRune(r)
		}
		flush()
		if y < len(b.Grid)-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

const blankCell rune = 0x2800
