// Package ebitenui runs the scene in an ebiten window.
//
// Ebiten normally calls Update at a fixed TPS of its own. The game sets
// SyncWithFPS so Update and Draw arrive once per display frame and the
// frame scheduler decides how many simulation steps each frame gets.
package ebitenui

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/frame"
	"github.com/san-kum/orrery/internal/input"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/render"
	"github.com/san-kum/orrery/internal/scene"
)

var keyCodes = map[string]ebiten.Key{
	"left":  ebiten.KeyArrowLeft,
	"right": ebiten.KeyArrowRight,
	"up":    ebiten.KeyArrowUp,
	"down":  ebiten.KeyArrowDown,
	"a":     ebiten.KeyA,
	"d":     ebiten.KeyD,
	"w":     ebiten.KeyW,
	"s":     ebiten.KeyS,
}

type Game struct {
	Scene  *scene.Scene
	Sched  *frame.Scheduler
	Name   string
	keymap input.Keymap
	canvas *Canvas
	screen *ebiten.Image
	last   frame.Result
}

func NewGame(cfg *config.Config) (*Game, error) {
	sc, err := scene.New(cfg)
	if err != nil {
		return nil, err
	}
	sched, err := frame.New(cfg.FrameConfig())
	if err != nil {
		return nil, err
	}
	sched.AddObserver(metrics.NewCapLog(nil, time.Second))
	return &Game{
		Scene:  sc,
		Sched:  sched,
		Name:   cfg.Name,
		keymap: input.DefaultKeymap(),
		canvas: NewCanvas(),
	}, nil
}

// Run opens a window sized to the scene and blocks until it is closed.
func Run(cfg *config.Config) error {
	g, err := NewGame(cfg)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
	ebiten.SetWindowTitle("orrery :: " + cfg.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	log.Printf("ebiten: %s, step %v, cap %d", cfg.Name, cfg.Step(), cfg.Loop.MaxSteps)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	st := g.Sched.Stats()
	log.Printf("ebiten: %d frames, %d steps, %d capped", st.Frames, st.Steps, st.CappedFrames)
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	var held input.Snapshot
	for name, action := range g.keymap {
		if key, ok := keyCodes[name]; ok && ebiten.IsKeyPressed(key) {
			held[action] = true
		}
	}
	for _, action := range input.Actions() {
		g.Scene.Keys.Set(action, held[action])
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.Sched.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.Scene.Reset()
		g.Sched.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.Scene.ToggleOrbits()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		g.Sched.SetTimeScale(g.Sched.TimeScale() * 2)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		g.Sched.SetTimeScale(g.Sched.TimeScale() / 2)
	}
	return nil
}

// Draw is the animation callback: it feeds the scheduler, which steps the
// scene and then renders it into screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.screen = screen
	g.last = g.Sched.Frame(time.Now(), frame.Funcs{UpdateFunc: g.Scene.Update, RenderFunc: g.render})
}

func (g *Game) render() {
	b := g.screen.Bounds()
	w, h := g.Scene.Size()
	g.canvas.begin(g.screen, render.FitViewport(w, h, float64(b.Dx()), float64(b.Dy())))
	g.Scene.Draw(g.canvas)
	g.drawHUD()
}

func (g *Game) drawHUD() {
	st := g.Sched.Stats()
	status := "RUNNING"
	switch {
	case g.Sched.Paused():
		status = "PAUSED"
	case g.last.Capped:
		status = "CATCHING UP"
	}
	ebitenutil.DebugPrint(g.screen, fmt.Sprintf("orrery :: %s  %s\n%.0f FPS  t=%.1fs  x%g  steps %d  capped %d\n[ARROWS/WASD] FLY [SPACE] PAUSE [R] RESET [O] ORBITS [+/-] SPEED [Q] QUIT",
		g.Name, status, st.FPS, st.SimTime, g.Sched.TimeScale(), st.Steps, st.CappedFrames))
}

// Layout uses the window's own size; the scene is letterboxed into it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
