// Package gui runs the scene in a raylib window.
package gui

import (
	"fmt"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/frame"
	"github.com/san-kum/orrery/internal/input"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/render"
	"github.com/san-kum/orrery/internal/scene"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColWarn    = rl.NewColor(255, 170, 0, 255)
)

var keyCodes = map[string]int32{
	"left":  rl.KeyLeft,
	"right": rl.KeyRight,
	"up":    rl.KeyUp,
	"down":  rl.KeyDown,
	"a":     rl.KeyA,
	"d":     rl.KeyD,
	"w":     rl.KeyW,
	"s":     rl.KeyS,
}

type App struct {
	Scene  *scene.Scene
	Sched  *frame.Scheduler
	Name   string
	keymap input.Keymap
	canvas Canvas
	last   frame.Result
	quit   bool
}

func NewApp(cfg *config.Config) (*App, error) {
	sc, err := scene.New(cfg)
	if err != nil {
		return nil, err
	}
	sched, err := frame.New(cfg.FrameConfig())
	if err != nil {
		return nil, err
	}
	sched.AddObserver(metrics.NewCapLog(nil, time.Second))
	return &App{
		Scene:  sc,
		Sched:  sched,
		Name:   cfg.Name,
		keymap: input.DefaultKeymap(),
	}, nil
}

// Run opens a window sized to the scene and blocks until it is closed.
func Run(cfg *config.Config) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "orrery :: "+cfg.Name)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Loop.TargetFPS))
	rl.SetExitKey(0)

	log.Printf("raylib: %s, step %v, cap %d", cfg.Name, cfg.Step(), cfg.Loop.MaxSteps)
	app.RunLoop()
	st := app.Sched.Stats()
	log.Printf("raylib: %d frames, %d steps, %d capped", st.Frames, st.Steps, st.CappedFrames)
	return nil
}

func (a *App) RunLoop() {
	sim := frame.Funcs{UpdateFunc: a.Scene.Update, RenderFunc: a.Draw}
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.last = a.Sched.Frame(time.Now(), sim)
	}
}

// Update polls the keyboard. Flight keys report real up/down state here, so
// the press-and-hold window is not needed.
func (a *App) Update() {
	var held input.Snapshot
	for name, action := range a.keymap {
		if code, ok := keyCodes[name]; ok && rl.IsKeyDown(code) {
			held[action] = true
		}
	}
	for _, action := range input.Actions() {
		a.Scene.Keys.Set(action, held[action])
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ), rl.IsKeyPressed(rl.KeyEscape):
		a.quit = true
	case rl.IsKeyPressed(rl.KeySpace):
		a.Sched.TogglePause()
	case rl.IsKeyPressed(rl.KeyR):
		a.Scene.Reset()
		a.Sched.Reset()
	case rl.IsKeyPressed(rl.KeyO):
		a.Scene.ToggleOrbits()
	case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
		a.Sched.SetTimeScale(a.Sched.TimeScale() * 2)
	case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
		a.Sched.SetTimeScale(a.Sched.TimeScale() / 2)
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()

	w, h := a.Scene.Size()
	a.canvas.begin(render.FitViewport(w, h, float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())))
	a.Scene.Draw(&a.canvas)
	a.canvas.end()

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	st := a.Sched.Stats()
	sh := int32(rl.GetScreenHeight())

	rl.DrawText("orrery", 30, 30, 24, ColSelect)
	rl.DrawText(":: "+a.Name, 124, 36, 16, ColText)

	status, col := "RUNNING", ColSelect
	switch {
	case a.Sched.Paused():
		status, col = "PAUSED", ColTextDim
	case a.last.Capped:
		status, col = "CATCHING UP", ColWarn
	}
	rl.DrawText(status, int32(rl.GetScreenWidth())-160, 30, 16, col)

	rl.DrawText(fmt.Sprintf("%.0f FPS  t=%.1fs  x%g  steps %d  capped %d", st.FPS, st.SimTime, a.Sched.TimeScale(), st.Steps, st.CappedFrames), 30, sh-40, 14, ColTextDim)
	rl.DrawText("[ARROWS/WASD] FLY  [SPACE] PAUSE  [R] RESET  [O] ORBITS  [+/-] SPEED  [Q] QUIT", 30, sh-20, 14, ColTextDim)
}
