// Package bench drives the frame loop from a synthetic display clock, so
// step counts and cap behaviour are reproducible for a given rate.
package bench

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/frame"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/render"
	"github.com/san-kum/orrery/internal/scene"
)

var ErrInvalidOptions = errors.New("bench: invalid options")

// MaxFrames bounds a run. Ticks and per-frame step counts are buffered for
// the whole run.
const MaxFrames = 1 << 20

type Options struct {
	Frames     int
	FPS        float64
	StallEvery int           // 0 disables stalls
	Stall      time.Duration // extra gap before every StallEvery-th frame
	Cols, Rows int           // braille canvas each frame is drawn into

	// Metrics, when set, gets one series per display rate.
	Metrics *metrics.Collector
}

func DefaultOptions() Options {
	return Options{Frames: 600, FPS: 60, Stall: 250 * time.Millisecond, Cols: 120, Rows: 40}
}

func (o Options) Validate() error {
	switch {
	case o.Frames < 1 || o.Frames > MaxFrames:
		return fmt.Errorf("%w: frames must be in [1, %d], got %d", ErrInvalidOptions, MaxFrames, o.Frames)
	case o.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %g", ErrInvalidOptions, o.FPS)
	case o.StallEvery < 0 || o.Stall < 0:
		return fmt.Errorf("%w: stalls must not be negative", ErrInvalidOptions)
	}
	return nil
}

// Report is one run at one display rate.
type Report struct {
	FPS           float64
	Stats         frame.Stats
	Wall          time.Duration
	StepsPerFrame []float64
}

// FramesPerSecond is how fast frames were processed in wall time.
func (r *Report) FramesPerSecond() float64 {
	if r.Wall <= 0 {
		return 0
	}
	return float64(r.Stats.Frames) / r.Wall.Seconds()
}

// recorder counts the updates each render sees and rasterises every frame.
type recorder struct {
	scene    *scene.Scene
	canvas   *render.Braille
	pending  int
	perFrame []float64
}

func (r *recorder) Update(dt float64) {
	r.scene.Update(dt)
	r.pending++
}

func (r *recorder) Render() {
	r.scene.Draw(r.canvas)
	r.perFrame = append(r.perFrame, float64(r.pending))
	r.pending = 0
}

// Ticks returns the display timestamps for opts, starting at the Unix epoch.
// opts must pass Validate.
func Ticks(opts Options) <-chan time.Time {
	ticks := make(chan time.Time, opts.Frames)
	now := time.Unix(0, 0)
	interval := time.Duration(float64(time.Second) / opts.FPS)
	for i := 0; i < opts.Frames; i++ {
		if opts.StallEvery > 0 && i > 0 && i%opts.StallEvery == 0 {
			now = now.Add(opts.Stall)
		}
		ticks <- now
		now = now.Add(interval)
	}
	close(ticks)
	return ticks
}

// Run builds a fresh scene from cfg and runs it for opts.Frames frames.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	sc, err := scene.New(cfg)
	if err != nil {
		return nil, err
	}
	sched, err := frame.New(cfg.FrameConfig())
	if err != nil {
		return nil, err
	}

	if opts.Metrics != nil {
		sched.AddObserver(opts.Metrics.Loop(cfg.Name, strconv.FormatFloat(opts.FPS, 'f', -1, 64)))
	}

	canvas := render.NewBraille(opts.Cols, opts.Rows)
	canvas.SetViewport(sc.Size())
	rec := &recorder{scene: sc, canvas: canvas, perFrame: make([]float64, 0, opts.Frames)}

	ticks := Ticks(opts)
	start := time.Now()
	st, err := sched.Run(ctx, ticks, rec)
	if err != nil {
		return nil, err
	}
	return &Report{
		FPS:           opts.FPS,
		Stats:         st,
		Wall:          time.Since(start),
		StepsPerFrame: rec.perFrame,
	}, nil
}

// Sweep runs one independent copy of the scene per display rate, in
// parallel. Reports come back in the order of rates.
func Sweep(ctx context.Context, cfg *config.Config, base Options, rates []float64) ([]*Report, error) {
	reports := make([]*Report, len(rates))
	errs := make([]error, len(rates))

	var wg sync.WaitGroup
	for i, fps := range rates {
		wg.Add(1)
		go func(idx int, fps float64) {
			defer wg.Done()

			opts := base
			opts.FPS = fps
			reports[idx], errs[idx] = Run(ctx, cfg.Clone(), opts)
		}(i, fps)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return reports, nil
}
