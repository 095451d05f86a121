// Package frame implements the fixed-timestep frame scheduler that decouples
// simulation rate from display rate.
//
// Each call to [Scheduler.Frame] is one animation callback: elapsed wall time
// is added to an accumulator, the simulation is advanced in fixed steps while
// the accumulator covers a whole step (at most MaxSteps per callback), and the
// scene is rendered exactly once.
package frame

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidStep indicates a non-positive fixed step.
	ErrInvalidStep = errors.New("frame: step must be positive")

	// ErrInvalidCap indicates a step cap below one update per frame.
	ErrInvalidCap = errors.New("frame: max steps must be at least 1")

	// ErrInvalidSmoothing indicates an FPS smoothing factor outside (0, 1].
	ErrInvalidSmoothing = errors.New("frame: fps smoothing must be in (0, 1]")
)

const (
	MinTimeScale = 0.1
	MaxTimeScale = 8.0
)

// Simulation is advanced and drawn by the scheduler.
type Simulation interface {
	Update(dt float64)
	Render()
}

// Funcs adapts a pair of functions to Simulation.
type Funcs struct {
	UpdateFunc func(dt float64)
	RenderFunc func()
}

func (f Funcs) Update(dt float64) {
	if f.UpdateFunc != nil {
		f.UpdateFunc(dt)
	}
}

func (f Funcs) Render() {
	if f.RenderFunc != nil {
		f.RenderFunc()
	}
}

// Observer is told about every completed callback, after the render.
type Observer interface {
	ObserveFrame(now time.Time, res Result, st Stats)
}

type Config struct {
	Step         time.Duration
	MaxSteps     int
	FPSSmoothing float64
}

func DefaultConfig() Config {
	return Config{
		Step:         time.Second / 60,
		MaxSteps:     5,
		FPSSmoothing: 0.1,
	}
}

func (c Config) Validate() error {
	if c.Step <= 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidStep, c.Step)
	}
	if c.MaxSteps < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidCap, c.MaxSteps)
	}
	if !(c.FPSSmoothing > 0 && c.FPSSmoothing <= 1) {
		return fmt.Errorf("%w, got %g", ErrInvalidSmoothing, c.FPSSmoothing)
	}
	return nil
}

// Result describes a single callback.
type Result struct {
	Steps   int
	Capped  bool
	Dropped time.Duration
}

// Stats accumulates over the scheduler's lifetime (until Reset).
type Stats struct {
	Frames       int
	Steps        int
	CappedFrames int
	Dropped      time.Duration
	SimTime      float64
	FPS          float64
}

type Scheduler struct {
	cfg       Config
	acc       time.Duration
	last      time.Time
	started   bool
	paused    bool
	timeScale float64
	stats     Stats
	observers []Observer
}

func New(cfg Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{cfg: cfg, timeScale: 1}, nil
}

func (s *Scheduler) Config() Config { return s.cfg }

// AddObserver registers o for every later callback. Not safe to call while
// Frame runs on another goroutine.
func (s *Scheduler) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *Scheduler) notify(now time.Time, res Result) {
	for _, o := range s.observers {
		o.ObserveFrame(now, res, s.stats)
	}
}

// Frame runs one animation callback at wall time now.
func (s *Scheduler) Frame(now time.Time, sim Simulation) Result {
	var res Result

	if !s.started {
		s.started = true
		s.last = now
		s.stats.Frames++
		sim.Render()
		s.notify(now, res)
		return res
	}

	elapsed := now.Sub(s.last)
	s.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	s.observeFPS(elapsed)

	if !s.paused {
		s.acc += time.Duration(float64(elapsed) * s.timeScale)
	}

	dt := s.cfg.Step.Seconds()
	for s.acc >= s.cfg.Step && res.Steps < s.cfg.MaxSteps {
		sim.Update(dt)
		s.acc -= s.cfg.Step
		res.Steps++
	}

	if s.acc >= s.cfg.Step {
		// Runaway: the simulation cannot keep up, so the backlog is dropped
		// rather than carried into the next callback.
		res.Capped = true
		res.Dropped = s.acc
		s.acc = 0
		s.stats.CappedFrames++
		s.stats.Dropped += res.Dropped
	}

	s.stats.Frames++
	s.stats.Steps += res.Steps
	s.stats.SimTime = float64(s.stats.Steps) * dt

	sim.Render()
	s.notify(now, res)
	return res
}

func (s *Scheduler) observeFPS(elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	inst := float64(time.Second) / float64(elapsed)
	if s.stats.FPS == 0 {
		s.stats.FPS = inst
		return
	}
	s.stats.FPS += s.cfg.FPSSmoothing * (inst - s.stats.FPS)
}

// Run drives Frame from a tick source until ctx is done or ticks is closed.
func (s *Scheduler) Run(ctx context.Context, ticks <-chan time.Time, sim Simulation) (Stats, error) {
	for {
		select {
		case <-ctx.Done():
			return s.stats, ctx.Err()
		case now, ok := <-ticks:
			if !ok {
				return s.stats, nil
			}
			s.Frame(now, sim)
		}
	}
}

// Alpha is the fraction of a step left in the accumulator, in [0, 1).
func (s *Scheduler) Alpha() float64 {
	return float64(s.acc) / float64(s.cfg.Step)
}

func (s *Scheduler) Stats() Stats     { return s.stats }
func (s *Scheduler) Paused() bool     { return s.paused }
func (s *Scheduler) SetPaused(p bool) { s.paused = p }
func (s *Scheduler) TogglePause()     { s.paused = !s.paused }

func (s *Scheduler) TimeScale() float64 { return s.timeScale }

// SetTimeScale sets the wall-to-simulation time ratio, clamped to
// [MinTimeScale, MaxTimeScale].
func (s *Scheduler) SetTimeScale(k float64) {
	if k < MinTimeScale {
		k = MinTimeScale
	}
	if k > MaxTimeScale {
		k = MaxTimeScale
	}
	s.timeScale = k
}

// Reset forgets the last timestamp, the accumulator and the stats. Pause and
// time scale are kept.
func (s *Scheduler) Reset() {
	s.acc = 0
	s.started = false
	s.last = time.Time{}
	s.stats = Stats{}
}
