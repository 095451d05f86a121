package frame_test

import (
	"context"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/frame"
)

type countingSim struct {
	updates []float64
	renders int
}

func (c *countingSim) Update(dt float64) { c.updates = append(c.updates, dt) }
func (c *countingSim) Render()           { c.renders++ }

type frameLog struct {
	times   []time.Time
	results []frame.Result
	last    frame.Stats
}

func (l *frameLog) ObserveFrame(now time.Time, res frame.Result, st frame.Stats) {
	l.times = append(l.times, now)
	l.results = append(l.results, res)
	l.last = st
}

var _ = Describe("Scheduler", func() {
	const step = 10 * time.Millisecond

	var (
		sched *frame.Scheduler
		sim   *countingSim
		t0    time.Time
	)

	BeforeEach(func() {
		var err error
		sched, err = frame.New(frame.Config{Step: step, MaxSteps: 4, FPSSmoothing: 0.5})
		Expect(err).NotTo(HaveOccurred())
		sim = &countingSim{}
		t0 = time.Unix(1000, 0)
	})

	It("only records the timestamp on the first callback but still renders", func() {
		res := sched.Frame(t0, sim)
		Expect(res.Steps).To(Equal(0))
		Expect(sim.updates).To(BeEmpty())
		Expect(sim.renders).To(Equal(1))
	})

	It("runs one fixed update per whole step of elapsed time", func() {
		sched.Frame(t0, sim)
		res := sched.Frame(t0.Add(30*time.Millisecond), sim)
		Expect(res.Steps).To(Equal(3))
		Expect(sim.updates).To(HaveLen(3))
		for _, dt := range sim.updates {
			Expect(dt).To(BeNumerically("~", 0.01, 1e-12))
		}
		Expect(sim.renders).To(Equal(2))
	})

	It("carries the sub-step remainder into the next callback", func() {
		sched.Frame(t0, sim)
		Expect(sched.Frame(t0.Add(15*time.Millisecond), sim).Steps).To(Equal(1))
		Expect(sched.Alpha()).To(BeNumerically("~", 0.5, 1e-9))
		Expect(sched.Frame(t0.Add(20*time.Millisecond), sim).Steps).To(Equal(1))
		Expect(sched.Alpha()).To(BeNumerically("~", 0, 1e-9))
	})

	It("renders exactly once per callback even with no updates due", func() {
		sched.Frame(t0, sim)
		for i := 1; i <= 5; i++ {
			sched.Frame(t0.Add(time.Duration(i)*time.Millisecond), sim)
		}
		Expect(sim.updates).To(BeEmpty())
		Expect(sim.renders).To(Equal(6))
	})

	It("caps updates per callback and drops the backlog", func() {
		sched.Frame(t0, sim)
		res := sched.Frame(t0.Add(time.Second), sim)
		Expect(res.Steps).To(Equal(4))
		Expect(res.Capped).To(BeTrue())
		Expect(res.Dropped).To(Equal(time.Second - 4*step))
		Expect(sched.Alpha()).To(BeZero())

		// the next normal frame does not inherit the lag
		res = sched.Frame(t0.Add(time.Second+step), sim)
		Expect(res.Steps).To(Equal(1))
		Expect(res.Capped).To(BeFalse())

		stats := sched.Stats()
		Expect(stats.CappedFrames).To(Equal(1))
		Expect(stats.Steps).To(Equal(5))
		Expect(stats.SimTime).To(BeNumerically("~", 0.05, 1e-9))
	})

	It("does not flag a frame that exactly fills the cap", func() {
		sched.Frame(t0, sim)
		res := sched.Frame(t0.Add(4*step), sim)
		Expect(res.Steps).To(Equal(4))
		Expect(res.Capped).To(BeFalse())
	})

	It("treats a clock going backwards as no elapsed time", func() {
		sched.Frame(t0, sim)
		res := sched.Frame(t0.Add(-time.Second), sim)
		Expect(res.Steps).To(Equal(0))
		res = sched.Frame(t0.Add(-time.Second+step), sim)
		Expect(res.Steps).To(Equal(1))
	})

	It("accumulates nothing while paused and does not burst on resume", func() {
		sched.Frame(t0, sim)
		sched.SetPaused(true)
		Expect(sched.Frame(t0.Add(500*time.Millisecond), sim).Steps).To(Equal(0))
		sched.TogglePause()
		Expect(sched.Paused()).To(BeFalse())
		Expect(sched.Frame(t0.Add(500*time.Millisecond+step), sim).Steps).To(Equal(1))
		Expect(sim.renders).To(Equal(3))
	})

	It("scales elapsed time and clamps the scale", func() {
		sched.SetTimeScale(2)
		sched.Frame(t0, sim)
		Expect(sched.Frame(t0.Add(step), sim).Steps).To(Equal(2))

		sched.SetTimeScale(100)
		Expect(sched.TimeScale()).To(Equal(frame.MaxTimeScale))
		sched.SetTimeScale(0)
		Expect(sched.TimeScale()).To(Equal(frame.MinTimeScale))
	})

	It("smooths the frame rate with a moving average", func() {
		sched.Frame(t0, sim)
		sched.Frame(t0.Add(10*time.Millisecond), sim)
		Expect(sched.Stats().FPS).To(BeNumerically("~", 100, 1e-6))
		sched.Frame(t0.Add(30*time.Millisecond), sim)
		// halfway between 100 and 50 with smoothing 0.5
		Expect(sched.Stats().FPS).To(BeNumerically("~", 75, 1e-6))
	})

	It("starts over after Reset", func() {
		sched.Frame(t0, sim)
		sched.Frame(t0.Add(25*time.Millisecond), sim)
		sched.Reset()
		Expect(sched.Stats()).To(Equal(frame.Stats{}))
		Expect(sched.Frame(t0.Add(time.Hour), sim).Steps).To(Equal(0))
	})

	Describe("Run", func() {
		It("drives frames until the tick source closes", func() {
			ticks := make(chan time.Time, 4)
			for i := 0; i < 4; i++ {
				ticks <- t0.Add(time.Duration(i) * step)
			}
			close(ticks)

			stats, err := sched.Run(context.Background(), ticks, sim)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Frames).To(Equal(4))
			Expect(stats.Steps).To(Equal(3))
		})

		It("stops with the context error when cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := sched.Run(ctx, make(chan time.Time), sim)
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	DescribeTable("rejects invalid configuration",
		func(cfg frame.Config, want error) {
			_, err := frame.New(cfg)
			Expect(err).To(MatchError(want))
		},
		Entry("zero step", frame.Config{Step: 0, MaxSteps: 1, FPSSmoothing: 0.1}, frame.ErrInvalidStep),
		Entry("negative step", frame.Config{Step: -step, MaxSteps: 1, FPSSmoothing: 0.1}, frame.ErrInvalidStep),
		Entry("zero cap", frame.Config{Step: step, MaxSteps: 0, FPSSmoothing: 0.1}, frame.ErrInvalidCap),
		Entry("zero smoothing", frame.Config{Step: step, MaxSteps: 1, FPSSmoothing: 0}, frame.ErrInvalidSmoothing),
		Entry("smoothing above one", frame.Config{Step: step, MaxSteps: 1, FPSSmoothing: 1.5}, frame.ErrInvalidSmoothing),
		Entry("NaN smoothing", frame.Config{Step: step, MaxSteps: 1, FPSSmoothing: math.NaN()}, frame.ErrInvalidSmoothing),
	)

	It("notifies observers after every callback", func() {
		obs := &frameLog{}
		sched.AddObserver(obs)

		sched.Frame(t0, sim)
		sched.Frame(t0.Add(2*step), sim)
		sched.Frame(t0.Add(time.Second), sim)

		Expect(obs.times).To(Equal([]time.Time{t0, t0.Add(2 * step), t0.Add(time.Second)}))
		Expect(obs.results[0].Steps).To(BeZero())
		Expect(obs.results[1].Steps).To(Equal(2))
		Expect(obs.results[2].Capped).To(BeTrue())
		Expect(obs.last.Frames).To(Equal(3))
		Expect(obs.last.CappedFrames).To(Equal(1))
	})

	It("adapts plain functions", func() {
		var n int
		f := frame.Funcs{UpdateFunc: func(float64) { n++ }}
		sched.Frame(t0, f)
		sched.Frame(t0.Add(2*step), f)
		Expect(n).To(Equal(2))
	})
})
