// Package metrics exports frame-loop counters in the Prometheus text format
// and throttles the capped-frame log.
//
// Nothing is served over the network: a Collector owns a private registry
// that is written to a textfile when a run ends, for node_exporter's
// textfile collector or for diffing between runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/san-kum/orrery/internal/frame"
)

const namespace = "orrery"

var loopLabels = []string{"scene", "display"}

type Collector struct {
	reg           *prometheus.Registry
	frames        *prometheus.CounterVec
	steps         *prometheus.CounterVec
	capped        *prometheus.CounterVec
	dropped       *prometheus.CounterVec
	fps           *prometheus.GaugeVec
	simTime       *prometheus.GaugeVec
	stepsPerFrame *prometheus.HistogramVec
}

func NewCollector() *Collector {
	c := &Collector{
		reg: prometheus.NewRegistry(),
		frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "frames_total",
				Help:      "Animation callbacks run",
			},
			loopLabels,
		),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "steps_total",
				Help:      "Fixed simulation steps run",
			},
			loopLabels,
		),
		capped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "capped_frames_total",
				Help:      "Callbacks that hit the step cap",
			},
			loopLabels,
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dropped_seconds_total",
				Help:      "Simulation time discarded by capped callbacks",
			},
			loopLabels,
		),
		fps: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "fps",
				Help:      "Smoothed display frame rate",
			},
			loopLabels,
		),
		simTime: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sim_time_seconds",
				Help:      "Simulation time advanced so far",
			},
			loopLabels,
		),
		stepsPerFrame: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "steps_per_frame",
				Help:      "Fixed steps run by one callback",
				Buckets:   prometheus.LinearBuckets(0, 1, 9),
			},
			loopLabels,
		),
	}

	c.reg.MustRegister(c.frames, c.steps, c.capped, c.dropped, c.fps, c.simTime, c.stepsPerFrame)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// Loop returns the observer for one frame loop. scene and display become
// the label values, so two loops with the same pair share their series.
func (c *Collector) Loop(scene, display string) *Loop {
	l := prometheus.Labels{"scene": scene, "display": display}
	return &Loop{
		frames:        c.frames.With(l),
		steps:         c.steps.With(l),
		capped:        c.capped.With(l),
		dropped:       c.dropped.With(l),
		fps:           c.fps.With(l),
		simTime:       c.simTime.With(l),
		stepsPerFrame: c.stepsPerFrame.With(l),
	}
}

// WriteFile replaces path with the current state of every series.
func (c *Collector) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, c.reg)
}

// Loop implements frame.Observer.
type Loop struct {
	frames        prometheus.Counter
	steps         prometheus.Counter
	capped        prometheus.Counter
	dropped       prometheus.Counter
	fps           prometheus.Gauge
	simTime       prometheus.Gauge
	stepsPerFrame prometheus.Observer
}

func (l *Loop) ObserveFrame(_ time.Time, res frame.Result, st frame.Stats) {
	l.frames.Inc()
	l.steps.Add(float64(res.Steps))
	l.stepsPerFrame.Observe(float64(res.Steps))
	if res.Capped {
		l.capped.Inc()
		l.dropped.Add(res.Dropped.Seconds())
	}
	l.fps.Set(st.FPS)
	l.simTime.Set(st.SimTime)
}
