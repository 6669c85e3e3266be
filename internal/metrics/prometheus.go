// Package metrics provides Prometheus metrics for the simulation engine:
// tick throughput, detection and interception counts, and abort reasons.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every counter/gauge the engine updates during a run.
type Metrics struct {
	TicksTotal          prometheus.Counter
	TickDuration        prometheus.Histogram
	DetectionsTotal     *prometheus.CounterVec
	InterceptionsTotal  prometheus.Counter
	GroundImpactsTotal  *prometheus.CounterVec
	RunAborted          *prometheus.CounterVec
	EntitiesAlive       prometheus.Gauge
}

// New registers and returns a fresh Metrics set against reg. Use a
// dedicated prometheus.Registry per run rather than the global default
// registry, so repeated runs in the same process (tests, batch scenarios)
// never collide on duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TicksTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "interceptsim",
			Name:      "ticks_total",
			Help:      "Total number of simulation ticks executed.",
		}),
		TickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "interceptsim",
			Name:      "tick_duration_seconds",
			Help:      "Wall-clock duration of a single tick's pipeline.",
			Buckets:   prometheus.DefBuckets,
		}),
		DetectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interceptsim",
			Name:      "detections_total",
			Help:      "Total radar detections, labeled by radar entity.",
		}, []string{"radar"}),
		InterceptionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "interceptsim",
			Name:      "interceptions_total",
			Help:      "Total successful interceptions across the run.",
		}),
		GroundImpactsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interceptsim",
			Name:      "ground_impacts_total",
			Help:      "Total ground impacts, labeled by entity kind.",
		}, []string{"kind"}),
		RunAborted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interceptsim",
			Name:      "run_aborted_total",
			Help:      "Total aborted runs, labeled by error kind.",
		}, []string{"kind"}),
		EntitiesAlive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "interceptsim",
			Name:      "entities_alive",
			Help:      "Number of entities still Alive as of the most recent tick.",
		}),
	}
}
