// Package engine drives the fixed per-tick pipeline over a World: radar,
// guidance, attitude, kinematics, then engagement. Ordering is not
// configurable; callers choose only the step count and step size.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/asgard/interceptsim/internal/metrics"
	"github.com/asgard/interceptsim/internal/simerr"
	"github.com/asgard/interceptsim/internal/systems"
	"github.com/asgard/interceptsim/internal/world"
)

// Config holds the fixed-step run parameters.
type Config struct {
	DT              float64 // step size, s
	Duration        float64 // total simulated time, s
	InterceptRadius float64 // epsilon, m: proximity threshold for a kill
}

// TickObserver receives the World's state after every completed tick, for
// telemetry recording. Implementations must not mutate the World.
type TickObserver func(tick int, simTime float64, w *world.World)

// Orchestrator advances a World through the fixed pipeline until Duration
// elapses or every entity that can still move has reached a terminal state.
type Orchestrator struct {
	cfg      Config
	w        *world.World
	log      *logrus.Entry
	observer TickObserver
	metrics  *metrics.Metrics

	prevIntercepted      int
	prevImpactedBallistic   int
	prevImpactedInterceptor int
}

// New creates an Orchestrator bound to w. log may be nil, in which case a
// discarding logger is used.
func New(cfg Config, w *world.World, log *logrus.Entry) *Orchestrator {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return &Orchestrator{cfg: cfg, w: w, log: log}
}

// OnTick registers a telemetry callback invoked once per completed tick.
func (o *Orchestrator) OnTick(fn TickObserver) { o.observer = fn }

// WithMetrics attaches a Prometheus metrics sink; ticks and engagement
// outcomes are recorded against it as the run progresses. Optional: a nil
// or never-attached sink means metrics are simply not recorded.
func (o *Orchestrator) WithMetrics(m *metrics.Metrics) { o.metrics = m }

// Run executes the tick loop until completion, context cancellation, or a
// numerical error. It returns the number of ticks actually executed.
func (o *Orchestrator) Run(ctx context.Context) (int, error) {
	if o.cfg.DT <= 0 {
		return 0, simerr.New(simerr.ConfigValidate, fmt.Errorf("dt must be positive, got %v", o.cfg.DT))
	}

	totalTicks := int(math.Round(o.cfg.Duration / o.cfg.DT))
	simTime := 0.0

	for tick := 0; tick < totalTicks; tick++ {
		select {
		case <-ctx.Done():
			return tick, ctx.Err()
		default:
		}

		pipelineStart := time.Now()
		systems.RunRadar(o.w, tick, o.cfg.DT)
		systems.RunGuidance(o.w, o.cfg.DT)
		systems.RunAttitude(o.w, o.cfg.DT)
		systems.RunKinematics(o.w, o.cfg.DT)
		systems.RunEngagement(o.w, tick, o.cfg.InterceptRadius)
		pipelineDur := time.Since(pipelineStart)

		if err := checkFinite(o.w, tick); err != nil {
			o.recordAbort(err)
			return tick + 1, err
		}

		o.recordTick(pipelineDur)

		simTime += o.cfg.DT
		if o.observer != nil {
			o.observer(tick, simTime, o.w)
		}

		if allTerminal(o.w) {
			o.log.WithFields(logrus.Fields{"tick": tick, "sim_time": simTime}).Info("all entities reached a terminal state, ending run early")
			return tick + 1, nil
		}
	}

	return totalTicks, nil
}

// checkFinite verifies every entity's Transform still holds finite
// values after a tick. A NaN or Inf means the numerical pipeline diverged,
// which is always a programmer error and aborts the run rather than
// producing garbage telemetry.
func checkFinite(w *world.World, tick int) error {
	for _, id := range w.All() {
		t := w.Transform(id)
		if t == nil {
			continue
		}
		if !finiteVec(t.Position) || !finiteVec(t.Velocity) || !finiteVec(t.Accel) {
			return simerr.NewNumerical(uint32(id), tick, fmt.Errorf("non-finite transform state"))
		}
	}
	return nil
}

func finiteVec(v interface{ Magnitude() float64 }) bool {
	m := v.Magnitude()
	return !math.IsNaN(m) && !math.IsInf(m, 0)
}

// recordTick updates the metrics sink (if attached) with this tick's
// detection count, pipeline wall-clock duration, and the entities-alive
// gauge, and diffs the intercepted/impacted tallies against the previous
// tick so each termination is counted exactly once.
func (o *Orchestrator) recordTick(pipelineDur time.Duration) {
	if o.metrics == nil {
		return
	}
	o.metrics.TicksTotal.Inc()
	o.metrics.TickDuration.Observe(pipelineDur.Seconds())

	for _, id := range o.w.Radars() {
		r := o.w.Radar(id)
		if len(r.Detections) > 0 {
			o.metrics.DetectionsTotal.WithLabelValues(o.w.Name(id)).Add(float64(len(r.Detections)))
		}
	}

	intercepted, impactedBallistic, impactedInterceptor := 0, 0, 0
	for _, id := range o.w.All() {
		l := o.w.Liveness(id)
		if l == nil {
			continue
		}
		switch l.State {
		case world.Intercepted:
			intercepted++
		case world.Impacted:
			if o.w.IsBallistic(id) {
				impactedBallistic++
			} else {
				impactedInterceptor++
			}
		}
	}
	if d := intercepted - o.prevIntercepted; d > 0 {
		o.metrics.InterceptionsTotal.Add(float64(d) / 2) // each kill marks two entities
	}
	if d := impactedBallistic - o.prevImpactedBallistic; d > 0 {
		o.metrics.GroundImpactsTotal.WithLabelValues("ballistic").Add(float64(d))
	}
	if d := impactedInterceptor - o.prevImpactedInterceptor; d > 0 {
		o.metrics.GroundImpactsTotal.WithLabelValues("interceptor").Add(float64(d))
	}
	o.prevIntercepted = intercepted
	o.prevImpactedBallistic = impactedBallistic
	o.prevImpactedInterceptor = impactedInterceptor

	o.metrics.EntitiesAlive.Set(float64(countAlive(o.w)))
}

// recordAbort records a run-ending error against the aborted-runs counter,
// labeled by its simerr.Kind.
func (o *Orchestrator) recordAbort(err error) {
	if o.metrics == nil {
		return
	}
	kind := "unknown"
	var se *simerr.Error
	if errors.As(err, &se) {
		kind = se.Kind.String()
	}
	o.metrics.RunAborted.WithLabelValues(kind).Inc()
}

func countAlive(w *world.World) int {
	n := 0
	for _, id := range w.All() {
		if w.IsAlive(id) {
			n++
		}
	}
	return n
}

// allTerminal reports whether every ballistic and interceptor entity has
// left the Alive state, meaning the run has nothing left to simulate.
func allTerminal(w *world.World) bool {
	for _, id := range w.Ballistics() {
		if w.IsAlive(id) {
			return false
		}
	}
	for _, id := range w.Interceptors() {
		if w.IsAlive(id) {
			return false
		}
	}
	return true
}
