package systems

import "github.com/asgard/interceptsim/internal/world"

// RunEngagement applies ground impact and interception termination. Runs
// last in the pipeline, after kinematics has produced this tick's positions.
func RunEngagement(w *world.World, tick int, epsilon float64) {
	applyGroundImpact(w, tick)
	applyInterceptions(w, tick, epsilon)
}

// applyGroundImpact clamps any propelled entity whose altitude has dropped
// to or below zero: velocity and position Z are zeroed and Liveness
// transitions to Impacted. A missile that has already impacted is left
// alone.
func applyGroundImpact(w *world.World, tick int) {
	for _, id := range w.Propelled() {
		if !w.IsAlive(id) {
			continue
		}
		t := w.Transform(id)
		if t == nil || t.Position.Z > 0 {
			continue
		}

		t.Position.Z = 0
		t.Velocity = t.Velocity.Scale(0)
		t.Accel = t.Accel.Scale(0)

		l := w.Liveness(id)
		l.State = world.Impacted
		l.TerminalTick = tick
	}
}

// applyInterceptions checks every alive (interceptor, ballistic) pair for a
// proximity hit within epsilon meters, regardless of which target the
// interceptor was assigned to track: a missile that wanders within lethal
// range of an interceptor is killed even if guidance never assigned it.
// Both entities are marked Intercepted. Entities are walked in ascending
// EntityID order on both axes, so when more than one interceptor could
// claim the same ballistic in a single tick, the lowest-ID interceptor
// claims it first and the ballistic cannot be claimed twice; an interceptor
// claims at most one ballistic per tick.
func applyInterceptions(w *world.World, tick int, epsilon float64) {
	for _, iID := range w.Interceptors() {
		if !w.IsAlive(iID) {
			continue
		}
		mt := w.Transform(iID)
		if mt == nil {
			continue
		}

		for _, bID := range w.Ballistics() {
			if !w.IsAlive(bID) {
				continue
			}
			tt := w.Transform(bID)
			if tt == nil {
				continue
			}

			dist := mt.Position.Sub(tt.Position).Magnitude()
			if dist > epsilon {
				continue
			}

			ml := w.Liveness(iID)
			ml.State = world.Intercepted
			ml.TerminalTick = tick

			bl := w.Liveness(bID)
			bl.State = world.Intercepted
			bl.TerminalTick = tick

			tag := w.Interceptor(iID)
			tag.Target = bID
			tag.HasTarget = true
			tag.State = world.Terminal
			break
		}
	}
}
