// Package systems implements the ordered per-tick pipeline: radar,
// guidance, attitude, kinematics, and engagement/termination. Each system is
// a stage-scoped function operating on the World's component tables; the
// pipeline order in Run (internal/engine) is fixed and non-configurable.
package systems

import "github.com/asgard/interceptsim/internal/world"

// RunRadar advances every radar's detection clock by dt and, for any radar
// whose clock has reached its detection period, recomputes its detection
// set against every live ballistic entity. A radar that does not fire this
// tick publishes an empty detection set. This is the first system in the
// tick pipeline: guidance reads what it publishes.
func RunRadar(w *world.World, tick int, dt float64) {
	ballistics := w.AliveBallistics()

	for _, id := range w.Radars() {
		r := w.Radar(id)
		r.Clock += dt
		r.Detections = r.Detections[:0]

		if r.Clock < r.Period {
			continue
		}
		r.Clock -= r.Period

		for _, bID := range ballistics {
			bt := w.Transform(bID)
			if bt == nil {
				continue
			}
			d := bt.Position.Sub(r.Station).Magnitude()
			if d <= r.MaxRange {
				r.Detections = append(r.Detections, world.Detection{Entity: bID, Position: bt.Position})
			}
		}
		r.TotalDetections += len(r.Detections)
		r.LastDetectionTick = tick
	}
}
