package systems

import (
	"math"

	"github.com/asgard/interceptsim/internal/world"
)

// minSpeedForGuidance is the velocity magnitude below which commanded rates
// are forced to zero, preventing the small-angle inversion from blowing up
// before launch acceleration has built speed.
const minSpeedForGuidance = 1.0

// RunGuidance assigns interceptor targets from the radar detections
// published earlier this tick, then computes proportional-navigation
// commanded attitude rates for every interceptor with a live target. Runs
// second in the pipeline, after radar and before attitude.
func RunGuidance(w *world.World, dt float64) {
	for _, id := range w.Interceptors() {
		if !w.IsAlive(id) {
			continue
		}
		tag := w.Interceptor(id)
		assignTarget(w, id, tag)

		att := w.Attitude(id)
		if att == nil {
			continue
		}

		if !tag.HasTarget {
			att.ThetaDotCmd = 0
			att.PsiDotCmd = 0
			if tag.Launched {
				tag.State = world.Coasting
			}
			continue
		}

		mt := w.Transform(id)
		tt := w.Transform(tag.Target)
		if mt == nil || tt == nil {
			att.ThetaDotCmd = 0
			att.PsiDotCmd = 0
			continue
		}

		thetaDot, psiDot := proNavRates(mt, tt, att.Theta, tag.N)
		att.ThetaDotCmd = thetaDot
		att.PsiDotCmd = psiDot
		tag.State = world.Tracking
	}
}

// assignTarget implements the Stowed/Launched and Tracking/Coasting
// transitions: launch on first detection, and re-validate or reassign the
// target against the detection sets published this tick, every tick
// thereafter. On a tick where no radar fires those sets are empty, so a
// launched interceptor drops its target until the next firing; earlier
// detection sets are not consulted.
func assignTarget(w *world.World, id world.EntityID, tag *world.InterceptorTag) {
	detections := latestDetections(w)

	if !tag.Launched {
		nearest, ok := nearestDetection(w, id, detections)
		if !ok {
			return
		}
		tag.Target = nearest
		tag.HasTarget = true
		tag.Launched = true
		tag.State = world.Launched
		if att := w.Attitude(id); att != nil && att.ThetaFilter != nil && att.PsiFilter != nil {
			att.ThetaFilter.Reset(0)
			att.PsiFilter.Reset(0)
		}
		return
	}

	if tag.HasTarget && w.IsAlive(tag.Target) && detectedNow(detections, tag.Target) {
		return
	}

	nearest, ok := nearestDetection(w, id, detections)
	if !ok {
		tag.HasTarget = false
		return
	}
	tag.Target = nearest
	tag.HasTarget = true
}

// latestDetections gathers every radar's current-tick detection set. A
// radar that did not fire this tick contributes nothing: detections are a
// snapshot, never accumulated across ticks.
func latestDetections(w *world.World) []world.Detection {
	var all []world.Detection
	for _, rID := range w.Radars() {
		r := w.Radar(rID)
		all = append(all, r.Detections...)
	}
	return all
}

func detectedNow(detections []world.Detection, target world.EntityID) bool {
	for _, d := range detections {
		if d.Entity == target {
			return true
		}
	}
	return false
}

// nearestDetection returns the live ballistic entity closest to the
// interceptor among the given detections. Ties go to the first minimum in
// detection order (radars by ascending ID, and within one radar ascending
// entity ID), so with a single radar the lower entity ID wins.
func nearestDetection(w *world.World, interceptor world.EntityID, detections []world.Detection) (world.EntityID, bool) {
	mt := w.Transform(interceptor)
	if mt == nil {
		return 0, false
	}

	best := world.EntityID(0)
	bestDist := math.Inf(1)
	found := false
	for _, d := range detections {
		if !w.IsAlive(d.Entity) {
			continue
		}
		dist := d.Position.Sub(mt.Position).Magnitude()
		if dist < bestDist {
			bestDist = dist
			best = d.Entity
			found = true
		}
	}
	return best, found
}

// proNavRates computes proportional-navigation commanded pitch/yaw rates:
// line-of-sight rate omega = (R x V)/|R|^2, commanded lateral
// acceleration a_cmd = N*(V x omega), then a small-angle inversion using the
// interceptor's speed: thetaDot = a_cmd.Z/|v| and psiDot = a_cmd.Y/(|v| cos theta).
// a_cmd stays in the simulation frame; it is not rotated into the
// interceptor's velocity frame before the Z/Y components are taken.
func proNavRates(missile, target *world.Transform, theta, n float64) (thetaDot, psiDot float64) {
	R := target.Position.Sub(missile.Position)
	V := target.Velocity.Sub(missile.Velocity)

	rMagSq := R.Dot(R)
	if rMagSq < 1e-12 {
		return 0, 0
	}
	omega := R.Cross(V).Scale(1 / rMagSq)
	aCmd := V.Cross(omega).Scale(n)

	speed := missile.Velocity.Magnitude()
	if speed < minSpeedForGuidance {
		return 0, 0
	}

	aPitch := aCmd.Z
	aYaw := aCmd.Y

	thetaDot = aPitch / speed
	denom := speed * math.Cos(theta)
	if math.Abs(denom) < 1e-6 {
		psiDot = 0
	} else {
		psiDot = aYaw / denom
	}
	return thetaDot, psiDot
}
