package systems

import (
	"testing"

	"github.com/asgard/interceptsim/internal/simmath"
	"github.com/asgard/interceptsim/internal/world"
)

func TestGroundImpactClampsAndMarksImpacted(t *testing.T) {
	w := world.New()
	id := w.CreateEntity("bm")
	w.AddTransform(id, &world.Transform{
		Position: simmath.Vector3{X: 100, Y: 0, Z: -5},
		Velocity: simmath.Vector3{X: 10, Y: 0, Z: -20},
	})
	w.AddPropulsionMass(id, &world.PropulsionMass{})

	RunEngagement(w, 7, 50)

	tr := w.Transform(id)
	if tr.Position.Z != 0 {
		t.Errorf("expected position.z clamped to 0, got %v", tr.Position.Z)
	}
	if tr.Velocity != (simmath.Vector3{}) {
		t.Errorf("expected velocity zeroed on impact, got %v", tr.Velocity)
	}
	l := w.Liveness(id)
	if l.State != world.Impacted || l.TerminalTick != 7 {
		t.Errorf("expected Impacted at tick 7, got state=%v tick=%d", l.State, l.TerminalTick)
	}
}

func TestInterceptionWithinEpsilonMarksBothEntities(t *testing.T) {
	w := world.New()
	target := w.CreateEntity("bm")
	w.AddTransform(target, &world.Transform{Position: simmath.Vector3{X: 1000, Y: 0, Z: 1000}})
	w.AddBallisticTag(target)

	interceptor := w.CreateEntity("im")
	w.AddTransform(interceptor, &world.Transform{Position: simmath.Vector3{X: 1010, Y: 0, Z: 1000}})
	w.AddInterceptorTag(interceptor, 3.0)
	tag := w.Interceptor(interceptor)
	tag.HasTarget = true
	tag.Target = target

	RunEngagement(w, 42, 50)

	if w.Liveness(target).State != world.Intercepted {
		t.Errorf("expected target marked Intercepted")
	}
	if w.Liveness(interceptor).State != world.Intercepted {
		t.Errorf("expected interceptor marked Intercepted")
	}
}

func TestInterceptionOutsideEpsilonLeavesBothAlive(t *testing.T) {
	w := world.New()
	target := w.CreateEntity("bm")
	w.AddTransform(target, &world.Transform{Position: simmath.Vector3{X: 1000, Y: 0, Z: 1000}})
	w.AddBallisticTag(target)

	interceptor := w.CreateEntity("im")
	w.AddTransform(interceptor, &world.Transform{Position: simmath.Vector3{X: 5000, Y: 0, Z: 1000}})
	w.AddInterceptorTag(interceptor, 3.0)
	tag := w.Interceptor(interceptor)
	tag.HasTarget = true
	tag.Target = target

	RunEngagement(w, 1, 50)

	if w.Liveness(target).State != world.Alive || w.Liveness(interceptor).State != world.Alive {
		t.Errorf("expected both to remain Alive beyond epsilon")
	}
}

func TestInterceptionClaimsUnassignedLiveBallisticInRange(t *testing.T) {
	w := world.New()
	target := w.CreateEntity("bm")
	w.AddTransform(target, &world.Transform{Position: simmath.Vector3{X: 1000, Y: 0, Z: 1000}})
	w.AddBallisticTag(target)

	interceptor := w.CreateEntity("im")
	w.AddTransform(interceptor, &world.Transform{Position: simmath.Vector3{X: 1010, Y: 0, Z: 1000}})
	w.AddInterceptorTag(interceptor, 3.0)
	// tag.HasTarget left false: this interceptor was never assigned the
	// ballistic it happens to be within lethal range of.

	RunEngagement(w, 9, 50)

	if w.Liveness(target).State != world.Intercepted {
		t.Errorf("expected an unassigned in-range ballistic to be intercepted")
	}
	if w.Liveness(interceptor).State != world.Intercepted {
		t.Errorf("expected the interceptor to be marked Intercepted")
	}
}

func TestInterceptionTieBreaksByLowerEntityID(t *testing.T) {
	w := world.New()
	target := w.CreateEntity("bm")
	w.AddTransform(target, &world.Transform{Position: simmath.Vector3{X: 0, Y: 0, Z: 0}})
	w.AddBallisticTag(target)

	first := w.CreateEntity("im-first") // lower ID
	w.AddTransform(first, &world.Transform{Position: simmath.Vector3{X: 10, Y: 0, Z: 0}})
	w.AddInterceptorTag(first, 3.0)
	w.Interceptor(first).HasTarget = true
	w.Interceptor(first).Target = target

	second := w.CreateEntity("im-second") // higher ID, same target
	w.AddTransform(second, &world.Transform{Position: simmath.Vector3{X: 10, Y: 0, Z: 0}})
	w.AddInterceptorTag(second, 3.0)
	w.Interceptor(second).HasTarget = true
	w.Interceptor(second).Target = target

	RunEngagement(w, 3, 50)

	if w.Liveness(first).State != world.Intercepted {
		t.Errorf("expected the lower-ID interceptor to claim the kill")
	}
	if w.Liveness(second).State == world.Intercepted {
		t.Errorf("expected the higher-ID interceptor to find the target already gone")
	}
}
