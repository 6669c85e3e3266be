package engine

import (
	"context"
	"math"
	"testing"

	"github.com/asgard/interceptsim/internal/simmath"
	"github.com/asgard/interceptsim/internal/world"
)

func newBallistic(w *world.World, pos, vel simmath.Vector3, thrust, burnTime, mass, fuelFlow, cd, area float64) world.EntityID {
	// theta is measured from the vertical (Z) axis per thrustDirection, so
	// theta=0 points the thrust vector straight up.
	id := w.CreateEntity("bm")
	w.AddTransform(id, &world.Transform{Position: pos, Velocity: vel})
	w.AddAttitude(id, &world.Attitude{Theta: 0})
	w.AddPropulsionMass(id, &world.PropulsionMass{
		InitialMass:  mass,
		Mass:         mass,
		ThrustConst:  thrust,
		BurnDuration: burnTime,
		FuelFlowRate: fuelFlow,
	})
	w.AddAerodynamics(id, &world.Aerodynamics{DragCoeff: cd, ReferenceArea: area})
	w.AddBallisticTag(id)
	return id
}

func TestFreeFallReachesGroundNearClosedForm(t *testing.T) {
	w := world.New()
	id := newBallistic(w, simmath.Vector3{X: 0, Y: 0, Z: 1000}, simmath.Vector3{}, 0, 0, 1000, 0, 0, 0)

	orch := New(Config{DT: 0.1, Duration: 30, InterceptRadius: 50}, w, nil)
	ran, err := orch.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	l := w.Liveness(id)
	if l.State != world.Impacted {
		t.Fatalf("expected entity to impact within 30s, ran %d ticks, state=%v", ran, l.State)
	}

	wantImpactTime := math.Sqrt(2 * 1000 / 9.80665)
	gotImpactTime := float64(l.TerminalTick) * 0.1
	if math.Abs(gotImpactTime-wantImpactTime) > 0.5 {
		t.Errorf("expected impact near t=%.3fs, got t=%.3fs", wantImpactTime, gotImpactTime)
	}
	if w.Transform(id).Position.Z != 0 {
		t.Errorf("expected z=0 at impact, got %v", w.Transform(id).Position.Z)
	}
}

func TestBoostPhaseMassDepletionWithValidFuelFlow(t *testing.T) {
	w := world.New()
	id := newBallistic(w, simmath.Vector3{}, simmath.Vector3{}, 1e6, 60, 10000, 100, 0, 0)

	orch := New(Config{DT: 0.1, Duration: 60, InterceptRadius: 50}, w, nil)
	if _, err := orch.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	p := w.Propulsion(id)
	if math.Abs(p.Mass-4000) > 1 {
		t.Errorf("expected mass near 4000kg after a 60s burn at 100kg/s from 10000kg, got %v", p.Mass)
	}
}

func TestRadarPeriodFiresOnlyAtBoundaries(t *testing.T) {
	w := world.New()
	radar := w.CreateEntity("radar")
	w.AddRadar(radar, &world.Radar{MaxRange: 20000, Period: 0.5})
	newBallistic(w, simmath.Vector3{X: 10000, Y: 0, Z: 100}, simmath.Vector3{}, 0, 0, 1000, 0, 0, 0)

	var fireTicks []int
	orch := New(Config{DT: 0.1, Duration: 2, InterceptRadius: 50}, w, nil)
	orch.OnTick(func(tick int, simTime float64, w2 *world.World) {
		if len(w2.Radar(radar).Detections) > 0 {
			fireTicks = append(fireTicks, tick)
		}
	})
	if _, err := orch.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(fireTicks) != 4 {
		t.Errorf("expected 4 radar firings over 2s at period 0.5s, got %d: %v", len(fireTicks), fireTicks)
	}
}

func TestSuccessfulInterceptionWithinThirtySeconds(t *testing.T) {
	w := world.New()
	radar := w.CreateEntity("radar")
	w.AddRadar(radar, &world.Radar{MaxRange: 20000, Period: 0.1})

	target := newBallistic(w, simmath.Vector3{X: 15000, Y: 0, Z: 0}, simmath.Vector3{X: -500, Y: 0, Z: 0}, 0, 0, 1000, 0, 0, 0)

	interceptor := w.CreateEntity("im")
	w.AddTransform(interceptor, &world.Transform{Position: simmath.Vector3{X: 1000, Y: 0, Z: 0}})
	thetaFilter, _ := simmath.NewLowPassFilter(0, 0.5)
	psiFilter, _ := simmath.NewLowPassFilter(0, 0.5)
	w.AddAttitude(interceptor, &world.Attitude{ThetaFilter: thetaFilter, PsiFilter: psiFilter})
	w.AddPropulsionMass(interceptor, &world.PropulsionMass{InitialMass: 100, Mass: 100, ThrustConst: 5e5, BurnDuration: 10, FuelFlowRate: 1})
	w.AddAerodynamics(interceptor, &world.Aerodynamics{})
	w.AddInterceptorTag(interceptor, 3.0)

	orch := New(Config{DT: 0.05, Duration: 30, InterceptRadius: 50}, w, nil)
	if _, err := orch.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	tl := w.Liveness(target)
	il := w.Liveness(interceptor)
	if tl.State != world.Intercepted || il.State != world.Intercepted {
		t.Fatalf("expected both intercepted within 30s; target=%v interceptor=%v", tl.State, il.State)
	}
	if tl.TerminalTick != il.TerminalTick {
		t.Errorf("expected both entities marked intercepted on the same tick, got %d vs %d", tl.TerminalTick, il.TerminalTick)
	}
}

func TestMissAndCoastFallsUnderGravityAfterTargetImpacts(t *testing.T) {
	w := world.New()
	radar := w.CreateEntity("radar")
	w.AddRadar(radar, &world.Radar{MaxRange: 20000, Period: 0.1})

	target := newBallistic(w, simmath.Vector3{X: 15000, Y: 0, Z: 0}, simmath.Vector3{}, 0, 0, 1000, 0, 0, 0)

	interceptor := w.CreateEntity("im")
	w.AddTransform(interceptor, &world.Transform{Position: simmath.Vector3{X: 0, Y: 0, Z: 1000}})
	thetaFilter, _ := simmath.NewLowPassFilter(0, 0.5)
	psiFilter, _ := simmath.NewLowPassFilter(0, 0.5)
	w.AddAttitude(interceptor, &world.Attitude{ThetaFilter: thetaFilter, PsiFilter: psiFilter})
	w.AddPropulsionMass(interceptor, &world.PropulsionMass{InitialMass: 100, Mass: 100})
	w.AddAerodynamics(interceptor, &world.Aerodynamics{})
	w.AddInterceptorTag(interceptor, 3.0)

	// Launch the interceptor by hand, then remove the target before closure.
	tag := w.Interceptor(interceptor)
	tag.Launched = true
	tag.HasTarget = true
	tag.Target = target
	w.Liveness(target).State = world.Impacted

	orch := New(Config{DT: 0.1, Duration: 30, InterceptRadius: 50}, w, nil)
	if _, err := orch.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	il := w.Liveness(interceptor)
	if il.State != world.Impacted {
		t.Fatalf("expected interceptor to fall and impact after its target was already gone, got %v", il.State)
	}
}
