package engine

import (
	"strconv"

	"github.com/asgard/interceptsim/internal/config"
	"github.com/asgard/interceptsim/internal/simmath"
	"github.com/asgard/interceptsim/internal/world"
)

// BuildWorld populates a fresh World from a scenario and the per-type
// parameter sets loaded for ballistic missiles, interceptors, and (as a
// fallback) radars. A RadarEntry's own r_max/detect_interval take
// precedence over radarParams when non-zero, since scenario files commonly
// vary coverage per station.
func BuildWorld(sc config.Scenario, missileParams, interceptorParams config.MissileParams, radarParams config.RadarParams) *world.World {
	w := world.New()

	for i, bm := range sc.BallisticMissiles {
		id := w.CreateEntity(entityName("bm", i))
		w.AddTransform(id, newTransform(bm.Position.Vector3(), bm.Velocity.Vector3()))
		w.AddAttitude(id, newAttitude(bm.Theta, bm.Psi, missileParams.TauTheta, missileParams.TauPsi))
		w.AddPropulsionMass(id, newPropulsion(missileParams))
		w.AddAerodynamics(id, &world.Aerodynamics{
			DragCoeff:     missileParams.DragCoeff,
			ReferenceArea: missileParams.ReferenceArea,
		})
		w.AddBallisticTag(id)
	}

	for i, im := range sc.Interceptors {
		id := w.CreateEntity(entityName("im", i))
		w.AddTransform(id, newTransform(im.Position.Vector3(), im.Velocity.Vector3()))
		w.AddAttitude(id, newAttitude(im.Theta, im.Psi, interceptorParams.TauTheta, interceptorParams.TauPsi))
		w.AddPropulsionMass(id, newPropulsion(interceptorParams))
		w.AddAerodynamics(id, &world.Aerodynamics{
			DragCoeff:     interceptorParams.DragCoeff,
			ReferenceArea: interceptorParams.ReferenceArea,
		})
		w.AddInterceptorTag(id, interceptorParams.ProportionalNavigationConst)
	}

	for i, r := range sc.Radars {
		id := w.CreateEntity(entityName("r", i))
		maxRange := r.MaxRange
		period := r.DetectInterval
		if maxRange == 0 {
			maxRange = radarParams.MaxRange
		}
		if period == 0 {
			period = radarParams.DetectInterval
		}
		w.AddRadar(id, &world.Radar{
			Station: r.Position.Vector3(),
			MaxRange: maxRange,
			Period:   period,
		})
	}

	return w
}

func entityName(prefix string, i int) string {
	return prefix + "-" + strconv.Itoa(i)
}

func newTransform(pos, vel simmath.Vector3) *world.Transform {
	return &world.Transform{Position: pos, Velocity: vel}
}

func newAttitude(theta, psi, tauTheta, tauPsi float64) *world.Attitude {
	thetaFilter, _ := simmath.NewLowPassFilter(0, tauTheta)
	psiFilter, _ := simmath.NewLowPassFilter(0, tauPsi)
	return &world.Attitude{
		Theta:       theta,
		Psi:         psi,
		ThetaFilter: thetaFilter,
		PsiFilter:   psiFilter,
	}
}

func newPropulsion(p config.MissileParams) *world.PropulsionMass {
	return &world.PropulsionMass{
		InitialMass:  p.InitialMass,
		Mass:         p.InitialMass,
		ThrustConst:  p.ThrustConst,
		BurnDuration: p.BurnTime,
		FuelFlowRate: p.FuelFlowRate,
	}
}
