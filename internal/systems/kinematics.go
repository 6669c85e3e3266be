package systems

import (
	"math"

	"github.com/asgard/interceptsim/internal/simmath"
	"github.com/asgard/interceptsim/internal/world"
)

// gravity is the constant downward acceleration magnitude applied to every
// propelled entity, in m/s^2. The Z axis is altitude, so gravity acts along
// -Z.
const gravity = 9.80665

// RunKinematics advances thrust/mass, aerodynamic drag, gravity, and the
// resulting rigid-body motion for every propelled entity. Runs fourth in the
// pipeline, after attitude and before engagement.
func RunKinematics(w *world.World, dt float64) {
	for _, id := range w.Propelled() {
		if !w.IsAlive(id) {
			continue
		}
		t := w.Transform(id)
		p := w.Propulsion(id)
		if t == nil || p == nil {
			continue
		}

		thrustAccel := advancePropulsion(p, dt)
		att := w.Attitude(id)

		var thrustVec simmath.Vector3
		if thrustAccel > 0 && att != nil {
			thrustVec = thrustDirection(att.Theta, att.Psi).Scale(thrustAccel)
		}

		dragAccel := dragAcceleration(w, id, t, p)
		gravAccel := simmath.Vector3{Z: -gravity}

		accel := thrustVec.Add(dragAccel).Add(gravAccel)

		if !t.Bootstrapped() {
			t.APrev = accel
			t.VPrev = t.Velocity
			t.MarkBootstrapped()
		}

		nextVelocity := simmath.Vec3AB2Step(t.Velocity, accel, t.APrev, dt)
		nextPosition := simmath.Vec3AB2Step(t.Position, nextVelocity, t.VPrev, dt)

		t.APrev = accel
		t.VPrev = nextVelocity
		t.Accel = accel
		t.Velocity = nextVelocity
		t.Position = nextPosition
	}
}

// advancePropulsion burns fuel for dt seconds and returns the thrust
// acceleration (0 once the motor has burned out or the entity carries no
// thrust constant). Mass never drops below the entity's dry mass.
func advancePropulsion(p *world.PropulsionMass, dt float64) float64 {
	if p.ThrustConst == 0 {
		return 0
	}
	if p.ElapsedBurn >= p.BurnDuration {
		return 0
	}

	burn := dt
	if p.ElapsedBurn+burn > p.BurnDuration {
		burn = p.BurnDuration - p.ElapsedBurn
	}
	p.ElapsedBurn += burn

	dryMass := p.DryMass()
	p.Mass -= p.FuelFlowRate * burn
	if p.Mass < dryMass {
		p.Mass = dryMass
	}
	if p.Mass <= 0 {
		return 0
	}

	return p.ThrustConst / p.Mass
}

// thrustDirection converts pitch theta and yaw psi into a unit thrust
// vector: theta is measured from the vertical (Z) axis, psi is the azimuth
// within the horizontal plane.
func thrustDirection(theta, psi float64) simmath.Vector3 {
	sinTheta, cosTheta := math.Sincos(theta)
	sinPsi, cosPsi := math.Sincos(psi)
	return simmath.Vector3{
		X: cosPsi * sinTheta,
		Y: sinPsi * sinTheta,
		Z: cosTheta,
	}
}

// dragAcceleration returns the drag deceleration vector F_drag/m using the
// exponential atmosphere model, or the zero vector for entities without
// Aerodynamics or at zero airspeed.
func dragAcceleration(w *world.World, id world.EntityID, t *world.Transform, p *world.PropulsionMass) simmath.Vector3 {
	aero := w.Aero(id)
	if aero == nil {
		return simmath.Vector3{}
	}

	speed := t.Velocity.Magnitude()
	if speed < 1e-9 || p.Mass <= 0 {
		return simmath.Vector3{}
	}

	rho := simmath.AirDensity(t.Position.Z)
	dragForce := 0.5 * rho * speed * speed * aero.DragCoeff * aero.ReferenceArea
	dragAccelMag := dragForce / p.Mass

	unit := t.Velocity.Normalize()
	return unit.Scale(-dragAccelMag)
}
