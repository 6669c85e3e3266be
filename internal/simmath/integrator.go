package simmath

// AB2Integrator is a stateful two-step Adams-Bashforth integrator holding the
// previous derivative sample. Advance computes:
//
//	y_{n+1} = y_n + (dt/2)*(3*f_n - f_prev)
//
// and then stores f_n as f_prev for the following call. The first call after
// construction (or after Reset) has no prior derivative to extrapolate from,
// so it initializes f_prev = f_n, which makes that first step degenerate to
// forward Euler as required by the bootstrap rule.
type AB2Integrator struct {
	fPrev     float64
	primed    bool
}

// NewAB2Integrator creates an integrator with no prior derivative; the first
// Advance call bootstraps it.
func NewAB2Integrator() *AB2Integrator {
	return &AB2Integrator{}
}

// Advance steps yN forward by dt given the current derivative fN, returning
// y_{n+1}.
func (a *AB2Integrator) Advance(yN, fN, dt float64) float64 {
	if !a.primed {
		a.fPrev = fN
		a.primed = true
	}
	yNext := yN + (dt/2)*(3*fN-a.fPrev)
	a.fPrev = fN
	return yNext
}

// Reset clears the integrator so the next Advance call re-bootstraps as
// Euler, used when an entity's derivative source restarts (e.g. re-spawn).
func (a *AB2Integrator) Reset() {
	a.fPrev = 0
	a.primed = false
}

// AB2Step is the stateless form of the same recurrence, used by callers
// (such as the world's Transform/Attitude components) that keep the previous
// derivative as an explicit struct field rather than inside an
// AB2Integrator value.
func AB2Step(yN, fN, fPrev, dt float64) float64 {
	return yN + (dt/2)*(3*fN-fPrev)
}

// Vec3AB2 composes three scalar AB2Integrators, one per axis, for vector
// quantities such as velocity and position.
type Vec3AB2 struct {
	X, Y, Z AB2Integrator
}

// NewVec3AB2 creates a zero-initialized vector integrator; each axis
// bootstraps independently on its first Advance call.
func NewVec3AB2() *Vec3AB2 {
	return &Vec3AB2{}
}

// Advance steps yN forward by dt given the current derivative fN.
func (v *Vec3AB2) Advance(yN, fN Vector3, dt float64) Vector3 {
	return Vector3{
		X: v.X.Advance(yN.X, fN.X, dt),
		Y: v.Y.Advance(yN.Y, fN.Y, dt),
		Z: v.Z.Advance(yN.Z, fN.Z, dt),
	}
}

// Vec3AB2Step is the stateless vector form of AB2Step, for callers that keep
// the previous derivative as explicit Vector3 fields (such as the world's
// Transform component) rather than inside a Vec3AB2 value.
func Vec3AB2Step(yN, fN, fPrev Vector3, dt float64) Vector3 {
	return Vector3{
		X: AB2Step(yN.X, fN.X, fPrev.X, dt),
		Y: AB2Step(yN.Y, fN.Y, fPrev.Y, dt),
		Z: AB2Step(yN.Z, fN.Z, fPrev.Z, dt),
	}
}
