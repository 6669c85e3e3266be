package systems

import "github.com/asgard/interceptsim/internal/simmath"

// ab2 advances a scalar state one step via the two-step Adams-Bashforth
// method, given the current and previous derivative samples. Thin wrapper
// kept local to systems so call sites read as plain integration steps
// rather than reaching into simmath for every field.
func ab2(yN, fN, fPrev, dt float64) float64 {
	return simmath.AB2Step(yN, fN, fPrev, dt)
}
