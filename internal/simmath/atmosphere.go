package simmath

import "math"

// Sea-level density and scale height for the exponential atmosphere model.
// The scale height is not pinned by the original source material; 8500 m is
// the standard troposphere-weighted value and is adopted here as the fixed
// default (see DESIGN.md open-question log).
const (
	SeaLevelDensity = 1.225 // kg/m^3
	ScaleHeight     = 8500.0 // meters
)

// AirDensity returns the atmospheric density at altitude z (meters) using the
// exponential model rho(z) = rho0 * exp(-z/H). Altitudes below sea level
// return the sea-level density rather than extrapolating the exponential
// upward, since the model is not meant to be evaluated below ground.
func AirDensity(z float64) float64 {
	if z < 0 {
		z = 0
	}
	return SeaLevelDensity * math.Exp(-z/ScaleHeight)
}
