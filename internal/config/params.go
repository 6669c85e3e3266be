// Package config loads and validates the YAML parameter and scenario files
// that describe a simulation run: per-type missile/interceptor/radar
// parameters and the scenario file listing entity instances.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/asgard/interceptsim/internal/simerr"
)

// MissileParams is the shared parameter shape for ballistic missiles and
// interceptors; ProportionalNavigationConst is zero (and ignored) for
// ballistic missiles, which carry no guidance.
type MissileParams struct {
	ThrustConst                 float64 `yaml:"thrust_const"`
	BurnTime                    float64 `yaml:"burn_time"`
	InitialMass                 float64 `yaml:"initial_mass"`
	FuelFlowRate                float64 `yaml:"fuel_flow_rate"`
	DragCoeff                   float64 `yaml:"cd"`
	ReferenceArea               float64 `yaml:"area"`
	TauTheta                    float64 `yaml:"tau_theta"`
	TauPsi                      float64 `yaml:"tau_psi"`
	ProportionalNavigationConst float64 `yaml:"proportional_navigation_const"`
}

// RadarParams is the shared parameter shape for ground radars.
type RadarParams struct {
	MaxRange       float64 `yaml:"r_max"`
	DetectInterval float64 `yaml:"detect_interval"`
}

// LoadMissileParams reads and validates a missile/interceptor parameter
// file. requireGuidance rejects a zero or missing
// proportional_navigation_const, since an interceptor with N=0 never
// generates a guidance correction.
func LoadMissileParams(path string, requireGuidance bool) (MissileParams, error) {
	var p MissileParams
	if err := decodeYAML(path, &p); err != nil {
		return p, err
	}
	if err := validateMissileParams(p, requireGuidance); err != nil {
		return p, err
	}
	return p, nil
}

// LoadRadarParams reads and validates a radar parameter file.
func LoadRadarParams(path string) (RadarParams, error) {
	var p RadarParams
	if err := decodeYAML(path, &p); err != nil {
		return p, err
	}
	if err := validateRadarParams(p); err != nil {
		return p, err
	}
	return p, nil
}

func decodeYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return simerr.New(simerr.ConfigParse, fmt.Errorf("reading %s: %w", path, err))
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return simerr.New(simerr.ConfigParse, fmt.Errorf("parsing %s: %w", path, err))
	}
	return nil
}

func validateMissileParams(p MissileParams, requireGuidance bool) error {
	switch {
	case p.InitialMass <= 0:
		return configErr("initial_mass must be positive, got %v", p.InitialMass)
	case p.FuelFlowRate < 0:
		return configErr("fuel_flow_rate must not be negative, got %v", p.FuelFlowRate)
	case p.BurnTime < 0:
		return configErr("burn_time must not be negative, got %v", p.BurnTime)
	case p.FuelFlowRate*p.BurnTime > p.InitialMass:
		return configErr("fuel_flow_rate*burn_time (%v) exceeds initial_mass (%v): motor cannot burn more propellant than it carries",
			p.FuelFlowRate*p.BurnTime, p.InitialMass)
	case p.DragCoeff < 0:
		return configErr("cd must not be negative, got %v", p.DragCoeff)
	case p.ReferenceArea < 0:
		return configErr("area must not be negative, got %v", p.ReferenceArea)
	case p.TauTheta <= 0:
		return configErr("tau_theta must be positive, got %v", p.TauTheta)
	case p.TauPsi <= 0:
		return configErr("tau_psi must be positive, got %v", p.TauPsi)
	case requireGuidance && p.ProportionalNavigationConst <= 0:
		return configErr("proportional_navigation_const must be positive for an interceptor, got %v", p.ProportionalNavigationConst)
	}
	return nil
}

func validateRadarParams(p RadarParams) error {
	switch {
	case p.MaxRange <= 0:
		return configErr("r_max must be positive, got %v", p.MaxRange)
	case p.DetectInterval <= 0:
		return configErr("detect_interval must be positive, got %v", p.DetectInterval)
	}
	return nil
}

func configErr(format string, args ...any) error {
	return simerr.New(simerr.ConfigValidate, fmt.Errorf(format, args...))
}
