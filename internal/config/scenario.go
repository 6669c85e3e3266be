package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/asgard/interceptsim/internal/simmath"
)

// Vec3 decodes a YAML [x, y, z] sequence into a simmath.Vector3.
type Vec3 simmath.Vector3

// UnmarshalYAML implements yaml.Unmarshaler for the [x, y, z] sequence
// shape used throughout scenario files.
func (v *Vec3) UnmarshalYAML(node *yaml.Node) error {
	var xyz [3]float64
	if err := node.Decode(&xyz); err != nil {
		return fmt.Errorf("expected a [x, y, z] sequence: %w", err)
	}
	*v = Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	return nil
}

// Vector3 converts back to the simulation's vector type.
func (v Vec3) Vector3() simmath.Vector3 { return simmath.Vector3(v) }

// BallisticEntry is one ballistic-missile instance in a scenario file.
type BallisticEntry struct {
	Position Vec3    `yaml:"position"`
	Velocity Vec3    `yaml:"velocity"`
	Theta    float64 `yaml:"theta"`
	Psi      float64 `yaml:"psi"`
}

// InterceptorEntry is one interceptor instance in a scenario file.
type InterceptorEntry struct {
	Position Vec3    `yaml:"position"`
	Velocity Vec3    `yaml:"velocity"`
	Theta    float64 `yaml:"theta"`
	Psi      float64 `yaml:"psi"`
}

// RadarEntry is one radar station in a scenario file; it carries its own
// r_max/detect_interval rather than referencing the shared radar-params
// file, since different stations commonly have different coverage.
type RadarEntry struct {
	Position       Vec3    `yaml:"position"`
	MaxRange       float64 `yaml:"r_max"`
	DetectInterval float64 `yaml:"detect_interval"`
}

// Scenario is the top-level scenario file: simulation timing plus the
// entity instances to populate the World with.
type Scenario struct {
	TimeStep            float64            `yaml:"time_step"`
	SimulationDuration   float64            `yaml:"simulation_duration"`
	BallisticMissiles    []BallisticEntry   `yaml:"ballistic_missiles"`
	Interceptors         []InterceptorEntry `yaml:"interceptors"`
	Radars               []RadarEntry       `yaml:"radars"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (Scenario, error) {
	var s Scenario
	if err := decodeYAML(path, &s); err != nil {
		return s, err
	}
	if err := validateScenario(s); err != nil {
		return s, err
	}
	return s, nil
}

func validateScenario(s Scenario) error {
	switch {
	case s.TimeStep <= 0:
		return configErr("time_step must be positive, got %v", s.TimeStep)
	case s.SimulationDuration <= 0:
		return configErr("simulation_duration must be positive, got %v", s.SimulationDuration)
	}
	for i, r := range s.Radars {
		if r.MaxRange <= 0 {
			return configErr("radars[%d].r_max must be positive, got %v", i, r.MaxRange)
		}
		if r.DetectInterval <= 0 {
			return configErr("radars[%d].detect_interval must be positive, got %v", i, r.DetectInterval)
		}
	}
	return nil
}
