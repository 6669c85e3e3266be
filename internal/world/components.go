package world

import "github.com/asgard/interceptsim/internal/simmath"

// EntityID is the opaque, stable identifier for an entity. IDs are assigned
// sequentially starting at 0, and ordering by EntityID is the canonical
// deterministic iteration order required for reproducible runs.
type EntityID uint32

// LivenessState is the terminal-state discriminator for an entity.
type LivenessState int

const (
	Alive LivenessState = iota
	Intercepted
	Impacted
)

func (s LivenessState) String() string {
	switch s {
	case Alive:
		return "alive"
	case Intercepted:
		return "intercepted"
	case Impacted:
		return "impacted"
	default:
		return "unknown"
	}
}

// Liveness is the per-entity terminal-state component. TerminalTick records
// the tick the entity transitioned off Alive, for telemetry only; systems
// never read it.
type Liveness struct {
	State        LivenessState
	TerminalTick int
}

// Transform holds rigid-body kinematic state. APrev and VPrev are the
// previous-tick acceleration and velocity samples required by the two-step
// Adams-Bashforth update: on tick 0, APrev = A(0) and VPrev = V(0),
// which makes the first velocity step degenerate to forward Euler. The
// position step uses the updated velocity together with VPrev, the velocity
// from before the update.
type Transform struct {
	Position simmath.Vector3
	Velocity simmath.Vector3
	Accel    simmath.Vector3
	APrev    simmath.Vector3
	VPrev    simmath.Vector3

	// bootstrapped is false until the first kinematics update has run for
	// this entity; it gates the APrev/VPrev bootstrap rule.
	bootstrapped bool
}

// Bootstrapped reports whether this Transform has completed at least one
// kinematics step.
func (t *Transform) Bootstrapped() bool { return t.bootstrapped }

// MarkBootstrapped records that the bootstrap step has run.
func (t *Transform) MarkBootstrapped() { t.bootstrapped = true }

// Attitude holds pitch/yaw state and the first-order filters that smooth
// commanded rates before they are integrated. Roll is structurally absent:
// there is no field for it anywhere in this component.
type Attitude struct {
	Theta float64 // pitch, rad
	Psi   float64 // yaw, rad

	ThetaDotCmd float64
	PsiDotCmd   float64

	ThetaDotFilt     float64
	PsiDotFilt       float64
	ThetaDotFiltPrev float64 // previous filtered rate, for AB2 integration of theta
	PsiDotFiltPrev   float64 // previous filtered rate, for AB2 integration of psi

	ThetaFilter *simmath.LowPassFilter
	PsiFilter   *simmath.LowPassFilter

	bootstrapped bool
}

// Bootstrapped reports whether this Attitude has completed at least one
// attitude-integration step.
func (a *Attitude) Bootstrapped() bool { return a.bootstrapped }

// MarkBootstrapped records that the bootstrap step has run.
func (a *Attitude) MarkBootstrapped() { a.bootstrapped = true }

// PropulsionMass models a propelled entity's thrust schedule and mass
// depletion.
type PropulsionMass struct {
	InitialMass   float64 // m0, kg
	Mass          float64 // current mass, kg
	ThrustConst   float64 // N, constant thrust while burning
	BurnDuration  float64 // t_burn, s
	FuelFlowRate  float64 // mdot_fuel, kg/s
	ElapsedBurn   float64 // s, clock since spawn/launch
}

// DryMass returns m0 - mdot_fuel*t_burn, the mass floor after full burn.
func (p *PropulsionMass) DryMass() float64 {
	return p.InitialMass - p.FuelFlowRate*p.BurnDuration
}

// Aerodynamics holds drag parameters.
type Aerodynamics struct {
	DragCoeff     float64 // C_D
	ReferenceArea float64 // A, m^2
}

// BallisticTag discriminates ballistic-missile entities. It carries no data;
// presence is the discriminator: there is no type switch or inheritance
// anywhere in this package.
type BallisticTag struct{}

// InterceptorTag discriminates interceptor entities and carries their
// proportional-navigation gain and assignment state.
type InterceptorTag struct {
	N        float64 // proportional-navigation constant
	Target   EntityID
	HasTarget bool
	Launched bool

	// State is a state-machine discriminator, tracked alongside
	// Liveness for telemetry; guidance/engagement logic derives behavior
	// from Launched/HasTarget/Liveness directly, not from State, so State
	// can never desynchronize from the fields that drive behavior.
	State InterceptorState
}

// InterceptorState enumerates the interceptor lifecycle state machine.
type InterceptorState int

const (
	Stowed InterceptorState = iota
	Launched
	Tracking
	Coasting
	Terminal
)

func (s InterceptorState) String() string {
	switch s {
	case Stowed:
		return "stowed"
	case Launched:
		return "launched"
	case Tracking:
		return "tracking"
	case Coasting:
		return "coasting"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Detection is one radar contact: the detected entity and its observed
// position at the instant of detection.
type Detection struct {
	Entity   EntityID
	Position simmath.Vector3
}

// Radar holds a station's detection parameters and the most recent
// detection set. Detections are a snapshot and do not persist across ticks
// on which the radar did not fire.
type Radar struct {
	Station        simmath.Vector3
	MaxRange       float64 // R_max, m
	Period         float64 // detect_interval, s
	Clock          float64 // accumulator, s

	Detections []Detection

	// Observational only, never read by systems:
	TotalDetections   int
	LastDetectionTick int
}
