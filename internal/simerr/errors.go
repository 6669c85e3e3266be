// Package simerr defines the tagged error kinds the simulation can raise:
// config-parse, config-validate, numerical, and output-io. The shape is
// generalized from an HTTP-style API error (a status code attached to a
// wrapped error) by swapping the status code for a Kind.
package simerr

import "fmt"

// Kind discriminates the error categories a run can fail with.
type Kind int

const (
	// ConfigParse means a YAML parameter or scenario file was malformed.
	ConfigParse Kind = iota
	// ConfigValidate means a file parsed but failed a validation rule
	// (negative mass, tau <= 0, negative dt, r_max <= 0, ...).
	ConfigValidate
	// Numerical means a Transform field became non-finite after an update;
	// this is always treated as a programmer error and aborts the run.
	Numerical
	// OutputIO means a CSV write failed.
	OutputIO
)

func (k Kind) String() string {
	switch k {
	case ConfigParse:
		return "config-parse"
	case ConfigValidate:
		return "config-validate"
	case Numerical:
		return "numerical"
	case OutputIO:
		return "output-io"
	default:
		return "unknown"
	}
}

// Error is a tagged simulation error. Entity and Tick are populated only for
// Numerical errors; they are the zero value otherwise.
type Error struct {
	Kind   Kind
	Entity uint32
	Tick   int
	Err    error
}

func (e *Error) Error() string {
	if e.Kind == Numerical {
		return fmt.Sprintf("%s: entity %d at tick %d: %v", e.Kind, e.Entity, e.Tick, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error { return e.Err }

// New wraps err with the given Kind.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// NewNumerical wraps err as a Numerical error tagged with the offending
// entity and tick.
func NewNumerical(entity uint32, tick int, err error) *Error {
	return &Error{Kind: Numerical, Entity: entity, Tick: tick, Err: err}
}

// ExitCode maps a run's outcome to a process exit code: 0 only on normal
// termination, non-zero for any input-parse, validation, numerical, or
// write failure, since the run could not complete as requested.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
