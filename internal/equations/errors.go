package equations

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSolver means the equation has no solver for the requested target.
	ErrMissingSolver = errors.New("no solver for target")
	// ErrMissingInput means a value the solver needs was not supplied.
	ErrMissingInput = errors.New("missing input value")
	// ErrNumericDomain means the solver produced NaN or an infinity,
	// e.g. from a division by zero or the log of a non-positive number.
	ErrNumericDomain = errors.New("result outside numeric domain")
	// ErrNoUniqueUnknown means the equation does not have exactly one unknown.
	ErrNoUniqueUnknown = errors.New("no unique unknown")
)

// SolveError reports why an equation could not be solved for a target.
type SolveError struct {
	Kind     error
	Equation string
	Target   string
	Msg      string
}

func (e *SolveError) Error() string {
	if e == nil {
		return ""
	}
	s := fmt.Sprintf("%s: solving %s", e.Kind.Error(), e.Equation)
	if e.Target != "" {
		s += " for " + e.Target
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func (e *SolveError) Unwrap() error { return e.Kind }
