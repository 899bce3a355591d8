package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for kernel operations.
var (
	// ErrInvalidBodyCount indicates a negative body count at construction.
	ErrInvalidBodyCount = errors.New("dynamo: body count must be non-negative")

	// ErrNegativeSteps indicates a negative step count passed to Run.
	ErrNegativeSteps = errors.New("dynamo: step count must be non-negative")

	// ErrInvalidState indicates a position or velocity became NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")
)

// SimulationError wraps an error with the step it occurred on.
type SimulationError struct {
	Step    int
	Body    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (body %d): %v", e.Step, e.Body, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
