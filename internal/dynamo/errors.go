package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidBody indicates a non-positive radius or mass, a negative
	// coefficient, or a non-finite spawn value.
	ErrInvalidBody = errors.New("dynamo: invalid body parameters")

	// ErrInvalidConstants indicates non-positive gravity or terminal velocity.
	ErrInvalidConstants = errors.New("dynamo: invalid physics constants")

	// ErrInvalidRun indicates a run request with a non-positive tick count.
	ErrInvalidRun = errors.New("dynamo: invalid run options")

	// ErrNoVariants indicates an ensemble with nothing to run.
	ErrNoVariants = errors.New("dynamo: ensemble has no variants")
)

// TickError wraps a failure raised while resolving the collision of bodies
// I and J during a tick.
type TickError struct {
	Tick    int
	I, J    int
	Wrapped error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d (bodies %d,%d): %v", e.Tick, e.I, e.J, e.Wrapped)
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
