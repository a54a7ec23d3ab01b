package interp

import (
	"fmt"
	"math"
)

// ArgumentError reports a line whose syntax matched a rule but whose
// structural preconditions did not hold (wrong field count, unknown phase
// name). It is caught per line and surfaces as an execution_error result;
// it never propagates out of Execute.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string { return e.Message }

// ConservationError reports that the post-condition check on an exact
// exchange found the pair's total energy changed beyond tolerance. Caught
// per line and surfaced as a conservation_violation result.
type ConservationError struct {
	Before, After float64
}

func (e *ConservationError) Error() string {
	return fmt.Sprintf("energy not conserved: %v -> %v, difference: %v",
		e.Before, e.After, math.Abs(e.Before-e.After))
}
