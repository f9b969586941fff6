package similarity

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is matched by every ScoringError.
var ErrMalformedInput = errors.New("malformed scoring input")

// ScoringError reports input that violates the scoring contract, such as
// vectors of different dimensionality.
type ScoringError struct {
	Op     string
	Reason string
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *ScoringError) Is(target error) bool {
	return target == ErrMalformedInput
}

func dimensionMismatch(op string, a, b int) *ScoringError {
	return &ScoringError{
		Op:     op,
		Reason: fmt.Sprintf("vector dimensions differ: %d != %d", a, b),
	}
}
