package session

import (
	"errors"
	"fmt"
)

var (
	// ErrNilModel indicates a Session constructed without a curve model.
	ErrNilModel = errors.New("session: nil model")

	// ErrInvalidData indicates malformed observations: unequal lengths, no
	// points, non-finite values or non-positive standard deviations.
	ErrInvalidData = errors.New("session: invalid observation data")

	// ErrInvalidScaling indicates a scaling vector of the wrong length or with
	// non-positive or non-finite entries.
	ErrInvalidScaling = errors.New("session: invalid scaling vector")

	// ErrInvalidOrder indicates a role order that is not a permutation of the model roles.
	ErrInvalidOrder = errors.New("session: invalid parameter order")

	// ErrParamCount indicates a parameter vector whose length differs from M.
	ErrParamCount = errors.New("session: parameter count mismatch")

	// ErrNoEvaluation indicates an accessor called before any derivative evaluation.
	ErrNoEvaluation = errors.New("session: no derivative evaluation yet")
)

// sessionErrorf wraps err with the operation name.
func sessionErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// dataErrorf tags a low-level validation error as ErrInvalidData while keeping
// the original sentinel reachable through errors.Is.
func dataErrorf(field string, err error) error {
	return fmt.Errorf("Setup: %s: %w: %w", field, ErrInvalidData, err)
}
