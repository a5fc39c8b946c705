package fit

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData indicates too few points to fit the model without over-fitting.
	ErrInsufficientData = errors.New("fit: insufficient data points")

	// ErrUnknownMethod indicates a Method outside the defined set.
	ErrUnknownMethod = errors.New("fit: unknown minimisation method")

	// ErrSingular indicates a normal matrix JᵀWJ that is not positive definite.
	ErrSingular = errors.New("fit: singular normal matrix")

	// ErrBadGrid indicates inconsistent grid bounds or increments.
	ErrBadGrid = errors.New("fit: invalid grid definition")

	// ErrNoFeasiblePoint indicates a constrained grid with no feasible node.
	ErrNoFeasiblePoint = errors.New("fit: no feasible grid point")

	// ErrDiverged indicates the minimiser failed numerically.
	ErrDiverged = errors.New("fit: minimisation diverged")
)

func fitErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
