package chi2

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch indicates that observed, predicted, sd or the
	// derivative arrays disagree on N or M.
	ErrDimensionMismatch = errors.New("chi2: dimension mismatch")

	// ErrInvalidSD indicates a standard deviation that is zero, negative, NaN or Inf.
	ErrInvalidSD = errors.New("chi2: standard deviation must be finite and > 0")

	// ErrNilArgument indicates a nil matrix, tensor or output argument.
	ErrNilArgument = errors.New("chi2: nil argument")
)

// chi2Errorf wraps an underlying error with the operation name.
func chi2Errorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
