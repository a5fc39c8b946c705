package curve

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKind indicates a Kind or model name outside the closed set.
	ErrUnknownKind = errors.New("curve: unknown model kind")

	// ErrUnknownRole indicates a Role the model does not carry.
	ErrUnknownRole = errors.New("curve: role not present in model")

	// ErrParamCount indicates a parameter vector whose length differs from the model arity.
	ErrParamCount = errors.New("curve: parameter count does not match model")

	// ErrDimensionMismatch indicates that dst and x differ in length, or a
	// Jacobian/Hessian has the wrong shape.
	ErrDimensionMismatch = errors.New("curve: dimension mismatch")

	// ErrNotImplemented marks a derivative path a model does not support.
	ErrNotImplemented = errors.New("curve: derivative not implemented for model")

	// ErrEstimate indicates the data cannot support an initial estimate
	// (too few points, or no usable positive values for a log-linear fit).
	ErrEstimate = errors.New("curve: cannot estimate initial parameters")
)

// curveErrorf tags err with the model kind and operation.
func curveErrorf(k Kind, op string, err error) error {
	return fmt.Errorf("%s.%s: %w", k, op, err)
}
