// SPDX-License-Identifier: MIT

package fit

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/optimize"
)

// Method selects the minimiser.
type Method int

const (
	// NelderMead is the derivative-free simplex method.
	NelderMead Method = iota
	// BFGS is the quasi-Newton method using the analytic gradient.
	BFGS
	// LBFGS is the limited-memory BFGS variant.
	LBFGS
	// Newton uses the analytic gradient and Hessian.
	Newton
	// LevenbergMarquardt minimises the weighted residuals directly.
	LevenbergMarquardt
)

var methodNames = [...]string{
	NelderMead:         "simplex",
	BFGS:               "bfgs",
	LBFGS:              "lbfgs",
	Newton:             "newton",
	LevenbergMarquardt: "lm",
}

// String returns the configuration name of m.
func (m Method) String() string {
	if m < NelderMead || m > LevenbergMarquardt {
		return fmt.Sprintf("Method(%d)", int(m))
	}

	return methodNames[m]
}

// ParseMethod maps a configuration name to its Method.
func ParseMethod(name string) (Method, error) {
	for m, n := range methodNames {
		if n == name {
			return Method(m), nil
		}
	}

	return 0, fmt.Errorf("ParseMethod(%q): %w", name, ErrUnknownMethod)
}

// NeedsDerivatives reports whether m requires analytic derivatives.
func (m Method) NeedsDerivatives() bool {
	return m == BFGS || m == LBFGS || m == Newton || m == LevenbergMarquardt
}

// gonum returns the optimize.Method for m, or nil for methods run elsewhere.
func (m Method) gonum() optimize.Method {
	switch m {
	case NelderMead:
		return &optimize.NelderMead{}
	case BFGS:
		return &optimize.BFGS{}
	case LBFGS:
		return &optimize.LBFGS{}
	case Newton:
		return &optimize.Newton{}
	default:
		return nil
	}
}

// Defaults.
const (
	DefaultMaxIterations = 1000
	DefaultFuncTol       = 1e-25
	DefaultGradTol       = 1e-12
)

// Settings configures a minimisation.
type Settings struct {
	Method        Method
	MaxIterations int     // major iterations; 0 ⇒ DefaultMaxIterations
	FuncTol       float64 // absolute χ² change for convergence; 0 ⇒ DefaultFuncTol
	GradTol       float64 // ‖∇χ²‖∞ threshold; 0 ⇒ DefaultGradTol
	Constraints   bool    // enforce θ ≥ curve.Lower in Grid, warn in Minimize
	Logger        *zap.Logger
}

// DefaultSettings returns Levenberg–Marquardt with default tolerances and constraints on.
func DefaultSettings() Settings {
	return Settings{
		Method:        LevenbergMarquardt,
		MaxIterations: DefaultMaxIterations,
		FuncTol:       DefaultFuncTol,
		GradTol:       DefaultGradTol,
		Constraints:   true,
	}
}

func (s Settings) withDefaults() Settings {
	if s.MaxIterations <= 0 {
		s.MaxIterations = DefaultMaxIterations
	}
	if s.FuncTol <= 0 {
		s.FuncTol = DefaultFuncTol
	}
	if s.GradTol <= 0 {
		s.GradTol = DefaultGradTol
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}

	return s
}

// Result is the outcome of one fit. Params are model-frame, vector order.
type Result struct {
	Params     []float64
	Chi2       float64
	Iterations int
	FuncEvals  int
	GradEvals  int
	HessEvals  int
	Status     string
	Warning    string
}
