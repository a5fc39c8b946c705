package config

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/katalvlaran/relaxfit/fit"
	"github.com/katalvlaran/relaxfit/internal/logging"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

func invalidf(key, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalid, key, fmt.Sprintf(format, args...))
}

// Validate checks cfg and returns the first problem found.
func Validate(cfg *Config) error {
	if cfg == nil {
		return invalidf("config", "nil")
	}
	kind, err := cfg.Kind()
	if err != nil {
		return invalidf("model", "%v", err)
	}
	method, err := cfg.Method()
	if err != nil {
		return invalidf("algorithm", "%v", err)
	}
	if method.NeedsDerivatives() && !kind.Differentiable() {
		return invalidf("algorithm", "%s needs analytic derivatives, which %s does not provide; use %s",
			method, kind, fit.NelderMead)
	}
	if cfg.Data == "" {
		return invalidf("data", "required")
	}
	if utf8.RuneCountInString(cfg.Delimiter) != 1 {
		return invalidf("delimiter", "must be a single character, got %q", cfg.Delimiter)
	}
	if !finiteNonNeg(cfg.DefaultSD) {
		return invalidf("default_sd", "must be finite and >= 0, got %g", cfg.DefaultSD)
	}

	m := len(kind.Roles())
	roles, err := cfg.Roles()
	if err != nil {
		return invalidf("order", "%v", err)
	}
	if roles != nil {
		if len(roles) != m {
			return invalidf("order", "%s takes %d parameters, got %d", kind, m, len(roles))
		}
		seen := make(map[string]bool, m)
		for _, r := range roles {
			if seen[r.String()] {
				return invalidf("order", "duplicate %s", r)
			}
			seen[r.String()] = true
		}
	}
	if n := len(cfg.Scaling.Values); n > 0 {
		if n != m {
			return invalidf("scaling", "%s takes %d parameters, got %d", kind, m, n)
		}
		for i, s := range cfg.Scaling.Values {
			if !(s > 0) || math.IsInf(s, 0) {
				return invalidf("scaling", "entry %d must be finite and > 0, got %g", i, s)
			}
		}
	}

	if cfg.MaxIterations <= 0 {
		return invalidf("max_iterations", "must be > 0, got %d", cfg.MaxIterations)
	}
	if !(cfg.FuncTol > 0) || math.IsInf(cfg.FuncTol, 0) {
		return invalidf("func_tol", "must be finite and > 0, got %g", cfg.FuncTol)
	}
	if !(cfg.GradTol > 0) || math.IsInf(cfg.GradTol, 0) {
		return invalidf("grad_tol", "must be finite and > 0, got %g", cfg.GradTol)
	}
	if cfg.GridPoints < 0 || cfg.GridPoints == 1 {
		return invalidf("grid_points", "must be 0 or >= 2, got %d", cfg.GridPoints)
	}
	if cfg.MonteCarlo < 0 {
		return invalidf("monte_carlo", "must be >= 0, got %d", cfg.MonteCarlo)
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return invalidf("log_level", "%v", err)
	}

	return nil
}

func finiteNonNeg(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
