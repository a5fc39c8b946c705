package config

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/relaxfit/curve"
	"github.com/katalvlaran/relaxfit/fit"
	"github.com/katalvlaran/relaxfit/session"
)

// Config is the resolved run configuration. YAML keys match the viper keys
// and, upper-cased with the RELAXFIT_ prefix, the environment variables.
type Config struct {
	Model         string   `yaml:"model"`
	Algorithm     string   `yaml:"algorithm"`
	Data          string   `yaml:"data"`
	Delimiter     string   `yaml:"delimiter"`
	DefaultSD     float64  `yaml:"default_sd"` // 0 ⇒ the data must carry an sd column
	Order         []string `yaml:"order,omitempty"`
	Scaling       Scaling  `yaml:"scaling"`
	MaxIterations int      `yaml:"max_iterations"`
	FuncTol       float64  `yaml:"func_tol"`
	GradTol       float64  `yaml:"grad_tol"`
	Constraints   bool     `yaml:"constraints"`
	GridPoints    int      `yaml:"grid_points"` // nodes per parameter; 0 disables the pre-search
	MonteCarlo    int      `yaml:"monte_carlo"` // simulations; 0 disables error estimation by resampling
	Seed          uint64   `yaml:"seed"`
	Plot          string   `yaml:"plot,omitempty"`    // image written with gonum/plot
	Preview       string   `yaml:"preview,omitempty"` // gnuplot output file
	LogLevel      string   `yaml:"log_level"`
}

// Scaling is either automatic, an explicit vector, or none (identity).
type Scaling struct {
	Auto   bool
	Values []float64
}

const (
	scalingAuto = "auto"
	scalingNone = "none"
)

// String renders s the way it is written in files and flags.
func (s Scaling) String() string {
	if s.Auto {
		return scalingAuto
	}
	if len(s.Values) == 0 {
		return scalingNone
	}
	parts := make([]string, len(s.Values))
	for i, v := range s.Values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	return strings.Join(parts, ",")
}

// MarshalYAML implements yaml.Marshaler.
func (s Scaling) MarshalYAML() (any, error) {
	if s.Auto || len(s.Values) == 0 {
		return s.String(), nil
	}

	return s.Values, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Model:         curve.Exp.String(),
		Algorithm:     fit.LevenbergMarquardt.String(),
		Delimiter:     ",",
		MaxIterations: fit.DefaultMaxIterations,
		FuncTol:       fit.DefaultFuncTol,
		GradTol:       fit.DefaultGradTol,
		Constraints:   true,
		Seed:          1,
		LogLevel:      "info",
	}
}

// Kind returns the parsed model kind.
func (c *Config) Kind() (curve.Kind, error) { return curve.ParseKind(c.Model) }

// Method returns the parsed minimiser.
func (c *Config) Method() (fit.Method, error) { return fit.ParseMethod(c.Algorithm) }

// Roles returns the parsed parameter order, or nil for the canonical order.
func (c *Config) Roles() ([]curve.Role, error) {
	if len(c.Order) == 0 {
		return nil, nil
	}
	roles := make([]curve.Role, len(c.Order))
	for i, name := range c.Order {
		r, err := curve.ParseRole(name)
		if err != nil {
			return nil, err
		}
		roles[i] = r
	}

	return roles, nil
}

// SessionOptions translates the configuration into session setup options.
func (c *Config) SessionOptions(logger *zap.Logger) ([]session.Option, error) {
	opts := []session.Option{session.WithLogger(logger)}
	roles, err := c.Roles()
	if err != nil {
		return nil, fmt.Errorf("SessionOptions: %w", err)
	}
	if roles != nil {
		opts = append(opts, session.WithOrder(roles...))
	}
	switch {
	case c.Scaling.Auto:
		opts = append(opts, session.WithAutoScaling())
	case len(c.Scaling.Values) > 0:
		opts = append(opts, session.WithScaling(c.Scaling.Values))
	}

	return opts, nil
}

// Settings translates the configuration into minimiser settings.
func (c *Config) Settings(logger *zap.Logger) (fit.Settings, error) {
	m, err := c.Method()
	if err != nil {
		return fit.Settings{}, fmt.Errorf("Settings: %w", err)
	}

	return fit.Settings{
		Method:        m,
		MaxIterations: c.MaxIterations,
		FuncTol:       c.FuncTol,
		GradTol:       c.GradTol,
		Constraints:   c.Constraints,
		Logger:        logger,
	}, nil
}
