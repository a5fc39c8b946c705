package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override (RELAXFIT_MODEL, ...).
const EnvPrefix = "RELAXFIT"

// flagBindings maps viper keys (= YAML keys) to pflag names.
var flagBindings = map[string]string{
	"model":          "model",
	"algorithm":      "algorithm",
	"data":           "data",
	"delimiter":      "delimiter",
	"default_sd":     "default-sd",
	"order":          "order",
	"scaling":        "scaling",
	"max_iterations": "max-iterations",
	"func_tol":       "func-tol",
	"grad_tol":       "grad-tol",
	"constraints":    "constraints",
	"grid_points":    "grid-points",
	"monte_carlo":    "monte-carlo",
	"seed":           "seed",
	"plot":           "plot",
	"preview":        "preview",
	"log_level":      "log-level",
}

// RegisterFlags defines one flag per configuration key on fs, with the
// built-in defaults.
func RegisterFlags(fs *flag.FlagSet) {
	d := Default()
	fs.StringP("model", "m", d.Model, "curve model (exp, exp-growth, exp-neg, exp-neg-growth, plateau, plateau-neg, inv, sat, cpmg-fast)")
	fs.StringP("algorithm", "a", d.Algorithm, "minimiser (simplex, bfgs, lbfgs, newton, lm)")
	fs.StringP("data", "d", d.Data, "data file with x, y[, sd] columns")
	fs.String("delimiter", d.Delimiter, "field delimiter of the data file")
	fs.Float64("default-sd", d.DefaultSD, "standard deviation for two-column data (0 requires an sd column)")
	fs.String("order", "", "comma-separated parameter order, e.g. i0,rx")
	fs.String("scaling", d.Scaling.String(), "parameter scaling: auto, none or a comma-separated vector")
	fs.Int("max-iterations", d.MaxIterations, "maximum minimiser iterations")
	fs.Float64("func-tol", d.FuncTol, "absolute chi2 convergence tolerance")
	fs.Float64("grad-tol", d.GradTol, "gradient convergence tolerance")
	fs.Bool("constraints", d.Constraints, "keep parameters non-negative in the grid search and warn after the fit")
	fs.Int("grid-points", d.GridPoints, "grid search nodes per parameter (0 disables)")
	fs.Int("monte-carlo", d.MonteCarlo, "Monte Carlo simulations for parameter errors (0 disables)")
	fs.Uint64("seed", d.Seed, "random seed for Monte Carlo noise")
	fs.String("plot", d.Plot, "write a plot of data and fit to this file (.png, .svg, .pdf)")
	fs.String("preview", d.Preview, "render a gnuplot preview to this file (binaries built with -tags gnuplot)")
	fs.String("log-level", d.LogLevel, "log level (trace, debug, info, warn, error)")
}

// Load loads and validates the configuration.
// Precedence: flags > env > file > defaults.
// path may be empty and flagSet may be nil.
func Load(path string, flagSet *flag.FlagSet) (*Config, error) {
	cfg, err := load(path, flagSet)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Validate required configuration (fail-fast)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func load(path string, flagSet *flag.FlagSet) (*Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("model", d.Model)
	v.SetDefault("algorithm", d.Algorithm)
	v.SetDefault("data", d.Data)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("default_sd", d.DefaultSD)
	v.SetDefault("order", "")
	v.SetDefault("scaling", d.Scaling.String())
	v.SetDefault("max_iterations", d.MaxIterations)
	v.SetDefault("func_tol", d.FuncTol)
	v.SetDefault("grad_tol", d.GradTol)
	v.SetDefault("constraints", d.Constraints)
	v.SetDefault("grid_points", d.GridPoints)
	v.SetDefault("monte_carlo", d.MonteCarlo)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("plot", d.Plot)
	v.SetDefault("preview", d.Preview)
	v.SetDefault("log_level", d.LogLevel)

	if path != "" {
		file, err := readFile(path)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(file); err != nil {
			return nil, fmt.Errorf("failed to merge %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if flagSet != nil {
		for key, name := range flagBindings {
			if f := flagSet.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	order, err := stringList(v.Get("order"))
	if err != nil {
		return nil, fmt.Errorf("order: %w", err)
	}
	scaling, err := parseScaling(v.Get("scaling"))
	if err != nil {
		return nil, fmt.Errorf("scaling: %w", err)
	}

	return &Config{
		Model:         v.GetString("model"),
		Algorithm:     v.GetString("algorithm"),
		Data:          v.GetString("data"),
		Delimiter:     v.GetString("delimiter"),
		DefaultSD:     v.GetFloat64("default_sd"),
		Order:         order,
		Scaling:       scaling,
		MaxIterations: v.GetInt("max_iterations"),
		FuncTol:       v.GetFloat64("func_tol"),
		GradTol:       v.GetFloat64("grad_tol"),
		Constraints:   v.GetBool("constraints"),
		GridPoints:    v.GetInt("grid_points"),
		MonteCarlo:    v.GetInt("monte_carlo"),
		Seed:          v.GetUint64("seed"),
		Plot:          v.GetString("plot"),
		Preview:       v.GetString("preview"),
		LogLevel:      v.GetString("log_level"),
	}, nil
}

// readFile decodes a YAML configuration file into a key map.
func readFile(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return out, nil
}

// Marshal encodes cfg as YAML, in the same shape Load reads.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

var errListValue = errors.New("unsupported list value")

// stringList accepts a YAML sequence or a comma-separated string.
func stringList(raw any) ([]string, error) {
	switch t := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return splitCSV(t), nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, len(t))
		for i, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %v", errListValue, e)
			}
			out[i] = strings.TrimSpace(s)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", errListValue, raw)
	}
}

// parseScaling accepts "auto", "none", a comma-separated string or a YAML
// sequence of numbers.
func parseScaling(raw any) (Scaling, error) {
	switch t := raw.(type) {
	case nil:
		return Scaling{}, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case scalingAuto:
			return Scaling{Auto: true}, nil
		case scalingNone, "":
			return Scaling{}, nil
		}
		parts := splitCSV(t)
		vals := make([]float64, len(parts))
		for i, p := range parts {
			f, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return Scaling{}, fmt.Errorf("%w: %q", errListValue, p)
			}
			vals[i] = f
		}

		return Scaling{Values: vals}, nil
	case []any:
		vals := make([]float64, len(t))
		for i, e := range t {
			switch n := e.(type) {
			case int:
				vals[i] = float64(n)
			case float64:
				vals[i] = n
			default:
				return Scaling{}, fmt.Errorf("%w: %v", errListValue, e)
			}
		}

		return Scaling{Values: vals}, nil
	case []float64:
		return Scaling{Values: append([]float64(nil), t...)}, nil
	default:
		return Scaling{}, fmt.Errorf("%w: %T", errListValue, raw)
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
