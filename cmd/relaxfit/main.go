// Command relaxfit fits a relaxation curve to a data file and reports the
// parameters with their errors.
//
//	relaxfit -m plateau --scaling auto --monte-carlo 500 peak12.csv
//
// Every flag can also be given in a YAML file (-c) or as a RELAXFIT_*
// environment variable; see package config.
package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/katalvlaran/relaxfit/config"
	"github.com/katalvlaran/relaxfit/curve"
	"github.com/katalvlaran/relaxfit/dataset"
	"github.com/katalvlaran/relaxfit/fit"
	"github.com/katalvlaran/relaxfit/internal/logging"
	"github.com/katalvlaran/relaxfit/plotting"
	"github.com/katalvlaran/relaxfit/session"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "relaxfit:", err)
		os.Exit(1)
	}
}

// run parses args, performs one fit and writes the report to out.
func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("relaxfit", flag.ContinueOnError)
	fs.SetOutput(out)
	config.RegisterFlags(fs)
	cfgPath := fs.StringP("config", "c", "", "YAML configuration file")
	dump := fs.Bool("dump-config", false, "print the resolved configuration and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("expected at most one data file, got %d", fs.NArg())
	}
	if fs.NArg() == 1 {
		if err := fs.Set("data", fs.Arg(0)); err != nil {
			return err
		}
	}

	cfg, err := config.Load(*cfgPath, fs)
	if err != nil {
		return err
	}
	if *dump {
		b, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = out.Write(b)

		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return fitAndReport(cfg, logger, out)
}

func fitAndReport(cfg *config.Config, logger *zap.Logger, out io.Writer) error {
	dopts := []dataset.Option{dataset.WithDelimiter([]rune(cfg.Delimiter)[0])}
	if cfg.DefaultSD > 0 {
		dopts = append(dopts, dataset.WithDefaultSD(cfg.DefaultSD))
	}
	series, err := dataset.ReadFile(cfg.Data, dopts...)
	if err != nil {
		return err
	}
	logger.Info("data loaded", zap.String("path", cfg.Data),
		zap.Int("points", series.Len()),
		zap.String("fingerprint", fmt.Sprintf("%016x", series.Fingerprint())),
	)

	kind, err := cfg.Kind()
	if err != nil {
		return err
	}
	model, err := curve.New(kind)
	if err != nil {
		return err
	}
	sopts, err := cfg.SessionOptions(logger)
	if err != nil {
		return err
	}
	s, err := session.New(model, series.Data(), sopts...)
	if err != nil {
		return err
	}

	x0, err := initialGuess(cfg, s, series)
	if err != nil {
		return err
	}

	set, err := cfg.Settings(logger)
	if err != nil {
		return err
	}
	res, err := fit.Minimize(s, x0, set)
	if err != nil {
		return err
	}
	if res.Warning != "" {
		logger.Warn("constraint violated", zap.String("warning", res.Warning))
	}

	var errs []float64
	if cov, err := fit.Covariance(s, res.Params); err != nil {
		logger.Warn("covariance unavailable", zap.Error(err))
	} else {
		errs = fit.ParamErrors(cov)
	}

	var mc *fit.MCResult
	if cfg.MonteCarlo > 0 {
		mc, err = fit.MonteCarlo(s, res.Params, cfg.MonteCarlo, set, rand.NewPCG(cfg.Seed, cfg.Seed+1))
		if err != nil {
			return err
		}
	}

	report(out, s, res, errs, mc)

	if cfg.Plot != "" {
		if err := plotting.SaveFit(cfg.Plot, s, res.Params); err != nil {
			return err
		}
		logger.Info("plot written", zap.String("path", cfg.Plot))
	}
	if cfg.Preview != "" {
		if err := preview(cfg.Preview, s, res.Params); err != nil {
			return err
		}
	}

	return nil
}

// initialGuess estimates the start vector from the data and, when a grid is
// configured, refines it by a grid search around the estimate.
func initialGuess(cfg *config.Config, s *session.Session, series *dataset.Series) ([]float64, error) {
	est, err := curve.Estimate(s.Model().Kind(), series.X, series.Y)
	if err != nil {
		return nil, err
	}
	x0, err := s.VectorOrder(est)
	if err != nil {
		return nil, err
	}
	if cfg.GridPoints == 0 {
		return x0, nil
	}

	// Estimates are non-negative; the grid spans [lower bound, 2·estimate].
	m := len(x0)
	lower := make([]float64, m)
	upper := make([]float64, m)
	inc := make([]int, m)
	for j, r := range s.Roles() {
		lower[j] = math.Max(curve.Lower(r), 0)
		upper[j] = 2 * x0[j]
		if upper[j] <= lower[j] {
			upper[j] = lower[j] + 1
		}
		inc[j] = cfg.GridPoints
	}
	g, err := fit.Grid(s, lower, upper, inc, cfg.Constraints)
	if err != nil {
		return nil, err
	}

	return g.Params, nil
}

func report(out io.Writer, s *session.Session, res *fit.Result, errs []float64, mc *fit.MCResult) {
	fmt.Fprintf(out, "model      %s\n", s.Model().Kind())
	fmt.Fprintf(out, "points     %d\n", s.NumPoints())
	fmt.Fprintf(out, "chi2       %.6g\n", res.Chi2)
	fmt.Fprintf(out, "iterations %d (%s)\n", res.Iterations, res.Status)
	if res.Warning != "" {
		fmt.Fprintf(out, "warning    %s\n", res.Warning)
	}
	fmt.Fprintf(out, "\n%-6s %14s %14s", "param", "value", "error")
	if mc != nil {
		fmt.Fprintf(out, " %14s", "mc error")
	}
	fmt.Fprintln(out)
	for j, r := range s.Roles() {
		fmt.Fprintf(out, "%-6s %14.6g", r, res.Params[j])
		if errs != nil {
			fmt.Fprintf(out, " %14.6g", errs[j])
		} else {
			fmt.Fprintf(out, " %14s", "-")
		}
		if mc != nil {
			fmt.Fprintf(out, " %14.6g", mc.SD[j])
		}
		fmt.Fprintln(out)
	}
	if mc != nil && mc.Failed > 0 {
		fmt.Fprintf(out, "\n%d of %d simulations failed\n", mc.Failed, mc.Failed+len(mc.Params))
	}
}
