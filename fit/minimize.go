// SPDX-License-Identifier: MIT

package fit

import (
	"fmt"
	"math"

	"github.com/maorshutman/lm"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/katalvlaran/relaxfit/curve"
	"github.com/katalvlaran/relaxfit/session"
)

// minPoints is the smallest data set fitted without deselection.
const minPoints = 3

// Minimize fits s starting from the model-frame vector x0.
//
// Stage 1 (Validate): enough points, method available for the model.
// Stage 2 (Execute):  run the minimiser in the raw (scaled) frame.
// Stage 3 (Report):   undo scaling, evaluate final χ², check constraints.
func Minimize(s *session.Session, x0 []float64, set Settings) (*Result, error) {
	set = set.withDefaults()
	if err := checkPoints(s); err != nil {
		return nil, fitErrorf("Minimize", err)
	}
	if set.Method < NelderMead || set.Method > LevenbergMarquardt {
		return nil, fitErrorf("Minimize", ErrUnknownMethod)
	}
	if set.Method.NeedsDerivatives() && !s.Model().Differentiable() {
		return nil, fitErrorf("Minimize", fmt.Errorf("%s on %s: %w", set.Method, s.Model().Kind(), curve.ErrNotImplemented))
	}
	raw0, err := s.FromModel(x0)
	if err != nil {
		return nil, fitErrorf("Minimize", err)
	}
	// Prime the session: a clean initial evaluation clears stale errors.
	if _, err = s.Func(raw0); err != nil {
		return nil, fitErrorf("Minimize", err)
	}

	var res *Result
	if set.Method == LevenbergMarquardt {
		res, err = levenbergMarquardt(s, raw0, set)
	} else {
		res, err = gonumMinimize(s, raw0, set)
	}
	if err != nil {
		return nil, fitErrorf("Minimize", err)
	}
	if set.Constraints {
		res.Warning = constraintWarning(s.Roles(), res.Params)
	}
	set.Logger.Debug("fit finished",
		zap.Stringer("model", s.Model().Kind()),
		zap.Stringer("method", set.Method),
		zap.Float64s("params", res.Params),
		zap.Float64("chi2", res.Chi2),
		zap.Int("iterations", res.Iterations),
		zap.String("status", res.Status),
	)

	return res, nil
}

func checkPoints(s *session.Session) error {
	n, m := s.NumPoints(), s.NumParams()
	if n < minPoints || n < m {
		return fmt.Errorf("%d points for %d parameters: %w", n, m, ErrInsufficientData)
	}

	return nil
}

func gonumMinimize(s *session.Session, raw0 []float64, set Settings) (*Result, error) {
	settings := &optimize.Settings{
		MajorIterations:   set.MaxIterations,
		GradientThreshold: set.GradTol,
		Converger: &optimize.FunctionConverge{
			Absolute:   set.FuncTol,
			Iterations: 100,
		},
	}
	out, err := optimize.Minimize(s.Problem(), raw0, settings, set.Method.gonum())
	if out == nil {
		return nil, err
	}
	if err != nil {
		// Failure statuses still carry the best location; keep it unless it is unusable.
		if math.IsInf(out.F, 0) || math.IsNaN(out.F) {
			return nil, fmt.Errorf("%w: %w", ErrDiverged, err)
		}
		set.Logger.Debug("minimiser stopped with error", zap.Error(err))
	}

	res, ferr := report(s, out.X)
	if ferr != nil {
		return nil, ferr
	}
	res.Iterations = out.MajorIterations
	res.FuncEvals = out.FuncEvaluations
	res.GradEvals = out.GradEvaluations
	res.HessEvals = out.HessEvaluations
	res.Status = out.Status.String()

	return res, nil
}

// levenbergMarquardt minimises ½‖f‖² with f = (pred − obs)/sd, whose Jacobian
// is the optimizer-frame model Jacobian divided by sd, transposed to N×M.
func levenbergMarquardt(s *session.Session, raw0 []float64, set Settings) (res *Result, err error) {
	n, m := s.NumPoints(), s.NumParams()
	sd := s.Data().SD
	var evalErr error
	funcs, jacs := 0, 0

	problem := lm.LMProblem{
		Dim:  m,
		Size: n,
		Func: func(dst, x []float64) {
			funcs++
			r, err := s.Residuals(x)
			if err != nil {
				evalErr = err
				for i := range dst {
					dst[i] = math.Inf(1)
				}
				return
			}
			for i, v := range r {
				dst[i] = -v
			}
		},
		Jac: func(dst *mat.Dense, x []float64) {
			jacs++
			jac, err := s.ModelJacobian(x)
			if err != nil {
				evalErr = err
				return
			}
			for j := 0; j < m; j++ {
				row, _ := jac.Row(j)
				for i, v := range row {
					dst.Set(i, j, v/sd[i])
				}
			}
		},
		InitParams: raw0,
		Tau:        1e-3,
		Eps1:       set.GradTol,
		Eps2:       1e-12,
	}

	defer func() {
		// lm panics when the damped normal equations are singular.
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: %v", ErrDiverged, r)
		}
	}()

	out, err := lm.LM(problem, &lm.Settings{Iterations: set.MaxIterations, ObjectiveTol: set.FuncTol})
	if err != nil {
		return nil, err
	}
	if evalErr != nil {
		return nil, evalErr
	}

	res, err = report(s, out.X)
	if err != nil {
		return nil, err
	}
	res.Iterations = jacs
	res.FuncEvals = funcs
	res.GradEvals = jacs
	res.Status = out.Status.String()

	return res, nil
}

// report converts the raw optimum into a model-frame Result.
func report(s *session.Session, raw []float64) (*Result, error) {
	params, err := s.ToModel(raw)
	if err != nil {
		return nil, err
	}
	chi, err := s.Func(raw)
	if err != nil {
		return nil, err
	}

	return &Result{Params: params, Chi2: chi}, nil
}

// constraintWarning names every parameter that ended below its lower bound.
func constraintWarning(roles []curve.Role, params []float64) string {
	msg := ""
	for j, r := range roles {
		if params[j] < curve.Lower(r) {
			if msg != "" {
				msg += "; "
			}
			msg += fmt.Sprintf("%s=%g below %g", r, params[j], curve.Lower(r))
		}
	}

	return msg
}
