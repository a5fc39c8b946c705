// Package fit is the optimizer boundary around a session.Session: it runs the
// external minimisers, grid search, covariance and Monte Carlo error analysis.
//
// Methods:
//
//	NelderMead          gonum optimize, derivative-free (works for every model)
//	BFGS, LBFGS         gonum optimize, analytic χ² gradient
//	Newton              gonum optimize, analytic χ² gradient and Hessian
//	LevenbergMarquardt  maorshutman/lm on weighted residuals with the analytic Jacobian
//
// Frames: every Result reports parameters in the model frame (scaling undone)
// and in the session's vector order. Starting points passed to Minimize, Grid
// and MonteCarlo are model-frame too; the conversion to the raw optimizer frame
// happens here.
//
// Constraints: all relaxation parameters are non-negative (curve.Lower). Grid
// skips infeasible points when asked to; the unconstrained minimisers report a
// Warning when they end outside the feasible region.
//
// Errors: fewer than three points (or fewer points than parameters) is
// ErrInsufficientData; gradient methods on non-differentiable models surface
// curve.ErrNotImplemented; a singular normal matrix is ErrSingular.
package fit
