// Package relaxfit fits relaxation curves to measured intensities and
// estimates the uncertainty of the fitted rates.
//
// 🚀 What is relaxfit?
//
//	A small, thread-safe toolkit for the classic exponential and dispersion
//	fits of relaxation experiments:
//		• Curve models: two-parameter exponentials, plateau decays,
//		  inversion and saturation recovery, fast-exchange CPMG dispersion
//		• Analytic Jacobians and Hessians of every exponential model
//		• χ², its gradient and Hessian with diagonal parameter scaling
//		• Minimisers: Levenberg–Marquardt, simplex, BFGS, L-BFGS, Newton
//		• Grid pre-search, covariance and Monte Carlo error analysis
//
// Everything is organized under these subpackages:
//
//	curve/     curve models, partial derivatives and initial estimates
//	chi2/      χ² and its first and second derivatives
//	matrix/    dense matrices, rank-3 tensors and shape validators
//	session/   one fit target: data, order, scaling, derivative frames
//	fit/       minimisation, grid search, covariance, Monte Carlo
//	dataset/   x, y[, sd] column readers
//	config/    YAML, environment and flag configuration
//	plotting/  gonum/plot and gnuplot renderings of a fit
//
// The relaxfit command under cmd/relaxfit ties them together:
//
//	go install github.com/katalvlaran/relaxfit/cmd/relaxfit@latest
//	relaxfit -m inv --scaling auto --monte-carlo 500 t1.csv
package relaxfit
