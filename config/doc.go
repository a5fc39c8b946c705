// Package config holds the settings of one relaxfit run: which curve to fit,
// where the data lives, how the parameter vector is ordered and scaled, and
// how the minimiser is driven.
//
// Values are layered with the precedence
//
//	flags > RELAXFIT_* environment > YAML file > defaults
//
// and validated fail-fast by Load. A minimal file:
//
//	model: plateau
//	data: peak12.csv
//	algorithm: lm
//	scaling: auto
//	monte_carlo: 500
package config
