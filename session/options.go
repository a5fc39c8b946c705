// SPDX-License-Identifier: MIT

package session

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/relaxfit/curve"
)

// Option mutates the setup configuration of a Session.
type Option func(*Options)

// Options is the resolved setup configuration. Fields are unexported; callers
// compose it through ...Option.
type Options struct {
	scaling []float64    // explicit scaling in vector order; nil ⇒ identity
	auto    bool         // derive scaling from the data
	order   []curve.Role // vector order; nil ⇒ model canonical order
	logger  *zap.Logger  // never nil after gatherOptions
}

// WithScaling sets an explicit diagonal scaling vector, indexed by parameter
// vector position. Model parameters are raw ⊙ scale. The vector is copied and
// validated by Setup (length M, every entry finite and > 0).
func WithScaling(scale []float64) Option {
	cp := append([]float64(nil), scale...)

	return func(o *Options) {
		o.scaling = cp
		o.auto = false
	}
}

// WithAutoScaling derives the scaling from the observations: rate-like
// parameters keep 1, intensity-like parameters (I0, Iinf, R2, Rex) use
// |mean(observed at the smallest x)|. A zero mean falls back to max|observed|,
// then to 1.
func WithAutoScaling() Option {
	return func(o *Options) {
		o.auto = true
		o.scaling = nil
	}
}

// WithOrder sets the role → vector position mapping. The roles must be a
// permutation of Model.Roles; Setup rejects anything else with ErrInvalidOrder.
func WithOrder(roles ...curve.Role) Option {
	cp := append([]curve.Role(nil), roles...)

	return func(o *Options) { o.order = cp }
}

// WithLogger attaches a structured logger. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherOptions(opts ...Option) Options {
	o := Options{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
