// SPDX-License-Identifier: MIT

package session

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// Problem adapts s to gonum's optimize.Problem in the raw (optimizer) frame.
//
// Grad and Hess are nil when the model has no analytic derivatives, so
// gradient-based methods refuse the problem up front. A failing evaluation
// returns +Inf (Func) or fills the destination with NaN (Grad, Hess), and the
// next call to Status reports the error so the optimizer stops.
func (s *Session) Problem() optimize.Problem {
	p := optimize.Problem{
		Func: func(x []float64) float64 {
			v, err := s.Func(x)
			if err != nil {
				return math.Inf(1)
			}

			return v
		},
		Status: func() (optimize.Status, error) {
			if err := s.Err(); err != nil {
				return optimize.Failure, err
			}

			return optimize.NotTerminated, nil
		},
	}
	if !s.model.Differentiable() {
		return p
	}

	p.Grad = func(grad, x []float64) {
		if _, err := s.Grad(grad, x); err != nil {
			for i := range grad {
				grad[i] = math.NaN()
			}
		}
	}
	p.Hess = func(hess *mat.SymDense, x []float64) {
		h, err := s.Hess(x)
		if err == nil {
			_, err = h.ToSym(hess)
		}
		if err != nil {
			n := hess.SymmetricDim()
			for i := 0; i < n; i++ {
				for j := i; j < n; j++ {
					hess.SetSym(i, j, math.NaN())
				}
			}
		}
	}

	return p
}
