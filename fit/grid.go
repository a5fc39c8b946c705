// SPDX-License-Identifier: MIT

package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/relaxfit/curve"
	"github.com/katalvlaran/relaxfit/session"
)

// LinearConstraints returns A and b of the constraint system A·θ ≥ b for the
// given role order: one row per parameter, θ_j ≥ curve.Lower(role_j).
func LinearConstraints(roles []curve.Role) (*mat.Dense, []float64) {
	m := len(roles)
	a := mat.NewDense(m, m, nil)
	b := make([]float64, m)
	for j, r := range roles {
		a.Set(j, j, 1)
		b[j] = curve.Lower(r)
	}

	return a, b
}

// Feasible reports whether A·θ ≥ b holds for every row.
func Feasible(a *mat.Dense, b, theta []float64) bool {
	var lhs mat.VecDense
	lhs.MulVec(a, mat.NewVecDense(len(theta), theta))
	for i, v := range b {
		if lhs.AtVec(i) < v {
			return false
		}
	}

	return true
}

// Grid evaluates χ² on the regular model-frame grid spanned by lower, upper and
// inc (inc[j] nodes along parameter j, endpoints included) and returns the best
// node. When constrained, nodes violating A·θ ≥ b are skipped.
//
// Complexity: O(Π inc[j] · N).
func Grid(s *session.Session, lower, upper []float64, inc []int, constrained bool) (*Result, error) {
	m := s.NumParams()
	if len(lower) != m || len(upper) != m || len(inc) != m {
		return nil, fitErrorf("Grid", ErrBadGrid)
	}
	for j := 0; j < m; j++ {
		if inc[j] < 1 || lower[j] > upper[j] || math.IsNaN(lower[j]) || math.IsNaN(upper[j]) {
			return nil, fitErrorf("Grid", fmt.Errorf("param %d: %w", j, ErrBadGrid))
		}
	}
	a, b := LinearConstraints(s.Roles())

	idx := make([]int, m)
	theta := make([]float64, m)
	best := &Result{Chi2: math.Inf(1), Status: "GridSearch"}
	for {
		for j := 0; j < m; j++ {
			theta[j] = lower[j]
			if inc[j] > 1 {
				theta[j] += float64(idx[j]) * (upper[j] - lower[j]) / float64(inc[j]-1)
			}
		}
		if !constrained || Feasible(a, b, theta) {
			raw, err := s.FromModel(theta)
			if err != nil {
				return nil, fitErrorf("Grid", err)
			}
			chi, err := s.Func(raw)
			if err != nil {
				return nil, fitErrorf("Grid", err)
			}
			best.FuncEvals++
			if chi < best.Chi2 {
				best.Chi2 = chi
				best.Params = append(best.Params[:0], theta...)
			}
		}

		// odometer increment
		j := 0
		for ; j < m; j++ {
			idx[j]++
			if idx[j] < inc[j] {
				break
			}
			idx[j] = 0
		}
		if j == m {
			break
		}
	}
	if best.Params == nil {
		return nil, fitErrorf("Grid", ErrNoFeasiblePoint)
	}
	best.Iterations = best.FuncEvals

	return best, nil
}
