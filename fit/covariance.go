// SPDX-License-Identifier: MIT

package fit

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/relaxfit/session"
)

// Covariance returns the parameter covariance (JᵀWJ)⁻¹ at the model-frame
// vector params, with W = diag(1/sdᵢ²). The inverse is formed in the raw frame
// and mapped back as cov[j][k]·scale[j]·scale[k].
//
// Returns ErrSingular when JᵀWJ is not positive definite.
func Covariance(s *session.Session, params []float64) (*mat.SymDense, error) {
	raw, err := s.FromModel(params)
	if err != nil {
		return nil, fitErrorf("Covariance", err)
	}
	jac, err := jacobianAt(s, raw)
	if err != nil {
		return nil, fitErrorf("Covariance", err)
	}
	sd := s.Data().SD
	m, n := jac.Dims()

	weighted := mat.NewDense(m, n, nil)
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			weighted.Set(j, i, jac.At(j, i)/sd[i])
		}
	}
	normal := mat.NewSymDense(m, nil)
	normal.SymOuterK(1, weighted)

	var chol mat.Cholesky
	if ok := chol.Factorize(normal); !ok {
		return nil, fitErrorf("Covariance", ErrSingular)
	}
	cov := mat.NewSymDense(m, nil)
	if err = chol.InverseTo(cov); err != nil {
		return nil, fitErrorf("Covariance", ErrSingular)
	}

	scale := s.Scaling()
	for j := 0; j < m; j++ {
		for k := j; k < m; k++ {
			cov.SetSym(j, k, cov.At(j, k)*(scale[j]*scale[k]))
		}
	}

	return cov, nil
}

// jacobianAt returns ∂y/∂raw (M×N). Models without analytic partials fall
// back to central finite differences of the back-calculated curve.
func jacobianAt(s *session.Session, raw []float64) (*mat.Dense, error) {
	if s.Model().Differentiable() {
		jac, err := s.ModelJacobian(raw)
		if err != nil {
			return nil, err
		}

		return jac.ToMat(), nil
	}

	var evalErr error
	num := mat.NewDense(s.NumPoints(), len(raw), nil)
	fd.Jacobian(num, func(y, x []float64) {
		pred, err := s.Predict(x)
		if err != nil {
			evalErr = err
			return
		}
		copy(y, pred)
	}, raw, &fd.JacobianSettings{Formula: fd.Central})
	if evalErr != nil {
		return nil, evalErr
	}

	return mat.DenseCopyOf(num.T()), nil
}

// ParamErrors returns sqrt(diag(cov)).
func ParamErrors(cov mat.Symmetric) []float64 {
	n := cov.SymmetricDim()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Sqrt(cov.At(i, i))
	}

	return out
}
