package chi2

import (
	"errors"
	"math"

	"github.com/katalvlaran/relaxfit/matrix"
)

// Chi2 returns Σ((observed[i] - predicted[i]) / sd[i])².
//
// Errors:
//   - ErrDimensionMismatch if the three slices differ in length.
//   - ErrInvalidSD if any sd[i] is not finite and > 0.
//
// Complexity: O(N).
func Chi2(observed, sd, predicted []float64) (float64, error) {
	if err := checkPoints(observed, predicted, sd); err != nil {
		return 0, chi2Errorf("Chi2", err)
	}

	var sum, r float64
	for i := range observed {
		r = (observed[i] - predicted[i]) / sd[i]
		sum += r * r
	}

	return sum, nil
}

// DChi2 writes the chi-squared gradient into dst (len M, zeroed first).
//
//	dst[j] = -2 Σᵢ (observed[i] - predicted[i]) / sd[i]² · jac[j][i]
//
// jac must be M×N with M == len(dst) and N == len(observed).
// Complexity: O(M·N).
func DChi2(dst, observed, predicted []float64, jac *matrix.Dense, sd []float64) error {
	if err := checkPoints(observed, predicted, sd); err != nil {
		return chi2Errorf("DChi2", err)
	}
	if err := checkJacobian(jac, len(dst), len(observed)); err != nil {
		return chi2Errorf("DChi2", err)
	}

	rows := jac.RawRows()
	var j, i int
	for j = range dst {
		dst[j] = 0 // fresh accumulator every call
		row := rows[j]
		for i = range observed {
			dst[j] += (observed[i] - predicted[i]) / (sd[i] * sd[i]) * row[i]
		}
		dst[j] *= -2
	}

	return nil
}

// DChi2Element returns gradient element j given the single Jacobian row gradJ.
// Complexity: O(N).
func DChi2Element(observed, predicted, gradJ, sd []float64) (float64, error) {
	if err := checkPoints(observed, predicted, sd); err != nil {
		return 0, chi2Errorf("DChi2Element", err)
	}
	if len(gradJ) != len(observed) {
		return 0, chi2Errorf("DChi2Element", ErrDimensionMismatch)
	}

	var sum float64
	for i := range observed {
		sum += (observed[i] - predicted[i]) / (sd[i] * sd[i]) * gradJ[i]
	}

	return -2 * sum, nil
}

// D2Chi2 writes the M×M chi-squared Hessian into dst.
//
//	dst[j][k] = 2 Σᵢ 1/sd[i]² · (jac[j][i]·jac[k][i] - (observed[i]-predicted[i])·hess[j][k][i])
//
// Only the upper triangle is accumulated; the lower triangle is mirrored, so
// dst is exactly symmetric.
// Complexity: O(M²·N).
func D2Chi2(dst *matrix.Dense, observed, predicted []float64, jac *matrix.Dense, hess *matrix.Tensor, sd []float64) error {
	if err := checkPoints(observed, predicted, sd); err != nil {
		return chi2Errorf("D2Chi2", err)
	}
	if dst == nil {
		return chi2Errorf("D2Chi2", ErrNilArgument)
	}
	m, n := dst.Rows(), len(observed)
	if dst.Cols() != m {
		return chi2Errorf("D2Chi2", ErrDimensionMismatch)
	}
	if err := checkJacobian(jac, m, n); err != nil {
		return chi2Errorf("D2Chi2", err)
	}
	if err := matrix.ValidateTensorShape(hess, m, n); err != nil {
		return chi2Errorf("D2Chi2", mapMatrixErr(err))
	}

	rows := jac.RawRows()
	out := dst.RawRows()
	var j, k, i int
	var sum float64
	for j = 0; j < m; j++ {
		for k = j; k < m; k++ {
			hjk, _ := hess.Pair(j, k) // shape validated above
			sum = 0
			for i = 0; i < n; i++ {
				sum += 2 / (sd[i] * sd[i]) * (rows[j][i]*rows[k][i] - (observed[i]-predicted[i])*hjk[i])
			}
			out[j][k] = sum
			out[k][j] = sum // mirror
		}
	}

	return nil
}

// D2Chi2Element returns Hessian element {j,k} from single rows of the model
// Jacobian (gradJ, gradK) and the model Hessian pair hessJK.
// Complexity: O(N).
func D2Chi2Element(observed, predicted, gradJ, gradK, hessJK, sd []float64) (float64, error) {
	if err := checkPoints(observed, predicted, sd); err != nil {
		return 0, chi2Errorf("D2Chi2Element", err)
	}
	n := len(observed)
	if len(gradJ) != n || len(gradK) != n || len(hessJK) != n {
		return 0, chi2Errorf("D2Chi2Element", ErrDimensionMismatch)
	}

	// The 1/σ² term first keeps roundoff lowest.
	var sum float64
	for i := 0; i < n; i++ {
		sum += 2 / (sd[i] * sd[i]) * (gradJ[i]*gradK[i] - (observed[i]-predicted[i])*hessJK[i])
	}

	return sum, nil
}

// Chi2Jacobian writes the per-point gradient terms into dst (M×N):
//
//	dst[j][i] = -2 (observed[i] - predicted[i]) / sd[i]² · jac[j][i]
//
// Summing row j of dst over i gives DChi2's dst[j].
// Complexity: O(M·N).
func Chi2Jacobian(dst *matrix.Dense, observed, predicted []float64, jac *matrix.Dense, sd []float64) error {
	if err := checkPoints(observed, predicted, sd); err != nil {
		return chi2Errorf("Chi2Jacobian", err)
	}
	if dst == nil {
		return chi2Errorf("Chi2Jacobian", ErrNilArgument)
	}
	m, n := dst.Rows(), len(observed)
	if dst.Cols() != n {
		return chi2Errorf("Chi2Jacobian", ErrDimensionMismatch)
	}
	if err := checkJacobian(jac, m, n); err != nil {
		return chi2Errorf("Chi2Jacobian", err)
	}

	in, out := jac.RawRows(), dst.RawRows()
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			out[j][i] = -2 * (observed[i] - predicted[i]) / (sd[i] * sd[i]) * in[j][i]
		}
	}

	return nil
}

// checkPoints validates the three N-length inputs shared by every kernel.
func checkPoints(observed, predicted, sd []float64) error {
	n := len(observed)
	if len(predicted) != n || len(sd) != n {
		return ErrDimensionMismatch
	}
	for _, s := range sd {
		if !(s > 0) || math.IsInf(s, 1) { // !(s > 0) also catches NaN
			return ErrInvalidSD
		}
	}

	return nil
}

// checkJacobian validates jac is M×N.
func checkJacobian(jac *matrix.Dense, m, n int) error {
	return mapMatrixErr(matrix.ValidateShape(jac, m, n))
}

// mapMatrixErr translates matrix sentinels into this package's sentinels.
func mapMatrixErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, matrix.ErrNilMatrix):
		return ErrNilArgument
	default:
		return ErrDimensionMismatch
	}
}
