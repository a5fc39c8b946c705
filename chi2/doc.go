// Package chi2 computes the chi-squared statistic between observed and
// back-calculated values, together with its analytic gradient and Hessian.
//
// The equations:
//
//	              _n_
//	              \    (yᵢ - yᵢ(θ))²
//	χ²(θ)    =     >   -------------
//	              /__      σᵢ²
//
//	dχ²/dθⱼ  = -2 Σᵢ (yᵢ - yᵢ(θ))/σᵢ² · dyᵢ(θ)/dθⱼ
//
//	d²χ²/dθⱼdθₖ = 2 Σᵢ 1/σᵢ² · (dyᵢ/dθⱼ · dyᵢ/dθₖ - (yᵢ - yᵢ(θ)) · d²yᵢ/dθⱼdθₖ)
//
// where yᵢ are the observed values, yᵢ(θ) the back-calculated values and σᵢ
// the measurement standard deviations.
//
// Numeric policy:
//
//	σᵢ must be finite and strictly positive. A zero, negative, NaN or Inf
//	standard deviation is reported as ErrInvalidSD instead of letting ±Inf or
//	NaN flow into the optimizer.
//
// Storage:
//
//	The model Jacobian is a matrix.Dense of shape M×N (row j = dy/dθⱼ) and the
//	model Hessian a matrix.Tensor of shape M×M×N. Gradient and Hessian outputs
//	are zeroed on every call; nothing accumulates across calls.
//
// Complexity:
//
//	Chi2 O(N), DChi2 O(M·N), D2Chi2 O(M²·N) with only the upper triangle computed.
package chi2
