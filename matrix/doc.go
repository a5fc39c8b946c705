// Package matrix provides the fixed-shape numeric storage used by the fitting
// kernels.
//
// What & Why:
//
//	Dense is a row-major M×N (or M×M) matrix stored in one flat slice. It holds
//	the model Jacobian (one row per parameter, one column per observation) and
//	the chi-squared Hessian. Tensor is the M×M×N stack of model second partials;
//	it stores only the upper triangle of parameter pairs so that (j,k) and (k,j)
//	resolve to the same row, making the tensor symmetric by construction.
//
// Both types are allocated once per evaluation session and overwritten in place
// on every call. Row and Pair return views into the backing storage so kernels
// can run flat loops without per-element bounds checks.
//
// Complexity:
//
//	Rows(), Cols(), Row() and Pair() run in O(1) time.
//	At() and Set() perform bounds checking in O(1) time, returning an error on invalid indices.
//	Clone() and Zero() are linear in the number of stored elements.
package matrix
