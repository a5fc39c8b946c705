// SPDX-License-Identifier: MIT

// Package matrix: Tensor stores the M×M×N stack of second partial derivatives.
//
// Layout:
//   - One row of length N per unordered parameter pair {j,k}, j ≤ k.
//   - Pairs are packed row-major over the upper triangle:
//     (0,0) (0,1) … (0,M-1) (1,1) … (M-1,M-1).
//   - Pair(j,k) and Pair(k,j) return the SAME row, so writing one off-diagonal
//     entry mirrors it for free.
//
// Memory: M(M+1)/2 · N floats instead of M·M·N.
package matrix

import "fmt"

// tensorErrorf wraps an underlying error with Tensor method context.
func tensorErrorf(method string, j, k int, err error) error {
	return fmt.Errorf("Tensor.%s(%d,%d): %w", method, j, k, err)
}

// Tensor is a symmetric stack of M×M parameter pairs, each holding N values.
type Tensor struct {
	m, n int       // parameter count and point count
	data []float64 // len == m(m+1)/2 * n
}

// NewTensor allocates a zeroed M×M×N symmetric tensor.
// Returns ErrInvalidDimensions if m <= 0 or n <= 0.
// Complexity: O(m²n).
func NewTensor(m, n int) (*Tensor, error) {
	if m <= 0 || n <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Tensor{m: m, n: n, data: make([]float64, m*(m+1)/2*n)}, nil
}

// Dim returns the parameter dimension M.
func (t *Tensor) Dim() int { return t.m }

// Len returns the number of points N per pair.
func (t *Tensor) Len() int { return t.n }

// offset maps an unordered pair to the start of its row in data.
func (t *Tensor) offset(j, k int) int {
	if j > k {
		j, k = k, j // symmetric: normalize to the upper triangle
	}
	// rows before j: sum_{r<j} (m - r) = j*m - j(j-1)/2
	p := j*t.m - j*(j-1)/2 + (k - j)

	return p * t.n
}

// Pair returns the N values of d²y/dθj dθk as a slice aliasing storage.
// Pair(j,k) and Pair(k,j) alias the same row.
// Complexity: O(1).
func (t *Tensor) Pair(j, k int) ([]float64, error) {
	if j < 0 || j >= t.m || k < 0 || k >= t.m {
		return nil, tensorErrorf("Pair", j, k, ErrOutOfRange)
	}

	return t.pair(j, k), nil
}

// pair is the unchecked variant of Pair for package kernels.
func (t *Tensor) pair(j, k int) []float64 {
	off := t.offset(j, k)

	return t.data[off : off+t.n : off+t.n]
}

// At returns the i-th value of pair (j,k).
// Complexity: O(1).
func (t *Tensor) At(j, k, i int) (float64, error) {
	if j < 0 || j >= t.m || k < 0 || k >= t.m || i < 0 || i >= t.n {
		return 0, tensorErrorf("At", j, k, ErrOutOfRange)
	}

	return t.data[t.offset(j, k)+i], nil
}

// Zero resets all pairs to 0 without reallocating.
func (t *Tensor) Zero() {
	clear(t.data)
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)

	return &Tensor{m: t.m, n: t.n, data: data}
}
