// SPDX-License-Identifier: MIT

// Package matrix: bridges to gonum/mat for optimizers and factorizations.
package matrix

import "gonum.org/v1/gonum/mat"

// ToMat copies m into a new gonum *mat.Dense with the same shape.
// Complexity: O(r*c).
func (m *Dense) ToMat() *mat.Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)

	return mat.NewDense(m.r, m.c, data)
}

// ToSym copies a square, symmetric m into sym (allocated when nil) using
// the upper triangle only. Callers are expected to run ValidateSymmetric first
// when symmetry is not guaranteed by construction.
// Returns ErrDimensionMismatch if m is not square or sym has the wrong size.
func (m *Dense) ToSym(sym *mat.SymDense) (*mat.SymDense, error) {
	if m.r != m.c {
		return nil, denseErrorf("ToSym", m.r, m.c, ErrDimensionMismatch)
	}
	if sym == nil {
		sym = mat.NewSymDense(m.r, nil)
	} else if sym.SymmetricDim() != m.r {
		return nil, denseErrorf("ToSym", sym.SymmetricDim(), m.r, ErrDimensionMismatch)
	}
	for i := 0; i < m.r; i++ {
		for j := i; j < m.c; j++ {
			sym.SetSym(i, j, m.data[i*m.c+j])
		}
	}

	return sym, nil
}

// Transposed returns a new c×r Dense holding mᵀ.
// Complexity: O(r*c).
func (m *Dense) Transposed() *Dense {
	out := &Dense{r: m.c, c: m.r, data: make([]float64, len(m.data))}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return out
}
