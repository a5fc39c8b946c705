// SPDX-License-Identifier: MIT

package curve

import "math"

// dispersionFast is the fast-exchange CPMG dispersion curve
//
//	R2eff(ν) = R2 + Rex·(1 − 2·tanh(kex/(8ν))·(4ν/kex))
//
// over CPMG frequencies ν. kex == 0 takes the limit R2eff = R2. At ν == 0 the
// tanh saturates and the closed form yields R2 + Rex without special casing.
// Only evaluation is supported.
type dispersionFast struct{ base }

func (m *dispersionFast) BackCalc(dst, p, x []float64) error {
	if err := m.check("BackCalc", dst, p, x); err != nil {
		return err
	}
	r2, rex, kex := p[0], p[1], p[2]
	if kex == 0 {
		fill(dst, r2)
		return nil
	}
	for i, nu := range x {
		dst[i] = r2 + rex*(1-2*math.Tanh(kex/(8*nu))*(4*nu/kex))
	}

	return nil
}

func (m *dispersionFast) Partial(_, _, _ []float64, _ Role) error {
	return curveErrorf(m.kind, "Partial", ErrNotImplemented)
}

func (m *dispersionFast) SecondPartial(_, _, _ []float64, _, _ Role) error {
	return curveErrorf(m.kind, "SecondPartial", ErrNotImplemented)
}
