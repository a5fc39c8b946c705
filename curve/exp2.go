// SPDX-License-Identifier: MIT

package curve

// exp2 is y = sa·I0·exp(sr·R·x), with sa the amplitude sign and sr the rate sign.
//
//	∂y/∂R     = sa·sr·I0·x·e
//	∂y/∂I0    = sa·e
//	∂²y/∂R²   = sa·I0·x²·e        (sr² = 1)
//	∂²y/∂R∂I0 = sa·sr·x·e
//	∂²y/∂I0²  = 0
//
// where e = exp(sr·R·x), or 1 when R == 0.
type exp2 struct {
	base
	ampSign  float64
	rateSign float64
}

func (m *exp2) BackCalc(dst, p, x []float64) error {
	if err := m.check("BackCalc", dst, p, x); err != nil {
		return err
	}
	r, i0 := p[0], p[1]
	if r == 0 {
		fill(dst, m.ampSign*i0) // R → 0 limit
		return nil
	}
	for i, t := range x {
		dst[i] = m.ampSign * i0 * expTerm(m.rateSign, r, t)
	}

	return nil
}

func (m *exp2) Partial(dst, p, x []float64, role Role) error {
	if err := m.check("Partial", dst, p, x); err != nil {
		return err
	}
	r, i0 := p[0], p[1]
	switch role {
	case RoleRate:
		c := m.ampSign * m.rateSign * i0
		for i, t := range x {
			dst[i] = c * t * expTerm(m.rateSign, r, t)
		}
	case RoleI0:
		for i, t := range x {
			dst[i] = m.ampSign * expTerm(m.rateSign, r, t)
		}
	default:
		return curveErrorf(m.kind, "Partial", ErrUnknownRole)
	}

	return nil
}

func (m *exp2) SecondPartial(dst, p, x []float64, a, b Role) error {
	if err := m.check("SecondPartial", dst, p, x); err != nil {
		return err
	}
	a, b, ok := m.pair(a, b)
	if !ok {
		return curveErrorf(m.kind, "SecondPartial", ErrUnknownRole)
	}
	r, i0 := p[0], p[1]
	switch {
	case a == RoleRate && b == RoleRate:
		for i, t := range x {
			dst[i] = m.ampSign * i0 * t * t * expTerm(m.rateSign, r, t)
		}
	case a == RoleRate && b == RoleI0:
		c := m.ampSign * m.rateSign
		for i, t := range x {
			dst[i] = c * t * expTerm(m.rateSign, r, t)
		}
	default: // ∂²/∂I0²
		clear(dst)
	}

	return nil
}
