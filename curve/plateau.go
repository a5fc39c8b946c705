// SPDX-License-Identifier: MIT

package curve

// plateau is y = Iinf − (Iinf − I0)·e, e = exp(−R·x).
//
//	∂y/∂R       = (Iinf − I0)·x·e
//	∂y/∂I0      = e
//	∂y/∂Iinf    = 1 − e
//	∂²y/∂R²     = −(Iinf − I0)·x²·e
//	∂²y/∂R∂I0   = −x·e
//	∂²y/∂R∂Iinf = x·e
//
// All remaining second partials vanish.
type plateau struct{ base }

func (m *plateau) BackCalc(dst, p, x []float64) error {
	if err := m.check("BackCalc", dst, p, x); err != nil {
		return err
	}
	r, i0, iinf := p[0], p[1], p[2]
	if r == 0 {
		fill(dst, i0)
		return nil
	}
	for i, t := range x {
		dst[i] = iinf - (iinf-i0)*expTerm(-1, r, t)
	}

	return nil
}

func (m *plateau) Partial(dst, p, x []float64, role Role) error {
	if err := m.check("Partial", dst, p, x); err != nil {
		return err
	}
	r, i0, iinf := p[0], p[1], p[2]
	switch role {
	case RoleRate:
		for i, t := range x {
			dst[i] = (iinf - i0) * t * expTerm(-1, r, t)
		}
	case RoleI0:
		for i, t := range x {
			dst[i] = expTerm(-1, r, t)
		}
	case RoleIinf:
		if r == 0 {
			clear(dst)
			return nil
		}
		for i, t := range x {
			dst[i] = 1 - expTerm(-1, r, t)
		}
	default:
		return curveErrorf(m.kind, "Partial", ErrUnknownRole)
	}

	return nil
}

func (m *plateau) SecondPartial(dst, p, x []float64, a, b Role) error {
	if err := m.check("SecondPartial", dst, p, x); err != nil {
		return err
	}
	a, b, ok := m.pair(a, b)
	if !ok {
		return curveErrorf(m.kind, "SecondPartial", ErrUnknownRole)
	}
	r, i0, iinf := p[0], p[1], p[2]
	switch {
	case a == RoleRate && b == RoleRate:
		for i, t := range x {
			dst[i] = -(iinf - i0) * t * t * expTerm(-1, r, t)
		}
	case a == RoleRate && b == RoleI0:
		for i, t := range x {
			dst[i] = -t * expTerm(-1, r, t)
		}
	case a == RoleRate && b == RoleIinf:
		for i, t := range x {
			dst[i] = t * expTerm(-1, r, t)
		}
	default:
		clear(dst)
	}

	return nil
}

// plateauNeg is y = (I0 + Iinf)·e − Iinf, e = exp(−R·x): it starts at I0 and
// decays to the negated plateau −Iinf.
//
//	∂y/∂R       = −(I0 + Iinf)·x·e
//	∂y/∂I0      = e
//	∂y/∂Iinf    = e − 1
//	∂²y/∂R²     = (I0 + Iinf)·x²·e
//	∂²y/∂R∂I0   = −x·e
//	∂²y/∂R∂Iinf = −x·e
type plateauNeg struct{ base }

func (m *plateauNeg) BackCalc(dst, p, x []float64) error {
	if err := m.check("BackCalc", dst, p, x); err != nil {
		return err
	}
	r, i0, iinf := p[0], p[1], p[2]
	if r == 0 {
		fill(dst, i0)
		return nil
	}
	for i, t := range x {
		dst[i] = (i0+iinf)*expTerm(-1, r, t) - iinf
	}

	return nil
}

func (m *plateauNeg) Partial(dst, p, x []float64, role Role) error {
	if err := m.check("Partial", dst, p, x); err != nil {
		return err
	}
	r, i0, iinf := p[0], p[1], p[2]
	switch role {
	case RoleRate:
		for i, t := range x {
			dst[i] = -(i0 + iinf) * t * expTerm(-1, r, t)
		}
	case RoleI0:
		for i, t := range x {
			dst[i] = expTerm(-1, r, t)
		}
	case RoleIinf:
		if r == 0 {
			clear(dst)
			return nil
		}
		for i, t := range x {
			dst[i] = expTerm(-1, r, t) - 1
		}
	default:
		return curveErrorf(m.kind, "Partial", ErrUnknownRole)
	}

	return nil
}

func (m *plateauNeg) SecondPartial(dst, p, x []float64, a, b Role) error {
	if err := m.check("SecondPartial", dst, p, x); err != nil {
		return err
	}
	a, b, ok := m.pair(a, b)
	if !ok {
		return curveErrorf(m.kind, "SecondPartial", ErrUnknownRole)
	}
	r, i0, iinf := p[0], p[1], p[2]
	switch {
	case a == RoleRate && b == RoleRate:
		for i, t := range x {
			dst[i] = (i0 + iinf) * t * t * expTerm(-1, r, t)
		}
	case a == RoleRate && (b == RoleI0 || b == RoleIinf):
		for i, t := range x {
			dst[i] = -t * expTerm(-1, r, t)
		}
	default:
		clear(dst)
	}

	return nil
}
