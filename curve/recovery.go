// SPDX-License-Identifier: MIT

package curve

// inversion is the inversion-recovery curve y = Iinf − I0·e, e = exp(−R·x).
//
//	∂y/∂R     = I0·x·e
//	∂y/∂I0    = −e
//	∂y/∂Iinf  = 1
//	∂²y/∂R²   = −I0·x²·e
//	∂²y/∂R∂I0 = x·e
type inversion struct{ base }

func (m *inversion) BackCalc(dst, p, x []float64) error {
	if err := m.check("BackCalc", dst, p, x); err != nil {
		return err
	}
	r, i0, iinf := p[0], p[1], p[2]
	if r == 0 {
		fill(dst, iinf-i0)
		return nil
	}
	for i, t := range x {
		dst[i] = iinf - i0*expTerm(-1, r, t)
	}

	return nil
}

func (m *inversion) Partial(dst, p, x []float64, role Role) error {
	if err := m.check("Partial", dst, p, x); err != nil {
		return err
	}
	r, i0 := p[0], p[1]
	switch role {
	case RoleRate:
		for i, t := range x {
			dst[i] = i0 * t * expTerm(-1, r, t)
		}
	case RoleI0:
		for i, t := range x {
			dst[i] = -expTerm(-1, r, t)
		}
	case RoleIinf:
		fill(dst, 1)
	default:
		return curveErrorf(m.kind, "Partial", ErrUnknownRole)
	}

	return nil
}

func (m *inversion) SecondPartial(dst, p, x []float64, a, b Role) error {
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
			dst[i] = -i0 * t * t * expTerm(-1, r, t)
		}
	case a == RoleRate && b == RoleI0:
		for i, t := range x {
			dst[i] = t * expTerm(-1, r, t)
		}
	default:
		clear(dst)
	}

	return nil
}

// saturation is the saturation-recovery curve y = Iinf·(1 − e), e = exp(−R·x).
//
//	∂y/∂R       = Iinf·x·e
//	∂y/∂Iinf    = 1 − e
//	∂²y/∂R²     = −Iinf·x²·e
//	∂²y/∂R∂Iinf = x·e
type saturation struct{ base }

func (m *saturation) BackCalc(dst, p, x []float64) error {
	if err := m.check("BackCalc", dst, p, x); err != nil {
		return err
	}
	r, iinf := p[0], p[1]
	if r == 0 {
		clear(dst)
		return nil
	}
	for i, t := range x {
		dst[i] = iinf * (1 - expTerm(-1, r, t))
	}

	return nil
}

func (m *saturation) Partial(dst, p, x []float64, role Role) error {
	if err := m.check("Partial", dst, p, x); err != nil {
		return err
	}
	r, iinf := p[0], p[1]
	switch role {
	case RoleRate:
		for i, t := range x {
			dst[i] = iinf * t * expTerm(-1, r, t)
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

func (m *saturation) SecondPartial(dst, p, x []float64, a, b Role) error {
	if err := m.check("SecondPartial", dst, p, x); err != nil {
		return err
	}
	a, b, ok := m.pair(a, b)
	if !ok {
		return curveErrorf(m.kind, "SecondPartial", ErrUnknownRole)
	}
	r, iinf := p[0], p[1]
	switch {
	case a == RoleRate && b == RoleRate:
		for i, t := range x {
			dst[i] = -iinf * t * t * expTerm(-1, r, t)
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
