// SPDX-License-Identifier: MIT

package curve

import (
	"fmt"
	"math"

	"github.com/katalvlaran/relaxfit/matrix"
)

// Model is one member of the closed set of relaxation curves.
//
// All methods write into caller-owned dst of length len(x) and never retain
// p, x or dst. Parameters in p follow the canonical order returned by Roles.
type Model interface {
	// Kind reports which variant this is.
	Kind() Kind

	// Roles returns the canonical parameter order (a fresh copy).
	Roles() []Role

	// Differentiable reports whether Partial and SecondPartial are analytic.
	Differentiable() bool

	// BackCalc writes y(p, x[i]) into dst[i].
	BackCalc(dst, p, x []float64) error

	// Partial writes ∂y/∂θ_r at every x[i] into dst[i].
	Partial(dst, p, x []float64, r Role) error

	// SecondPartial writes ∂²y/∂θ_a∂θ_b at every x[i] into dst[i].
	// The result is symmetric in (a, b).
	SecondPartial(dst, p, x []float64, a, b Role) error

	sealed()
}

// New returns the Model for kind.
func New(kind Kind) (Model, error) {
	b := base{kind: kind, roles: kind.Roles()}
	switch kind {
	case Exp:
		return &exp2{base: b, ampSign: 1, rateSign: -1}, nil
	case ExpGrowth:
		return &exp2{base: b, ampSign: 1, rateSign: 1}, nil
	case ExpNegAmp:
		return &exp2{base: b, ampSign: -1, rateSign: -1}, nil
	case ExpNegAmpGrowth:
		return &exp2{base: b, ampSign: -1, rateSign: 1}, nil
	case Plateau:
		return &plateau{base: b}, nil
	case PlateauNeg:
		return &plateauNeg{base: b}, nil
	case InversionRecovery:
		return &inversion{base: b}, nil
	case SaturationRecovery:
		return &saturation{base: b}, nil
	case DispersionFast:
		return &dispersionFast{base: b}, nil
	default:
		return nil, fmt.Errorf("New(%d): %w", int(kind), ErrUnknownKind)
	}
}

// Jacobian fills jac (M×N, row j = ∂y/∂θ_j) for model m at p over x.
//
// Stage 1 (Validate): jac must be len(Roles)×len(x).
// Stage 2 (Execute):  Partial per role, written straight into the row view.
//
// Complexity: O(M·N).
func Jacobian(m Model, jac *matrix.Dense, p, x []float64) error {
	roles := m.Roles()
	if err := matrix.ValidateShape(jac, len(roles), len(x)); err != nil {
		return curveErrorf(m.Kind(), "Jacobian", ErrDimensionMismatch)
	}
	var (
		row []float64
		err error
	)
	for j, r := range roles {
		if row, err = jac.Row(j); err != nil {
			return curveErrorf(m.Kind(), "Jacobian", err)
		}
		if err = m.Partial(row, p, x, r); err != nil {
			return err
		}
	}

	return nil
}

// Hessian fills the packed upper triangle of hess (M×M×N) for model m at p over x.
// Entries (j,k) and (k,j) share storage, so one evaluation per pair suffices.
//
// Complexity: O(M²·N/2).
func Hessian(m Model, hess *matrix.Tensor, p, x []float64) error {
	roles := m.Roles()
	if err := matrix.ValidateTensorShape(hess, len(roles), len(x)); err != nil {
		return curveErrorf(m.Kind(), "Hessian", ErrDimensionMismatch)
	}
	var (
		row  []float64
		err  error
		j, k int
	)
	for j = range roles {
		for k = j; k < len(roles); k++ {
			if row, err = hess.Pair(j, k); err != nil {
				return curveErrorf(m.Kind(), "Hessian", err)
			}
			if err = m.SecondPartial(row, p, x, roles[j], roles[k]); err != nil {
				return err
			}
		}
	}

	return nil
}

// Lower returns the linear-constraint lower bound θ ≥ Lower(r).
// Rates, intensities and exchange parameters are all non-negative.
func Lower(r Role) float64 {
	switch r {
	case RoleRate, RoleI0, RoleIinf, RoleR2, RoleRex, RoleKex:
		return 0
	default:
		return math.Inf(-1)
	}
}

// base carries what every variant shares: its tag and role layout.
type base struct {
	kind  Kind
	roles []Role
}

func (b *base) Kind() Kind { return b.kind }

func (b *base) Roles() []Role { return append([]Role(nil), b.roles...) }

func (b *base) Differentiable() bool { return b.kind.Differentiable() }

func (b *base) sealed() {}

// check validates the argument shapes shared by every evaluation.
func (b *base) check(op string, dst, p, x []float64) error {
	if len(p) != len(b.roles) {
		return curveErrorf(b.kind, op, ErrParamCount)
	}
	if len(dst) != len(x) {
		return curveErrorf(b.kind, op, ErrDimensionMismatch)
	}

	return nil
}

// pair orders (a, b) canonically and reports whether both roles exist.
func (b *base) pair(a, c Role) (Role, Role, bool) {
	ia, ib := b.index(a), b.index(c)
	if ia < 0 || ib < 0 {
		return a, c, false
	}
	if ia > ib {
		return c, a, true
	}

	return a, c, true
}

func (b *base) index(r Role) int {
	for i, have := range b.roles {
		if have == r {
			return i
		}
	}

	return -1
}

// expTerm returns exp(sign·r·t). When r is exactly 0.0 it returns the
// r → 0 limit 1 without calling math.Exp; every derivative built on it then
// takes its limiting form as well.
func expTerm(sign, r, t float64) float64 {
	if r == 0 {
		return 1
	}

	return math.Exp(sign * r * t)
}

// fill sets every element of dst to v.
func fill(dst []float64, v float64) {
	for i := range dst {
		dst[i] = v
	}
}
