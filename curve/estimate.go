// SPDX-License-Identifier: MIT

package curve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Estimate returns an initial parameter vector for kind in canonical role order,
// derived from the samples (x, y).
//
// Exponential kinds fit ln|y| = ln I0 + sr·R·x by ordinary least squares. The
// plateau and recovery kinds take the plateau from the sample at the largest x,
// the start intensity from the sample at the smallest x, and the rate from a
// log-linear fit of the distance to the plateau. cpmg-fast takes R2 at the
// highest frequency, Rex as the dispersion amplitude and kex ≈ 8·mean(ν).
//
// Rates and intensities are clamped to be non-negative.
func Estimate(kind Kind, x, y []float64) ([]float64, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("Estimate(%d): %w", int(kind), ErrUnknownKind)
	}
	if len(x) != len(y) {
		return nil, curveErrorf(kind, "Estimate", ErrDimensionMismatch)
	}
	if len(x) < 2 {
		return nil, curveErrorf(kind, "Estimate", ErrEstimate)
	}

	lo, hi := floats.MinIdx(x), floats.MaxIdx(x)
	first, last := y[lo], y[hi]

	switch kind {
	case Exp, ExpGrowth, ExpNegAmp, ExpNegAmpGrowth:
		sa, sr := 1.0, -1.0
		if kind == ExpNegAmp || kind == ExpNegAmpGrowth {
			sa = -1
		}
		if kind == ExpGrowth || kind == ExpNegAmpGrowth {
			sr = 1
		}
		alpha, beta, ok := logLinear(x, y, func(v float64) float64 { return sa * v })
		if !ok {
			return nil, curveErrorf(kind, "Estimate", ErrEstimate)
		}

		return []float64{nonNeg(sr * beta), math.Exp(alpha)}, nil

	case Plateau:
		rate := plateauRate(x, y, last)
		return []float64{rate, nonNeg(first), nonNeg(last)}, nil

	case PlateauNeg:
		rate := plateauRate(x, y, last)
		return []float64{rate, nonNeg(first), nonNeg(-last)}, nil

	case InversionRecovery:
		rate := plateauRate(x, y, last)
		return []float64{rate, nonNeg(last - first), nonNeg(last)}, nil

	case SaturationRecovery:
		rate := plateauRate(x, y, last)
		return []float64{rate, nonNeg(last)}, nil

	default: // DispersionFast
		mean := floats.Sum(x) / float64(len(x))
		kex := 8 * mean
		if !(kex > 0) {
			kex = 1
		}

		return []float64{nonNeg(last), nonNeg(first - last), kex}, nil
	}
}

// logLinear regresses ln(sign(y)) on x over the samples where sign(y) > 0 and
// returns the intercept and slope. ok is false with fewer than two usable samples.
func logLinear(x, y []float64, sign func(float64) float64) (alpha, beta float64, ok bool) {
	xs := make([]float64, 0, len(x))
	ls := make([]float64, 0, len(x))
	for i, v := range y {
		s := sign(v)
		if s > 0 && !math.IsInf(s, 1) {
			xs = append(xs, x[i])
			ls = append(ls, math.Log(s))
		}
	}
	if len(xs) < 2 || floats.Max(xs) == floats.Min(xs) {
		return 0, 0, false
	}
	alpha, beta = stat.LinearRegression(xs, ls, nil, false)

	return alpha, beta, true
}

// plateauRate estimates R from ln|plateau − y| = c − R·x, falling back to
// 1/mean(x) when the distance to the plateau cannot be regressed.
func plateauRate(x, y []float64, plateau float64) float64 {
	_, beta, ok := logLinear(x, y, func(v float64) float64 { return math.Abs(plateau - v) })
	if ok && beta < 0 {
		return -beta
	}
	if mean := floats.Sum(x) / float64(len(x)); mean > 0 {
		return 1 / mean
	}

	return 1
}

func nonNeg(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}

	return v
}
