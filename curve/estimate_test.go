package curve_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/relaxfit/curve"
)

func synth(t *testing.T, k curve.Kind, p, x []float64) []float64 {
	t.Helper()
	m, err := curve.New(k)
	require.NoError(t, err)
	y := make([]float64, len(x))
	require.NoError(t, m.BackCalc(y, p, x))

	return y
}

func TestEstimateExponentialIsExactOnCleanData(t *testing.T) {
	t.Parallel()
	x := []float64{0, 0.1, 0.2, 0.4, 0.8, 1.6}
	tests := []struct {
		kind curve.Kind
		p    []float64
	}{
		{curve.Exp, []float64{2.5, 120}},
		{curve.ExpGrowth, []float64{0.7, 3}},
		{curve.ExpNegAmp, []float64{1.5, 40}},
		{curve.ExpNegAmpGrowth, []float64{0.2, 9}},
	}
	for _, tc := range tests {
		got, err := curve.Estimate(tc.kind, x, synth(t, tc.kind, tc.p, x))
		require.NoError(t, err, tc.kind.String())
		assert.InDeltaSlice(t, tc.p, got, 1e-8, tc.kind.String())
	}
}

func TestEstimatePlateauFamily(t *testing.T) {
	t.Parallel()
	x := []float64{0, 0.25, 0.5, 1, 2, 4, 8, 16}
	tests := []struct {
		kind curve.Kind
		p    []float64
	}{
		{curve.Plateau, []float64{0.8, 10, 2}},
		{curve.PlateauNeg, []float64{0.8, 10, 2}},
		{curve.InversionRecovery, []float64{0.8, 10, 5}},
		{curve.SaturationRecovery, []float64{0.8, 7}},
	}
	for _, tc := range tests {
		got, err := curve.Estimate(tc.kind, x, synth(t, tc.kind, tc.p, x))
		require.NoError(t, err, tc.kind.String())
		require.Len(t, got, len(tc.p))
		assert.InDelta(t, tc.p[0], got[0], 0.2*tc.p[0], "%s rate", tc.kind)
		assert.InDelta(t, tc.p[len(tc.p)-1], got[len(got)-1], 0.05*tc.p[len(tc.p)-1], "%s plateau", tc.kind)
		for _, v := range got {
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}
}

func TestEstimateDispersion(t *testing.T) {
	t.Parallel()
	nu := []float64{25, 50, 100, 200, 400, 800}
	y := synth(t, curve.DispersionFast, []float64{12, 6, 1500}, nu)
	got, err := curve.Estimate(curve.DispersionFast, nu, y)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.InDelta(t, y[len(y)-1], got[0], 1e-12)
	assert.Greater(t, got[1], 0.0)
	assert.Greater(t, got[2], 0.0)
}

func TestEstimateErrors(t *testing.T) {
	t.Parallel()
	_, err := curve.Estimate(curve.Kind(12), []float64{0, 1}, []float64{1, 1})
	require.ErrorIs(t, err, curve.ErrUnknownKind)

	_, err = curve.Estimate(curve.Exp, []float64{0, 1}, []float64{1})
	require.ErrorIs(t, err, curve.ErrDimensionMismatch)

	_, err = curve.Estimate(curve.Exp, []float64{0}, []float64{1})
	require.ErrorIs(t, err, curve.ErrEstimate)

	// A positive-amplitude decay cannot be estimated from non-positive samples.
	_, err = curve.Estimate(curve.Exp, []float64{0, 1, 2}, []float64{-1, -0.5, 0})
	require.ErrorIs(t, err, curve.ErrEstimate)

	_, err = curve.Estimate(curve.Exp, []float64{1, 1}, []float64{2, 3})
	require.ErrorIs(t, err, curve.ErrEstimate)
}

func TestEstimateFallbackRate(t *testing.T) {
	t.Parallel()
	// Flat data has no distance to the plateau; the rate falls back to 1/mean(x).
	x := []float64{1, 2, 3}
	got, err := curve.Estimate(curve.SaturationRecovery, x, []float64{4, 4, 4})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got[0], 1e-12)
	assert.False(t, math.IsNaN(got[1]))
}
