package session_test

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/relaxfit/chi2"
	"github.com/katalvlaran/relaxfit/curve"
	"github.com/katalvlaran/relaxfit/matrix"
	"github.com/katalvlaran/relaxfit/session"
)

func mustModel(t testing.TB, k curve.Kind) curve.Model {
	t.Helper()
	m, err := curve.New(k)
	require.NoError(t, err)

	return m
}

// plateauData is a noisy-looking plateau decay, deliberately off the model.
func plateauData() session.Data {
	return session.Data{
		X:        []float64{0, 0.2, 0.5, 1, 2, 4},
		Observed: []float64{10.1, 8.4, 6.7, 4.6, 2.9, 2.1},
		SD:       []float64{0.2, 0.2, 0.3, 0.2, 0.25, 0.3},
	}
}

func TestScenarioChi2(t *testing.T) {
	t.Parallel()
	s, err := session.New(mustModel(t, curve.Exp), session.Data{
		X:        []float64{0, 1},
		Observed: []float64{1, 0.5},
		SD:       []float64{0.1, 0.1},
	})
	require.NoError(t, err)

	v, err := s.Func([]float64{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.745, v, 1e-3)

	pred := s.BackCalc()
	assert.Equal(t, 1.0, pred[0])
	assert.InDelta(t, math.Exp(-1), pred[1], 1e-15)
}

func TestGradMatchesFiniteDifferences(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		kind curve.Kind
		data session.Data
		opts []session.Option
		raw  []float64
	}{
		{
			name: "exp",
			kind: curve.Exp,
			data: session.Data{
				X:        []float64{0, 0.5, 1, 2, 3},
				Observed: []float64{5.2, 3.1, 1.7, 0.7, 0.2},
				SD:       []float64{0.1, 0.1, 0.2, 0.1, 0.05},
			},
			raw: []float64{0.9, 5},
		},
		{
			name: "plateau-scaled-reordered",
			kind: curve.Plateau,
			data: plateauData(),
			opts: []session.Option{
				session.WithOrder(curve.RoleIinf, curve.RoleRate, curve.RoleI0),
				session.WithScaling([]float64{0.5, 2, 0.1}),
			},
			raw: []float64{4, 0.45, 95},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s, err := session.New(mustModel(t, tc.kind), tc.data, tc.opts...)
			require.NoError(t, err)

			got, err := s.Grad(nil, tc.raw)
			require.NoError(t, err)

			want := fd.Gradient(nil, func(x []float64) float64 {
				v, err := s.Func(x)
				require.NoError(t, err)
				return v
			}, tc.raw, &fd.Settings{Formula: fd.Central})

			for j := range want {
				assert.InDelta(t, want[j], got[j], 1e-5*math.Max(1, math.Abs(want[j])), "grad[%d]", j)
			}
		})
	}
}

func TestDerivativesMatchFiniteDifferences_Randomized(t *testing.T) {
	t.Parallel()
	kinds := []curve.Kind{
		curve.Exp, curve.ExpGrowth, curve.ExpNegAmp, curve.ExpNegAmpGrowth,
		curve.Plateau, curve.PlateauNeg, curve.InversionRecovery, curve.SaturationRecovery,
	}
	x := []float64{0, 0.2, 0.5, 1, 1.5, 2}
	const draws = 25

	for _, kind := range kinds {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			t.Parallel()
			rng := rand.New(rand.NewPCG(11, uint64(kind)))
			model := mustModel(t, kind)
			roles := kind.Roles()
			M := len(roles)

			for d := 0; d < draws; d++ {
				truth := make([]float64, M)
				for j, r := range roles {
					if r == curve.RoleRate {
						truth[j] = 0.1 + 1.9*rng.Float64()
					} else {
						truth[j] = 0.5 + 9.5*rng.Float64()
					}
				}
				obs := make([]float64, len(x))
				require.NoError(t, model.BackCalc(obs, truth, x))
				sd := make([]float64, len(x))
				for i := range obs {
					obs[i] += 0.1 * rng.NormFloat64()
					sd[i] = 0.2
				}

				perm := rng.Perm(M)
				order := make([]curve.Role, M)
				scale := make([]float64, M)
				vec := make([]float64, M)
				for j, c := range perm {
					order[j] = roles[c]
					scale[j] = 0.1 + 9.9*rng.Float64()
					vec[j] = truth[c] * (0.97 + 0.06*rng.Float64())
				}

				s, err := session.New(model, session.Data{X: x, Observed: obs, SD: sd},
					session.WithOrder(order...), session.WithScaling(scale))
				require.NoError(t, err)
				raw, err := s.FromModel(vec)
				require.NoError(t, err)

				f := func(v []float64) float64 {
					c, err := s.Func(v)
					require.NoError(t, err)
					return c
				}

				got, err := s.Grad(nil, raw)
				require.NoError(t, err)
				want := fd.Gradient(nil, f, raw, &fd.Settings{Formula: fd.Central})
				for j := range want {
					require.InDelta(t, want[j], got[j], 1e-5*math.Max(1, math.Abs(want[j])),
						"order=%v scale=%v raw=%v grad[%d]", order, scale, raw, j)
				}

				h, err := s.Hess(raw)
				require.NoError(t, err)
				require.NoError(t, matrix.ValidateSymmetric(h, 0))
				// Differentiate the analytic gradient rather than χ² twice.
				num := mat.NewDense(M, M, nil)
				fd.Jacobian(num, func(g, v []float64) {
					_, err := s.Grad(g, v)
					require.NoError(t, err)
				}, raw, &fd.JacobianSettings{Formula: fd.Central})
				for j := 0; j < M; j++ {
					for k := 0; k < M; k++ {
						hv, _ := h.At(j, k)
						nv := num.At(j, k)
						require.InDelta(t, nv, hv, 1e-4*math.Max(1, math.Abs(nv)),
							"order=%v scale=%v raw=%v hess[%d][%d]", order, scale, raw, j, k)
					}
				}
			}
		})
	}
}

func TestHessMatchesFiniteDifferencesAndIsSymmetric(t *testing.T) {
	t.Parallel()
	s, err := session.New(mustModel(t, curve.Plateau), plateauData(),
		session.WithOrder(curve.RoleI0, curve.RoleIinf, curve.RoleRate),
		session.WithScaling([]float64{2, 0.5, 1}),
	)
	require.NoError(t, err)
	raw := []float64{5, 4, 1.1}

	h, err := s.Hess(raw)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateSymmetric(h, 0))

	var num mat.SymDense
	fd.Hessian(&num, func(x []float64) float64 {
		v, err := s.Func(x)
		require.NoError(t, err)
		return v
	}, raw, &fd.Settings{Formula: fd.Central})
	for j := 0; j < 3; j++ {
		for k := 0; k < 3; k++ {
			got, _ := h.At(j, k)
			want := num.At(j, k)
			assert.InDelta(t, want, got, 1e-3*math.Max(1, math.Abs(want)), "hess[%d][%d]", j, k)
		}
	}
}

func TestScalingRoundTrip(t *testing.T) {
	t.Parallel()
	model := mustModel(t, curve.InversionRecovery)
	data := session.Data{
		X:        []float64{0.01, 0.1, 0.3, 0.6, 1.2, 2.5},
		Observed: []float64{-4.7, -3.1, -0.9, 1.4, 3.9, 5.0},
		SD:       []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1},
	}
	scale := []float64{0.25, 3, 1e-2}
	theta := []float64{1.3, 10.2, 5.1} // model frame

	plain, err := session.New(model, data)
	require.NoError(t, err)
	scaled, err := session.New(model, data, session.WithScaling(scale))
	require.NoError(t, err)

	raw, err := scaled.FromModel(theta)
	require.NoError(t, err)
	back, err := scaled.ToModel(raw)
	require.NoError(t, err)
	assert.InDeltaSlice(t, theta, back, 1e-12)

	want, err := plain.Grad(nil, theta)
	require.NoError(t, err)
	got, err := scaled.Grad(nil, raw)
	require.NoError(t, err)
	for j := range got {
		assert.InDelta(t, want[j], got[j]/scale[j], 1e-9*math.Max(1, math.Abs(want[j])))
	}

	hw, err := plain.Hess(theta)
	require.NoError(t, err)
	hg, err := scaled.Hess(raw)
	require.NoError(t, err)
	for j := 0; j < 3; j++ {
		for k := 0; k < 3; k++ {
			w, _ := hw.At(j, k)
			g, _ := hg.At(j, k)
			assert.InDelta(t, w, g/(scale[j]*scale[k]), 1e-8*math.Max(1, math.Abs(w)))
		}
	}

	vp, err := plain.Func(theta)
	require.NoError(t, err)
	vs, err := scaled.Func(raw)
	require.NoError(t, err)
	assert.InDelta(t, vp, vs, 1e-9)
}

func TestJacobianAccessors(t *testing.T) {
	t.Parallel()
	s, err := session.New(mustModel(t, curve.Exp), plateauData(), session.WithScaling([]float64{1, 10}))
	require.NoError(t, err)

	_, err = s.Jacobian()
	require.ErrorIs(t, err, session.ErrNoEvaluation)
	_, err = s.Chi2Jacobian()
	require.ErrorIs(t, err, session.ErrNoEvaluation)

	raw := []float64{0.8, 1}
	g, err := s.Grad(nil, raw)
	require.NoError(t, err)

	jac, err := s.Jacobian()
	require.NoError(t, err)
	assert.Equal(t, 2, jac.Rows())
	assert.Equal(t, 6, jac.Cols())

	// Optimizer-frame Jacobian: ∂y/∂I0_raw = 10·exp(−R·x).
	d := plateauData()
	for i, x := range d.X {
		v, _ := jac.At(1, i)
		assert.InDelta(t, 10*math.Exp(-0.8*x), v, 1e-12)
	}

	cj, err := s.Chi2Jacobian()
	require.NoError(t, err)
	for j := 0; j < 2; j++ {
		row, _ := cj.Row(j)
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		assert.InDelta(t, g[j], sum, 1e-9*math.Max(1, math.Abs(g[j])))
	}

	// Accessors hand out copies.
	_ = jac.Set(0, 0, 12345)
	again, err := s.Jacobian()
	require.NoError(t, err)
	v, _ := again.At(0, 0)
	assert.NotEqual(t, 12345.0, v)

	mj, err := s.ModelJacobian(raw)
	require.NoError(t, err)
	assert.Equal(t, again.String(), mj.String())
}

func TestResidualsSquareToChi2(t *testing.T) {
	t.Parallel()
	s, err := session.New(mustModel(t, curve.Plateau), plateauData())
	require.NoError(t, err)
	p := []float64{1, 10, 2}
	r, err := s.Residuals(p)
	require.NoError(t, err)
	sum := 0.0
	for _, v := range r {
		sum += v * v
	}
	v, err := s.Func(p)
	require.NoError(t, err)
	assert.InDelta(t, v, sum, 1e-12)
}

func TestSetupValidation(t *testing.T) {
	t.Parallel()
	model := mustModel(t, curve.Exp)
	good := session.Data{X: []float64{0, 1}, Observed: []float64{1, 0.5}, SD: []float64{0.1, 0.1}}

	tests := []struct {
		name string
		data session.Data
		opts []session.Option
		want []error
	}{
		{"empty", session.Data{}, nil, []error{session.ErrInvalidData}},
		{"short observed", session.Data{X: good.X, Observed: []float64{1}, SD: good.SD}, nil,
			[]error{session.ErrInvalidData, matrix.ErrDimensionMismatch}},
		{"short sd", session.Data{X: good.X, Observed: good.Observed, SD: []float64{1}}, nil,
			[]error{session.ErrInvalidData, matrix.ErrDimensionMismatch}},
		{"zero sd", session.Data{X: good.X, Observed: good.Observed, SD: []float64{0.1, 0}}, nil,
			[]error{session.ErrInvalidData, chi2.ErrInvalidSD}},
		{"negative sd", session.Data{X: good.X, Observed: good.Observed, SD: []float64{-1, 0.1}}, nil,
			[]error{session.ErrInvalidData, chi2.ErrInvalidSD}},
		{"inf sd", session.Data{X: good.X, Observed: good.Observed, SD: []float64{math.Inf(1), 0.1}}, nil,
			[]error{session.ErrInvalidData, chi2.ErrInvalidSD}},
		{"nan observed", session.Data{X: good.X, Observed: []float64{math.NaN(), 1}, SD: good.SD}, nil,
			[]error{session.ErrInvalidData, matrix.ErrNaNInf}},
		{"scaling length", good, []session.Option{session.WithScaling([]float64{1})},
			[]error{session.ErrInvalidScaling}},
		{"scaling zero", good, []session.Option{session.WithScaling([]float64{1, 0})},
			[]error{session.ErrInvalidScaling}},
		{"scaling nan", good, []session.Option{session.WithScaling([]float64{math.NaN(), 1})},
			[]error{session.ErrInvalidScaling}},
		{"order short", good, []session.Option{session.WithOrder(curve.RoleRate)},
			[]error{session.ErrInvalidOrder}},
		{"order duplicate", good, []session.Option{session.WithOrder(curve.RoleRate, curve.RoleRate)},
			[]error{session.ErrInvalidOrder}},
		{"order foreign role", good, []session.Option{session.WithOrder(curve.RoleRate, curve.RoleKex)},
			[]error{session.ErrInvalidOrder}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := session.New(model, tc.data, tc.opts...)
			for _, w := range tc.want {
				require.ErrorIs(t, err, w)
			}
		})
	}

	_, err := session.New(nil, good)
	require.ErrorIs(t, err, session.ErrNilModel)
}

func TestSetupReplacesAndCopies(t *testing.T) {
	t.Parallel()
	data := plateauData()
	s, err := session.New(mustModel(t, curve.Plateau), data)
	require.NoError(t, err)
	data.Observed[0] = -999 // caller mutation must not leak in
	assert.Equal(t, 10.1, s.Data().Observed[0])

	_, err = s.Grad(nil, []float64{1, 10, 2})
	require.NoError(t, err)

	require.NoError(t, s.Setup(session.Data{
		X: []float64{0, 1, 2}, Observed: []float64{3, 2, 1}, SD: []float64{1, 1, 1},
	}, session.WithScaling([]float64{2, 2, 2})))
	assert.Equal(t, 3, s.NumPoints())
	assert.Equal(t, 3, s.NumParams())
	assert.Equal(t, []float64{2, 2, 2}, s.Scaling())
	_, err = s.Jacobian()
	require.ErrorIs(t, err, session.ErrNoEvaluation, "setup discards previous derivatives")

	// A failed Setup leaves the session untouched.
	require.Error(t, s.Setup(session.Data{X: []float64{1}}))
	assert.Equal(t, 3, s.NumPoints())
}

func TestAutoScaling(t *testing.T) {
	t.Parallel()
	data := session.Data{
		X:        []float64{0, 0, 1, 2},
		Observed: []float64{90, 110, 50, 20},
		SD:       []float64{1, 1, 1, 1},
	}
	s, err := session.New(mustModel(t, curve.Plateau), data, session.WithAutoScaling())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 100, 100}, s.Scaling())

	// Saturation recovery starts at zero; the peak takes over.
	sat := session.Data{X: []float64{0, 1, 2}, Observed: []float64{0, 30, 40}, SD: []float64{1, 1, 1}}
	s, err = session.New(mustModel(t, curve.SaturationRecovery), sat, session.WithAutoScaling())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 40}, s.Scaling())

	// Order is honoured.
	s, err = session.New(mustModel(t, curve.Plateau), data,
		session.WithOrder(curve.RoleIinf, curve.RoleI0, curve.RoleRate), session.WithAutoScaling())
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 100, 1}, s.Scaling())
	assert.Equal(t, []curve.Role{curve.RoleIinf, curve.RoleI0, curve.RoleRate}, s.Roles())
}

func TestEvaluationErrors(t *testing.T) {
	t.Parallel()
	s, err := session.New(mustModel(t, curve.Exp), plateauData())
	require.NoError(t, err)

	_, err = s.Func([]float64{1})
	require.ErrorIs(t, err, session.ErrParamCount)
	require.ErrorIs(t, s.Err(), session.ErrParamCount)

	_, err = s.Grad(make([]float64, 3), []float64{1, 1})
	require.ErrorIs(t, err, session.ErrParamCount)
	_, err = s.Hess([]float64{1, 1, 1})
	require.ErrorIs(t, err, session.ErrParamCount)
	_, err = s.ToModel([]float64{1})
	require.ErrorIs(t, err, session.ErrParamCount)
	_, err = s.FromModel([]float64{1, 2, 3})
	require.ErrorIs(t, err, session.ErrParamCount)

	_, err = s.Func([]float64{1, 1})
	require.NoError(t, err)
	assert.NoError(t, s.Err(), "a successful evaluation clears the last error")
}

func TestDispersionHasNoDerivatives(t *testing.T) {
	t.Parallel()
	s, err := session.New(mustModel(t, curve.DispersionFast), session.Data{
		X:        []float64{50, 100, 200, 400},
		Observed: []float64{14, 12.5, 11, 10.4},
		SD:       []float64{0.3, 0.3, 0.3, 0.3},
	})
	require.NoError(t, err)

	_, err = s.Func([]float64{10, 5, 900})
	require.NoError(t, err)
	_, err = s.Grad(nil, []float64{10, 5, 900})
	require.ErrorIs(t, err, curve.ErrNotImplemented)
	_, err = s.Hess([]float64{10, 5, 900})
	require.ErrorIs(t, err, curve.ErrNotImplemented)

	p := s.Problem()
	assert.Nil(t, p.Grad)
	assert.Nil(t, p.Hess)
	assert.NotNil(t, p.Func)
}

func TestProblemAdapter(t *testing.T) {
	t.Parallel()
	s, err := session.New(mustModel(t, curve.Exp), plateauData())
	require.NoError(t, err)
	p := s.Problem()
	require.NotNil(t, p.Grad)
	require.NotNil(t, p.Hess)

	x := []float64{0.7, 9}
	want, err := s.Func(x)
	require.NoError(t, err)
	assert.Equal(t, want, p.Func(x))

	g := make([]float64, 2)
	p.Grad(g, x)
	wantG, err := s.Grad(nil, x)
	require.NoError(t, err)
	assert.Equal(t, wantG, g)

	h := mat.NewSymDense(2, nil)
	p.Hess(h, x)
	wantH, err := s.Hess(x)
	require.NoError(t, err)
	v, _ := wantH.At(0, 1)
	assert.Equal(t, v, h.At(1, 0))

	status, err := p.Status()
	require.NoError(t, err)
	assert.Equal(t, "NotTerminated", status.String())

	assert.True(t, math.IsInf(p.Func([]float64{1}), 1))
	_, err = p.Status()
	require.ErrorIs(t, err, session.ErrParamCount)
}

func TestProblemAdapter_FailedDerivativesAreNaN(t *testing.T) {
	t.Parallel()
	s, err := session.New(mustModel(t, curve.Exp), plateauData())
	require.NoError(t, err)
	p := s.Problem()

	g := []float64{3, 4}
	p.Grad(g, []float64{1})
	assert.True(t, math.IsNaN(g[0]) && math.IsNaN(g[1]), "grad=%v", g)
	_, err = p.Status()
	require.ErrorIs(t, err, session.ErrParamCount)

	h := mat.NewSymDense(2, []float64{1, 2, 2, 1})
	p.Hess(h, []float64{1, 2, 3})
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.True(t, math.IsNaN(h.At(i, j)), "hess[%d][%d]=%g", i, j, h.At(i, j))
		}
	}
	_, err = p.Status()
	require.ErrorIs(t, err, session.ErrParamCount)

	// A clean evaluation clears the failure.
	p.Grad(g, []float64{0.7, 9})
	assert.False(t, math.IsNaN(g[0]))
	_, err = p.Status()
	require.NoError(t, err)
}

func TestResample(t *testing.T) {
	t.Parallel()
	s, err := session.New(mustModel(t, curve.Plateau), plateauData(),
		session.WithOrder(curve.RoleI0, curve.RoleRate, curve.RoleIinf),
		session.WithScaling([]float64{10, 1, 2}))
	require.NoError(t, err)

	obs := []float64{1, 2, 3, 4, 5, 6}
	r, err := s.Resample(obs)
	require.NoError(t, err)
	assert.Equal(t, obs, r.Data().Observed)
	assert.Equal(t, s.Data().X, r.Data().X)
	assert.Equal(t, s.Scaling(), r.Scaling())
	assert.Equal(t, s.Roles(), r.Roles())
	assert.Equal(t, 10.1, s.Data().Observed[0], "original untouched")

	_, err = s.Resample([]float64{1})
	require.ErrorIs(t, err, session.ErrInvalidData)
}

func TestCanonical(t *testing.T) {
	t.Parallel()
	s, err := session.New(mustModel(t, curve.Plateau), plateauData(),
		session.WithOrder(curve.RoleIinf, curve.RoleRate, curve.RoleI0))
	require.NoError(t, err)
	got, err := s.Canonical([]float64{2, 1, 10})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 10, 2}, got)

	back, err := s.VectorOrder(got)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 10}, back)

	_, err = s.VectorOrder([]float64{1})
	require.ErrorIs(t, err, session.ErrParamCount)
}

func TestPredict(t *testing.T) {
	t.Parallel()
	s, err := session.New(mustModel(t, curve.Exp), plateauData(),
		session.WithOrder(curve.RoleI0, curve.RoleRate),
		session.WithScaling([]float64{10, 1}))
	require.NoError(t, err)

	pred, err := s.Predict([]float64{1, 0.5})
	require.NoError(t, err)
	x := plateauData().X
	require.Len(t, pred, len(x))
	for i, xi := range x {
		assert.InDelta(t, 10*math.Exp(-0.5*xi), pred[i], 1e-12)
	}
	pred[0] = -1
	assert.NotEqual(t, -1.0, s.BackCalc()[0], "Predict returns a copy")

	_, err = s.Predict([]float64{1})
	require.ErrorIs(t, err, session.ErrParamCount)
}

func TestConcurrentEvaluation(t *testing.T) {
	t.Parallel()
	s, err := session.New(mustModel(t, curve.Plateau), plateauData())
	require.NoError(t, err)

	params := [][]float64{{1, 10, 2}, {0.5, 9, 1}, {2, 11, 3}}
	want := make([]float64, len(params))
	wantG := make([][]float64, len(params))
	wantP := make([][]float64, len(params))
	for i, p := range params {
		want[i], err = s.Func(p)
		require.NoError(t, err)
		wantG[i], err = s.Grad(nil, p)
		require.NoError(t, err)
		wantP[i], err = s.Predict(p)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for rep := 0; rep < 50; rep++ {
				i := (w + rep) % len(params)
				v, err := s.Func(params[i])
				assert.NoError(t, err)
				assert.Equal(t, want[i], v)
				g, err := s.Grad(nil, params[i])
				assert.NoError(t, err)
				assert.Equal(t, wantG[i], g)
				pred, err := s.Predict(params[i])
				assert.NoError(t, err)
				assert.Equal(t, wantP[i], pred)
			}
		}(w)
	}
	wg.Wait()
}

func TestLoggerReceivesSetup(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	_, err := session.New(mustModel(t, curve.Exp), plateauData(), session.WithLogger(zap.New(core)))
	require.NoError(t, err)

	entries := logs.FilterMessage("session setup").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "exp", fields["model"])
	assert.EqualValues(t, 6, fields["points"])
	assert.EqualValues(t, 2, fields["params"])

	// zaptest routes through the test log.
	s, err := session.New(mustModel(t, curve.Exp), plateauData(), session.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	assert.NotNil(t, s.Logger())
}
