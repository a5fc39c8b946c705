// SPDX-License-Identifier: MIT

package session

import (
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/katalvlaran/relaxfit/chi2"
	"github.com/katalvlaran/relaxfit/curve"
	"github.com/katalvlaran/relaxfit/matrix"
)

// Data is one observation set: N independent-variable samples (times or CPMG
// frequencies) with their observed values and standard deviations.
type Data struct {
	X        []float64
	Observed []float64
	SD       []float64
}

// Session evaluates χ² and its derivatives for one model and one observation set.
type Session struct {
	mu sync.Mutex

	model curve.Model
	log   *zap.Logger

	// immutable after Setup
	data  Data
	roles []curve.Role // vector order
	perm  []int        // perm[j] = canonical index of vector position j
	scale []float64    // vector order

	// scratch, canonical order, overwritten per call
	params   []float64
	pred     []float64
	grad     []float64
	jacModel *matrix.Dense
	hessMod  *matrix.Tensor
	d2       *matrix.Dense

	// most recent derivative evaluation, vector order, optimizer frame
	jac     *matrix.Dense
	chiJac  *matrix.Dense
	derived bool

	lastErr error
}

// New validates data against model and returns a ready Session.
func New(model curve.Model, data Data, opts ...Option) (*Session, error) {
	s := &Session{model: model}
	if err := s.Setup(data, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// Setup replaces the observation set, role order and scaling of s.
// On error s is left unchanged.
//
// Stage 1 (Validate): equal lengths, N ≥ 1, finite values, SD > 0.
// Stage 2 (Resolve):  role order → permutation, scaling vector.
// Stage 3 (Allocate): scratch buffers sized to M and N.
func (s *Session) Setup(data Data, opts ...Option) error {
	if s.model == nil {
		return sessionErrorf("Setup", ErrNilModel)
	}
	o := gatherOptions(opts...)

	// Stage 1
	n := len(data.X)
	if n == 0 {
		return dataErrorf("X", matrix.ErrInvalidDimensions)
	}
	if err := matrix.ValidateVecLen(data.Observed, n); err != nil {
		return dataErrorf("Observed", err)
	}
	if err := matrix.ValidateVecLen(data.SD, n); err != nil {
		return dataErrorf("SD", err)
	}
	if err := matrix.ValidateFinite(data.X); err != nil {
		return dataErrorf("X", err)
	}
	if err := matrix.ValidateFinite(data.Observed); err != nil {
		return dataErrorf("Observed", err)
	}
	if err := matrix.ValidatePositive(data.SD); err != nil {
		return dataErrorf("SD", chi2.ErrInvalidSD)
	}
	cp := Data{
		X:        append([]float64(nil), data.X...),
		Observed: append([]float64(nil), data.Observed...),
		SD:       append([]float64(nil), data.SD...),
	}

	// Stage 2
	roles, perm, err := resolveOrder(s.model.Roles(), o.order)
	if err != nil {
		return err
	}
	m := len(roles)
	scale, err := resolveScaling(o, roles, cp)
	if err != nil {
		return err
	}

	// Stage 3
	jacModel, _ := matrix.NewDense(m, n)
	hessMod, _ := matrix.NewTensor(m, n)
	d2, _ := matrix.NewDense(m, m)
	jac, _ := matrix.NewDense(m, n)
	chiJac, _ := matrix.NewDense(m, n)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = o.logger
	s.data = cp
	s.roles, s.perm, s.scale = roles, perm, scale
	s.params = make([]float64, m)
	s.pred = make([]float64, n)
	s.grad = make([]float64, m)
	s.jacModel, s.hessMod, s.d2 = jacModel, hessMod, d2
	s.jac, s.chiJac = jac, chiJac
	s.derived = false
	s.lastErr = nil

	s.log.Debug("session setup",
		zap.Stringer("model", s.model.Kind()),
		zap.Int("points", n),
		zap.Int("params", m),
		zap.Any("roles", roleNames(roles)),
		zap.Float64s("scaling", scale),
	)

	return nil
}

// Func evaluates χ²(raw ⊙ scale).
//
// Complexity: O(N).
func (s *Session) Func(params []float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backCalc("Func", params); err != nil {
		return 0, err
	}
	v, err := chi2.Chi2(s.data.Observed, s.data.SD, s.pred)
	if err != nil {
		return 0, s.fail("Func", err)
	}

	return v, nil
}

// Grad writes ∂χ²/∂raw into dst (allocated when nil) and returns it.
// Entry j is the model-frame gradient times scale[j].
//
// Complexity: O(M·N).
func (s *Session) Grad(dst, params []float64) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := len(s.roles)
	if dst == nil {
		dst = make([]float64, m)
	}
	if len(dst) != m {
		return nil, s.fail("Grad", ErrParamCount)
	}
	if err := s.derivatives("Grad", params, false); err != nil {
		return nil, err
	}
	if err := chi2.DChi2(s.grad, s.data.Observed, s.pred, s.jacModel, s.data.SD); err != nil {
		return nil, s.fail("Grad", err)
	}
	for j, c := range s.perm {
		dst[j] = s.grad[c] * s.scale[j]
	}

	return dst, nil
}

// Hess returns ∂²χ²/∂raw² as a fresh M×M matrix. Entry (j,k) is the
// model-frame Hessian times scale[j]·scale[k].
//
// Complexity: O(M²·N).
func (s *Session) Hess(params []float64) (*matrix.Dense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.derivatives("Hess", params, true); err != nil {
		return nil, err
	}
	if err := chi2.D2Chi2(s.d2, s.data.Observed, s.pred, s.jacModel, s.hessMod, s.data.SD); err != nil {
		return nil, s.fail("Hess", err)
	}
	m := len(s.roles)
	out, _ := matrix.NewDense(m, m)
	for j, cj := range s.perm {
		row, _ := out.Row(j)
		src, _ := s.d2.Row(cj)
		for k, ck := range s.perm {
			row[k] = src[ck] * (s.scale[j] * s.scale[k])
		}
	}

	return out, nil
}

// ModelJacobian returns ∂y/∂raw (M×N, vector order, optimizer frame) at params.
// It counts as a derivative evaluation for Jacobian and Chi2Jacobian.
func (s *Session) ModelJacobian(params []float64) (*matrix.Dense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.derivatives("ModelJacobian", params, false); err != nil {
		return nil, err
	}

	return s.jac.CloneDense(), nil
}

// Residuals returns the weighted residuals (observed − predicted)/sd at params.
// Their squared sum is χ².
func (s *Session) Residuals(params []float64) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backCalc("Residuals", params); err != nil {
		return nil, err
	}
	out := make([]float64, len(s.pred))
	for i, p := range s.pred {
		out[i] = (s.data.Observed[i] - p) / s.data.SD[i]
	}

	return out, nil
}

// Predict evaluates the model at params (raw frame, vector order) and returns a
// copy of the predictions, both under one lock.
//
// Complexity: O(N).
func (s *Session) Predict(params []float64) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backCalc("Predict", params); err != nil {
		return nil, err
	}

	return append([]float64(nil), s.pred...), nil
}

// BackCalc returns a copy of the most recent predictions (zeros before any call).
func (s *Session) BackCalc() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]float64(nil), s.pred...)
}

// Jacobian returns a copy of the model Jacobian (M×N, vector order, optimizer
// frame) from the most recent derivative evaluation.
func (s *Session) Jacobian() (*matrix.Dense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.derived {
		return nil, sessionErrorf("Jacobian", ErrNoEvaluation)
	}

	return s.jac.CloneDense(), nil
}

// Chi2Jacobian returns a copy of the per-point χ² gradient terms
// −2(oᵢ−pᵢ)·J[j][i]/sdᵢ² from the most recent derivative evaluation.
// Row sums equal Grad.
func (s *Session) Chi2Jacobian() (*matrix.Dense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.derived {
		return nil, sessionErrorf("Chi2Jacobian", ErrNoEvaluation)
	}

	return s.chiJac.CloneDense(), nil
}

// ToModel maps a raw (optimizer-frame) vector to model parameters: raw ⊙ scale.
// The result stays in vector order.
func (s *Session) ToModel(raw []float64) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(raw) != len(s.scale) {
		return nil, sessionErrorf("ToModel", ErrParamCount)
	}
	out := make([]float64, len(raw))
	for j, v := range raw {
		out[j] = v * s.scale[j]
	}

	return out, nil
}

// FromModel maps model parameters (vector order) to the raw frame: model / scale.
func (s *Session) FromModel(model []float64) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(model) != len(s.scale) {
		return nil, sessionErrorf("FromModel", ErrParamCount)
	}
	out := make([]float64, len(model))
	for j, v := range model {
		out[j] = v / s.scale[j]
	}

	return out, nil
}

// Canonical reorders a vector-order slice into the model's canonical role order.
func (s *Session) Canonical(v []float64) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(v) != len(s.perm) {
		return nil, sessionErrorf("Canonical", ErrParamCount)
	}
	out := make([]float64, len(v))
	for j, c := range s.perm {
		out[c] = v[j]
	}

	return out, nil
}

// VectorOrder reorders a canonical-order slice (as returned by
// curve.Estimate) into the session's vector order. It inverts Canonical.
func (s *Session) VectorOrder(canon []float64) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(canon) != len(s.perm) {
		return nil, sessionErrorf("VectorOrder", ErrParamCount)
	}
	out := make([]float64, len(canon))
	for j, c := range s.perm {
		out[j] = canon[c]
	}

	return out, nil
}

// Resample returns an independent Session sharing the model, x, sd, order,
// scaling and logger of s but with a new observed array (Monte Carlo).
func (s *Session) Resample(observed []float64) (*Session, error) {
	s.mu.Lock()
	model, log := s.model, s.log
	data := Data{X: s.data.X, Observed: observed, SD: s.data.SD}
	roles, scale := s.roles, s.scale
	s.mu.Unlock()

	return New(model, data, WithOrder(roles...), WithScaling(scale), WithLogger(log))
}

// NumParams returns M.
func (s *Session) NumParams() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.roles)
}

// NumPoints returns N.
func (s *Session) NumPoints() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.data.X)
}

// Scaling returns a copy of the scaling vector (vector order).
func (s *Session) Scaling() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]float64(nil), s.scale...)
}

// Roles returns a copy of the role order of the parameter vector.
func (s *Session) Roles() []curve.Role {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]curve.Role(nil), s.roles...)
}

// Data returns a deep copy of the observation set.
func (s *Session) Data() Data {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Data{
		X:        append([]float64(nil), s.data.X...),
		Observed: append([]float64(nil), s.data.Observed...),
		SD:       append([]float64(nil), s.data.SD...),
	}
}

// Model returns the curve model.
func (s *Session) Model() curve.Model { return s.model }

// Logger returns the session logger (never nil after Setup).
func (s *Session) Logger() *zap.Logger {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.log
}

// Err returns the error of the most recent failed evaluation, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastErr
}

// ---------- internal (caller holds s.mu) ----------

// load scales params into s.params in canonical order.
func (s *Session) load(op string, params []float64) error {
	if len(params) != len(s.roles) {
		return s.fail(op, ErrParamCount)
	}
	for j, c := range s.perm {
		s.params[c] = params[j] * s.scale[j]
	}

	return nil
}

func (s *Session) backCalc(op string, params []float64) error {
	if err := s.load(op, params); err != nil {
		return err
	}
	if err := s.model.BackCalc(s.pred, s.params, s.data.X); err != nil {
		return s.fail(op, err)
	}
	s.lastErr = nil

	return nil
}

// derivatives refreshes predictions, the model Jacobian (and Hessian when
// second is set), and the exported optimizer-frame Jacobian and χ² Jacobian.
func (s *Session) derivatives(op string, params []float64, second bool) error {
	if !s.model.Differentiable() {
		return s.fail(op, curve.ErrNotImplemented)
	}
	if err := s.backCalc(op, params); err != nil {
		return err
	}
	if err := curve.Jacobian(s.model, s.jacModel, s.params, s.data.X); err != nil {
		return s.fail(op, err)
	}
	if second {
		if err := curve.Hessian(s.model, s.hessMod, s.params, s.data.X); err != nil {
			return s.fail(op, err)
		}
	}
	for j, c := range s.perm {
		dst, _ := s.jac.Row(j)
		src, _ := s.jacModel.Row(c)
		for i, v := range src {
			dst[i] = v * s.scale[j]
		}
	}
	if err := chi2.Chi2Jacobian(s.chiJac, s.data.Observed, s.pred, s.jac, s.data.SD); err != nil {
		return s.fail(op, err)
	}
	s.derived = true

	return nil
}

func (s *Session) fail(op string, err error) error {
	s.lastErr = sessionErrorf(op, err)
	if s.log == nil {
		return s.lastErr
	}
	s.log.Debug("evaluation failed", zap.String("op", op), zap.Error(err))

	return s.lastErr
}

// resolveOrder maps the requested order onto the canonical roles.
func resolveOrder(canonical, order []curve.Role) ([]curve.Role, []int, error) {
	if order == nil {
		perm := make([]int, len(canonical))
		for j := range perm {
			perm[j] = j
		}

		return canonical, perm, nil
	}
	if len(order) != len(canonical) {
		return nil, nil, sessionErrorf("Setup", ErrInvalidOrder)
	}
	perm := make([]int, len(order))
	seen := make([]bool, len(canonical))
	for j, r := range order {
		c := -1
		for i, have := range canonical {
			if have == r {
				c = i
				break
			}
		}
		if c < 0 || seen[c] {
			return nil, nil, sessionErrorf("Setup", ErrInvalidOrder)
		}
		seen[c] = true
		perm[j] = c
	}

	return append([]curve.Role(nil), order...), perm, nil
}

// resolveScaling returns the scaling vector in vector order.
func resolveScaling(o Options, roles []curve.Role, data Data) ([]float64, error) {
	m := len(roles)
	switch {
	case o.auto:
		return autoScaling(roles, data), nil
	case o.scaling == nil:
		out := make([]float64, m)
		for j := range out {
			out[j] = 1
		}

		return out, nil
	}
	if len(o.scaling) != m {
		return nil, sessionErrorf("Setup", ErrInvalidScaling)
	}
	for _, v := range o.scaling {
		if !(v > 0) || math.IsInf(v, 1) {
			return nil, sessionErrorf("Setup", ErrInvalidScaling)
		}
	}

	return append([]float64(nil), o.scaling...), nil
}

// autoScaling leaves rates and kex at 1 and scales intensity-like roles by
// the mean observation at the smallest x, so raw intensities start near 1.
func autoScaling(roles []curve.Role, data Data) []float64 {
	xMin := math.Inf(1)
	for _, x := range data.X {
		xMin = math.Min(xMin, x)
	}
	var sum, peak float64
	var cnt int
	for i, x := range data.X {
		if x == xMin {
			sum += data.Observed[i]
			cnt++
		}
		peak = math.Max(peak, math.Abs(data.Observed[i]))
	}
	ref := math.Abs(sum / float64(cnt))
	if !(ref > 0) || math.IsInf(ref, 0) {
		ref = peak
	}
	factor := 1.0
	if ref > 0 && !math.IsInf(ref, 0) {
		factor = ref
	}

	out := make([]float64, len(roles))
	for j, r := range roles {
		switch r {
		case curve.RoleI0, curve.RoleIinf, curve.RoleR2, curve.RoleRex:
			out[j] = factor
		default:
			out[j] = 1
		}
	}

	return out
}

func roleNames(roles []curve.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = r.String()
	}

	return out
}
