// SPDX-License-Identifier: MIT

package fit

import (
	"math/rand/v2"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/relaxfit/session"
)

// MCResult collects a Monte Carlo error analysis.
type MCResult struct {
	Params [][]float64 // one model-frame vector per successful simulation
	SD     []float64   // per-parameter standard deviation across simulations
	Failed int         // simulations whose fit returned an error
}

// MonteCarlo estimates parameter errors by refitting n synthetic data sets:
// each is the back-calculated curve at best plus Gaussian noise N(0, sdᵢ).
// Every fit starts from best. src drives the noise; nil uses a fixed PCG seed.
//
// Complexity: n fits.
func MonteCarlo(s *session.Session, best []float64, n int, set Settings, src rand.Source) (*MCResult, error) {
	set = set.withDefaults()
	if src == nil {
		src = rand.NewPCG(1, 2)
	}
	raw, err := s.FromModel(best)
	if err != nil {
		return nil, fitErrorf("MonteCarlo", err)
	}
	pred, err := s.Predict(raw)
	if err != nil {
		return nil, fitErrorf("MonteCarlo", err)
	}
	sd := s.Data().SD

	out := &MCResult{}
	obs := make([]float64, len(pred))
	for sim := 0; sim < n; sim++ {
		for i, p := range pred {
			obs[i] = distuv.Normal{Mu: p, Sigma: sd[i], Src: src}.Rand()
		}
		rs, err := s.Resample(obs)
		if err != nil {
			return nil, fitErrorf("MonteCarlo", err)
		}
		res, err := Minimize(rs, best, set)
		if err != nil {
			out.Failed++
			set.Logger.Debug("monte carlo fit failed", zap.Int("sim", sim), zap.Error(err))
			continue
		}
		out.Params = append(out.Params, res.Params)
	}

	m := len(best)
	out.SD = make([]float64, m)
	if len(out.Params) < 2 {
		return out, nil
	}
	col := make([]float64, len(out.Params))
	for j := 0; j < m; j++ {
		for k, p := range out.Params {
			col[k] = p[j]
		}
		out.SD[j] = stat.StdDev(col, nil)
	}

	return out, nil
}
