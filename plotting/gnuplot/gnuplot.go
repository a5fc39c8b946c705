//go:build gnuplot

package gnuplot

import (
	"fmt"

	"github.com/Arafatk/glot"
	"gonum.org/v1/plot/plotter"

	"github.com/katalvlaran/relaxfit/plotting"
	"github.com/katalvlaran/relaxfit/session"
)

// Columns splits points into the x and y rows glot expects.
func Columns(pts plotter.XYs) [][]float64 {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}

	return [][]float64{xs, ys}
}

// Preview renders the data of s and the curve at params (model frame, vector
// order) with gnuplot to path.
func Preview(path string, s *session.Session, params []float64, opts ...plotting.Option) (err error) {
	o := plotting.StyleOf(s, opts...)

	curve, err := plotting.Curve(s, params, o.Samples)
	if err != nil {
		return fmt.Errorf("Preview: %w", err)
	}
	pts, _ := plotting.Observations(s)

	g, err := glot.NewPlot(2, false, false)
	if err != nil {
		return fmt.Errorf("Preview: %w", err)
	}
	defer func() {
		if cerr := g.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("Preview: %w", cerr)
		}
	}()

	steps := []func() error{
		func() error { return g.AddPointGroup("data", "points", Columns(pts)) },
		func() error { return g.AddPointGroup("fit", "lines", Columns(curve)) },
		func() error { return g.SetTitle(o.Title) },
		func() error { return g.SetXLabel(o.XLabel) },
		func() error { return g.SetYLabel(o.YLabel) },
		func() error { return g.SavePlot(path) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("Preview: %w", err)
		}
	}

	return nil
}
