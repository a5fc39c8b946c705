package plotting

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/katalvlaran/relaxfit/session"
)

// DefaultSamples is the number of curve points drawn between the smallest and
// largest x.
const DefaultSamples = 200

// ErrSamples indicates a curve grid with fewer than two points.
var ErrSamples = errors.New("plotting: need at least 2 curve samples")

// Option configures a plot.
type Option func(*Style)

// Style is the resolved presentation of one plot.
type Style struct {
	Title   string
	XLabel  string
	YLabel  string
	Width   vg.Length
	Height  vg.Length
	Samples int
}

// WithTitle sets the plot title.
func WithTitle(title string) Option {
	return func(o *Style) { o.Title = title }
}

// WithLabels sets the axis labels.
func WithLabels(x, y string) Option {
	return func(o *Style) { o.XLabel, o.YLabel = x, y }
}

// WithSize sets the image size of SaveFit.
func WithSize(w, h vg.Length) Option {
	return func(o *Style) { o.Width, o.Height = w, h }
}

// WithSamples sets the number of curve points (>= 2).
func WithSamples(n int) Option {
	return func(o *Style) { o.Samples = n }
}

// StyleOf applies opts over the defaults for s: the model name as title,
// generic axis labels, a 6×4 inch image and DefaultSamples curve points.
func StyleOf(s *session.Session, opts ...Option) Style {
	o := Style{
		Title:   s.Model().Kind().String(),
		XLabel:  "x",
		YLabel:  "intensity",
		Width:   6 * vg.Inch,
		Height:  4 * vg.Inch,
		Samples: DefaultSamples,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// errorPoints feeds both the scatter and the error bars.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Observations returns the data of s as plotter points with symmetric sd error bars.
func Observations(s *session.Session) (plotter.XYs, plotter.YErrors) {
	d := s.Data()
	pts := make(plotter.XYs, len(d.X))
	errs := make(plotter.YErrors, len(d.X))
	for i := range d.X {
		pts[i].X, pts[i].Y = d.X[i], d.Observed[i]
		errs[i].Low, errs[i].High = d.SD[i], d.SD[i]
	}

	return pts, errs
}

// Curve samples the model at params (model frame, vector order) on n evenly
// spaced points spanning the data's x range.
func Curve(s *session.Session, params []float64, n int) (plotter.XYs, error) {
	if n < 2 {
		return nil, ErrSamples
	}
	canon, err := s.Canonical(params)
	if err != nil {
		return nil, fmt.Errorf("Curve: %w", err)
	}
	x := s.Data().X
	xs := floats.Span(make([]float64, n), floats.Min(x), floats.Max(x))
	ys := make([]float64, n)
	if err := s.Model().BackCalc(ys, canon, xs); err != nil {
		return nil, fmt.Errorf("Curve: %w", err)
	}
	pts := make(plotter.XYs, n)
	for i := range xs {
		pts[i].X, pts[i].Y = xs[i], ys[i]
	}

	return pts, nil
}

// SaveFit writes a plot of the data of s and the curve at params to path.
func SaveFit(path string, s *session.Session, params []float64, opts ...Option) error {
	o := StyleOf(s, opts...)

	curve, err := Curve(s, params, o.Samples)
	if err != nil {
		return fmt.Errorf("SaveFit: %w", err)
	}
	pts, errs := Observations(s)
	data := errorPoints{XYs: pts, YErrors: errs}

	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = o.XLabel
	p.Y.Label.Text = o.YLabel
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(data)
	if err != nil {
		return fmt.Errorf("SaveFit: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(3)
	scatter.Shape = draw.CircleGlyph{}

	bars, err := plotter.NewYErrorBars(data)
	if err != nil {
		return fmt.Errorf("SaveFit: %w", err)
	}

	line, err := plotter.NewLine(curve)
	if err != nil {
		return fmt.Errorf("SaveFit: %w", err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{R: 196, G: 32, B: 32, A: 255}

	p.Add(bars, scatter, line)
	p.Legend.Add("data", scatter)
	p.Legend.Add("fit", line)
	p.Legend.Top = true

	if err := p.Save(o.Width, o.Height, path); err != nil {
		return fmt.Errorf("SaveFit: %w", err)
	}

	return nil
}
