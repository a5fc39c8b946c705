// Package dataset reads columnar relaxation data (x, y[, sd]) from delimited text.
//
// One sample per line: the independent variable (relaxation delay or CPMG
// frequency), the observed value and, optionally, its standard deviation.
// Lines starting with '#' are comments. A leading non-numeric row is treated
// as a header and skipped only when none of its fields is a number.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/relaxfit/session"
)

var (
	// ErrEmpty indicates an input without data rows.
	ErrEmpty = errors.New("dataset: no data rows")

	// ErrColumns indicates a row with an unsupported number of columns, or a
	// two-column row without a default standard deviation.
	ErrColumns = errors.New("dataset: unexpected column count")

	// ErrParse indicates a field that is not a floating-point number.
	ErrParse = errors.New("dataset: invalid number")
)

// Series is one loaded observation set.
type Series struct {
	X  []float64
	Y  []float64
	SD []float64
}

// Len returns the number of samples.
func (s *Series) Len() int { return len(s.X) }

// Data converts s into session observations (slices are shared, Setup copies them).
func (s *Series) Data() session.Data {
	return session.Data{X: s.X, Observed: s.Y, SD: s.SD}
}

// Option configures Read.
type Option func(*options)

type options struct {
	comma     rune
	defaultSD float64 // > 0 enables two-column input
}

// WithDelimiter sets the field delimiter (default ',').
// Use ' ' or '\t' for whitespace-separated files.
func WithDelimiter(r rune) Option {
	return func(o *options) { o.comma = r }
}

// WithDefaultSD accepts two-column rows and assigns sd to every sample.
func WithDefaultSD(sd float64) Option {
	return func(o *options) { o.defaultSD = sd }
}

// ReadFile opens path, decompressing it when the extension asks for it (see
// CompressionOf), and calls Read.
func ReadFile(path string, opts ...Option) (*Series, error) {
	f, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadFile: %w", err)
	}
	defer f.Close()

	return Read(f, opts...)
}

// Read parses every row of r into a Series.
func Read(r io.Reader, opts ...Option) (*Series, error) {
	o := options{comma: ','}
	for _, opt := range opts {
		opt(&o)
	}

	cr := csv.NewReader(r)
	cr.Comma = o.comma
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	out := &Series{}
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Read: %w", err)
		}
		rec = compact(rec)
		if len(rec) == 0 {
			continue
		}

		if row == 0 && isHeader(rec) {
			continue
		}
		vals, err := parseRow(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("Read: line %d: %w", line, err)
		}
		switch {
		case len(vals) == 3:
		case len(vals) == 2 && o.defaultSD > 0:
			vals = append(vals, o.defaultSD)
		default:
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("Read: line %d: %d fields: %w", line, len(vals), ErrColumns)
		}
		out.X = append(out.X, vals[0])
		out.Y = append(out.Y, vals[1])
		out.SD = append(out.SD, vals[2])
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("Read: %w", ErrEmpty)
	}

	return out, nil
}

// compact drops empty fields produced by repeated whitespace delimiters.
func compact(rec []string) []string {
	out := rec[:0]
	for _, f := range rec {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}

	return out
}

// isHeader reports whether no field of rec parses as a number. A row that
// mixes numbers and text is a malformed data row, not a header.
func isHeader(rec []string) bool {
	for _, f := range rec {
		if _, err := strconv.ParseFloat(f, 64); err == nil {
			return false
		}
	}

	return true
}

func parseRow(rec []string) ([]float64, error) {
	vals := make([]float64, len(rec))
	for i, f := range rec {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("field %d %q: %w", i+1, f, ErrParse)
		}
		vals[i] = v
	}

	return vals, nil
}
