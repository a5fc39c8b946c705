//go:build !gnuplot

package main

import (
	"errors"

	"github.com/katalvlaran/relaxfit/session"
)

// errNoPreview is returned for --preview by binaries built without the gnuplot tag.
var errNoPreview = errors.New("relaxfit: built without gnuplot preview (rebuild with -tags gnuplot)")

func preview(string, *session.Session, []float64) error {
	return errNoPreview
}
