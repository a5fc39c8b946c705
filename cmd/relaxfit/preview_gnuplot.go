//go:build gnuplot

package main

import (
	"github.com/katalvlaran/relaxfit/plotting/gnuplot"
	"github.com/katalvlaran/relaxfit/session"
)

func preview(path string, s *session.Session, params []float64) error {
	return gnuplot.Preview(path, s, params)
}
