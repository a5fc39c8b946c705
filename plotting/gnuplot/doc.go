// Package gnuplot previews a fit through a gnuplot process driven by glot.
//
// glot looks gnuplot up on PATH when it is initialised and panics when it is
// missing, so everything except this file requires the gnuplot build tag:
//
//	go build -tags gnuplot ./cmd/relaxfit
package gnuplot
