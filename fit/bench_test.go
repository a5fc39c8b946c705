package fit_test

import (
	"testing"

	"github.com/katalvlaran/relaxfit/curve"
	"github.com/katalvlaran/relaxfit/fit"
)

func BenchmarkMinimizeLM(b *testing.B) {
	s := exactSession(b, curve.Plateau, []float64{0.8, 10, 2}, decayX)
	x0 := []float64{1, 8, 1}
	set := fit.DefaultSettings()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = fit.Minimize(s, x0, set)
	}
}

func BenchmarkMinimizeBFGS(b *testing.B) {
	s := exactSession(b, curve.Plateau, []float64{0.8, 10, 2}, decayX)
	x0 := []float64{1, 8, 1}
	set := fit.DefaultSettings()
	set.Method = fit.BFGS
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = fit.Minimize(s, x0, set)
	}
}
