package session_test

import (
	"testing"

	"github.com/katalvlaran/relaxfit/curve"
	"github.com/katalvlaran/relaxfit/session"
)

func benchSession(b *testing.B) *session.Session {
	b.Helper()
	n := 32
	d := session.Data{X: make([]float64, n), Observed: make([]float64, n), SD: make([]float64, n)}
	for i := 0; i < n; i++ {
		d.X[i] = float64(i) * 0.1
		d.Observed[i] = 2 + 8/(1+d.X[i])
		d.SD[i] = 0.1
	}
	model, _ := curve.New(curve.Plateau)
	s, err := session.New(model, d, session.WithAutoScaling())
	if err != nil {
		b.Fatal(err)
	}

	return s
}

func BenchmarkFunc(b *testing.B) {
	s := benchSession(b)
	p := []float64{1, 1, 0.2}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Func(p)
	}
}

func BenchmarkGrad(b *testing.B) {
	s := benchSession(b)
	p := []float64{1, 1, 0.2}
	g := make([]float64, 3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Grad(g, p)
	}
}

func BenchmarkHess(b *testing.B) {
	s := benchSession(b)
	p := []float64{1, 1, 0.2}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Hess(p)
	}
}
