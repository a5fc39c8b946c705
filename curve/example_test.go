package curve_test

import (
	"fmt"

	"github.com/katalvlaran/relaxfit/curve"
	"github.com/katalvlaran/relaxfit/matrix"
)

// ExampleNew back-calculates a two-parameter decay and its rate partial.
func ExampleNew() {
	m, _ := curve.New(curve.Exp)
	x := []float64{0.5, 1, 2}
	p := []float64{0.5, 10} // R, I0

	y := make([]float64, len(x))
	_ = m.BackCalc(y, p, x)
	fmt.Printf("roles=%v\n", m.Roles())
	fmt.Printf("y=%.3f\n", y)

	jac, _ := matrix.NewDense(2, len(x))
	_ = curve.Jacobian(m, jac, p, x)
	dR, _ := jac.Row(0)
	fmt.Printf("dy/dR=%.3f\n", dR)
	// Output:
	// roles=[rx i0]
	// y=[7.788 6.065 3.679]
	// dy/dR=[-3.894 -6.065 -7.358]
}

// ExampleEstimate recovers the parameters of a clean decay.
func ExampleEstimate() {
	x := []float64{0, 1, 2, 3}
	y := []float64{100, 50, 25, 12.5}
	p, _ := curve.Estimate(curve.Exp, x, y)
	fmt.Printf("R=%.4f I0=%.1f\n", p[0], p[1])
	// Output:
	// R=0.6931 I0=100.0
}
