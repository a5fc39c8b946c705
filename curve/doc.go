// Package curve back-calculates relaxation curves and their analytic first and
// second partial derivatives.
//
// 🚀 What is a curve model?
//
//	A Model maps a parameter vector θ and an independent-variable array x
//	(relaxation delays or CPMG frequencies) to predictions y(θ, x). The set of
//	models is closed; each Kind is built once with New and then evaluated many
//	times inside an optimizer loop:
//
//	  exp              I0·exp(-R·x)
//	  exp-growth       I0·exp(+R·x)
//	  exp-neg         -I0·exp(-R·x)
//	  exp-neg-growth  -I0·exp(+R·x)
//	  plateau          Iinf - (Iinf - I0)·exp(-R·x)
//	  plateau-neg      (I0 + Iinf)·exp(-R·x) - Iinf
//	  inv              Iinf - I0·exp(-R·x)
//	  sat              Iinf·(1 - exp(-R·x))
//	  cpmg-fast        R2 + Rex·(1 - 2·tanh(kex/(8ν))·(4ν/kex))
//
// ✨ Parameters are addressed by Role (rate, initial intensity, …), never by a
// hard-coded index. Model.Roles lists the canonical order of θ.
//
// Numeric edge policy:
//
//   - When the rate R is exactly 0.0 the exponential term is replaced by its
//     R → 0 limit of 1, so y = ±I0, ∂y/∂R = ∓I0·x, and so on. The check is an
//     exact floating-point comparison; tiny non-zero rates take the closed form.
//   - cpmg-fast uses its kex → 0 limit (y = R2) when kex is exactly 0.
//   - cpmg-fast has no analytic derivatives: Partial and SecondPartial return
//     ErrNotImplemented and Differentiable reports false.
//
// ⚙️ Usage:
//
//	m, _ := curve.New(curve.Exp)
//	jac, _ := matrix.NewDense(len(m.Roles()), len(times))
//	_ = m.BackCalc(pred, []float64{rate, i0}, times)
//	_ = curve.Jacobian(m, jac, []float64{rate, i0}, times)
//
// Complexity: BackCalc and each Partial are O(N); Hessian is O(M²·N) with only
// the upper triangle of parameter pairs evaluated.
package curve
