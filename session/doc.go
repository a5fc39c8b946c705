// Package session drives one curve-fitting evaluation context: it owns the
// immutable observation set, the parameter scaling and the role layout, and
// evaluates χ², its gradient and its Hessian for parameter vectors proposed by
// an optimizer.
//
// 🚀 Evaluation pipeline (per call):
//
//	raw θ ──(⊙ scale, reorder to canonical roles)──▶ model θ
//	model θ ──curve.Model.BackCalc──▶ predictions ──chi2.Chi2──▶ χ²
//	model θ ──curve.Jacobian / curve.Hessian──▶ ∂y, ∂²y ──chi2.DChi2 / D2Chi2──▶ ∇χ², ∇²χ²
//	∇χ²[j]·scale[j],  ∇²χ²[j][k]·scale[j]·scale[k]  ──▶ optimizer
//
// Lifecycle:
//
//   - New/Setup validates and copies the observation set, resolves the role
//     order and scaling once, and sizes every scratch buffer to N and M.
//     Setup on an existing Session replaces all of it (no merging).
//   - Func, Grad and Hess accept a fresh parameter vector per call; all derived
//     arrays are recomputed from scratch (accumulators are zeroed).
//   - BackCalc, Jacobian and Chi2Jacobian expose copies of the most recent
//     results for introspection.
//
// Concurrency: a Session serialises its own calls with a mutex and never hands
// out its scratch buffers, so one Session may be shared between goroutines.
// Independent Sessions (see Resample) run fully in parallel.
//
// ⚙️ Options: WithScaling, WithAutoScaling, WithOrder, WithLogger.
//
// Errors: malformed observations wrap ErrInvalidData, bad scaling wraps
// ErrInvalidScaling, an order that is not a permutation of the model roles
// wraps ErrInvalidOrder, a parameter vector of the wrong length wraps
// ErrParamCount and derivatives of a non-differentiable model wrap
// curve.ErrNotImplemented.
package session
