package curve

import "fmt"

// Kind selects one model of the closed set.
type Kind int

const (
	// Exp is the two-parameter exponential decay I0·exp(-R·x).
	Exp Kind = iota
	// ExpGrowth is the positive-rate variant I0·exp(+R·x).
	ExpGrowth
	// ExpNegAmp is the negative-amplitude variant -I0·exp(-R·x).
	ExpNegAmp
	// ExpNegAmpGrowth flips both signs: -I0·exp(+R·x).
	ExpNegAmpGrowth
	// Plateau is the three-parameter decay towards Iinf.
	Plateau
	// PlateauNeg decays from I0 towards the negated plateau -Iinf.
	PlateauNeg
	// InversionRecovery is Iinf - I0·exp(-R·x).
	InversionRecovery
	// SaturationRecovery is Iinf·(1 - exp(-R·x)).
	SaturationRecovery
	// DispersionFast is the fast-exchange CPMG dispersion curve (evaluation only).
	DispersionFast
)

// Role identifies the physical meaning of one parameter.
type Role int

const (
	// RoleRate is the relaxation rate R (Rx, R1, R2eff).
	RoleRate Role = iota
	// RoleI0 is the initial intensity.
	RoleI0
	// RoleIinf is the intensity at infinite delay.
	RoleIinf
	// RoleR2 is the exchange-free transverse relaxation rate R2⁰.
	RoleR2
	// RoleRex is the exchange contribution Rex (φex/kex).
	RoleRex
	// RoleKex is the exchange rate kex.
	RoleKex
)

var kindNames = [...]string{
	Exp:                "exp",
	ExpGrowth:          "exp-growth",
	ExpNegAmp:          "exp-neg",
	ExpNegAmpGrowth:    "exp-neg-growth",
	Plateau:            "plateau",
	PlateauNeg:         "plateau-neg",
	InversionRecovery:  "inv",
	SaturationRecovery: "sat",
	DispersionFast:     "cpmg-fast",
}

var roleNames = [...]string{
	RoleRate: "rx",
	RoleI0:   "i0",
	RoleIinf: "iinf",
	RoleR2:   "r2",
	RoleRex:  "rex",
	RoleKex:  "kex",
}

// kindRoles is the canonical parameter order of every Kind.
var kindRoles = [...][]Role{
	Exp:                {RoleRate, RoleI0},
	ExpGrowth:          {RoleRate, RoleI0},
	ExpNegAmp:          {RoleRate, RoleI0},
	ExpNegAmpGrowth:    {RoleRate, RoleI0},
	Plateau:            {RoleRate, RoleI0, RoleIinf},
	PlateauNeg:         {RoleRate, RoleI0, RoleIinf},
	InversionRecovery:  {RoleRate, RoleI0, RoleIinf},
	SaturationRecovery: {RoleRate, RoleIinf},
	DispersionFast:     {RoleR2, RoleRex, RoleKex},
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= Exp && k <= DispersionFast
}

// String returns the configuration name of k.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// Roles returns a copy of the canonical parameter order of k, or nil if k is invalid.
func (k Kind) Roles() []Role {
	if !k.Valid() {
		return nil
	}

	return append([]Role(nil), kindRoles[k]...)
}

// Differentiable reports whether k has analytic first and second partials.
func (k Kind) Differentiable() bool {
	return k.Valid() && k != DispersionFast
}

// ParseKind maps a configuration name to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}

	return 0, fmt.Errorf("ParseKind(%q): %w", name, ErrUnknownKind)
}

// String returns the short parameter name of r.
func (r Role) String() string {
	if r < RoleRate || r > RoleKex {
		return fmt.Sprintf("Role(%d)", int(r))
	}

	return roleNames[r]
}

// ParseRole maps a short parameter name ("rx", "i0", …) to its Role.
func ParseRole(name string) (Role, error) {
	for r, n := range roleNames {
		if n == name {
			return Role(r), nil
		}
	}

	return 0, fmt.Errorf("ParseRole(%q): %w", name, ErrUnknownRole)
}
