package linear

import (
	"fmt"

	"fathom/internal/vars"
)

// Rel is the relation of a linear constraint against zero.
type Rel uint8

const (
	RelEq Rel = iota
	RelNeq
	RelLe
	RelLt
	RelGe
	RelGt
)

func (r Rel) String() string {
	switch r {
	case RelEq:
		return "="
	case RelNeq:
		return "!="
	case RelLe:
		return "<="
	case RelLt:
		return "<"
	case RelGe:
		return ">="
	case RelGt:
		return ">"
	default:
		return fmt.Sprintf("Rel(%d)", r)
	}
}

// Cst is a linear constraint: Expr REL 0.
type Cst struct {
	E   Expr
	Rel Rel
}

// Comparison constructors. Each builds the constraint e1 REL e2.

func Eq(e1, e2 Expr) Cst  { return Cst{E: e1.Minus(e2), Rel: RelEq} }
func Neq(e1, e2 Expr) Cst { return Cst{E: e1.Minus(e2), Rel: RelNeq} }
func Le(e1, e2 Expr) Cst  { return Cst{E: e1.Minus(e2), Rel: RelLe} }
func Lt(e1, e2 Expr) Cst  { return Cst{E: e1.Minus(e2), Rel: RelLt} }
func Ge(e1, e2 Expr) Cst  { return Cst{E: e1.Minus(e2), Rel: RelGe} }
func Gt(e1, e2 Expr) Cst  { return Cst{E: e1.Minus(e2), Rel: RelGt} }

// True returns a tautological constraint.
func True() Cst { return Cst{E: K(0), Rel: RelEq} }

// False returns a contradictory constraint.
func False() Cst { return Cst{E: K(0), Rel: RelNeq} }

// Vars returns the constraint's variables in first-occurrence order.
func (c Cst) Vars() []vars.Var { return c.E.Vars() }

// IsTautology reports whether the constraint trivially holds.
func (c Cst) IsTautology() bool {
	return c.E.IsConst() && holds(c.E.Const(), c.Rel)
}

// IsContradiction reports whether the constraint trivially fails.
func (c Cst) IsContradiction() bool {
	return c.E.IsConst() && !holds(c.E.Const(), c.Rel)
}

func holds(k int64, r Rel) bool {
	switch r {
	case RelEq:
		return k == 0
	case RelNeq:
		return k != 0
	case RelLe:
		return k <= 0
	case RelLt:
		return k < 0
	case RelGe:
		return k >= 0
	case RelGt:
		return k > 0
	default:
		return false
	}
}

// String renders the constraint with the constant moved to the right-hand
// side, e.g. the constraint built by Ge(V(x), K(0)) prints as "x >= 0".
func (c Cst) String() string {
	if c.E.IsConst() {
		if holds(c.E.Const(), c.Rel) {
			return "true"
		}
		return "false"
	}
	lhs := Expr{terms: c.E.terms}
	return fmt.Sprintf("%s %s %d", lhs.String(), c.Rel, -c.E.Const())
}
