// Package linear provides the algebraic forms the IR statements are built
// from: linear expressions and constraints over typed variables, and the
// pointer constraints used by pointer assume/assert statements.
package linear

import (
	"fmt"
	"strings"

	"fathom/internal/vars"
)

// Term is a coefficient applied to a variable.
type Term struct {
	Coef int64
	Var  vars.Var
}

// Expr is a linear expression: a sum of terms plus a constant. Terms are kept
// in first-insertion order with at most one term per variable; terms whose
// coefficient cancels to zero are dropped.
type Expr struct {
	terms []Term
	konst int64
}

// K returns a constant expression.
func K(k int64) Expr {
	return Expr{konst: k}
}

// V returns the expression consisting of a single variable.
func V(v vars.Var) Expr {
	return Expr{terms: []Term{{Coef: 1, Var: v}}}
}

// Mul returns coef*v.
func Mul(coef int64, v vars.Var) Expr {
	if coef == 0 {
		return Expr{}
	}
	return Expr{terms: []Term{{Coef: coef, Var: v}}}
}

// Plus returns e + o.
func (e Expr) Plus(o Expr) Expr {
	out := Expr{konst: e.konst + o.konst}
	out.terms = append(out.terms, e.terms...)
	for _, t := range o.terms {
		out = out.addTerm(t)
	}
	return out
}

// Minus returns e - o.
func (e Expr) Minus(o Expr) Expr {
	return e.Plus(o.Neg())
}

// PlusK returns e + k.
func (e Expr) PlusK(k int64) Expr {
	out := e.clone()
	out.konst += k
	return out
}

// Neg returns -e.
func (e Expr) Neg() Expr {
	out := Expr{konst: -e.konst, terms: make([]Term, len(e.terms))}
	for i, t := range e.terms {
		out.terms[i] = Term{Coef: -t.Coef, Var: t.Var}
	}
	return out
}

func (e Expr) clone() Expr {
	out := Expr{konst: e.konst, terms: make([]Term, len(e.terms))}
	copy(out.terms, e.terms)
	return out
}

func (e Expr) addTerm(t Term) Expr {
	for i, have := range e.terms {
		if have.Var.Name.Equal(t.Var.Name) {
			c := have.Coef + t.Coef
			if c == 0 {
				e.terms = append(e.terms[:i], e.terms[i+1:]...)
			} else {
				e.terms[i].Coef = c
			}
			return e
		}
	}
	if t.Coef != 0 {
		e.terms = append(e.terms, t)
	}
	return e
}

// Terms returns the expression's terms in insertion order.
func (e Expr) Terms() []Term { return e.terms }

// Const returns the constant part.
func (e Expr) Const() int64 { return e.konst }

// Vars returns the variables of the expression in first-occurrence order.
func (e Expr) Vars() []vars.Var {
	out := make([]vars.Var, 0, len(e.terms))
	for _, t := range e.terms {
		out = append(out, t.Var)
	}
	return out
}

// IsConst reports whether the expression has no variables.
func (e Expr) IsConst() bool { return len(e.terms) == 0 }

// AsVar returns the underlying variable when the expression is exactly one
// variable with coefficient 1 and no constant.
func (e Expr) AsVar() (vars.Var, bool) {
	if len(e.terms) == 1 && e.terms[0].Coef == 1 && e.konst == 0 {
		return e.terms[0].Var, true
	}
	return vars.Var{}, false
}

func (e Expr) String() string {
	if len(e.terms) == 0 {
		return fmt.Sprintf("%d", e.konst)
	}
	var sb strings.Builder
	for i, t := range e.terms {
		writeTerm(&sb, t, i == 0)
	}
	if e.konst > 0 {
		fmt.Fprintf(&sb, "+%d", e.konst)
	} else if e.konst < 0 {
		fmt.Fprintf(&sb, "%d", e.konst)
	}
	return sb.String()
}

func writeTerm(sb *strings.Builder, t Term, first bool) {
	switch {
	case t.Coef == 1:
		if !first {
			sb.WriteByte('+')
		}
	case t.Coef == -1:
		sb.WriteByte('-')
	default:
		if t.Coef > 0 && !first {
			sb.WriteByte('+')
		}
		fmt.Fprintf(sb, "%d*", t.Coef)
	}
	sb.WriteString(t.Var.String())
}
