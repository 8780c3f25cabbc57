package linear

import (
	"fmt"

	"fathom/internal/vars"
)

// PtrOp is the form of a pointer constraint.
type PtrOp uint8

const (
	PtrTaut PtrOp = iota
	PtrContra
	PtrEqNull
	PtrNeqNull
	PtrEq
	PtrNeq
)

// PtrCst is a constraint between pointer variables: equality or disequality
// of two pointers, or of one pointer against null, plus the trivial forms.
type PtrCst struct {
	Op PtrOp
	L  vars.Var
	R  vars.Var
}

// PtrTrue returns the tautological pointer constraint.
func PtrTrue() PtrCst { return PtrCst{Op: PtrTaut} }

// PtrFalse returns the contradictory pointer constraint.
func PtrFalse() PtrCst { return PtrCst{Op: PtrContra} }

// EqNull returns p == null.
func EqNull(p vars.Var) PtrCst { return PtrCst{Op: PtrEqNull, L: p} }

// NeqNull returns p != null.
func NeqNull(p vars.Var) PtrCst { return PtrCst{Op: PtrNeqNull, L: p} }

// PtrEquals returns p == q.
func PtrEquals(p, q vars.Var) PtrCst { return PtrCst{Op: PtrEq, L: p, R: q} }

// PtrDiffers returns p != q.
func PtrDiffers(p, q vars.Var) PtrCst { return PtrCst{Op: PtrNeq, L: p, R: q} }

// IsTautology reports the trivially-true form.
func (c PtrCst) IsTautology() bool { return c.Op == PtrTaut }

// IsContradiction reports the trivially-false form.
func (c PtrCst) IsContradiction() bool { return c.Op == PtrContra }

// IsUnary reports whether the constraint compares one pointer against null.
func (c PtrCst) IsUnary() bool {
	return c.Op == PtrEqNull || c.Op == PtrNeqNull
}

// Lhs returns the left operand.
func (c PtrCst) Lhs() vars.Var { return c.L }

// Rhs returns the right operand of a binary constraint.
func (c PtrCst) Rhs() vars.Var { return c.R }

func (c PtrCst) String() string {
	switch c.Op {
	case PtrTaut:
		return "true"
	case PtrContra:
		return "false"
	case PtrEqNull:
		return fmt.Sprintf("%s == null", c.L)
	case PtrNeqNull:
		return fmt.Sprintf("%s != null", c.L)
	case PtrEq:
		return fmt.Sprintf("%s == %s", c.L, c.R)
	case PtrNeq:
		return fmt.Sprintf("%s != %s", c.L, c.R)
	default:
		return fmt.Sprintf("PtrCst(%d)", c.Op)
	}
}
