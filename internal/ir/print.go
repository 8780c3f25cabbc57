package ir

import (
	"fmt"
	"strings"

	"fathom/internal/vars"
)

// String renders the statement in its canonical text form. Test suites and
// golden files match on these forms exactly.
func (s *Stmt) String() string {
	switch s.code {
	case BinOpCode:
		p := s.BinOp
		return fmt.Sprintf("%s = %s%s%s", p.Lhs, p.Op1, p.Op, p.Op2)
	case AssignCode:
		p := s.Assign
		return fmt.Sprintf("%s = %s", p.Lhs, p.Rhs)
	case AssumeCode:
		return fmt.Sprintf("assume(%s)", s.Assume.Cst)
	case AssertCode:
		return fmt.Sprintf("assert(%s)", s.Assert.Cst)
	case SelectCode:
		p := s.Select
		return fmt.Sprintf("%s = ite(%s,%s,%s)", p.Lhs, p.Cond, p.Left, p.Right)
	case UnreachCode:
		return "unreachable"
	case HavocCode:
		return fmt.Sprintf("%s =*", s.Havoc.Lhs)
	case IntCastCode:
		p := s.IntCast
		return fmt.Sprintf("%s %s:%d to %s:%d", p.Op, p.Src, p.Src.Bits(), p.Dst, p.Dst.Bits())
	case ArrInitCode:
		p := s.ArrInit
		return fmt.Sprintf("array_init(%s, [%s,%s] %% %d, %s)", p.Arr, p.Lb, p.Ub, p.ElemSize, p.Val)
	case ArrAssumeCode:
		p := s.ArrAssume
		return fmt.Sprintf("assume(forall l in [%s,%s] %% %d :: %s[l] = %s)",
			p.Lb, p.Ub, p.ElemSize, p.Arr, p.Val)
	case ArrStoreCode:
		p := s.ArrStore
		return fmt.Sprintf("array_store(%s, %s, %s)", p.Arr, p.Index, p.Value)
	case ArrLoadCode:
		p := s.ArrLoad
		return fmt.Sprintf("%s = array_load(%s, %s)", p.Lhs, p.Arr, p.Index)
	case ArrAssignCode:
		p := s.ArrAssign
		return fmt.Sprintf("%s = %s", p.Lhs, p.Rhs)
	case PtrLoadCode:
		p := s.PtrLoad
		return fmt.Sprintf("%s = *(%s)", p.Lhs, p.Rhs)
	case PtrStoreCode:
		p := s.PtrStore
		return fmt.Sprintf("*(%s) = %s", p.Lhs, p.Rhs)
	case PtrAssignCode:
		p := s.PtrAssign
		return fmt.Sprintf("%s = &(%s) + %s", p.Lhs, p.Rhs, p.Offset)
	case PtrObjectCode:
		p := s.PtrObject
		return fmt.Sprintf("%s = &(%d)", p.Lhs, p.Address)
	case PtrFunctionCode:
		p := s.PtrFunction
		return fmt.Sprintf("%s = &(%s)", p.Lhs, p.Func)
	case PtrNullCode:
		return fmt.Sprintf("%s = NULL", s.PtrNull.Lhs)
	case PtrAssumeCode:
		return fmt.Sprintf("assume_ptr(%s)", s.PtrAssume.Cst)
	case PtrAssertCode:
		return fmt.Sprintf("assert_ptr(%s)", s.PtrAssert.Cst)
	case CallsiteCode:
		return formatCallsite(s.Callsite)
	case ReturnCode:
		return formatReturn(s.Return)
	case BoolBinOpCode:
		p := s.BoolBinOp
		return fmt.Sprintf("%s = %s%s%s", p.Lhs, p.Op1, p.Op, p.Op2)
	case BoolAssignCstCode:
		p := s.BoolAssignCst
		if p.Rhs.IsTautology() {
			return fmt.Sprintf("%s = true", p.Lhs)
		}
		if p.Rhs.IsContradiction() {
			return fmt.Sprintf("%s = false", p.Lhs)
		}
		return fmt.Sprintf("%s = (%s)", p.Lhs, p.Rhs)
	case BoolAssignVarCode:
		p := s.BoolAssignVar
		if p.Negated {
			return fmt.Sprintf("%s = not(%s)", p.Lhs, p.Rhs)
		}
		return fmt.Sprintf("%s = %s", p.Lhs, p.Rhs)
	case BoolAssumeCode:
		p := s.BoolAssume
		if p.Negated {
			return fmt.Sprintf("assume(not(%s))", p.Var)
		}
		return fmt.Sprintf("assume(%s)", p.Var)
	case BoolAssertCode:
		return fmt.Sprintf("assert(%s)", s.BoolAssert.Var)
	case BoolSelectCode:
		p := s.BoolSelect
		return fmt.Sprintf("%s = ite(%s,%s,%s)", p.Lhs, p.Cond, p.Left, p.Right)
	default:
		return "undef"
	}
}

func formatCallsite(c CallsiteStmt) string {
	var sb strings.Builder
	switch len(c.Lhs) {
	case 0:
	case 1:
		fmt.Fprintf(&sb, "%s =", c.Lhs[0])
	default:
		sb.WriteByte('(')
		for i, l := range c.Lhs {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(l.String())
		}
		sb.WriteString(")=")
	}
	fmt.Fprintf(&sb, " call %s(", c.Func)
	for i, a := range c.Args {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%s:%s", a, a.Type)
	}
	sb.WriteByte(')')
	return sb.String()
}

func formatReturn(r ReturnStmt) string {
	var sb strings.Builder
	sb.WriteString("return ")
	switch len(r.Rets) {
	case 0:
	case 1:
		sb.WriteString(r.Rets[0].String())
	default:
		sb.WriteByte('(')
		for i, v := range r.Rets {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(v.String())
		}
		sb.WriteByte(')')
	}
	return strings.TrimRight(sb.String(), " ")
}

func formatVarList(vs []vars.Var) string {
	var sb strings.Builder
	for i, v := range vs {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%s:%s", v, v.Type)
	}
	return sb.String()
}
