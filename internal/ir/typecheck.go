package ir

import (
	"fathom/internal/linear"
	"fathom/internal/types"
	"fathom/internal/vars"
)

// TypeCheck verifies that every statement in the CFG is well typed under the
// flat lattice. The pass is read-only and idempotent; the first violation is
// reported as an error with a stable "(type checking) ... in <statement>"
// message. A nil return means the whole CFG type-checks.
func TypeCheck(c *CFG) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if f, ok := r.(*Fault); ok {
				err = f
				return
			}
			panic(r)
		}
	}()

	if c.Size() == 0 {
		fatalf("CFG must have at least one basic block")
	}
	if !c.HasExit() {
		fatalf("CFG must have exit block")
	}
	if c.Size() == 1 && c.Exit() != c.Entry() {
		fatalf("CFG entry and exit must be the same")
	}

	var tc typeChecker
	c.Blocks(func(b *Block) bool {
		b.Accept(tc.visitor())
		return true
	})
	return nil
}

type typeChecker struct{}

func (tc *typeChecker) visitor() *Visitor {
	return &Visitor{
		BinOp:         tc.binOp,
		Assign:        tc.assign,
		Assume:        tc.assume,
		Assert:        tc.assert,
		Select:        tc.selectStmt,
		IntCast:       tc.intCast,
		BoolBinOp:     tc.boolBinOp,
		BoolAssignCst: tc.boolAssignCst,
		BoolAssignVar: tc.boolAssignVar,
		BoolAssume:    tc.boolAssume,
		BoolAssert:    tc.boolAssert,
		BoolSelect:    tc.boolSelect,
		// Calls, returns, pointer and array statements are validated by
		// their consumers, not in this pass.
	}
}

func checkNum(v vars.Var, msg string, s *Stmt) {
	if v.Kind() != types.KindInt && v.Kind() != types.KindReal {
		fatalf("(type checking) %s in %s", msg, s)
	}
}

func checkIntOrBool(v vars.Var, msg string, s *Stmt) {
	if v.Kind() != types.KindInt && v.Kind() != types.KindBool {
		fatalf("(type checking) %s in %s", msg, s)
	}
}

func checkInt(v vars.Var, msg string, s *Stmt) {
	if v.Kind() != types.KindInt || v.Bits() <= 1 {
		fatalf("(type checking) %s in %s", msg, s)
	}
}

func checkBool(v vars.Var, msg string, s *Stmt) {
	if v.Kind() != types.KindBool || v.Bits() != 1 {
		fatalf("(type checking) %s in %s", msg, s)
	}
}

func checkBitwidthIfInt(v vars.Var, msg string, s *Stmt) {
	if v.Kind() == types.KindInt && v.Bits() <= 1 {
		fatalf("(type checking) %s in %s", msg, s)
	}
}

func checkBitwidthIfBool(v vars.Var, msg string, s *Stmt) {
	if v.Kind() == types.KindBool && v.Bits() != 1 {
		fatalf("(type checking) %s in %s", msg, s)
	}
}

func checkSameType(v1, v2 vars.Var, msg string, s *Stmt) {
	if !types.Same(v1.Type, v2.Type) {
		fatalf("(type checking) %s in %s", msg, s)
	}
}

// checkSameBitwidth assumes v1 and v2 already share a type.
func checkSameBitwidth(v1, v2 vars.Var, msg string, s *Stmt) {
	if v1.Kind() == types.KindInt || v1.Kind() == types.KindBool {
		if v1.Bits() != v2.Bits() {
			fatalf("(type checking) %s in %s", msg, s)
		}
	}
}

func (tc *typeChecker) binOp(s *Stmt) {
	p := s.BinOp
	checkNum(p.Lhs, "lhs must be integer or real", s)
	checkBitwidthIfInt(p.Lhs, "lhs must have bitwidth > 1", s)

	if v1, ok := p.Op1.AsVar(); ok {
		checkSameType(p.Lhs, v1, "first operand cannot have different type from lhs", s)
		checkSameBitwidth(p.Lhs, v1, "first operand cannot have different bitwidth from lhs", s)
	} else {
		fatalf("(type checking) first binary operand must be a variable in %s", s)
	}
	if v2, ok := p.Op2.AsVar(); ok {
		checkSameType(p.Lhs, v2, "second operand cannot have different type from lhs", s)
		checkSameBitwidth(p.Lhs, v2, "second operand cannot have different bitwidth from lhs", s)
	}
}

func (tc *typeChecker) assign(s *Stmt) {
	p := s.Assign
	checkNum(p.Lhs, "lhs must be integer or real", s)
	checkBitwidthIfInt(p.Lhs, "lhs must have bitwidth > 1", s)

	for _, v := range p.Rhs.Vars() {
		checkSameType(p.Lhs, v, "variable cannot have different type from lhs", s)
		checkSameBitwidth(p.Lhs, v, "variable cannot have different bitwidth from lhs", s)
	}
}

func checkConsistent(vs []vars.Var, what string, s *Stmt) {
	var first vars.Var
	for i, v := range vs {
		checkNum(v, what+" variables must be integer or real", s)
		if i == 0 {
			first = v
			continue
		}
		checkSameType(first, v, "inconsistent types in "+what+" variables", s)
		checkSameBitwidth(first, v, "inconsistent bitwidths in "+what+" variables", s)
	}
}

func (tc *typeChecker) assume(s *Stmt) {
	checkConsistent(s.Assume.Cst.Vars(), "assume", s)
}

func (tc *typeChecker) assert(s *Stmt) {
	checkConsistent(s.Assert.Cst.Vars(), "assert", s)
}

func (tc *typeChecker) selectStmt(s *Stmt) {
	p := s.Select
	checkNum(p.Lhs, "lhs must be integer or real", s)
	checkBitwidthIfInt(p.Lhs, "lhs must have bitwidth > 1", s)

	for _, v := range p.Left.Vars() {
		checkSameType(p.Lhs, v, "inconsistent types in select variables", s)
		checkSameBitwidth(p.Lhs, v, "inconsistent bitwidths in select variables", s)
	}
	for _, v := range p.Right.Vars() {
		checkSameType(p.Lhs, v, "inconsistent types in select variables", s)
		checkSameBitwidth(p.Lhs, v, "inconsistent bitwidths in select variables", s)
	}

	// The condition may differ in bitwidth from lhs/left/right but must
	// agree in type, and its variables must be consistent among themselves.
	var first vars.Var
	for i, v := range p.Cond.Vars() {
		checkNum(v, "select condition variables must be integer or real", s)
		if i == 0 {
			first = v
		}
		checkSameType(p.Lhs, v, "inconsistent types in select condition variables", s)
		checkSameType(first, v, "inconsistent types in select condition variables", s)
		checkSameBitwidth(first, v, "inconsistent bitwidths in select condition variables", s)
	}
}

func (tc *typeChecker) intCast(s *Stmt) {
	p := s.IntCast
	switch p.Op {
	case CastTrunc:
		checkInt(p.Src, "source operand must be integer", s)
		checkIntOrBool(p.Dst, "destination must be integer or bool", s)
		checkBitwidthIfBool(p.Dst, "type and bitwidth of destination operand do not match", s)
		checkBitwidthIfInt(p.Dst, "type and bitwidth of destination operand do not match", s)
		if p.Src.Bits() <= p.Dst.Bits() {
			fatalf("(type checking) bitwidth of source operand must be greater than destination in %s", s)
		}
	case CastSExt, CastZExt:
		checkInt(p.Dst, "destination operand must be integer", s)
		checkIntOrBool(p.Src, "source must be integer or bool", s)
		checkBitwidthIfBool(p.Src, "type and bitwidth of source operand do not match", s)
		checkBitwidthIfInt(p.Src, "type and bitwidth of source operand do not match", s)
		if p.Dst.Bits() <= p.Src.Bits() {
			fatalf("(type checking) bitwidth of destination must be greater than source in %s", s)
		}
	}
}

func (tc *typeChecker) boolBinOp(s *Stmt) {
	p := s.BoolBinOp
	checkBool(p.Lhs, "lhs must be boolean", s)
	checkBool(p.Op1, "first operand must be boolean", s)
	checkBool(p.Op2, "second operand must be boolean", s)
}

func (tc *typeChecker) boolAssignCst(s *Stmt) {
	p := s.BoolAssignCst
	checkBool(p.Lhs, "lhs must be boolean", s)
	checkRhsCst(p.Rhs, s)
}

func checkRhsCst(cst linear.Cst, s *Stmt) {
	var first vars.Var
	for i, v := range cst.Vars() {
		checkNum(v, "rhs variables must be integer or real", s)
		if i == 0 {
			first = v
			continue
		}
		checkSameType(first, v, "inconsistent types in rhs variables", s)
		checkSameBitwidth(first, v, "inconsistent bitwidths in rhs variables", s)
	}
}

func (tc *typeChecker) boolAssignVar(s *Stmt) {
	p := s.BoolAssignVar
	checkBool(p.Lhs, "lhs must be boolean", s)
	checkBool(p.Rhs, "rhs must be boolean", s)
}

func (tc *typeChecker) boolAssume(s *Stmt) {
	checkBool(s.BoolAssume.Var, "condition must be boolean", s)
}

func (tc *typeChecker) boolAssert(s *Stmt) {
	checkBool(s.BoolAssert.Var, "condition must be boolean", s)
}

func (tc *typeChecker) boolSelect(s *Stmt) {
	p := s.BoolSelect
	checkBool(p.Lhs, "lhs must be boolean", s)
	checkBool(p.Cond, "condition must be boolean", s)
	checkBool(p.Left, "first operand must be boolean", s)
	checkBool(p.Right, "second operand must be boolean", s)
}
