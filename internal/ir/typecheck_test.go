package ir_test

import (
	"strings"
	"testing"

	"fathom/internal/ir"
	"fathom/internal/linear"
	"fathom/internal/vars"
)

func wellTypedCFG(f *vars.Factory) *ir.CFG {
	x := vars.Int(f.Lookup("x"), 32)
	y := vars.Int(f.Lookup("y"), 32)
	b1 := vars.Bool(f.Lookup("b1"))
	b2 := vars.Bool(f.Lookup("b2"))

	cfg := ir.NewCFGWithExit("b0", "b0", ir.Num)
	b := cfg.GetNode("b0")
	b.Add(y, linear.V(x), linear.V(x))
	b.Assign(y, linear.V(x).PlusK(1))
	b.Assume(linear.Ge(linear.V(x), linear.K(0)))
	b.Select(y, linear.Ge(linear.V(x), linear.K(0)), linear.V(x), linear.K(0))
	b.BoolAnd(b1, b1, b2)
	b.BoolAssume(b1)
	b.Ret(y)
	return cfg
}

func TestTypeCheckAcceptsWellTypedCFG(t *testing.T) {
	cfg := wellTypedCFG(vars.NewFactory())
	if err := ir.TypeCheck(cfg); err != nil {
		t.Fatalf("TypeCheck: %v", err)
	}
}

func TestTypeCheckIsIdempotent(t *testing.T) {
	cfg := wellTypedCFG(vars.NewFactory())
	before := cfg.String()
	if err := ir.TypeCheck(cfg); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := ir.TypeCheck(cfg); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if cfg.String() != before {
		t.Fatal("type checking mutated the CFG")
	}
}

func TestTypeCheckBitwidthMismatch(t *testing.T) {
	// S6: int32 lhs with an int64 operand. The diagnostic names the
	// bitwidth and the offending statement.
	f := vars.NewFactory()
	lhs := vars.Int(f.Lookup("lhs"), 32)
	a := vars.Int(f.Lookup("a"), 32)
	wide := vars.Int(f.Lookup("wide"), 64)

	cfg := ir.NewCFGWithExit("b0", "b0", ir.Num)
	b := cfg.GetNode("b0")
	b.Add(lhs, linear.V(a), linear.V(wide))

	err := ir.TypeCheck(cfg)
	if err == nil {
		t.Fatal("expected a type error")
	}
	if !strings.Contains(err.Error(), "bitwidth") {
		t.Fatalf("error %q does not name the bitwidth", err)
	}
	if !strings.Contains(err.Error(), "lhs = a+wide") {
		t.Fatalf("error %q does not name the statement", err)
	}
}

func TestTypeCheckRejectsBoolArithmetic(t *testing.T) {
	f := vars.NewFactory()
	c := vars.Bool(f.Lookup("c"))
	x := vars.Int(f.Lookup("x"), 32)

	cfg := ir.NewCFGWithExit("b0", "b0", ir.Num)
	b := cfg.GetNode("b0")
	b.Add(c, linear.V(x), linear.V(x))

	err := ir.TypeCheck(cfg)
	if err == nil || !strings.Contains(err.Error(), "integer or real") {
		t.Fatalf("expected numeric-lhs error, got %v", err)
	}
}

func TestTypeCheckRejectsNonBoolInBoolOp(t *testing.T) {
	f := vars.NewFactory()
	c := vars.Bool(f.Lookup("c"))
	x := vars.Int(f.Lookup("x"), 32)

	cfg := ir.NewCFGWithExit("b0", "b0", ir.Num)
	b := cfg.GetNode("b0")
	b.BoolAnd(c, c, x)

	err := ir.TypeCheck(cfg)
	if err == nil || !strings.Contains(err.Error(), "boolean") {
		t.Fatalf("expected boolean error, got %v", err)
	}
}

func TestTypeCheckCastRules(t *testing.T) {
	f := vars.NewFactory()
	x64 := vars.Int(f.Lookup("x64"), 64)
	x32 := vars.Int(f.Lookup("x32"), 32)
	c := vars.Bool(f.Lookup("c"))

	// Legal: trunc 64->32, zext bool->32, sext 32->64.
	cfg := ir.NewCFGWithExit("b0", "b0", ir.Num)
	b := cfg.GetNode("b0")
	b.Truncate(x64, x32)
	b.ZExt(c, x32)
	b.SExt(x32, x64)
	if err := ir.TypeCheck(cfg); err != nil {
		t.Fatalf("legal casts rejected: %v", err)
	}

	// Illegal: trunc to a wider destination.
	bad := ir.NewCFGWithExit("b0", "b0", ir.Num)
	bad.GetNode("b0").Truncate(x32, x64)
	err := ir.TypeCheck(bad)
	if err == nil || !strings.Contains(err.Error(), "bitwidth of source operand must be greater") {
		t.Fatalf("expected trunc width error, got %v", err)
	}

	// Illegal: sext to a narrower destination.
	bad2 := ir.NewCFGWithExit("b0", "b0", ir.Num)
	bad2.GetNode("b0").SExt(x64, x32)
	err = ir.TypeCheck(bad2)
	if err == nil || !strings.Contains(err.Error(), "bitwidth of destination must be greater") {
		t.Fatalf("expected sext width error, got %v", err)
	}
}

func TestTypeCheckInconsistentAssume(t *testing.T) {
	f := vars.NewFactory()
	x := vars.Int(f.Lookup("x"), 32)
	wide := vars.Int(f.Lookup("wide"), 64)

	cfg := ir.NewCFGWithExit("b0", "b0", ir.Num)
	cfg.GetNode("b0").Assume(linear.Le(linear.V(x), linear.V(wide)))

	err := ir.TypeCheck(cfg)
	if err == nil || !strings.Contains(err.Error(), "inconsistent bitwidths") {
		t.Fatalf("expected inconsistent-bitwidth error, got %v", err)
	}
}

func TestTypeCheckRequiresExit(t *testing.T) {
	cfg := ir.NewCFG("b0", ir.Num)
	err := ir.TypeCheck(cfg)
	if err == nil || !strings.Contains(err.Error(), "exit") {
		t.Fatalf("expected missing-exit error, got %v", err)
	}
}

func TestTypeCheckSingleBlockEntryExitAgreement(t *testing.T) {
	cfg := ir.NewCFGWithExit("b0", "b1", ir.Num)
	err := ir.TypeCheck(cfg)
	if err == nil || !strings.Contains(err.Error(), "entry and exit must be the same") {
		t.Fatalf("expected entry/exit error, got %v", err)
	}
}

func TestTypeCheckPassesThroughPointerAndArrayStatements(t *testing.T) {
	f := vars.NewFactory()
	p := vars.Ptr(f.Lookup("p"))
	q := vars.Ptr(f.Lookup("q"))

	cfg := ir.NewCFGWithExit("b0", "b0", ir.Ptr)
	b := cfg.GetNode("b0")
	b.PtrStore(p, q)
	b.PtrAssume(linear.NeqNull(p))

	if err := ir.TypeCheck(cfg); err != nil {
		t.Fatalf("pointer statements should pass through: %v", err)
	}
}
