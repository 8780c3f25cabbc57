package ir_test

import (
	"errors"
	"testing"

	"fathom/internal/ir"
	"fathom/internal/vars"
)

func TestHashEqualSignatures(t *testing.T) {
	f := vars.NewFactory()
	a := vars.Int(f.Lookup("a"), 32)
	r := vars.Int(f.Lookup("r"), 32)

	// Different variable names, same ABI.
	g := vars.NewFactory()
	a2 := vars.Int(g.Lookup("other"), 32)
	r2 := vars.Int(g.Lookup("result"), 32)

	c1 := ir.NewFuncCFG("e", "x", ir.NewFuncDecl("f", []vars.Var{a}, []vars.Var{r}), ir.Num)
	c2 := ir.NewFuncCFG("e", "x", ir.NewFuncDecl("f", []vars.Var{a2}, []vars.Var{r2}), ir.Num)

	h1, err := c1.Hash()
	if err != nil {
		t.Fatal(err)
	}
	h2, err := c2.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Fatalf("same signature, different hashes: %d vs %d", h1, h2)
	}
}

func TestHashDistinguishesSignatures(t *testing.T) {
	f := vars.NewFactory()
	a32 := vars.Int(f.Lookup("a"), 32)
	b64 := vars.Int(f.Lookup("b"), 64)

	h1 := ir.HashSignature(ir.NewFuncDecl("f", []vars.Var{a32}, nil))
	h2 := ir.HashSignature(ir.NewFuncDecl("f", []vars.Var{b64}, nil))
	h3 := ir.HashSignature(ir.NewFuncDecl("g", []vars.Var{a32}, nil))

	if h1 == h2 {
		t.Fatal("bitwidth not part of the signature hash")
	}
	if h1 == h3 {
		t.Fatal("function name not part of the signature hash")
	}
}

func TestHashWithoutDeclIsDefinedError(t *testing.T) {
	cfg := ir.NewCFGWithExit("e", "e", ir.Num)
	_, err := cfg.Hash()
	if !errors.Is(err, ir.ErrNoFuncDecl) {
		t.Fatalf("err = %v, want ErrNoFuncDecl", err)
	}

	_, err = ir.NewRef(cfg).Hash()
	if !errors.Is(err, ir.ErrNoFuncDecl) {
		t.Fatalf("ref err = %v, want ErrNoFuncDecl", err)
	}
}

func TestRefEqualityBySignature(t *testing.T) {
	f := vars.NewFactory()
	a := vars.Int(f.Lookup("a"), 32)

	c1 := ir.NewFuncCFG("e", "x", ir.NewFuncDecl("f", []vars.Var{a}, nil), ir.Num)
	c2 := ir.NewFuncCFG("e2", "x2", ir.NewFuncDecl("f", []vars.Var{a}, nil), ir.Num)
	c3 := ir.NewFuncCFG("e", "x", ir.NewFuncDecl("g", []vars.Var{a}, nil), ir.Num)

	if !ir.NewRef(c1).Equal(ir.NewRef(c2)) {
		t.Fatal("same-signature refs compare unequal")
	}
	if ir.NewRef(c1).Equal(ir.NewRef(c3)) {
		t.Fatal("different-signature refs compare equal")
	}
}

func TestHashCallsiteMatchesDeclShape(t *testing.T) {
	f := vars.NewFactory()
	x := vars.Int(f.Lookup("x"), 32)
	y := vars.Int(f.Lookup("y"), 32)

	cfg := ir.NewCFG("b0", ir.Num)
	b := cfg.GetNode("b0")
	b.Callsite("f", []vars.Var{y}, []vars.Var{x})
	b.Callsite("f", []vars.Var{y}, []vars.Var{x})
	b.Callsite("g", []vars.Var{y}, []vars.Var{x})

	s := b.Stmts()
	if ir.HashCallsite(s[0].Callsite) != ir.HashCallsite(s[1].Callsite) {
		t.Fatal("identical call sites hash differently")
	}
	if ir.HashCallsite(s[0].Callsite) == ir.HashCallsite(s[2].Callsite) {
		t.Fatal("different callees hash identically")
	}

	// A call site hashes like its callee's declaration: args as inputs, lhs
	// as outputs.
	c := vars.Bool(f.Lookup("c"))
	b.Callsite("h", []vars.Var{c}, []vars.Var{x})
	decl := ir.NewFuncDecl("h", []vars.Var{x}, []vars.Var{c})
	if ir.HashCallsite(b.Stmts()[3].Callsite) != ir.HashSignature(decl) {
		t.Fatal("call site and callee declaration hash differently")
	}
}
