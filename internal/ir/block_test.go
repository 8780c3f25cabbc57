package ir_test

import (
	"strings"
	"testing"

	"fathom/internal/ir"
	"fathom/internal/linear"
	"fathom/internal/vars"
)

func TestFrontInsertionFlagIsOneShot(t *testing.T) {
	f := vars.NewFactory()
	x := vars.Int(f.Lookup("x"), 32)
	y := vars.Int(f.Lookup("y"), 32)
	z := vars.Int(f.Lookup("z"), 32)

	cfg := ir.NewCFG("b0", ir.Num)
	b := cfg.GetNode("b0")

	b.Assign(x, linear.K(1))
	b.SetInsertPointFront()
	b.Assign(y, linear.K(2)) // goes to the front
	b.Assign(z, linear.K(3)) // flag has reset: back again

	got := b.Stmts()
	if got[0].Assign.Lhs.String() != "y" ||
		got[1].Assign.Lhs.String() != "x" ||
		got[2].Assign.Lhs.String() != "z" {
		t.Fatalf("order = [%s %s %s], want [y x z]",
			got[0].Assign.Lhs, got[1].Assign.Lhs, got[2].Assign.Lhs)
	}
}

func TestEdgesAreMirroredAndIdempotent(t *testing.T) {
	cfg := ir.NewCFG("a", ir.Num)
	a := cfg.GetNode("a")
	b := cfg.Insert("b")

	a.AddEdge(b)
	a.AddEdge(b)

	if len(a.Next()) != 1 || a.Next()[0] != "b" {
		t.Fatalf("a.Next = %v", a.Next())
	}
	if len(b.Prev()) != 1 || b.Prev()[0] != "a" {
		t.Fatalf("b.Prev = %v", b.Prev())
	}

	a.RemoveEdge(b)
	a.RemoveEdge(b)
	if len(a.Next()) != 0 || len(b.Prev()) != 0 {
		t.Fatalf("edge not removed: next=%v prev=%v", a.Next(), b.Prev())
	}
}

func TestMergeBackJoinsStatementsAndLiveSets(t *testing.T) {
	f := vars.NewFactory()
	x := vars.Int(f.Lookup("x"), 32)
	y := vars.Int(f.Lookup("y"), 32)

	cfg := ir.NewCFG("a", ir.Num)
	a := cfg.GetNode("a")
	b := cfg.Insert("b")

	a.Assign(x, linear.K(1))
	b.Assign(y, linear.K(2))

	a.MergeBack(b)

	if a.Size() != 2 {
		t.Fatalf("size = %d, want 2", a.Size())
	}
	if a.Stmts()[1].Assign.Lhs.String() != "y" {
		t.Fatal("b's statement not appended at the back")
	}
	live := a.Live()
	if !live.Contains(x.Name) || !live.Contains(y.Name) {
		t.Fatalf("live set not joined: %v", names(live.Vars()))
	}
}

func TestMergeFrontPrepends(t *testing.T) {
	f := vars.NewFactory()
	x := vars.Int(f.Lookup("x"), 32)
	y := vars.Int(f.Lookup("y"), 32)

	cfg := ir.NewCFG("a", ir.Num)
	a := cfg.GetNode("a")
	b := cfg.Insert("b")

	a.Assign(x, linear.K(1))
	b.Assign(y, linear.K(2))

	a.MergeFront(b)

	if a.Stmts()[0].Assign.Lhs.String() != "y" {
		t.Fatal("b's statement not spliced at the front")
	}
}

func TestBlockCloneIsEquivalentAndIndependent(t *testing.T) {
	f := vars.NewFactory()
	x := vars.Int(f.Lookup("x"), 32)

	cfg := ir.NewCFG("a", ir.Num)
	a := cfg.GetNode("a")
	b := cfg.Insert("b")
	a.Assign(x, linear.K(1))
	a.AddEdge(b)

	c := a.Clone()
	if c.Label() != a.Label() || c.Size() != a.Size() {
		t.Fatal("clone differs structurally")
	}
	if len(c.Next()) != 1 || c.Next()[0] != "b" {
		t.Fatalf("clone adjacency = %v", c.Next())
	}
	if !c.Live().Contains(x.Name) {
		t.Fatal("clone live set missing x")
	}
	if c.Stmts()[0] == a.Stmts()[0] {
		t.Fatal("clone shares statement storage with the original")
	}
}

func TestBlockWrite(t *testing.T) {
	f := vars.NewFactory()
	x := vars.Int(f.Lookup("x"), 32)

	cfg := ir.NewCFG("entry", ir.Num)
	entry := cfg.GetNode("entry")
	left := cfg.Insert("left")
	right := cfg.Insert("right")

	entry.Assign(x, linear.K(1))
	entry.AddEdge(left)
	entry.AddEdge(right)

	got := entry.String()
	want := "entry:\n  x = 1;\n  goto left,right;\n"
	if got != want {
		t.Fatalf("Write = %q, want %q", got, want)
	}

	if strings.Contains(left.String(), "goto") {
		t.Fatal("block without successors rendered a goto trailer")
	}
}
