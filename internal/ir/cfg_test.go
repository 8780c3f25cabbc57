package ir_test

import (
	"strings"
	"testing"

	"fathom/internal/ir"
	"fathom/internal/linear"
	"fathom/internal/vars"
)

// buildStraightLine builds entry -> mid -> exit with one assignment in each
// block and mid holding t = a + 1.
func buildStraightLine(f *vars.Factory) *ir.CFG {
	a := vars.Int(f.Lookup("a"), 32)
	r := vars.Int(f.Lookup("r"), 32)
	tv := vars.Int(f.Lookup("t"), 32)

	cfg := ir.NewCFGWithExit("entry", "exit", ir.Num)
	entry := cfg.GetNode("entry")
	mid := cfg.Insert("mid")
	exit := cfg.Insert("exit")

	entry.Assign(a, linear.K(0))
	mid.Add(tv, linear.V(a), linear.K(1))
	exit.Ret(r)

	entry.AddEdge(mid)
	mid.AddEdge(exit)
	return cfg
}

func TestSingleBlockCFG(t *testing.T) {
	// S1: entry == exit, three statements, simplify is a no-op.
	f := vars.NewFactory()
	x := vars.Int(f.Lookup("x"), 32)
	y := vars.Int(f.Lookup("y"), 32)
	z := vars.Int(f.Lookup("z"), 32)

	cfg := ir.NewCFGWithExit("b0", "b0", ir.Num)
	b := cfg.GetNode("b0")
	b.Add(y, linear.V(x), linear.K(1))
	b.Add(z, linear.V(y), linear.K(2))
	b.Ret(z)

	got := map[string]bool{}
	for _, v := range cfg.Vars() {
		got[v.String()] = true
	}
	if len(got) != 3 || !got["x"] || !got["y"] || !got["z"] {
		t.Fatalf("Vars = %v, want {x,y,z}", got)
	}

	cfg.Simplify()
	if cfg.Size() != 1 {
		t.Fatalf("simplify changed a single-block CFG: %d blocks", cfg.Size())
	}

	text := cfg.String()
	for _, want := range []string{"y = x+1;", "z = y+2;", "return z;"} {
		if !strings.Contains(text, want) {
			t.Errorf("rendering missing %q:\n%s", want, text)
		}
	}
}

func TestInsertIsGetOrCreate(t *testing.T) {
	cfg := ir.NewCFG("entry", ir.Ptr)
	b1 := cfg.Insert("b")
	b2 := cfg.Insert("b")
	if b1 != b2 {
		t.Fatal("Insert created a second block for the same label")
	}
	if b1.Precision() != ir.Ptr {
		t.Fatalf("block precision = %v, want the CFG's", b1.Precision())
	}
}

func TestGetNodeUnknownLabelIsFatal(t *testing.T) {
	cfg := ir.NewCFG("entry", ir.Num)
	mustFault(t, "not found in the CFG", func() { cfg.GetNode("missing") })
}

func TestExitWithoutDesignationIsFatal(t *testing.T) {
	cfg := ir.NewCFG("entry", ir.Num)
	mustFault(t, "does not have an exit block", func() { cfg.Exit() })
}

func TestRemoveDisconnectsNeighbors(t *testing.T) {
	f := vars.NewFactory()
	cfg := buildStraightLine(f)

	cfg.Remove("mid")

	if cfg.Has("mid") {
		t.Fatal("mid still present")
	}
	if len(cfg.GetNode("entry").Next()) != 0 {
		t.Fatalf("entry still points at removed block: %v", cfg.GetNode("entry").Next())
	}
	if len(cfg.GetNode("exit").Prev()) != 0 {
		t.Fatalf("exit still lists removed block: %v", cfg.GetNode("exit").Prev())
	}
}

func TestRemoveIgnoresSelfLoop(t *testing.T) {
	cfg := ir.NewCFG("entry", ir.Num)
	loop := cfg.Insert("loop")
	cfg.GetNode("entry").AddEdge(loop)
	loop.AddEdge(loop)

	cfg.Remove("loop")
	if cfg.Has("loop") {
		t.Fatal("loop still present")
	}
}

func TestMirrorEdgeInvariant(t *testing.T) {
	f := vars.NewFactory()
	cfg := buildStraightLine(f)
	cfg.Insert("extra")
	cfg.GetNode("entry").AddEdge(cfg.GetNode("extra"))
	cfg.GetNode("extra").AddEdge(cfg.GetNode("exit"))

	checkMirror(t, cfg)
}

func checkMirror(t *testing.T, cfg *ir.CFG) {
	t.Helper()
	cfg.Blocks(func(b *ir.Block) bool {
		for _, succ := range b.Next() {
			found := false
			for _, p := range cfg.GetNode(succ).Prev() {
				if p == b.Label() {
					found = true
				}
			}
			if !found {
				t.Errorf("edge %s->%s has no mirror predecessor entry", b.Label(), succ)
			}
		}
		for _, pred := range b.Prev() {
			found := false
			for _, n := range cfg.GetNode(pred).Next() {
				if n == b.Label() {
					found = true
				}
			}
			if !found {
				t.Errorf("edge %s->%s has no mirror successor entry", pred, b.Label())
			}
		}
		return true
	})
}

func TestCFGCloneIsStructurallyEqual(t *testing.T) {
	f := vars.NewFactory()
	cfg := buildStraightLine(f)
	decl := ir.NewFuncDecl("f", nil, nil)
	cfg.SetFuncDecl(decl)

	c := cfg.Clone()

	if c.Entry() != cfg.Entry() || c.Exit() != cfg.Exit() || c.Size() != cfg.Size() {
		t.Fatal("clone differs in entry/exit/size")
	}
	if c.FuncDecl() != decl {
		t.Fatal("clone lost the declaration")
	}
	if c.String() != cfg.String() {
		t.Fatalf("clone renders differently:\n%s\nvs\n%s", c, cfg)
	}

	// Mutating the clone must not touch the original.
	c.Remove("mid")
	if !cfg.Has("mid") {
		t.Fatal("clone shares blocks with the original")
	}
}

func TestVarsIsUnionOfBlockLiveSets(t *testing.T) {
	f := vars.NewFactory()
	cfg := buildStraightLine(f)

	want := map[string]bool{}
	cfg.Blocks(func(b *ir.Block) bool {
		for _, v := range b.Live().Vars() {
			want[v.String()] = true
		}
		return true
	})

	got := map[string]bool{}
	for _, v := range cfg.Vars() {
		got[v.String()] = true
	}
	if len(got) != len(want) {
		t.Fatalf("Vars = %v, want %v", got, want)
	}
	for k := range want {
		if !got[k] {
			t.Fatalf("Vars missing %s", k)
		}
	}
}

func TestWriteRendersDeclThenDFS(t *testing.T) {
	f := vars.NewFactory()
	a := vars.Int(f.Lookup("a"), 32)
	r := vars.Int(f.Lookup("r"), 32)

	cfg := buildStraightLine(f)
	cfg.SetFuncDecl(ir.NewFuncDecl("f", []vars.Var{a}, []vars.Var{r}))

	text := cfg.String()
	if !strings.HasPrefix(text, "r:int declare f(a:int)\n") {
		t.Fatalf("missing declaration header:\n%s", text)
	}
	entryIdx := strings.Index(text, "entry:")
	midIdx := strings.Index(text, "mid:")
	exitIdx := strings.Index(text, "exit:")
	if entryIdx < 0 || midIdx < entryIdx || exitIdx < midIdx {
		t.Fatalf("blocks not in DFS order:\n%s", text)
	}
}

func TestFuncDeclRequiresDisjointParams(t *testing.T) {
	f := vars.NewFactory()
	a := vars.Int(f.Lookup("a"), 32)

	mustFault(t, "disjoint", func() {
		ir.NewFuncDecl("f", []vars.Var{a}, []vars.Var{a})
	})
}

func TestFuncDeclRendering(t *testing.T) {
	f := vars.NewFactory()
	a := vars.Int(f.Lookup("a"), 32)
	b := vars.Bool(f.Lookup("b"))
	r1 := vars.Int(f.Lookup("r1"), 32)
	r2 := vars.Int(f.Lookup("r2"), 32)

	if got := ir.NewFuncDecl("f", []vars.Var{a, b}, nil).String(); got != "void declare f(a:int,b:bool)" {
		t.Errorf("void form = %q", got)
	}
	if got := ir.NewFuncDecl("f", []vars.Var{a}, []vars.Var{r1}).String(); got != "r1:int declare f(a:int)" {
		t.Errorf("single-output form = %q", got)
	}
	if got := ir.NewFuncDecl("f", nil, []vars.Var{r1, r2}).String(); got != "(r1:int,r2:int) declare f()" {
		t.Errorf("multi-output form = %q", got)
	}
}
