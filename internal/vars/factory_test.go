package vars_test

import (
	"testing"

	"fathom/internal/types"
	"fathom/internal/vars"
)

func TestFactoryInternsDensely(t *testing.T) {
	f := vars.NewFactory()

	x := f.Lookup("x")
	y := f.Lookup("y")
	z := f.Lookup("z")

	if x.Index() != 1 || y.Index() != 2 || z.Index() != 3 {
		t.Fatalf("indices not dense from 1: %d %d %d", x.Index(), y.Index(), z.Index())
	}
	if f.Len() != 3 {
		t.Fatalf("Len = %d, want 3", f.Len())
	}
}

func TestFactoryLookupIsStable(t *testing.T) {
	f := vars.NewFactory()

	a := f.Lookup("a")
	b := f.Lookup("b")
	again := f.Lookup("a")

	if !a.Equal(again) {
		t.Fatalf("same key produced different names: %d vs %d", a.Index(), again.Index())
	}
	if a.Equal(b) {
		t.Fatalf("distinct keys share index %d", a.Index())
	}
	if f.Len() != 2 {
		t.Fatalf("Len = %d, want 2", f.Len())
	}
}

func TestFactoryConfigurableStart(t *testing.T) {
	f := vars.NewFactoryFrom(100)

	if got := f.Lookup("first").Index(); got != 100 {
		t.Fatalf("first index = %d, want 100", got)
	}
	if got := f.Lookup("second").Index(); got != 101 {
		t.Fatalf("second index = %d, want 101", got)
	}
}

func TestFactoriesDoNotShareSpace(t *testing.T) {
	f1 := vars.NewFactory()
	f2 := vars.NewFactory()

	a := f1.Lookup("a")
	b := f2.Lookup("b")

	if a.Index() != b.Index() {
		t.Fatalf("fresh factories should both start at 1: %d vs %d", a.Index(), b.Index())
	}
	if a.Factory() == b.Factory() {
		t.Fatal("names report the same factory")
	}
}

func TestNameOrdering(t *testing.T) {
	f := vars.NewFactory()
	a := f.Lookup("zzz")
	b := f.Lookup("aaa")

	// Ordering is by insertion index, not by key.
	if !a.Less(b) {
		t.Fatalf("expected %q (idx %d) < %q (idx %d)", a, a.Index(), b, b.Index())
	}
	if a.String() != "zzz" {
		t.Fatalf("String = %q, want zzz", a)
	}
}

func TestVarEquality(t *testing.T) {
	f := vars.NewFactory()
	n := f.Lookup("x")

	v1 := vars.Int(n, 32)
	v2 := vars.Int(n, 32)
	v3 := vars.Int(n, 64)

	if !v1.Equal(v2) {
		t.Fatal("identical vars not equal")
	}
	if v1.Equal(v3) {
		t.Fatal("vars with different widths compare equal")
	}
	if v1.Kind() != types.KindInt || v1.Bits() != 32 {
		t.Fatalf("unexpected kind/bits: %v/%d", v1.Kind(), v1.Bits())
	}
}
