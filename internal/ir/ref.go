package ir

import (
	"io"

	"fathom/internal/vars"
)

// Ref wraps a CFG reference into a copyable, assignable value for graph
// adapters and containers that need value semantics. The zero value is
// empty; every operation on an empty ref is fatal. A Ref neither extends nor
// shortens the underlying CFG's lifetime.
type Ref struct {
	cfg *CFG
}

// NewRef wraps the CFG.
func NewRef(c *CFG) Ref { return Ref{cfg: c} }

// Get returns the underlying CFG; fatal when the ref is empty.
func (r Ref) Get() *CFG {
	if r.cfg == nil {
		fatalf("access to an empty cfg reference")
	}
	return r.cfg
}

// IsEmpty reports whether the ref wraps nothing.
func (r Ref) IsEmpty() bool { return r.cfg == nil }

func (r Ref) Entry() Label { return r.Get().Entry() }

func (r Ref) HasExit() bool { return r.Get().HasExit() }

func (r Ref) Exit() Label { return r.Get().Exit() }

func (r Ref) FuncDecl() *FuncDecl { return r.Get().FuncDecl() }

func (r Ref) Precision() Precision { return r.Get().Precision() }

func (r Ref) GetNode(l Label) *Block { return r.Get().GetNode(l) }

func (r Ref) NextNodes(l Label) []Label { return r.Get().NextNodes(l) }

func (r Ref) PrevNodes(l Label) []Label { return r.Get().PrevNodes(l) }

func (r Ref) Size() int { return r.Get().Size() }

func (r Ref) Vars() []vars.Var { return r.Get().Vars() }

func (r Ref) Blocks(yield func(*Block) bool) { r.Get().Blocks(yield) }

func (r Ref) Labels(yield func(Label) bool) { r.Get().Labels(yield) }

func (r Ref) Write(w io.Writer) { r.Get().Write(w) }

func (r Ref) String() string { return r.Get().String() }

// Simplify delegates to the underlying CFG.
func (r Ref) Simplify() { r.Get().Simplify() }

// Hash delegates to the underlying CFG's signature hash.
func (r Ref) Hash() (uint64, error) { return r.Get().Hash() }

// Equal compares two refs by function-declaration signature; fatal when
// either CFG carries no declaration.
func (r Ref) Equal(o Ref) bool {
	h1, err := r.Hash()
	if err != nil {
		fatalf("%s", err)
	}
	h2, err := o.Hash()
	if err != nil {
		fatalf("%s", err)
	}
	return h1 == h2
}
