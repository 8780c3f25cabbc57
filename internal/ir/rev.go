package ir

import (
	"fmt"
	"io"
	"strings"
)

// RevBlock is a read-only view of a block with its statement order reversed.
// The statements themselves are untouched: only the iteration direction
// changes. Backward analyses consume these views.
type RevBlock struct {
	bb *Block
}

// Label returns the underlying block's label.
func (b *RevBlock) Label() Label { return b.bb.label }

// Name returns the label as a string.
func (b *RevBlock) Name() string { return b.bb.Name() }

// Stmts returns the statements in reverse execution order.
func (b *RevBlock) Stmts() []*Stmt {
	out := make([]*Stmt, len(b.bb.stmts))
	for i, s := range b.bb.stmts {
		out[len(out)-1-i] = s
	}
	return out
}

// Size returns the number of statements.
func (b *RevBlock) Size() int { return len(b.bb.stmts) }

// Live returns the underlying block's aggregate live set.
func (b *RevBlock) Live() VarSet { return b.bb.live }

// Next returns the view's successors: the underlying predecessors.
func (b *RevBlock) Next() []Label { return b.bb.prev }

// Prev returns the view's predecessors: the underlying successors.
func (b *RevBlock) Prev() []Label { return b.bb.next }

// Accept visits the statements in reverse order.
func (b *RevBlock) Accept(v *Visitor) { v.VisitRevBlock(b) }

// Write renders the reversed block with its reversed-successor trailer.
func (b *RevBlock) Write(w io.Writer) {
	fmt.Fprintf(w, "%s:\n", b.bb.label)
	for _, s := range b.Stmts() {
		fmt.Fprintf(w, "  %s;\n", s)
	}
	fmt.Fprint(w, "--> [")
	for _, n := range b.Next() {
		fmt.Fprintf(w, "%s;", n)
	}
	fmt.Fprint(w, "]\n")
}

// Rev is a CFG viewed with every edge and every block's statement order
// reversed, for backward analyses. The view is read-only, copyable and valid
// only while the underlying CFG is alive and unmodified. Per-block facades
// are built once at construction and cached.
type Rev struct {
	cfg Ref
	rev map[Label]*RevBlock
}

// NewRev builds the reversed view of the referenced CFG.
func NewRev(cfg Ref) Rev {
	r := Rev{cfg: cfg, rev: make(map[Label]*RevBlock, cfg.Size())}
	cfg.Blocks(func(b *Block) bool {
		r.rev[b.label] = &RevBlock{bb: b}
		return true
	})
	return r
}

// Entry returns the underlying exit; fatal when the CFG has none.
func (r Rev) Entry() Label {
	if !r.cfg.HasExit() {
		fatalf("entry not found in reversed view: cfg has no exit block")
	}
	return r.cfg.Exit()
}

// Exit returns the underlying entry.
func (r Rev) Exit() Label { return r.cfg.Entry() }

// HasExit always holds: the underlying entry serves as the view's exit.
func (r Rev) HasExit() bool { return true }

// GetNode returns the cached reversed facade; fatal on unknown labels.
func (r Rev) GetNode(l Label) *RevBlock {
	b, ok := r.rev[l]
	if !ok {
		fatalf("basic block %s not found in the CFG", l)
	}
	return b
}

// NextNodes returns the underlying predecessors.
func (r Rev) NextNodes(l Label) []Label { return r.cfg.PrevNodes(l) }

// PrevNodes returns the underlying successors.
func (r Rev) PrevNodes(l Label) []Label { return r.cfg.NextNodes(l) }

// FuncDecl returns the underlying declaration, or nil.
func (r Rev) FuncDecl() *FuncDecl { return r.cfg.FuncDecl() }

// Size returns the number of blocks.
func (r Rev) Size() int { return r.cfg.Size() }

// Blocks iterates the reversed facades in unspecified order.
func (r Rev) Blocks(yield func(*RevBlock) bool) {
	for _, b := range r.rev {
		if !yield(b) {
			return
		}
	}
}

// Labels iterates the block labels in unspecified order.
func (r Rev) Labels(yield func(Label) bool) { r.cfg.Labels(yield) }

// Write renders the declaration line (when present) and every block view.
func (r Rev) Write(w io.Writer) {
	if d := r.FuncDecl(); d != nil {
		fmt.Fprintf(w, "%s\n", d)
	}
	r.Blocks(func(b *RevBlock) bool {
		b.Write(w)
		return true
	})
}

func (r Rev) String() string {
	var sb strings.Builder
	r.Write(&sb)
	return sb.String()
}

// Hash delegates to the underlying CFG's signature hash.
func (r Rev) Hash() (uint64, error) { return r.cfg.Hash() }
