package ir

import (
	"fmt"
	"io"
	"strings"

	"fathom/internal/vars"
)

// CFG is a control-flow graph: a label-to-block map with one entry, at most
// one exit and an optional function declaration. The CFG exclusively owns
// its blocks; blocks reference each other by label only. CFGs are not
// copyable — use Clone for a deep copy or Ref for an assignable handle.
type CFG struct {
	entry   Label
	exit    Label
	hasExit bool
	blocks  map[Label]*Block
	prec    Precision
	decl    *FuncDecl
}

// NewCFG builds a CFG with the given entry block, created eagerly.
func NewCFG(entry Label, prec Precision) *CFG {
	c := &CFG{
		entry:  entry,
		prec:   prec,
		blocks: make(map[Label]*Block),
	}
	c.blocks[entry] = newBlock(entry, prec)
	return c
}

// NewCFGWithExit builds a CFG with an entry block and a designated exit.
func NewCFGWithExit(entry, exit Label, prec Precision) *CFG {
	c := NewCFG(entry, prec)
	c.exit = exit
	c.hasExit = true
	return c
}

// NewFuncCFG builds a CFG with entry, exit and function declaration.
func NewFuncCFG(entry, exit Label, decl *FuncDecl, prec Precision) *CFG {
	c := NewCFGWithExit(entry, exit, prec)
	c.decl = decl
	return c
}

// Entry returns the entry label.
func (c *CFG) Entry() Label { return c.entry }

// HasExit reports whether an exit label has been designated.
func (c *CFG) HasExit() bool { return c.hasExit }

// Exit returns the exit label; fatal when none was designated.
func (c *CFG) Exit() Label {
	if !c.hasExit {
		fatalf("cfg does not have an exit block")
	}
	return c.exit
}

// SetExit marks the exit block after construction.
func (c *CFG) SetExit(exit Label) {
	c.exit = exit
	c.hasExit = true
}

// FuncDecl returns the attached declaration, or nil.
func (c *CFG) FuncDecl() *FuncDecl { return c.decl }

// SetFuncDecl attaches a declaration after construction.
func (c *CFG) SetFuncDecl(d *FuncDecl) { c.decl = d }

// Precision returns the tracked precision assigned to blocks created through
// this CFG.
func (c *CFG) Precision() Precision { return c.prec }

// Insert returns the block with the given label, creating it with the CFG's
// precision when absent.
func (c *CFG) Insert(label Label) *Block {
	if b, ok := c.blocks[label]; ok {
		return b
	}
	b := newBlock(label, c.prec)
	c.blocks[label] = b
	return b
}

// GetNode returns the block with the given label; fatal when missing.
func (c *CFG) GetNode(label Label) *Block {
	b, ok := c.blocks[label]
	if !ok {
		fatalf("basic block %s not found in the CFG", label)
	}
	return b
}

// Has reports whether a block with the label exists.
func (c *CFG) Has(label Label) bool {
	_, ok := c.blocks[label]
	return ok
}

// Remove deletes the block, first disconnecting it from every neighbor.
// Self-loop edges are dropped along with the block itself.
func (c *CFG) Remove(label Label) {
	bb := c.GetNode(label)

	type edge struct{ from, to *Block }
	var dead []edge
	for _, id := range bb.prev {
		if id != label {
			dead = append(dead, edge{c.GetNode(id), bb})
		}
	}
	for _, id := range bb.next {
		if id != label {
			dead = append(dead, edge{bb, c.GetNode(id)})
		}
	}
	for _, e := range dead {
		e.from.RemoveEdge(e.to)
	}
	delete(c.blocks, label)
}

// NextNodes returns the successor labels of the given block.
func (c *CFG) NextNodes(label Label) []Label {
	return c.GetNode(label).Next()
}

// PrevNodes returns the predecessor labels of the given block.
func (c *CFG) PrevNodes(label Label) []Label {
	return c.GetNode(label).Prev()
}

// Blocks iterates the label map. The order is unspecified; use DFS for the
// deterministic traversal.
func (c *CFG) Blocks(yield func(*Block) bool) {
	for _, b := range c.blocks {
		if !yield(b) {
			return
		}
	}
}

// Labels iterates the block labels in unspecified order.
func (c *CFG) Labels(yield func(Label) bool) {
	for l := range c.blocks {
		if !yield(l) {
			return
		}
	}
}

// Size returns the number of blocks.
func (c *CFG) Size() int { return len(c.blocks) }

// Vars returns every variable used or defined anywhere in the CFG. Linear in
// the total number of statements, so the result stays valid when blocks have
// been removed.
func (c *CFG) Vars() []vars.Var {
	var set VarSet
	for _, b := range c.blocks {
		set.Union(b.live)
	}
	return set.Vars()
}

// Clone returns a structurally equal deep copy.
func (c *CFG) Clone() *CFG {
	out := &CFG{
		entry:   c.entry,
		exit:    c.exit,
		hasExit: c.hasExit,
		prec:    c.prec,
		decl:    c.decl,
		blocks:  make(map[Label]*Block, len(c.blocks)),
	}
	for l, b := range c.blocks {
		out.blocks[l] = b.Clone()
	}
	return out
}

// DFS traverses blocks depth-first from the entry, following successor lists
// in order. This is the deterministic traversal used by Write.
func (c *CFG) DFS(f func(*Block)) {
	visited := make(map[Label]struct{}, len(c.blocks))
	c.dfsRec(c.entry, visited, f)
}

func (c *CFG) dfsRec(cur Label, visited map[Label]struct{}, f func(*Block)) {
	if _, ok := visited[cur]; ok {
		return
	}
	visited[cur] = struct{}{}
	b := c.GetNode(cur)
	f(b)
	for _, n := range b.next {
		c.dfsRec(n, visited, f)
	}
}

// Write renders the declaration line (when present) and every reachable
// block entry-first by DFS.
func (c *CFG) Write(w io.Writer) {
	if c.decl != nil {
		fmt.Fprintf(w, "%s\n", c.decl)
	}
	c.DFS(func(b *Block) { b.Write(w) })
}

func (c *CFG) String() string {
	var sb strings.Builder
	c.Write(&sb)
	return sb.String()
}
