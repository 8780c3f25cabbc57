package ir

import (
	"fmt"
	"io"
	"strings"

	"fathom/internal/linear"
	"fathom/internal/vars"
)

// Label identifies a basic block. Labels are supplied by the caller and are
// only meaningful within one CFG.
type Label string

// Block is a maximal straight-line statement sequence. A block owns its
// statements and records its neighbors by label only; the CFG's label map is
// the single owner of blocks, so no cyclic references arise. Blocks are not
// copyable; use Clone for an equivalent owned copy.
type Block struct {
	label Label
	prec  Precision
	stmts []*Stmt
	prev  []Label
	next  []Label
	live  VarSet

	// One-shot flag: the next insertion goes to the front, then the flag
	// resets. Front-ends use it to prepend a prelude to an existing block.
	insertAtFront bool
}

func newBlock(label Label, prec Precision) *Block {
	return &Block{label: label, prec: prec}
}

// Label returns the block's label.
func (b *Block) Label() Label { return b.label }

// Name returns the label as a string.
func (b *Block) Name() string { return string(b.label) }

// Precision returns the tracked precision the block was created with.
func (b *Block) Precision() Precision { return b.prec }

// SetInsertPointFront makes the next insertion go to the front of the
// statement list. The flag resets after one insertion.
func (b *Block) SetInsertPointFront() { b.insertAtFront = true }

// Stmts returns the statements in execution order.
func (b *Block) Stmts() []*Stmt { return b.stmts }

// Size returns the number of statements.
func (b *Block) Size() int { return len(b.stmts) }

// Live returns the aggregate live set: the union of the per-statement live
// sets, maintained incrementally.
func (b *Block) Live() VarSet { return b.live }

// Next returns the successor labels in insertion order.
func (b *Block) Next() []Label { return b.next }

// Prev returns the predecessor labels in insertion order.
func (b *Block) Prev() []Label { return b.prev }

// Accept visits the block's statements in order.
func (b *Block) Accept(v *Visitor) { v.VisitBlock(b) }

func (b *Block) insert(s *Stmt) {
	if b.insertAtFront {
		b.stmts = append([]*Stmt{s}, b.stmts...)
		b.insertAtFront = false
	} else {
		b.stmts = append(b.stmts, s)
	}
	b.live.AddLive(s.live)
}

func insertAdjacent(c []Label, l Label) []Label {
	for _, have := range c {
		if have == l {
			return c
		}
	}
	return append(c, l)
}

func removeAdjacent(c []Label, l Label) []Label {
	for i, have := range c {
		if have == l {
			return append(c[:i], c[i+1:]...)
		}
	}
	return c
}

// AddEdge adds the edge b -> o, mirror-maintaining o's predecessor list.
// Idempotent.
func (b *Block) AddEdge(o *Block) {
	b.next = insertAdjacent(b.next, o.label)
	o.prev = insertAdjacent(o.prev, b.label)
}

// RemoveEdge removes the edge b -> o. Idempotent.
func (b *Block) RemoveEdge(o *Block) {
	b.next = removeAdjacent(b.next, o.label)
	o.prev = removeAdjacent(o.prev, b.label)
}

// MergeFront splices o's statements before this block's own and joins the
// live sets. Adjacency is untouched.
func (b *Block) MergeFront(o *Block) {
	b.stmts = append(append([]*Stmt{}, o.stmts...), b.stmts...)
	b.live.Union(o.live)
}

// MergeBack splices o's statements after this block's own and joins the live
// sets. Adjacency is untouched.
func (b *Block) MergeBack(o *Block) {
	b.stmts = append(b.stmts, o.stmts...)
	b.live.Union(o.live)
}

// Clone returns a deep copy of the block: statements, adjacency label lists
// and the aggregate live set.
func (b *Block) Clone() *Block {
	out := newBlock(b.label, b.prec)
	for _, s := range b.stmts {
		out.stmts = append(out.stmts, s.Clone())
	}
	out.prev = append(out.prev, b.prev...)
	out.next = append(out.next, b.next...)
	out.live = b.live.clone()
	return out
}

// Write renders the block: its label line, each statement indented and
// semicolon-terminated, and a goto trailer when successors exist.
func (b *Block) Write(w io.Writer) {
	fmt.Fprintf(w, "%s:\n", b.label)
	for _, s := range b.stmts {
		fmt.Fprintf(w, "  %s;\n", s)
	}
	if len(b.next) > 0 {
		labels := make([]string, len(b.next))
		for i, l := range b.next {
			labels[i] = string(l)
		}
		fmt.Fprintf(w, "  goto %s;\n", strings.Join(labels, ","))
	}
}

func (b *Block) String() string {
	var sb strings.Builder
	b.Write(&sb)
	return sb.String()
}

/*
   Statement builders. Pointer and array builders consult the block's
   precision and silently no-op below the required floor, so one front-end
   path yields progressively smaller CFGs at coarser precision.
*/

// Add appends lhs = op1 + op2.
func (b *Block) Add(lhs vars.Var, op1, op2 linear.Expr) {
	b.insert(newBinOp(lhs, OpAdd, op1, op2, NoDebug))
}

// Sub appends lhs = op1 - op2.
func (b *Block) Sub(lhs vars.Var, op1, op2 linear.Expr) {
	b.insert(newBinOp(lhs, OpSub, op1, op2, NoDebug))
}

// Mul appends lhs = op1 * op2.
func (b *Block) Mul(lhs vars.Var, op1, op2 linear.Expr) {
	b.insert(newBinOp(lhs, OpMul, op1, op2, NoDebug))
}

// Div appends the signed division lhs = op1 / op2.
func (b *Block) Div(lhs vars.Var, op1, op2 linear.Expr) {
	b.insert(newBinOp(lhs, OpSDiv, op1, op2, NoDebug))
}

// UDiv appends the unsigned division lhs = op1 /_u op2.
func (b *Block) UDiv(lhs vars.Var, op1, op2 linear.Expr) {
	b.insert(newBinOp(lhs, OpUDiv, op1, op2, NoDebug))
}

// Rem appends the signed remainder lhs = op1 % op2.
func (b *Block) Rem(lhs vars.Var, op1, op2 linear.Expr) {
	b.insert(newBinOp(lhs, OpSRem, op1, op2, NoDebug))
}

// URem appends the unsigned remainder lhs = op1 %_u op2.
func (b *Block) URem(lhs vars.Var, op1, op2 linear.Expr) {
	b.insert(newBinOp(lhs, OpURem, op1, op2, NoDebug))
}

// BitwiseAnd appends lhs = op1 & op2.
func (b *Block) BitwiseAnd(lhs vars.Var, op1, op2 linear.Expr) {
	b.insert(newBinOp(lhs, OpAnd, op1, op2, NoDebug))
}

// BitwiseOr appends lhs = op1 | op2.
func (b *Block) BitwiseOr(lhs vars.Var, op1, op2 linear.Expr) {
	b.insert(newBinOp(lhs, OpOr, op1, op2, NoDebug))
}

// BitwiseXor appends lhs = op1 ^ op2.
func (b *Block) BitwiseXor(lhs vars.Var, op1, op2 linear.Expr) {
	b.insert(newBinOp(lhs, OpXor, op1, op2, NoDebug))
}

// BinOp appends a binary operation with an explicit operator and location.
func (b *Block) BinOp(lhs vars.Var, op BinOpKind, op1, op2 linear.Expr, di ...DebugInfo) {
	b.insert(newBinOp(lhs, op, op1, op2, pickDebug(di)))
}

// Assign appends lhs = rhs.
func (b *Block) Assign(lhs vars.Var, rhs linear.Expr) {
	b.insert(newAssign(lhs, rhs))
}

// Assume appends assume(cst).
func (b *Block) Assume(cst linear.Cst) {
	b.insert(newAssume(cst))
}

// Havoc appends lhs =*.
func (b *Block) Havoc(lhs vars.Var) {
	b.insert(newHavoc(lhs))
}

// Unreachable marks the block as unreachable.
func (b *Block) Unreachable() {
	b.insert(newUnreachable())
}

// Select appends lhs = ite(cond, e1, e2).
func (b *Block) Select(lhs vars.Var, cond linear.Cst, e1, e2 linear.Expr) {
	b.insert(newSelect(lhs, cond, e1, e2))
}

// SelectVar appends lhs = ite(v >= 1, e1, e2): the common form where the
// condition is a variable holding a truth value.
func (b *Block) SelectVar(lhs, v vars.Var, e1, e2 linear.Expr) {
	cond := linear.Ge(linear.V(v), linear.K(1))
	b.insert(newSelect(lhs, cond, e1, e2))
}

// Assertion appends assert(cst).
func (b *Block) Assertion(cst linear.Cst, di ...DebugInfo) {
	b.insert(newAssert(cst, pickDebug(di)))
}

// Truncate appends dst = trunc src.
func (b *Block) Truncate(src, dst vars.Var, di ...DebugInfo) {
	b.insert(newIntCast(CastTrunc, src, dst, pickDebug(di)))
}

// SExt appends dst = sext src.
func (b *Block) SExt(src, dst vars.Var, di ...DebugInfo) {
	b.insert(newIntCast(CastSExt, src, dst, pickDebug(di)))
}

// ZExt appends dst = zext src.
func (b *Block) ZExt(src, dst vars.Var, di ...DebugInfo) {
	b.insert(newIntCast(CastZExt, src, dst, pickDebug(di)))
}

// Callsite appends (lhs...) = call fn(args...).
func (b *Block) Callsite(fn string, lhs, args []vars.Var) {
	b.insert(newCallsite(fn, lhs, args))
}

// Ret appends return v.
func (b *Block) Ret(v vars.Var) {
	b.insert(newReturn([]vars.Var{v}))
}

// RetVals appends return (v1,...,vn).
func (b *Block) RetVals(vs []vars.Var) {
	b.insert(newReturn(vs))
}

// ArrayInit appends an array initialization; no-op below Arr precision.
func (b *Block) ArrayInit(arr vars.Var, elemSize uint64, lb, ub, val linear.Expr) {
	if b.prec == Arr {
		b.insert(newArrRange(ArrInitCode, arr, elemSize, lb, ub, val))
	}
}

// ArrayAssume appends an array range assumption; no-op below Arr precision.
func (b *Block) ArrayAssume(arr vars.Var, elemSize uint64, lb, ub, val linear.Expr) {
	if b.prec == Arr {
		b.insert(newArrRange(ArrAssumeCode, arr, elemSize, lb, ub, val))
	}
}

// ArrayStore appends array_store(arr, idx, v); no-op below Arr precision.
func (b *Block) ArrayStore(arr vars.Var, idx, v linear.Expr, elemSize uint64, singleton bool) {
	if b.prec == Arr {
		b.insert(newArrStore(arr, idx, v, elemSize, singleton))
	}
}

// ArrayLoad appends lhs = array_load(arr, idx); no-op below Arr precision.
func (b *Block) ArrayLoad(lhs, arr vars.Var, idx linear.Expr, elemSize uint64) {
	if b.prec == Arr {
		b.insert(newArrLoad(lhs, arr, idx, elemSize))
	}
}

// ArrayAssign appends the whole-array assignment lhs = rhs; no-op below Arr
// precision.
func (b *Block) ArrayAssign(lhs, rhs vars.Var) {
	if b.prec == Arr {
		b.insert(newArrAssign(lhs, rhs))
	}
}

// PtrStore appends *(lhs) = rhs; no-op below Ptr precision.
func (b *Block) PtrStore(lhs, rhs vars.Var, di ...DebugInfo) {
	if b.prec >= Ptr {
		b.insert(newPtrStore(lhs, rhs, pickDebug(di)))
	}
}

// PtrLoad appends lhs = *(rhs); no-op below Ptr precision.
func (b *Block) PtrLoad(lhs, rhs vars.Var, di ...DebugInfo) {
	if b.prec >= Ptr {
		b.insert(newPtrLoad(lhs, rhs, pickDebug(di)))
	}
}

// PtrAssign appends lhs = &(rhs) + offset; no-op below Ptr precision.
func (b *Block) PtrAssign(lhs, rhs vars.Var, offset linear.Expr) {
	if b.prec >= Ptr {
		b.insert(newPtrAssign(lhs, rhs, offset))
	}
}

// PtrNewObject appends lhs = &(address); no-op below Ptr precision.
func (b *Block) PtrNewObject(lhs vars.Var, address uint64) {
	if b.prec >= Ptr {
		b.insert(newPtrObject(lhs, address))
	}
}

// PtrNewFunc appends lhs = &(fn); no-op below Ptr precision.
func (b *Block) PtrNewFunc(lhs vars.Var, fn string) {
	if b.prec >= Ptr {
		b.insert(newPtrFunction(lhs, fn))
	}
}

// PtrNull appends lhs = NULL; no-op below Ptr precision.
func (b *Block) PtrNull(lhs vars.Var) {
	if b.prec >= Ptr {
		b.insert(newPtrNull(lhs))
	}
}

// PtrAssume appends assume_ptr(cst); no-op below Ptr precision.
func (b *Block) PtrAssume(cst linear.PtrCst) {
	if b.prec >= Ptr {
		b.insert(newPtrAssume(cst))
	}
}

// PtrAssertion appends assert_ptr(cst); no-op below Ptr precision.
func (b *Block) PtrAssertion(cst linear.PtrCst, di ...DebugInfo) {
	if b.prec >= Ptr {
		b.insert(newPtrAssert(cst, pickDebug(di)))
	}
}

// BoolAssignCst appends lhs = (cst).
func (b *Block) BoolAssignCst(lhs vars.Var, rhs linear.Cst) {
	b.insert(newBoolAssignCst(lhs, rhs))
}

// BoolAssign appends lhs = rhs (negated: lhs = not(rhs)).
func (b *Block) BoolAssign(lhs, rhs vars.Var, negated ...bool) {
	neg := len(negated) > 0 && negated[0]
	b.insert(newBoolAssignVar(lhs, rhs, neg))
}

// BoolAssume appends assume(v).
func (b *Block) BoolAssume(v vars.Var) {
	b.insert(newBoolAssume(v, false))
}

// BoolNotAssume appends assume(not(v)).
func (b *Block) BoolNotAssume(v vars.Var) {
	b.insert(newBoolAssume(v, true))
}

// BoolAssert appends assert(v).
func (b *Block) BoolAssert(v vars.Var, di ...DebugInfo) {
	b.insert(newBoolAssert(v, pickDebug(di)))
}

// BoolSelect appends lhs = ite(cond, b1, b2) over booleans.
func (b *Block) BoolSelect(lhs, cond, b1, b2 vars.Var) {
	b.insert(newBoolSelect(lhs, cond, b1, b2))
}

// BoolAnd appends lhs = op1 & op2.
func (b *Block) BoolAnd(lhs, op1, op2 vars.Var) {
	b.insert(newBoolBinOp(lhs, BoolAnd, op1, op2, NoDebug))
}

// BoolOr appends lhs = op1 | op2.
func (b *Block) BoolOr(lhs, op1, op2 vars.Var) {
	b.insert(newBoolBinOp(lhs, BoolOr, op1, op2, NoDebug))
}

// BoolXor appends lhs = op1 ^ op2.
func (b *Block) BoolXor(lhs, op1, op2 vars.Var) {
	b.insert(newBoolBinOp(lhs, BoolXor, op1, op2, NoDebug))
}

// BoolBinOpAt appends a boolean binary operation with an explicit operator
// and location.
func (b *Block) BoolBinOpAt(lhs vars.Var, op BoolOpKind, op1, op2 vars.Var, di ...DebugInfo) {
	b.insert(newBoolBinOp(lhs, op, op1, op2, pickDebug(di)))
}
