package ir

import (
	"fathom/internal/linear"
	"fathom/internal/types"
	"fathom/internal/vars"
)

// Stmt is one IR statement: a code tag plus the payload for that kind. All
// statements are strongly typed over variables; constants are untyped and
// take their meaning from context. Every statement carries the live set
// computed at construction and, for the kinds the front-end attributes,
// a source location.
//
// Exactly one payload field is meaningful, selected by the code tag.
type Stmt struct {
	code Code
	live Live
	dbg  DebugInfo

	BinOp         BinOpStmt
	Assign        AssignStmt
	Assume        AssumeStmt
	Assert        AssertStmt
	Select        SelectStmt
	Havoc         HavocStmt
	IntCast       IntCastStmt
	ArrInit       ArrRangeStmt
	ArrAssume     ArrRangeStmt
	ArrStore      ArrStoreStmt
	ArrLoad       ArrLoadStmt
	ArrAssign     ArrAssignStmt
	PtrLoad       PtrLoadStmt
	PtrStore      PtrStoreStmt
	PtrAssign     PtrAssignStmt
	PtrObject     PtrObjectStmt
	PtrFunction   PtrFunctionStmt
	PtrNull       PtrNullStmt
	PtrAssume     PtrAssumeStmt
	PtrAssert     PtrAssertStmt
	Callsite      CallsiteStmt
	Return        ReturnStmt
	BoolBinOp     BoolBinOpStmt
	BoolAssignCst BoolAssignCstStmt
	BoolAssignVar BoolAssignVarStmt
	BoolAssume    BoolAssumeStmt
	BoolAssert    BoolAssertStmt
	BoolSelect    BoolSelectStmt
}

// Code returns the statement's kind tag.
func (s *Stmt) Code() Code { return s.code }

// Live returns the statement's use/def contribution.
func (s *Stmt) Live() Live { return s.live }

// Debug returns the attributed source location, if any.
func (s *Stmt) Debug() DebugInfo { return s.dbg }

// Kind predicates, used by analyzers that only care about a few kinds.

func (s *Stmt) IsBinOp() bool      { return s.code == BinOpCode }
func (s *Stmt) IsAssign() bool     { return s.code == AssignCode }
func (s *Stmt) IsAssume() bool     { return s.code == AssumeCode }
func (s *Stmt) IsAssert() bool     { return s.code == AssertCode }
func (s *Stmt) IsSelect() bool     { return s.code == SelectCode }
func (s *Stmt) IsIntCast() bool    { return s.code == IntCastCode }
func (s *Stmt) IsReturn() bool     { return s.code == ReturnCode }
func (s *Stmt) IsArrRead() bool    { return s.code == ArrLoadCode }
func (s *Stmt) IsArrWrite() bool   { return s.code == ArrStoreCode }
func (s *Stmt) IsArrAssign() bool  { return s.code == ArrAssignCode }
func (s *Stmt) IsPtrRead() bool    { return s.code == PtrLoadCode }
func (s *Stmt) IsPtrWrite() bool   { return s.code == PtrStoreCode }
func (s *Stmt) IsPtrNull() bool    { return s.code == PtrNullCode }
func (s *Stmt) IsPtrAssume() bool  { return s.code == PtrAssumeCode }
func (s *Stmt) IsPtrAssert() bool  { return s.code == PtrAssertCode }
func (s *Stmt) IsBoolBinOp() bool  { return s.code == BoolBinOpCode }
func (s *Stmt) IsBoolAssume() bool { return s.code == BoolAssumeCode }
func (s *Stmt) IsBoolAssert() bool { return s.code == BoolAssertCode }
func (s *Stmt) IsBoolSelect() bool { return s.code == BoolSelectCode }

// Clone returns a deep copy of the statement.
func (s *Stmt) Clone() *Stmt {
	out := *s
	out.live = Live{uses: addAll(nil, s.live.uses), defs: addAll(nil, s.live.defs)}
	out.Callsite.Lhs = addAll(nil, s.Callsite.Lhs)
	out.Callsite.Args = addAll(nil, s.Callsite.Args)
	out.Return.Rets = addAll(nil, s.Return.Rets)
	return &out
}

func addAll(dst, src []vars.Var) []vars.Var {
	if len(src) == 0 {
		return dst
	}
	return append(dst, src...)
}

/*
   Numerical statements
*/

// BinOpStmt is lhs = op1 OP op2.
type BinOpStmt struct {
	Lhs vars.Var
	Op  BinOpKind
	Op1 linear.Expr
	Op2 linear.Expr
}

func newBinOp(lhs vars.Var, op BinOpKind, op1, op2 linear.Expr, dbg DebugInfo) *Stmt {
	s := &Stmt{code: BinOpCode, dbg: dbg}
	s.BinOp = BinOpStmt{Lhs: lhs, Op: op, Op1: op1, Op2: op2}
	s.live.addDef(lhs)
	s.live.addUseExprs(op1.Vars()...)
	s.live.addUseExprs(op2.Vars()...)
	return s
}

// AssignStmt is lhs = rhs over a linear expression.
type AssignStmt struct {
	Lhs vars.Var
	Rhs linear.Expr
}

func newAssign(lhs vars.Var, rhs linear.Expr) *Stmt {
	s := &Stmt{code: AssignCode, dbg: NoDebug}
	s.Assign = AssignStmt{Lhs: lhs, Rhs: rhs}
	s.live.addDef(lhs)
	s.live.addUseExprs(rhs.Vars()...)
	return s
}

// AssumeStmt restricts the reachable states with a linear constraint.
type AssumeStmt struct {
	Cst linear.Cst
}

func newAssume(cst linear.Cst) *Stmt {
	s := &Stmt{code: AssumeCode, dbg: NoDebug}
	s.Assume = AssumeStmt{Cst: cst}
	s.live.addUseExprs(cst.Vars()...)
	return s
}

// AssertStmt is a proof obligation over a linear constraint.
type AssertStmt struct {
	Cst linear.Cst
}

func newAssert(cst linear.Cst, dbg DebugInfo) *Stmt {
	s := &Stmt{code: AssertCode, dbg: dbg}
	s.Assert = AssertStmt{Cst: cst}
	s.live.addUseExprs(cst.Vars()...)
	return s
}

// SelectStmt is lhs = ite(cond, left, right). Select is not strictly needed
// (it can be simulated by splitting blocks) but LLVM-like front-ends emit
// many of them, so it is supported natively to keep CFGs small.
type SelectStmt struct {
	Lhs   vars.Var
	Cond  linear.Cst
	Left  linear.Expr
	Right linear.Expr
}

func newSelect(lhs vars.Var, cond linear.Cst, left, right linear.Expr) *Stmt {
	s := &Stmt{code: SelectCode, dbg: NoDebug}
	s.Select = SelectStmt{Lhs: lhs, Cond: cond, Left: left, Right: right}
	s.live.addDef(lhs)
	s.live.addUseExprs(cond.Vars()...)
	s.live.addUseExprs(left.Vars()...)
	s.live.addUseExprs(right.Vars()...)
	return s
}

// HavocStmt forgets everything known about lhs.
type HavocStmt struct {
	Lhs vars.Var
}

func newHavoc(lhs vars.Var) *Stmt {
	s := &Stmt{code: HavocCode, dbg: NoDebug}
	s.Havoc = HavocStmt{Lhs: lhs}
	s.live.addDef(lhs)
	return s
}

func newUnreachable() *Stmt {
	return &Stmt{code: UnreachCode, dbg: NoDebug}
}

// IntCastStmt is dst = trunc/sext/zext src.
type IntCastStmt struct {
	Op  CastOp
	Src vars.Var
	Dst vars.Var
}

func newIntCast(op CastOp, src, dst vars.Var, dbg DebugInfo) *Stmt {
	s := &Stmt{code: IntCastCode, dbg: dbg}
	s.IntCast = IntCastStmt{Op: op, Src: src, Dst: dst}
	s.live.addUse(src)
	s.live.addDef(dst)
	return s
}

/*
   Array statements
*/

func isNumberOrVariable(e linear.Expr) bool {
	if e.IsConst() {
		return true
	}
	_, ok := e.AsVar()
	return ok
}

// ArrRangeStmt states that every element of arr in [Lb,Ub] modulo ElemSize
// equals Val. It backs both array_init and array_assume.
type ArrRangeStmt struct {
	Arr      vars.Var
	ElemSize uint64
	Lb       linear.Expr
	Ub       linear.Expr
	Val      linear.Expr
}

func newArrRange(code Code, arr vars.Var, elemSize uint64, lb, ub, val linear.Expr) *Stmt {
	name := code.String()
	if !arr.Kind().IsArray() {
		fatalf("%s must have array type", name)
	}
	if !isNumberOrVariable(lb) {
		fatalf("%s lower bound can only be number or variable", name)
	}
	if !isNumberOrVariable(ub) {
		fatalf("%s upper bound can only be number or variable", name)
	}
	if !isNumberOrVariable(val) {
		fatalf("%s value can only be number or variable", name)
	}
	s := &Stmt{code: code, dbg: NoDebug}
	p := ArrRangeStmt{Arr: arr, ElemSize: elemSize, Lb: lb, Ub: ub, Val: val}
	if code == ArrInitCode {
		s.ArrInit = p
	} else {
		s.ArrAssume = p
	}
	s.live.addUse(arr)
	s.live.addUseExprs(lb.Vars()...)
	s.live.addUseExprs(ub.Vars()...)
	s.live.addUseExprs(val.Vars()...)
	return s
}

// ArrStoreStmt writes Value at Index. Singleton marks writes known to hit a
// single cell; when unknown it is false.
type ArrStoreStmt struct {
	Arr       vars.Var
	Index     linear.Expr
	Value     linear.Expr
	ElemSize  uint64
	Singleton bool
}

func newArrStore(arr vars.Var, index, value linear.Expr, elemSize uint64, singleton bool) *Stmt {
	if !arr.Kind().IsArray() {
		fatalf("array_store must have array type")
	}
	if !isNumberOrVariable(value) {
		fatalf("array_store value can only be number or variable")
	}
	s := &Stmt{code: ArrStoreCode, dbg: NoDebug}
	s.ArrStore = ArrStoreStmt{Arr: arr, Index: index, Value: value, ElemSize: elemSize, Singleton: singleton}
	s.live.addUse(arr)
	s.live.addUseExprs(index.Vars()...)
	s.live.addUseExprs(value.Vars()...)
	return s
}

// ArrLoadStmt is lhs = arr[index].
type ArrLoadStmt struct {
	Lhs      vars.Var
	Arr      vars.Var
	Index    linear.Expr
	ElemSize uint64
}

func newArrLoad(lhs, arr vars.Var, index linear.Expr, elemSize uint64) *Stmt {
	if !arr.Kind().IsArray() {
		fatalf("array_load must have array type")
	}
	s := &Stmt{code: ArrLoadCode, dbg: NoDebug}
	s.ArrLoad = ArrLoadStmt{Lhs: lhs, Arr: arr, Index: index, ElemSize: elemSize}
	s.live.addDef(lhs)
	s.live.addUse(arr)
	s.live.addUseExprs(index.Vars()...)
	return s
}

// ArrAssignStmt is a whole-array assignment lhs = rhs.
type ArrAssignStmt struct {
	Lhs vars.Var
	Rhs vars.Var
}

func newArrAssign(lhs, rhs vars.Var) *Stmt {
	if !lhs.Kind().IsArray() || lhs.Kind() != rhs.Kind() {
		fatalf("array_assign must have array type")
	}
	s := &Stmt{code: ArrAssignCode, dbg: NoDebug}
	s.ArrAssign = ArrAssignStmt{Lhs: lhs, Rhs: rhs}
	s.live.addDef(lhs)
	s.live.addUse(rhs)
	return s
}

/*
   Pointer statements
*/

// PtrLoadStmt is lhs = *(rhs). Note that lhs is recorded as a use, not a
// def: the loaded value refines both sides in the pointer analyses built on
// top, and changing it would silently change their results.
type PtrLoadStmt struct {
	Lhs vars.Var
	Rhs vars.Var
}

func newPtrLoad(lhs, rhs vars.Var, dbg DebugInfo) *Stmt {
	s := &Stmt{code: PtrLoadCode, dbg: dbg}
	s.PtrLoad = PtrLoadStmt{Lhs: lhs, Rhs: rhs}
	s.live.addUse(lhs)
	s.live.addUse(rhs)
	return s
}

// PtrStoreStmt is *(lhs) = rhs.
type PtrStoreStmt struct {
	Lhs vars.Var
	Rhs vars.Var
}

func newPtrStore(lhs, rhs vars.Var, dbg DebugInfo) *Stmt {
	s := &Stmt{code: PtrStoreCode, dbg: dbg}
	s.PtrStore = PtrStoreStmt{Lhs: lhs, Rhs: rhs}
	s.live.addUse(lhs)
	s.live.addUse(rhs)
	return s
}

// PtrAssignStmt is lhs = &(rhs) + offset.
type PtrAssignStmt struct {
	Lhs    vars.Var
	Rhs    vars.Var
	Offset linear.Expr
}

func newPtrAssign(lhs, rhs vars.Var, offset linear.Expr) *Stmt {
	s := &Stmt{code: PtrAssignCode, dbg: NoDebug}
	s.PtrAssign = PtrAssignStmt{Lhs: lhs, Rhs: rhs, Offset: offset}
	s.live.addDef(lhs)
	s.live.addUse(rhs)
	return s
}

// PtrObjectStmt is lhs = &(address): lhs points to the memory object with
// the given front-end-assigned identifier.
type PtrObjectStmt struct {
	Lhs     vars.Var
	Address uint64
}

func newPtrObject(lhs vars.Var, address uint64) *Stmt {
	s := &Stmt{code: PtrObjectCode, dbg: NoDebug}
	s.PtrObject = PtrObjectStmt{Lhs: lhs, Address: address}
	s.live.addDef(lhs)
	return s
}

// PtrFunctionStmt is lhs = &(func). Function names are assumed unique.
type PtrFunctionStmt struct {
	Lhs  vars.Var
	Func string
}

func newPtrFunction(lhs vars.Var, fn string) *Stmt {
	s := &Stmt{code: PtrFunctionCode, dbg: NoDebug}
	s.PtrFunction = PtrFunctionStmt{Lhs: lhs, Func: fn}
	s.live.addDef(lhs)
	return s
}

// PtrNullStmt is lhs = NULL.
type PtrNullStmt struct {
	Lhs vars.Var
}

func newPtrNull(lhs vars.Var) *Stmt {
	s := &Stmt{code: PtrNullCode, dbg: NoDebug}
	s.PtrNull = PtrNullStmt{Lhs: lhs}
	s.live.addDef(lhs)
	return s
}

// PtrAssumeStmt restricts reachable states with a pointer constraint.
type PtrAssumeStmt struct {
	Cst linear.PtrCst
}

func newPtrAssume(cst linear.PtrCst) *Stmt {
	s := &Stmt{code: PtrAssumeCode, dbg: NoDebug}
	s.PtrAssume = PtrAssumeStmt{Cst: cst}
	addPtrCstUses(&s.live, cst)
	return s
}

// PtrAssertStmt is a proof obligation over a pointer constraint.
type PtrAssertStmt struct {
	Cst linear.PtrCst
}

func newPtrAssert(cst linear.PtrCst, dbg DebugInfo) *Stmt {
	s := &Stmt{code: PtrAssertCode, dbg: dbg}
	s.PtrAssert = PtrAssertStmt{Cst: cst}
	addPtrCstUses(&s.live, cst)
	return s
}

func addPtrCstUses(l *Live, cst linear.PtrCst) {
	if cst.IsTautology() || cst.IsContradiction() {
		return
	}
	l.addUse(cst.Lhs())
	if !cst.IsUnary() {
		l.addUse(cst.Rhs())
	}
}

/*
   Function calls
*/

// CallsiteStmt is (lhs...) = call func(args...).
type CallsiteStmt struct {
	Func string
	Lhs  []vars.Var
	Args []vars.Var
}

func newCallsite(fn string, lhs, args []vars.Var) *Stmt {
	s := &Stmt{code: CallsiteCode, dbg: NoDebug}
	s.Callsite = CallsiteStmt{
		Func: fn,
		Lhs:  addAll(nil, lhs),
		Args: addAll(nil, args),
	}
	for _, a := range s.Callsite.Args {
		s.live.addUse(a)
	}
	for _, l := range s.Callsite.Lhs {
		s.live.addDef(l)
	}
	return s
}

// NumArgs returns the number of actual parameters.
func (c CallsiteStmt) NumArgs() int { return len(c.Args) }

// Arg returns the idx-th actual parameter; fatal when out of bounds.
func (c CallsiteStmt) Arg(idx int) vars.Var {
	if idx < 0 || idx >= len(c.Args) {
		fatalf("out-of-bound access to call site parameter")
	}
	return c.Args[idx]
}

// ArgType returns the idx-th actual parameter's type; fatal when out of
// bounds.
func (c CallsiteStmt) ArgType(idx int) types.Type {
	if idx < 0 || idx >= len(c.Args) {
		fatalf("out-of-bound access to call site parameter")
	}
	return c.Args[idx].Type
}

// ReturnStmt returns the listed variables to the caller.
type ReturnStmt struct {
	Rets []vars.Var
}

func newReturn(rets []vars.Var) *Stmt {
	s := &Stmt{code: ReturnCode, dbg: NoDebug}
	s.Return = ReturnStmt{Rets: addAll(nil, rets)}
	for _, r := range s.Return.Rets {
		s.live.addUse(r)
	}
	return s
}

/*
   Boolean statements
*/

// BoolBinOpStmt is lhs = op1 and/or/xor op2 over booleans.
type BoolBinOpStmt struct {
	Lhs vars.Var
	Op  BoolOpKind
	Op1 vars.Var
	Op2 vars.Var
}

func newBoolBinOp(lhs vars.Var, op BoolOpKind, op1, op2 vars.Var, dbg DebugInfo) *Stmt {
	s := &Stmt{code: BoolBinOpCode, dbg: dbg}
	s.BoolBinOp = BoolBinOpStmt{Lhs: lhs, Op: op, Op1: op1, Op2: op2}
	s.live.addDef(lhs)
	s.live.addUse(op1)
	s.live.addUse(op2)
	return s
}

// BoolAssignCstStmt is lhs = (cst): the boolean lhs captures the truth of a
// linear constraint.
type BoolAssignCstStmt struct {
	Lhs vars.Var
	Rhs linear.Cst
}

func newBoolAssignCst(lhs vars.Var, rhs linear.Cst) *Stmt {
	s := &Stmt{code: BoolAssignCstCode, dbg: NoDebug}
	s.BoolAssignCst = BoolAssignCstStmt{Lhs: lhs, Rhs: rhs}
	s.live.addDef(lhs)
	s.live.addUseExprs(rhs.Vars()...)
	return s
}

// BoolAssignVarStmt is lhs = rhs or lhs = not(rhs). Assigning one boolean to
// another is common enough to deserve its own kind rather than a bin-op
// encoding.
type BoolAssignVarStmt struct {
	Lhs     vars.Var
	Rhs     vars.Var
	Negated bool
}

func newBoolAssignVar(lhs, rhs vars.Var, negated bool) *Stmt {
	s := &Stmt{code: BoolAssignVarCode, dbg: NoDebug}
	s.BoolAssignVar = BoolAssignVarStmt{Lhs: lhs, Rhs: rhs, Negated: negated}
	s.live.addDef(lhs)
	s.live.addUse(rhs)
	return s
}

// BoolAssumeStmt is assume(v) or assume(not(v)).
type BoolAssumeStmt struct {
	Var     vars.Var
	Negated bool
}

func newBoolAssume(v vars.Var, negated bool) *Stmt {
	s := &Stmt{code: BoolAssumeCode, dbg: NoDebug}
	s.BoolAssume = BoolAssumeStmt{Var: v, Negated: negated}
	s.live.addUse(v)
	return s
}

// BoolAssertStmt is assert(v).
type BoolAssertStmt struct {
	Var vars.Var
}

func newBoolAssert(v vars.Var, dbg DebugInfo) *Stmt {
	s := &Stmt{code: BoolAssertCode, dbg: dbg}
	s.BoolAssert = BoolAssertStmt{Var: v}
	s.live.addUse(v)
	return s
}

// BoolSelectStmt is lhs = ite(cond, left, right) over booleans.
type BoolSelectStmt struct {
	Lhs   vars.Var
	Cond  vars.Var
	Left  vars.Var
	Right vars.Var
}

func newBoolSelect(lhs, cond, left, right vars.Var) *Stmt {
	s := &Stmt{code: BoolSelectCode, dbg: NoDebug}
	s.BoolSelect = BoolSelectStmt{Lhs: lhs, Cond: cond, Left: left, Right: right}
	s.live.addDef(lhs)
	s.live.addUse(cond)
	s.live.addUse(left)
	s.live.addUse(right)
	return s
}
