package ir

// Visitor dispatches on statement kinds. Each hook is optional; a nil hook
// is a no-op, so a visitor declares only the kinds it cares about. Hooks
// receive the full statement and read the payload matching their kind.
type Visitor struct {
	BinOp         func(*Stmt)
	Assign        func(*Stmt)
	Assume        func(*Stmt)
	Assert        func(*Stmt)
	Select        func(*Stmt)
	Unreachable   func(*Stmt)
	Havoc         func(*Stmt)
	IntCast       func(*Stmt)
	ArrInit       func(*Stmt)
	ArrAssume     func(*Stmt)
	ArrStore      func(*Stmt)
	ArrLoad       func(*Stmt)
	ArrAssign     func(*Stmt)
	PtrLoad       func(*Stmt)
	PtrStore      func(*Stmt)
	PtrAssign     func(*Stmt)
	PtrObject     func(*Stmt)
	PtrFunction   func(*Stmt)
	PtrNull       func(*Stmt)
	PtrAssume     func(*Stmt)
	PtrAssert     func(*Stmt)
	Callsite      func(*Stmt)
	Return        func(*Stmt)
	BoolBinOp     func(*Stmt)
	BoolAssignCst func(*Stmt)
	BoolAssignVar func(*Stmt)
	BoolAssume    func(*Stmt)
	BoolAssert    func(*Stmt)
	BoolSelect    func(*Stmt)
}

// Accept dispatches the statement to the visitor hook for its kind.
func (s *Stmt) Accept(v *Visitor) {
	var hook func(*Stmt)
	switch s.code {
	case BinOpCode:
		hook = v.BinOp
	case AssignCode:
		hook = v.Assign
	case AssumeCode:
		hook = v.Assume
	case AssertCode:
		hook = v.Assert
	case SelectCode:
		hook = v.Select
	case UnreachCode:
		hook = v.Unreachable
	case HavocCode:
		hook = v.Havoc
	case IntCastCode:
		hook = v.IntCast
	case ArrInitCode:
		hook = v.ArrInit
	case ArrAssumeCode:
		hook = v.ArrAssume
	case ArrStoreCode:
		hook = v.ArrStore
	case ArrLoadCode:
		hook = v.ArrLoad
	case ArrAssignCode:
		hook = v.ArrAssign
	case PtrLoadCode:
		hook = v.PtrLoad
	case PtrStoreCode:
		hook = v.PtrStore
	case PtrAssignCode:
		hook = v.PtrAssign
	case PtrObjectCode:
		hook = v.PtrObject
	case PtrFunctionCode:
		hook = v.PtrFunction
	case PtrNullCode:
		hook = v.PtrNull
	case PtrAssumeCode:
		hook = v.PtrAssume
	case PtrAssertCode:
		hook = v.PtrAssert
	case CallsiteCode:
		hook = v.Callsite
	case ReturnCode:
		hook = v.Return
	case BoolBinOpCode:
		hook = v.BoolBinOp
	case BoolAssignCstCode:
		hook = v.BoolAssignCst
	case BoolAssignVarCode:
		hook = v.BoolAssignVar
	case BoolAssumeCode:
		hook = v.BoolAssume
	case BoolAssertCode:
		hook = v.BoolAssert
	case BoolSelectCode:
		hook = v.BoolSelect
	}
	if hook != nil {
		hook(s)
	}
}

// VisitBlock runs the visitor over the block's statements in order.
func (v *Visitor) VisitBlock(b *Block) {
	for _, s := range b.stmts {
		s.Accept(v)
	}
}

// VisitRevBlock runs the visitor over a reversed block's statements, i.e. in
// reverse order.
func (v *Visitor) VisitRevBlock(b *RevBlock) {
	for i := len(b.bb.stmts) - 1; i >= 0; i-- {
		b.bb.stmts[i].Accept(v)
	}
}
