package codec

import (
	"fathom/internal/ir"
	"fathom/internal/vars"
)

func encodeBlock(b *ir.Block) blockRec {
	out := blockRec{Label: b.Name()}
	for _, n := range b.Next() {
		out.Next = append(out.Next, string(n))
	}
	for _, s := range b.Stmts() {
		out.Stmts = append(out.Stmts, encodeStmt(s))
	}
	return out
}

// encodeStmt flattens one statement. The V/E slot layout per kind is the
// mirror of replayStmt below.
func encodeStmt(s *ir.Stmt) stmtRec {
	r := stmtRec{Code: uint8(s.Code()), Dbg: encodeDbg(s.Debug())}
	switch s.Code() {
	case ir.BinOpCode:
		p := s.BinOp
		r.Op = uint8(p.Op)
		r.V = []varRec{encodeVar(p.Lhs)}
		r.E = []exprRec{encodeExpr(p.Op1), encodeExpr(p.Op2)}
	case ir.AssignCode:
		p := s.Assign
		r.V = []varRec{encodeVar(p.Lhs)}
		r.E = []exprRec{encodeExpr(p.Rhs)}
	case ir.AssumeCode:
		r.C = encodeCst(s.Assume.Cst)
	case ir.AssertCode:
		r.C = encodeCst(s.Assert.Cst)
	case ir.SelectCode:
		p := s.Select
		r.V = []varRec{encodeVar(p.Lhs)}
		r.C = encodeCst(p.Cond)
		r.E = []exprRec{encodeExpr(p.Left), encodeExpr(p.Right)}
	case ir.UnreachCode:
	case ir.HavocCode:
		r.V = []varRec{encodeVar(s.Havoc.Lhs)}
	case ir.IntCastCode:
		p := s.IntCast
		r.Op = uint8(p.Op)
		r.V = []varRec{encodeVar(p.Src), encodeVar(p.Dst)}
	case ir.ArrInitCode, ir.ArrAssumeCode:
		p := s.ArrInit
		if s.Code() == ir.ArrAssumeCode {
			p = s.ArrAssume
		}
		r.V = []varRec{encodeVar(p.Arr)}
		r.U64 = p.ElemSize
		r.E = []exprRec{encodeExpr(p.Lb), encodeExpr(p.Ub), encodeExpr(p.Val)}
	case ir.ArrStoreCode:
		p := s.ArrStore
		r.V = []varRec{encodeVar(p.Arr)}
		r.E = []exprRec{encodeExpr(p.Index), encodeExpr(p.Value)}
		r.U64 = p.ElemSize
		r.Flag = p.Singleton
	case ir.ArrLoadCode:
		p := s.ArrLoad
		r.V = []varRec{encodeVar(p.Lhs), encodeVar(p.Arr)}
		r.E = []exprRec{encodeExpr(p.Index)}
		r.U64 = p.ElemSize
	case ir.ArrAssignCode:
		p := s.ArrAssign
		r.V = []varRec{encodeVar(p.Lhs), encodeVar(p.Rhs)}
	case ir.PtrLoadCode:
		p := s.PtrLoad
		r.V = []varRec{encodeVar(p.Lhs), encodeVar(p.Rhs)}
	case ir.PtrStoreCode:
		p := s.PtrStore
		r.V = []varRec{encodeVar(p.Lhs), encodeVar(p.Rhs)}
	case ir.PtrAssignCode:
		p := s.PtrAssign
		r.V = []varRec{encodeVar(p.Lhs), encodeVar(p.Rhs)}
		r.E = []exprRec{encodeExpr(p.Offset)}
	case ir.PtrObjectCode:
		p := s.PtrObject
		r.V = []varRec{encodeVar(p.Lhs)}
		r.U64 = p.Address
	case ir.PtrFunctionCode:
		p := s.PtrFunction
		r.V = []varRec{encodeVar(p.Lhs)}
		r.Str = p.Func
	case ir.PtrNullCode:
		r.V = []varRec{encodeVar(s.PtrNull.Lhs)}
	case ir.PtrAssumeCode:
		r.P = encodePtrCst(s.PtrAssume.Cst)
	case ir.PtrAssertCode:
		r.P = encodePtrCst(s.PtrAssert.Cst)
	case ir.CallsiteCode:
		p := s.Callsite
		r.Str = p.Func
		r.Lhs = encodeVars(p.Lhs)
		r.V = encodeVars(p.Args)
	case ir.ReturnCode:
		r.V = encodeVars(s.Return.Rets)
	case ir.BoolBinOpCode:
		p := s.BoolBinOp
		r.Op = uint8(p.Op)
		r.V = []varRec{encodeVar(p.Lhs), encodeVar(p.Op1), encodeVar(p.Op2)}
	case ir.BoolAssignCstCode:
		p := s.BoolAssignCst
		r.V = []varRec{encodeVar(p.Lhs)}
		r.C = encodeCst(p.Rhs)
	case ir.BoolAssignVarCode:
		p := s.BoolAssignVar
		r.V = []varRec{encodeVar(p.Lhs), encodeVar(p.Rhs)}
		r.Flag = p.Negated
	case ir.BoolAssumeCode:
		p := s.BoolAssume
		r.V = []varRec{encodeVar(p.Var)}
		r.Flag = p.Negated
	case ir.BoolAssertCode:
		r.V = []varRec{encodeVar(s.BoolAssert.Var)}
	case ir.BoolSelectCode:
		p := s.BoolSelect
		r.V = []varRec{encodeVar(p.Lhs), encodeVar(p.Cond), encodeVar(p.Left), encodeVar(p.Right)}
	}
	return r
}

// replayStmt rebuilds one statement through the block builder surface.
func replayStmt(b *ir.Block, r stmtRec, f *vars.Factory) {
	v := func(i int) vars.Var { return decodeVar(r.V[i], f) }

	switch ir.Code(r.Code) {
	case ir.BinOpCode:
		b.BinOp(v(0), ir.BinOpKind(r.Op), decodeExpr(r.E[0], f), decodeExpr(r.E[1], f), decodeDbg(r.Dbg)...)
	case ir.AssignCode:
		b.Assign(v(0), decodeExpr(r.E[0], f))
	case ir.AssumeCode:
		b.Assume(decodeCst(r.C, f))
	case ir.AssertCode:
		b.Assertion(decodeCst(r.C, f), decodeDbg(r.Dbg)...)
	case ir.SelectCode:
		b.Select(v(0), decodeCst(r.C, f), decodeExpr(r.E[0], f), decodeExpr(r.E[1], f))
	case ir.UnreachCode:
		b.Unreachable()
	case ir.HavocCode:
		b.Havoc(v(0))
	case ir.IntCastCode:
		switch ir.CastOp(r.Op) {
		case ir.CastTrunc:
			b.Truncate(v(0), v(1), decodeDbg(r.Dbg)...)
		case ir.CastSExt:
			b.SExt(v(0), v(1), decodeDbg(r.Dbg)...)
		case ir.CastZExt:
			b.ZExt(v(0), v(1), decodeDbg(r.Dbg)...)
		}
	case ir.ArrInitCode:
		b.ArrayInit(v(0), r.U64, decodeExpr(r.E[0], f), decodeExpr(r.E[1], f), decodeExpr(r.E[2], f))
	case ir.ArrAssumeCode:
		b.ArrayAssume(v(0), r.U64, decodeExpr(r.E[0], f), decodeExpr(r.E[1], f), decodeExpr(r.E[2], f))
	case ir.ArrStoreCode:
		b.ArrayStore(v(0), decodeExpr(r.E[0], f), decodeExpr(r.E[1], f), r.U64, r.Flag)
	case ir.ArrLoadCode:
		b.ArrayLoad(v(0), v(1), decodeExpr(r.E[0], f), r.U64)
	case ir.ArrAssignCode:
		b.ArrayAssign(v(0), v(1))
	case ir.PtrLoadCode:
		b.PtrLoad(v(0), v(1), decodeDbg(r.Dbg)...)
	case ir.PtrStoreCode:
		b.PtrStore(v(0), v(1), decodeDbg(r.Dbg)...)
	case ir.PtrAssignCode:
		b.PtrAssign(v(0), v(1), decodeExpr(r.E[0], f))
	case ir.PtrObjectCode:
		b.PtrNewObject(v(0), r.U64)
	case ir.PtrFunctionCode:
		b.PtrNewFunc(v(0), r.Str)
	case ir.PtrNullCode:
		b.PtrNull(v(0))
	case ir.PtrAssumeCode:
		b.PtrAssume(decodePtrCst(r.P, f))
	case ir.PtrAssertCode:
		b.PtrAssertion(decodePtrCst(r.P, f), decodeDbg(r.Dbg)...)
	case ir.CallsiteCode:
		b.Callsite(r.Str, decodeVars(r.Lhs, f), decodeVars(r.V, f))
	case ir.ReturnCode:
		b.RetVals(decodeVars(r.V, f))
	case ir.BoolBinOpCode:
		b.BoolBinOpAt(v(0), ir.BoolOpKind(r.Op), v(1), v(2), decodeDbg(r.Dbg)...)
	case ir.BoolAssignCstCode:
		b.BoolAssignCst(v(0), decodeCst(r.C, f))
	case ir.BoolAssignVarCode:
		b.BoolAssign(v(0), v(1), r.Flag)
	case ir.BoolAssumeCode:
		if r.Flag {
			b.BoolNotAssume(v(0))
		} else {
			b.BoolAssume(v(0))
		}
	case ir.BoolAssertCode:
		b.BoolAssert(v(0), decodeDbg(r.Dbg)...)
	case ir.BoolSelectCode:
		b.BoolSelect(v(0), v(1), v(2), v(3))
	}
}
