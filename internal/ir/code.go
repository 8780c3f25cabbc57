package ir

import "fmt"

// Code tags a statement kind. The numeric values are stable: front-ends and
// visitors switch on them and serialized snapshots store them.
type Code uint8

const (
	Undef Code = 0

	// numerical
	BinOpCode   Code = 20
	AssignCode  Code = 21
	AssumeCode  Code = 22
	UnreachCode Code = 23
	SelectCode  Code = 24
	AssertCode  Code = 25

	// arrays
	ArrInitCode   Code = 30
	ArrAssumeCode Code = 31
	ArrStoreCode  Code = 32
	ArrLoadCode   Code = 33
	ArrAssignCode Code = 34

	// pointers
	PtrLoadCode     Code = 40
	PtrStoreCode    Code = 41
	PtrAssignCode   Code = 42
	PtrObjectCode   Code = 43
	PtrFunctionCode Code = 44
	PtrNullCode     Code = 45
	PtrAssumeCode   Code = 46
	PtrAssertCode   Code = 47

	// function calls
	CallsiteCode Code = 50
	ReturnCode   Code = 51

	// integers/arrays/pointers/booleans
	HavocCode Code = 60

	// booleans
	BoolBinOpCode     Code = 70
	BoolAssignCstCode Code = 71
	BoolAssignVarCode Code = 72
	BoolAssumeCode    Code = 73
	BoolSelectCode    Code = 74
	BoolAssertCode    Code = 75

	// casts
	IntCastCode Code = 80
)

func (c Code) String() string {
	switch c {
	case Undef:
		return "undef"
	case BinOpCode:
		return "bin_op"
	case AssignCode:
		return "assign"
	case AssumeCode:
		return "assume"
	case UnreachCode:
		return "unreachable"
	case SelectCode:
		return "select"
	case AssertCode:
		return "assert"
	case ArrInitCode:
		return "array_init"
	case ArrAssumeCode:
		return "array_assume"
	case ArrStoreCode:
		return "array_store"
	case ArrLoadCode:
		return "array_load"
	case ArrAssignCode:
		return "array_assign"
	case PtrLoadCode:
		return "ptr_load"
	case PtrStoreCode:
		return "ptr_store"
	case PtrAssignCode:
		return "ptr_assign"
	case PtrObjectCode:
		return "ptr_object"
	case PtrFunctionCode:
		return "ptr_function"
	case PtrNullCode:
		return "ptr_null"
	case PtrAssumeCode:
		return "ptr_assume"
	case PtrAssertCode:
		return "ptr_assert"
	case CallsiteCode:
		return "callsite"
	case ReturnCode:
		return "return"
	case HavocCode:
		return "havoc"
	case BoolBinOpCode:
		return "bool_bin_op"
	case BoolAssignCstCode:
		return "bool_assign_cst"
	case BoolAssignVarCode:
		return "bool_assign_var"
	case BoolAssumeCode:
		return "bool_assume"
	case BoolSelectCode:
		return "bool_select"
	case BoolAssertCode:
		return "bool_assert"
	case IntCastCode:
		return "int_cast"
	default:
		return fmt.Sprintf("Code(%d)", uint8(c))
	}
}

// BinOpKind is an arithmetic or bitwise operator.
type BinOpKind uint8

const (
	OpAdd BinOpKind = iota
	OpSub
	OpMul
	OpSDiv
	OpUDiv
	OpSRem
	OpURem
	OpAnd
	OpOr
	OpXor
)

func (op BinOpKind) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpSDiv:
		return "/"
	case OpUDiv:
		return "/_u"
	case OpSRem:
		return "%"
	case OpURem:
		return "%_u"
	case OpAnd:
		return "&"
	case OpOr:
		return "|"
	case OpXor:
		return "^"
	default:
		return fmt.Sprintf("BinOpKind(%d)", op)
	}
}

// BoolOpKind is a boolean binary operator.
type BoolOpKind uint8

const (
	BoolAnd BoolOpKind = iota
	BoolOr
	BoolXor
)

func (op BoolOpKind) String() string {
	switch op {
	case BoolAnd:
		return "&"
	case BoolOr:
		return "|"
	case BoolXor:
		return "^"
	default:
		return fmt.Sprintf("BoolOpKind(%d)", op)
	}
}

// CastOp is an integer cast operator.
type CastOp uint8

const (
	CastTrunc CastOp = iota
	CastSExt
	CastZExt
)

func (op CastOp) String() string {
	switch op {
	case CastTrunc:
		return "trunc"
	case CastSExt:
		return "sext"
	case CastZExt:
		return "zext"
	default:
		return fmt.Sprintf("CastOp(%d)", op)
	}
}

// Precision is the front-end's declared analysis fidelity. Pointer and array
// builder methods are no-ops on blocks whose precision is below the floor the
// statement kind requires.
type Precision uint8

const (
	Num Precision = iota
	Ptr
	Arr
)

func (p Precision) String() string {
	switch p {
	case Num:
		return "num"
	case Ptr:
		return "ptr"
	case Arr:
		return "arr"
	default:
		return fmt.Sprintf("Precision(%d)", p)
	}
}
