package types

import "fmt"

// Kind enumerates the ground types of the flat lattice. Only variables are
// typed; constants take their type from the surrounding context. The lattice
// has no subtyping: two types are related only when identical.
type Kind uint8

const (
	KindUndef Kind = iota
	KindBool
	KindInt
	KindReal
	KindPtr
	KindRef
	KindArrBool
	KindArrInt
	KindArrReal
	KindArrPtr
)

func (k Kind) String() string {
	switch k {
	case KindUndef:
		return "undef"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindPtr:
		return "ptr"
	case KindRef:
		return "ref"
	case KindArrBool:
		return "arr_bool"
	case KindArrInt:
		return "arr_int"
	case KindArrReal:
		return "arr_real"
	case KindArrPtr:
		return "arr_ptr"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsArray reports whether the kind is one of the array variants.
func (k Kind) IsArray() bool {
	return k >= KindArrBool && k <= KindArrPtr
}

// IsNumeric reports whether the kind can appear in linear arithmetic.
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindReal
}

// Elem returns the element kind of an array kind, KindUndef otherwise.
func (k Kind) Elem() Kind {
	switch k {
	case KindArrBool:
		return KindBool
	case KindArrInt:
		return KindInt
	case KindArrReal:
		return KindReal
	case KindArrPtr:
		return KindPtr
	default:
		return KindUndef
	}
}

// Width is a bit-width. Booleans are always width 1, integers wider than 1.
// Reals, pointers, references and arrays carry no width.
type Width uint32

// Type is a compact descriptor for any type in the lattice.
type Type struct {
	Kind Kind
	Bits Width
}

func (t Type) String() string {
	return t.Kind.String()
}

// Descriptor helpers.

// Bool describes the boolean type (width fixed at 1).
func Bool() Type { return Type{Kind: KindBool, Bits: 1} }

// Int describes a signed integer of the given width.
func Int(bits Width) Type { return Type{Kind: KindInt, Bits: bits} }

// Real describes the mathematical real type.
func Real() Type { return Type{Kind: KindReal} }

// Ptr describes a C-like pointer.
func Ptr() Type { return Type{Kind: KindPtr} }

// Ref describes a reference.
func Ref() Type { return Type{Kind: KindRef} }

// Array describes the uni-dimensional array of the given element kind.
// Arrays are opaque: they are identified by element kind only.
func Array(elem Kind) Type {
	switch elem {
	case KindBool:
		return Type{Kind: KindArrBool}
	case KindInt:
		return Type{Kind: KindArrInt}
	case KindReal:
		return Type{Kind: KindArrReal}
	case KindPtr:
		return Type{Kind: KindArrPtr}
	default:
		return Type{Kind: KindUndef}
	}
}

// Same reports whether two types have identical tags.
func Same(a, b Type) bool {
	return a.Kind == b.Kind
}

// SameWidth reports whether a and b agree on bit-width. Only integers and
// booleans carry a width, so any other kind trivially agrees.
func SameWidth(a, b Type) bool {
	if a.Kind == KindInt || a.Kind == KindBool {
		return a.Bits == b.Bits
	}
	return true
}
