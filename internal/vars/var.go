package vars

import "fathom/internal/types"

// Var pairs an indexed name with a type. Value semantics; equality is
// structural. For int and bool variables the type carries the bit-width.
type Var struct {
	Name Name
	Type types.Type
}

// New returns a typed variable.
func New(name Name, ty types.Type) Var {
	return Var{Name: name, Type: ty}
}

// Bool returns a boolean variable (bit-width 1).
func Bool(name Name) Var {
	return Var{Name: name, Type: types.Bool()}
}

// Int returns an integer variable of the given bit-width.
func Int(name Name, bits types.Width) Var {
	return Var{Name: name, Type: types.Int(bits)}
}

// Real returns a real-typed variable.
func Real(name Name) Var {
	return Var{Name: name, Type: types.Real()}
}

// Ptr returns a pointer variable.
func Ptr(name Name) Var {
	return Var{Name: name, Type: types.Ptr()}
}

// Array returns an array variable of the given element kind.
func Array(name Name, elem types.Kind) Var {
	return Var{Name: name, Type: types.Array(elem)}
}

// Bits returns the variable's bit-width (0 for widthless kinds).
func (v Var) Bits() types.Width { return v.Type.Bits }

// Kind returns the variable's type kind.
func (v Var) Kind() types.Kind { return v.Type.Kind }

func (v Var) String() string { return v.Name.String() }

// Equal reports structural equality.
func (v Var) Equal(o Var) bool {
	return v.Name.Equal(o.Name) && v.Type == o.Type
}
