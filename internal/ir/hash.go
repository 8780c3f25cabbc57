package ir

import (
	"encoding/binary"
	"errors"
	"hash"
	"hash/fnv"

	"fathom/internal/vars"
)

// ErrNoFuncDecl is returned when hashing a CFG that carries no function
// declaration: the signature is the hash key, so there is nothing to hash.
var ErrNoFuncDecl = errors.New("cannot hash a cfg because function declaration is missing")

func hashTypes(h hash.Hash64, vs []vars.Var) {
	var buf [8]byte
	for _, v := range vs {
		buf[0] = byte(v.Type.Kind)
		binary.LittleEndian.PutUint32(buf[1:5], uint32(v.Type.Bits))
		h.Write(buf[:5])
	}
}

// HashSignature hashes a declaration's ABI: the function name and the input
// and output parameter types. Two CFGs with the same signature hash equal.
func HashSignature(d *FuncDecl) uint64 {
	h := fnv.New64a()
	h.Write([]byte(d.name))
	hashTypes(h, d.inputs)
	hashTypes(h, d.outputs)
	return h.Sum64()
}

// HashCallsite hashes a call site the same way declarations are hashed, so
// call sites can be matched against candidate callees by ABI: the arguments
// take the place of the inputs and the lhs variables that of the outputs.
func HashCallsite(c CallsiteStmt) uint64 {
	h := fnv.New64a()
	h.Write([]byte(c.Func))
	hashTypes(h, c.Args)
	hashTypes(h, c.Lhs)
	return h.Sum64()
}

// Hash returns the signature hash of the attached declaration, or
// ErrNoFuncDecl when the CFG has none.
func (c *CFG) Hash() (uint64, error) {
	if c.decl == nil {
		return 0, ErrNoFuncDecl
	}
	return HashSignature(c.decl), nil
}
