package ir

import (
	"fmt"
	"strings"

	"fathom/internal/vars"
)

// FuncDecl attaches a function signature to a CFG: a name plus disjoint
// input and output parameter lists. Interprocedural analyses need the
// disjointness to build meaningful input-output relations, so overlap is a
// construction error.
type FuncDecl struct {
	name    string
	inputs  []vars.Var
	outputs []vars.Var
}

// NewFuncDecl builds a declaration; fatal when inputs and outputs overlap.
func NewFuncDecl(name string, inputs, outputs []vars.Var) *FuncDecl {
	seen := make(map[vars.Index]struct{}, len(inputs)+len(outputs))
	for _, v := range inputs {
		seen[v.Name.Index()] = struct{}{}
	}
	for _, v := range outputs {
		seen[v.Name.Index()] = struct{}{}
	}
	if len(seen) != len(inputs)+len(outputs) {
		fatalf("interprocedural analysis requires that for each function its set of inputs and outputs must be disjoint")
	}
	return &FuncDecl{
		name:    name,
		inputs:  append([]vars.Var(nil), inputs...),
		outputs: append([]vars.Var(nil), outputs...),
	}
}

// Name returns the function name.
func (d *FuncDecl) Name() string { return d.name }

// Inputs returns the input parameters.
func (d *FuncDecl) Inputs() []vars.Var { return d.inputs }

// Outputs returns the output parameters.
func (d *FuncDecl) Outputs() []vars.Var { return d.outputs }

// NumInputs returns the input count.
func (d *FuncDecl) NumInputs() int { return len(d.inputs) }

// NumOutputs returns the output count.
func (d *FuncDecl) NumOutputs() int { return len(d.outputs) }

// Input returns the idx-th input; fatal out of bounds.
func (d *FuncDecl) Input(idx int) vars.Var {
	if idx < 0 || idx >= len(d.inputs) {
		fatalf("out-of-bound access to function input parameter")
	}
	return d.inputs[idx]
}

// Output returns the idx-th output; fatal out of bounds.
func (d *FuncDecl) Output(idx int) vars.Var {
	if idx < 0 || idx >= len(d.outputs) {
		fatalf("out-of-bound access to function output parameter")
	}
	return d.outputs[idx]
}

// String renders "(outputs) declare name(inputs)" with each variable as
// name:type. Zero outputs render as void, a single output without parens.
func (d *FuncDecl) String() string {
	var sb strings.Builder
	switch len(d.outputs) {
	case 0:
		sb.WriteString("void")
	case 1:
		o := d.outputs[0]
		fmt.Fprintf(&sb, "%s:%s", o, o.Type)
	default:
		fmt.Fprintf(&sb, "(%s)", formatVarList(d.outputs))
	}
	fmt.Fprintf(&sb, " declare %s(%s)", d.name, formatVarList(d.inputs))
	return sb.String()
}
