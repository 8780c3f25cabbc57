// Package ir implements the typed statement algebra, basic blocks and
// control-flow graphs consumed by the analysis layers, together with CFG
// simplification, the reversed view used by backward analyses and the type
// checker.
package ir

import "fmt"

// Fault is the error kind raised for IR-layer violations: ill-formed
// statement payloads, unknown labels, broken view preconditions and type
// errors. These are front-end or analyzer bugs, not recoverable conditions,
// so every raise is a panic; the only recovery points are TypeCheck,
// codec.Decode (which reports a faulting snapshot as corrupt) and the
// process boundary.
type Fault struct {
	Msg string
}

func (f *Fault) Error() string { return f.Msg }

func fatalf(format string, args ...any) {
	panic(&Fault{Msg: fmt.Sprintf(format, args...)})
}
