// Package codec serializes CFGs into compact msgpack snapshots so front-end
// drivers can cache lowered functions between runs. A snapshot stores flat
// statement records; decoding replays them through the block builder
// surface, so live sets and structural checks are rebuilt from first
// principles rather than trusted from disk.
package codec

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"fathom/internal/ir"
	"fathom/internal/linear"
	"fathom/internal/types"
	"fathom/internal/vars"
)

// Schema version. Increment when the snapshot layout changes; decoding an
// unknown version fails instead of guessing.
const schemaVersion uint16 = 1

type varRec struct {
	Key  string
	Kind uint8
	Bits uint32
}

type termRec struct {
	Coef int64
	Var  varRec
}

type exprRec struct {
	Terms []termRec
	Const int64
}

type cstRec struct {
	E   exprRec
	Rel uint8
}

type ptrCstRec struct {
	Op uint8
	L  varRec
	R  varRec
}

type dbgRec struct {
	File string
	Line int
	Col  int
}

// stmtRec is one flat statement record. The operand slots are shared across
// kinds; the per-kind layout is fixed by encodeStmt and replayStmt.
type stmtRec struct {
	Code uint8
	Op   uint8
	V    []varRec
	E    []exprRec
	C    *cstRec
	P    *ptrCstRec
	Str  string
	U64  uint64
	Flag bool
	Lhs  []varRec
	Dbg  *dbgRec
}

type declRec struct {
	Name    string
	Inputs  []varRec
	Outputs []varRec
}

type blockRec struct {
	Label string
	Next  []string
	Stmts []stmtRec
}

type snapshot struct {
	Schema    uint16
	Entry     string
	Exit      string
	HasExit   bool
	Precision uint8
	Decl      *declRec
	Blocks    []blockRec
}

// Encode serializes the CFG.
func Encode(c *ir.CFG) ([]byte, error) {
	snap := snapshot{
		Schema:    schemaVersion,
		Entry:     string(c.Entry()),
		HasExit:   c.HasExit(),
		Precision: uint8(c.Precision()),
	}
	if c.HasExit() {
		snap.Exit = string(c.Exit())
	}
	if d := c.FuncDecl(); d != nil {
		snap.Decl = &declRec{
			Name:    d.Name(),
			Inputs:  encodeVars(d.Inputs()),
			Outputs: encodeVars(d.Outputs()),
		}
	}

	// Deterministic block order via DFS, then the leftovers (blocks not
	// reachable from the entry still belong to the snapshot).
	seen := make(map[ir.Label]bool)
	c.DFS(func(b *ir.Block) {
		seen[b.Label()] = true
		snap.Blocks = append(snap.Blocks, encodeBlock(b))
	})
	c.Blocks(func(b *ir.Block) bool {
		if !seen[b.Label()] {
			snap.Blocks = append(snap.Blocks, encodeBlock(b))
		}
		return true
	})

	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode rebuilds a CFG from a snapshot. Variable names are interned through
// the supplied factory, so decoding several snapshots into one factory keeps
// their variables distinct per key, exactly as a front-end run would.
func Decode(data []byte, f *vars.Factory) (c *ir.CFG, err error) {
	defer func() {
		if r := recover(); r != nil {
			if fault, ok := r.(*ir.Fault); ok {
				c, err = nil, fmt.Errorf("codec: corrupt snapshot: %w", fault)
				return
			}
			panic(r)
		}
	}()

	var snap snapshot
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return nil, err
	}
	if snap.Schema != schemaVersion {
		return nil, fmt.Errorf("codec: snapshot schema %d, want %d", snap.Schema, schemaVersion)
	}

	cfg := ir.NewCFG(ir.Label(snap.Entry), ir.Precision(snap.Precision))
	if snap.HasExit {
		cfg.SetExit(ir.Label(snap.Exit))
	}
	if snap.Decl != nil {
		cfg.SetFuncDecl(ir.NewFuncDecl(snap.Decl.Name,
			decodeVars(snap.Decl.Inputs, f),
			decodeVars(snap.Decl.Outputs, f)))
	}

	for _, br := range snap.Blocks {
		b := cfg.Insert(ir.Label(br.Label))
		for _, sr := range br.Stmts {
			replayStmt(b, sr, f)
		}
	}
	for _, br := range snap.Blocks {
		b := cfg.GetNode(ir.Label(br.Label))
		for _, n := range br.Next {
			b.AddEdge(cfg.Insert(ir.Label(n)))
		}
	}
	return cfg, nil
}

func encodeVars(vs []vars.Var) []varRec {
	out := make([]varRec, len(vs))
	for i, v := range vs {
		out[i] = encodeVar(v)
	}
	return out
}

func encodeVar(v vars.Var) varRec {
	return varRec{Key: v.Name.Key(), Kind: uint8(v.Type.Kind), Bits: uint32(v.Type.Bits)}
}

func decodeVars(rs []varRec, f *vars.Factory) []vars.Var {
	out := make([]vars.Var, len(rs))
	for i, r := range rs {
		out[i] = decodeVar(r, f)
	}
	return out
}

func decodeVar(r varRec, f *vars.Factory) vars.Var {
	ty := types.Type{Kind: types.Kind(r.Kind), Bits: types.Width(r.Bits)}
	return vars.New(f.Lookup(r.Key), ty)
}

func encodeExpr(e linear.Expr) exprRec {
	out := exprRec{Const: e.Const()}
	for _, t := range e.Terms() {
		out.Terms = append(out.Terms, termRec{Coef: t.Coef, Var: encodeVar(t.Var)})
	}
	return out
}

func decodeExpr(r exprRec, f *vars.Factory) linear.Expr {
	e := linear.K(r.Const)
	for _, t := range r.Terms {
		e = e.Plus(linear.Mul(t.Coef, decodeVar(t.Var, f)))
	}
	return e
}

func encodeCst(c linear.Cst) *cstRec {
	return &cstRec{E: encodeExpr(c.E), Rel: uint8(c.Rel)}
}

func decodeCst(r *cstRec, f *vars.Factory) linear.Cst {
	return linear.Cst{E: decodeExpr(r.E, f), Rel: linear.Rel(r.Rel)}
}

func encodePtrCst(c linear.PtrCst) *ptrCstRec {
	return &ptrCstRec{Op: uint8(c.Op), L: encodeVar(c.L), R: encodeVar(c.R)}
}

func decodePtrCst(r *ptrCstRec, f *vars.Factory) linear.PtrCst {
	return linear.PtrCst{Op: linear.PtrOp(r.Op), L: decodeVar(r.L, f), R: decodeVar(r.R, f)}
}

func encodeDbg(d ir.DebugInfo) *dbgRec {
	if !d.HasDebug() {
		return nil
	}
	return &dbgRec{File: d.File, Line: d.Line, Col: d.Col}
}

func decodeDbg(r *dbgRec) []ir.DebugInfo {
	if r == nil {
		return nil
	}
	return []ir.DebugInfo{{File: r.File, Line: r.Line, Col: r.Col}}
}
