package ir

import (
	"fmt"
	"strings"

	"fathom/internal/vars"
)

// Live is a statement's liveness contribution: the variables it reads and the
// variables it writes. Both sequences preserve insertion order and suppress
// duplicates; membership is decided by name index.
type Live struct {
	uses []vars.Var
	defs []vars.Var
}

func addVar(s []vars.Var, v vars.Var) []vars.Var {
	for _, have := range s {
		if have.Name.Equal(v.Name) {
			return s
		}
	}
	return append(s, v)
}

func (l *Live) addUse(v vars.Var) { l.uses = addVar(l.uses, v) }
func (l *Live) addDef(v vars.Var) { l.defs = addVar(l.defs, v) }

func (l *Live) addUseExprs(vs ...vars.Var) {
	for _, v := range vs {
		l.addUse(v)
	}
}

// Uses returns the read set in insertion order.
func (l Live) Uses() []vars.Var { return l.uses }

// Defs returns the write set in insertion order.
func (l Live) Defs() []vars.Var { return l.defs }

func (l Live) String() string {
	var sb strings.Builder
	sb.WriteString("Use={")
	for _, v := range l.uses {
		fmt.Fprintf(&sb, "%s,", v)
	}
	sb.WriteString("} Def={")
	for _, v := range l.defs {
		fmt.Fprintf(&sb, "%s,", v)
	}
	sb.WriteString("}")
	return sb.String()
}

// VarSet is an insertion-ordered set of variables keyed by name index. Blocks
// aggregate their statements' live sets into one.
type VarSet struct {
	seen  map[vars.Index]struct{}
	order []vars.Var
}

// Add inserts v unless a variable with the same name is already present.
func (s *VarSet) Add(v vars.Var) {
	if s.seen == nil {
		s.seen = make(map[vars.Index]struct{})
	}
	if _, ok := s.seen[v.Name.Index()]; ok {
		return
	}
	s.seen[v.Name.Index()] = struct{}{}
	s.order = append(s.order, v)
}

// AddLive folds a statement's uses and defs into the set.
func (s *VarSet) AddLive(l Live) {
	for _, v := range l.uses {
		s.Add(v)
	}
	for _, v := range l.defs {
		s.Add(v)
	}
}

// Union folds another set into this one.
func (s *VarSet) Union(o VarSet) {
	for _, v := range o.order {
		s.Add(v)
	}
}

// Vars returns the members in insertion order.
func (s VarSet) Vars() []vars.Var {
	out := make([]vars.Var, len(s.order))
	copy(out, s.order)
	return out
}

// Contains reports membership by name.
func (s VarSet) Contains(n vars.Name) bool {
	_, ok := s.seen[n.Index()]
	return ok
}

// Len returns the set size.
func (s VarSet) Len() int { return len(s.order) }

func (s VarSet) clone() VarSet {
	var out VarSet
	out.Union(s)
	return out
}
