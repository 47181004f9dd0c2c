package ast

import (
	"uxncle/cerr"
	"uxncle/types"
)

// MaxLocals is the fixed capacity of a single scope's variable list.
const MaxLocals = 128

// MaxScopes is the fixed capacity of the active scope stack.
const MaxScopes = 32

// Variable records one declared name: its type and its address within
// the scope arena, expressed as (ScopeIdx, SlotIdx) rather than a
// pointer, so AST nodes referring to it survive the arena being copied
// or walked independently of tree layout.
type Variable struct {
	Name     string
	Type     types.Primitive
	ScopeIdx int
	SlotIdx  int
}

// Scope is a lexical region holding up to MaxLocals variables. Index
// is its position in the active scope stack at the time it was
// pushed; it never changes afterward, even once the scope is popped,
// so Var nodes created while it was active keep resolving correctly.
type Scope struct {
	Index  int
	Vars   [MaxLocals]Variable
	Count  int
	Parent *Scope
}

// NewScope allocates a scope at the given stack index with the given
// enclosing scope (nil for the root).
func NewScope(index int, parent *Scope) *Scope {
	return &Scope{Index: index, Parent: parent}
}

// Declare adds name to s. It fails if name already exists in s (but
// not if it merely shadows an outer scope's variable) or if s is
// already at MaxLocals.
func (s *Scope) Declare(name string, typ types.Primitive) (*Variable, error) {
	for i := 0; i < s.Count; i++ {
		if s.Vars[i].Name == name {
			return nil, cerr.New(cerr.Parse, 0, name, "redeclaration of %q in the same scope", name)
		}
	}
	if s.Count >= MaxLocals {
		return nil, cerr.New(cerr.Parse, 0, name, "scope exceeds maximum of %d locals", MaxLocals)
	}
	s.Vars[s.Count] = Variable{Name: name, Type: typ, ScopeIdx: s.Index, SlotIdx: s.Count}
	v := &s.Vars[s.Count]
	s.Count++
	return v, nil
}

// Resolve walks from s outward through parent scopes looking for name,
// innermost match wins.
func (s *Scope) Resolve(name string) (*Variable, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		for i := 0; i < sc.Count; i++ {
			if sc.Vars[i].Name == name {
				return &sc.Vars[i], true
			}
		}
	}
	return nil, false
}

// Size returns the total byte size of every variable declared in s.
func (s *Scope) Size() int {
	n := 0
	for i := 0; i < s.Count; i++ {
		n += s.Vars[i].Type.Size()
	}
	return n
}

// At returns the variable at slot within s, or ok=false if slot is out
// of range. Used by the code generator when it only has a slot index
// on hand (e.g. from a Var or DeclVar node), not a live *Variable.
func (s *Scope) At(slot int) (*Variable, bool) {
	if slot < 0 || slot >= s.Count {
		return nil, false
	}
	return &s.Vars[slot], true
}
