// Package scope resolves the bindings of a parsed program. It builds an
// arena of lexical scopes, enforces the static redeclaration rules, and
// marks bindings that are captured by nested functions so a downstream
// compiler can pick frame-local or heap storage per binding.
package scope

import (
	"fmt"
	"sort"

	"github.com/NickTomlin/boa/errors"
	"github.com/NickTomlin/boa/interner"
	"github.com/NickTomlin/boa/token"
)

// Kind classifies a scope.
type Kind int

const (
	Global Kind = iota
	Function
	Block
)

func (k Kind) String() string {
	switch k {
	case Global:
		return "global"
	case Function:
		return "function"
	default:
		return "block"
	}
}

// BindKind classifies how a name was introduced.
type BindKind int

const (
	BindVar BindKind = iota
	BindLet
	BindConst
	BindFunction
	BindParam
	BindCatch
	BindClass
)

func (k BindKind) String() string {
	switch k {
	case BindVar:
		return "var"
	case BindLet:
		return "let"
	case BindConst:
		return "const"
	case BindFunction:
		return "function"
	case BindParam:
		return "param"
	case BindCatch:
		return "catch"
	default:
		return "class"
	}
}

// Binding is one declared name within a scope.
type Binding struct {
	Name string
	Sym  interner.Symbol
	Kind BindKind
	Pos  token.Position

	// Captured is true when the binding is referenced from a function
	// nested inside the one that declares it, or when dynamic evaluation
	// may reach it. Captured bindings need storage that outlives the
	// declaring call frame.
	Captured bool
}

// lexical reports whether the binding refuses to share its name with any
// other binding in the same scope.
func (b *Binding) lexical() bool {
	switch b.Kind {
	case BindLet, BindConst, BindClass, BindCatch:
		return true
	}
	return false
}

// Scope is one node of the scope tree.
type Scope struct {
	Parent int // arena index of the parent; -1 for the root
	Kind   Kind

	// FuncBody marks the scope holding a function's top-level body
	// declarations, directly inside the scope holding its parameters.
	FuncBody bool

	Bindings map[interner.Symbol]*Binding

	// fn is the arena index of the parameter scope of the function this
	// scope belongs to (the root index for top-level code).
	fn int
}

// Lookup returns the binding for a symbol declared directly in this scope.
func (s *Scope) Lookup(sym interner.Symbol) *Binding {
	return s.Bindings[sym]
}

// SortedBindings returns the scope's bindings ordered by name.
func (s *Scope) SortedBindings() []*Binding {
	out := make([]*Binding, 0, len(s.Bindings))
	for _, b := range s.Bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Tree is the scope arena for one analyzed program. Scopes are stored in
// an append-only slice and refer to each other by integer index, so the
// tree has no pointer cycles and indices stay valid for its lifetime.
type Tree struct {
	scopes []*Scope
}

// add appends a scope and returns its index. The new scope belongs to the
// same function as its parent unless the caller reassigns fn.
func (t *Tree) add(parent int, kind Kind) int {
	s := &Scope{
		Parent:   parent,
		Kind:     kind,
		Bindings: map[interner.Symbol]*Binding{},
	}
	if parent >= 0 {
		s.fn = t.scopes[parent].fn
	}
	t.scopes = append(t.scopes, s)
	return len(t.scopes) - 1
}

// Len returns the number of scopes in the arena.
func (t *Tree) Len() int {
	return len(t.scopes)
}

// Scope returns the scope at the given arena index.
func (t *Tree) Scope(i int) *Scope {
	return t.scopes[i]
}

// Root returns the arena index of the global scope.
func (t *Tree) Root() int {
	return 0
}

// Resolve walks the scope chain from the given index toward the root and
// returns the first binding for sym, along with the index of the scope
// declaring it.
func (t *Tree) Resolve(i int, sym interner.Symbol) (*Binding, int, bool) {
	for i >= 0 {
		if b := t.scopes[i].Bindings[sym]; b != nil {
			return b, i, true
		}
		i = t.scopes[i].Parent
	}
	return nil, -1, false
}

// Error is a static-semantics failure found during analysis.
type Error struct {
	Code errors.ErrorCode
	Msg  string
	Pos  token.Position
	End  token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("early error: %s (line %d, column %d)",
		e.Msg, e.Pos.LineNumber(), e.Pos.ColumnNumber())
}
