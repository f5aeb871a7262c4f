package ast

import (
	"bytes"
	"strings"

	"github.com/NickTomlin/boa/token"
)

// Param is one formal parameter. Rest marks a "...name" rest parameter,
// which must be last and may not carry a default.
type Param struct {
	Name    *Ident
	Default Expr // may be nil
	Rest    bool
}

func (p *Param) String() string {
	var out bytes.Buffer
	if p.Rest {
		out.WriteString("...")
	}
	out.WriteString(p.Name.String())
	if p.Default != nil {
		out.WriteString(" = " + p.Default.String())
	}
	return out.String()
}

// FunctionScopes records, after binding analysis, which scopes in the
// scope tree belong to a function. Indices are -1 until analysis runs.
type FunctionScopes struct {
	Params int // scope holding the formal parameters
	Body   int // scope holding the body declarations
}

// Func is a function in any of its four callable forms. It serves as both
// a declaration statement and an expression; Name is nil for anonymous
// function expressions.
type Func struct {
	FuncPos     token.Position // position of "function" or "async"
	IsAsync     bool
	IsGenerator bool
	Name        *Ident // nil for anonymous expressions
	Params      []*Param
	Body        *Block
	IsExpr      bool   // expression position rather than declaration
	UseStrict   bool   // body begins with a "use strict" directive
	Span        token.LinearSpan // token-index range of the whole function

	// ContainsDirectEval is true when any call of the form eval(...)
	// appears in the parameters or body, including nested functions.
	// Computed once at construction.
	ContainsDirectEval bool

	Scopes FunctionScopes
}

// NewFunc builds a Func and computes its direct-eval flag from the
// finished parameter list and body.
func NewFunc(f *Func) *Func {
	f.Scopes = FunctionScopes{Params: -1, Body: -1}
	f.ContainsDirectEval = containsDirectEval(f)
	return f
}

func containsDirectEval(f *Func) bool {
	found := false
	for _, p := range f.Params {
		if p.Default != nil {
			Inspect(p.Default, func(n Node) bool {
				if isDirectEvalCall(n) {
					found = true
				}
				return !found
			})
		}
	}
	if !found && f.Body != nil {
		Inspect(f.Body, func(n Node) bool {
			if isDirectEvalCall(n) {
				found = true
			}
			return !found
		})
	}
	return found
}

func isDirectEvalCall(n Node) bool {
	call, ok := n.(*Call)
	if !ok {
		return false
	}
	ident, ok := call.Fun.(*Ident)
	return ok && ident.Name == "eval"
}

func (f *Func) stmtNode() {}
func (f *Func) exprNode() {}

func (f *Func) Pos() token.Position { return f.FuncPos }
func (f *Func) End() token.Position { return f.Body.Rbrace.Advance(1) }

func (f *Func) String() string {
	var out bytes.Buffer
	if f.IsAsync {
		out.WriteString("async ")
	}
	out.WriteString("function")
	if f.IsGenerator {
		out.WriteString("*")
	}
	if f.Name != nil {
		out.WriteString(" " + f.Name.String())
	}
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, p.String())
	}
	out.WriteString("(" + strings.Join(params, ", ") + ") ")
	out.WriteString(f.Body.String())
	return out.String()
}

// MethodKind distinguishes the method forms a class body allows.
type MethodKind string

const (
	MethodNormal MethodKind = "method"
	MethodGet    MethodKind = "get"
	MethodSet    MethodKind = "set"
	MethodCtor   MethodKind = "constructor"
)

// Method is one member of a class body. The underlying function carries
// the parameters, body and span.
type Method struct {
	Kind     MethodKind
	Static   bool
	Key      Expr // *Ident, *String, *Int or computed expression
	Computed bool
	Value    *Func
}

func (m *Method) String() string {
	var out bytes.Buffer
	if m.Static {
		out.WriteString("static ")
	}
	switch m.Kind {
	case MethodGet:
		out.WriteString("get ")
	case MethodSet:
		out.WriteString("set ")
	}
	if m.Value.IsAsync {
		out.WriteString("async ")
	}
	if m.Value.IsGenerator {
		out.WriteString("*")
	}
	if m.Computed {
		out.WriteString("[" + m.Key.String() + "]")
	} else {
		out.WriteString(m.Key.String())
	}
	params := make([]string, 0, len(m.Value.Params))
	for _, p := range m.Value.Params {
		params = append(params, p.String())
	}
	out.WriteString("(" + strings.Join(params, ", ") + ") ")
	out.WriteString(m.Value.Body.String())
	return out.String()
}

// Class is a class in declaration or expression position. Class bodies
// are always strict.
type Class struct {
	ClassPos token.Position
	Name     *Ident // nil for anonymous class expressions
	Super    Expr   // extends clause; may be nil
	Lbrace   token.Position
	Methods  []*Method
	Rbrace   token.Position
	IsExpr   bool
	Span     token.LinearSpan
}

func (c *Class) stmtNode() {}
func (c *Class) exprNode() {}

func (c *Class) Pos() token.Position { return c.ClassPos }
func (c *Class) End() token.Position { return c.Rbrace.Advance(1) }

func (c *Class) String() string {
	var out bytes.Buffer
	out.WriteString("class")
	if c.Name != nil {
		out.WriteString(" " + c.Name.String())
	}
	if c.Super != nil {
		out.WriteString(" extends " + c.Super.String())
	}
	out.WriteString(" { ")
	for i, m := range c.Methods {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(m.String())
	}
	out.WriteString(" }")
	return out.String()
}
