// Package ast defines the abstract syntax tree produced by the parser.
package ast

import "github.com/NickTomlin/boa/token"

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string
}

// Stmt represents a statement node. Statements cause side effects but
// do not evaluate to a value.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Expressions evaluate to a value
// and may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}

// Program is the root node for one parsed source text.
type Program struct {
	Stmts []Stmt

	// Strict is true if the program's directive prologue enables strict mode.
	Strict bool
}

func (p *Program) Pos() token.Position {
	if len(p.Stmts) > 0 {
		return p.Stmts[0].Pos()
	}
	return token.NoPos
}

func (p *Program) End() token.Position {
	if n := len(p.Stmts); n > 0 {
		return p.Stmts[n-1].End()
	}
	return token.NoPos
}

func (p *Program) String() string {
	var out []byte
	for i, stmt := range p.Stmts {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, stmt.String()...)
	}
	return string(out)
}
