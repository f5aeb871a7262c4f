package ast

import (
	"bytes"
	"strings"

	"github.com/NickTomlin/boa/interner"
	"github.com/NickTomlin/boa/token"
)

// Ident is an expression node that refers to a name. Later passes compare
// identifiers by interned symbol handle, never by text.
type Ident struct {
	NamePos token.Position  // position of identifier
	Name    string          // identifier text, kept for diagnostics
	Sym     interner.Symbol // interned handle
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }

func (x *Ident) String() string { return x.Name }

// This is an expression node for the "this" keyword.
type This struct {
	ThisPos token.Position
}

func (x *This) exprNode() {}

func (x *This) Pos() token.Position { return x.ThisPos }
func (x *This) End() token.Position { return x.ThisPos.Advance(4) } // len("this")

func (x *This) String() string { return "this" }

// Prefix is an operator expression where the operator precedes the operand.
// Covers "!x", "-x", "typeof x", "void x", "delete x", "~x", and the update
// forms "++x" and "--x".
type Prefix struct {
	OpPos token.Position // position of operator
	Op    string         // operator text
	X     Expr           // operand
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Pos() token.Position { return x.OpPos }
func (x *Prefix) End() token.Position { return x.X.End() }

func (x *Prefix) String() string {
	// Word operators need a space to survive re-parsing
	if len(x.Op) > 2 {
		return "(" + x.Op + " " + x.X.String() + ")"
	}
	return "(" + x.Op + x.X.String() + ")"
}

// Postfix is an update expression where the operator follows the operand,
// as in "x++" and "x--".
type Postfix struct {
	X     Expr           // operand
	OpPos token.Position // position of operator
	Op    string         // "++" or "--"
}

func (x *Postfix) exprNode() {}

func (x *Postfix) Pos() token.Position { return x.X.Pos() }
func (x *Postfix) End() token.Position { return x.OpPos.Advance(len(x.Op)) }

func (x *Postfix) String() string { return "(" + x.X.String() + x.Op + ")" }

// Infix is an operator expression where the operator is between the operands.
type Infix struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    string         // operator: "+", "===", "instanceof", etc.
	Y     Expr           // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }

func (x *Infix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" " + x.Op + " ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// Assign is an assignment expression, either plain "=" or a compound
// operator such as "+=".
type Assign struct {
	Target Expr           // Ident, Member or Index
	OpPos  token.Position // position of operator
	Op     string         // "=", "+=", "-=", ...
	Value  Expr
}

func (x *Assign) exprNode() {}

func (x *Assign) Pos() token.Position { return x.Target.Pos() }
func (x *Assign) End() token.Position { return x.Value.End() }

func (x *Assign) String() string {
	return x.Target.String() + " " + x.Op + " " + x.Value.String()
}

// Conditional is a ternary "cond ? then : else" expression.
type Conditional struct {
	X        Expr           // condition
	Question token.Position // position of "?"
	Then     Expr
	Colon    token.Position // position of ":"
	Else     Expr
}

func (x *Conditional) exprNode() {}

func (x *Conditional) Pos() token.Position { return x.X.Pos() }
func (x *Conditional) End() token.Position { return x.Else.End() }

func (x *Conditional) String() string {
	return "(" + x.X.String() + " ? " + x.Then.String() + " : " + x.Else.String() + ")"
}

// Call is a function invocation expression.
type Call struct {
	Fun    Expr           // callee
	Lparen token.Position // position of "("
	Args   []Expr         // arguments; may include Spread
	Rparen token.Position // position of ")"
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Fun.Pos() }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }

func (x *Call) String() string {
	args := make([]string, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, a.String())
	}
	return x.Fun.String() + "(" + strings.Join(args, ", ") + ")"
}

// New is a constructor invocation expression. Args is nil for the
// argument-less "new X" form.
type New struct {
	NewPos token.Position // position of "new"
	Callee Expr
	Lparen token.Position // position of "(" if arguments are present
	Args   []Expr
	Rparen token.Position // position of ")" if arguments are present
}

func (x *New) exprNode() {}

func (x *New) Pos() token.Position { return x.NewPos }
func (x *New) End() token.Position {
	if x.Rparen.IsValid() {
		return x.Rparen.Advance(1)
	}
	return x.Callee.End()
}

func (x *New) String() string {
	args := make([]string, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, a.String())
	}
	return "new " + x.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// Member is a property access expression using dot notation.
type Member struct {
	X    Expr           // object
	Dot  token.Position // position of "."
	Attr *Ident         // property name
}

func (x *Member) exprNode() {}

func (x *Member) Pos() token.Position { return x.X.Pos() }
func (x *Member) End() token.Position { return x.Attr.End() }

func (x *Member) String() string { return x.X.String() + "." + x.Attr.String() }

// Index is a property access expression using bracket notation.
type Index struct {
	X      Expr           // object
	Lbrack token.Position // position of "["
	Index  Expr           // key expression
	Rbrack token.Position // position of "]"
}

func (x *Index) exprNode() {}

func (x *Index) Pos() token.Position { return x.X.Pos() }
func (x *Index) End() token.Position { return x.Rbrack.Advance(1) }

func (x *Index) String() string { return x.X.String() + "[" + x.Index.String() + "]" }

// Spread represents a spread element (...expr) in array literals, object
// literals, and call arguments.
type Spread struct {
	Ellipsis token.Position // position of "..."
	X        Expr           // expression being spread
}

func (x *Spread) exprNode() {}

func (x *Spread) Pos() token.Position { return x.Ellipsis }
func (x *Spread) End() token.Position { return x.X.End() }

func (x *Spread) String() string { return "..." + x.X.String() }

// Yield is a yield expression, legal only inside generator bodies.
type Yield struct {
	YieldPos token.Position // position of "yield"
	Delegate bool           // true for "yield*"
	X        Expr           // yielded value; may be nil
}

func (x *Yield) exprNode() {}

func (x *Yield) Pos() token.Position { return x.YieldPos }
func (x *Yield) End() token.Position {
	if x.X != nil {
		return x.X.End()
	}
	if x.Delegate {
		return x.YieldPos.Advance(6)
	}
	return x.YieldPos.Advance(5) // len("yield")
}

func (x *Yield) String() string {
	var out bytes.Buffer
	out.WriteString("yield")
	if x.Delegate {
		out.WriteString("*")
	}
	if x.X != nil {
		out.WriteString(" " + x.X.String())
	}
	return out.String()
}

// Await is an await expression, legal only where the grammar context
// permits await.
type Await struct {
	AwaitPos token.Position // position of "await"
	X        Expr           // awaited value
}

func (x *Await) exprNode() {}

func (x *Await) Pos() token.Position { return x.AwaitPos }
func (x *Await) End() token.Position { return x.X.End() }

func (x *Await) String() string { return "await " + x.X.String() }
