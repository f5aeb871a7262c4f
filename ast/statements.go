package ast

import (
	"bytes"
	"strings"

	"github.com/NickTomlin/boa/token"
)

// VarKind distinguishes the three declaration forms.
type VarKind string

const (
	KindVar   VarKind = "var"
	KindLet   VarKind = "let"
	KindConst VarKind = "const"
)

// Declarator is a single name within a declaration statement.
type Declarator struct {
	Name  *Ident
	Value Expr // initializer; may be nil (required for const)
}

func (d *Declarator) String() string {
	if d.Value == nil {
		return d.Name.String()
	}
	return d.Name.String() + " = " + d.Value.String()
}

// Var is a declaration statement covering var, let, and const.
type Var struct {
	KindPos token.Position // position of the keyword
	Kind    VarKind
	Decls   []*Declarator // at least one
	Semi    token.Position
}

func (s *Var) stmtNode() {}

func (s *Var) Pos() token.Position { return s.KindPos }
func (s *Var) End() token.Position {
	if s.Semi.IsValid() {
		return s.Semi.Advance(1)
	}
	return s.Decls[len(s.Decls)-1].endPos()
}

func (d *Declarator) endPos() token.Position {
	if d.Value != nil {
		return d.Value.End()
	}
	return d.Name.End()
}

func (s *Var) String() string {
	decls := make([]string, 0, len(s.Decls))
	for _, d := range s.Decls {
		decls = append(decls, d.String())
	}
	return string(s.Kind) + " " + strings.Join(decls, ", ") + ";"
}

// ExprStmt is a statement consisting of a single expression.
type ExprStmt struct {
	X    Expr
	Semi token.Position
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Pos() token.Position { return s.X.Pos() }
func (s *ExprStmt) End() token.Position {
	if s.Semi.IsValid() {
		return s.Semi.Advance(1)
	}
	return s.X.End()
}

func (s *ExprStmt) String() string { return s.X.String() + ";" }

// Empty is a lone ";" statement.
type Empty struct {
	Semi token.Position
}

func (s *Empty) stmtNode() {}

func (s *Empty) Pos() token.Position { return s.Semi }
func (s *Empty) End() token.Position { return s.Semi.Advance(1) }

func (s *Empty) String() string { return ";" }

// Block is a braced list of statements. It opens a lexical scope.
type Block struct {
	Lbrace token.Position
	Stmts  []Stmt
	Rbrace token.Position
}

func (s *Block) stmtNode() {}

func (s *Block) Pos() token.Position { return s.Lbrace }
func (s *Block) End() token.Position { return s.Rbrace.Advance(1) }

func (s *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for i, st := range s.Stmts {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(st.String())
	}
	out.WriteString(" }")
	return out.String()
}

// If is a conditional statement. Else may be nil, another If (else-if
// chain), or any statement.
type If struct {
	IfPos token.Position
	Cond  Expr
	Then  Stmt
	Else  Stmt // may be nil
}

func (s *If) stmtNode() {}

func (s *If) Pos() token.Position { return s.IfPos }
func (s *If) End() token.Position {
	if s.Else != nil {
		return s.Else.End()
	}
	return s.Then.End()
}

func (s *If) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(s.Cond.String())
	out.WriteString(") ")
	out.WriteString(s.Then.String())
	if s.Else != nil {
		out.WriteString(" else ")
		out.WriteString(s.Else.String())
	}
	return out.String()
}

// While is a while loop.
type While struct {
	WhilePos token.Position
	Cond     Expr
	Body     Stmt
}

func (s *While) stmtNode() {}

func (s *While) Pos() token.Position { return s.WhilePos }
func (s *While) End() token.Position { return s.Body.End() }

func (s *While) String() string {
	return "while (" + s.Cond.String() + ") " + s.Body.String()
}

// DoWhile is a do-while loop. The trailing semicolon may always be
// omitted regardless of what follows.
type DoWhile struct {
	DoPos  token.Position
	Body   Stmt
	Cond   Expr
	Rparen token.Position
}

func (s *DoWhile) stmtNode() {}

func (s *DoWhile) Pos() token.Position { return s.DoPos }
func (s *DoWhile) End() token.Position { return s.Rparen.Advance(1) }

func (s *DoWhile) String() string {
	return "do " + s.Body.String() + " while (" + s.Cond.String() + ");"
}

// For is the classic three-clause loop. Init is either a Var statement or
// an ExprStmt; any of the three clauses may be nil.
type For struct {
	ForPos token.Position
	Init   Stmt // *Var or *ExprStmt, or nil
	Cond   Expr // or nil
	Post   Expr // or nil
	Body   Stmt
}

func (s *For) stmtNode() {}

func (s *For) Pos() token.Position { return s.ForPos }
func (s *For) End() token.Position { return s.Body.End() }

func (s *For) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if s.Init != nil {
		out.WriteString(strings.TrimSuffix(s.Init.String(), ";"))
	}
	out.WriteString("; ")
	if s.Cond != nil {
		out.WriteString(s.Cond.String())
	}
	out.WriteString("; ")
	if s.Post != nil {
		out.WriteString(s.Post.String())
	}
	out.WriteString(") ")
	out.WriteString(s.Body.String())
	return out.String()
}

// ForIn is a for-in enumeration loop. Left is either a single-declarator
// Var statement or an ExprStmt holding an assignment target.
type ForIn struct {
	ForPos token.Position
	Left   Stmt
	Object Expr
	Body   Stmt
}

func (s *ForIn) stmtNode() {}

func (s *ForIn) Pos() token.Position { return s.ForPos }
func (s *ForIn) End() token.Position { return s.Body.End() }

func (s *ForIn) String() string {
	return "for (" + strings.TrimSuffix(s.Left.String(), ";") + " in " +
		s.Object.String() + ") " + s.Body.String()
}

// ForOf is a for-of iteration loop. Await marks the for-await-of form.
type ForOf struct {
	ForPos token.Position
	Await  bool
	Left   Stmt
	Iter   Expr
	Body   Stmt
}

func (s *ForOf) stmtNode() {}

func (s *ForOf) Pos() token.Position { return s.ForPos }
func (s *ForOf) End() token.Position { return s.Body.End() }

func (s *ForOf) String() string {
	var out bytes.Buffer
	out.WriteString("for ")
	if s.Await {
		out.WriteString("await ")
	}
	out.WriteString("(")
	out.WriteString(strings.TrimSuffix(s.Left.String(), ";"))
	out.WriteString(" of ")
	out.WriteString(s.Iter.String())
	out.WriteString(") ")
	out.WriteString(s.Body.String())
	return out.String()
}

// Return is a return statement. Value is nil for a bare return.
type Return struct {
	ReturnPos token.Position
	Value     Expr // may be nil
	Semi      token.Position
}

func (s *Return) stmtNode() {}

func (s *Return) Pos() token.Position { return s.ReturnPos }
func (s *Return) End() token.Position {
	if s.Semi.IsValid() {
		return s.Semi.Advance(1)
	}
	if s.Value != nil {
		return s.Value.End()
	}
	return s.ReturnPos.Advance(6) // len("return")
}

func (s *Return) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

// Break is a break statement, optionally targeting a label.
type Break struct {
	BreakPos token.Position
	Label    *Ident // may be nil
	Semi     token.Position
}

func (s *Break) stmtNode() {}

func (s *Break) Pos() token.Position { return s.BreakPos }
func (s *Break) End() token.Position {
	if s.Semi.IsValid() {
		return s.Semi.Advance(1)
	}
	if s.Label != nil {
		return s.Label.End()
	}
	return s.BreakPos.Advance(5) // len("break")
}

func (s *Break) String() string {
	if s.Label == nil {
		return "break;"
	}
	return "break " + s.Label.String() + ";"
}

// Continue is a continue statement, optionally targeting a label.
type Continue struct {
	ContinuePos token.Position
	Label       *Ident // may be nil
	Semi        token.Position
}

func (s *Continue) stmtNode() {}

func (s *Continue) Pos() token.Position { return s.ContinuePos }
func (s *Continue) End() token.Position {
	if s.Semi.IsValid() {
		return s.Semi.Advance(1)
	}
	if s.Label != nil {
		return s.Label.End()
	}
	return s.ContinuePos.Advance(8) // len("continue")
}

func (s *Continue) String() string {
	if s.Label == nil {
		return "continue;"
	}
	return "continue " + s.Label.String() + ";"
}

// Labeled is a labelled statement: "name: stmt".
type Labeled struct {
	Label *Ident
	Colon token.Position
	Stmt  Stmt
}

func (s *Labeled) stmtNode() {}

func (s *Labeled) Pos() token.Position { return s.Label.Pos() }
func (s *Labeled) End() token.Position { return s.Stmt.End() }

func (s *Labeled) String() string { return s.Label.String() + ": " + s.Stmt.String() }

// Throw is a throw statement. The argument is mandatory and must start on
// the same line as the keyword.
type Throw struct {
	ThrowPos token.Position
	Value    Expr
	Semi     token.Position
}

func (s *Throw) stmtNode() {}

func (s *Throw) Pos() token.Position { return s.ThrowPos }
func (s *Throw) End() token.Position {
	if s.Semi.IsValid() {
		return s.Semi.Advance(1)
	}
	return s.Value.End()
}

func (s *Throw) String() string { return "throw " + s.Value.String() + ";" }

// Try is a try statement. At least one of Catch and Finally is present.
type Try struct {
	TryPos  token.Position
	Body    *Block
	Catch   *Catch // may be nil
	Finally *Block // may be nil
}

// Catch is the catch clause of a try statement. Param is nil for the
// binding-less "catch {}" form.
type Catch struct {
	CatchPos token.Position
	Param    *Ident // may be nil
	Body     *Block
}

func (c *Catch) Pos() token.Position { return c.CatchPos }
func (c *Catch) End() token.Position { return c.Body.End() }

func (c *Catch) String() string {
	var out bytes.Buffer
	out.WriteString("catch ")
	if c.Param != nil {
		out.WriteString("(" + c.Param.String() + ") ")
	}
	out.WriteString(c.Body.String())
	return out.String()
}

func (s *Try) stmtNode() {}

func (s *Try) Pos() token.Position { return s.TryPos }
func (s *Try) End() token.Position {
	if s.Finally != nil {
		return s.Finally.End()
	}
	return s.Catch.Body.End()
}

func (s *Try) String() string {
	var out bytes.Buffer
	out.WriteString("try ")
	out.WriteString(s.Body.String())
	if s.Catch != nil {
		out.WriteString(" " + s.Catch.String())
	}
	if s.Finally != nil {
		out.WriteString(" finally ")
		out.WriteString(s.Finally.String())
	}
	return out.String()
}

// Debugger is a debugger statement. The front end keeps it in the tree;
// whether it has any effect is up to the consumer.
type Debugger struct {
	DebuggerPos token.Position
	Semi        token.Position
}

func (s *Debugger) stmtNode() {}

func (s *Debugger) Pos() token.Position { return s.DebuggerPos }
func (s *Debugger) End() token.Position {
	if s.Semi.IsValid() {
		return s.Semi.Advance(1)
	}
	return s.DebuggerPos.Advance(8) // len("debugger")
}

func (s *Debugger) String() string { return "debugger;" }

// Case is one clause of a switch statement. Cond is nil for the default
// clause.
type Case struct {
	CasePos token.Position
	Cond    Expr // nil for default
	Colon   token.Position
	Body    []Stmt
}

func (c *Case) String() string {
	var out bytes.Buffer
	if c.Cond == nil {
		out.WriteString("default:")
	} else {
		out.WriteString("case " + c.Cond.String() + ":")
	}
	for _, st := range c.Body {
		out.WriteString(" " + st.String())
	}
	return out.String()
}

// Switch is a switch statement. At most one clause may be the default.
// The whole body opens a single lexical scope shared by all clauses.
type Switch struct {
	SwitchPos token.Position
	Tag       Expr
	Lbrace    token.Position
	Cases     []*Case
	Rbrace    token.Position
}

func (s *Switch) stmtNode() {}

func (s *Switch) Pos() token.Position { return s.SwitchPos }
func (s *Switch) End() token.Position { return s.Rbrace.Advance(1) }

func (s *Switch) String() string {
	var out bytes.Buffer
	out.WriteString("switch (" + s.Tag.String() + ") { ")
	for i, c := range s.Cases {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(c.String())
	}
	out.WriteString(" }")
	return out.String()
}
