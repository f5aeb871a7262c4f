package ast

import (
	"fmt"
	"iter"
)

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children of
// node with the visitor w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

func walkList[N Node](v Visitor, list []N) {
	for _, node := range list {
		Walk(v, node)
	}
}

// Walk traverses a syntax tree in depth-first order: it starts by calling
// v.Visit(node); node must not be nil. If the visitor w returned by
// v.Visit(node) is not nil, Walk is invoked recursively with visitor w for
// each of the non-nil children of node, followed by a call of w.Visit(nil).
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		walkList(v, n.Stmts)

	// Literals
	case *Int, *Float, *BigInt, *Bool, *Null, *String:
		// leaves

	case *Template:
		walkList(v, n.Exprs)

	case *Array:
		walkList(v, n.Items)

	case *Object:
		for _, item := range n.Items {
			if item.Key != nil {
				Walk(v, item.Key)
			}
			Walk(v, item.Value)
		}

	// Expressions
	case *Ident, *This:
		// leaves

	case *Prefix:
		Walk(v, n.X)

	case *Postfix:
		Walk(v, n.X)

	case *Infix:
		Walk(v, n.X)
		Walk(v, n.Y)

	case *Assign:
		Walk(v, n.Target)
		Walk(v, n.Value)

	case *Conditional:
		Walk(v, n.X)
		Walk(v, n.Then)
		Walk(v, n.Else)

	case *Call:
		Walk(v, n.Fun)
		walkList(v, n.Args)

	case *New:
		Walk(v, n.Callee)
		walkList(v, n.Args)

	case *Member:
		Walk(v, n.X)
		Walk(v, n.Attr)

	case *Index:
		Walk(v, n.X)
		Walk(v, n.Index)

	case *Spread:
		Walk(v, n.X)

	case *Yield:
		if n.X != nil {
			Walk(v, n.X)
		}

	case *Await:
		Walk(v, n.X)

	// Statements
	case *Var:
		for _, d := range n.Decls {
			Walk(v, d.Name)
			if d.Value != nil {
				Walk(v, d.Value)
			}
		}

	case *ExprStmt:
		Walk(v, n.X)

	case *Empty, *Debugger:
		// leaves

	case *Block:
		walkList(v, n.Stmts)

	case *If:
		Walk(v, n.Cond)
		Walk(v, n.Then)
		if n.Else != nil {
			Walk(v, n.Else)
		}

	case *While:
		Walk(v, n.Cond)
		Walk(v, n.Body)

	case *DoWhile:
		Walk(v, n.Body)
		Walk(v, n.Cond)

	case *For:
		if n.Init != nil {
			Walk(v, n.Init)
		}
		if n.Cond != nil {
			Walk(v, n.Cond)
		}
		if n.Post != nil {
			Walk(v, n.Post)
		}
		Walk(v, n.Body)

	case *ForIn:
		Walk(v, n.Left)
		Walk(v, n.Object)
		Walk(v, n.Body)

	case *ForOf:
		Walk(v, n.Left)
		Walk(v, n.Iter)
		Walk(v, n.Body)

	case *Return:
		if n.Value != nil {
			Walk(v, n.Value)
		}

	case *Break:
		if n.Label != nil {
			Walk(v, n.Label)
		}

	case *Continue:
		if n.Label != nil {
			Walk(v, n.Label)
		}

	case *Labeled:
		Walk(v, n.Label)
		Walk(v, n.Stmt)

	case *Throw:
		Walk(v, n.Value)

	case *Try:
		Walk(v, n.Body)
		if n.Catch != nil {
			if n.Catch.Param != nil {
				Walk(v, n.Catch.Param)
			}
			Walk(v, n.Catch.Body)
		}
		if n.Finally != nil {
			Walk(v, n.Finally)
		}

	case *Switch:
		Walk(v, n.Tag)
		for _, c := range n.Cases {
			if c.Cond != nil {
				Walk(v, c.Cond)
			}
			walkList(v, c.Body)
		}

	case *Func:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		for _, p := range n.Params {
			Walk(v, p.Name)
			if p.Default != nil {
				Walk(v, p.Default)
			}
		}
		Walk(v, n.Body)

	case *Class:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		if n.Super != nil {
			Walk(v, n.Super)
		}
		for _, m := range n.Methods {
			Walk(v, m.Key)
			Walk(v, m.Value)
		}

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses a syntax tree in depth-first order: it starts by
// calling f(node); node must not be nil. If f returns true, Inspect
// invokes f recursively for each of the non-nil children of node, followed
// by a call of f(nil).
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

func rewriteExpr(f func(Node) Node, e Expr) Expr {
	if e == nil {
		return nil
	}
	return f(e).(Expr)
}

func rewriteStmt(f func(Node) Node, s Stmt) Stmt {
	if s == nil {
		return nil
	}
	return f(s).(Stmt)
}

func rewriteExprList(f func(Node) Node, list []Expr) {
	for i, e := range list {
		list[i] = rewriteExpr(f, e)
	}
}

func rewriteStmtList(f func(Node) Node, list []Stmt) {
	for i, s := range list {
		list[i] = rewriteStmt(f, s)
	}
}

// RewriteChildren replaces each immediate child c of node with f(c),
// in place. The replacement must satisfy the same interface as the field
// it occupies. Children that may legally be nil are skipped when nil.
// Unlike Walk, RewriteChildren does not recurse; a rewriter drives its
// own traversal.
func RewriteChildren(node Node, f func(Node) Node) {
	switch n := node.(type) {
	case *Program:
		rewriteStmtList(f, n.Stmts)
	case *Int, *Float, *BigInt, *Bool, *Null, *String, *Ident, *This, *Empty, *Debugger:
		// leaves
	case *Template:
		rewriteExprList(f, n.Exprs)
	case *Array:
		rewriteExprList(f, n.Items)
	case *Object:
		for _, item := range n.Items {
			if item.Key != nil {
				item.Key = rewriteExpr(f, item.Key)
			}
			item.Value = rewriteExpr(f, item.Value)
		}
	case *Prefix:
		n.X = rewriteExpr(f, n.X)
	case *Postfix:
		n.X = rewriteExpr(f, n.X)
	case *Infix:
		n.X = rewriteExpr(f, n.X)
		n.Y = rewriteExpr(f, n.Y)
	case *Assign:
		n.Target = rewriteExpr(f, n.Target)
		n.Value = rewriteExpr(f, n.Value)
	case *Conditional:
		n.X = rewriteExpr(f, n.X)
		n.Then = rewriteExpr(f, n.Then)
		n.Else = rewriteExpr(f, n.Else)
	case *Call:
		n.Fun = rewriteExpr(f, n.Fun)
		rewriteExprList(f, n.Args)
	case *New:
		n.Callee = rewriteExpr(f, n.Callee)
		rewriteExprList(f, n.Args)
	case *Member:
		n.X = rewriteExpr(f, n.X)
		n.Attr = f(n.Attr).(*Ident)
	case *Index:
		n.X = rewriteExpr(f, n.X)
		n.Index = rewriteExpr(f, n.Index)
	case *Spread:
		n.X = rewriteExpr(f, n.X)
	case *Yield:
		if n.X != nil {
			n.X = rewriteExpr(f, n.X)
		}
	case *Await:
		n.X = rewriteExpr(f, n.X)
	case *Var:
		for _, d := range n.Decls {
			d.Name = f(d.Name).(*Ident)
			if d.Value != nil {
				d.Value = rewriteExpr(f, d.Value)
			}
		}
	case *ExprStmt:
		n.X = rewriteExpr(f, n.X)
	case *Block:
		rewriteStmtList(f, n.Stmts)
	case *If:
		n.Cond = rewriteExpr(f, n.Cond)
		n.Then = rewriteStmt(f, n.Then)
		n.Else = rewriteStmt(f, n.Else)
	case *While:
		n.Cond = rewriteExpr(f, n.Cond)
		n.Body = rewriteStmt(f, n.Body)
	case *DoWhile:
		n.Body = rewriteStmt(f, n.Body)
		n.Cond = rewriteExpr(f, n.Cond)
	case *For:
		n.Init = rewriteStmt(f, n.Init)
		n.Cond = rewriteExpr(f, n.Cond)
		n.Post = rewriteExpr(f, n.Post)
		n.Body = rewriteStmt(f, n.Body)
	case *ForIn:
		n.Left = rewriteStmt(f, n.Left)
		n.Object = rewriteExpr(f, n.Object)
		n.Body = rewriteStmt(f, n.Body)
	case *ForOf:
		n.Left = rewriteStmt(f, n.Left)
		n.Iter = rewriteExpr(f, n.Iter)
		n.Body = rewriteStmt(f, n.Body)
	case *Return:
		n.Value = rewriteExpr(f, n.Value)
	case *Break:
		if n.Label != nil {
			n.Label = f(n.Label).(*Ident)
		}
	case *Continue:
		if n.Label != nil {
			n.Label = f(n.Label).(*Ident)
		}
	case *Labeled:
		n.Label = f(n.Label).(*Ident)
		n.Stmt = rewriteStmt(f, n.Stmt)
	case *Throw:
		n.Value = rewriteExpr(f, n.Value)
	case *Try:
		n.Body = f(n.Body).(*Block)
		if n.Catch != nil {
			if n.Catch.Param != nil {
				n.Catch.Param = f(n.Catch.Param).(*Ident)
			}
			n.Catch.Body = f(n.Catch.Body).(*Block)
		}
		if n.Finally != nil {
			n.Finally = f(n.Finally).(*Block)
		}
	case *Switch:
		n.Tag = rewriteExpr(f, n.Tag)
		for _, c := range n.Cases {
			if c.Cond != nil {
				c.Cond = rewriteExpr(f, c.Cond)
			}
			rewriteStmtList(f, c.Body)
		}
	case *Func:
		if n.Name != nil {
			n.Name = f(n.Name).(*Ident)
		}
		for _, p := range n.Params {
			p.Name = f(p.Name).(*Ident)
			if p.Default != nil {
				p.Default = rewriteExpr(f, p.Default)
			}
		}
		n.Body = f(n.Body).(*Block)
	case *Class:
		if n.Name != nil {
			n.Name = f(n.Name).(*Ident)
		}
		if n.Super != nil {
			n.Super = rewriteExpr(f, n.Super)
		}
		for _, m := range n.Methods {
			m.Key = rewriteExpr(f, m.Key)
			m.Value = f(m.Value).(*Func)
		}
	default:
		panic(fmt.Sprintf("ast.RewriteChildren: unexpected node type %T", n))
	}
}

// Preorder returns an iterator over all the nodes of the syntax tree
// beneath (and including) the specified root, in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		ok := true
		Inspect(root, func(n Node) bool {
			if n != nil {
				ok = ok && yield(n)
			}
			return ok
		})
	}
}
