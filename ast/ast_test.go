package ast

import (
	"math/big"
	"testing"

	"github.com/NickTomlin/boa/token"
	"github.com/stretchr/testify/require"
)

func ident(name string) *Ident {
	return &Ident{Name: name}
}

func TestProgramString(t *testing.T) {
	program := &Program{
		Stmts: []Stmt{
			&Var{
				Kind: KindLet,
				Decls: []*Declarator{
					{Name: ident("x"), Value: &Int{Literal: "5", Value: 5}},
				},
			},
		},
	}
	require.Equal(t, "let x = 5;", program.String())
}

func TestLiteralStrings(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{&Int{Literal: "42", Value: 42}, "42"},
		{&Float{Literal: "3.14", Value: 3.14}, "3.14"},
		{&BigInt{Literal: "10n", Value: big.NewInt(10)}, "10n"},
		{&Bool{Value: true}, "true"},
		{&Null{}, "null"},
		{&String{Raw: `"hi"`, Value: "hi"}, `"hi"`},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.node.String())
	}
}

func TestExpressionStrings(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{&Infix{X: ident("a"), Op: "+", Y: ident("b")}, "(a + b)"},
		{&Prefix{Op: "!", X: ident("ok")}, "(!ok)"},
		{&Prefix{Op: "typeof", X: ident("x")}, "(typeof x)"},
		{&Postfix{X: ident("i"), Op: "++"}, "(i++)"},
		{&Conditional{X: ident("c"), Then: ident("a"), Else: ident("b")}, "(c ? a : b)"},
		{&Call{Fun: ident("f"), Args: []Expr{ident("x"), ident("y")}}, "f(x, y)"},
		{&New{Callee: ident("Foo"), Args: []Expr{ident("x")}}, "new Foo(x)"},
		{&Member{X: ident("obj"), Attr: ident("prop")}, "obj.prop"},
		{&Index{X: ident("arr"), Index: &Int{Literal: "0"}}, "arr[0]"},
		{&Spread{X: ident("rest")}, "...rest"},
		{&Yield{}, "yield"},
		{&Yield{Delegate: true, X: ident("gen")}, "yield* gen"},
		{&Await{X: ident("p")}, "await p"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.node.String())
	}
}

func TestStatementStrings(t *testing.T) {
	tests := []struct {
		node Stmt
		want string
	}{
		{&Return{Value: ident("x")}, "return x;"},
		{&Return{}, "return;"},
		{&Break{Label: ident("outer")}, "break outer;"},
		{&Continue{}, "continue;"},
		{&Throw{Value: ident("err")}, "throw err;"},
		{&Empty{}, ";"},
		{
			&If{
				Cond: ident("ok"),
				Then: &Block{Stmts: []Stmt{&ExprStmt{X: ident("a")}}},
				Else: &Block{Stmts: []Stmt{&ExprStmt{X: ident("b")}}},
			},
			"if (ok) { a; } else { b; }",
		},
		{
			&While{Cond: ident("c"), Body: &Block{}},
			"while (c) {  }",
		},
		{
			&Labeled{Label: ident("loop"), Stmt: &While{Cond: ident("c"), Body: &Block{}}},
			"loop: while (c) {  }",
		},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.node.String())
	}
}

func TestFuncString(t *testing.T) {
	fn := &Func{
		IsAsync:     true,
		IsGenerator: true,
		Name:        ident("gen"),
		Params: []*Param{
			{Name: ident("a")},
			{Name: ident("b"), Default: &Int{Literal: "1", Value: 1}},
			{Name: ident("rest"), Rest: true},
		},
		Body: &Block{Stmts: []Stmt{&Return{Value: ident("a")}}},
	}
	require.Equal(t, "async function* gen(a, b = 1, ...rest) { return a; }", fn.String())
}

func TestNewFuncDirectEval(t *testing.T) {
	evalCall := &Call{Fun: ident("eval"), Args: []Expr{&String{Raw: `"x"`, Value: "x"}}}

	direct := NewFunc(&Func{
		Name:   ident("f"),
		Body:   &Block{Stmts: []Stmt{&ExprStmt{X: evalCall}}},
		Params: nil,
	})
	require.True(t, direct.ContainsDirectEval)

	// eval as a property access is not a direct call
	indirect := NewFunc(&Func{
		Name: ident("g"),
		Body: &Block{Stmts: []Stmt{&ExprStmt{X: &Call{
			Fun: &Member{X: ident("globalThis"), Attr: ident("eval")},
		}}}},
	})
	require.False(t, indirect.ContainsDirectEval)

	// direct eval in a parameter default counts
	inDefault := NewFunc(&Func{
		Name:   ident("h"),
		Params: []*Param{{Name: ident("a"), Default: evalCall}},
		Body:   &Block{},
	})
	require.True(t, inDefault.ContainsDirectEval)

	// nested functions count toward the enclosing flag
	nested := NewFunc(&Func{
		Name: ident("outer"),
		Body: &Block{Stmts: []Stmt{
			NewFunc(&Func{
				Name: ident("inner"),
				Body: &Block{Stmts: []Stmt{&ExprStmt{X: evalCall}}},
			}),
		}},
	})
	require.True(t, nested.ContainsDirectEval)
}

func TestWalkVisitsAllNodes(t *testing.T) {
	program := &Program{
		Stmts: []Stmt{
			&Var{
				Kind: KindConst,
				Decls: []*Declarator{
					{Name: ident("x"), Value: &Infix{X: &Int{Literal: "1", Value: 1}, Op: "+", Y: &Int{Literal: "2", Value: 2}}},
				},
			},
			&ExprStmt{X: &Call{Fun: ident("f"), Args: []Expr{ident("x")}}},
		},
	}
	var idents []string
	Inspect(program, func(n Node) bool {
		if id, ok := n.(*Ident); ok {
			idents = append(idents, id.Name)
		}
		return true
	})
	require.Equal(t, []string{"x", "f", "x"}, idents)
}

func TestPreorder(t *testing.T) {
	expr := &Infix{X: ident("a"), Op: "*", Y: ident("b")}
	var count int
	for range Preorder(expr) {
		count++
	}
	require.Equal(t, 3, count)
}

// Catch is handed to the scope analyzer as a Node key for its scope.
var _ Node = (*Catch)(nil)

func TestCatchNode(t *testing.T) {
	catch := &Catch{
		CatchPos: token.Position{Char: 7},
		Param:    ident("e"),
		Body: &Block{
			Lbrace: token.Position{Char: 17},
			Rbrace: token.Position{Char: 18},
		},
	}
	require.Equal(t, 7, catch.Pos().Char)
	require.Equal(t, 19, catch.End().Char)
	require.Equal(t, "catch (e) {  }", catch.String())

	bare := &Catch{Body: &Block{}}
	require.Equal(t, "catch {  }", bare.String())

	try := &Try{Body: &Block{}, Catch: catch}
	require.Equal(t, "try {  } catch (e) {  }", try.String())
}

func TestPositions(t *testing.T) {
	pos := token.Position{Char: 4, Line: 0, Column: 4}
	id := &Ident{NamePos: pos, Name: "abcd"}
	require.Equal(t, 4, id.Pos().Char)
	require.Equal(t, 8, id.End().Char)
}
