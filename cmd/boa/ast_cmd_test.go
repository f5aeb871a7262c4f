package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NickTomlin/boa/ast"
	"github.com/NickTomlin/boa/interner"
	"github.com/NickTomlin/boa/parser"
	"github.com/NickTomlin/boa/scope"
)

func parseAndAnalyze(t *testing.T, code string) (*ast.Program, *scope.Tree) {
	t.Helper()
	in := interner.New()
	program, err := parser.Parse(context.Background(), code, parser.WithInterner(in))
	require.NoError(t, err)
	tree, err := scope.Analyze(program)
	require.NoError(t, err)
	return program, tree
}

func TestPrintAstText(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		contains []string
	}{
		{
			name:     "integer literal",
			code:     "42;",
			contains: []string{"Program", "ExprStmt", "Int 42"},
		},
		{
			name:     "variable declaration",
			code:     "let x = 1;",
			contains: []string{"Var let", "Ident x", "Int 1"},
		},
		{
			name:     "binary expression",
			code:     "1 + 2;",
			contains: []string{"Infix +", "Int 1", "Int 2"},
		},
		{
			name: "function declaration",
			code: "function add(a, b) { return a + b; }",
			contains: []string{
				"Func add", "Ident a", "Ident b", "Block", "Return", "Infix +",
			},
		},
		{
			name:     "string literal",
			code:     `"hello";`,
			contains: []string{"String hello"},
		},
		{
			name:     "member and call",
			code:     "console.log(msg);",
			contains: []string{"Call", "Member", "Ident console", "Ident log", "Ident msg"},
		},
		{
			name:     "class declaration",
			code:     "class Point { get x() { return 1; } }",
			contains: []string{"Class Point", "Ident x", "Func"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, _ := parseAndAnalyze(t, tt.code)
			var buf bytes.Buffer
			printAstText(&buf, program, 0)
			for _, want := range tt.contains {
				require.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestPrintAstTextIndentation(t *testing.T) {
	program, _ := parseAndAnalyze(t, "let x = 1;")
	var buf bytes.Buffer
	printAstText(&buf, program, 0)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, []string{
		"Program",
		"  Var let",
		"    Ident x",
		"    Int 1",
	}, lines)
}

func TestNodeToJSON(t *testing.T) {
	program, _ := parseAndAnalyze(t, "a + b * c;")
	root := nodeToJSON(program)
	require.Equal(t, "Program", root.Type)
	require.Len(t, root.Children, 1)

	stmt := root.Children[0]
	require.Equal(t, "ExprStmt", stmt.Type)
	require.Len(t, stmt.Children, 1)

	add := stmt.Children[0]
	require.Equal(t, "Infix", add.Type)
	require.Equal(t, "+", add.Value)
	require.Len(t, add.Children, 2)
	require.Equal(t, "a", add.Children[0].Value)

	mul := add.Children[1]
	require.Equal(t, "Infix", mul.Type)
	require.Equal(t, "*", mul.Value)
}

func TestNodeToJSONNil(t *testing.T) {
	require.Nil(t, nodeToJSON(nil))
}

func TestChildNodesSourceOrder(t *testing.T) {
	program, _ := parseAndAnalyze(t, "f(a, b, c);")
	call := program.Stmts[0].(*ast.ExprStmt).X.(*ast.Call)
	kids := childNodes(call)
	require.Len(t, kids, 4)
	require.Equal(t, "f", kids[0].(*ast.Ident).Name)
	require.Equal(t, "a", kids[1].(*ast.Ident).Name)
	require.Equal(t, "c", kids[3].(*ast.Ident).Name)
}

func TestScopesToJSON(t *testing.T) {
	_, tree := parseAndAnalyze(t, "let a = 1; function f() { return a; }")
	nodes := scopesToJSON(tree)
	require.Len(t, nodes, tree.Len())

	root := nodes[0]
	require.Equal(t, "global", root.Kind)
	require.Equal(t, -1, root.Parent)

	names := make(map[string]*bindingNode)
	for _, b := range root.Bindings {
		names[b.Name] = b
	}
	require.Contains(t, names, "a")
	require.Contains(t, names, "f")
	require.True(t, names["a"].Captured)
	require.Equal(t, "let", names["a"].Kind)
	require.Equal(t, "function", names["f"].Kind)
}

func TestPrintScopesText(t *testing.T) {
	_, tree := parseAndAnalyze(t, "function f(x) { let y = x; }")
	var buf bytes.Buffer
	printScopesText(&buf, tree)
	out := buf.String()
	require.Contains(t, out, "scope 0: global")
	require.Contains(t, out, "function f")
	require.Contains(t, out, "param x")
	require.Contains(t, out, "let y")
}
