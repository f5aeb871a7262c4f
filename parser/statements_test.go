package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NickTomlin/boa/ast"
	"github.com/NickTomlin/boa/errors"
)

// Statement-level tests (statements.go)
// - Declaration statements and binding name rules
// - Automatic semicolon insertion
// - Control flow statements and their clause bodies
// - Labels, break, and continue resolution
// - Annex-B function-in-clause compatibility

func TestVarStatements(t *testing.T) {
	program := parse(t, "var a = 1, b, c = 2;")
	decl, ok := program.Stmts[0].(*ast.Var)
	require.True(t, ok)
	require.Equal(t, ast.KindVar, decl.Kind)
	require.Len(t, decl.Decls, 3)
	require.Equal(t, "a", decl.Decls[0].Name.Name)
	require.Equal(t, "1", decl.Decls[0].Value.String())
	require.Nil(t, decl.Decls[1].Value)

	decl = parse(t, "let x = f();").Stmts[0].(*ast.Var)
	require.Equal(t, ast.KindLet, decl.Kind)

	decl = parse(t, "const pi = 3.14;").Stmts[0].(*ast.Var)
	require.Equal(t, ast.KindConst, decl.Kind)
}

func TestConstRequiresInitializer(t *testing.T) {
	pe := parseErr(t, "const c;")
	require.Equal(t, errors.E3003, pe.Code())
	require.Equal(t, "early error", pe.Kind())
}

func TestStrictBindingNames(t *testing.T) {
	parse(t, "var eval = 1;")

	pe := parseErr(t, "'use strict'; var eval = 1;")
	require.Equal(t, errors.E3004, pe.Code())

	pe = parseErr(t, "'use strict'; let arguments;")
	require.Equal(t, errors.E3004, pe.Code())
}

func TestAutomaticSemicolonInsertion(t *testing.T) {
	program := parse(t, "a = 1\nb = 2")
	require.Len(t, program.Stmts, 2)

	program = parse(t, "x = f()\n")
	require.Len(t, program.Stmts, 1)

	// Statements inside a block terminate at '}'.
	program = parse(t, "{ a = 1 }")
	block := program.Stmts[0].(*ast.Block)
	require.Len(t, block.Stmts, 1)

	pe := parseErr(t, "a = 1 b = 2")
	require.Equal(t, errors.E2006, pe.Code())
}

func TestDoWhileOptionalSemicolon(t *testing.T) {
	// The terminator after do-while may be omitted even mid-line.
	program := parse(t, "do {} while (0) x = 1;")
	require.Len(t, program.Stmts, 2)
	_, ok := program.Stmts[0].(*ast.DoWhile)
	require.True(t, ok)

	program = parse(t, "do x = x + 1; while (x < 10);")
	require.Len(t, program.Stmts, 1)
}

func TestReturnNewline(t *testing.T) {
	// A line terminator after return ends the statement.
	program := parse(t, "function f() { return\n1; }")
	fn := program.Stmts[0].(*ast.Func)
	require.Len(t, fn.Body.Stmts, 2)
	ret := fn.Body.Stmts[0].(*ast.Return)
	require.Nil(t, ret.Value)

	program = parse(t, "function f() { return 1; }")
	fn = program.Stmts[0].(*ast.Func)
	ret = fn.Body.Stmts[0].(*ast.Return)
	require.Equal(t, "1", ret.Value.String())
}

func TestReturnOutsideFunction(t *testing.T) {
	pe := parseErr(t, "return 1;")
	require.Equal(t, errors.E3007, pe.Code())
}

func TestThrowStatement(t *testing.T) {
	program := parse(t, "throw new Error('boom');")
	th := program.Stmts[0].(*ast.Throw)
	require.Equal(t, `new Error("boom")`, th.Value.String())

	// The argument must start on the same line.
	pe := parseErr(t, "throw\nx;")
	require.Equal(t, errors.E2002, pe.Code())
}

func TestPostfixNewline(t *testing.T) {
	// "a" and "++b" are two statements; postfix never attaches across
	// a line terminator.
	program := parse(t, "a\n++b;")
	require.Len(t, program.Stmts, 2)
	require.Equal(t, "a;", program.Stmts[0].String())
	require.Equal(t, "(++b);", program.Stmts[1].String())

	program = parse(t, "a++\nb;")
	require.Len(t, program.Stmts, 2)
	require.Equal(t, "(a++);", program.Stmts[0].String())
}

func TestIfElse(t *testing.T) {
	program := parse(t, "if (a) { x = 1; } else if (b) { x = 2; } else { x = 3; }")
	stmt := program.Stmts[0].(*ast.If)
	require.Equal(t, "a", stmt.Cond.String())

	elseIf, ok := stmt.Else.(*ast.If)
	require.True(t, ok)
	require.Equal(t, "b", elseIf.Cond.String())
	require.NotNil(t, elseIf.Else)

	// Single-statement clause bodies.
	program = parse(t, "if (a) x = 1; else x = 2;")
	stmt = program.Stmts[0].(*ast.If)
	_, ok = stmt.Then.(*ast.ExprStmt)
	require.True(t, ok)
}

func TestAnnexBFunctionInIfClause(t *testing.T) {
	// Sloppy mode desugars the declaration into a one-statement block.
	program := parse(t, "if (x) function f() {}")
	stmt := program.Stmts[0].(*ast.If)
	block, ok := stmt.Then.(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Stmts, 1)
	_, ok = block.Stmts[0].(*ast.Func)
	require.True(t, ok)

	pe := parseErr(t, "'use strict'; if (x) function f() {}")
	require.Equal(t, errors.E2001, pe.Code())

	pe = parseErr(t, "if (x) function f() {}", WithAnnexB(false))
	require.Equal(t, errors.E2001, pe.Code())

	// Generators never qualify for the compatibility form.
	pe = parseErr(t, "if (x) function* f() {}")
	require.Equal(t, errors.E2001, pe.Code())

	// Loop bodies reject function declarations outright.
	pe = parseErr(t, "while (x) function f() {}")
	require.Equal(t, errors.E2001, pe.Code())
}

func TestLexicalDeclarationInClause(t *testing.T) {
	pe := parseErr(t, "if (x) let y = 1;")
	require.Equal(t, errors.E2001, pe.Code())

	pe = parseErr(t, "while (x) const y = 1;")
	require.Equal(t, errors.E2001, pe.Code())
}

func TestLabels(t *testing.T) {
	program := parse(t, "outer: while (a) { inner: while (b) { break outer; continue inner; } }")
	labeled, ok := program.Stmts[0].(*ast.Labeled)
	require.True(t, ok)
	require.Equal(t, "outer", labeled.Label.Name)
	_, ok = labeled.Stmt.(*ast.While)
	require.True(t, ok)

	// Chained labels flatten onto one statement and both resolve.
	parse(t, "a: b: while (c) { continue a; }")

	// A labelled block accepts break but not continue.
	parse(t, "lbl: { break lbl; }")
	pe := parseErr(t, "lbl: { continue lbl; }")
	require.Equal(t, errors.E3012, pe.Code())
}

func TestLabelErrors(t *testing.T) {
	pe := parseErr(t, "a: a: x = 1;")
	require.Equal(t, errors.E3002, pe.Code())

	pe = parseErr(t, "a: while (x) { a: y = 1; }")
	require.Equal(t, errors.E3002, pe.Code())

	pe = parseErr(t, "while (x) { break lbl; }")
	require.Equal(t, errors.E3008, pe.Code())

	pe = parseErr(t, "break;")
	require.Equal(t, errors.E3011, pe.Code())

	pe = parseErr(t, "continue;")
	require.Equal(t, errors.E3012, pe.Code())

	// Break in a switch is legal; continue is not.
	parse(t, "switch (x) { case 1: break; }")
	pe = parseErr(t, "switch (x) { case 1: continue; }")
	require.Equal(t, errors.E3012, pe.Code())
}

func TestBreakLabelSameLine(t *testing.T) {
	// A label only attaches to break on the same line; here the break is
	// bare and "lbl" becomes its own statement.
	program := parse(t, "lbl: while (x) { break\nlbl; }")
	labeled := program.Stmts[0].(*ast.Labeled)
	body := labeled.Stmt.(*ast.While).Body.(*ast.Block)
	require.Len(t, body.Stmts, 2)
	br := body.Stmts[0].(*ast.Break)
	require.Nil(t, br.Label)
}

func TestLabeledFunctions(t *testing.T) {
	// Annex-B tolerates a labelled plain function in sloppy code.
	parse(t, "l: function f() {}")

	pe := parseErr(t, "'use strict'; l: function f() {}")
	require.Equal(t, errors.E3010, pe.Code())

	pe = parseErr(t, "l: function* g() {}")
	require.Equal(t, errors.E3010, pe.Code())

	pe = parseErr(t, "l: function f() {}", WithAnnexB(false))
	require.Equal(t, errors.E3010, pe.Code())
}

func TestClassicFor(t *testing.T) {
	program := parse(t, "for (var i = 0; i < 10; i++) { f(i); }")
	loop := program.Stmts[0].(*ast.For)
	require.Equal(t, "var i = 0;", loop.Init.String())
	require.Equal(t, "(i < 10)", loop.Cond.String())
	require.Equal(t, "(i++)", loop.Post.String())

	// All three clauses may be empty.
	program = parse(t, "for (;;) break;")
	loop = program.Stmts[0].(*ast.For)
	require.Nil(t, loop.Init)
	require.Nil(t, loop.Cond)
	require.Nil(t, loop.Post)

	// const in a classic for-head still requires an initializer.
	pe := parseErr(t, "for (const x;;) ;")
	require.Equal(t, errors.E3003, pe.Code())
}

func TestForIn(t *testing.T) {
	program := parse(t, "for (var k in obj) { f(k); }")
	loop := program.Stmts[0].(*ast.ForIn)
	left := loop.Left.(*ast.Var)
	require.Equal(t, "k", left.Decls[0].Name.Name)
	require.Equal(t, "obj", loop.Object.String())

	// A bare assignment target is also accepted.
	program = parse(t, "for (x in y) {}")
	loop = program.Stmts[0].(*ast.ForIn)
	_, ok := loop.Left.(*ast.ExprStmt)
	require.True(t, ok)

	pe := parseErr(t, "for (var i = 0 in y) {}")
	require.Equal(t, errors.E2001, pe.Code())

	pe = parseErr(t, "for (f() in y) {}")
	require.Equal(t, errors.E3001, pe.Code())
}

func TestForOf(t *testing.T) {
	program := parse(t, "for (let v of list) { f(v); }")
	loop := program.Stmts[0].(*ast.ForOf)
	require.False(t, loop.Await)
	require.Equal(t, "list", loop.Iter.String())

	left := loop.Left.(*ast.Var)
	require.Equal(t, ast.KindLet, left.Kind)

	pe := parseErr(t, "for (let v = 1 of list) {}")
	require.Equal(t, errors.E2001, pe.Code())
}

func TestForAwait(t *testing.T) {
	program := parse(t, "async function f() { for await (const x of xs) { g(x); } }")
	fn := program.Stmts[0].(*ast.Func)
	loop := fn.Body.Stmts[0].(*ast.ForOf)
	require.True(t, loop.Await)

	pe := parseErr(t, "for await (x of y) {}")
	require.Equal(t, errors.E3006, pe.Code())

	pe = parseErr(t, "async function f() { for await (x in y) {} }")
	require.Equal(t, errors.E2001, pe.Code())

	pe = parseErr(t, "async function f() { for await (;;) {} }")
	require.Equal(t, errors.E2001, pe.Code())
}

func TestSwitch(t *testing.T) {
	program := parse(t, `
switch (x) {
case 1:
	a = 1;
	break;
case 2:
case 3:
	a = 2;
	break;
default:
	a = 0;
}
`)
	sw := program.Stmts[0].(*ast.Switch)
	require.Equal(t, "x", sw.Tag.String())
	require.Len(t, sw.Cases, 4)
	require.Equal(t, "1", sw.Cases[0].Cond.String())
	require.Len(t, sw.Cases[0].Body, 2)
	require.Empty(t, sw.Cases[1].Body)
	require.Nil(t, sw.Cases[3].Cond)

	pe := parseErr(t, "switch (x) { default: default: }")
	require.Equal(t, errors.E2001, pe.Code())
	require.Contains(t, pe.Message(), "default")
}

func TestTryStatement(t *testing.T) {
	program := parse(t, "try { a(); } catch (e) { b(e); } finally { c(); }")
	try := program.Stmts[0].(*ast.Try)
	require.NotNil(t, try.Catch)
	require.Equal(t, "e", try.Catch.Param.Name)
	require.NotNil(t, try.Finally)

	// The catch binding is optional.
	program = parse(t, "try { a(); } catch { b(); }")
	try = program.Stmts[0].(*ast.Try)
	require.Nil(t, try.Catch.Param)
	require.Nil(t, try.Finally)

	program = parse(t, "try { a(); } finally { c(); }")
	try = program.Stmts[0].(*ast.Try)
	require.Nil(t, try.Catch)

	pe := parseErr(t, "try { a(); }")
	require.Equal(t, errors.E2001, pe.Code())
	require.Contains(t, pe.Message(), "catch or finally")
}

func TestDebuggerAndEmpty(t *testing.T) {
	program := parse(t, "debugger;")
	_, ok := program.Stmts[0].(*ast.Debugger)
	require.True(t, ok)

	program = parse(t, ";")
	_, ok = program.Stmts[0].(*ast.Empty)
	require.True(t, ok)
}

func TestNestedBlocks(t *testing.T) {
	program := parse(t, "{ let a = 1; { let a = 2; } }")
	outer := program.Stmts[0].(*ast.Block)
	require.Len(t, outer.Stmts, 2)
	_, ok := outer.Stmts[1].(*ast.Block)
	require.True(t, ok)
}
