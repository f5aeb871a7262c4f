package parser

import (
	"github.com/NickTomlin/boa/ast"
	"github.com/NickTomlin/boa/errors"
	"github.com/NickTomlin/boa/token"
)

// parseStatement dispatches on the current token. It finishes with
// curToken on the last token of the statement (including a consumed
// semicolon); the caller advances past it.
func (p *Parser) parseStatement() ast.Stmt {
	if p.failed() {
		return nil
	}
	if !p.enter() {
		return nil
	}
	defer p.leave()
	if !p.checkValueKeywordEscape(p.curToken) {
		return nil
	}

	switch p.curToken.Type {
	case token.SEMICOLON:
		return &ast.Empty{Semi: p.curToken.StartPosition}
	case token.LBRACE:
		return p.parseBlock()
	case token.VAR, token.LET, token.CONST:
		return p.parseVarStatement()
	case token.FUNCTION:
		if fn := p.parseFuncDecl(p.curToken.StartPosition, false); fn != nil {
			return fn
		}
		return nil
	case token.CLASS:
		return p.parseClassDecl()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		return p.parseDoWhile()
	case token.FOR:
		return p.parseFor()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.THROW:
		return p.parseThrow()
	case token.TRY:
		return p.parseTry()
	case token.SWITCH:
		return p.parseSwitch()
	case token.DEBUGGER:
		return p.parseDebugger()
	case token.IDENT:
		if p.isAsyncFunctionAhead() {
			pos := p.curToken.StartPosition
			p.nextToken() // onto 'function'
			if fn := p.parseFuncDecl(pos, true); fn != nil {
				return fn
			}
			return nil
		}
		if p.peekTokenIs(token.COLON) {
			return p.parseLabeled()
		}
		return p.parseExpressionStatement()
	case token.YIELD, token.AWAIT:
		if p.identLike(p.curToken) && p.peekTokenIs(token.COLON) {
			return p.parseLabeled()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// isAsyncFunctionAhead reports whether the current token begins an async
// function: the contextual keyword `async` directly followed, with no
// line terminator, by `function`.
func (p *Parser) isAsyncFunctionAhead() bool {
	return p.curToken.Type == token.IDENT &&
		p.curToken.Literal == "async" &&
		!p.curToken.HasEscape &&
		p.peekTokenIs(token.FUNCTION) &&
		!p.peekToken.NewlineBefore
}

// expectSemicolon consumes a statement terminator, applying automatic
// semicolon insertion: an explicit ';' is consumed; otherwise a '}' or
// end of file ahead, or a line terminator before the next token,
// terminates the statement.
func (p *Parser) expectSemicolon(context string) token.Position {
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return p.curToken.StartPosition
	}
	if p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) || p.peekToken.NewlineBefore {
		return token.NoPos
	}
	p.syntaxErrorAt(p.peekToken, errors.E2006,
		"unexpected %s after %s (expected ';')", tokenDescription(p.peekToken), context)
	return token.NoPos
}

func (p *Parser) parseExpressionStatement() ast.Stmt {
	x := p.parseExpression(LOWEST)
	if x == nil {
		return nil
	}
	stmt := &ast.ExprStmt{X: x}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		stmt.Semi = p.curToken.StartPosition
		return stmt
	}
	if p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) || p.peekToken.NewlineBefore {
		return stmt
	}
	// A lone identifier followed by another token on the same line is
	// often a misspelled keyword; suggest one if it is close.
	hint := ""
	if id, ok := x.(*ast.Ident); ok {
		hint = errors.FormatSuggestions(errors.SuggestSimilar(id.Name, token.Keywords()))
	}
	if p.err == nil {
		p.err = NewSyntaxError(ErrorOpts{
			Code: errors.E2006,
			Message: "unexpected " + tokenDescription(p.peekToken) +
				" after expression (expected ';')",
			File:          p.l.Filename(),
			StartPosition: p.peekToken.StartPosition,
			EndPosition:   p.peekToken.EndPosition,
			SourceCode:    p.l.GetLineText(p.peekToken),
			Hint:          hint,
		})
	}
	return nil
}

// parseBlock parses a braced statement list. curToken must be '{'.
func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Lbrace: p.curToken.StartPosition}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.syntaxErrorAt(p.curToken, errors.E2004, "unexpected end of file (expected '}')")
			return nil
		}
		stmt := p.parseStatement()
		if p.failed() {
			return nil
		}
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		p.nextToken()
		if p.failed() {
			return nil
		}
	}
	block.Rbrace = p.curToken.StartPosition
	return block
}

func (p *Parser) parseVarStatement() ast.Stmt {
	v := p.parseVarCore(false)
	if v == nil {
		return nil
	}
	v.Semi = p.expectSemicolon("declaration")
	if p.failed() {
		return nil
	}
	return v
}

func varKindOf(t token.Type) ast.VarKind {
	switch t {
	case token.LET:
		return ast.KindLet
	case token.CONST:
		return ast.KindConst
	default:
		return ast.KindVar
	}
}

// parseVarCore parses the declarator list of a var/let/const statement.
// curToken must be the keyword. In a for-statement head the caller
// handles const-initializer and `in`/`of` rules, so forHead suppresses
// the const check and stops after the first declarator when the head
// turns out to be an enumeration.
func (p *Parser) parseVarCore(forHead bool) *ast.Var {
	v := &ast.Var{
		KindPos: p.curToken.StartPosition,
		Kind:    varKindOf(p.curToken.Type),
	}
	for {
		nameTok, ok := p.expectIdentLike("variable declaration")
		if !ok {
			return nil
		}
		if !p.checkBindingName(nameTok) {
			return nil
		}
		d := &ast.Declarator{Name: p.newIdent(nameTok)}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken() // onto '='
			p.nextToken() // first token of the initializer
			if p.failed() {
				return nil
			}
			d.Value = p.parseExpression(LOWEST)
			if d.Value == nil {
				return nil
			}
		} else if v.Kind == ast.KindConst && !forHead {
			p.earlyErrorAt(nameTok, errors.E3003,
				"missing initializer in const declaration")
			return nil
		}
		v.Decls = append(v.Decls, d)
		if forHead && len(v.Decls) == 1 && (p.peekTokenIs(token.IN) || p.peekIsOf()) {
			return v
		}
		if !p.peekTokenIs(token.COMMA) {
			return v
		}
		p.nextToken() // onto ','
	}
}

// checkBindingName enforces strict-mode restrictions on binding names.
func (p *Parser) checkBindingName(tok token.Token) bool {
	if p.flags.strict && (tok.Literal == "eval" || tok.Literal == "arguments") {
		p.earlyErrorAt(tok, errors.E3004,
			"'%s' cannot be bound in strict mode", tok.Literal)
		return false
	}
	return true
}

func (p *Parser) parseIf() ast.Stmt {
	ifPos := p.curToken.StartPosition
	if !p.expectPeek("if statement", token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	if !p.expectPeek("if statement", token.RPAREN) {
		return nil
	}
	p.nextToken()
	if p.failed() {
		return nil
	}
	then := p.parseClauseBody("an if", true)
	if then == nil {
		return nil
	}
	stmt := &ast.If{IfPos: ifPos, Cond: cond, Then: then}
	if p.peekTokenIs(token.ELSE) {
		if !p.expectPeek("if statement", token.ELSE) {
			return nil
		}
		p.nextToken()
		if p.failed() {
			return nil
		}
		if p.curTokenIs(token.IF) {
			stmt.Else = p.parseIf()
		} else {
			stmt.Else = p.parseClauseBody("an else", true)
		}
		if stmt.Else == nil {
			return nil
		}
	}
	return stmt
}

// parseClauseBody parses the single statement hanging off an if, else, or
// loop clause. Function declarations are not statements; as an if/else
// clause body they are desugared into a one-statement block outside
// strict mode when Annex-B compatibility is enabled, and rejected
// everywhere else. Lexical declarations are always rejected here.
func (p *Parser) parseClauseBody(clause string, allowAnnexB bool) ast.Stmt {
	if p.curTokenIs(token.FUNCTION) || p.isAsyncFunctionAhead() {
		plain := p.curTokenIs(token.FUNCTION) && !p.peekTokenIs(token.ASTERISK)
		if !plain || p.flags.strict || !p.annexB || !allowAnnexB {
			p.syntaxErrorAt(p.curToken, errors.E2001,
				"function declarations cannot be the body of %s clause; wrap it in a block", clause)
			return nil
		}
		fn := p.parseFuncDecl(p.curToken.StartPosition, false)
		if fn == nil {
			return nil
		}
		return &ast.Block{
			Lbrace: fn.Pos(),
			Stmts:  []ast.Stmt{fn},
			Rbrace: fn.Body.Rbrace,
		}
	}
	switch p.curToken.Type {
	case token.CLASS, token.LET, token.CONST:
		p.syntaxErrorAt(p.curToken, errors.E2001,
			"declarations cannot be the body of %s clause; wrap it in a block", clause)
		return nil
	}
	if p.identLike(p.curToken) && p.peekTokenIs(token.COLON) {
		p.clauseLabel = true
		defer func() { p.clauseLabel = false }()
	}
	return p.parseStatement()
}

// parseIterationBody parses a loop body with break/continue bound to it.
func (p *Parser) parseIterationBody(clause string) ast.Stmt {
	saved := p.flags.inIteration
	p.flags.inIteration = true
	defer func() { p.flags.inIteration = saved }()
	return p.parseClauseBody(clause, false)
}

func (p *Parser) parseWhile() ast.Stmt {
	whilePos := p.curToken.StartPosition
	if !p.expectPeek("while statement", token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	if !p.expectPeek("while statement", token.RPAREN) {
		return nil
	}
	p.nextToken()
	if p.failed() {
		return nil
	}
	body := p.parseIterationBody("a while")
	if body == nil {
		return nil
	}
	return &ast.While{WhilePos: whilePos, Cond: cond, Body: body}
}

func (p *Parser) parseDoWhile() ast.Stmt {
	doPos := p.curToken.StartPosition
	p.nextToken()
	if p.failed() {
		return nil
	}
	body := p.parseIterationBody("a do")
	if body == nil {
		return nil
	}
	if !p.expectPeek("do statement", token.WHILE) {
		return nil
	}
	if !p.expectPeek("do statement", token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	if !p.expectPeek("do statement", token.RPAREN) {
		return nil
	}
	rparen := p.curToken.StartPosition
	// do-while may always omit its terminator, even mid-line.
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return &ast.DoWhile{DoPos: doPos, Body: body, Cond: cond, Rparen: rparen}
}

// peekIsOf reports whether the next token is the contextual keyword `of`,
// spelled without escapes.
func (p *Parser) peekIsOf() bool {
	return p.peekToken.Type == token.IDENT &&
		p.peekToken.Literal == "of" &&
		!p.peekToken.HasEscape
}

func (p *Parser) parseFor() ast.Stmt {
	forPos := p.curToken.StartPosition
	isAwait := false
	if p.peekTokenIs(token.AWAIT) {
		awaitTok := p.peekToken
		if !p.expectPeek("for statement", token.AWAIT) {
			return nil
		}
		if !p.flags.allowAwait {
			p.earlyErrorAt(awaitTok, errors.E3006,
				"'for await' is only valid in async functions")
			return nil
		}
		isAwait = true
	}
	if !p.expectPeek("for statement", token.LPAREN) {
		return nil
	}

	// Empty init clause
	if p.peekTokenIs(token.SEMICOLON) {
		if isAwait {
			p.syntaxErrorAt(p.peekToken, errors.E2001,
				"'for await' loops must iterate with 'of'")
			return nil
		}
		p.nextToken() // onto ';'
		return p.parseClassicFor(forPos, nil)
	}

	if p.peekTokenIs(token.VAR) || p.peekTokenIs(token.LET) || p.peekTokenIs(token.CONST) {
		p.nextToken() // onto the keyword
		if !p.checkKeywordEscape(p.curToken) {
			return nil
		}
		p.noIn = true
		v := p.parseVarCore(true)
		p.noIn = false
		if v == nil {
			return nil
		}
		if p.peekTokenIs(token.IN) || p.peekIsOf() {
			if v.Decls[0].Value != nil {
				p.syntaxErrorAt(p.peekToken, errors.E2001,
					"the loop variable of a for-%s statement cannot have an initializer",
					enumKind(p.peekToken))
				return nil
			}
			return p.parseForInOf(forPos, isAwait, v)
		}
		if isAwait {
			p.syntaxErrorAt(p.curToken, errors.E2001,
				"'for await' loops must iterate with 'of'")
			return nil
		}
		if v.Kind == ast.KindConst {
			for _, d := range v.Decls {
				if d.Value == nil {
					p.earlyErrorAt(p.curToken, errors.E3003,
						"missing initializer in const declaration")
					return nil
				}
			}
		}
		if !p.expectPeek("for statement", token.SEMICOLON) {
			return nil
		}
		return p.parseClassicFor(forPos, v)
	}

	// Expression head
	p.nextToken()
	if p.failed() {
		return nil
	}
	p.noIn = true
	x := p.parseExpression(LOWEST)
	p.noIn = false
	if x == nil {
		return nil
	}
	left := &ast.ExprStmt{X: x}
	if p.peekTokenIs(token.IN) || p.peekIsOf() {
		if !isAssignTarget(x) {
			p.earlyErrorAt(p.peekToken, errors.E3001,
				"invalid assignment target in for-%s statement", enumKind(p.peekToken))
			return nil
		}
		return p.parseForInOf(forPos, isAwait, left)
	}
	if isAwait {
		p.syntaxErrorAt(p.curToken, errors.E2001,
			"'for await' loops must iterate with 'of'")
		return nil
	}
	if !p.expectPeek("for statement", token.SEMICOLON) {
		return nil
	}
	return p.parseClassicFor(forPos, left)
}

func enumKind(tok token.Token) string {
	if tok.Type == token.IN {
		return "in"
	}
	return "of"
}

// parseForInOf finishes a for-in or for-of statement; the peek token is
// `in` or `of`.
func (p *Parser) parseForInOf(forPos token.Position, isAwait bool, left ast.Stmt) ast.Stmt {
	isIn := p.peekTokenIs(token.IN)
	if isIn && isAwait {
		p.syntaxErrorAt(p.peekToken, errors.E2001,
			"'for await' loops must iterate with 'of'")
		return nil
	}
	p.nextToken() // onto 'in' / 'of'
	if isIn && !p.checkKeywordEscape(p.curToken) {
		return nil
	}
	p.nextToken() // first token of the iterated expression
	if p.failed() {
		return nil
	}
	right := p.parseExpression(LOWEST)
	if right == nil {
		return nil
	}
	if !p.expectPeek("for statement", token.RPAREN) {
		return nil
	}
	p.nextToken()
	if p.failed() {
		return nil
	}
	body := p.parseIterationBody("a for")
	if body == nil {
		return nil
	}
	if isIn {
		return &ast.ForIn{ForPos: forPos, Left: left, Object: right, Body: body}
	}
	return &ast.ForOf{ForPos: forPos, Await: isAwait, Left: left, Iter: right, Body: body}
}

// parseClassicFor finishes a three-clause for statement; curToken is the
// first ';' of the head.
func (p *Parser) parseClassicFor(forPos token.Position, init ast.Stmt) ast.Stmt {
	stmt := &ast.For{ForPos: forPos, Init: init}
	if !p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		if p.failed() {
			return nil
		}
		stmt.Cond = p.parseExpression(LOWEST)
		if stmt.Cond == nil {
			return nil
		}
	}
	if !p.expectPeek("for statement", token.SEMICOLON) {
		return nil
	}
	if !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		if p.failed() {
			return nil
		}
		stmt.Post = p.parseExpression(LOWEST)
		if stmt.Post == nil {
			return nil
		}
	}
	if !p.expectPeek("for statement", token.RPAREN) {
		return nil
	}
	p.nextToken()
	if p.failed() {
		return nil
	}
	stmt.Body = p.parseIterationBody("a for")
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseReturn() ast.Stmt {
	if !p.flags.allowReturn {
		p.earlyErrorAt(p.curToken, errors.E3007, "illegal return statement")
		return nil
	}
	stmt := &ast.Return{ReturnPos: p.curToken.StartPosition}
	if !p.peekTokenIs(token.SEMICOLON) && !p.peekTokenIs(token.RBRACE) &&
		!p.peekTokenIs(token.EOF) && !p.peekToken.NewlineBefore {
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
		if stmt.Value == nil {
			return nil
		}
	}
	stmt.Semi = p.expectSemicolon("return statement")
	if p.failed() {
		return nil
	}
	return stmt
}

// findLabel resolves a label name against the visible label stack.
func (p *Parser) findLabel(name string) (labelInfo, bool) {
	for i := len(p.labels) - 1; i >= 0; i-- {
		if p.labels[i].name == name {
			return p.labels[i], true
		}
	}
	return labelInfo{}, false
}

func (p *Parser) parseBreak() ast.Stmt {
	stmt := &ast.Break{BreakPos: p.curToken.StartPosition}
	// A label only attaches on the same line.
	if p.identLike(p.peekToken) && !p.peekToken.NewlineBefore {
		p.nextToken()
		if _, ok := p.findLabel(p.curToken.Literal); !ok {
			p.earlyErrorAt(p.curToken, errors.E3008,
				"undefined label '%s'", p.curToken.Literal)
			return nil
		}
		stmt.Label = p.newIdent(p.curToken)
	} else if !p.flags.inIteration && !p.flags.inSwitch {
		p.earlyErrorAt(p.curToken, errors.E3011, "illegal break statement")
		return nil
	}
	stmt.Semi = p.expectSemicolon("break statement")
	if p.failed() {
		return nil
	}
	return stmt
}

func (p *Parser) parseContinue() ast.Stmt {
	stmt := &ast.Continue{ContinuePos: p.curToken.StartPosition}
	if p.identLike(p.peekToken) && !p.peekToken.NewlineBefore {
		p.nextToken()
		info, ok := p.findLabel(p.curToken.Literal)
		if !ok {
			p.earlyErrorAt(p.curToken, errors.E3008,
				"undefined label '%s'", p.curToken.Literal)
			return nil
		}
		if !info.iteration {
			p.earlyErrorAt(p.curToken, errors.E3012,
				"label '%s' does not denote an iteration statement", p.curToken.Literal)
			return nil
		}
		stmt.Label = p.newIdent(p.curToken)
	}
	if !p.flags.inIteration {
		p.earlyErrorAt(p.curToken, errors.E3012, "illegal continue statement")
		return nil
	}
	stmt.Semi = p.expectSemicolon("continue statement")
	if p.failed() {
		return nil
	}
	return stmt
}

// parseLabeled parses one or more consecutive labels and the statement
// they name. curToken is the first label identifier.
func (p *Parser) parseLabeled() ast.Stmt {
	clause := p.clauseLabel
	p.clauseLabel = false

	type pending struct {
		label *ast.Ident
		colon token.Position
	}
	var chain []pending
	for p.identLike(p.curToken) && p.peekTokenIs(token.COLON) {
		name := p.curToken.Literal
		if _, dup := p.findLabel(name); dup {
			p.earlyErrorAt(p.curToken, errors.E3002, "label '%s' has already been declared", name)
			return nil
		}
		for _, c := range chain {
			if c.label.Name == name {
				p.earlyErrorAt(p.curToken, errors.E3002, "label '%s' has already been declared", name)
				return nil
			}
		}
		entry := pending{label: p.newIdent(p.curToken)}
		p.nextToken() // onto ':'
		entry.colon = p.curToken.StartPosition
		chain = append(chain, entry)
		p.nextToken() // first token of the labelled statement
		if p.failed() {
			return nil
		}
	}

	if p.curTokenIs(token.FUNCTION) || p.isAsyncFunctionAhead() {
		plain := p.curTokenIs(token.FUNCTION) && !p.peekTokenIs(token.ASTERISK)
		if clause || p.flags.strict || !plain || !p.annexB {
			p.earlyErrorAt(p.curToken, errors.E3010,
				"function declarations cannot be labelled here")
			return nil
		}
	}

	iteration := false
	switch p.curToken.Type {
	case token.WHILE, token.DO, token.FOR:
		iteration = true
	}
	for _, c := range chain {
		p.labels = append(p.labels, labelInfo{name: c.label.Name, iteration: iteration})
	}
	stmt := p.parseStatement()
	p.labels = p.labels[:len(p.labels)-len(chain)]
	if stmt == nil {
		return nil
	}
	for i := len(chain) - 1; i >= 0; i-- {
		stmt = &ast.Labeled{Label: chain[i].label, Colon: chain[i].colon, Stmt: stmt}
	}
	return stmt
}

func (p *Parser) parseThrow() ast.Stmt {
	throwPos := p.curToken.StartPosition
	if p.peekToken.NewlineBefore || p.peekTokenIs(token.SEMICOLON) ||
		p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) {
		p.syntaxErrorAt(p.curToken, errors.E2002, "missing expression after 'throw'")
		return nil
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	stmt := &ast.Throw{ThrowPos: throwPos, Value: value}
	stmt.Semi = p.expectSemicolon("throw statement")
	if p.failed() {
		return nil
	}
	return stmt
}

func (p *Parser) parseTry() ast.Stmt {
	tryPos := p.curToken.StartPosition
	if !p.expectPeek("try statement", token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	stmt := &ast.Try{TryPos: tryPos, Body: body}
	if p.peekTokenIs(token.CATCH) {
		if !p.expectPeek("try statement", token.CATCH) {
			return nil
		}
		catch := &ast.Catch{CatchPos: p.curToken.StartPosition}
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken() // onto '('
			nameTok, ok := p.expectIdentLike("catch clause")
			if !ok {
				return nil
			}
			if !p.checkBindingName(nameTok) {
				return nil
			}
			catch.Param = p.newIdent(nameTok)
			if !p.expectPeek("catch clause", token.RPAREN) {
				return nil
			}
		}
		if !p.expectPeek("catch clause", token.LBRACE) {
			return nil
		}
		catch.Body = p.parseBlock()
		if catch.Body == nil {
			return nil
		}
		stmt.Catch = catch
	}
	if p.peekTokenIs(token.FINALLY) {
		if !p.expectPeek("try statement", token.FINALLY) {
			return nil
		}
		if !p.expectPeek("finally clause", token.LBRACE) {
			return nil
		}
		stmt.Finally = p.parseBlock()
		if stmt.Finally == nil {
			return nil
		}
	}
	if stmt.Catch == nil && stmt.Finally == nil {
		p.syntaxErrorAt(p.curToken, errors.E2001,
			"missing catch or finally clause after try")
		return nil
	}
	return stmt
}

func (p *Parser) parseSwitch() ast.Stmt {
	stmt := &ast.Switch{SwitchPos: p.curToken.StartPosition}
	if !p.expectPeek("switch statement", token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Tag = p.parseExpression(LOWEST)
	if stmt.Tag == nil {
		return nil
	}
	if !p.expectPeek("switch statement", token.RPAREN) {
		return nil
	}
	if !p.expectPeek("switch statement", token.LBRACE) {
		return nil
	}
	stmt.Lbrace = p.curToken.StartPosition

	savedSwitch := p.flags.inSwitch
	p.flags.inSwitch = true
	defer func() { p.flags.inSwitch = savedSwitch }()

	seenDefault := false
	p.nextToken()
	if p.failed() {
		return nil
	}
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.syntaxErrorAt(p.curToken, errors.E2004, "unexpected end of file (expected '}')")
			return nil
		}
		c := &ast.Case{CasePos: p.curToken.StartPosition}
		switch p.curToken.Type {
		case token.CASE:
			if !p.checkKeywordEscape(p.curToken) {
				return nil
			}
			p.nextToken()
			c.Cond = p.parseExpression(LOWEST)
			if c.Cond == nil {
				return nil
			}
		case token.DEFAULT:
			if !p.checkKeywordEscape(p.curToken) {
				return nil
			}
			if seenDefault {
				p.syntaxErrorAt(p.curToken, errors.E2001,
					"more than one default clause in switch statement")
				return nil
			}
			seenDefault = true
		default:
			p.syntaxErrorAt(p.curToken, errors.E2001,
				"unexpected %s in switch body (expected 'case' or 'default')",
				tokenDescription(p.curToken))
			return nil
		}
		if !p.expectPeek("switch clause", token.COLON) {
			return nil
		}
		c.Colon = p.curToken.StartPosition
		p.nextToken()
		if p.failed() {
			return nil
		}
		for !p.curTokenIs(token.CASE) && !p.curTokenIs(token.DEFAULT) &&
			!p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
			s := p.parseStatement()
			if p.failed() {
				return nil
			}
			if s != nil {
				c.Body = append(c.Body, s)
			}
			p.nextToken()
			if p.failed() {
				return nil
			}
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	stmt.Rbrace = p.curToken.StartPosition
	return stmt
}

func (p *Parser) parseDebugger() ast.Stmt {
	stmt := &ast.Debugger{DebuggerPos: p.curToken.StartPosition}
	stmt.Semi = p.expectSemicolon("debugger statement")
	if p.failed() {
		return nil
	}
	return stmt
}
