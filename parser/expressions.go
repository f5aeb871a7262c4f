package parser

import (
	"github.com/NickTomlin/boa/ast"
	"github.com/NickTomlin/boa/errors"
	"github.com/NickTomlin/boa/token"
)

// isAssignTarget reports whether an expression may appear on the left of
// an assignment or update operator.
func isAssignTarget(x ast.Expr) bool {
	switch x.(type) {
	case *ast.Ident, *ast.Member, *ast.Index:
		return true
	default:
		return false
	}
}

// checkStrictTarget rejects assignments to eval/arguments in strict mode.
func (p *Parser) checkStrictTarget(tok token.Token, x ast.Expr) bool {
	if !p.flags.strict {
		return true
	}
	if id, ok := x.(*ast.Ident); ok && (id.Name == "eval" || id.Name == "arguments") {
		p.earlyErrorAt(tok, errors.E3004,
			"'%s' cannot be assigned in strict mode", id.Name)
		return false
	}
	return true
}

func (p *Parser) parseIdentExpr() ast.Expr {
	if p.isAsyncFunctionAhead() {
		pos := p.curToken.StartPosition
		p.nextToken() // onto 'function'
		return p.parseFuncExprAt(pos, true)
	}
	return p.newIdent(p.curToken)
}

func (p *Parser) parseThis() ast.Expr {
	return &ast.This{ThisPos: p.curToken.StartPosition}
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	opTok := p.curToken
	p.nextToken()
	if p.failed() {
		return nil
	}
	x := p.parseExpression(UNARY)
	if x == nil {
		return nil
	}
	if opTok.Type == token.DELETE && p.flags.strict {
		if _, ok := x.(*ast.Ident); ok {
			p.earlyErrorAt(opTok, errors.E3001,
				"cannot delete an unqualified name in strict mode")
			return nil
		}
	}
	return &ast.Prefix{OpPos: opTok.StartPosition, Op: opTok.Literal, X: x}
}

func (p *Parser) parseUpdatePrefix() ast.Expr {
	opTok := p.curToken
	p.nextToken()
	if p.failed() {
		return nil
	}
	x := p.parseExpression(UNARY)
	if x == nil {
		return nil
	}
	if !isAssignTarget(x) {
		p.earlyErrorAt(opTok, errors.E3001,
			"invalid operand for '%s'", opTok.Literal)
		return nil
	}
	if !p.checkStrictTarget(opTok, x) {
		return nil
	}
	return &ast.Prefix{OpPos: opTok.StartPosition, Op: opTok.Literal, X: x}
}

func (p *Parser) parsePostfix(left ast.Expr) ast.Expr {
	opTok := p.curToken
	if !isAssignTarget(left) {
		p.earlyErrorAt(opTok, errors.E3001,
			"invalid operand for '%s'", opTok.Literal)
		return nil
	}
	if !p.checkStrictTarget(opTok, left) {
		return nil
	}
	return &ast.Postfix{X: left, OpPos: opTok.StartPosition, Op: opTok.Literal}
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	opTok := p.curToken
	prec := p.currentPrecedence()
	if rightAssociative[opTok.Type] {
		prec--
	}
	p.nextToken()
	if p.failed() {
		return nil
	}
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ast.Infix{X: left, OpPos: opTok.StartPosition, Op: opTok.Literal, Y: right}
}

func (p *Parser) parseAssign(left ast.Expr) ast.Expr {
	opTok := p.curToken
	if !isAssignTarget(left) {
		p.earlyErrorAt(opTok, errors.E3001, "invalid assignment target")
		return nil
	}
	if !p.checkStrictTarget(opTok, left) {
		return nil
	}
	p.nextToken()
	if p.failed() {
		return nil
	}
	value := p.parseExpression(ASSIGN - 1)
	if value == nil {
		return nil
	}
	return &ast.Assign{
		Target: left,
		OpPos:  opTok.StartPosition,
		Op:     opTok.Literal,
		Value:  value,
	}
}

func (p *Parser) parseConditional(left ast.Expr) ast.Expr {
	question := p.curToken.StartPosition
	p.nextToken()
	if p.failed() {
		return nil
	}
	then := p.parseExpression(LOWEST)
	if then == nil {
		return nil
	}
	if !p.expectPeek("conditional expression", token.COLON) {
		return nil
	}
	colon := p.curToken.StartPosition
	p.nextToken()
	if p.failed() {
		return nil
	}
	els := p.parseExpression(CONDITIONAL - 1)
	if els == nil {
		return nil
	}
	return &ast.Conditional{
		X:        left,
		Question: question,
		Then:     then,
		Colon:    colon,
		Else:     els,
	}
}

// parseArguments parses a parenthesized argument list; curToken must be
// '('. It finishes with curToken on ')'.
func (p *Parser) parseArguments(context string) ([]ast.Expr, token.Position, bool) {
	var args []ast.Expr
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args, p.curToken.StartPosition, true
	}
	for {
		p.nextToken()
		if p.failed() {
			return nil, token.NoPos, false
		}
		var arg ast.Expr
		if p.curTokenIs(token.SPREAD) {
			arg = p.parseSpreadValue()
		} else {
			arg = p.parseExpression(LOWEST)
		}
		if arg == nil {
			return nil, token.NoPos, false
		}
		args = append(args, arg)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if p.peekTokenIs(token.RPAREN) {
				break // trailing comma
			}
			continue
		}
		break
	}
	if !p.expectPeek(context, token.RPAREN) {
		return nil, token.NoPos, false
	}
	return args, p.curToken.StartPosition, true
}

func (p *Parser) parseCall(left ast.Expr) ast.Expr {
	lparen := p.curToken.StartPosition
	args, rparen, ok := p.parseArguments("argument list")
	if !ok {
		return nil
	}
	return &ast.Call{Fun: left, Lparen: lparen, Args: args, Rparen: rparen}
}

func (p *Parser) parseNew() ast.Expr {
	newPos := p.curToken.StartPosition
	p.nextToken()
	if p.failed() {
		return nil
	}
	// Member access binds within the callee; the argument list does not,
	// so "new a.b()" constructs a.b.
	callee := p.parseExpression(CALL)
	if callee == nil {
		return nil
	}
	n := &ast.New{NewPos: newPos, Callee: callee}
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		n.Lparen = p.curToken.StartPosition
		args, rparen, ok := p.parseArguments("argument list")
		if !ok {
			return nil
		}
		n.Args = args
		n.Rparen = rparen
	}
	return n
}

func (p *Parser) parseMember(left ast.Expr) ast.Expr {
	dot := p.curToken.StartPosition
	p.nextToken()
	if p.failed() {
		return nil
	}
	// Reserved words are valid property names after '.'.
	if !p.curTokenIs(token.IDENT) && !token.IsKeyword(p.curToken.Type) {
		p.syntaxErrorAt(p.curToken, errors.E2003, "expected property name after '.'")
		return nil
	}
	return &ast.Member{X: left, Dot: dot, Attr: p.newIdent(p.curToken)}
}

func (p *Parser) parseIndex(left ast.Expr) ast.Expr {
	lbrack := p.curToken.StartPosition
	p.nextToken()
	if p.failed() {
		return nil
	}
	idx := p.parseExpression(LOWEST)
	if idx == nil {
		return nil
	}
	if !p.expectPeek("index expression", token.RBRACKET) {
		return nil
	}
	return &ast.Index{X: left, Lbrack: lbrack, Index: idx, Rbrack: p.curToken.StartPosition}
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	p.nextToken()
	if p.failed() {
		return nil
	}
	x := p.parseExpression(LOWEST)
	if x == nil {
		return nil
	}
	if !p.expectPeek("parenthesized expression", token.RPAREN) {
		return nil
	}
	return x
}

// parseSpreadValue parses "...expr"; curToken must be the spread token.
func (p *Parser) parseSpreadValue() ast.Expr {
	ellipsis := p.curToken.StartPosition
	p.nextToken()
	if p.failed() {
		return nil
	}
	x := p.parseExpression(LOWEST)
	if x == nil {
		return nil
	}
	return &ast.Spread{Ellipsis: ellipsis, X: x}
}

func (p *Parser) parseArray() ast.Expr {
	arr := &ast.Array{Lbrack: p.curToken.StartPosition}
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		arr.Rbrack = p.curToken.StartPosition
		return arr
	}
	for {
		p.nextToken()
		if p.failed() {
			return nil
		}
		if p.curTokenIs(token.COMMA) {
			p.syntaxErrorAt(p.curToken, errors.E2001,
				"elisions in array literals are not supported")
			return nil
		}
		var item ast.Expr
		if p.curTokenIs(token.SPREAD) {
			item = p.parseSpreadValue()
		} else {
			item = p.parseExpression(LOWEST)
		}
		if item == nil {
			return nil
		}
		arr.Items = append(arr.Items, item)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if p.peekTokenIs(token.RBRACKET) {
				break // trailing comma
			}
			continue
		}
		break
	}
	if !p.expectPeek("array literal", token.RBRACKET) {
		return nil
	}
	arr.Rbrack = p.curToken.StartPosition
	return arr
}

func (p *Parser) parseObject() ast.Expr {
	obj := &ast.Object{Lbrace: p.curToken.StartPosition}
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		obj.Rbrace = p.curToken.StartPosition
		return obj
	}
	for {
		p.nextToken()
		if p.failed() {
			return nil
		}
		item := p.parseObjectItem()
		if item == nil {
			return nil
		}
		obj.Items = append(obj.Items, *item)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if p.peekTokenIs(token.RBRACE) {
				break // trailing comma
			}
			continue
		}
		break
	}
	if !p.expectPeek("object literal", token.RBRACE) {
		return nil
	}
	obj.Rbrace = p.curToken.StartPosition
	return obj
}

// parseObjectItem parses one property of an object literal: spread,
// computed key, key:value, shorthand, or a shorthand method.
func (p *Parser) parseObjectItem() *ast.ObjectItem {
	if p.curTokenIs(token.SPREAD) {
		value := p.parseSpreadValue()
		if value == nil {
			return nil
		}
		return &ast.ObjectItem{Value: value}
	}

	if p.curTokenIs(token.LBRACKET) {
		p.nextToken()
		if p.failed() {
			return nil
		}
		key := p.parseExpression(LOWEST)
		if key == nil {
			return nil
		}
		if !p.expectPeek("object literal", token.RBRACKET) {
			return nil
		}
		if !p.expectPeek("object literal", token.COLON) {
			return nil
		}
		p.nextToken()
		if p.failed() {
			return nil
		}
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		return &ast.ObjectItem{Key: key, Value: value, Computed: true}
	}

	var key ast.Expr
	keyTok := p.curToken
	switch {
	case p.curTokenIs(token.IDENT) || token.IsKeyword(p.curToken.Type):
		key = p.newIdent(keyTok)
	case p.curTokenIs(token.STRING):
		key = &ast.String{
			ValuePos: keyTok.StartPosition,
			Raw:      p.rawOf(keyTok),
			Value:    keyTok.Literal,
		}
	case p.curTokenIs(token.INT), p.curTokenIs(token.FLOAT):
		key = p.parseExpression(MEMBER)
		if key == nil {
			return nil
		}
	default:
		p.syntaxErrorAt(keyTok, errors.E2003,
			"unexpected %s in object literal (expected a property name)",
			tokenDescription(keyTok))
		return nil
	}

	// Shorthand method: key(params) { body }
	if p.peekTokenIs(token.LPAREN) {
		fn := p.parseFuncCore(keyTok.StartPosition, false, false, nil, true)
		if fn == nil {
			return nil
		}
		return &ast.ObjectItem{Key: key, Value: fn}
	}

	// Shorthand property: {a} is {a: a}
	if p.peekTokenIs(token.COMMA) || p.peekTokenIs(token.RBRACE) {
		if !p.curTokenIs(token.IDENT) {
			p.syntaxErrorAt(keyTok, errors.E2003,
				"property shorthand requires an identifier name")
			return nil
		}
		return &ast.ObjectItem{Key: key, Value: p.newIdent(keyTok)}
	}

	if !p.expectPeek("object literal", token.COLON) {
		return nil
	}
	p.nextToken()
	if p.failed() {
		return nil
	}
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.ObjectItem{Key: key, Value: value}
}

func (p *Parser) parseYield() ast.Expr {
	tok := p.curToken
	if !p.flags.allowYield {
		if p.flags.strict {
			p.earlyErrorAt(tok, errors.E3005,
				"'yield' is a reserved word in strict mode")
			return nil
		}
		return p.newIdent(tok)
	}
	if p.flags.inFormalParams {
		p.earlyErrorAt(tok, errors.E3005,
			"yield expression cannot be used in formal parameters")
		return nil
	}
	y := &ast.Yield{YieldPos: tok.StartPosition}
	if p.peekTokenIs(token.ASTERISK) && !p.peekToken.NewlineBefore {
		p.nextToken() // onto '*'
		y.Delegate = true
		p.nextToken()
		if p.failed() {
			return nil
		}
		y.X = p.parseExpression(LOWEST)
		if y.X == nil {
			return nil
		}
		return y
	}
	// The operand is optional and never attaches across a line break.
	if p.peekToken.NewlineBefore || isExprTerminator(p.peekToken.Type) {
		return y
	}
	p.nextToken()
	if p.failed() {
		return nil
	}
	y.X = p.parseExpression(LOWEST)
	if y.X == nil {
		return nil
	}
	return y
}

func (p *Parser) parseAwait() ast.Expr {
	tok := p.curToken
	if !p.flags.allowAwait {
		// Plain identifier outside async contexts.
		return p.newIdent(tok)
	}
	if p.flags.inFormalParams {
		p.earlyErrorAt(tok, errors.E3006,
			"await expression cannot be used in formal parameters")
		return nil
	}
	p.nextToken()
	if p.failed() {
		return nil
	}
	x := p.parseExpression(UNARY)
	if x == nil {
		return nil
	}
	return &ast.Await{AwaitPos: tok.StartPosition, X: x}
}

// isExprTerminator reports whether a token type can directly follow an
// operand-less yield.
func isExprTerminator(t token.Type) bool {
	switch t {
	case token.SEMICOLON, token.RPAREN, token.RBRACKET, token.RBRACE,
		token.COLON, token.COMMA, token.EOF:
		return true
	}
	return false
}
