package parser

import (
	"github.com/NickTomlin/boa/ast"
	"github.com/NickTomlin/boa/errors"
	"github.com/NickTomlin/boa/token"
)

// identToken rebuilds a token for an already-parsed identifier so that
// late errors (e.g. after a "use strict" directive) can point at it.
func identToken(id *ast.Ident) token.Token {
	return token.Token{
		Type:          token.IDENT,
		Literal:       id.Name,
		StartPosition: id.NamePos,
		EndPosition:   id.NamePos.Advance(len(id.Name)),
	}
}

// parseFuncDecl parses a function declaration; curToken is `function` and
// fnPos is the statement start (the `async` keyword when present). The
// name binds in the enclosing scope, so its reservation rules follow the
// enclosing context.
func (p *Parser) parseFuncDecl(fnPos token.Position, isAsync bool) *ast.Func {
	isGenerator := false
	if p.peekTokenIs(token.ASTERISK) {
		p.nextToken()
		isGenerator = true
	}
	nameTok, ok := p.expectIdentLike("function declaration")
	if !ok {
		return nil
	}
	if !p.checkBindingName(nameTok) {
		return nil
	}
	return p.parseFuncCore(fnPos, isAsync, isGenerator, p.newIdent(nameTok), false)
}

func (p *Parser) parseFuncExpr() ast.Expr {
	return p.parseFuncExprAt(p.curToken.StartPosition, false)
}

// parseFuncExprAt parses a function expression; curToken is `function`.
// The optional name binds inside the function, so its reservation rules
// follow the function's own generator/async nature.
func (p *Parser) parseFuncExprAt(fnPos token.Position, isAsync bool) ast.Expr {
	isGenerator := false
	if p.peekTokenIs(token.ASTERISK) {
		p.nextToken()
		isGenerator = true
	}
	var name *ast.Ident
	named := false
	switch p.peekToken.Type {
	case token.IDENT:
		named = true
	case token.YIELD:
		named = !isGenerator && !p.flags.strict
	case token.AWAIT:
		named = !isAsync
	}
	if named {
		p.nextToken()
		if p.failed() {
			return nil
		}
		if !p.checkBindingName(p.curToken) {
			return nil
		}
		name = p.newIdent(p.curToken)
	}
	fn := p.parseFuncCore(fnPos, isAsync, isGenerator, name, true)
	if fn == nil {
		return nil
	}
	return fn
}

// parseFuncCore parses the parameter list and body shared by every
// callable form: declarations, expressions, object shorthand methods and
// class methods. curToken must be the token directly before '('. The
// grammar context is swapped for the function's own nature and restored
// on exit, as is the lexer's strictness.
func (p *Parser) parseFuncCore(fnPos token.Position, isAsync, isGenerator bool, name *ast.Ident, isExpr bool) *ast.Func {
	if !p.expectPeek("function parameters", token.LPAREN) {
		return nil
	}

	saved := p.flags
	savedLabels := p.labels
	savedLexStrict := p.l.Strict()
	p.flags = grammarFlags{
		strict:      saved.strict,
		allowYield:  isGenerator,
		allowAwait:  isAsync,
		allowReturn: true,
	}
	p.labels = nil
	defer func() {
		p.flags = saved
		p.labels = savedLabels
		p.l.SetStrict(savedLexStrict)
	}()

	params, ok := p.parseParams()
	if !ok {
		return nil
	}
	if !p.checkParams(params, p.flags.strict) {
		return nil
	}

	if !p.expectPeek("function body", token.LBRACE) {
		return nil
	}
	bodyStart := p.curIndex
	body, useStrict := p.parseFunctionBody(params)
	if body == nil {
		return nil
	}
	if useStrict && name != nil && (name.Name == "eval" || name.Name == "arguments") {
		p.earlyErrorAt(identToken(name), errors.E3004,
			"'%s' cannot be bound in strict mode", name.Name)
		return nil
	}
	span := token.LinearSpan{Start: bodyStart, End: p.curIndex + 1}

	return ast.NewFunc(&ast.Func{
		FuncPos:     fnPos,
		IsAsync:     isAsync,
		IsGenerator: isGenerator,
		Name:        name,
		Params:      params,
		Body:        body,
		IsExpr:      isExpr,
		UseStrict:   useStrict,
		Span:        span,
	})
}

// parseParams parses a formal parameter list; curToken is '(' and the
// parser finishes with curToken on ')'. Yield and await expressions are
// rejected inside defaults via the inFormalParams flag.
func (p *Parser) parseParams() ([]*ast.Param, bool) {
	p.flags.inFormalParams = true
	defer func() { p.flags.inFormalParams = false }()

	var params []*ast.Param
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}
	for {
		p.nextToken()
		if p.failed() {
			return nil, false
		}
		param := &ast.Param{}
		if p.curTokenIs(token.SPREAD) {
			param.Rest = true
			p.nextToken()
			if p.failed() {
				return nil, false
			}
		}
		if !p.identLike(p.curToken) {
			switch p.curToken.Type {
			case token.YIELD:
				p.earlyErrorAt(p.curToken, errors.E3005,
					"'yield' is a reserved word in this context")
			case token.AWAIT:
				p.earlyErrorAt(p.curToken, errors.E3006,
					"'await' is a reserved word in this context")
			default:
				p.syntaxErrorAt(p.curToken, errors.E2003,
					"unexpected %s in parameter list (expected identifier)",
					tokenDescription(p.curToken))
			}
			return nil, false
		}
		if !p.checkBindingName(p.curToken) {
			return nil, false
		}
		param.Name = p.newIdent(p.curToken)
		if p.peekTokenIs(token.ASSIGN) {
			if param.Rest {
				p.syntaxErrorAt(p.peekToken, errors.E2001,
					"rest parameter cannot have a default value")
				return nil, false
			}
			p.nextToken() // onto '='
			p.nextToken() // first token of the default
			if p.failed() {
				return nil, false
			}
			param.Default = p.parseExpression(LOWEST)
			if param.Default == nil {
				return nil, false
			}
		}
		params = append(params, param)
		if param.Rest && !p.peekTokenIs(token.RPAREN) {
			p.syntaxErrorAt(p.peekToken, errors.E2001,
				"rest parameter must be the last parameter")
			return nil, false
		}
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if p.peekTokenIs(token.RPAREN) {
				break // trailing comma
			}
			continue
		}
		break
	}
	if !p.expectPeek("parameter list", token.RPAREN) {
		return nil, false
	}
	return params, true
}

func simpleParams(params []*ast.Param) bool {
	for _, param := range params {
		if param.Rest || param.Default != nil {
			return false
		}
	}
	return true
}

// checkParams enforces the parameter rules that depend on strictness:
// duplicate names are errors in strict mode and in any non-simple list,
// and eval/arguments cannot bind in strict mode. It runs once after the
// list is parsed and again if a directive retroactively makes the
// function strict.
func (p *Parser) checkParams(params []*ast.Param, strict bool) bool {
	if strict {
		for _, param := range params {
			if param.Name.Name == "eval" || param.Name.Name == "arguments" {
				p.earlyErrorAt(identToken(param.Name), errors.E3004,
					"'%s' cannot be bound in strict mode", param.Name.Name)
				return false
			}
		}
	}
	if strict || !simpleParams(params) {
		seen := make(map[string]bool, len(params))
		for _, param := range params {
			if seen[param.Name.Name] {
				p.earlyErrorAt(identToken(param.Name), errors.E3002,
					"duplicate parameter name '%s'", param.Name.Name)
				return false
			}
			seen[param.Name.Name] = true
		}
	}
	return true
}

// parseFunctionBody parses a braced body with directive-prologue
// handling; curToken is '{'. A "use strict" directive switches the parser
// and lexer to strict mode for the rest of the body and retroactively
// re-validates the parameter list.
func (p *Parser) parseFunctionBody(params []*ast.Param) (*ast.Block, bool) {
	block := &ast.Block{Lbrace: p.curToken.StartPosition}
	useStrict := false
	inPrologue := true
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.syntaxErrorAt(p.curToken, errors.E2004, "unexpected end of file (expected '}')")
			return nil, false
		}
		stmt := p.parseStatement()
		if p.failed() {
			return nil, false
		}
		if stmt != nil {
			if inPrologue {
				if directive, ok := directiveText(stmt); ok {
					if directive == `"use strict"` || directive == `'use strict'` {
						if !simpleParams(params) {
							p.syntaxErrorAt(
								token.Token{StartPosition: stmt.Pos(), EndPosition: stmt.End()},
								errors.E2001,
								"a 'use strict' directive is only allowed in a function with a simple parameter list")
							return nil, false
						}
						useStrict = true
						p.setStrict()
						if !p.checkParams(params, true) {
							return nil, false
						}
					}
				} else {
					inPrologue = false
				}
			}
			block.Stmts = append(block.Stmts, stmt)
		}
		p.nextToken()
		if p.failed() {
			return nil, false
		}
	}
	block.Rbrace = p.curToken.StartPosition
	return block, useStrict
}

func (p *Parser) parseClassDecl() ast.Stmt {
	c := p.parseClassCore(false)
	if c == nil {
		return nil
	}
	return c
}

func (p *Parser) parseClassExpr() ast.Expr {
	c := p.parseClassCore(true)
	if c == nil {
		return nil
	}
	return c
}

// parseClassCore parses a class; curToken is `class`. Class code is
// strict from the name onward regardless of the surrounding mode.
func (p *Parser) parseClassCore(isExpr bool) *ast.Class {
	classPos := p.curToken.StartPosition

	saved := p.flags
	savedLexStrict := p.l.Strict()
	p.flags.strict = true
	p.l.SetStrict(true)
	defer func() {
		p.flags = saved
		p.l.SetStrict(savedLexStrict)
	}()

	c := &ast.Class{ClassPos: classPos, IsExpr: isExpr}
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		if p.failed() {
			return nil
		}
		if !p.checkBindingName(p.curToken) {
			return nil
		}
		c.Name = p.newIdent(p.curToken)
	} else if !isExpr {
		p.peekError("class declaration", token.IDENT, p.peekToken)
		return nil
	}

	if p.peekTokenIs(token.EXTENDS) {
		if !p.expectPeek("class heritage", token.EXTENDS) {
			return nil
		}
		p.nextToken()
		if p.failed() {
			return nil
		}
		c.Super = p.parseExpression(POSTFIX)
		if c.Super == nil {
			return nil
		}
	}

	if !p.expectPeek("class body", token.LBRACE) {
		return nil
	}
	c.Lbrace = p.curToken.StartPosition
	bodyStart := p.curIndex

	sawCtor := false
	p.nextToken()
	if p.failed() {
		return nil
	}
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.syntaxErrorAt(p.curToken, errors.E2004, "unexpected end of file (expected '}')")
			return nil
		}
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		m := p.parseMethod(&sawCtor)
		if m == nil {
			return nil
		}
		c.Methods = append(c.Methods, m)
		p.nextToken()
		if p.failed() {
			return nil
		}
	}
	c.Rbrace = p.curToken.StartPosition
	c.Span = token.LinearSpan{Start: bodyStart, End: p.curIndex + 1}
	return c
}

// parseMethod parses one class member; curToken is its first token. The
// modifier prefixes (static, async, *, get, set) are contextual: each is
// only a modifier when a method name still follows it.
func (p *Parser) parseMethod(sawCtor *bool) *ast.Method {
	m := &ast.Method{Kind: ast.MethodNormal}

	if p.curTokenIs(token.IDENT) && p.curToken.Literal == "static" &&
		!p.curToken.HasEscape && !p.peekTokenIs(token.LPAREN) {
		m.Static = true
		p.nextToken()
		if p.failed() {
			return nil
		}
	}

	isAsync := false
	isGenerator := false
	if p.curTokenIs(token.IDENT) && p.curToken.Literal == "async" &&
		!p.curToken.HasEscape && !p.peekTokenIs(token.LPAREN) &&
		!p.peekToken.NewlineBefore {
		isAsync = true
		p.nextToken()
		if p.failed() {
			return nil
		}
	}
	if p.curTokenIs(token.ASTERISK) {
		isGenerator = true
		p.nextToken()
		if p.failed() {
			return nil
		}
	}
	if !isAsync && !isGenerator && p.curTokenIs(token.IDENT) && !p.curToken.HasEscape &&
		(p.curToken.Literal == "get" || p.curToken.Literal == "set") &&
		!p.peekTokenIs(token.LPAREN) {
		if p.curToken.Literal == "get" {
			m.Kind = ast.MethodGet
		} else {
			m.Kind = ast.MethodSet
		}
		p.nextToken()
		if p.failed() {
			return nil
		}
	}

	keyTok := p.curToken
	keyName := ""
	switch {
	case p.curTokenIs(token.LBRACKET):
		m.Computed = true
		p.nextToken()
		if p.failed() {
			return nil
		}
		m.Key = p.parseExpression(LOWEST)
		if m.Key == nil {
			return nil
		}
		if !p.expectPeek("class body", token.RBRACKET) {
			return nil
		}
	case p.curTokenIs(token.IDENT) || token.IsKeyword(p.curToken.Type):
		m.Key = p.newIdent(keyTok)
		keyName = keyTok.Literal
	case p.curTokenIs(token.STRING):
		m.Key = &ast.String{
			ValuePos: keyTok.StartPosition,
			Raw:      p.rawOf(keyTok),
			Value:    keyTok.Literal,
		}
		keyName = keyTok.Literal
	case p.curTokenIs(token.INT), p.curTokenIs(token.FLOAT):
		key := p.parseExpression(MEMBER)
		if key == nil {
			return nil
		}
		m.Key = key
	default:
		p.syntaxErrorAt(keyTok, errors.E2003,
			"unexpected %s in class body (expected a method name)", tokenDescription(keyTok))
		return nil
	}

	if !m.Static && !m.Computed && keyName == "constructor" {
		if isAsync || isGenerator || m.Kind != ast.MethodNormal {
			p.syntaxErrorAt(keyTok, errors.E2001,
				"class constructor cannot be a getter, setter, generator, or async method")
			return nil
		}
		if *sawCtor {
			p.syntaxErrorAt(keyTok, errors.E2001, "a class may only have one constructor")
			return nil
		}
		*sawCtor = true
		m.Kind = ast.MethodCtor
	}
	if m.Static && !m.Computed && keyName == "prototype" {
		p.syntaxErrorAt(keyTok, errors.E2001,
			"classes cannot have a static member named 'prototype'")
		return nil
	}

	fn := p.parseFuncCore(keyTok.StartPosition, isAsync, isGenerator, nil, true)
	if fn == nil {
		return nil
	}
	switch m.Kind {
	case ast.MethodGet:
		if len(fn.Params) != 0 {
			p.syntaxErrorAt(keyTok, errors.E2001, "getter must not have parameters")
			return nil
		}
	case ast.MethodSet:
		if len(fn.Params) != 1 || fn.Params[0].Rest {
			p.syntaxErrorAt(keyTok, errors.E2001, "setter must have exactly one parameter")
			return nil
		}
	}
	m.Value = fn
	return m
}
