// Package parser generates the abstract syntax tree (AST) for a program.
//
// A parser is created by calling New() with a lexer as input. The parser
// should then be used only once, by calling parser.Parse() to produce the
// AST. Parsing is fail-fast: the first syntax or early error aborts the
// parse and no partial tree is returned.
package parser

import (
	"context"
	"fmt"

	"github.com/NickTomlin/boa/ast"
	"github.com/NickTomlin/boa/errors"
	"github.com/NickTomlin/boa/interner"
	"github.com/NickTomlin/boa/lexer"
	"github.com/NickTomlin/boa/token"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parse the provided input as source code and return the AST. This is a
// shorthand way to create a Lexer and Parser and then call Parse on that.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	// Extract lexer-level settings from options before creating the parser,
	// so that lexer errors in the first tokens have proper location context.
	var probe Parser
	for _, opt := range options {
		opt(&probe)
	}
	var lexOpts []lexer.Option
	if probe.filename != "" {
		lexOpts = append(lexOpts, lexer.WithFilename(probe.filename))
	}
	if probe.interner != nil {
		lexOpts = append(lexOpts, lexer.WithInterner(probe.interner))
	}
	l := lexer.New(input, lexOpts...)
	p := New(l, options...)
	return p.Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name used in positions and diagnostics.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser. This
// prevents stack overflow on deeply nested input. The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// WithAnnexB controls the web-compatibility desugaring of function
// declarations appearing as if/else clause bodies. Enabled by default;
// when disabled those declarations are hard errors in sloppy mode too.
func WithAnnexB(enabled bool) Option {
	return func(p *Parser) {
		p.annexB = enabled
	}
}

// WithStrict starts the parse in strict mode, as if the source began with
// a "use strict" directive.
func WithStrict(strict bool) Option {
	return func(p *Parser) {
		p.initialStrict = strict
	}
}

// WithInterner sets the symbol interner shared with the lexer so that
// identifier handles are comparable across parses.
func WithInterner(in *interner.Interner) Option {
	return func(p *Parser) {
		p.interner = in
	}
}

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// grammarFlags is the inherited grammar context. A fresh value is swapped
// in at every function boundary and restored on exit; no production reads
// context from anywhere else.
type grammarFlags struct {
	strict         bool // strict mode code
	allowYield     bool // inside a generator body
	allowAwait     bool // inside an async function body
	allowReturn    bool // inside any function body
	inIteration    bool // break/continue bind to an enclosing loop
	inSwitch       bool // break binds to an enclosing switch
	inFormalParams bool // parsing a parameter default value
}

// labelInfo tracks one visible statement label. iteration is true when
// the label names a loop, making it a valid continue target.
type labelInfo struct {
	name      string
	iteration bool
}

// Parser object
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	// l is our lexer
	l *lexer.Lexer

	// prevToken holds the previous token, which we already processed.
	prevToken token.Token

	// curToken holds the current token from the lexer.
	curToken token.Token

	// peekToken holds the next token from the lexer.
	peekToken token.Token

	// token-stream indices of curToken and peekToken, used to build
	// LinearSpans for lazily re-parseable function bodies.
	curIndex  int
	peekIndex int

	// err is the first error encountered; parsing stops once set.
	err ParserError

	// prefixParseFns holds a map of parsing methods for
	// prefix-based syntax.
	prefixParseFns map[token.Type]prefixParseFn

	// infixParseFns holds a map of parsing methods for
	// infix-based syntax.
	infixParseFns map[token.Type]infixParseFn

	// The filename of the input
	filename string

	// interner passed via options for the Parse() shorthand
	interner *interner.Interner

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int

	// Annex-B web compatibility (if-clause function declarations)
	annexB bool

	// start the parse in strict mode
	initialStrict bool

	// inherited grammar context, swapped at function boundaries
	flags grammarFlags

	// visible statement labels, innermost last
	labels []labelInfo

	// noIn suppresses the infix binding of `in` while parsing the head
	// of a classic for statement.
	noIn bool

	// clauseLabel is set while the immediate statement being parsed is
	// the body of an if/else or loop clause; labelled function
	// declarations are rejected there.
	clauseLabel bool
}

// New returns a Parser for the program provided by the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{
		l:              l,
		prefixParseFns: map[token.Type]prefixParseFn{},
		infixParseFns:  map[token.Type]infixParseFn{},
		maxDepth:       DefaultMaxDepth,
		annexB:         true,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.filename == "" {
		p.filename = l.Filename()
	}
	if p.initialStrict {
		p.flags.strict = true
		l.SetStrict(true)
	}

	// Prime the token pump
	p.nextToken() // makes curToken=<empty>, peekToken=token[0]
	p.nextToken() // makes curToken=token[0], peekToken=token[1]

	// Register prefix-functions
	p.registerPrefix(token.IDENT, p.parseIdentExpr)
	p.registerPrefix(token.INT, p.parseInt)
	p.registerPrefix(token.FLOAT, p.parseFloat)
	p.registerPrefix(token.BIGINT, p.parseBigInt)
	p.registerPrefix(token.STRING, p.parseString)
	p.registerPrefix(token.TEMPLATE, p.parseTemplate)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.NULL, p.parseNull)
	p.registerPrefix(token.THIS, p.parseThis)
	p.registerPrefix(token.BANG, p.parsePrefixExpr)
	p.registerPrefix(token.TILDE, p.parsePrefixExpr)
	p.registerPrefix(token.PLUS, p.parsePrefixExpr)
	p.registerPrefix(token.MINUS, p.parsePrefixExpr)
	p.registerPrefix(token.TYPEOF, p.parsePrefixExpr)
	p.registerPrefix(token.VOID, p.parsePrefixExpr)
	p.registerPrefix(token.DELETE, p.parsePrefixExpr)
	p.registerPrefix(token.PLUS_PLUS, p.parseUpdatePrefix)
	p.registerPrefix(token.MINUS_MINUS, p.parseUpdatePrefix)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(token.LBRACKET, p.parseArray)
	p.registerPrefix(token.LBRACE, p.parseObject)
	p.registerPrefix(token.FUNCTION, p.parseFuncExpr)
	p.registerPrefix(token.CLASS, p.parseClassExpr)
	p.registerPrefix(token.NEW, p.parseNew)
	p.registerPrefix(token.YIELD, p.parseYield)
	p.registerPrefix(token.AWAIT, p.parseAwait)

	// Register infix functions
	p.registerInfix(token.PLUS, p.parseInfixExpr)
	p.registerInfix(token.MINUS, p.parseInfixExpr)
	p.registerInfix(token.ASTERISK, p.parseInfixExpr)
	p.registerInfix(token.SLASH, p.parseInfixExpr)
	p.registerInfix(token.MOD, p.parseInfixExpr)
	p.registerInfix(token.POW, p.parseInfixExpr)
	p.registerInfix(token.LT, p.parseInfixExpr)
	p.registerInfix(token.GT, p.parseInfixExpr)
	p.registerInfix(token.LT_EQUALS, p.parseInfixExpr)
	p.registerInfix(token.GT_EQUALS, p.parseInfixExpr)
	p.registerInfix(token.EQ, p.parseInfixExpr)
	p.registerInfix(token.NOT_EQ, p.parseInfixExpr)
	p.registerInfix(token.STRICT_EQ, p.parseInfixExpr)
	p.registerInfix(token.STRICT_NOT_EQ, p.parseInfixExpr)
	p.registerInfix(token.LT_LT, p.parseInfixExpr)
	p.registerInfix(token.GT_GT, p.parseInfixExpr)
	p.registerInfix(token.GT_GT_GT, p.parseInfixExpr)
	p.registerInfix(token.AMPERSAND, p.parseInfixExpr)
	p.registerInfix(token.BITOR, p.parseInfixExpr)
	p.registerInfix(token.CARET, p.parseInfixExpr)
	p.registerInfix(token.AND, p.parseInfixExpr)
	p.registerInfix(token.OR, p.parseInfixExpr)
	p.registerInfix(token.NULLISH, p.parseInfixExpr)
	p.registerInfix(token.IN, p.parseInfixExpr)
	p.registerInfix(token.INSTANCEOF, p.parseInfixExpr)
	p.registerInfix(token.QUESTION, p.parseConditional)
	p.registerInfix(token.LPAREN, p.parseCall)
	p.registerInfix(token.PERIOD, p.parseMember)
	p.registerInfix(token.LBRACKET, p.parseIndex)
	for typ := range assignmentOps {
		p.registerInfix(typ, p.parseAssign)
	}

	return p
}

// Parse the program that is provided via the lexer. On the first error,
// parsing stops and (nil, err) is returned.
func (p *Parser) Parse(ctx context.Context) (*ast.Program, error) {
	p.ctx = ctx
	if p.err != nil {
		return nil, p.err
	}
	program := &ast.Program{Strict: p.flags.strict}
	inPrologue := true
	for !p.curTokenIs(token.EOF) {
		if p.cancelled() {
			return nil, p.ctx.Err()
		}
		stmt := p.parseStatement()
		if p.err != nil {
			return nil, p.err
		}
		if stmt != nil {
			if inPrologue {
				if directive, ok := directiveText(stmt); ok {
					if directive == `"use strict"` || directive == `'use strict'` {
						p.setStrict()
						program.Strict = true
					}
				} else {
					inPrologue = false
				}
			}
			program.Stmts = append(program.Stmts, stmt)
		}
		p.nextToken()
		if p.err != nil {
			return nil, p.err
		}
	}
	return program, nil
}

// directiveText returns the raw source text of a directive-prologue
// statement, or ok=false if the statement is not a lone string literal.
func directiveText(stmt ast.Stmt) (string, bool) {
	es, ok := stmt.(*ast.ExprStmt)
	if !ok {
		return "", false
	}
	str, ok := es.X.(*ast.String)
	if !ok {
		return "", false
	}
	return str.Raw, true
}

// setStrict switches the parser and lexer into strict mode for the
// remainder of the enclosing function or script.
func (p *Parser) setStrict() {
	p.flags.strict = true
	p.l.SetStrict(true)
}

// registerPrefix registers a function for handling a prefix position.
func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

// registerInfix registers a function for handling an infix position.
func (p *Parser) registerInfix(tokenType token.Type, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// nextToken moves to the next token from the lexer, updating all of
// prevToken, curToken, and peekToken. Lexer errors end the parse.
func (p *Parser) nextToken() {
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	p.curIndex = p.peekIndex
	next, err := p.l.Next()
	if err != nil {
		if p.err == nil {
			opts := ErrorOpts{
				Kind:  "syntax error",
				Cause: err,
				File:  p.l.Filename(),
			}
			if le, ok := err.(*lexer.Error); ok {
				opts.Code = classifyLexical(le.Msg)
				opts.Message = le.Msg
				opts.Cause = nil
				opts.StartPosition = le.Pos
				opts.EndPosition = le.Pos
				opts.SourceCode = p.l.GetLineText(token.Token{StartPosition: le.Pos})
			}
			p.err = NewSyntaxError(opts)
		}
		p.peekToken = token.Token{Type: token.EOF}
		return
	}
	p.peekToken = next
	p.peekIndex = p.l.TokenIndex() - 1
}

// failed reports whether parsing has already encountered an error.
func (p *Parser) failed() bool {
	return p.err != nil
}

// cancelled checks if the parsing context has been cancelled.
func (p *Parser) cancelled() bool {
	if p.ctx == nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		return true
	default:
		return false
	}
}

// enter guards recursion depth; every recursive production calls it and
// pairs it with leave().
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > p.maxDepth {
		p.syntaxErrorAt(p.curToken, errors.E2005, "maximum nesting depth exceeded")
		return false
	}
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// syntaxErrorAt records a syntax error at the given token. Only the first
// error is kept.
func (p *Parser) syntaxErrorAt(tok token.Token, code errors.ErrorCode, format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	p.err = NewSyntaxError(ErrorOpts{
		Code:          code,
		Message:       fmt.Sprintf(format, args...),
		File:          p.l.Filename(),
		StartPosition: tok.StartPosition,
		EndPosition:   tok.EndPosition,
		SourceCode:    p.l.GetLineText(tok),
	})
}

// earlyErrorAt records an early (static semantics) error at the given token.
func (p *Parser) earlyErrorAt(tok token.Token, code errors.ErrorCode, format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	p.err = NewEarlyError(ErrorOpts{
		Code:          code,
		Message:       fmt.Sprintf(format, args...),
		File:          p.l.Filename(),
		StartPosition: tok.StartPosition,
		EndPosition:   tok.EndPosition,
		SourceCode:    p.l.GetLineText(tok),
	})
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	if t.Type == token.EOF {
		p.syntaxErrorAt(t, errors.E2002, "unexpected end of file")
		return
	}
	p.syntaxErrorAt(t, errors.E2001, "invalid syntax (unexpected %s)", tokenDescription(t))
}

// peekError raises an error when the next token is not the expected type.
func (p *Parser) peekError(context string, expected token.Type, got token.Token) {
	p.syntaxErrorAt(got, errors.E2001, "unexpected %s while parsing %s (expected %s)",
		tokenDescription(got), context, tokenTypeDescription(expected))
}

// curTokenIs returns true if the current token has the given type.
func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

// peekTokenIs returns true if the next token has the given type.
func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

// expectPeek validates that the next token is of the given type and
// advances onto it. Keyword tokens matched this way must be spelled
// without escape sequences.
func (p *Parser) expectPeek(context string, t token.Type) bool {
	if !p.peekTokenIs(t) {
		p.peekError(context, t, p.peekToken)
		return false
	}
	if p.peekToken.HasEscape && token.IsKeyword(t) {
		p.syntaxErrorAt(p.peekToken, errors.E2007,
			"keyword '%s' must not contain escape sequences", keywordSpelling(t))
		return false
	}
	p.nextToken()
	return !p.failed()
}

// checkKeywordEscape rejects a keyword token spelled with an escape.
func (p *Parser) checkKeywordEscape(tok token.Token) bool {
	if tok.HasEscape && token.IsKeyword(tok.Type) {
		p.syntaxErrorAt(tok, errors.E2007,
			"keyword '%s' must not contain escape sequences", keywordSpelling(tok.Type))
		return false
	}
	return true
}

// peekPrecedence returns the precedence of the next token. The `in`
// operator does not bind while a classic for-head is being parsed.
func (p *Parser) peekPrecedence() int {
	if p.noIn && p.peekToken.Type == token.IN {
		return LOWEST
	}
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// currentPrecedence returns the precedence of the current token.
func (p *Parser) currentPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// parseExpression is the Pratt core: parse a prefix form for the current
// token and then fold in infix continuations that bind tighter than the
// given precedence. The parser finishes with curToken on the last token
// of the expression.
func (p *Parser) parseExpression(precedence int) ast.Expr {
	if p.failed() {
		return nil
	}
	if !p.enter() {
		return nil
	}
	defer p.leave()

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	if !p.checkValueKeywordEscape(p.curToken) {
		return nil
	}
	left := prefix()
	if p.failed() || left == nil {
		return nil
	}

	for {
		// Postfix update operators only attach on the same line.
		if (p.peekTokenIs(token.PLUS_PLUS) || p.peekTokenIs(token.MINUS_MINUS)) &&
			!p.peekToken.NewlineBefore && precedence < POSTFIX {
			p.nextToken()
			left = p.parsePostfix(left)
			if p.failed() || left == nil {
				return nil
			}
			continue
		}
		if precedence >= p.peekPrecedence() {
			break
		}
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			break
		}
		p.nextToken()
		if p.failed() {
			return nil
		}
		left = infix(left)
		if p.failed() || left == nil {
			return nil
		}
	}
	return left
}

// checkValueKeywordEscape rejects escape-spelled keywords used in
// expression position (e.g. true).
func (p *Parser) checkValueKeywordEscape(tok token.Token) bool {
	if token.IsKeyword(tok.Type) {
		return p.checkKeywordEscape(tok)
	}
	return true
}

// newIdent creates an Ident node from a token, interning the name.
func (p *Parser) newIdent(tok token.Token) *ast.Ident {
	return &ast.Ident{
		NamePos: tok.StartPosition,
		Name:    tok.Literal,
		Sym:     p.l.Interner().Intern(tok.Literal),
	}
}

// identLike reports whether a token can serve as an identifier in the
// current grammar context: a plain IDENT, or yield/await where the
// context does not reserve them.
func (p *Parser) identLike(tok token.Token) bool {
	switch tok.Type {
	case token.IDENT:
		return true
	case token.YIELD:
		return !p.flags.allowYield && !p.flags.strict
	case token.AWAIT:
		return !p.flags.allowAwait
	default:
		return false
	}
}

// expectIdentLike advances onto the next token and validates it can bind
// an identifier in the current context.
func (p *Parser) expectIdentLike(context string) (token.Token, bool) {
	if !p.identLike(p.peekToken) {
		switch p.peekToken.Type {
		case token.YIELD:
			p.earlyErrorAt(p.peekToken, errors.E3004,
				"'yield' is a reserved word in this context")
		case token.AWAIT:
			p.earlyErrorAt(p.peekToken, errors.E3006,
				"'await' is a reserved word in this context")
		default:
			p.peekError(context, token.IDENT, p.peekToken)
		}
		return token.Token{}, false
	}
	p.nextToken()
	if p.failed() {
		return token.Token{}, false
	}
	return p.curToken, true
}

// rawOf returns the raw source spelling of a token.
func (p *Parser) rawOf(tok token.Token) string {
	src := p.l.Source()
	start, end := tok.StartPosition.Char, tok.EndPosition.Char
	if start < 0 || end > len(src) || start > end {
		return tok.Literal
	}
	return src[start:end]
}
