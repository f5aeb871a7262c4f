package parser

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/NickTomlin/boa/ast"
	"github.com/NickTomlin/boa/errors"
	"github.com/NickTomlin/boa/lexer"
	"github.com/NickTomlin/boa/token"
)

// checkNumberFlags re-validates a numeric literal's spelling against the
// current strictness. The lexer rejects these spellings itself once strict
// mode is set, but a literal buffered in the lookahead before a "use
// strict" directive took effect is only caught here.
func (p *Parser) checkNumberFlags(tok token.Token) bool {
	if !p.flags.strict {
		return true
	}
	if tok.NumberFlags&token.NumLegacyOctal != 0 {
		p.earlyErrorAt(tok, errors.E3009,
			"implicit octal literals are not allowed in strict mode")
		return false
	}
	if tok.NumberFlags&token.NumLeadingZero != 0 {
		p.earlyErrorAt(tok, errors.E3009,
			"leading zeros are not allowed in strict mode")
		return false
	}
	return true
}

// splitNumericText strips separators and base prefixes from a numeric
// literal, returning the digit text and its base.
func splitNumericText(tok token.Token) (string, int) {
	text := strings.ReplaceAll(tok.Literal, "_", "")
	text = strings.TrimSuffix(text, "n")
	if len(text) >= 2 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			return text[2:], 16
		case 'o', 'O':
			return text[2:], 8
		case 'b', 'B':
			return text[2:], 2
		}
	}
	if tok.NumberFlags&token.NumLegacyOctal != 0 {
		return text[1:], 8
	}
	return text, 10
}

// parseInt converts an integer literal. Values that fit the int32 fast
// path become Int nodes; anything wider degrades to a Float with the
// closest double value, matching the numeric tower at runtime.
func (p *Parser) parseInt() ast.Expr {
	tok := p.curToken
	if !p.checkNumberFlags(tok) {
		return nil
	}
	digits, base := splitNumericText(tok)
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		p.syntaxErrorAt(tok, errors.E2001, "invalid numeric literal %q", tok.Literal)
		return nil
	}
	if n.IsInt64() {
		if v := n.Int64(); v >= math.MinInt32 && v <= math.MaxInt32 {
			return &ast.Int{
				ValuePos: tok.StartPosition,
				Literal:  tok.Literal,
				Value:    int32(v),
			}
		}
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return &ast.Float{ValuePos: tok.StartPosition, Literal: tok.Literal, Value: f}
}

func (p *Parser) parseFloat() ast.Expr {
	tok := p.curToken
	if !p.checkNumberFlags(tok) {
		return nil
	}
	text := strings.ReplaceAll(tok.Literal, "_", "")
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.syntaxErrorAt(tok, errors.E2001, "invalid numeric literal %q", tok.Literal)
		return nil
	}
	return &ast.Float{ValuePos: tok.StartPosition, Literal: tok.Literal, Value: v}
}

func (p *Parser) parseBigInt() ast.Expr {
	tok := p.curToken
	if !p.checkNumberFlags(tok) {
		return nil
	}
	digits, base := splitNumericText(tok)
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		p.syntaxErrorAt(tok, errors.E2001, "invalid numeric literal %q", tok.Literal)
		return nil
	}
	return &ast.BigInt{ValuePos: tok.StartPosition, Literal: tok.Literal, Value: n}
}

func (p *Parser) parseString() ast.Expr {
	tok := p.curToken
	return &ast.String{
		ValuePos: tok.StartPosition,
		Raw:      p.rawOf(tok),
		Value:    tok.Literal,
	}
}

func (p *Parser) parseBoolean() ast.Expr {
	return &ast.Bool{
		ValuePos: p.curToken.StartPosition,
		Value:    p.curTokenIs(token.TRUE),
	}
}

func (p *Parser) parseNull() ast.Expr {
	return &ast.Null{NullPos: p.curToken.StartPosition}
}

// parseTemplate splits the raw template text into cooked chunks and
// interpolated expressions. Each ${...} fragment is handed to a fresh
// parser over the original source with everything before the fragment
// blanked out, so every position inside the fragment resolves to its
// true location in the file.
func (p *Parser) parseTemplate() ast.Expr {
	tok := p.curToken
	raw := tok.Literal
	t := &ast.Template{Backtick: tok.StartPosition, Raw: raw}
	chunkStart := 0
	i := 0
	for i < len(raw) {
		switch raw[i] {
		case '\\':
			i += 2
		case '$':
			if i+1 < len(raw) && raw[i+1] == '{' {
				cooked, ok := p.cookChunk(tok, raw, chunkStart, i)
				if !ok {
					return nil
				}
				t.Cooked = append(t.Cooked, cooked)
				fragStart := i + 2
				fragEnd := skipInterpolation(raw, fragStart)
				x := p.parseTemplateExpr(tok, raw[fragStart:fragEnd-1], fragStart)
				if x == nil {
					return nil
				}
				t.Exprs = append(t.Exprs, x)
				i = fragEnd
				chunkStart = fragEnd
			} else {
				i++
			}
		default:
			i++
		}
	}
	cooked, ok := p.cookChunk(tok, raw, chunkStart, len(raw))
	if !ok {
		return nil
	}
	t.Cooked = append(t.Cooked, cooked)
	return t
}

// skipInterpolation returns the index just after the '}' that closes an
// interpolation, balancing nested braces and nested template literals the
// same way the lexer did when it scanned the token.
func skipInterpolation(s string, i int) int {
	depth := 1
	for i < len(s) && depth > 0 {
		switch s[i] {
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
		case '`':
			i = skipNestedTemplate(s, i+1)
		default:
			i++
		}
	}
	return i
}

// skipNestedTemplate returns the index just after the backtick closing a
// nested template literal; i points at the first character inside it.
func skipNestedTemplate(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
		case '`':
			return i + 1
		case '$':
			if i+1 < len(s) && s[i+1] == '{' {
				i = skipInterpolation(s, i+2)
			} else {
				i++
			}
		default:
			i++
		}
	}
	return i
}

// cookChunk cooks raw[start:end], reporting escape errors at their exact
// source position.
func (p *Parser) cookChunk(tok token.Token, raw string, start, end int) (string, bool) {
	cooked, err := lexer.CookTemplate(raw[start:end])
	if err == nil {
		return cooked, true
	}
	if p.err == nil {
		msg := err.Error()
		if le, ok := err.(*lexer.Error); ok {
			msg = le.Msg
		}
		pos := templatePos(tok.StartPosition, raw, start)
		p.err = NewSyntaxError(ErrorOpts{
			Code:          classifyLexical(msg),
			Message:       msg,
			File:          p.l.Filename(),
			StartPosition: pos,
			EndPosition:   pos,
			SourceCode:    p.l.GetLineText(token.Token{StartPosition: pos}),
		})
	}
	return "", false
}

// templatePos maps a byte offset within the raw template text to an
// absolute source position. The raw text starts one byte after the
// opening backtick.
func templatePos(start token.Position, raw string, offset int) token.Position {
	pos := start.Advance(1)
	for i := 0; i < offset && i < len(raw); i++ {
		pos.Char++
		pos.Column++
		nl := false
		switch raw[i] {
		case '\n':
			nl = true
		case '\r':
			nl = i+1 >= len(raw) || raw[i+1] != '\n'
		case 0xA8, 0xA9: // final byte of U+2028 / U+2029
			nl = i >= 2 && raw[i-2] == 0xE2 && raw[i-1] == 0x80
		}
		if nl {
			pos.Line++
			pos.LineStart = pos.Char
			pos.Column = 0
		}
	}
	return pos
}

// blankPrefix replaces text with spaces while preserving its byte length
// and line structure, so a lexer running over blankPrefix(head)+fragment
// reports fragment positions identical to the original file.
func blankPrefix(s string) string {
	b := []byte(s)
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '\n', '\r':
		case 0xE2:
			if i+2 < len(b) && b[i+1] == 0x80 && (b[i+2] == 0xA8 || b[i+2] == 0xA9) {
				b[i], b[i+1], b[i+2] = '\n', ' ', ' '
				i += 2
			} else {
				b[i] = ' '
			}
		default:
			b[i] = ' '
		}
	}
	return string(b)
}

// parseTemplateExpr parses one ${...} fragment with a sub-parser that
// shares this parser's interner and grammar context.
func (p *Parser) parseTemplateExpr(tok token.Token, frag string, offset int) ast.Expr {
	absStart := tok.StartPosition.Char + 1 + offset
	src := p.l.Source()
	input := blankPrefix(src[:absStart]) + frag

	sub := lexer.New(input,
		lexer.WithFilename(p.l.Filename()),
		lexer.WithInterner(p.l.Interner()),
	)
	sub.SetStrict(p.flags.strict)

	sp := New(sub,
		WithMaxDepth(p.maxDepth-p.depth),
		WithAnnexB(p.annexB),
		WithFilename(p.filename),
	)
	sp.ctx = p.ctx
	sp.flags = p.flags
	if sp.err != nil {
		p.err = sp.err
		return nil
	}

	x := sp.parseExpression(LOWEST)
	if sp.err != nil {
		p.err = sp.err
		return nil
	}
	if x == nil {
		p.syntaxErrorAt(tok, errors.E2002, "empty template interpolation")
		return nil
	}
	if !sp.peekTokenIs(token.EOF) {
		sp.syntaxErrorAt(sp.peekToken, errors.E2001,
			"unexpected %s in template interpolation", tokenDescription(sp.peekToken))
		p.err = sp.err
		return nil
	}
	return x
}
