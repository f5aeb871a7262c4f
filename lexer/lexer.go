// Package lexer converts source text into a stream of tokens.
//
// A Lexer is created by calling New() with the input string. Tokens are
// produced one at a time with Next(). The lexer dispatches on the first
// committed character to a specialized sub-lexer (numbers, strings,
// templates, punctuators) and never consumes a character it does not
// commit to use: every failure is reported at the exact cursor position.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/NickTomlin/boa/interner"
	"github.com/NickTomlin/boa/token"
)

const eof = rune(-1)

// Error is a lexical error carrying the exact cursor position at which
// lexing failed.
type Error struct {
	Msg string
	Pos token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error: %s (line %d, column %d)",
		e.Msg, e.Pos.LineNumber(), e.Pos.ColumnNumber())
}

func (l *Lexer) syntaxError(pos token.Position, format string, args ...interface{}) error {
	return &Error{Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// Option is a configuration function for a Lexer.
type Option func(*Lexer)

// WithFilename sets the file name used in token positions and diagnostics.
func WithFilename(filename string) Option {
	return func(l *Lexer) {
		l.filename = filename
	}
}

// WithInterner sets the symbol interner used for identifiers. If unset, the
// lexer creates a private one.
func WithInterner(in *interner.Interner) Option {
	return func(l *Lexer) {
		l.interner = in
	}
}

// Lexer tokenizes an input string.
type Lexer struct {
	input       string
	pos         int // byte offset of the next unread character
	line        int // 0-indexed line of the cursor
	lineStart   int // byte offset of the start of the current line
	filename    string
	strict      bool
	newlineSeen bool // a line terminator was crossed since the last token
	tokenIndex  int  // number of tokens emitted so far
	interner    *interner.Interner
}

// New returns a Lexer for the given input.
func New(input string, options ...Option) *Lexer {
	l := &Lexer{input: input}
	for _, opt := range options {
		opt(l)
	}
	if l.interner == nil {
		l.interner = interner.New()
	}
	return l
}

// SetFilename sets the file name for the Lexer.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Filename returns the file name for the Lexer.
func (l *Lexer) Filename() string {
	return l.filename
}

// Source returns the complete input text. Tokens address the input by
// byte offset, so callers can recover the raw spelling of any token with
// Source()[tok.StartPosition.Char:tok.EndPosition.Char].
func (l *Lexer) Source() string {
	return l.input
}

// Interner returns the symbol interner in use.
func (l *Lexer) Interner() *interner.Interner {
	return l.interner
}

// SetStrict toggles strict mode. Strict mode tightens the legality of some
// literal spellings (legacy octal, leading-zero decimals).
func (l *Lexer) SetStrict(strict bool) {
	l.strict = strict
}

// Strict reports whether the lexer is in strict mode.
func (l *Lexer) Strict() bool {
	return l.strict
}

// TokenIndex returns the number of tokens emitted so far. The index of the
// next token returned by Next() equals this value.
func (l *Lexer) TokenIndex() int {
	return l.tokenIndex
}

// State captures the lexer position so the parser can backtrack after a
// bounded lookahead.
type State struct {
	pos         int
	line        int
	lineStart   int
	newlineSeen bool
	tokenIndex  int
	strict      bool
}

// SaveState returns an opaque snapshot of the lexer state.
func (l *Lexer) SaveState() State {
	return State{
		pos:         l.pos,
		line:        l.line,
		lineStart:   l.lineStart,
		newlineSeen: l.newlineSeen,
		tokenIndex:  l.tokenIndex,
		strict:      l.strict,
	}
}

// RestoreState rewinds the lexer to a previously saved snapshot.
func (l *Lexer) RestoreState(s State) {
	l.pos = s.pos
	l.line = s.line
	l.lineStart = s.lineStart
	l.newlineSeen = s.newlineSeen
	l.tokenIndex = s.tokenIndex
	l.strict = s.strict
}

// Position returns the current cursor position.
func (l *Lexer) Position() token.Position {
	return token.Position{
		Char:      l.pos,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.pos - l.lineStart,
		File:      l.filename,
	}
}

// GetLineText returns the text of the line on which the token starts.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start < 0 || start > len(l.input) {
		return ""
	}
	end := strings.IndexAny(l.input[start:], "\r\n")
	if end < 0 {
		return l.input[start:]
	}
	return l.input[start : start+end]
}

// peek returns the next unread character without consuming it.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// peekAt returns the character n runes past the next unread one.
func (l *Lexer) peekAt(n int) rune {
	pos := l.pos
	for ; n > 0; n-- {
		if pos >= len(l.input) {
			return eof
		}
		_, w := utf8.DecodeRuneInString(l.input[pos:])
		pos += w
	}
	if pos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

// next consumes and returns the next character, updating line accounting.
func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	if isLineTerminator(r) {
		// \r\n counts as a single line terminator
		if r != '\r' || l.peek() != '\n' {
			l.line++
		}
		l.lineStart = l.pos
	}
	return r
}

// nextIf consumes the next character only if it equals want.
func (l *Lexer) nextIf(want rune) bool {
	if l.peek() == want {
		l.next()
		return true
	}
	return false
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == ' ' || r == ' '
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDecimalDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// skipSpace consumes whitespace and comments, recording any crossed line
// terminators (a terminator inside a block comment still counts for ASI).
func (l *Lexer) skipSpace() error {
	for {
		r := l.peek()
		switch {
		case r == eof:
			return nil
		case isLineTerminator(r):
			l.newlineSeen = true
			l.next()
		case unicode.IsSpace(r):
			l.next()
		case r == '/' && l.peekAt(1) == '/':
			for r := l.peek(); r != eof && !isLineTerminator(r); r = l.peek() {
				l.next()
			}
		case r == '/' && l.peekAt(1) == '*':
			start := l.Position()
			l.next()
			l.next()
			closed := false
			for l.peek() != eof {
				if isLineTerminator(l.peek()) {
					l.newlineSeen = true
				}
				if l.next() == '*' && l.nextIf('/') {
					closed = true
					break
				}
			}
			if !closed {
				return l.syntaxError(start, "unterminated block comment")
			}
		default:
			return nil
		}
	}
}

// emit builds a token spanning from start to the current cursor and resets
// the line-terminator-seen flag.
func (l *Lexer) emit(typ token.Type, literal string, start token.Position) token.Token {
	tok := token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   l.Position(),
		NewlineBefore: l.newlineSeen,
	}
	l.newlineSeen = false
	l.tokenIndex++
	return tok
}

// Next returns the next token from the input.
func (l *Lexer) Next() (token.Token, error) {
	if err := l.skipSpace(); err != nil {
		return token.Token{}, err
	}
	start := l.Position()
	r := l.peek()
	switch {
	case r == eof:
		return l.emit(token.EOF, "", start), nil
	case isIdentStart(r) || r == '\\':
		return l.lexIdentifier(start)
	case isDecimalDigit(r):
		l.next()
		return l.lexNumber(start, r)
	case r == '.':
		l.next()
		return l.lexDot(start)
	case r == '"' || r == '\'':
		l.next()
		return l.lexString(start, r)
	case r == '`':
		l.next()
		return l.lexTemplate(start)
	default:
		l.next()
		return l.lexPunctuator(start, r)
	}
}

// lexDot disambiguates ".", "...", and the start of a fractional number.
// Two dots not followed by a third are a syntax error.
func (l *Lexer) lexDot(start token.Position) (token.Token, error) {
	if isDecimalDigit(l.peek()) {
		return l.lexNumber(start, '.')
	}
	if l.nextIf('.') {
		if l.nextIf('.') {
			return l.emit(token.SPREAD, "...", start), nil
		}
		return token.Token{}, l.syntaxError(l.Position(), "expected '.' as part of spread operator")
	}
	return l.emit(token.PERIOD, ".", start), nil
}

// lexIdentifier lexes an identifier or keyword, decoding \uXXXX and \u{...}
// escapes. Tokens spelled with an escape are flagged so the parser can
// reject escaped keyword spellings.
func (l *Lexer) lexIdentifier(start token.Position) (token.Token, error) {
	var sb strings.Builder
	hasEscape := false
	first := true
	for {
		r := l.peek()
		if r == '\\' {
			errPos := l.Position()
			l.next()
			decoded, err := l.lexUnicodeEscape(errPos)
			if err != nil {
				return token.Token{}, err
			}
			if (first && !isIdentStart(decoded)) || (!first && !isIdentPart(decoded)) {
				return token.Token{}, l.syntaxError(errPos, "invalid character in identifier escape")
			}
			sb.WriteRune(decoded)
			hasEscape = true
		} else if (first && isIdentStart(r)) || (!first && isIdentPart(r)) {
			sb.WriteRune(l.next())
		} else {
			break
		}
		first = false
	}
	name := sb.String()
	if name == "" {
		return token.Token{}, l.syntaxError(start, "invalid identifier")
	}
	l.interner.Intern(name)
	tok := l.emit(token.LookupIdentifier(name), name, start)
	tok.HasEscape = hasEscape
	return tok, nil
}

// lexUnicodeEscape lexes the remainder of a \uXXXX or \u{...} sequence; the
// backslash is already consumed.
func (l *Lexer) lexUnicodeEscape(errPos token.Position) (rune, error) {
	if !l.nextIf('u') {
		return 0, l.syntaxError(errPos, "invalid escape in identifier")
	}
	if l.nextIf('{') {
		var v rune
		n := 0
		for {
			r := l.peek()
			if r == '}' {
				l.next()
				break
			}
			d := hexValue(r)
			if d < 0 {
				return 0, l.syntaxError(l.Position(), "invalid unicode escape")
			}
			l.next()
			v = v*16 + rune(d)
			if v > unicode.MaxRune {
				return 0, l.syntaxError(l.Position(), "unicode escape out of range")
			}
			n++
		}
		if n == 0 {
			return 0, l.syntaxError(l.Position(), "empty unicode escape")
		}
		return v, nil
	}
	var v rune
	for range 4 {
		d := hexValue(l.peek())
		if d < 0 {
			return 0, l.syntaxError(l.Position(), "invalid unicode escape")
		}
		l.next()
		v = v*16 + rune(d)
	}
	return v, nil
}

func hexValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return -1
}

// lexPunctuator lexes operators and delimiters. The first character is
// already consumed.
func (l *Lexer) lexPunctuator(start token.Position, r rune) (token.Token, error) {
	mk := func(typ token.Type) (token.Token, error) {
		return l.emit(typ, string(typ), start), nil
	}
	switch r {
	case '(':
		return mk(token.LPAREN)
	case ')':
		return mk(token.RPAREN)
	case '{':
		return mk(token.LBRACE)
	case '}':
		return mk(token.RBRACE)
	case '[':
		return mk(token.LBRACKET)
	case ']':
		return mk(token.RBRACKET)
	case ',':
		return mk(token.COMMA)
	case ';':
		return mk(token.SEMICOLON)
	case ':':
		return mk(token.COLON)
	case '~':
		return mk(token.TILDE)
	case '?':
		if l.nextIf('?') {
			return mk(token.NULLISH)
		}
		return mk(token.QUESTION)
	case '+':
		if l.nextIf('+') {
			return mk(token.PLUS_PLUS)
		}
		if l.nextIf('=') {
			return mk(token.PLUS_EQUALS)
		}
		return mk(token.PLUS)
	case '-':
		if l.nextIf('-') {
			return mk(token.MINUS_MINUS)
		}
		if l.nextIf('=') {
			return mk(token.MINUS_EQUALS)
		}
		return mk(token.MINUS)
	case '*':
		if l.nextIf('*') {
			if l.nextIf('=') {
				return mk(token.POW_EQUALS)
			}
			return mk(token.POW)
		}
		if l.nextIf('=') {
			return mk(token.ASTERISK_EQUALS)
		}
		return mk(token.ASTERISK)
	case '/':
		if l.nextIf('=') {
			return mk(token.SLASH_EQUALS)
		}
		return mk(token.SLASH)
	case '%':
		if l.nextIf('=') {
			return mk(token.MOD_EQUALS)
		}
		return mk(token.MOD)
	case '^':
		if l.nextIf('=') {
			return mk(token.CARET_EQUALS)
		}
		return mk(token.CARET)
	case '&':
		if l.nextIf('&') {
			return mk(token.AND)
		}
		if l.nextIf('=') {
			return mk(token.AND_EQUALS)
		}
		return mk(token.AMPERSAND)
	case '|':
		if l.nextIf('|') {
			return mk(token.OR)
		}
		if l.nextIf('=') {
			return mk(token.OR_EQUALS)
		}
		return mk(token.BITOR)
	case '!':
		if l.nextIf('=') {
			if l.nextIf('=') {
				return mk(token.STRICT_NOT_EQ)
			}
			return mk(token.NOT_EQ)
		}
		return mk(token.BANG)
	case '=':
		if l.nextIf('=') {
			if l.nextIf('=') {
				return mk(token.STRICT_EQ)
			}
			return mk(token.EQ)
		}
		return mk(token.ASSIGN)
	case '<':
		if l.nextIf('<') {
			if l.nextIf('=') {
				return mk(token.LT_LT_EQUALS)
			}
			return mk(token.LT_LT)
		}
		if l.nextIf('=') {
			return mk(token.LT_EQUALS)
		}
		return mk(token.LT)
	case '>':
		if l.nextIf('>') {
			if l.nextIf('>') {
				if l.nextIf('=') {
					return mk(token.GT_GT_GT_EQUALS)
				}
				return mk(token.GT_GT_GT)
			}
			if l.nextIf('=') {
				return mk(token.GT_GT_EQUALS)
			}
			return mk(token.GT_GT)
		}
		if l.nextIf('=') {
			return mk(token.GT_EQUALS)
		}
		return mk(token.GT)
	}
	// The offending character still becomes a token so tools that walk
	// the stream can show what was seen.
	return l.emit(token.ILLEGAL, string(r), start), l.syntaxError(start, "unexpected character %q", r)
}
