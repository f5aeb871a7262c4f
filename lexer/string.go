package lexer

import (
	"strings"

	"github.com/NickTomlin/boa/token"
)

// String literal lexing. The opening quote is already consumed. The token
// Literal holds the cooked (unescaped) value.
func (l *Lexer) lexString(start token.Position, quote rune) (token.Token, error) {
	var sb strings.Builder
	for {
		r := l.peek()
		switch {
		case r == eof:
			return token.Token{}, l.syntaxError(l.Position(), "unterminated string literal")
		case isLineTerminator(r):
			return token.Token{}, l.syntaxError(l.Position(), "unterminated string literal")
		case r == quote:
			l.next()
			return l.emit(token.STRING, sb.String(), start), nil
		case r == '\\':
			l.next()
			if err := l.lexStringEscape(&sb); err != nil {
				return token.Token{}, err
			}
		default:
			sb.WriteRune(l.next())
		}
	}
}

// lexStringEscape lexes one escape sequence; the backslash is consumed.
func (l *Lexer) lexStringEscape(sb *strings.Builder) error {
	r := l.peek()
	if r == eof {
		return l.syntaxError(l.Position(), "unterminated string literal")
	}
	if isLineTerminator(r) {
		// Line continuation contributes nothing to the value.
		l.next()
		if r == '\r' {
			l.nextIf('\n')
		}
		return nil
	}
	errPos := l.Position()
	switch r {
	case 'n':
		l.next()
		sb.WriteByte('\n')
	case 't':
		l.next()
		sb.WriteByte('\t')
	case 'r':
		l.next()
		sb.WriteByte('\r')
	case 'b':
		l.next()
		sb.WriteByte('\b')
	case 'f':
		l.next()
		sb.WriteByte('\f')
	case 'v':
		l.next()
		sb.WriteByte('\v')
	case '0':
		l.next()
		if isDecimalDigit(l.peek()) {
			return l.syntaxError(errPos, "octal escape sequences are not supported")
		}
		sb.WriteByte(0)
	case 'x':
		l.next()
		var v rune
		for range 2 {
			d := hexValue(l.peek())
			if d < 0 {
				return l.syntaxError(l.Position(), "invalid hexadecimal escape sequence")
			}
			l.next()
			v = v*16 + rune(d)
		}
		sb.WriteRune(v)
	case 'u':
		decoded, err := l.lexUnicodeEscape(errPos)
		if err != nil {
			return err
		}
		sb.WriteRune(decoded)
	default:
		sb.WriteRune(l.next())
	}
	return nil
}

// CookTemplate decodes one raw template chunk (text between the backticks
// or interpolation markers) into its cooked value: escape sequences are
// resolved and \r\n pairs normalize to \n. The chunk must not contain an
// interpolation; the parser splits those out first.
func CookTemplate(raw string) (string, error) {
	var sb strings.Builder
	rs := []rune(raw)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r == '\r' {
			sb.WriteByte('\n')
			if i+1 < len(rs) && rs[i+1] == '\n' {
				i++
			}
			continue
		}
		if r != '\\' {
			sb.WriteRune(r)
			continue
		}
		i++
		if i >= len(rs) {
			return "", &Error{Msg: "unterminated template literal"}
		}
		switch rs[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			if i+1 < len(rs) && isDecimalDigit(rs[i+1]) {
				return "", &Error{Msg: "octal escape sequences are not supported"}
			}
			sb.WriteByte(0)
		case 'x':
			var v rune
			for k := 0; k < 2; k++ {
				i++
				if i >= len(rs) || hexValue(rs[i]) < 0 {
					return "", &Error{Msg: "invalid hexadecimal escape sequence"}
				}
				v = v*16 + rune(hexValue(rs[i]))
			}
			sb.WriteRune(v)
		case 'u':
			decoded, n, err := decodeUnicodeEscape(rs[i+1:])
			if err != nil {
				return "", err
			}
			i += n
			sb.WriteRune(decoded)
		case '\r':
			// Line continuation contributes nothing.
			if i+1 < len(rs) && rs[i+1] == '\n' {
				i++
			}
		case '\n', ' ', ' ':
			// Line continuation contributes nothing.
		default:
			sb.WriteRune(rs[i])
		}
	}
	return sb.String(), nil
}

// decodeUnicodeEscape decodes the payload of a \u escape (the runes after
// 'u'), returning the decoded rune and how many runes were consumed.
func decodeUnicodeEscape(rs []rune) (rune, int, error) {
	if len(rs) > 0 && rs[0] == '{' {
		v := rune(0)
		i := 1
		for ; i < len(rs) && rs[i] != '}'; i++ {
			d := hexValue(rs[i])
			if d < 0 {
				return 0, 0, &Error{Msg: "invalid Unicode escape sequence"}
			}
			v = v*16 + rune(d)
			if v > 0x10FFFF {
				return 0, 0, &Error{Msg: "Unicode code point out of range"}
			}
		}
		if i == 1 || i >= len(rs) {
			return 0, 0, &Error{Msg: "invalid Unicode escape sequence"}
		}
		return v, i + 1, nil
	}
	if len(rs) < 4 {
		return 0, 0, &Error{Msg: "invalid Unicode escape sequence"}
	}
	v := rune(0)
	for i := 0; i < 4; i++ {
		d := hexValue(rs[i])
		if d < 0 {
			return 0, 0, &Error{Msg: "invalid Unicode escape sequence"}
		}
		v = v*16 + rune(d)
	}
	return v, 4, nil
}

// Template literal lexing. The opening backtick is already consumed. The
// token Literal holds the raw inner text, escapes intact; the parser splits
// out ${...} interpolations and sub-parses them, following the same
// division of labor the string/template parser productions expect.
func (l *Lexer) lexTemplate(start token.Position) (token.Token, error) {
	raw, err := l.scanTemplateRaw()
	if err != nil {
		return token.Token{}, err
	}
	return l.emit(token.TEMPLATE, raw, start), nil
}

// scanTemplateRaw consumes template text through the matching closing
// backtick, keeping track of ${...} nesting so that braces and nested
// templates inside an interpolation do not end the scan early.
func (l *Lexer) scanTemplateRaw() (string, error) {
	var sb strings.Builder
	for {
		r := l.peek()
		switch {
		case r == eof:
			return "", l.syntaxError(l.Position(), "unterminated template literal")
		case r == '`':
			l.next()
			return sb.String(), nil
		case r == '\\':
			sb.WriteRune(l.next())
			if l.peek() == eof {
				return "", l.syntaxError(l.Position(), "unterminated template literal")
			}
			sb.WriteRune(l.next())
		case isLineTerminator(r):
			l.newlineSeen = true
			sb.WriteRune(l.next())
		case r == '$' && l.peekAt(1) == '{':
			sb.WriteRune(l.next())
			sb.WriteRune(l.next())
			if err := l.scanInterpolation(&sb); err != nil {
				return "", err
			}
		default:
			sb.WriteRune(l.next())
		}
	}
}

// scanInterpolation copies an interpolation body through its closing brace,
// balancing nested braces and recursing for nested template literals.
func (l *Lexer) scanInterpolation(sb *strings.Builder) error {
	depth := 1
	for depth > 0 {
		r := l.peek()
		switch {
		case r == eof:
			return l.syntaxError(l.Position(), "missing '}' in template literal")
		case r == '{':
			depth++
			sb.WriteRune(l.next())
		case r == '}':
			depth--
			sb.WriteRune(l.next())
		case r == '`':
			sb.WriteRune(l.next())
			inner, err := l.scanTemplateRaw()
			if err != nil {
				return err
			}
			sb.WriteString(inner)
			sb.WriteByte('`')
		case isLineTerminator(r):
			l.newlineSeen = true
			sb.WriteRune(l.next())
		default:
			sb.WriteRune(l.next())
		}
	}
	return nil
}
