package lexer

import "github.com/NickTomlin/boa/token"

// Numeric literal lexing. Supports decimal, hex (0x), octal (0o), binary
// (0b), legacy (unprefixed) octal, the big-integer suffix (n), fractional
// and exponent parts, and single-underscore digit separators. The literal
// text is kept verbatim in Token.Literal; the parser derives the value.
//
// The first character (a digit, or '.' for a fraction like .5) is already
// consumed when lexNumber is called.
func (l *Lexer) lexNumber(start token.Position, init rune) (token.Token, error) {
	base := 10
	legacyOctal := false
	leadingZero := false
	isFloat := false
	isBigInt := false

	if init == '0' {
		switch r := l.peek(); {
		case r == 'x' || r == 'X':
			l.next()
			base = 16
			if digitValue(l.peek(), 16) < 0 {
				return token.Token{}, l.syntaxError(l.Position(), "expected hexadecimal digit after number base prefix")
			}
		case r == 'o' || r == 'O':
			l.next()
			base = 8
			if digitValue(l.peek(), 8) < 0 {
				return token.Token{}, l.syntaxError(l.Position(), "expected octal digit after number base prefix")
			}
		case r == 'b' || r == 'B':
			l.next()
			base = 2
			if digitValue(l.peek(), 2) < 0 {
				return token.Token{}, l.syntaxError(l.Position(), "expected binary digit after number base prefix")
			}
		case r == 'n':
			l.next()
			if err := l.checkAfterNumericLiteral(); err != nil {
				return token.Token{}, err
			}
			tok := l.emit(token.BIGINT, l.literalText(start), start)
			return tok, nil
		case r >= '0' && r <= '7':
			// LegacyOctalIntegerLiteral, or a decimal with leading zeros.
			// Strict mode violations are reported at the literal start,
			// not the failing digit.
			if l.strict {
				return token.Token{}, l.syntaxError(start, "implicit octal literals are not allowed in strict mode")
			}
			legacyOctal = true
			if err := l.takeDigits(8, false); err != nil {
				return token.Token{}, err
			}
			if isDecimalDigit(l.peek()) {
				// An 8 or 9 follows the octal digits, so the whole
				// literal is a leading-zero decimal (e.g. 0778).
				legacyOctal = false
				leadingZero = true
				if err := l.takeDigits(10, false); err != nil {
					return token.Token{}, err
				}
			}
		case r == '8' || r == '9':
			if l.strict {
				return token.Token{}, l.syntaxError(start, "leading zeros are not allowed in strict mode")
			}
			leadingZero = true
			if err := l.takeDigits(10, false); err != nil {
				return token.Token{}, err
			}
		}
	}

	if init == '.' {
		isFloat = true
		if l.peek() == '_' {
			return token.Token{}, l.syntaxError(l.Position(), "numeric separator not allowed after '.'")
		}
		if err := l.takeDigits(10, true); err != nil {
			return token.Token{}, err
		}
	} else if !legacyOctal && !leadingZero {
		if err := l.takeDigits(base, true); err != nil {
			return token.Token{}, err
		}
	}

	// A trailing 'n' marks a big integer; '.' and 'e'/'E' continue a
	// base-10 literal as a rational.
	switch r := l.peek(); {
	case r == 'n' && !isFloat:
		if legacyOctal {
			return token.Token{}, l.syntaxError(l.Position(), "'n' suffix not allowed in octal representation")
		}
		l.next()
		isBigInt = true
	case r == '.' && base == 10 && !legacyOctal && !isFloat:
		l.next()
		isFloat = true
		if l.peek() == '_' {
			return token.Token{}, l.syntaxError(l.Position(), "numeric separator not allowed after '.'")
		}
		if err := l.takeDigits(10, !leadingZero); err != nil {
			return token.Token{}, err
		}
	}
	if r := l.peek(); (r == 'e' || r == 'E') && base == 10 && !legacyOctal && !isBigInt {
		l.next()
		isFloat = true
		if err := l.takeExponent(); err != nil {
			return token.Token{}, err
		}
	}

	if err := l.checkAfterNumericLiteral(); err != nil {
		return token.Token{}, err
	}

	typ := token.INT
	if isBigInt {
		typ = token.BIGINT
	} else if isFloat {
		typ = token.FLOAT
	}
	tok := l.emit(typ, l.literalText(start), start)
	if legacyOctal {
		tok.NumberFlags |= token.NumLegacyOctal
	}
	if leadingZero {
		tok.NumberFlags |= token.NumLeadingZero
	}
	return tok, nil
}

// takeDigits consumes digits of the given base, enforcing the separator
// placement rules: single underscores only, never leading, trailing, or
// doubled.
func (l *Lexer) takeDigits(base int, separatorAllowed bool) error {
	prevUnderscore := false
	lastPos := l.Position()
	for {
		r := l.peek()
		if r == '_' {
			if !separatorAllowed {
				return l.syntaxError(l.Position(), "numeric separator not allowed here")
			}
			if prevUnderscore {
				return l.syntaxError(l.Position(), "only one underscore is allowed as numeric separator")
			}
			prevUnderscore = true
			lastPos = l.Position()
			l.next()
			continue
		}
		if digitValue(r, base) < 0 {
			break
		}
		prevUnderscore = false
		lastPos = l.Position()
		l.next()
	}
	if prevUnderscore {
		return l.syntaxError(lastPos, "underscores are not allowed at the end of numeric literals")
	}
	return nil
}

// takeExponent consumes an optionally signed decimal exponent. The 'e' or
// 'E' indicator is already consumed.
func (l *Lexer) takeExponent() error {
	if l.peek() == '+' || l.peek() == '-' {
		l.next()
	}
	if !isDecimalDigit(l.peek()) {
		return l.syntaxError(l.Position(), "expected digit in exponent")
	}
	return l.takeDigits(10, true)
}

// checkAfterNumericLiteral rejects an identifier-start or digit directly
// adjacent to the literal (e.g. 3in, 0x1z).
func (l *Lexer) checkAfterNumericLiteral() error {
	if r := l.peek(); isIdentStart(r) || isDecimalDigit(r) {
		return l.syntaxError(l.Position(), "a numeric literal must not be followed by an identifier character or digit")
	}
	return nil
}

func (l *Lexer) literalText(start token.Position) string {
	return l.input[start.Char:l.pos]
}

func digitValue(r rune, base int) int {
	var v int
	switch {
	case r >= '0' && r <= '9':
		v = int(r - '0')
	case r >= 'a' && r <= 'f':
		v = int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		v = int(r-'A') + 10
	default:
		return -1
	}
	if v >= base {
		return -1
	}
	return v
}
