package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NickTomlin/boa/token"
)

// tokenize collects every token up to and including EOF.
func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var toks []token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func lexErr(t *testing.T, input string) *Error {
	t.Helper()
	l := New(input)
	for {
		tok, err := l.Next()
		if err != nil {
			le, ok := err.(*Error)
			require.True(t, ok, "expected *lexer.Error, got %T", err)
			return le
		}
		require.False(t, tok.Type == token.EOF, "input lexed without error: %s", input)
	}
}

func single(t *testing.T, input string) token.Token {
	t.Helper()
	toks := tokenize(t, input)
	require.Len(t, toks, 2, "input: %s", input)
	return toks[0]
}

func TestTokenStream(t *testing.T) {
	toks := tokenize(t, "let x = 5;")
	types := make([]token.Type, 0, len(toks))
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	require.Equal(t, []token.Type{
		token.LET, token.IDENT, token.ASSIGN, token.INT, token.SEMICOLON, token.EOF,
	}, types)
	require.Equal(t, "x", toks[1].Literal)
	require.Equal(t, "5", toks[3].Literal)
}

func TestPunctuators(t *testing.T) {
	tests := []struct {
		input    string
		expected token.Type
	}{
		{"===", token.STRICT_EQ},
		{"!==", token.STRICT_NOT_EQ},
		{"==", token.EQ},
		{"!=", token.NOT_EQ},
		{"**", token.POW},
		{"**=", token.POW_EQUALS},
		{">>>", token.GT_GT_GT},
		{">>>=", token.GT_GT_GT_EQUALS},
		{">>", token.GT_GT},
		{"<<=", token.LT_LT_EQUALS},
		{"&&", token.AND},
		{"||", token.OR},
		{"??", token.NULLISH},
		{"?", token.QUESTION},
		{"++", token.PLUS_PLUS},
		{"--", token.MINUS_MINUS},
		{"+=", token.PLUS_EQUALS},
		{"&=", token.AND_EQUALS},
		{"|=", token.OR_EQUALS},
		{"^=", token.CARET_EQUALS},
		{"...", token.SPREAD},
		{".", token.PERIOD},
		{"~", token.TILDE},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, single(t, tt.input).Type, "input: %s", tt.input)
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tests := []struct {
		input    string
		expected token.Type
	}{
		{"function", token.FUNCTION},
		{"class", token.CLASS},
		{"yield", token.YIELD},
		{"await", token.AWAIT},
		{"instanceof", token.INSTANCEOF},
		{"typeof", token.TYPEOF},
		{"debugger", token.DEBUGGER},
		// Contextual keywords stay plain identifiers at the lexer level.
		{"of", token.IDENT},
		{"async", token.IDENT},
		{"static", token.IDENT},
		{"get", token.IDENT},
		{"set", token.IDENT},
		// Prefix of a keyword is still an identifier.
		{"functionx", token.IDENT},
		{"$dollar", token.IDENT},
		{"_under", token.IDENT},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, single(t, tt.input).Type, "input: %s", tt.input)
	}
}

func TestIdentifierEscapes(t *testing.T) {
	tok := single(t, `\u0066oo`)
	require.Equal(t, token.IDENT, tok.Type)
	require.Equal(t, "foo", tok.Literal)
	require.True(t, tok.HasEscape)

	// An escaped keyword spelling keeps its keyword type; the parser
	// decides whether the spelling is legal in context.
	tok = single(t, `\u0069f`)
	require.Equal(t, token.IF, tok.Type)
	require.True(t, tok.HasEscape)

	tok = single(t, `\u{66}oo`)
	require.Equal(t, "foo", tok.Literal)

	le := lexErr(t, `\u{}x`)
	require.Contains(t, le.Msg, "empty unicode escape")

	le = lexErr(t, `a\u0020b`)
	require.Contains(t, le.Msg, "invalid character in identifier escape")
}

func TestNewlineBefore(t *testing.T) {
	toks := tokenize(t, "a\nb")
	require.False(t, toks[0].NewlineBefore)
	require.True(t, toks[1].NewlineBefore)

	toks = tokenize(t, "a b")
	require.False(t, toks[1].NewlineBefore)

	// A terminator swallowed by a comment still counts.
	toks = tokenize(t, "a // trailing\nb")
	require.True(t, toks[1].NewlineBefore)

	toks = tokenize(t, "a /* span\nlines */ b")
	require.True(t, toks[1].NewlineBefore)

	toks = tokenize(t, "a /* same line */ b")
	require.False(t, toks[1].NewlineBefore)
}

func TestComments(t *testing.T) {
	toks := tokenize(t, "// only a comment")
	require.Equal(t, token.EOF, toks[0].Type)

	le := lexErr(t, "/* never closed")
	require.Contains(t, le.Msg, "unterminated block comment")
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`"tab\tstop"`, "tab\tstop"},
		{`"\x41"`, "A"},
		{`"\u0041"`, "A"},
		{`"\u{48}"`, "H"},
		{`"quote\""`, `quote"`},
		{`'\0'`, "\x00"},
		{"\"a\\\nb\"", "ab"}, // line continuation
	}
	for _, tt := range tests {
		tok := single(t, tt.input)
		require.Equal(t, token.STRING, tok.Type, "input: %s", tt.input)
		require.Equal(t, tt.expected, tok.Literal, "input: %s", tt.input)
	}
}

func TestStringErrors(t *testing.T) {
	le := lexErr(t, `"abc`)
	require.Contains(t, le.Msg, "unterminated string literal")

	le = lexErr(t, "\"a\nb\"")
	require.Contains(t, le.Msg, "unterminated string literal")

	le = lexErr(t, `"\08"`)
	require.Contains(t, le.Msg, "octal escape")

	le = lexErr(t, `"\x4z"`)
	require.Contains(t, le.Msg, "hexadecimal escape")
}

func TestTemplates(t *testing.T) {
	// The whole template is one token; the literal is the raw inner
	// text with escapes and interpolations intact.
	tok := single(t, "`hello`")
	require.Equal(t, token.TEMPLATE, tok.Type)
	require.Equal(t, "hello", tok.Literal)

	tok = single(t, "`a${b}c`")
	require.Equal(t, "a${b}c", tok.Literal)

	tok = single(t, "`a${ {k: `x${y}`} }b`")
	require.Equal(t, "a${ {k: `x${y}`} }b", tok.Literal)

	tok = single(t, "`esc\\${not}`")
	require.Equal(t, "esc\\${not}", tok.Literal)

	le := lexErr(t, "`abc")
	require.Contains(t, le.Msg, "unterminated template literal")

	le = lexErr(t, "`${a")
	require.Contains(t, le.Msg, "missing '}' in template literal")
}

func TestCookTemplate(t *testing.T) {
	cooked, err := CookTemplate(`a\nb`)
	require.NoError(t, err)
	require.Equal(t, "a\nb", cooked)

	cooked, err = CookTemplate("a\r\nb")
	require.NoError(t, err)
	require.Equal(t, "a\nb", cooked)

	cooked, err = CookTemplate(`\u{1F600}`)
	require.NoError(t, err)
	require.Equal(t, "\U0001F600", cooked)

	cooked, err = CookTemplate(`\$`)
	require.NoError(t, err)
	require.Equal(t, "$", cooked)

	_, err = CookTemplate(`\u{`)
	require.Error(t, err)
}

func TestSpreadDots(t *testing.T) {
	require.Equal(t, token.SPREAD, single(t, "...").Type)

	le := lexErr(t, "..")
	require.Contains(t, le.Msg, "spread")
}

func TestPositions(t *testing.T) {
	toks := tokenize(t, "let x")
	x := toks[1]
	require.Equal(t, 4, x.StartPosition.Char)
	require.Equal(t, 4, x.StartPosition.Column)
	require.Equal(t, 0, x.StartPosition.Line)
	require.Equal(t, 5, x.EndPosition.Char)

	toks = tokenize(t, "a\nbb")
	bb := toks[1]
	require.Equal(t, 2, bb.StartPosition.Char)
	require.Equal(t, 0, bb.StartPosition.Column)
	require.Equal(t, 1, bb.StartPosition.Line)
	require.Equal(t, 2, bb.StartPosition.LineStart)
	require.Equal(t, 2, bb.StartPosition.LineNumber())
}

func TestTokenIndex(t *testing.T) {
	l := New("a b c")
	require.Equal(t, 0, l.TokenIndex())
	for i := 1; i <= 3; i++ {
		_, err := l.Next()
		require.NoError(t, err)
		require.Equal(t, i, l.TokenIndex())
	}
}

func TestSaveRestoreState(t *testing.T) {
	l := New("a b c")
	first, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, "a", first.Literal)

	saved := l.SaveState()
	second, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, "b", second.Literal)
	require.Equal(t, 2, l.TokenIndex())

	l.RestoreState(saved)
	require.Equal(t, 1, l.TokenIndex())
	again, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, "b", again.Literal)
}

func TestUnexpectedCharacter(t *testing.T) {
	le := lexErr(t, "@")
	require.Contains(t, le.Msg, "unexpected character")

	// The error comes with an ILLEGAL token carrying the character.
	l := New("@")
	tok, err := l.Next()
	require.Error(t, err)
	require.Equal(t, token.ILLEGAL, tok.Type)
	require.Equal(t, "@", tok.Literal)
}

func TestGetLineText(t *testing.T) {
	l := New("first\nsecond line\nthird")
	var tok token.Token
	for i := 0; i < 3; i++ { // first, second, line
		var err error
		tok, err = l.Next()
		require.NoError(t, err)
	}
	require.Equal(t, "line", tok.Literal)
	require.Equal(t, "second line", l.GetLineText(tok))
}
