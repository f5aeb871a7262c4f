package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NickTomlin/boa/token"
)

func TestNumberTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected token.Type
	}{
		{"0", token.INT},
		{"42", token.INT},
		{"0x1A", token.INT},
		{"0XFF", token.INT},
		{"0o17", token.INT},
		{"0b1010", token.INT},
		{"1_000_000", token.INT},
		{"3.14", token.FLOAT},
		{".5", token.FLOAT},
		{"1e3", token.FLOAT},
		{"1E-3", token.FLOAT},
		{"1.5e+2", token.FLOAT},
		{"10n", token.BIGINT},
		{"0n", token.BIGINT},
		{"0x10n", token.BIGINT},
	}
	for _, tt := range tests {
		tok := single(t, tt.input)
		require.Equal(t, tt.expected, tok.Type, "input: %s", tt.input)
		// The literal text is kept verbatim; the parser derives values.
		require.Equal(t, tt.input, tok.Literal, "input: %s", tt.input)
	}
}

func TestLegacyOctalFlags(t *testing.T) {
	tok := single(t, "0777")
	require.Equal(t, token.INT, tok.Type)
	require.NotZero(t, tok.NumberFlags&token.NumLegacyOctal)
	require.Zero(t, tok.NumberFlags&token.NumLeadingZero)

	tok = single(t, "08")
	require.NotZero(t, tok.NumberFlags&token.NumLeadingZero)

	// Octal digits followed by an 8 make the whole literal a
	// leading-zero decimal.
	tok = single(t, "0778")
	require.Zero(t, tok.NumberFlags&token.NumLegacyOctal)
	require.NotZero(t, tok.NumberFlags&token.NumLeadingZero)

	tok = single(t, "42")
	require.Zero(t, tok.NumberFlags)
}

func TestStrictNumberSpellings(t *testing.T) {
	l := New("0777")
	l.SetStrict(true)
	_, err := l.Next()
	require.Error(t, err)
	require.Contains(t, err.Error(), "implicit octal")

	l = New("08")
	l.SetStrict(true)
	_, err = l.Next()
	require.Error(t, err)
	require.Contains(t, err.Error(), "leading zeros")

	// Prefixed spellings stay legal in strict mode.
	l = New("0o777")
	l.SetStrict(true)
	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.INT, tok.Type)
}

func TestNumberErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"1__2", "only one underscore"},
		{"1_", "underscores are not allowed at the end"},
		{"1._5", "numeric separator not allowed after '.'"},
		{"0x", "expected hexadecimal digit"},
		{"0o", "expected octal digit"},
		{"0b", "expected binary digit"},
		{"1e", "expected digit in exponent"},
		{"1e+", "expected digit in exponent"},
		{"3in", "must not be followed"},
		{"0x1z", "must not be followed"},
		{"0777n", "'n' suffix not allowed"},
	}
	for _, tt := range tests {
		le := lexErr(t, tt.input)
		require.Contains(t, le.Msg, tt.msg, "input: %s", tt.input)
	}
}

func TestNumberErrorPositions(t *testing.T) {
	// Strict spelling violations point at the literal start.
	l := New("x = 0777")
	l.SetStrict(true)
	for i := 0; i < 2; i++ {
		_, err := l.Next()
		require.NoError(t, err)
	}
	_, err := l.Next()
	require.Error(t, err)
	le := err.(*Error)
	require.Equal(t, 4, le.Pos.Char)
}
