// Package token defines language keywords and tokens used when lexing source code.
package token

import "sort"

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int    // byte offset within the file
	LineStart int    // byte offset of the start of the current line
	Line      int    // 0-indexed line number
	Column    int    // 0-indexed column number
	File      string // filename
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n bytes.
// Used for computing End positions from a start position.
// Note: This assumes the advance does not cross line boundaries.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
		File:      p.File,
	}
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0 || p.Char > 0
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// LinearSpan is a half-open range of token indices over a single parse.
// Unlike Position ranges, which address characters, a LinearSpan addresses
// the token stream itself, so a function body can be re-entered and parsed
// lazily without re-lexing from the start of the file.
type LinearSpan struct {
	Start int // index of the first token in the range
	End   int // index of the first token after the range
}

// Union returns the smallest LinearSpan covering both s and other.
func (s LinearSpan) Union(other LinearSpan) LinearSpan {
	u := s
	if other.Start < u.Start {
		u.Start = other.Start
	}
	if other.End > u.End {
		u.End = other.End
	}
	return u
}

// IsEmpty returns true if the span covers no tokens.
func (s LinearSpan) IsEmpty() bool {
	return s.End <= s.Start
}

// NumberFlags records spelling details of a numeric literal that the parser
// needs to enforce strict-mode rules, even when strictness is discovered
// after the token was buffered (e.g. a "use strict" directive).
type NumberFlags uint8

const (
	// NumLegacyOctal marks a literal like 0777: a leading zero directly
	// followed by octal digits, with no 0o prefix.
	NumLegacyOctal NumberFlags = 1 << iota

	// NumLeadingZero marks a leading-zero decimal like 08 or 09.
	NumLeadingZero
)

// Token represents one token lexed from the input source code.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position

	// NewlineBefore is true if at least one line terminator appeared
	// between the previous token and this one. Drives automatic
	// semicolon insertion decisions in the parser.
	NewlineBefore bool

	// HasEscape is true if an identifier or keyword was spelled using a
	// unicode escape sequence. Keywords spelled this way are rejected
	// where their keyword meaning is required.
	HasEscape bool

	// NumberFlags carries numeric literal spelling details.
	NumberFlags NumberFlags
}

// Token types
const (
	ILLEGAL  Type = "ILLEGAL"
	EOF      Type = "EOF"
	IDENT    Type = "IDENT"
	INT      Type = "INT"
	FLOAT    Type = "FLOAT"
	BIGINT   Type = "BIGINT"
	STRING   Type = "STRING"
	TEMPLATE Type = "TEMPLATE"

	// Punctuators
	ASSIGN          Type = "="
	PLUS            Type = "+"
	MINUS           Type = "-"
	ASTERISK        Type = "*"
	SLASH           Type = "/"
	MOD             Type = "%"
	POW             Type = "**"
	PLUS_EQUALS     Type = "+="
	MINUS_EQUALS    Type = "-="
	ASTERISK_EQUALS Type = "*="
	SLASH_EQUALS    Type = "/="
	MOD_EQUALS      Type = "%="
	POW_EQUALS      Type = "**="
	PLUS_PLUS       Type = "++"
	MINUS_MINUS     Type = "--"
	BANG            Type = "!"
	TILDE           Type = "~"
	AMPERSAND       Type = "&"
	BITOR           Type = "|"
	CARET           Type = "^"
	AND             Type = "&&"
	OR              Type = "||"
	NULLISH         Type = "??"
	AND_EQUALS      Type = "&="
	OR_EQUALS       Type = "|="
	CARET_EQUALS    Type = "^="
	LT              Type = "<"
	GT              Type = ">"
	LT_EQUALS       Type = "<="
	GT_EQUALS       Type = ">="
	EQ              Type = "=="
	NOT_EQ          Type = "!="
	STRICT_EQ       Type = "==="
	STRICT_NOT_EQ   Type = "!=="
	LT_LT           Type = "<<"
	GT_GT           Type = ">>"
	GT_GT_GT        Type = ">>>"
	LT_LT_EQUALS    Type = "<<="
	GT_GT_EQUALS    Type = ">>="
	GT_GT_GT_EQUALS Type = ">>>="
	LPAREN          Type = "("
	RPAREN          Type = ")"
	LBRACE          Type = "{"
	RBRACE          Type = "}"
	LBRACKET        Type = "["
	RBRACKET        Type = "]"
	COMMA           Type = ","
	SEMICOLON       Type = ";"
	COLON           Type = ":"
	QUESTION        Type = "?"
	PERIOD          Type = "."
	SPREAD          Type = "..."

	// Keywords
	VAR        Type = "VAR"
	LET        Type = "LET"
	CONST      Type = "CONST"
	FUNCTION   Type = "FUNCTION"
	RETURN     Type = "RETURN"
	IF         Type = "IF"
	ELSE       Type = "ELSE"
	DO         Type = "DO"
	WHILE      Type = "WHILE"
	FOR        Type = "FOR"
	IN         Type = "IN"
	NEW        Type = "NEW"
	DELETE     Type = "DELETE"
	TYPEOF     Type = "TYPEOF"
	VOID       Type = "VOID"
	INSTANCEOF Type = "INSTANCEOF"
	THIS       Type = "THIS"
	NULL       Type = "NULL"
	TRUE       Type = "TRUE"
	FALSE      Type = "FALSE"
	AWAIT      Type = "AWAIT"
	YIELD      Type = "YIELD"
	CLASS      Type = "CLASS"
	EXTENDS    Type = "EXTENDS"
	SUPER      Type = "SUPER"
	BREAK      Type = "BREAK"
	CONTINUE   Type = "CONTINUE"
	THROW      Type = "THROW"
	TRY        Type = "TRY"
	CATCH      Type = "CATCH"
	FINALLY    Type = "FINALLY"
	SWITCH     Type = "SWITCH"
	CASE       Type = "CASE"
	DEFAULT    Type = "DEFAULT"
	DEBUGGER   Type = "DEBUGGER"
)

// Reserved keywords. Contextual keywords (of, async, get, set, static)
// deliberately lex as IDENT; the parser recognizes them by literal text
// in the positions where they matter.
var keywords = map[string]Type{
	"var":        VAR,
	"let":        LET,
	"const":      CONST,
	"function":   FUNCTION,
	"return":     RETURN,
	"if":         IF,
	"else":       ELSE,
	"do":         DO,
	"while":      WHILE,
	"for":        FOR,
	"in":         IN,
	"new":        NEW,
	"delete":     DELETE,
	"typeof":     TYPEOF,
	"void":       VOID,
	"instanceof": INSTANCEOF,
	"this":       THIS,
	"null":       NULL,
	"true":       TRUE,
	"false":      FALSE,
	"await":      AWAIT,
	"yield":      YIELD,
	"class":      CLASS,
	"extends":    EXTENDS,
	"super":      SUPER,
	"break":      BREAK,
	"continue":   CONTINUE,
	"throw":      THROW,
	"try":        TRY,
	"catch":      CATCH,
	"finally":    FINALLY,
	"switch":     SWITCH,
	"case":       CASE,
	"default":    DEFAULT,
	"debugger":   DEBUGGER,
}

// Keywords returns the reserved keyword spellings in sorted order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LookupIdentifier used to determinate whether identifier is keyword nor not
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a reserved keyword.
func IsKeyword(t Type) bool {
	_, ok := keywords[string(keywordText(t))]
	return ok
}

func keywordText(t Type) string {
	// Keyword token types are spelled in upper case; the source text is
	// the lower-cased form.
	switch t {
	case VAR, LET, CONST, FUNCTION, RETURN, IF, ELSE, DO, WHILE, FOR, IN,
		NEW, DELETE, TYPEOF, VOID, INSTANCEOF, THIS, NULL, TRUE, FALSE,
		AWAIT, YIELD, CLASS, EXTENDS, SUPER, BREAK, CONTINUE, THROW, TRY,
		CATCH, FINALLY, SWITCH, CASE, DEFAULT, DEBUGGER:
		return lower(string(t))
	}
	return ""
}

func lower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
