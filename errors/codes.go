package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Lexical errors
//   - E2xxx: Syntax errors
//   - E3xxx: Early errors (static semantics)
type ErrorCode string

const (
	// Lexical errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unexpected character
	E1002 ErrorCode = "E1002" // Unterminated string literal
	E1003 ErrorCode = "E1003" // Unterminated template literal
	E1004 ErrorCode = "E1004" // Unterminated comment
	E1005 ErrorCode = "E1005" // Invalid number literal
	E1006 ErrorCode = "E1006" // Invalid escape sequence
	E1007 ErrorCode = "E1007" // Invalid numeric separator

	// Syntax errors (E2xxx)
	E2001 ErrorCode = "E2001" // Unexpected token
	E2002 ErrorCode = "E2002" // Missing expression
	E2003 ErrorCode = "E2003" // Expected identifier
	E2004 ErrorCode = "E2004" // Unclosed delimiter
	E2005 ErrorCode = "E2005" // Maximum nesting depth exceeded
	E2006 ErrorCode = "E2006" // Missing semicolon
	E2007 ErrorCode = "E2007" // Escaped keyword

	// Early errors (E3xxx)
	E3001 ErrorCode = "E3001" // Invalid assignment target
	E3002 ErrorCode = "E3002" // Duplicate binding
	E3003 ErrorCode = "E3003" // Missing const initializer
	E3004 ErrorCode = "E3004" // Reserved word as binding name
	E3005 ErrorCode = "E3005" // yield outside generator
	E3006 ErrorCode = "E3006" // await outside async context
	E3007 ErrorCode = "E3007" // Illegal return statement
	E3008 ErrorCode = "E3008" // Undefined label
	E3009 ErrorCode = "E3009" // Legacy literal in strict mode
	E3010 ErrorCode = "E3010" // Labelled function declaration
	E3011 ErrorCode = "E3011" // break outside loop or switch
	E3012 ErrorCode = "E3012" // continue outside loop
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected character",
	E1002: "unterminated string literal",
	E1003: "unterminated template literal",
	E1004: "unterminated comment",
	E1005: "invalid number literal",
	E1006: "invalid escape sequence",
	E1007: "invalid numeric separator",

	E2001: "unexpected token",
	E2002: "missing expression",
	E2003: "expected identifier",
	E2004: "unclosed delimiter",
	E2005: "maximum nesting depth exceeded",
	E2006: "missing semicolon",
	E2007: "escaped keyword",

	E3001: "invalid assignment target",
	E3002: "duplicate binding",
	E3003: "missing const initializer",
	E3004: "reserved word as binding name",
	E3005: "yield outside generator",
	E3006: "await outside async context",
	E3007: "illegal return statement",
	E3008: "undefined label",
	E3009: "legacy literal in strict mode",
	E3010: "labelled function declaration",
	E3011: "break outside loop or switch",
	E3012: "continue outside loop",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "lexical"
	case '2':
		return "syntax"
	case '3':
		return "early"
	default:
		return "unknown"
	}
}
