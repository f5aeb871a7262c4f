package parser

import (
	"fmt"
	"strings"

	"github.com/NickTomlin/boa/errors"
	"github.com/NickTomlin/boa/token"
)

// ErrorOpts holds the data used to build a parser error. All fields are
// optional, although one of Cause or Message is recommended. If Cause is
// set, Message is ignored.
type ErrorOpts struct {
	Kind          string
	Code          errors.ErrorCode
	Message       string
	Cause         error
	File          string
	StartPosition token.Position
	EndPosition   token.Position
	SourceCode    string
	Hint          string
}

// ParserError is the interface implemented by SyntaxError and EarlyError.
type ParserError interface {
	error
	Kind() string
	Code() errors.ErrorCode
	Message() string
	Cause() error
	File() string
	StartPosition() token.Position
	EndPosition() token.Position
	SourceCode() string
	ToFormatted() *errors.FormattedError
	FriendlyErrorMessage() string
}

// baseError is the shared implementation behind both error kinds.
type baseError struct {
	kind          string
	code          errors.ErrorCode
	message       string
	cause         error
	file          string
	startPosition token.Position
	endPosition   token.Position
	sourceCode    string
	hint          string
}

func newBaseError(opts ErrorOpts) *baseError {
	return &baseError{
		kind:          opts.Kind,
		code:          opts.Code,
		message:       opts.Message,
		cause:         opts.Cause,
		file:          opts.File,
		startPosition: opts.StartPosition,
		endPosition:   opts.EndPosition,
		sourceCode:    opts.SourceCode,
		hint:          opts.Hint,
	}
}

func (e *baseError) Error() string {
	msg := e.message
	if e.cause != nil {
		msg = e.cause.Error()
	}
	if e.kind != "" {
		msg = fmt.Sprintf("%s: %s", e.kind, msg)
	}
	if e.startPosition.IsValid() || e.startPosition.Char > 0 {
		msg = fmt.Sprintf("%s (line %d, column %d)", msg,
			e.startPosition.LineNumber(), e.startPosition.ColumnNumber())
	}
	return msg
}

func (e *baseError) Kind() string                   { return e.kind }
func (e *baseError) Code() errors.ErrorCode         { return e.code }
func (e *baseError) Message() string                { return e.message }
func (e *baseError) Cause() error                   { return e.cause }
func (e *baseError) Unwrap() error                  { return e.cause }
func (e *baseError) File() string                   { return e.file }
func (e *baseError) StartPosition() token.Position  { return e.startPosition }
func (e *baseError) EndPosition() token.Position    { return e.endPosition }
func (e *baseError) SourceCode() string             { return e.sourceCode }

// ToFormatted converts the error to a FormattedError for display.
func (e *baseError) ToFormatted() *errors.FormattedError {
	message := e.message
	if e.cause != nil {
		message = e.cause.Error()
	}
	start := e.startPosition
	end := e.endPosition
	fe := &errors.FormattedError{
		Code:      e.code,
		Kind:      e.kind,
		Message:   message,
		Filename:  e.file,
		Line:      start.LineNumber(),
		Column:    start.ColumnNumber(),
		EndColumn: end.ColumnNumber() - 1,
		Hint:      e.hint,
	}
	if e.sourceCode != "" {
		fe.SourceLines = []errors.SourceLineEntry{
			{Number: start.LineNumber(), Text: e.sourceCode, IsMain: true},
		}
	}
	return fe
}

// FriendlyErrorMessage returns a formatted, human-oriented rendering of
// the error without color.
func (e *baseError) FriendlyErrorMessage() string {
	return errors.NewFormatter(false).Format(e.ToFormatted())
}

// SyntaxError reports input the grammar cannot accept.
type SyntaxError struct {
	*baseError
}

// NewSyntaxError returns a SyntaxError populated with the given data.
func NewSyntaxError(opts ErrorOpts) *SyntaxError {
	opts.Kind = "syntax error"
	return &SyntaxError{baseError: newBaseError(opts)}
}

// EarlyError reports input that matches the grammar but violates a static
// semantic rule (strict-mode restrictions, binding rules, misplaced
// yield/await, and the like).
type EarlyError struct {
	*baseError
}

// NewEarlyError returns an EarlyError populated with the given data.
func NewEarlyError(opts ErrorOpts) *EarlyError {
	opts.Kind = "early error"
	return &EarlyError{baseError: newBaseError(opts)}
}

// classifyLexical maps a lexer error message onto a diagnostic code.
func classifyLexical(msg string) errors.ErrorCode {
	switch {
	case strings.Contains(msg, "string literal"):
		return errors.E1002
	case strings.Contains(msg, "template literal"):
		return errors.E1003
	case strings.Contains(msg, "comment"):
		return errors.E1004
	case strings.Contains(msg, "separator"):
		return errors.E1007
	case strings.Contains(msg, "escape"):
		return errors.E1006
	case strings.Contains(msg, "digit"), strings.Contains(msg, "octal"),
		strings.Contains(msg, "exponent"), strings.Contains(msg, "numeric"),
		strings.Contains(msg, "number"):
		return errors.E1005
	default:
		return errors.E1001
	}
}

func tokenTypeDescription(t token.Type) string {
	switch t {
	case token.EOF:
		return "end of file"
	case token.IDENT:
		return "identifier"
	case token.INT, token.FLOAT, token.BIGINT:
		return "number"
	case token.STRING:
		return "string"
	default:
		if txt := keywordSpelling(t); txt != "" {
			return fmt.Sprintf("'%s'", txt)
		}
		return fmt.Sprintf("'%s'", string(t))
	}
}

func tokenDescription(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of file"
	case token.STRING, token.TEMPLATE:
		return "string"
	default:
		if t.Literal == "" {
			return string(t.Type)
		}
		return fmt.Sprintf("'%s'", t.Literal)
	}
}

// keywordSpelling returns the source spelling of a keyword token type,
// or "" when the type is not a keyword.
func keywordSpelling(t token.Type) string {
	if !token.IsKeyword(t) {
		return ""
	}
	return strings.ToLower(string(t))
}
