package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	prettyjson "github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"

	boaerrors "github.com/NickTomlin/boa/errors"
	"github.com/NickTomlin/boa/interner"
	"github.com/NickTomlin/boa/lexer"
	"github.com/NickTomlin/boa/parser"
	"github.com/NickTomlin/boa/scope"
)

// addSourceFlags registers the flags shared by commands that take one
// program as input.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "inline source code")
	cmd.Flags().Bool("stdin", false, "read source code from stdin")
}

// readSource returns the source text and a display name for a command
// invocation. Inline code via -c wins over --stdin, which wins over a
// file argument.
func readSource(cmd *cobra.Command, args []string) (string, string, error) {
	code, _ := cmd.Flags().GetString("code")
	useStdin, _ := cmd.Flags().GetBool("stdin")
	switch {
	case code != "":
		return code, "<code>", nil
	case useStdin:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return string(data), args[0], nil
	default:
		return "", "", errors.New("expected a file argument, -c code, or --stdin")
	}
}

func parserOptions(cmd *cobra.Command, filename string, in *interner.Interner) []parser.Option {
	strict, _ := cmd.Flags().GetBool("strict")
	annexB, _ := cmd.Flags().GetBool("annex-b")
	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	return []parser.Option{
		parser.WithFilename(filename),
		parser.WithStrict(strict),
		parser.WithAnnexB(annexB),
		parser.WithMaxDepth(maxDepth),
		parser.WithInterner(in),
	}
}

func scopeOptions(cmd *cobra.Command, in *interner.Interner) []scope.Option {
	globals, _ := cmd.Flags().GetStringSlice("globals")
	if len(globals) == 0 {
		return nil
	}
	return []scope.Option{scope.WithGlobals(in, globals...)}
}

// renderDiagnostic formats a parse, lex or analysis error for display,
// including source context where the error carries it.
func renderDiagnostic(err error, src, filename string, colored bool) string {
	var pe parser.ParserError
	if errors.As(err, &pe) {
		return boaerrors.NewFormatter(colored).Format(pe.ToFormatted())
	}
	var se *scope.Error
	if errors.As(err, &se) {
		return boaerrors.NewFormatter(colored).Format(formatScopeError(se, src, filename))
	}
	var le *lexer.Error
	if errors.As(err, &le) {
		return fmt.Sprintf("%s:%d:%d: lexical error: %s\n",
			filename, le.Pos.LineNumber(), le.Pos.ColumnNumber(), le.Msg)
	}
	return err.Error() + "\n"
}

func formatScopeError(se *scope.Error, src, filename string) *boaerrors.FormattedError {
	fe := &boaerrors.FormattedError{
		Code:      se.Code,
		Kind:      "early error",
		Message:   se.Msg,
		Filename:  filename,
		Line:      se.Pos.LineNumber(),
		Column:    se.Pos.ColumnNumber(),
		EndColumn: se.End.ColumnNumber() - 1,
	}
	if se.End.Line != se.Pos.Line {
		fe.EndColumn = 0
	}
	if text, ok := lineAt(src, se.Pos.Line); ok {
		fe.SourceLines = []boaerrors.SourceLineEntry{
			{Number: fe.Line, Text: text, IsMain: true},
		}
	}
	return fe
}

// lineAt returns the text of the 0-indexed line within src.
func lineAt(src string, line int) (string, bool) {
	lines := strings.Split(src, "\n")
	if line < 0 || line >= len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line], "\r"), true
}

// renderJSON marshals v with indentation, colorized for terminals.
func renderJSON(v any, colored bool) ([]byte, error) {
	if colored {
		return prettyjson.NewFormatter().Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
