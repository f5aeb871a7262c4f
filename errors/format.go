package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter formats errors with colors and consistent styling.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

// Colors used for error formatting
var (
	colorError     = color.New(color.FgRed)
	colorErrorBold = color.New(color.FgHiRed, color.Bold)
	colorCode      = color.New(color.FgHiBlack)
	colorLocation  = color.New(color.FgCyan)
	colorLineNum   = color.New(color.FgHiBlack)
	colorPipe      = color.New(color.FgHiBlack)
	colorSource    = color.New(color.FgWhite)
	colorCaret     = color.New(color.FgHiRed)
	colorHint      = color.New(color.FgHiYellow)
	colorNote      = color.New(color.FgHiBlue)
)

// FormattedError represents an error ready for display.
type FormattedError struct {
	Code        ErrorCode
	Kind        string // "syntax error", "lexical error", "early error"
	Message     string
	Filename    string
	Line        int
	Column      int
	EndColumn   int               // for multi-character underlines
	SourceLines []SourceLineEntry // lines of context around the error
	Hint        string            // "Did you mean?" suggestion
	Note        string            // additional context
}

// SourceLineEntry represents a line of source code with its number.
type SourceLineEntry struct {
	Number int
	Text   string
	IsMain bool // true if this is the line with the error
}

func (f *Formatter) paint(c *color.Color, s string) string {
	if f.UseColor {
		return c.Sprint(s)
	}
	return s
}

// Format formats the error as a string using a consistent Rust-like style.
func (f *Formatter) Format(err *FormattedError) string {
	var b strings.Builder

	lineNumWidth := 2
	if err.Line >= 100 {
		lineNumWidth = len(fmt.Sprintf("%d", err.Line))
	}

	f.writeHeader(&b, err)
	f.writeLocation(&b, err, lineNumWidth)
	f.writeSource(&b, err, lineNumWidth)

	if err.Hint != "" {
		f.writeAside(&b, "hint: ", err.Hint, colorHint, lineNumWidth)
	}
	if err.Note != "" {
		f.writeAside(&b, "note: ", err.Note, colorNote, lineNumWidth)
	}

	return b.String()
}

func (f *Formatter) writeHeader(b *strings.Builder, err *FormattedError) {
	label := "error"
	if err.Kind != "" {
		label = err.Kind
	}
	b.WriteString(f.paint(colorErrorBold, label))
	if err.Code != "" {
		b.WriteString(f.paint(colorCode, fmt.Sprintf("[%s]", err.Code)))
	}
	b.WriteString(f.paint(colorError, ": "))
	b.WriteString(err.Message)
	b.WriteString("\n")
}

func (f *Formatter) writeLocation(b *strings.Builder, err *FormattedError, lineNumWidth int) {
	if err.Line == 0 && err.Filename == "" {
		return
	}
	padding := strings.Repeat(" ", lineNumWidth)
	b.WriteString(f.paint(colorLineNum, padding))
	b.WriteString(f.paint(colorLocation, "-->"))
	b.WriteString(" ")

	loc := ""
	if err.Filename != "" {
		loc = err.Filename
		if err.Line > 0 {
			loc += fmt.Sprintf(":%d:%d", err.Line, err.Column)
		}
	} else if err.Line > 0 {
		loc = fmt.Sprintf("%d:%d", err.Line, err.Column)
	}
	b.WriteString(f.paint(colorLocation, loc))
	b.WriteString("\n")
}

func (f *Formatter) writeSource(b *strings.Builder, err *FormattedError, lineNumWidth int) {
	if len(err.SourceLines) == 0 {
		return
	}
	padding := strings.Repeat(" ", lineNumWidth)

	b.WriteString(f.paint(colorLineNum, padding))
	b.WriteString(f.paint(colorPipe, " |\n"))

	for _, line := range err.SourceLines {
		lineNumStr := fmt.Sprintf("%*d", lineNumWidth, line.Number)
		b.WriteString(f.paint(colorLineNum, lineNumStr))
		b.WriteString(f.paint(colorPipe, " | "))
		b.WriteString(f.paint(colorSource, line.Text))
		b.WriteString("\n")

		if line.IsMain && err.Column > 0 {
			b.WriteString(f.paint(colorLineNum, padding))
			b.WriteString(f.paint(colorPipe, " | "))
			b.WriteString(strings.Repeat(" ", err.Column-1))
			caretLen := 1
			if err.EndColumn > err.Column {
				caretLen = err.EndColumn - err.Column + 1
			}
			b.WriteString(f.paint(colorCaret, strings.Repeat("^", caretLen)))
			b.WriteString("\n")
		}
	}
}

func (f *Formatter) writeAside(b *strings.Builder, label, text string, c *color.Color, lineNumWidth int) {
	padding := strings.Repeat(" ", lineNumWidth)
	b.WriteString(f.paint(colorLineNum, padding))
	b.WriteString(f.paint(colorPipe, " |\n"))
	b.WriteString(f.paint(colorLineNum, padding))
	b.WriteString(f.paint(colorPipe, " = "))
	b.WriteString(f.paint(c, label))
	b.WriteString(text)
	b.WriteString("\n")
}
