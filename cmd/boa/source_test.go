package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NickTomlin/boa/interner"
	"github.com/NickTomlin/boa/parser"
	"github.com/NickTomlin/boa/scope"
)

func TestRenderDiagnosticParseError(t *testing.T) {
	src := "let let = 1;"
	_, err := parser.Parse(context.Background(), src, parser.WithFilename("bad.js"))
	require.Error(t, err)

	out := renderDiagnostic(err, src, "bad.js", false)
	require.Contains(t, out, "bad.js")
	require.Contains(t, out, "let")
}

func TestRenderDiagnosticScopeError(t *testing.T) {
	src := "let a;\nvar a;"
	in := interner.New()
	program, err := parser.Parse(context.Background(), src, parser.WithInterner(in))
	require.NoError(t, err)

	_, err = scope.Analyze(program)
	require.Error(t, err)

	out := renderDiagnostic(err, src, "dup.js", false)
	require.Contains(t, out, "already been declared")
	require.Contains(t, out, "var a;")
	require.Contains(t, out, "dup.js")
}

func TestRenderDiagnosticPlainError(t *testing.T) {
	out := renderDiagnostic(errors.New("boom"), "", "x.js", false)
	require.Equal(t, "boom\n", out)
}

func TestLineAt(t *testing.T) {
	src := "first\nsecond\r\nthird"
	text, ok := lineAt(src, 1)
	require.True(t, ok)
	require.Equal(t, "second", text)

	_, ok = lineAt(src, 3)
	require.False(t, ok)
	_, ok = lineAt(src, -1)
	require.False(t, ok)
}

func TestRenderJSONPlain(t *testing.T) {
	data, err := renderJSON(map[string]int{"n": 1}, false)
	require.NoError(t, err)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, 1, decoded["n"])
}

func TestDiagnosticListFormat(t *testing.T) {
	out := diagnosticListFormat([]error{
		errors.New("first diagnostic\n"),
		errors.New("second diagnostic"),
	})
	require.Contains(t, out, "2 problem(s) found")
	require.Contains(t, out, "first diagnostic")
	require.Contains(t, out, "second diagnostic")
}

func TestUseColorModes(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	require.True(t, useColor("always", f))
	require.False(t, useColor("never", f))
	// A regular file is not a terminal.
	require.False(t, useColor("auto", f))
}
