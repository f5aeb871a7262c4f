package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/NickTomlin/boa/lexer"
	"github.com/NickTomlin/boa/token"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream for a program",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTokens,
	}
	addSourceFlags(cmd)
	return cmd
}

type tokenEntry struct {
	Index         int    `json:"index"`
	Type          string `json:"type"`
	Literal       string `json:"literal"`
	Line          int    `json:"line"`
	Column        int    `json:"column"`
	NewlineBefore bool   `json:"newlineBefore,omitempty"`
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, filename, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	strict, _ := cmd.Flags().GetBool("strict")
	l := lexer.New(src, lexer.WithFilename(filename))
	l.SetStrict(strict)

	var entries []tokenEntry
	start := time.Now()
	for {
		tok, err := l.Next()
		if err != nil {
			fmt.Fprint(os.Stderr, renderDiagnostic(err, src, filename, colorFor(cmd, os.Stderr)))
			return errReported
		}
		entries = append(entries, tokenEntry{
			Index:         l.TokenIndex() - 1,
			Type:          string(tok.Type),
			Literal:       tok.Literal,
			Line:          tok.StartPosition.LineNumber(),
			Column:        tok.StartPosition.ColumnNumber(),
			NewlineBefore: tok.NewlineBefore,
		})
		if tok.Type == token.EOF {
			break
		}
	}
	log.Debug().
		Dur("elapsed", time.Since(start)).
		Int("tokens", len(entries)).
		Msg("lex complete")

	format, _ := cmd.Flags().GetString("output")
	switch strings.ToLower(format) {
	case "json":
		data, err := renderJSON(entries, colorFor(cmd, os.Stdout))
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	case "text", "":
		for _, e := range entries {
			fmt.Printf("%4d  %-12s %-24q %d:%d\n", e.Index, e.Type, e.Literal, e.Line, e.Column)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
