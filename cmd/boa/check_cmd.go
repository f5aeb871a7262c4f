package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/NickTomlin/boa/interner"
	"github.com/NickTomlin/boa/parser"
	"github.com/NickTomlin/boa/scope"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse and analyze files, reporting every diagnostic",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	colored := colorFor(cmd, os.Stderr)

	result := &multierror.Error{ErrorFormat: diagnosticListFormat}
	for _, name := range args {
		if err := checkFile(cmd, name, colored); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debug().Int("failed", result.Len()).Int("total", len(args)).Msg("check failed")
		return errReported
	}
	fmt.Printf("%d file(s) checked, no problems found\n", len(args))
	return nil
}

func checkFile(cmd *cobra.Command, name string, colored bool) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	src := string(data)

	in := interner.New()
	start := time.Now()
	program, err := parser.Parse(cmd.Context(), src, parserOptions(cmd, name, in)...)
	if err != nil {
		return errors.New(renderDiagnostic(err, src, name, colored))
	}
	if _, err := scope.Analyze(program, scopeOptions(cmd, in)...); err != nil {
		return errors.New(renderDiagnostic(err, src, name, colored))
	}
	log.Debug().
		Str("file", name).
		Dur("elapsed", time.Since(start)).
		Int("statements", len(program.Stmts)).
		Msg("ok")
	return nil
}

// diagnosticListFormat renders aggregated failures as a count followed by
// each diagnostic, which already carries its own location and context.
func diagnosticListFormat(errs []error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d problem(s) found:\n\n", len(errs))
	for i, err := range errs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.TrimRight(err.Error(), "\n"))
		b.WriteString("\n")
	}
	return b.String()
}
