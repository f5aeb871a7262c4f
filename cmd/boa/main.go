package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/NickTomlin/boa/parser"
)

var version = "dev"

// errReported signals that a command already printed its diagnostics, so
// main should exit nonzero without printing the error again.
var errReported = errors.New("diagnostics reported")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "boa",
		Short:         "JavaScript front end: lexer, parser and scope analysis",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.Bool("strict", false, "treat all input as strict mode code")
	flags.Bool("annex-b", true, "accept Annex B web compatibility syntax")
	flags.Int("max-depth", parser.DefaultMaxDepth, "maximum expression nesting depth")
	flags.String("color", "auto", "colorize output: auto, always or never")
	flags.Bool("verbose", false, "enable debug logging")
	flags.StringP("output", "o", "text", "output format: text or json")
	flags.StringSlice("globals", nil, "host global names predeclared for scope analysis")

	root.AddCommand(newAstCmd())
	root.AddCommand(newTokensCmd())
	root.AddCommand(newCheckCmd())
	return root
}

// initConfig layers configuration: flags set on the command line win,
// then BOA_* environment variables, then an optional ~/.boa.yaml file.
func initConfig(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix("BOA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".boa")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	var flagErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && v.IsSet(f.Name) {
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil && flagErr == nil {
				flagErr = fmt.Errorf("config value for %q: %w", f.Name, err)
			}
		}
	})
	if flagErr != nil {
		return flagErr
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	colorMode, _ := cmd.Flags().GetString("color")
	setupLogging(verbose, colorMode)
	return nil
}

func setupLogging(verbose bool, colorMode string) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !useColor(colorMode, os.Stderr),
	}
	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// useColor resolves a color mode flag value against a destination stream.
func useColor(mode string, f *os.File) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

func colorFor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Flags().GetString("color")
	return useColor(mode, f)
}
