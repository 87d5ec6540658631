// Package cli provides the Cobra command structure for gxhighlight.
package cli

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gxhighlight/internal/configloader"
	"github.com/yaklabco/gxhighlight/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Names of the persistent flags shared by every subcommand.
const (
	flagConfig   = "config"
	flagNoConfig = "no-config"
	flagColor    = "color"
	flagDebug    = "debug"
)

// NewRootCommand creates the root gxhighlight command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "gxhighlight",
		Short: "Syntax highlighting for source files and chat Markdown",
		Long: `gxhighlight classifies source text into comments, strings, numbers,
keywords, types, methods, operators and punctuation for about thirty
languages, plus CSV and TSV, and writes the result as terminal colors,
plain text, JSON token arrays, HTML spans or a summary.

Languages come from built-in tables and can be extended with YAML tables
listed under language_dirs in .gxhighlight.yml.

Environment:
` + envHelp(),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, flagDebug, false, "enable debug logging")
	rootCmd.PersistentFlags().String(flagConfig, "", "path to config file")
	rootCmd.PersistentFlags().Bool(flagNoConfig, false, "ignore user and project config files")
	rootCmd.PersistentFlags().StringVar(&color, flagColor, "auto", "colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(ExitInvalidUsage, err)
	})

	rootCmd.AddCommand(newHighlightCommand())
	rootCmd.AddCommand(newMarkdownCommand())
	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newDetectCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}

// usageError marks err as a command-line usage mistake.
func usageError(format string, args ...any) error {
	return withExitCode(ExitInvalidUsage, fmt.Errorf(format, args...))
}

// envHelp lists the configuration environment variables for the long help.
func envHelp() string {
	vars := configloader.ListEnvVars()
	var b strings.Builder
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&b, "  %-27s %s\n", name, vars[name])
	}
	return strings.TrimSuffix(b.String(), "\n")
}
