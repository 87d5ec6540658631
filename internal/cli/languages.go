package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gxhighlight/internal/ui/pretty"
	"github.com/yaklabco/gxhighlight/pkg/config"
	"github.com/yaklabco/gxhighlight/pkg/lang"
)

// Listing formats of the languages and detect commands.
const (
	listFormatText = "text"
	listFormatJSON = "json"
)

func newLanguagesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "languages",
		Aliases: []string{"langs"},
		Short:   "List supported languages",
		Long: `List every language the registry knows, including tables loaded from
language_dirs and aliases added in the configuration.

Examples:
  gxhighlight languages              # Table of IDs, aliases and extensions
  gxhighlight languages --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLanguages(cmd, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", listFormatText, "output format: text, json")

	return cmd
}

func runLanguages(cmd *cobra.Command, format string) error {
	if format != listFormatText && format != listFormatJSON {
		return usageError("invalid format %q: must be text or json", format)
	}

	sess, err := newSession(cmd, &config.Config{})
	if err != nil {
		return err
	}

	languages := sess.registry.Languages()
	out := cmd.OutOrStdout()

	if format == listFormatJSON {
		if languages == nil {
			languages = []lang.Info{}
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(languages); err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("encode JSON: %w", err))
		}
		return nil
	}

	renderer, colorEnabled := pretty.NewRenderer(out, string(sess.cfg.Color))
	styles := pretty.NewStylesFor(renderer, colorEnabled)

	rows := make([][]string, 0, len(languages))
	for _, info := range languages {
		rows = append(rows, []string{
			info.ID,
			info.Name,
			strings.Join(info.Aliases, ", "),
			strings.Join(info.Extensions, " "),
		})
	}

	fmt.Fprint(out, styles.FormatTable([]string{"ID", "Name", "Aliases", "Extensions"}, rows))
	fmt.Fprintf(out, "\n%d languages\n", len(languages))
	return nil
}
