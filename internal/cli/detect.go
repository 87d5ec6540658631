package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gxhighlight/internal/ui/pretty"
	"github.com/yaklabco/gxhighlight/pkg/config"
)

// detection is the language resolved for one input.
type detection struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Name     string `json:"name,omitempty"`
	Error    string `json:"error,omitempty"`
}

func newDetectCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "detect [paths...]",
		Short: "Print the language detected for each file",
		Long: `Print the language each file would be highlighted as, using the same
extension, file name, shebang and content rules as the highlight command.
With no paths, stdin is examined. Unrecognized inputs are reported as
"text".

Examples:
  gxhighlight detect Makefile script     # One "path: language" line each
  echo 'SELECT 1' | gxhighlight detect
  gxhighlight detect -f json *`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", listFormatText, "output format: text, json")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, format string) error {
	if format != listFormatText && format != listFormatJSON {
		return usageError("invalid format %q: must be text or json", format)
	}

	sess, err := newSession(cmd, &config.Config{})
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{""}
	}

	failed := false
	results := make([]detection, 0, len(paths))
	for _, path := range paths {
		if err := sess.ctx.Err(); err != nil {
			return fmt.Errorf("detect cancelled: %w", err)
		}

		name, content, err := sess.readNamedInput(cmd, path)
		if err != nil {
			if path == "" || path == "-" {
				return err
			}
			failed = true
			results = append(results, detection{Path: name, Error: err.Error()})
			continue
		}

		handle, _ := sess.registry.ResolveFile(name, content)
		result := detection{Path: name, Language: "text"}
		if !handle.IsZero() {
			result.Language = handle.ID()
			result.Name = handle.Name()
		}
		results = append(results, result)
	}

	if err := writeDetections(cmd, sess, results, format); err != nil {
		return err
	}
	if failed {
		return ErrFilesFailed
	}
	return nil
}

func writeDetections(cmd *cobra.Command, sess *session, results []detection, format string) error {
	out := cmd.OutOrStdout()

	if format == listFormatJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("encode JSON: %w", err))
		}
		return nil
	}

	renderer, colorEnabled := pretty.NewRenderer(out, string(sess.cfg.Color))
	styles := pretty.NewStylesFor(renderer, colorEnabled)
	errRenderer, errColor := pretty.NewRenderer(cmd.ErrOrStderr(), string(sess.cfg.Color))
	errStyles := pretty.NewStylesFor(errRenderer, errColor)

	for _, result := range results {
		if result.Error != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n",
				errStyles.FilePath.Render(result.Path), errStyles.Error.Render("error: "+result.Error))
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", styles.FilePath.Render(result.Path), styles.Language.Render(result.Language))
	}
	return nil
}
