package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gxhighlight/internal/configloader"
	"github.com/yaklabco/gxhighlight/internal/logging"
	"github.com/yaklabco/gxhighlight/pkg/config"
	"github.com/yaklabco/gxhighlight/pkg/markdown"
	"github.com/yaklabco/gxhighlight/pkg/reporter"
)

type markdownFlags struct {
	flavor   string
	format   string
	output   string
	noDetect bool
	compact  bool
}

func newMarkdownCommand() *cobra.Command {
	flags := &markdownFlags{}

	cmd := &cobra.Command{
		Use:     "markdown [file]",
		Aliases: []string{"md"},
		Short:   "Highlight the code blocks of a Markdown message",
		Long: `Highlight the fenced and indented code blocks of a Markdown document,
such as a chat message, leaving the prose untouched.

A block's language comes from the first word of its info string. Blocks
without one are detected from their content unless --no-detect is set.
With no file, the document is read from stdin.

Examples:
  gxhighlight markdown message.md               # Colored code blocks in place
  pbpaste | gxhighlight markdown                # Highlight from the clipboard
  gxhighlight markdown -f json message.md       # Blocks with their tokens
  gxhighlight markdown -f summary README.md     # One row per code block`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return withExitCode(ExitInvalidUsage, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMarkdown(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorCommonMark), "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(config.FormatANSI),
		"output format: ansi, text, json, html, summary")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.noDetect, "no-detect", false, "do not guess the language of unlabeled blocks")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")

	return cmd
}

func runMarkdown(cmd *cobra.Command, args []string, flags *markdownFlags) error {
	if cmd.Flags().Changed("format") {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return usageError("invalid format: %w", err)
		}
	}
	if cmd.Flags().Changed("flavor") && !configloader.IsValidFlavor(config.Flavor(flags.flavor)) {
		return usageError("invalid flavor %q: must be commonmark or gfm", flags.flavor)
	}

	cliCfg := &config.Config{}
	if cmd.Flags().Changed("flavor") {
		cliCfg.Flavor = config.Flavor(flags.flavor)
	}
	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}

	sess, err := newSession(cmd, cliCfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(sess.cfg.Format))
	if err != nil {
		return usageError("invalid format: %w", err)
	}

	var path string
	if len(args) > 0 {
		path = args[0]
	}
	name, content, err := sess.readNamedInput(cmd, path)
	if err != nil {
		return err
	}

	highlighter := markdown.New(sess.registry,
		markdown.WithFlavor(string(sess.cfg.Flavor)),
		markdown.WithDetection(!flags.noDetect),
	)
	blocks, err := highlighter.Highlight(sess.ctx, content)
	if err != nil {
		return fmt.Errorf("highlight %s: %w", name, err)
	}

	sess.logger.Debug("highlighted markdown",
		logging.FieldInput, name,
		logging.FieldFlavor, highlighter.Flavor(),
		logging.FieldBlocks, len(blocks),
	)

	out := newOutput(cmd, flags.output)
	rep, err := reporter.New(reporter.Options{
		Writer:      out.Writer(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       string(sess.cfg.Color),
		Theme:       sess.cfg.Theme,
		Compact:     flags.compact,
		WorkingDir:  sess.workDir,
	})
	if err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("create reporter: %w", err))
	}

	doc := &reporter.Document{Path: name, Content: content, Blocks: blocks}
	if name == stdinName {
		doc.Path = ""
	}
	if err := rep.ReportDocument(sess.ctx, doc); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("report document: %w", err))
	}

	return out.commit(sess.ctx, sess)
}
