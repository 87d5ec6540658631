package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gxhighlight/internal/logging"
	"github.com/yaklabco/gxhighlight/pkg/config"
	"github.com/yaklabco/gxhighlight/pkg/fsutil"
	"github.com/yaklabco/gxhighlight/pkg/reporter"
	"github.com/yaklabco/gxhighlight/pkg/runner"
)

type highlightFlags struct {
	language       string
	format         string
	output         string
	jobs           int
	ignore         []string
	maxFileSize    int64
	noHeaders      bool
	summary        bool
	compact        bool
	followSymlinks bool
}

func newHighlightCommand() *cobra.Command {
	flags := &highlightFlags{}

	cmd := &cobra.Command{
		Use:     "highlight [paths...]",
		Aliases: []string{"hl"},
		Short:   "Highlight source files",
		Long:    highlightLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHighlight(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.language, "lang", "l", "", "highlight every input as this language (ID or alias)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(config.FormatANSI),
		"output format: ansi, text, json, html, summary")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().Int64Var(&flags.maxFileSize, "max-file-size", 0, "skip files larger than this many bytes (0 = no limit)")
	cmd.Flags().BoolVar(&flags.noHeaders, "no-headers", false, "omit the per-file header when highlighting several files")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a one-line summary to stderr")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")

	return cmd
}

const highlightLongDescription = `Highlight source files and write them in the chosen format.

Files are matched to a language by extension, file name, shebang and
content. Directories are walked recursively for files with a known
extension. With no paths and text piped on stdin, stdin is highlighted;
with no paths and an interactive terminal, the current directory is used.

Examples:
  gxhighlight highlight main.go                  # Colored output
  gxhighlight highlight src/ --no-headers        # Every known file under src/
  cat query.txt | gxhighlight highlight -l sql   # Highlight stdin as SQL
  gxhighlight highlight -f json data.csv         # Token arrays for tools
  gxhighlight highlight -f html -o out.html x.py # Write HTML spans to a file
  gxhighlight highlight -f summary .             # Token counts per kind`

// cliConfig collects the values of the flags the user actually set.
func (f *highlightFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{Language: f.language}
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if cmd.Flags().Changed("max-file-size") {
		cfg.MaxFileSize = f.maxFileSize
	}
	cfg.Ignore = f.ignore
	return cfg
}

func runHighlight(cmd *cobra.Command, args []string, flags *highlightFlags) error {
	if cmd.Flags().Changed("format") {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return usageError("invalid format: %w", err)
		}
	}

	sess, err := newSession(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}
	cfg := sess.cfg

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return usageError("invalid format: %w", err)
	}

	if cfg.Language != "" {
		if _, ok := sess.registry.Resolve(cfg.Language); !ok {
			sess.logger.Warn("unknown language; input is not highlighted", logging.FieldLanguage, cfg.Language)
		}
	}

	highlighter := runner.New(sess.registry)
	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     sess.workDir,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Jobs,
		Language:       cfg.Language,
		MaxFileSize:    cfg.MaxFileSize,
		Logger:         sess.logger,
	}

	var result *runner.Result
	if in, ok := pipedStdin(cmd); ok && len(args) == 0 {
		result = runner.Collect(sess.highlightStdin(highlighter, in, runOpts))
	} else {
		sess.logger.Debug("starting highlight run",
			logging.FieldPaths, args,
			logging.FieldWorkingDir, sess.workDir,
			logging.FieldJobs, cfg.Jobs,
		)
		result, err = highlighter.Run(sess.ctx, runOpts)
		if err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("highlight: %w", err))
		}
	}

	out := newOutput(cmd, flags.output)
	rep, err := reporter.New(reporter.Options{
		Writer:      out.Writer(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       string(cfg.Color),
		Theme:       cfg.Theme,
		NoHeaders:   flags.noHeaders,
		ShowSummary: flags.summary,
		Compact:     flags.compact,
		WorkingDir:  sess.workDir,
	})
	if err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(sess.ctx, result); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}
	if err := out.commit(sess.ctx, sess); err != nil {
		return err
	}

	sess.logger.Debug("highlight finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldTokensTotal, result.Stats.TokensTotal,
	)

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesFailed
	}
	return nil
}

// highlightStdin reads and scans standard input as a single file.
func (s *session) highlightStdin(highlighter *runner.Runner, in io.Reader, opts runner.Options) runner.FileOutcome {
	content, err := fsutil.ReadAll(s.ctx, in, s.cfg.MaxFileSize)
	switch {
	case errors.Is(err, fsutil.ErrTooLarge):
		s.logger.Warn("skipping oversized input", logging.FieldInput, stdinName, "limit", s.cfg.MaxFileSize)
		return runner.FileOutcome{Path: stdinName, Skipped: true}
	case err != nil:
		return runner.FileOutcome{Path: stdinName, Error: err}
	}
	return highlighter.HighlightContent(stdinName, content, opts)
}
