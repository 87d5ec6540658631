package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gxhighlight/internal/ui/pretty"
	"github.com/yaklabco/gxhighlight/pkg/markdown"
	"github.com/yaklabco/gxhighlight/pkg/runner"
	"github.com/yaklabco/gxhighlight/pkg/token"
)

// TextReporter writes the scanned text back out, styled per token kind in
// the ANSI format and unchanged in the text format.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	theme  *pretty.Theme
	bw     *bufio.Writer
}

// NewTextReporter creates a text reporter. With styled set, tokens are
// colored when opts.Color allows it.
func NewTextReporter(opts Options, styled bool) (*TextReporter, error) {
	colorMode := opts.Color
	if !styled {
		colorMode = "never"
	}
	renderer, colorEnabled := pretty.NewRenderer(opts.Writer, colorMode)

	theme := pretty.PlainTheme()
	if styled {
		var err error
		theme, err = pretty.NewTheme(renderer, colorEnabled, opts.Theme)
		if err != nil {
			return nil, err
		}
	}

	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStylesFor(renderer, colorEnabled),
		theme:  theme,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}, nil
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	headers := !r.opts.NoHeaders && len(reportable(result)) > 1
	written := 0

	for _, file := range result.Files {
		if err := cancelled(ctx); err != nil {
			return written, err
		}

		if file.Error != nil {
			fmt.Fprintf(r.opts.ErrorWriter, "%s: %s\n",
				r.opts.displayPath(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Skipped {
			continue
		}

		if headers {
			if written > 0 {
				fmt.Fprintln(r.bw)
			}
			fmt.Fprintln(r.bw, r.formatHeader(file))
		}

		fmt.Fprint(r.bw, r.theme.Render(file.Tokens))
		if headers && !endsWithNewline(file.Tokens) {
			fmt.Fprintln(r.bw)
		}
		written++
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.opts.ErrorWriter, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return written, nil
}

// ReportDocument implements Reporter by writing the document with each code
// block replaced by its styled rendering.
func (r *TextReporter) ReportDocument(ctx context.Context, doc *Document) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if err := cancelled(ctx); err != nil {
		return err
	}

	out := markdown.Splice(doc.Content, doc.Blocks, func(block markdown.Block) string {
		return r.theme.Render(block.Tokens)
	})
	_, err = r.bw.Write(out)
	return err
}

func (r *TextReporter) formatHeader(file runner.FileOutcome) string {
	header := "==> " + r.styles.FilePath.Render(r.opts.displayPath(file.Path))
	if file.Language != "" {
		header += " " + r.styles.Language.Render("("+file.Language+")")
	}
	return header + " <=="
}

func endsWithNewline(tokens []token.Token) bool {
	if len(tokens) == 0 {
		return true
	}
	return strings.HasSuffix(tokens[len(tokens)-1].Text, "\n")
}
