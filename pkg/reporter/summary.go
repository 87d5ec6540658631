package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/gxhighlight/internal/ui/pretty"
	"github.com/yaklabco/gxhighlight/pkg/runner"
)

// SummaryReporter writes aggregate token and language counts instead of
// the highlighted text.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	renderer, colorEnabled := pretty.NewRenderer(opts.Writer, opts.Color)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStylesFor(renderer, colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if err := cancelled(ctx); err != nil {
		return 0, err
	}
	if result == nil {
		result = runner.Collect()
	}

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.opts.ErrorWriter, "%s: %s\n",
				r.opts.displayPath(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
		}
	}

	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return result.Stats.FilesProcessed, nil
}

// ReportDocument implements Reporter with one table row per code block.
func (r *SummaryReporter) ReportDocument(ctx context.Context, doc *Document) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if err := cancelled(ctx); err != nil {
		return err
	}

	if len(doc.Blocks) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("No code blocks"))
		return nil
	}

	highlighted := 0
	rows := make([][]string, 0, len(doc.Blocks))
	for i, block := range doc.Blocks {
		language := block.Language
		if block.Highlighted {
			highlighted++
		} else {
			language = "-"
		}
		kind := "indented"
		if block.Fenced {
			kind = "fenced"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			language,
			kind,
			strconv.Itoa(len(block.Lines)),
			strconv.Itoa(len(block.Tokens)),
		})
	}

	fmt.Fprint(r.bw, r.styles.FormatTable([]string{"#", "Language", "Block", "Lines", "Tokens"}, rows, 0, 3, 4))
	fmt.Fprintf(r.bw, "\n%d code blocks, %d highlighted\n", len(doc.Blocks), highlighted)

	return nil
}
