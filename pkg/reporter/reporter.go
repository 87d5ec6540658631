// Package reporter writes highlighted files and Markdown documents in the
// supported output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gxhighlight/pkg/markdown"
	"github.com/yaklabco/gxhighlight/pkg/runner"
)

// Compile-time interface checks.
var (
	_ Reporter = (*TextReporter)(nil)
	_ Reporter = (*JSONReporter)(nil)
	_ Reporter = (*HTMLReporter)(nil)
	_ Reporter = (*SummaryReporter)(nil)
)

// Document is a Markdown document whose code blocks were highlighted.
type Document struct {
	// Path names the document in output; "" for stdin.
	Path string

	// Content is the raw document.
	Content []byte

	// Blocks are the highlighted code blocks in document order.
	Blocks []markdown.Block
}

// Reporter formats and writes highlighted output.
type Reporter interface {
	// Report writes the highlighted files of result. It returns the number
	// of files written and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)

	// ReportDocument writes a Markdown document with highlighted code blocks.
	ReportDocument(ctx context.Context, doc *Document) error
}

// New creates a Reporter for the specified options.
//
//nolint:ireturn // Callers choose the format at runtime.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = FormatANSI
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatANSI:
		return NewTextReporter(opts, true)
	case FormatText:
		return NewTextReporter(opts, false)
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatHTML:
		return NewHTMLReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// reportable returns the outcomes that carry tokens.
func reportable(result *runner.Result) []runner.FileOutcome {
	if result == nil {
		return nil
	}
	files := make([]runner.FileOutcome, 0, len(result.Files))
	for _, file := range result.Files {
		if file.Error == nil && !file.Skipped {
			files = append(files, file)
		}
	}
	return files
}

func cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("report cancelled: %w", err)
	}
	return nil
}
