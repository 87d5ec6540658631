package reporter

import (
	"bufio"
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/yaklabco/gxhighlight/pkg/runner"
	"github.com/yaklabco/gxhighlight/pkg/token"
)

// htmlClassPrefix prefixes the CSS class of every token span.
const htmlClassPrefix = "tok-"

// HTMLReporter writes each file as a <pre> block of class-annotated spans.
// Normal text is written without a span.
type HTMLReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(opts Options) *HTMLReporter {
	return &HTMLReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *HTMLReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	written := 0
	for _, file := range reportable(result) {
		if err := cancelled(ctx); err != nil {
			return written, err
		}
		r.writeBlock(file.Language, r.opts.displayPath(file.Path), file.Tokens)
		written++
	}

	if result != nil {
		for _, file := range result.Files {
			if file.Error != nil {
				fmt.Fprintf(r.opts.ErrorWriter, "%s: error: %v\n", r.opts.displayPath(file.Path), file.Error)
			}
		}
	}

	return written, nil
}

// ReportDocument implements Reporter by writing one <pre> per code block.
func (r *HTMLReporter) ReportDocument(ctx context.Context, doc *Document) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	for _, block := range doc.Blocks {
		if err := cancelled(ctx); err != nil {
			return err
		}
		r.writeBlock(block.Language, "", block.Tokens)
	}
	return nil
}

func (r *HTMLReporter) writeBlock(language, path string, tokens []token.Token) {
	r.bw.WriteString(`<pre class="gxhighlight"`)
	if language != "" {
		fmt.Fprintf(r.bw, ` data-language="%s"`, html.EscapeString(language))
	}
	if path != "" {
		fmt.Fprintf(r.bw, ` data-path="%s"`, html.EscapeString(path))
	}
	r.bw.WriteString("><code>")
	r.bw.WriteString(RenderHTML(tokens))
	r.bw.WriteString("</code></pre>\n")
}

// RenderHTML renders tokens as escaped HTML with one
// <span class="tok-KIND"> per non-Normal token.
func RenderHTML(tokens []token.Token) string {
	var builder strings.Builder
	for _, tok := range tokens {
		text := html.EscapeString(tok.Text)
		if tok.Kind == token.Normal {
			builder.WriteString(text)
			continue
		}
		builder.WriteString(`<span class="`)
		builder.WriteString(htmlClassPrefix)
		builder.WriteString(tok.Kind.String())
		builder.WriteString(`">`)
		builder.WriteString(text)
		builder.WriteString("</span>")
	}
	return builder.String()
}
