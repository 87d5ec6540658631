package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gxhighlight/pkg/config"
	"github.com/yaklabco/gxhighlight/pkg/markdown"
	"github.com/yaklabco/gxhighlight/pkg/registry"
	"github.com/yaklabco/gxhighlight/pkg/reporter"
	"github.com/yaklabco/gxhighlight/pkg/runner"
	"github.com/yaklabco/gxhighlight/pkg/token"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func outcome(path, language, text string) runner.FileOutcome {
	return runner.FileOutcome{
		Path:     path,
		Language: language,
		Tokens:   registry.Default().ScanLanguage(language, text),
	}
}

func sampleResult() *runner.Result {
	return runner.Collect(
		outcome("/work/a.go", "go", "package a\n"),
		runner.FileOutcome{Path: "/work/blob.bin", Skipped: true},
		runner.FileOutcome{Path: "/work/gone.py", Error: errors.New("permission denied")},
		outcome("/work/b.sql", "sql", "SELECT 1"),
	)
}

// newReporter builds a reporter that writes into fresh buffers.
func newReporter(t *testing.T, opts reporter.Options) (reporter.Reporter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var out, errOut bytes.Buffer
	opts.Writer = &out
	opts.ErrorWriter = &errOut
	rep, err := reporter.New(opts)
	require.NoError(t, err)
	return rep, &out, &errOut
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatANSI},
		{input: "ansi", want: reporter.FormatANSI},
		{input: "text", want: reporter.FormatText},
		{input: "json", want: reporter.FormatJSON},
		{input: "html", want: reporter.FormatHTML},
		{input: "summary", want: reporter.FormatSummary},
		{input: "sarif", wantErr: true},
		{input: "JSON", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormats_AreValid(t *testing.T) {
	t.Parallel()

	for _, format := range reporter.Formats() {
		assert.True(t, format.IsValid(), format.String())
	}
	assert.False(t, reporter.Format("").IsValid())
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range append(reporter.Formats(), "") {
		rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: format})
		require.NoError(t, err, format)
		assert.NotNil(t, rep)
	}

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)

	_, err = reporter.New(reporter.Options{Format: reporter.FormatANSI, Theme: map[string]config.StyleConfig{"bogus": {}}})
	require.Error(t, err)
}

func TestTextReporter_SingleFilePassthrough(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.Options{Format: reporter.FormatText})

	n, err := rep.Report(context.Background(), runner.Collect(outcome("x.go", "go", "package x")))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "package x", out.String())
}

func TestTextReporter_MultipleFilesGetHeaders(t *testing.T) {
	t.Parallel()

	rep, out, errOut := newReporter(t, reporter.Options{
		Format:      reporter.FormatText,
		WorkingDir:  "/work",
		ShowSummary: true,
	})

	n, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, "==> a.go (go) <==\npackage a\n\n==> b.sql (sql) <==\nSELECT 1\n", out.String())
	assert.Contains(t, errOut.String(), "gone.py: error: permission denied\n")
	assert.Contains(t, errOut.String(), "2 files highlighted")
}

func TestTextReporter_NoHeaders(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.Options{Format: reporter.FormatText, NoHeaders: true})

	_, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, "package a\nSELECT 1", out.String())
}

func TestANSIReporter_Colors(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.Options{Format: reporter.FormatANSI, Color: "always"})

	_, err := rep.Report(context.Background(), runner.Collect(outcome("x.go", "go", "package x // hi\n")))
	require.NoError(t, err)

	assert.True(t, ansiRegex.MatchString(out.String()))
	assert.Equal(t, "package x // hi\n", ansiRegex.ReplaceAllString(out.String(), ""))
}

func TestANSIReporter_NeverColor(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.Options{Format: reporter.FormatANSI, Color: "never"})

	_, err := rep.Report(context.Background(), runner.Collect(outcome("x.go", "go", "package x\n")))
	require.NoError(t, err)
	assert.Equal(t, "package x\n", out.String())
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.Options{Format: reporter.FormatJSON, WorkingDir: "/work"})

	n, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &output))

	assert.Equal(t, "1.0.0", output.Version)
	require.Len(t, output.Files, 4)

	assert.Equal(t, "a.go", output.Files[0].Path)
	assert.True(t, output.Files[0].Highlighted)
	assert.Equal(t, token.Keyword, output.Files[0].Tokens[0].Kind)

	assert.True(t, output.Files[1].Skipped)
	assert.NotNil(t, output.Files[1].Tokens)
	assert.Equal(t, "permission denied", output.Files[2].Error)

	assert.Equal(t, []token.Token{
		{Text: "SELECT", Kind: token.Keyword, Start: 0},
		{Text: " ", Kind: token.Normal, Start: 6},
		{Text: "1", Kind: token.Number, Start: 7},
	}, output.Files[3].Tokens)

	assert.Equal(t, 2, output.Stats.FilesProcessed)
	assert.Equal(t, 1, output.Stats.FilesSkipped)
	assert.Equal(t, 1, output.Stats.FilesErrored)
	assert.Equal(t, 2, output.Stats.TokensByKind["keyword"])
	assert.Equal(t, 1, output.Stats.FilesByLanguage["sql"])
	assert.Contains(t, out.String(), `"kind": "keyword"`)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.Options{Format: reporter.FormatJSON, Compact: true})

	_, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("\n")))
	assert.Contains(t, out.String(), `"files":[]`)
}

func TestHTMLReporter(t *testing.T) {
	t.Parallel()

	rep, out, errOut := newReporter(t, reporter.Options{Format: reporter.FormatHTML, WorkingDir: "/work"})

	n, err := rep.Report(context.Background(), runner.Collect(
		outcome("/work/q.sql", "sql", "SELECT '<a>'"),
		runner.FileOutcome{Path: "/work/x", Error: errors.New("boom")},
	))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t,
		`<pre class="gxhighlight" data-language="sql" data-path="q.sql"><code>`+
			`<span class="tok-keyword">SELECT</span> <span class="tok-string">&#39;&lt;a&gt;&#39;</span>`+
			"</code></pre>\n",
		out.String())
	assert.Equal(t, "x: error: boom\n", errOut.String())
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	got := reporter.RenderHTML([]token.Token{
		{Text: "a && b", Kind: token.Normal},
		{Text: "\"q\"", Kind: token.String, Start: 6},
	})
	assert.Equal(t, `a &amp;&amp; b<span class="tok-string">&#34;q&#34;</span>`, got)
	assert.Empty(t, reporter.RenderHTML(nil))
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	rep, out, errOut := newReporter(t, reporter.Options{Format: reporter.FormatSummary, Color: "never"})

	n, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Contains(t, out.String(), "Summary")
	assert.Contains(t, out.String(), "keyword")
	assert.Contains(t, out.String(), "sql")
	assert.Contains(t, errOut.String(), "error: permission denied")
}

func TestReport_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, format := range reporter.Formats() {
		rep, _, _ := newReporter(t, reporter.Options{Format: format})
		_, err := rep.Report(ctx, sampleResult())
		require.ErrorIs(t, err, context.Canceled, format.String())
	}
}

func highlightDocument(t *testing.T, content string) *reporter.Document {
	t.Helper()

	blocks, err := markdown.New(registry.Default()).Highlight(context.Background(), []byte(content))
	require.NoError(t, err)
	return &reporter.Document{Path: "msg.md", Content: []byte(content), Blocks: blocks}
}

func TestReportDocument(t *testing.T) {
	t.Parallel()

	const content = "Try this:\n\n```sql\nSELECT 1\n```\n\nthanks\n"

	t.Run("text keeps the document", func(t *testing.T) {
		t.Parallel()

		rep, out, _ := newReporter(t, reporter.Options{Format: reporter.FormatText})
		require.NoError(t, rep.ReportDocument(context.Background(), highlightDocument(t, content)))
		assert.Equal(t, content, out.String())
	})

	t.Run("ansi styles only the code", func(t *testing.T) {
		t.Parallel()

		rep, out, _ := newReporter(t, reporter.Options{Format: reporter.FormatANSI, Color: "always"})
		require.NoError(t, rep.ReportDocument(context.Background(), highlightDocument(t, content)))

		assert.Equal(t, content, ansiRegex.ReplaceAllString(out.String(), ""))
		assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("Try this:\n\n```sql\n\x1b[")))
	})

	t.Run("json lists blocks", func(t *testing.T) {
		t.Parallel()

		rep, out, _ := newReporter(t, reporter.Options{Format: reporter.FormatJSON})
		require.NoError(t, rep.ReportDocument(context.Background(), highlightDocument(t, content)))

		var doc reporter.JSONDocument
		require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
		assert.Equal(t, "msg.md", doc.Path)
		require.Len(t, doc.Blocks, 1)
		assert.Equal(t, "sql", doc.Blocks[0].Language)
		assert.Equal(t, "SELECT 1\n", doc.Blocks[0].Code)
	})

	t.Run("json with no blocks", func(t *testing.T) {
		t.Parallel()

		rep, out, _ := newReporter(t, reporter.Options{Format: reporter.FormatJSON, Compact: true})
		require.NoError(t, rep.ReportDocument(context.Background(), &reporter.Document{Content: []byte("hi")}))
		assert.JSONEq(t, `{"version":"1.0.0","blocks":[]}`, out.String())
	})

	t.Run("html writes one pre per block", func(t *testing.T) {
		t.Parallel()

		rep, out, _ := newReporter(t, reporter.Options{Format: reporter.FormatHTML})
		require.NoError(t, rep.ReportDocument(context.Background(), highlightDocument(t, content)))
		assert.Equal(t,
			`<pre class="gxhighlight" data-language="sql"><code><span class="tok-keyword">SELECT</span> `+
				`<span class="tok-number">1</span>`+"\n</code></pre>\n",
			out.String())
	})

	t.Run("summary tabulates blocks", func(t *testing.T) {
		t.Parallel()

		rep, out, _ := newReporter(t, reporter.Options{Format: reporter.FormatSummary, Color: "never"})
		require.NoError(t, rep.ReportDocument(context.Background(), highlightDocument(t, content+"\n    plain words\n")))

		assert.Contains(t, out.String(), "fenced")
		assert.Contains(t, out.String(), "indented")
		assert.Contains(t, out.String(), "2 code blocks")
	})

	t.Run("summary without blocks", func(t *testing.T) {
		t.Parallel()

		rep, out, _ := newReporter(t, reporter.Options{Format: reporter.FormatSummary, Color: "never"})
		require.NoError(t, rep.ReportDocument(context.Background(), &reporter.Document{}))
		assert.Equal(t, "No code blocks\n", out.String())
	})
}
