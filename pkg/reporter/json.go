package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gxhighlight/pkg/markdown"
	"github.com/yaklabco/gxhighlight/pkg/runner"
	"github.com/yaklabco/gxhighlight/pkg/token"
)

// jsonVersion is the schema version of the JSON output.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure for files.
type JSONOutput struct {
	Version string     `json:"version"`
	Files   []JSONFile `json:"files"`
	Stats   JSONStats  `json:"stats"`
}

// JSONFile represents a single file's tokens.
type JSONFile struct {
	Path        string        `json:"path"`
	Language    string        `json:"language,omitempty"`
	Highlighted bool          `json:"highlighted"`
	Skipped     bool          `json:"skipped,omitempty"`
	Error       string        `json:"error,omitempty"`
	Tokens      []token.Token `json:"tokens"`
}

// JSONStats contains aggregate statistics.
type JSONStats struct {
	FilesDiscovered    int            `json:"filesDiscovered"`
	FilesProcessed     int            `json:"filesProcessed"`
	FilesSkipped       int            `json:"filesSkipped"`
	FilesErrored       int            `json:"filesErrored"`
	FilesUnhighlighted int            `json:"filesUnhighlighted"`
	TokensTotal        int            `json:"tokensTotal"`
	TokensByKind       map[string]int `json:"tokensByKind"`
	FilesByLanguage    map[string]int `json:"filesByLanguage"`
}

// JSONDocument is the JSON structure for a Markdown document.
type JSONDocument struct {
	Version string           `json:"version"`
	Path    string           `json:"path,omitempty"`
	Blocks  []markdown.Block `json:"blocks"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if err := cancelled(ctx); err != nil {
		return 0, err
	}

	output := r.buildOutput(result)
	if err := r.encode(output); err != nil {
		return 0, err
	}

	return len(reportable(result)), nil
}

// ReportDocument implements Reporter.
func (r *JSONReporter) ReportDocument(ctx context.Context, doc *Document) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if err := cancelled(ctx); err != nil {
		return err
	}

	blocks := make([]markdown.Block, len(doc.Blocks))
	copy(blocks, doc.Blocks)
	for i := range blocks {
		if blocks[i].Tokens == nil {
			blocks[i].Tokens = []token.Token{}
		}
	}

	return r.encode(JSONDocument{
		Version: jsonVersion,
		Path:    r.opts.displayPath(doc.Path),
		Blocks:  blocks,
	})
}

func (r *JSONReporter) encode(value any) error {
	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFile, 0),
		Stats: JSONStats{
			TokensByKind:    make(map[string]int),
			FilesByLanguage: make(map[string]int),
		},
	}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		jsonFile := JSONFile{
			Path:        r.opts.displayPath(file.Path),
			Language:    file.Language,
			Highlighted: file.Highlighted(),
			Skipped:     file.Skipped,
			Tokens:      file.Tokens,
		}
		if file.Error != nil {
			jsonFile.Error = file.Error.Error()
		}
		if jsonFile.Tokens == nil {
			jsonFile.Tokens = []token.Token{}
		}
		output.Files = append(output.Files, jsonFile)
	}

	stats := result.Stats
	output.Stats.FilesDiscovered = stats.FilesDiscovered
	output.Stats.FilesProcessed = stats.FilesProcessed
	output.Stats.FilesSkipped = stats.FilesSkipped
	output.Stats.FilesErrored = stats.FilesErrored
	output.Stats.FilesUnhighlighted = stats.FilesUnhighlighted
	output.Stats.TokensTotal = stats.TokensTotal
	for kind, count := range stats.TokensByKind {
		output.Stats.TokensByKind[kind.String()] = count
	}
	for language, count := range stats.FilesByLanguage {
		output.Stats.FilesByLanguage[language] = count
	}

	return output
}
