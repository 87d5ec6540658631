package runner

import "github.com/yaklabco/gxhighlight/pkg/token"

// FileOutcome is the result of highlighting one file.
type FileOutcome struct {
	// Path is the absolute file path.
	Path string

	// Language is the resolved language ID, or "" if none was found.
	Language string

	// Tokens cover the file content. A file without a language is one
	// Normal token.
	Tokens []token.Token

	// Skipped is set for binary or oversized files, which are not scanned.
	Skipped bool

	// Error is set if the file could not be read.
	Error error
}

// Highlighted reports whether a language scanner produced the tokens.
func (o FileOutcome) Highlighted() bool {
	return o.Language != "" && o.Error == nil && !o.Skipped
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files scanned.
	FilesProcessed int

	// FilesSkipped is the number of binary or oversized files.
	FilesSkipped int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// FilesUnhighlighted is the number of scanned files with no language.
	FilesUnhighlighted int

	// TokensTotal is the number of tokens across all files.
	TokensTotal int

	// TokensByKind counts tokens per kind.
	TokensByKind map[token.Kind]int

	// FilesByLanguage counts scanned files per language ID.
	FilesByLanguage map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file could not be read.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{
		TokensByKind:    make(map[token.Kind]int),
		FilesByLanguage: make(map[string]int),
	}
}

// accumulate records one outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Skipped:
		r.Stats.FilesSkipped++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Language == "" {
		r.Stats.FilesUnhighlighted++
	} else {
		r.Stats.FilesByLanguage[outcome.Language]++
	}

	r.Stats.TokensTotal += len(outcome.Tokens)
	for _, tok := range outcome.Tokens {
		r.Stats.TokensByKind[tok.Kind]++
	}
}

// Collect builds a Result from outcomes produced outside Run, such as text
// read from stdin. Outcomes keep the given order.
func Collect(outcomes ...FileOutcome) *Result {
	result := &Result{
		Files: make([]FileOutcome, 0, len(outcomes)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}
