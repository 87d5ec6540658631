package highlight

import (
	"slices"

	"github.com/yaklabco/gxhighlight/pkg/pattern"
	"github.com/yaklabco/gxhighlight/pkg/token"
)

// Scanner classifies a whole text buffer.
//
// Implementations are stateless between calls and safe for concurrent use.
// The returned tokens are ordered by Start and cover the text exactly.
type Scanner interface {
	Scan(text string) []token.Token
}

// ScannerFunc adapts a function to the Scanner interface.
type ScannerFunc func(text string) []token.Token

// Scan calls f(text).
func (f ScannerFunc) Scan(text string) []token.Token {
	return f(text)
}

// PlainScanner returns every text as a single Normal token.
//
//nolint:gochecknoglobals // Stateless scanner value.
var PlainScanner Scanner = ScannerFunc(Plain)

// PatternScanner runs the priority tokenizer over a fixed pattern table.
type PatternScanner struct {
	patterns []pattern.Pattern
}

// NewPatternScanner returns a scanner over a priority-sorted copy of patterns.
func NewPatternScanner(patterns []pattern.Pattern) *PatternScanner {
	sorted := slices.Clone(patterns)
	pattern.SortByPriority(sorted)
	return &PatternScanner{patterns: sorted}
}

// Scan implements Scanner.
func (s *PatternScanner) Scan(text string) []token.Token {
	return Tokenize(s.patterns, text)
}

// Patterns returns the sorted table. Do not mutate the returned slice.
func (s *PatternScanner) Patterns() []pattern.Pattern {
	return s.patterns
}
