package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// ErrInvalidPattern is returned when a pattern source fails to compile.
var ErrInvalidPattern = errors.New("invalid pattern")

// Options are compile flags for a pattern source.
type Options uint8

const (
	// IgnoreCase makes matching case-insensitive.
	IgnoreCase Options = 1 << iota
	// Multiline makes ^ and $ match at line boundaries.
	Multiline
	// Singleline makes . match newlines.
	Singleline
)

// String renders the set flags, e.g. "i|m".
func (o Options) String() string {
	var flags []string
	if o&IgnoreCase != 0 {
		flags = append(flags, "i")
	}
	if o&Multiline != 0 {
		flags = append(flags, "m")
	}
	if o&Singleline != 0 {
		flags = append(flags, "s")
	}
	return strings.Join(flags, "|")
}

func (o Options) regexpOptions() regexp2.RegexOptions {
	opts := regexp2.None
	if o&IgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}
	if o&Multiline != 0 {
		opts |= regexp2.Multiline
	}
	if o&Singleline != 0 {
		opts |= regexp2.Singleline
	}
	return opts
}

// Regex is a compiled regular expression Matcher.
// The syntax is .NET compatible, including lookahead and lookbehind.
type Regex struct {
	source  string
	options Options
	re      *regexp2.Regexp
}

// Compile compiles source with the given options without caching.
// Most callers should go through a Cache instead.
func Compile(source string, opts Options) (*Regex, error) {
	re, err := regexp2.Compile(source, opts.regexpOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, source, err)
	}
	return &Regex{source: source, options: opts, re: re}, nil
}

// Source returns the pattern source text.
func (r *Regex) Source() string {
	return r.source
}

// Options returns the compile options.
func (r *Regex) Options() Options {
	return r.options
}

// FindAll returns every non-overlapping, non-empty match in text.
// A match error (only possible with a match timeout) ends the search early.
func (r *Regex) FindAll(text []rune) []Match {
	var matches []Match

	m, err := r.re.FindRunesMatch(text)
	for err == nil && m != nil {
		if m.Length > 0 {
			matches = append(matches, Match{Start: m.Index, Length: m.Length})
		}
		m, err = r.re.FindNextMatch(m)
	}

	return matches
}
