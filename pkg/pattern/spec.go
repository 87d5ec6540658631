package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/yaklabco/gxhighlight/pkg/token"
)

// ErrInvalidSpec is returned when a Spec is structurally malformed.
var ErrInvalidSpec = errors.New("invalid pattern spec")

// Spec is the data form of a Pattern, as written in a language table.
// Exactly one of Regex or Words must be set.
type Spec struct {
	// Regex is a regular expression source.
	Regex string `yaml:"regex,omitempty" json:"regex,omitempty"`

	// Words is a word list, matched as \b(?:w1|w2|...)\b.
	Words []string `yaml:"words,omitempty" json:"words,omitempty"`

	// Kind is the token kind name, e.g. "keyword".
	Kind string `yaml:"kind" json:"kind"`

	// Priority orders patterns; lower values are applied first.
	Priority int `yaml:"priority" json:"priority"`

	IgnoreCase bool `yaml:"ignore_case,omitempty" json:"ignore_case,omitempty"`
	Multiline  bool `yaml:"multiline,omitempty" json:"multiline,omitempty"`
	Singleline bool `yaml:"singleline,omitempty" json:"singleline,omitempty"`
}

// Source returns the regular expression source for the spec.
func (s Spec) Source() string {
	if len(s.Words) == 0 {
		return s.Regex
	}
	quoted := make([]string, len(s.Words))
	for i, word := range s.Words {
		quoted[i] = regexp2.Escape(word)
	}
	return `\b(?:` + strings.Join(quoted, "|") + `)\b`
}

// Options returns the compile options for the spec.
func (s Spec) Options() Options {
	var opts Options
	if s.IgnoreCase {
		opts |= IgnoreCase
	}
	if s.Multiline {
		opts |= Multiline
	}
	if s.Singleline {
		opts |= Singleline
	}
	return opts
}

// TokenKind parses Kind. Normal is reserved for unclaimed text and rejected.
func (s Spec) TokenKind() (token.Kind, error) {
	kind, err := token.ParseKind(s.Kind)
	if err != nil {
		return token.Normal, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	if kind == token.Normal {
		return token.Normal, fmt.Errorf("%w: kind %q is reserved", ErrInvalidSpec, s.Kind)
	}
	return kind, nil
}

// Validate checks the spec's structure without compiling it.
func (s Spec) Validate() error {
	hasRegex := s.Regex != ""
	hasWords := len(s.Words) > 0
	switch {
	case hasRegex && hasWords:
		return fmt.Errorf("%w: regex and words are mutually exclusive", ErrInvalidSpec)
	case !hasRegex && !hasWords:
		return fmt.Errorf("%w: one of regex or words is required", ErrInvalidSpec)
	}
	for _, word := range s.Words {
		if word == "" {
			return fmt.Errorf("%w: empty word", ErrInvalidSpec)
		}
	}
	if s.Priority < 0 {
		return fmt.Errorf("%w: negative priority %d", ErrInvalidSpec, s.Priority)
	}
	_, err := s.TokenKind()
	return err
}

// Build compiles specs through cache and returns the priority-sorted table.
// Specs with equal priority keep their order.
func Build(cache *Cache, specs []Spec) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(specs))
	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		kind, err := spec.TokenKind()
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		matcher, err := cache.GetOrCompile(spec.Source(), spec.Options())
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		patterns = append(patterns, Pattern{Matcher: matcher, Kind: kind, Priority: spec.Priority})
	}

	SortByPriority(patterns)
	return patterns, nil
}
