// Package lang holds language definitions: plain data records naming a
// language, its aliases and its pattern table. Built-in definitions are
// embedded YAML files; users can add their own from a directory.
package lang

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gxhighlight/pkg/pattern"
)

// ErrInvalidDefinition is returned for structurally malformed definitions.
var ErrInvalidDefinition = errors.New("invalid language definition")

// Strategy selects the scanning algorithm for a language.
type Strategy string

const (
	// StrategyPatterns uses the priority tokenizer over Patterns.
	StrategyPatterns Strategy = "patterns"
	// StrategyCSV uses the stateful delimited-text scanner.
	StrategyCSV Strategy = "csv"
)

// Definition describes one language.
type Definition struct {
	// ID is the canonical, lower-case identifier, e.g. "csharp".
	ID string `yaml:"id" json:"id"`

	// Name is the display name, e.g. "C#".
	Name string `yaml:"name" json:"name"`

	// Aliases are alternate names, matched case-insensitively.
	Aliases []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`

	// Extensions are file extensions including the dot, e.g. ".cs".
	Extensions []string `yaml:"extensions,omitempty" json:"extensions,omitempty"`

	// Strategy defaults to StrategyPatterns when empty.
	Strategy Strategy `yaml:"strategy,omitempty" json:"strategy,omitempty"`

	// Delimiter is the field delimiter for StrategyCSV; defaults to ",".
	Delimiter string `yaml:"delimiter,omitempty" json:"delimiter,omitempty"`

	// Patterns is the pattern table for StrategyPatterns.
	Patterns []pattern.Spec `yaml:"patterns,omitempty" json:"patterns,omitempty"`
}

// EffectiveStrategy returns Strategy, defaulting to StrategyPatterns.
func (d Definition) EffectiveStrategy() Strategy {
	if d.Strategy == "" {
		return StrategyPatterns
	}
	return d.Strategy
}

// DelimiterRune returns the CSV delimiter, defaulting to ','.
func (d Definition) DelimiterRune() rune {
	if d.Delimiter == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(d.Delimiter)
	return r
}

// Names returns the lower-cased ID followed by the lower-cased aliases.
func (d Definition) Names() []string {
	names := make([]string, 0, 1+len(d.Aliases))
	names = append(names, strings.ToLower(d.ID))
	for _, alias := range d.Aliases {
		names = append(names, strings.ToLower(alias))
	}
	return names
}

// DisplayName returns Name, or ID when Name is empty.
func (d Definition) DisplayName() string {
	if d.Name == "" {
		return d.ID
	}
	return d.Name
}

// Validate checks the definition without compiling its patterns.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidDefinition)
	}
	for _, alias := range d.Aliases {
		if strings.TrimSpace(alias) == "" {
			return fmt.Errorf("%w: %s: empty alias", ErrInvalidDefinition, d.ID)
		}
	}
	for _, ext := range d.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: %s: extension %q must start with a dot", ErrInvalidDefinition, d.ID, ext)
		}
	}

	switch d.EffectiveStrategy() {
	case StrategyPatterns:
		if d.Delimiter != "" {
			return fmt.Errorf("%w: %s: delimiter requires strategy csv", ErrInvalidDefinition, d.ID)
		}
		for i, spec := range d.Patterns {
			if err := spec.Validate(); err != nil {
				return fmt.Errorf("%w: %s: pattern %d: %w", ErrInvalidDefinition, d.ID, i, err)
			}
		}
	case StrategyCSV:
		if len(d.Patterns) > 0 {
			return fmt.Errorf("%w: %s: strategy csv takes no patterns", ErrInvalidDefinition, d.ID)
		}
		if utf8.RuneCountInString(d.Delimiter) > 1 {
			return fmt.Errorf("%w: %s: delimiter %q must be a single character", ErrInvalidDefinition, d.ID, d.Delimiter)
		}
		switch d.DelimiterRune() {
		case '"', '\r', '\n':
			return fmt.Errorf("%w: %s: delimiter %q is reserved", ErrInvalidDefinition, d.ID, d.Delimiter)
		}
	default:
		return fmt.Errorf("%w: %s: unknown strategy %q", ErrInvalidDefinition, d.ID, d.Strategy)
	}

	return nil
}

// Info is the summary of a definition listed to users.
type Info struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Aliases    []string `json:"aliases,omitempty"`
	Extensions []string `json:"extensions,omitempty"`
	Strategy   Strategy `json:"strategy"`
}

// Info returns the listing summary of d.
func (d Definition) Info() Info {
	return Info{
		ID:         d.ID,
		Name:       d.DisplayName(),
		Aliases:    d.Aliases,
		Extensions: d.Extensions,
		Strategy:   d.EffectiveStrategy(),
	}
}
