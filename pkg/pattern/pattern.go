// Package pattern provides the matchers, compiled-pattern cache and
// per-language pattern specs used by the priority tokenizer.
package pattern

import (
	"cmp"
	"slices"

	"github.com/yaklabco/gxhighlight/pkg/token"
)

// Match is a single match reported by a Matcher, in rune offsets.
type Match struct {
	Start  int
	Length int
}

// Matcher reports all non-overlapping matches of a pattern, left to right.
// Implementations must be safe for concurrent use.
type Matcher interface {
	FindAll(text []rune) []Match
}

// Pattern is one entry of a language table.
// Lower Priority values are applied first and win contested text.
type Pattern struct {
	Matcher  Matcher
	Kind     token.Kind
	Priority int
}

// SortByPriority sorts patterns by ascending priority in place.
// Patterns with equal priority keep their table order.
func SortByPriority(patterns []Pattern) {
	slices.SortStableFunc(patterns, func(a, b Pattern) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
}
