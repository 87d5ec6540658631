// Package highlight implements the priority tokenizer and the Scanner
// contract shared by every language scanner.
package highlight

import (
	"cmp"
	"slices"

	"github.com/yaklabco/gxhighlight/pkg/pattern"
	"github.com/yaklabco/gxhighlight/pkg/token"
)

// Tokenize classifies text with patterns, which must already be sorted by
// priority (see pattern.SortByPriority).
//
// Each pattern sees the whole original text. A match is accepted only if none
// of its runes were claimed by an earlier match; otherwise it is dropped whole,
// never trimmed. Runs of unclaimed runes become Normal tokens. The result is
// ordered by Start and covers the text exactly.
func Tokenize(patterns []pattern.Pattern, text string) []token.Token {
	if text == "" {
		return nil
	}

	// Matching runs on runes; token text is sliced from the original bytes so
	// invalid UTF-8 survives unchanged.
	runes := []rune(text)
	offsets := token.RuneOffsets(text)
	claimed := make([]bool, len(runes))

	var tokens []token.Token
	for _, p := range patterns {
		for _, m := range p.Matcher.FindAll(runes) {
			end := m.Start + m.Length
			if m.Length <= 0 || m.Start < 0 || end > len(runes) {
				continue
			}
			if anyClaimed(claimed[m.Start:end]) {
				continue
			}
			for i := m.Start; i < end; i++ {
				claimed[i] = true
			}
			tokens = append(tokens, token.Token{
				Text:  text[offsets[m.Start]:offsets[end]],
				Kind:  p.Kind,
				Start: m.Start,
			})
		}
	}

	tokens = appendUnclaimed(tokens, text, offsets, claimed)

	slices.SortStableFunc(tokens, func(a, b token.Token) int {
		return cmp.Compare(a.Start, b.Start)
	})

	return tokens
}

// Plain returns text as a single Normal token, or nil for empty text.
func Plain(text string) []token.Token {
	if text == "" {
		return nil
	}
	return []token.Token{{Text: text, Kind: token.Normal, Start: 0}}
}

func anyClaimed(span []bool) bool {
	for _, c := range span {
		if c {
			return true
		}
	}
	return false
}

// appendUnclaimed emits one Normal token per maximal unclaimed run.
func appendUnclaimed(tokens []token.Token, text string, offsets []int, claimed []bool) []token.Token {
	start := -1
	for i, c := range claimed {
		switch {
		case !c && start < 0:
			start = i
		case c && start >= 0:
			tokens = append(tokens, token.Token{Text: text[offsets[start]:offsets[i]], Kind: token.Normal, Start: start})
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, token.Token{Text: text[offsets[start]:], Kind: token.Normal, Start: start})
	}
	return tokens
}
