// Package token defines the classified spans produced by every scanner.
package token

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

//go:generate stringer -type=Kind -linecomment

// Kind classifies a span of source text.
type Kind uint8

// The set of kinds is closed. Normal is reserved for text no pattern claimed.
const (
	Comment     Kind = iota // comment
	String                  // string
	Number                  // number
	Keyword                 // keyword
	Type                    // type
	Method                  // method
	Operator                // operator
	Punctuation             // punctuation
	Normal                  // normal
)

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{Comment, String, Number, Keyword, Type, Method, Operator, Punctuation, Normal}
}

// ParseKind returns the kind with the given name. Matching is case-insensitive.
func ParseKind(name string) (Kind, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, kind := range Kinds() {
		if kind.String() == needle {
			return kind, nil
		}
	}
	return Normal, fmt.Errorf("unknown token kind %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Token is a classified span of the scanned text.
// Start is an offset in runes (Unicode scalar values) into the original text.
type Token struct {
	Text  string `json:"text"`
	Kind  Kind   `json:"kind"`
	Start int    `json:"start"`
}

// Len returns the length of the token in runes.
func (t Token) Len() int {
	return utf8.RuneCountInString(t.Text)
}

// End returns the rune offset just past the token.
func (t Token) End() int {
	return t.Start + t.Len()
}

// Join concatenates token texts in slice order.
func Join(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// Validation errors returned by Validate.
var (
	ErrGap      = errors.New("tokens leave a gap")
	ErrOverlap  = errors.New("tokens overlap")
	ErrEmpty    = errors.New("empty token")
	ErrMismatch = errors.New("token text does not match source")
	ErrCoverage = errors.New("tokens do not cover source")
)

// RuneOffsets returns the byte offset of every rune in text, followed by
// len(text). Runes are decoded as utf8.DecodeRuneInString does, so each
// invalid byte counts as one rune, the same way Len counts them.
// text[offsets[i]:offsets[j]] is the source of runes [i, j).
func RuneOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for pos := 0; pos < len(text); {
		offsets = append(offsets, pos)
		_, size := utf8.DecodeRuneInString(text[pos:])
		pos += size
	}
	return append(offsets, len(text))
}

// Validate checks that tokens are ordered, contiguous, non-empty and that
// together they reproduce the bytes of text exactly.
func Validate(tokens []Token, text string) error {
	offsets := RuneOffsets(text)
	runeCount := len(offsets) - 1
	pos := 0
	for i, tok := range tokens {
		length := tok.Len()
		if length == 0 {
			return fmt.Errorf("token %d at %d: %w", i, tok.Start, ErrEmpty)
		}
		switch {
		case tok.Start > pos:
			return fmt.Errorf("token %d: [%d,%d): %w", i, pos, tok.Start, ErrGap)
		case tok.Start < pos:
			return fmt.Errorf("token %d at %d: %w", i, tok.Start, ErrOverlap)
		}
		end := pos + length
		if end > runeCount || text[offsets[pos]:offsets[end]] != tok.Text {
			return fmt.Errorf("token %d at %d: %w", i, tok.Start, ErrMismatch)
		}
		pos = end
	}
	if pos != runeCount {
		return fmt.Errorf("covered %d of %d runes: %w", pos, runeCount, ErrCoverage)
	}
	if Join(tokens) != text {
		return fmt.Errorf("joined tokens differ from source bytes: %w", ErrMismatch)
	}
	return nil
}
