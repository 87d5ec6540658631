package csvscan_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/yaklabco/gxhighlight/pkg/csvscan"
	"github.com/yaklabco/gxhighlight/pkg/highlight"
	"github.com/yaklabco/gxhighlight/pkg/token"
)

// Compile-time check that Scanner satisfies the shared contract.
var _ highlight.Scanner = (*csvscan.Scanner)(nil)

func tok(text string, kind token.Kind, start int) token.Token {
	return token.Token{Text: text, Kind: kind, Start: start}
}

func TestScan_QuotedFieldWithComma(t *testing.T) {
	t.Parallel()

	tokens := csvscan.New().Scan("a,\"b,c\",d\n1,2,3")

	assert.Equal(t, []token.Token{
		tok("a", token.Type, 0),
		tok(",", token.Punctuation, 1),
		tok(`"b,c"`, token.String, 2),
		tok(",", token.Punctuation, 7),
		tok("d", token.Keyword, 8),
		tok("\n", token.Punctuation, 9),
		tok("1", token.Type, 10),
		tok(",", token.Punctuation, 11),
		tok("2", token.String, 12),
		tok(",", token.Punctuation, 13),
		tok("3", token.Keyword, 14),
	}, tokens)
}

func TestScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []token.Token
	}{
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "single field",
			input:    "abc",
			expected: []token.Token{tok("abc", token.Type, 0)},
		},
		{
			name:  "crlf is one token",
			input: "a\r\nb",
			expected: []token.Token{
				tok("a", token.Type, 0),
				tok("\r\n", token.Punctuation, 1),
				tok("b", token.Type, 3),
			},
		},
		{
			name:  "lone carriage return ends record",
			input: "a,b\rc",
			expected: []token.Token{
				tok("a", token.Type, 0),
				tok(",", token.Punctuation, 1),
				tok("b", token.String, 2),
				tok("\r", token.Punctuation, 3),
				tok("c", token.Type, 4),
			},
		},
		{
			name:  "lf then cr are two terminators",
			input: "a\n\rb",
			expected: []token.Token{
				tok("a", token.Type, 0),
				tok("\n", token.Punctuation, 1),
				tok("\r", token.Punctuation, 2),
				tok("b", token.Type, 3),
			},
		},
		{
			name:  "empty fields emit nothing",
			input: ",,x",
			expected: []token.Token{
				tok(",", token.Punctuation, 0),
				tok(",", token.Punctuation, 1),
				tok("x", token.Keyword, 2),
			},
		},
		{
			name:  "escaped quotes stay inside field",
			input: `"say ""hi""",z`,
			expected: []token.Token{
				tok(`"say ""hi"""`, token.Type, 0),
				tok(",", token.Punctuation, 12),
				tok("z", token.String, 13),
			},
		},
		{
			name:  "quoted field spans lines",
			input: "\"line1\nline2\",x\ny",
			expected: []token.Token{
				tok("\"line1\nline2\"", token.Type, 0),
				tok(",", token.Punctuation, 13),
				tok("x", token.String, 14),
				tok("\n", token.Punctuation, 15),
				tok("y", token.Type, 16),
			},
		},
		{
			name:     "unterminated quote runs to end",
			input:    "\"open,\nstill",
			expected: []token.Token{tok("\"open,\nstill", token.Type, 0)},
		},
		{
			name:  "column kinds cycle every three columns",
			input: "a,b,c,d,e",
			expected: []token.Token{
				tok("a", token.Type, 0),
				tok(",", token.Punctuation, 1),
				tok("b", token.String, 2),
				tok(",", token.Punctuation, 3),
				tok("c", token.Keyword, 4),
				tok(",", token.Punctuation, 5),
				tok("d", token.Type, 6),
				tok(",", token.Punctuation, 7),
				tok("e", token.String, 8),
			},
		},
		{
			name:  "trailing newline",
			input: "a\n",
			expected: []token.Token{
				tok("a", token.Type, 0),
				tok("\n", token.Punctuation, 1),
			},
		},
		{
			name:  "offsets are runes",
			input: "ä,ö",
			expected: []token.Token{
				tok("ä", token.Type, 0),
				tok(",", token.Punctuation, 1),
				tok("ö", token.String, 2),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := csvscan.New().Scan(tt.input)
			assert.Equal(t, tt.expected, tokens)
			require.NoError(t, token.Validate(tokens, tt.input))
		})
	}
}

func TestScan_InvalidUTF8KeepsSourceBytes(t *testing.T) {
	t.Parallel()

	input := "caf\xe9,\"\xff\"\n1"
	tokens := csvscan.New().Scan(input)

	assert.Equal(t, []token.Token{
		tok("caf\xe9", token.Type, 0),
		tok(",", token.Punctuation, 4),
		tok("\"\xff\"", token.String, 5),
		tok("\n", token.Punctuation, 8),
		tok("1", token.Type, 9),
	}, tokens)
	assert.Equal(t, input, token.Join(tokens))
	require.NoError(t, token.Validate(tokens, input))
}

func TestScan_TabDelimiter(t *testing.T) {
	t.Parallel()

	scanner := csvscan.New(csvscan.WithDelimiter('\t'))
	assert.Equal(t, '\t', scanner.Delimiter())

	tokens := scanner.Scan("a,b\tc")
	assert.Equal(t, []token.Token{
		tok("a,b", token.Type, 0),
		tok("\t", token.Punctuation, 3),
		tok("c", token.String, 4),
	}, tokens)
}

func TestWithDelimiter_IgnoresReservedRunes(t *testing.T) {
	t.Parallel()

	for _, r := range []rune{'"', '\r', '\n', 0} {
		assert.Equal(t, csvscan.DefaultDelimiter, csvscan.New(csvscan.WithDelimiter(r)).Delimiter())
	}
}

func TestScan_Properties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		pieces := rapid.SliceOfN(rapid.SampledFrom([]string{
			"a", "b", "1", ",", `"`, "\r", "\n", " ", ";", "é", "\xe9", "\xff", "\xc3",
		}), 0, 64).Draw(t, "input")
		input := strings.Join(pieces, "")

		tokens := csvscan.New().Scan(input)
		if err := token.Validate(tokens, input); err != nil {
			t.Fatalf("invalid token stream for %q: %v", input, err)
		}
		for _, tk := range tokens {
			if tk.Kind == token.Normal {
				t.Fatalf("csv scanner emitted a normal token at %d", tk.Start)
			}
		}
	})
}
