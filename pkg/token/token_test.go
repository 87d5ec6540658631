package token_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gxhighlight/pkg/token"
)

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     token.Kind
		expected string
	}{
		{token.Comment, "comment"},
		{token.String, "string"},
		{token.Number, "number"},
		{token.Keyword, "keyword"},
		{token.Type, "type"},
		{token.Method, "method"},
		{token.Operator, "operator"},
		{token.Punctuation, "punctuation"},
		{token.Normal, "normal"},
		{token.Kind(42), "Kind(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, kind := range token.Kinds() {
		got, err := token.ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}

	got, err := token.ParseKind("  KeyWord ")
	require.NoError(t, err)
	assert.Equal(t, token.Keyword, got)

	_, err = token.ParseKind("identifier")
	assert.Error(t, err)
}

func TestKind_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(token.Token{Text: "if", Kind: token.Keyword, Start: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"if","kind":"keyword","start":3}`, string(data))

	var tok token.Token
	require.NoError(t, json.Unmarshal(data, &tok))
	assert.Equal(t, token.Keyword, tok.Kind)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"bogus"}`), &tok))
}

func TestToken_LenCountsRunes(t *testing.T) {
	t.Parallel()

	tok := token.Token{Text: "héllo", Start: 2}
	assert.Equal(t, 5, tok.Len())
	assert.Equal(t, 7, tok.End())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	text := "ab cd"
	tests := []struct {
		name    string
		tokens  []token.Token
		wantErr error
	}{
		{
			name: "valid",
			tokens: []token.Token{
				{Text: "ab", Start: 0},
				{Text: " ", Start: 2},
				{Text: "cd", Start: 3},
			},
		},
		{
			name:    "gap",
			tokens:  []token.Token{{Text: "ab", Start: 0}, {Text: "cd", Start: 3}},
			wantErr: token.ErrGap,
		},
		{
			name:    "overlap",
			tokens:  []token.Token{{Text: "ab", Start: 0}, {Text: "b cd", Start: 1}},
			wantErr: token.ErrOverlap,
		},
		{
			name:    "empty token",
			tokens:  []token.Token{{Text: "", Start: 0}},
			wantErr: token.ErrEmpty,
		},
		{
			name:    "text mismatch",
			tokens:  []token.Token{{Text: "xx", Start: 0}},
			wantErr: token.ErrMismatch,
		},
		{
			name:    "short coverage",
			tokens:  []token.Token{{Text: "ab", Start: 0}},
			wantErr: token.ErrCoverage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := token.Validate(tt.tokens, text)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_InvalidUTF8(t *testing.T) {
	t.Parallel()

	text := "caf\xe9 ok"

	tests := []struct {
		name    string
		tokens  []token.Token
		wantErr error
	}{
		{
			name:   "source bytes",
			tokens: []token.Token{{Text: "caf\xe9", Start: 0}, {Text: " ok", Start: 4}},
		},
		{
			name:   "single token",
			tokens: []token.Token{{Text: text, Start: 0}},
		},
		{
			name:    "replacement character",
			tokens:  []token.Token{{Text: "caf\uFFFD", Start: 0}, {Text: " ok", Start: 4}},
			wantErr: token.ErrMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := token.Validate(tt.tokens, text)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRuneOffsets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want []int
	}{
		{"", []int{0}},
		{"ab", []int{0, 1, 2}},
		{"é✓", []int{0, 2, 5}},
		{"a\xe9b", []int{0, 1, 2, 3}},
		{"\xe2\x82x", []int{0, 1, 2, 3}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, token.RuneOffsets(tt.text), "%q", tt.text)
		assert.Len(t, token.RuneOffsets(tt.text), token.Token{Text: tt.text}.Len()+1, "%q", tt.text)
	}
}

func TestValidate_EmptyText(t *testing.T) {
	t.Parallel()

	require.NoError(t, token.Validate(nil, ""))
	require.ErrorIs(t, token.Validate(nil, "x"), token.ErrCoverage)
}

func TestJoin(t *testing.T) {
	t.Parallel()

	tokens := []token.Token{{Text: "fmt"}, {Text: "."}, {Text: "Println"}}
	assert.Equal(t, "fmt.Println", token.Join(tokens))
	assert.Empty(t, token.Join(nil))
}
