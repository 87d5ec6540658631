package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gxhighlight/internal/ui/pretty"
	"github.com/yaklabco/gxhighlight/pkg/runner"
	"github.com/yaklabco/gxhighlight/pkg/token"
)

func sampleStats() runner.Stats {
	return runner.Stats{
		FilesDiscovered:    4,
		FilesProcessed:     3,
		FilesSkipped:       1,
		FilesUnhighlighted: 1,
		TokensTotal:        8,
		TokensByKind:       map[token.Kind]int{token.Keyword: 2, token.Normal: 6},
		FilesByLanguage:    map[string]int{"go": 1, "python": 1},
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{"nothing", runner.Stats{}, "No files highlighted\n"},
		{"single file", runner.Stats{FilesProcessed: 1, TokensTotal: 3}, "1 file highlighted, 3 tokens\n"},
		{"with extras", sampleStats(), "3 files highlighted, 8 tokens (1 plain, 1 skipped)\n"},
		{
			"with failures",
			runner.Stats{FilesProcessed: 2, FilesErrored: 1},
			"2 files highlighted, 0 tokens (1 failed)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	out := pretty.NewStyles(false).FormatSummary(sampleStats())

	assert.Contains(t, out, "Summary\n")
	assert.Contains(t, out, "  Files discovered:   4\n")
	assert.Contains(t, out, "  Files highlighted:  3\n")
	assert.Contains(t, out, "  Skipped:            1\n")
	assert.Contains(t, out, "  Tokens:             8\n")
	assert.NotContains(t, out, "Failed")

	assert.Contains(t, out, "keyword       2  25.0%\n")
	assert.Contains(t, out, "normal        6  75.0%\n")
	assert.NotContains(t, out, "comment")

	assert.Contains(t, out, "go            1\n")
	assert.Contains(t, out, "python        1\n")
	assert.Less(t, indexOf(out, "go "), indexOf(out, "python"))
}

func TestFormatSummary_Empty(t *testing.T) {
	t.Parallel()

	out := pretty.NewStyles(false).FormatSummary(runner.Stats{})
	assert.Contains(t, out, "Tokens:")
	assert.NotContains(t, out, "Kind")
	assert.NotContains(t, out, "Language")
}

func indexOf(s, sub string) int {
	for i := range len(s) - len(sub) + 1 {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
