package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gxhighlight/internal/ui/pretty"
)

func TestFormatTable(t *testing.T) {
	t.Parallel()

	out := pretty.NewStyles(false).FormatTable(
		[]string{"ID", "Count", "Name"},
		[][]string{
			{"go", "12", "Go"},
			{"csharp", "3", "C#"},
			{"x"},
		},
		1,
	)

	want := "" +
		"ID      Count  Name\n" +
		"───────────────────\n" +
		"go         12  Go\n" +
		"csharp      3  C#\n" +
		"x\n"
	assert.Equal(t, want, out)
}

func TestFormatTable_WideRunes(t *testing.T) {
	t.Parallel()

	out := pretty.NewStyles(false).FormatTable([]string{"A", "B"}, [][]string{{"日本", "x"}})
	assert.Contains(t, out, "日本  x\n")
}
