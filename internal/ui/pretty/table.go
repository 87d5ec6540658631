package pretty

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// tablePadding is the gap between columns.
const tablePadding = 2

// FormatTable renders rows under headers as aligned columns with a rule
// below the header. Columns listed in rightAligned are padded on the left.
// Widths are measured before styling so ANSI codes never skew alignment.
func (s *Styles) FormatTable(headers []string, rows [][]string, rightAligned ...int) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = lipgloss.Width(header)
	}
	for _, row := range rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	pad := func(col int, text string) string {
		if slices.Contains(rightAligned, col) {
			return padLeft(text, widths[col])
		}
		return padRight(text, widths[col])
	}

	gap := strings.Repeat(" ", tablePadding)
	var builder strings.Builder

	cells := make([]string, len(headers))
	for i, header := range headers {
		cells[i] = s.TableHeader.Render(pad(i, header))
	}
	builder.WriteString(strings.TrimRight(strings.Join(cells, gap), " "))
	builder.WriteString("\n")

	total := (len(widths) - 1) * tablePadding
	for _, w := range widths {
		total += w
	}
	builder.WriteString(s.TableSeparator.Render(strings.Repeat("─", total)))
	builder.WriteString("\n")

	for _, row := range rows {
		cells = cells[:0]
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells = append(cells, pad(i, cell))
		}
		builder.WriteString(strings.TrimRight(strings.Join(cells, gap), " "))
		builder.WriteString("\n")
	}

	return builder.String()
}

// padRight pads a string to the given display width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// padLeft pads a string to the given display width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
