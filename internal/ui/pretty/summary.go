package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gxhighlight/pkg/runner"
	"github.com/yaklabco/gxhighlight/pkg/token"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func pluralFiles(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files highlighted, 412 tokens (1 plain, 2 skipped)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesProcessed == 0 && stats.FilesSkipped == 0 && stats.FilesErrored == 0 {
		return s.Dim.Render("No files highlighted") + "\n"
	}

	line := fmt.Sprintf("%d %s highlighted, %d tokens",
		stats.FilesProcessed, pluralFiles(stats.FilesProcessed), stats.TokensTotal)

	var extras []string
	if stats.FilesUnhighlighted > 0 {
		extras = append(extras, fmt.Sprintf("%d plain", stats.FilesUnhighlighted))
	}
	if stats.FilesSkipped > 0 {
		extras = append(extras, fmt.Sprintf("%d skipped", stats.FilesSkipped))
	}
	if stats.FilesErrored > 0 {
		extras = append(extras, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if len(extras) > 0 {
		line += " (" + strings.Join(extras, ", ") + ")"
	}

	if stats.FilesErrored > 0 {
		return line + "\n"
	}
	return s.Success.Render(line) + "\n"
}

// FormatSummary formats run statistics as a summary block with token counts
// per kind and file counts per language.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(s.TableSeparator.Render(strings.Repeat("─", summaryDividerWidth)))
	builder.WriteString("\n")

	writeRow := func(label string, value int) {
		builder.WriteString("  " + padRight(label+":", 20) + s.SummaryValue.Render(strconv.Itoa(value)) + "\n")
	}

	writeRow("Files discovered", stats.FilesDiscovered)
	writeRow("Files highlighted", stats.FilesProcessed)
	if stats.FilesUnhighlighted > 0 {
		writeRow("Plain text", stats.FilesUnhighlighted)
	}
	if stats.FilesSkipped > 0 {
		writeRow("Skipped", stats.FilesSkipped)
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  " + padRight("Failed:", 20) + s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	writeRow("Tokens", stats.TokensTotal)

	if stats.TokensTotal > 0 {
		builder.WriteString("\n")
		rows := make([][]string, 0, len(token.Kinds()))
		for _, kind := range token.Kinds() {
			count := stats.TokensByKind[kind]
			if count == 0 {
				continue
			}
			rows = append(rows, []string{kind.String(), strconv.Itoa(count), percent(count, stats.TokensTotal)})
		}
		builder.WriteString(s.FormatTable([]string{"Kind", "Tokens", "Share"}, rows, 1, 2))
	}

	if len(stats.FilesByLanguage) > 0 {
		builder.WriteString("\n")
		rows := make([][]string, 0, len(stats.FilesByLanguage))
		for _, language := range sortedKeys(stats.FilesByLanguage) {
			rows = append(rows, []string{language, strconv.Itoa(stats.FilesByLanguage[language])})
		}
		builder.WriteString(s.FormatTable([]string{"Language", "Files"}, rows, 1))
	}

	return builder.String()
}

func percent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return strconv.FormatFloat(float64(part)*100/float64(total), 'f', 1, 64) + "%"
}
