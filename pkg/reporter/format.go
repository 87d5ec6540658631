package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatANSI    Format = "ansi"
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatHTML    Format = "html"
	FormatSummary Format = "summary"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatANSI, FormatText, FormatJSON, FormatHTML, FormatSummary}
}

// ParseFormat parses a format string, returning an error for unknown formats.
// The empty string selects ANSI.
func ParseFormat(formatStr string) (Format, error) {
	if formatStr == "" {
		return FormatANSI, nil
	}
	format := Format(formatStr)
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: ansi, text, json, html, summary", formatStr)
	}
	return format, nil
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatANSI, FormatText, FormatJSON, FormatHTML, FormatSummary:
		return true
	default:
		return false
	}
}
