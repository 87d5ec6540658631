// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles contains the styled renderers for CLI chrome (headers, tables,
// status lines). Token colors live in Theme.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// File headers
	FilePath lipgloss.Style
	Language lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode using the
// default lipgloss renderer.
func NewStyles(colorEnabled bool) *Styles {
	return NewStylesFor(lipgloss.DefaultRenderer(), colorEnabled)
}

// NewStylesFor creates Styles bound to renderer.
func NewStylesFor(renderer *lipgloss.Renderer, colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles(renderer)
	}
	return newColorStyles(renderer)
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Info:    r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),

		FilePath: r.NewStyle().Bold(true),
		Language: r.NewStyle().Foreground(lipgloss.Color("14")),

		SummaryTitle: r.NewStyle().Bold(true),
		SummaryValue: r.NewStyle(),
		Success:      r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: r.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  r.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: r.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles(r *lipgloss.Renderer) *Styles {
	plain := r.NewStyle()
	return &Styles{
		Error:          plain,
		Warning:        plain,
		Info:           plain,
		FilePath:       plain,
		Language:       plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Success:        plain,
		Failure:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// NewRenderer returns a lipgloss renderer for w whose color profile follows
// IsColorEnabled. Forced color on a non-terminal writer uses ANSI 256.
func NewRenderer(w io.Writer, mode string) (*lipgloss.Renderer, bool) {
	renderer := lipgloss.NewRenderer(w)

	enabled := IsColorEnabled(mode, w)
	switch {
	case !enabled:
		renderer.SetColorProfile(termenv.Ascii)
	case renderer.ColorProfile() == termenv.Ascii:
		renderer.SetColorProfile(termenv.ANSI256)
	}

	return renderer, enabled
}
