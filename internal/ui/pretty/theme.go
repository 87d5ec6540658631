package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gxhighlight/pkg/config"
	"github.com/yaklabco/gxhighlight/pkg/token"
)

// defaultTheme is the built-in ANSI 256 palette per token kind.
//
//nolint:gochecknoglobals // Read-only lookup table.
var defaultTheme = map[token.Kind]config.StyleConfig{
	token.Comment:     {Foreground: "8", Italic: true},
	token.String:      {Foreground: "10"},
	token.Number:      {Foreground: "13"},
	token.Keyword:     {Foreground: "12", Bold: true},
	token.Type:        {Foreground: "14"},
	token.Method:      {Foreground: "11"},
	token.Operator:    {Foreground: "9"},
	token.Punctuation: {Foreground: "7"},
}

// Theme maps token kinds to terminal styles.
type Theme struct {
	styles  map[token.Kind]lipgloss.Style
	enabled bool
}

// NewTheme builds the default palette on renderer and applies overrides
// keyed by kind name. A disabled theme renders text unchanged.
func NewTheme(renderer *lipgloss.Renderer, enabled bool, overrides map[string]config.StyleConfig) (*Theme, error) {
	settings := make(map[token.Kind]config.StyleConfig, len(defaultTheme))
	for kind, style := range defaultTheme {
		settings[kind] = style
	}

	for name, override := range overrides {
		kind, err := token.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("theme: %w", err)
		}
		style := settings[kind]
		if override.Foreground != "" {
			style.Foreground = override.Foreground
		}
		style.Bold = style.Bold || override.Bold
		style.Italic = style.Italic || override.Italic
		settings[kind] = style
	}

	theme := &Theme{
		styles:  make(map[token.Kind]lipgloss.Style, len(settings)),
		enabled: enabled,
	}
	for kind, setting := range settings {
		style := renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)
		if setting.Foreground != "" {
			style = style.Foreground(lipgloss.Color(setting.Foreground))
		}
		theme.styles[kind] = style.Bold(setting.Bold).Italic(setting.Italic)
	}

	return theme, nil
}

// PlainTheme returns a theme that renders text unchanged.
func PlainTheme() *Theme {
	return &Theme{}
}

// Enabled reports whether the theme emits styling.
func (t *Theme) Enabled() bool {
	return t.enabled
}

// Style returns the style for kind. Kinds without a style get an empty one.
func (t *Theme) Style(kind token.Kind) lipgloss.Style {
	return t.styles[kind]
}

// Render concatenates tokens, styling each one by kind.
func (t *Theme) Render(tokens []token.Token) string {
	var builder strings.Builder
	for _, tok := range tokens {
		builder.WriteString(t.RenderToken(tok))
	}
	return builder.String()
}

// RenderToken styles one token. Line breaks are written unstyled so a
// multi-line token never turns into a padded lipgloss block.
func (t *Theme) RenderToken(tok token.Token) string {
	style, ok := t.styles[tok.Kind]
	if !t.enabled || !ok || tok.Text == "" {
		return tok.Text
	}

	var builder strings.Builder
	rest := tok.Text
	for rest != "" {
		i := strings.IndexAny(rest, "\r\n")
		if i < 0 {
			builder.WriteString(style.Render(rest))
			break
		}
		if i > 0 {
			builder.WriteString(style.Render(rest[:i]))
		}
		builder.WriteByte(rest[i])
		rest = rest[i+1:]
	}
	return builder.String()
}
