// Package config defines core configuration types for gxhighlight.
// These types are pure data structures with no dependency on the loader.
package config

// ColorMode controls colorized output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// OutputFormat specifies how highlighted tokens are written.
type OutputFormat string

const (
	FormatANSI    OutputFormat = "ansi"
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatHTML    OutputFormat = "html"
	FormatSummary OutputFormat = "summary"
)

// Flavor specifies the Markdown flavor used to find code blocks.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// StyleConfig overrides the terminal style of one token kind.
type StyleConfig struct {
	// Foreground is an ANSI color number ("12") or a hex color ("#ff8800").
	Foreground string `yaml:"foreground,omitempty"`
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
}

// IsZero reports whether the style sets nothing.
func (s StyleConfig) IsZero() bool {
	return s == StyleConfig{}
}

// Config is the root configuration structure for gxhighlight.
type Config struct {
	// Color selects when ANSI styling is used.
	Color ColorMode `yaml:"color,omitempty"`

	// Format is the default output format.
	Format OutputFormat `yaml:"format,omitempty"`

	// Flavor is the Markdown flavor for the markdown command.
	Flavor Flavor `yaml:"flavor,omitempty"`

	// Jobs is the number of parallel workers (0 means one per CPU).
	Jobs int `yaml:"jobs,omitempty"`

	// MaxFileSize skips files larger than this many bytes (0 disables the limit).
	MaxFileSize int64 `yaml:"max_file_size,omitempty"`

	// LanguageDirs lists directories of extra language tables (*.yaml).
	LanguageDirs []string `yaml:"language_dirs,omitempty"`

	// Theme overrides token styles keyed by kind name ("keyword", "string", ...).
	Theme map[string]StyleConfig `yaml:"theme,omitempty"`

	// Aliases maps extra alias names to language IDs.
	Aliases map[string]string `yaml:"aliases,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Language forces every input to be highlighted as this language.
	Language string `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Color:  ColorAuto,
		Format: FormatANSI,
		Flavor: FlavorCommonMark,
		Jobs:   0,
	}
}
