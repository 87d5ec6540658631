package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yaklabco/gxhighlight/pkg/config"
	"github.com/yaklabco/gxhighlight/pkg/token"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "theme.keyword.foreground").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownColors = map[config.ColorMode]bool{
	config.ColorAuto:   true,
	config.ColorAlways: true,
	config.ColorNever:  true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatANSI:    true,
	config.FormatText:    true,
	config.FormatJSON:    true,
	config.FormatHTML:    true,
	config.FormatSummary: true,
}

// colorPattern accepts ANSI 256 color numbers and #rgb / #rrggbb hex colors.
var colorPattern = regexp.MustCompile(`^(?:[0-9]{1,3}|#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6})$`) //nolint:gochecknoglobals // Compiled once.

// maxANSIColor is the highest ANSI 256 palette index.
const maxANSIColor = 255

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Color != "" && !knownColors[cfg.Color] {
		result.addError("color", cfg.Color,
			fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color))
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.addError("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: ansi, text, json, html, summary", cfg.Format))
	}

	if cfg.Flavor != "" && !knownFlavors[cfg.Flavor] {
		result.addError("flavor", cfg.Flavor,
			fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor))
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.MaxFileSize < 0 {
		result.addError("max_file_size", cfg.MaxFileSize, "max_file_size must be >= 0 (0 means no limit)")
	}

	validateTheme(cfg, result)
	validateAliases(cfg, result)
	validateLanguageDirs(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

func (r *ValidationResult) addWarning(field string, value any, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: message})
}

func validateTheme(cfg *config.Config, result *ValidationResult) {
	for name, style := range cfg.Theme {
		field := "theme." + name
		if _, err := token.ParseKind(name); err != nil {
			result.addError(field, name, fmt.Sprintf("unknown token kind %q", name))
			continue
		}
		if style.Foreground != "" && !isValidColor(style.Foreground) {
			result.addError(field+".foreground", style.Foreground,
				fmt.Sprintf("invalid color %q; use an ANSI number (0-255) or #rrggbb", style.Foreground))
		}
	}
}

func isValidColor(color string) bool {
	if !colorPattern.MatchString(color) {
		return false
	}
	if strings.HasPrefix(color, "#") {
		return true
	}
	var n int
	if _, err := fmt.Sscanf(color, "%d", &n); err != nil {
		return false
	}
	return n <= maxANSIColor
}

func validateAliases(cfg *config.Config, result *ValidationResult) {
	for alias, target := range cfg.Aliases {
		if strings.TrimSpace(alias) == "" {
			result.addError("aliases", alias, "alias name must not be empty")
			continue
		}
		if strings.TrimSpace(target) == "" {
			result.addError("aliases."+alias, target, "alias target must name a language")
		}
	}
}

func validateLanguageDirs(cfg *config.Config, result *ValidationResult) {
	for i, dir := range cfg.LanguageDirs {
		info, err := os.Stat(dir)
		switch {
		case err != nil:
			result.addWarning(fmt.Sprintf("language_dirs[%d]", i), dir,
				fmt.Sprintf("language directory %q not found; it will be ignored", dir))
		case !info.IsDir():
			result.addError(fmt.Sprintf("language_dirs[%d]", i), dir,
				fmt.Sprintf("%q is not a directory", dir))
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns.
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, fmt.Sprintf("invalid glob pattern: %v", err))
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}

// IsValidColorMode returns true if the color mode is valid.
func IsValidColorMode(c config.ColorMode) bool {
	return knownColors[c]
}
