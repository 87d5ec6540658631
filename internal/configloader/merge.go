package configloader

import (
	"maps"

	"github.com/yaklabco/gxhighlight/pkg/config"
)

// merge combines two configurations, with override taking precedence over base:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.MaxFileSize != 0 {
		result.MaxFileSize = override.MaxFileSize
	}
	if override.Language != "" {
		result.Language = override.Language
	}

	result.Theme = mergeTheme(result.Theme, override.Theme)
	result.Aliases = mergeMap(result.Aliases, override.Aliases)

	if override.LanguageDirs != nil {
		result.LanguageDirs = override.LanguageDirs
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return result
}

// mergeTheme merges per-kind styles field by field.
func mergeTheme(base, override map[string]config.StyleConfig) map[string]config.StyleConfig {
	if len(override) == 0 {
		return base
	}

	result := make(map[string]config.StyleConfig, len(base)+len(override))
	maps.Copy(result, base)

	for kind, style := range override {
		existing := result[kind]
		if style.Foreground != "" {
			existing.Foreground = style.Foreground
		}
		if style.Bold {
			existing.Bold = true
		}
		if style.Italic {
			existing.Italic = true
		}
		result[kind] = existing
	}

	return result
}

func mergeMap(base, override map[string]string) map[string]string {
	if len(override) == 0 {
		return base
	}

	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
