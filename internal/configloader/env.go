package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yaklabco/gxhighlight/pkg/config"
)

// envVarPrefix is the prefix for all gxhighlight environment variables.
const envVarPrefix = "GXHIGHLIGHT_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeInt
	envTypeSlice
	envTypePathList
)

type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"COLOR":         {field: "color", typ: envTypeString},
	"FORMAT":        {field: "format", typ: envTypeString},
	"FLAVOR":        {field: "flavor", typ: envTypeString},
	"JOBS":          {field: "jobs", typ: envTypeInt},
	"MAX_FILE_SIZE": {field: "max_file_size", typ: envTypeInt},
	"LANGUAGE_DIRS": {field: "language_dirs", typ: envTypePathList},
	"IGNORE":        {field: "ignore", typ: envTypeSlice},
}

// LoadFromEnv applies GXHIGHLIGHT_* environment variable overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeInt:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value, ","))
	case envTypePathList:
		return setSliceField(cfg, mapping.field, parseSliceValue(value, string(filepath.ListSeparator)))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue splits value on sep, trimming whitespace and dropping
// empty elements.
func parseSliceValue(value, sep string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "color":
		cfg.Color = config.ColorMode(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int64) error {
	switch field {
	case "jobs":
		cfg.Jobs = int(value)
	case "max_file_size":
		cfg.MaxFileSize = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "language_dirs":
		cfg.LanguageDirs = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns every supported environment variable with a description.
func ListEnvVars() map[string]string {
	return map[string]string{
		"GXHIGHLIGHT_COLOR":         "Color mode: auto, always or never",
		"GXHIGHLIGHT_FORMAT":        "Output format: ansi, text, json, html or summary",
		"GXHIGHLIGHT_FLAVOR":        "Markdown flavor: commonmark or gfm",
		"GXHIGHLIGHT_JOBS":          "Number of parallel workers (0 = auto)",
		"GXHIGHLIGHT_MAX_FILE_SIZE": "Skip files larger than this many bytes (0 = no limit)",
		"GXHIGHLIGHT_LANGUAGE_DIRS": "Extra language table directories, separated like PATH",
		"GXHIGHLIGHT_IGNORE":        "Comma-separated list of ignore patterns",
	}
}
