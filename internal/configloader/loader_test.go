package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gxhighlight/pkg/config"
)

// newProject creates a temp dir marked as a VCS root so the upward
// config search never leaves it.
func newProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func noEnv(string) string { return "" }

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := load(context.Background(), LoadOptions{
		WorkingDir:       newProject(t),
		IgnoreUserConfig: true,
	}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".gxhighlight.yml"), `
format: html
jobs: 3
language_dirs: [langs]
aliases:
  zsh: bash
`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "langs"), 0o755))

	result, err := load(context.Background(), LoadOptions{
		WorkingDir:       dir,
		IgnoreUserConfig: true,
	}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, config.FormatHTML, result.Config.Format)
	assert.Equal(t, 3, result.Config.Jobs)
	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor)
	assert.Equal(t, []string{filepath.Join(dir, "langs")}, result.Config.LanguageDirs)
	assert.Equal(t, map[string]string{"zsh": "bash"}, result.Config.Aliases)
	assert.Equal(t, []string{filepath.Join(dir, ".gxhighlight.yml")}, result.LoadedFrom)
}

func TestLoad_ProjectConfigFoundFromSubdirectory(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, "gxhighlight.yaml"), "flavor: gfm\n")
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := load(context.Background(), LoadOptions{
		WorkingDir:       sub,
		IgnoreUserConfig: true,
	}, noEnv)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".gxhighlight.yml"), `
format: html
color: never
jobs: 2
theme:
  keyword:
    foreground: "13"
`)
	explicit := filepath.Join(dir, "custom.yml")
	writeFile(t, explicit, `
format: json
theme:
  keyword:
    bold: true
`)

	result, err := load(context.Background(), LoadOptions{
		WorkingDir:       dir,
		ExplicitPath:     explicit,
		IgnoreUserConfig: true,
		CLIConfig:        &config.Config{Format: config.FormatSummary, Language: "go"},
	}, envOf(map[string]string{
		"GXHIGHLIGHT_JOBS":  "7",
		"GXHIGHLIGHT_COLOR": "always",
	}))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, config.FormatSummary, cfg.Format, "CLI beats everything")
	assert.Equal(t, config.ColorAlways, cfg.Color, "env beats files")
	assert.Equal(t, 7, cfg.Jobs)
	assert.Equal(t, "go", cfg.Language)
	assert.Equal(t, config.StyleConfig{Foreground: "13", Bold: true}, cfg.Theme["keyword"])
	assert.Equal(t, []string{filepath.Join(dir, ".gxhighlight.yml"), explicit}, result.LoadedFrom)
}

func TestLoad_IgnoreProjectAndEnv(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".gxhighlight.yml"), "format: html\n")

	result, err := load(context.Background(), LoadOptions{
		WorkingDir:          dir,
		IgnoreUserConfig:    true,
		IgnoreProjectConfig: true,
		IgnoreEnv:           true,
	}, envOf(map[string]string{"GXHIGHLIGHT_FORMAT": "json"}))
	require.NoError(t, err)
	assert.Equal(t, config.FormatANSI, result.Config.Format)
}

func TestLoad_UserConfig(t *testing.T) {
	dir := newProject(t)
	xdg := t.TempDir()
	writeFile(t, filepath.Join(xdg, "gxhighlight", "config.yaml"), "flavor: gfm\n")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	result, err := load(context.Background(), LoadOptions{WorkingDir: dir}, noEnv)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, filepath.Join(xdg, "gxhighlight", "config.yaml"), result.Paths.User)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  string
		env     map[string]string
		wantErr string
	}{
		{name: "malformed yaml", config: "format: [\n", wantErr: "load project config"},
		{name: "unknown key", config: "colour: never\n", wantErr: "colour"},
		{name: "invalid format in file", config: "format: pdf\n", wantErr: "invalid format"},
		{name: "invalid env integer", env: map[string]string{"GXHIGHLIGHT_JOBS": "many"}, wantErr: "GXHIGHLIGHT_JOBS"},
		{name: "invalid env value", env: map[string]string{"GXHIGHLIGHT_FLAVOR": "mdx"}, wantErr: "invalid flavor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newProject(t)
			if tt.config != "" {
				writeFile(t, filepath.Join(dir, ".gxhighlight.yml"), tt.config)
			}

			_, err := load(context.Background(), LoadOptions{
				WorkingDir:       dir,
				IgnoreUserConfig: true,
			}, envOf(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ExplicitMissing(t *testing.T) {
	t.Parallel()

	_, err := load(context.Background(), LoadOptions{
		WorkingDir:       newProject(t),
		ExplicitPath:     "/nonexistent/gxhighlight.yml",
		IgnoreUserConfig: true,
	}, noEnv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load explicit config")
}

func TestLoad_MissingLanguageDirWarns(t *testing.T) {
	t.Parallel()

	result, err := load(context.Background(), LoadOptions{
		WorkingDir:       newProject(t),
		IgnoreUserConfig: true,
		CLIConfig:        &config.Config{LanguageDirs: []string{"/nonexistent/langs"}},
	}, noEnv)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "not found")
}

func TestLoad_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := load(ctx, LoadOptions{WorkingDir: newProject(t)}, noEnv)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := newProject(t)
	writeFile(t, filepath.Join(outer, ".gxhighlight.yml"), "format: json\n")

	inner := filepath.Join(outer, "nested")
	require.NoError(t, os.MkdirAll(filepath.Join(inner, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), inner)
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = FindProjectConfig(context.Background(), outer)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outer, ".gxhighlight.yml"), path)
}

func TestFindProjectConfig_Preference(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, "gxhighlight.yml"), "")
	writeFile(t, filepath.Join(dir, ".gxhighlight.yaml"), "")

	path, err := FindProjectConfig(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".gxhighlight.yaml"), path)
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MergeAll())

	base := &config.Config{
		Format:  config.FormatANSI,
		Ignore:  []string{"a"},
		Aliases: map[string]string{"x": "go"},
		Theme:   map[string]config.StyleConfig{"comment": {Italic: true}},
	}
	merged := MergeAll(base,
		&config.Config{Aliases: map[string]string{"y": "rust"}},
		&config.Config{Ignore: []string{}, Theme: map[string]config.StyleConfig{"comment": {Foreground: "8"}}},
	)

	assert.Equal(t, config.FormatANSI, merged.Format)
	assert.Equal(t, map[string]string{"x": "go", "y": "rust"}, merged.Aliases)
	assert.Empty(t, merged.Ignore)
	assert.Equal(t, config.StyleConfig{Foreground: "8", Italic: true}, merged.Theme["comment"])

	assert.Equal(t, []string{"a"}, base.Ignore, "base is not modified")
	assert.Len(t, base.Aliases, 1)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cfg    *config.Config
		field  string
		errors int
	}{
		{name: "nil", cfg: nil},
		{name: "defaults", cfg: config.NewConfig()},
		{name: "bad color", cfg: &config.Config{Color: "sometimes"}, field: "color", errors: 1},
		{name: "negative jobs", cfg: &config.Config{Jobs: -1}, field: "jobs", errors: 1},
		{name: "negative max size", cfg: &config.Config{MaxFileSize: -5}, field: "max_file_size", errors: 1},
		{
			name:   "unknown theme kind",
			cfg:    &config.Config{Theme: map[string]config.StyleConfig{"heading": {}}},
			field:  "theme.heading",
			errors: 1,
		},
		{
			name:   "bad theme color",
			cfg:    &config.Config{Theme: map[string]config.StyleConfig{"keyword": {Foreground: "purple"}}},
			field:  "theme.keyword.foreground",
			errors: 1,
		},
		{
			name:   "ansi color out of range",
			cfg:    &config.Config{Theme: map[string]config.StyleConfig{"keyword": {Foreground: "300"}}},
			field:  "theme.keyword.foreground",
			errors: 1,
		},
		{
			name: "valid theme colors",
			cfg: &config.Config{Theme: map[string]config.StyleConfig{
				"keyword": {Foreground: "255"},
				"string":  {Foreground: "#abc"},
				"comment": {Foreground: "#A0B1C2"},
			}},
		},
		{name: "empty alias target", cfg: &config.Config{Aliases: map[string]string{"zsh": " "}}, field: "aliases.zsh", errors: 1},
		{name: "bad glob", cfg: &config.Config{Ignore: []string{"[unclosed"}}, field: "ignore[0]", errors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := Validate(tt.cfg)
			require.Len(t, result.Errors, tt.errors, result.AllMessages())
			if tt.errors > 0 {
				assert.Equal(t, tt.field, result.Errors[0].Field)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{FilePath: "cfg.yml", Field: "jobs", Message: "jobs must be >= 0"}
	assert.Equal(t, "cfg.yml: jobs: jobs must be >= 0", err.Error())
	assert.Equal(t, "bad", (&ValidationError{Message: "bad"}).Error())
}

func TestListEnvVars_MatchesMappings(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings))
	for suffix := range envMappings {
		assert.Contains(t, vars, envVarPrefix+suffix)
	}
}

func TestLoadFromEnv_PathList(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	sep := string(filepath.ListSeparator)
	err := loadFromEnv(cfg, envOf(map[string]string{
		"GXHIGHLIGHT_LANGUAGE_DIRS": "/a" + sep + " /b " + sep,
		"GXHIGHLIGHT_IGNORE":        "vendor/**, *.min.js",
		"GXHIGHLIGHT_MAX_FILE_SIZE": "1024",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"/a", "/b"}, cfg.LanguageDirs)
	assert.Equal(t, []string{"vendor/**", "*.min.js"}, cfg.Ignore)
	assert.Equal(t, int64(1024), cfg.MaxFileSize)
	assert.NoError(t, loadFromEnv(nil, noEnv))
}
