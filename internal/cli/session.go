package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gxhighlight/internal/configloader"
	"github.com/yaklabco/gxhighlight/internal/logging"
	"github.com/yaklabco/gxhighlight/pkg/config"
	"github.com/yaklabco/gxhighlight/pkg/lang"
	"github.com/yaklabco/gxhighlight/pkg/registry"
)

// session is the resolved configuration and language registry shared by
// the commands that highlight text.
type session struct {
	ctx      context.Context //nolint:containedctx // Scoped to one command run.
	cfg      *config.Config
	registry *registry.Registry
	logger   *log.Logger
	workDir  string
}

// newSession loads configuration for cmd, with cliCfg holding the values of
// flags the user set, and builds the language registry it describes.
func newSession(cmd *cobra.Command, cliCfg *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	noConfig, err := cmd.Flags().GetBool(flagNoConfig)
	if err != nil {
		return nil, fmt.Errorf("get no-config flag: %w", err)
	}
	if cmd.Flags().Changed(flagColor) {
		color, err := cmd.Flags().GetString(flagColor)
		if err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
		if !configloader.IsValidColorMode(config.ColorMode(color)) {
			return nil, usageError("invalid color mode %q: must be auto, always or never", color)
		}
		cliCfg.Color = config.ColorMode(color)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        configPath,
		IgnoreUserConfig:    noConfig,
		IgnoreProjectConfig: noConfig,
		CLIConfig:           cliCfg,
	})
	if err != nil {
		return nil, withExitCode(ExitConfigError, fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Format,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldJobs, cfg.Jobs,
	)

	reg, err := buildRegistry(cfg, logger)
	if err != nil {
		return nil, withExitCode(ExitConfigError, err)
	}

	return &session{
		ctx:      ctx,
		cfg:      cfg,
		registry: reg,
		logger:   logger,
		workDir:  workDir,
	}, nil
}

// buildRegistry returns the shared built-in registry, or a new one when the
// configuration adds language tables or aliases. Extra tables are compiled
// eagerly so a malformed pattern is reported here rather than mid-scan.
func buildRegistry(cfg *config.Config, logger *log.Logger) (*registry.Registry, error) {
	if len(cfg.LanguageDirs) == 0 && len(cfg.Aliases) == 0 {
		return registry.Default(), nil
	}

	builtin, err := lang.Builtin()
	if err != nil {
		return nil, fmt.Errorf("load built-in languages: %w", err)
	}
	defs := slices.Clone(builtin)

	extra := 0
	for _, dir := range cfg.LanguageDirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue // Reported as a configuration warning.
		}
		loaded, err := lang.LoadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("load languages from %s: %w", dir, err)
		}
		logger.Debug("loaded language tables", logging.FieldPath, dir, logging.FieldLanguages, len(loaded))
		defs = append(defs, loaded...)
		extra += len(loaded)
	}

	reg, err := registry.New(registry.Default().Cache(), defs...)
	if err != nil {
		return nil, fmt.Errorf("build language registry: %w", err)
	}
	if extra > 0 {
		if err := reg.Warm(); err != nil {
			return nil, fmt.Errorf("compile language tables: %w", err)
		}
	}

	for _, alias := range slices.Sorted(maps.Keys(cfg.Aliases)) {
		if err := reg.AddAlias(alias, cfg.Aliases[alias]); err != nil {
			return nil, fmt.Errorf("alias %s: %w", alias, err)
		}
	}

	return reg, nil
}
