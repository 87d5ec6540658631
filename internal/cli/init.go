package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gxhighlight/internal/logging"
	"github.com/yaklabco/gxhighlight/pkg/config"
	"github.com/yaklabco/gxhighlight/pkg/fsutil"
)

// configFileName is the project config file written by init.
const configFileName = ".gxhighlight.yml"

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a gxhighlight configuration file",
		Long: `Create a .gxhighlight.yml configuration file in the current directory.
Every setting is listed with its default value and a comment.

With --force an existing file is replaced; its previous content is kept
next to it with a .bak suffix.

Examples:
  gxhighlight init                     Create .gxhighlight.yml
  gxhighlight init --force             Replace it, keeping a backup
  gxhighlight init -o ~/.config/gxhighlight/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: "+configFileName+")")

	return cmd
}

func runInit(ctx context.Context, flags *initFlags) error {
	logger := logging.NewInteractive()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configFileName
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	_, statErr := os.Stat(absPath)
	switch {
	case statErr == nil && !flags.force:
		return usageError("file %q already exists; use --force to overwrite", outputPath)
	case statErr == nil:
		backupPath, err := fsutil.Backup(ctx, absPath)
		if err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("back up %s: %w", outputPath, err))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath, "backup", backupPath)
	case !errors.Is(statErr, os.ErrNotExist):
		return withExitCode(ExitIOError, fmt.Errorf("stat %s: %w", outputPath, statErr))
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("create directory: %w", err))
	}
	if err := fsutil.WriteAtomic(ctx, absPath, []byte(config.Template), configFilePermissions); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'gxhighlight languages' to see the languages you can alias")

	return nil
}
