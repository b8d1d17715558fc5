package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdoutline/internal/configloader"
	"github.com/yaklabco/mdoutline/internal/logging"
	"github.com/yaklabco/mdoutline/pkg/config"
	"github.com/yaklabco/mdoutline/pkg/fsutil"
)

type initFlags struct {
	force  bool
	full   bool
	user   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an mdoutline configuration file",
		Long: `Create a .mdoutline.yml configuration file in the current directory
with the default conversion options commented.

Examples:
  mdoutline init                     Create minimal .mdoutline.yml
  mdoutline init --full              Write every option with its default
  mdoutline init --user              Create ~/.config/mdoutline/config.yaml
  mdoutline init --format json       Create .mdoutline.json instead`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(commandContext(cmd), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write every option with its default value")
	cmd.Flags().BoolVar(&flags.user, "user", false, "write the user-level configuration instead")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path")

	return cmd
}

func runInit(ctx context.Context, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrUsage, flags.format)
	}

	outputPath, err := initPath(flags)
	if err != nil {
		return err
	}

	if _, err := os.Stat(outputPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.EnsureDir(filepath.Dir(outputPath)); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, outputPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("edit it to change the default conversion options")

	return nil
}

func initPath(flags *initFlags) (string, error) {
	if flags.output != "" {
		return filepath.Abs(flags.output)
	}

	ext := ".yml"
	if flags.format == "json" {
		ext = ".json"
	}

	if flags.user {
		if ext == ".yml" {
			ext = ".yaml"
		}
		dir, err := configloader.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "config"+ext), nil
	}

	return filepath.Abs(".mdoutline" + ext)
}
