package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdoutline/internal/configloader"
	"github.com/yaklabco/mdoutline/internal/logging"
	"github.com/yaklabco/mdoutline/pkg/config"
	"github.com/yaklabco/mdoutline/pkg/fsutil"
	"github.com/yaklabco/mdoutline/pkg/runner"
)

func newPageCommand() *cobra.Command {
	flags := &conversionFlags{}

	cmd := &cobra.Command{
		Use:   "page <note>",
		Short: "Convert a single note and print the page",
		Long: `Convert one note and write the outline page to standard output.

Warnings about best-effort conversions and verification issues go to the log.

Examples:
  mdoutline page vault/a.b.md
  mdoutline page vault/a.b.md --alias-title --verify`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPage(cmd, args[0], flags)
		},
	}

	addConversionFlags(cmd, flags)

	return cmd
}

func runPage(cmd *cobra.Command, path string, flags *conversionFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{}
	set := configloader.FieldSet{}
	if err := flags.apply(cmd, cliCfg, set); err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, cmd, cliCfg, set)
	if err != nil {
		return err
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %w", runner.ErrReadFailure, err)
	}

	opts := runner.PipelineOptionsFromConfig(cfg)
	page, err := runner.NewPipeline().ProcessContent(ctx, path, content, opts)
	if err != nil {
		return fmt.Errorf("convert %s: %w", path, err)
	}

	for _, warning := range page.Warnings {
		logger.Warn(warning, logging.FieldPath, path)
	}
	for _, issue := range page.Issues {
		logger.Warn(issue.String(), logging.FieldPath, path)
	}

	if _, err := cmd.OutOrStdout().Write(page.Content); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}
