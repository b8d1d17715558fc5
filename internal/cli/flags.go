package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdoutline/internal/configloader"
	"github.com/yaklabco/mdoutline/internal/logging"
	"github.com/yaklabco/mdoutline/internal/ui/pretty"
	"github.com/yaklabco/mdoutline/pkg/config"
)

// conversionFlags are the flags shared by every command that converts notes.
type conversionFlags struct {
	removeFrontmatter bool
	aliasTitle        bool
	useTitle          bool
	fourSpaceIndent   bool
	removeEmptyLines  string
	detectLanguage    bool
	verify            bool
}

func addConversionFlags(cmd *cobra.Command, flags *conversionFlags) {
	f := cmd.Flags()
	f.BoolVar(&flags.removeFrontmatter, "remove-frontmatter", false,
		"remove frontmatter (kept as a code block by default)")
	f.BoolVar(&flags.aliasTitle, "alias-title", false, "add the frontmatter title as an alias:: property")
	f.BoolVar(&flags.useTitle, "use-title", false,
		"use the frontmatter title as the title:: property (titles must be unique)")
	f.BoolVar(&flags.fourSpaceIndent, "four-space-indent", false, "indent with four spaces instead of a tab")
	f.StringVar(&flags.removeEmptyLines, "remove-empty-lines", "trim",
		"empty lines: none (keep all), all (remove all), trim (drop after headings, collapse runs)")
	f.BoolVar(&flags.detectLanguage, "detect-language", false,
		"tag converted indented code blocks with a detected language")
	f.BoolVar(&flags.verify, "verify", false, "check every produced page with a Markdown parser")

	cmd.MarkFlagsMutuallyExclusive("alias-title", "use-title")
}

// apply copies the flags the user set into cfg and records them in set.
func (flags *conversionFlags) apply(cmd *cobra.Command, cfg *config.Config, set configloader.FieldSet) error {
	changed := cmd.Flags().Changed

	if changed("remove-frontmatter") {
		cfg.RemoveFrontmatter = flags.removeFrontmatter
		set["remove_frontmatter"] = true
	}
	switch {
	case flags.aliasTitle:
		cfg.Title = config.TitleAlias
	case flags.useTitle:
		cfg.Title = config.TitleProperty
	}
	if flags.fourSpaceIndent {
		cfg.Indent = config.IndentSpaces
	}
	if changed("remove-empty-lines") {
		policy, ok := config.ParseBlankLinePolicy(flags.removeEmptyLines)
		if !ok {
			return fmt.Errorf("%w: --remove-empty-lines must be none, all or trim, got %q",
				ErrUsage, flags.removeEmptyLines)
		}
		cfg.BlankLines = policy
	}
	if changed("detect-language") {
		cfg.DetectLanguage = flags.detectLanguage
		set["detect_language"] = true
	}
	cfg.Verify = flags.verify

	return nil
}

// loadConfig resolves the configuration for a command, with cliCfg on top.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config, set configloader.FieldSet) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
		CLISet:       set,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}

	cfg := loaded.Config
	logger.Debug("configuration loaded",
		logging.FieldFiles, loaded.LoadedFrom,
		logging.FieldTitle, cfg.Title,
		logging.FieldIndent, cfg.Indent,
		logging.FieldBlanks, cfg.BlankLines,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, nil
}

// commandContext returns the command's context carrying the default logger.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// stylesFor picks styles for the command's output writer.
func stylesFor(cmd *cobra.Command) *pretty.Styles {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout()))
}
