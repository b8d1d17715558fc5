package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdoutline/internal/configloader"
	"github.com/yaklabco/mdoutline/internal/logging"
	"github.com/yaklabco/mdoutline/internal/ui/pretty"
	"github.com/yaklabco/mdoutline/pkg/config"
	"github.com/yaklabco/mdoutline/pkg/reporter"
	"github.com/yaklabco/mdoutline/pkg/runner"
	"github.com/yaklabco/mdoutline/pkg/vault"
)

// Output formats of the convert command.
const (
	formatText    = "text"
	formatTable   = "table"
	formatSummary = "summary"
	formatJSON    = "json"
)

type convertFlags struct {
	conversionFlags

	yes       bool
	dryRun    bool
	noBackups bool
	jobs      int
	ignore    []string
	separator string
	format    string
}

func newConvertCommand(prompter Prompter) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert <vault> <output>",
		Short: "Convert a vault into an outline graph",
		Long:  convertLongDescription,
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], args[1], flags, prompter)
		},
	}

	addConversionFlags(cmd, &flags.conversionFlags)

	f := cmd.Flags()
	f.BoolVarP(&flags.yes, "yes", "y", false, "answer yes to all prompts")
	f.BoolVar(&flags.dryRun, "dry-run", false, "show the changes without writing anything")
	f.BoolVar(&flags.noBackups, "no-backups", false, "disable backups of overwritten pages")
	f.IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	f.StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns of vault entries to skip")
	f.StringVar(&flags.separator, "separator", config.DefaultSeparator, "replacement for dots in page file names")
	f.StringVar(&flags.format, "format", formatText, "output format: text, table, summary, json")

	return cmd
}

const convertLongDescription = `Convert every note of a Dendron vault into an outline page.

Notes are the .md files directly inside the vault. Hidden entries and .yml
files are skipped, the assets directory is copied to <output>/assets.
Nothing in the output directory is deleted, but pages may be overwritten.

Examples:
  mdoutline convert vault graph/pages               # Convert with defaults
  mdoutline convert vault out --alias-title         # Keep titles as aliases
  mdoutline convert vault out --use-title -y        # Titles as title:: property
  mdoutline convert vault out --dry-run             # Show diffs only
  mdoutline convert vault out --remove-empty-lines all --four-space-indent`

func runConvert(cmd *cobra.Command, vaultDir, outputDir string, flags *convertFlags, prompter Prompter) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)
	out := cmd.OutOrStdout()
	status := out

	switch flags.format {
	case formatText, formatTable, formatSummary, formatJSON:
	default:
		return fmt.Errorf("%w: --format must be text, table, summary or json, got %q", ErrUsage, flags.format)
	}

	cliCfg := &config.Config{
		Jobs:      flags.jobs,
		DryRun:    flags.dryRun,
		Yes:       flags.yes,
		NoBackups: flags.noBackups,
		Ignore:    flags.ignore,
	}
	if cmd.Flags().Changed("separator") {
		cliCfg.Separator = flags.separator
	}
	set := configloader.FieldSet{}
	if err := flags.apply(cmd, cliCfg, set); err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, cmd, cliCfg, set)
	if err != nil {
		return err
	}

	styles := stylesFor(cmd)
	if flags.format == formatJSON {
		status = cmd.ErrOrStderr()
	}
	opts := runner.Options{
		VaultDir:  vaultDir,
		OutputDir: outputDir,
		Jobs:      cfg.Jobs,
		Config:    cfg,
	}

	absVault, err := filepath.Abs(vaultDir)
	if err != nil {
		absVault = vaultDir
	}
	fmt.Fprintf(status, "Processing vault %s\n", styles.Bold.Render(absVault))

	plan, err := runner.Prepare(ctx, opts)
	if err != nil {
		if plan != nil {
			fmt.Fprint(status, styles.FormatDuplicates(plan.Duplicates))
		}
		if errors.Is(err, vault.ErrDuplicateTitles) {
			return fmt.Errorf("%w; resolve them or run without --use-title", err)
		}
		return fmt.Errorf("prepare conversion: %w", err)
	}

	var ignored []vault.Skipped
	for _, skipped := range plan.Vault.Skipped {
		if skipped.Reason == vault.SkipUnhandled {
			logger.Warn("entry not handled", logging.FieldPath, skipped.Name)
			continue
		}
		ignored = append(ignored, skipped)
	}
	if len(ignored) > 0 {
		fmt.Fprintf(status, "Ignoring %s:\n%s", pluralEntries(len(ignored)), styles.FormatSkipped(ignored))
	}

	if err := confirmPlan(status, styles, plan, cfg, outputDir, prompter); err != nil {
		return err
	}

	result, err := runner.New(runner.NewPipeline()).Execute(ctx, plan, opts)
	if err != nil {
		return fmt.Errorf("convert vault: %w", err)
	}

	for _, runErr := range result.Errors {
		logger.Error("run error", logging.FieldError, runErr)
	}

	if err := report(ctx, out, styles, result, cfg.DryRun, flags.format); err != nil {
		return err
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrConversionFailed
	}
	return nil
}

// confirmPlan asks before writing into a non-empty output directory and
// before converting a vault with duplicate titles.
func confirmPlan(
	out io.Writer,
	styles *pretty.Styles,
	plan *runner.Plan,
	cfg *config.Config,
	outputDir string,
	prompter Prompter,
) error {
	if plan.OutputExists && !cfg.DryRun {
		fmt.Fprintf(out, "Destination %s is not empty.\nNothing will be deleted, but pages might be overwritten.\n",
			outputDir)
		if err := confirmOrAbort(prompter, cfg.Yes, "Continue?", false); err != nil {
			return err
		}
	}

	if len(plan.Duplicates) > 0 {
		fmt.Fprint(out, styles.FormatDuplicates(plan.Duplicates))
		if err := confirmOrAbort(prompter, cfg.Yes, "Continue?", true); err != nil {
			return err
		}
	}

	return nil
}

func report(
	ctx context.Context,
	out io.Writer,
	styles *pretty.Styles,
	result *runner.Result,
	dryRun bool,
	format string,
) error {
	switch format {
	case formatJSON:
		rep := reporter.NewJSONReporter(reporter.Options{DryRun: dryRun})
		if err := rep.Report(ctx, out, result); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	case formatTable:
		fmt.Fprint(out, pretty.NewTableFormatter(styles, 0).FormatTable(result))
		fmt.Fprint(out, styles.FormatSummary(result.Stats))
	case formatSummary:
		fmt.Fprint(out, styles.FormatSummary(result.Stats))
	default:
		for _, outcome := range result.Pages {
			fmt.Fprint(out, styles.FormatPage(outcome))
			if dryRun && outcome.Result != nil {
				fmt.Fprint(out, styles.FormatDiff(outcome.Result.Diff))
			}
		}
		fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats, dryRun))
	}
	return nil
}

func pluralEntries(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}
