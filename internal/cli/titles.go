package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdoutline/pkg/config"
	"github.com/yaklabco/mdoutline/pkg/vault"
)

type titlesFlags struct {
	ignore []string
	check  bool
}

func newTitlesCommand() *cobra.Command {
	flags := &titlesFlags{}

	cmd := &cobra.Command{
		Use:   "titles <vault>",
		Short: "Report frontmatter titles used by more than one note",
		Long: `List every frontmatter title shared by several notes of the vault.

Converting with --use-title requires unique titles; --check makes this
command fail when duplicates exist, for use in scripts.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTitles(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns of vault entries to skip")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit with an error when duplicates exist")

	return cmd
}

func runTitles(cmd *cobra.Command, vaultDir string, flags *titlesFlags) error {
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(ctx, cmd, &config.Config{Ignore: flags.ignore}, nil)
	if err != nil {
		return err
	}

	v, err := vault.Scan(ctx, vaultDir, vault.ScanOptions{Ignore: cfg.Ignore})
	if err != nil {
		return fmt.Errorf("scan vault: %w", err)
	}

	dups, err := vault.DuplicateTitles(ctx, v.Notes)
	if err != nil {
		return fmt.Errorf("collect titles: %w", err)
	}

	styles := stylesFor(cmd)
	if len(dups) == 0 {
		fmt.Fprintln(out, styles.Success.Render(fmt.Sprintf("No duplicate titles among %d notes", len(v.Notes))))
		return nil
	}

	fmt.Fprint(out, styles.FormatDuplicates(dups))
	if flags.check {
		return fmt.Errorf("%w: %d titles", vault.ErrDuplicateTitles, len(dups))
	}
	return nil
}
