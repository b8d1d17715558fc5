// Package cli provides the Cobra command structure for mdoutline.
package cli

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdoutline/internal/configloader"
	"github.com/yaklabco/mdoutline/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Option customizes the root command.
type Option func(*settings)

type settings struct {
	prompter Prompter
}

// WithPrompter replaces the terminal confirmation prompt.
func WithPrompter(p Prompter) Option {
	return func(s *settings) {
		s.prompter = p
	}
}

// NewRootCommand creates the root mdoutline command with all subcommands.
func NewRootCommand(info BuildInfo, opts ...Option) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	s := &settings{prompter: NewTerminalPrompter(os.Stdin)}
	for _, opt := range opts {
		opt(s)
	}

	rootCmd := &cobra.Command{
		Use:   "mdoutline",
		Short: "Convert a Dendron vault into an outline graph",
		Long: `mdoutline converts Markdown notes written as flat documents (Dendron
vaults) into outline pages where every block is a nested bullet, the
format Logseq reads.

Hierarchy dots in note names become a separator, wiki links and embeds are
rewritten to namespaced page references, frontmatter is kept as a code block
or dropped, and the assets directory is copied next to the pages.` + envHelp(),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(newConvertCommand(s.prompter))
	rootCmd.AddCommand(newPageCommand())
	rootCmd.AddCommand(newTitlesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}

// envHelp lists the configuration environment variables.
func envHelp() string {
	vars := configloader.ListEnvVars()

	var builder strings.Builder
	builder.WriteString("\n\nEnvironment:\n")
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&builder, "  %-30s %s\n", name, vars[name])
	}
	return strings.TrimSuffix(builder.String(), "\n")
}

// exactArgs is cobra.ExactArgs with usage-categorised errors.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
