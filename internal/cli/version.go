package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdoutline/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of mdoutline.`,
		Run: func(_ *cobra.Command, _ []string) {
			logging.NewInteractive().Info("mdoutline",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
		},
	}
}
