// Package runner converts a whole vault: it plans the run, converts notes
// concurrently and copies the assets directory.
package runner

import (
	"github.com/yaklabco/mdoutline/pkg/config"
	"github.com/yaklabco/mdoutline/pkg/fsutil"
	"github.com/yaklabco/mdoutline/pkg/outline"
	"github.com/yaklabco/mdoutline/pkg/verify"
)

// Options controls a vault conversion.
type Options struct {
	// VaultDir is the vault to convert.
	VaultDir string

	// OutputDir receives the pages and the assets directory.
	OutputDir string

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// PipelineOptions controls the conversion of a single note.
type PipelineOptions struct {
	Convert outline.Options

	// Separator replaces dots in note names.
	Separator string

	// DryRun computes diffs without writing.
	DryRun bool

	// Verify parses every produced page and reports stray blocks.
	Verify bool

	Backup fsutil.BackupConfig
}

// DefaultPipelineOptions returns the options of a plain conversion.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Convert:   outline.DefaultOptions(),
		Separator: config.DefaultSeparator,
		Backup:    fsutil.BackupConfig{Mode: fsutil.BackupModeSidecar},
	}
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return DefaultPipelineOptions().Backup
	}
	mode, ok := fsutil.ParseBackupMode(cfg.Backups.Mode)
	if !ok {
		mode = fsutil.BackupModeSidecar
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    mode,
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	separator := cfg.Separator
	if separator == "" {
		separator = config.DefaultSeparator
	}
	return PipelineOptions{
		Convert:   outline.OptionsFromConfig(cfg),
		Separator: separator,
		DryRun:    cfg.DryRun,
		Verify:    cfg.Verify,
		Backup:    BackupConfigFromConfig(cfg),
	}
}

// verifyFlavor is the Markdown flavor outlines are checked against.
const verifyFlavor = verify.FlavorCommonMark
