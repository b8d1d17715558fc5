package runner

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdoutline/pkg/config"
	"github.com/yaklabco/mdoutline/pkg/fsutil"
	"github.com/yaklabco/mdoutline/pkg/vault"
)

// Plan is everything known about a run before any page is written.
type Plan struct {
	Vault *vault.Vault

	// Duplicates lists titles shared by several notes.
	Duplicates vault.Duplicates

	// OutputExists is true when the output directory exists and has entries.
	OutputExists bool
}

// Prepare scans the vault and checks the output directory. Title property
// mode with duplicate titles returns the plan together with an error
// wrapping vault.ErrDuplicateTitles; such a run must not start.
func Prepare(ctx context.Context, opts Options) (*Plan, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	v, err := vault.Scan(ctx, opts.VaultDir, vault.ScanOptions{Ignore: cfg.Ignore})
	if err != nil {
		return nil, err
	}

	dups, err := vault.DuplicateTitles(ctx, v.Notes)
	if err != nil {
		return nil, err
	}

	empty, err := fsutil.IsEmptyDir(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("check output directory: %w", err)
	}

	plan := &Plan{Vault: v, Duplicates: dups, OutputExists: !empty}

	if cfg.Title == config.TitleProperty && len(dups) > 0 {
		return plan, fmt.Errorf("%w: %d titles are used by more than one note", vault.ErrDuplicateTitles, len(dups))
	}

	return plan, nil
}
