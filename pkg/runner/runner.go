package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/yaklabco/mdoutline/internal/logging"
	"github.com/yaklabco/mdoutline/pkg/fsutil"
	"github.com/yaklabco/mdoutline/pkg/vault"
)

// Runner converts vaults using a Pipeline.
type Runner struct {
	Pipeline *Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run prepares and executes a conversion without asking anything. Callers
// that want to confirm the plan first use Prepare and Execute.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	plan, err := Prepare(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.Execute(ctx, plan, opts)
}

// Execute converts every note of the plan concurrently and then copies the
// assets directory. Pages are returned ordered by note name. A failing note
// is recorded in its outcome and does not stop the others.
func (r *Runner) Execute(ctx context.Context, plan *Plan, opts Options) (*Result, error) {
	notes := plan.Vault.Notes
	pipelineOpts := PipelineOptionsFromConfig(opts.Config)

	result := &Result{Pages: make([]PageOutcome, 0, len(notes))}
	result.Stats.NotesDiscovered = len(notes)
	result.Stats.NotesSkipped = len(plan.Vault.Skipped)

	if !pipelineOpts.DryRun {
		if err := fsutil.EnsureDir(opts.OutputDir); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	outcomes := r.convertAll(ctx, notes, opts, pipelineOpts)
	for _, note := range notes {
		if outcome, ok := outcomes[note.Name]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	if plan.Vault.Assets != "" && !pipelineOpts.DryRun {
		dst := filepath.Join(opts.OutputDir, vault.AssetsDir)
		logging.FromContext(ctx).Debug("copying assets", logging.FieldInput, plan.Vault.Assets, logging.FieldOutput, dst)

		copied, err := fsutil.CopyTree(ctx, plan.Vault.Assets, dst)
		result.Stats.AssetsCopied = copied
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("copy assets: %w", err))
		}
	}

	return result, nil
}

// convertAll runs the worker pool and returns the outcomes keyed by note name.
func (r *Runner) convertAll(
	ctx context.Context,
	notes []vault.Note,
	opts Options,
	pipelineOpts PipelineOptions,
) map[string]PageOutcome {
	outcomes := make(map[string]PageOutcome, len(notes))
	if len(notes) == 0 {
		return outcomes
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(notes))

	workCh := make(chan vault.Note)
	outCh := make(chan PageOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts.OutputDir, pipelineOpts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, note := range notes {
			select {
			case <-ctx.Done():
				return
			case workCh <- note:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	for outcome := range outCh {
		outcomes[outcome.Name] = outcome
	}
	return outcomes
}

func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan vault.Note,
	outCh chan<- PageOutcome,
	outputDir string,
	opts PipelineOptions,
) {
	for note := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := PageOutcome{Name: note.Name}
		res, err := r.Pipeline.ProcessNote(ctx, note, outputDir, opts)
		if err != nil {
			outcome.Error = err
		} else {
			outcome.Result = res
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
