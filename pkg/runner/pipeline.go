package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	diff "github.com/shogoki/gotextdiff"

	"github.com/yaklabco/mdoutline/internal/logging"
	"github.com/yaklabco/mdoutline/pkg/fsutil"
	"github.com/yaklabco/mdoutline/pkg/outline"
	"github.com/yaklabco/mdoutline/pkg/vault"
	"github.com/yaklabco/mdoutline/pkg/verify"
)

// Pipeline error types for categorization.
var (
	// ErrReadFailure indicates the note could not be read.
	ErrReadFailure = errors.New("read failure")

	// ErrWriteFailure indicates the page could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// PageResult is the result of converting one note.
type PageResult struct {
	Note vault.Note

	// OutputPath is where the page is (or would be) written.
	OutputPath string

	// Content is the converted page.
	Content []byte

	// Blocks is the number of outline nodes in the page.
	Blocks int

	// Warnings lists the parts of the note handled best-effort.
	Warnings []string

	// Issues lists blocks of the page that are outside the outline. Only
	// filled when verification is enabled.
	Issues []verify.Issue

	// Diff is the unified diff against the existing page in dry-run mode;
	// nil when nothing would change.
	Diff []byte

	// Written is true if the page was written to disk.
	Written bool

	// Unchanged is true if the existing page already had this content.
	Unchanged bool

	// BackupCreated is true if the previous page was backed up.
	BackupCreated bool
}

// Summary returns a short human-readable state of the page.
func (pr *PageResult) Summary() string {
	switch {
	case pr.Unchanged:
		return "unchanged"
	case pr.Written && pr.BackupCreated:
		return "written (backup created)"
	case pr.Written:
		return "written"
	case pr.Diff != nil:
		return "changes pending"
	default:
		return "ok"
	}
}

// Pipeline converts single notes.
type Pipeline struct {
	verifier *verify.Verifier
}

// NewPipeline creates a Pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{verifier: verify.New(verifyFlavor)}
}

// ProcessNote converts note into outputDir.
//
// The pipeline:
//  1. Reads the note.
//  2. Converts it.
//  3. Verifies the outline (if enabled).
//  4. Diffs against the existing page (dry-run) or backs it up and writes
//     the page atomically, leaving identical pages untouched.
func (p *Pipeline) ProcessNote(
	ctx context.Context,
	note vault.Note,
	outputDir string,
	opts PipelineOptions,
) (*PageResult, error) {
	content, _, err := fsutil.ReadFile(ctx, note.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}

	result, err := p.ProcessContent(ctx, note.Name, content, opts)
	if err != nil {
		return nil, err
	}
	result.Note = note
	result.OutputPath = filepath.Join(outputDir, vault.OutputName(note.Name, opts.Separator))

	logger := logging.FromContext(ctx)
	logger.Debug("converted note",
		logging.FieldPath, note.Name,
		logging.FieldOutput, result.OutputPath,
		logging.FieldBlocks, result.Blocks,
	)

	if opts.DryRun {
		existing, _, err := fsutil.ReadFile(ctx, result.OutputPath)
		if err != nil && !errors.Is(err, fsutil.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
		}
		if err == nil && bytes.Equal(existing, result.Content) {
			result.Unchanged = true
			return result, nil
		}
		result.Diff = diff.Diff(result.OutputPath, existing, result.OutputPath, result.Content)
		return result, nil
	}

	created, err := fsutil.CreateBackup(ctx, result.OutputPath, opts.Backup)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.BackupCreated = created

	written, err := fsutil.WriteAtomicIfChanged(ctx, result.OutputPath, result.Content, fsutil.DefaultFileMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = written
	result.Unchanged = !written

	return result, nil
}

// ProcessContent converts in-memory note content without file I/O.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	name string,
	content []byte,
	opts PipelineOptions,
) (*PageResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	converted := outline.ConvertDocument(string(content), opts.Convert)
	result := &PageResult{
		Note:     vault.Note{Name: name},
		Content:  []byte(converted.Text),
		Blocks:   converted.Blocks,
		Warnings: converted.Warnings,
	}

	if opts.Verify {
		report, err := p.verifier.Check(ctx, result.Content)
		if err != nil {
			return nil, fmt.Errorf("verify %s: %w", name, err)
		}
		result.Issues = report.Issues
	}

	return result, nil
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrReadFailure) || errors.Is(err, ErrWriteFailure)
}
