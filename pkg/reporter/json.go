// Package reporter renders conversion results for machines.
package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/mdoutline/pkg/runner"
)

// ReportVersion is the version of the JSON report layout.
const ReportVersion = "1.0.0"

const bufWriterSize = 32 * 1024

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string      `json:"version"`
	DryRun  bool        `json:"dryRun"`
	Pages   []JSONPage  `json:"pages"`
	Summary JSONSummary `json:"summary"`
	Errors  []string    `json:"errors,omitempty"`
}

// JSONPage represents the outcome of one note.
type JSONPage struct {
	Note     string      `json:"note"`
	Page     string      `json:"page,omitempty"`
	State    string      `json:"state"`
	Blocks   int         `json:"blocks"`
	Warnings []string    `json:"warnings,omitempty"`
	Issues   []JSONIssue `json:"issues,omitempty"`
	Diff     string      `json:"diff,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// JSONIssue is a verification finding.
type JSONIssue struct {
	Line int    `json:"line"`
	Kind string `json:"kind"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	NotesDiscovered   int `json:"notesDiscovered"`
	NotesSkipped      int `json:"notesSkipped"`
	PagesConverted    int `json:"pagesConverted"`
	PagesWritten      int `json:"pagesWritten"`
	PagesUnchanged    int `json:"pagesUnchanged"`
	PagesPending      int `json:"pagesPending"`
	PagesErrored      int `json:"pagesErrored"`
	PagesWithWarnings int `json:"pagesWithWarnings"`
	Issues            int `json:"issues"`
	BackupsCreated    int `json:"backupsCreated"`
	AssetsCopied      int `json:"assetsCopied"`
}

// Options controls the JSON report.
type Options struct {
	// Compact disables indentation.
	Compact bool

	// DryRun is recorded in the report.
	DryRun bool
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// Report writes the result to w.
func (r *JSONReporter) Report(ctx context.Context, w io.Writer, result *runner.Result) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("report cancelled: %w", err)
	}

	bw := bufio.NewWriterSize(w, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(r.Build(result)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// Build converts a result into the JSON layout.
func (r *JSONReporter) Build(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: ReportVersion,
		DryRun:  r.opts.DryRun,
		Pages:   make([]JSONPage, 0),
	}
	if result == nil {
		return output
	}

	output.Pages = make([]JSONPage, 0, len(result.Pages))
	for _, outcome := range result.Pages {
		output.Pages = append(output.Pages, buildPage(outcome))
	}
	for _, err := range result.Errors {
		output.Errors = append(output.Errors, err.Error())
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		NotesDiscovered:   stats.NotesDiscovered,
		NotesSkipped:      stats.NotesSkipped,
		PagesConverted:    stats.PagesConverted,
		PagesWritten:      stats.PagesWritten,
		PagesUnchanged:    stats.PagesUnchanged,
		PagesPending:      stats.PagesPending,
		PagesErrored:      stats.PagesErrored,
		PagesWithWarnings: stats.PagesWithWarnings,
		Issues:            stats.IssuesTotal,
		BackupsCreated:    stats.BackupsCreated,
		AssetsCopied:      stats.AssetsCopied,
	}

	return output
}

func buildPage(outcome runner.PageOutcome) JSONPage {
	page := JSONPage{Note: outcome.Name}

	if outcome.Error != nil {
		page.State = "error"
		page.Error = outcome.Error.Error()
		return page
	}

	res := outcome.Result
	if res == nil {
		page.State = "skipped"
		return page
	}

	page.Page = res.OutputPath
	page.State = res.Summary()
	page.Blocks = res.Blocks
	page.Warnings = res.Warnings
	page.Diff = string(res.Diff)
	for _, issue := range res.Issues {
		page.Issues = append(page.Issues, JSONIssue{Line: issue.Line, Kind: issue.Kind})
	}

	return page
}
