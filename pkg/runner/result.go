package runner

// PageOutcome is the outcome of one note.
type PageOutcome struct {
	// Name is the note file name.
	Name string

	// Result is nil if the note could not be converted.
	Result *PageResult

	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	NotesDiscovered int

	// NotesSkipped counts vault entries that are not converted.
	NotesSkipped int

	PagesConverted int
	PagesWritten   int
	PagesUnchanged int
	PagesPending   int
	PagesErrored   int

	// PagesWithWarnings counts pages with best-effort conversions.
	PagesWithWarnings int

	// IssuesTotal counts verification issues across all pages.
	IssuesTotal int

	BackupsCreated int
	AssetsCopied   int
}

// Result is the overall runner result.
type Result struct {
	// Pages are ordered by note name.
	Pages []PageOutcome

	Stats Stats

	// Errors contains errors not tied to a single note.
	Errors []error
}

// HasFailures reports whether any note failed or a run-level error occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.PagesErrored > 0 || len(r.Errors) > 0
}

// HasWarnings reports whether any page was converted best-effort or failed
// verification.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.PagesWithWarnings > 0 || r.Stats.IssuesTotal > 0
}

func (r *Result) accumulate(outcome PageOutcome) {
	r.Pages = append(r.Pages, outcome)

	if outcome.Error != nil {
		r.Stats.PagesErrored++
		return
	}

	res := outcome.Result
	if res == nil {
		return
	}

	r.Stats.PagesConverted++
	switch {
	case res.Written:
		r.Stats.PagesWritten++
	case res.Unchanged:
		r.Stats.PagesUnchanged++
	case res.Diff != nil:
		r.Stats.PagesPending++
	}
	if res.BackupCreated {
		r.Stats.BackupsCreated++
	}
	if len(res.Warnings) > 0 {
		r.Stats.PagesWithWarnings++
	}
	r.Stats.IssuesTotal += len(res.Issues)
}
