package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdoutline/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 pages converted (10 written, 2 unchanged), 3 assets copied".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, dryRun bool) string {
	if stats.NotesDiscovered == 0 {
		return s.Dim.Render("No notes found") + "\n"
	}

	var states []string
	if stats.PagesWritten > 0 {
		states = append(states, s.Success.Render(fmt.Sprintf("%d written", stats.PagesWritten)))
	}
	if stats.PagesPending > 0 {
		states = append(states, s.Warning.Render(fmt.Sprintf("%d would change", stats.PagesPending)))
	}
	if stats.PagesUnchanged > 0 {
		states = append(states, s.Dim.Render(fmt.Sprintf("%d unchanged", stats.PagesUnchanged)))
	}

	head := plural(stats.PagesConverted, "page", "pages") + " converted"
	if dryRun {
		head += " (dry run)"
	}
	if len(states) > 0 {
		head += " (" + strings.Join(states, ", ") + ")"
	}

	parts := []string{head}
	if stats.PagesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.PagesErrored)))
	}
	if stats.PagesWithWarnings > 0 {
		parts = append(parts, s.Warning.Render(plural(stats.PagesWithWarnings, "page", "pages")+" with warnings"))
	}
	if stats.IssuesTotal > 0 {
		parts = append(parts, s.Info.Render(plural(stats.IssuesTotal, "verification issue", "verification issues")))
	}
	if stats.AssetsCopied > 0 {
		parts = append(parts, plural(stats.AssetsCopied, "asset", "assets")+" copied")
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value int, style func(...string) string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", style(strconv.Itoa(value))))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Notes found", stats.NotesDiscovered, s.SummaryValue.Render)
	if stats.NotesSkipped > 0 {
		row("Entries skipped", stats.NotesSkipped, s.Dim.Render)
	}
	row("Pages converted", stats.PagesConverted, s.SummaryValue.Render)
	if stats.PagesWritten > 0 {
		row("Pages written", stats.PagesWritten, s.Success.Render)
	}
	if stats.PagesPending > 0 {
		row("Pages to change", stats.PagesPending, s.Warning.Render)
	}
	if stats.PagesUnchanged > 0 {
		row("Pages unchanged", stats.PagesUnchanged, s.Dim.Render)
	}
	if stats.BackupsCreated > 0 {
		row("Backups created", stats.BackupsCreated, s.SummaryValue.Render)
	}
	if stats.AssetsCopied > 0 {
		row("Assets copied", stats.AssetsCopied, s.SummaryValue.Render)
	}

	builder.WriteString("\n")

	if stats.PagesWithWarnings > 0 {
		row("Pages with warnings", stats.PagesWithWarnings, s.Warning.Render)
	}
	if stats.IssuesTotal > 0 {
		row("Verify issues", stats.IssuesTotal, s.Info.Render)
	}
	if stats.PagesErrored > 0 {
		row("Pages failed", stats.PagesErrored, s.Error.Render)
	}

	switch {
	case stats.PagesErrored > 0:
		builder.WriteString(s.Failure.Render("Conversion failed for some notes"))
	case stats.PagesWithWarnings > 0 || stats.IssuesTotal > 0:
		builder.WriteString(s.Warning.Render("Conversion completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Conversion complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
