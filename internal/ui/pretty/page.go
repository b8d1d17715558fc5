package pretty

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdoutline/pkg/runner"
	"github.com/yaklabco/mdoutline/pkg/vault"
)

// FormatPage formats one page outcome as a status line followed by its
// warnings and verification issues.
func (s *Styles) FormatPage(outcome runner.PageOutcome) string {
	var builder strings.Builder

	if outcome.Error != nil {
		builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			s.PagePath.Render(outcome.Name),
			s.Error.Render("error"),
			outcome.Error.Error(),
		))
		return builder.String()
	}

	res := outcome.Result
	if res == nil {
		return ""
	}

	page := filepath.Base(res.OutputPath)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		s.PagePath.Render(page),
		s.State.Render(res.Summary()),
		s.Dim.Render(fmt.Sprintf("(%s, %s)", res.Note.Name, plural(res.Blocks, "block", "blocks"))),
	))

	for _, warning := range res.Warnings {
		builder.WriteString("    " + s.Warning.Render("warning") + "  " + warning + "\n")
	}
	for _, issue := range res.Issues {
		builder.WriteString("    " + s.Info.Render("verify") + "  " + issue.String() + "\n")
	}

	return builder.String()
}

// FormatDiff colors a unified diff line by line.
func (s *Styles) FormatDiff(unified []byte) string {
	if len(unified) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, line := range strings.SplitAfter(string(unified), "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			builder.WriteString(s.DiffHeader.Render(text))
		case strings.HasPrefix(text, "@@"):
			builder.WriteString(s.DiffHunk.Render(text))
		case strings.HasPrefix(text, "+"):
			builder.WriteString(s.DiffAdd.Render(text))
		case strings.HasPrefix(text, "-"):
			builder.WriteString(s.DiffRemove.Render(text))
		default:
			builder.WriteString(s.DiffContext.Render(text))
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

// FormatDuplicates lists titles shared by several notes, one title per block.
func (s *Styles) FormatDuplicates(dups vault.Duplicates) string {
	if len(dups) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(s.Failure.Render(fmt.Sprintf("%s used by more than one note:",
		plural(len(dups), "title", "titles"))))
	builder.WriteString("\n")

	for _, title := range dups.Titles() {
		builder.WriteString("  " + s.Bold.Render(fmt.Sprintf("%q", title)) + "\n")
		for _, name := range dups[title] {
			builder.WriteString("    " + s.NoteName.Render(name) + "\n")
		}
	}
	return builder.String()
}

// FormatSkipped lists vault entries that are not converted, with the reason.
func (s *Styles) FormatSkipped(skipped []vault.Skipped) string {
	var builder strings.Builder
	for _, entry := range skipped {
		builder.WriteString(fmt.Sprintf("  %s  %s\n",
			s.NoteName.Render(entry.Name),
			s.Dim.Render(string(entry.Reason)),
		))
	}
	return builder.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
