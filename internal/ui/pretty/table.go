package pretty

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdoutline/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minNoteWidth     = 12
	minStateWidth    = 9
	blocksWidth      = 6
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TableFormatter formats page outcomes as a styled table with the columns
// NOTE, PAGE, STATE and BLOCKS.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

type pageRow struct {
	note   string
	page   string
	state  string
	blocks string
	style  lipgloss.Style
}

// FormatTable formats the pages of a run.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Pages) == 0 {
		return ""
	}

	rows := make([]pageRow, 0, len(result.Pages))
	for _, outcome := range result.Pages {
		rows = append(rows, t.row(outcome))
	}

	noteWidth, pageWidth, stateWidth := minNoteWidth, minNoteWidth, minStateWidth
	for _, row := range rows {
		noteWidth = max(noteWidth, lipgloss.Width(row.note))
		pageWidth = max(pageWidth, lipgloss.Width(row.page))
		stateWidth = max(stateWidth, lipgloss.Width(row.state))
	}

	// Shrink the name columns to fit the terminal.
	fixed := stateWidth + blocksWidth + 3*tablePadding
	if over := noteWidth + pageWidth + fixed - t.termWidth; over > 0 {
		cut := (over + 1) / 2
		noteWidth = max(minNoteWidth, noteWidth-cut)
		pageWidth = max(minNoteWidth, pageWidth-cut)
	}

	total := noteWidth + pageWidth + fixed
	separator := t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total))

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(
		t.cells("NOTE", "PAGE", "STATE", "BLOCKS", noteWidth, pageWidth, stateWidth)))
	builder.WriteString("\n" + separator + "\n")

	for _, row := range rows {
		line := t.cells(truncate(row.note, noteWidth), truncate(row.page, pageWidth),
			row.state, row.blocks, noteWidth, pageWidth, stateWidth)
		builder.WriteString(row.style.Render(line) + "\n")
	}

	builder.WriteString(separator + "\n")
	return builder.String()
}

func (t *TableFormatter) row(outcome runner.PageOutcome) pageRow {
	if outcome.Error != nil || outcome.Result == nil {
		return pageRow{note: outcome.Name, state: "error", style: t.styles.Error}
	}

	res := outcome.Result
	style := t.styles.SummaryValue
	switch {
	case len(res.Issues) > 0:
		style = t.styles.Info
	case len(res.Warnings) > 0:
		style = t.styles.Warning
	case res.Unchanged:
		style = t.styles.Dim
	}

	page := res.OutputPath
	if idx := strings.LastIndexAny(page, `/\`); idx >= 0 {
		page = page[idx+1:]
	}

	return pageRow{
		note:   res.Note.Name,
		page:   page,
		state:  res.Summary(),
		blocks: strconv.Itoa(res.Blocks),
		style:  style,
	}
}

func (t *TableFormatter) cells(note, page, state, blocks string, noteWidth, pageWidth, stateWidth int) string {
	gap := strings.Repeat(" ", tablePadding)
	return pad(note, noteWidth) + gap + pad(page, pageWidth) + gap +
		pad(state, stateWidth) + gap + strings.Repeat(" ", max(0, blocksWidth-len(blocks))) + blocks
}

func pad(str string, width int) string {
	if w := lipgloss.Width(str); w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// truncate shortens str to width cells, keeping the tail, since note names
// differ most at their last hierarchy levels.
func truncate(str string, width int) string {
	runes := []rune(str)
	if len(runes) <= width {
		return str
	}
	if width <= 3 {
		return string(runes[len(runes)-width:])
	}
	return "..." + string(runes[len(runes)-width+3:])
}
