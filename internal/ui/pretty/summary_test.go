package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdoutline/internal/ui/pretty"
	"github.com/yaklabco/mdoutline/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		NotesDiscovered: 10,
		NotesSkipped:    2,
		PagesConverted:  10,
		PagesWritten:    7,
		PagesUnchanged:  3,
		AssetsCopied:    4,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Notes found:")
	assert.Contains(t, result, "Entries skipped:")
	assert.Contains(t, result, "Pages written:")
	assert.Contains(t, result, "7")
	assert.Contains(t, result, "Pages unchanged:")
	assert.Contains(t, result, "Assets copied:")
	assert.Contains(t, result, "Conversion complete")
	assert.NotContains(t, result, "Pages failed:")
}

func TestFormatSummary_Status(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{"errors", runner.Stats{NotesDiscovered: 2, PagesConverted: 1, PagesErrored: 1}, "Conversion failed for some notes"},
		{"warnings", runner.Stats{NotesDiscovered: 1, PagesConverted: 1, PagesWithWarnings: 1}, "Conversion completed with warnings"},
		{"issues", runner.Stats{NotesDiscovered: 1, PagesConverted: 1, IssuesTotal: 2}, "Conversion completed with warnings"},
		{"clean", runner.Stats{NotesDiscovered: 1, PagesConverted: 1, PagesWritten: 1}, "Conversion complete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, styles.FormatSummary(tt.stats), tt.want)
		})
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		stats  runner.Stats
		dryRun bool
		want   string
	}{
		{
			name: "empty vault",
			want: "No notes found\n",
		},
		{
			name: "written",
			stats: runner.Stats{
				NotesDiscovered: 3,
				PagesConverted:  3,
				PagesWritten:    2,
				PagesUnchanged:  1,
				AssetsCopied:    1,
			},
			want: "3 pages converted (2 written, 1 unchanged), 1 asset copied\n",
		},
		{
			name: "dry run",
			stats: runner.Stats{
				NotesDiscovered: 1,
				PagesConverted:  1,
				PagesPending:    1,
			},
			dryRun: true,
			want:   "1 page converted (dry run) (1 would change)\n",
		},
		{
			name: "problems",
			stats: runner.Stats{
				NotesDiscovered:   3,
				PagesConverted:    2,
				PagesWritten:      2,
				PagesErrored:      1,
				PagesWithWarnings: 1,
				IssuesTotal:       2,
			},
			want: "2 pages converted (2 written), 1 failed, 1 page with warnings, 2 verification issues\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats, tt.dryRun))
		})
	}
}
