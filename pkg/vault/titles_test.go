package vault_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdoutline/pkg/vault"
)

func TestParseTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain", "---\nid: 1\ntitle: My Note\n---\nbody\n", "My Note"},
		{"quoted", "---\ntitle: \"Quoted: yes\"\n---\n", "Quoted: yes"},
		{"number", "---\ntitle: 2023\n---\n", "2023"},
		{"no title", "---\nid: 1\n---\n", ""},
		{"no frontmatter", "# title: not this\n", ""},
		{"invalid yaml falls back to the raw line", "---\ntitle: a: b\n---\n", "a: b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, vault.ParseTitle([]byte(tt.content)))
		})
	}
}

func TestTitleOf_Missing(t *testing.T) {
	t.Parallel()

	_, err := vault.TitleOf(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
}

func TestDuplicateTitles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	notes := []vault.Note{
		{Name: "b.md", Path: writeFile(t, dir, "b.md", "---\ntitle: Shared\n---\n")},
		{Name: "a.md", Path: writeFile(t, dir, "a.md", "---\ntitle: Shared\n---\n")},
		{Name: "c.md", Path: writeFile(t, dir, "c.md", "---\ntitle: Unique\n---\n")},
		{Name: "d.md", Path: writeFile(t, dir, "d.md", "no frontmatter\n")},
		{Name: "e.md", Path: writeFile(t, dir, "e.md", "no frontmatter either\n")},
	}

	dups, err := vault.DuplicateTitles(context.Background(), notes)
	require.NoError(t, err)

	assert.Equal(t, vault.Duplicates{"Shared": {"a.md", "b.md"}}, dups)
	assert.Equal(t, []string{"Shared"}, dups.Titles())
}
