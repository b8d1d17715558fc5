package vault

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/yaklabco/mdoutline/pkg/outline"
)

type titleEnvelope struct {
	Title any `yaml:"title"`
}

// TitleOf returns the frontmatter title of the note at path, or "" when the
// note has none.
func TitleOf(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return ParseTitle(content), nil
}

// ParseTitle extracts the frontmatter title from a note. Frontmatter that is
// not valid YAML falls back to the raw "title:" line, which is what the
// converter reads as well.
func ParseTitle(content []byte) string {
	var meta titleEnvelope
	if _, err := frontmatter.Parse(bytes.NewReader(content), &meta); err != nil {
		return scanTitle(content)
	}

	switch title := meta.Title.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(title)
	default:
		return strings.TrimSpace(fmt.Sprint(title))
	}
}

// scanTitle reads the title line of a "---" delimited block without YAML.
func scanTitle(content []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if first {
			if strings.TrimRight(line, " \t") != "---" {
				return ""
			}
			first = false
			continue
		}
		if strings.TrimRight(line, " \t") == "---" {
			return ""
		}
		if value, ok := strings.CutPrefix(line, "title:"); ok {
			return outline.Unquote(strings.TrimSpace(value))
		}
	}
	return ""
}

// Duplicates maps a title to the sorted names of the notes that share it.
type Duplicates map[string][]string

// Titles returns the duplicated titles in sorted order.
func (d Duplicates) Titles() []string {
	titles := make([]string, 0, len(d))
	for title := range d {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

// DuplicateTitles reports titles used by more than one note. Notes without
// a title are not considered.
func DuplicateTitles(ctx context.Context, notes []Note) (Duplicates, error) {
	byTitle := make(map[string][]string)

	for _, note := range notes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("title scan cancelled: %w", err)
		}

		title, err := TitleOf(note.Path)
		if err != nil {
			return nil, err
		}
		if title != "" {
			byTitle[title] = append(byTitle[title], note.Name)
		}
	}

	dups := make(Duplicates)
	for title, names := range byTitle {
		if len(names) > 1 {
			sort.Strings(names)
			dups[title] = names
		}
	}
	return dups, nil
}
