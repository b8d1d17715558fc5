// Package vault lists the notes of a flat note vault and answers the
// collection-level questions a conversion needs before it starts: output
// names, frontmatter titles and duplicate titles.
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Sentinel errors.
var (
	ErrNotDirectory    = errors.New("vault is not a directory")
	ErrDuplicateTitles = errors.New("duplicate titles")
	ErrInvalidPattern  = errors.New("invalid ignore pattern")
)

const (
	// AssetsDir is the vault directory copied verbatim next to the pages.
	AssetsDir = "assets"

	// NoteExt is the extension of note files.
	NoteExt = ".md"

	configExt = ".yml"
)

// SkipReason says why a vault entry is not converted.
type SkipReason string

const (
	SkipHidden    SkipReason = "hidden"
	SkipConfig    SkipReason = "config"
	SkipIgnored   SkipReason = "ignored"
	SkipUnhandled SkipReason = "unhandled"
)

// Note is a note file in the vault.
type Note struct {
	// Name is the file name, e.g. "a.b.c.md".
	Name string
	// Path is the absolute path.
	Path string
}

// Skipped is a vault entry that is not converted.
type Skipped struct {
	Name   string
	Reason SkipReason
}

// Vault is the result of a scan.
type Vault struct {
	Root    string
	Notes   []Note
	Skipped []Skipped

	// Assets is the absolute path of the assets directory, empty when the
	// vault has none.
	Assets string
}

// ScanOptions controls Scan.
type ScanOptions struct {
	// Ignore holds doublestar patterns matched against note names.
	Ignore []string
}

// Scan lists the top level of the vault at root. Hidden entries and .yml
// files are skipped, the assets directory is remembered, .md files are
// notes and everything else is reported as unhandled. Results are sorted
// by name.
func Scan(ctx context.Context, root string, opts ScanOptions) (*Vault, error) {
	if err := ValidatePatterns(opts.Ignore); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve vault path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat vault %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read vault %s: %w", root, err)
	}

	v := &Vault{Root: abs}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scan cancelled: %w", err)
		}

		name := entry.Name()
		path := filepath.Join(abs, name)

		switch {
		case strings.HasPrefix(name, "."):
			v.skip(name, SkipHidden)
		case filepath.Ext(name) == configExt:
			v.skip(name, SkipConfig)
		case name == AssetsDir && isDir(entry, path):
			v.Assets = path
		case filepath.Ext(name) == NoteExt && !isDir(entry, path):
			if matchesAny(name, opts.Ignore) {
				v.skip(name, SkipIgnored)
				continue
			}
			v.Notes = append(v.Notes, Note{Name: name, Path: path})
		default:
			v.skip(name, SkipUnhandled)
		}
	}

	sort.Slice(v.Notes, func(i, j int) bool { return v.Notes[i].Name < v.Notes[j].Name })
	return v, nil
}

func (v *Vault) skip(name string, reason SkipReason) {
	v.Skipped = append(v.Skipped, Skipped{Name: name, Reason: reason})
}

// isDir follows symlinks, which DirEntry does not.
func isDir(entry os.DirEntry, path string) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// OutputName maps a note file name to its page file name: every dot in the
// stem becomes separator, so "a.b.c.md" becomes "a___b___c.md".
func OutputName(name, separator string) string {
	stem := strings.TrimSuffix(name, NoteExt)
	return strings.ReplaceAll(stem, ".", separator) + NoteExt
}

// ValidatePatterns checks that every ignore pattern is well formed.
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
	}
	return nil
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
