package fsutil

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyTree copies the directory tree at src into dst, creating directories
// as needed and overwriting files that already exist. Symlinks are copied
// as the files they point to. It returns the number of files copied.
func CopyTree(ctx context.Context, src, dst string) (int, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, classify("stat", src, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%w: %s", ErrNotDirectory, src)
	}

	copied := 0
	err = filepath.WalkDir(src, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("relative path: %w", err)
		}
		target := filepath.Join(dst, rel)

		if entry.IsDir() {
			return EnsureDir(target)
		}

		content, fi, err := ReadFile(ctx, path)
		if err != nil {
			return err
		}
		if err := WriteAtomic(ctx, target, content, fi.Mode.Perm()); err != nil {
			return fmt.Errorf("copy %s: %w", rel, err)
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("copy tree %s: %w", src, err)
	}
	return copied, nil
}
