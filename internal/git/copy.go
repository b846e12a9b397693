package git

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/tsfile-website/internal/foundation/errors"
)

// clearWorktree removes every entry of dir except the .git directory.
func clearWorktree(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.FileSystemError("failed to list workspace").WithCause(err).WithContext("path", dir).Build()
	}
	for _, e := range entries {
		if e.Name() == ".git" {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return errors.FileSystemError("failed to clear workspace").WithCause(err).WithContext("path", e.Name()).Build()
		}
	}
	return nil
}

// copyTree copies src into dst and returns the number of files copied. Entries whose
// name starts with a dot are skipped unless dotfiles is set; .git is always skipped.
func copyTree(src, dst string, dotfiles bool) (int, error) {
	count := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		name := d.Name()
		if name == ".git" || (!dotfiles && strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		target := filepath.Join(dst, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case d.IsDir():
			return os.MkdirAll(target, 0o755)
		case info.Mode()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			count++
			return os.Symlink(link, target)
		case info.Mode().IsRegular():
			count++
			return copyFile(path, target, info.Mode().Perm())
		default:
			return nil
		}
	})
	if err != nil {
		return count, errors.FileSystemError("failed to copy site").WithCause(err).WithContext("path", src).Build()
	}
	return count, nil
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
