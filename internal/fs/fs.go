package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ztrue/tracerr"

	"github.com/itsjavi/tzshift/internal/config"
	"github.com/itsjavi/tzshift/internal/errs"
)

const (
	DirPerms  = 0755
	FilePerms = 0644
)

func PathExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

func IsDir(dir string) bool {
	dirStat, err := os.Stat(dir)
	if err != nil {
		return false
	}
	return dirStat.IsDir()
}

func MakeDirIfNotExists(dir string) error {
	if PathExists(dir) {
		return nil
	}
	if err := os.MkdirAll(dir, DirPerms); err != nil {
		return errs.Wrap(errs.NotFound, err, "cannot create %q", dir)
	}
	return nil
}

// ResolveFiles turns user supplied paths into absolute, symlink-free paths.
// A missing path is always an error, dry-run or not.
func ResolveFiles(paths []string) ([]string, error) {
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		if !PathExists(p) {
			return nil, errs.New(errs.NotFound, "file not found: %q", p)
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errs.Wrap(errs.NotFound, err, "failed to resolve %q", p)
		}
		canonical, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return nil, errs.Wrap(errs.NotFound, err, "failed to resolve %q", p)
		}
		resolved = append(resolved, canonical)
	}
	return resolved, nil
}

// BackupPath is where exiftool keeps the original of a rewritten file.
func BackupPath(path string, suffix string) string {
	return path + suffix
}

// CleanBackups deletes the backup siblings exiftool may have left behind.
// Nothing is touched in dry-run.
func CleanBackups(files []string, suffix string, dryRun bool) {
	if dryRun {
		return
	}
	for _, f := range files {
		backup := BackupPath(f, suffix)
		if PathExists(backup) {
			_ = os.Remove(backup)
		}
	}
}

// RemoveEmptyDirs prunes directories under dir that are empty, children
// before parents. dir itself is kept. In dry-run nothing is removed, so a
// parent only counts as empty if it already was. Returns the (would-be)
// removed directories in removal order.
func RemoveEmptyDirs(dir string, dryRun bool) ([]string, error) {
	var removed []string
	if !IsDir(dir) {
		return removed, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return removed, errs.Wrap(errs.NotFound, err, "cannot read %q", dir)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())

		children, err := RemoveEmptyDirs(sub, dryRun)
		removed = append(removed, children...)
		if err != nil {
			return removed, err
		}

		left, err := os.ReadDir(sub)
		if err != nil {
			return removed, errs.Wrap(errs.NotFound, err, "cannot read %q", sub)
		}
		if len(left) > 0 {
			continue
		}

		if !dryRun {
			if err := os.Remove(sub); err != nil {
				return removed, tracerr.Wrap(err)
			}
		}
		removed = append(removed, sub)
	}
	return removed, nil
}

// FixExtensions renames media whose extension is a configured suffix in the
// wrong case to the lowercase form. On failure the path that exists is kept.
// In dry-run the rename is assumed to succeed.
func FixExtensions(files []string, cfg config.AppConfig, logger zerolog.Logger) []string {
	fixed := make([]string, 0, len(files))

	for _, path := range files {
		ext := filepath.Ext(path)
		lower := strings.ToLower(ext)

		if ext == lower || !cfg.IsMedia(lower) {
			fixed = append(fixed, path)
			continue
		}

		target := strings.TrimSuffix(path, ext) + lower
		if cfg.DryRun() {
			fixed = append(fixed, target)
			continue
		}

		if err := os.Rename(path, target); err != nil {
			logger.Error().Err(err).Str("path", path).Msg("failed to rename")
			if PathExists(target) {
				fixed = append(fixed, target)
			} else {
				fixed = append(fixed, path)
			}
			continue
		}
		fixed = append(fixed, target)
	}
	return fixed
}

// Chmod sets mode on every file. Nothing is touched in dry-run.
func Chmod(files []string, mode os.FileMode, dryRun bool) error {
	if dryRun {
		return nil
	}
	for _, f := range files {
		if err := os.Chmod(f, mode); err != nil {
			return tracerr.Wrap(err)
		}
	}
	return nil
}
