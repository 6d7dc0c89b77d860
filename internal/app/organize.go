package app

import (
	"fmt"
	"path/filepath"

	"github.com/itsjavi/tzshift/internal/errs"
	"github.com/itsjavi/tzshift/internal/fs"
)

// Organize moves the media of every directory into YYYY-MM-DD
// subdirectories by capture date, one exiftool call per directory, then
// prunes the directories the move left empty.
func (a *App) Organize(dirs []string) error {
	for _, dir := range dirs {
		if !fs.IsDir(dir) {
			return errs.New(errs.NotFound, "directory does not exist: %q", dir)
		}

		media := fs.Scan(dir, a.cfg).Media
		if len(media) == 0 {
			a.out.Line(fmt.Sprintf("No images found in %q", dir))
			continue
		}

		abs, err := filepath.Abs(dir)
		if err == nil {
			abs, err = filepath.EvalSymlinks(abs)
		}
		if err != nil {
			return errs.Wrap(errs.NotFound, err, "cannot resolve %q", dir)
		}

		if err := a.exiftool.Organize(abs, media); err != nil {
			return err
		}

		removed, err := fs.RemoveEmptyDirs(dir, a.cfg.DryRun())
		for _, r := range removed {
			line := fmt.Sprintf("Removing empty directory: %q", r)
			if a.cfg.DryRun() {
				a.out.DryRun(line)
			} else {
				a.out.Line(line)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}
