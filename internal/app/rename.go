package app

import (
	"fmt"

	"github.com/itsjavi/tzshift/internal/exiftool"
	"github.com/itsjavi/tzshift/internal/fs"
	"github.com/itsjavi/tzshift/internal/runner"
)

// Rename gives the media under paths lowercase extensions and 0644
// permissions, then names them after their capture date and time.
func (a *App) Rename(paths []string) error {
	media, err := a.collectMedia(paths)
	if err != nil {
		return err
	}
	return a.rename(media)
}

func (a *App) rename(media []string) error {
	if len(media) == 0 {
		a.out.Line("No images found.")
		return nil
	}

	dryRun := a.cfg.DryRun()
	media = fs.FixExtensions(media, a.cfg, a.logger)

	chmod := runner.CommandLine("chmod", []string{fmt.Sprintf("%04o", fs.FilePerms)}, media)
	if dryRun {
		a.out.DryRun(chmod)
	} else {
		a.out.Command(chmod)
	}
	if err := fs.Chmod(media, fs.FilePerms, dryRun); err != nil {
		return err
	}

	if err := a.exiftool.Rename(media); err != nil {
		return err
	}

	fs.CleanBackups(media, exiftool.BackupSuffix, dryRun)
	return nil
}
