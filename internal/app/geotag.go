package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/itsjavi/tzshift/internal/errs"
	"github.com/itsjavi/tzshift/internal/exiftool"
	"github.com/itsjavi/tzshift/internal/fs"
	"github.com/itsjavi/tzshift/internal/gpx"
)

// Geotag correlates the media under paths with the given tracks. Media
// are handled per parent directory; with several tracks they are merged
// into that directory first and the merge is removed afterwards.
func (a *App) Geotag(tracks []string, paths []string) error {
	if len(tracks) == 0 {
		return errs.New(errs.NotFound, "no GPS files provided")
	}

	media, err := a.collectMedia(paths)
	if err != nil {
		return err
	}
	tracks, err = fs.ResolveFiles(tracks)
	if err != nil {
		return err
	}

	dryRun := a.cfg.DryRun()
	named := make([]string, 0, len(tracks))
	for _, t := range tracks {
		path, err := gpx.Ensure(t, dryRun, a.out)
		if err != nil {
			return err
		}
		named = append(named, path)
	}

	groups := make(map[string][]string)
	var dirs []string
	for _, m := range media {
		dir := filepath.Dir(m)
		if _, ok := groups[dir]; !ok {
			dirs = append(dirs, dir)
		}
		groups[dir] = append(groups[dir], m)
	}
	fs.SortPaths(dirs)

	for _, dir := range dirs {
		a.out.Line(fmt.Sprintf("  -> Processing directory: %q", dir))

		track := named[0]
		if len(named) > 1 {
			if track, err = gpx.Merge(named, dir, dryRun, a.out); err != nil {
				return err
			}
		}

		args := []string{"-g", track, "-z", GeotagZone, "-d", dir, "--time-range", strconv.FormatUint(a.cfg.TimeRange(), 10)}
		if err := a.gpicsync.Mutate(args, nil); err != nil {
			return err
		}

		if len(named) > 1 && !dryRun && fs.PathExists(track) {
			if err := os.Remove(track); err != nil {
				a.logger.Error().Err(err).Str("track", track).Msg("failed to remove temporary track")
			}
		}
	}

	fs.CleanBackups(media, exiftool.BackupSuffix, dryRun)
	return nil
}
