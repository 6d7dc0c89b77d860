package app

import (
	"github.com/itsjavi/tzshift/internal/exiftool"
	"github.com/itsjavi/tzshift/internal/fs"
	"github.com/itsjavi/tzshift/internal/tz"
)

// SetTime moves the media under paths from UTC to the city's offset and
// writes the city's timezone tags.
func (a *App) SetTime(paths []string, cityName string, dst bool) error {
	city, err := tz.LookupCity(cityName)
	if err != nil {
		return err
	}

	media, err := a.collectMedia(paths)
	if err != nil {
		return err
	}
	return a.retime(media, city, dst)
}

func (a *App) retime(media []string, city tz.City, dst bool) error {
	if len(media) == 0 {
		a.out.Line("No images found.")
		return nil
	}
	if err := a.exiftool.SetTime(media, city, dst); err != nil {
		return err
	}
	fs.CleanBackups(media, exiftool.BackupSuffix, a.cfg.DryRun())
	return nil
}
