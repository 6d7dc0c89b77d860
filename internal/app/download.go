package app

import (
	"github.com/itsjavi/tzshift/internal/garmin"
)

// DownloadGPX fetches the activities between start and end (YYYY-MM-DD,
// both optional) into dest and merges them.
func (a *App) DownloadGPX(dest, start, end string) error {
	r, err := garmin.ParseRange(start, end, a.Now())
	if err != nil {
		return err
	}
	_, err = a.garmin.Download(dest, r)
	return err
}
