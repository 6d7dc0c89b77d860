package app

import (
	"fmt"
	"strings"

	"github.com/itsjavi/tzshift/internal/exiftool"
	"github.com/itsjavi/tzshift/internal/fs"
	"github.com/itsjavi/tzshift/internal/tz"
)

// Shift moves the capture dates of files by a signed "HH:MM" amount in a
// single exiftool call, optionally clearing the timezone tags. Backups are
// removed after a real run.
func (a *App) Shift(files []string, by string, resetTimezone bool) error {
	if err := a.exiftool.Shift(files, by, resetTimezone); err != nil {
		return err
	}
	fs.CleanBackups(files, exiftool.BackupSuffix, a.cfg.DryRun())
	return nil
}

// ShiftPaths is the shift command: every media file under paths is moved
// by the same amount.
func (a *App) ShiftPaths(by string, resetTimezone bool, paths []string) error {
	if _, err := exiftool.AllDatesArg(by); err != nil {
		return err
	}

	media, err := a.collectMedia(paths)
	if err != nil {
		return err
	}
	if len(media) == 0 {
		a.out.Line("No images found.")
		return nil
	}
	return a.Shift(media, by, resetTimezone)
}

// toUTC shifts the media of one detection by its inverted offset.
func (a *App) toUTC(d Detection, resetTimezone bool, report *Report) {
	if _, err := tz.ParseOffset(d.Offset); err != nil {
		a.logger.Error().Err(err).Str("offset", d.Offset).Msg("invalid offset format, skipping shift")
		report.Add("shift", d.Path, err)
		return
	}

	// seconds, if the camera wrote any, are dropped
	sign, rest := tz.Split(d.Offset)
	hm := strings.SplitN(rest, ":", 3)
	by := tz.Invert(sign + hm[0] + ":" + hm[1])
	a.out.Line(fmt.Sprintf("  -> Shifting to UTC by %s", by))

	if err := a.Shift(d.Media, by, resetTimezone); err != nil {
		a.logger.Error().Err(err).Str(d.Label(), d.Path).Msg("failed to shift to UTC")
		report.Add("shift", d.Path, err)
	}
}

// ShiftToUTC detects the offset of each path and moves its media to UTC,
// clearing the timezone tags. A failing path does not stop the others.
func (a *App) ShiftToUTC(paths []string) (Report, error) {
	var report Report

	detections := a.Detect(paths)
	if !hasMedia(detections) {
		a.out.Line("No images found.")
		return report, nil
	}

	for _, d := range detections {
		if a.printDetection(d, &report) {
			a.toUTC(d, true, &report)
		}
	}
	return report, nil
}
