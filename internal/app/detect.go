package app

import (
	"fmt"

	"github.com/itsjavi/tzshift/internal/errs"
	"github.com/itsjavi/tzshift/internal/fs"
	"github.com/itsjavi/tzshift/internal/tz"
)

// Detect probes every path for the offset its camera clock was set to.
// Results follow the order of paths; a path that does not exist is left
// out with a warning. The first media file in natural order stands for
// the whole path.
func (a *App) Detect(paths []string) []Detection {
	detections := make([]Detection, 0, len(paths))

	for _, path := range paths {
		if !fs.PathExists(path) {
			a.logger.Warn().Str("path", path).Msg("path does not exist, skipping")
			continue
		}

		d := Detection{Path: path, IsDir: fs.IsDir(path), Media: fs.Scan(path, a.cfg).Media}
		if len(d.Media) == 0 {
			d.Err = errs.New(errs.NoImages, "No images")
			detections = append(detections, d)
			continue
		}

		reading, err := a.exiftool.ReadOffset(d.Media[0])
		d.Offset, d.DST, d.Err = reading.Offset, reading.DST, err
		detections = append(detections, d)
	}
	return detections
}

func hasMedia(detections []Detection) bool {
	for _, d := range detections {
		if len(d.Media) > 0 {
			return true
		}
	}
	return false
}

// printDetection shows one result; failures go to the diagnostics log and
// into the report.
func (a *App) printDetection(d Detection, report *Report) bool {
	if !d.OK() {
		a.logger.Error().Err(d.Err).Str(d.Label(), d.Path).Msg("Failed to detect offset")
		report.Add("detect", d.Path, d.Err)
		return false
	}
	a.out.Line(fmt.Sprintf("%s: %q, Detected Offset: %s, DST found: %s", d.Label(), d.Path, d.Offset, yesNo(d.DST)))
	return true
}

// DetectTimezone prints the detected offset of every path. With gpsHint
// the zone at the probed file's GPS position is shown next to it.
func (a *App) DetectTimezone(paths []string, gpsHint bool) (Report, error) {
	var report Report

	detections := a.Detect(paths)
	if !hasMedia(detections) {
		a.out.Line("No images found.")
		return report, nil
	}

	for _, d := range detections {
		if !a.printDetection(d, &report) || !gpsHint {
			continue
		}

		position, captureTime, err := a.exiftool.Position(d.Media[0])
		if err == nil {
			var hint tz.ZoneHint
			if hint, err = tz.HintFromPosition(position, captureTime); err == nil {
				a.out.Line(fmt.Sprintf("  -> GPS zone: %s, Offset: %s", hint.Zone, hint.Offset))
				if hint.Offset != d.Offset {
					a.logger.Warn().Str("path", d.Path).Str("detected", d.Offset).Str("gps", hint.Offset).Msg("camera offset differs from GPS zone")
				}
				continue
			}
		}
		a.logger.Debug().Err(err).Str("file", d.Media[0]).Msg("no GPS zone hint")
	}
	return report, nil
}
