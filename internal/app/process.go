package app

import (
	"fmt"
	"time"

	"github.com/itsjavi/tzshift/internal/fs"
	"github.com/itsjavi/tzshift/internal/garmin"
	"github.com/itsjavi/tzshift/internal/tz"
)

// ProcessOptions are the choices of one process run besides its inputs.
type ProcessOptions struct {
	City     string
	DST      bool
	Organize bool
}

// runState lives for one Process call.
type runState struct {
	detections []Detection
	dateRange  *garmin.Range
	media      []string
	tracks     []string
}

// Process runs the whole pipeline over dirs: detect, shift to UTC,
// optionally organize and download tracks, geotag, retime to the target
// city and rename. Detection and shift failures of one directory are put
// in the report and the run goes on; a failing batch stage ends the run.
func (a *App) Process(dirs []string, opts ProcessOptions) (Report, error) {
	var report Report
	var state runState

	city, err := tz.LookupCity(opts.City)
	if err != nil {
		return report, err
	}

	a.out.Header("Scanning input directories for images and GPX files...")
	state.detections = a.Detect(dirs)
	if !hasMedia(state.detections) {
		a.out.Line("No images found.")
		return report, nil
	}

	for _, d := range state.detections {
		if a.printDetection(d, &report) {
			a.toUTC(d, false, &report)
		}
	}

	if opts.Organize {
		a.out.Header("Organizing photos...")
		if err := a.Organize(dirs); err != nil {
			return report, err
		}

		if state.dateRange, err = a.captureRange(dirs); err != nil {
			return report, err
		}
		if state.dateRange != nil {
			a.out.Header("Detected date range: " + state.dateRange.String())
			for _, dir := range dirs {
				a.out.Header(fmt.Sprintf("Downloading GPX files to %q", dir))
				if _, err := a.garmin.Download(dir, *state.dateRange); err != nil {
					return report, err
				}
			}
		}
	}

	for _, dir := range dirs {
		files := fs.Scan(dir, a.cfg)
		state.media = append(state.media, files.Media...)
		state.tracks = append(state.tracks, files.Tracks...)
	}

	if len(state.media) == 0 {
		a.out.Line("No images found after organization, finishing.")
		return report, nil
	}

	switch {
	case len(state.tracks) > 0:
		if err := a.Geotag(state.tracks, state.media); err != nil {
			return report, err
		}
	case a.cfg.DryRun() && opts.Organize && state.dateRange != nil:
		a.out.DryRun("Would geotag images using downloaded GPX files.")
	default:
		a.out.Line("No GPX files found, skipping geotag.")
	}

	a.out.Header("Setting time and timezone to " + city.Name)
	if err := a.retime(state.media, city, opts.DST); err != nil {
		return report, err
	}

	return report, a.rename(state.media)
}

// captureRange is the inclusive span of capture dates under dirs, or nil
// when no file has one. In dry-run the files have not moved, so the dates
// read are the original ones.
func (a *App) captureRange(dirs []string) (*garmin.Range, error) {
	var first, last time.Time

	for _, dir := range dirs {
		dates, err := a.exiftool.CaptureDates(dir)
		if err != nil {
			return nil, err
		}
		for _, d := range dates {
			if first.IsZero() || d.Before(first) {
				first = d
			}
			if last.IsZero() || d.After(last) {
				last = d
			}
		}
	}

	if first.IsZero() {
		return nil, nil
	}
	return &garmin.Range{Start: first, End: last}, nil
}
