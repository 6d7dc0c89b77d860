// Package garmin fetches activity tracks through the garmin command line
// client, names them and merges them for geotagging.
package garmin

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/itsjavi/tzshift/internal/config"
	"github.com/itsjavi/tzshift/internal/errs"
	"github.com/itsjavi/tzshift/internal/fs"
	"github.com/itsjavi/tzshift/internal/gpx"
	"github.com/itsjavi/tzshift/internal/runner"
)

const (
	PageSize    = 100
	DefaultDays = 20
	DateLayout  = "2006-01-02"

	loggedIn       = "Status: Logged in"
	notLoggedInMsg = "You are not logged in to Garmin. Please run 'garmin auth login' first."
)

// Range is an inclusive span of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) String() string {
	return r.Start.Format(DateLayout) + " to " + r.End.Format(DateLayout)
}

func (r Range) Contains(day time.Time) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}

// ParseRange reads YYYY-MM-DD bounds. An empty end means the day of now,
// an empty start means DefaultDays before end.
func ParseRange(start, end string, now time.Time) (Range, error) {
	var r Range

	if end == "" {
		y, m, d := now.Date()
		r.End = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	} else {
		t, err := time.Parse(DateLayout, end)
		if err != nil {
			return r, errs.Wrap(errs.InvalidFormat, err, "invalid end date %q", end)
		}
		r.End = t
	}

	if start == "" {
		r.Start = r.End.AddDate(0, 0, -DefaultDays)
	} else {
		t, err := time.Parse(DateLayout, start)
		if err != nil {
			return r, errs.Wrap(errs.InvalidFormat, err, "invalid start date %q", start)
		}
		r.Start = t
	}
	return r, nil
}

type Activity struct {
	ID   string
	Date time.Time
}

// ParsePage reads one page of "garmin activities list". It returns the
// activities with a readable date and the number of data rows seen,
// readable or not.
func ParsePage(output string) ([]Activity, int) {
	var activities []Activity
	rows := 0

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "ID") || strings.HasPrefix(line, "-") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		rows++

		day, err := time.Parse(DateLayout, fields[1])
		if err != nil {
			continue
		}
		activities = append(activities, Activity{ID: fields[0], Date: day})
	}
	return activities, rows
}

type Downloader struct {
	tool *runner.Tool
	cfg  config.AppConfig
	out  runner.Console
}

func New(tool *runner.Tool, cfg config.AppConfig, out runner.Console) *Downloader {
	return &Downloader{tool: tool, cfg: cfg, out: out}
}

// Download fetches every activity in r into dest, names the tracks and
// merges everything under dest. It returns the merged track path, or ""
// when dest holds no track.
func (d *Downloader) Download(dest string, r Range) (string, error) {
	dryRun := d.tool.DryRun()
	d.out.Header("Downloading activities from " + r.String())

	status, err := d.tool.Query([]string{"auth", "status"})
	if err != nil {
		return "", err
	}
	if !strings.Contains(status, loggedIn) {
		if !dryRun {
			return "", errs.New(errs.ExternalToolFailure, notLoggedInMsg)
		}
		d.out.Warn(notLoggedInMsg)
	}

	if !dryRun {
		if err := fs.MakeDirIfNotExists(dest); err != nil {
			return "", err
		}
	}

	for offset := 0; ; offset += PageSize {
		out, err := d.tool.Query([]string{"activities", "list", "--limit", strconv.Itoa(PageSize), "--start", strconv.Itoa(offset)})
		if err != nil {
			return "", err
		}

		activities, rows := ParsePage(out)
		allOlder := true

		for _, a := range activities {
			if a.Date.Before(r.Start) {
				continue
			}
			allOlder = false
			if !r.Contains(a.Date) {
				continue
			}
			if err := d.fetch(dest, a); err != nil {
				return "", err
			}
		}

		if rows == 0 || allOlder {
			break
		}
	}

	tracks := fs.Scan(dest, d.cfg).Tracks
	if len(tracks) == 0 {
		return "", nil
	}
	return gpx.Merge(tracks, dest, dryRun, d.out)
}

func (d *Downloader) fetch(dest string, a Activity) error {
	dryRun := d.tool.DryRun()
	suffix := ""
	if dryRun {
		suffix = " (DRY-RUN)"
	}

	path := filepath.Join(dest, a.ID+gpx.Extension)

	if fs.PathExists(path) {
		d.out.Line(fmt.Sprintf("Activity %s already downloaded, checking name...%s", a.ID, suffix))
		_, err := gpx.Ensure(path, dryRun, d.out)
		return err
	}

	d.out.Line(fmt.Sprintf("Downloading activity %s (%s)...%s", a.ID, a.Date.Format(DateLayout), suffix))
	if err := d.tool.Mutate([]string{"activities", "download", "-t", "gpx", "-o", path}, []string{a.ID}); err != nil {
		return err
	}

	_, err := gpx.Ensure(path, dryRun, d.out)
	return err
}
