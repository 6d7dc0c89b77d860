package exiftool

import (
	"fmt"
	"strings"
	"time"

	"github.com/itsjavi/tzshift/internal/errs"
	"github.com/itsjavi/tzshift/internal/runner"
	"github.com/itsjavi/tzshift/internal/tz"
)

const (
	// BackupSuffix is appended to a file name by exiftool when it keeps the
	// original next to a rewritten file.
	BackupSuffix = "_original"

	DateDirLayout = "%Y-%m-%d"
	DateLayout    = "2006-01-02"
)

type ExiftoolConfig struct {
	probeArgs    []string
	datesArgs    []string
	positionArgs []string
	renameArgs   []string
	resetArgs    []string
	overwriteArg string
}

type Exiftool struct {
	config ExiftoolConfig
	tool   *runner.Tool
}

func New(tool *runner.Tool) *Exiftool {
	et := &Exiftool{tool: tool}
	et.UseDefaults()
	return et
}

func (et *Exiftool) UseDefaults() {
	et.config = ExiftoolConfig{
		probeArgs:    []string{"-G1", "-a", "-s", "-DateTimeOriginal", "-DaylightSavings", "-TimeZone", "-OffsetTimeOriginal"},
		datesArgs:    []string{"-T", "-d", DateDirLayout, "-DateTimeOriginal", "-r"},
		positionArgs: []string{"-T", "-GPSPosition", "-DateTimeOriginal"},
		renameArgs:   []string{"-FileName<DateTimeOriginal", "-d", "%Y-%m-%d %H.%M.%S%%-c.%%e", "-overwrite_original"},
		resetArgs:    []string{"-OffSetTime=", "-OffSetTimeOriginal=", "-OffSetTimeDigitized=", "-TimeZone=", "-TimeZoneCity="},
		overwriteArg: "-overwrite_original",
	}
}

func (et *Exiftool) DryRun() bool {
	return et.tool.DryRun()
}

// ReadOffset probes one file for the offset its camera clock was set to.
func (et *Exiftool) ReadOffset(file string) (Reading, error) {
	out, err := et.tool.Query(et.config.probeArgs, file)
	if err != nil {
		return Reading{}, err
	}

	reading, err := ParseReading(out)
	if errs.Is(err, errs.NoOffsetFound) {
		return reading, errs.New(errs.NoOffsetFound, "no offset found in %q", file)
	}
	return reading, err
}

// CaptureDates reads the capture date of every file under dir. Files
// without one are skipped.
func (et *Exiftool) CaptureDates(dir string) ([]time.Time, error) {
	out, err := et.tool.Query(et.config.datesArgs, dir)
	if err != nil {
		return nil, err
	}

	var dates []time.Time
	for _, line := range strings.Split(out, "\n") {
		value := strings.TrimSpace(line)
		if value == "" || value == "-" {
			continue
		}
		date, err := time.Parse(DateLayout, value)
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}
	return dates, nil
}

// Position reads the GPS position and capture time of one file.
func (et *Exiftool) Position(file string) (position string, captureTime string, err error) {
	out, err := et.tool.Query(et.config.positionArgs, file)
	if err != nil {
		return "", "", err
	}

	fields := strings.Split(out, "\t")
	if len(fields) != 2 || strings.TrimSpace(fields[0]) == "-" || strings.TrimSpace(fields[0]) == "" {
		return "", "", errs.New(errs.NotFound, "no GPS position in %q", file)
	}
	return strings.TrimSpace(fields[0]), strings.TrimSpace(fields[1]), nil
}

// Shift moves every date tag of files by the signed amount in one call.
func (et *Exiftool) Shift(files []string, by string, resetTimezone bool) error {
	args, err := et.ShiftArgs(by, resetTimezone)
	if err != nil {
		return err
	}
	return et.tool.Mutate(args, files)
}

func (et *Exiftool) ShiftArgs(by string, resetTimezone bool) ([]string, error) {
	allDates, err := AllDatesArg(by)
	if err != nil {
		return nil, err
	}

	args := []string{allDates, et.config.overwriteArg}
	if resetTimezone {
		args = append(args, et.config.resetArgs...)
	}
	return args, nil
}

// SetTime shifts files from UTC to the city's offset and annotates them
// with the city's timezone tags.
func (et *Exiftool) SetTime(files []string, city tz.City, dst bool) error {
	return et.tool.Mutate(et.SetTimeArgs(city, dst), files)
}

func (et *Exiftool) SetTimeArgs(city tz.City, dst bool) []string {
	sign, amount := tz.Split(city.Offset)
	dstMinutes := 0
	if dst {
		dstMinutes = 60
	}

	return []string{
		fmt.Sprintf("-AllDates%s=0:0:0 %s:0", sign, amount),
		"-TimeZone=" + city.Offset,
		fmt.Sprintf("-TimeZoneCity#=%d", city.ID),
		"-OffSetTime=" + city.Offset,
		"-OffSetTimeOriginal=" + city.Offset,
		"-OffSetTimeDigitized=" + city.Offset,
		fmt.Sprintf("-DaylightSavings#=%d", dstMinutes),
		et.config.overwriteArg,
	}
}

// Organize moves files into absDir/YYYY-MM-DD by capture date.
func (et *Exiftool) Organize(absDir string, files []string) error {
	return et.tool.Mutate(et.OrganizeArgs(absDir), files)
}

func (et *Exiftool) OrganizeArgs(absDir string) []string {
	return []string{"-d", DateDirLayout, fmt.Sprintf("-Directory<%s/$DateTimeOriginal", absDir)}
}

// Rename names files "<date> <time>[-<n>].<ext>" from their capture time;
// exiftool appends the counter on collisions.
func (et *Exiftool) Rename(files []string) error {
	return et.tool.Mutate(et.config.renameArgs, files)
}

// AllDatesArg builds the directive shifting every date tag by a signed
// "H:M" amount. Unsigned amounts shift forward.
func AllDatesArg(by string) (string, error) {
	by = strings.TrimSpace(by)
	if by == "" {
		return "", errs.New(errs.EmptyShiftPattern, "empty shift pattern")
	}

	sign, amount := tz.Split(by)
	if amount == "" {
		return "", errs.New(errs.EmptyShiftPattern, "empty shift pattern %q", by)
	}
	return fmt.Sprintf("-AllDates%s=0:0:0 %s:0", sign, amount), nil
}
