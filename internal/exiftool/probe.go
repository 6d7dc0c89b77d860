package exiftool

import (
	"strings"

	"github.com/itsjavi/tzshift/internal/errs"
	"github.com/itsjavi/tzshift/internal/tz"
)

// Reading is what one file says about its camera clock.
type Reading struct {
	Offset      string
	DST         bool
	CaptureTime string
}

// ParseReading interprets grouped short-form output ("[Group] Tag : Value").
//
// OffsetTimeOriginal wins and is taken verbatim, since it already includes
// daylight saving. Otherwise TimeZone is used, plus one hour when
// DaylightSavings is On.
func ParseReading(output string) (Reading, error) {
	var (
		reading          Reading
		offsetTimeOrig   string
		hasOffsetTimeOrg bool
		timezone         string
		hasTimezone      bool
	)

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		i := strings.Index(line, ":")
		if i < 0 {
			continue
		}
		key := strings.TrimSpace(line[:i])
		value := strings.TrimSpace(line[i+1:])

		// group labels may contain spaces, tag names never do
		tag := key
		if j := strings.LastIndex(key, " "); j >= 0 {
			tag = key[j+1:]
		}

		switch tag {
		case "DaylightSavings":
			if value == "On" {
				reading.DST = true
			}
		case "OffsetTimeOriginal":
			offsetTimeOrig, hasOffsetTimeOrg = value, true
		case "TimeZone":
			timezone, hasTimezone = value, true
		case "DateTimeOriginal":
			if reading.CaptureTime == "" {
				reading.CaptureTime = value
			}
		}
	}

	if hasOffsetTimeOrg {
		reading.Offset = offsetTimeOrig
		return reading, nil
	}

	if hasTimezone {
		minutes, err := tz.ParseOffset(timezone)
		if err != nil {
			return reading, err
		}
		if reading.DST {
			minutes += 60
		}
		reading.Offset = tz.FormatOffset(minutes)
		return reading, nil
	}

	return reading, errs.New(errs.NoOffsetFound, "no offset found")
}
