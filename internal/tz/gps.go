package tz

import (
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/bradfitz/latlong"
	"github.com/itsjavi/tzshift/internal/errs"
)

const CaptureTimeLayout = "2006:01:02 15:04:05"

type Coord struct {
	Latitude  float64
	Longitude float64
}

// ZoneHint is the timezone found at the place a file was captured.
type ZoneHint struct {
	Zone   string
	Offset string
}

// HintFromPosition looks up the IANA zone at an exiftool GPSPosition and
// that zone's offset at the capture time.
func HintFromPosition(position string, captureTime string) (ZoneHint, error) {
	coord, err := ParseCoord(position)
	if err != nil {
		return ZoneHint{}, err
	}

	zone := latlong.LookupZoneName(coord.Latitude, coord.Longitude)
	if zone == "" {
		return ZoneHint{}, errs.New(errs.NotFound, "no timezone at %s", position)
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return ZoneHint{}, errs.Wrap(errs.NotFound, err, "cannot load zone %s", zone)
	}

	at, err := time.ParseInLocation(CaptureTimeLayout, strings.TrimSpace(captureTime), loc)
	if err != nil {
		return ZoneHint{}, errs.Wrap(errs.InvalidFormat, err, "invalid capture time %q", captureTime)
	}

	_, secs := at.Zone()
	return ZoneHint{Zone: zone, Offset: FormatOffset(secs / 60)}, nil
}

// parses a string like `39 deg 34' 4.66" N, 2 deg 38' 40.34" E`
func ParseCoord(position string) (Coord, error) {
	latLng := strings.Split(strings.TrimSpace(position), ",")

	if len(latLng) != 2 {
		return Coord{}, errs.New(errs.InvalidFormat, "cannot parse GPS position: %q", position)
	}

	lat, err := parseCoordPart(strings.TrimSpace(latLng[0]))
	if err != nil {
		return Coord{}, err
	}
	lng, err := parseCoordPart(strings.TrimSpace(latLng[1]))
	if err != nil {
		return Coord{}, err
	}

	return Coord{lat, lng}, nil
}

// parses a string like `2 deg 38' 40.34" E`
func parseCoordPart(val string) (float64, error) {
	chunks := strings.Fields(val)

	if len(chunks) != 5 {
		return 0, errs.New(errs.InvalidFormat, "cannot parse GPS position: %q", val)
	}

	var parts [3]float64
	for i, chunk := range []string{chunks[0], chunks[2], chunks[3]} {
		f, err := strconv.ParseFloat(strings.Trim(chunk, " '\""), 64)
		if err != nil {
			return 0, errs.Wrap(errs.InvalidFormat, err, "cannot parse GPS position: %q", val)
		}
		parts[i] = f
	}

	coord := parts[0] + (parts[1] / 60) + (parts[2] / 3600)
	ref := strings.ToUpper(chunks[4])

	if (ref == "S") || (ref == "W") { // N is "+", S is "-",  E is "+", W is "-"
		coord *= -1
	}

	return coord, nil
}
