package app

const (
	AppName = "tzshift"

	// LogLevelEnv selects the diagnostics level: debug, info, warn or error.
	LogLevelEnv = "TZSHIFT_LOG_LEVEL"

	ProgramExiftool = "exiftool"
	ProgramGpicsync = "gpicsync"
	ProgramGarmin   = "garmin"

	// GeotagZone is the zone gpicsync assumes for capture times. Media are
	// geotagged while their clocks are on UTC.
	GeotagZone = "UTC"
)
