package app

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// LogLevel reads LogLevelEnv; anything unknown means info.
func LogLevel() zerolog.Level {
	switch os.Getenv(LogLevelEnv) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger writes diagnostics to w. Timestamps are left out so that two
// dry runs print the same thing.
func NewLogger(w io.Writer, noColor bool) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      noColor,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}).Level(LogLevel())
}
