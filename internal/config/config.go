package config

import (
	"sort"
	"strings"
)

const (
	DefaultSuffixes  = "jpg,JPG,mp4"
	DefaultTimeRange = 10

	// TrackExtension is recognized regardless of the configured suffixes.
	TrackExtension = "gpx"
)

// AppConfig is built once from the command line and never mutated after.
type AppConfig struct {
	suffixes  map[string]bool
	timeRange uint64
	dryRun    bool
}

// New lowercases and de-duplicates the suffixes; a leading dot is tolerated.
func New(suffixes []string, timeRange uint64, dryRun bool) AppConfig {
	set := make(map[string]bool, len(suffixes))
	for _, s := range suffixes {
		s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
		if s != "" {
			set[s] = true
		}
	}
	return AppConfig{suffixes: set, timeRange: timeRange, dryRun: dryRun}
}

// SplitSuffixes parses a comma-separated suffix list.
func SplitSuffixes(list string) []string {
	return strings.Split(list, ",")
}

// IsMedia reports whether ext (with or without the dot, any case) is a
// configured media suffix.
func (c AppConfig) IsMedia(ext string) bool {
	return c.suffixes[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

// Suffixes returns the lowercase suffix set, sorted.
func (c AppConfig) Suffixes() []string {
	list := make([]string, 0, len(c.suffixes))
	for s := range c.suffixes {
		list = append(list, s)
	}
	sort.Strings(list)
	return list
}

// TimeRange is the photo/track correlation window in seconds.
func (c AppConfig) TimeRange() uint64 {
	return c.timeRange
}

func (c AppConfig) DryRun() bool {
	return c.dryRun
}

// WithDryRun returns a copy with the dry-run flag replaced.
func (c AppConfig) WithDryRun(dryRun bool) AppConfig {
	c.dryRun = dryRun
	return c
}
