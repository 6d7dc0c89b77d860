// Package gpx names and merges GPS track files.
package gpx

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kalafut/imohash"
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/itsjavi/tzshift/internal/errs"
	"github.com/itsjavi/tzshift/internal/runner"
)

const (
	// MergedName is the reserved name of a merge result. A file with this
	// name is never taken as a merge input.
	MergedName = "all_activities.gpx"

	Extension   = ".gpx"
	TimeLayout  = "2006-01-02.15.04.05"
	creatorName = "tzshift"
)

func IsMerged(path string) bool {
	return filepath.Base(path) == MergedName
}

// Merge concatenates waypoints, routes and tracks of every input, in
// order, into outputDir/all_activities.gpx. Inputs named like the output
// and inputs whose bytes equal an earlier input are skipped. In dry-run no
// file is written and the would-be path is returned.
func Merge(tracks []string, outputDir string, dryRun bool, rep runner.Reporter) (string, error) {
	dest := filepath.Join(outputDir, MergedName)

	inputs, err := distinct(tracks, dryRun, rep)
	if err != nil {
		return "", err
	}

	if dryRun {
		rep.DryRun(fmt.Sprintf("Merge %d GPX files into %q", len(inputs), dest))
		return dest, nil
	}

	if _, err := os.Stat(dest); err == nil {
		_ = os.Remove(dest)
	}

	merged := &gpx.GPX{Version: "1.1", Creator: creatorName}

	for _, path := range inputs {
		doc, err := gpx.ParseFile(path)
		if err != nil {
			return "", errs.Wrap(errs.InvalidFormat, err, "failed to read GPX file %q", path)
		}

		merged.Tracks = append(merged.Tracks, doc.Tracks...)
		merged.Routes = append(merged.Routes, doc.Routes...)
		merged.Waypoints = append(merged.Waypoints, doc.Waypoints...)
	}

	data, err := merged.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return "", errs.Wrap(errs.InvalidFormat, err, "failed to write merged GPX to %q", dest)
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return "", errs.Wrap(errs.NotFound, err, "failed to write merged GPX to %q", dest)
	}

	return dest, nil
}

// distinct drops the reserved merge name and exact duplicates. imohash
// only samples large files, so a hash hit is confirmed by comparing the
// full contents. In dry-run an unreadable input is kept, since it may only
// exist after the real download.
func distinct(tracks []string, dryRun bool, rep runner.Reporter) ([]string, error) {
	var kept []string
	seen := make(map[[imohash.Size]byte][]string)

	for _, path := range tracks {
		if IsMerged(path) {
			continue
		}

		sum, err := imohash.SumFile(path)
		if err != nil {
			if dryRun {
				kept = append(kept, path)
				continue
			}
			return nil, errs.Wrap(errs.NotFound, err, "failed to read GPX file %q", path)
		}

		dup, err := sameContent(path, seen[sum])
		if err != nil {
			return nil, err
		}
		if dup != "" {
			rep.Output(fmt.Sprintf("Skipping %q, same content as %q", path, dup))
			continue
		}

		seen[sum] = append(seen[sum], path)
		kept = append(kept, path)
	}
	return kept, nil
}

// sameContent returns the first candidate whose bytes equal path's.
func sameContent(path string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errs.Wrap(errs.NotFound, err, "failed to read GPX file %q", path)
	}
	for _, c := range candidates {
		other, err := os.ReadFile(c)
		if err != nil {
			return "", errs.Wrap(errs.NotFound, err, "failed to read GPX file %q", c)
		}
		if bytes.Equal(data, other) {
			return c, nil
		}
	}
	return "", nil
}

// Name returns the path a track should have: "<time>_<track name>.gpx"
// next to the original. Non-GPX inputs map to "<stem>.gpx".
func Name(path string) (string, error) {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)

	if strings.ToLower(ext) != Extension {
		return filepath.Join(dir, strings.TrimSuffix(filepath.Base(path), ext)+Extension), nil
	}
	if IsMerged(path) {
		return path, nil
	}

	doc, err := gpx.ParseFile(path)
	if err != nil {
		return "", errs.Wrap(errs.InvalidFormat, err, "failed to read GPX file %q", path)
	}

	trackName := "track"
	if len(doc.Tracks) > 0 && doc.Tracks[0].Name != "" {
		trackName = doc.Tracks[0].Name
	}

	trackTime := "no_time"
	if doc.Time != nil && !doc.Time.IsZero() {
		trackTime = doc.Time.Format(TimeLayout)
	}

	name := strings.ReplaceAll(trackTime+"_"+trackName, "/", "-")
	return filepath.Join(dir, name+Extension), nil
}

// Ensure renames a track to its canonical Name and returns the new path.
// Only GPX is supported. A missing file is an error outside dry-run; in
// dry-run the path is returned as is.
func Ensure(path string, dryRun bool, rep runner.Reporter) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if dryRun {
			rep.DryRun(fmt.Sprintf("Would rename %q based on track name", path))
			return path, nil
		}
		return "", errs.New(errs.NotFound, "file not found: %q", path)
	}

	if ext := filepath.Ext(path); strings.ToLower(ext) != Extension {
		return "", errs.New(errs.UnsupportedTrackFormat, "unknown format %q, only .gpx is supported", strings.TrimPrefix(ext, "."))
	}

	dest, err := Name(path)
	if err != nil {
		return "", err
	}

	if dest != path {
		rep.Output(fmt.Sprintf("%q -> %q", path, dest))
		if !dryRun {
			if err := os.Rename(path, dest); err != nil {
				return "", errs.Wrap(errs.NotFound, err, "failed to rename %q", path)
			}
		}
	}
	return dest, nil
}
