package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/itsjavi/tzshift/internal/config"
)

type Class int

const (
	Ignored Class = iota
	Media
	Track
)

// Files is the result of a scan, each list in natural path order.
type Files struct {
	Media  []string
	Tracks []string
}

// Classify decides from the extension alone. Track files are recognized
// whatever the configured suffixes are.
func Classify(path string, cfg config.AppConfig) Class {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	if ext == config.TrackExtension {
		return Track
	}
	if ext != "" && cfg.IsMedia(ext) {
		return Media
	}
	return Ignored
}

// Scan walks root (a directory or a single file) and buckets the regular
// files it finds. A symlinked root and symlinked files are followed, and
// paths are reported under root as given. Unreadable entries are skipped.
func Scan(root string, cfg config.AppConfig) Files {
	var files Files

	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return files
	}

	_ = filepath.WalkDir(resolved, func(path string, d iofs.DirEntry, err error) error {
		if err != nil || d == nil || d.IsDir() {
			return nil
		}
		if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return nil
		}
		path = filepath.Join(root, rel)

		switch Classify(path, cfg) {
		case Track:
			files.Tracks = append(files.Tracks, path)
		case Media:
			files.Media = append(files.Media, path)
		}
		return nil
	})

	SortPaths(files.Media)
	SortPaths(files.Tracks)
	return files
}

// SortPaths orders paths naturally, so IMG_2 comes before IMG_10.
func SortPaths(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		return natural.Less(paths[i], paths[j])
	})
}
