package gpx

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/itsjavi/tzshift/internal/errs"
	"github.com/itsjavi/tzshift/internal/runner/runnertest"
)

const trackTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  %METADATA%
  <trk>
    <name>%NAME%</name>
    <trkseg>
      <trkpt lat="39.5696" lon="2.6502"><ele>12</ele><time>2023-07-01T08:30:00Z</time></trkpt>
      <trkpt lat="39.5701" lon="2.6511"><ele>13</ele><time>2023-07-01T08:31:00Z</time></trkpt>
    </trkseg>
  </trk>
</gpx>
`

func writeTrack(t *testing.T, path, name, timestamp string) string {
	t.Helper()
	metadata := ""
	if timestamp != "" {
		metadata = "<metadata><time>" + timestamp + "</time></metadata>"
	}
	body := strings.NewReplacer("%METADATA%", metadata, "%NAME%", name).Replace(trackTemplate)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestName(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		trackName string
		timestamp string
		want      string
	}{
		{"time and name", "Morning Ride", "2023-07-01T08:30:00Z", "2023-07-01.08.30.00_Morning Ride.gpx"},
		{"no time", "Walk", "", "no_time_Walk.gpx"},
		{"no name", "", "2023-07-01T08:30:00Z", "2023-07-01.08.30.00_track.gpx"},
		{"slash in name", "Home/Work", "2023-07-01T08:30:00Z", "2023-07-01.08.30.00_Home-Work.gpx"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTrack(t, filepath.Join(dir, "in"+string(rune('a'+i))+".gpx"), tt.trackName, tt.timestamp)
			got, err := Name(path)
			if err != nil {
				t.Fatal(err)
			}
			if want := filepath.Join(dir, tt.want); got != want {
				t.Errorf("Name() = %q, want %q", got, want)
			}
		})
	}

	if got, _ := Name("/x/route.fit"); got != "/x/route.gpx" {
		t.Errorf("Name(route.fit) = %q", got)
	}
	if got, _ := Name("/x/" + MergedName); got != "/x/"+MergedName {
		t.Errorf("Name(merged) = %q", got)
	}
}

func TestEnsure(t *testing.T) {
	dir := t.TempDir()
	src := writeTrack(t, filepath.Join(dir, "activity_123.gpx"), "Morning Ride", "2023-07-01T08:30:00Z")
	want := filepath.Join(dir, "2023-07-01.08.30.00_Morning Ride.gpx")

	rep := &runnertest.Reporter{}
	got, err := Ensure(src, true, rep)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("dry-run Ensure() = %q, want %q", got, want)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatal("dry-run renamed the track")
	}

	got, err = Ensure(src, false, rep)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Ensure() = %q, want %q", got, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("renamed track missing: %v", err)
	}

	// already canonical: nothing to do
	again, err := Ensure(want, false, rep)
	if err != nil || again != want {
		t.Errorf("Ensure(canonical) = %q, %v", again, err)
	}
}

func TestEnsureFailures(t *testing.T) {
	dir := t.TempDir()
	rep := &runnertest.Reporter{}

	missing := filepath.Join(dir, "gone.gpx")
	if got, err := Ensure(missing, true, rep); err != nil || got != missing {
		t.Errorf("dry-run Ensure(missing) = %q, %v", got, err)
	}
	if _, err := Ensure(missing, false, rep); !errs.Is(err, errs.NotFound) {
		t.Errorf("Ensure(missing) error = %v, want NotFound", err)
	}

	fit := filepath.Join(dir, "ride.fit")
	if err := os.WriteFile(fit, []byte("binary"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Ensure(fit, false, rep); !errs.Is(err, errs.UnsupportedTrackFormat) {
		t.Errorf("Ensure(fit) error = %v, want UnsupportedTrackFormat", err)
	}
}

func TestMerge(t *testing.T) {
	dir := t.TempDir()
	a := writeTrack(t, filepath.Join(dir, "a.gpx"), "A", "")
	b := writeTrack(t, filepath.Join(dir, "b.gpx"), "B", "")
	dup := writeTrack(t, filepath.Join(dir, "c.gpx"), "A", "")
	stale := writeTrack(t, filepath.Join(dir, MergedName), "stale", "")

	rep := &runnertest.Reporter{}
	dest, err := Merge([]string{a, stale, b, dup}, dir, false, rep)
	if err != nil {
		t.Fatal(err)
	}
	if dest != stale {
		t.Errorf("dest = %q, want %q", dest, stale)
	}

	merged, err := gpx.ParseFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, trk := range merged.Tracks {
		names = append(names, trk.Name)
	}
	if !reflect.DeepEqual(names, []string{"A", "B"}) {
		t.Errorf("merged tracks = %v, want [A B]", names)
	}
	if len(rep.Lines) != 1 || !strings.Contains(rep.Lines[0], "c.gpx") {
		t.Errorf("reported %v, want one duplicate notice", rep.Lines)
	}
}

func TestMergeDryRun(t *testing.T) {
	dir := t.TempDir()
	rep := &runnertest.Reporter{}

	dest, err := Merge([]string{filepath.Join(dir, "x.gpx"), filepath.Join(dir, "y.gpx")}, dir, true, rep)
	if err != nil {
		t.Fatal(err)
	}
	if dest != filepath.Join(dir, MergedName) {
		t.Errorf("dest = %q", dest)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("dry-run wrote the merged file")
	}
	if len(rep.Lines) != 1 || !strings.HasPrefix(rep.Lines[0], "DRY-RUN: Merge 2 GPX files") {
		t.Errorf("reported %v", rep.Lines)
	}
}

func TestMergeDryRunCountsDistinctInputs(t *testing.T) {
	dir := t.TempDir()
	a := writeTrack(t, filepath.Join(dir, "a.gpx"), "A", "")
	dup := writeTrack(t, filepath.Join(dir, "b.gpx"), "A", "")
	other := writeTrack(t, filepath.Join(dir, "c.gpx"), "C", "")
	pending := filepath.Join(dir, "pending.gpx")

	rep := &runnertest.Reporter{}
	if _, err := Merge([]string{a, dup, other, pending}, dir, true, rep); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"OUT: Skipping \"" + dup + "\", same content as \"" + a + "\"",
		"DRY-RUN: Merge 3 GPX files into \"" + filepath.Join(dir, MergedName) + "\"",
	}
	if !reflect.DeepEqual(rep.Lines, want) {
		t.Errorf("reported %q, want %q", rep.Lines, want)
	}
}

func TestEnsureUppercaseExtension(t *testing.T) {
	dir := t.TempDir()
	src := writeTrack(t, filepath.Join(dir, "ride.GPX"), "Evening Walk", "2023-07-01T19:00:00Z")
	want := filepath.Join(dir, "2023-07-01.19.00.00_Evening Walk.gpx")

	got, err := Ensure(src, false, &runnertest.Reporter{})
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Ensure() = %q, want %q", got, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("renamed track missing: %v", err)
	}
}
