package exiftool

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/itsjavi/tzshift/internal/errs"
	"github.com/itsjavi/tzshift/internal/runner"
	"github.com/itsjavi/tzshift/internal/runner/runnertest"
	"github.com/itsjavi/tzshift/internal/tz"
)

func TestParseReading(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   Reading
	}{
		{
			name: "offset time original wins and keeps dst flag",
			output: "[ExifIFD]       DateTimeOriginal                : 2023:07:01 12:00:00\n" +
				"[Canon]         DaylightSavings                 : On\n" +
				"[Canon]         TimeZone                        : +01:00\n" +
				"[ExifIFD]       OffsetTimeOriginal              : +02:00\n",
			want: Reading{Offset: "+02:00", DST: true, CaptureTime: "2023:07:01 12:00:00"},
		},
		{
			name: "timezone plus daylight saving",
			output: "[Canon]         TimeZone                        : +01:00\n" +
				"[Canon]         DaylightSavings                 : On\n",
			want: Reading{Offset: "+02:00", DST: true},
		},
		{
			name:   "timezone without daylight saving",
			output: "[Canon]         TimeZone                        : -05:00\n[Canon] DaylightSavings : Off\n",
			want:   Reading{Offset: "-05:00"},
		},
		{
			name:   "group labels with spaces",
			output: "[Maker Notes Group] TimeZone : +05:30\n",
			want:   Reading{Offset: "+05:30"},
		},
		{
			name:   "no group prefix",
			output: "OffsetTimeOriginal: -03:00\n",
			want:   Reading{Offset: "-03:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReading(tt.output)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ParseReading() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseReadingFailures(t *testing.T) {
	if _, err := ParseReading("[ExifIFD] DateTimeOriginal : 2023:07:01 12:00:00\n"); !errs.Is(err, errs.NoOffsetFound) {
		t.Errorf("missing tags error = %v, want NoOffsetFound", err)
	}
	if _, err := ParseReading(""); !errs.Is(err, errs.NoOffsetFound) {
		t.Errorf("empty output error = %v, want NoOffsetFound", err)
	}
	if _, err := ParseReading("[Canon] TimeZone : garbage\n"); !errs.Is(err, errs.InvalidFormat) {
		t.Errorf("garbage timezone error = %v, want InvalidFormat", err)
	}
}

func TestReadOffset(t *testing.T) {
	log := &runnertest.Log{}
	exec := log.Executor("exiftool", func(args, files []string) ([]byte, error) {
		return []byte("[Canon] TimeZone : +09:00\n"), nil
	})
	et := New(runner.NewTool("exiftool", exec, true, &runnertest.Reporter{}))

	reading, err := et.ReadOffset("/d/IMG_1.JPG")
	if err != nil {
		t.Fatal(err)
	}
	if reading.Offset != "+09:00" {
		t.Errorf("Offset = %q", reading.Offset)
	}

	want := "exiftool -G1 -a -s -DateTimeOriginal -DaylightSavings -TimeZone -OffsetTimeOriginal /d/IMG_1.JPG"
	if len(log.Calls) != 1 || log.Calls[0].String() != want {
		t.Errorf("calls = %v, want %q", log.Calls, want)
	}
}

func TestReadOffsetToolFailure(t *testing.T) {
	log := &runnertest.Log{}
	exec := log.Executor("exiftool", func(args, files []string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	})
	et := New(runner.NewTool("exiftool", exec, false, &runnertest.Reporter{}))

	if _, err := et.ReadOffset("x.jpg"); !errs.Is(err, errs.ExternalToolFailure) {
		t.Errorf("error = %v, want ExternalToolFailure", err)
	}
}

func TestAllDatesArg(t *testing.T) {
	tests := []struct {
		by   string
		want string
	}{
		{"-02:00", "-AllDates-=0:0:0 02:00:0"},
		{"+05:30", "-AllDates+=0:0:0 05:30:0"},
		{"01:00", "-AllDates+=0:0:0 01:00:0"},
		{" +00:00 ", "-AllDates+=0:0:0 00:00:0"},
	}
	for _, tt := range tests {
		got, err := AllDatesArg(tt.by)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("AllDatesArg(%q) = %q, want %q", tt.by, got, tt.want)
		}
	}

	for _, by := range []string{"", "   ", "+", "-"} {
		if _, err := AllDatesArg(by); !errs.Is(err, errs.EmptyShiftPattern) {
			t.Errorf("AllDatesArg(%q) error = %v, want EmptyShiftPattern", by, err)
		}
	}
}

func TestShiftIsOneBatchCall(t *testing.T) {
	log := &runnertest.Log{}
	et := New(runner.NewTool("exiftool", log.Executor("exiftool", nil), false, &runnertest.Reporter{}))

	files := []string{"/d/a.jpg", "/d/b.jpg", "/d/c.jpg"}
	if err := et.Shift(files, "-02:00", true); err != nil {
		t.Fatal(err)
	}

	if len(log.Calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(log.Calls))
	}
	wantArgs := []string{
		"-AllDates-=0:0:0 02:00:0", "-overwrite_original",
		"-OffSetTime=", "-OffSetTimeOriginal=", "-OffSetTimeDigitized=", "-TimeZone=", "-TimeZoneCity=",
	}
	if !reflect.DeepEqual(log.Calls[0].Args, wantArgs) {
		t.Errorf("args = %q, want %q", log.Calls[0].Args, wantArgs)
	}
	if !reflect.DeepEqual(log.Calls[0].Files, files) {
		t.Errorf("files = %v", log.Calls[0].Files)
	}
}

func TestSetTimeArgs(t *testing.T) {
	et := New(runner.NewTool("exiftool", (&runnertest.Log{}).Executor("exiftool", nil), false, &runnertest.Reporter{}))
	city, _ := tz.LookupCity("New York")

	want := []string{
		"-AllDates-=0:0:0 05:00:0",
		"-TimeZone=-05:00",
		"-TimeZoneCity#=27",
		"-OffSetTime=-05:00",
		"-OffSetTimeOriginal=-05:00",
		"-OffSetTimeDigitized=-05:00",
		"-DaylightSavings#=60",
		"-overwrite_original",
	}
	if got := et.SetTimeArgs(city, true); !reflect.DeepEqual(got, want) {
		t.Errorf("SetTimeArgs() = %q, want %q", got, want)
	}
}

func TestOrganizeArgs(t *testing.T) {
	et := New(runner.NewTool("exiftool", (&runnertest.Log{}).Executor("exiftool", nil), false, &runnertest.Reporter{}))
	want := []string{"-d", "%Y-%m-%d", "-Directory</photos/trip/$DateTimeOriginal"}
	if got := et.OrganizeArgs("/photos/trip"); !reflect.DeepEqual(got, want) {
		t.Errorf("OrganizeArgs() = %q, want %q", got, want)
	}
}

func TestCaptureDates(t *testing.T) {
	log := &runnertest.Log{}
	exec := log.Executor("exiftool", func(args, files []string) ([]byte, error) {
		return []byte("2023-07-02\n-\n\n2023-06-30\nnot a date\n"), nil
	})
	et := New(runner.NewTool("exiftool", exec, true, &runnertest.Reporter{}))

	dates, err := et.CaptureDates("/photos")
	if err != nil {
		t.Fatal(err)
	}
	want := []time.Time{
		time.Date(2023, 7, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("CaptureDates() = %v, want %v", dates, want)
	}
	if got := log.Calls[0].String(); got != "exiftool -T -d %Y-%m-%d -DateTimeOriginal -r /photos" {
		t.Errorf("call = %q", got)
	}
}

func TestPosition(t *testing.T) {
	log := &runnertest.Log{}
	exec := log.Executor("exiftool", func(args, files []string) ([]byte, error) {
		if files[0] == "none.jpg" {
			return []byte("-\t2023:07:01 12:00:00\n"), nil
		}
		return []byte("39 deg 34' 4.66\" N, 2 deg 38' 40.34\" E\t2023:07:01 12:00:00\n"), nil
	})
	et := New(runner.NewTool("exiftool", exec, false, &runnertest.Reporter{}))

	pos, at, err := et.Position("a.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if pos != "39 deg 34' 4.66\" N, 2 deg 38' 40.34\" E" || at != "2023:07:01 12:00:00" {
		t.Errorf("Position() = %q, %q", pos, at)
	}

	if _, _, err := et.Position("none.jpg"); !errs.Is(err, errs.NotFound) {
		t.Errorf("missing position error = %v, want NotFound", err)
	}
}
