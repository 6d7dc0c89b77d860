package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/itsjavi/tzshift/internal/app"
	"github.com/itsjavi/tzshift/internal/config"
	"github.com/itsjavi/tzshift/internal/errs"
	"github.com/itsjavi/tzshift/internal/journal"
	"github.com/itsjavi/tzshift/internal/tz"
)

func dryRunFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "dry-run",
		Value:   false,
		Aliases: []string{"d"},
		Usage:   "Do not change anything, just print what would be done.",
	}
}

func main() {
	var cliApp = &cli.App{
		Name:                   app.AppName,
		Usage:                  "Fixes the clocks, timezones and geotags of photos and videos",
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "suffix",
				Value:   config.DefaultSuffixes,
				Aliases: []string{"e"},
				EnvVars: []string{"TZSHIFT_SUFFIX"},
				Usage:   "Comma-separated list of media file extensions.",
			},
			&cli.Uint64Flag{
				Name:    "timerange",
				Value:   config.DefaultTimeRange,
				EnvVars: []string{"TZSHIFT_TIMERANGE"},
				Usage:   "Maximum seconds between a photo and a track point when geotagging.",
			},
			&cli.StringFlag{
				Name:    "journal",
				Value:   "",
				EnvVars: []string{"TZSHIFT_JOURNAL"},
				Usage:   "SQLite file recording every change made, e.g. \"tzshift.sqlite\". Empty disables it.",
			},
			&cli.StringFlag{Name: "exiftool", Value: app.ProgramExiftool, Usage: "exiftool executable."},
			&cli.StringFlag{Name: "gpicsync", Value: app.ProgramGpicsync, Usage: "gpicsync executable."},
			&cli.StringFlag{Name: "garmin", Value: app.ProgramGarmin, Usage: "garmin client executable."},
			&cli.BoolFlag{Name: "no-color", Value: false, Usage: "Print without colors."},
		},
		Commands: []*cli.Command{
			{
				Name:      "detect-timezone",
				Usage:     "Detects the timezone the camera clock was set to, per file or directory.",
				ArgsUsage: "paths...",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "gps-hint",
						Value: false,
						Usage: "Also show the timezone at the GPS position of the probed file.",
					},
				},
				Action: func(c *cli.Context) error {
					r, err := setup(c, false)
					if err != nil {
						return err
					}
					defer r.close()
					report, err := r.app.DetectTimezone(c.Args().Slice(), c.Bool("gps-hint"))
					return r.finish(report, err)
				},
			},
			{
				Name:      "shift-to-utc",
				Usage:     "Detects the timezone of each path and shifts its media to UTC, clearing timezone tags.",
				ArgsUsage: "paths...",
				Flags:     []cli.Flag{dryRunFlag()},
				Action: func(c *cli.Context) error {
					r, err := setup(c, c.Bool("dry-run"))
					if err != nil {
						return err
					}
					defer r.close()
					report, err := r.app.ShiftToUTC(c.Args().Slice())
					return r.finish(report, err)
				},
			},
			{
				Name:        "shift",
				Usage:       "Shifts the dates of all media by a signed amount.",
				Description: "Negative amounts must follow \"--\", e.g. \"tzshift shift -- -02:00 photos\".",
				ArgsUsage:   "by paths...",
				Flags: []cli.Flag{
					dryRunFlag(),
					&cli.BoolFlag{
						Name:  "reset-tz",
						Value: false,
						Usage: "Also clear the timezone and offset tags.",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return errors.New("the shift amount argument is missing")
					}
					r, err := setup(c, c.Bool("dry-run"))
					if err != nil {
						return err
					}
					defer r.close()
					return r.app.ShiftPaths(c.Args().First(), c.Bool("reset-tz"), c.Args().Tail())
				},
			},
			{
				Name:      "organize",
				Usage:     "Moves media into YYYY-MM-DD directories by capture date.",
				ArgsUsage: "dirs...",
				Flags:     []cli.Flag{dryRunFlag()},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return errors.New("the directory arguments are missing")
					}
					r, err := setup(c, c.Bool("dry-run"))
					if err != nil {
						return err
					}
					defer r.close()
					return r.app.Organize(c.Args().Slice())
				},
			},
			{
				Name:      "geotag",
				Usage:     "Geotags media using GPX tracks.",
				ArgsUsage: "paths...",
				Flags: []cli.Flag{
					dryRunFlag(),
					&cli.StringSliceFlag{
						Name:     "gps-files",
						Aliases:  []string{"g"},
						Required: true,
						Usage:    "GPX track file, can be repeated.",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return errors.New("the path arguments are missing")
					}
					r, err := setup(c, c.Bool("dry-run"))
					if err != nil {
						return err
					}
					defer r.close()
					return r.app.Geotag(c.StringSlice("gps-files"), c.Args().Slice())
				},
			},
			{
				Name:      "set-time",
				Usage:     "Shifts media from UTC to a city's timezone and writes its timezone tags.",
				ArgsUsage: "paths...",
				Flags: []cli.Flag{
					dryRunFlag(),
					timezoneFlag(),
					&cli.BoolFlag{Name: "dst", Value: false, Usage: "Daylight saving time was active."},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return errors.New("the path arguments are missing")
					}
					r, err := setup(c, c.Bool("dry-run"))
					if err != nil {
						return err
					}
					defer r.close()
					return r.app.SetTime(c.Args().Slice(), c.String("timezone"), c.Bool("dst"))
				},
			},
			{
				Name:      "rename",
				Usage:     "Renames media after their capture date and time.",
				ArgsUsage: "paths...",
				Flags:     []cli.Flag{dryRunFlag()},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return errors.New("the path arguments are missing")
					}
					r, err := setup(c, c.Bool("dry-run"))
					if err != nil {
						return err
					}
					defer r.close()
					return r.app.Rename(c.Args().Slice())
				},
			},
			{
				Name:      "download-gpx",
				Usage:     "Downloads Garmin activities as GPX tracks and merges them.",
				ArgsUsage: "dest",
				Flags: []cli.Flag{
					dryRunFlag(),
					&cli.StringFlag{Name: "start-date", Usage: "First day, YYYY-MM-DD. Defaults to 20 days before the end date."},
					&cli.StringFlag{Name: "end-date", Usage: "Last day, YYYY-MM-DD. Defaults to today."},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return errors.New("the destination directory argument is missing")
					}
					r, err := setup(c, c.Bool("dry-run"))
					if err != nil {
						return err
					}
					defer r.close()
					return r.app.DownloadGPX(c.Args().First(), c.String("start-date"), c.String("end-date"))
				},
			},
			{
				Name:        "process",
				Usage:       "Shifts to UTC, organizes, geotags, sets the target timezone and renames.",
				Description: "Without --force nothing is changed and every step is only printed.",
				ArgsUsage:   "dirs...",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Value: false, Usage: "Really change the files."},
					timezoneFlag(),
					&cli.BoolFlag{Name: "dst", Value: false, Usage: "Daylight saving time was active."},
					&cli.BoolFlag{Name: "organize", Value: false, Usage: "Organize by date and download GPX tracks."},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return errors.New("the directory arguments are missing")
					}
					r, err := setup(c, !c.Bool("force"))
					if err != nil {
						return err
					}
					defer r.close()
					report, err := r.app.Process(c.Args().Slice(), app.ProcessOptions{
						City:     c.String("timezone"),
						DST:      c.Bool("dst"),
						Organize: c.Bool("organize"),
					})
					return r.finish(report, err)
				},
			},
			{
				Name:  "history",
				Usage: "Lists the latest changes recorded in the journal.",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 50, Aliases: []string{"n"}, Usage: "Number of entries."},
				},
				Action: func(c *cli.Context) error {
					if c.String("journal") == "" {
						return errors.New("no journal configured, use --journal or TZSHIFT_JOURNAL")
					}
					r, err := setup(c, true)
					if err != nil {
						return err
					}
					defer r.close()

					j, err := journal.Open(c.String("journal"), r.logger)
					if err != nil {
						return err
					}
					defer j.Close()
					return r.app.History(j, c.Int("limit"))
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "["+app.AppName+"] ERROR: "+errs.Sprint(err, app.LogLevel() == zerolog.DebugLevel))
		os.Exit(1)
	}
}

func timezoneFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "timezone",
		Aliases:  []string{"z"},
		Required: true,
		Usage:    fmt.Sprintf("Target city, one of: %v", tz.CityNames()),
	}
}

// run is one command invocation with everything it holds open.
type run struct {
	app     *app.App
	logger  zerolog.Logger
	journal *journal.Journal
}

// setup builds the run configuration from the global flags. The journal
// is only opened for runs that change files.
func setup(c *cli.Context, dryRun bool) (*run, error) {
	cfg := config.New(config.SplitSuffixes(c.String("suffix")), c.Uint64("timerange"), dryRun)
	noColor := c.Bool("no-color") || os.Getenv("NO_COLOR") != ""
	logger := app.NewLogger(os.Stderr, noColor)
	console := app.NewConsole(os.Stdout, !noColor)
	tools := app.CommandTools(c.String("exiftool"), c.String("gpicsync"), c.String("garmin"))

	r := &run{logger: logger}

	if path := c.String("journal"); path != "" && !dryRun {
		j, err := journal.Open(path, logger)
		if err != nil {
			return nil, err
		}
		if err := j.Begin(c.Command.Name); err != nil {
			_ = j.Close()
			return nil, err
		}
		r.journal = j
		logger.Debug().Str("run", j.RunID()).Str("journal", path).Msg("recording changes")
		r.app = app.New(cfg, tools, console, logger, j)
		return r, nil
	}

	r.app = app.New(cfg, tools, console, logger, nil)
	return r, nil
}

func (r *run) close() {
	if r.journal != nil {
		if err := r.journal.Close(); err != nil {
			r.logger.Error().Err(err).Msg("failed to close journal")
		}
	}
}

// finish logs per-item failures. They do not change the exit code.
func (r *run) finish(report app.Report, err error) error {
	if err != nil {
		return err
	}
	if !report.OK() {
		r.logger.Warn().Int("failures", len(report.Failures)).Msg("finished with failures")
	}
	return nil
}
