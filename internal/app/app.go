// Package app wires the external tools into the commands of tzshift and
// runs the process pipeline.
package app

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/itsjavi/tzshift/internal/config"
	"github.com/itsjavi/tzshift/internal/exiftool"
	"github.com/itsjavi/tzshift/internal/fs"
	"github.com/itsjavi/tzshift/internal/garmin"
	"github.com/itsjavi/tzshift/internal/runner"
)

// Tools holds one executor per external program.
type Tools struct {
	Exiftool runner.Executor
	Gpicsync runner.Executor
	Garmin   runner.Executor
}

// CommandTools runs the real programs found at the given paths.
func CommandTools(exiftoolPath, gpicsyncPath, garminPath string) Tools {
	return Tools{
		Exiftool: runner.Command{Program: exiftoolPath},
		Gpicsync: runner.Command{Program: gpicsyncPath},
		Garmin:   runner.Command{Program: garminPath},
	}
}

type App struct {
	cfg      config.AppConfig
	out      runner.Console
	logger   zerolog.Logger
	exiftool *exiftool.Exiftool
	gpicsync *runner.Tool
	garmin   *garmin.Downloader

	// Now is the clock used for default date ranges.
	Now func() time.Time
}

// New builds an App for one run. rec may be nil; when set it is told
// about every mutation that really ran.
func New(cfg config.AppConfig, tools Tools, out runner.Console, logger zerolog.Logger, rec runner.Recorder) *App {
	tool := func(program string, executor runner.Executor) *runner.Tool {
		t := runner.NewTool(program, executor, cfg.DryRun(), out)
		if rec != nil {
			t = t.WithRecorder(rec)
		}
		return t
	}

	return &App{
		cfg:      cfg,
		out:      out,
		logger:   logger,
		exiftool: exiftool.New(tool(ProgramExiftool, tools.Exiftool)),
		gpicsync: tool(ProgramGpicsync, tools.Gpicsync),
		garmin:   garmin.New(tool(ProgramGarmin, tools.Garmin), cfg, out),
		Now:      time.Now,
	}
}

func (a *App) Config() config.AppConfig {
	return a.cfg
}

// collectMedia resolves user supplied paths, which must exist, and returns
// the media under them.
func (a *App) collectMedia(paths []string) ([]string, error) {
	resolved, err := fs.ResolveFiles(paths)
	if err != nil {
		return nil, err
	}

	var media []string
	for _, p := range resolved {
		media = append(media, fs.Scan(p, a.cfg).Media...)
	}
	return media, nil
}
