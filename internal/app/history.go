package app

import (
	"fmt"

	"github.com/itsjavi/tzshift/internal/journal"
)

const historyTimeLayout = "2006-01-02 15:04:05"

// History prints the latest mutations recorded in the journal.
func (a *App) History(j *journal.Journal, limit int) error {
	entries, err := j.Recent(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		a.out.Line("No mutations recorded.")
		return nil
	}

	for _, e := range entries {
		run := e.RunID
		if len(run) > 8 {
			run = run[:8]
		}
		line := fmt.Sprintf("%s  %s  %-14s %s %s", e.CreatedAt.Format(historyTimeLayout), run, e.Command, e.Program, e.Args)
		if e.FileCount > 0 {
			line += fmt.Sprintf(" (%d files, first %q)", e.FileCount, e.FirstFile)
		}
		a.out.Line(line)
	}
	return nil
}
