// Package runner invokes the external tools the pipeline delegates to
// (exiftool, gpicsync, garmin) and implements dry-run for every mutation.
package runner

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/itsjavi/tzshift/internal/errs"
)

// Executor runs one external program with the given options followed by
// the file list and returns its standard output.
type Executor interface {
	Invoke(args []string, files []string) ([]byte, error)
}

// Reporter receives the command echo lines and the output of mutations.
type Reporter interface {
	Command(line string)
	DryRun(line string)
	Output(text string)
}

// Console is a Reporter that also prints the pipeline's own status lines.
type Console interface {
	Reporter
	Header(text string)
	Line(text string)
	Warn(text string)
}

// Recorder is told about every mutation that actually ran.
type Recorder interface {
	Record(program string, args []string, files []string)
}

// Command executes a real subprocess. Stderr is passed through.
type Command struct {
	Program string
	Stderr  io.Writer
}

func (c Command) Invoke(args []string, files []string) ([]byte, error) {
	argv := make([]string, 0, len(args)+len(files))
	argv = append(argv, args...)
	argv = append(argv, files...)

	cmd := exec.Command(c.Program, argv...)
	cmd.Stderr = c.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	out, err := cmd.Output()
	if err != nil {
		return out, errs.Wrap(errs.ExternalToolFailure, err, "command %s failed", c.Program)
	}
	return out, nil
}

// Tool binds an executor to a program name and the run's dry-run flag.
type Tool struct {
	program  string
	executor Executor
	dryRun   bool
	reporter Reporter
	recorder Recorder
}

func NewTool(program string, executor Executor, dryRun bool, reporter Reporter) *Tool {
	return &Tool{program: program, executor: executor, dryRun: dryRun, reporter: reporter}
}

// WithRecorder returns a copy of the tool that reports real mutations to r.
func (t *Tool) WithRecorder(r Recorder) *Tool {
	c := *t
	c.recorder = r
	return &c
}

func (t *Tool) Program() string {
	return t.program
}

func (t *Tool) DryRun() bool {
	return t.dryRun
}

// Query runs a read-only invocation. Reads happen in dry-run too, so later
// stages see real data.
func (t *Tool) Query(args []string, files ...string) (string, error) {
	out, err := t.executor.Invoke(args, files)
	if err != nil {
		return "", errs.Wrap(errs.ExternalToolFailure, err, "%s", CommandLine(t.program, args, files))
	}
	return strings.TrimSpace(string(out)), nil
}

// Mutate runs an invocation that changes files. In dry-run nothing is
// executed and the would-be command is reported instead.
func (t *Tool) Mutate(args []string, files []string) error {
	line := CommandLine(t.program, args, files)

	if t.dryRun {
		t.reporter.DryRun(line)
		return nil
	}

	t.reporter.Command(line)

	out, err := t.executor.Invoke(args, files)
	if err != nil {
		return errs.Wrap(errs.ExternalToolFailure, err, "%s exited with non-zero status", t.program)
	}
	if text := strings.TrimSpace(string(out)); text != "" {
		t.reporter.Output(text)
	}
	if t.recorder != nil {
		t.recorder.Record(t.program, args, files)
	}
	return nil
}

// CommandLine renders an invocation for display, abbreviating long file lists.
func CommandLine(program string, args []string, files []string) string {
	var b strings.Builder
	b.WriteString(program)
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(a)
	}
	if len(files) > 0 {
		b.WriteByte(' ')
		b.WriteString(files[0])
		if len(files) > 1 {
			fmt.Fprintf(&b, " ... (and %d more files)", len(files)-1)
		}
	}
	return b.String()
}
