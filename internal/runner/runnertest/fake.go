// Package runnertest provides fake executors that record argument vectors
// instead of spawning processes.
package runnertest

import (
	"strings"
)

type Call struct {
	Program string
	Args    []string
	Files   []string
}

func (c Call) String() string {
	return strings.Join(append(append([]string{c.Program}, c.Args...), c.Files...), " ")
}

// Responder produces the fake output for one invocation.
type Responder func(args []string, files []string) ([]byte, error)

// Log collects calls from every fake executor created from it, in order.
type Log struct {
	Calls []Call
}

func (l *Log) Executor(program string, respond Responder) *Fake {
	return &Fake{program: program, log: l, respond: respond}
}

// ByProgram returns the calls made to one program.
func (l *Log) ByProgram(program string) []Call {
	var calls []Call
	for _, c := range l.Calls {
		if c.Program == program {
			calls = append(calls, c)
		}
	}
	return calls
}

type Fake struct {
	program string
	log     *Log
	respond Responder
}

func (f *Fake) Invoke(args []string, files []string) ([]byte, error) {
	f.log.Calls = append(f.log.Calls, Call{
		Program: f.program,
		Args:    append([]string(nil), args...),
		Files:   append([]string(nil), files...),
	})
	if f.respond == nil {
		return nil, nil
	}
	return f.respond(args, files)
}

// Reporter keeps every reported line, prefixed by its kind. It satisfies
// runner.Console.
type Reporter struct {
	Lines []string
}

func (r *Reporter) Command(line string) { r.Lines = append(r.Lines, "RUN: "+line) }
func (r *Reporter) DryRun(line string) { r.Lines = append(r.Lines, "DRY-RUN: "+line) }
func (r *Reporter) Output(text string) { r.Lines = append(r.Lines, "OUT: "+text) }
func (r *Reporter) Header(text string) { r.Lines = append(r.Lines, "== "+text) }
func (r *Reporter) Line(text string)   { r.Lines = append(r.Lines, text) }
func (r *Reporter) Warn(text string)   { r.Lines = append(r.Lines, "WARN: "+text) }
