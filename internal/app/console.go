package app

import (
	"fmt"
	"io"

	tm "github.com/buger/goterm"
)

// Console prints the progress lines of a run to stdout. Their order is
// stable between a dry run and a real one.
type Console struct {
	out   io.Writer
	color bool
}

func NewConsole(out io.Writer, color bool) *Console {
	return &Console{out: out, color: color}
}

func (c *Console) Line(text string) {
	fmt.Fprintln(c.out, text)
}

func (c *Console) Header(text string) {
	c.Line(c.style(text, -1, true))
}

func (c *Console) Command(line string) {
	c.Line(c.style(line, tm.CYAN, true))
}

func (c *Console) DryRun(line string) {
	c.Line(c.style("DRY-RUN: "+line, tm.GREEN, false))
}

func (c *Console) Output(text string) {
	c.Line(text)
}

func (c *Console) Warn(text string) {
	c.Line(c.style(text, tm.RED, false))
}

func (c *Console) style(text string, color int, bold bool) string {
	if !c.color {
		return text
	}
	if color >= 0 {
		text = tm.Color(text, color)
	}
	if bold {
		text = tm.Bold(text)
	}
	return text
}
