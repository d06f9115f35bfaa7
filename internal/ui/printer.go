package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

// Printer writes styled command output.
type Printer struct {
	out         io.Writer
	width       int
	interactive bool
}

// NewPrinter creates a Printer writing to w. If w is nil, os.Stdout is used.
// Running steps are redrawn in place only when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	p := &Printer{out: w, width: MinTerminalWidth}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		width, _, err := term.GetSize(int(f.Fd()))
		p.width = clampWidth(width, err)
		p.interactive = true
	}
	return p
}

// Width returns the rendering width.
func (p *Printer) Width() int {
	return p.width
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box.
func (p *Printer) PrintHeader(title, command string, params ...Param) {
	p.Println(NewHeader(title, command, params...).SetWidth(p.width).Render())
	p.Newline()
}

// PrintSuccess prints a success result box.
func (p *Printer) PrintSuccess(title string, details ...Param) {
	p.Println(NewSuccessResult(title, details...).SetWidth(p.width).Render())
}

// PrintFailure prints a failure result box with troubleshooting tips.
func (p *Printer) PrintFailure(title string, err error, hints ...string) {
	p.Println(NewFailureResult(title, err, hints...).SetWidth(p.width).Render())
}

// PrintWarning prints a warning result box.
func (p *Printer) PrintWarning(title string, details ...Param) {
	p.Println(NewWarningResult(title, details...).SetWidth(p.width).Render())
}

// ListItem is one numbered entry in a printed list.
type ListItem struct {
	Title   string
	Details []Param
}

// PrintList prints numbered entries with indented details.
func (p *Printer) PrintList(items []ListItem) {
	for i, item := range items {
		p.Println(HeaderTitleStyle.Render(strconv.Itoa(i+1) + ". " + item.Title))
		for _, d := range item.Details {
			if d.Value == "" {
				continue
			}
			p.Println("   " + ResultKeyStyle.Render(d.Key+":") + " " + ResultValueStyle.Render(d.Value))
		}
		p.Newline()
	}
}

// StepStatus is the state of one step of a task.
type StepStatus int

const (
	StepRunning StepStatus = iota
	StepDone
	StepFailed
	StepSkipped
)

// StepCallback reports progress of a task step.
type StepCallback func(name string, status StepStatus, note string)

// Task describes a command printed as header, steps and result.
type Task struct {
	Title   string
	Command string
	Params  []Param
	// Hints returns troubleshooting tips for a failure.
	Hints func(err error) []string
}

// Operation performs a task, reporting steps through onStep. The returned
// details are shown in the success box.
type Operation func(onStep StepCallback) ([]Param, error)

// RunTask prints the task header, runs op and prints its result.
func (p *Printer) RunTask(task Task, op Operation) error {
	start := time.Now()
	p.PrintHeader(task.Title, task.Command, task.Params...)

	details, err := op(p.step)
	elapsed := time.Since(start).Round(time.Millisecond)
	p.Newline()

	if err != nil {
		var hints []string
		if task.Hints != nil {
			hints = task.Hints(err)
		}
		p.PrintFailure(task.Title+" failed", err, hints...)
		return err
	}

	details = append(details, Param{Key: "Duration", Value: elapsed.String()})
	p.PrintSuccess(task.Title+" complete", details...)
	return nil
}

func (p *Printer) step(name string, status StepStatus, note string) {
	var line string
	switch status {
	case StepRunning:
		if !p.interactive {
			return
		}
		_, _ = fmt.Fprint(p.out, "  "+StepRunningStyle.Render(RunningMarker+" "+name)+"\r")
		return
	case StepDone:
		line = StepDoneStyle.Render(SuccessMarker + " " + name)
	case StepFailed:
		line = ErrorTitleStyle.Render(FailureMarker + " " + name)
	case StepSkipped:
		line = StepNoteStyle.Render("- " + name)
	}
	if note != "" {
		line += "  " + StepNoteStyle.Render("("+note+")")
	}
	if p.interactive {
		// clear the running line
		line += strings.Repeat(" ", 8)
	}
	p.Println("  " + line)
}
