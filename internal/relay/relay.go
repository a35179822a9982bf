// Package relay hands a combined playthrough to a target game script.
package relay

import (
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/brandonbloom/playthru/internal/playthrough"
	"github.com/fatih/color"
)

// BannerHeader precedes the combined command string on the banner.
const BannerHeader = "--------------Executing combined command--------------"

// Invoker launches name with args and blocks until the process exits.
type Invoker interface {
	Invoke(name string, args []string) error
}

// ExecInvoker runs processes with os/exec, sharing the given streams.
type ExecInvoker struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Invoke implements Invoker.
func (x ExecInvoker) Invoke(name string, args []string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = x.Stdin
	cmd.Stdout = x.Stdout
	cmd.Stderr = x.Stderr
	return cmd.Run()
}

// ExecutionError reports a target script that failed to run or exited
// non-zero. ExitCode is -1 when no exit status is available.
type ExecutionError struct {
	Script   string
	ExitCode int
	Err      error
}

func (e *ExecutionError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("%s exited with status %d", e.Script, e.ExitCode)
	}
	return fmt.Sprintf("run %s: %v", e.Script, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

type exitCoder interface {
	ExitCode() int
}

// Executor relays a command sequence to a target script.
type Executor struct {
	Invoker     Invoker
	Interpreter string
	// Out receives the banner. Nil discards it.
	Out io.Writer
	// Color paints the banner header.
	Color bool
}

// Execute joins commands, prints the banner and runs the interpreter against
// script with the combined string as its only other argument. The script is
// run even when there are no commands.
func (e *Executor) Execute(commands []string, script string) error {
	combined := playthrough.Combine(commands)
	if err := e.writeBanner(combined); err != nil {
		return err
	}

	err := e.Invoker.Invoke(e.Interpreter, []string{script, combined})
	if err == nil {
		return nil
	}
	code := -1
	var coder exitCoder
	if errors.As(err, &coder) {
		code = coder.ExitCode()
	}
	return &ExecutionError{Script: script, ExitCode: code, Err: err}
}

func (e *Executor) writeBanner(combined string) error {
	out := e.Out
	if out == nil {
		out = io.Discard
	}
	header := BannerHeader
	if e.Color {
		c := color.New(color.FgBlue, color.Bold)
		c.EnableColor()
		header = c.Sprint(header)
	}
	_, err := fmt.Fprintf(out, "%s\n%s\n", header, combined)
	return err
}
