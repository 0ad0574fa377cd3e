// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package drive implements the drive command, an interactive prompt that
// issues task manager operations by hand and emits the resulting snapshots.
package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matt-FFFFFF/interprog"
	"github.com/matt-FFFFFF/interprog/internal/ctxlog"
	"github.com/matt-FFFFFF/interprog/internal/tui"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const prompt = "interprog> "

var (
	// ErrUnknownCommand is returned for input that is not a drive command.
	ErrUnknownCommand = errors.New("unknown command, type help")
	// ErrUsage is returned when a command has the wrong arguments.
	ErrUsage = errors.New("usage")
)

const helpText = `Commands (task names cannot contain spaces):
  add NAME [TOTAL]          register a task, with a total for a progress bar
  total NAME N              set the total of a task that has not started
  start [NAME]              start NAME, or the current task
  inc [NAME] [BY] [strict]  increment NAME or the current task
  finish [NAME]             finish NAME, or the current task
  error MESSAGE...          put the current task in error
  fail NAME MESSAGE...      put NAME in error
  silent on|off             stop or resume emitting snapshots
  show                      print the tasks on stderr
  help                      print this help
  quit, exit                leave`

// lineReader is the part of liner.State used by the prompt loop.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// NewCommand returns the drive command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "drive",
		Usage: "Drive a task manager by hand from an interactive prompt",
		Description: `Start an interactive prompt that issues task manager operations and emits a
snapshot on stdout after each one, like a worker would. Pipe it into an observer
to exercise it by hand:

    interprog drive | interprog replay --all -

Errors and help go to stderr. Type help for the list of commands.`,
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	line := liner.NewLiner()
	defer line.Close() //nolint:errcheck

	line.SetCtrlCAborts(true)

	p := ""
	if f, ok := cmd.Root().Writer.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p = prompt
	}

	m := interprog.NewTaskManager(
		interprog.WithWriter(cmd.Root().Writer),
		interprog.WithLogger(ctxlog.Logger(ctx)),
	)

	fmt.Fprintln(cmd.Root().ErrWriter, "Entering drive mode, type `help` for commands, `quit` or Ctrl+C to leave.") //nolint:errcheck

	return repl(ctx, line, p, m, cmd.Root().ErrWriter)
}

// repl reads commands until quit, end of input or Ctrl+C.
func repl(ctx context.Context, r lineReader, p string, m *interprog.TaskManager, errOut io.Writer) error {
	for {
		if err := ctx.Err(); err != nil {
			return err //nolint:wrapcheck
		}

		input, err := r.Prompt(p)

		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			fmt.Fprintln(errOut, "Aborted") //nolint:errcheck
			return nil
		case err != nil:
			return fmt.Errorf("error reading line: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		r.AppendHistory(input)

		quit, err := execute(m, input, errOut)
		if err != nil {
			fmt.Fprintln(errOut, "error:", err) //nolint:errcheck
		}

		if quit {
			return nil
		}
	}
}

// execute runs one command line against m.
func execute(m *interprog.TaskManager, input string, errOut io.Writer) (bool, error) {
	fields := strings.Fields(input)
	verb, args := fields[0], fields[1:]

	switch verb {
	case "quit", "exit":
		return true, nil
	case "help":
		_, err := fmt.Fprintln(errOut, helpText)
		return false, err //nolint:wrapcheck
	case "show":
		_, err := io.WriteString(errOut, tui.RenderPlain(m.Tasks()))
		return false, err //nolint:wrapcheck
	case "add":
		return false, add(m, args)
	case "total":
		if len(args) != 2 { //nolint:mnd
			return false, fmt.Errorf("%w: total NAME N", ErrUsage)
		}

		n, err := strconv.Atoi(args[1])
		if err != nil {
			return false, fmt.Errorf("%w: total NAME N: %w", ErrUsage, err)
		}

		return false, m.SetTaskTotal(args[0], n) //nolint:wrapcheck
	case "start":
		return false, onNameOrCurrent(args, m.StartTask, m.Start)
	case "finish":
		return false, onNameOrCurrent(args, m.FinishTask, m.Finish)
	case "inc":
		return false, increment(m, args)
	case "error":
		if len(args) == 0 {
			return false, fmt.Errorf("%w: error MESSAGE", ErrUsage)
		}

		return false, m.Error(strings.Join(args, " ")) //nolint:wrapcheck
	case "fail":
		if len(args) < 2 { //nolint:mnd
			return false, fmt.Errorf("%w: fail NAME MESSAGE", ErrUsage)
		}

		return false, m.ErrorTask(args[0], strings.Join(args[1:], " ")) //nolint:wrapcheck
	case "silent":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return false, fmt.Errorf("%w: silent on|off", ErrUsage)
		}

		m.SetSilent(args[0] == "on")

		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownCommand, verb)
	}
}

func add(m *interprog.TaskManager, args []string) error {
	switch len(args) {
	case 1:
		return m.AddTask(args[0]) //nolint:wrapcheck
	case 2: //nolint:mnd
		total, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: add NAME [TOTAL]: %w", ErrUsage, err)
		}

		return m.AddTask(args[0], interprog.WithTotal(total)) //nolint:wrapcheck
	default:
		return fmt.Errorf("%w: add NAME [TOTAL]", ErrUsage)
	}
}

func onNameOrCurrent(args []string, named func(string) error, current func() error) error {
	switch len(args) {
	case 0:
		return current()
	case 1:
		return named(args[0])
	default:
		return fmt.Errorf("%w: expected at most one task name", ErrUsage)
	}
}

// increment parses [NAME] [BY] [strict]. A lone number is taken as BY for the current task.
func increment(m *interprog.TaskManager, args []string) error {
	var opts []interprog.IncrementOption

	if len(args) > 0 && args[len(args)-1] == "strict" {
		opts = append(opts, interprog.Strict())
		args = args[:len(args)-1]
	}

	name := ""

	switch len(args) {
	case 0:
	case 1:
		if by, err := strconv.Atoi(args[0]); err == nil {
			opts = append(opts, interprog.By(by))
		} else {
			name = args[0]
		}
	case 2: //nolint:mnd
		by, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: inc [NAME] [BY] [strict]: %w", ErrUsage, err)
		}

		name = args[0]
		opts = append(opts, interprog.By(by))
	default:
		return fmt.Errorf("%w: inc [NAME] [BY] [strict]", ErrUsage)
	}

	if name == "" {
		return m.Increment(opts...) //nolint:wrapcheck
	}

	return m.IncrementTask(name, opts...) //nolint:wrapcheck
}
