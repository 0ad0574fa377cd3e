// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package watch implements the watch command, which starts a worker process
// and renders the progress snapshots it writes on standard output.
package watch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/matt-FFFFFF/interprog"
	"github.com/matt-FFFFFF/interprog/internal/ctxlog"
	"github.com/matt-FFFFFF/interprog/internal/signalbroker"
	"github.com/matt-FFFFFF/interprog/internal/teereader"
	"github.com/matt-FFFFFF/interprog/internal/tui"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const (
	plainFlag     = "plain"
	waitDelayFlag = "wait-delay"
	cliExitStr    = ""
)

var (
	// ErrNoCommand is returned when no worker command is given.
	ErrNoCommand = errors.New("no worker command given, use: interprog watch -- CMD ARGS")
	// ErrWorker is returned when the worker cannot be started or exits unsuccessfully.
	ErrWorker = errors.New("worker failed")
)

// NewCommand returns the watch command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Start a worker and render its progress",
		ArgsUsage: "-- CMD [ARGS...]",
		Description: `Start CMD as a worker process and read progress snapshots from its stdout.

When stdout is a terminal the progress is shown in an interactive view,
otherwise a line is printed each time a task changes. Lines from the worker
that are not snapshots are logged at debug level. The worker's stderr is passed
through once it exits.

The first interrupt or terminate signal is forwarded to the worker, a second one
stops watching.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        plainFlag,
				Aliases:     []string{"p"},
				Usage:       "Print plain text even when stdout is a terminal",
				Value:       false,
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.DurationFlag{
				Name:  waitDelayFlag,
				Usage: "How long to wait for the worker to exit after it is told to stop",
				Value: 5 * time.Second, //nolint:mnd
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	args := cmd.Args().Slice()
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}

	if len(args) == 0 {
		logger.Error(ErrNoCommand.Error())
		return cli.Exit(cliExitStr, 1)
	}

	w := &worker{
		args:      args,
		waitDelay: cmd.Duration(waitDelayFlag),
		relay:     signalbroker.RelayFromContext(ctx),
	}

	var (
		last interprog.Snapshot
		err  error
	)

	if useTUI(cmd) {
		last, err = watchTUI(ctx, cmd, w)
	} else {
		last, err = watchPlain(ctx, cmd, w)
	}

	if err != nil {
		logger.Error("Worker did not complete", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	if failed := last.Failed(); len(failed) > 0 {
		logger.Warn(fmt.Sprintf("%d of %d tasks failed", len(failed), len(last)))
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

func useTUI(cmd *cli.Command) bool {
	if cmd.Bool(plainFlag) {
		return false
	}

	f, ok := cmd.Root().Writer.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

func watchPlain(ctx context.Context, cmd *cli.Command, w *worker) (interprog.Snapshot, error) {
	logger := ctxlog.Logger(ctx)
	printer := tui.NewPlainPrinter(cmd.Root().Writer)

	w.stderr = cmd.Root().ErrWriter
	w.onSnapshot = func(s interprog.Snapshot) {
		if err := printer.Print(s); err != nil {
			logger.Warn("failed to print snapshot", "error", err)
		}
	}
	w.onLine = func(line string) {
		logger.Debug("worker output", "line", line)
	}

	return w.run(ctx)
}

func watchTUI(ctx context.Context, cmd *cli.Command, w *worker) (interprog.Snapshot, error) {
	stderr := &bytes.Buffer{}
	defer stderr.WriteTo(cmd.Root().ErrWriter) //nolint:errcheck

	runner := tui.NewRunner(tui.NewModel(tui.WithTitle(strings.Join(w.args, " "))))

	w.stderr = stderr
	w.onSnapshot = func(s interprog.Snapshot) {
		runner.Send(tui.SnapshotMsg{Snapshot: s})
	}
	w.onLine = func(line string) {
		runner.Send(tui.LineMsg{Line: line})
	}

	var last interprog.Snapshot

	err := runner.Run(ctxlog.New(ctx, ctxlog.DiscardLogger), func(ctx context.Context) error {
		var err error

		last, err = w.run(ctx)

		return err
	})

	return last, err
}

// worker is a child process whose stdout carries progress snapshots.
type worker struct {
	args       []string
	waitDelay  time.Duration
	stderr     io.Writer
	relay      *signalbroker.Relay
	onSnapshot func(interprog.Snapshot)
	onLine     func(string)
}

// run starts the worker, reads its stdout to the end and waits for it to exit.
// It returns the last snapshot the worker wrote.
func (w *worker) run(ctx context.Context) (interprog.Snapshot, error) {
	logger := ctxlog.Logger(ctx)

	c := exec.CommandContext(ctx, w.args[0], w.args[1:]...) //nolint:gosec
	c.Stderr = w.stderr
	c.WaitDelay = w.waitDelay
	c.Cancel = func() error {
		return c.Process.Signal(os.Interrupt)
	}

	stdout, err := c.StdoutPipe()
	if err != nil {
		return nil, errors.Join(ErrWorker, err)
	}

	if err := c.Start(); err != nil {
		return nil, errors.Join(ErrWorker, err)
	}

	logger.Debug("worker started", "pid", c.Process.Pid, "args", w.args)

	w.relay.Attach(c.Process)
	defer w.relay.Attach(nil)

	tee := teereader.NewSnapshotTeeReader(stdout,
		teereader.WithSnapshotFunc(w.onSnapshot),
		teereader.WithLineFunc(w.onLine),
	)

	if _, err := io.Copy(io.Discard, tee); err != nil {
		logger.Debug("reading worker stdout stopped", "error", err)
	}

	waitErr := c.Wait()
	last, _ := tee.LastSnapshot()

	logger.Debug("worker exited", "snapshots", tee.SnapshotCount(), "error", waitErr)

	if waitErr != nil {
		return last, errors.Join(ErrWorker, waitErr)
	}

	return last, nil
}
