// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements the run command, which acts as a worker: it loads a
// plan and emits a progress snapshot on standard output for every change.
package run

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/interprog"
	"github.com/matt-FFFFFF/interprog/internal/ctxlog"
	"github.com/matt-FFFFFF/interprog/internal/plan"
	"github.com/matt-FFFFFF/interprog/internal/tui"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag   = "file"
	silentFlag = "silent"
	tuiFlag    = "tui"
	cliExitStr = ""
)

// ErrTasksFailed is returned when the plan completed with at least one failed task.
var ErrTasksFailed = errors.New("one or more tasks failed")

// NewCommand returns the run command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run a plan and report its progress as NDJSON on stdout",
		Description: `Run the tasks of a plan file, emitting one JSON snapshot per line on stdout.

Plan files are YAML (.yaml, .yml) or HCL (.hcl). URLs use Hashicorp's go-getter syntax,
which allows for fetching files from various sources. See https://github.com/hashicorp/go-getter.

With --tui the progress is rendered in the terminal instead of being emitted.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      fileFlag,
				Aliases:   []string{"f"},
				Usage:     "Specify the path or go-getter URL of the plan file",
				TakesFile: true,
				Required:  true,
				OnlyOnce:  true,
			},
			&cli.BoolFlag{
				Name:        silentFlag,
				Aliases:     []string{"s"},
				Usage:       "Do not emit snapshots",
				Value:       false,
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.BoolFlag{
				Name:        tuiFlag,
				Aliases:     []string{"t", "interactive"},
				Usage:       "Render progress in the terminal instead of emitting NDJSON",
				Value:       false,
				DefaultText: "false",
				OnlyOnce:    true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("Running run command")

	p, err := plan.Load(ctx, cmd.String(fileFlag))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load plan %s: %s", cmd.String(fileFlag), err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	var snapshot interprog.Snapshot

	if cmd.Bool(tuiFlag) {
		snapshot, err = runWithTUI(ctx, p)
	} else {
		opts := []interprog.Option{
			interprog.WithWriter(cmd.Root().Writer),
			interprog.WithLogger(logger),
		}

		if cmd.Bool(silentFlag) {
			opts = append(opts, interprog.WithSilent())
		}

		m := interprog.NewTaskManager(opts...)
		err = plan.Run(ctx, p, m)
		snapshot = m.Tasks()
	}

	if err != nil {
		logger.Error("Plan did not complete", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	if failed := snapshot.Failed(); len(failed) > 0 {
		for _, t := range failed {
			logger.Warn("task failed", "task", t.Name, "message", t.Progress.(interprog.Error).Message)
		}

		return cli.Exit(ErrTasksFailed.Error(), 1)
	}

	return nil
}

func runWithTUI(ctx context.Context, p *plan.Plan) (interprog.Snapshot, error) {
	runner := tui.NewRunner(tui.NewModel(tui.WithTitle(p.Name)), tea.WithContext(ctx))
	m := interprog.NewTaskManager(interprog.WithReporter(runner.Reporter()), interprog.WithLogger(ctxlog.DiscardLogger))

	err := runner.Run(ctx, func(ctx context.Context) error {
		return plan.Run(ctx, p, m)
	})

	return m.Tasks(), err
}
