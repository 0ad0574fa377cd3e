// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the interprog command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/interprog"
	"github.com/matt-FFFFFF/interprog/cmd/interprog/drive"
	"github.com/matt-FFFFFF/interprog/cmd/interprog/replay"
	"github.com/matt-FFFFFF/interprog/cmd/interprog/run"
	"github.com/matt-FFFFFF/interprog/cmd/interprog/version"
	"github.com/matt-FFFFFF/interprog/cmd/interprog/watch"
	"github.com/matt-FFFFFF/interprog/internal/ctxlog"
	"github.com/matt-FFFFFF/interprog/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const (
	logLevelFlag  = "log-level"
	logFormatFlag = "log-format"
)

func newRootCmd() *cli.Command {
	return &cli.Command{
		Commands: []*cli.Command{
			run.NewCommand(),
			watch.NewCommand(),
			replay.NewCommand(),
			drive.NewCommand(),
			version.NewCommand(),
		},
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Name:      "interprog",
		Description: `interprog reports the progress of a worker process to whoever is watching it.
The worker writes one JSON snapshot of all of its tasks per line on standard output,
and an observer reads the stream and renders it. Logs always go to standard error.`,
		Usage:     "interprog watch -- interprog run -f plan.yaml",
		Version:   fmt.Sprintf("%s (commit: %s)", interprog.Version, interprog.Commit),
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    logLevelFlag,
				Usage:   "Set the log level: debug, info, warn or error",
				Sources: cli.EnvVars(ctxlog.LogLevelEnvVar),
			},
			&cli.StringFlag{
				Name:  logFormatFlag,
				Usage: "Set the log format: pretty, json or none",
				Value: "pretty",
			},
		},
		Before: setupLogging,
	}
}

func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if lvl := cmd.String(logLevelFlag); lvl != "" {
		level, err := ctxlog.ParseLevel(lvl)
		if err != nil {
			return ctx, cli.Exit(err.Error(), 1)
		}

		ctxlog.LevelVar.Set(level)
	}

	logger, err := ctxlog.NewForFormat(cmd.String(logFormatFlag), cmd.ErrWriter)
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}

	return ctxlog.New(ctx, logger), nil
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	relay := &signalbroker.Relay{}
	ctx = signalbroker.NewContext(ctx, relay)

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(ctx, sigCh, cancel, signalbroker.Forwarder(ctx, relay))

	err := newRootCmd().Run(ctx, os.Args) // Err is handled by cli framework

	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1) //nolint:gocritic
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Logger(ctx).Debug("command completed successfully")
}
