// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package replay implements the replay command, which reads a captured
// progress stream and prints its snapshots.
package replay

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/interprog"
	"github.com/matt-FFFFFF/interprog/internal/color"
	"github.com/matt-FFFFFF/interprog/internal/ctxlog"
	"github.com/matt-FFFFFF/interprog/internal/tui"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	fileArg    = "file"
	allFlag    = "all"
	formatFlag = "format"
	stdinName  = "-"
	maxLineLen = 16 * 1024 * 1024
)

var (
	// ErrReadFile is returned when the file cannot be read.
	ErrReadFile = errors.New("failed to read file")
	// ErrNoSnapshots is returned when the stream contains no snapshots.
	ErrNoSnapshots = errors.New("no snapshots found")
	// ErrWriteSnapshot is returned when a snapshot cannot be written.
	ErrWriteSnapshot = errors.New("failed to write snapshot")
	// ErrUnknownFormat is returned for an unknown --format value.
	ErrUnknownFormat = errors.New("unknown format, use json or plain")
)

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// NewCommand returns the replay command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "Print the snapshots of a captured progress stream",
		Description: `Read a progress stream previously captured from a worker's stdout
and print its last snapshot, or every snapshot with --all.
Lines that are not snapshots are skipped. Use - to read standard input.`,
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: fileArg,
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        allFlag,
				Aliases:     []string{"a"},
				Usage:       "Print every snapshot rather than just the last",
				Value:       false,
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.StringFlag{
				Name:  formatFlag,
				Usage: "Output format: json or plain",
				Value: "json",
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg(fileArg)
	if name == "" {
		return cli.Exit("please specify a file, or - for stdin", 1)
	}

	var r io.Reader

	if name == stdinName {
		r = cmd.Root().Reader
	} else {
		f, err := FsFactory().Open(name)
		if err != nil {
			return errors.Join(ErrReadFile, err)
		}

		defer f.Close() //nolint:errcheck

		r = f
	}

	snapshots, skipped, err := ReadSnapshots(r)
	if err != nil {
		return err
	}

	ctxlog.Debug(ctx, "replay", "snapshots", len(snapshots), "skipped_lines", skipped)

	if len(snapshots) == 0 {
		return ErrNoSnapshots
	}

	if !cmd.Bool(allFlag) {
		snapshots = snapshots[len(snapshots)-1:]
	}

	write, err := writerFor(cmd.String(formatFlag))
	if err != nil {
		return err
	}

	for _, s := range snapshots {
		if err := write(cmd.Root().Writer, s); err != nil {
			return errors.Join(ErrWriteSnapshot, err)
		}
	}

	return nil
}

// ReadSnapshots decodes every snapshot line in r.
// It also returns the number of non-empty lines that were not snapshots.
func ReadSnapshots(r io.Reader) ([]interprog.Snapshot, int, error) {
	var (
		snapshots []interprog.Snapshot
		skipped   int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineLen)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		s, err := interprog.DecodeSnapshot(line)
		if err != nil {
			skipped++
			continue
		}

		snapshots = append(snapshots, s)
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, errors.Join(ErrReadFile, err)
	}

	return snapshots, skipped, nil
}

type writeFunc func(io.Writer, interprog.Snapshot) error

func writerFor(format string) (writeFunc, error) {
	switch format {
	case "json":
		return writeJSON, nil
	case "plain":
		return func(w io.Writer, s interprog.Snapshot) error {
			_, err := io.WriteString(w, tui.RenderPlain(s))
			return err //nolint:wrapcheck
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeJSON(w io.Writer, s interprog.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err //nolint:wrapcheck
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return err //nolint:wrapcheck
	}

	f := colorjson.NewFormatter()
	f.Indent = 2
	f.DisabledColor = !color.Enabled()

	out, err := f.Marshal(generic)
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = fmt.Fprintln(w, string(out))

	return err //nolint:wrapcheck
}
