// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package version implements the version command.
package version

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/interprog"
	"github.com/urfave/cli/v3"
)

// NewCommand returns the command that prints the build version.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the version and commit this binary was built from",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(cmd.Root().Writer, "interprog %s (commit: %s)\n", interprog.Version, interprog.Commit)
			return err //nolint:wrapcheck
		},
	}
}
