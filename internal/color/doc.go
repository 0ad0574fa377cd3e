// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes.
//
// Whether colour is wanted depends on the stream being written to. NO_COLOR
// always disables it, FORCE_COLOR enables it, and otherwise the stream must be
// a terminal (checked with golang.org/x/term). Standard output and standard
// error are checked separately because a worker's stdout is usually a pipe
// while its stderr is still the user's terminal.
package color
