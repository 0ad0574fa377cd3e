// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-aware logger that can be used to log messages.
// It uses the slog package for structured logging and supports different log levels.
//
// Every logger in this package writes to standard error. Standard output is
// reserved for progress snapshots and must never carry log text.
//
// The default is a pretty console handler to format the log messages in a human-readable way.
// The level is read from the INTERPROG_LOG_LEVEL environment variable.
package ctxlog
