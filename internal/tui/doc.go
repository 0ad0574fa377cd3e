// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui renders progress snapshots. Model is a bubbletea model that
// shows every task of the latest snapshot: pending tasks greyed out, running
// tasks with a spinner, counted tasks with a progress bar, finished tasks
// ticked and failed tasks with their message.
//
// For observers without a terminal, PlainRow and PlainPrinter produce the
// same information as uncoloured text.
package tui
