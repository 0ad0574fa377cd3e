// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interprog

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Reporter is the interface for emitting snapshots.
// The TaskManager calls Report synchronously after every successful mutation.
type Reporter interface {
	// Report delivers a snapshot. It must not retain the slice after returning
	// unless it owns a copy.
	Report(snapshot Snapshot) error
	// Close signals that no more snapshots will be sent and cleans up resources.
	Close()
}

var (
	_ Reporter = (*LineReporter)(nil)
	_ Reporter = (*NullReporter)(nil)
)

// LineReporter writes each snapshot as one line of JSON.
// Each Report performs exactly one Write of the encoded line and its newline.
type LineReporter struct {
	w  io.Writer
	mu sync.Mutex
}

// NewLineReporter creates a LineReporter writing to w.
func NewLineReporter(w io.Writer) *LineReporter {
	return &LineReporter{w: w}
}

// Report implements Reporter.Report.
func (lr *LineReporter) Report(snapshot Snapshot) error {
	line, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	line = append(line, '\n')

	lr.mu.Lock()
	defer lr.mu.Unlock()

	if _, err := lr.w.Write(line); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// Close implements Reporter.Close by doing nothing. The writer is owned by the caller.
func (lr *LineReporter) Close() {}

// NullReporter is a no-op implementation of Reporter.
// Used when the snapshots are not needed.
type NullReporter struct{}

// Report implements Reporter.Report by doing nothing.
func (nr *NullReporter) Report(Snapshot) error {
	return nil
}

// Close implements Reporter.Close by doing nothing.
func (nr *NullReporter) Close() {}

// NewNullReporter creates a new NullReporter.
func NewNullReporter() Reporter {
	return &NullReporter{}
}

// FuncReporter adapts a function to the Reporter interface.
type FuncReporter func(Snapshot) error

// Report implements Reporter.Report.
func (f FuncReporter) Report(snapshot Snapshot) error {
	return f(snapshot)
}

// Close implements Reporter.Close by doing nothing.
func (f FuncReporter) Close() {}
