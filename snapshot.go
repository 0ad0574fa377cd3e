// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interprog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Snapshot is the complete, ordered list of tracked tasks at one instant.
type Snapshot []Task

// MarshalJSON implements json.Marshaler. An empty snapshot encodes as [] rather than null.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}

	return json.Marshal([]Task(s))
}

// Lookup returns the task with the given name.
func (s Snapshot) Lookup(name string) (Task, bool) {
	for _, t := range s {
		if t.Name == name {
			return t, true
		}
	}

	return Task{}, false
}

// Done reports whether every task in the snapshot is terminal.
// An empty snapshot is not done.
func (s Snapshot) Done() bool {
	if len(s) == 0 {
		return false
	}

	for _, t := range s {
		if !t.Terminal() {
			return false
		}
	}

	return true
}

// Failed returns the tasks that ended in an error.
func (s Snapshot) Failed() []Task {
	var failed []Task

	for _, t := range s {
		if _, ok := t.Progress.(Error); ok {
			failed = append(failed, t)
		}
	}

	return failed
}

// DecodeSnapshot parses one line of the output stream.
// Surrounding whitespace, including the trailing newline, is ignored.
func DecodeSnapshot(line []byte) (Snapshot, error) {
	line = bytes.TrimSpace(line)

	var tasks []Task
	if err := json.Unmarshal(line, &tasks); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	if tasks == nil {
		return nil, fmt.Errorf("decoding snapshot: %s is not a task list", line)
	}

	return Snapshot(tasks), nil
}
