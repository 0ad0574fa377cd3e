// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interprog

import (
	"encoding/json"
	"fmt"
)

// Task pairs a unique name with its current progress.
// The progress field is serialized under "progress" so that the discriminant
// lives in its own object and consumers can decode it without flattening.
type Task struct {
	Name     string `json:"name"`
	Progress Status `json:"progress"`
}

// TaskOption configures a task at construction.
type TaskOption func(*Task)

// WithTotal gives the task a known number of units, making it a progress bar
// instead of a spinner.
func WithTotal(total int) TaskOption {
	return func(t *Task) {
		t.Progress = Pending{Total: &total}
	}
}

// NewTask creates a pending task. Without WithTotal the task is a spinner.
func NewTask(name string, opts ...TaskOption) *Task {
	t := &Task{
		Name:     name,
		Progress: Pending{},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Rename replaces the task name in place.
// It is not aware of any TaskManager the task is registered with.
func (t *Task) Rename(name string) {
	t.Name = name
}

// SetTotal overwrites the total of the current status.
// Only Pending and InProgress carry a total; any other status returns ErrInvalidTaskType.
func (t *Task) SetTotal(total int) error {
	switch s := t.Progress.(type) {
	case Pending:
		t.Progress = Pending{Total: &total}
	case InProgress:
		t.Progress = InProgress{Done: s.Done, Total: total}
	default:
		return fmt.Errorf("%w: %s task %q has no total", ErrInvalidTaskType, s.Kind(), t.Name)
	}

	return nil
}

// Terminal reports whether the task has finished or errored.
func (t Task) Terminal() bool {
	return IsTerminal(t.Progress)
}

// UnmarshalJSON implements json.Unmarshaler, dispatching on the progress discriminant.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     string          `json:"name"`
		Progress json.RawMessage `json:"progress"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding task: %w", err)
	}

	progress, err := DecodeStatus(raw.Progress)
	if err != nil {
		return fmt.Errorf("task %q: %w", raw.Name, err)
	}

	t.Name = raw.Name
	t.Progress = progress

	return nil
}
