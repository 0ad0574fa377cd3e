// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interprog

// The methods below operate on the current task: the task at position Cursor()
// in insertion order. The cursor moves forward by one each time a task is
// finished or errored, so for a worker that completes its tasks in order the
// current task is the first unfinished one. Once the cursor has passed the last
// task they return ErrNoCurrentTask.

// Start starts the current task. See StartTask.
func (m *TaskManager) Start() error {
	name, err := m.current()
	if err != nil {
		return err
	}

	return m.StartTask(name)
}

// Increment adds progress to the current task. See IncrementTask.
func (m *TaskManager) Increment(opts ...IncrementOption) error {
	name, err := m.current()
	if err != nil {
		return err
	}

	return m.IncrementTask(name, opts...)
}

// Finish finishes the current task and moves on to the next one. See FinishTask.
func (m *TaskManager) Finish() error {
	name, err := m.current()
	if err != nil {
		return err
	}

	return m.FinishTask(name)
}

// Error fails the current task and moves on to the next one. See ErrorTask.
func (m *TaskManager) Error(message string) error {
	name, err := m.current()
	if err != nil {
		return err
	}

	return m.ErrorTask(name, message)
}
