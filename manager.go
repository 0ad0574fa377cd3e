// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interprog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// TaskManager is an ordered registry of tasks.
// It validates every transition, tracks the current task and reports a
// snapshot after each successful mutation.
//
// A TaskManager is not safe for concurrent use.
type TaskManager struct {
	tasks    map[string]*Task
	order    []string
	cursor   int
	silent   bool
	reporter Reporter
	logger   *slog.Logger
}

// Option configures a TaskManager.
type Option func(*TaskManager)

// WithReporter sets the reporter that receives every snapshot.
func WithReporter(r Reporter) Option {
	return func(m *TaskManager) {
		m.reporter = r
	}
}

// WithWriter reports snapshots as JSON lines written to w.
func WithWriter(w io.Writer) Option {
	return WithReporter(NewLineReporter(w))
}

// WithSilent suppresses all reporting. Mutations still happen.
func WithSilent() Option {
	return func(m *TaskManager) {
		m.silent = true
	}
}

// WithLogger sets the logger used to trace transitions at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(m *TaskManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewTaskManager creates an empty TaskManager that reports to standard output.
func NewTaskManager(opts ...Option) *TaskManager {
	m := &TaskManager{
		tasks:    make(map[string]*Task),
		reporter: NewLineReporter(os.Stdout),
		logger:   slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// SetSilent toggles reporting.
func (m *TaskManager) SetSilent(silent bool) {
	m.silent = silent
}

// Silent reports whether reporting is suppressed.
func (m *TaskManager) Silent() bool {
	return m.silent
}

// Len returns the number of registered tasks.
func (m *TaskManager) Len() int {
	return len(m.order)
}

// Cursor returns the index of the current task in insertion order.
// It is equal to the number of tasks that reached a terminal state through the manager.
func (m *TaskManager) Cursor() int {
	return m.cursor
}

// Lookup returns a copy of the named task.
func (m *TaskManager) Lookup(name string) (Task, error) {
	t, err := m.get(name)
	if err != nil {
		return Task{}, err
	}

	return *t, nil
}

// Current returns a copy of the task the shortcuts operate on.
func (m *TaskManager) Current() (Task, error) {
	name, err := m.current()
	if err != nil {
		return Task{}, err
	}

	return m.Lookup(name)
}

// Tasks returns the ordered snapshot of all tasks.
func (m *TaskManager) Tasks() Snapshot {
	snapshot := make(Snapshot, 0, len(m.order))
	for _, name := range m.order {
		snapshot = append(snapshot, *m.tasks[name])
	}

	return snapshot
}

// AddTask registers a pending task. Without WithTotal the task is a spinner.
func (m *TaskManager) AddTask(name string, opts ...TaskOption) error {
	if _, exists := m.tasks[name]; exists {
		return taskErr(ErrTaskAlreadyExists, name)
	}

	t := NewTask(name, opts...)
	m.tasks[name] = t
	m.order = append(m.order, name)

	m.logger.Debug("task added", "task", name, "spinner", IsSpinner(t.Progress))

	return m.report()
}

// SetTaskTotal changes the total of a task that has not started yet.
func (m *TaskManager) SetTaskTotal(name string, total int) error {
	t, err := m.get(name)
	if err != nil {
		return err
	}

	if err := notStarted(t); err != nil {
		return err
	}

	if err := t.SetTotal(total); err != nil {
		return err
	}

	m.logger.Debug("task total set", "task", name, "total", total)

	return m.report()
}

// StartTask moves a pending task to in progress if it has a total, or to running if it is a spinner.
func (m *TaskManager) StartTask(name string) error {
	t, err := m.get(name)
	if err != nil {
		return err
	}

	if err := notStarted(t); err != nil {
		return err
	}

	pending := t.Progress.(Pending) //nolint:forcetypeassert // checked by notStarted
	if pending.Total != nil {
		t.Progress = InProgress{Done: 0, Total: *pending.Total}
	} else {
		t.Progress = Running{}
	}

	m.logger.Debug("task started", "task", name, "status", t.Progress.Kind())

	return m.report()
}

type incrementConfig struct {
	by     int
	silent bool
}

// IncrementOption configures a single increment.
type IncrementOption func(*incrementConfig)

// By sets the number of units to add. The default is 1.
func By(n int) IncrementOption {
	return func(c *incrementConfig) {
		c.by = n
	}
}

// Strict makes an increment on a maxed out task fail with ErrMaxedOutTask
// instead of being skipped.
func Strict() IncrementOption {
	return func(c *incrementConfig) {
		c.silent = false
	}
}

// IncrementTask adds progress to a task with a known total.
//
// A pending task with a total is started implicitly and its done count set to 1,
// whatever the requested amount. Once done has reached total, the increment is
// skipped without reporting, unless Strict is given.
func (m *TaskManager) IncrementTask(name string, opts ...IncrementOption) error {
	cfg := incrementConfig{by: 1, silent: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.by < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIncrement, cfg.by)
	}

	t, err := m.get(name)
	if err != nil {
		return err
	}

	switch s := t.Progress.(type) {
	case Pending:
		if s.Total == nil {
			return fmt.Errorf("%w: task %q is a spinner", ErrInvalidTaskType, name)
		}

		t.Progress = InProgress{Done: min(1, *s.Total), Total: *s.Total}
	case InProgress:
		if s.maxedOut() {
			if cfg.silent {
				m.logger.Debug("task maxed out, increment skipped", "task", name, "done", s.Done, "total", s.Total)
				return nil
			}

			return fmt.Errorf("%w: task %q is at %d/%d", ErrMaxedOutTask, name, s.Done, s.Total)
		}

		t.Progress = InProgress{Done: s.Done + cfg.by, Total: s.Total}
	case Running:
		return fmt.Errorf("%w: task %q is a spinner", ErrInvalidTaskType, name)
	default:
		return taskErr(ErrTaskAlreadyFinished, name)
	}

	m.logger.Debug("task incremented", "task", name, "by", cfg.by, "progress", t.Progress)

	return m.report()
}

// FinishTask marks a task as finished and advances the cursor.
func (m *TaskManager) FinishTask(name string) error {
	return m.complete(name, Finished{})
}

// ErrorTask marks a task as failed with a reason and advances the cursor.
func (m *TaskManager) ErrorTask(name, message string) error {
	return m.complete(name, Error{Message: message})
}

func (m *TaskManager) complete(name string, terminal Status) error {
	t, err := m.get(name)
	if err != nil {
		return err
	}

	if t.Terminal() {
		return taskErr(ErrTaskAlreadyFinished, name)
	}

	t.Progress = terminal
	m.cursor++

	m.logger.Debug("task completed", "task", name, "status", terminal.Kind(), "cursor", m.cursor)

	return m.report()
}

func (m *TaskManager) get(name string) (*Task, error) {
	t, ok := m.tasks[name]
	if !ok {
		return nil, taskErr(ErrTaskNotFound, name)
	}

	return t, nil
}

func (m *TaskManager) current() (string, error) {
	if m.cursor >= len(m.order) {
		return "", fmt.Errorf("%w: all %d tasks have completed", ErrNoCurrentTask, len(m.order))
	}

	return m.order[m.cursor], nil
}

// notStarted returns an error unless the task is pending.
// A terminal task matches both ErrTaskAlreadyRunning and ErrTaskAlreadyFinished.
func notStarted(t *Task) error {
	switch t.Progress.(type) {
	case Pending:
		return nil
	case Finished, Error:
		return fmt.Errorf("%w: %w: %q", ErrTaskAlreadyRunning, ErrTaskAlreadyFinished, t.Name)
	default:
		return taskErr(ErrTaskAlreadyRunning, t.Name)
	}
}

func (m *TaskManager) report() error {
	if m.silent {
		return nil
	}

	if err := m.reporter.Report(m.Tasks()); err != nil {
		m.logger.Warn("snapshot not reported", "error", err)
		return errors.Join(ErrReport, err)
	}

	return nil
}
