// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	bar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/interprog"
)

const (
	defaultBarWidth = 30
	defaultTitle    = "interprog"
)

// Row is a task of the latest snapshot plus the times it was first seen
// working and first seen finished.
type Row struct {
	Task      interprog.Task
	StartTime *time.Time
	EndTime   *time.Time
}

func (r *Row) apply(task interprog.Task, now time.Time) {
	r.Task = task

	switch task.Progress.(type) {
	case interprog.Running, interprog.InProgress:
		if r.StartTime == nil {
			r.StartTime = &now
		}
	case interprog.Finished, interprog.Error:
		if r.StartTime == nil {
			r.StartTime = &now
		}

		if r.EndTime == nil {
			r.EndTime = &now
		}
	}
}

// Elapsed returns how long the task has been working, and false if it never started.
func (r *Row) Elapsed(now time.Time) (time.Duration, bool) {
	if r.StartTime == nil {
		return 0, false
	}

	if r.EndTime != nil {
		return r.EndTime.Sub(*r.StartTime), true
	}

	return now.Sub(*r.StartTime), true
}

// Model represents the TUI application state.
type Model struct {
	title     string
	rows      []*Row
	index     map[string]*Row
	snapshots int
	lastLine  string
	width     int
	height    int
	quitting  bool
	completed bool
	exitErr   error
	now       func() time.Time

	spinner spinner.Model
	bar     bar.Model
	styles  *Styles
}

// Styles contains all the styling for the TUI.
type Styles struct {
	Title   lipgloss.Style
	Pending lipgloss.Style
	Running lipgloss.Style
	Success lipgloss.Style
	Failed  lipgloss.Style
	Output  lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
}

// NewStyles creates the default styling for the TUI.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1),
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Output: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			MarginTop(1),
	}
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithTitle sets the heading shown above the tasks.
func WithTitle(title string) ModelOption {
	return func(m *Model) {
		m.title = title
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// NewModel creates a new TUI model with no tasks.
func NewModel(opts ...ModelOption) *Model {
	m := &Model{
		title:   defaultTitle,
		index:   make(map[string]*Row),
		now:     time.Now,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		bar:     bar.New(bar.WithDefaultGradient(), bar.WithWidth(defaultBarWidth), bar.WithoutPercentage()),
		styles:  NewStyles(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Rows returns the rows in snapshot order.
func (m *Model) Rows() []*Row {
	return m.rows
}

// Completed reports whether the worker has exited.
func (m *Model) Completed() bool {
	return m.completed
}

// ExitErr returns the error the worker exited with, if any.
func (m *Model) ExitErr() error {
	return m.exitErr
}

// applySnapshot replaces the rows with the snapshot's tasks, in its order.
// Timing is carried over for tasks that are still present under the same name.
func (m *Model) applySnapshot(snapshot interprog.Snapshot) {
	now := m.now()
	rows := make([]*Row, 0, len(snapshot))
	index := make(map[string]*Row, len(snapshot))

	for _, task := range snapshot {
		row, ok := m.index[task.Name]
		if !ok {
			row = &Row{}
		}

		row.apply(task, now)
		rows = append(rows, row)
		index[task.Name] = row
	}

	m.rows = rows
	m.index = index
	m.snapshots++
}

// percent returns the fraction done for the progress bar, capped at one.
func percent(p interprog.InProgress) float64 {
	if p.Total <= 0 || p.Done >= p.Total {
		return 1
	}

	return float64(p.Done) / float64(p.Total)
}
