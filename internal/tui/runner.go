// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/interprog"
	"github.com/matt-FFFFFF/interprog/internal/ctxlog"
	"github.com/oklog/run"
)

// Runner manages the TUI program and the work it observes.
type Runner struct {
	model    *Model
	program  *tea.Program
	reporter *Reporter
}

var _ interprog.Reporter = (*Reporter)(nil)

// Reporter implements interprog.Reporter and forwards snapshots to the TUI.
type Reporter struct {
	program *tea.Program
	closed  bool
	mutex   sync.RWMutex
}

// NewReporter creates a new reporter that sends snapshots to program.
func NewReporter(program *tea.Program) *Reporter {
	return &Reporter{
		program: program,
	}
}

// Report implements interprog.Reporter.Report.
func (tr *Reporter) Report(snapshot interprog.Snapshot) error {
	tr.mutex.RLock()
	defer tr.mutex.RUnlock()

	if tr.closed || tr.program == nil {
		return nil
	}

	tr.program.Send(SnapshotMsg{Snapshot: snapshot})

	return nil
}

// Close implements interprog.Reporter.Close.
func (tr *Reporter) Close() {
	tr.mutex.Lock()
	defer tr.mutex.Unlock()

	tr.closed = true
}

// NewRunner creates a new TUI runner. Program options are passed to bubbletea.
func NewRunner(model *Model, opts ...tea.ProgramOption) *Runner {
	program := tea.NewProgram(model, opts...)

	return &Runner{
		model:    model,
		program:  program,
		reporter: NewReporter(program),
	}
}

// Reporter returns the reporter that feeds this runner's TUI.
func (r *Runner) Reporter() *Reporter {
	return r.reporter
}

// Model returns the model. It must only be read once Run has returned.
func (r *Runner) Model() *Model {
	return r.model
}

// Send passes a message to the TUI.
func (r *Runner) Send(msg tea.Msg) {
	r.program.Send(msg)
}

// Run starts the TUI and runs work alongside it.
//
// When work returns, the TUI shows the final state and exits.
// When the user quits the TUI or ctx is done, the context given to work is cancelled.
// The error from work is returned in preference to any TUI error.
func (r *Runner) Run(ctx context.Context, work func(context.Context) error) error {
	var (
		g       run.Group
		workErr error
	)

	// Work.
	{
		workCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				workErr = work(workCtx)
				return workErr
			},
			func(_ error) {
				cancel()
			},
		)
	}

	// TUI.
	{
		g.Add(
			func() error {
				_, err := r.program.Run()
				return err //nolint:wrapcheck
			},
			func(err error) {
				r.reporter.Close()
				r.program.Send(WorkerExitedMsg{Err: err})
				r.program.Quit()
			},
		)
	}

	// Context cancellation.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				<-ctx.Done()
				return ctx.Err()
			},
			func(_ error) {
				cancel()
			},
		)
	}

	err := g.Run()

	ctxlog.Debug(ctx, "tui runner finished", "work_error", workErr, "error", err)

	if workErr != nil {
		return workErr
	}

	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}

	return err
}
