// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/interprog"
)

const (
	durationRounding = 100 * time.Millisecond
	minHelpHeight    = 5
	ellipsis         = "..."
)

// SnapshotMsg carries a snapshot received from the worker.
type SnapshotMsg struct {
	Snapshot interprog.Snapshot
}

// LineMsg carries a line of worker output that was not a snapshot.
type LineMsg struct {
	Line string
}

// WorkerExitedMsg indicates that the worker has finished and the TUI should exit.
type WorkerExitedMsg struct {
	Err error
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case SnapshotMsg:
		m.applySnapshot(msg.Snapshot)
		return m, nil

	case LineMsg:
		m.lastLine = msg.Line
		return m, nil

	case WorkerExitedMsg:
		m.completed = true
		m.exitErr = msg.Err

		return m, tea.Quit
	}

	return m, nil
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	var view strings.Builder

	view.WriteString(m.styles.Title.Render(m.title))
	view.WriteString("\n")

	if len(m.rows) == 0 {
		view.WriteString(m.styles.Pending.Render("waiting for tasks..."))
		view.WriteString("\n")
	}

	now := m.now()
	for _, row := range m.rows {
		view.WriteString(m.renderRow(row, now))
		view.WriteString("\n")
	}

	if m.lastLine != "" && !m.completed {
		view.WriteString(m.styles.Output.Render(m.truncate(m.lastLine)))
		view.WriteString("\n")
	}

	if m.completed {
		view.WriteString("\n")
		view.WriteString(m.renderSummary())
		view.WriteString("\n")
	} else if m.quitting {
		view.WriteString("\nShutting down...\n")
	} else if m.height == 0 || m.height > minHelpHeight {
		view.WriteString(m.styles.Help.Render("'q' to stop watching"))
		view.WriteString("\n")
	}

	return view.String()
}

func (m *Model) renderRow(row *Row, now time.Time) string {
	task := row.Task

	var icon, name, detail string

	switch p := task.Progress.(type) {
	case interprog.Pending:
		icon = "·"
		name = m.styles.Pending.Render(task.Name)

		if p.Total != nil {
			detail = m.styles.Pending.Render(fmt.Sprintf("0/%d", *p.Total))
		}
	case interprog.Running:
		icon = m.spinner.View()
		name = m.styles.Running.Render(task.Name)
	case interprog.InProgress:
		icon = m.spinner.View()
		name = m.styles.Running.Render(task.Name)
		detail = m.bar.ViewAs(percent(p)) + " " + fmt.Sprintf("%d/%d", p.Done, p.Total)
	case interprog.Finished:
		icon = m.styles.Success.Render("✓")
		name = m.styles.Success.Render(task.Name)
	case interprog.Error:
		icon = m.styles.Failed.Render("✗")
		name = m.styles.Failed.Render(task.Name)
		detail = m.styles.Error.Render(m.truncate(firstLine(p.Message)))
	default:
		icon = "?"
		name = task.Name
	}

	line := icon + " " + name

	if elapsed, ok := row.Elapsed(now); ok {
		line += m.styles.Output.Render(fmt.Sprintf(" (%v)", elapsed.Round(durationRounding)))
	}

	if detail != "" {
		line += "  " + detail
	}

	return line
}

func (m *Model) renderSummary() string {
	var failed, finished int

	for _, row := range m.rows {
		switch row.Task.Progress.(type) {
		case interprog.Finished:
			finished++
		case interprog.Error:
			failed++
		}
	}

	switch {
	case m.exitErr != nil:
		return m.styles.Failed.Render(fmt.Sprintf("worker exited: %s", m.exitErr))
	case failed > 0:
		return m.styles.Failed.Render(fmt.Sprintf("%d of %d tasks failed", failed, len(m.rows)))
	case finished == len(m.rows):
		return m.styles.Success.Render(fmt.Sprintf("all %d tasks finished", len(m.rows)))
	default:
		return m.styles.Pending.Render(fmt.Sprintf("worker exited with %d of %d tasks finished", finished, len(m.rows)))
	}
}

func (m *Model) truncate(s string) string {
	if m.width <= len(ellipsis) || len(s) <= m.width {
		return s
	}

	return s[:m.width-len(ellipsis)] + ellipsis
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
