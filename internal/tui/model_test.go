// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/interprog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

// fakeClock returns a clock that advances only when told to.
func fakeClock() (func() time.Time, func(time.Duration)) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func send(t *testing.T, m *Model, msgs ...tea.Msg) tea.Cmd {
	t.Helper()

	var cmd tea.Cmd

	for _, msg := range msgs {
		var model tea.Model

		model, cmd = m.Update(msg)
		require.Same(t, m, model)
	}

	return cmd
}

func TestModel_ApplySnapshotKeepsOrderAndTiming(t *testing.T) {
	clock, advance := fakeClock()
	m := NewModel(WithClock(clock))

	send(t, m, SnapshotMsg{Snapshot: interprog.Snapshot{
		{Name: "fetch", Progress: interprog.Running{}},
		{Name: "build", Progress: interprog.Pending{}},
	}})

	require.Len(t, m.Rows(), 2)
	assert.Equal(t, "fetch", m.Rows()[0].Task.Name)
	assert.NotNil(t, m.Rows()[0].StartTime)
	assert.Nil(t, m.Rows()[1].StartTime)

	advance(1500 * time.Millisecond)

	send(t, m, SnapshotMsg{Snapshot: interprog.Snapshot{
		{Name: "fetch", Progress: interprog.Finished{}},
		{Name: "build", Progress: interprog.Running{}},
	}})

	elapsed, ok := m.Rows()[0].Elapsed(clock())
	require.True(t, ok)
	assert.Equal(t, 1500*time.Millisecond, elapsed)

	advance(time.Second)

	elapsed, ok = m.Rows()[0].Elapsed(clock())
	require.True(t, ok)
	assert.Equal(t, 1500*time.Millisecond, elapsed, "finished tasks stop the clock")

	_, ok = (&Row{}).Elapsed(clock())
	assert.False(t, ok)
}

func TestModel_RenamedTaskIsNewRow(t *testing.T) {
	m := NewModel()

	send(t, m, SnapshotMsg{Snapshot: interprog.Snapshot{{Name: "old", Progress: interprog.Running{}}}})
	send(t, m, SnapshotMsg{Snapshot: interprog.Snapshot{{Name: "new", Progress: interprog.Running{}}}})

	require.Len(t, m.Rows(), 1)
	assert.Equal(t, "new", m.Rows()[0].Task.Name)
	assert.Len(t, m.index, 1)
}

func TestModel_View(t *testing.T) {
	m := NewModel(WithTitle("deploy"))

	view := m.View()
	assert.Contains(t, view, "deploy")
	assert.Contains(t, view, "waiting for tasks")

	send(t, m,
		tea.WindowSizeMsg{Width: 80, Height: 24},
		SnapshotMsg{Snapshot: interprog.Snapshot{
			{Name: "queued", Progress: interprog.Pending{Total: intPtr(4)}},
			{Name: "spinning", Progress: interprog.Running{}},
			{Name: "counting", Progress: interprog.InProgress{Done: 3, Total: 10}},
			{Name: "done", Progress: interprog.Finished{}},
			{Name: "broken", Progress: interprog.Error{Message: "disk full\nsecond line"}},
		}},
		LineMsg{Line: "worker says hi"},
	)

	view = m.View()
	for _, want := range []string{"queued", "0/4", "spinning", "counting", "3/10", "done", "✓", "broken", "✗", "disk full", "worker says hi", "'q'"} {
		assert.Contains(t, view, want)
	}

	assert.NotContains(t, view, "second line")
	assert.NotContains(t, view, "waiting for tasks")
}

func TestModel_WorkerExited(t *testing.T) {
	tests := []struct {
		name     string
		snapshot interprog.Snapshot
		err      error
		summary  string
	}{
		{
			name:     "all finished",
			snapshot: interprog.Snapshot{{Name: "a", Progress: interprog.Finished{}}},
			summary:  "all 1 tasks finished",
		},
		{
			name: "one failed",
			snapshot: interprog.Snapshot{
				{Name: "a", Progress: interprog.Finished{}},
				{Name: "b", Progress: interprog.Error{Message: "x"}},
			},
			summary: "1 of 2 tasks failed",
		},
		{
			name:     "exited early",
			snapshot: interprog.Snapshot{{Name: "a", Progress: interprog.Running{}}},
			summary:  "worker exited with 0 of 1 tasks finished",
		},
		{
			name:     "exit error",
			snapshot: interprog.Snapshot{{Name: "a", Progress: interprog.Finished{}}},
			err:      errors.New("exit status 3"),
			summary:  "worker exited: exit status 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()

			send(t, m, SnapshotMsg{Snapshot: tt.snapshot}, LineMsg{Line: "last words"})
			cmd := send(t, m, WorkerExitedMsg{Err: tt.err})

			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.True(t, m.Completed())
			assert.Equal(t, tt.err, m.ExitErr())

			view := m.View()
			assert.Contains(t, view, tt.summary)
			assert.NotContains(t, view, "last words")
		})
	}
}

func TestModel_KeyQuit(t *testing.T) {
	m := NewModel()

	cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)

	cmd = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), "Shutting down")
}

func TestModel_Init(t *testing.T) {
	assert.NotNil(t, NewModel().Init())
}

func TestPercent(t *testing.T) {
	assert.InDelta(t, 0.3, percent(interprog.InProgress{Done: 3, Total: 10}), 1e-9)
	assert.InDelta(t, 1.0, percent(interprog.InProgress{Done: 12, Total: 10}), 1e-9)
	assert.InDelta(t, 1.0, percent(interprog.InProgress{Done: 0, Total: 0}), 1e-9)
}

func TestModel_Truncate(t *testing.T) {
	m := NewModel()
	assert.Equal(t, "abcdefghij", m.truncate("abcdefghij"))

	m.width = 8
	assert.Equal(t, "abcde...", m.truncate("abcdefghij"))
}
