// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interprog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingWriter records every Write call separately.
type countingWriter struct {
	writes [][]byte
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	cw.writes = append(cw.writes, append([]byte(nil), p...))
	return len(p), nil
}

func TestLineReporter_OneWritePerSnapshot(t *testing.T) {
	cw := &countingWriter{}
	reporter := NewLineReporter(cw)

	snapshot := Snapshot{{Name: "a", Progress: Pending{Total: intPtr(2)}}}
	require.NoError(t, reporter.Report(snapshot))
	require.NoError(t, reporter.Report(snapshot))

	require.Len(t, cw.writes, 2)

	for _, w := range cw.writes {
		assert.Equal(t, `[{"name":"a","progress":{"status":"pending","total":2}}]`+"\n", string(w))
	}

	reporter.Close()
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}

func TestLineReporter_WriteError(t *testing.T) {
	reporter := NewLineReporter(failingWriter{})

	err := reporter.Report(Snapshot{})
	require.ErrorIs(t, err, assert.AnError)
}

func TestNullReporter(t *testing.T) {
	reporter := NewNullReporter()
	require.NotNil(t, reporter)

	// These should not panic
	require.NoError(t, reporter.Report(Snapshot{{Name: "a", Progress: Running{}}}))
	reporter.Close()
}

func TestFuncReporter(t *testing.T) {
	var got []Snapshot

	m := NewTaskManager(WithReporter(FuncReporter(func(s Snapshot) error {
		got = append(got, s)
		return nil
	})))

	require.NoError(t, m.AddTask("a"))
	require.NoError(t, m.Start())

	require.Len(t, got, 2)
	assert.Equal(t, Pending{}, got[0][0].Progress)
	assert.Equal(t, Running{}, got[1][0].Progress)
}

func TestNewTaskManager_DefaultsToStdout(t *testing.T) {
	m := NewTaskManager()

	lr, ok := m.reporter.(*LineReporter)
	require.True(t, ok)
	assert.NotNil(t, lr.w)
	assert.False(t, m.Silent())
}

func TestWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	m := NewTaskManager(WithWriter(buf))

	require.NoError(t, m.AddTask("a"))
	assert.Equal(t, `[{"name":"a","progress":{"status":"pending","total":null}}]`+"\n", buf.String())
}
