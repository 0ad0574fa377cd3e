// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interprog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	m := NewTaskManager(WithSilent())

	require.NoError(t, m.AddTask("queued spinner"))
	require.NoError(t, m.AddTask("queued bar", WithTotal(9)))
	require.NoError(t, m.AddTask("spinning"))
	require.NoError(t, m.AddTask("counting", WithTotal(4)))
	require.NoError(t, m.AddTask("done"))
	require.NoError(t, m.AddTask("broken"))

	require.NoError(t, m.StartTask("spinning"))
	require.NoError(t, m.StartTask("counting"))
	require.NoError(t, m.IncrementTask("counting", By(3)))
	require.NoError(t, m.FinishTask("done"))
	require.NoError(t, m.ErrorTask("broken", `bad "quote"`))

	original := m.Tasks()

	data, err := json.Marshal(original)
	require.NoError(t, err)

	decoded, err := DecodeSnapshot(append(data, '\n'))
	require.NoError(t, err)

	require.Len(t, decoded, len(original))

	for i := range original {
		assert.Equal(t, original[i].Name, decoded[i].Name)
		assert.Equal(t, original[i].Progress.Kind(), decoded[i].Progress.Kind())
		assert.Equal(t, original[i].Progress, decoded[i].Progress)
	}
}

func TestSnapshot_EmptyMarshalsAsList(t *testing.T) {
	data, err := json.Marshal(Snapshot(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = json.Marshal(NewTaskManager(WithSilent()).Tasks())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDecodeSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{
			name:    "empty list",
			input:   "[]\n",
			wantLen: 0,
		},
		{
			name:    "two tasks",
			input:   `[{"name":"a","progress":{"status":"running"}},{"name":"b","progress":{"status":"pending","total":null}}]`,
			wantLen: 2,
		},
		{
			name:    "null",
			input:   "null",
			wantErr: true,
		},
		{
			name:    "plain log line",
			input:   "Starting worker...",
			wantErr: true,
		},
		{
			name:    "object instead of list",
			input:   `{"name":"a"}`,
			wantErr: true,
		},
		{
			name:    "unknown status",
			input:   `[{"name":"a","progress":{"status":"weird"}}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, err := DecodeSnapshot([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, snapshot, tt.wantLen)
		})
	}
}

func TestSnapshot_Helpers(t *testing.T) {
	snapshot := Snapshot{
		{Name: "a", Progress: Finished{}},
		{Name: "b", Progress: Error{Message: "nope"}},
	}

	task, ok := snapshot.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, Error{Message: "nope"}, task.Progress)

	_, ok = snapshot.Lookup("c")
	assert.False(t, ok)

	assert.True(t, snapshot.Done())
	assert.Equal(t, []Task{{Name: "b", Progress: Error{Message: "nope"}}}, snapshot.Failed())

	snapshot = append(snapshot, Task{Name: "c", Progress: Running{}})
	assert.False(t, snapshot.Done())
	assert.False(t, Snapshot{}.Done())
}
