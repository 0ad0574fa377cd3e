// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interprog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Marshal(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		expected string
	}{
		{
			name:     "pending spinner keeps a null total",
			status:   Pending{},
			expected: `{"status":"pending","total":null}`,
		},
		{
			name:     "pending bar",
			status:   Pending{Total: intPtr(4)},
			expected: `{"status":"pending","total":4}`,
		},
		{
			name:     "running",
			status:   Running{},
			expected: `{"status":"running"}`,
		},
		{
			name:     "in progress",
			status:   InProgress{Done: 2, Total: 4},
			expected: `{"status":"in_progress","done":2,"total":4}`,
		},
		{
			name:     "finished",
			status:   Finished{},
			expected: `{"status":"finished"}`,
		},
		{
			name:     "error",
			status:   Error{Message: "line one\nline two"},
			expected: `{"status":"error","message":"line one\nline two"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(got))
			assert.NotContains(t, string(got), "\n")

			decoded, err := DecodeStatus(got)
			require.NoError(t, err)
			assert.Equal(t, tt.status, decoded)
			assert.Equal(t, tt.status.Kind(), decoded.Kind())
		})
	}
}

func TestDecodeStatus_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "unknown discriminant",
			input:   `{"status":"paused"}`,
			wantErr: ErrUnknownStatus,
		},
		{
			name:    "missing discriminant",
			input:   `{"done":1,"total":2}`,
			wantErr: ErrUnknownStatus,
		},
		{
			name:    "negative done",
			input:   `{"status":"in_progress","done":-1,"total":2}`,
			wantErr: ErrInvalidIncrement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeStatus([]byte(tt.input))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("not json", func(t *testing.T) {
		_, err := DecodeStatus([]byte(`pending`))
		require.Error(t, err)
	})
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(Pending{}))
	assert.False(t, IsTerminal(Running{}))
	assert.False(t, IsTerminal(InProgress{Done: 1, Total: 1}))
	assert.True(t, IsTerminal(Finished{}))
	assert.True(t, IsTerminal(Error{Message: "x"}))
}

func TestIsSpinner(t *testing.T) {
	assert.True(t, IsSpinner(Pending{}))
	assert.False(t, IsSpinner(Pending{Total: intPtr(1)}))
	assert.True(t, IsSpinner(Running{}))
	assert.False(t, IsSpinner(InProgress{Done: 0, Total: 1}))
	assert.False(t, IsSpinner(Finished{}))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "in_progress", KindInProgress.String())
	assert.Equal(t, "error", Error{}.Kind().String())
}
