// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_EmptyURL(t *testing.T) {
	data, err := Fetch(context.Background(), "")
	require.ErrorIs(t, err, ErrFetchPlan)
	assert.Nil(t, data)
}

func TestSplitFileNameFromGetterURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantURL  string
		wantFile string
	}{
		{
			name:     "file in subdirectory",
			url:      "git::https://example.com/repo.git//plans/deploy.yaml",
			wantURL:  "git::https://example.com/repo.git//plans",
			wantFile: "deploy.yaml",
		},
		{
			name:     "file at repository root",
			url:      "git::https://example.com/repo.git//deploy.yaml",
			wantURL:  "git::https://example.com/repo.git",
			wantFile: "deploy.yaml",
		},
		{
			name:     "ref is kept",
			url:      "git::https://example.com/repo.git//plans/deploy.hcl?ref=v1.2.0",
			wantURL:  "git::https://example.com/repo.git//plans?ref=v1.2.0",
			wantFile: "deploy.hcl",
		},
		{
			name: "no subdirectory separator",
			url:  "https://example.com/deploy.yaml",
		},
		{
			name: "directory only",
			url:  "git::https://example.com/repo.git///",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotURL, gotFile := splitFileNameFromGetterURL(tt.url)
			assert.Equal(t, tt.wantURL, gotURL)
			assert.Equal(t, tt.wantFile, gotFile)
		})
	}
}
