// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package plan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
)

// ErrFetchPlan is returned when a plan cannot be fetched.
var ErrFetchPlan = errors.New("failed to fetch plan")

// Fetch retrieves the content at url using Hashicorp's go-getter.
// The download is made into a temporary directory which is removed afterwards.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrFetchPlan
	}

	tmpDir, err := os.MkdirTemp("", "interprog-getter-*")
	if err != nil {
		return nil, errors.Join(ErrFetchPlan, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrFetchPlan, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	var name string
	// Remote sources are fetched as a directory and the file read from it.
	// https://github.com/hashicorp/go-getter/issues/98
	if ok, err := getter.Detect(req, &getter.FileGetter{}); !ok || err != nil {
		if err != nil {
			return nil, errors.Join(ErrFetchPlan, err)
		}

		var newURL string

		newURL, name = splitFileNameFromGetterURL(url)
		if newURL == "" || name == "" {
			return nil, fmt.Errorf("%w: invalid URL format: %s", ErrFetchPlan, url)
		}

		req.Src = newURL
	}

	if name == "" {
		req.Src = filepath.Dir(url)
		name = filepath.Base(url)
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrFetchPlan, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, name))
	if err != nil {
		return nil, errors.Join(ErrFetchPlan, err)
	}

	return data, nil
}

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // scheme, host and path
)

// splitFileNameFromGetterURL splits the URL into the directory and file name.
// Any query is kept on the returned URL.
func splitFileNameFromGetterURL(url string) (string, string) {
	var query string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]
	if before, after, ok := strings.Cut(last, goGetterRefSeparator); ok {
		query = after
		last = before
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	name := filepath.Base(last)

	if dir := filepath.Dir(last); dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if query != "" {
		newURL += goGetterRefSeparator + query
	}

	return newURL, name
}
