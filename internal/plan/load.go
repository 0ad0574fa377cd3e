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

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/interprog/internal/ctxlog"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrLoadPlan is returned when a plan cannot be read.
	ErrLoadPlan = errors.New("failed to load plan")
	// ErrParsePlan is returned when a plan cannot be decoded.
	ErrParsePlan = errors.New("failed to parse plan")
	// ErrUnknownFormat is returned when the file extension is not a known plan format.
	ErrUnknownFormat = errors.New("unknown plan format, use .yaml, .yml or .hcl")
)

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Load reads a plan from src, validates it and returns it.
// If src names a file on the filesystem it is read directly,
// otherwise it is fetched with go-getter.
func Load(ctx context.Context, src string) (*Plan, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: no source given", ErrLoadPlan)
	}

	fs := FsFactory()

	var (
		data []byte
		err  error
	)

	if ok, _ := afero.Exists(fs, src); ok {
		ctxlog.Debug(ctx, "reading plan from filesystem", "src", src)

		data, err = afero.ReadFile(fs, src)
		if err != nil {
			return nil, errors.Join(ErrLoadPlan, err)
		}
	} else {
		ctxlog.Debug(ctx, "fetching plan", "src", src)

		data, err = Fetch(ctx, src)
		if err != nil {
			return nil, err
		}
	}

	p, err := Parse(fileName(src), data)
	if err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "plan loaded", "name", p.Name, "tasks", len(p.Tasks))

	return p, nil
}

// Parse decodes a plan, choosing the format from the file name's extension.
// It does not validate the result.
func Parse(name string, data []byte) (*Plan, error) {
	p := &Plan{}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, p, yaml.Strict()); err != nil {
			return nil, errors.Join(ErrParsePlan, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(name, data, evalContext(), p); err != nil {
			return nil, errors.Join(ErrParsePlan, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}

	return p, nil
}

// evalContext exposes the process environment to HCL expressions as env.NAME.
func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		env[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}

// fileName strips any go-getter query from src and returns the last path element.
func fileName(src string) string {
	if i := strings.Index(src, goGetterRefSeparator); i >= 0 {
		src = src[:i]
	}

	return filepath.Base(src)
}
