// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package plan

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrNoName is returned when the plan or one of its tasks has no name.
	ErrNoName = errors.New("name must not be empty")
	// ErrNoTasks is returned when the plan has no tasks.
	ErrNoTasks = errors.New("plan has no tasks")
	// ErrDuplicateTask is returned when two tasks share a name.
	ErrDuplicateTask = errors.New("duplicate task name")
	// ErrNegativeTotal is returned when a task total is below zero.
	ErrNegativeTotal = errors.New("total must not be negative")
	// ErrInvalidDelay is returned when a delay is not a valid non-negative duration.
	ErrInvalidDelay = errors.New("invalid delay")
	// ErrEmptyFailMessage is returned when a task is set to fail with no message.
	ErrEmptyFailMessage = errors.New("fail message must not be empty")
)

// Plan is a named, ordered list of tasks.
type Plan struct {
	Name  string    `yaml:"name" hcl:"name"`
	Tasks []TaskDef `yaml:"tasks" hcl:"task,block"`
}

// TaskDef describes one task of a plan.
//
// A task with a total is a progress bar and the delay is spent before every
// unit. A task without a total is a spinner and the delay is spent once.
// When Fail is set the task ends in error with that message.
type TaskDef struct {
	Name  string  `yaml:"name" hcl:"name,label"`
	Total *int    `yaml:"total,omitempty" hcl:"total,optional"`
	Delay string  `yaml:"delay,omitempty" hcl:"delay,optional"`
	Fail  *string `yaml:"fail,omitempty" hcl:"fail,optional"`
}

// Duration parses the delay. An empty delay is zero.
func (t TaskDef) Duration() (time.Duration, error) {
	if t.Delay == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(t.Delay)
	if err != nil {
		return 0, errors.Join(ErrInvalidDelay, err)
	}

	if d < 0 {
		return 0, fmt.Errorf("%w: %s is negative", ErrInvalidDelay, t.Delay)
	}

	return d, nil
}

// Validate reports every problem with the plan at once.
func (p *Plan) Validate() error {
	var result *multierror.Error

	if p.Name == "" {
		result = multierror.Append(result, fmt.Errorf("plan: %w", ErrNoName))
	}

	if len(p.Tasks) == 0 {
		result = multierror.Append(result, ErrNoTasks)
	}

	seen := make(map[string]struct{}, len(p.Tasks))

	for i, t := range p.Tasks {
		if t.Name == "" {
			result = multierror.Append(result, fmt.Errorf("task %d: %w", i, ErrNoName))
		} else if _, ok := seen[t.Name]; ok {
			result = multierror.Append(result, fmt.Errorf("%w: %q", ErrDuplicateTask, t.Name))
		}

		seen[t.Name] = struct{}{}

		if t.Total != nil && *t.Total < 0 {
			result = multierror.Append(result, fmt.Errorf("task %q: %w", t.Name, ErrNegativeTotal))
		}

		if _, err := t.Duration(); err != nil {
			result = multierror.Append(result, fmt.Errorf("task %q: %w", t.Name, err))
		}

		if t.Fail != nil && *t.Fail == "" {
			result = multierror.Append(result, fmt.Errorf("task %q: %w", t.Name, ErrEmptyFailMessage))
		}
	}

	return result.ErrorOrNil()
}
