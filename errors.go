// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interprog

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskAlreadyExists is returned when a task is added with a name that is already registered.
	ErrTaskAlreadyExists = errors.New("another task of the same name already exists")
	// ErrTaskAlreadyRunning is returned when a task that is no longer pending is started.
	ErrTaskAlreadyRunning = errors.New("task has already been started")
	// ErrInvalidTaskType is returned when a spinner task is incremented,
	// or when a total is set on a status that does not carry one.
	ErrInvalidTaskType = errors.New("task is the wrong type for the requested operation")
	// ErrMaxedOutTask is returned by a strict increment once done has reached total.
	ErrMaxedOutTask = errors.New("task is maxed out")
	// ErrTaskNotFound is returned when an operation references an unregistered task.
	ErrTaskNotFound = errors.New("the requested task does not exist")
	// ErrTaskAlreadyFinished is returned for any operation on a finished or errored task.
	ErrTaskAlreadyFinished = errors.New("task is already finished")
	// ErrNoCurrentTask is returned by the current-task shortcuts once every task has completed.
	ErrNoCurrentTask = errors.New("no current task")
	// ErrInvalidIncrement is returned when an increment amount is negative.
	ErrInvalidIncrement = errors.New("increment must not be negative")
	// ErrReport is returned when a snapshot could not be written.
	// The mutation that triggered the report has already been applied.
	ErrReport = errors.New("failed to report snapshot")
	// ErrUnknownStatus is returned when decoding a status with an unrecognised discriminant.
	ErrUnknownStatus = errors.New("unknown task status")
)

func taskErr(err error, name string) error {
	return fmt.Errorf("%w: %q", err, name)
}
