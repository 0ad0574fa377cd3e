// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interprog

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind is the discriminant of a Status. It is serialized as the "status" field.
type Kind string

const (
	// KindPending is a queued task that has not started.
	KindPending Kind = "pending"
	// KindRunning is a started task without a known total (a spinner).
	KindRunning Kind = "running"
	// KindInProgress is a started task with a known total.
	KindInProgress Kind = "in_progress"
	// KindFinished is a task that completed successfully.
	KindFinished Kind = "finished"
	// KindError is a task that failed.
	KindError Kind = "error"
)

// String implements the Stringer interface for Kind.
func (k Kind) String() string {
	return string(k)
}

// Status is the progress state of a task. The set of implementations is closed:
// Pending, Running, InProgress, Finished and Error.
type Status interface {
	// Kind returns the discriminant of the status.
	Kind() Kind
	status()
}

var (
	_ Status = Pending{}
	_ Status = Running{}
	_ Status = InProgress{}
	_ Status = Finished{}
	_ Status = Error{}
)

// Pending is a queued task. A nil Total means the task is a spinner.
type Pending struct {
	Total *int
}

// Running is a started spinner task.
type Running struct{}

// InProgress is a started task with a known total.
type InProgress struct {
	Done  int
	Total int
}

// Finished is a task that completed successfully. It is terminal.
type Finished struct{}

// Error is a task that failed with a human readable reason. It is terminal.
type Error struct {
	Message string
}

// Kind implements Status.
func (Pending) Kind() Kind { return KindPending }

// Kind implements Status.
func (Running) Kind() Kind { return KindRunning }

// Kind implements Status.
func (InProgress) Kind() Kind { return KindInProgress }

// Kind implements Status.
func (Finished) Kind() Kind { return KindFinished }

// Kind implements Status.
func (Error) Kind() Kind { return KindError }

func (Pending) status()    {}
func (Running) status()    {}
func (InProgress) status() {}
func (Finished) status()   {}
func (Error) status()      {}

// maxedOut reports whether done has reached total.
func (s InProgress) maxedOut() bool {
	return s.Done >= s.Total
}

// IsTerminal reports whether no further transition is permitted out of s.
func IsTerminal(s Status) bool {
	switch s.(type) {
	case Finished, Error:
		return true
	default:
		return false
	}
}

// IsSpinner reports whether s has no countable progress.
func IsSpinner(s Status) bool {
	switch s := s.(type) {
	case Running:
		return true
	case Pending:
		return s.Total == nil
	default:
		return false
	}
}

// The wire structs carry the discriminant as an ordinary field,
// populated from the variant when the status is encoded.
type (
	statusHeader struct {
		Status Kind `json:"status"`
	}
	pendingWire struct {
		Status Kind `json:"status"`
		Total  *int `json:"total"`
	}
	inProgressWire struct {
		Status Kind `json:"status"`
		Done   int  `json:"done"`
		Total  int  `json:"total"`
	}
	errorWire struct {
		Status  Kind   `json:"status"`
		Message string `json:"message"`
	}
)

// MarshalJSON implements json.Marshaler.
func (s Pending) MarshalJSON() ([]byte, error) {
	return json.Marshal(pendingWire{Status: KindPending, Total: s.Total})
}

// MarshalJSON implements json.Marshaler.
func (Running) MarshalJSON() ([]byte, error) {
	return json.Marshal(statusHeader{Status: KindRunning})
}

// MarshalJSON implements json.Marshaler.
func (s InProgress) MarshalJSON() ([]byte, error) {
	return json.Marshal(inProgressWire{Status: KindInProgress, Done: s.Done, Total: s.Total})
}

// MarshalJSON implements json.Marshaler.
func (Finished) MarshalJSON() ([]byte, error) {
	return json.Marshal(statusHeader{Status: KindFinished})
}

// MarshalJSON implements json.Marshaler.
func (s Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(errorWire{Status: KindError, Message: s.Message})
}

// DecodeStatus decodes a single JSON status object.
// The discriminant is read first and selects the variant the remaining fields are decoded into.
func DecodeStatus(data []byte) (Status, error) {
	var h statusHeader
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("decoding status: %w", err)
	}

	switch h.Status {
	case KindPending:
		var w pendingWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("decoding %s status: %w", h.Status, err)
		}

		return Pending{Total: w.Total}, nil
	case KindRunning:
		return Running{}, nil
	case KindInProgress:
		var w inProgressWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("decoding %s status: %w", h.Status, err)
		}

		if w.Done < 0 {
			return nil, errors.Join(ErrInvalidIncrement, fmt.Errorf("negative done count %d", w.Done))
		}

		return InProgress{Done: w.Done, Total: w.Total}, nil
	case KindFinished:
		return Finished{}, nil
	case KindError:
		var w errorWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("decoding %s status: %w", h.Status, err)
		}

		return Error{Message: w.Message}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, h.Status)
	}
}
