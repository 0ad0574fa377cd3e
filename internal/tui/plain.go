// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/matt-FFFFFF/interprog"
)

// PlainRow renders one task as uncoloured text.
func PlainRow(task interprog.Task) string {
	switch p := task.Progress.(type) {
	case interprog.Pending:
		if p.Total != nil {
			return fmt.Sprintf("[pending] %s (0/%d)", task.Name, *p.Total)
		}

		return "[pending] " + task.Name
	case interprog.Running:
		return "[running] " + task.Name
	case interprog.InProgress:
		return fmt.Sprintf("[%d/%d] %s", p.Done, p.Total, task.Name)
	case interprog.Finished:
		return "[done] " + task.Name
	case interprog.Error:
		return fmt.Sprintf("[error] %s: %s", task.Name, p.Message)
	default:
		return "[?] " + task.Name
	}
}

// RenderPlain renders every task of the snapshot, one per line.
func RenderPlain(snapshot interprog.Snapshot) string {
	var sb strings.Builder

	for _, task := range snapshot {
		sb.WriteString(PlainRow(task))
		sb.WriteString("\n")
	}

	return sb.String()
}

// PlainPrinter writes a line for each task whose status changed since the previous snapshot.
type PlainPrinter struct {
	w    io.Writer
	last map[string]interprog.Status
}

// NewPlainPrinter creates a PlainPrinter writing to w.
func NewPlainPrinter(w io.Writer) *PlainPrinter {
	return &PlainPrinter{
		w:    w,
		last: make(map[string]interprog.Status),
	}
}

// Print writes the changed rows of snapshot.
func (pp *PlainPrinter) Print(snapshot interprog.Snapshot) error {
	seen := make(map[string]interprog.Status, len(snapshot))

	for _, task := range snapshot {
		seen[task.Name] = task.Progress

		if prev, ok := pp.last[task.Name]; ok && reflect.DeepEqual(prev, task.Progress) {
			continue
		}

		if _, err := fmt.Fprintln(pp.w, PlainRow(task)); err != nil {
			return err //nolint:wrapcheck
		}
	}

	pp.last = seen

	return nil
}
