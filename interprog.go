// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package interprog reports the progress of a sequence of named tasks to an
// observing process.
//
// A worker registers tasks with a TaskManager and drives each one through its
// lifecycle (start, increment, finish or error). Every state change writes the
// complete, ordered list of tasks as a single line of JSON to standard output,
// so an observer only ever needs to parse the most recent line:
//
//	[{"name":"build","progress":{"status":"in_progress","done":3,"total":10}}]
//
// The TaskManager is not safe for concurrent use. Callers that mutate it from
// several goroutines must serialize access themselves.
package interprog

var (
	// Version is set during the build process.
	Version = "dev"
	// Commit is set during the build process.
	Commit = "unknown"
)
