// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/matt-FFFFFF/interprog"
)

// SnapshotTeeReader wraps an io.Reader, keeps a copy of everything read and
// decodes each complete line as a progress snapshot.
// It is safe for concurrent use.
type SnapshotTeeReader struct {
	reader         io.Reader
	fullBuffer     *bytes.Buffer
	lastLine       string
	lastSnapshot   interprog.Snapshot
	snapshots      int
	partialBuilder strings.Builder // incomplete line carried between reads
	onSnapshot     func(interprog.Snapshot)
	onLine         func(string)
	mu             sync.RWMutex
}

// Option configures a SnapshotTeeReader.
type Option func(*SnapshotTeeReader)

// WithSnapshotFunc sets a callback run for every decoded snapshot.
// It is called from Read without the lock held.
func WithSnapshotFunc(fn func(interprog.Snapshot)) Option {
	return func(lt *SnapshotTeeReader) {
		lt.onSnapshot = fn
	}
}

// WithLineFunc sets a callback run for every complete line that is not a snapshot.
func WithLineFunc(fn func(string)) Option {
	return func(lt *SnapshotTeeReader) {
		lt.onLine = fn
	}
}

// NewSnapshotTeeReader creates a new SnapshotTeeReader that wraps the given reader.
func NewSnapshotTeeReader(r io.Reader, opts ...Option) *SnapshotTeeReader {
	lt := &SnapshotTeeReader{
		reader:     r,
		fullBuffer: &bytes.Buffer{},
	}

	for _, opt := range opts {
		opt(lt)
	}

	return lt
}

// Read implements io.Reader. It reads from the underlying reader and processes
// any complete lines.
func (lt *SnapshotTeeReader) Read(p []byte) (n int, err error) {
	n, err = lt.reader.Read(p)
	if n > 0 {
		lt.mu.Lock()
		lt.fullBuffer.Write(p[:n])
		snapshots, lines := lt.processNewData(string(p[:n]))
		lt.mu.Unlock()

		lt.notify(snapshots, lines)
	}

	if err == io.EOF {
		lt.flush()
	}

	return n, err //nolint:wrapcheck
}

// flush treats a trailing partial line as complete.
func (lt *SnapshotTeeReader) flush() {
	lt.mu.Lock()
	rest := lt.partialBuilder.String()
	lt.partialBuilder.Reset()

	var (
		snapshots []interprog.Snapshot
		lines     []string
	)

	if rest != "" {
		snapshots, lines = lt.classify([]string{rest})
	}

	lt.mu.Unlock()

	lt.notify(snapshots, lines)
}

// processNewData splits the data into complete lines and classifies them.
// Must be called with the write lock held.
func (lt *SnapshotTeeReader) processNewData(data string) ([]interprog.Snapshot, []string) {
	lt.partialBuilder.WriteString(data)
	combined := lt.partialBuilder.String()

	parts := strings.Split(combined, "\n")
	if len(parts) == 1 {
		return nil, nil
	}

	lt.partialBuilder.Reset()
	lt.partialBuilder.WriteString(parts[len(parts)-1])

	return lt.classify(parts[:len(parts)-1])
}

// classify must be called with the write lock held.
func (lt *SnapshotTeeReader) classify(complete []string) ([]interprog.Snapshot, []string) {
	var (
		snapshots []interprog.Snapshot
		lines     []string
	)

	for _, line := range complete {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		snapshot, err := interprog.DecodeSnapshot([]byte(line))
		if err != nil {
			lt.lastLine = line
			lines = append(lines, line)

			continue
		}

		lt.lastSnapshot = snapshot
		lt.snapshots++
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, lines
}

func (lt *SnapshotTeeReader) notify(snapshots []interprog.Snapshot, lines []string) {
	if lt.onSnapshot != nil {
		for _, s := range snapshots {
			lt.onSnapshot(s)
		}
	}

	if lt.onLine != nil {
		for _, l := range lines {
			lt.onLine(l)
		}
	}
}

// LastSnapshot returns the most recently decoded snapshot and whether one has been seen.
func (lt *SnapshotTeeReader) LastSnapshot() (interprog.Snapshot, bool) {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	return lt.lastSnapshot, lt.snapshots > 0
}

// SnapshotCount returns how many snapshots have been decoded.
func (lt *SnapshotTeeReader) SnapshotCount() int {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	return lt.snapshots
}

// GetLastLine returns the last complete line that was not a snapshot.
// If maxLength > 3 the line is truncated to that length with a "..." suffix.
func (lt *SnapshotTeeReader) GetLastLine(maxLength int) string {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	result := lt.lastLine
	if maxLength > 3 && len(result) > maxLength {
		result = result[:maxLength-3] + "..."
	}

	return result
}

// GetFullBufferBytes returns a copy of all data that has been read so far.
func (lt *SnapshotTeeReader) GetFullBufferBytes() []byte {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	return bytes.Clone(lt.fullBuffer.Bytes())
}

// GetPartialLine returns the data read after the last newline.
func (lt *SnapshotTeeReader) GetPartialLine() string {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	return lt.partialBuilder.String()
}
