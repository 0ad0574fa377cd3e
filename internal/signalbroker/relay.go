// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"errors"
	"os"
	"sync"
)

// ErrNoTarget is returned by Relay.Signal when no process is attached.
var ErrNoTarget = errors.New("no process to forward the signal to")

// Signaller is anything that can receive a signal, such as *os.Process.
type Signaller interface {
	Signal(os.Signal) error
}

// Relay is a Signaller whose target can be attached after the watchdog has started.
type Relay struct {
	target Signaller
	mu     sync.Mutex
}

// Attach sets the process that signals are forwarded to. Passing nil detaches it.
func (r *Relay) Attach(target Signaller) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.target = target
}

// Signal forwards sig to the attached process.
func (r *Relay) Signal(sig os.Signal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.target == nil {
		return ErrNoTarget
	}

	return r.target.Signal(sig) //nolint:wrapcheck
}

type relayKey struct{}

// NewContext returns a context carrying the relay.
func NewContext(ctx context.Context, r *Relay) context.Context {
	return context.WithValue(ctx, relayKey{}, r)
}

// RelayFromContext returns the relay stored in ctx.
// If there is none a detached relay is returned, so Attach is always safe.
func RelayFromContext(ctx context.Context) *Relay {
	if r, ok := ctx.Value(relayKey{}).(*Relay); ok && r != nil {
		return r
	}

	return &Relay{}
}
