// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/interprog/internal/ctxlog"
)

// FirstSignalFunc is called with the first signal of each type.
type FirstSignalFunc func(os.Signal)

// Forwarder returns a FirstSignalFunc that sends the signal to p.
// Errors are logged, as the process may already have exited.
func Forwarder(ctx context.Context, p Signaller) FirstSignalFunc {
	return func(sig os.Signal) {
		if err := p.Signal(sig); err != nil {
			ctxlog.Debug(ctx, "watchdog", "detail", "could not forward signal", "signal", sig.String(), "error", err)
			return
		}

		ctxlog.Info(ctx, "watchdog", "detail", "forwarded signal to worker", "signal", sig.String())
	}
}

// Watch monitors the signal channel and handles signals.
// The first signal of a given type is passed to onFirst, which may be nil.
// The second signal of that type cancels the context.
// Watch returns when the context is done, the channel is closed or cancel has been called.
func Watch(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc, onFirst FirstSignalFunc) {
	sigMap := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, seen := sigMap[sig]; seen {
				ctxlog.Info(ctx, "watchdog", "detail", "received second signal of type, forcefully terminating", "signal", sig.String())
				cancel()

				return
			}

			ctxlog.Info(ctx, "watchdog", "detail", "received first signal of type", "signal", sig.String())

			sigMap[sig] = struct{}{}

			if onFirst != nil {
				onFirst(sig)
			}
		}
	}
}
