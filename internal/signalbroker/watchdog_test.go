// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/matt-FFFFFF/interprog/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startWatch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc, onFirst FirstSignalFunc) *sync.WaitGroup {
	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, sigCh, cancel, onFirst)
	}()

	return &wg
}

func TestWatch_FirstSignalCallsOnFirst(t *testing.T) {
	ctx, cancel := context.WithCancel(ctxlog.New(context.Background(), ctxlog.DiscardLogger))
	defer cancel()

	got := make(chan os.Signal, 1)
	sigCh := make(chan os.Signal, 1)
	wg := startWatch(ctx, sigCh, cancel, func(s os.Signal) { got <- s })

	sigCh <- os.Interrupt

	select {
	case s := <-got:
		assert.Equal(t, os.Interrupt, s)
	case <-time.After(time.Second):
		t.Fatal("first signal was not handed to the callback")
	}

	assert.NoError(t, ctx.Err(), "context should not be cancelled after first signal")

	close(sigCh)
	wg.Wait()
}

func TestWatch_SecondSignalCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(ctxlog.New(context.Background(), ctxlog.DiscardLogger))
	defer cancel()

	calls := 0
	sigCh := make(chan os.Signal, 2)
	wg := startWatch(ctx, sigCh, cancel, func(os.Signal) { calls++ })

	sigCh <- syscall.SIGTERM
	sigCh <- syscall.SIGTERM

	wg.Wait()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestWatch_DifferentSignalsNoCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(ctxlog.New(context.Background(), ctxlog.DiscardLogger))
	defer cancel()

	sigCh := make(chan os.Signal, 2)
	wg := startWatch(ctx, sigCh, cancel, nil)

	sigCh <- os.Interrupt
	sigCh <- syscall.SIGTERM

	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, ctx.Err(), "context should not be cancelled for different signals")

	close(sigCh)
	wg.Wait()
}

func TestWatch_ReturnsOnContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	wg := startWatch(ctx, make(chan os.Signal), cancel, nil)

	cancel()
	wg.Wait()
}

type fakeProcess struct {
	got []os.Signal
	err error
}

func (f *fakeProcess) Signal(s os.Signal) error {
	f.got = append(f.got, s)
	return f.err
}

func TestForwarder(t *testing.T) {
	ctx := ctxlog.New(context.Background(), ctxlog.DiscardLogger)

	p := &fakeProcess{}
	Forwarder(ctx, p)(syscall.SIGINT)
	assert.Equal(t, []os.Signal{syscall.SIGINT}, p.got)

	failing := &fakeProcess{err: os.ErrProcessDone}
	Forwarder(ctx, failing)(syscall.SIGTERM)
	assert.Len(t, failing.got, 1)
}
