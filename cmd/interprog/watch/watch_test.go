// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package watch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"syscall"
	"testing"

	"github.com/matt-FFFFFF/interprog"
	"github.com/matt-FFFFFF/interprog/internal/ctxlog"
	"github.com/matt-FFFFFF/interprog/internal/signalbroker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

const (
	helperEnv     = "INTERPROG_WANT_HELPER_PROCESS"
	helperModeEnv = "INTERPROG_HELPER_MODE"
)

// TestHelperProcess is not a real test. It is the worker started by the tests below.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}

	m := interprog.NewTaskManager()

	_ = m.AddTask("a")

	fmt.Println("this line is not a snapshot")
	fmt.Fprintln(os.Stderr, "worker stderr")

	_ = m.Start()

	switch os.Getenv(helperModeEnv) {
	case "fail":
		_ = m.Error("broken")
	case "exit":
		os.Exit(3)
	default:
		_ = m.Finish()
	}

	os.Exit(0)
}

func runWatch(t *testing.T, mode string) (string, string, error) {
	t.Helper()

	t.Setenv(helperEnv, "1")
	t.Setenv(helperModeEnv, mode)

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewCommand()
	cmd.Writer = out
	cmd.ErrWriter = errOut
	cmd.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	ctx := ctxlog.New(context.Background(), ctxlog.DiscardLogger)
	err := cmd.Run(ctx, []string{"watch", "--plain", "--", os.Args[0], "-test.run=^TestHelperProcess$"})

	return out.String(), errOut.String(), err
}

func TestWatchCmd_Plain(t *testing.T) {
	out, errOut, err := runWatch(t, "ok")
	require.NoError(t, err)

	assert.Equal(t, "[pending] a\n[running] a\n[done] a\n", out)
	assert.Contains(t, errOut, "worker stderr")
}

func TestWatchCmd_FailedTask(t *testing.T) {
	out, _, err := runWatch(t, "fail")
	require.Error(t, err)
	assert.Contains(t, out, "[error] a: broken")
}

func TestWatchCmd_WorkerExitCode(t *testing.T) {
	out, _, err := runWatch(t, "exit")
	require.Error(t, err)
	assert.Contains(t, out, "[running] a")
}

func TestWatchCmd_NoCommand(t *testing.T) {
	cmd := NewCommand()
	cmd.Writer = &bytes.Buffer{}
	cmd.ErrWriter = &bytes.Buffer{}
	cmd.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	err := cmd.Run(ctxlog.New(context.Background(), ctxlog.DiscardLogger), []string{"watch", "--plain"})
	require.Error(t, err)
}

func TestWorker_StartError(t *testing.T) {
	w := &worker{
		args:  []string{"/this/binary/does/not/exist"},
		relay: &signalbroker.Relay{},
	}

	_, err := w.run(context.Background())
	require.ErrorIs(t, err, ErrWorker)
}

func TestWorker_DetachesRelay(t *testing.T) {
	t.Setenv(helperEnv, "1")
	t.Setenv(helperModeEnv, "ok")

	relay := &signalbroker.Relay{}

	var snapshots []interprog.Snapshot

	w := &worker{
		args:       []string{os.Args[0], "-test.run=^TestHelperProcess$"},
		relay:      relay,
		onSnapshot: func(s interprog.Snapshot) { snapshots = append(snapshots, s) },
	}

	last, err := w.run(context.Background())
	require.NoError(t, err)
	assert.Len(t, snapshots, 3)
	assert.Equal(t, interprog.Snapshot{{Name: "a", Progress: interprog.Finished{}}}, last)
	require.ErrorIs(t, relay.Signal(syscall.SIGINT), signalbroker.ErrNoTarget)
}
