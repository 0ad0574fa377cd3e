// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package plan

import (
	"context"
	"errors"
	"time"

	"github.com/matt-FFFFFF/interprog"
	"github.com/matt-FFFFFF/interprog/internal/ctxlog"
)

// CancelledMessage is the error message given to the current task when Run is cancelled.
const CancelledMessage = "cancelled"

// Run registers every task of the plan with m and then drives them in order
// through the current task shortcuts.
//
// If ctx is cancelled the current task is put in error with CancelledMessage
// and the context error is returned. Tasks that fail as the plan says are not
// an error; inspect the manager's snapshot for them.
func Run(ctx context.Context, p *Plan, m *interprog.TaskManager) error {
	logger := ctxlog.Logger(ctx).With("plan", p.Name)

	for _, def := range p.Tasks {
		var opts []interprog.TaskOption
		if def.Total != nil {
			opts = append(opts, interprog.WithTotal(*def.Total))
		}

		if err := m.AddTask(def.Name, opts...); err != nil {
			return err //nolint:wrapcheck
		}
	}

	for _, def := range p.Tasks {
		delay, err := def.Duration()
		if err != nil {
			return err
		}

		logger.Debug("starting task", "task", def.Name)

		if err := m.Start(); err != nil {
			return err //nolint:wrapcheck
		}

		if err := work(ctx, def, delay, m); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logger.Info("plan cancelled", "task", def.Name)
				return errors.Join(err, m.Error(CancelledMessage))
			}

			return err
		}

		if def.Fail != nil {
			logger.Debug("failing task", "task", def.Name, "message", *def.Fail)

			if err := m.Error(*def.Fail); err != nil {
				return err //nolint:wrapcheck
			}

			continue
		}

		if err := m.Finish(); err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}

func work(ctx context.Context, def TaskDef, delay time.Duration, m *interprog.TaskManager) error {
	if def.Total == nil {
		return sleep(ctx, delay)
	}

	for range *def.Total {
		if err := sleep(ctx, delay); err != nil {
			return err
		}

		if err := m.Increment(); err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	case <-t.C:
		return nil
	}
}
