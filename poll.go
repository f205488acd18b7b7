// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ontogen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Poller waits for a run to reach a terminal status.
type Poller struct {
	backend  Backend
	interval time.Duration
	timeout  time.Duration
	maxPolls int
	sleep    func(context.Context, time.Duration) error
	logger   *slog.Logger
}

func NewPoller(backend Backend, opts ...Option) Poller {
	options := apply(opts)

	return Poller{
		backend:  backend,
		interval: options.pollInterval,
		timeout:  options.pollTimeout,
		maxPolls: options.maxPolls,
		sleep:    options.sleep,
		logger:   options.logger,
	}
}

// Wait returns nil once the run is completed.
//
// It returns a *RunError if the run ends in any other terminal status or its status
// could not be retrieved, and ErrPollTimeout if the poll limits are reached first.
// Nothing is retrieved after a terminal status has been observed.
func (p Poller) Wait(ctx context.Context, threadID, runID string) error {
	waitCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	timedOut := func() bool {
		return ctx.Err() == nil && errors.Is(waitCtx.Err(), context.DeadlineExceeded)
	}

	for polls := 1; ; polls++ {
		run, err := p.backend.RetrieveRun(waitCtx, threadID, runID)
		if err != nil {
			if timedOut() {
				return fmt.Errorf("wait for run %s: %w after %s", runID, ErrPollTimeout, p.timeout)
			}

			return &RunError{RunID: runID, Err: err}
		}
		p.logger.DebugContext(ctx, "run status", "thread_id", threadID, "run_id", runID, "status", run.Status)

		if run.Status == RunCompleted {
			return nil
		}
		if run.Status.Terminal() {
			return &RunError{RunID: runID, Status: run.Status, Reason: run.LastError}
		}

		if p.maxPolls > 0 && polls >= p.maxPolls {
			return fmt.Errorf("wait for run %s: %w after %d polls", runID, ErrPollTimeout, polls)
		}
		if err := p.sleep(waitCtx, p.interval); err != nil {
			if timedOut() {
				return fmt.Errorf("wait for run %s: %w after %s", runID, ErrPollTimeout, p.timeout)
			}

			return fmt.Errorf("wait for run %s: %w", runID, err)
		}
	}
}
