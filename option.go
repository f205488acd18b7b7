// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ontogen

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollTimeout  = 10 * time.Minute
)

// WithPollInterval sets the pause between two run status checks.
func WithPollInterval(interval time.Duration) Option {
	return func(options *options) {
		if interval > 0 {
			options.pollInterval = interval
		}
	}
}

// WithPollTimeout bounds the total time spent waiting for a run.
// Zero or a negative value disables the bound.
func WithPollTimeout(timeout time.Duration) Option {
	return func(options *options) {
		options.pollTimeout = timeout
	}
}

// WithMaxPolls bounds the number of run status checks. Zero disables the bound.
func WithMaxPolls(maxPolls int) Option {
	return func(options *options) {
		options.maxPolls = maxPolls
	}
}

// WithUploadConcurrency sets how many files of a batch are uploaded simultaneously.
func WithUploadConcurrency(concurrency int) Option {
	return func(options *options) {
		if concurrency > 0 {
			options.uploadConcurrency = concurrency
		}
	}
}

// WithTempDir sets the directory for transient upload copies.
// By default, os.TempDir is used.
func WithTempDir(dir string) Option {
	return func(options *options) {
		options.tempDir = dir
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		if logger != nil {
			options.logger = logger
		}
	}
}

// WithSleep replaces the function used to pause between run status checks.
// It must return the context error if the context is done before the pause ends.
func WithSleep(sleep func(ctx context.Context, duration time.Duration) error) Option {
	return func(options *options) {
		if sleep != nil {
			options.sleep = sleep
		}
	}
}

type (
	Option  func(*options)
	options struct {
		pollInterval      time.Duration
		pollTimeout       time.Duration
		maxPolls          int
		uploadConcurrency int
		tempDir           string
		logger            *slog.Logger
		sleep             func(context.Context, time.Duration) error
	}
)

func apply(opts []Option) options {
	option := options{
		pollInterval:      DefaultPollInterval,
		pollTimeout:       DefaultPollTimeout,
		uploadConcurrency: 1,
		logger:            slog.Default(),
		sleep:             sleep,
	}
	for _, opt := range opts {
		opt(&option)
	}

	return option
}

func sleep(ctx context.Context, duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
