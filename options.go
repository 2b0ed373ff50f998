// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framesync

import (
	"log/slog"
	"time"

	"github.com/gogpu/framesync/frame"
)

// TaskOption configures a DrawFrameTask during creation.
//
// Example:
//
//	task := framesync.NewDrawFrameTask(
//	    framesync.WithCPUTimePercentage(80),
//	    framesync.WithTraceBuffer(frame.NewTraceBuffer(120)),
//	)
type TaskOption func(*taskOptions)

// taskOptions holds optional configuration for DrawFrameTask creation.
type taskOptions struct {
	cpuTimePercentage int
	clock             func() int64
	logger            *slog.Logger
	trace             *frame.TraceBuffer
	observer          HintObserver
}

var clockEpoch = time.Now()

// monotonicClock returns nanoseconds since package initialization on the
// monotonic clock.
func monotonicClock() int64 {
	return int64(time.Since(clockEpoch))
}

// defaultTaskOptions returns the default task options.
func defaultTaskOptions() taskOptions {
	return taskOptions{
		cpuTimePercentage: DefaultCPUTimePercentage,
		clock:             monotonicClock,
	}
}

// WithCPUTimePercentage sets the share of the frame budget, in percent,
// reported as the target work duration. Values are clamped to 1..100.
func WithCPUTimePercentage(p int) TaskOption {
	return func(o *taskOptions) {
		o.cpuTimePercentage = p
	}
}

// WithClock replaces the monotonic nanosecond clock. The frame info the
// producer writes must use the same time base. The clock is called from
// both the producer and the render thread.
func WithClock(clock func() int64) TaskOption {
	return func(o *taskOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger sets a task-specific logger. Without it the package logger
// from Logger is used.
func WithLogger(l *slog.Logger) TaskOption {
	return func(o *taskOptions) {
		o.logger = l
	}
}

// WithTraceBuffer records one sample per frame into b.
func WithTraceBuffer(b *frame.TraceBuffer) TaskOption {
	return func(o *taskOptions) {
		o.trace = b
	}
}

// WithHintObserver installs an observer for suppressed work duration hints.
func WithHintObserver(obs HintObserver) TaskOption {
	return func(o *taskOptions) {
		o.observer = obs
	}
}
