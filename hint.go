// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framesync

import (
	"log/slog"
	"math"
)

// Bounds outside which work durations are treated as clock anomalies and
// never reported. Both are exclusive.
const (
	HintLowerBound int64 = 100_000        // 100µs
	HintUpperBound int64 = 10_000_000_000 // 10s
)

// DefaultCPUTimePercentage is the share of the frame budget requested as
// target CPU work duration.
const DefaultCPUTimePercentage = 70

// HintKind identifies which work duration a hint carries.
type HintKind int

const (
	// HintTarget is the expected work duration for upcoming frames.
	HintTarget HintKind = iota

	// HintActual is the measured work duration of a finished frame.
	HintActual
)

// String returns the hint kind name.
func (k HintKind) String() string {
	switch k {
	case HintTarget:
		return "target"
	case HintActual:
		return "actual"
	default:
		return "unknown"
	}
}

// HintObserver is notified of durations that were computed but not
// reported because they fell outside (HintLowerBound, HintUpperBound).
// It is called on the render thread.
type HintObserver interface {
	HintSuppressed(kind HintKind, duration int64)
}

// HintObserverFunc adapts a function to HintObserver.
type HintObserverFunc func(kind HintKind, duration int64)

// HintSuppressed calls f(kind, duration).
func (f HintObserverFunc) HintSuppressed(kind HintKind, duration int64) {
	f(kind, duration)
}

// HintSample is the timing of one frame as seen by the estimator.
// All values are monotonic nanoseconds.
type HintSample struct {
	IntendedVsync         int64
	FrameDeadline         int64
	FrameStartTime        int64
	Now                   int64
	QueueDelay            int64
	DequeueBufferDuration int64
}

// WorkDurationEstimator turns frame deadlines and measured frame times into
// CPU scheduling hints. Values outside the sanity bounds are dropped, and an
// unchanged target is not re-sent.
//
// The estimator belongs to the render thread and is not safe for
// concurrent use.
type WorkDurationEstimator struct {
	cpuTimePercentage int64
	observer          HintObserver
	logger            func() *slog.Logger

	lastTargetWorkDuration    int64
	lastDequeueBufferDuration int64
}

// NewWorkDurationEstimator creates an estimator that targets
// cpuTimePercentage of each frame's budget. Percentages outside 1..100 are
// clamped. observer may be nil.
func NewWorkDurationEstimator(cpuTimePercentage int, observer HintObserver) *WorkDurationEstimator {
	return &WorkDurationEstimator{
		cpuTimePercentage: int64(min(max(cpuTimePercentage, 1), 100)),
		observer:          observer,
		logger:            Logger,
	}
}

// Update computes the target and actual work durations of one frame and
// forwards those that pass the sanity checks.
//
//	target = (FrameDeadline - IntendedVsync) * pct / 100
//	actual = (Now - FrameStartTime) - min(QueueDelay, previous dequeue) - DequeueBufferDuration
//
// The dequeue duration of s is remembered for the next call.
func (e *WorkDurationEstimator) Update(s HintSample, updateTarget, reportActual func(int64)) {
	target := targetWorkDuration(s.FrameDeadline-s.IntendedVsync, e.cpuTimePercentage)
	switch {
	case !inHintBounds(target):
		e.suppressed(HintTarget, target)
	case target != e.lastTargetWorkDuration:
		e.lastTargetWorkDuration = target
		updateTarget(target)
	}

	frameDuration := s.Now - s.FrameStartTime
	actual := frameDuration - min(s.QueueDelay, e.lastDequeueBufferDuration) - s.DequeueBufferDuration
	if inHintBounds(actual) {
		reportActual(actual)
	} else {
		e.suppressed(HintActual, actual)
	}

	e.lastDequeueBufferDuration = s.DequeueBufferDuration
}

// LastTargetWorkDuration returns the last target forwarded, or 0.
func (e *WorkDurationEstimator) LastTargetWorkDuration() int64 {
	return e.lastTargetWorkDuration
}

// LastDequeueBufferDuration returns the dequeue duration of the previous frame.
func (e *WorkDurationEstimator) LastDequeueBufferDuration() int64 {
	return e.lastDequeueBufferDuration
}

func (e *WorkDurationEstimator) suppressed(kind HintKind, d int64) {
	e.logger().Debug("framesync: work duration hint suppressed", "kind", kind.String(), "duration", d)
	if e.observer != nil {
		e.observer.HintSuppressed(kind, d)
	}
}

// targetWorkDuration scales the frame budget by pct. A budget too large to
// scale without overflowing is returned unscaled; it is far outside the
// hint bounds either way.
func targetWorkDuration(budget, pct int64) int64 {
	if budget > math.MaxInt64/100 || budget < math.MinInt64/100 {
		return budget
	}
	return budget * pct / 100
}

func inHintBounds(d int64) bool {
	return d > HintLowerBound && d < HintUpperBound
}
