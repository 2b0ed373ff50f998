// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderthread

import "math"

// DefaultFrameInterval is the frame interval assumed until a vsync with an
// explicit interval arrives (60 Hz, in nanoseconds).
const DefaultFrameInterval int64 = 16_666_667

// TimeLord tracks the most recent vsync the render thread has been told about.
//
// TimeLord is not safe for concurrent use; it belongs to the render thread.
type TimeLord struct {
	frameInterval     int64
	frameTime         int64
	frameIntendedTime int64
	frameVsyncID      int64
	frameDeadline     int64
}

// NewTimeLord returns a TimeLord with no vsync recorded.
func NewTimeLord() *TimeLord {
	return &TimeLord{
		frameInterval: DefaultFrameInterval,
		frameVsyncID:  -1,
		frameDeadline: math.MaxInt64,
	}
}

// VsyncReceived records the timing metadata of a new frame. It reports
// whether vsync is newer than the last one recorded; stale values are
// ignored. A positive interval replaces the current frame interval.
func (t *TimeLord) VsyncReceived(vsync, intendedVsync, vsyncID, deadline, interval int64) bool {
	if intendedVsync > t.frameIntendedTime {
		t.frameIntendedTime = intendedVsync
		if interval > 0 {
			t.frameInterval = interval
		}
	}
	if vsync > t.frameTime {
		t.frameTime = vsync
		t.frameVsyncID = vsyncID
		t.frameDeadline = deadline
		return true
	}
	return false
}

// ComputeFrameTime returns the latest vsync, advanced in whole frame
// intervals so it is never more than one interval behind now.
func (t *TimeLord) ComputeFrameTime(now int64) int64 {
	if t.frameInterval <= 0 {
		return t.frameTime
	}
	if jitter := now - t.frameTime; jitter >= t.frameInterval {
		t.frameTime += (jitter / t.frameInterval) * t.frameInterval
	}
	return t.frameTime
}

// LatestVsync returns the most recent vsync timestamp.
func (t *TimeLord) LatestVsync() int64 { return t.frameTime }

// LatestIntendedVsync returns the most recent intended vsync timestamp.
func (t *TimeLord) LatestIntendedVsync() int64 { return t.frameIntendedTime }

// LatestVsyncID returns the frame timeline id of the latest vsync, or -1.
func (t *TimeLord) LatestVsyncID() int64 { return t.frameVsyncID }

// FrameDeadline returns the deadline of the latest vsync.
func (t *TimeLord) FrameDeadline() int64 { return t.frameDeadline }

// FrameInterval returns the current frame interval in nanoseconds.
func (t *TimeLord) FrameInterval() int64 { return t.frameInterval }
