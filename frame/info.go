// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import "strconv"

// Index names one slot of an Info vector.
type Index int

// Slots of the Info vector, in layout order.
//
// All time slots hold monotonic nanoseconds. DequeueBufferDuration and
// QueueBufferDuration hold durations rather than points in time.
const (
	Flags Index = iota
	IntendedVsync
	Vsync
	InputEventID
	HandleInputStart
	AnimationStart
	PerformTraversalsStart
	DrawStart
	FrameDeadline
	FrameStartTime
	FrameInterval
	FrameTimelineVsyncID
	SyncQueued
	SyncStart
	IssueDrawCommandsStart
	SwapBuffers
	FrameCompleted
	DequeueBufferDuration
	QueueBufferDuration
	GPUCompleted
	SwapBuffersCompleted
	DisplayPresentTime

	// NumIndices is the number of slots in an Info vector.
	NumIndices
)

var indexNames = [NumIndices]string{
	Flags:                  "Flags",
	IntendedVsync:          "IntendedVsync",
	Vsync:                  "Vsync",
	InputEventID:           "InputEventID",
	HandleInputStart:       "HandleInputStart",
	AnimationStart:         "AnimationStart",
	PerformTraversalsStart: "PerformTraversalsStart",
	DrawStart:              "DrawStart",
	FrameDeadline:          "FrameDeadline",
	FrameStartTime:         "FrameStartTime",
	FrameInterval:          "FrameInterval",
	FrameTimelineVsyncID:   "FrameTimelineVsyncID",
	SyncQueued:             "SyncQueued",
	SyncStart:              "SyncStart",
	IssueDrawCommandsStart: "IssueDrawCommandsStart",
	SwapBuffers:            "SwapBuffers",
	FrameCompleted:         "FrameCompleted",
	DequeueBufferDuration:  "DequeueBufferDuration",
	QueueBufferDuration:    "QueueBufferDuration",
	GPUCompleted:           "GPUCompleted",
	SwapBuffersCompleted:   "SwapBuffersCompleted",
	DisplayPresentTime:     "DisplayPresentTime",
}

// String returns the slot name.
func (i Index) String() string {
	if i < 0 || i >= NumIndices {
		return "Index(" + strconv.Itoa(int(i)) + ")"
	}
	return indexNames[i]
}

// Bits stored in the Flags slot.
const (
	FlagWindowVisibilityChanged int64 = 1 << iota
	FlagRTAnimation
	FlagSurfaceCanvas
	FlagSkippedFrame
)

// Info is the fixed-layout timing vector of one frame.
//
// The producer overwrites it before each frame is handed to the render
// goroutine; the render side only reads it.
type Info [NumIndices]int64

// Get returns the value stored at i.
func (fi *Info) Get(i Index) int64 {
	return fi[i]
}

// Set stores v at i.
func (fi *Info) Set(i Index, v int64) {
	fi[i] = v
}

// AddFlag ORs flag into the Flags slot.
func (fi *Info) AddFlag(flag int64) {
	fi[Flags] |= flag
}

// HasFlag reports whether flag is set in the Flags slot.
func (fi *Info) HasFlag(flag int64) bool {
	return fi[Flags]&flag != 0
}

// Duration returns end minus start, or 0 when either slot is unset or the
// span is negative.
func (fi *Info) Duration(start, end Index) int64 {
	s, e := fi[start], fi[end]
	if s <= 0 || e <= 0 || e < s {
		return 0
	}
	return e - s
}

// Reset zeroes every slot.
func (fi *Info) Reset() {
	*fi = Info{}
}
