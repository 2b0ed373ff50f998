// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import "sync"

const defaultTraceCapacity = 240

// Sample is one recorded frame.
type Sample struct {
	// FrameNumber is the render context frame number the sample belongs to.
	FrameNumber int64

	// SyncResult is the raw sync result bitmask returned to the producer.
	SyncResult uint32

	// Drawn reports whether the frame reached the draw step.
	Drawn bool

	// QueueDelay is the time between enqueue and the start of sync.
	QueueDelay int64

	// SyncDuration is the time spent in the sync phase.
	SyncDuration int64

	// DrawDuration is the time spent drawing or waiting on fences.
	DrawDuration int64

	// DequeueBufferDuration is the dequeue time reported by the draw.
	DequeueBufferDuration int64
}

// Timeline is a chronological copy of a TraceBuffer.
type Timeline struct {
	Samples       []Sample
	DroppedFrames int
}

// TraceBuffer keeps the most recent frame samples in a ring buffer.
//
// TraceBuffer is safe for concurrent use.
type TraceBuffer struct {
	mu      sync.Mutex
	samples []Sample
	index   int
	count   int
	dropped int
}

// NewTraceBuffer creates a buffer holding up to capacity samples.
// A non-positive capacity selects the default of 240.
func NewTraceBuffer(capacity int) *TraceBuffer {
	if capacity <= 0 {
		capacity = defaultTraceCapacity
	}
	return &TraceBuffer{samples: make([]Sample, capacity)}
}

// Capacity returns the maximum number of retained samples.
func (b *TraceBuffer) Capacity() int {
	return len(b.samples)
}

// Add records a sample. Samples that were not drawn count as dropped.
func (b *TraceBuffer) Add(s Sample) {
	b.mu.Lock()
	b.samples[b.index] = s
	b.index = (b.index + 1) % len(b.samples)
	if b.count < len(b.samples) {
		b.count++
	}
	if !s.Drawn {
		b.dropped++
	}
	b.mu.Unlock()
}

// Snapshot returns the retained samples oldest first, plus the total number
// of dropped frames seen since creation.
func (b *TraceBuffer) Snapshot() Timeline {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == 0 {
		return Timeline{DroppedFrames: b.dropped}
	}

	out := make([]Sample, b.count)
	if b.count < len(b.samples) {
		copy(out, b.samples[:b.count])
	} else {
		n := copy(out, b.samples[b.index:])
		copy(out[n:], b.samples[:b.index])
	}
	return Timeline{Samples: out, DroppedFrames: b.dropped}
}
