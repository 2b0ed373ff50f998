// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package frame holds per-frame timing data shared by the producer and the
// render goroutine.
//
// Info is a fixed-layout vector of int64 slots. The producer fills it in
// before handing the frame over; the render side reads vsync, deadline and
// start times from it for pacing and work duration hints.
//
// TraceBuffer keeps a bounded history of completed frames for diagnostics.
package frame
