// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package framesync hands frames from a producer goroutine to a dedicated
// render thread.
//
// # Overview
//
// A UI goroutine builds frames. A render thread draws them. DrawFrameTask
// is the rendezvous between the two: the producer fills in the frame
// timing, queues layer updates and callbacks, and calls DrawFrame. The
// render thread copies that state into its render context, then releases
// the producer so it can start on the next frame while the current one is
// still being drawn.
//
// When the render context runs out of texture room, the producer is held
// until drawing finishes so it cannot overwrite content the render thread
// still needs.
//
// # Quick Start
//
//	rt := renderthread.New()
//	defer rt.Close()
//
//	ctx, _ := render.NewSoftwareContext(render.NullDeviceHandle{})
//	surface, _ := render.NewPixmapTarget(640, 480)
//	ctx.SetSurface(surface)
//
//	task := framesync.NewDrawFrameTask()
//	task.SetContext(rt, ctx, render.NewRenderNode("root"))
//
//	fi := task.FrameInfo()
//	fi.Set(frame.Vsync, vsync)
//	fi.Set(frame.IntendedVsync, vsync)
//
//	if res := task.DrawFrame(); res.Has(framesync.SyncUIRedrawRequired) {
//	    // schedule another frame
//	}
//
// # Architecture
//
// The module is organized into:
//   - framesync: DrawFrameTask, SyncResult, layer queue, work duration hints
//   - frame: per-frame timing vector and trace ring buffer
//   - render: render context interfaces and a software implementation
//   - renderthread: the FIFO render thread and its vsync TimeLord
//
// # Work Duration Hints
//
// With SetHintSessionCallbacks the task reports a target and an actual CPU
// work duration per frame, for performance hint sessions. Values outside
// (100µs, 10s) are never reported.
//
// # Concurrency
//
// A DrawFrameTask serves one producer goroutine. Its fields are handed to
// the render thread for the sync phase of each frame and handed back when
// the producer is released. Only one DrawFrame per task may be in flight.
package framesync

// Version information
const (
	// Version is the current version of the module
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
