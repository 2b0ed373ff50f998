// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package renderthread provides the single-goroutine work queue that the
// frame synchronizer posts frames to, and the vsync bookkeeping that lives
// on it.
//
// A Thread runs posted routines strictly in FIFO order on one goroutine,
// pinned to an OS thread by default:
//
//	rt := renderthread.New()
//	defer rt.Close()
//
//	rt.Post(func() {
//	    rt.TimeLord().VsyncReceived(vsync, intended, id, deadline, interval)
//	    // draw
//	})
//
// # Thread Safety
//
// Post and Close may be called from any goroutine. TimeLord is owned by the
// thread and must only be touched from routines running on it.
package renderthread
