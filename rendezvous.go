// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framesync

import (
	"sync"
	"sync/atomic"
)

// rendezvous blocks the producer until the render thread releases it.
// It is the only state in a DrawFrameTask guarded by a lock.
type rendezvous struct {
	mu      sync.Mutex
	cond    sync.Cond
	waiting bool

	// releases counts every release, for tests of the exactly-once rule.
	releases atomic.Int64
}

func (r *rendezvous) init() {
	r.cond.L = &r.mu
}

// postAndWait marks a frame in flight, calls post, and blocks until release.
// post runs under the lock so the render thread cannot release before the
// producer is waiting.
func (r *rendezvous) postAndWait(post func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.waiting = true
	post()
	for r.waiting {
		r.cond.Wait()
	}
}

// release wakes the producer. Releasing a frame that is not waiting is a
// protocol violation and panics.
func (r *rendezvous) release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.waiting {
		panic("framesync: producer released twice for one frame")
	}
	r.waiting = false
	r.releases.Add(1)
	r.cond.Signal()
}
