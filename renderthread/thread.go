// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderthread

import (
	"runtime"
	"sync"
)

// Option configures a Thread.
type Option func(*options)

type options struct {
	lockOSThread bool
}

// WithoutOSThreadLock lets the Go scheduler move the worker goroutine
// between OS threads. By default the worker is pinned, which graphics APIs
// with thread-affine contexts require.
func WithoutOSThreadLock() Option {
	return func(o *options) {
		o.lockOSThread = false
	}
}

// Thread is a single goroutine that runs posted routines one at a time in
// submission order.
//
// Post and Close are safe for concurrent use. Everything a routine touches
// is owned by the Thread while the routine runs.
type Thread struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	running bool
	stopped chan struct{}

	timeLord *TimeLord
}

// New starts a Thread.
func New(opts ...Option) *Thread {
	o := options{lockOSThread: true}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Thread{
		running:  true,
		stopped:  make(chan struct{}),
		timeLord: NewTimeLord(),
	}
	t.cond = sync.NewCond(&t.mu)
	go t.loop(o.lockOSThread)
	return t
}

// Post queues fn to run on the thread. Routines run strictly in the order
// they were posted. Post never blocks, so routines running on the thread
// may post follow-up work to it.
//
// Post panics if the thread has been closed.
func (t *Thread) Post(fn func()) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		panic("renderthread: Post on closed thread")
	}
	t.queue = append(t.queue, fn)
	t.cond.Signal()
}

// TimeLord returns the vsync timing source owned by this thread.
// It must only be used from routines running on the thread.
func (t *Thread) TimeLord() *TimeLord {
	return t.timeLord
}

// Close stops accepting work, runs every routine already queued, and waits
// for the worker goroutine to exit. Close is idempotent. It must not be
// called from a routine running on the thread.
func (t *Thread) Close() {
	t.mu.Lock()
	if t.running {
		t.running = false
		t.cond.Broadcast()
	}
	t.mu.Unlock()
	<-t.stopped
}

func (t *Thread) loop(lockOSThread bool) {
	defer close(t.stopped)
	if lockOSThread {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}

	for {
		fn, ok := t.next()
		if !ok {
			return
		}
		fn()
	}
}

// next waits for the oldest queued routine. It reports false once the
// thread is closed and the queue is drained.
func (t *Thread) next() (func(), bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for len(t.queue) == 0 {
		if !t.running {
			return nil, false
		}
		t.cond.Wait()
	}
	fn := t.queue[0]
	t.queue[0] = nil
	t.queue = t.queue[1:]
	return fn, true
}
