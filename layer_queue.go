// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framesync

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/gogpu/framesync/render"
)

// LayerUpdateQueue is an ordered set of pending layer updates. Handles are
// compared by identity: pushing a handle already queued does nothing.
//
// The queue is not locked. The producer mutates it between frames and the
// render thread drains it during sync; the single in-flight frame rule keeps
// the two apart.
type LayerUpdateQueue struct {
	layers []render.LayerUpdater
}

// Push appends l unless it is already queued. It panics if l's dynamic
// type is not comparable.
func (q *LayerUpdateQueue) Push(l render.LayerUpdater) {
	if l == nil {
		return
	}
	mustBeComparable(l)
	if slices.Contains(q.layers, l) {
		return
	}
	q.layers = append(q.layers, l)
}

// Remove drops l from the queue. It reports whether l was queued.
func (q *LayerUpdateQueue) Remove(l render.LayerUpdater) bool {
	if l == nil {
		return false
	}
	mustBeComparable(l)
	i := slices.Index(q.layers, l)
	if i < 0 {
		return false
	}
	q.layers = slices.Delete(q.layers, i, i+1)
	return true
}

// Len returns the number of queued updates.
func (q *LayerUpdateQueue) Len() int {
	return len(q.layers)
}

// Apply applies every queued update in insertion order and empties the queue.
func (q *LayerUpdateQueue) Apply() {
	for i, l := range q.layers {
		l.Apply()
		q.layers[i] = nil
	}
	q.layers = q.layers[:0]
}

// mustBeComparable rejects handles that cannot serve as an identity, such as
// struct values holding slices, before == on them panics with a runtime
// error.
func mustBeComparable(l render.LayerUpdater) {
	if typ := reflect.TypeOf(l); !typ.Comparable() {
		panic(fmt.Sprintf("framesync: layer update handle of type %s is not comparable; use a pointer", typ))
	}
}
