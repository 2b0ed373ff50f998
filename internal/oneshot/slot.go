// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package oneshot provides a single-shot value slot.
package oneshot

// Slot holds at most one value that can be taken exactly once.
//
// Slot is not safe for concurrent use. Ownership passes between goroutines
// through whatever synchronization the caller already has.
type Slot[T any] struct {
	v  T
	ok bool
}

// Set stores v, replacing any value not yet taken.
func (s *Slot[T]) Set(v T) {
	s.v = v
	s.ok = true
}

// Clear empties the slot.
func (s *Slot[T]) Clear() {
	var zero T
	s.v = zero
	s.ok = false
}

// Take returns the stored value and empties the slot.
// The second result is false when the slot was empty.
func (s *Slot[T]) Take() (T, bool) {
	v, ok := s.v, s.ok
	s.Clear()
	return v, ok
}

// IsSet reports whether the slot holds a value.
func (s *Slot[T]) IsSet() bool {
	return s.ok
}
