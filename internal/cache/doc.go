// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a bounded LRU cache used to track GPU-resident
// layer textures.
//
// Unlike a plain memoization cache, callers can ask how much room is left
// before inserting. The software render context uses this to report texture
// pressure to the frame synchronizer:
//
//	textures := cache.New[uint64, Descriptor](64)
//	if textures.Room() < len(pending) {
//	    // constrained: the next sync should be conservative
//	}
//	evicted := textures.Put(id, desc)
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
