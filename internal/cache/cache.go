// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"math"
	"sync"
)

// Cache is a bounded LRU map. Inserting past capacity evicts the least
// recently used entries.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*entry[K, V]
	order    lruList[K]
	capacity int
}

type entry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// New creates a cache holding at most capacity entries.
// A capacity of 0 or less means unlimited.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:  make(map[K]*entry[K, V]),
		capacity: capacity,
	}
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.moveToFront(e.node)
	return e.value, true
}

// Contains reports whether key is present without touching its recency.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	return ok
}

// Put stores value under key and returns the keys evicted to make room,
// oldest first.
func (c *Cache[K, V]) Put(key K, value V) []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.order.moveToFront(e.node)
		return nil
	}

	c.entries[key] = &entry[K, V]{value: value, node: c.order.pushFront(key)}

	var evicted []K
	for c.capacity > 0 && len(c.entries) > c.capacity {
		old, ok := c.order.removeOldest()
		if !ok {
			break
		}
		delete(c.entries, old)
		evicted = append(evicted, old)
	}
	return evicted
}

// Delete removes key. It returns false if key was not present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.unlink(e.node)
	delete(c.entries, key)
	return true
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the entry limit, 0 if unlimited.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Room returns how many entries can be added before eviction starts.
func (c *Cache[K, V]) Room() int {
	if c.capacity <= 0 {
		return math.MaxInt
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capacity - len(c.entries)
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*entry[K, V])
	c.order = lruList[K]{}
}
