// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"math"
	"slices"
	"strconv"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	c := New[string, int](100)
	if c == nil {
		t.Fatal("New returned nil")
	}
	if c.Capacity() != 100 {
		t.Errorf("Capacity() = %d, want 100", c.Capacity())
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if c.Room() != 100 {
		t.Errorf("Room() = %d, want 100", c.Room())
	}
}

func TestCacheGetPut(t *testing.T) {
	c := New[string, int](10)

	if evicted := c.Put("a", 1); evicted != nil {
		t.Errorf("Put() evicted %v, want nothing", evicted)
	}

	v, ok := c.Get("a")
	if !ok || v != 1 {
		t.Errorf("Get(a) = (%d, %v), want (1, true)", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	c.Put("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("Get(a) after overwrite = %d, want 2", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, string](3)
	c.Put(1, "one")
	c.Put(2, "two")
	c.Put(3, "three")

	// Touch 1 so 2 becomes the oldest.
	c.Get(1)

	evicted := c.Put(4, "four")
	if !slices.Equal(evicted, []int{2}) {
		t.Fatalf("Put(4) evicted %v, want [2]", evicted)
	}
	if c.Contains(2) {
		t.Error("key 2 should have been evicted")
	}
	for _, k := range []int{1, 3, 4} {
		if !c.Contains(k) {
			t.Errorf("key %d should still be cached", k)
		}
	}
	if c.Room() != 0 {
		t.Errorf("Room() = %d, want 0", c.Room())
	}
}

func TestCacheDelete(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)

	if !c.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if c.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
	if c.Room() != 2 {
		t.Errorf("Room() = %d, want 2", c.Room())
	}
}

func TestCacheUnlimited(t *testing.T) {
	c := New[int, int](0)
	for i := range 1000 {
		if evicted := c.Put(i, i); evicted != nil {
			t.Fatalf("unlimited cache evicted %v", evicted)
		}
	}
	if c.Room() != math.MaxInt {
		t.Errorf("Room() = %d, want MaxInt", c.Room())
	}
}

func TestCacheClear(t *testing.T) {
	c := New[int, int](4)
	c.Put(1, 1)
	c.Put(2, 2)
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	c.Put(3, 3)
	if !c.Contains(3) {
		t.Error("cache unusable after Clear")
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := New[string, int](32)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				key := strconv.Itoa(g*1000 + i%50)
				c.Put(key, i)
				c.Get(key)
				if i%7 == 0 {
					c.Delete(key)
				}
			}
		}()
	}
	wg.Wait()

	if c.Len() > 32 {
		t.Errorf("Len() = %d, exceeds capacity 32", c.Len())
	}
}
