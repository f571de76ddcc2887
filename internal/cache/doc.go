// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides the generic caches used by the glyph, block and
// shaping caches.
//
// # Cache[K, V]
//
// An unbounded map with hit/miss accounting. Entries are only removed by
// Clear. It backs caches whose entries own resources that must stay alive
// for the lifetime of their owner (atlas rectangles, vertex buffers).
//
//	c := cache.New[GlyphKey, Glyph]()
//	c.Set(key, glyph)
//	g, ok := c.Get(key)
//
// # ShardedCache[K, V]
//
// A bounded LRU split into 16 shards to reduce lock contention. Keys are
// distributed with hash/maphash, so any comparable key works without a
// hand-written hash function.
//
//	c := cache.NewSharded[shapeKey, []Glyph](256)
//	c.Set(key, glyphs)
//
// # Thread Safety
//
// Both caches are safe for concurrent use and must not be copied after
// creation.
package cache
