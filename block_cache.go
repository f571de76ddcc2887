// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textatlas

import (
	"github.com/gogpu/textatlas/gpu"
	"github.com/gogpu/textatlas/internal/cache"
)

// BlockKey identifies a rendered block. The anchor is part of the key
// because vertices are emitted in absolute positions.
type BlockKey struct {
	Font string
	Size int
	Text string
	X, Y float32
}

// BlockCache maps keys to rendered blocks. It never evicts; the vertex
// buffers live until Release.
type BlockCache struct {
	entries *cache.Cache[BlockKey, Block]
}

func newBlockCache() *BlockCache {
	return &BlockCache{entries: cache.New[BlockKey, Block]()}
}

// Get returns the block stored for key.
func (c *BlockCache) Get(key BlockKey) (Block, bool) {
	return c.entries.Get(key)
}

// Put stores a block.
func (c *BlockCache) Put(key BlockKey, b Block) {
	c.entries.Set(key, b)
}

// Len returns the number of cached blocks.
func (c *BlockCache) Len() int { return c.entries.Len() }

// Release destroys the vertex buffers of all blocks and empties the cache.
func (c *BlockCache) Release(backend gpu.Backend) {
	c.entries.Range(func(_ BlockKey, b Block) bool {
		if b.Buffer != gpu.InvalidID {
			backend.DestroyBuffer(b.Buffer)
		}
		return true
	})
	c.entries.Clear()
}
