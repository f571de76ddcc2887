// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package atlas packs rectangles into a fixed-size two-dimensional canvas.
//
// The Allocator is a binary-tree bin packer. Every node of the tree covers a
// rectangle of the canvas; an internal node has exactly two children that
// partition its rectangle, and a leaf is either free or allocated. Inserting
// a w×h request walks the tree depth-first and, at the first free leaf large
// enough, either takes the leaf as-is (exact fit) or splits it so that the
// first child is exactly the requested size along one axis.
//
// Individual rectangles are never freed. The canvas can only grow (Resize) or
// be discarded as a whole (Reset).
//
//	a := atlas.New(1024, 1024)
//	h, r, err := a.Insert(20, 32)
//	if errors.Is(err, atlas.ErrAtlasFull) {
//	    // the atlas generation is exhausted
//	}
//	_ = h
//	fmt.Println(r.X, r.Y)
package atlas
