// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import "fmt"

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Area returns Width*Height.
func (r Rect) Area() int { return r.Width * r.Height }

// Overlaps reports whether r and s share at least one pixel.
func (r Rect) Overlaps(s Rect) bool {
	return r.X < s.Right() && s.X < r.Right() && r.Y < s.Bottom() && s.Y < r.Bottom()
}

// Handle identifies an allocated rectangle. It stays valid until the
// allocator is reset or re-initialized.
type Handle int32

// InvalidHandle is returned together with an error from Insert.
const InvalidHandle Handle = -1

const noNode = -1

// node is one entry of the allocator arena. Children and parent are arena
// indices; noNode marks their absence.
type node struct {
	rect   Rect
	first  int32
	second int32
	parent int32

	allocated bool
	// size actually requested for an allocated leaf; the region in rect can
	// be larger after the canvas has grown.
	usedW, usedH int
}

func (n *node) isInternal() bool { return n.first != noNode }

// walkMode is the progress of the depth-first walk at one node.
type walkMode uint8

const (
	walkStart walkMode = iota
	walkFirst
	walkSecond
)

type walkState struct {
	node int32
	mode walkMode
}

// Allocator is a binary-tree rectangle packer over a width×height canvas.
//
// Allocator is not safe for concurrent use.
type Allocator struct {
	nodes  []node
	stack  []walkState
	width  int
	height int
	used   int
}

// New creates an allocator for a width×height canvas.
// Non-positive dimensions produce an empty canvas on which every Insert fails.
func New(width, height int) *Allocator {
	a := &Allocator{}
	a.Init(width, height)
	return a
}

// Init discards all allocations and resets the canvas to a single free
// rectangle of the given size.
func (a *Allocator) Init(width, height int) {
	a.width = max(width, 0)
	a.height = max(height, 0)
	a.Reset()
}

// Reset discards the whole tree, leaving one free root rectangle that covers
// the current canvas. Handles issued before Reset are invalid afterwards.
func (a *Allocator) Reset() {
	a.nodes = a.nodes[:0]
	a.nodes = append(a.nodes, node{
		rect:   Rect{Width: a.width, Height: a.height},
		first:  noNode,
		second: noNode,
		parent: noNode,
	})
	a.used = 0
}

// Size returns the canvas dimensions.
func (a *Allocator) Size() (width, height int) {
	return a.width, a.height
}

// Used returns the total area of all allocated rectangles.
func (a *Allocator) Used() int {
	return a.used
}

// Len returns the number of nodes in the tree.
func (a *Allocator) Len() int {
	return len(a.nodes)
}

// Rect returns the rectangle allocated for h.
func (a *Allocator) Rect(h Handle) (Rect, bool) {
	if h < 0 || int(h) >= len(a.nodes) {
		return Rect{}, false
	}
	n := &a.nodes[h]
	if !n.allocated {
		return Rect{}, false
	}
	return Rect{X: n.rect.X, Y: n.rect.Y, Width: n.usedW, Height: n.usedH}, true
}

// Insert allocates a w×h rectangle.
//
// The tree is walked depth-first, first child before second. A free leaf of
// exactly w×h is taken without splitting. A larger free leaf is split along
// the axis with the larger remaining slack so that its first child fits the
// request exactly on that axis; the walk then continues into the first child.
//
// When no free leaf can hold the request, Insert returns ErrAtlasFull. There
// is no eviction: the caller has to Reset or grow the canvas.
func (a *Allocator) Insert(w, h int) (Handle, Rect, error) {
	if w <= 0 || h <= 0 {
		return InvalidHandle, Rect{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}

	a.stack = append(a.stack[:0], walkState{node: 0})
	for len(a.stack) > 0 {
		top := len(a.stack) - 1
		state := &a.stack[top]
		cur := &a.nodes[state.node]

		if cur.isInternal() {
			switch state.mode {
			case walkStart:
				state.mode = walkFirst
				a.stack = append(a.stack, walkState{node: cur.first})
			case walkFirst:
				state.mode = walkSecond
				a.stack = append(a.stack, walkState{node: cur.second})
			default:
				a.stack = a.stack[:top]
			}
			continue
		}

		if cur.allocated || cur.rect.Width < w || cur.rect.Height < h {
			a.stack = a.stack[:top]
			continue
		}

		if cur.rect.Width == w && cur.rect.Height == h {
			cur.allocated = true
			cur.usedW, cur.usedH = w, h
			a.used += w * h
			return Handle(state.node), cur.rect, nil
		}

		a.split(state.node, w, h)
	}

	return InvalidHandle, Rect{}, fmt.Errorf("%w: no room for %dx%d", ErrAtlasFull, w, h)
}

// split turns the free leaf at idx into an internal node with two children.
func (a *Allocator) split(idx int32, w, h int) {
	r := a.nodes[idx].rect
	dw := r.Width - w
	dh := r.Height - h

	var first, second Rect
	if dw > dh {
		first = Rect{X: r.X, Y: r.Y, Width: w, Height: r.Height}
		second = Rect{X: r.X + w, Y: r.Y, Width: dw, Height: r.Height}
	} else {
		first = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: h}
		second = Rect{X: r.X, Y: r.Y + h, Width: r.Width, Height: dh}
	}

	fi := int32(len(a.nodes)) //nolint:gosec // arena size is bounded by canvas area
	a.nodes = append(a.nodes,
		node{rect: first, first: noNode, second: noNode, parent: idx},
		node{rect: second, first: noNode, second: noNode, parent: idx},
	)
	// append may have moved the arena; index again.
	a.nodes[idx].first = fi
	a.nodes[idx].second = fi + 1
}

// Resize grows the canvas to width×height. Every rectangle whose right edge
// lies on the old right boundary is extended to the new one, and likewise
// for the bottom boundary, so the tree keeps partitioning the canvas.
// Allocated rectangles keep their size.
func (a *Allocator) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width < a.width || height < a.height {
		return fmt.Errorf("%w: %dx%d -> %dx%d", ErrShrink, a.width, a.height, width, height)
	}

	dw := width - a.width
	dh := height - a.height
	for i := range a.nodes {
		n := &a.nodes[i]
		if n.rect.Right() == a.width {
			n.rect.Width += dw
		}
		if n.rect.Bottom() == a.height {
			n.rect.Height += dh
		}
	}
	a.width, a.height = width, height
	return nil
}

// Utilization returns the allocated fraction of the canvas (0.0 to 1.0).
func (a *Allocator) Utilization() float64 {
	total := a.width * a.height
	if total == 0 {
		return 0
	}
	return float64(a.used) / float64(total)
}
