// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textatlas

import "github.com/gogpu/textatlas/gpu"

// Text is a string with the attributes it is rendered with.
type Text struct {
	Contents string

	// Size is the pixel size.
	Size int

	// Font is the font path passed to the FontLoader.
	Font string

	// Color is the RGBA fill color. Color, Bold and Italic are carried for
	// the draw call; they do not select different glyphs and are not part
	// of any cache key.
	Color  [4]float32
	Bold   bool
	Italic bool
}

// Rect is the rectangle a Text is laid out in. X and Y anchor the first
// line; Width constrains the lines. A non-positive Width is unconstrained.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Size is a width and height in pixels.
type Size struct {
	Width, Height float32
}

// Block is a rendered text block ready to draw.
type Block struct {
	// Buffer holds VertexCount vertices in the layout of
	// gpu.TextVertexLayout. It is InvalidID when the text has no visible
	// glyphs.
	Buffer gpu.BufferID

	VertexCount int

	// Size is the widest line advance by the number of lines times the
	// line height.
	Size Size
}
