// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

// Font is a font instance at one pixel size, as consumed by Layout and the
// glyph rasterizer. Face is the implementation backed by real font files.
type Font interface {
	// ID identifies the font file, usually its path.
	ID() string

	// Size returns the pixel size.
	Size() int

	// Metrics returns ascender, descender and line gap in pixels.
	Metrics() Metrics

	// Measure shapes s left-to-right and returns its box: X is 0, Y is
	// -Ascender, Width is the sum of advances and Height is the line height.
	Measure(s string) Rect

	// Shape converts s into positioned glyphs in shaped order.
	Shape(s string, dir Direction) ([]Glyph, error)

	// GlyphExtents returns the ink box of a glyph. It returns false when
	// the font cannot measure the glyph.
	GlyphExtents(id GlyphID) (Extents, bool)

	// GlyphOutline returns the vector outline of a glyph in pixels.
	GlyphOutline(id GlyphID) (*Outline, error)
}
