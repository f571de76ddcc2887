// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// Direction specifies the direction of a run of text.
type Direction uint8

const (
	// DirectionLTR is left-to-right text (English, French, etc.)
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text (Arabic, Hebrew)
	DirectionRTL
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "LTR"
	case DirectionRTL:
		return "RTL"
	default:
		return unknownStr
	}
}

// GlyphID is a glyph index within a font.
type GlyphID uint16

// Rect is a rectangle in pixels, y growing downward.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Right returns X + Width.
func (r Rect) Right() float32 { return r.X + r.Width }

// Bottom returns Y + Height.
func (r Rect) Bottom() float32 { return r.Y + r.Height }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float32) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Union returns the smallest rectangle containing both r and s.
// An empty rectangle does not contribute to the result.
func (r Rect) Union(s Rect) Rect {
	if r.Width <= 0 && r.Height <= 0 {
		return s
	}
	if s.Width <= 0 && s.Height <= 0 {
		return r
	}
	x0 := min(r.X, s.X)
	y0 := min(r.Y, s.Y)
	x1 := max(r.Right(), s.Right())
	y1 := max(r.Bottom(), s.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Metrics holds the vertical metrics of a font at a pixel size.
// Descender is negative for fonts that extend below the baseline.
type Metrics struct {
	Ascender  float32
	Descender float32
	LineGap   float32
}

// LineHeight returns Ascender - Descender.
func (m Metrics) LineHeight() float32 {
	return m.Ascender - m.Descender
}

// Glyph is one shaped glyph of a run.
type Glyph struct {
	// ID is the glyph index in the font.
	ID GlyphID

	// Cluster is the byte offset, relative to the shaped text, of the first
	// character that produced this glyph.
	Cluster int

	// XAdvance is the horizontal pen advance in pixels.
	XAdvance float32

	// XOffset and YOffset shift the glyph from the pen position.
	// YOffset grows upward, as reported by the shaper.
	XOffset, YOffset float32
}

// Extents is the ink box of a glyph in pixels relative to the pen position
// on the baseline, y growing downward.
type Extents struct {
	BearingX float32
	BearingY float32
	Width    float32
	Height   float32
}
