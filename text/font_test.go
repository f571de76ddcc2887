// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import "sync/atomic"

// monoFont is a fixed-advance Font for layout tests. Every rune advances
// by advance pixels unless listed in wide.
type monoFont struct {
	advance float32
	wide    map[rune]float32

	shapeCalls atomic.Int32
}

func newMonoFont() *monoFont {
	return &monoFont{advance: 10}
}

func (f *monoFont) ID() string       { return "mono" }
func (f *monoFont) Size() int        { return 10 }
func (f *monoFont) Metrics() Metrics { return Metrics{Ascender: 8, Descender: -2} }

func (f *monoFont) runeAdvance(r rune) float32 {
	if w, ok := f.wide[r]; ok {
		return w
	}
	return f.advance
}

func (f *monoFont) Measure(s string) Rect {
	var w float32
	for _, r := range s {
		w += f.runeAdvance(r)
	}
	return Rect{Y: -8, Width: w, Height: 10}
}

func (f *monoFont) Shape(s string, _ Direction) ([]Glyph, error) {
	f.shapeCalls.Add(1)
	var glyphs []Glyph
	for i, r := range s {
		glyphs = append(glyphs, Glyph{
			ID:       GlyphID(r), //nolint:gosec // test runes are ASCII or BMP
			Cluster:  i,
			XAdvance: f.runeAdvance(r),
		})
	}
	return glyphs, nil
}

func (f *monoFont) GlyphExtents(GlyphID) (Extents, bool) {
	return Extents{BearingY: -8, Width: f.advance, Height: 10}, true
}

func (f *monoFont) GlyphOutline(id GlyphID) (*Outline, error) {
	return &Outline{GID: id}, nil
}
