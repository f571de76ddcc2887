// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textatlas

import (
	"unicode/utf8"

	"github.com/gogpu/textatlas/text"
)

// spikeGlyph has an outline with a zero-area contour.
const spikeGlyph text.GlyphID = 'S'

// fakeFont maps every rune to the glyph of the same number with a 10px
// advance. Every drawable glyph is the same 6×6 square.
type fakeFont struct {
	id   string
	size int

	// noExtents lists glyphs the font cannot measure.
	noExtents map[text.GlyphID]bool

	// shapeErr, when set, fails every Shape call.
	shapeErr error

	shapeCalls   int
	outlineCalls int
}

var _ text.Font = (*fakeFont)(nil)

func newFakeFont(size int) *fakeFont {
	return &fakeFont{id: "fake.ttf", size: size, noExtents: map[text.GlyphID]bool{}}
}

func (f *fakeFont) ID() string { return f.id }
func (f *fakeFont) Size() int  { return f.size }

func (f *fakeFont) Metrics() text.Metrics {
	return text.Metrics{Ascender: 8, Descender: -2}
}

func (f *fakeFont) Measure(s string) text.Rect {
	return text.Rect{Y: -8, Width: 10 * float32(utf8.RuneCountInString(s)), Height: 10}
}

func (f *fakeFont) Shape(s string, _ text.Direction) ([]text.Glyph, error) {
	f.shapeCalls++
	if f.shapeErr != nil {
		return nil, f.shapeErr
	}
	var glyphs []text.Glyph
	for i, r := range s {
		glyphs = append(glyphs, text.Glyph{ID: text.GlyphID(r), Cluster: i, XAdvance: 10})
	}
	return glyphs, nil
}

func (f *fakeFont) GlyphExtents(id text.GlyphID) (text.Extents, bool) {
	if f.noExtents[id] {
		return text.Extents{}, false
	}
	return text.Extents{BearingX: 1, BearingY: -7, Width: 6, Height: 6}, true
}

func (f *fakeFont) GlyphOutline(id text.GlyphID) (*text.Outline, error) {
	f.outlineCalls++
	out := &text.Outline{GID: id}
	if id == ' ' || id == '\n' {
		return out, nil
	}
	pts := []text.OutlinePoint{{X: 1, Y: -7}, {X: 7, Y: -7}, {X: 7, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: -7}}
	if id == spikeGlyph {
		// A contour that goes out and back encloses nothing.
		pts = []text.OutlinePoint{{X: 1, Y: -7}, {X: 7, Y: -1}, {X: 1, Y: -7}}
	}
	out.Segments = append(out.Segments, text.OutlineSegment{Op: text.OutlineOpMoveTo, Points: [3]text.OutlinePoint{pts[0]}})
	for _, p := range pts[1:] {
		out.Segments = append(out.Segments, text.OutlineSegment{Op: text.OutlineOpLineTo, Points: [3]text.OutlinePoint{p}})
	}
	return out, nil
}

// fakeLoader returns the same fakeFont for every request and counts loads.
type fakeLoader struct {
	font  *fakeFont
	loads int
	err   error
}

func (l *fakeLoader) load(path string, size int) (text.Font, error) {
	l.loads++
	if l.err != nil {
		return nil, l.err
	}
	l.font.id = path
	l.font.size = size
	return l.font, nil
}
