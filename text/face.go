// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/gogpu/textatlas/internal/cache"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Face is a Source at one pixel size. It implements Font.
//
// Face is safe for concurrent use. Metric and outline queries share one
// sfnt.Buffer and are serialized; shaping is not.
type Face struct {
	src  *Source
	size int
	ppem fixed.Int26_6

	metrics Metrics

	mu     sync.Mutex
	buf    sfnt.Buffer
	shaper *runShaper

	shapes *cache.ShardedCache[shapeKey, []Glyph]
}

type shapeKey struct {
	text string
	dir  Direction
}

var _ Font = (*Face)(nil)

// NewFace creates a face of src at size pixels per em.
func NewFace(src *Source, size int, opts ...FaceOption) (*Face, error) {
	if src == nil {
		return nil, ErrEmptyFontData
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	cfg := defaultFaceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	f := &Face{
		src:    src,
		size:   size,
		ppem:   fixed.I(size),
		shaper: newRunShaper(src.shaping, cfg.language),
		shapes: cache.NewSharded[shapeKey, []Glyph](cfg.shapeCapacity),
	}

	m, err := src.sfnt.Metrics(&f.buf, f.ppem, xfont.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read metrics of %q: %w", src.id, err)
	}
	f.metrics = Metrics{
		Ascender:  fixedToFloat(m.Ascent),
		Descender: -fixedToFloat(m.Descent),
		LineGap:   fixedToFloat(m.Height - m.Ascent - m.Descent),
	}
	return f, nil
}

// Source returns the font the face was created from.
func (f *Face) Source() *Source { return f.src }

// ID returns the font identity.
func (f *Face) ID() string { return f.src.id }

// Size returns the pixel size.
func (f *Face) Size() int { return f.size }

// Metrics returns the vertical metrics in pixels.
func (f *Face) Metrics() Metrics { return f.metrics }

// Measure returns the shaped box of s, see Font.
func (f *Face) Measure(s string) Rect {
	r := Rect{Y: -f.metrics.Ascender, Height: f.metrics.LineHeight()}
	glyphs, err := f.Shape(s, DirectionLTR)
	if err != nil {
		return r
	}
	for _, g := range glyphs {
		r.Width += g.XAdvance
	}
	return r
}

// Shape converts s into glyphs. The returned slice is shared with the
// face's shaping cache and must not be modified.
func (f *Face) Shape(s string, dir Direction) ([]Glyph, error) {
	if s == "" {
		return nil, nil
	}
	if !utf8.ValidString(s) {
		return nil, ErrInvalidText
	}

	key := shapeKey{text: s, dir: dir}
	if glyphs, ok := f.shapes.Get(key); ok {
		return glyphs, nil
	}

	glyphs := f.shaper.shape(s, dir, f.ppem)

	f.shapes.Set(key, glyphs)
	return glyphs, nil
}

// ShapeStats returns the statistics of the shaping cache.
func (f *Face) ShapeStats() cache.Stats {
	return f.shapes.Stats()
}

// GlyphExtents returns the ink box of a glyph in pixels, y down.
func (f *Face) GlyphExtents(id GlyphID) (Extents, bool) {
	f.mu.Lock()
	bounds, _, err := f.src.sfnt.GlyphBounds(&f.buf, sfnt.GlyphIndex(id), f.ppem, xfont.HintingNone)
	f.mu.Unlock()
	if err != nil {
		return Extents{}, false
	}

	return Extents{
		BearingX: fixedToFloat(bounds.Min.X),
		BearingY: fixedToFloat(bounds.Min.Y),
		Width:    fixedToFloat(bounds.Max.X - bounds.Min.X),
		Height:   fixedToFloat(bounds.Max.Y - bounds.Min.Y),
	}, true
}

// GlyphOutline returns the outline of a glyph in pixels, y down, with the
// pen at the origin on the baseline.
func (f *Face) GlyphOutline(id GlyphID) (*Outline, error) {
	f.mu.Lock()
	segments, err := f.src.sfnt.LoadGlyph(&f.buf, sfnt.GlyphIndex(id), f.ppem, nil)
	if err != nil {
		f.mu.Unlock()
		if errors.Is(err, sfnt.ErrColoredGlyph) {
			return nil, fmt.Errorf("%w: glyph %d", ErrNoOutline, id)
		}
		return nil, fmt.Errorf("text: failed to load glyph %d: %w", id, err)
	}

	out := &Outline{
		GID:      id,
		Segments: make([]OutlineSegment, 0, len(segments)),
	}
	for _, seg := range segments {
		var s OutlineSegment
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			s.Op = OutlineOpMoveTo
		case sfnt.SegmentOpLineTo:
			s.Op = OutlineOpLineTo
		case sfnt.SegmentOpQuadTo:
			s.Op = OutlineOpQuadTo
		case sfnt.SegmentOpCubeTo:
			s.Op = OutlineOpCubicTo
		default:
			continue
		}
		for i := 0; i < s.Op.pointCount(); i++ {
			s.Points[i] = OutlinePoint{
				X: float64(seg.Args[i].X) / 64,
				Y: float64(seg.Args[i].Y) / 64,
			}
		}
		out.Segments = append(out.Segments, s)
	}
	// segments aliases f.buf; it is no longer read after the copy above.
	f.mu.Unlock()

	return out, nil
}
