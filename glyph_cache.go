// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textatlas

import (
	"fmt"

	"github.com/gogpu/textatlas/atlas"
	"github.com/gogpu/textatlas/internal/cache"
	"github.com/gogpu/textatlas/text"
	"github.com/gogpu/textatlas/text/sdf"
)

// GlyphKey identifies a rasterized glyph.
type GlyphKey struct {
	Font string
	Size int
	ID   text.GlyphID
}

// Glyph is a glyph placed in the atlas.
type Glyph struct {
	// Rect is the glyph's region of the atlas.
	Rect atlas.Rect

	// BearingX and BearingY place the top-left corner of Rect relative to
	// the pen position on the baseline, y down.
	BearingX, BearingY float32
}

// Width returns the width of the glyph quad in pixels.
func (g Glyph) Width() int { return g.Rect.Width }

// Height returns the height of the glyph quad in pixels.
func (g Glyph) Height() int { return g.Rect.Height }

// GlyphCache rasterizes glyphs into a single-channel atlas and remembers
// where they went.
//
// An entry exists only for glyphs whose pixels are in the atlas, and every
// allocated rectangle belongs to an entry. Glyphs without an outline are
// never cached and are examined again on every lookup.
//
// GlyphCache is not safe for concurrent use; Renderer serializes access.
type GlyphCache struct {
	entries *cache.Cache[GlyphKey, Glyph]
	alloc   *atlas.Allocator
	gen     *sdf.Generator

	width, height int
	pix           []byte
	dirty         bool
	rasterized    int
}

func newGlyphCache(cfg Config) *GlyphCache {
	return &GlyphCache{
		entries: cache.New[GlyphKey, Glyph](),
		alloc:   atlas.New(cfg.AtlasWidth, cfg.AtlasHeight),
		gen:     sdf.NewGenerator(sdf.Config{Size: cfg.WorkingSize, Range: cfg.Range}),
		width:   cfg.AtlasWidth,
		height:  cfg.AtlasHeight,
		pix:     make([]byte, cfg.AtlasWidth*cfg.AtlasHeight),
	}
}

// Lookup returns the atlas entry of glyph id of f, rasterizing it on a
// miss. ok is false for glyphs that have nothing to draw. The error is
// non-nil only when the atlas has no room, and wraps atlas.ErrAtlasFull.
func (c *GlyphCache) Lookup(f text.Font, id text.GlyphID) (g Glyph, ok bool, err error) {
	key := GlyphKey{Font: f.ID(), Size: f.Size(), ID: id}
	if g, ok := c.entries.Get(key); ok {
		return g, true, nil
	}

	if _, ok := f.GlyphExtents(id); !ok {
		return Glyph{}, false, nil
	}

	outline, err := f.GlyphOutline(id)
	if err != nil {
		slogger().Warn("textatlas: glyph skipped, no outline",
			"font", key.Font, "size", key.Size, "glyph", id, "err", err)
		return Glyph{}, false, nil
	}
	shape := sdf.FromOutline(outline)
	if len(shape.Contours) == 0 {
		slogger().Debug("textatlas: glyph skipped, empty outline",
			"font", key.Font, "size", key.Size, "glyph", id)
		return Glyph{}, false, nil
	}
	if err := shape.Validate(); err != nil {
		slogger().Warn("textatlas: glyph skipped, invalid shape",
			"font", key.Font, "size", key.Size, "glyph", id, "err", err)
		return Glyph{}, false, nil
	}
	shape.Normalize()

	place := c.gen.Place(shape)
	if place.Box.Empty() {
		return Glyph{}, false, nil
	}
	field := c.gen.Generate(shape, place.TranslateX, place.TranslateY)
	pixels := field.Crop(place.Box)

	_, r, err := c.alloc.Insert(place.Box.Width(), place.Box.Height())
	if err != nil {
		return Glyph{}, false, fmt.Errorf("textatlas: glyph %d of %s at %dpx: %w", id, key.Font, key.Size, err)
	}
	c.blit(r, pixels)

	g = Glyph{
		Rect:     r,
		BearingX: float32(float64(place.Box.X0) - place.TranslateX),
		BearingY: float32(float64(place.Box.Y0) - place.TranslateY),
	}
	c.entries.Set(key, g)
	c.rasterized++

	slogger().Debug("textatlas: glyph rasterized",
		"font", key.Font, "size", key.Size, "glyph", id, "rect", r)
	return g, true, nil
}

// blit copies a tightly packed r.Width×r.Height bitmap into the atlas.
func (c *GlyphCache) blit(r atlas.Rect, pixels []byte) {
	for y := 0; y < r.Height; y++ {
		dst := (r.Y+y)*c.width + r.X
		copy(c.pix[dst:dst+r.Width], pixels[y*r.Width:(y+1)*r.Width])
	}
	c.dirty = true
}

// reset drops every entry and clears the atlas. The cleared atlas is marked
// dirty so that it is uploaded.
func (c *GlyphCache) reset() {
	c.entries.Clear()
	c.alloc.Reset()
	clear(c.pix)
	c.dirty = true
}

// Pixels returns the atlas bitmap, row-major, one byte per pixel. The slice
// is owned by the cache.
func (c *GlyphCache) Pixels() []byte { return c.pix }

// Size returns the atlas dimensions.
func (c *GlyphCache) Size() (width, height int) { return c.width, c.height }

// Len returns the number of cached glyphs.
func (c *GlyphCache) Len() int { return c.entries.Len() }

// Utilization returns the allocated fraction of the atlas.
func (c *GlyphCache) Utilization() float64 { return c.alloc.Utilization() }
