// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textatlas

import (
	"context"
	"fmt"
	"sync"

	"github.com/gogpu/textatlas/gpu"
	"github.com/gogpu/textatlas/internal/cache"
	"github.com/gogpu/textatlas/text"
)

type fontKey struct {
	path string
	size int
}

// Renderer renders text blocks from a shared glyph atlas.
//
// Renderer is safe for concurrent use. RenderText calls are serialized: a
// call holds the renderer for its whole duration, so atlas allocation,
// glyph cache insertion and the atlas upload are never interleaved.
type Renderer struct {
	mu sync.Mutex

	cfg     Config
	backend gpu.Backend
	fonts   *cache.Cache[fontKey, text.Font]
	glyphs  *GlyphCache
	blocks  *BlockCache

	staging gpu.BufferID
	image   gpu.ImageID
	layout  gpu.ImageLayout
	uploads int
	closed  bool
}

// NewRenderer creates a renderer that allocates its atlas image, staging
// buffer and vertex buffers from backend. A nil backend selects a
// gpu.MemoryBackend.
func NewRenderer(backend gpu.Backend, opts ...Option) (*Renderer, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.FontLoader == nil {
		cfg.FontLoader = FileFontLoader()
	}
	if backend == nil {
		backend = gpu.NewMemoryBackend()
	}

	r := &Renderer{
		cfg:     cfg,
		backend: backend,
		fonts:   cache.New[fontKey, text.Font](),
		glyphs:  newGlyphCache(cfg),
		blocks:  newBlockCache(),
	}

	var err error
	r.image, err = backend.CreateImage(cfg.AtlasWidth, cfg.AtlasHeight, gpu.FormatR8Unorm)
	if err != nil {
		return nil, fmt.Errorf("textatlas: create atlas image: %w", err)
	}
	r.staging, err = backend.CreateBuffer(cfg.AtlasWidth*cfg.AtlasHeight, gpu.BufferUsageTransferSrc, gpu.MemoryHostVisible)
	if err != nil {
		backend.DestroyImage(r.image)
		return nil, fmt.Errorf("textatlas: create staging buffer: %w", err)
	}
	// Leave the empty atlas ready for sampling.
	for _, to := range []gpu.ImageLayout{gpu.LayoutTransferDst, gpu.LayoutShaderRead} {
		if err := r.transition(r.layout, to); err != nil {
			r.release()
			return nil, err
		}
	}

	slogger().Debug("textatlas: renderer created",
		"atlas", fmt.Sprintf("%dx%d", cfg.AtlasWidth, cfg.AtlasHeight),
		"working_size", cfg.WorkingSize, "range", cfg.Range)
	return r, nil
}

// Config returns the renderer configuration.
func (r *Renderer) Config() Config { return r.cfg }

// AtlasImage returns the atlas image to bind when drawing blocks.
func (r *Renderer) AtlasImage() gpu.ImageID { return r.image }

// Atlas returns a copy of the atlas pixels, one byte per pixel, and its
// size.
func (r *Renderer) Atlas() (pix []byte, width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, h := r.glyphs.Size()
	return append([]byte(nil), r.glyphs.Pixels()...), w, h
}

// RenderText returns the block of t laid out in bounds, building it on the
// first request for the same font, size, contents and anchor.
//
// ctx is checked once before any work starts; a started call runs to
// completion. Backend failures and atlas exhaustion end the call and leave
// no block cached; glyphs already placed in the atlas stay cached.
func (r *Renderer) RenderText(ctx context.Context, t Text, bounds Rect) (Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return Block{}, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return Block{}, err
	}
	if t.Size <= 0 || t.Font == "" {
		return Block{}, fmt.Errorf("%w: font %q at %dpx", ErrInvalidText, t.Font, t.Size)
	}

	key := BlockKey{Font: t.Font, Size: t.Size, Text: t.Contents, X: bounds.X, Y: bounds.Y}
	if b, ok := r.blocks.Get(key); ok {
		return b, nil
	}

	f, err := r.font(t.Font, t.Size)
	if err != nil {
		return Block{}, err
	}

	width := bounds.Width
	if width <= 0 {
		width = text.Unbounded
	}
	height := bounds.Height
	if height <= 0 {
		height = text.Unbounded
	}
	layout := text.NewLayout(f, text.WithWidth(width), text.WithHeight(height))
	layout.SetText(t.Contents)

	vertices, size, err := r.assemble(f, layout, bounds.X, bounds.Y)
	if err != nil {
		return Block{}, err
	}

	if r.glyphs.dirty {
		if err := r.upload(); err != nil {
			return Block{}, err
		}
	}

	b := Block{VertexCount: len(vertices) / gpu.VertexStride, Size: size}
	if len(vertices) > 0 {
		b.Buffer, err = r.backend.CreateBuffer(len(vertices), gpu.BufferUsageVertex, gpu.MemoryHostVisible)
		if err != nil {
			return Block{}, fmt.Errorf("textatlas: create vertex buffer: %w", err)
		}
		if err := gpu.WriteBuffer(r.backend, b.Buffer, vertices); err != nil {
			r.backend.DestroyBuffer(b.Buffer)
			return Block{}, fmt.Errorf("textatlas: write vertex buffer: %w", err)
		}
	}
	r.blocks.Put(key, b)
	return b, nil
}

// assemble emits the quads of every glyph of layout with the first line's
// top at (x, y).
func (r *Renderer) assemble(f text.Font, layout *text.Layout, x, y float32) ([]byte, Size, error) {
	m := f.Metrics()
	lineHeight := m.LineHeight()
	aw, ah := r.glyphs.Size()

	var (
		vb   vertexBuilder
		size Size
	)
	lines := layout.Lines()
	for li := range lines {
		line := &lines[li]
		baseline := y + float32(li)*lineHeight + m.Ascender
		pen := float32(0)
		for _, ri := range line.VisualOrder() {
			for _, g := range line.Runs[ri].Glyphs {
				entry, ok, err := r.glyphs.Lookup(f, g.ID)
				if err != nil {
					return nil, Size{}, err
				}
				if ok {
					x0 := x + pen + g.XOffset + entry.BearingX
					y0 := baseline - g.YOffset + entry.BearingY
					vb.quad(x0, y0, entry, aw, ah)
				}
				pen += g.XAdvance
			}
		}
		size.Width = max(size.Width, pen)
	}
	size.Height = float32(len(lines)) * lineHeight
	return vb.bytes(), size, nil
}

// ResetAtlas empties the atlas and both caches and uploads the cleared
// atlas. It is the recovery path after RenderText fails with
// atlas.ErrAtlasFull. Every block returned earlier is released and must not
// be drawn afterwards.
func (r *Renderer) ResetAtlas() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	r.blocks.Release(r.backend)
	r.glyphs.reset()

	slogger().Debug("textatlas: atlas reset")
	return r.upload()
}

// upload pushes the whole atlas to the image.
func (r *Renderer) upload() error {
	staging, err := r.backend.Map(r.staging)
	if err != nil {
		return fmt.Errorf("textatlas: map staging buffer: %w", err)
	}
	copy(staging, r.glyphs.Pixels())
	if err := r.backend.Unmap(r.staging); err != nil {
		return fmt.Errorf("textatlas: unmap staging buffer: %w", err)
	}

	if err := r.transition(r.layout, gpu.LayoutTransferDst); err != nil {
		return err
	}
	w, h := r.glyphs.Size()
	if err := r.backend.UploadImageRegion(r.staging, r.image, 0, 0, w, h); err != nil {
		return fmt.Errorf("textatlas: upload atlas: %w", err)
	}
	if err := r.transition(gpu.LayoutTransferDst, gpu.LayoutShaderRead); err != nil {
		return err
	}
	r.uploads++
	r.glyphs.dirty = false

	slogger().Debug("textatlas: atlas uploaded",
		"glyphs", r.glyphs.Len(), "utilization", r.glyphs.Utilization())
	return nil
}

// transition moves the atlas image between layouts.
func (r *Renderer) transition(from, to gpu.ImageLayout) error {
	if err := r.backend.TransitionImageLayout(r.image, from, to); err != nil {
		return fmt.Errorf("textatlas: atlas layout %s -> %s: %w", from, to, err)
	}
	r.layout = to
	return nil
}

// font returns the memoized font for a path and size.
func (r *Renderer) font(path string, size int) (text.Font, error) {
	f, err := r.fonts.GetOrCreate(fontKey{path: path, size: size}, func() (text.Font, error) {
		return r.cfg.FontLoader(path, size)
	})
	if err != nil {
		return nil, fmt.Errorf("textatlas: load font %q at %dpx: %w", path, size, err)
	}
	return f, nil
}

// Stats describes the state of a Renderer.
type Stats struct {
	// Glyphs and Blocks are the number of cached entries.
	Glyphs int
	Blocks int

	// BlockHits and BlockMisses count RenderText lookups.
	BlockHits   uint64
	BlockMisses uint64

	// GlyphHits and GlyphMisses count glyph lookups of assembled blocks.
	GlyphHits   uint64
	GlyphMisses uint64

	// Rasterized is the number of glyphs drawn into the atlas.
	Rasterized int

	// AtlasUtilization is the allocated fraction of the atlas.
	AtlasUtilization float64

	// Uploads is the number of atlas uploads.
	Uploads int
}

// Stats returns renderer statistics.
func (r *Renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	gs := r.glyphs.entries.Stats()
	bs := r.blocks.entries.Stats()
	return Stats{
		Glyphs:           gs.Len,
		Blocks:           bs.Len,
		BlockHits:        bs.Hits,
		BlockMisses:      bs.Misses,
		GlyphHits:        gs.Hits,
		GlyphMisses:      gs.Misses,
		Rasterized:       r.glyphs.rasterized,
		AtlasUtilization: r.glyphs.Utilization(),
		Uploads:          r.uploads,
	}
}

// Close releases every block buffer, the staging buffer and the atlas
// image. Blocks returned earlier must not be drawn afterwards.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.release()
	return nil
}

func (r *Renderer) release() {
	r.blocks.Release(r.backend)
	r.backend.DestroyBuffer(r.staging)
	r.backend.DestroyImage(r.image)
}
