// Package textatlas lays out Unicode text and renders it from a shared
// distance-field glyph atlas.
//
// # Overview
//
// A Renderer turns a Text and a bounding rectangle into a Block: a vertex
// buffer of textured quads, six vertices per glyph, that sample a single
// channel atlas image. Work is reused at two levels:
//
//   - the glyph cache rasterizes every (font, size, glyph) once into the
//     atlas and remembers its atlas rectangle and bearings;
//   - the block cache remembers every assembled Block by font, size, text
//     and anchor position, so repeated requests do no layout at all.
//
// # Quick Start
//
//	r, err := textatlas.NewRenderer(gpu.NewMemoryBackend())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//
//	block, err := r.RenderText(ctx, textatlas.Text{
//		Contents: "Hello, world",
//		Size:     24,
//		Font:     "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
//	}, textatlas.Rect{X: 10, Y: 10, Width: 300})
//
// # Architecture
//
// The package is organized into:
//   - text: segmentation (bidi runs, line-break opportunities), incremental
//     line layout and shaping on top of go-text/typesetting
//   - text/sdf: single-channel distance-field rasterization of outlines
//   - atlas: binary-tree rectangle packing
//   - gpu: the buffer and image contract with in-memory and wgpu/hal
//     implementations
//
// # Coordinate System
//
// Destination coordinates are pixels with the origin at the top-left, y
// growing downward. Atlas coordinates in vertices are normalized to [0, 1].
//
// # Caching
//
// Nothing is evicted. When the atlas has no room for a new glyph,
// RenderText fails with an error wrapping atlas.ErrAtlasFull.
package textatlas
