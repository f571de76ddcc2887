// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textatlas

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/textatlas/gpu"
)

// vertexBuilder accumulates text vertices in the gpu.TextVertexLayout
// format: x, y, u, v as little-endian float32.
type vertexBuilder struct {
	buf []byte
}

// quad appends the two triangles of a glyph whose top-left corner is at
// (x, y). aw and ah are the atlas size used to normalize the texture
// coordinates.
func (b *vertexBuilder) quad(x, y float32, g Glyph, aw, ah int) {
	x1 := x + float32(g.Width())
	y1 := y + float32(g.Height())
	u0 := float32(g.Rect.X) / float32(aw)
	v0 := float32(g.Rect.Y) / float32(ah)
	u1 := float32(g.Rect.Right()) / float32(aw)
	v1 := float32(g.Rect.Bottom()) / float32(ah)

	// TL, TR, BL, BL, TR, BR
	b.vertex(x, y, u0, v0)
	b.vertex(x1, y, u1, v0)
	b.vertex(x, y1, u0, v1)
	b.vertex(x, y1, u0, v1)
	b.vertex(x1, y, u1, v0)
	b.vertex(x1, y1, u1, v1)
}

func (b *vertexBuilder) vertex(x, y, u, v float32) {
	var tmp [gpu.VertexStride]byte
	binary.LittleEndian.PutUint32(tmp[0:], math.Float32bits(x))
	binary.LittleEndian.PutUint32(tmp[4:], math.Float32bits(y))
	binary.LittleEndian.PutUint32(tmp[8:], math.Float32bits(u))
	binary.LittleEndian.PutUint32(tmp[12:], math.Float32bits(v))
	b.buf = append(b.buf, tmp[:]...)
}

func (b *vertexBuilder) bytes() []byte { return b.buf }

// Vertex is one decoded text vertex.
type Vertex struct {
	X, Y float32
	U, V float32
}

// DecodeVertices decodes vertex data in the gpu.TextVertexLayout format.
// Trailing bytes that do not form a whole vertex are ignored.
func DecodeVertices(data []byte) []Vertex {
	out := make([]Vertex, 0, len(data)/gpu.VertexStride)
	for off := 0; off+gpu.VertexStride <= len(data); off += gpu.VertexStride {
		out = append(out, Vertex{
			X: math.Float32frombits(binary.LittleEndian.Uint32(data[off:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:])),
			U: math.Float32frombits(binary.LittleEndian.Uint32(data[off+8:])),
			V: math.Float32frombits(binary.LittleEndian.Uint32(data[off+12:])),
		})
	}
	return out
}
