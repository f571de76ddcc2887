// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
)

//go:embed shaders/text.wgsl
var textShaderSource string

// VertexStride is the byte size of one text vertex: destination x, y and
// atlas u, v as float32.
const VertexStride = 16

// VerticesPerGlyph is the number of vertices of one glyph quad drawn as two
// triangles.
const VerticesPerGlyph = 6

// TextShaderSource returns the WGSL source of the text shader.
func TextShaderSource() string { return textShaderSource }

// TextVertexLayout returns the vertex buffer layout matching VertexInput in
// the text shader:
//
//	location 0: position (vec2<f32>)
//	location 1: tex_coord (vec2<f32>)
func TextVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			},
		},
	}
}

// CompileTextShader compiles the text shader to SPIR-V words.
func CompileTextShader() ([]uint32, error) {
	spirv, err := naga.Compile(textShaderSource)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile text shader: %w", err)
	}
	if len(spirv) == 0 || len(spirv)%4 != 0 {
		return nil, fmt.Errorf("gpu: compile text shader: %d bytes is not SPIR-V", len(spirv))
	}
	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	return words, nil
}
