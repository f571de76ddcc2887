// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "fmt"

// BufferID identifies a buffer created by a Backend.
type BufferID uint64

// ImageID identifies an image created by a Backend.
type ImageID uint64

// InvalidID is the zero value, never returned for a live resource.
const InvalidID = 0

// BufferUsage specifies how a buffer is used.
type BufferUsage uint32

const (
	// BufferUsageVertex marks a buffer holding vertex data.
	BufferUsageVertex BufferUsage = 1 << 0

	// BufferUsageTransferSrc marks a buffer used as a copy source for image
	// uploads.
	BufferUsageTransferSrc BufferUsage = 1 << 1
)

func (u BufferUsage) String() string {
	switch u {
	case BufferUsageVertex:
		return "Vertex"
	case BufferUsageTransferSrc:
		return "TransferSrc"
	case BufferUsageVertex | BufferUsageTransferSrc:
		return "Vertex|TransferSrc"
	default:
		return fmt.Sprintf("BufferUsage(%d)", uint32(u))
	}
}

// MemoryKind selects where buffer memory lives.
type MemoryKind uint8

const (
	// MemoryHostVisible buffers can be mapped and written by the CPU.
	MemoryHostVisible MemoryKind = iota

	// MemoryDeviceLocal buffers cannot be mapped.
	MemoryDeviceLocal
)

func (k MemoryKind) String() string {
	switch k {
	case MemoryHostVisible:
		return "HostVisible"
	case MemoryDeviceLocal:
		return "DeviceLocal"
	default:
		return fmt.Sprintf("MemoryKind(%d)", uint8(k))
	}
}

// Format is an image pixel format.
type Format uint8

const (
	// FormatR8Unorm is one normalized byte per pixel.
	FormatR8Unorm Format = iota

	// FormatRGBA8Unorm is four normalized bytes per pixel.
	FormatRGBA8Unorm
)

// BytesPerPixel returns the pixel size of f.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGBA8Unorm:
		return 4
	default:
		return 1
	}
}

func (f Format) String() string {
	switch f {
	case FormatR8Unorm:
		return "R8Unorm"
	case FormatRGBA8Unorm:
		return "RGBA8Unorm"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ImageLayout is the usage state of an image.
type ImageLayout uint8

const (
	// LayoutUndefined is the state of a newly created image.
	LayoutUndefined ImageLayout = iota

	// LayoutTransferDst allows uploads into the image.
	LayoutTransferDst

	// LayoutShaderRead allows sampling the image.
	LayoutShaderRead
)

func (l ImageLayout) String() string {
	switch l {
	case LayoutUndefined:
		return "Undefined"
	case LayoutTransferDst:
		return "TransferDst"
	case LayoutShaderRead:
		return "ShaderRead"
	default:
		return fmt.Sprintf("ImageLayout(%d)", uint8(l))
	}
}
