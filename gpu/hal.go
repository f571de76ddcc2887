// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

type halBuffer struct {
	buf    hal.Buffer
	kind   MemoryKind
	size   int
	shadow []byte // CPU copy of host-visible buffers, padded to 4 bytes
	mapped bool
}

type halImage struct {
	imageInfo
	tex hal.Texture
}

// HALBackend is a Backend on top of a gogpu/wgpu HAL device.
//
// Host-visible buffers keep a CPU copy that Map hands out and Unmap writes
// to the device with Queue.WriteBuffer. Image uploads go through
// Queue.WriteTexture straight from that copy. Image layouts are tracked as
// state; the queue write path needs no explicit barriers.
//
// HALBackend is safe for concurrent use.
type HALBackend struct {
	mu     sync.Mutex
	device hal.Device
	queue  hal.Queue

	// ID generation
	nextID atomic.Uint64

	buffers map[BufferID]*halBuffer
	images  map[ImageID]*halImage

	textShader hal.ShaderModule
}

var _ Backend = (*HALBackend)(nil)

// NewHALBackend creates a backend that allocates from device and writes
// through queue. The caller keeps ownership of both.
func NewHALBackend(device hal.Device, queue hal.Queue) *HALBackend {
	b := &HALBackend{
		device:  device,
		queue:   queue,
		buffers: make(map[BufferID]*halBuffer),
		images:  make(map[ImageID]*halImage),
	}
	// Start ID generation at 1 (0 is invalid)
	b.nextID.Store(1)
	return b
}

func (b *HALBackend) newID() uint64 {
	return b.nextID.Add(1) - 1
}

// Device returns the HAL device.
func (b *HALBackend) Device() hal.Device { return b.device }

// CreateBuffer implements Backend.
func (b *HALBackend) CreateBuffer(size int, usage BufferUsage, kind MemoryKind) (BufferID, error) {
	if size <= 0 {
		return InvalidID, fmt.Errorf("%w: buffer of %d bytes", ErrInvalidSize, size)
	}

	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "textatlas-" + usage.String(),
		Size:  alignUp(uint64(size), 4), //nolint:gosec // size checked positive
		Usage: convertBufferUsage(usage),
	})
	if err != nil {
		return InvalidID, fmt.Errorf("gpu: create buffer: %w", err)
	}

	hb := &halBuffer{buf: buf, kind: kind, size: size}
	if kind == MemoryHostVisible {
		hb.shadow = make([]byte, alignUp(uint64(size), 4)) //nolint:gosec // size checked positive
	}

	id := BufferID(b.newID())
	b.mu.Lock()
	b.buffers[id] = hb
	b.mu.Unlock()

	slogger().Debug("gpu: buffer created", "id", id, "size", size, "usage", usage, "memory", kind)
	return id, nil
}

// DestroyBuffer implements Backend.
func (b *HALBackend) DestroyBuffer(id BufferID) {
	b.mu.Lock()
	hb, ok := b.buffers[id]
	if ok {
		delete(b.buffers, id)
	}
	b.mu.Unlock()

	if ok {
		b.device.DestroyBuffer(hb.buf)
	}
}

// Map implements Backend.
func (b *HALBackend) Map(id BufferID) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	hb, ok := b.buffers[id]
	switch {
	case !ok:
		return nil, fmt.Errorf("%w: %d", ErrUnknownBuffer, id)
	case hb.kind != MemoryHostVisible:
		return nil, fmt.Errorf("%w: %d", ErrNotMappable, id)
	case hb.mapped:
		return nil, fmt.Errorf("%w: %d", ErrAlreadyMapped, id)
	}
	hb.mapped = true
	return hb.shadow[:hb.size], nil
}

// Unmap implements Backend.
func (b *HALBackend) Unmap(id BufferID) error {
	b.mu.Lock()
	hb, ok := b.buffers[id]
	if !ok {
		b.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownBuffer, id)
	}
	if !hb.mapped {
		b.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrNotMapped, id)
	}
	hb.mapped = false
	b.mu.Unlock()

	if err := b.queue.WriteBuffer(hb.buf, 0, hb.shadow); err != nil {
		return fmt.Errorf("gpu: write buffer %d: %w", id, err)
	}
	return nil
}

// CreateImage implements Backend.
func (b *HALBackend) CreateImage(width, height int, format Format) (ImageID, error) {
	if width <= 0 || height <= 0 {
		return InvalidID, fmt.Errorf("%w: image %dx%d", ErrInvalidSize, width, height)
	}

	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label: "textatlas-image",
		Size: hal.Extent3D{
			Width:              uint32(width),  //nolint:gosec // checked positive
			Height:             uint32(height), //nolint:gosec // checked positive
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        convertFormat(format),
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return InvalidID, fmt.Errorf("gpu: create texture: %w", err)
	}

	id := ImageID(b.newID())
	b.mu.Lock()
	b.images[id] = &halImage{
		imageInfo: imageInfo{width: width, height: height, format: format},
		tex:       tex,
	}
	b.mu.Unlock()

	slogger().Debug("gpu: image created", "id", id, "width", width, "height", height, "format", format)
	return id, nil
}

// DestroyImage implements Backend.
func (b *HALBackend) DestroyImage(id ImageID) {
	b.mu.Lock()
	im, ok := b.images[id]
	if ok {
		delete(b.images, id)
	}
	b.mu.Unlock()

	if ok {
		b.device.DestroyTexture(im.tex)
	}
}

// TransitionImageLayout implements Backend.
func (b *HALBackend) TransitionImageLayout(id ImageID, from, to ImageLayout) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	im, ok := b.images[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownImage, id)
	}
	return im.transition(id, from, to)
}

// UploadImageRegion implements Backend.
func (b *HALBackend) UploadImageRegion(buf BufferID, img ImageID, x, y, w, h int) error {
	b.mu.Lock()
	hb, ok := b.buffers[buf]
	if !ok {
		b.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownBuffer, buf)
	}
	im, ok := b.images[img]
	if !ok {
		b.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownImage, img)
	}
	if hb.shadow == nil {
		b.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrNotMappable, buf)
	}
	off, pitch, err := im.checkUpload(img, hb.size, x, y, w, h)
	tex := im.tex
	b.mu.Unlock()
	if err != nil {
		return err
	}

	err = b.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: uint32(x), Y: uint32(y)}, //nolint:gosec // bounds checked
			Aspect:   gputypes.TextureAspectAll,
		},
		hb.shadow[off:],
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(pitch), //nolint:gosec // bounded by image width
			RowsPerImage: uint32(h),     //nolint:gosec // bounds checked
		},
		&hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}, //nolint:gosec // bounds checked
	)
	if err != nil {
		return fmt.Errorf("gpu: write texture %d: %w", img, err)
	}
	return nil
}

// TextShader returns the shader module of the text shader, compiling and
// creating it on first use.
func (b *HALBackend) TextShader() (hal.ShaderModule, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.textShader != nil {
		return b.textShader, nil
	}
	spirv, err := CompileTextShader()
	if err != nil {
		return nil, err
	}
	module, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "textatlas-text",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create text shader module: %w", err)
	}
	b.textShader = module
	return module, nil
}

// Destroy releases every resource created through the backend. The device
// and queue stay with the caller.
func (b *HALBackend) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, hb := range b.buffers {
		b.device.DestroyBuffer(hb.buf)
		delete(b.buffers, id)
	}
	for id, im := range b.images {
		b.device.DestroyTexture(im.tex)
		delete(b.images, id)
	}
	if b.textShader != nil {
		b.device.DestroyShaderModule(b.textShader)
		b.textShader = nil
	}
}

func convertBufferUsage(u BufferUsage) gputypes.BufferUsage {
	// Every buffer is filled with Queue.WriteBuffer.
	out := gputypes.BufferUsageCopyDst
	if u&BufferUsageVertex != 0 {
		out |= gputypes.BufferUsageVertex
	}
	if u&BufferUsageTransferSrc != 0 {
		out |= gputypes.BufferUsageCopySrc
	}
	return out
}

func convertFormat(f Format) gputypes.TextureFormat {
	switch f {
	case FormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm
	default:
		return gputypes.TextureFormatR8Unorm
	}
}

func alignUp(n, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}
