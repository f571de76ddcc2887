// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Calls counts the operations issued to a MemoryBackend.
type Calls struct {
	CreateBuffer  int
	DestroyBuffer int
	Map           int
	Unmap         int
	CreateImage   int
	DestroyImage  int
	Transition    int
	Upload        int
}

type memBuffer struct {
	data   []byte
	usage  BufferUsage
	kind   MemoryKind
	mapped bool
}

type memImage struct {
	imageInfo
	pix []byte
}

// MemoryBackend is a Backend that keeps all resources in CPU memory.
//
// MemoryBackend is safe for concurrent use.
type MemoryBackend struct {
	mu      sync.Mutex
	nextID  atomic.Uint64
	buffers map[BufferID]*memBuffer
	images  map[ImageID]*memImage
	calls   Calls
}

var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	b := &MemoryBackend{
		buffers: make(map[BufferID]*memBuffer),
		images:  make(map[ImageID]*memImage),
	}
	// Start ID generation at 1 (0 is invalid)
	b.nextID.Store(1)
	return b
}

func (b *MemoryBackend) newID() uint64 {
	return b.nextID.Add(1) - 1
}

// CreateBuffer implements Backend.
func (b *MemoryBackend) CreateBuffer(size int, usage BufferUsage, kind MemoryKind) (BufferID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls.CreateBuffer++

	if size <= 0 {
		return InvalidID, fmt.Errorf("%w: buffer of %d bytes", ErrInvalidSize, size)
	}
	id := BufferID(b.newID())
	b.buffers[id] = &memBuffer{data: make([]byte, size), usage: usage, kind: kind}
	return id, nil
}

// DestroyBuffer implements Backend.
func (b *MemoryBackend) DestroyBuffer(id BufferID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls.DestroyBuffer++
	delete(b.buffers, id)
}

// Map implements Backend.
func (b *MemoryBackend) Map(id BufferID) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls.Map++

	buf, ok := b.buffers[id]
	switch {
	case !ok:
		return nil, fmt.Errorf("%w: %d", ErrUnknownBuffer, id)
	case buf.kind != MemoryHostVisible:
		return nil, fmt.Errorf("%w: %d", ErrNotMappable, id)
	case buf.mapped:
		return nil, fmt.Errorf("%w: %d", ErrAlreadyMapped, id)
	}
	buf.mapped = true
	return buf.data, nil
}

// Unmap implements Backend.
func (b *MemoryBackend) Unmap(id BufferID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls.Unmap++

	buf, ok := b.buffers[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBuffer, id)
	}
	if !buf.mapped {
		return fmt.Errorf("%w: %d", ErrNotMapped, id)
	}
	buf.mapped = false
	return nil
}

// CreateImage implements Backend.
func (b *MemoryBackend) CreateImage(width, height int, format Format) (ImageID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls.CreateImage++

	if width <= 0 || height <= 0 {
		return InvalidID, fmt.Errorf("%w: image %dx%d", ErrInvalidSize, width, height)
	}
	id := ImageID(b.newID())
	b.images[id] = &memImage{
		imageInfo: imageInfo{width: width, height: height, format: format},
		pix:       make([]byte, width*height*format.BytesPerPixel()),
	}
	return id, nil
}

// DestroyImage implements Backend.
func (b *MemoryBackend) DestroyImage(id ImageID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls.DestroyImage++
	delete(b.images, id)
}

// TransitionImageLayout implements Backend.
func (b *MemoryBackend) TransitionImageLayout(id ImageID, from, to ImageLayout) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls.Transition++

	im, ok := b.images[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownImage, id)
	}
	return im.transition(id, from, to)
}

// UploadImageRegion implements Backend.
func (b *MemoryBackend) UploadImageRegion(buf BufferID, img ImageID, x, y, w, h int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls.Upload++

	src, ok := b.buffers[buf]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBuffer, buf)
	}
	im, ok := b.images[img]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownImage, img)
	}
	off, pitch, err := im.checkUpload(img, len(src.data), x, y, w, h)
	if err != nil {
		return err
	}
	row := w * im.format.BytesPerPixel()
	for r := 0; r < h; r++ {
		o := off + r*pitch
		copy(im.pix[o:o+row], src.data[o:o+row])
	}
	return nil
}

// Calls returns the operation counters.
func (b *MemoryBackend) Calls() Calls {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// Buffer returns a copy of a buffer's contents.
func (b *MemoryBackend) Buffer(id BufferID) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf, ok := b.buffers[id]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), buf.data...), true
}

// Image returns a copy of an image's pixels and its current layout.
func (b *MemoryBackend) Image(id ImageID) ([]byte, ImageLayout, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	im, ok := b.images[id]
	if !ok {
		return nil, LayoutUndefined, false
	}
	return append([]byte(nil), im.pix...), im.layout, true
}

// Live returns the number of live buffers and images.
func (b *MemoryBackend) Live() (buffers, images int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buffers), len(b.images)
}
