// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "fmt"

// Backend creates and updates the GPU resources of the text renderer.
//
// Implementations must be safe for concurrent use.
type Backend interface {
	// CreateBuffer creates a buffer of size bytes.
	CreateBuffer(size int, usage BufferUsage, kind MemoryKind) (BufferID, error)

	// DestroyBuffer releases a buffer. Unknown IDs are ignored.
	DestroyBuffer(id BufferID)

	// Map returns the CPU view of a host-visible buffer. The slice is valid
	// until Unmap.
	Map(id BufferID) ([]byte, error)

	// Unmap ends a Map and makes the written bytes visible to the GPU.
	Unmap(id BufferID) error

	// CreateImage creates a 2D image in LayoutUndefined.
	CreateImage(width, height int, format Format) (ImageID, error)

	// DestroyImage releases an image. Unknown IDs are ignored.
	DestroyImage(id ImageID)

	// TransitionImageLayout moves an image from layout from to layout to.
	// It fails with ErrLayoutMismatch when from is not the current layout.
	TransitionImageLayout(id ImageID, from, to ImageLayout) error

	// UploadImageRegion copies the w×h region at (x, y) from buf into the
	// same region of img. buf holds the whole image, tightly packed. The
	// image must be in LayoutTransferDst.
	UploadImageRegion(buf BufferID, img ImageID, x, y, w, h int) error
}

// WriteBuffer maps a buffer, copies data to its start and unmaps it.
func WriteBuffer(b Backend, id BufferID, data []byte) error {
	dst, err := b.Map(id)
	if err != nil {
		return err
	}
	if len(dst) < len(data) {
		_ = b.Unmap(id)
		return fmt.Errorf("%w: %d bytes into %d", ErrBufferTooSmall, len(data), len(dst))
	}
	copy(dst, data)
	return b.Unmap(id)
}

// imageInfo is the state both backends keep per image.
type imageInfo struct {
	width  int
	height int
	format Format
	layout ImageLayout
}

// transition validates and applies a layout change.
func (im *imageInfo) transition(id ImageID, from, to ImageLayout) error {
	if im.layout != from {
		return fmt.Errorf("%w: image %d is %s, not %s", ErrLayoutMismatch, id, im.layout, from)
	}
	im.layout = to
	return nil
}

// checkUpload validates an upload of the w×h region at (x, y) from a staging
// buffer of bufLen bytes and returns the byte offset of the region and the
// row pitch of the buffer.
func (im *imageInfo) checkUpload(id ImageID, bufLen, x, y, w, h int) (offset, pitch int, err error) {
	if im.layout != LayoutTransferDst {
		return 0, 0, fmt.Errorf("%w: image %d is %s", ErrWrongLayout, id, im.layout)
	}
	if w <= 0 || h <= 0 || x < 0 || y < 0 || x+w > im.width || y+h > im.height {
		return 0, 0, fmt.Errorf("%w: %dx%d at (%d,%d) in %dx%d",
			ErrRegionOutOfBounds, w, h, x, y, im.width, im.height)
	}
	bpp := im.format.BytesPerPixel()
	pitch = im.width * bpp
	if bufLen < im.height*pitch {
		return 0, 0, fmt.Errorf("%w: %d bytes for a %dx%d %s image",
			ErrBufferTooSmall, bufLen, im.width, im.height, im.format)
	}
	return y*pitch + x*bpp, pitch, nil
}
