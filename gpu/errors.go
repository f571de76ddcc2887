// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "errors"

var (
	// ErrInvalidSize is returned for non-positive buffer or image sizes.
	ErrInvalidSize = errors.New("gpu: invalid size")

	// ErrUnknownBuffer is returned for IDs that name no live buffer.
	ErrUnknownBuffer = errors.New("gpu: unknown buffer")

	// ErrUnknownImage is returned for IDs that name no live image.
	ErrUnknownImage = errors.New("gpu: unknown image")

	// ErrNotMappable is returned when mapping a device-local buffer.
	ErrNotMappable = errors.New("gpu: buffer is not host visible")

	// ErrAlreadyMapped is returned when mapping a buffer twice.
	ErrAlreadyMapped = errors.New("gpu: buffer already mapped")

	// ErrNotMapped is returned when unmapping a buffer that is not mapped.
	ErrNotMapped = errors.New("gpu: buffer not mapped")

	// ErrLayoutMismatch is returned when a transition names a source layout
	// other than the tracked one.
	ErrLayoutMismatch = errors.New("gpu: image layout mismatch")

	// ErrWrongLayout is returned when uploading into an image that is not in
	// LayoutTransferDst.
	ErrWrongLayout = errors.New("gpu: image not in transfer layout")

	// ErrRegionOutOfBounds is returned for upload regions outside the image.
	ErrRegionOutOfBounds = errors.New("gpu: region out of bounds")

	// ErrBufferTooSmall is returned when a staging buffer cannot hold the
	// image data addressed by an upload.
	ErrBufferTooSmall = errors.New("gpu: buffer too small")

	// ErrNoHALProvider is returned when a device provider does not expose its
	// HAL device and queue.
	ErrNoHALProvider = errors.New("gpu: provider does not expose HAL types")
)
