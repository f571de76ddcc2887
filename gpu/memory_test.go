// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"bytes"
	"errors"
	"testing"
)

func TestMemoryBackendBuffers(t *testing.T) {
	b := NewMemoryBackend()

	id, err := b.CreateBuffer(8, BufferUsageVertex, MemoryHostVisible)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if id == InvalidID {
		t.Fatal("CreateBuffer returned InvalidID")
	}
	if err := WriteBuffer(b, id, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("WriteBuffer: %v", err)
	}
	got, ok := b.Buffer(id)
	if !ok || !bytes.Equal(got, []byte{1, 2, 3, 4, 0, 0, 0, 0}) {
		t.Errorf("Buffer = %v, %v", got, ok)
	}

	c := b.Calls()
	if c.CreateBuffer != 1 || c.Map != 1 || c.Unmap != 1 {
		t.Errorf("calls = %+v", c)
	}

	b.DestroyBuffer(id)
	if _, err := b.Map(id); !errors.Is(err, ErrUnknownBuffer) {
		t.Errorf("Map after destroy err = %v, want ErrUnknownBuffer", err)
	}
	b.DestroyBuffer(id) // unknown IDs are ignored
}

func TestMemoryBackendMapErrors(t *testing.T) {
	b := NewMemoryBackend()

	local, _ := b.CreateBuffer(4, BufferUsageVertex, MemoryDeviceLocal)
	if _, err := b.Map(local); !errors.Is(err, ErrNotMappable) {
		t.Errorf("Map device-local err = %v", err)
	}

	host, _ := b.CreateBuffer(4, BufferUsageVertex, MemoryHostVisible)
	if err := b.Unmap(host); !errors.Is(err, ErrNotMapped) {
		t.Errorf("Unmap unmapped err = %v", err)
	}
	if _, err := b.Map(host); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Map(host); !errors.Is(err, ErrAlreadyMapped) {
		t.Errorf("second Map err = %v", err)
	}
	if err := b.Unmap(host); err != nil {
		t.Errorf("Unmap: %v", err)
	}

	if err := WriteBuffer(b, host, make([]byte, 5)); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("WriteBuffer overflow err = %v", err)
	}
	// The failed write must not leave the buffer mapped.
	if _, err := b.Map(host); err != nil {
		t.Errorf("Map after failed write: %v", err)
	}

	if _, err := b.CreateBuffer(0, BufferUsageVertex, MemoryHostVisible); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("CreateBuffer(0) err = %v", err)
	}
}

func TestMemoryBackendTransitions(t *testing.T) {
	b := NewMemoryBackend()
	img, err := b.CreateImage(4, 4, FormatR8Unorm)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		from, to ImageLayout
		wantErr  error
	}{
		{"undefined to transfer", LayoutUndefined, LayoutTransferDst, nil},
		{"stale source layout", LayoutUndefined, LayoutShaderRead, ErrLayoutMismatch},
		{"transfer to shader read", LayoutTransferDst, LayoutShaderRead, nil},
		{"shader read to transfer", LayoutShaderRead, LayoutTransferDst, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.TransitionImageLayout(img, tt.from, tt.to)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if err := b.TransitionImageLayout(999, LayoutUndefined, LayoutTransferDst); !errors.Is(err, ErrUnknownImage) {
		t.Errorf("unknown image err = %v", err)
	}
}

func TestMemoryBackendUploadRegion(t *testing.T) {
	b := NewMemoryBackend()
	img, _ := b.CreateImage(4, 3, FormatR8Unorm)
	staging, _ := b.CreateBuffer(12, BufferUsageTransferSrc, MemoryHostVisible)

	src := make([]byte, 12)
	for i := range src {
		src[i] = byte(i + 1)
	}
	if err := WriteBuffer(b, staging, src); err != nil {
		t.Fatal(err)
	}

	if err := b.UploadImageRegion(staging, img, 0, 0, 1, 1); !errors.Is(err, ErrWrongLayout) {
		t.Fatalf("upload before transition err = %v, want ErrWrongLayout", err)
	}
	if err := b.TransitionImageLayout(img, LayoutUndefined, LayoutTransferDst); err != nil {
		t.Fatal(err)
	}
	if err := b.UploadImageRegion(staging, img, 1, 1, 2, 2); err != nil {
		t.Fatalf("UploadImageRegion: %v", err)
	}

	pix, layout, _ := b.Image(img)
	want := []byte{
		0, 0, 0, 0,
		0, 6, 7, 0,
		0, 10, 11, 0,
	}
	if !bytes.Equal(pix, want) {
		t.Errorf("pixels = %v, want %v", pix, want)
	}
	if layout != LayoutTransferDst {
		t.Errorf("layout = %v", layout)
	}

	bad := []struct {
		name       string
		x, y, w, h int
	}{
		{"past right edge", 3, 0, 2, 1},
		{"past bottom edge", 0, 2, 1, 2},
		{"negative origin", -1, 0, 1, 1},
		{"empty", 0, 0, 0, 1},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			err := b.UploadImageRegion(staging, img, tt.x, tt.y, tt.w, tt.h)
			if !errors.Is(err, ErrRegionOutOfBounds) {
				t.Errorf("err = %v, want ErrRegionOutOfBounds", err)
			}
		})
	}

	small, _ := b.CreateBuffer(4, BufferUsageTransferSrc, MemoryHostVisible)
	if err := b.UploadImageRegion(small, img, 0, 0, 1, 1); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("small staging err = %v", err)
	}
}

func TestMemoryBackendLive(t *testing.T) {
	b := NewMemoryBackend()
	buf, _ := b.CreateBuffer(4, BufferUsageVertex, MemoryHostVisible)
	img, _ := b.CreateImage(2, 2, FormatRGBA8Unorm)

	if nb, ni := b.Live(); nb != 1 || ni != 1 {
		t.Fatalf("Live = %d, %d", nb, ni)
	}
	if pix, _, _ := b.Image(img); len(pix) != 16 {
		t.Errorf("RGBA image has %d bytes, want 16", len(pix))
	}
	b.DestroyBuffer(buf)
	b.DestroyImage(img)
	if nb, ni := b.Live(); nb != 0 || ni != 0 {
		t.Errorf("Live after destroy = %d, %d", nb, ni)
	}
}
