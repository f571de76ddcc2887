// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

type textureWrite struct {
	origin hal.Origin3D
	layout hal.ImageDataLayout
	size   hal.Extent3D
	data   []byte
}

// recordingQueue records the writes issued to a noop queue.
type recordingQueue struct {
	hal.Queue
	buffers  [][]byte
	textures []textureWrite
}

func (q *recordingQueue) WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) error {
	q.buffers = append(q.buffers, append([]byte(nil), data...))
	return q.Queue.WriteBuffer(buffer, offset, data)
}

func (q *recordingQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	q.textures = append(q.textures, textureWrite{
		origin: dst.Origin,
		layout: *layout,
		size:   *size,
		data:   append([]byte(nil), data...),
	})
	return q.Queue.WriteTexture(dst, data, layout, size)
}

func openNoop(t *testing.T) hal.OpenDevice {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	t.Cleanup(instance.Destroy)

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		t.Fatal("no noop adapter")
	}
	dev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(dev.Device.Destroy)
	return dev
}

func TestHALBackendBufferRoundTrip(t *testing.T) {
	dev := openNoop(t)
	q := &recordingQueue{Queue: dev.Queue}
	b := NewHALBackend(dev.Device, q)
	defer b.Destroy()

	id, err := b.CreateBuffer(6, BufferUsageVertex, MemoryHostVisible)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if err := WriteBuffer(b, id, []byte{1, 2, 3, 4, 5, 6}); err != nil {
		t.Fatalf("WriteBuffer: %v", err)
	}
	if len(q.buffers) != 1 {
		t.Fatalf("queue writes = %d, want 1", len(q.buffers))
	}
	// Writes are padded to whole words.
	if want := []byte{1, 2, 3, 4, 5, 6, 0, 0}; !bytes.Equal(q.buffers[0], want) {
		t.Errorf("written = %v, want %v", q.buffers[0], want)
	}

	local, _ := b.CreateBuffer(16, BufferUsageVertex, MemoryDeviceLocal)
	if _, err := b.Map(local); !errors.Is(err, ErrNotMappable) {
		t.Errorf("Map device-local err = %v", err)
	}

	b.DestroyBuffer(id)
	if err := b.Unmap(id); !errors.Is(err, ErrUnknownBuffer) {
		t.Errorf("Unmap destroyed err = %v", err)
	}
}

func TestHALBackendUpload(t *testing.T) {
	dev := openNoop(t)
	q := &recordingQueue{Queue: dev.Queue}
	b := NewHALBackend(dev.Device, q)
	defer b.Destroy()

	img, err := b.CreateImage(8, 4, FormatR8Unorm)
	if err != nil {
		t.Fatalf("CreateImage: %v", err)
	}
	staging, err := b.CreateBuffer(32, BufferUsageTransferSrc, MemoryHostVisible)
	if err != nil {
		t.Fatal(err)
	}
	src := make([]byte, 32)
	for i := range src {
		src[i] = byte(i)
	}
	if err := WriteBuffer(b, staging, src); err != nil {
		t.Fatal(err)
	}

	if err := b.UploadImageRegion(staging, img, 0, 0, 8, 4); !errors.Is(err, ErrWrongLayout) {
		t.Fatalf("err = %v, want ErrWrongLayout", err)
	}
	if err := b.TransitionImageLayout(img, LayoutUndefined, LayoutTransferDst); err != nil {
		t.Fatal(err)
	}
	if err := b.UploadImageRegion(staging, img, 2, 1, 3, 2); err != nil {
		t.Fatalf("UploadImageRegion: %v", err)
	}
	if err := b.TransitionImageLayout(img, LayoutTransferDst, LayoutShaderRead); err != nil {
		t.Fatal(err)
	}

	if len(q.textures) != 1 {
		t.Fatalf("texture writes = %d, want 1", len(q.textures))
	}
	w := q.textures[0]
	if w.origin != (hal.Origin3D{X: 2, Y: 1}) {
		t.Errorf("origin = %+v", w.origin)
	}
	if w.layout.BytesPerRow != 8 || w.layout.RowsPerImage != 2 {
		t.Errorf("layout = %+v", w.layout)
	}
	if w.size != (hal.Extent3D{Width: 3, Height: 2, DepthOrArrayLayers: 1}) {
		t.Errorf("size = %+v", w.size)
	}
	// The data starts at the first pixel of the region.
	if len(w.data) == 0 || w.data[0] != 10 {
		t.Errorf("data = %v, want it to start with 10", w.data)
	}
}

func TestHALBackendTransitionMismatch(t *testing.T) {
	dev := openNoop(t)
	b := NewHALBackend(dev.Device, dev.Queue)
	defer b.Destroy()

	img, _ := b.CreateImage(4, 4, FormatR8Unorm)
	if err := b.TransitionImageLayout(img, LayoutShaderRead, LayoutTransferDst); !errors.Is(err, ErrLayoutMismatch) {
		t.Errorf("err = %v, want ErrLayoutMismatch", err)
	}
	b.DestroyImage(img)
	if err := b.TransitionImageLayout(img, LayoutUndefined, LayoutTransferDst); !errors.Is(err, ErrUnknownImage) {
		t.Errorf("err = %v, want ErrUnknownImage", err)
	}
}

func TestTextVertexLayout(t *testing.T) {
	layouts := TextVertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("layouts = %d", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != VertexStride || len(l.Attributes) != 2 {
		t.Errorf("layout = %+v", l)
	}
	if l.Attributes[1].Offset != 8 {
		t.Errorf("tex_coord offset = %d, want 8", l.Attributes[1].Offset)
	}
	if TextShaderSource() == "" {
		t.Error("shader source is empty")
	}
}

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct{}

func (mockProvider) Device() gpucontext.Device             { return nil }
func (mockProvider) Queue() gpucontext.Queue               { return nil }
func (mockProvider) Adapter() gpucontext.Adapter           { return nil }
func (mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatUndefined }
func (mockProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "noop", Type: gpucontext.AdapterTypeSoftware}
}

// mockHalProvider additionally exposes HAL types.
type mockHalProvider struct {
	mockProvider
	device any
	queue  any
}

func (m mockHalProvider) HalDevice() any { return m.device }
func (m mockHalProvider) HalQueue() any  { return m.queue }

func TestNewBackendFromProvider(t *testing.T) {
	dev := openNoop(t)

	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
		wantErr  bool
	}{
		{"nil provider", nil, true},
		{"no HAL access", mockProvider{}, true},
		{"wrong device type", mockHalProvider{device: "gpu", queue: dev.Queue}, true},
		{"wrong queue type", mockHalProvider{device: dev.Device, queue: 42}, true},
		{"HAL provider", mockHalProvider{device: dev.Device, queue: dev.Queue}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBackendFromProvider(tt.provider)
			if tt.wantErr {
				if !errors.Is(err, ErrNoHALProvider) {
					t.Errorf("err = %v, want ErrNoHALProvider", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBackendFromProvider: %v", err)
			}
			if b.Device() != dev.Device {
				t.Error("backend does not use the provider's device")
			}
		})
	}
}

// compileOrSkip compiles the text shader, skipping on naga features that
// are not implemented yet.
func compileOrSkip(t *testing.T) []uint32 {
	t.Helper()
	spirv, err := CompileTextShader()
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
			t.Skipf("naga limitation: %v", err)
		}
		t.Fatalf("CompileTextShader: %v", err)
	}
	return spirv
}

func TestCompileTextShader(t *testing.T) {
	spirv := compileOrSkip(t)
	if len(spirv) < 5 {
		t.Fatalf("SPIR-V has %d words", len(spirv))
	}
	if spirv[0] != 0x07230203 {
		t.Errorf("magic = %#x, want 0x07230203", spirv[0])
	}
}

func TestHALBackendTextShader(t *testing.T) {
	compileOrSkip(t)
	dev := openNoop(t)
	b := NewHALBackend(dev.Device, dev.Queue)
	defer b.Destroy()

	first, err := b.TextShader()
	if err != nil {
		t.Fatalf("TextShader: %v", err)
	}
	if first == nil {
		t.Fatal("TextShader returned a nil module")
	}
	if _, err := b.TextShader(); err != nil {
		t.Fatalf("second TextShader: %v", err)
	}
}
