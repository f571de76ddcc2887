// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textatlas

import (
	"context"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/textatlas/gpu"
	"github.com/gogpu/wgpu/hal/noop"
)

func TestRendererOnNoopDevice(t *testing.T) {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	defer instance.Destroy()
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		t.Fatal("no noop adapter")
	}
	dev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer dev.Device.Destroy()

	backend := gpu.NewHALBackend(dev.Device, dev.Queue)
	defer backend.Destroy()

	loader := &fakeLoader{font: newFakeFont(0)}
	r, err := NewRenderer(backend, WithFontLoader(loader.load), WithAtlasSize(256, 256))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	defer r.Close()

	b, err := r.RenderText(context.Background(), Text{Contents: "hi there", Size: 14, Font: "fake.ttf"}, Rect{X: 4, Y: 4})
	if err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	if b.Buffer == gpu.InvalidID || b.VertexCount != 7*gpu.VerticesPerGlyph {
		t.Errorf("block = %+v", b)
	}
	if s := r.Stats(); s.Uploads != 1 || s.Glyphs != 5 {
		t.Errorf("stats = %+v", s)
	}
}
