// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sdf

import (
	"math"
	"sync"
)

// numWorkers is the number of goroutines that fill rows of a field.
const numWorkers = 4

// Bitmap is a single-channel distance field. Values are 0.5 on the
// outline, above 0.5 inside and below 0.5 outside; they are not clamped.
type Bitmap struct {
	Width, Height int
	Pix           []float32
}

// At returns the value at pixel (x, y).
func (b *Bitmap) At(x, y int) float32 {
	return b.Pix[y*b.Width+x]
}

// Crop returns the quantized pixels of box, row-major, clamped to the
// bitmap.
func (b *Bitmap) Crop(box Box) []byte {
	box = box.clamp(b.Width, b.Height)
	if box.Empty() {
		return nil
	}
	out := make([]byte, 0, box.Width()*box.Height())
	for y := box.Y0; y < box.Y1; y++ {
		row := b.Pix[y*b.Width+box.X0 : y*b.Width+box.X1]
		for _, v := range row {
			out = append(out, Quantize(v))
		}
	}
	return out
}

func (b Box) clamp(w, h int) Box {
	return Box{
		X0: max(b.X0, 0),
		Y0: max(b.Y0, 0),
		X1: min(b.X1, w),
		Y1: min(b.Y1, h),
	}
}

// Quantize converts a field value to 8 bits: clamp(int(v*256), 0, 255).
func Quantize(v float32) byte {
	if !(v > 0) { // also NaN
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(min(int(v*256), 255))
}

// Placement positions a shape inside the working field.
type Placement struct {
	// TranslateX and TranslateY move outline coordinates to field pixels.
	TranslateX, TranslateY float64

	// Box is the tight pixel box of the shape plus the padding margin.
	Box Box
}

// Generator creates distance fields from shapes.
type Generator struct {
	config Config
}

// NewGenerator creates a new generator with the given configuration.
// Call Config.Validate first; an invalid configuration is replaced by the
// defaults.
func NewGenerator(config Config) *Generator {
	if config.Validate() != nil {
		config = DefaultConfig()
	}
	return &Generator{config: config}
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Padding returns the margin in pixels kept around a shape.
func (g *Generator) Padding() int {
	return max(int(math.Ceil(g.config.Range)), 2) / 2
}

// Place computes where the shape goes in the field: its bounds are moved
// to the padding margin, snapped to whole pixels, and the box is the
// padded bounds clamped to the field.
func (g *Generator) Place(shape *Shape) Placement {
	pad := float64(g.Padding())
	b := shape.Bounds

	tx := pad - math.Floor(b.MinX)
	ty := pad - math.Floor(b.MinY)

	box := Box{
		X0: int(math.Floor(b.MinX + tx - pad)),
		Y0: int(math.Floor(b.MinY + ty - pad)),
		X1: int(math.Ceil(b.MaxX + tx + pad)),
		Y1: int(math.Ceil(b.MaxY + ty + pad)),
	}
	return Placement{
		TranslateX: tx,
		TranslateY: ty,
		Box:        box.clamp(g.config.Size, g.config.Size),
	}
}

// Generate computes the field of shape moved by (tx, ty). Rows are split
// among a fixed number of worker goroutines.
func (g *Generator) Generate(shape *Shape, tx, ty float64) *Bitmap {
	size := g.config.Size
	bm := &Bitmap{
		Width:  size,
		Height: size,
		Pix:    make([]float32, size*size),
	}

	var wg sync.WaitGroup
	rowsPerWorker := (size + numWorkers - 1) / numWorkers
	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := min(startRow+rowsPerWorker, size)
		if startRow >= endRow {
			continue
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			g.processRows(bm, shape, start, end, tx, ty)
		}(startRow, endRow)
	}
	wg.Wait()

	return bm
}

// processRows fills rows [startRow, endRow) of bm.
func (g *Generator) processRows(bm *Bitmap, shape *Shape, startRow, endRow int, tx, ty float64) {
	invRange := 1 / g.config.Range
	for y := startRow; y < endRow; y++ {
		for x := 0; x < bm.Width; x++ {
			// Pixel centers, moved back to outline space.
			p := Point{X: float64(x) + 0.5 - tx, Y: float64(y) + 0.5 - ty}

			d := shape.distance(p)
			if !shape.inside(p) {
				d = -d
			}
			bm.Pix[y*bm.Width+x] = float32(0.5 + d*invRange)
		}
	}
}
