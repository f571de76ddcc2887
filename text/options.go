// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import "math"

// FaceOption configures Face creation.
type FaceOption func(*faceConfig)

// faceConfig holds configuration for Face.
type faceConfig struct {
	language      string
	shapeCapacity int
}

// defaultFaceConfig returns the default face configuration.
func defaultFaceConfig() faceConfig {
	return faceConfig{
		language:      "en",
		shapeCapacity: 64,
	}
}

// WithLanguage sets the language tag passed to the shaper (e.g., "en", "ar").
func WithLanguage(lang string) FaceOption {
	return func(c *faceConfig) {
		c.language = lang
	}
}

// WithShapeCache sets the number of shaped strings remembered per shard of
// the face's shaping cache. Layout measures the same prefixes repeatedly
// while wrapping, so the cache is always on.
func WithShapeCache(perShard int) FaceOption {
	return func(c *faceConfig) {
		c.shapeCapacity = perShard
	}
}

// LayoutOption configures a Layout.
type LayoutOption func(*Layout)

// Unbounded is the width and height of a layout without constraints.
const Unbounded = float32(math.MaxFloat32)

// WithWidth sets the initial width constraint.
func WithWidth(w float32) LayoutOption {
	return func(l *Layout) {
		l.width = w
	}
}

// WithHeight sets the initial height constraint.
func WithHeight(h float32) LayoutOption {
	return func(l *Layout) {
		l.height = h
	}
}
