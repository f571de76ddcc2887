// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textatlas

import (
	"fmt"
	"math"

	"github.com/gogpu/textatlas/internal/cache"
	"github.com/gogpu/textatlas/text"
)

// FontLoader opens the font at path for a pixel size.
type FontLoader func(path string, size int) (text.Font, error)

// Config holds renderer parameters.
type Config struct {
	// AtlasWidth and AtlasHeight are the atlas size in pixels.
	// Default: 1024×1024
	AtlasWidth  int
	AtlasHeight int

	// WorkingSize is the size of the square canvas glyph distance fields
	// are generated on. Larger glyphs are clipped.
	// Default: 64
	WorkingSize int

	// Range is the distance in pixels covered by the distance field.
	// Default: 4
	Range float64

	// FontLoader opens fonts. Default: font files parsed with
	// text.LoadSource and shaped with text.NewFace.
	FontLoader FontLoader
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		AtlasWidth:  1024,
		AtlasHeight: 1024,
		WorkingSize: 64,
		Range:       4,
	}
}

// maxAtlasSize bounds the atlas to the 2D texture limit of common devices.
const maxAtlasSize = 16384

// Validate checks if the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.AtlasWidth <= 0 || c.AtlasWidth > maxAtlasSize {
		return &ConfigError{Field: "AtlasWidth", Reason: fmt.Sprintf("must be in [1, %d]", maxAtlasSize)}
	}
	if c.AtlasHeight <= 0 || c.AtlasHeight > maxAtlasSize {
		return &ConfigError{Field: "AtlasHeight", Reason: fmt.Sprintf("must be in [1, %d]", maxAtlasSize)}
	}
	if c.WorkingSize < 8 || c.WorkingSize > 4096 {
		return &ConfigError{Field: "WorkingSize", Reason: "must be in [8, 4096]"}
	}
	if !(c.Range > 0) || math.IsInf(c.Range, 0) {
		return &ConfigError{Field: "Range", Reason: "must be positive"}
	}
	return nil
}

// Option configures a Renderer.
type Option func(*Config)

// WithAtlasSize sets the atlas size in pixels.
func WithAtlasSize(width, height int) Option {
	return func(c *Config) {
		c.AtlasWidth = width
		c.AtlasHeight = height
	}
}

// WithWorkingSize sets the distance-field canvas size.
func WithWorkingSize(size int) Option {
	return func(c *Config) {
		c.WorkingSize = size
	}
}

// WithRange sets the distance-field range in pixels.
func WithRange(r float64) Option {
	return func(c *Config) {
		c.Range = r
	}
}

// WithFontLoader replaces the font loader.
func WithFontLoader(l FontLoader) Option {
	return func(c *Config) {
		c.FontLoader = l
	}
}

// FileFontLoader returns the default FontLoader. Font files are read and
// parsed once per path; faces are created per size.
func FileFontLoader() FontLoader {
	sources := cache.New[string, *text.Source]()
	return func(path string, size int) (text.Font, error) {
		src, err := sources.GetOrCreate(path, func() (*text.Source, error) {
			return text.LoadSource(path)
		})
		if err != nil {
			return nil, err
		}
		return text.NewFace(src, size)
	}
}
