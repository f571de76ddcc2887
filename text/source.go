// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Source is a parsed font file. One Source backs any number of Faces at
// different pixel sizes.
//
// Source is read-only after creation and safe for concurrent use.
type Source struct {
	id   string
	data []byte

	// sfnt serves metrics, ink bounds and outlines.
	sfnt *opentype.Font

	// shaping serves HarfBuzz shaping; font.Font is safe for concurrent use
	// while font.Face is not.
	shaping *font.Font
}

// ParseSource parses TTF or OTF data. The id names the font in cache keys,
// usually the path it was loaded from. The data slice is copied.
func ParseSource(id string, data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	data = bytes.Clone(data)

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font %q: %w", id, err)
	}

	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to load font %q for shaping: %w", id, err)
	}

	return &Source{
		id:      id,
		data:    data,
		sfnt:    parsed,
		shaping: face.Font,
	}, nil
}

// LoadSource reads and parses a font file. The path becomes the source ID.
func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path) //nolint:gosec // font path is caller-provided
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return ParseSource(path, data)
}

// ID returns the font identity used in cache keys.
func (s *Source) ID() string {
	return s.id
}

// Name returns the font family name, or the ID when the font has none.
func (s *Source) Name() string {
	if name, err := s.sfnt.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	return s.id
}

// NumGlyphs returns the number of glyphs in the font.
func (s *Source) NumGlyphs() int {
	return s.sfnt.NumGlyphs()
}
