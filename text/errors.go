// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidSize is returned for non-positive pixel sizes.
	ErrInvalidSize = errors.New("text: invalid pixel size")

	// ErrInvalidText is returned when text is not valid UTF-8.
	ErrInvalidText = errors.New("text: invalid UTF-8")

	// ErrBidi is returned when the bidi engine cannot order a paragraph.
	ErrBidi = errors.New("text: bidi ordering failed")

	// ErrLineBreak is returned when the line-break iterator fails.
	ErrLineBreak = errors.New("text: line breaking failed")

	// ErrNoOutline is returned for glyphs without a vector outline
	// (bitmap or color glyphs).
	ErrNoOutline = errors.New("text: glyph has no outline")
)
