// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"sync"
	"unicode/utf8"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// runShaper shapes single-direction runs with go-text/typesetting's HarfBuzz
// port. It is safe for concurrent use: HarfbuzzShaper instances are pooled
// and every call gets its own font.Face over the shared font.Font.
type runShaper struct {
	font *font.Font
	lang language.Language
	pool sync.Pool
}

func newRunShaper(f *font.Font, lang string) *runShaper {
	s := &runShaper{
		font: f,
		lang: language.NewLanguage(lang),
	}
	s.pool.New = func() any {
		return &shaping.HarfbuzzShaper{}
	}
	return s
}

// shape returns the glyphs of s. Cluster values are byte offsets into s.
func (s *runShaper) shape(text string, dir Direction, size fixed.Int26_6) []Glyph {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: mapDirection(dir),
		Face:      font.NewFace(s.font),
		Size:      size,
		Script:    detectScript(runes),
		Language:  s.lang,
	}
	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.pool.Put(hb)

	// rune index -> byte offset
	offsets := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		offsets[i] = off
		off += utf8.RuneLen(r)
	}
	offsets[len(runes)] = off

	glyphs := make([]Glyph, len(out.Glyphs))
	for i, g := range out.Glyphs {
		cluster := g.TextIndex()
		if cluster < 0 || cluster > len(runes) {
			cluster = 0
		}
		glyphs[i] = Glyph{
			ID:       GlyphID(uint16(g.GlyphID)), //nolint:gosec // glyph indices fit in 16 bits in TrueType/CFF
			Cluster:  offsets[cluster],
			XAdvance: fixedToFloat(g.Advance),
			XOffset:  fixedToFloat(g.XOffset),
			YOffset:  fixedToFloat(g.YOffset),
		}
	}
	return glyphs
}

// mapDirection converts a Direction to go-text's di.Direction.
func mapDirection(d Direction) di.Direction {
	if d == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// fixedToFloat converts a 26.6 fixed-point value to pixels.
func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
