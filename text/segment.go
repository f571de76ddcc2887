// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/gioui/uax/segment"
	"github.com/gioui/uax/uax14"
	"golang.org/x/text/unicode/bidi"
)

// ItemKind distinguishes text items from explicit line breaks.
type ItemKind uint8

const (
	// ItemText is a span between two break opportunities.
	ItemText ItemKind = iota
	// ItemLineBreak is a single line-terminating character.
	ItemLineBreak
)

// String returns the string representation of the item kind.
func (k ItemKind) String() string {
	switch k {
	case ItemText:
		return "Text"
	case ItemLineBreak:
		return "LineBreak"
	default:
		return unknownStr
	}
}

// Item is one unit of the pre-layout: a span of single-direction text that
// may not be broken further except by splitting an overlong item.
type Item struct {
	Kind      ItemKind
	Direction Direction

	// Start and Length are byte offsets into the layout text.
	Start  int
	Length int

	// Trim is the number of bytes of trailing white space, control
	// characters and non-spacing marks.
	Trim int

	// Rect is the measured box of the whole item, Trimmed the box without
	// the trailing trim.
	Rect    Rect
	Trimmed Rect
}

// End returns Start + Length.
func (it Item) End() int { return it.Start + it.Length }

// isLineTerminator reports whether r ends a line.
func isLineTerminator(r rune) bool {
	switch {
	case r >= 0x0A && r <= 0x0D:
		return true
	case r == 0x85, r == 0x2028, r == 0x2029:
		return true
	}
	return false
}

// isTrimmable reports whether r may be dropped at the end of a wrapped line.
func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r) || unicode.Is(unicode.Mn, r)
}

// boundary is a position where a new item starts. dir is negative for a
// pure break opportunity that inherits the direction of the previous run.
type boundary struct {
	pos int
	dir int
}

const inheritDir = -1

// Boundary sources of segmentText; tests replace them to inject engine
// failures.
var (
	bidiRuns   = bidiBoundaries
	lineBreaks = breakBoundaries
)

// segmentText splits text[from:] into items. Offsets of the returned items
// are relative to text. An engine failure yields no items and the error.
func segmentText(f Font, text string, from int) ([]Item, error) {
	s := text[from:]
	if s == "" {
		return nil, nil
	}

	bounds, err := bidiRuns(s)
	if err != nil {
		return nil, err
	}
	breaks, err := lineBreaks(s)
	if err != nil {
		return nil, err
	}
	bounds = append(bounds, breaks...)

	// Run starts sort before breaks at the same position so that dedup keeps
	// the direction.
	slices.SortStableFunc(bounds, func(a, b boundary) int {
		if a.pos != b.pos {
			return a.pos - b.pos
		}
		return b.dir - a.dir
	})
	bounds = slices.CompactFunc(bounds, func(a, b boundary) bool { return a.pos == b.pos })

	dir := int(DirectionLTR)
	for i := range bounds {
		if bounds[i].dir == inheritDir {
			bounds[i].dir = dir
		}
		dir = bounds[i].dir
	}

	if len(bounds) < 2 {
		return nil, nil
	}

	items := make([]Item, 0, len(bounds))
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i].pos, bounds[i+1].pos
		if start == end {
			continue
		}
		items = appendSpan(items, f, text, from+start, from+end, Direction(bounds[i].dir)) //nolint:gosec // dir is 0 or 1
	}
	return items, nil
}

// appendSpan turns text[start:end] into one text item, or a text item and a
// line-break item when the span ends in a line terminator.
func appendSpan(items []Item, f Font, text string, start, end int, dir Direction) []Item {
	last, size := utf8.DecodeLastRuneInString(text[start:end])
	if isLineTerminator(last) {
		if end-size > start {
			items = append(items, newTextItem(f, text, start, end-size, dir))
		}
		return append(items, Item{
			Kind:      ItemLineBreak,
			Direction: dir,
			Start:     end - size,
			Length:    size,
		})
	}
	return append(items, newTextItem(f, text, start, end, dir))
}

func newTextItem(f Font, text string, start, end int, dir Direction) Item {
	s := text[start:end]
	trim := trailingTrim(s)
	it := Item{
		Kind:      ItemText,
		Direction: dir,
		Start:     start,
		Length:    end - start,
		Trim:      trim,
		Rect:      f.Measure(s),
	}
	if trim > 0 {
		it.Trimmed = f.Measure(s[:len(s)-trim])
	} else {
		it.Trimmed = it.Rect
	}
	return it
}

// trailingTrim returns the byte length of the trimmable suffix of s.
func trailingTrim(s string) int {
	n := 0
	for len(s) > n {
		r, size := utf8.DecodeLastRuneInString(s[:len(s)-n])
		if !isTrimmable(r) {
			break
		}
		n += size
	}
	return n
}

// bidiBoundaries returns the start of every directional run. Each
// paragraph is resolved on its own with a left-to-right default.
func bidiBoundaries(s string) ([]boundary, error) {
	var (
		out []boundary
		p   bidi.Paragraph
	)
	for start := 0; start < len(s); {
		end := start
		for end < len(s) {
			r, size := utf8.DecodeRuneInString(s[end:])
			end += size
			if r == '\r' && end < len(s) && s[end] == '\n' {
				end++
			}
			if isLineTerminator(r) {
				break
			}
		}

		para := s[start:end]
		if _, err := p.SetString(para, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBidi, err)
		}
		ordering, err := p.Order()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBidi, err)
		}

		offsets := runeOffsets(para)
		for i := 0; i < ordering.NumRuns(); i++ {
			run := ordering.Run(i)
			first, _ := run.Pos() // rune indices, inclusive
			if first < 0 || first >= len(offsets) {
				continue
			}
			d := DirectionLTR
			if run.Direction() == bidi.RightToLeft {
				d = DirectionRTL
			}
			out = append(out, boundary{pos: start + offsets[first], dir: int(d)})
		}
		start = end
	}

	if len(out) == 0 || slices.IndexFunc(out, func(b boundary) bool { return b.pos == 0 }) < 0 {
		out = append(out, boundary{pos: 0, dir: int(DirectionLTR)})
	}
	return out, nil
}

// breakBoundaries returns the UAX #14 line-break opportunities of s,
// always including the end of the text.
func breakBoundaries(s string) ([]boundary, error) {
	runes := []rune(s)
	offsets := runeOffsets(s)

	breaker := uax14.NewLineWrap()
	seg := segment.NewSegmenter(breaker)
	seg.InitFromSlice(runes)

	var out []boundary
	runeOffset := 0
	for seg.Next() {
		runeOffset += len(seg.Runes())
		if runeOffset > len(runes) {
			break
		}
		out = append(out, boundary{pos: offsets[runeOffset], dir: inheritDir})
	}
	if err := seg.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLineBreak, err)
	}
	return append(out, boundary{pos: len(s), dir: inheritDir}), nil
}

// runeOffsets maps rune indices of s to byte offsets; the extra last entry
// is len(s).
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}
