// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"strings"
	"unicode/utf8"
)

// Run is a single-direction span of one line together with its shaped
// glyphs.
type Run struct {
	Direction Direction

	// Start and Length are byte offsets into the layout text. Length
	// includes trailing white space dropped at a wrap point.
	Start  int
	Length int

	// Rect is the union of the item boxes in the run, x relative to the
	// line start and y relative to the baseline.
	Rect Rect

	// Glyphs is the shaped text of the run, in shaping order.
	Glyphs []Glyph
}

// End returns Start + Length.
func (r *Run) End() int { return r.Start + r.Length }

// Line is one visual line of a Layout.
type Line struct {
	Runs []Run
}

// Rect returns the union of the run boxes.
func (l *Line) Rect() Rect {
	var r Rect
	for i := range l.Runs {
		r = r.Union(l.Runs[i].Rect)
	}
	return r
}

// Width returns the width of the line measured from its start.
func (l *Line) Width() float32 {
	r := l.Rect()
	if r.Width <= 0 {
		return 0
	}
	return r.Right()
}

// VisualOrder returns the indices of the runs in left-to-right display
// order. Lines have a left-to-right base direction, so every maximal
// sequence of right-to-left runs is reversed in place.
func (l *Line) VisualOrder() []int {
	order := make([]int, len(l.Runs))
	for i := range order {
		order[i] = i
	}
	for i := 0; i < len(order); {
		if l.Runs[i].Direction != DirectionRTL {
			i++
			continue
		}
		j := i
		for j < len(order) && l.Runs[j].Direction == DirectionRTL {
			j++
		}
		for a, b := i, j-1; a < b; a, b = a+1, b-1 {
			order[a], order[b] = order[b], order[a]
		}
		i = j
	}
	return order
}

// Layout breaks text into lines of runs for a font and a width constraint.
//
// Text is segmented once per text change; lines are rebuilt from the
// segmented items whenever the text or the geometry changes, and every run
// is reshaped afterwards.
//
// Layout is not safe for concurrent use.
type Layout struct {
	font   Font
	text   string
	width  float32
	height float32

	items []Item
	lines []Line
	err   error

	// state of the line builder
	currentWidth      float32
	skipNextLinebreak bool
}

// NewLayout creates an empty layout. Width and height default to Unbounded.
func NewLayout(f Font, opts ...LayoutOption) *Layout {
	l := &Layout{
		font:   f,
		width:  Unbounded,
		height: Unbounded,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Font returns the font the layout measures and shapes with.
func (l *Layout) Font() Font { return l.font }

// Text returns the laid out text.
func (l *Layout) Text() string { return l.text }

// Width returns the width constraint.
func (l *Layout) Width() float32 { return l.width }

// Height returns the height constraint.
func (l *Layout) Height() float32 { return l.height }

// Items returns the segmented items.
func (l *Layout) Items() []Item { return l.items }

// Lines returns the laid out lines. The slice is rebuilt by every change.
func (l *Layout) Lines() []Line { return l.lines }

// Err returns the error of the last segmentation, if it failed. A failed
// segmentation leaves the layout without text.
func (l *Layout) Err() error { return l.err }

// SetText replaces the text and lays it out again.
//
// Invalid UTF-8 sequences are replaced with U+FFFD.
func (l *Layout) SetText(s string) {
	l.text = strings.ToValidUTF8(s, string(utf8.RuneError))
	l.items = l.items[:0]
	l.segment(0)
	l.relayout()
}

// AddText appends s to the text. Only the text from the start of the last
// item onward is segmented again.
func (l *Layout) AddText(s string) {
	if s == "" {
		return
	}
	from := 0
	if n := len(l.items); n > 0 {
		from = l.items[n-1].Start
		l.items = l.items[:n-1]
	}
	l.text += strings.ToValidUTF8(s, string(utf8.RuneError))
	l.segment(from)
	l.relayout()
}

// SetWidth changes the width constraint. Lines are rebuilt only when the
// value changes.
func (l *Layout) SetWidth(w float32) {
	if w == l.width {
		return
	}
	l.width = w
	l.relayout()
}

// SetHeight changes the height constraint.
func (l *Layout) SetHeight(h float32) {
	if h == l.height {
		return
	}
	l.height = h
	l.relayout()
}

// SetGeometry changes both constraints with a single relayout.
func (l *Layout) SetGeometry(w, h float32) {
	if w == l.width && h == l.height {
		return
	}
	l.width, l.height = w, h
	l.relayout()
}

// RunCount returns the number of runs over all lines.
func (l *Layout) RunCount() int {
	n := 0
	for i := range l.lines {
		n += len(l.lines[i].Runs)
	}
	return n
}

// GlyphCount returns the number of shaped glyphs over all runs.
func (l *Layout) GlyphCount() int {
	n := 0
	for i := range l.lines {
		for j := range l.lines[i].Runs {
			n += len(l.lines[i].Runs[j].Glyphs)
		}
	}
	return n
}

// segment appends the items of l.text[from:].
func (l *Layout) segment(from int) {
	items, err := segmentText(l.font, l.text, from)
	l.err = err
	if err != nil {
		slogger().Warn("text: segmentation failed, layout is empty",
			"font", l.font.ID(), "err", err)
		l.items = l.items[:0]
		return
	}
	l.items = append(l.items, items...)
}

func (l *Layout) relayout() {
	l.lines = l.lines[:0]
	l.currentWidth = 0
	l.skipNextLinebreak = false

	if len(l.items) > 0 {
		l.lines = append(l.lines, Line{})
	}
	for _, it := range l.items {
		l.insertItem(it)
	}
	// A wrap after the last item leaves an empty line behind.
	if n := len(l.lines); l.skipNextLinebreak && n > 1 && len(l.lines[n-1].Runs) == 0 {
		l.lines = l.lines[:n-1]
	}
	l.reshape()
}

func (l *Layout) insertItem(it Item) {
	if it.Kind == ItemLineBreak {
		if l.skipNextLinebreak {
			l.skipNextLinebreak = false
			return
		}
		l.newLine(true)
		return
	}
	l.skipNextLinebreak = false

	full, trimmed := it.Rect.Width, it.Trimmed.Width
	switch {
	case l.currentWidth+full <= l.width:
		l.appendItem(it, it.Rect)

	case l.currentWidth+trimmed <= l.width:
		l.appendItem(it, it.Trimmed)
		l.newLine(true)
		l.skipNextLinebreak = true

	case full <= l.width:
		l.newLine(false)
		l.appendItem(it, it.Rect)

	case trimmed <= l.width:
		l.newLine(false)
		l.appendItem(it, it.Trimmed)
		l.newLine(true)
		l.skipNextLinebreak = true

	default:
		l.splitItem(it)
	}
}

// splitItem starts a new line with the longest prefix of an overlong item
// that fits the width and inserts the remainder. At least one rune is
// placed, so every call makes progress even with a zero width.
func (l *Layout) splitItem(it Item) {
	s := l.text[it.Start:it.End()]

	l.newLine(false)
	n := l.fittingPrefix(s, l.width)
	if n == 0 {
		_, n = utf8.DecodeRuneInString(s)
	}

	head := newTextItem(l.font, l.text, it.Start, it.Start+n, it.Direction)
	l.appendItem(head, head.Rect)

	if n < len(s) {
		l.insertItem(newTextItem(l.font, l.text, it.Start+n, it.End(), it.Direction))
	}
}

// fittingPrefix returns the byte length of the longest prefix of s, ending
// on a rune boundary, whose measured width is within avail.
func (l *Layout) fittingPrefix(s string, avail float32) int {
	for end := len(s); end > 0; {
		_, size := utf8.DecodeLastRuneInString(s[:end])
		end -= size
		if end == 0 {
			break
		}
		if l.font.Measure(s[:end]).Width <= avail {
			return end
		}
	}
	return 0
}

// newLine starts a new line. Unless forced, it does nothing when the
// current line is still empty.
func (l *Layout) newLine(force bool) {
	if !force && len(l.lines) > 0 && len(l.lines[len(l.lines)-1].Runs) == 0 {
		return
	}
	l.lines = append(l.lines, Line{})
	l.currentWidth = 0
}

// appendItem adds it to the current line with box r placed at the pen.
// Adjacent items of the same direction merge into one run.
func (l *Layout) appendItem(it Item, r Rect) {
	if len(l.lines) == 0 {
		l.lines = append(l.lines, Line{})
	}
	line := &l.lines[len(l.lines)-1]
	r = r.Translate(l.currentWidth, 0)
	l.currentWidth += r.Width

	if n := len(line.Runs); n > 0 {
		last := &line.Runs[n-1]
		if last.Direction == it.Direction && last.End() == it.Start {
			last.Length += it.Length
			last.Rect = last.Rect.Union(r)
			return
		}
	}
	line.Runs = append(line.Runs, Run{
		Direction: it.Direction,
		Start:     it.Start,
		Length:    it.Length,
		Rect:      r,
	})
}

// reshape replaces the glyphs of every run.
func (l *Layout) reshape() {
	for i := range l.lines {
		for j := range l.lines[i].Runs {
			run := &l.lines[i].Runs[j]
			glyphs, err := l.font.Shape(l.text[run.Start:run.End()], run.Direction)
			if err != nil {
				slogger().Warn("text: shaping failed",
					"font", l.font.ID(), "start", run.Start, "length", run.Length, "err", err)
				glyphs = nil
			}
			run.Glyphs = glyphs
		}
	}
}
