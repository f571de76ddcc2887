// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"errors"
	"fmt"
	"testing"
)

type runSpan struct {
	start, length int
}

func lineSpans(l *Layout) [][]runSpan {
	out := make([][]runSpan, len(l.Lines()))
	for i, line := range l.Lines() {
		for _, r := range line.Runs {
			out[i] = append(out[i], runSpan{r.Start, r.Length})
		}
	}
	return out
}

func equalSpans(a, b [][]runSpan) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func TestLayoutLines(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float32
		want  [][]runSpan
	}{
		{"empty", "", Unbounded, [][]runSpan{}},
		{"single line", "hello world", Unbounded, [][]runSpan{{{0, 11}}}},
		{"forced break", "AB\nC", Unbounded, [][]runSpan{{{0, 2}}, {{3, 1}}}},
		{"wrap drops trailing space", "ab cd", 25, [][]runSpan{{{0, 3}}, {{3, 2}}}},
		{"wrap before item", "abc de", 45, [][]runSpan{{{0, 4}}, {{4, 2}}}},
		{"wrap consumes line break", "ab \ncd", 25, [][]runSpan{{{0, 3}}, {{4, 2}}}},
		{"split long word", "abcdefgh", 30, [][]runSpan{{{0, 3}}, {{3, 3}}, {{6, 2}}}},
		{"split starts a new line", "a bcdefgh", 35, [][]runSpan{{{0, 2}}, {{2, 3}}, {{5, 3}}, {{8, 1}}}},
		{"zero width", "abc", 0, [][]runSpan{{{0, 1}}, {{1, 1}}, {{2, 1}}}},
		{"empty lines kept", "a\n\nb", Unbounded, [][]runSpan{{{0, 1}}, nil, {{3, 1}}}},
		{"trailing line feed", "a\n", Unbounded, [][]runSpan{{{0, 1}}, nil}},
		{"trailing wrap has no empty line", "ab ", 25, [][]runSpan{{{0, 3}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayout(newMonoFont(), WithWidth(tt.width))
			l.SetText(tt.text)
			if err := l.Err(); err != nil {
				t.Fatalf("Err() = %v", err)
			}
			got := lineSpans(l)
			if !equalSpans(got, tt.want) {
				t.Errorf("lines = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayoutForcedBreakNoEmptyLine(t *testing.T) {
	l := NewLayout(newMonoFont())
	l.SetText("AB\nC")

	lines := l.Lines()
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		if len(line.Runs) != 1 {
			t.Errorf("line %d has %d runs, want 1", i, len(line.Runs))
		}
	}
	if got := l.Text()[lines[0].Runs[0].Start:lines[0].Runs[0].End()]; got != "AB" {
		t.Errorf("line 1 = %q, want AB", got)
	}
	if got := l.Text()[lines[1].Runs[0].Start:lines[1].Runs[0].End()]; got != "C" {
		t.Errorf("line 2 = %q, want C", got)
	}
}

func TestLayoutWrapTrimsWidthKeepsLength(t *testing.T) {
	l := NewLayout(newMonoFont(), WithWidth(25))
	l.SetText("ab cd")

	lines := l.Lines()
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	first := lines[0].Runs[0]
	if first.Length != 3 {
		t.Errorf("run length = %d, want 3 (space included)", first.Length)
	}
	if first.Rect.Width != 20 {
		t.Errorf("run width = %v, want 20 (space excluded)", first.Rect.Width)
	}
	if w := lines[1].Width(); w != 20 {
		t.Errorf("line 2 width = %v, want 20", w)
	}
}

func TestLayoutUnsplittableOverflow(t *testing.T) {
	f := newMonoFont()
	f.wide = map[rune]float32{'W': 50}

	l := NewLayout(f, WithWidth(10))
	l.SetText("W")

	lines := l.Lines()
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if w := lines[0].Width(); w != 50 {
		t.Errorf("line width = %v, want 50", w)
	}
}

func TestLayoutWidthInvariant(t *testing.T) {
	const text = "The quick brown fox jumps over the lazy dog.\nPack my box with five dozen liquor jugs."
	for _, width := range []float32{10, 35, 60, 100, 250} {
		l := NewLayout(newMonoFont(), WithWidth(width))
		l.SetText(text)
		for i, line := range l.Lines() {
			w := line.Width()
			if w <= width {
				continue
			}
			// Only a single rune may exceed the width.
			if len(line.Runs) != 1 || line.Runs[0].Length != 1 {
				t.Errorf("width %v: line %d is %v wide", width, i, w)
			}
		}
	}
}

func TestLayoutRunsMerge(t *testing.T) {
	l := NewLayout(newMonoFont())
	l.SetText("one two three")

	if l.RunCount() != 1 {
		t.Fatalf("RunCount() = %d, want 1", l.RunCount())
	}
	run := l.Lines()[0].Runs[0]
	if run.Start != 0 || run.Length != 13 {
		t.Errorf("run = [%d, %d), want [0, 13)", run.Start, run.End())
	}
	if run.Rect.Width != 130 {
		t.Errorf("run width = %v, want 130", run.Rect.Width)
	}
}

func TestLayoutReshape(t *testing.T) {
	f := newMonoFont()
	l := NewLayout(f, WithWidth(35))
	l.SetText("ab cd ef")

	if got := l.GlyphCount(); got != 8 {
		t.Errorf("GlyphCount() = %d, want 8", got)
	}
	for _, line := range l.Lines() {
		for _, run := range line.Runs {
			if len(run.Glyphs) != run.Length {
				t.Errorf("run [%d, %d) has %d glyphs", run.Start, run.End(), len(run.Glyphs))
			}
		}
	}

	before := f.shapeCalls.Load()
	l.SetWidth(Unbounded)
	if f.shapeCalls.Load() == before {
		t.Error("SetWidth did not reshape")
	}
	if l.RunCount() != 1 || l.GlyphCount() != 8 {
		t.Errorf("after SetWidth: %d runs, %d glyphs", l.RunCount(), l.GlyphCount())
	}

	before = f.shapeCalls.Load()
	l.SetWidth(Unbounded)
	if f.shapeCalls.Load() != before {
		t.Error("unchanged width triggered a relayout")
	}
}

func TestLayoutAddText(t *testing.T) {
	tests := []struct {
		parts []string
	}{
		{[]string{"ab ", "cd"}},
		{[]string{"ab", "cd ef"}},
		{[]string{"line one\n", "line two"}},
		{[]string{"", "x", " y", "\nz"}},
	}
	for _, tt := range tests {
		whole := ""
		for _, p := range tt.parts {
			whole += p
		}

		inc := NewLayout(newMonoFont(), WithWidth(45))
		for _, p := range tt.parts {
			inc.AddText(p)
		}
		ref := NewLayout(newMonoFont(), WithWidth(45))
		ref.SetText(whole)

		if inc.Text() != whole {
			t.Fatalf("Text() = %q, want %q", inc.Text(), whole)
		}
		if got, want := spans(inc.Items()), spans(ref.Items()); len(got) != len(want) {
			t.Errorf("%q: items %v, want %v", whole, got, want)
		} else {
			for i := range got {
				if got[i] != want[i] {
					t.Errorf("%q: item %d = %v, want %v", whole, i, got[i], want[i])
				}
			}
		}
		if !equalSpans(lineSpans(inc), lineSpans(ref)) {
			t.Errorf("%q: lines %v, want %v", whole, lineSpans(inc), lineSpans(ref))
		}
	}
}

func TestLayoutSetGeometry(t *testing.T) {
	l := NewLayout(newMonoFont())
	l.SetText("ab cd")
	if len(l.Lines()) != 1 {
		t.Fatalf("got %d lines, want 1", len(l.Lines()))
	}

	l.SetGeometry(25, 100)
	if l.Width() != 25 || l.Height() != 100 {
		t.Errorf("geometry = %vx%v", l.Width(), l.Height())
	}
	if len(l.Lines()) != 2 {
		t.Errorf("got %d lines after SetGeometry, want 2", len(l.Lines()))
	}
}

func TestLineVisualOrder(t *testing.T) {
	L, R := DirectionLTR, DirectionRTL
	tests := []struct {
		name string
		dirs []Direction
		want []int
	}{
		{"empty", nil, []int{}},
		{"all ltr", []Direction{L, L, L}, []int{0, 1, 2}},
		{"single rtl", []Direction{L, R, L}, []int{0, 1, 2}},
		{"rtl sequence reversed", []Direction{L, R, R, L}, []int{0, 2, 1, 3}},
		{"two rtl sequences", []Direction{R, R, L, R, R, R}, []int{1, 0, 2, 5, 4, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var line Line
			for _, d := range tt.dirs {
				line.Runs = append(line.Runs, Run{Direction: d})
			}
			got := line.VisualOrder()
			if len(got) != len(tt.want) {
				t.Fatalf("order = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("order = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestLayoutInvalidUTF8(t *testing.T) {
	l := NewLayout(newMonoFont())
	l.SetText("ab\xff\xfecd")

	if got, want := l.Text(), "ab\uFFFDcd"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if n := l.GlyphCount(); n != 5 {
		t.Errorf("GlyphCount() = %d, want 5", n)
	}

	l.AddText(" e\x80")
	if got, want := l.Text(), "ab\uFFFDcd e\uFFFD"; got != want {
		t.Errorf("after AddText: Text() = %q, want %q", got, want)
	}
	if n := l.GlyphCount(); n != 8 {
		t.Errorf("after AddText: GlyphCount() = %d, want 8", n)
	}
}

func TestLayoutSegmentationFailure(t *testing.T) {
	errEngine := errors.New("engine")
	tests := []struct {
		name    string
		fail    func()
		wantErr error
	}{
		{"bidi", func() {
			bidiRuns = func(string) ([]boundary, error) { return nil, fmt.Errorf("%w: %w", ErrBidi, errEngine) }
		}, ErrBidi},
		{"line break", func() {
			lineBreaks = func(string) ([]boundary, error) { return nil, fmt.Errorf("%w: %w", ErrLineBreak, errEngine) }
		}, ErrLineBreak},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(func() {
				bidiRuns = bidiBoundaries
				lineBreaks = breakBoundaries
			})

			f := newMonoFont()
			l := NewLayout(f)
			tt.fail()
			l.SetText("hello world")

			if !errors.Is(l.Err(), tt.wantErr) {
				t.Errorf("Err() = %v, want %v", l.Err(), tt.wantErr)
			}
			if len(l.Lines()) != 0 || len(l.Items()) != 0 {
				t.Errorf("failed segmentation left %d lines, %d items", len(l.Lines()), len(l.Items()))
			}
			if n := f.shapeCalls.Load(); n != 0 {
				t.Errorf("Shape called %d times", n)
			}

			bidiRuns = bidiBoundaries
			lineBreaks = breakBoundaries
			l.SetText("hello world")
			if l.Err() != nil || len(l.Lines()) != 1 {
				t.Errorf("recovery: Err() = %v, %d lines", l.Err(), len(l.Lines()))
			}
		})
	}
}
