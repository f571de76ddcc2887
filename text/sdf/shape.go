// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sdf

import (
	"fmt"
	"math"

	"github.com/gogpu/textatlas/text"
)

// closeTolerance is the largest gap between the end and the start of a
// contour that still counts as closed.
const closeTolerance = 1e-6

// minContourArea is the smallest enclosed area, in square pixels, of a
// valid contour. Spikes and collinear contours fall below it.
const minContourArea = 1e-6

const areaSamples = 8

// Contour is a closed sequence of edges.
type Contour struct {
	Edges []Edge
}

// AddEdge appends an edge to the contour.
func (c *Contour) AddEdge(e Edge) {
	c.Edges = append(c.Edges, e)
}

// Bounds returns the bounding box of all edges in the contour.
func (c *Contour) Bounds() Rect {
	if len(c.Edges) == 0 {
		return Rect{}
	}
	bounds := c.Edges[0].Bounds()
	for i := 1; i < len(c.Edges); i++ {
		bounds = bounds.Union(c.Edges[i].Bounds())
	}
	return bounds
}

// closed reports whether the contour ends where it starts.
func (c *Contour) closed() bool {
	if len(c.Edges) == 0 {
		return false
	}
	first := c.Edges[0].StartPoint()
	last := c.Edges[len(c.Edges)-1].EndPoint()
	return math.Abs(first.X-last.X) <= closeTolerance && math.Abs(first.Y-last.Y) <= closeTolerance
}

// finite reports whether every edge point is a finite number.
func (c *Contour) finite() bool {
	for i := range c.Edges {
		for _, p := range c.Edges[i].Points {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				return false
			}
		}
	}
	return true
}

// area returns the signed area enclosed by the contour. Curves are
// flattened into areaSamples chords.
func (c *Contour) area() float64 {
	var sum float64
	for i := range c.Edges {
		e := &c.Edges[i]
		n := 1
		if e.Type != EdgeLinear {
			n = areaSamples
		}
		prev := e.StartPoint()
		for k := 1; k <= n; k++ {
			p := e.PointAt(float64(k) / float64(n))
			sum += prev.Cross(p)
			prev = p
		}
	}
	return sum / 2
}

// Shape is a glyph outline as a set of contours.
type Shape struct {
	Contours []*Contour

	// Bounds is the overall bounding box, updated by CalculateBounds.
	Bounds Rect
}

// AddContour appends a contour to the shape.
func (s *Shape) AddContour(c *Contour) {
	s.Contours = append(s.Contours, c)
}

// CalculateBounds computes and stores the overall bounding box.
func (s *Shape) CalculateBounds() {
	s.Bounds = Rect{}
	first := true
	for _, c := range s.Contours {
		if len(c.Edges) == 0 {
			continue
		}
		if first {
			s.Bounds = c.Bounds()
			first = false
			continue
		}
		s.Bounds = s.Bounds.Union(c.Bounds())
	}
}

// EdgeCount returns the total number of edges across all contours.
func (s *Shape) EdgeCount() int {
	count := 0
	for _, c := range s.Contours {
		count += len(c.Edges)
	}
	return count
}

// Validate checks that the shape has edges, that every point is finite and
// that every contour is closed and encloses an area.
func (s *Shape) Validate() error {
	if s.EdgeCount() == 0 {
		return ErrEmptyShape
	}
	for i, c := range s.Contours {
		if !c.finite() {
			return fmt.Errorf("%w: contour %d", ErrNonFinite, i)
		}
		if !c.closed() {
			return fmt.Errorf("%w: contour %d", ErrOpenContour, i)
		}
		if a := math.Abs(c.area()); a < minContourArea {
			return fmt.Errorf("%w: contour %d has area %g", ErrDegenerateContour, i, a)
		}
	}
	return nil
}

// Normalize splits every single-edge contour into three edges so that no
// contour degenerates to one segment.
func (s *Shape) Normalize() {
	for _, c := range s.Contours {
		if len(c.Edges) != 1 {
			continue
		}
		parts := c.Edges[0].SplitInThirds()
		c.Edges = append(c.Edges[:0], parts[:]...)
	}
}

// FromOutline converts a glyph outline to a shape. Degenerate line edges
// are dropped, and contours that end up empty are dropped. A contour that
// does not return to its start is closed with a line.
func FromOutline(outline *text.Outline) *Shape {
	shape := &Shape{}
	if outline == nil {
		return shape
	}

	var (
		cur        *Contour
		start, pos Point
	)
	finish := func() {
		if cur == nil || len(cur.Edges) == 0 {
			return
		}
		if !(pos.Sub(start).LengthSquared() <= 1e-12) { // NaN points are kept for Validate
			cur.AddEdge(NewLinearEdge(pos, start))
		}
		shape.AddContour(cur)
	}
	pt := func(p text.OutlinePoint) Point {
		return Point{X: p.X, Y: p.Y}
	}

	for _, seg := range outline.Segments {
		if seg.Op == text.OutlineOpMoveTo {
			finish()
			cur = &Contour{}
			start = pt(seg.Points[0])
			pos = start
			continue
		}
		if cur == nil {
			cur = &Contour{}
			start = pos
		}

		switch seg.Op {
		case text.OutlineOpLineTo:
			end := pt(seg.Points[0])
			if !(end.Sub(pos).LengthSquared() <= 1e-12) {
				cur.AddEdge(NewLinearEdge(pos, end))
			}
			pos = end
		case text.OutlineOpQuadTo:
			end := pt(seg.Points[1])
			cur.AddEdge(NewQuadraticEdge(pos, pt(seg.Points[0]), end))
			pos = end
		case text.OutlineOpCubicTo:
			end := pt(seg.Points[2])
			cur.AddEdge(NewCubicEdge(pos, pt(seg.Points[0]), pt(seg.Points[1]), end))
			pos = end
		}
	}
	finish()

	shape.CalculateBounds()
	return shape
}

// inside reports whether p is inside the shape by the non-zero rule.
func (s *Shape) inside(p Point) bool {
	w := 0
	for _, c := range s.Contours {
		for i := range c.Edges {
			w += c.Edges[i].winding(p)
		}
	}
	return w != 0
}

// distance returns the unsigned distance from p to the nearest edge.
func (s *Shape) distance(p Point) float64 {
	best := math.Inf(1)
	for _, c := range s.Contours {
		for i := range c.Edges {
			best = min(best, c.Edges[i].Distance(p))
		}
	}
	return best
}
