// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sdf

import (
	"math"
)

// EdgeType classifies edge segments by their geometric type.
type EdgeType int

const (
	// EdgeLinear is a straight line segment between two points.
	EdgeLinear EdgeType = iota

	// EdgeQuadratic is a quadratic Bezier curve (one control point).
	EdgeQuadratic

	// EdgeCubic is a cubic Bezier curve (two control points).
	EdgeCubic
)

// String returns a string representation of the edge type.
func (t EdgeType) String() string {
	switch t {
	case EdgeLinear:
		return "Linear"
	case EdgeQuadratic:
		return "Quadratic"
	case EdgeCubic:
		return "Cubic"
	default:
		return "Unknown"
	}
}

// Edge is one segment of a contour.
type Edge struct {
	Type EdgeType

	// Points holds the start point, the control points and the end point,
	// in that order; unused trailing entries are zero.
	Points [4]Point
}

// NewLinearEdge creates a new linear edge from start to end.
func NewLinearEdge(start, end Point) Edge {
	return Edge{Type: EdgeLinear, Points: [4]Point{start, end}}
}

// NewQuadraticEdge creates a new quadratic Bezier edge.
func NewQuadraticEdge(start, control, end Point) Edge {
	return Edge{Type: EdgeQuadratic, Points: [4]Point{start, control, end}}
}

// NewCubicEdge creates a new cubic Bezier edge.
func NewCubicEdge(start, control1, control2, end Point) Edge {
	return Edge{Type: EdgeCubic, Points: [4]Point{start, control1, control2, end}}
}

// StartPoint returns the starting point of the edge.
func (e *Edge) StartPoint() Point {
	return e.Points[0]
}

// EndPoint returns the ending point of the edge.
func (e *Edge) EndPoint() Point {
	switch e.Type {
	case EdgeQuadratic:
		return e.Points[2]
	case EdgeCubic:
		return e.Points[3]
	default:
		return e.Points[1]
	}
}

// PointAt evaluates the edge at parameter t in [0, 1].
func (e *Edge) PointAt(t float64) Point {
	switch e.Type {
	case EdgeQuadratic:
		return evaluateQuadratic(e.Points[0], e.Points[1], e.Points[2], t)
	case EdgeCubic:
		return evaluateCubic(e.Points[0], e.Points[1], e.Points[2], e.Points[3], t)
	default:
		return e.Points[0].Lerp(e.Points[1], t)
	}
}

// Distance returns the unsigned distance from p to the edge.
func (e *Edge) Distance(p Point) float64 {
	switch e.Type {
	case EdgeQuadratic:
		return quadraticDistance(e.Points[0], e.Points[1], e.Points[2], p)
	case EdgeCubic:
		return cubicDistance(e.Points[0], e.Points[1], e.Points[2], e.Points[3], p)
	default:
		return linearDistance(e.Points[0], e.Points[1], p)
	}
}

// Bounds returns the bounding box of the edge.
func (e *Edge) Bounds() Rect {
	switch e.Type {
	case EdgeQuadratic:
		return quadraticBounds(e.Points[0], e.Points[1], e.Points[2])
	case EdgeCubic:
		return cubicBounds(e.Points[0], e.Points[1], e.Points[2], e.Points[3])
	default:
		return linearBounds(e.Points[0], e.Points[1])
	}
}

// SplitInThirds splits the edge into three edges of the same type that
// trace the same curve.
func (e *Edge) SplitInThirds() [3]Edge {
	switch e.Type {
	case EdgeQuadratic:
		a, rest := splitQuadratic(e.Points[0], e.Points[1], e.Points[2], 1.0/3)
		b, c := splitQuadratic(rest.Points[0], rest.Points[1], rest.Points[2], 0.5)
		return [3]Edge{a, b, c}
	case EdgeCubic:
		a, rest := splitCubic(e.Points[0], e.Points[1], e.Points[2], e.Points[3], 1.0/3)
		b, c := splitCubic(rest.Points[0], rest.Points[1], rest.Points[2], rest.Points[3], 0.5)
		return [3]Edge{a, b, c}
	default:
		p0, p1 := e.Points[0], e.Points[1]
		m1, m2 := p0.Lerp(p1, 1.0/3), p0.Lerp(p1, 2.0/3)
		return [3]Edge{NewLinearEdge(p0, m1), NewLinearEdge(m1, m2), NewLinearEdge(m2, p1)}
	}
}

// flattenSteps is the number of chords per curve used for winding tests.
const flattenSteps = 16

// winding returns the signed number of times the edge crosses the
// horizontal ray from p toward +x.
func (e *Edge) winding(p Point) int {
	if e.Type == EdgeLinear {
		return lineWinding(e.Points[0], e.Points[1], p)
	}
	// Chords lie within the bounds of the curve.
	if b := e.Bounds(); p.X > b.MaxX || p.Y < b.MinY || p.Y > b.MaxY {
		return 0
	}
	w := 0
	prev := e.Points[0]
	for i := 1; i <= flattenSteps; i++ {
		cur := e.PointAt(float64(i) / flattenSteps)
		w += lineWinding(prev, cur, p)
		prev = cur
	}
	return w
}

// lineWinding is the crossing contribution of segment a-b.
func lineWinding(a, b, p Point) int {
	side := b.Sub(a).Cross(p.Sub(a))
	if a.Y <= p.Y {
		if b.Y > p.Y && side > 0 {
			return 1
		}
	} else if b.Y <= p.Y && side < 0 {
		return -1
	}
	return 0
}

// evaluateQuadratic evaluates a quadratic Bezier curve at parameter t.
func evaluateQuadratic(p0, p1, p2 Point, t float64) Point {
	u := 1 - t
	return Point{
		u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}

// evaluateCubic evaluates a cubic Bezier curve at parameter t.
func evaluateCubic(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	u2 := u * u
	t2 := t * t
	return Point{
		u*u2*p0.X + 3*u2*t*p1.X + 3*u*t2*p2.X + t*t2*p3.X,
		u*u2*p0.Y + 3*u2*t*p1.Y + 3*u*t2*p2.Y + t*t2*p3.Y,
	}
}

// cubicDerivative returns the derivative of a cubic Bezier at t.
func cubicDerivative(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	return Point{
		3*u*u*(p1.X-p0.X) + 6*u*t*(p2.X-p1.X) + 3*t*t*(p3.X-p2.X),
		3*u*u*(p1.Y-p0.Y) + 6*u*t*(p2.Y-p1.Y) + 3*t*t*(p3.Y-p2.Y),
	}
}

// cubicSecondDerivative returns the second derivative of a cubic Bezier at t.
func cubicSecondDerivative(p0, p1, p2, p3 Point, t float64) Point {
	a := p2.Sub(p1.Mul(2)).Add(p0)
	b := p3.Sub(p2.Mul(2)).Add(p1)
	u := 1 - t
	return a.Mul(6 * u).Add(b.Mul(6 * t))
}

// splitQuadratic splits a quadratic at t with de Casteljau's algorithm.
func splitQuadratic(p0, p1, p2 Point, t float64) (Edge, Edge) {
	a := p0.Lerp(p1, t)
	b := p1.Lerp(p2, t)
	m := a.Lerp(b, t)
	return NewQuadraticEdge(p0, a, m), NewQuadraticEdge(m, b, p2)
}

// splitCubic splits a cubic at t with de Casteljau's algorithm.
func splitCubic(p0, p1, p2, p3 Point, t float64) (Edge, Edge) {
	a := p0.Lerp(p1, t)
	b := p1.Lerp(p2, t)
	c := p2.Lerp(p3, t)
	ab := a.Lerp(b, t)
	bc := b.Lerp(c, t)
	m := ab.Lerp(bc, t)
	return NewCubicEdge(p0, a, ab, m), NewCubicEdge(m, bc, c, p3)
}

// linearDistance returns the distance from p to segment a-b.
func linearDistance(a, b, p Point) float64 {
	ab := b.Sub(a)
	ap := p.Sub(a)

	abLenSq := ab.LengthSquared()
	if abLenSq == 0 {
		return ap.Length()
	}

	t := ap.Dot(ab) / abLenSq
	t = max(0, min(1, t))
	return p.Sub(a.Add(ab.Mul(t))).Length()
}

// quadraticDistance returns the distance from p to a quadratic Bezier.
// The closest point is a root of the cubic derivative of the squared
// distance, or an endpoint.
func quadraticDistance(p0, p1, p2, p Point) float64 {
	qa := p0.Sub(p)
	qb := p1.Sub(p)
	qc := p2.Sub(p)

	// B(t) - p = a*t^2 + b*t + c
	a := qa.Sub(qb.Mul(2)).Add(qc)
	b := qb.Sub(qa).Mul(2)
	c := qa

	best := min(qa.Length(), qc.Length())
	for _, t := range solveCubic(2*a.Dot(a), 3*a.Dot(b), 2*a.Dot(c)+b.Dot(b), b.Dot(c)) {
		best = min(best, evaluateQuadratic(p0, p1, p2, t).Sub(p).Length())
	}
	return best
}

// cubicDistance returns the distance from p to a cubic Bezier, using
// Newton refinement from evenly spaced starting parameters.
func cubicDistance(p0, p1, p2, p3, p Point) float64 {
	best := min(p0.Sub(p).Length(), p3.Sub(p).Length())

	const numSamples = 8
	for i := 0; i <= numSamples; i++ {
		t := newtonRefineCubic(p0, p1, p2, p3, p, float64(i)/numSamples)
		best = min(best, evaluateCubic(p0, p1, p2, p3, t).Sub(p).Length())
	}
	return best
}

// newtonRefineCubic refines a parameter t using Newton's method.
func newtonRefineCubic(p0, p1, p2, p3, p Point, t float64) float64 {
	const maxIter = 8
	const epsilon = 1e-10

	for i := 0; i < maxIter; i++ {
		diff := evaluateCubic(p0, p1, p2, p3, t).Sub(p)
		d1 := cubicDerivative(p0, p1, p2, p3, t)
		d2 := cubicSecondDerivative(p0, p1, p2, p3, t)

		f := diff.Dot(d1)
		fp := d1.Dot(d1) + diff.Dot(d2)
		if math.Abs(fp) < epsilon {
			break
		}

		dt := -f / fp
		if math.Abs(dt) < epsilon {
			break
		}
		t = max(0, min(1, t+dt))
	}
	return t
}

// solveCubic returns the real roots in [0, 1] of a*x^3 + b*x^2 + c*x + d.
func solveCubic(a, b, c, d float64) []float64 {
	if math.Abs(a) < 1e-14 {
		return solveQuadratic(b, c, d)
	}

	b /= a
	c /= a
	d /= a

	// Depressed cubic t^3 + p*t + q.
	p := c - b*b/3
	q := d - b*c/3 + 2*b*b*b/27
	disc := q*q/4 + p*p*p/27

	var roots []float64
	switch {
	case disc > 1e-14:
		sq := math.Sqrt(disc)
		roots = append(roots, math.Cbrt(-q/2+sq)+math.Cbrt(-q/2-sq)-b/3)
	case disc < -1e-14:
		r := math.Sqrt(-p * p * p / 27)
		phi := math.Acos(max(-1, min(1, -q/(2*r))))
		m := 2 * math.Cbrt(r)
		for k := 0; k < 3; k++ {
			roots = append(roots, m*math.Cos((phi+float64(2*k)*math.Pi)/3)-b/3)
		}
	default:
		u := math.Cbrt(-q / 2)
		roots = append(roots, 2*u-b/3, -u-b/3)
	}
	return inUnitInterval(roots)
}

// solveQuadratic returns the real roots in [0, 1] of a*x^2 + b*x + c.
func solveQuadratic(a, b, c float64) []float64 {
	if math.Abs(a) < 1e-14 {
		if math.Abs(b) < 1e-14 {
			return nil
		}
		return inUnitInterval([]float64{-c / b})
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	return inUnitInterval([]float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)})
}

func inUnitInterval(roots []float64) []float64 {
	out := roots[:0]
	for _, r := range roots {
		if r >= 0 && r <= 1 {
			out = append(out, r)
		}
	}
	return out
}

// linearBounds returns the bounding box of a line segment.
func linearBounds(a, b Point) Rect {
	return Rect{
		MinX: min(a.X, b.X),
		MinY: min(a.Y, b.Y),
		MaxX: max(a.X, b.X),
		MaxY: max(a.Y, b.Y),
	}
}

// quadraticBounds returns the bounding box of a quadratic Bezier.
func quadraticBounds(p0, p1, p2 Point) Rect {
	bounds := linearBounds(p0, p2)

	// B'(t) = 0 at t = (p0-p1)/(p0-2*p1+p2), per axis.
	if dx := p0.X - 2*p1.X + p2.X; math.Abs(dx) > 1e-10 {
		if t := (p0.X - p1.X) / dx; t > 0 && t < 1 {
			x := evaluateQuadratic(p0, p1, p2, t).X
			bounds.MinX = min(bounds.MinX, x)
			bounds.MaxX = max(bounds.MaxX, x)
		}
	}
	if dy := p0.Y - 2*p1.Y + p2.Y; math.Abs(dy) > 1e-10 {
		if t := (p0.Y - p1.Y) / dy; t > 0 && t < 1 {
			y := evaluateQuadratic(p0, p1, p2, t).Y
			bounds.MinY = min(bounds.MinY, y)
			bounds.MaxY = max(bounds.MaxY, y)
		}
	}
	return bounds
}

// cubicBounds returns the bounding box of a cubic Bezier.
func cubicBounds(p0, p1, p2, p3 Point) Rect {
	bounds := linearBounds(p0, p3)

	ax := -p0.X + 3*p1.X - 3*p2.X + p3.X
	bx := 2*p0.X - 4*p1.X + 2*p2.X
	cx := -p0.X + p1.X
	for _, t := range solveQuadratic(ax, bx, cx) {
		x := evaluateCubic(p0, p1, p2, p3, t).X
		bounds.MinX = min(bounds.MinX, x)
		bounds.MaxX = max(bounds.MaxX, x)
	}

	ay := -p0.Y + 3*p1.Y - 3*p2.Y + p3.Y
	by := 2*p0.Y - 4*p1.Y + 2*p2.Y
	cy := -p0.Y + p1.Y
	for _, t := range solveQuadratic(ay, by, cy) {
		y := evaluateCubic(p0, p1, p2, p3, t).Y
		bounds.MinY = min(bounds.MinY, y)
		bounds.MaxY = max(bounds.MaxY, y)
	}
	return bounds
}
