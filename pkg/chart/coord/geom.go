package coord

import "math"

// Point is a 2D point, in pixels or in unit space depending on context.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// BBox is an axis-aligned pixel rectangle with its origin at the top-left.
type BBox struct {
	X, Y          float64
	Width, Height float64
}

// NewBBox returns the box spanning the two corners in any order.
func NewBBox(a, b Point) BBox {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return BBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func (b BBox) MinX() float64 { return b.X }
func (b BBox) MaxX() float64 { return b.X + b.Width }
func (b BBox) MinY() float64 { return b.Y }
func (b BBox) MaxY() float64 { return b.Y + b.Height }

// BottomLeft is the start corner used by coordinates.
func (b BBox) BottomLeft() Point { return Point{X: b.X, Y: b.Y + b.Height} }

// TopRight is the end corner used by coordinates.
func (b BBox) TopRight() Point { return Point{X: b.X + b.Width, Y: b.Y} }

// Center returns the midpoint of the box.
func (b BBox) Center() Point { return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2} }

// IsEmpty reports whether the box has no area.
func (b BBox) IsEmpty() bool { return b.Width <= 0 || b.Height <= 0 }

// Contains reports whether p lies inside b, borders included.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.MinX() && p.X <= b.MaxX() && p.Y >= b.MinY() && p.Y <= b.MaxY()
}

// Union returns the smallest box containing both b and o. Empty boxes are
// ignored.
func (b BBox) Union(o BBox) BBox {
	if b.Width == 0 && b.Height == 0 {
		return o
	}
	if o.Width == 0 && o.Height == 0 {
		return b
	}
	return NewBBox(
		Point{X: math.Min(b.MinX(), o.MinX()), Y: math.Min(b.MinY(), o.MinY())},
		Point{X: math.Max(b.MaxX(), o.MaxX()), Y: math.Max(b.MaxY(), o.MaxY())},
	)
}

// Shrink insets the box by the given edge amounts, never below zero size.
func (b BBox) Shrink(top, right, bottom, left float64) BBox {
	r := BBox{
		X:      b.X + left,
		Y:      b.Y + top,
		Width:  b.Width - left - right,
		Height: b.Height - top - bottom,
	}
	r.Width = math.Max(r.Width, 0)
	r.Height = math.Max(r.Height, 0)
	return r
}

// Region returns the sub-box covering the fractional region [start, end] of
// b, both corners given in [0,1] relative to b's top-left.
func (b BBox) Region(start, end Point) BBox {
	return NewBBox(
		Point{X: b.X + b.Width*start.X, Y: b.Y + b.Height*start.Y},
		Point{X: b.X + b.Width*end.X, Y: b.Y + b.Height*end.Y},
	)
}
