package coord

import "math"

// Type names a coordinate system.
type Type string

const (
	TypeRect  Type = "rect"
	TypePolar Type = "polar"
	TypeTheta Type = "theta"
)

// Dimension names a unit axis.
type Dimension string

const (
	DimX Dimension = "x"
	DimY Dimension = "y"
)

// Coordinate maps unit-space points onto a pixel box.
type Coordinate interface {
	Type() Type
	IsPolar() bool
	IsTransposed() bool
	IsReflect(dim Dimension) bool

	// Start is the bottom-left pixel corner, End the top-right one.
	Start() Point
	End() Point
	Center() Point
	Width() float64
	Height() float64

	// Convert maps a unit point to pixels; Invert is its inverse.
	Convert(p Point) Point
	Invert(p Point) Point

	// Update moves the coordinate onto a new pixel box.
	Update(start, end Point)
	ResetMatrix()
	Matrix() Matrix

	Transpose()
	Reflect(dim Dimension)
	Rotate(angle float64)
	Scale(sx, sy float64)
	Translate(tx, ty float64)
}

// span is the pixel or angular range a unit axis maps onto.
type span struct {
	start, end float64
}

func (s span) convert(v float64) float64 { return s.start + v*(s.end-s.start) }

func (s span) invert(v float64) float64 {
	if s.end == s.start {
		return 0
	}
	return (v - s.start) / (s.end - s.start)
}

// base carries the state shared by every coordinate type.
type base struct {
	typ        Type
	start, end Point
	transposed bool
	reflectX   bool
	reflectY   bool
	matrix     Matrix
	x, y       span
}

func newBase(typ Type, start, end Point) base {
	return base{typ: typ, start: start, end: end, matrix: IdentityMatrix()}
}

func (b *base) Type() Type         { return b.typ }
func (b *base) IsTransposed() bool { return b.transposed }
func (b *base) Start() Point       { return b.start }
func (b *base) End() Point         { return b.end }
func (b *base) Width() float64     { return math.Abs(b.end.X - b.start.X) }
func (b *base) Height() float64    { return math.Abs(b.end.Y - b.start.Y) }
func (b *base) Matrix() Matrix     { return b.matrix }
func (b *base) ResetMatrix()       { b.matrix = IdentityMatrix() }
func (b *base) Transpose()         { b.transposed = !b.transposed }
func (b *base) Translate(tx, ty float64) {
	b.matrix = b.matrix.Then(TranslateMatrix(tx, ty))
}

func (b *base) IsReflect(dim Dimension) bool {
	if dim == DimX {
		return b.reflectX
	}
	return b.reflectY
}

func (b *base) Reflect(dim Dimension) {
	if dim == DimX {
		b.reflectX = !b.reflectX
		return
	}
	b.reflectY = !b.reflectY
}

// unitIn prepares a unit point for the type-specific mapping: swap the axes
// when transposed, then mirror reflected axes.
func (b *base) unitIn(p Point) Point {
	if b.transposed {
		p.X, p.Y = p.Y, p.X
	}
	if b.reflectX {
		p.X = 1 - p.X
	}
	if b.reflectY {
		p.Y = 1 - p.Y
	}
	return p
}

// unitOut undoes unitIn.
func (b *base) unitOut(p Point) Point {
	if b.reflectX {
		p.X = 1 - p.X
	}
	if b.reflectY {
		p.Y = 1 - p.Y
	}
	if b.transposed {
		p.X, p.Y = p.Y, p.X
	}
	return p
}
