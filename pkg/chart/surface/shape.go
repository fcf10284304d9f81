package surface

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
)

// Kind is the primitive type of a shape.
type Kind string

const (
	KindRect     Kind = "rect"
	KindCircle   Kind = "circle"
	KindLine     Kind = "line"
	KindPolyline Kind = "polyline"
	KindPolygon  Kind = "polygon"
	KindText     Kind = "text"
)

// Attrs are the paint attributes of a shape. Empty colors mean none.
type Attrs struct {
	Fill        string
	Stroke      string
	LineWidth   float64
	Opacity     float64
	FillOpacity float64
	Dash        []float64

	FontSize     float64
	FontFamily   string
	FontWeight   string
	TextAnchor   string // start, middle, end
	TextBaseline string // top, middle, bottom
}

// Merge returns a with every set field of o applied over it.
func (a Attrs) Merge(o Attrs) Attrs {
	if o.Fill != "" {
		a.Fill = o.Fill
	}
	if o.Stroke != "" {
		a.Stroke = o.Stroke
	}
	if o.LineWidth > 0 {
		a.LineWidth = o.LineWidth
	}
	if o.Opacity > 0 {
		a.Opacity = o.Opacity
	}
	if o.FillOpacity > 0 {
		a.FillOpacity = o.FillOpacity
	}
	if o.Dash != nil {
		a.Dash = o.Dash
	}
	if o.FontSize > 0 {
		a.FontSize = o.FontSize
	}
	if o.FontFamily != "" {
		a.FontFamily = o.FontFamily
	}
	if o.FontWeight != "" {
		a.FontWeight = o.FontWeight
	}
	if o.TextAnchor != "" {
		a.TextAnchor = o.TextAnchor
	}
	if o.TextBaseline != "" {
		a.TextBaseline = o.TextBaseline
	}
	return a
}

// Element is a node of the scene: a *Group or a *Shape.
type Element interface {
	Parent() *Group
	BBox() coord.BBox
	IsHit(p coord.Point) bool
	IsVisible() bool
	SetVisible(v bool)
	Remove()
	setParent(g *Group)
}

// Shape is a drawable primitive.
//
// Rect uses X, Y, Width and Height; Circle uses X, Y as its center and R;
// Line, Polyline and Polygon use Points; Text draws Text at X, Y.
type Shape struct {
	Kind   Kind
	Name   string
	Attrs  Attrs
	X, Y   float64
	Width  float64
	Height float64
	R      float64
	Points []coord.Point
	Text   string

	// InheritNames are group names the shape also answers to in delegate
	// events, e.g. "legend-item" for a legend marker.
	InheritNames []string
	// Origin is the datum or item the shape was drawn for.
	Origin any

	hidden bool
	parent *Group
}

func NewRect(x, y, w, h float64, a Attrs) *Shape {
	return &Shape{Kind: KindRect, X: x, Y: y, Width: w, Height: h, Attrs: a}
}

func NewCircle(cx, cy, r float64, a Attrs) *Shape {
	return &Shape{Kind: KindCircle, X: cx, Y: cy, R: r, Attrs: a}
}

func NewLine(from, to coord.Point, a Attrs) *Shape {
	return &Shape{Kind: KindLine, Points: []coord.Point{from, to}, Attrs: a}
}

func NewPolyline(pts []coord.Point, a Attrs) *Shape {
	return &Shape{Kind: KindPolyline, Points: pts, Attrs: a}
}

func NewPolygon(pts []coord.Point, a Attrs) *Shape {
	return &Shape{Kind: KindPolygon, Points: pts, Attrs: a}
}

func NewText(x, y float64, text string, a Attrs) *Shape {
	return &Shape{Kind: KindText, X: x, Y: y, Text: text, Attrs: a}
}

// Named sets the delegate name and inherited names of s.
func (s *Shape) Named(name string, inherit ...string) *Shape {
	s.Name = name
	s.InheritNames = inherit
	return s
}

// WithOrigin attaches the datum s represents.
func (s *Shape) WithOrigin(origin any) *Shape {
	s.Origin = origin
	return s
}

func (s *Shape) Parent() *Group     { return s.parent }
func (s *Shape) IsVisible() bool    { return !s.hidden }
func (s *Shape) SetVisible(v bool)  { s.hidden = !v }
func (s *Shape) setParent(g *Group) { s.parent = g }

// Remove detaches s from its group.
func (s *Shape) Remove() {
	if s.parent != nil {
		s.parent.removeChild(s)
	}
}

// BBox returns the bounds of s. Text bounds are estimated from the font
// size.
func (s *Shape) BBox() coord.BBox {
	switch s.Kind {
	case KindRect:
		return coord.NewBBox(coord.Point{X: s.X, Y: s.Y}, coord.Point{X: s.X + s.Width, Y: s.Y + s.Height})
	case KindCircle:
		return coord.BBox{X: s.X - s.R, Y: s.Y - s.R, Width: 2 * s.R, Height: 2 * s.R}
	case KindText:
		w, h := TextSize(s.Text, s.fontSize())
		x, y := s.X, s.Y
		switch s.Attrs.TextAnchor {
		case "middle":
			x -= w / 2
		case "end":
			x -= w
		}
		switch s.Attrs.TextBaseline {
		case "top":
		case "middle":
			y -= h / 2
		default:
			y -= h
		}
		return coord.BBox{X: x, Y: y, Width: w, Height: h}
	}
	if len(s.Points) == 0 {
		return coord.BBox{}
	}
	b := coord.NewBBox(s.Points[0], s.Points[0])
	for _, p := range s.Points[1:] {
		b = coord.NewBBox(
			coord.Point{X: math.Min(b.MinX(), p.X), Y: math.Min(b.MinY(), p.Y)},
			coord.Point{X: math.Max(b.MaxX(), p.X), Y: math.Max(b.MaxY(), p.Y)},
		)
	}
	return b
}

func (s *Shape) fontSize() float64 {
	if s.Attrs.FontSize > 0 {
		return s.Attrs.FontSize
	}
	return 12
}

// TextSize estimates the rendered size of text at the given font size.
func TextSize(text string, fontSize float64) (w, h float64) {
	n := 0
	for range text {
		n++
	}
	return float64(n) * fontSize * 0.6, fontSize
}

// hitTolerance is the pick distance around strokes, in pixels.
const hitTolerance = 3

// IsHit reports whether p picks s.
func (s *Shape) IsHit(p coord.Point) bool {
	if s.hidden {
		return false
	}
	tol := math.Max(s.Attrs.LineWidth/2, hitTolerance)
	switch s.Kind {
	case KindRect, KindText:
		return s.BBox().Contains(p)
	case KindCircle:
		return p.Distance(coord.Point{X: s.X, Y: s.Y}) <= s.R+s.Attrs.LineWidth/2
	case KindLine, KindPolyline:
		return nearPolyline(s.Points, p, tol)
	case KindPolygon:
		if len(s.Points) < 3 {
			return false
		}
		closed := append(append([]coord.Point(nil), s.Points...), s.Points[0])
		return inPolygon(s.Points, p) || nearPolyline(closed, p, s.Attrs.LineWidth/2)
	}
	return false
}

func nearPolyline(pts []coord.Point, p coord.Point, tol float64) bool {
	for i := 1; i < len(pts); i++ {
		if segmentDistance(pts[i-1], pts[i], p) <= tol {
			return true
		}
	}
	return false
}

func segmentDistance(a, b, p coord.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return p.Distance(a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Distance(coord.Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

// inPolygon is the even-odd ray casting test.
func inPolygon(pts []coord.Point, p coord.Point) bool {
	in := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}
