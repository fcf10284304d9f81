package coord

// Rect is a Cartesian coordinate. Unit x grows left to right and unit y
// bottom to top.
type Rect struct {
	base
}

// NewRect builds a rectangular coordinate over the pixel box [start, end].
func NewRect(start, end Point) *Rect {
	r := &Rect{base: newBase(TypeRect, start, end)}
	r.init()
	return r
}

func (r *Rect) init() {
	r.x = span{start: r.start.X, end: r.end.X}
	r.y = span{start: r.start.Y, end: r.end.Y}
}

func (r *Rect) IsPolar() bool { return false }

func (r *Rect) Center() Point {
	return Point{X: (r.start.X + r.end.X) / 2, Y: (r.start.Y + r.end.Y) / 2}
}

func (r *Rect) Update(start, end Point) {
	r.start, r.end = start, end
	r.init()
}

func (r *Rect) Convert(p Point) Point {
	u := r.unitIn(p)
	return r.matrix.Apply(Point{X: r.x.convert(u.X), Y: r.y.convert(u.Y)})
}

func (r *Rect) Invert(p Point) Point {
	q := r.matrix.Invert().Apply(p)
	return r.unitOut(Point{X: r.x.invert(q.X), Y: r.y.invert(q.Y)})
}

func (r *Rect) Rotate(angle float64) {
	r.matrix = r.matrix.About(r.Center(), RotateMatrix(angle))
}

func (r *Rect) Scale(sx, sy float64) {
	r.matrix = r.matrix.About(r.Center(), ScaleMatrix(sx, sy))
}
