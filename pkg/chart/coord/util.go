package coord

import "math"

// XDimensionLength returns the pixel length of the unit x axis: the arc
// length for non-transposed polar coordinates, otherwise the distance
// between the images of (0,0) and (1,0).
func XDimensionLength(c Coordinate) float64 {
	if p, ok := c.(*Polar); ok && !p.IsTransposed() {
		return (p.endAngle - p.startAngle) * p.radius
	}
	return c.Convert(Point{X: 0, Y: 0}).Distance(c.Convert(Point{X: 1, Y: 0}))
}

// IsFullCircle reports whether c is polar and spans exactly 2π.
func IsFullCircle(c Coordinate) bool {
	p, ok := c.(*Polar)
	if !ok {
		return false
	}
	return math.Abs(p.endAngle-p.startAngle-2*math.Pi) < 1e-9
}

// DistanceToCenter returns the pixel distance from p to the center of c.
func DistanceToCenter(c Coordinate, p Point) float64 {
	return c.Center().Distance(p)
}

// PointAngle returns the angle of p around the center of c, in radians.
func PointAngle(c Coordinate, p Point) float64 {
	center := c.Center()
	return math.Atan2(p.Y-center.Y, p.X-center.X)
}

// IsPointInCoordinate reports whether the pixel point p lies inside the plot
// area of c. Theta coordinates use the bounds of their pixel corners; every
// other type inverts p and checks the unit square.
func IsPointInCoordinate(c Coordinate, p Point) bool {
	if c.Type() == TypeTheta {
		s, e := c.Start(), c.End()
		return between(p.X, s.X, e.X) && between(p.Y, s.Y, e.Y)
	}
	u := c.Invert(p)
	return between(u.X, 0, 1) && between(u.Y, 0, 1)
}

// PolarToCartesian returns the point at radius r and angle from center.
func PolarToCartesian(center Point, r, angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{X: center.X + cos*r, Y: center.Y + sin*r}
}

// BBoxOf returns the pixel box spanned by the corners of c.
func BBoxOf(c Coordinate) BBox {
	return NewBBox(c.Start(), c.End())
}

func between(v, a, b float64) bool {
	lo, hi := math.Min(a, b), math.Max(a, b)
	return v >= lo && v <= hi
}
