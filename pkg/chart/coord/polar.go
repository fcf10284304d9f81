package coord

import "math"

// Default polar angles: a full circle starting at twelve o'clock.
const (
	DefaultStartAngle = -math.Pi / 2
	DefaultEndAngle   = 3 * math.Pi / 2
)

// PolarConfig configures a polar coordinate. Radius and InnerRadius are
// ratios of the largest radius that fits the box; a zero Radius means 1.
type PolarConfig struct {
	StartAngle  *float64
	EndAngle    *float64
	Radius      float64
	InnerRadius float64
}

// Polar maps unit x onto an angle and unit y onto a radius.
type Polar struct {
	base
	cfg        PolarConfig
	startAngle float64
	endAngle   float64
	center     Point
	radius     float64
}

// NewPolar builds a polar coordinate of type polar or theta over the pixel
// box [start, end]. A theta coordinate is a polar one whose caller adds a
// transpose; see [Controller.Create].
func NewPolar(typ Type, start, end Point, cfg PolarConfig) *Polar {
	if typ != TypeTheta {
		typ = TypePolar
	}
	p := &Polar{base: newBase(typ, start, end), cfg: cfg}
	p.init()
	return p
}

func (p *Polar) init() {
	p.startAngle, p.endAngle = DefaultStartAngle, DefaultEndAngle
	if p.cfg.StartAngle != nil {
		p.startAngle = *p.cfg.StartAngle
	}
	if p.cfg.EndAngle != nil {
		p.endAngle = *p.cfg.EndAngle
	}
	ratio := p.cfg.Radius
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}

	minX, maxX, minY, maxY := arcBox(p.startAngle, p.endAngle)
	w, h := p.Width(), p.Height()
	maxRadius := math.Min(w/(maxX-minX), h/(maxY-minY))
	mid := Point{X: (p.start.X + p.end.X) / 2, Y: (p.start.Y + p.end.Y) / 2}
	p.center = Point{
		X: mid.X - (minX+maxX)/2*maxRadius,
		Y: mid.Y - (minY+maxY)/2*maxRadius,
	}
	p.radius = maxRadius * ratio
	p.x = span{start: p.startAngle, end: p.endAngle}
	p.y = span{start: p.cfg.InnerRadius * p.radius, end: p.radius}
}

// arcBox returns the bounds of the unit circle sector between the two
// angles, the center included.
func arcBox(start, end float64) (minX, maxX, minY, maxY float64) {
	if end-start >= 2*math.Pi-1e-9 {
		return -1, 1, -1, 1
	}
	xs := []float64{0, math.Cos(start), math.Cos(end)}
	ys := []float64{0, math.Sin(start), math.Sin(end)}
	for a := math.Ceil(start/(math.Pi/2)) * (math.Pi / 2); a < end; a += math.Pi / 2 {
		xs = append(xs, math.Cos(a))
		ys = append(ys, math.Sin(a))
	}
	minX, maxX = xs[0], xs[0]
	minY, maxY = ys[0], ys[0]
	for i := range xs {
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}
	return minX, maxX, minY, maxY
}

func (p *Polar) IsPolar() bool        { return true }
func (p *Polar) Center() Point        { return p.center }
func (p *Polar) StartAngle() float64  { return p.startAngle }
func (p *Polar) EndAngle() float64    { return p.endAngle }
func (p *Polar) Radius() float64      { return p.radius }
func (p *Polar) InnerRadius() float64 { return p.y.start }
func (p *Polar) Config() PolarConfig  { return p.cfg }

func (p *Polar) Update(start, end Point) {
	p.start, p.end = start, end
	p.init()
}

func (p *Polar) Convert(pt Point) Point {
	u := p.unitIn(pt)
	angle := p.x.convert(u.X)
	r := p.y.convert(u.Y)
	sin, cos := math.Sincos(angle)
	return p.matrix.Apply(Point{X: p.center.X + cos*r, Y: p.center.Y + sin*r})
}

func (p *Polar) Invert(pt Point) Point {
	q := p.matrix.Invert().Apply(pt)
	dx, dy := q.X-p.center.X, q.Y-p.center.Y
	r := math.Hypot(dx, dy)
	angle := math.Atan2(dy, dx)
	for angle < p.startAngle {
		angle += 2 * math.Pi
	}
	for angle > p.startAngle+2*math.Pi {
		angle -= 2 * math.Pi
	}
	return p.unitOut(Point{X: p.x.invert(angle), Y: p.y.invert(r)})
}

func (p *Polar) Rotate(angle float64) {
	p.matrix = p.matrix.About(p.center, RotateMatrix(angle))
}

func (p *Polar) Scale(sx, sy float64) {
	p.matrix = p.matrix.About(p.center, ScaleMatrix(sx, sy))
}
