package geometry

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/theme"
)

type drawFunc func(b *Base, group []*Record) []*Element

// Base implements the life cycle shared by all geometries. Concrete kinds
// embed it and provide the function that draws one group.
type Base struct {
	kind   string
	opts   Options
	xField string
	yField string
	draw   drawFunc

	cfg       Config
	coord     coord.Coordinate
	dataArray [][]*Record
	elements  []*Element
	hidden    bool
	animate   bool
}

func newBase(kind string, opts Options, draw drawFunc) Base {
	x, y := opts.fields()
	return Base{kind: kind, opts: opts, xField: x, yField: y, draw: draw, animate: true}
}

func (b *Base) Type() string                 { return b.kind }
func (b *Base) Options() Options             { return b.opts }
func (b *Base) XField() string               { return b.xField }
func (b *Base) YField() string               { return b.yField }
func (b *Base) Visible() bool                { return !b.hidden }
func (b *Base) Animate() bool                { return b.animate }
func (b *Base) SetAnimate(on bool)           { b.animate = on }
func (b *Base) DataArray() [][]*Record       { return b.dataArray }
func (b *Base) Elements() []*Element         { return b.elements }
func (b *Base) Container() *surface.Group    { return b.cfg.Container }
func (b *Base) Coordinate() coord.Coordinate { return b.coord }

func (b *Base) XScale() *scale.Scale { return b.cfg.Scales[b.xField] }

func (b *Base) YScale() *scale.Scale {
	if b.yField == "" {
		return nil
	}
	return b.cfg.Scales[b.yField]
}

func (b *Base) colorScale() *scale.Scale {
	if b.opts.Color == "" {
		return nil
	}
	return b.cfg.Scales[b.opts.Color]
}

// ScaleFields lists the fields the geometry needs scales for.
func (b *Base) ScaleFields() []string {
	fields := []string{b.xField}
	if b.yField != "" {
		fields = append(fields, b.yField)
	}
	if c := b.opts.Color; c != "" && c != b.xField && c != b.yField {
		fields = append(fields, c)
	}
	return fields
}

// GroupFields lists the fields records are grouped by. Their scales are
// built from unfiltered data so filtering never drops a category.
func (b *Base) GroupFields() []string {
	if b.opts.Color == "" {
		return nil
	}
	return []string{b.opts.Color}
}

// Init groups and adjusts cfg.Data and widens the shared y scale for
// stacked and interval geometries.
func (b *Base) Init(cfg Config) {
	b.cfg = cfg
	b.coord = cfg.Coordinate
	b.processData()
	b.adjustScale()
}

// Update re-initializes the geometry with new data, scales or coordinate.
func (b *Base) Update(cfg Config) { b.Init(cfg) }

func (b *Base) SetCoordinate(c coord.Coordinate) { b.coord = c }

func (b *Base) processData() {
	var fields []string
	if cs := b.colorScale(); cs != nil && cs.IsCategory() {
		fields = []string{b.opts.Color}
	}
	groups := data.GroupBy(b.cfg.Data, fields...)
	b.dataArray = make([][]*Record, 0, len(groups))
	for _, rows := range groups {
		if len(rows) == 0 {
			continue
		}
		gi := len(b.dataArray)
		recs := make([]*Record, len(rows))
		for i, row := range rows {
			y, ok := data.ToFloat(row[b.yField])
			if !ok {
				y = math.NaN()
			}
			recs[i] = &Record{Origin: row, Group: gi, YStart: math.NaN(), YEnd: y}
		}
		b.dataArray = append(b.dataArray, recs)
	}
	if b.opts.has(AdjustStack) {
		stack(b.dataArray, b.xField)
	}
}

func (b *Base) adjustScale() {
	ys := b.YScale()
	if ys == nil || !ys.IsContinuous() {
		return
	}
	user := b.cfg.ScaleDefs[b.yField]
	var upd scale.Def
	switch {
	case b.opts.has(AdjustStack):
		lo, hi, ok := stackedExtent(b.dataArray)
		if !ok {
			return
		}
		if user.Min == nil {
			upd.Min = scale.Float(lo)
		}
		if user.Max == nil {
			upd.Max = scale.Float(hi)
		}
	case b.kind == KindInterval && user.Min == nil && ys.Min > 0:
		upd.Min = scale.Float(0)
	}
	if upd.Min != nil || upd.Max != nil {
		ys.Update(upd)
	}
}

// Paint maps every record and redraws the container. Shapes fade in on
// first paint when animation is on.
func (b *Base) Paint(isUpdate bool) {
	g := b.cfg.Container
	if g == nil || b.coord == nil {
		return
	}
	g.Clear()
	b.elements = nil
	b.mapData()
	for _, group := range b.dataArray {
		if len(group) == 0 {
			continue
		}
		b.elements = append(b.elements, b.draw(b, group)...)
	}
	g.SetVisible(!b.hidden)
	g.Animate = b.animate && !isUpdate
}

// Clear removes shapes and records.
func (b *Base) Clear() {
	if b.cfg.Container != nil {
		b.cfg.Container.Clear()
	}
	b.elements = nil
	b.dataArray = nil
}

// Destroy clears the geometry and detaches its container.
func (b *Base) Destroy() {
	b.Clear()
	if b.cfg.Container != nil {
		b.cfg.Container.Destroy()
	}
}

// ChangeVisible shows or hides every shape of the geometry.
func (b *Base) ChangeVisible(visible bool) {
	b.hidden = !visible
	if b.cfg.Container != nil {
		b.cfg.Container.SetVisible(visible)
	}
}

func (b *Base) theme() *theme.Theme {
	if b.cfg.Theme != nil {
		return b.cfg.Theme
	}
	return theme.Light()
}

func (b *Base) mapData() {
	xs, ys := b.XScale(), b.YScale()
	size := b.intervalSize()
	groups := len(b.dataArray)
	dodge := b.opts.has(AdjustDodge) && groups > 1

	base := math.NaN()
	if ys != nil {
		base = ys.Map(yBase(ys))
	}
	for _, group := range b.dataArray {
		for _, r := range group {
			r.Color = b.color(r.Origin)
			r.X = 0.5
			if xs != nil {
				r.X = xs.Map(r.Origin[b.xField])
			}
			r.Size = size
			if dodge {
				r.Size = size / float64(groups)
				r.X += (float64(r.Group)+0.5)*r.Size - size/2
			}
			switch {
			case ys == nil:
				r.Y, r.Y0 = 0.5, 0
			case !math.IsNaN(r.YStart):
				r.Y, r.Y0 = ys.Map(r.YEnd), ys.Map(r.YStart)
			default:
				r.Y, r.Y0 = ys.Map(r.Origin[b.yField]), base
			}
			if math.IsNaN(r.X) || math.IsNaN(r.Y) {
				r.Point = coord.Point{X: math.NaN(), Y: math.NaN()}
				continue
			}
			r.Point = b.coord.Convert(coord.Point{X: r.X, Y: r.Y})
		}
	}
}

// yBase is the value bars and areas grow from: zero when the domain
// crosses it, otherwise the domain bound closest to zero.
func yBase(ys *scale.Scale) float64 {
	if !ys.IsContinuous() {
		return 0
	}
	switch {
	case ys.Min >= 0:
		return ys.Min
	case ys.Max <= 0:
		return ys.Max
	}
	return 0
}

func (b *Base) color(row data.Datum) string {
	t := b.theme()
	if b.opts.Style.Fill != "" {
		return b.opts.Style.Fill
	}
	cs := b.colorScale()
	if cs == nil {
		return t.DefaultColor
	}
	v := row[b.opts.Color]
	if cs.IsCategory() {
		i := cs.Translate(v)
		if math.IsNaN(i) {
			return t.DefaultColor
		}
		return t.Color(int(i))
	}
	f := cs.Map(v)
	if math.IsNaN(f) || len(t.Colors) == 0 {
		return t.DefaultColor
	}
	return t.Color(int(math.Round(f * float64(len(t.Colors)-1))))
}

// intervalSize is the unit width of one bar: the band of a category times
// the theme's width ratio, clamped by the pixel column limits.
func (b *Base) intervalSize() float64 {
	if b.kind != KindInterval {
		return 0
	}
	t := b.theme()
	count := 1
	if xs := b.XScale(); xs != nil {
		if xs.IsCategory() || xs.IsIdentity() {
			count = len(xs.Values)
		} else {
			count = len(data.Values(b.cfg.Data, b.xField))
		}
	}
	count = max(count, 1)

	ratio := t.ColumnWidth
	if b.coord != nil && b.coord.IsPolar() {
		ratio = t.RoseWidth
		if b.coord.IsTransposed() && count > 1 {
			ratio = t.MultiplePieWidth
		}
	}
	size := ratio / float64(count)
	if b.coord != nil {
		if dim := coord.XDimensionLength(b.coord); dim > 0 {
			if t.MaxColumnWidth > 0 {
				size = math.Min(size, t.MaxColumnWidth/dim)
			}
			if t.MinColumnWidth > 0 {
				size = math.Max(size, t.MinColumnWidth/dim)
			}
		}
	}
	return size
}

// attrs applies the style overrides of the options to a. Fill always
// comes from the color mapping.
func (b *Base) attrs(a surface.Attrs) surface.Attrs {
	o := b.opts.Style
	o.Fill = ""
	return a.Merge(o)
}

// addElement names s after the geometry kind and adds it to the container.
func (b *Base) addElement(s *surface.Shape, recs ...*Record) *Element {
	var origin any
	if len(recs) == 1 {
		origin = recs[0].Origin
	} else {
		rows := make([]data.Datum, len(recs))
		for i, r := range recs {
			rows[i] = r.Origin
		}
		origin = rows
	}
	s.Named(b.kind, "element").WithOrigin(origin)
	b.cfg.Container.AddShape(s)
	return &Element{
		Shape:   s,
		Records: recs,
		kind:    b.kind,
		base:    s.Attrs,
		theme:   themeColors{activeStroke: b.theme().Geometry.ActiveStroke},
	}
}

// project converts unit points to pixels. Under polar coordinates the
// edges between points are sampled so straight unit edges become arcs.
func (b *Base) project(unit []coord.Point, closed bool) []coord.Point {
	if !b.coord.IsPolar() {
		out := make([]coord.Point, len(unit))
		for i, p := range unit {
			out[i] = b.coord.Convert(p)
		}
		return out
	}
	var out []coord.Point
	n := len(unit)
	edges := n - 1
	if closed {
		edges = n
	}
	for i := 0; i < edges; i++ {
		a, c := unit[i], unit[(i+1)%n]
		steps := max(1, int(math.Ceil(a.Distance(c)*arcSamples)))
		for k := 0; k < steps; k++ {
			t := float64(k) / float64(steps)
			out = append(out, b.coord.Convert(coord.Point{X: a.X + (c.X-a.X)*t, Y: a.Y + (c.Y-a.Y)*t}))
		}
	}
	if !closed && n > 0 {
		out = append(out, b.coord.Convert(unit[n-1]))
	}
	return out
}

// arcSamples is the number of polygon vertices per unit of edge length
// used to approximate arcs.
const arcSamples = 64
