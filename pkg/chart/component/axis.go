package component

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/theme"
)

// arcSamples is the number of segments used for curved axis lines and
// polar grid lines.
const arcSamples = 64

// Axis draws an axis for the x scale and up to two y scales of a view.
// Identity scales get no axis.
type Axis struct {
	base
	axes []*axisState
}

type axisState struct {
	scale    *scale.Scale
	dim      coord.Dimension
	position string
	opt      view.AxisOption
	comp     int
}

// NewAxis returns the axis controller of v.
func NewAxis(v *view.View) *Axis {
	return &Axis{base: base{view: v}}
}

func (a *Axis) Name() string { return NameAxis }

// Init creates one component per axis and sizes it.
func (a *Axis) Init() {
	a.Clear()
	a.axes = nil
	opts := a.view.Options()
	c := a.view.GetCoordinate()
	if opts.DisableAxes || c == nil {
		return
	}
	t := a.view.Theme()
	xs := a.view.GetXScale()
	if xs != nil {
		a.addAxis(xs, coord.DimX, 0, opts, c, t)
	}
	n := 0
	for _, ys := range a.view.GetYScales() {
		if ys == xs || n > 1 {
			continue
		}
		a.addAxis(ys, coord.DimY, n, opts, c, t)
		n++
	}
}

func (a *Axis) Update() { a.Init() }

func (a *Axis) addAxis(s *scale.Scale, dim coord.Dimension, index int, opts view.Options, c coord.Coordinate, t *theme.Theme) {
	opt := opts.Axes[s.Field]
	if opt.Disabled || s.IsIdentity() {
		return
	}
	st := &axisState{scale: s, dim: dim, position: opt.Position, opt: opt, comp: len(a.components)}
	if st.position == "" {
		st.position = defaultAxisPosition(dim, index, c.IsTransposed())
	}
	comp := view.Component{
		ID:    a.view.ID() + "-axis-" + s.Field,
		Type:  NameAxis,
		Group: a.view.BackgroundGroup().AddGroup("axis-" + s.Field),
	}
	if !c.IsPolar() {
		comp.Direction = view.Direction(st.position)
		size := st.size(t)
		if st.horizontal() {
			comp.BBox.Height = size
		} else {
			comp.BBox.Width = size
		}
	}
	a.axes = append(a.axes, st)
	a.add(comp)
}

func defaultAxisPosition(dim coord.Dimension, index int, transposed bool) string {
	switch {
	case dim == coord.DimX && transposed:
		return view.PositionLeft
	case dim == coord.DimX:
		return view.PositionBottom
	case index == 0 && transposed:
		return view.PositionBottom
	case index == 0:
		return view.PositionLeft
	case transposed:
		return view.PositionTop
	}
	return view.PositionRight
}

func (st *axisState) horizontal() bool {
	return st.position == view.PositionTop || st.position == view.PositionBottom
}

// size is the depth of the axis across its line: ticks, labels and title.
func (st *axisState) size(t *theme.Theme) float64 {
	s := t.Axis.TickLength
	if !st.opt.HideLabel {
		s += t.Axis.LabelGap
		if st.horizontal() {
			s += t.Axis.LabelSize
		} else {
			s += st.maxLabelWidth(t)
		}
	}
	if st.opt.Title != "" {
		s += t.Axis.LabelGap + t.Axis.TitleSize
	}
	return s
}

func (st *axisState) maxLabelWidth(t *theme.Theme) float64 {
	w := 0.0
	for _, tk := range st.scale.GetTicks() {
		tw, _ := surface.TextSize(tk.Text, t.Axis.LabelSize)
		w = math.Max(w, tw)
	}
	return w
}

// Layout docks every rect axis to its side of the coordinate box.
func (a *Axis) Layout() {
	cb := a.view.CoordinateBBox()
	for _, st := range a.axes {
		comp := &a.components[st.comp]
		w, h := comp.BBox.Width, comp.BBox.Height
		switch comp.Direction {
		case view.DirectionBottom:
			comp.BBox = coord.BBox{X: cb.X, Y: cb.MaxY(), Width: cb.Width, Height: h}
		case view.DirectionTop:
			comp.BBox = coord.BBox{X: cb.X, Y: cb.Y - h, Width: cb.Width, Height: h}
		case view.DirectionLeft:
			comp.BBox = coord.BBox{X: cb.X - w, Y: cb.Y, Width: w, Height: cb.Height}
		case view.DirectionRight:
			comp.BBox = coord.BBox{X: cb.MaxX(), Y: cb.Y, Width: w, Height: cb.Height}
		default:
			comp.BBox = cb
		}
	}
}

// Render draws grid lines, axis lines, ticks, labels and titles.
func (a *Axis) Render() {
	c := a.view.GetCoordinate()
	if c == nil {
		return
	}
	t := a.view.Theme()
	for _, st := range a.axes {
		g := a.components[st.comp].Group
		g.Clear()
		st.draw(g, c, t)
	}
}

func (st *axisState) draw(g *surface.Group, c coord.Coordinate, t *theme.Theme) {
	style := t.Axis
	circular := c.IsPolar() && (st.dim == coord.DimX) != c.IsTransposed()
	edge := st.edge(c, circular)
	ticks := st.scale.GetTicks()

	if st.showGrid() {
		grid := g.AddGroup("axis-grid")
		for _, tk := range ticks {
			if math.IsNaN(tk.Value) {
				continue
			}
			pts := sample(c, func(u float64) coord.Point { return at(c, st.dim, tk.Value, u) })
			grid.AddShape(surface.NewPolyline(pts, surface.Attrs{Stroke: style.GridColor, LineWidth: 1}).Named("axis-grid-line"))
		}
	}

	line := sample(c, func(u float64) coord.Point { return at(c, st.dim, u, edge) })
	g.AddShape(surface.NewPolyline(line, surface.Attrs{Stroke: style.LineColor, LineWidth: 1}).Named("axis-line"))

	for _, tk := range ticks {
		if math.IsNaN(tk.Value) {
			continue
		}
		p := at(c, st.dim, tk.Value, edge)
		n := st.normal(c, p, circular)
		end := coord.Point{X: p.X + n.X*style.TickLength, Y: p.Y + n.Y*style.TickLength}
		g.AddShape(surface.NewLine(p, end, surface.Attrs{Stroke: style.LineColor, LineWidth: 1}).Named("axis-tick"))
		if st.opt.HideLabel {
			continue
		}
		d := style.TickLength + style.LabelGap
		anchor, baseline := labelAlign(n)
		label := surface.NewText(p.X+n.X*d, p.Y+n.Y*d, tk.Text, surface.Attrs{
			Fill:         style.LabelColor,
			FontSize:     style.LabelSize,
			FontFamily:   t.FontFamily,
			TextAnchor:   anchor,
			TextBaseline: baseline,
		})
		g.AddShape(label.Named("axis-label", "axis").WithOrigin(tk))
	}

	if st.opt.Title != "" {
		st.drawTitle(g, c, t, edge, circular)
	}
}

func (st *axisState) drawTitle(g *surface.Group, c coord.Coordinate, t *theme.Theme, edge float64, circular bool) {
	style := t.Axis
	mid := at(c, st.dim, 0.5, edge)
	n := st.normal(c, mid, circular)
	d := style.TickLength + style.LabelGap*2
	if !st.opt.HideLabel {
		if st.horizontal() {
			d += style.LabelSize
		} else {
			d += st.maxLabelWidth(t)
		}
	}
	anchor, baseline := labelAlign(n)
	title := surface.NewText(mid.X+n.X*d, mid.Y+n.Y*d, st.opt.Title, surface.Attrs{
		Fill:         style.TitleColor,
		FontSize:     style.TitleSize,
		FontFamily:   t.FontFamily,
		FontWeight:   "bold",
		TextAnchor:   anchor,
		TextBaseline: baseline,
	})
	g.AddShape(title.Named("axis-title", "axis"))
}

// showGrid defaults to grid lines on y axes only.
func (st *axisState) showGrid() bool {
	if st.opt.Grid != nil {
		return *st.opt.Grid
	}
	return st.dim == coord.DimY
}

// edge is the unit value of the other dimension the axis line sits on.
func (st *axisState) edge(c coord.Coordinate, circular bool) float64 {
	switch {
	case circular:
		return 1
	case c.IsPolar():
		return 0
	case st.position == view.PositionTop || st.position == view.PositionRight:
		return 1
	}
	return 0
}

// normal is the outward unit direction ticks and labels extend in.
func (st *axisState) normal(c coord.Coordinate, p coord.Point, circular bool) coord.Point {
	if circular {
		center := c.Center()
		d := p.Distance(center)
		if d == 0 {
			return coord.Point{X: 0, Y: -1}
		}
		return coord.Point{X: (p.X - center.X) / d, Y: (p.Y - center.Y) / d}
	}
	switch st.position {
	case view.PositionTop:
		return coord.Point{X: 0, Y: -1}
	case view.PositionLeft:
		return coord.Point{X: -1, Y: 0}
	case view.PositionRight:
		return coord.Point{X: 1, Y: 0}
	}
	return coord.Point{X: 0, Y: 1}
}

func labelAlign(n coord.Point) (anchor, baseline string) {
	switch {
	case n.X > 0.3:
		return "start", "middle"
	case n.X < -0.3:
		return "end", "middle"
	case n.Y < 0:
		return "middle", "bottom"
	}
	return "middle", "top"
}

// at returns the pixel position of unit value v along dim, with the other
// dimension at unit value other.
func at(c coord.Coordinate, dim coord.Dimension, v, other float64) coord.Point {
	if dim == coord.DimX {
		return c.Convert(coord.Point{X: v, Y: other})
	}
	return c.Convert(coord.Point{X: other, Y: v})
}

// sample evaluates f over [0, 1]: the two end points in rect coordinates,
// arcSamples segments in polar ones.
func sample(c coord.Coordinate, f func(u float64) coord.Point) []coord.Point {
	n := 1
	if c.IsPolar() {
		n = arcSamples
	}
	pts := make([]coord.Point, n+1)
	for i := range pts {
		pts[i] = f(float64(i) / float64(n))
	}
	return pts
}
