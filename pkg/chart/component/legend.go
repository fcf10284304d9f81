package component

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/geometry"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/theme"
)

// LegendItem is one entry of a category legend. Legend shapes carry it as
// their origin, so legend events deliver it as [view.Event.Data].
type LegendItem struct {
	Field string
	Value any
	Name  string
	Color string
	// Unchecked is set when the view's filter on Field rejects Value.
	Unchecked bool
}

// Legend draws a category legend for every color field of the view tree.
// Only the root view draws legends; its items cover the geometries of
// every descendant.
type Legend struct {
	base
	legends []*legendState
}

type legendState struct {
	field    string
	title    string
	position string
	items    []*LegendItem
	widths   []float64
	rows     [][]int
	comp     int
}

// NewLegend returns the legend controller of v.
func NewLegend(v *view.View) *Legend {
	return &Legend{base: base{view: v}}
}

func (l *Legend) Name() string { return NameLegend }

// Init collects the legend items and sizes each legend.
func (l *Legend) Init() {
	l.Clear()
	l.legends = nil
	v := l.view
	opts := v.Options()
	if v.Parent() != nil || opts.DisableLegend {
		return
	}
	t := v.Theme()
	seen := map[string]bool{}
	eachGeometry(v, func(owner *view.View, g geometry.Geometry) {
		field := g.Options().Color
		if field == "" || seen[field] {
			return
		}
		s := owner.GetScaleByField(field)
		if s == nil || !s.IsCategory() {
			return
		}
		seen[field] = true
		opt := opts.Legends[field]
		if opt.Disabled {
			return
		}
		l.addLegend(field, s, opt, t)
	})
}

func (l *Legend) Update() { l.Init() }

func eachGeometry(v *view.View, fn func(owner *view.View, g geometry.Geometry)) {
	for _, g := range v.Geometries() {
		fn(v, g)
	}
	for _, c := range v.Views() {
		eachGeometry(c, fn)
	}
}

func (l *Legend) addLegend(field string, s *scale.Scale, opt view.LegendOption, t *theme.Theme) {
	st := &legendState{field: field, title: opt.Title, position: opt.Position, comp: len(l.components)}
	if st.position == "" {
		st.position = view.PositionBottom
	}
	style := t.Legend
	for i, val := range s.Values {
		item := &LegendItem{
			Field:     field,
			Value:     val,
			Name:      s.GetText(val, -1),
			Color:     t.Color(i),
			Unchecked: l.view.IsFiltered(field, val),
		}
		w, _ := surface.TextSize(item.Name, style.TextSize)
		st.items = append(st.items, item)
		st.widths = append(st.widths, 2*style.MarkerRadius+style.MarkerRadius+w)
	}

	comp := view.Component{
		ID:        l.view.ID() + "-legend-" + field,
		Type:      NameLegend,
		Direction: view.Direction(st.position),
		Group:     l.view.ForegroundGroup().AddGroup("legend-" + field),
	}
	vb := l.view.ViewBBox()
	lines := 0
	if st.horizontal() {
		st.wrap(vb.Width-2*style.Margin, style.ItemSpacing)
		lines = len(st.rows)
		if st.title != "" {
			lines++
		}
		comp.BBox.Height = float64(lines)*st.lineHeight(t) + 2*style.Margin
	} else {
		w := 0.0
		for i := range st.items {
			st.rows = append(st.rows, []int{i})
			w = math.Max(w, st.widths[i])
		}
		if st.title != "" {
			tw, _ := surface.TextSize(st.title, style.TextSize)
			w = math.Max(w, tw)
		}
		comp.BBox.Width = w + 2*style.Margin
	}
	l.legends = append(l.legends, st)
	l.add(comp)
}

func (st *legendState) horizontal() bool {
	return st.position == view.PositionTop || st.position == view.PositionBottom
}

func (st *legendState) lineHeight(t *theme.Theme) float64 {
	return math.Max(2*t.Legend.MarkerRadius, t.Legend.TextSize) * 1.5
}

// wrap breaks the items into rows no wider than avail.
func (st *legendState) wrap(avail, spacing float64) {
	st.rows = nil
	var row []int
	x := 0.0
	for i, w := range st.widths {
		if len(row) > 0 && x+w > avail {
			st.rows = append(st.rows, row)
			row, x = nil, 0
		}
		row = append(row, i)
		x += w + spacing
	}
	if len(row) > 0 {
		st.rows = append(st.rows, row)
	}
}

// Layout docks each legend to its side of the view box, stacking legends
// that share a side.
func (l *Legend) Layout() {
	vb, cb := l.view.ViewBBox(), l.view.CoordinateBBox()
	offset := map[view.Direction]float64{}
	for _, st := range l.legends {
		comp := &l.components[st.comp]
		w, h := comp.BBox.Width, comp.BBox.Height
		off := offset[comp.Direction]
		switch comp.Direction {
		case view.DirectionTop:
			comp.BBox = coord.BBox{X: vb.X, Y: vb.Y + off, Width: vb.Width, Height: h}
			offset[comp.Direction] += h
		case view.DirectionLeft:
			comp.BBox = coord.BBox{X: vb.X + off, Y: cb.Y, Width: w, Height: cb.Height}
			offset[comp.Direction] += w
		case view.DirectionRight:
			comp.BBox = coord.BBox{X: vb.MaxX() - off - w, Y: cb.Y, Width: w, Height: cb.Height}
			offset[comp.Direction] += w
		default:
			comp.BBox = coord.BBox{X: vb.X, Y: vb.MaxY() - off - h, Width: vb.Width, Height: h}
			offset[comp.Direction] += h
		}
	}
}

// Render draws a marker and a label per item. Items whose value is
// filtered out are drawn in the unchecked color.
func (l *Legend) Render() {
	t := l.view.Theme()
	style := t.Legend
	for _, st := range l.legends {
		comp := l.components[st.comp]
		g := comp.Group
		g.Clear()
		lh := st.lineHeight(t)
		y := comp.BBox.Y + style.Margin + lh/2
		if st.title != "" {
			title := surface.NewText(comp.BBox.X+style.Margin, y, st.title, surface.Attrs{
				Fill:         style.TextColor,
				FontSize:     style.TextSize,
				FontFamily:   t.FontFamily,
				FontWeight:   "bold",
				TextBaseline: "middle",
			})
			g.AddShape(title.Named("legend-title"))
			y += lh
		}
		for _, row := range st.rows {
			x := comp.BBox.X + style.Margin
			if st.horizontal() {
				rw := 0.0
				for _, i := range row {
					rw += st.widths[i] + style.ItemSpacing
				}
				x = comp.BBox.X + (comp.BBox.Width-rw+style.ItemSpacing)/2
			}
			for _, i := range row {
				st.drawItem(g, st.items[i], x, y, t)
				x += st.widths[i] + style.ItemSpacing
			}
			y += lh
		}
	}
}

func (st *legendState) drawItem(g *surface.Group, item *LegendItem, x, y float64, t *theme.Theme) {
	style := t.Legend
	fill, text := item.Color, style.TextColor
	if item.Unchecked {
		fill, text = style.UncheckedColor, style.UncheckedColor
	}
	r := style.MarkerRadius
	marker := surface.NewCircle(x+r, y, r, surface.Attrs{Fill: fill})
	g.AddShape(marker.Named("legend-item-marker", "legend-item").WithOrigin(item))
	name := surface.NewText(x+3*r, y, item.Name, surface.Attrs{
		Fill:         text,
		FontSize:     style.TextSize,
		FontFamily:   t.FontFamily,
		TextBaseline: "middle",
	})
	g.AddShape(name.Named("legend-item-name", "legend-item").WithOrigin(item))
}

// Items returns the items of the legend for field, or nil.
func (l *Legend) Items(field string) []*LegendItem {
	for _, st := range l.legends {
		if st.field == field {
			return st.items
		}
	}
	return nil
}

// Fields returns the fields that have a legend, in drawing order.
func (l *Legend) Fields() []string {
	out := make([]string, len(l.legends))
	for i, st := range l.legends {
		out[i] = st.field
	}
	return out
}
