package view

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/geometry"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
	"github.com/matzehuels/stackchart/pkg/data"
)

// GetCoordinate returns the live coordinate. It is nil before the first
// render.
func (v *View) GetCoordinate() coord.Coordinate { return v.coordinate }

// GetXScale returns the x scale of the first geometry.
func (v *View) GetXScale() *scale.Scale {
	for _, g := range v.geometries {
		if s := g.XScale(); s != nil {
			return s
		}
	}
	return nil
}

// GetYScales returns the distinct y scales of the view's geometries.
func (v *View) GetYScales() []*scale.Scale {
	var out []*scale.Scale
	for _, g := range v.geometries {
		s := g.YScale()
		if s == nil {
			continue
		}
		dup := false
		for _, o := range out {
			dup = dup || o == s
		}
		if !dup {
			out = append(out, s)
		}
	}
	return out
}

// GetScalesByDim returns the x or y scales of the view keyed by field.
func (v *View) GetScalesByDim(dim coord.Dimension) map[string]*scale.Scale {
	out := map[string]*scale.Scale{}
	for _, g := range v.geometries {
		s := g.XScale()
		if dim == coord.DimY {
			s = g.YScale()
		}
		if s != nil {
			out[s.Field] = s
		}
	}
	return out
}

// GetScaleByField returns the pooled scale of field, looked up under key
// when given, else under the view's key for the field.
func (v *View) GetScaleByField(field string, key ...string) *scale.Scale {
	k := v.scaleKey(field)
	if len(key) > 0 && key[0] != "" {
		k = key[0]
	}
	root := v.Root()
	if root.pool == nil {
		return nil
	}
	return root.pool.GetScale(k)
}

// GetXY projects a datum to pixels through the x scale, the first y scale
// and the coordinate. It requires a rendered view.
func (v *View) GetXY(d data.Datum) coord.Point {
	xs, ys := v.GetXScale(), v.GetYScales()
	if v.coordinate == nil || xs == nil || len(ys) == 0 {
		return coord.Point{X: math.NaN(), Y: math.NaN()}
	}
	return v.coordinate.Convert(coord.Point{X: xs.Map(d[xs.Field]), Y: ys[0].Map(d[ys[0].Field])})
}

// IsPointInPlot reports whether the pixel point p lies in the plot area.
// It requires a rendered view.
func (v *View) IsPointInPlot(p coord.Point) bool {
	return coord.IsPointInCoordinate(v.coordinate, p)
}

// FindDataByPoint returns the records of g under p: the nearest record on
// both axes for point geometries, otherwise the records at the nearest x
// (see [geometry.FindRecords]).
func (v *View) FindDataByPoint(p coord.Point, g geometry.Geometry) []*geometry.Record {
	if g.Type() != geometry.KindPoint {
		return geometry.FindRecords(g, p)
	}
	c := g.Coordinate()
	if c == nil {
		return nil
	}
	var all []*geometry.Record
	for _, group := range g.DataArray() {
		all = append(all, group...)
	}
	if r := geometry.NearestRecord(all, c.Invert(p)); r != nil {
		return []*geometry.Record{r}
	}
	return nil
}

// TooltipItem is one row of tooltip content.
type TooltipItem struct {
	Title    string
	Name     string
	Value    string
	Color    string
	X, Y     float64
	Data     data.Datum
	Geometry geometry.Geometry
	View     *View
}

// GetTooltipItems returns the tooltip items under p for every visible
// geometry with tooltips enabled, in v and its children. Unless the
// tooltip is shared only the item nearest to p in y is kept. An empty
// result is normal.
func (v *View) GetTooltipItems(p coord.Point) []TooltipItem {
	items := v.findItems(p)
	if v.opts.Tooltip.Shared || len(items) <= 1 {
		return items
	}
	snap := items[0]
	best := math.Abs(p.Y - snap.Y)
	for _, it := range items[1:] {
		if d := math.Abs(p.Y - it.Y); d <= best {
			snap, best = it, d
		}
	}
	return []TooltipItem{snap}
}

// findItems collects items from every view whose plot contains p. Category
// inversion clamps into the range, so a view's own geometries are skipped
// when p lies outside its plot; its children are still searched.
func (v *View) findItems(p coord.Point) []TooltipItem {
	var items []TooltipItem
	if !v.opts.Tooltip.Disabled && v.visible && v.coordinate != nil && v.IsPointInPlot(p) {
		for _, g := range v.geometries {
			if !g.Visible() || g.Options().HideTooltip {
				continue
			}
			for _, r := range v.FindDataByPoint(p, g) {
				items = append(items, v.tooltipItem(g, r))
			}
		}
	}
	for _, c := range v.views {
		items = append(items, c.findItems(p)...)
	}
	return items
}

func (v *View) tooltipItem(g geometry.Geometry, r *geometry.Record) TooltipItem {
	it := TooltipItem{
		Color:    r.Color,
		X:        r.Point.X,
		Y:        r.Point.Y,
		Data:     r.Origin,
		Geometry: g,
		View:     v,
	}
	xs, ys := g.XScale(), g.YScale()
	var cs *scale.Scale
	if f := g.Options().Color; f != "" {
		cs = v.GetScaleByField(f)
	}
	if xs != nil && !xs.IsIdentity() {
		it.Title = xs.GetText(r.Origin[xs.Field], -1)
	}
	switch {
	case cs != nil && cs.IsCategory():
		it.Name = cs.GetText(r.Origin[cs.Field], -1)
	case ys != nil:
		it.Name = ys.Title()
	}
	if it.Title == "" && cs != nil {
		it.Title = cs.GetText(r.Origin[cs.Field], -1)
	}
	if ys != nil {
		it.Value = ys.GetText(r.Origin[ys.Field], -1)
	}
	return it
}
