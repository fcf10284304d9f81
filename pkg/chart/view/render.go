package view

import (
	"slices"
	"time"

	"github.com/matzehuels/stackchart/pkg/chart/geometry"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/observability"
)

// Render runs the data, layout and paint passes over the view tree below
// v. With isUpdate geometries and controllers are updated in place.
func (v *View) Render(isUpdate bool) {
	start := time.Now()
	v.Emit(EventBeforeRender, nil)
	v.paint(isUpdate)
	v.Emit(EventAfterRender, nil)
	v.Logger().Debug("rendered view", "id", v.id, "views", v.countViews(), "update", isUpdate, "duration", time.Since(start))
}

func (v *View) paint(isUpdate bool) {
	v.renderDataRecursive(isUpdate)
	v.syncScale()
	v.Emit(EventBeforePaint, nil)
	v.renderLayoutRecursive(isUpdate)
	v.renderPaintRecursive(isUpdate)
	v.Emit(EventAfterPaint, nil)
}

// ChangeData replaces the data of v and of the children that inherited it,
// then re-renders v's subtree as an update.
func (v *View) ChangeData(rows []data.Datum) {
	v.Emit(EventBeforeChangeData, nil)
	v.changeData(rows)
	v.paint(true)
	v.Emit(EventAfterChangeData, nil)
}

func (v *View) changeData(rows []data.Datum) {
	v.opts.Data = rows
	for _, c := range v.views {
		if c.inheritedData {
			c.changeData(data.Clone(rows))
		}
	}
}

func (v *View) countViews() int {
	n := 1
	for _, c := range v.views {
		n += c.countViews()
	}
	return n
}

func (v *View) pass(name string, fn func()) {
	hooks := observability.View()
	hooks.OnPassStart(name, v.id)
	start := time.Now()
	fn()
	hooks.OnPassComplete(name, v.id, time.Since(start))
}

func (v *View) renderDataRecursive(isUpdate bool) {
	v.pass("data", func() {
		v.filteredData = v.FilterData(v.opts.Data)
		v.createCoordinate()
		v.initGeometries(isUpdate)
		v.adjustCategoryScaleRange()
		v.renderFacet(isUpdate)
	})
	for _, c := range v.views {
		c.renderDataRecursive(isUpdate)
	}
}

func (v *View) renderLayoutRecursive(isUpdate bool) {
	v.pass("layout", func() {
		v.calculateViewBBox()
		v.adjustCoordinate()
		v.initComponents(isUpdate)
		v.layout(v)
		v.adjustCoordinate()
	})
	for _, c := range v.views {
		c.renderLayoutRecursive(isUpdate)
	}
}

func (v *View) renderPaintRecursive(isUpdate bool) {
	v.pass("paint", func() {
		if v.opts.LimitInPlot {
			box := v.coordinateBBox
			v.middle.Clip = &box
		} else {
			v.middle.Clip = nil
		}
		v.paintGeometries(isUpdate)
		v.renderComponents()
		v.state = StateRendered
	})
	for _, c := range v.views {
		c.renderPaintRecursive(isUpdate)
	}
}

// syncScale unifies synced scales once the whole tree has created its
// scales. Only the root owns the pool.
func (v *View) syncScale() {
	if v.parent == nil && v.pool != nil {
		v.pool.Sync(v.coordinate, v.Theme().MultiplePieWidth)
	}
}

func (v *View) createCoordinate() {
	v.coordinate = v.coordCtrl.Create(v.coordinateBBox.BottomLeft(), v.coordinateBBox.TopRight())
}

func (v *View) adjustCoordinate() {
	if v.coordinate == nil {
		v.createCoordinate()
		return
	}
	v.coordinate = v.coordCtrl.Adjust(v.coordinateBBox.BottomLeft(), v.coordinateBBox.TopRight())
}

func (v *View) initGeometries(isUpdate bool) {
	scales := v.createOrUpdateScales()
	t := v.Theme()
	for i, g := range v.geometries {
		cfg := geometry.Config{
			Coordinate: v.coordinate,
			Data:       v.filteredData,
			Scales:     scales,
			ScaleDefs:  v.scaleDefs(g.ScaleFields()),
			Theme:      t,
			Container:  v.containers[i],
		}
		if isUpdate {
			g.Update(cfg)
		} else {
			g.Init(cfg)
		}
	}
}

// createOrUpdateScales creates the scales of every geometry field. Group
// fields use unfiltered data so filtering never drops a category from a
// legend.
func (v *View) createOrUpdateScales() map[string]*scale.Scale {
	grouped := map[string]bool{}
	var fields []string
	seen := map[string]bool{}
	for _, g := range v.geometries {
		for _, f := range g.GroupFields() {
			grouped[f] = true
		}
		for _, f := range g.ScaleFields() {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}
	scales := make(map[string]*scale.Scale, len(fields))
	for _, f := range fields {
		rows := v.filteredData
		if grouped[f] {
			rows = v.opts.Data
		}
		key := v.scaleKey(f)
		scales[f] = v.createScale(f, rows, scale.Def{}, key)
		v.scaleKeys[key] = true
	}
	return scales
}

// createScale merges the view's definition of field under def and hands
// the result up the parent chain; the root creates or updates the scale in
// its pool. The definition closest to the data wins.
func (v *View) createScale(field string, rows []data.Datum, def scale.Def, key string) *scale.Scale {
	merged := v.opts.Scales[field].Merge(def)
	if v.parent != nil {
		return v.parent.createScale(field, rows, merged, key)
	}
	return v.pool.CreateScale(field, rows, merged, key)
}

// scaleDef is the definition of field merged from the root down to v.
func (v *View) scaleDef(field string) scale.Def {
	def := v.opts.Scales[field]
	for p := v.parent; p != nil; p = p.parent {
		def = p.opts.Scales[field].Merge(def)
	}
	return def
}

func (v *View) scaleDefs(fields []string) map[string]scale.Def {
	out := make(map[string]scale.Def, len(fields))
	for _, f := range fields {
		out[f] = v.scaleDef(f)
	}
	return out
}

// scaleKey is the pool key of field for v: the definition's Key, else
// "{viewId}-{field}".
func (v *View) scaleKey(field string) string {
	if k := v.scaleDef(field).Key; k != "" {
		return k
	}
	return v.id + "-" + field
}

// adjustCategoryScaleRange gives the position scales of category and
// identity fields a range that leaves room around the outer categories,
// unless the user fixed one.
func (v *View) adjustCategoryScaleRange() {
	var scales []*scale.Scale
	if xs := v.GetXScale(); xs != nil {
		scales = append(scales, xs)
	}
	for _, ys := range v.GetYScales() {
		if !slices.Contains(scales, ys) {
			scales = append(scales, ys)
		}
	}
	ratio := v.Theme().MultiplePieWidth
	for _, s := range scales {
		if !(s.IsCategory() || s.IsIdentity()) || len(s.Values) == 0 {
			continue
		}
		if v.scaleDef(s.Field).Range != nil {
			continue
		}
		s.Update(scale.Def{Range: scale.DefaultCategoryRange(s, v.coordinate, ratio)})
	}
}

func (v *View) renderFacet(isUpdate bool) {
	if v.facet == nil {
		return
	}
	if isUpdate {
		v.facet.Update()
		return
	}
	v.facet.Clear()
	v.facet.Init()
	v.facet.Render()
}

// calculateViewBBox places the view box in the parent's coordinate box
// (the canvas for the root) and derives the coordinate box from it.
func (v *View) calculateViewBBox() {
	outer := v.chart.canvas.BBox()
	if v.parent != nil {
		outer = v.parent.coordinateBBox
	}
	v.viewBBox = outer.Region(v.opts.Region.Start, v.opts.Region.End)
	v.calculateCoordinateBBox()
}

func (v *View) calculateCoordinateBBox() {
	p := v.autoPadding
	if len(v.opts.Padding) > 0 {
		p = expandPadding(v.opts.Padding)
	}
	a := expandPadding(v.opts.AppendPadding)
	v.coordinateBBox = v.viewBBox.
		Shrink(p[0], p[1], p[2], p[3]).
		Shrink(a[0], a[1], a[2], a[3])
}

func (v *View) initComponents(isUpdate bool) {
	for _, c := range v.controllers {
		if isUpdate {
			c.Update()
		} else {
			c.Init()
		}
	}
}

// DefaultLayout reserves padding for every directed component, shrinks
// the coordinate box accordingly and lets the controllers position their
// components on it. Explicit padding skips the measurement.
func DefaultLayout(v *View) {
	if len(v.opts.Padding) == 0 {
		v.autoPadding = v.calculatePadding()
	}
	v.calculateCoordinateBBox()
	v.adjustCoordinate()
	for _, c := range v.controllers {
		c.Layout()
	}
}

// calculatePadding sums, per side, the size of the components docked
// there, plus the theme padding.
func (v *View) calculatePadding() [4]float64 {
	base := v.Theme().Padding
	p := [4]float64{base, base, base, base}
	for _, c := range v.controllers {
		for _, comp := range c.Components() {
			switch comp.Direction {
			case DirectionTop:
				p[0] += comp.BBox.Height
			case DirectionRight:
				p[1] += comp.BBox.Width
			case DirectionBottom:
				p[2] += comp.BBox.Height
			case DirectionLeft:
				p[3] += comp.BBox.Width
			}
		}
	}
	return p
}

func (v *View) paintGeometries(isUpdate bool) {
	for _, g := range v.geometries {
		g.SetCoordinate(v.coordinate)
		g.SetAnimate(v.opts.Animate)
		g.Paint(isUpdate)
	}
}

func (v *View) renderComponents() {
	for _, c := range v.controllers {
		c.Render()
	}
}
