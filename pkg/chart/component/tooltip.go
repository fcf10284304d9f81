package component

import (
	"math"
	"strings"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/geometry"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/theme"
)

// Tooltip events, emitted on the tooltip's view with the items as data.
const (
	EventTooltipShow   = "tooltip:show"
	EventTooltipChange = "tooltip:change"
	EventTooltipHide   = "tooltip:hide"
)

// TooltipContent is what a [TooltipRenderer] draws.
type TooltipContent struct {
	Title string
	Items []view.TooltipItem
	// Anchor is the pointer position the content follows.
	Anchor coord.Point
	// Bounds is the box the content should stay within.
	Bounds coord.BBox
	Theme  *theme.Theme
}

// TooltipRenderer draws tooltip content into g, which is empty on every
// call.
type TooltipRenderer interface {
	Render(g *surface.Group, c TooltipContent)
}

// TooltipRendererFunc adapts a function to [TooltipRenderer].
type TooltipRendererFunc func(g *surface.Group, c TooltipContent)

func (f TooltipRendererFunc) Render(g *surface.Group, c TooltipContent) { f(g, c) }

// Tooltip shows the records under a pointer position: crosshairs, markers
// at the records and a content box drawn by a [TooltipRenderer].
type Tooltip struct {
	base
	renderer TooltipRenderer

	crosshairs *surface.Group
	markers    *surface.Group
	content    *surface.Group

	items []view.TooltipItem
	point coord.Point
	shown bool
}

// NewTooltip returns the tooltip controller of v, drawing content with
// [BoxRenderer].
func NewTooltip(v *view.View) *Tooltip {
	return &Tooltip{base: base{view: v}, renderer: BoxRenderer{}}
}

func (t *Tooltip) Name() string { return NameTooltip }

// SetRenderer replaces the content renderer. nil restores [BoxRenderer].
func (t *Tooltip) SetRenderer(r TooltipRenderer) {
	if r == nil {
		r = BoxRenderer{}
	}
	t.renderer = r
}

// Init creates the tooltip layer. It takes no room in the layout.
func (t *Tooltip) Init() {
	if len(t.components) > 0 {
		return
	}
	g := t.view.ForegroundGroup().AddGroup("tooltip")
	g.Silent = true
	t.crosshairs = g.AddGroup("tooltip-crosshairs")
	t.markers = g.AddGroup("tooltip-markers")
	t.content = g.AddGroup("tooltip-content")
	t.add(view.Component{ID: t.view.ID() + "-tooltip", Type: NameTooltip, Group: g})
	t.hide()
}

func (t *Tooltip) Update() { t.Init() }

func (t *Tooltip) Layout() {
	for i := range t.components {
		t.components[i].BBox = t.view.ViewBBox()
	}
}

// Render refreshes a visible tooltip against the re-rendered view.
func (t *Tooltip) Render() {
	if t.shown {
		t.ShowTooltip(t.point)
	}
}

// Clear hides the tooltip and drops its layer.
func (t *Tooltip) Clear() {
	t.HideTooltip()
	t.base.Clear()
	t.crosshairs, t.markers, t.content = nil, nil, nil
}

func (t *Tooltip) Destroy() { t.Clear() }

// Items returns the items currently shown.
func (t *Tooltip) Items() []view.TooltipItem { return t.items }

// IsShown reports whether the tooltip is visible.
func (t *Tooltip) IsShown() bool { return t.shown }

// ShowTooltip shows the items under p, or hides the tooltip when p is
// outside the plot or there are none.
func (t *Tooltip) ShowTooltip(p coord.Point) {
	v := t.view
	if v.Options().Tooltip.Disabled || v.GetCoordinate() == nil || !v.IsPointInPlot(p) {
		t.HideTooltip()
		return
	}
	items := v.GetTooltipItems(p)
	if len(items) == 0 {
		t.HideTooltip()
		return
	}
	t.Init()
	changed := !sameItems(t.items, items)
	t.items, t.point = items, p

	th := v.Theme()
	t.renderCrosshairs(items[0], th)
	t.renderMarkers(items, th)
	t.content.Clear()
	t.renderer.Render(t.content, TooltipContent{
		Title:  items[0].Title,
		Items:  items,
		Anchor: p,
		Bounds: v.ViewBBox(),
		Theme:  th,
	})
	t.components[0].Group.SetVisible(!t.hidden)

	e := &view.Event{X: p.X, Y: p.Y, Data: items}
	if !t.shown {
		t.shown = true
		v.Emit(EventTooltipShow, e)
	}
	if changed {
		v.Emit(EventTooltipChange, e)
	}
}

// HideTooltip hides the tooltip.
func (t *Tooltip) HideTooltip() {
	wasShown := t.shown
	t.hide()
	if wasShown {
		t.view.Emit(EventTooltipHide, &view.Event{X: t.point.X, Y: t.point.Y})
	}
}

func (t *Tooltip) hide() {
	t.shown = false
	t.items = nil
	for _, g := range []*surface.Group{t.crosshairs, t.markers, t.content} {
		if g != nil {
			g.Clear()
		}
	}
	if len(t.components) > 0 {
		t.components[0].Group.SetVisible(false)
	}
}

func sameItems(a, b []view.TooltipItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Title != b[i].Title || a[i].Name != b[i].Name || a[i].Value != b[i].Value {
			return false
		}
	}
	return true
}

// renderCrosshairs draws the crosshairs through the first item, in the
// coordinate of the view that owns it.
func (t *Tooltip) renderCrosshairs(item view.TooltipItem, th *theme.Theme) {
	t.crosshairs.Clear()
	typ := t.view.Options().Tooltip.Crosshairs
	c := item.View.GetCoordinate()
	if typ == "" || c == nil {
		return
	}
	anchor := coord.Point{X: item.X, Y: item.Y}
	attrs := surface.Attrs{Stroke: th.Tooltip.CrosshairColor, LineWidth: 1, Dash: []float64{4, 4}}
	if strings.Contains(typ, "x") {
		t.crosshairs.AddShape(Crosshair(c, coord.DimX, anchor, attrs).Named("tooltip-crosshairs-x"))
	}
	if strings.Contains(typ, "y") {
		t.crosshairs.AddShape(Crosshair(c, coord.DimY, anchor, attrs).Named("tooltip-crosshairs-y"))
	}
}

// Crosshair returns the crosshair of dim through the pixel point p.
//
// In rect coordinates the x crosshair is the vertical line through p and
// the y crosshair the horizontal one; transposing swaps them. In polar
// coordinates the x crosshair is the radius towards p and the y crosshair
// the circle through p.
func Crosshair(c coord.Coordinate, dim coord.Dimension, p coord.Point, a surface.Attrs) *surface.Shape {
	if c.IsPolar() {
		center := c.Center()
		if dim == coord.DimX {
			r := 0.0
			if pc, ok := c.(*coord.Polar); ok {
				r = pc.Radius()
			}
			return surface.NewLine(center, coord.PolarToCartesian(center, r, coord.PointAngle(c, p)), a)
		}
		return surface.NewCircle(center.X, center.Y, coord.DistanceToCenter(c, p), a)
	}
	start, end := c.Start(), c.End()
	vertical := (dim == coord.DimX) != c.IsTransposed()
	if vertical {
		return surface.NewLine(coord.Point{X: p.X, Y: start.Y}, coord.Point{X: p.X, Y: end.Y}, a)
	}
	return surface.NewLine(coord.Point{X: start.X, Y: p.Y}, coord.Point{X: end.X, Y: p.Y}, a)
}

// renderMarkers marks the record position of every item except those of
// interval geometries, whose shapes already show where they are.
func (t *Tooltip) renderMarkers(items []view.TooltipItem, th *theme.Theme) {
	t.markers.Clear()
	if t.view.Options().Tooltip.HideMarkers {
		return
	}
	r := th.Tooltip.MarkerRadius
	for _, it := range items {
		if it.Geometry != nil && it.Geometry.Type() == geometry.KindInterval {
			continue
		}
		if math.IsNaN(it.X) || math.IsNaN(it.Y) {
			continue
		}
		m := surface.NewCircle(it.X, it.Y, r, surface.Attrs{Fill: it.Color, Stroke: th.Background, LineWidth: 1})
		t.markers.AddShape(m.Named("tooltip-marker").WithOrigin(it.Data))
	}
}

// BoxRenderer draws a bordered box with the title and one "name: value"
// row per item, beside the anchor and flipped to stay within bounds.
type BoxRenderer struct{}

func (BoxRenderer) Render(g *surface.Group, c TooltipContent) {
	st := c.Theme.Tooltip
	lh := st.TextSize * 1.5
	r := st.MarkerRadius

	rows := make([]string, len(c.Items))
	w, _ := surface.TextSize(c.Title, st.TextSize)
	for i, it := range c.Items {
		rows[i] = it.Name + ": " + it.Value
		rw, _ := surface.TextSize(rows[i], st.TextSize)
		w = math.Max(w, rw+3*r)
	}
	w += 2 * st.Padding
	h := 2*st.Padding + lh*float64(len(rows)+1)

	x, y := c.Anchor.X+st.Offset, c.Anchor.Y+st.Offset
	if x+w > c.Bounds.MaxX() {
		x = c.Anchor.X - st.Offset - w
	}
	if y+h > c.Bounds.MaxY() {
		y = c.Anchor.Y - st.Offset - h
	}
	x, y = math.Max(x, c.Bounds.X), math.Max(y, c.Bounds.Y)

	g.AddShape(surface.NewRect(x, y, w, h, surface.Attrs{Fill: st.Background, Stroke: st.BorderColor, LineWidth: 1}).Named("tooltip-box"))
	text := func(tx, ty float64, s, weight string) *surface.Shape {
		return surface.NewText(tx, ty, s, surface.Attrs{
			Fill:         st.TextColor,
			FontSize:     st.TextSize,
			FontFamily:   c.Theme.FontFamily,
			FontWeight:   weight,
			TextBaseline: "middle",
		})
	}
	cy := y + st.Padding + lh/2
	g.AddShape(text(x+st.Padding, cy, c.Title, "bold").Named("tooltip-title"))
	for i, it := range c.Items {
		cy += lh
		g.AddShape(surface.NewCircle(x+st.Padding+r, cy, r, surface.Attrs{Fill: it.Color}).Named("tooltip-item-marker"))
		g.AddShape(text(x+st.Padding+3*r, cy, rows[i], "").Named("tooltip-item"))
	}
}
