package view

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/event"
	"github.com/matzehuels/stackchart/pkg/chart/geometry"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/theme"
)

// State is the life-cycle state of a view.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateInitialized   State = "initialized"
	StateRendered      State = "rendered"
	StateDestroyed     State = "destroyed"
)

// LayoutFunc sizes the coordinate box of a view once its components are
// initialized.
type LayoutFunc func(v *View)

// View is a node of the chart tree.
type View struct {
	id     string
	chart  *Chart
	parent *View
	pool   *scale.Pool

	opts         Options
	coordCtrl    *coord.Controller
	coordinate   coord.Coordinate
	geometries   []geometry.Geometry
	containers   []*surface.Group
	views        []*View
	controllers  []Controller
	interactions map[string]Interaction
	facet        Facet
	layout       LayoutFunc

	background *surface.Group
	middle     *surface.Group
	foreground *surface.Group

	viewBBox       coord.BBox
	coordinateBBox coord.BBox
	autoPadding    [4]float64

	filteredData  []data.Datum
	scaleKeys     map[string]bool
	inheritedData bool

	events         event.Emitter[*Event]
	unsubscribe    []func()
	preMouseInPlot bool
	preTouchInPlot bool

	visible bool
	state   State
}

func newView(c *Chart, parent *View, opts Options, cfg ViewConfig) *View {
	v := &View{
		id:           cfg.ID,
		chart:        c,
		parent:       parent,
		opts:         opts,
		interactions: map[string]Interaction{},
		layout:       DefaultLayout,
		scaleKeys:    map[string]bool{},
		visible:      true,
		state:        StateUninitialized,
	}
	if v.id == "" {
		v.id = c.nextID()
	}
	if v.opts.Region == (Region{}) {
		v.opts.Region = FullRegion
	}
	if cfg.Region != (Region{}) {
		v.opts.Region = cfg.Region
	}
	if cfg.Padding != nil {
		v.opts.Padding = cfg.Padding
	}
	if cfg.AppendPadding != nil {
		v.opts.AppendPadding = cfg.AppendPadding
	}
	if cfg.Theme != nil {
		v.opts.Theme = cfg.Theme
	}
	if v.opts.Scales == nil {
		v.opts.Scales = map[string]scale.Def{}
	}
	v.coordCtrl = coord.NewController(v.opts.Coordinate)

	layers := [3]*surface.Group{c.canvas.Root(), c.canvas.Root(), c.canvas.Root()}
	if parent != nil {
		layers = [3]*surface.Group{parent.background, parent.middle, parent.foreground}
	}
	v.background = layers[0].AddGroup(v.id + "-background")
	v.middle = layers[1].AddGroup(v.id + "-middle")
	v.foreground = layers[2].AddGroup(v.id + "-foreground")

	v.calculateViewBBox()
	v.initEvents()
	for _, name := range ControllerNames() {
		f, _ := controllers.get(name)
		v.controllers = append(v.controllers, f(v))
	}
	if cfg.Visible != nil && !*cfg.Visible {
		v.ChangeVisible(false)
	}
	v.state = StateInitialized
	return v
}

// ID returns the view id.
func (v *View) ID() string { return v.id }

// Parent returns the parent view, nil for the root.
func (v *View) Parent() *View { return v.parent }

// Root returns the root view.
func (v *View) Root() *View {
	r := v
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Chart returns the chart the view belongs to.
func (v *View) Chart() *Chart { return v.chart }

// Canvas returns the chart's canvas.
func (v *View) Canvas() *surface.Canvas { return v.chart.canvas }

// State returns the life-cycle state.
func (v *View) State() State { return v.state }

// Options returns the view configuration. Maps and slices are shared.
func (v *View) Options() Options { return v.opts }

func (v *View) Views() []*View                          { return v.views }
func (v *View) Geometries() []geometry.Geometry         { return v.geometries }
func (v *View) Controllers() []Controller               { return v.controllers }
func (v *View) ViewBBox() coord.BBox                    { return v.viewBBox }
func (v *View) CoordinateBBox() coord.BBox              { return v.coordinateBBox }
func (v *View) BackgroundGroup() *surface.Group         { return v.background }
func (v *View) MiddleGroup() *surface.Group             { return v.middle }
func (v *View) ForegroundGroup() *surface.Group         { return v.foreground }
func (v *View) Visible() bool                           { return v.visible }
func (v *View) CoordinateController() *coord.Controller { return v.coordCtrl }

// Logger returns the chart logger.
func (v *View) Logger() *log.Logger { return v.chart.logger }

// Theme returns the effective theme: the view's own, else its parent's,
// else the light theme.
func (v *View) Theme() *theme.Theme {
	for p := v; p != nil; p = p.parent {
		if p.opts.Theme != nil {
			return p.opts.Theme
		}
	}
	return theme.Light()
}

// Data sets the raw rows of the view.
func (v *View) Data(rows []data.Datum) *View {
	v.opts.Data = rows
	v.inheritedData = false
	return v
}

// Filter keeps rows whose field value passes fn. A nil fn removes the
// field's filter.
func (v *View) Filter(field string, fn FilterFunc) *View {
	if fn == nil {
		delete(v.opts.Filters, field)
		return v
	}
	if v.opts.Filters == nil {
		v.opts.Filters = map[string]FilterFunc{}
	}
	v.opts.Filters[field] = fn
	return v
}

// Scale merges def into the scale definition of field.
func (v *View) Scale(field string, def scale.Def) *View {
	v.opts.Scales[field] = v.opts.Scales[field].Merge(def)
	return v
}

// Axis configures the axis of field.
func (v *View) Axis(field string, opt AxisOption) *View {
	if v.opts.Axes == nil {
		v.opts.Axes = map[string]AxisOption{}
	}
	v.opts.Axes[field] = opt
	return v
}

// DisableAxes hides every axis of the view.
func (v *View) DisableAxes() *View {
	v.opts.DisableAxes = true
	return v
}

// Legend configures the legend of field.
func (v *View) Legend(field string, opt LegendOption) *View {
	if v.opts.Legends == nil {
		v.opts.Legends = map[string]LegendOption{}
	}
	v.opts.Legends[field] = opt
	return v
}

// DisableLegends hides every legend of the view.
func (v *View) DisableLegends() *View {
	v.opts.DisableLegend = true
	return v
}

// Tooltip configures the tooltip.
func (v *View) Tooltip(opt TooltipOption) *View {
	v.opts.Tooltip = opt
	return v
}

// DisableTooltip turns the tooltip off for the view and its geometries.
func (v *View) DisableTooltip() *View {
	v.opts.Tooltip.Disabled = true
	return v
}

// Coordinate replaces the coordinate descriptor when opt is given and
// returns the coordinate controller for chaining transform actions.
func (v *View) Coordinate(opt ...coord.Option) *coord.Controller {
	if len(opt) > 0 {
		v.opts.Coordinate = opt[0].Clone()
		v.coordCtrl.Update(opt[0])
	}
	return v.coordCtrl
}

// Annotation adds a guide.
func (v *View) Annotation(a Annotation) *View {
	v.opts.Annotations = append(v.opts.Annotations, a)
	return v
}

// SetTheme sets the view theme.
func (v *View) SetTheme(t *theme.Theme) *View {
	v.opts.Theme = t
	return v
}

// Animate turns first-paint animation on or off.
func (v *View) Animate(on bool) *View {
	v.opts.Animate = on
	return v
}

// Padding fixes the padding between view box and coordinate box, as 1, 2
// or 4 values. No values restores automatic padding.
func (v *View) Padding(p ...float64) *View {
	v.opts.Padding = p
	return v
}

// AppendPadding adds extra padding on top of the computed padding.
func (v *View) AppendPadding(p ...float64) *View {
	v.opts.AppendPadding = p
	return v
}

// LimitInPlot clips geometries to the coordinate box.
func (v *View) LimitInPlot(on bool) *View {
	v.opts.LimitInPlot = on
	return v
}

// SetLayout replaces the layout function.
func (v *View) SetLayout(fn LayoutFunc) *View {
	if fn == nil {
		fn = DefaultLayout
	}
	v.layout = fn
	return v
}

// reservedOptions are names of view configuration methods; Option refuses
// to shadow them.
var reservedOptions = []string{
	"data", "filter", "scale", "axis", "axes", "legend", "legends",
	"tooltip", "coordinate", "annotation", "annotations", "theme",
	"animate", "padding", "appendPadding", "limitInPlot", "interaction",
	"facet", "region", "render", "clear", "destroy", "changeData",
	"changeVisible", "option", "views", "geometries", "layout",
}

// Option stores a custom option. Names of built-in options fail with
// RESERVED_OPTION and leave the view unchanged.
func (v *View) Option(name string, value any) error {
	if slices.Contains(reservedOptions, name) {
		return errors.New(errors.ErrCodeReservedOption, "can't use built-in option name %q, please choose another one", name)
	}
	if v.opts.Custom == nil {
		v.opts.Custom = map[string]any{}
	}
	v.opts.Custom[name] = value
	return nil
}

// AddGeometry creates a registered geometry kind and attaches it to the
// view.
func (v *View) AddGeometry(kind string, opts geometry.Options) (geometry.Geometry, error) {
	g, err := geometry.New(kind, opts)
	if err != nil {
		return nil, err
	}
	v.geometries = append(v.geometries, g)
	v.containers = append(v.containers, v.middle.AddGroup(fmt.Sprintf("%s-%s-%d", v.id, kind, len(v.geometries)-1)))
	return g, nil
}

// CreateView adds a child view. The child starts with independent copies
// of the parent's data, scale definitions, axes, legends, tooltip,
// coordinate and animation settings.
func (v *View) CreateView(cfg ViewConfig) *View {
	shared := Options{
		Data:       data.Clone(v.opts.Data),
		Tooltip:    v.opts.Tooltip,
		Coordinate: v.opts.Coordinate.Clone(),
		Animate:    v.opts.Animate,
	}
	inherited := v.opts.clone()
	shared.Scales = inherited.Scales
	shared.Axes = inherited.Axes
	shared.Legends = inherited.Legends
	shared.DisableAxes = v.opts.DisableAxes
	shared.DisableLegend = v.opts.DisableLegend

	child := newView(v.chart, v, shared, cfg)
	child.inheritedData = true
	v.views = append(v.views, child)
	return child
}

// RemoveView destroys a child view.
func (v *View) RemoveView(child *View) {
	i := slices.Index(v.views, child)
	if i < 0 {
		return
	}
	v.views = slices.Delete(v.views, i, i+1)
	child.destroy()
	child.parent = nil
}

// Facet splits the view into child views with a registered facet kind.
func (v *View) Facet(kind string, cfg any) error {
	f, ok := facets.get(kind)
	if !ok {
		return errors.New(errors.ErrCodeInvalidFacet, "facet '%s' is not exist", kind)
	}
	inst, err := f(v, cfg)
	if err != nil {
		return err
	}
	if v.facet != nil {
		v.facet.Destroy()
	}
	v.facet = inst
	return nil
}

// Interaction attaches a registered interaction, replacing one of the same
// name.
func (v *View) Interaction(name string, cfg ...any) error {
	f, ok := interactions.get(name)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInteraction, "interaction '%s' is not registered", name)
	}
	if old, ok := v.interactions[name]; ok {
		old.Destroy()
	}
	var c any
	if len(cfg) > 0 {
		c = cfg[0]
	}
	in := f(v, c)
	in.Init()
	v.interactions[name] = in
	return nil
}

// RemoveInteraction detaches an interaction.
func (v *View) RemoveInteraction(name string) {
	if in, ok := v.interactions[name]; ok {
		in.Destroy()
		delete(v.interactions, name)
	}
}

// GetInteraction returns an attached interaction.
func (v *View) GetInteraction(name string) Interaction { return v.interactions[name] }

// GetController returns the controller registered under name.
func (v *View) GetController(name string) Controller {
	for _, c := range v.controllers {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// FilterData returns the rows passing every field filter.
func (v *View) FilterData(rows []data.Datum) []data.Datum {
	if len(v.opts.Filters) == 0 {
		return rows
	}
	out := make([]data.Datum, 0, len(rows))
	for _, row := range rows {
		if v.keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func (v *View) keep(row data.Datum) bool {
	for field, fn := range v.opts.Filters {
		if !fn(row[field], row) {
			return false
		}
	}
	return true
}

// IsFiltered reports whether the view's filter on field rejects value.
func (v *View) IsFiltered(field string, value any) bool {
	fn, ok := v.opts.Filters[field]
	return ok && !fn(value, data.Datum{field: value})
}

// GetData returns the filtered rows of the last data pass.
func (v *View) GetData() []data.Datum { return v.filteredData }

// ChangeVisible shows or hides the view's layers, geometries and
// components.
func (v *View) ChangeVisible(visible bool) {
	v.visible = visible
	for _, g := range v.geometries {
		g.ChangeVisible(visible)
	}
	for _, c := range v.controllers {
		c.ChangeVisible(visible)
	}
	v.background.SetVisible(visible)
	v.middle.SetVisible(visible)
	v.foreground.SetVisible(visible)
}
