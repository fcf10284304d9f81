package view

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/geometry"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/observability"
)

func newTestChart() *Chart {
	return NewChart(ChartOptions{Width: 200, Height: 200, Padding: []float64{0}, Interactions: []string{}})
}

func sales() []data.Datum {
	return []data.Datum{
		{"genre": "Sports", "sold": 10.0, "year": "2020"},
		{"genre": "Strategy", "sold": 20.0, "year": "2021"},
		{"genre": "Action", "sold": 30.0, "year": "2022"},
		{"genre": "Shooter", "sold": 40.0, "year": "2023"},
	}
}

func mustGeometry(t *testing.T, v *View, kind, position string) geometry.Geometry {
	t.Helper()
	g, err := v.AddGeometry(kind, geometry.Options{Position: position})
	if err != nil {
		t.Fatalf("AddGeometry(%s, %s): %v", kind, position, err)
	}
	return g
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestFilterData(t *testing.T) {
	c := newTestChart()
	c.Data(sales())
	c.Filter("sold", func(v any, _ data.Datum) bool { return v.(float64) > 10 })
	c.Filter("genre", func(v any, _ data.Datum) bool { return v != "Action" })

	got := c.FilterData(sales())
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	for _, row := range got {
		if row["sold"].(float64) <= 10 || row["genre"] == "Action" {
			t.Errorf("row %v violates a filter", row)
		}
	}

	c.Filter("sold", nil)
	if got := c.FilterData(sales()); len(got) != 3 {
		t.Errorf("after removing a filter got %d rows, want 3", len(got))
	}
}

func TestSharedScaleWithinView(t *testing.T) {
	c := newTestChart()
	c.Data(sales())
	line := mustGeometry(t, c.View, geometry.KindLine, "year*sold")
	point := mustGeometry(t, c.View, geometry.KindPoint, "year*sold")
	c.Render(false)

	s := c.GetScaleByField("year")
	if s == nil {
		t.Fatal("no scale for year")
	}
	if line.XScale() != s || point.XScale() != s {
		t.Error("geometries do not share the pooled year scale")
	}
}

func TestScaleKeys(t *testing.T) {
	c := newTestChart()
	c.Data(sales())
	a := c.CreateView(ViewConfig{})
	b := c.CreateView(ViewConfig{})
	mustGeometry(t, a, geometry.KindInterval, "genre*sold")
	mustGeometry(t, b, geometry.KindInterval, "genre*sold")
	c.Render(false)

	if a.GetScaleByField("genre") == b.GetScaleByField("genre") {
		t.Error("views share a scale without an explicit key")
	}

	a.Scale("genre", scale.Def{Key: "genre-shared"})
	b.Scale("genre", scale.Def{Key: "genre-shared"})
	c.Render(false)
	if a.GetScaleByField("genre") != b.GetScaleByField("genre") {
		t.Error("views with the same key do not share a scale")
	}
	if a.Geometries()[0].XScale() != c.Pool().GetScale("genre-shared") {
		t.Error("geometry scale is not the keyed pool entry")
	}
}

func TestChildDefinitionWins(t *testing.T) {
	c := newTestChart()
	c.Data(sales())
	c.Scale("sold", scale.Def{Alias: "Sold", TickCount: 3})
	child := c.CreateView(ViewConfig{})
	child.Scale("sold", scale.Def{Alias: "Units"})
	mustGeometry(t, child, geometry.KindInterval, "genre*sold")
	c.Render(false)

	s := child.GetScaleByField("sold")
	if s.Alias != "Units" {
		t.Errorf("alias = %q, want the child's", s.Alias)
	}
	if s.Def().TickCount != 3 {
		t.Errorf("tick count = %d, want the parent's 3", s.Def().TickCount)
	}
}

func TestCategoryRange(t *testing.T) {
	c := newTestChart()
	c.Data(sales())
	mustGeometry(t, c.View, geometry.KindInterval, "genre*sold")
	c.Render(false)

	r := c.GetXScale().Range
	if !near(r[0], 0.125) || !near(r[1], 0.875) {
		t.Errorf("range = %v, want [0.125 0.875]", r)
	}
}

func TestCategoryRangeFullCircle(t *testing.T) {
	c := newTestChart()
	rows := append(sales(), data.Datum{"genre": "Puzzle", "sold": 5.0})
	c.Data(rows)
	c.Coordinate(coord.Option{Type: coord.TypePolar})
	mustGeometry(t, c.View, geometry.KindInterval, "genre*sold")
	c.Render(false)

	r := c.GetXScale().Range
	if !near(r[0], 0) || !near(r[1], 0.8) {
		t.Errorf("range = %v, want [0 0.8]", r)
	}
}

func TestUserRangeKept(t *testing.T) {
	c := newTestChart()
	c.Data(sales())
	c.Scale("genre", scale.Def{Range: []float64{0, 1}})
	mustGeometry(t, c.View, geometry.KindInterval, "genre*sold")
	c.Render(false)
	if r := c.GetXScale().Range; r[0] != 0 || r[1] != 1 {
		t.Errorf("range = %v, want the user's [0 1]", r)
	}
}

func TestCreateViewClones(t *testing.T) {
	c := newTestChart()
	c.Data(sales())
	c.Scale("sold", scale.Def{Alias: "Sold"})
	c.Legend("genre", LegendOption{Position: PositionTop})
	c.Tooltip(TooltipOption{Shared: true})
	c.Coordinate(coord.Option{Type: coord.TypePolar})
	c.Animate(true)

	child := c.CreateView(ViewConfig{})
	child.Options().Data[0]["sold"] = 99.0
	child.Scale("sold", scale.Def{Alias: "Units"})
	child.Legend("genre", LegendOption{Disabled: true})
	child.Tooltip(TooltipOption{})
	child.Coordinate(coord.Option{Type: coord.TypeRect})
	child.Animate(false)

	p := c.Options()
	if p.Data[0]["sold"] != 10.0 {
		t.Error("child data edit reached the parent")
	}
	if p.Scales["sold"].Alias != "Sold" {
		t.Error("child scale edit reached the parent")
	}
	if p.Legends["genre"].Disabled {
		t.Error("child legend edit reached the parent")
	}
	if !p.Tooltip.Shared || p.Coordinate.Type != coord.TypePolar || !p.Animate {
		t.Error("child tooltip, coordinate or animate edit reached the parent")
	}
	if len(c.Views()) != 1 || child.Parent() != c.View {
		t.Error("child not attached")
	}
}

func TestOptionReserved(t *testing.T) {
	c := newTestChart()
	if err := c.Option("data", 1); !errors.Is(err, errors.ErrCodeReservedOption) {
		t.Errorf("Option(data) = %v, want RESERVED_OPTION", err)
	}
	if _, ok := c.Options().Custom["data"]; ok {
		t.Error("reserved option was stored")
	}
	if err := c.Option("brand", "acme"); err != nil {
		t.Fatalf("Option(brand): %v", err)
	}
	if c.Options().Custom["brand"] != "acme" {
		t.Error("custom option not stored")
	}
}

func TestUnknownFacetAndInteraction(t *testing.T) {
	c := newTestChart()
	err := c.Facet("mirror", nil)
	if !errors.Is(err, errors.ErrCodeInvalidFacet) {
		t.Fatalf("Facet(mirror) = %v, want INVALID_FACET", err)
	}
	if got := errors.UserMessage(err); got != "facet 'mirror' is not exist" {
		t.Errorf("message = %q", got)
	}
	if err := c.Interaction("drag-zoom"); !errors.Is(err, errors.ErrCodeInvalidInteraction) {
		t.Errorf("Interaction(drag-zoom) = %v, want INVALID_INTERACTION", err)
	}
	if _, err := c.AddGeometry("heatmap", geometry.Options{Position: "a*b"}); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("AddGeometry(heatmap) = %v, want INVALID_GEOMETRY", err)
	}
	if len(c.Geometries()) != 0 {
		t.Error("failed AddGeometry attached a geometry")
	}
}

// splitFacet creates one child view per value of a field, side by side.
type splitFacet struct {
	v     *View
	field string
	views []*View
}

func (f *splitFacet) Init() {}

func (f *splitFacet) Render() {
	groups := data.GroupBy(f.v.GetData(), f.field)
	for i, rows := range groups {
		w := 1 / float64(len(groups))
		child := f.v.CreateView(ViewConfig{Region: Region{
			Start: coord.Point{X: float64(i) * w, Y: 0},
			End:   coord.Point{X: float64(i+1) * w, Y: 1},
		}})
		child.Data(rows)
		child.Scale("sold", scale.Def{Sync: true})
		child.AddGeometry(geometry.KindInterval, geometry.Options{Position: "genre*sold"})
		f.views = append(f.views, child)
	}
}

func (f *splitFacet) Update() { f.Clear(); f.Render() }

func (f *splitFacet) Clear() {
	for _, c := range f.views {
		f.v.RemoveView(c)
	}
	f.views = nil
}

func (f *splitFacet) Destroy() { f.Clear() }

func TestFacetSyncAndRegions(t *testing.T) {
	RegisterFacet("split", func(v *View, cfg any) (Facet, error) {
		return &splitFacet{v: v, field: cfg.(string)}, nil
	})
	c := newTestChart()
	c.Data(sales())
	if err := c.Facet("split", "year"); err != nil {
		t.Fatalf("Facet(split): %v", err)
	}
	c.Render(false)

	views := c.Views()
	if len(views) != 4 {
		t.Fatalf("got %d panels, want 4", len(views))
	}
	first := views[0].GetScaleByField("sold")
	last := views[3].GetScaleByField("sold")
	if first == last {
		t.Fatal("panels share one scale instance; want separate synced scales")
	}
	if first.Max != last.Max || first.Min != last.Min {
		t.Errorf("synced domains differ: [%v %v] vs [%v %v]", first.Min, first.Max, last.Min, last.Max)
	}
	if first.Max < 40 {
		t.Errorf("synced max = %v, want at least 40", first.Max)
	}
	if w := views[0].ViewBBox().Width; !near(w, 50) {
		t.Errorf("panel width = %v, want 50", w)
	}

	c.Render(true)
	if len(c.Views()) != 4 {
		t.Errorf("update render left %d panels, want 4", len(c.Views()))
	}
}

func TestPlotEvents(t *testing.T) {
	c := newTestChart()
	c.Data(sales())
	c.Padding(50)
	mustGeometry(t, c.View, geometry.KindInterval, "genre*sold")
	c.Render(false)

	var got []string
	c.On("*", func(e *Event) {
		if len(e.Type) > 5 && e.Type[:5] == "plot:" {
			got = append(got, e.Type)
		}
	})
	cv := c.Canvas()
	cv.Dispatch("mousemove", coord.Point{X: 10, Y: 10})
	cv.Dispatch("mousemove", coord.Point{X: 100, Y: 100})
	cv.Dispatch("mousemove", coord.Point{X: 101, Y: 101})
	cv.Dispatch("mousemove", coord.Point{X: 190, Y: 190})
	cv.Dispatch("mouseleave", coord.Point{X: 190, Y: 190})

	want := []string{
		"plot:mousemove", "plot:mouseenter",
		"plot:mousemove",
		"plot:mouseleave",
	}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTouchPlotEvents(t *testing.T) {
	c := newTestChart()
	c.Padding(50)
	mustGeometry(t, c.View, geometry.KindPoint, "genre*sold")
	c.Data(sales())
	c.Render(false)

	var got []string
	c.On(EventPlotEnter, func(e *Event) { got = append(got, e.Type) })
	c.On(EventPlotLeave, func(e *Event) { got = append(got, e.Type) })
	cv := c.Canvas()
	cv.Dispatch("touchstart", coord.Point{X: 100, Y: 100})
	cv.Dispatch("touchmove", coord.Point{X: 110, Y: 100})
	cv.Dispatch("touchend", coord.Point{X: 110, Y: 100})
	if want := []string{EventPlotEnter, EventPlotLeave}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestElementEventOrder(t *testing.T) {
	c := newTestChart()
	c.Data(sales())
	child := c.CreateView(ViewConfig{})
	mustGeometry(t, child, geometry.KindInterval, "genre*sold")
	c.Render(false)

	var rootTopics, childTopics []string
	c.On("*", func(e *Event) { rootTopics = append(rootTopics, e.Type) })
	child.On("*", func(e *Event) { childTopics = append(childTopics, e.Type) })

	var clicked any
	child.On("element:click", func(e *Event) { clicked = e.Data })

	// The Shooter bar fills the last band from top to bottom.
	c.Canvas().Dispatch("click", coord.Point{X: 175, Y: 100})

	want := []string{"interval:click", "element:click", "plot:click", "click"}
	if !slices.Equal(childTopics, want) {
		t.Errorf("child topics = %v, want %v", childTopics, want)
	}
	if want := []string{"plot:click", "click"}; !slices.Equal(rootTopics, want) {
		t.Errorf("root topics = %v, want %v", rootTopics, want)
	}
	if d, ok := clicked.(data.Datum); !ok || d["genre"] != "Shooter" {
		t.Errorf("clicked datum = %v", clicked)
	}
}

func TestLifecycleEvents(t *testing.T) {
	c := newTestChart()
	c.Data(sales())
	mustGeometry(t, c.View, geometry.KindInterval, "genre*sold")

	var got []string
	c.On("*", func(e *Event) { got = append(got, e.Type) })
	c.Render(false)
	c.ChangeData(sales()[:2])
	c.Clear()

	want := []string{
		EventBeforeRender, EventBeforePaint, EventAfterPaint, EventAfterRender,
		EventBeforeChangeData, EventBeforePaint, EventAfterPaint, EventAfterChangeData,
		EventBeforeClear, EventAfterClear,
	}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

type passRecorder struct{ passes []string }

func (r *passRecorder) OnPassStart(pass, viewID string)                     { r.passes = append(r.passes, pass+":"+viewID) }
func (r *passRecorder) OnPassComplete(pass, viewID string, _ time.Duration) {}

func TestPassOrder(t *testing.T) {
	rec := &passRecorder{}
	observability.SetViewHooks(rec)
	defer observability.SetViewHooks(observability.NoopViewHooks{})

	c := newTestChart()
	c.Data(sales())
	a := c.CreateView(ViewConfig{})
	a.CreateView(ViewConfig{})
	c.CreateView(ViewConfig{})
	c.Render(false)

	want := []string{
		"data:view0", "data:view1", "data:view2", "data:view3",
		"layout:view0", "layout:view1", "layout:view2", "layout:view3",
		"paint:view0", "paint:view1", "paint:view2", "paint:view3",
	}
	if !slices.Equal(rec.passes, want) {
		t.Errorf("got %v, want %v", rec.passes, want)
	}
}

func TestChangeDataUpdatesScales(t *testing.T) {
	c := newTestChart()
	c.Data(sales())
	child := c.CreateView(ViewConfig{})
	mustGeometry(t, child, geometry.KindInterval, "genre*sold")
	c.Render(false)

	s := child.GetScaleByField("genre")
	c.ChangeData(sales()[:2])
	if len(child.GetData()) != 2 {
		t.Errorf("child has %d rows, want 2", len(child.GetData()))
	}
	if child.GetScaleByField("genre") != s {
		t.Error("change data replaced the scale instance")
	}
	if len(s.Values) != 2 {
		t.Errorf("scale values = %v, want 2 categories", s.Values)
	}
}

func TestClearAndDestroy(t *testing.T) {
	c := newTestChart()
	c.Data(sales())
	child := c.CreateView(ViewConfig{})
	mustGeometry(t, child, geometry.KindInterval, "genre*sold")
	c.Render(false)
	if c.State() != StateRendered || child.State() != StateRendered {
		t.Fatalf("states after render: %s, %s", c.State(), child.State())
	}

	c.Clear()
	if c.Pool().Len() != 0 {
		t.Errorf("pool holds %d scales after clear", c.Pool().Len())
	}
	if len(child.Geometries()) != 0 || child.GetCoordinate() != nil {
		t.Error("clear kept geometries or the coordinate")
	}
	if c.State() != StateInitialized || child.State() != StateInitialized {
		t.Errorf("states after clear: %s, %s", c.State(), child.State())
	}

	destroyed := false
	child.On(EventBeforeDestroy, func(*Event) { destroyed = true })
	c.Destroy()
	if !destroyed || child.State() != StateDestroyed || c.State() != StateDestroyed {
		t.Error("destroy did not cascade")
	}
	c.Canvas().Dispatch("click", coord.Point{X: 10, Y: 10})
}

func TestRegionAndPadding(t *testing.T) {
	c := newTestChart()
	c.Padding(10, 20, 30, 40)
	child := c.CreateView(ViewConfig{Region: Region{Start: coord.Point{X: 0.5, Y: 0}, End: coord.Point{X: 1, Y: 0.5}}})
	c.Render(false)

	cb := c.CoordinateBBox()
	if cb.X != 40 || cb.Y != 10 || cb.Width != 140 || cb.Height != 160 {
		t.Fatalf("coordinate box = %+v", cb)
	}
	vb := child.ViewBBox()
	if vb.X != 110 || vb.Y != 10 || vb.Width != 70 || vb.Height != 80 {
		t.Errorf("child view box = %+v", vb)
	}
}

func TestQueries(t *testing.T) {
	c := newTestChart()
	c.Data(sales())
	c.Scale("sold", scale.Def{Max: scale.Float(40)})
	mustGeometry(t, c.View, geometry.KindInterval, "genre*sold")
	c.Render(false)

	p := c.GetXY(data.Datum{"genre": "Shooter", "sold": 40.0})
	if !near(p.X, 175) || !near(p.Y, 0) {
		t.Errorf("GetXY = %+v, want (175, 0)", p)
	}
	if !c.IsPointInPlot(coord.Point{X: 100, Y: 100}) || c.IsPointInPlot(coord.Point{X: 250, Y: 100}) {
		t.Error("IsPointInPlot disagrees with the coordinate box")
	}
	if got := c.GetScalesByDim(coord.DimY); got["sold"] == nil {
		t.Errorf("GetScalesByDim(y) = %v", got)
	}

	items := c.GetTooltipItems(coord.Point{X: 175, Y: 100})
	if len(items) != 1 {
		t.Fatalf("got %d tooltip items, want 1", len(items))
	}
	it := items[0]
	if it.Title != "Shooter" || it.Name != "sold" || it.Value != "40" {
		t.Errorf("item = %+v", it)
	}
	if got := c.GetTooltipItems(coord.Point{X: 300, Y: 300}); len(got) != 0 {
		t.Errorf("outside items = %v", got)
	}

	c.DisableTooltip()
	if got := c.GetTooltipItems(coord.Point{X: 175, Y: 100}); len(got) != 0 {
		t.Errorf("disabled tooltip returned %v", got)
	}
}

func TestTooltipItemsStayInPanel(t *testing.T) {
	RegisterFacet("split", func(v *View, cfg any) (Facet, error) {
		return &splitFacet{v: v, field: cfg.(string)}, nil
	})
	c := newTestChart()
	c.Data(sales())
	c.Tooltip(TooltipOption{Shared: true})
	if err := c.Facet("split", "year"); err != nil {
		t.Fatalf("Facet(split): %v", err)
	}
	c.Render(false)

	panels := c.Views()
	if len(panels) != 4 {
		t.Fatalf("got %d panels, want 4", len(panels))
	}
	for i, want := range []string{"Sports", "Strategy", "Action", "Shooter"} {
		p := panels[i].CoordinateBBox().Center()
		items := c.GetTooltipItems(p)
		if len(items) != 1 {
			t.Fatalf("panel %d: got %d items %v, want 1", i, len(items), items)
		}
		if items[0].View != panels[i] || items[0].Data["genre"] != want {
			t.Errorf("panel %d: item from %s with %v, want %s", i, items[0].View.ID(), items[0].Data, want)
		}
	}

	if got := c.GetTooltipItems(coord.Point{X: 300, Y: 300}); len(got) != 0 {
		t.Errorf("outside every panel: got %v", got)
	}
}

func TestTooltipShared(t *testing.T) {
	rows := []data.Datum{
		{"x": "a", "s": "s1", "v": 1.0},
		{"x": "a", "s": "s2", "v": 3.0},
	}
	c := newTestChart()
	c.Data(rows)
	if _, err := c.AddGeometry(geometry.KindInterval, geometry.Options{Position: "x*v", Color: "s", Adjust: []string{geometry.AdjustDodge}}); err != nil {
		t.Fatal(err)
	}
	c.Render(false)

	p := coord.Point{X: 100, Y: 180}
	if got := c.GetTooltipItems(p); len(got) != 1 {
		t.Errorf("unshared: got %d items, want 1", len(got))
	}
	c.Tooltip(TooltipOption{Shared: true})
	got := c.GetTooltipItems(p)
	if len(got) != 2 {
		t.Fatalf("shared: got %d items, want 2", len(got))
	}
	if got[0].Name != "s1" || got[1].Name != "s2" {
		t.Errorf("names = %q, %q", got[0].Name, got[1].Name)
	}
}

func TestChangeVisible(t *testing.T) {
	c := newTestChart()
	c.Data(sales())
	g := mustGeometry(t, c.View, geometry.KindInterval, "genre*sold")
	c.Render(false)
	c.ChangeVisible(false)
	if c.Visible() || g.Visible() || c.MiddleGroup().IsVisible() {
		t.Error("view still visible")
	}
	if got := c.GetTooltipItems(coord.Point{X: 175, Y: 100}); len(got) != 0 {
		t.Errorf("hidden view returned tooltip items %v", got)
	}
}

func TestLimitInPlot(t *testing.T) {
	c := newTestChart()
	c.Padding(20)
	c.LimitInPlot(true)
	c.Render(false)
	if clip := c.MiddleGroup().Clip; clip == nil || clip.X != 20 || clip.Width != 160 {
		t.Errorf("clip = %v", clip)
	}
}
