package component

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/geometry"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/theme"
)

func sales() []data.Datum {
	return []data.Datum{
		{"genre": "Sports", "sold": 10.0},
		{"genre": "Strategy", "sold": 20.0},
		{"genre": "Action", "sold": 30.0},
		{"genre": "Shooter", "sold": 40.0},
	}
}

func newChart(t *testing.T, w, h float64, padding []float64, opts geometry.Options) *view.Chart {
	t.Helper()
	c := view.NewChart(view.ChartOptions{Width: w, Height: h, Padding: padding, Interactions: []string{}})
	c.Data(sales())
	if _, err := c.AddGeometry(geometry.KindInterval, opts); err != nil {
		t.Fatal(err)
	}
	return c
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRegistrationOrder(t *testing.T) {
	want := []string{NameAxis, NameLegend, NameTooltip, NameAnnotation}
	if got := view.ControllerNames(); !slices.Equal(got, want) {
		t.Errorf("ControllerNames() = %v, want %v", got, want)
	}
}

func TestAxisPadding(t *testing.T) {
	c := newChart(t, 400, 300, nil, geometry.Options{Position: "genre*sold"})
	c.Render(false)

	th := theme.Light()
	ax := c.GetController(NameAxis).(*Axis)
	comps := ax.Components()
	if len(comps) != 2 {
		t.Fatalf("got %d axes, want 2", len(comps))
	}
	if comps[0].Direction != view.DirectionBottom || comps[1].Direction != view.DirectionLeft {
		t.Errorf("directions = %s, %s", comps[0].Direction, comps[1].Direction)
	}

	labelW := 0.0
	for _, tk := range c.GetYScales()[0].GetTicks() {
		w, _ := surface.TextSize(tk.Text, th.Axis.LabelSize)
		labelW = math.Max(labelW, w)
	}
	bottom := th.Padding + th.Axis.TickLength + th.Axis.LabelGap + th.Axis.LabelSize
	left := th.Padding + th.Axis.TickLength + th.Axis.LabelGap + labelW

	cb := c.CoordinateBBox()
	if !near(cb.Y, th.Padding) || !near(cb.MaxY(), 300-bottom) {
		t.Errorf("vertical extent = [%v, %v], want [%v, %v]", cb.Y, cb.MaxY(), th.Padding, 300-bottom)
	}
	if !near(cb.X, left) || !near(cb.MaxX(), 400-th.Padding) {
		t.Errorf("horizontal extent = [%v, %v], want [%v, %v]", cb.X, cb.MaxX(), left, 400-th.Padding)
	}
	if b := comps[0].BBox; !near(b.Y, cb.MaxY()) || !near(b.Width, cb.Width) {
		t.Errorf("x axis box = %+v", b)
	}
}

func TestAxisShapes(t *testing.T) {
	c := newChart(t, 400, 300, nil, geometry.Options{Position: "genre*sold"})
	c.Render(false)

	bg := c.BackgroundGroup()
	labels := bg.FindAll("axis-label")
	xTicks := len(c.GetXScale().GetTicks())
	yTicks := len(c.GetYScales()[0].GetTicks())
	if len(labels) != xTicks+yTicks {
		t.Errorf("got %d labels, want %d", len(labels), xTicks+yTicks)
	}
	if got := len(bg.FindAll("axis-grid-line")); got != yTicks {
		t.Errorf("got %d grid lines, want one per y tick (%d)", got, yTicks)
	}
	if got := len(bg.FindAll("axis-line")); got != 2 {
		t.Errorf("got %d axis lines, want 2", got)
	}
	for _, l := range labels[:xTicks] {
		if l.Attrs.TextAnchor != "middle" || l.Attrs.TextBaseline != "top" {
			t.Errorf("x label %q aligned %s/%s", l.Text, l.Attrs.TextAnchor, l.Attrs.TextBaseline)
		}
	}
}

func TestAxisOptions(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *view.Chart)
		want  int
	}{
		{"disabled field", func(c *view.Chart) { c.Axis("genre", view.AxisOption{Disabled: true}) }, 1},
		{"disabled view", func(c *view.Chart) { c.DisableAxes() }, 0},
		{"identity x", func(c *view.Chart) { c.Scale("genre", scale.Def{Type: scale.TypeIdentity}) }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newChart(t, 400, 300, nil, geometry.Options{Position: "genre*sold"})
			tt.setup(c)
			c.Render(false)
			if got := len(c.GetController(NameAxis).Components()); got != tt.want {
				t.Errorf("got %d axes, want %d", got, tt.want)
			}
		})
	}
}

func TestAxisTransposed(t *testing.T) {
	c := newChart(t, 400, 300, nil, geometry.Options{Position: "genre*sold"})
	c.Coordinate().Transpose()
	c.Render(false)
	comps := c.GetController(NameAxis).Components()
	if comps[0].Direction != view.DirectionLeft || comps[1].Direction != view.DirectionBottom {
		t.Errorf("directions = %s, %s", comps[0].Direction, comps[1].Direction)
	}
}

func TestPolarAxisTakesNoPadding(t *testing.T) {
	c := newChart(t, 300, 300, nil, geometry.Options{Position: "genre*sold"})
	c.Coordinate(coord.Option{Type: coord.TypePolar})
	c.Render(false)
	for _, comp := range c.GetController(NameAxis).Components() {
		if comp.Direction != view.DirectionNone {
			t.Errorf("polar axis docked %s", comp.Direction)
		}
	}
	th := theme.Light()
	if cb := c.CoordinateBBox(); !near(cb.X, th.Padding) {
		t.Errorf("coordinate box = %+v", cb)
	}
}

func TestLegendItems(t *testing.T) {
	c := newChart(t, 400, 300, nil, geometry.Options{Position: "genre*sold", Color: "genre"})
	c.Filter("genre", func(v any, _ data.Datum) bool { return v != "Action" })
	c.Render(false)

	lg := c.GetController(NameLegend).(*Legend)
	items := lg.Items("genre")
	if len(items) != 4 {
		t.Fatalf("got %d items, want all 4 categories", len(items))
	}
	for i, it := range items {
		if it.Color != theme.Light().Color(i) {
			t.Errorf("item %s color = %s", it.Name, it.Color)
		}
		if it.Unchecked != (it.Name == "Action") {
			t.Errorf("item %s unchecked = %v", it.Name, it.Unchecked)
		}
	}
	comps := lg.Components()
	if len(comps) != 1 || comps[0].Direction != view.DirectionBottom {
		t.Fatalf("components = %+v", comps)
	}
	if b := comps[0].BBox; !near(b.MaxY(), 300) {
		t.Errorf("legend box = %+v, want it at the bottom of the view", b)
	}
	markers := c.ForegroundGroup().FindAll("legend-item-marker")
	if len(markers) != 4 {
		t.Fatalf("got %d markers", len(markers))
	}
	if markers[2].Attrs.Fill != theme.Light().Legend.UncheckedColor {
		t.Errorf("unchecked marker fill = %s", markers[2].Attrs.Fill)
	}
	if got := len(c.ForegroundGroup().FindAll("legend-item")); got != 8 {
		t.Errorf("got %d legend-item shapes, want markers and names", got)
	}
}

func TestLegendOnRootOnly(t *testing.T) {
	c := view.NewChart(view.ChartOptions{Width: 400, Height: 300, Interactions: []string{}})
	c.Data(sales())
	child := c.CreateView(view.ViewConfig{})
	if _, err := child.AddGeometry(geometry.KindInterval, geometry.Options{Position: "genre*sold", Color: "genre"}); err != nil {
		t.Fatal(err)
	}
	c.Render(false)

	if got := c.GetController(NameLegend).(*Legend).Fields(); !slices.Equal(got, []string{"genre"}) {
		t.Errorf("root legend fields = %v", got)
	}
	if got := child.GetController(NameLegend).(*Legend).Fields(); len(got) != 0 {
		t.Errorf("child legend fields = %v", got)
	}
}

func TestLegendEvents(t *testing.T) {
	c := newChart(t, 400, 300, nil, geometry.Options{Position: "genre*sold", Color: "genre"})
	c.Render(false)

	var topics []string
	var item *LegendItem
	c.On("*", func(e *view.Event) {
		if e.Gesture == "click" {
			topics = append(topics, e.Type)
		}
	})
	c.On("legend-item:click", func(e *view.Event) { item, _ = e.Data.(*LegendItem) })

	m := c.ForegroundGroup().FindAll("legend-item-marker")[1]
	c.Canvas().Dispatch("click", coord.Point{X: m.X, Y: m.Y})

	want := []string{"legend-item-marker:click", "legend-item:click", "click"}
	if !slices.Equal(topics, want) {
		t.Errorf("topics = %v, want %v", topics, want)
	}
	if item == nil || item.Value != "Strategy" || item.Field != "genre" {
		t.Errorf("item = %+v", item)
	}
}

func TestTooltipShowHide(t *testing.T) {
	c := newChart(t, 200, 200, []float64{0}, geometry.Options{Position: "genre*sold"})
	c.Tooltip(view.TooltipOption{Crosshairs: "xy"})
	c.Render(false)

	var events []string
	for _, topic := range []string{EventTooltipShow, EventTooltipChange, EventTooltipHide} {
		c.On(topic, func(e *view.Event) { events = append(events, e.Type) })
	}
	tt := c.GetController(NameTooltip).(*Tooltip)
	tt.ShowTooltip(coord.Point{X: 175, Y: 100})
	tt.ShowTooltip(coord.Point{X: 176, Y: 110})

	if !tt.IsShown() || len(tt.Items()) != 1 || tt.Items()[0].Title != "Shooter" {
		t.Fatalf("items = %+v", tt.Items())
	}
	g := tt.Components()[0].Group
	if !g.IsVisible() || !g.Silent {
		t.Error("tooltip layer hidden or pickable")
	}
	fg := c.ForegroundGroup()
	if len(fg.FindAll("tooltip-crosshairs-x")) != 1 || len(fg.FindAll("tooltip-crosshairs-y")) != 1 {
		t.Error("crosshairs missing")
	}
	if len(fg.FindAll("tooltip-marker")) != 0 {
		t.Error("interval items got markers")
	}
	if len(fg.FindAll("tooltip-box")) != 1 {
		t.Error("content box missing")
	}

	tt.ShowTooltip(coord.Point{X: 300, Y: 300})
	if tt.IsShown() || g.IsVisible() {
		t.Error("tooltip still shown outside the plot")
	}
	want := []string{EventTooltipShow, EventTooltipChange, EventTooltipHide}
	if !slices.Equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestTooltipRenderer(t *testing.T) {
	rows := []data.Datum{{"x": 1.0, "y": 2.0}, {"x": 2.0, "y": 4.0}}
	c := view.NewChart(view.ChartOptions{Width: 200, Height: 200, Padding: []float64{0}, Interactions: []string{}})
	c.Data(rows)
	if _, err := c.AddGeometry(geometry.KindLine, geometry.Options{Position: "x*y"}); err != nil {
		t.Fatal(err)
	}
	c.Render(false)

	var got TooltipContent
	tt := c.GetController(NameTooltip).(*Tooltip)
	tt.SetRenderer(TooltipRendererFunc(func(_ *surface.Group, content TooltipContent) { got = content }))
	tt.ShowTooltip(coord.Point{X: 195, Y: 50})

	if got.Title != "2" || len(got.Items) != 1 || got.Items[0].Value != "4" {
		t.Errorf("content = %+v", got)
	}
	if len(c.ForegroundGroup().FindAll("tooltip-marker")) != 1 {
		t.Error("line item has no marker")
	}
}

func TestCrosshair(t *testing.T) {
	p := coord.Point{X: 30, Y: 40}
	rect := func() coord.Coordinate { return coord.NewRect(coord.Point{X: 0, Y: 100}, coord.Point{X: 100, Y: 0}) }
	transposed := rect()
	transposed.Transpose()
	polar := coord.NewPolar(coord.TypePolar, coord.Point{X: 0, Y: 100}, coord.Point{X: 100, Y: 0}, coord.PolarConfig{})

	tests := []struct {
		name string
		c    coord.Coordinate
		dim  coord.Dimension
		want []coord.Point
	}{
		{"rect x", rect(), coord.DimX, []coord.Point{{X: 30, Y: 100}, {X: 30, Y: 0}}},
		{"rect y", rect(), coord.DimY, []coord.Point{{X: 0, Y: 40}, {X: 100, Y: 40}}},
		{"transposed x", transposed, coord.DimX, []coord.Point{{X: 0, Y: 40}, {X: 100, Y: 40}}},
		{"transposed y", transposed, coord.DimY, []coord.Point{{X: 30, Y: 100}, {X: 30, Y: 0}}},
		{"polar x", polar, coord.DimX, []coord.Point{{X: 50, Y: 50}, coord.PolarToCartesian(coord.Point{X: 50, Y: 50}, 50, math.Atan2(-10, -20))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Crosshair(tt.c, tt.dim, p, surface.Attrs{})
			if s.Kind != surface.KindLine || len(s.Points) != 2 {
				t.Fatalf("shape = %+v", s)
			}
			for i, w := range tt.want {
				if !near(s.Points[i].X, w.X) || !near(s.Points[i].Y, w.Y) {
					t.Errorf("point %d = %+v, want %+v", i, s.Points[i], w)
				}
			}
		})
	}

	s := Crosshair(polar, coord.DimY, coord.Point{X: 50, Y: 20}, surface.Attrs{})
	if s.Kind != surface.KindCircle || !near(s.R, 30) || !near(s.X, 50) || !near(s.Y, 50) {
		t.Errorf("polar y crosshair = %+v", s)
	}
}

func TestBoxRendererStaysInBounds(t *testing.T) {
	th := theme.Light()
	content := TooltipContent{
		Title:  "Shooter",
		Items:  []view.TooltipItem{{Name: "sold", Value: "40", Color: "#000"}},
		Bounds: coord.BBox{Width: 200, Height: 200},
		Theme:  th,
	}
	tests := []struct {
		name   string
		anchor coord.Point
		check  func(b coord.BBox) bool
	}{
		{"below right", coord.Point{X: 20, Y: 20}, func(b coord.BBox) bool { return near(b.X, 20+th.Tooltip.Offset) && near(b.Y, 20+th.Tooltip.Offset) }},
		{"flipped", coord.Point{X: 195, Y: 195}, func(b coord.BBox) bool {
			return near(b.MaxX(), 195-th.Tooltip.Offset) && near(b.MaxY(), 195-th.Tooltip.Offset)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := surface.NewGroup("content")
			content.Anchor = tt.anchor
			BoxRenderer{}.Render(g, content)
			box := g.FindAll("tooltip-box")
			if len(box) != 1 {
				t.Fatalf("got %d boxes", len(box))
			}
			if b := box[0].BBox(); !tt.check(b) {
				t.Errorf("box = %+v", b)
			}
			if len(g.FindAll("tooltip-item")) != 1 {
				t.Error("item row missing")
			}
		})
	}
}

func TestAnnotations(t *testing.T) {
	c := newChart(t, 200, 200, []float64{0}, geometry.Options{Position: "genre*sold"})
	c.Scale("sold", scale.Def{Max: scale.Float(40)})
	c.Annotation(view.Annotation{Type: view.AnnotationText, Start: []any{"Shooter", "max"}, Content: "peak"})
	c.Annotation(view.Annotation{Type: view.AnnotationRegion, Start: []any{"min", 0.0}, End: []any{"max", 20.0}, Top: true})
	c.Annotation(view.Annotation{Type: view.AnnotationLine, Start: []any{"min"}})
	c.Render(false)

	texts := c.BackgroundGroup().FindAll("annotation-text")
	if len(texts) != 1 || texts[0].Text != "peak" || !near(texts[0].X, 175) || !near(texts[0].Y, 0) {
		t.Fatalf("text = %+v", texts)
	}
	regions := c.ForegroundGroup().FindAll("annotation-region")
	if len(regions) != 1 {
		t.Fatalf("got %d regions", len(regions))
	}
	if b := regions[0].BBox(); !near(b.X, 25) || !near(b.Width, 150) || !near(b.Y, 100) || !near(b.Height, 100) {
		t.Errorf("region box = %+v", b)
	}
	if got := len(c.BackgroundGroup().FindAll("annotation")); got != 1 {
		t.Errorf("got %d background annotations; the incomplete line must be skipped", got)
	}
}

func TestResolvePosition(t *testing.T) {
	cat := scale.New("genre", []any{"a", "b", "c"}, scale.Def{Type: scale.TypeCat})
	lin := scale.New("v", []any{0.0, 100.0}, scale.Def{Type: scale.TypeLinear})
	tests := []struct {
		s    *scale.Scale
		v    any
		want float64
	}{
		{cat, "min", 0},
		{cat, "max", 1},
		{cat, "median", 0.5},
		{cat, "c", 1},
		{lin, "min", 0},
		{lin, "max", 1},
		{lin, "median", 0.5},
		{lin, 25.0, 0.25},
		{lin, "50%", 0.5},
		{cat, "100%", 1},
	}
	for _, tt := range tests {
		if got := ResolvePosition(tt.s, tt.v); !near(got, tt.want) {
			t.Errorf("ResolvePosition(%s, %v) = %v, want %v", tt.s.Field, tt.v, got, tt.want)
		}
	}
}

func ExampleResolvePosition() {
	s := scale.New("year", []any{"2021", "2022", "2023", "2024", "2025"}, scale.Def{Type: scale.TypeCat})
	fmt.Println(ResolvePosition(s, "min"), ResolvePosition(s, "median"), ResolvePosition(s, "max"))
	// Output: 0 0.5 1
}
