package interaction

import (
	"slices"
	"testing"

	"github.com/matzehuels/stackchart/pkg/chart/component"
	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/geometry"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/data"
)

func sales() []data.Datum {
	return []data.Datum{
		{"genre": "Sports", "sold": 10.0},
		{"genre": "Strategy", "sold": 20.0},
		{"genre": "Action", "sold": 30.0},
		{"genre": "Shooter", "sold": 40.0},
	}
}

// newChart renders a bar chart with the default interactions.
func newChart(t *testing.T, opts geometry.Options, padding ...float64) *view.Chart {
	t.Helper()
	c := view.NewChart(view.ChartOptions{Width: 200, Height: 200, Padding: padding})
	c.Data(sales())
	if _, err := c.AddGeometry(geometry.KindInterval, opts); err != nil {
		t.Fatal(err)
	}
	c.Render(false)
	return c
}

func TestDefaultInteractionsAttached(t *testing.T) {
	c := newChart(t, geometry.Options{Position: "genre*sold"}, 0)
	for _, name := range view.DefaultInteractions {
		if c.GetInteraction(name) == nil {
			t.Errorf("interaction %q not attached", name)
		}
	}
	if c.GetInteraction(NameElementSelected) != nil {
		t.Error("element-selected attached by default")
	}
	if !slices.Contains(view.InteractionNames(), NameElementSelected) {
		t.Error("element-selected not registered")
	}
}

func TestTooltipFollowsPointer(t *testing.T) {
	c := newChart(t, geometry.Options{Position: "genre*sold"}, 0)
	tt := c.GetController(component.NameTooltip).(*component.Tooltip)

	c.Canvas().Dispatch("mousemove", coord.Point{X: 175, Y: 100})
	if !tt.IsShown() || tt.Items()[0].Title != "Shooter" {
		t.Fatalf("tooltip after move: shown=%v items=%+v", tt.IsShown(), tt.Items())
	}
	c.Canvas().Dispatch("mousemove", coord.Point{X: 25, Y: 100})
	if tt.Items()[0].Title != "Sports" {
		t.Errorf("tooltip did not follow: %+v", tt.Items())
	}
	c.Canvas().Dispatch("mouseleave", coord.Point{X: 0, Y: 0})
	if tt.IsShown() {
		t.Error("tooltip shown after the pointer left")
	}
}

func TestTooltipRemoved(t *testing.T) {
	c := newChart(t, geometry.Options{Position: "genre*sold"}, 0)
	c.RemoveInteraction(NameTooltip)
	c.Canvas().Dispatch("mousemove", coord.Point{X: 175, Y: 100})
	if c.GetController(component.NameTooltip).(*component.Tooltip).IsShown() {
		t.Error("tooltip shown without the interaction")
	}
}

func marker(t *testing.T, c *view.Chart, name string) *surface.Shape {
	t.Helper()
	for _, m := range c.ForegroundGroup().FindAll("legend-item-marker") {
		if m.Origin.(*component.LegendItem).Name == name {
			return m
		}
	}
	t.Fatalf("no legend marker %q", name)
	return nil
}

func TestLegendFilterToggles(t *testing.T) {
	c := newChart(t, geometry.Options{Position: "genre*sold", Color: "genre"})
	lf := c.GetInteraction(NameLegendFilter).(*LegendFilter)
	var changes int
	c.On(EventLegendFilter, func(*view.Event) { changes++ })

	m := marker(t, c, "Action")
	c.Canvas().Dispatch("click", coord.Point{X: m.X, Y: m.Y})

	if got := len(c.GetData()); got != 3 {
		t.Errorf("rows after filtering = %d, want 3", got)
	}
	if !slices.Equal(lf.Excluded("genre"), []any{"Action"}) {
		t.Errorf("excluded = %v", lf.Excluded("genre"))
	}
	items := c.GetController(component.NameLegend).(*component.Legend).Items("genre")
	if len(items) != 4 {
		t.Fatalf("legend lost items: %d", len(items))
	}
	for _, it := range items {
		if it.Unchecked != (it.Name == "Action") {
			t.Errorf("item %s unchecked = %v", it.Name, it.Unchecked)
		}
	}
	for _, el := range c.Geometries()[0].Elements() {
		if el.Data()["genre"] == "Action" {
			t.Error("filtered row still drawn")
		}
	}

	m = marker(t, c, "Action")
	c.Canvas().Dispatch("click", coord.Point{X: m.X, Y: m.Y})
	if got := len(c.GetData()); got != 4 {
		t.Errorf("rows after toggling back = %d, want 4", got)
	}
	if _, ok := c.Options().Filters["genre"]; ok {
		t.Error("filter kept after every value was restored")
	}
	if changes != 2 {
		t.Errorf("got %d change events, want 2", changes)
	}
}

func TestLegendFilterReachesChildren(t *testing.T) {
	c := view.NewChart(view.ChartOptions{Width: 200, Height: 200})
	c.Data(sales())
	child := c.CreateView(view.ViewConfig{})
	if _, err := child.AddGeometry(geometry.KindInterval, geometry.Options{Position: "genre*sold", Color: "genre"}); err != nil {
		t.Fatal(err)
	}
	c.Render(false)

	m := marker(t, c, "Sports")
	c.Canvas().Dispatch("click", coord.Point{X: m.X, Y: m.Y})
	if got := len(child.GetData()); got != 3 {
		t.Errorf("child rows = %d, want 3", got)
	}
	if !child.IsFiltered("genre", "Sports") {
		t.Error("child has no genre filter")
	}
}

func TestElementActive(t *testing.T) {
	c := newChart(t, geometry.Options{Position: "genre*sold"}, 0)
	ea := c.GetInteraction(NameElementActive).(*ElementActive)
	var events []string
	c.On(EventElementActive, func(e *view.Event) { events = append(events, e.Type) })
	c.On(EventElementInactive, func(e *view.Event) { events = append(events, e.Type) })

	bar := c.Geometries()[0].Elements()[3]
	center := bar.Shape.BBox().Center()
	c.Canvas().Dispatch("mousemove", center)
	if ea.Active() != bar || !bar.HasState(geometry.StateActive) {
		t.Fatal("bar under the pointer is not active")
	}
	before := bar.Shape.Attrs
	c.Canvas().Dispatch("mousemove", coord.Point{X: center.X + 1, Y: center.Y})
	if bar.Shape.Attrs.Stroke != before.Stroke {
		t.Error("moving within the bar restyled it")
	}

	c.Canvas().Dispatch("mousemove", coord.Point{X: 50, Y: 25})
	if ea.Active() != nil || bar.HasState(geometry.StateActive) {
		t.Error("bar still active over empty space")
	}
	want := []string{EventElementActive, EventElementInactive}
	if !slices.Equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestElementSelected(t *testing.T) {
	c := newChart(t, geometry.Options{Position: "genre*sold"}, 0)
	if err := c.Interaction(NameElementSelected); err != nil {
		t.Fatal(err)
	}
	es := c.GetInteraction(NameElementSelected).(*ElementSelected)
	bar := c.Geometries()[0].Elements()[1]
	p := bar.Shape.BBox().Center()

	c.Canvas().Dispatch("click", p)
	if got := es.Selected(); len(got) != 1 || got[0] != bar {
		t.Fatalf("selected = %v", got)
	}
	c.Canvas().Dispatch("click", p)
	if len(es.Selected()) != 0 {
		t.Error("second click did not unselect")
	}
}
