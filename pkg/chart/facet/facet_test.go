package facet

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/stackchart/pkg/chart/geometry"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/errors"
)

func releases() []data.Datum {
	return []data.Datum{
		{"genre": "Action", "year": "2020", "platform": "PC", "sold": 10.0},
		{"genre": "Sports", "year": "2020", "platform": "PC", "sold": 20.0},
		{"genre": "Action", "year": "2021", "platform": "PC", "sold": 30.0},
		{"genre": "Sports", "year": "2021", "platform": "PC", "sold": 80.0},
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func newChart(rows []data.Datum) *view.Chart {
	c := view.NewChart(view.ChartOptions{Width: 400, Height: 400, Interactions: []string{}})
	c.Data(rows)
	return c
}

func bars(v *view.View, _ *Data) {
	v.AddGeometry(geometry.KindInterval, geometry.Options{Position: "platform*sold"})
}

func render(t *testing.T, c *view.Chart, kind string, cfg Config) {
	t.Helper()
	if err := c.Facet(kind, cfg); err != nil {
		t.Fatalf("Facet(%s): %v", kind, err)
	}
	c.Render(false)
}

func TestRectPanels(t *testing.T) {
	var seen []*Data
	c := newChart(releases())
	render(t, c, KindRect, Config{
		Fields: []string{"genre", "year"},
		EachView: func(v *view.View, d *Data) {
			seen = append(seen, d)
			bars(v, d)
		},
	})

	if len(seen) != 4 || len(c.Views()) != 4 {
		t.Fatalf("got %d panels and %d views, want 4", len(seen), len(c.Views()))
	}
	tests := []struct {
		col, row any
		ci, ri   int
		sold     float64
		x0, y0   float64
	}{
		{"Action", "2020", 0, 0, 10, 0, 0},
		{"Sports", "2020", 1, 0, 20, 0.5, 0},
		{"Action", "2021", 0, 1, 30, 0, 0.5},
		{"Sports", "2021", 1, 1, 80, 0.5, 0.5},
	}
	for i, tt := range tests {
		d := seen[i]
		if d.ColValue != tt.col || d.RowValue != tt.row || d.ColIndex != tt.ci || d.RowIndex != tt.ri {
			t.Errorf("panel %d = %v/%v at (%d, %d)", i, d.ColValue, d.RowValue, d.ColIndex, d.RowIndex)
		}
		if len(d.Rows) != 1 || d.Rows[0]["sold"] != tt.sold {
			t.Errorf("panel %d rows = %v", i, d.Rows)
		}
		if !near(d.Region.Start.X, tt.x0) || !near(d.Region.Start.Y, tt.y0) || !near(d.Region.End.X, tt.x0+0.5) {
			t.Errorf("panel %d region = %+v", i, d.Region)
		}
		if d.View != c.Views()[i] {
			t.Errorf("panel %d view is not the chart's child %d", i, i)
		}
	}
}

func TestPanelsShareDomains(t *testing.T) {
	c := newChart(releases())
	render(t, c, KindRect, Config{Fields: []string{"genre", "year"}, EachView: bars})

	views := c.Views()
	first, last := views[0].GetScaleByField("sold"), views[3].GetScaleByField("sold")
	if first == nil || last == nil {
		t.Fatal("panel has no sold scale")
	}
	if first.Max != last.Max || first.Max < 80 {
		t.Errorf("sold max = %v and %v, want one synced max of at least 80", first.Max, last.Max)
	}
	for _, v := range views {
		if !v.Options().Scales["sold"].Sync || !v.Options().Scales["platform"].Sync {
			t.Errorf("view %s scales not synced: %+v", v.ID(), v.Options().Scales)
		}
	}
}

func TestRectAxesAndTitles(t *testing.T) {
	c := newChart(releases())
	render(t, c, KindRect, Config{Fields: []string{"genre", "year"}, EachView: bars})

	tests := []struct {
		xHidden, yHidden bool
		titles           []string
	}{
		{true, false, []string{"Action"}},
		{true, true, []string{"Sports", "2020"}},
		{false, false, nil},
		{false, true, []string{"2021"}},
	}
	for i, tt := range tests {
		opts := c.Views()[i].Options()
		if got := opts.Axes["platform"].Disabled; got != tt.xHidden {
			t.Errorf("panel %d x axis disabled = %v, want %v", i, got, tt.xHidden)
		}
		if got := opts.Axes["sold"].Disabled; got != tt.yHidden {
			t.Errorf("panel %d y axis disabled = %v, want %v", i, got, tt.yHidden)
		}
		var titles []string
		for _, a := range opts.Annotations {
			titles = append(titles, a.Content)
		}
		if fmt.Sprint(titles) != fmt.Sprint(tt.titles) {
			t.Errorf("panel %d titles = %v, want %v", i, titles, tt.titles)
		}
	}
}

func TestHideTitle(t *testing.T) {
	c := newChart(releases())
	render(t, c, KindRect, Config{Fields: []string{"genre"}, HideTitle: true, EachView: bars})
	if len(c.Views()) != 2 {
		t.Fatalf("got %d panels, want one per genre", len(c.Views()))
	}
	for _, v := range c.Views() {
		if len(v.Options().Annotations) != 0 {
			t.Errorf("view %s has titles", v.ID())
		}
	}
}

func TestListWraps(t *testing.T) {
	var rows []data.Datum
	for _, g := range []string{"a", "b", "c", "d", "e"} {
		rows = append(rows, data.Datum{"genre": g, "platform": "PC", "sold": 1.0})
	}
	var seen []*Data
	c := newChart(rows)
	render(t, c, KindList, Config{
		Fields:  []string{"genre"},
		Cols:    2,
		Spacing: 0.1,
		EachView: func(v *view.View, d *Data) {
			seen = append(seen, d)
			bars(v, d)
		},
	})

	if len(seen) != 5 {
		t.Fatalf("got %d panels, want 5", len(seen))
	}
	d := seen[4]
	if d.ColIndex != 0 || d.RowIndex != 2 || d.RowCount != 3 || d.ColCount != 2 {
		t.Errorf("last panel at (%d, %d) of %dx%d", d.ColIndex, d.RowIndex, d.ColCount, d.RowCount)
	}
	// Three rows of height h with two gaps of 0.1: 3h + 0.2 = 1.
	h := 0.8 / 3
	if !near(d.Region.Start.Y, 2*(h+0.1)) || !near(d.Region.End.Y, 1) || !near(d.Region.End.X, 0.45) {
		t.Errorf("last panel region = %+v", d.Region)
	}

	// Panel 3 has nothing below it; panel 2 has panel 4 below.
	hidden := []bool{true, true, true, false, false}
	for i, v := range c.Views() {
		if got := v.Options().Axes["platform"].Disabled; got != hidden[i] {
			t.Errorf("panel %d x axis disabled = %v, want %v", i, got, hidden[i])
		}
		if len(v.Options().Annotations) != 1 {
			t.Errorf("panel %d has %d titles, want 1", i, len(v.Options().Annotations))
		}
	}
}

func TestUpdateRecreatesPanels(t *testing.T) {
	c := newChart(releases())
	render(t, c, KindList, Config{Fields: []string{"year"}, EachView: bars})
	before := c.Views()[0]

	c.ChangeData(releases()[:2])
	if len(c.Views()) != 1 {
		t.Fatalf("got %d panels after changing data, want 1", len(c.Views()))
	}
	if c.Views()[0] == before || before.State() != view.StateDestroyed {
		t.Error("old panel was not replaced")
	}
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		kind string
		cfg  any
	}{
		{"wrong type", KindRect, "genre"},
		{"nil pointer", KindRect, (*Config)(nil)},
		{"no fields", KindRect, Config{}},
		{"list without field", KindList, Config{Fields: []string{"", "year"}}},
		{"spacing", KindList, Config{Fields: []string{"year"}, Spacing: 1}},
		{"cols", KindList, Config{Fields: []string{"year"}, Cols: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newChart(releases()).Facet(tt.kind, tt.cfg)
			if !errors.Is(err, errors.ErrCodeInvalidFacet) {
				t.Errorf("Facet() error = %v, want INVALID_FACET", err)
			}
		})
	}
	if err := newChart(releases()).Facet(KindRect, &Config{Fields: []string{"year"}}); err != nil {
		t.Errorf("pointer config rejected: %v", err)
	}
}

func Example() {
	c := view.NewChart(view.ChartOptions{Width: 400, Height: 200, Interactions: []string{}})
	c.Data(releases())
	c.Facet(KindList, Config{
		Fields: []string{"genre"},
		EachView: func(v *view.View, d *Data) {
			fmt.Printf("%v: %d rows, x %.2f-%.2f\n", d.ColValue, len(d.Rows), d.Region.Start.X, d.Region.End.X)
			bars(v, d)
		},
	})
	c.Render(false)
	// Output:
	// Action: 2 rows, x 0.00-0.50
	// Sports: 2 rows, x 0.50-1.00
}
