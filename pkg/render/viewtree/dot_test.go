package viewtree

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/chart/geometry"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/data"
)

func layered(t *testing.T) (*view.Chart, *view.View) {
	t.Helper()
	c := chart.New(chart.Options{Width: 300, Height: 200})
	c.Data([]data.Datum{
		{"month": "Jan", "temp": 7.0},
		{"month": "Feb", "temp": 6.9},
	})
	if _, err := c.AddGeometry(geometry.KindLine, geometry.Options{Position: "month*temp"}); err != nil {
		t.Fatal(err)
	}
	child := c.CreateView(view.ViewConfig{})
	if _, err := child.AddGeometry(geometry.KindPoint, geometry.Options{Position: "month*temp"}); err != nil {
		t.Fatal(err)
	}
	c.Render(false)
	return c, child
}

func TestToDOT(t *testing.T) {
	c, child := layered(t)
	dot := ToDOT(c, Options{})

	for _, want := range []string{
		"digraph G {",
		`"` + c.ID() + `" -> "` + child.ID() + `";`,
		`"` + c.ID() + `/line#0" [label="line"`,
		`"` + child.ID() + `/point#0"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT lacks %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "state:") {
		t.Error("plain diagram carries details")
	}
}

func TestToDOTDetailed(t *testing.T) {
	c, child := layered(t)
	child.ChangeVisible(false)
	dot := ToDOT(c, Options{Detailed: true})

	for _, want := range []string{
		`state: rendered`,
		`coord: rect`,
		`rows: 2`,
		`elements: 1`,
		`style="rounded,filled,dashed"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT lacks %s\n%s", want, dot)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	c, _ := layered(t)
	svg, err := RenderSVG(context.Background(), ToDOT(c, Options{Detailed: true}))
	if err != nil {
		t.Fatal(err)
	}
	out := string(svg)
	if !strings.Contains(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("root element not normalized: %.200s", out)
	}
	if !strings.Contains(out, c.ID()) {
		t.Error("SVG lacks the root view")
	}
}

func TestRenderSVGBadDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("expected an error for truncated DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
	if out := normalizeViewBox([]byte("<svg>")); string(out) != "<svg>" {
		t.Errorf("no viewBox: got %s", out)
	}
}
