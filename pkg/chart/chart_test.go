package chart

import (
	"slices"
	"testing"

	"github.com/matzehuels/stackchart/pkg/chart/geometry"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/data"
)

func TestNewRegistersBuiltins(t *testing.T) {
	c := New(Options{Width: 300, Height: 200})
	for _, name := range []string{"axis", "legend", "tooltip", "annotation"} {
		if !slices.Contains(view.ControllerNames(), name) {
			t.Errorf("controller %q not registered", name)
		}
		if c.GetController(name) == nil {
			t.Errorf("chart has no %q controller", name)
		}
	}
	for _, name := range view.DefaultInteractions {
		if c.GetInteraction(name) == nil {
			t.Errorf("interaction %q not attached", name)
		}
	}
	if err := c.Facet("rect", map[string]int{}); err == nil {
		t.Error("rect facet accepted a config of the wrong type")
	}
}

func TestInspect(t *testing.T) {
	c := New(Options{Width: 300, Height: 200})
	c.Data([]data.Datum{
		{"genre": "Sports", "sold": 10.0},
		{"genre": "Action", "sold": 30.0},
	})
	if _, err := c.AddGeometry(geometry.KindInterval, geometry.Options{Position: "genre*sold"}); err != nil {
		t.Fatal(err)
	}
	c.Render(false)

	s := Inspect(c)
	if s.Views != 1 || s.Geometries != 1 || s.Elements != 2 {
		t.Errorf("Inspect = %+v", s)
	}
	if s.Shapes <= s.Elements {
		t.Errorf("Shapes = %d, want more than the %d elements (axes)", s.Shapes, s.Elements)
	}
}
