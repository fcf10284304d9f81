// Package chart is the entry point of the chart engine. Importing it
// registers the built-in controllers (axis, legend, tooltip, annotation),
// facets (rect, list) and interactions with the view package, so
// [New] returns a chart with the full default behavior:
//
//	c := chart.New(chart.Options{Width: 640, Height: 480})
//	c.Data(rows)
//	if _, err := c.AddGeometry(geometry.KindInterval, geometry.Options{Position: "genre*sold", Color: "genre"}); err != nil {
//	    return err
//	}
//	c.Render(false)
//
// Rendered charts are drawn by the sinks in pkg/render.
package chart

import (
	_ "github.com/matzehuels/stackchart/pkg/chart/component"
	_ "github.com/matzehuels/stackchart/pkg/chart/facet"
	_ "github.com/matzehuels/stackchart/pkg/chart/interaction"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/chart/view"
)

// Options configures a new chart.
type Options = view.ChartOptions

// New creates an empty chart.
func New(opts Options) *view.Chart {
	return view.NewChart(opts)
}

// Stats counts what a rendered chart holds.
type Stats struct {
	Views      int `json:"views"`
	Geometries int `json:"geometries"`
	Elements   int `json:"elements"`
	Shapes     int `json:"shapes"`
}

// Inspect walks the view tree and the scene of c.
func Inspect(c *view.Chart) Stats {
	var s Stats
	var walk func(v *view.View)
	walk = func(v *view.View) {
		s.Views++
		for _, g := range v.Geometries() {
			s.Geometries++
			s.Elements += len(g.Elements())
		}
		for _, child := range v.Views() {
			walk(child)
		}
	}
	walk(c.View)
	c.Canvas().Walk(func(e surface.Element, _ int) bool {
		if !e.IsVisible() {
			return false
		}
		if _, ok := e.(*surface.Shape); ok {
			s.Shapes++
		}
		return true
	})
	return s
}
