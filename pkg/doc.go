// Package pkg provides the core libraries of Stackchart, a
// grammar-of-graphics chart engine.
//
// # Overview
//
// A chart is a tree of views. Each view owns data, scales, a coordinate
// system, geometries that map rows to shapes, and controllers (axes,
// legends, tooltips, annotations) that draw around them. Views render into
// a retained scene of shapes that the sinks export. The pkg directory is
// organized into four areas:
//
//  1. [chart] - The engine: views, scales, coordinates, geometries,
//     components, facets and interactions
//  2. [render] - Exporting the scene (SVG, PNG, PDF, JSON) and the view
//     tree (Graphviz)
//  3. [pipeline] - Orchestration (load → build → render) shared by the CLI
//     and the HTTP API
//  4. [server], [store], [cache] - The HTTP API, chart persistence and
//     artifact caching
//
// # Architecture
//
// The typical data flow through Stackchart:
//
//	CSV / JSON / YAML rows
//	         ↓
//	    [data] package (load and normalize rows)
//	         ↓
//	    [recipe] package (named chart configurations)
//	         ↓
//	    [chart] package (view tree → scene)
//	         ↓
//	    [render/sink] package
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// Build a stacked column chart and export it:
//
//	import (
//	    "github.com/matzehuels/stackchart/pkg/chart"
//	    "github.com/matzehuels/stackchart/pkg/chart/geometry"
//	    "github.com/matzehuels/stackchart/pkg/render/sink"
//	)
//
//	c := chart.New(chart.Options{Width: 640, Height: 480})
//	c.Data(rows)
//	if _, err := c.AddGeometry(geometry.KindInterval, geometry.Options{
//	    Position: "month*sales",
//	    Color:    "region",
//	    Adjust:   []string{"stack"},
//	}); err != nil {
//	    return err
//	}
//	c.Render(false)
//	svg := sink.SVG(c.Canvas())
//
// # Main Packages
//
// ## Chart Engine
//
// [chart/view] - The view tree: data flow, scale synchronization, layout
// passes, event bubbling and the render lifecycle.
//
// [chart/scale] - Scale descriptors and the per-chart pool that keeps
// scales shared across views in sync.
//
// [chart/coord] - Rect, polar and theta coordinates with transpose,
// reflect and rotate actions.
//
// [chart/geometry] - Interval, line, area, point and polygon geometries
// with stack, dodge and jitter adjustments.
//
// [chart/component] - Axis, legend, tooltip and annotation controllers.
//
// [chart/facet] - Rect and list facets splitting data into child views.
//
// [chart/interaction] - Tooltip, legend filter and element state
// interactions.
//
// [chart/surface] - The retained scene: groups, shapes, hit testing and
// event dispatch.
//
// ## Supporting Packages
//
// [data] - Datum rows and CSV, JSON and YAML loaders.
//
// [theme] - Built-in light and dark themes, and YAML theme files.
//
// [errors] - Error codes shared by every package.
//
// [observability] - Hooks for pipeline, view, cache and server events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/chart/...    # Engine only
//	go test -run Example       # Examples only
//
// [chart]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/chart
// [chart/view]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/chart/view
// [chart/scale]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/chart/scale
// [chart/coord]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/chart/coord
// [chart/geometry]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/chart/geometry
// [chart/component]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/chart/component
// [chart/facet]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/chart/facet
// [chart/interaction]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/chart/interaction
// [chart/surface]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/chart/surface
// [render]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/server
// [store]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/store
// [cache]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/cache
// [data]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/data
// [recipe]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/recipe
// [theme]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/theme
// [errors]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/observability
package pkg
