// Package render turns a chart's scene into output files.
//
// The format sinks live in [sink]: SVG through svgo, PNG rasterized with
// fogleman/gg, PDF converted from the SVG, and a JSON dump of the scene.
// [viewtree] draws the view hierarchy of a chart with Graphviz.
//
// This package holds the conversions shared by the sinks:
//
//	svg := sink.SVG(c.Canvas())
//	pdf, err := render.ToPDF(ctx, svg)
//
// [sink]: github.com/matzehuels/stackchart/pkg/render/sink
// [viewtree]: github.com/matzehuels/stackchart/pkg/render/viewtree
package render
