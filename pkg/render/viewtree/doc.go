// Package viewtree draws the view hierarchy of a chart as a Graphviz
// node-link diagram.
//
// # Usage
//
// Convert a chart to DOT, then render it to SVG:
//
//	dot := viewtree.ToDOT(c, viewtree.Options{Detailed: true})
//	svg, err := viewtree.RenderSVG(ctx, dot)
//
// Views appear as rounded boxes, geometries as ellipses hanging off the
// view that owns them. Hidden views are drawn dashed. With Detailed set,
// view labels carry the life-cycle state, coordinate type and plot box,
// and geometry labels the element count.
//
// PDF and PNG go through [render.ToPDF] and [render.ToPNG], which need
// librsvg (rsvg-convert).
package viewtree
