// Package surface is the retained scene a chart draws into.
//
// A [Canvas] is the root [Group]. Groups nest and hold [Shape] values
// (rectangles, circles, lines, polylines, polygons and text) in draw order;
// later children paint over earlier ones. Sinks in pkg/render walk the tree
// to produce SVG, PNG or JSON.
//
// Pointer input enters through [Canvas.Dispatch]. The topmost visible shape
// under the pointer is the target. When the target has a name, a delegate
// event named "<shape name>:<type>" is delivered to every ancestor group's
// delegate handlers, innermost first, until a handler stops propagation.
// Afterwards the plain event is delivered to the canvas handlers:
//
//	layer.OnDelegate(func(e *surface.Event) { fmt.Println(e.Name) }) // "legend-item-marker:click"
//	canvas.On("*", func(e *surface.Event) { fmt.Println(e.Type) })   // "click"
//	canvas.Dispatch("click", coord.Point{X: 10, Y: 20})
package surface
