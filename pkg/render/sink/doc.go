// Package sink writes a chart scene in an output format.
//
// Every sink walks the retained scene of a [surface.Canvas] in draw order
// and emits one output element per visible shape. Hidden groups and shapes
// are skipped, group clip boxes are honored and groups marked for
// animation fade in where the format supports it (SVG only).
//
//	c.Render(false)
//	svg := sink.SVG(c.Canvas(), sink.WithTitle("Sales by genre"))
//	png, err := sink.PNG(c.Canvas(), sink.WithScale(2))
//	js, err := sink.JSON(c.Canvas())
//
// PDF output converts the SVG with rsvg-convert and therefore needs
// librsvg installed.
package sink
