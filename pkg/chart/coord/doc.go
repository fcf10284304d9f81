// Package coord maps the unit square onto pixel space.
//
// A [Coordinate] is either rectangular ([Rect]) or polar ([Polar], with the
// "polar" and "theta" types). Both are described by two pixel corners: Start
// is the bottom-left corner of the plot box and End the top-right one, so the
// unit point (0, 0) lands on Start and (1, 1) on End for an unmodified
// rectangular coordinate.
//
// Instances are built by a [Controller], which records the configured type
// and transform actions (transpose, reflect, rotate, scale, translate) and
// replays them whenever a view creates or adjusts its coordinate:
//
//	ctrl := coord.NewController(coord.Option{Type: coord.TypeTheta})
//	c := ctrl.Create(bbox.BottomLeft(), bbox.TopRight())
//	inside := coord.IsPointInCoordinate(c, coord.Point{X: 50, Y: 50})
//
// The query helpers in util.go are pure functions of a coordinate and one or
// more points. Each requires a live coordinate instance; calling them before a
// view has rendered is a programming error.
package coord
