// Package geometry turns scaled records into shapes.
//
// A [Geometry] is configured with [Options] (its position fields "x*y", an
// optional color field and adjustments), initialized by its view with the
// filtered data, the shared scales and the coordinate, and painted into a
// surface group once layout is final. Built-in kinds are "interval", "line",
// "area" and "point"; [Register] adds more.
//
// Init groups the data by the categorical color field and applies the
// stack adjustment, widening the shared y scale when needed. Paint maps
// every record through the scales and the coordinate and creates one
// [Element] per shape: interval and point geometries draw one shape per
// record, line and area geometries one per group.
package geometry
