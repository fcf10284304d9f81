// Package component implements the view controllers that draw everything
// around the geometries: axes, legends, the tooltip and annotations.
//
// Each controller is registered with [view.RegisterController] from this
// package's init, in the order axis, legend, tooltip, annotation, so every
// view created after the package is imported carries one instance of each.
// Controllers follow the view's layout protocol:
//
//   - Init and Update run in the layout pass and size the components, so
//     the layout function can reserve padding on the side each one docks to.
//   - Layout positions the components on the final coordinate box.
//   - Render draws them in the paint pass.
//
// Axes and annotations draw into the view's background layer, legends and
// the tooltip into the foreground layer.
//
// # Shape names
//
// Legend markers and labels are named "legend-item-marker" and
// "legend-item-name" and both inherit "legend-item", so a click on either
// surfaces on the view as "legend-item:click" with the [LegendItem] as the
// event data.
package component
