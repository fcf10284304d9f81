// Package view implements the chart view tree and its render pipeline.
//
// A [View] owns data, per-field filters and scale definitions, geometries,
// child views and one [Controller] per registered component type (axis,
// legend, tooltip, annotation). The root view of a tree is a [Chart]; it
// owns the canvas and the only [scale.Pool].
//
// # Rendering
//
// Render runs three passes, each over the whole subtree before the next
// one starts, visiting a view before its children:
//
//  1. data: filter rows, create the coordinate, create scales through the
//     root pool and init geometries, adjust category ranges, expand facets.
//     The root then syncs the pool.
//  2. layout: compute the view box from the parent's coordinate box and the
//     view's region, init controllers, run the layout function (auto padding
//     from component sizes) and re-adjust the coordinate.
//  3. paint: paint geometries on the final coordinate and render
//     controller components.
//
// # Scales
//
// Scale creation walks up to the root, merging the definitions of every
// view on the way with the definition closest to the data winning. Pool
// keys are "{viewId}-{field}" unless the definition sets Key, so views share
// a scale only through an explicit key or a sync group.
//
// # Events
//
// Shapes drawn in a view's layers report pointer events under composite
// topics such as "interval:click". The owning view re-emits them under the
// composite name, then as "<inherited name>:<type>" for every inherited
// name ("element:click"), and stops their bubbling. Raw canvas events are
// re-emitted as plot events ("plot:click", "plot:mouseenter") followed by
// the plain type.
package view
