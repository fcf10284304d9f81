// Package scale maps data values onto the unit range and back.
//
// A [Scale] wraps one field's domain together with its tick values, text
// formatting and classification (continuous, category or identity). Scales
// are built from a [Def], the user-facing configuration, and the field's
// data; [Scale.Update] re-runs the whole resolution pipeline in a fixed
// order:
//
//  1. a type change swaps in fresh state;
//  2. the new definition is merged over the current one and type defaults
//     (date parsing and mask formatting for time types) are applied;
//  3. the domain is resolved from explicit values or data, then explicit
//     Min and Max override its endpoints;
//  4. continuous scales mirror the domain endpoints into Min and Max;
//  5. tick values are recomputed: explicit Ticks, then TickFunc, then a
//     named tick method, then the type's default method.
//
// Continuous types delegate mapping and tick placement to
// github.com/aclements/go-moremath/scale.
//
// A [Pool] caches one scale instance per key for a whole view tree, so
// every view that resolves the same key shares and mutates the same
// instance. [Pool.Sync] unifies the domains of scales that share a sync
// group.
package scale
