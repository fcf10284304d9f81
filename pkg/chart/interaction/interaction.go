// Package interaction wires pointer events to chart behavior. Importing it
// registers the built-in interactions with the view package:
//
//   - "tooltip" follows the pointer through the plot with the root tooltip.
//   - "legend-filter" toggles a category when its legend item is clicked.
//   - "element-active" highlights the element under the pointer.
//   - "element-selected" toggles the selection of a clicked element.
//
// The first three are attached to every chart by default; see
// [view.DefaultInteractions].
package interaction

import (
	"github.com/matzehuels/stackchart/pkg/chart/geometry"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/chart/view"
)

const (
	NameTooltip         = "tooltip"
	NameLegendFilter    = "legend-filter"
	NameElementActive   = "element-active"
	NameElementSelected = "element-selected"
)

func init() {
	view.RegisterInteraction(NameTooltip, func(v *view.View, _ any) view.Interaction { return NewTooltip(v) })
	view.RegisterInteraction(NameLegendFilter, func(v *view.View, _ any) view.Interaction { return NewLegendFilter(v) })
	view.RegisterInteraction(NameElementActive, func(v *view.View, _ any) view.Interaction { return NewElementActive(v) })
	view.RegisterInteraction(NameElementSelected, func(v *view.View, _ any) view.Interaction { return NewElementSelected(v) })
}

// base holds the subscriptions of an interaction.
type base struct {
	view *view.View
	offs []func()
}

func (b *base) on(off func()) { b.offs = append(b.offs, off) }

// Destroy removes every subscription.
func (b *base) Destroy() {
	for _, off := range b.offs {
		off()
	}
	b.offs = nil
}

// findElement returns the geometry element drawn as s anywhere below v.
func findElement(v *view.View, s *surface.Shape) *geometry.Element {
	if s == nil {
		return nil
	}
	for _, g := range v.Geometries() {
		for _, el := range g.Elements() {
			if el.Shape == s {
				return el
			}
		}
	}
	for _, c := range v.Views() {
		if el := findElement(c, s); el != nil {
			return el
		}
	}
	return nil
}
