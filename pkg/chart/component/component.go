package component

import (
	"github.com/matzehuels/stackchart/pkg/chart/view"
)

// Controller names.
const (
	NameAxis       = "axis"
	NameLegend     = "legend"
	NameTooltip    = "tooltip"
	NameAnnotation = "annotation"
)

func init() {
	view.RegisterController(NameAxis, func(v *view.View) view.Controller { return NewAxis(v) })
	view.RegisterController(NameLegend, func(v *view.View) view.Controller { return NewLegend(v) })
	view.RegisterController(NameTooltip, func(v *view.View) view.Controller { return NewTooltip(v) })
	view.RegisterController(NameAnnotation, func(v *view.View) view.Controller { return NewAnnotation(v) })
}

// base holds what every controller shares: its view, its components and
// their visibility.
type base struct {
	view       *view.View
	components []view.Component
	hidden     bool
}

func (b *base) Components() []view.Component { return b.components }

// Clear destroys the groups of every component.
func (b *base) Clear() {
	for _, c := range b.components {
		c.Group.Destroy()
	}
	b.components = nil
}

func (b *base) Destroy() { b.Clear() }

func (b *base) ChangeVisible(visible bool) {
	b.hidden = !visible
	for _, c := range b.components {
		c.Group.SetVisible(visible)
	}
}

func (b *base) add(c view.Component) {
	c.Group.SetVisible(!b.hidden)
	b.components = append(b.components, c)
}
