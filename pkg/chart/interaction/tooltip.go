package interaction

import (
	"github.com/matzehuels/stackchart/pkg/chart/component"
	"github.com/matzehuels/stackchart/pkg/chart/view"
)

// Tooltip shows the view's tooltip while the pointer moves in the plot
// and hides it when the pointer leaves.
type Tooltip struct {
	base
}

func NewTooltip(v *view.View) *Tooltip {
	return &Tooltip{base: base{view: v}}
}

func (t *Tooltip) Init() {
	for _, topic := range []string{"plot:mousemove", "plot:touchstart", "plot:touchmove"} {
		t.on(t.view.On(topic, t.show))
	}
	for _, topic := range []string{view.EventPlotMouseLeave, view.EventPlotLeave} {
		t.on(t.view.On(topic, t.hide))
	}
}

func (t *Tooltip) controller() *component.Tooltip {
	c, _ := t.view.GetController(component.NameTooltip).(*component.Tooltip)
	return c
}

func (t *Tooltip) show(e *view.Event) {
	if c := t.controller(); c != nil {
		c.ShowTooltip(e.Point())
	}
}

func (t *Tooltip) hide(*view.Event) {
	if c := t.controller(); c != nil {
		c.HideTooltip()
	}
}
