package interaction

import (
	"github.com/matzehuels/stackchart/pkg/chart/geometry"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/chart/view"
)

// Element state events, emitted on the interaction's view with the
// element's datum as data.
const (
	EventElementActive   = "element:active"
	EventElementInactive = "element:inactive"
	EventElementSelect   = "element:select"
	EventElementUnselect = "element:unselect"
)

// ElementActive sets the active state of the element under the pointer.
// It listens on the canvas, so elements of every view in the tree take
// part.
type ElementActive struct {
	base
	active *geometry.Element
}

func NewElementActive(v *view.View) *ElementActive {
	return &ElementActive{base: base{view: v}}
}

func (a *ElementActive) Init() {
	c := a.view.Canvas()
	a.on(c.On("mousemove", a.move))
	a.on(c.On("mouseleave", a.leave))
}

// Active returns the highlighted element, or nil.
func (a *ElementActive) Active() *geometry.Element { return a.active }

func (a *ElementActive) move(se *surface.Event) {
	el := findElement(a.view, se.Shape)
	if el == a.active {
		return
	}
	a.leave(se)
	if el == nil {
		return
	}
	el.SetState(geometry.StateActive, true)
	a.active = el
	a.view.Emit(EventElementActive, &view.Event{X: se.X, Y: se.Y, Data: el.Data(), Shape: el.Shape})
}

func (a *ElementActive) leave(se *surface.Event) {
	if a.active == nil {
		return
	}
	el := a.active
	a.active = nil
	el.SetState(geometry.StateActive, false)
	a.view.Emit(EventElementInactive, &view.Event{X: se.X, Y: se.Y, Data: el.Data(), Shape: el.Shape})
}

func (a *ElementActive) Destroy() {
	if a.active != nil {
		a.active.SetState(geometry.StateActive, false)
		a.active = nil
	}
	a.base.Destroy()
}

// ElementSelected toggles the selected state of clicked elements.
type ElementSelected struct {
	base
}

func NewElementSelected(v *view.View) *ElementSelected {
	return &ElementSelected{base: base{view: v}}
}

func (s *ElementSelected) Init() {
	s.on(s.view.Canvas().On("click", s.click))
}

func (s *ElementSelected) click(se *surface.Event) {
	el := findElement(s.view, se.Shape)
	if el == nil {
		return
	}
	on := !el.HasState(geometry.StateSelected)
	el.SetState(geometry.StateSelected, on)
	topic := EventElementSelect
	if !on {
		topic = EventElementUnselect
	}
	s.view.Emit(topic, &view.Event{X: se.X, Y: se.Y, Data: el.Data(), Shape: el.Shape})
}

// Selected returns the selected elements below the view.
func (s *ElementSelected) Selected() []*geometry.Element {
	var out []*geometry.Element
	var walk func(v *view.View)
	walk = func(v *view.View) {
		for _, g := range v.Geometries() {
			for _, el := range g.Elements() {
				if el.HasState(geometry.StateSelected) {
					out = append(out, el)
				}
			}
		}
		for _, c := range v.Views() {
			walk(c)
		}
	}
	walk(s.view)
	return out
}
