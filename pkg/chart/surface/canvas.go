package surface

import (
	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/event"
)

// Event is a pointer event on the scene.
type Event struct {
	// Type is the raw pointer type, e.g. "click".
	Type string
	// Name is the topic: "<shape name>:<type>" for delegate events, Type
	// otherwise.
	Name string
	X, Y float64
	// Shape is the picked shape, nil over empty space.
	Shape *Shape

	stopped bool
}

// Point returns the pointer position.
func (e *Event) Point() coord.Point { return coord.Point{X: e.X, Y: e.Y} }

// StopPropagation ends delegate bubbling after the current group.
func (e *Event) StopPropagation() { e.stopped = true }

// Canvas is the root of a scene.
type Canvas struct {
	Group
	Width      float64
	Height     float64
	Background string

	raw   event.Emitter[*Event]
	hover *Shape
}

// NewCanvas returns an empty canvas of the given pixel size.
func NewCanvas(width, height float64) *Canvas {
	return &Canvas{Group: Group{Name: "canvas"}, Width: width, Height: height}
}

// Root returns the canvas as a group.
func (c *Canvas) Root() *Group { return &c.Group }

// BBox returns the full canvas area.
func (c *Canvas) BBox() coord.BBox {
	return coord.BBox{Width: c.Width, Height: c.Height}
}

// On subscribes fn to raw events of the given type, or all of them with
// "*".
func (c *Canvas) On(typ string, fn func(*Event)) func() {
	return c.raw.On(typ, fn)
}

// Dispatch delivers a pointer event at p: first the delegate event of the
// picked shape through its ancestor groups, then the raw event to the
// canvas handlers. Moving onto or off a shape, or leaving the canvas,
// also delivers "mouseenter" and "mouseleave" delegate events for the
// shapes involved.
func (c *Canvas) Dispatch(typ string, p coord.Point) {
	target := c.Pick(p)
	if typ == "mouseleave" {
		target = nil
	}
	if (typ == "mousemove" || typ == "mouseleave") && c.hover != target {
		if c.hover != nil {
			c.delegate(c.hover, "mouseleave", p)
		}
		if target != nil {
			c.delegate(target, "mouseenter", p)
		}
		c.hover = target
	}
	if target != nil {
		c.delegate(target, typ, p)
	}
	c.raw.Emit(typ, &Event{Type: typ, Name: typ, X: p.X, Y: p.Y, Shape: target})
}

func (c *Canvas) delegate(target *Shape, typ string, p coord.Point) {
	if target.Name == "" {
		return
	}
	ev := &Event{Type: typ, Name: target.Name + ":" + typ, X: p.X, Y: p.Y, Shape: target}
	for g := target.Parent(); g != nil && !ev.stopped; g = g.Parent() {
		g.delegates.Emit(ev.Name, ev)
	}
}

// Destroy drops every element and handler.
func (c *Canvas) Destroy() {
	c.Group.Clear()
	c.Group.delegates.Off("")
	c.raw.Off("")
	c.hover = nil
	c.destroyed = true
}
