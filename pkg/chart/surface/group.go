package surface

import (
	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/event"
)

// Group is an ordered container of elements.
type Group struct {
	Name string
	// Clip, when set, limits painting and picking to a box.
	Clip *coord.BBox
	// Animate asks sinks that support it to fade the group in.
	Animate bool
	// Silent groups are painted but never picked.
	Silent bool

	children  []Element
	parent    *Group
	hidden    bool
	destroyed bool
	delegates event.Emitter[*Event]
}

// NewGroup returns a detached group.
func NewGroup(name string) *Group {
	return &Group{Name: name}
}

// AddGroup appends a new child group.
func (g *Group) AddGroup(name string) *Group {
	c := NewGroup(name)
	g.Add(c)
	return c
}

// AddShape appends s and returns it.
func (g *Group) AddShape(s *Shape) *Shape {
	g.Add(s)
	return s
}

// Add appends e, detaching it from any previous group.
func (g *Group) Add(e Element) {
	if p := e.Parent(); p != nil {
		p.removeChild(e)
	}
	e.setParent(g)
	g.children = append(g.children, e)
}

// Children returns the children in draw order.
func (g *Group) Children() []Element {
	return append([]Element(nil), g.children...)
}

func (g *Group) Parent() *Group     { return g.parent }
func (g *Group) IsVisible() bool    { return !g.hidden }
func (g *Group) SetVisible(v bool)  { g.hidden = !v }
func (g *Group) setParent(p *Group) { g.parent = p }
func (g *Group) IsDestroyed() bool  { return g.destroyed }

// Remove detaches g from its parent.
func (g *Group) Remove() {
	if g.parent != nil {
		g.parent.removeChild(g)
	}
}

// Clear removes every child.
func (g *Group) Clear() {
	for _, c := range g.children {
		c.setParent(nil)
	}
	g.children = nil
}

// Destroy clears and detaches g and drops its delegate handlers.
func (g *Group) Destroy() {
	g.Clear()
	g.Remove()
	g.delegates.Off("")
	g.destroyed = true
}

func (g *Group) removeChild(e Element) {
	for i, c := range g.children {
		if c == e {
			g.children = append(g.children[:i:i], g.children[i+1:]...)
			e.setParent(nil)
			return
		}
	}
}

// BBox returns the union of the visible children's bounds, limited to the
// clip box.
func (g *Group) BBox() coord.BBox {
	var b coord.BBox
	for _, c := range g.children {
		if c.IsVisible() {
			b = b.Union(c.BBox())
		}
	}
	if g.Clip != nil && !b.IsEmpty() {
		b = intersect(b, *g.Clip)
	}
	return b
}

func intersect(a, b coord.BBox) coord.BBox {
	x0, y0 := max(a.MinX(), b.MinX()), max(a.MinY(), b.MinY())
	x1, y1 := min(a.MaxX(), b.MaxX()), min(a.MaxY(), b.MaxY())
	if x1 < x0 || y1 < y0 {
		return coord.BBox{}
	}
	return coord.BBox{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// IsHit reports whether any visible child is hit at p.
func (g *Group) IsHit(p coord.Point) bool {
	return g.Pick(p) != nil
}

// Pick returns the topmost visible shape under p, or nil.
func (g *Group) Pick(p coord.Point) *Shape {
	if g.hidden || g.Silent || (g.Clip != nil && !g.Clip.Contains(p)) {
		return nil
	}
	for i := len(g.children) - 1; i >= 0; i-- {
		switch c := g.children[i].(type) {
		case *Group:
			if s := c.Pick(p); s != nil {
				return s
			}
		case *Shape:
			if c.IsHit(p) {
				return c
			}
		}
	}
	return nil
}

// Walk calls fn for every element below g in draw order, depth first. fn
// returning false skips the element's children.
func (g *Group) Walk(fn func(e Element, depth int) bool) {
	g.walk(fn, 0)
}

func (g *Group) walk(fn func(Element, int) bool, depth int) {
	for _, c := range g.children {
		if !fn(c, depth) {
			continue
		}
		if cg, ok := c.(*Group); ok {
			cg.walk(fn, depth+1)
		}
	}
}

// Shapes returns every shape below g in draw order.
func (g *Group) Shapes() []*Shape {
	var out []*Shape
	g.Walk(func(e Element, _ int) bool {
		if s, ok := e.(*Shape); ok {
			out = append(out, s)
		}
		return true
	})
	return out
}

// FindAll returns the shapes below g whose name or inherited names include
// name.
func (g *Group) FindAll(name string) []*Shape {
	var out []*Shape
	for _, s := range g.Shapes() {
		if s.Name == name {
			out = append(out, s)
			continue
		}
		for _, n := range s.InheritNames {
			if n == name {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// OnDelegate subscribes fn to the delegate events bubbling through g and
// returns a function that removes the subscription.
func (g *Group) OnDelegate(fn func(*Event)) func() {
	return g.delegates.On(event.Wildcard, fn)
}
