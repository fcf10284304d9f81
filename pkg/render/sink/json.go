package sink

import (
	"encoding/json"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
)

// Scene is the JSON form of a canvas.
type Scene struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background string  `json:"background,omitempty"`
	Nodes      []Node  `json:"nodes"`
}

// Node is a group (Kind "group", with Children) or a shape.
type Node struct {
	Kind     string         `json:"kind"`
	Name     string         `json:"name,omitempty"`
	Clip     *coord.BBox    `json:"clip,omitempty"`
	Animate  bool           `json:"animate,omitempty"`
	Children []Node         `json:"children,omitempty"`
	X        float64        `json:"x,omitempty"`
	Y        float64        `json:"y,omitempty"`
	Width    float64        `json:"width,omitempty"`
	Height   float64        `json:"height,omitempty"`
	R        float64        `json:"r,omitempty"`
	Points   [][2]float64   `json:"points,omitempty"`
	Text     string         `json:"text,omitempty"`
	Attrs    *surface.Attrs `json:"attrs,omitempty"`
}

// NewScene converts the visible part of c.
func NewScene(c *surface.Canvas) Scene {
	return Scene{
		Width:      c.Width,
		Height:     c.Height,
		Background: c.Background,
		Nodes:      nodes(c.Root()),
	}
}

// JSON renders the scene as indented JSON.
func JSON(c *surface.Canvas) ([]byte, error) {
	return json.MarshalIndent(NewScene(c), "", "  ")
}

func nodes(g *surface.Group) []Node {
	out := []Node{}
	for _, e := range g.Children() {
		if !e.IsVisible() {
			continue
		}
		switch e := e.(type) {
		case *surface.Group:
			out = append(out, Node{
				Kind:     "group",
				Name:     e.Name,
				Clip:     e.Clip,
				Animate:  e.Animate,
				Children: nodes(e),
			})
		case *surface.Shape:
			out = append(out, shapeNode(e))
		}
	}
	return out
}

func shapeNode(s *surface.Shape) Node {
	n := Node{
		Kind:   string(s.Kind),
		Name:   s.Name,
		X:      s.X,
		Y:      s.Y,
		Width:  s.Width,
		Height: s.Height,
		R:      s.R,
		Text:   s.Text,
	}
	attrs := s.Attrs
	n.Attrs = &attrs
	for _, p := range s.Points {
		n.Points = append(n.Points, [2]float64{p.X, p.Y})
	}
	return n
}

// Count returns the number of shape nodes in the scene.
func (s Scene) Count() int {
	var count func([]Node) int
	count = func(ns []Node) int {
		n := 0
		for _, c := range ns {
			if c.Kind == "group" {
				n += count(c.Children)
			} else {
				n++
			}
		}
		return n
	}
	return count(s.Nodes)
}
