package view

import (
	"strings"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/event"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
)

// Life-cycle events.
const (
	EventBeforeRender     = "beforerender"
	EventAfterRender      = "afterrender"
	EventBeforePaint      = "beforepaint"
	EventAfterPaint       = "afterpaint"
	EventBeforeChangeData = "beforechangedata"
	EventAfterChangeData  = "afterchangedata"
	EventBeforeClear      = "beforeclear"
	EventAfterClear       = "afterclear"
	EventBeforeDestroy    = "beforedestroy"
)

// Plot transition events.
const (
	EventPlotMouseEnter = "plot:mouseenter"
	EventPlotMouseLeave = "plot:mouseleave"
	EventPlotEnter      = "plot:enter"
	EventPlotLeave      = "plot:leave"
)

// plotEventTypes are the raw pointer types re-emitted as "plot:<type>".
var plotEventTypes = map[string]bool{
	"mousedown":   true,
	"mouseup":     true,
	"mousemove":   true,
	"mouseleave":  true,
	"mousewheel":  true,
	"click":       true,
	"dblclick":    true,
	"contextmenu": true,
	"touchstart":  true,
	"touchmove":   true,
	"touchend":    true,
	"touchcancel": true,
}

// Event is a view-level event.
type Event struct {
	// Type is the topic the event was emitted under, e.g. "element:click".
	Type string
	// Gesture is the raw pointer type, e.g. "click"; empty for life-cycle
	// events.
	Gesture string
	View    *View
	X, Y    float64
	// Data is the origin of the target shape: a datum for elements, an
	// item for legend markers.
	Data  any
	Shape *surface.Shape
}

// Point returns the pointer position.
func (e *Event) Point() coord.Point { return coord.Point{X: e.X, Y: e.Y} }

// On subscribes fn to topic ("*" for every topic) and returns a function
// that removes the subscription.
func (v *View) On(topic string, fn func(*Event)) func() { return v.events.On(topic, fn) }

// Once subscribes fn for a single emission of topic.
func (v *View) Once(topic string, fn func(*Event)) { v.events.Once(topic, fn) }

// Off removes the handlers of topic, or all of them for "".
func (v *View) Off(topic string) { v.events.Off(topic) }

// Emit emits e under topic. e may be nil.
func (v *View) Emit(topic string, e *Event) {
	if e == nil {
		e = &Event{}
	}
	c := *e
	c.Type = topic
	if c.View == nil {
		c.View = v
	}
	v.events.Emit(topic, &c)
}

func (v *View) initEvents() {
	for _, g := range []*surface.Group{v.background, v.middle, v.foreground} {
		v.unsubscribe = append(v.unsubscribe, g.OnDelegate(v.onDelegateEvent))
	}
	v.unsubscribe = append(v.unsubscribe, v.chart.canvas.On(event.Wildcard, v.onCanvasEvent))
}

// onDelegateEvent handles shape events bubbling through the view's
// layers. The innermost view owning the shape handles it; bubbling stops
// there.
func (v *View) onDelegateEvent(se *surface.Event) {
	se.StopPropagation()
	e := &Event{Gesture: se.Type, View: v, X: se.X, Y: se.Y, Shape: se.Shape}
	if se.Shape != nil {
		e.Data = se.Shape.Origin
	}
	v.Emit(se.Name, e)
	if se.Shape == nil {
		return
	}
	for _, name := range se.Shape.InheritNames {
		v.Emit(name+":"+se.Type, e)
	}
}

// onCanvasEvent re-emits a raw canvas event as plot events, then under
// its plain type.
func (v *View) onCanvasEvent(se *surface.Event) {
	if v.state == StateDestroyed || strings.Contains(se.Type, ":") {
		return
	}
	e := &Event{Gesture: se.Type, View: v, X: se.X, Y: se.Y, Shape: se.Shape}
	if se.Shape != nil {
		e.Data = se.Shape.Origin
	}
	if plotEventTypes[se.Type] {
		v.doPlotEvent(e)
	}
	v.Emit(se.Type, e)
}

// doPlotEvent emits "plot:<type>" while the pointer is inside the plot
// (never for mouseleave) and exactly one enter or leave event whenever the
// pointer crosses the plot boundary.
func (v *View) doPlotEvent(e *Event) {
	typ := e.Gesture
	inside := v.coordinate != nil && v.IsPointInPlot(e.Point())
	if inside && typ != "mouseleave" {
		v.Emit("plot:"+typ, e)
	}
	switch typ {
	case "mousemove":
		if inside != v.preMouseInPlot {
			v.preMouseInPlot = inside
			if inside {
				v.Emit(EventPlotMouseEnter, e)
			} else {
				v.Emit(EventPlotMouseLeave, e)
			}
		}
	case "mouseleave":
		if v.preMouseInPlot {
			v.preMouseInPlot = false
			v.Emit(EventPlotMouseLeave, e)
		}
	case "touchstart", "touchmove":
		if inside != v.preTouchInPlot {
			v.preTouchInPlot = inside
			if inside {
				v.Emit(EventPlotEnter, e)
			} else {
				v.Emit(EventPlotLeave, e)
			}
		}
	case "touchend", "touchcancel":
		if v.preTouchInPlot {
			v.preTouchInPlot = false
			v.Emit(EventPlotLeave, e)
		}
	}
}
