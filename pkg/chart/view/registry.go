package view

import (
	"sort"
	"sync"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
)

// Direction is the side of the view box a component occupies.
type Direction string

const (
	DirectionNone   Direction = ""
	DirectionTop    Direction = "top"
	DirectionRight  Direction = "right"
	DirectionBottom Direction = "bottom"
	DirectionLeft   Direction = "left"
)

// Component is one visual part managed by a controller.
type Component struct {
	ID        string
	Type      string
	Direction Direction
	// BBox is the laid-out pixel box; its size is known after Init.
	BBox  coord.BBox
	Group *surface.Group
}

// Controller manages one component category of a view.
//
// Init and Update run in the layout pass and must size the components so
// the layout function can reserve padding for them; Layout positions them
// on the final coordinate box; Render draws them in the paint pass.
type Controller interface {
	Name() string
	Init()
	Update()
	Layout()
	Render()
	Clear()
	Destroy()
	ChangeVisible(visible bool)
	Components() []Component
}

// ControllerFactory builds the controller of a view.
type ControllerFactory func(v *View) Controller

// Facet splits a view's data into child views.
type Facet interface {
	Init()
	Render()
	Update()
	Clear()
	Destroy()
}

// FacetFactory builds a facet of v from its kind-specific configuration.
type FacetFactory func(v *View, cfg any) (Facet, error)

// Interaction wires view events to behavior.
type Interaction interface {
	Init()
	Destroy()
}

// InteractionFactory builds an interaction on v.
type InteractionFactory func(v *View, cfg any) Interaction

type registry[F any] struct {
	mu    sync.RWMutex
	order []string
	items map[string]F
}

func (r *registry[F]) register(name string, f F) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items == nil {
		r.items = make(map[string]F)
	}
	if _, ok := r.items[name]; !ok {
		r.order = append(r.order, name)
	}
	r.items[name] = f
}

func (r *registry[F]) get(name string) (F, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.items[name]
	return f, ok
}

func (r *registry[F]) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

var (
	controllers  registry[ControllerFactory]
	facets       registry[FacetFactory]
	interactions registry[InteractionFactory]
)

// RegisterController adds a controller type. Every view created afterwards
// gets one, in registration order.
func RegisterController(name string, f ControllerFactory) { controllers.register(name, f) }

// RegisterFacet adds a facet kind.
func RegisterFacet(kind string, f FacetFactory) { facets.register(kind, f) }

// RegisterInteraction adds an interaction.
func RegisterInteraction(name string, f InteractionFactory) { interactions.register(name, f) }

// ControllerNames lists the registered controllers in creation order.
func ControllerNames() []string { return controllers.names() }

// FacetKinds lists the registered facet kinds.
func FacetKinds() []string {
	kinds := facets.names()
	sort.Strings(kinds)
	return kinds
}

// InteractionNames lists the registered interactions.
func InteractionNames() []string {
	names := interactions.names()
	sort.Strings(names)
	return names
}
