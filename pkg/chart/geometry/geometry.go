package geometry

import (
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/theme"
)

// Built-in geometry kinds.
const (
	KindInterval = "interval"
	KindLine     = "line"
	KindArea     = "area"
	KindPoint    = "point"
)

// Adjustments.
const (
	AdjustStack = "stack"
	AdjustDodge = "dodge"
)

// Options configures a geometry.
type Options struct {
	// Position is "x*y", e.g. "genre*sold" or "1*value" for pies.
	Position string
	// Color is the field mapped to palette colors.
	Color string
	// Adjust lists adjustments: "stack", "dodge".
	Adjust []string
	// Size is the point radius or line width in pixels.
	Size float64
	// Style overrides the theme's shape attributes.
	Style surface.Attrs
	// HideTooltip leaves the geometry out of tooltips.
	HideTooltip bool
}

func (o Options) fields() (x, y string) {
	parts := strings.Split(o.Position, "*")
	x = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		y = strings.TrimSpace(parts[1])
	}
	return x, y
}

func (o Options) has(adjust string) bool {
	for _, a := range o.Adjust {
		if a == adjust {
			return true
		}
	}
	return false
}

// Config is what a view hands a geometry on init and update.
type Config struct {
	Coordinate coord.Coordinate
	Data       []data.Datum
	Scales     map[string]*scale.Scale
	ScaleDefs  map[string]scale.Def
	Theme      *theme.Theme
	Container  *surface.Group
}

// Geometry is a visual mapping from records to shapes.
type Geometry interface {
	Type() string
	Options() Options

	Init(cfg Config)
	Update(cfg Config)
	// SetCoordinate swaps in the final coordinate before Paint.
	SetCoordinate(c coord.Coordinate)
	Coordinate() coord.Coordinate
	Paint(isUpdate bool)
	Clear()
	Destroy()

	ChangeVisible(visible bool)
	Visible() bool
	SetAnimate(animate bool)
	Animate() bool

	XField() string
	YField() string
	XScale() *scale.Scale
	YScale() *scale.Scale
	ScaleFields() []string
	GroupFields() []string

	DataArray() [][]*Record
	Elements() []*Element
	Container() *surface.Group
}

// Factory builds a geometry from options.
type Factory func(opts Options) Geometry

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a geometry kind available to New.
func Register(kind string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = f
}

// New builds a registered geometry.
func New(kind string, opts Options) (Geometry, error) {
	registryMu.RLock()
	f, ok := registry[kind]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "geometry '%s' is not registered (available: %s)", kind, strings.Join(Kinds(), ", "))
	}
	if strings.TrimSpace(opts.Position) == "" {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "geometry '%s' needs a position such as \"x*y\"", kind)
	}
	return f(opts), nil
}

// Kinds lists the registered kinds.
func Kinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func init() {
	Register(KindInterval, func(o Options) Geometry { return NewInterval(o) })
	Register(KindLine, func(o Options) Geometry { return NewLine(o) })
	Register(KindArea, func(o Options) Geometry { return NewArea(o) })
	Register(KindPoint, func(o Options) Geometry { return NewPoint(o) })
}
