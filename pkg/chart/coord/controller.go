package coord

// ActionKind names a recorded coordinate transform.
type ActionKind string

const (
	ActionTranspose ActionKind = "transpose"
	ActionReflect   ActionKind = "reflect"
	ActionRotate    ActionKind = "rotate"
	ActionScale     ActionKind = "scale"
	ActionTranslate ActionKind = "translate"
)

// Action is one recorded transform and its arguments.
type Action struct {
	Kind  ActionKind
	Dim   Dimension
	Angle float64
	X, Y  float64
}

// Option describes the coordinate a view wants: its type, polar
// configuration and ordered transform actions.
type Option struct {
	Type    Type
	Polar   PolarConfig
	Actions []Action
}

// Clone returns a copy whose action list can be extended independently.
func (o Option) Clone() Option {
	o.Actions = append([]Action(nil), o.Actions...)
	return o
}

// Controller owns a view's coordinate option and its live instance.
type Controller struct {
	option     Option
	coordinate Coordinate
}

// NewController returns a controller for opt.
func NewController(opt Option) *Controller {
	return &Controller{option: opt.Clone()}
}

// Option returns a copy of the stored option.
func (c *Controller) Option() Option { return c.option.Clone() }

// Coordinate returns the live instance, or nil before the first Create.
func (c *Controller) Coordinate() Coordinate { return c.coordinate }

// Update replaces the option used by the next Create.
func (c *Controller) Update(opt Option) *Controller {
	c.option = opt.Clone()
	return c
}

// Create builds a fresh coordinate over [start, end] and replays every
// recorded action in order. Theta coordinates get an implicit transpose
// unless one is already recorded.
func (c *Controller) Create(start, end Point) Coordinate {
	typ := c.option.Type
	switch typ {
	case TypePolar, TypeTheta:
		c.coordinate = NewPolar(typ, start, end, c.option.Polar)
	default:
		c.coordinate = NewRect(start, end)
	}
	if typ == TypeTheta && !c.hasAction(ActionTranspose) {
		c.Transpose()
	}
	c.exec()
	return c.coordinate
}

// Adjust moves the live coordinate onto [start, end]. Transpose and reflect
// flags survive; scale, rotate and translate are re-applied to a reset
// matrix.
func (c *Controller) Adjust(start, end Point) Coordinate {
	if c.coordinate == nil {
		return c.Create(start, end)
	}
	c.coordinate.Update(start, end)
	c.coordinate.ResetMatrix()
	c.exec(ActionScale, ActionRotate, ActionTranslate)
	return c.coordinate
}

func (c *Controller) Transpose() *Controller {
	return c.record(Action{Kind: ActionTranspose})
}

func (c *Controller) Reflect(dim Dimension) *Controller {
	return c.record(Action{Kind: ActionReflect, Dim: dim})
}

// Rotate records a rotation in radians about the coordinate center.
func (c *Controller) Rotate(angle float64) *Controller {
	return c.record(Action{Kind: ActionRotate, Angle: angle})
}

func (c *Controller) Scale(sx, sy float64) *Controller {
	return c.record(Action{Kind: ActionScale, X: sx, Y: sy})
}

func (c *Controller) Translate(tx, ty float64) *Controller {
	return c.record(Action{Kind: ActionTranslate, X: tx, Y: ty})
}

func (c *Controller) record(a Action) *Controller {
	c.option.Actions = append(c.option.Actions, a)
	return c
}

func (c *Controller) hasAction(kind ActionKind) bool {
	for _, a := range c.option.Actions {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// exec replays the recorded actions on the live coordinate, restricted to
// the given kinds when any are passed.
func (c *Controller) exec(only ...ActionKind) {
	if c.coordinate == nil {
		return
	}
	for _, a := range c.option.Actions {
		if len(only) > 0 && !containsKind(only, a.Kind) {
			continue
		}
		switch a.Kind {
		case ActionTranspose:
			c.coordinate.Transpose()
		case ActionReflect:
			c.coordinate.Reflect(a.Dim)
		case ActionRotate:
			c.coordinate.Rotate(a.Angle)
		case ActionScale:
			c.coordinate.Scale(a.X, a.Y)
		case ActionTranslate:
			c.coordinate.Translate(a.X, a.Y)
		}
	}
}

func containsKind(kinds []ActionKind, k ActionKind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}
