// Package recipe holds the named charts the CLI and the HTTP API can build.
//
// A recipe is a Go function that configures a chart from a small set of
// field bindings, so callers choose "bar" or "pie" and name the columns
// instead of writing chart code:
//
//	r, err := recipe.Get("column")
//	if err != nil {
//	    return err
//	}
//	c := chart.New(chart.Options{Width: 640, Height: 480})
//	if err := r.Build(c, rows, recipe.Fields{X: "genre", Y: "sold", Color: "genre"}); err != nil {
//	    return err
//	}
//	c.Render(false)
package recipe

import (
	"fmt"
	"strings"
	"sync"

	"github.com/matzehuels/stackchart/pkg/chart/geometry"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Fields binds data columns to the channels of a recipe.
type Fields struct {
	X     string `json:"x" toml:"x"`
	Y     string `json:"y" toml:"y"`
	Color string `json:"color,omitempty" toml:"color"`
	Facet string `json:"facet,omitempty" toml:"facet"`
	// Adjust is "", "stack" or "dodge"; only recipes drawing intervals or
	// areas honor it.
	Adjust string `json:"adjust,omitempty" toml:"adjust"`
}

// Channel names used in Recipe.Requires.
const (
	ChannelX     = "x"
	ChannelY     = "y"
	ChannelColor = "color"
	ChannelFacet = "facet"
)

func (f Fields) get(channel string) string {
	switch channel {
	case ChannelX:
		return f.X
	case ChannelY:
		return f.Y
	case ChannelColor:
		return f.Color
	case ChannelFacet:
		return f.Facet
	}
	return ""
}

func (f Fields) adjust() []string {
	if f.Adjust == "" {
		return nil
	}
	return []string{f.Adjust}
}

// BuildFunc configures c, whose data is already set, from f.
type BuildFunc func(c *view.Chart, f Fields) error

// Recipe is a named chart builder.
type Recipe struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Requires    []string `json:"requires"`
	build       BuildFunc
}

var (
	mu      sync.RWMutex
	recipes []Recipe
)

// Register adds a recipe, replacing one of the same name.
func Register(name, description string, requires []string, build BuildFunc) {
	mu.Lock()
	defer mu.Unlock()
	r := Recipe{Name: name, Description: description, Requires: requires, build: build}
	for i := range recipes {
		if recipes[i].Name == name {
			recipes[i] = r
			return
		}
	}
	recipes = append(recipes, r)
}

// All returns the recipes in registration order.
func All() []Recipe {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Recipe(nil), recipes...)
}

// Names returns the recipe names in registration order.
func Names() []string {
	var names []string
	for _, r := range All() {
		names = append(names, r.Name)
	}
	return names
}

// Get returns the recipe called name.
func Get(name string) (Recipe, error) {
	if err := errors.ValidateRecipeName(name); err != nil {
		return Recipe{}, err
	}
	for _, r := range All() {
		if r.Name == name {
			return r, nil
		}
	}
	return Recipe{}, errors.New(errors.ErrCodeInvalidRecipe, "recipe '%s' is not registered (available: %s)", name, strings.Join(Names(), ", "))
}

// Validate checks f against the recipe's required channels and, when rows
// are given, that every bound field occurs in the data.
func (r Recipe) Validate(f Fields, rows []data.Datum) error {
	for _, ch := range r.Requires {
		if f.get(ch) == "" {
			return errors.New(errors.ErrCodeInvalidRecipe, "recipe '%s' needs a %s field", r.Name, ch)
		}
	}
	switch f.Adjust {
	case "", geometry.AdjustStack, geometry.AdjustDodge:
	default:
		return errors.New(errors.ErrCodeInvalidRecipe, "unknown adjust %q (must be stack or dodge)", f.Adjust)
	}
	for _, ch := range []string{ChannelX, ChannelY, ChannelColor, ChannelFacet} {
		name := f.get(ch)
		if name == "" {
			continue
		}
		if err := errors.ValidateFieldName(name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRecipe, err, "%s field", ch)
		}
		if len(rows) > 0 && !hasField(rows, name) {
			return errors.New(errors.ErrCodeInvalidRecipe, "%s field %q not found in data (have: %s)", ch, name, strings.Join(data.Fields(rows), ", "))
		}
	}
	return nil
}

func hasField(rows []data.Datum, name string) bool {
	for _, row := range rows {
		if _, ok := row[name]; ok {
			return true
		}
	}
	return false
}

// Build validates f, sets rows as the chart data and configures c.
func (r Recipe) Build(c *view.Chart, rows []data.Datum, f Fields) error {
	if err := r.Validate(f, rows); err != nil {
		return err
	}
	c.Data(rows)
	if err := r.build(c, f); err != nil {
		return fmt.Errorf("recipe %s: %w", r.Name, err)
	}
	return nil
}
