package interaction

import (
	"slices"

	"github.com/matzehuels/stackchart/pkg/chart/component"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/data"
)

// EventLegendFilter is emitted on the view after a legend click changed
// its filters. Data is the clicked *component.LegendItem.
const EventLegendFilter = "legend-filter:change"

// LegendFilter filters a category out of the view tree when its legend
// item is clicked, and back in on the next click. Legends keep every item;
// filtered ones are drawn unchecked.
type LegendFilter struct {
	base
	// excluded lists the filtered values per field.
	excluded map[string][]any
}

func NewLegendFilter(v *view.View) *LegendFilter {
	return &LegendFilter{base: base{view: v}, excluded: map[string][]any{}}
}

func (l *LegendFilter) Init() {
	l.on(l.view.On("legend-item:click", l.toggle))
}

// Excluded returns the values currently filtered out of field.
func (l *LegendFilter) Excluded(field string) []any { return l.excluded[field] }

func (l *LegendFilter) toggle(e *view.Event) {
	item, ok := e.Data.(*component.LegendItem)
	if !ok {
		return
	}
	vals := l.excluded[item.Field]
	if i := data.IndexOf(vals, item.Value); i >= 0 {
		vals = slices.Delete(vals, i, i+1)
	} else {
		vals = append(vals, item.Value)
	}
	l.excluded[item.Field] = vals

	var fn view.FilterFunc
	if len(vals) > 0 {
		excluded := slices.Clone(vals)
		fn = func(v any, _ data.Datum) bool { return data.IndexOf(excluded, v) < 0 }
	}
	applyFilter(l.view, item.Field, fn)
	l.view.Logger().Debug("legend filter", "field", item.Field, "excluded", len(vals))
	l.view.Render(true)
	l.view.Emit(EventLegendFilter, &view.Event{X: e.X, Y: e.Y, Data: item})
}

// applyFilter sets fn on v and every descendant; nil removes the filter.
func applyFilter(v *view.View, field string, fn view.FilterFunc) {
	v.Filter(field, fn)
	for _, c := range v.Views() {
		applyFilter(c, field, fn)
	}
}
