package scale

// Type names a scale type.
type Type string

const (
	TypeLinear   Type = "linear"
	TypeLog      Type = "log"
	TypePow      Type = "pow"
	TypeSqrt     Type = "sqrt"
	TypeTime     Type = "time"
	TypeOrdinal  Type = "ordinal"
	TypeBand     Type = "band"
	TypePoint    Type = "point"
	TypeCat      Type = "cat"
	TypeCategory Type = "category"
	TypeTimeCat  Type = "timeCat"
	TypeIdentity Type = "identity"
)

// IsContinuous reports whether t maps a numeric interval.
func (t Type) IsContinuous() bool {
	switch t {
	case TypeLinear, TypeLog, TypePow, TypeSqrt, TypeTime:
		return true
	}
	return false
}

// IsCategory reports whether t maps a discrete list of values.
func (t Type) IsCategory() bool {
	switch t {
	case TypeOrdinal, TypeBand, TypePoint, TypeCat, TypeCategory, TypeTimeCat:
		return true
	}
	return false
}

// IsIdentity reports whether t is the identity type.
func (t Type) IsIdentity() bool { return t == TypeIdentity }

// IsTime reports whether values of t are parsed as dates.
func (t Type) IsTime() bool { return t == TypeTime || t == TypeTimeCat }

// Valid reports whether t is a known type.
func (t Type) Valid() bool { return t.IsContinuous() || t.IsCategory() || t.IsIdentity() }

// Formatter renders the i-th tick (or any value when i is -1) as text.
type Formatter func(v any, i int) string

// TickFunc computes tick values for a resolved scale.
type TickFunc func(s *Scale) []any

// Def configures a field's scale. Zero fields are unset.
type Def struct {
	Type Type

	// Values fixes the domain. For continuous types only the extent
	// matters.
	Values []any
	Min    *float64
	Max    *float64

	// Range is the unit sub-range the domain maps onto, [0, 1] if unset.
	Range []float64

	Nice         bool
	TickCount    int
	TickInterval float64
	Ticks        []any
	TickFunc     TickFunc
	TickMethod   string
	Formatter    Formatter

	// Mask is the date format of time types, e.g. "YYYY-MM-DD HH:mm".
	Mask string
	// Alias is the display name of the field.
	Alias string

	// Sync joins the scale to the sync group named after its field;
	// SyncGroup names the group explicitly.
	Sync      bool
	SyncGroup string

	// Key overrides the pool key of the scale.
	Key string

	// Base is the logarithm base (default 10); Exponent the pow exponent
	// (default 2).
	Base     float64
	Exponent float64
}

// Float returns a pointer to v, for Def.Min and Def.Max.
func Float(v float64) *float64 { return &v }

// Merge returns d overridden by every field set in o.
func (d Def) Merge(o Def) Def {
	if o.Type != "" {
		d.Type = o.Type
	}
	if o.Values != nil {
		d.Values = append([]any(nil), o.Values...)
	}
	if o.Min != nil {
		d.Min = Float(*o.Min)
	}
	if o.Max != nil {
		d.Max = Float(*o.Max)
	}
	if o.Range != nil {
		d.Range = append([]float64(nil), o.Range...)
	}
	if o.Nice {
		d.Nice = true
	}
	if o.TickCount != 0 {
		d.TickCount = o.TickCount
	}
	if o.TickInterval != 0 {
		d.TickInterval = o.TickInterval
	}
	if o.Ticks != nil {
		d.Ticks = append([]any(nil), o.Ticks...)
	}
	if o.TickFunc != nil {
		d.TickFunc = o.TickFunc
	}
	if o.TickMethod != "" {
		d.TickMethod = o.TickMethod
	}
	if o.Formatter != nil {
		d.Formatter = o.Formatter
	}
	if o.Mask != "" {
		d.Mask = o.Mask
	}
	if o.Alias != "" {
		d.Alias = o.Alias
	}
	if o.Sync {
		d.Sync = true
	}
	if o.SyncGroup != "" {
		d.SyncGroup = o.SyncGroup
	}
	if o.Key != "" {
		d.Key = o.Key
	}
	if o.Base != 0 {
		d.Base = o.Base
	}
	if o.Exponent != 0 {
		d.Exponent = o.Exponent
	}
	return d
}

// Clone returns a copy of d that shares no slices with it.
func (d Def) Clone() Def {
	return Def{}.Merge(d)
}

// SyncKey is the sync group of d, or "" when the scale is not synced.
func (d Def) SyncKey(field string) string {
	if d.SyncGroup != "" {
		return d.SyncGroup
	}
	if d.Sync {
		return field
	}
	return ""
}

// IsEmpty reports whether no field of d is set.
func (d Def) IsEmpty() bool {
	return d.Type == "" && d.Values == nil && d.Min == nil && d.Max == nil &&
		d.Range == nil && !d.Nice && d.TickCount == 0 && d.TickInterval == 0 &&
		d.Ticks == nil && d.TickFunc == nil && d.TickMethod == "" &&
		d.Formatter == nil && d.Mask == "" && d.Alias == "" && !d.Sync &&
		d.SyncGroup == "" && d.Key == "" && d.Base == 0 && d.Exponent == 0
}
