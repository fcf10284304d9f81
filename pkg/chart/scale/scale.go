package scale

import (
	"math"
	"sort"

	mscale "github.com/aclements/go-moremath/scale"

	"github.com/matzehuels/stackchart/pkg/data"
)

// Tick is one resolved tick: its label, its domain value and its position
// in the scale's range.
type Tick struct {
	Text      string
	TickValue any
	Value     float64
}

// Scale maps one field's values onto a sub-range of [0, 1].
//
// Values holds the resolved domain after transformation (timestamps for
// time types). For continuous types Min and Max are the domain endpoints;
// for category types they are 0 and len(Values)-1.
type Scale struct {
	Field      string
	Type       Type
	Alias      string
	Values     []any
	Min, Max   float64
	Range      []float64
	TickValues []any

	def        Def
	dataValues []any
	lin        mscale.Linear
}

// New builds a scale for field from the field's data values and def. The
// type must be set; see [Infer].
func New(field string, values []any, def Def) *Scale {
	s := &Scale{Field: field, Type: def.Type}
	s.Reset(values, def)
	return s
}

// FromData infers the scale type from rows when def leaves it unset and
// builds the scale.
func FromData(field string, rows []data.Datum, def Def) *Scale {
	def = Infer(field, rows, def)
	return New(field, data.Values(rows, field), def)
}

// Reset replaces the scale's data values and definition and resolves it
// from scratch, keeping the instance.
func (s *Scale) Reset(values []any, def Def) {
	s.dataValues = append([]any(nil), values...)
	if def.Type == "" {
		def.Type = s.Type
	}
	s.Type = def.Type
	s.def = Def{Type: def.Type}
	s.Update(def)
}

// Update merges def over the current definition and re-resolves the
// domain and ticks. Update(Def{}) changes nothing.
func (s *Scale) Update(def Def) {
	if def.Type != "" && def.Type != s.Type {
		s.Type = def.Type
		s.Values, s.TickValues = nil, nil
		s.Min, s.Max = 0, 0
		s.lin = mscale.Linear{}
	}

	s.def = s.def.Merge(def)
	s.def.Type = s.Type
	if s.Type.IsTime() && s.def.Mask == "" {
		s.def.Mask = DefaultMask
	}
	s.Alias = s.def.Alias

	s.resolveDomain()
	s.TickValues = s.computeTicks()
}

// Def returns a copy of the effective definition.
func (s *Scale) Def() Def { return s.def.Clone() }

func (s *Scale) IsContinuous() bool { return s.Type.IsContinuous() }
func (s *Scale) IsCategory() bool   { return s.Type.IsCategory() }
func (s *Scale) IsIdentity() bool   { return s.Type.IsIdentity() }

// Title is the alias of the scale, or its field.
func (s *Scale) Title() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Field
}

func (s *Scale) RangeMin() float64 { return s.Range[0] }
func (s *Scale) RangeMax() float64 { return s.Range[len(s.Range)-1] }

func (s *Scale) transform(v any) any {
	if s.Type.IsTime() {
		if ms, ok := Timestamp(v); ok {
			return ms
		}
	}
	return v
}

func (s *Scale) resolveDomain() {
	values := s.dataValues
	if s.def.Values != nil {
		values = s.def.Values
	}
	tv := make([]any, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		tv = append(tv, s.transform(v))
	}

	switch {
	case s.Type.IsContinuous():
		s.resolveContinuous(tv)
	case s.Type.IsCategory():
		s.Values = uniqueValues(tv)
		if s.Type == TypeTimeCat {
			sortTimestamps(s.Values)
		}
		s.Min, s.Max = 0, float64(max(len(s.Values)-1, 0))
	default:
		s.Values = tv
		s.Min, s.Max = 0, 0
		if len(tv) > 0 {
			if f, ok := data.ToFloat(tv[0]); ok {
				s.Min, s.Max = f, f
			}
		}
	}

	s.Range = []float64{0, 1}
	if len(s.def.Range) >= 2 {
		s.Range = []float64{s.def.Range[0], s.def.Range[len(s.def.Range)-1]}
	}
}

func (s *Scale) resolveContinuous(tv []any) {
	lo, hi := math.Inf(1), math.Inf(-1)
	var nums []any
	for _, v := range tv {
		f, ok := data.ToFloat(v)
		if !ok || math.IsNaN(f) {
			continue
		}
		if s.Type == TypeLog && f <= 0 {
			continue
		}
		nums = append(nums, f)
		lo, hi = math.Min(lo, f), math.Max(hi, f)
	}
	if len(nums) == 0 {
		lo, hi = 0, 0
		if s.Type == TypeLog {
			lo, hi = 1, 1
		}
	}
	if s.def.Min != nil {
		lo = *s.def.Min
	}
	if s.def.Max != nil {
		hi = *s.def.Max
	}
	if s.def.Nice && s.Type == TypeLinear && lo != hi {
		l := mscale.Linear{Min: lo, Max: hi}
		l.Nice(mscale.TickOptions{Max: s.tickCount()})
		if s.def.Min == nil {
			lo = roundTick(l.Min)
		}
		if s.def.Max == nil {
			hi = roundTick(l.Max)
		}
	}

	s.Values = nums
	s.Min, s.Max = lo, hi
	s.lin = mscale.Linear{Min: s.forward(lo), Max: s.forward(hi)}
}

func (s *Scale) tickCount() int {
	if s.def.TickCount > 0 {
		return s.def.TickCount
	}
	return DefaultTickCount
}

func (s *Scale) exponent() float64 {
	switch {
	case s.Type == TypeSqrt:
		return 0.5
	case s.def.Exponent != 0:
		return s.def.Exponent
	}
	return 2
}

// forward moves a domain number into the space the linear mapper works in.
func (s *Scale) forward(f float64) float64 {
	switch s.Type {
	case TypeLog:
		if f <= 0 {
			return math.NaN()
		}
		return math.Log(f)
	case TypePow, TypeSqrt:
		return signedPow(f, s.exponent())
	}
	return f
}

func (s *Scale) backward(f float64) float64 {
	switch s.Type {
	case TypeLog:
		return math.Exp(f)
	case TypePow, TypeSqrt:
		return signedPow(f, 1/s.exponent())
	}
	return f
}

func signedPow(f, e float64) float64 {
	if f < 0 {
		return -math.Pow(-f, e)
	}
	return math.Pow(f, e)
}

func (s *Scale) computeTicks() []any {
	var ticks []any
	switch {
	case s.def.Ticks != nil:
		ticks = s.def.Ticks
	case s.def.TickFunc != nil:
		ticks = s.def.TickFunc(s)
	case s.Type.IsIdentity():
		ticks = s.Values
	default:
		name := s.def.TickMethod
		m, ok := GetTickMethod(name)
		if !ok {
			m, ok = GetTickMethod(defaultTickMethod(s.Type))
		}
		if !ok {
			m = linearTicks
		}
		ticks = m(TickConfig{
			Type:         s.Type,
			Min:          s.Min,
			Max:          s.Max,
			Values:       s.Values,
			TickCount:    s.def.TickCount,
			TickInterval: s.def.TickInterval,
			Base:         s.def.Base,
			Exponent:     s.exponent(),
		})
	}
	out := make([]any, len(ticks))
	for i, t := range ticks {
		out[i] = s.transform(t)
	}
	return out
}

// Translate returns the numeric position of v before range mapping: its
// index for category scales, the number itself otherwise. Unknown values
// translate to NaN.
func (s *Scale) Translate(v any) float64 {
	v = s.transform(v)
	if s.Type.IsCategory() {
		if i := data.IndexOf(s.Values, v); i >= 0 {
			return float64(i)
		}
	}
	if f, ok := data.ToFloat(v); ok {
		return f
	}
	return math.NaN()
}

// Map maps a domain value into the scale's range.
func (s *Scale) Map(v any) float64 {
	rMin, rMax := s.RangeMin(), s.RangeMax()
	switch {
	case s.Type.IsCategory():
		order := s.Translate(v)
		if math.IsNaN(order) {
			return math.NaN()
		}
		p := order
		if len(s.Values) > 1 {
			p = (order - s.Min) / (s.Max - s.Min)
		}
		return rMin + p*(rMax-rMin)
	case s.Type.IsIdentity():
		f, ok := data.ToFloat(v)
		if ok && (len(s.Values) == 0 || !data.Equal(v, s.Values[0])) {
			return f
		}
		return rMin
	}
	f, ok := data.ToFloat(s.transform(v))
	if !ok {
		return math.NaN()
	}
	return rMin + s.lin.Map(s.forward(f))*(rMax-rMin)
}

// Invert maps a range position back to a domain value: a float64 for
// continuous scales, an element of Values for category and identity
// scales. Time transforms are not reversed.
func (s *Scale) Invert(f float64) any {
	rMin, rMax := s.RangeMin(), s.RangeMax()
	switch {
	case s.Type.IsCategory():
		n := len(s.Values)
		if n == 0 {
			return nil
		}
		f = math.Max(math.Min(f, math.Max(rMin, rMax)), math.Min(rMin, rMax))
		p := 0.0
		if rMax != rMin {
			p = (f - rMin) / (rMax - rMin)
		}
		i := int(math.Round(p*float64(n-1))) % n
		return s.Values[i]
	case s.Type.IsIdentity():
		if f < rMin || f > rMax || len(s.Values) == 0 {
			return math.NaN()
		}
		return s.Values[0]
	}
	p := 0.0
	if rMax != rMin {
		p = (f - rMin) / (rMax - rMin)
	}
	return s.backward(s.lin.Unmap(p))
}

// GetText formats v; i is its tick index, or -1 outside tick labels.
func (s *Scale) GetText(v any, i int) string {
	if s.def.Formatter != nil {
		return s.def.Formatter(v, i)
	}
	if s.Type.IsTime() {
		return FormatMask(v, s.def.Mask)
	}
	return data.String(v)
}

// GetTicks returns the resolved ticks.
func (s *Scale) GetTicks() []Tick {
	ticks := make([]Tick, len(s.TickValues))
	for i, tv := range s.TickValues {
		ticks[i] = Tick{Text: s.GetText(tv, i), TickValue: tv, Value: s.Map(tv)}
	}
	return ticks
}

// Clone returns an independent copy of s.
func (s *Scale) Clone() *Scale {
	c := *s
	c.Values = append([]any(nil), s.Values...)
	c.Range = append([]float64(nil), s.Range...)
	c.TickValues = append([]any(nil), s.TickValues...)
	c.dataValues = append([]any(nil), s.dataValues...)
	c.def = s.def.Clone()
	return &c
}

func uniqueValues(vs []any) []any {
	out := make([]any, 0, len(vs))
	for _, v := range vs {
		if data.IndexOf(out, v) < 0 {
			out = append(out, v)
		}
	}
	return out
}

func sortTimestamps(vs []any) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, _ := data.ToFloat(vs[i])
		b, _ := data.ToFloat(vs[j])
		return a < b
	})
}
