package scale

import (
	"math"
	"sort"
	"strconv"
	"sync"
	"time"

	mscale "github.com/aclements/go-moremath/scale"
)

// DefaultTickCount is the tick count of scales that set none.
const DefaultTickCount = 5

// TickConfig is the resolved state a tick method works from.
type TickConfig struct {
	Type         Type
	Min, Max     float64
	Values       []any
	TickCount    int
	TickInterval float64
	Base         float64
	Exponent     float64
}

// TickMethod computes tick values from a resolved scale.
type TickMethod func(cfg TickConfig) []any

var (
	tickMu      sync.RWMutex
	tickMethods = map[string]TickMethod{
		"linear":   linearTicks,
		"log":      logTicks,
		"pow":      powTicks,
		"time":     timeTicks,
		"cat":      catTicks,
		"time-cat": catTicks,
	}
)

// RegisterTickMethod makes a tick method available by name to Def.TickMethod.
// Registering an existing name replaces it.
func RegisterTickMethod(name string, m TickMethod) {
	tickMu.Lock()
	defer tickMu.Unlock()
	tickMethods[name] = m
}

// GetTickMethod looks up a registered tick method.
func GetTickMethod(name string) (TickMethod, bool) {
	tickMu.RLock()
	defer tickMu.RUnlock()
	m, ok := tickMethods[name]
	return m, ok
}

// TickMethods lists the registered tick method names.
func TickMethods() []string {
	tickMu.RLock()
	defer tickMu.RUnlock()
	names := make([]string, 0, len(tickMethods))
	for n := range tickMethods {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func defaultTickMethod(t Type) string {
	switch t {
	case TypeLog:
		return "log"
	case TypePow, TypeSqrt:
		return "pow"
	case TypeTime:
		return "time"
	case TypeTimeCat:
		return "time-cat"
	case TypeLinear:
		return "linear"
	}
	if t.IsCategory() {
		return "cat"
	}
	return "linear"
}

func tickCount(cfg TickConfig) int {
	if cfg.TickCount > 0 {
		return cfg.TickCount
	}
	return DefaultTickCount
}

// roundTick trims binary noise such as 0.30000000000000004.
func roundTick(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
	if err != nil {
		return v
	}
	return r
}

func floats(vs []float64) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = roundTick(v)
	}
	return out
}

func intervalTicks(lo, hi, step float64) []float64 {
	var ticks []float64
	start := math.Ceil(lo/step) * step
	for i := 0; i < 10000; i++ {
		v := start + float64(i)*step
		if v > hi+step*1e-9 {
			break
		}
		ticks = append(ticks, v)
	}
	return ticks
}

func linearTicks(cfg TickConfig) []any {
	if math.IsNaN(cfg.Min) || math.IsNaN(cfg.Max) {
		return nil
	}
	if cfg.Min == cfg.Max {
		return []any{cfg.Min}
	}
	if cfg.TickInterval > 0 {
		return floats(intervalTicks(cfg.Min, cfg.Max, cfg.TickInterval))
	}
	major, _ := mscale.Linear{Min: cfg.Min, Max: cfg.Max}.Ticks(mscale.TickOptions{Max: tickCount(cfg)})
	return floats(major)
}

func powTicks(cfg TickConfig) []any {
	return linearTicks(cfg)
}

func logTicks(cfg TickConfig) []any {
	base := cfg.Base
	if base <= 1 {
		base = 10
	}
	lo, hi := cfg.Min, cfg.Max
	if lo <= 0 {
		lo = 1
	}
	if hi < lo {
		return []any{lo}
	}
	from := math.Floor(math.Log(lo) / math.Log(base))
	to := math.Ceil(math.Log(hi) / math.Log(base))
	var ticks []float64
	for k := from; k <= to; k++ {
		v := math.Pow(base, k)
		if v >= lo*(1-1e-9) && v <= hi*(1+1e-9) {
			ticks = append(ticks, v)
		}
	}
	if n := tickCount(cfg); len(ticks) > n {
		step := int(math.Ceil(float64(len(ticks)) / float64(n)))
		var thinned []float64
		for i := 0; i < len(ticks); i += step {
			thinned = append(thinned, ticks[i])
		}
		ticks = thinned
	}
	return floats(ticks)
}

// catTicks samples the category values down to about TickCount entries,
// always keeping the last one.
func catTicks(cfg TickConfig) []any {
	n := len(cfg.Values)
	count := cfg.TickCount
	if count <= 0 || n <= count {
		return append([]any(nil), cfg.Values...)
	}
	step := int(math.Ceil(float64(n) / float64(count)))
	var ticks []any
	last := -1
	for i := 0; i < n; i += step {
		ticks = append(ticks, cfg.Values[i])
		last = i
	}
	if last != n-1 {
		ticks = append(ticks, cfg.Values[n-1])
	}
	return ticks
}

type timeInterval struct {
	d      time.Duration
	months int
}

func (iv timeInterval) approx() float64 {
	if iv.months > 0 {
		return float64(iv.months) * 30.44 * 24 * float64(time.Hour/time.Millisecond)
	}
	return float64(iv.d / time.Millisecond)
}

var timeIntervals = []timeInterval{
	{d: time.Second}, {d: 5 * time.Second}, {d: 15 * time.Second}, {d: 30 * time.Second},
	{d: time.Minute}, {d: 5 * time.Minute}, {d: 15 * time.Minute}, {d: 30 * time.Minute},
	{d: time.Hour}, {d: 3 * time.Hour}, {d: 6 * time.Hour}, {d: 12 * time.Hour},
	{d: 24 * time.Hour}, {d: 48 * time.Hour}, {d: 7 * 24 * time.Hour},
	{months: 1}, {months: 3}, {months: 6}, {months: 12},
	{months: 24}, {months: 60}, {months: 120}, {months: 600},
}

// timeTicks places ticks on calendar boundaries: whole seconds through
// decades, picking the finest interval that yields at most TickCount ticks.
func timeTicks(cfg TickConfig) []any {
	if math.IsNaN(cfg.Min) || math.IsNaN(cfg.Max) || cfg.Max < cfg.Min {
		return nil
	}
	if cfg.Min == cfg.Max {
		return []any{cfg.Min}
	}
	if cfg.TickInterval > 0 {
		return floats(intervalTicks(cfg.Min, cfg.Max, cfg.TickInterval))
	}
	count := tickCount(cfg)
	span := cfg.Max - cfg.Min
	iv := timeIntervals[len(timeIntervals)-1]
	for _, c := range timeIntervals {
		if span/c.approx() <= float64(count) {
			iv = c
			break
		}
	}

	lo := time.UnixMilli(int64(cfg.Min)).UTC()
	var t time.Time
	switch {
	case iv.months >= 12:
		years := iv.months / 12
		t = time.Date(lo.Year()-lo.Year()%years, 1, 1, 0, 0, 0, 0, time.UTC)
	case iv.months > 0:
		m := int(lo.Month()) - 1
		t = time.Date(lo.Year(), time.Month(m-m%iv.months+1), 1, 0, 0, 0, 0, time.UTC)
	case iv.d >= 24*time.Hour:
		t = time.Date(lo.Year(), lo.Month(), lo.Day(), 0, 0, 0, 0, time.UTC)
	default:
		t = lo.Truncate(iv.d)
	}

	var ticks []float64
	for i := 0; i < 10000; i++ {
		ms := float64(t.UnixMilli())
		if ms > cfg.Max {
			break
		}
		if ms >= cfg.Min {
			ticks = append(ticks, ms)
		}
		if iv.months > 0 {
			t = t.AddDate(0, iv.months, 0)
		} else {
			t = t.Add(iv.d)
		}
	}
	out := make([]any, len(ticks))
	for i, v := range ticks {
		out[i] = v
	}
	return out
}
