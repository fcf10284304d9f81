package scale

import (
	"math"
	"sort"
	"strings"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/data"
)

type poolEntry struct {
	key     string
	scale   *Scale
	def     Def
	syncKey string
}

// Pool caches the scales of one view tree by key. It is the only place
// shared scales are created, replaced or synchronized; views never hold a
// private copy of a pooled scale.
type Pool struct {
	entries map[string]*poolEntry
	order   []string
	sync    map[string][]string
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{
		entries: make(map[string]*poolEntry),
		sync:    make(map[string][]string),
	}
}

// CreateScale returns the scale registered under key, updated in place from
// rows and def, or registers a new one.
//
// When rows is empty and the key is already cached, the cached type and,
// for category scales, the cached values are kept so a filtered-out view
// does not collapse a shared domain. A type change replaces the instance.
func (p *Pool) CreateScale(field string, rows []data.Datum, def Def, key string) *Scale {
	cached := p.entries[key]
	if cached != nil && len(rows) == 0 {
		if def.Type == "" {
			def.Type = cached.scale.Type
		}
		if cached.scale.IsCategory() && def.Values == nil {
			def.Values = append([]any(nil), cached.scale.Values...)
		}
	}
	def = Infer(field, rows, def)
	values := data.Values(rows, field)

	var s *Scale
	if cached != nil && cached.scale.Type == def.Type {
		s = cached.scale
		s.Field = field
		s.Reset(values, def)
	} else {
		s = New(field, values, def)
	}
	p.register(key, s, def)
	return s
}

func (p *Pool) register(key string, s *Scale, def Def) {
	if old, ok := p.entries[key]; ok {
		p.removeSync(old.syncKey, key)
	} else {
		p.order = append(p.order, key)
	}
	e := &poolEntry{key: key, scale: s, def: def.Clone(), syncKey: def.SyncKey(s.Field)}
	p.entries[key] = e
	if e.syncKey != "" {
		p.sync[e.syncKey] = append(p.sync[e.syncKey], key)
	}
}

func (p *Pool) removeSync(syncKey, key string) {
	if syncKey == "" {
		return
	}
	keys := p.sync[syncKey]
	for i, k := range keys {
		if k == key {
			keys = append(keys[:i:i], keys[i+1:]...)
			break
		}
	}
	if len(keys) == 0 {
		delete(p.sync, syncKey)
		return
	}
	p.sync[syncKey] = keys
}

// GetScale returns the scale under key. When the key is unknown it falls
// back to the first member of the sync group named after the field part of
// the key. View ids carry no '-', so the field is everything after the
// first one and may itself contain hyphens.
func (p *Pool) GetScale(key string) *Scale {
	if e, ok := p.entries[key]; ok {
		return e.scale
	}
	field := key
	if _, f, found := strings.Cut(key, "-"); found {
		field = f
	}
	if keys := p.sync[field]; len(keys) > 0 {
		return p.entries[keys[0]].scale
	}
	return nil
}

// DeleteScale removes every entry holding s.
func (p *Pool) DeleteScale(s *Scale) {
	for _, key := range append([]string(nil), p.order...) {
		e := p.entries[key]
		if e.scale != s {
			continue
		}
		p.removeSync(e.syncKey, key)
		delete(p.entries, key)
		for i, k := range p.order {
			if k == key {
				p.order = append(p.order[:i:i], p.order[i+1:]...)
				break
			}
		}
	}
}

// Clear drops every entry.
func (p *Pool) Clear() {
	p.entries = make(map[string]*poolEntry)
	p.sync = make(map[string][]string)
	p.order = nil
}

// Len returns the number of cached scales.
func (p *Pool) Len() int { return len(p.entries) }

// Keys returns the cached keys in registration order.
func (p *Pool) Keys() []string { return append([]string(nil), p.order...) }

// SyncGroups returns the sync groups and their member keys.
func (p *Pool) SyncGroups() map[string][]string {
	out := make(map[string][]string, len(p.sync))
	for k, v := range p.sync {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Sync unifies every sync group: continuous members get the union of their
// extents, category members the union of their values. Category members
// without a user range get [DefaultCategoryRange] under c.
func (p *Pool) Sync(c coord.Coordinate, widthRatio float64) {
	groups := make([]string, 0, len(p.sync))
	for g := range p.sync {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	for _, g := range groups {
		keys := p.sync[g]
		lo, hi := math.Inf(1), math.Inf(-1)
		var values []any
		for _, k := range keys {
			s := p.entries[k].scale
			if s.IsContinuous() {
				lo, hi = math.Min(lo, s.Min), math.Max(hi, s.Max)
			}
			for _, v := range s.Values {
				if data.IndexOf(values, v) < 0 {
					values = append(values, v)
				}
			}
		}
		for _, k := range keys {
			e := p.entries[k]
			s := e.scale
			switch {
			case s.IsContinuous():
				s.Update(Def{Min: Float(lo), Max: Float(hi)})
			case s.IsCategory():
				upd := Def{Values: values}
				if e.def.Range == nil {
					probe := &Scale{Values: values}
					upd.Range = DefaultCategoryRange(probe, c, widthRatio)
				}
				s.Update(upd)
			}
		}
	}
}
