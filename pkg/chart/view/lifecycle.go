package view

// Clear drops geometries, scales and component content of v and its
// children, returning them to the initialized state. Configuration,
// controllers, interactions and child views are kept.
func (v *View) Clear() {
	v.Emit(EventBeforeClear, nil)
	v.clear()
	v.Emit(EventAfterClear, nil)
}

func (v *View) clear() {
	v.filteredData = nil
	v.coordinate = nil
	v.preMouseInPlot, v.preTouchInPlot = false, false
	for _, g := range v.geometries {
		g.Destroy()
	}
	v.geometries, v.containers = nil, nil
	for _, c := range v.controllers {
		c.Clear()
	}
	if v.facet != nil {
		v.facet.Clear()
	}
	root := v.Root()
	if v.parent == nil && v.pool != nil {
		v.pool.Clear()
	} else if root.pool != nil {
		for key := range v.scaleKeys {
			if s := root.pool.GetScale(key); s != nil {
				root.pool.DeleteScale(s)
			}
		}
	}
	clear(v.scaleKeys)
	for _, c := range v.views {
		c.clear()
	}
	if v.state != StateDestroyed {
		v.state = StateInitialized
	}
}

// Destroy clears v and releases everything it owns: children,
// controllers, interactions, facets, layers and event handlers. A
// destroyed view must not be used again.
func (v *View) Destroy() {
	if p := v.parent; p != nil {
		p.RemoveView(v)
		return
	}
	v.destroy()
}

func (v *View) destroy() {
	if v.state == StateDestroyed {
		return
	}
	v.Emit(EventBeforeDestroy, nil)
	v.clear()
	for name, in := range v.interactions {
		in.Destroy()
		delete(v.interactions, name)
	}
	for _, c := range v.controllers {
		c.Destroy()
	}
	v.controllers = nil
	if v.facet != nil {
		v.facet.Destroy()
		v.facet = nil
	}
	for _, c := range v.views {
		c.destroy()
	}
	v.views = nil
	for _, off := range v.unsubscribe {
		off()
	}
	v.unsubscribe = nil
	v.background.Destroy()
	v.middle.Destroy()
	v.foreground.Destroy()
	v.events.Off("")
	v.state = StateDestroyed
}
