package overlay

import "time"

// Group lifecycle. A name is absent, active or frozen — never more than one
// at a time. Active groups auto-hide when their timeout expires; frozen
// groups persist until explicitly continued or cleared. Conversions between
// the two always disband and rebuild the group so the single timeout-based
// expiry path never has to special-case frozen membership.

// clampTimeout bounds an active-group timeout to [MinTimeout, MaxTimeout]
// milliseconds.
func clampTimeout(ms int) int {
	if ms < MinTimeout {
		return MinTimeout
	}
	if ms > MaxTimeout {
		return MaxTimeout
	}
	return ms
}

// registerGroup files primitives under a named group. If the name already
// exists in either registry the primitives merge into it with no state
// change. Otherwise a new group is created: frozen when timeout <= 0, active
// with a clamped timeout otherwise. Returns the group handle.
func (e *Engine) registerGroup(name string, timeout int, items []Item) Item {
	if g, ok := e.active[name]; ok {
		for _, it := range items {
			e.surface.AddToGroup(g.handle, it)
		}
		return g.handle
	}
	if g, ok := e.frozen[name]; ok {
		for _, it := range items {
			e.surface.AddToGroup(g.handle, it)
		}
		return g.handle
	}

	handle := e.surface.CreateGroup(items)
	if timeout <= 0 {
		e.frozen[name] = &group{handle: handle}
	} else {
		e.active[name] = &group{handle: handle, timeout: clampTimeout(timeout)}
	}
	return handle
}

// finalize registers freshly built primitives under a group and, for active
// groups, arms the one-shot expiry callback. An empty name resolves against
// the context stack. The callback re-checks registry membership when it
// fires, so groups that were cleared or frozen in the interim stay put.
func (e *Engine) finalize(items []Item, timeout int, name string) {
	if name == "" {
		name = e.stack.Peek()
	}
	e.registerGroup(name, timeout, items)

	if timeout > 0 {
		d := time.Duration(clampTimeout(timeout)) * time.Millisecond
		e.sched.After(d, func() {
			e.hideGroup(name)
		})
	}
}

// hideGroup removes an active group and its primitives from the surface and
// emits a hide notification. Absent and frozen names are no-ops: a frozen
// group must be continued before it can be hidden.
func (e *Engine) hideGroup(name string) {
	g, ok := e.active[name]
	if !ok {
		return
	}
	delete(e.active, name)
	e.dropTextStates(g.handle)
	e.surface.Remove(g.handle)
	e.emit(EventHideGroup, name)
}

// ungroup removes a name from whichever registry holds it and disbands the
// group; the primitives stay in the scene individually. Returns the former
// primitives and stored timeout, or (nil, -1) when the name is absent from
// both registries.
func (e *Engine) ungroup(name string) ([]Item, int) {
	if g, ok := e.active[name]; ok {
		delete(e.active, name)
		return e.surface.Disband(g.handle), g.timeout
	}
	if g, ok := e.frozen[name]; ok {
		delete(e.frozen, name)
		return e.surface.Disband(g.handle), 0
	}
	return nil, -1
}

// freezeGroup converts an active group into a frozen one by disbanding and
// rebuilding it under the same name with no timeout. Already-frozen and
// absent names only resolve the context stack.
func (e *Engine) freezeGroup(name string) {
	_, isFrozen := e.frozen[name]
	_, isActive := e.active[name]
	if isFrozen || !isActive {
		e.stack.Push(name)
		return
	}

	items, _ := e.ungroup(name)
	e.finalize(items, 0, name)
}

// continueGroup converts a frozen group back into an active one with the
// default timeout. Already-active and absent names only resolve the context
// stack.
func (e *Engine) continueGroup(name string) {
	_, isFrozen := e.frozen[name]
	_, isActive := e.active[name]
	if isActive || !isFrozen {
		e.stack.Push(name)
		return
	}

	items, _ := e.ungroup(name)
	e.finalize(items, DefaultTimeout, name)
}

// refreshGroup rebuilds a frozen group in place (continue immediately
// followed by freeze) and re-evaluates its template text against the bound
// model. No-op if the name is not frozen.
func (e *Engine) refreshGroup(name string) {
	if _, ok := e.frozen[name]; !ok {
		return
	}

	e.continueGroup(name)
	e.freezeGroup(name)

	if m, ok := e.models[name]; ok {
		if g, ok := e.frozen[name]; ok {
			e.updateGroupText(g.handle, m)
		}
	}
}

// clearGroup removes a group regardless of state: frozen groups are demoted
// to active first, then hidden.
func (e *Engine) clearGroup(name string) {
	if _, ok := e.frozen[name]; ok {
		e.continueGroup(name)
	}
	e.hideGroup(name)
}

// setGroupZ restacks an active group. No-op if the name is not active.
func (e *Engine) setGroupZ(name string, z int) {
	g, ok := e.active[name]
	if !ok {
		return
	}
	e.surface.SetZ(g.handle, z)
}

// ActiveGroups returns the names currently filed as active. Intended for
// tests and diagnostics.
func (e *Engine) ActiveGroups() []string {
	names := make([]string, 0, len(e.active))
	for name := range e.active {
		names = append(names, name)
	}
	return names
}

// FrozenGroups returns the names currently filed as frozen. Intended for
// tests and diagnostics.
func (e *Engine) FrozenGroups() []string {
	names := make([]string, 0, len(e.frozen))
	for name := range e.frozen {
		names = append(names, name)
	}
	return names
}
