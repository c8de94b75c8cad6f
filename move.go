package overlay

// Pointer-follow groups. While enabled, a frozen group tracks the pointer:
// its position is continuously recomputed as the pointer offset from the
// target window's center, and a synthetic model carrying the window-relative
// pointer coordinates drives template re-evaluation on every movement.

// moveGroup enables or disables pointer following for a frozen group.
// No-op without a windowing collaborator or if the name is not frozen.
// Only one follow listener exists at a time; enabling replaces it.
func (e *Engine) moveGroup(name string, enable bool) {
	if e.window == nil {
		return
	}
	if !enable {
		e.detachPointer()
		return
	}
	if _, ok := e.frozen[name]; !ok {
		return
	}

	e.detachPointer()
	// The window invokes the listener on its own thread; re-post onto the
	// scheduler before touching engine state.
	e.stopPointer = e.window.NotifyPointer(func(px, py int) {
		e.sched.Post(func() { e.followPointer(name, px, py) })
	})
}

func (e *Engine) detachPointer() {
	if e.stopPointer != nil {
		e.stopPointer()
		e.stopPointer = nil
	}
}

// followPointer repositions a followed group for one pointer movement and
// refreshes its templates with the synthetic mouse_x/mouse_y model fields.
// Stale callbacks for groups that have since left the frozen registry are
// no-ops.
func (e *Engine) followPointer(name string, px, py int) {
	g, ok := e.frozen[name]
	if !ok {
		return
	}

	wx, wy, ww, wh := e.window.Rect()
	nx := float64(px - wx - ww/2)
	ny := float64(py - wy - wh/2)

	if lx, seen := e.moveX[name]; seen && lx == nx && e.moveY[name] == ny {
		return
	}
	e.moveX[name] = nx
	e.moveY[name] = ny
	e.surface.SetPos(g.handle, nx, ny)

	m, ok := e.models[name]
	if !ok {
		m = NewModel()
		e.models[name] = m
	}
	m.Set("mouse_x", Number(nx+float64(ww/2)))
	m.Set("mouse_y", Number(ny+float64(wh/2)))
	e.updateGroupText(g.handle, m)
}
