package overlay

import "testing"

// fakeWindow is a scripted windowing collaborator. It delivers pointer
// movements synchronously to the registered listener.
type fakeWindow struct {
	x, y, w, h int

	listener func(x, y int)
	stops    int
}

func (w *fakeWindow) Rect() (int, int, int, int) {
	return w.x, w.y, w.w, w.h
}

func (w *fakeWindow) NotifyPointer(fn func(x, y int)) func() {
	w.listener = fn
	return func() {
		w.stops++
		w.listener = nil
	}
}

func (w *fakeWindow) move(x, y int) {
	if w.listener != nil {
		w.listener(x, y)
	}
}

func setupFollow(t *testing.T, win *fakeWindow) (*Engine, *fakeSurface, *manualClock) {
	t.Helper()
	eng, surf, clock := newTestEngine(WithWindow(win))
	eng.Enqueue(1, "overlay_set_group", "tip")
	eng.Enqueue(2, "overlay_text", "({self.mouse_x}, {self.mouse_y})", 0xFFFFFFFF, 12, 0, 0, 1000, "", false, false)
	eng.Enqueue(3, "overlay_freeze_group", "tip")
	eng.Enqueue(4, "overlay_move_group", "tip", true)
	clock.drain()
	return eng, surf, clock
}

func TestMoveGroupFollowsPointer(t *testing.T) {
	win := &fakeWindow{x: 100, y: 50, w: 800, h: 600}
	eng, surf, clock := setupFollow(t, win)

	win.move(500, 300)
	clock.drain()

	// Group position is the pointer offset from the window center:
	// (500-100-400, 300-50-300) = (0, -50).
	var group *fakeItem
	for _, it := range surf.items {
		if it.kind == "group" && !surf.wasRemoved(it) {
			group = it
		}
	}
	if group == nil {
		t.Fatal("no live group")
	}
	if group.x != 0 || group.y != -50 {
		t.Errorf("group at (%v, %v), want (0, -50)", group.x, group.y)
	}

	// The synthetic model carries window-relative pointer coordinates.
	m := eng.models["tip"]
	if m == nil {
		t.Fatal("no synthetic model bound")
	}
	if v, _ := m.Get("mouse_x"); v.Format() != "400" {
		t.Errorf("mouse_x = %q, want 400", v.Format())
	}
	if v, _ := m.Get("mouse_y"); v.Format() != "250" {
		t.Errorf("mouse_y = %q, want 250", v.Format())
	}

	// Template text refreshed from the synthetic fields.
	var text string
	for _, it := range surf.items {
		if it.kind == "text" {
			text = it.text.Text
		}
	}
	if text != "(400, 250)" {
		t.Errorf("text = %q, want %q", text, "(400, 250)")
	}
}

func TestMoveGroupDisableDetaches(t *testing.T) {
	win := &fakeWindow{w: 800, h: 600}
	eng, _, clock := setupFollow(t, win)

	eng.Enqueue(5, "overlay_move_group", "tip", false)
	clock.drain()

	if win.stops != 1 {
		t.Errorf("stops = %d, want 1", win.stops)
	}
	if win.listener != nil {
		t.Error("listener still attached after disable")
	}
}

func TestMoveGroupRequiresFrozen(t *testing.T) {
	win := &fakeWindow{w: 800, h: 600}
	eng, _, clock := newTestEngine(WithWindow(win))

	eng.Enqueue(1, "overlay_set_group", "tip")
	eng.Enqueue(2, "overlay_rect", 0xFFFF0000, 0, 0, 10, 10, 1000, 10)
	eng.Enqueue(3, "overlay_move_group", "tip", true)
	clock.drain()

	if win.listener != nil {
		t.Error("listener attached for a non-frozen group")
	}
	_ = eng
}

func TestMoveGroupWithoutWindow(t *testing.T) {
	eng, _, clock := newTestEngine()

	eng.Enqueue(1, "overlay_set_group", "tip")
	eng.Enqueue(2, "overlay_rect", 0xFFFF0000, 0, 0, 10, 10, 1000, 10)
	eng.Enqueue(3, "overlay_freeze_group", "tip")
	eng.Enqueue(4, "overlay_move_group", "tip", true)
	clock.drain()

	// No window collaborator: the command is a silent no-op.
	if id, _ := eng.LastProcessed(); id != 4 {
		t.Errorf("LastProcessed() = %d, want 4", id)
	}
}

func TestFollowSkipsUnchangedPosition(t *testing.T) {
	win := &fakeWindow{w: 800, h: 600}
	eng, surf, clock := setupFollow(t, win)

	win.move(500, 300)
	clock.drain()
	moves := surf.posSets

	win.move(500, 300)
	clock.drain()
	if surf.posSets != moves {
		t.Errorf("duplicate pointer position repositioned the group")
	}

	_ = eng
}

func TestStaleFollowCallbackIsNoOp(t *testing.T) {
	win := &fakeWindow{w: 800, h: 600}
	eng, _, clock := setupFollow(t, win)

	// Capture the listener, then clear the group out from under it.
	fn := win.listener
	eng.Enqueue(5, "overlay_clear_group", "tip")
	clock.drain()

	if fn != nil {
		fn(123, 456)
	}
	clock.drain()
	if _, ok := eng.models["tip"]; ok {
		t.Error("stale follow callback rebuilt state for a cleared group")
	}
}
