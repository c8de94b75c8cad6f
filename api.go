package overlay

// Wire handlers (the run targets of the command table) and the direct
// lifecycle API exposed to in-process callers. Direct calls carry the same
// guarded-no-op boundary as queued commands: without a surface they do
// nothing, because the overlay window may legitimately be unavailable.

func (e *Engine) cmdRect(args Args) error {
	packed, err := args.Int(0)
	if err != nil {
		return err
	}
	x, err := args.Int(1)
	if err != nil {
		return err
	}
	y, err := args.Int(2)
	if err != nil {
		return err
	}
	w, err := args.Int(3)
	if err != nil {
		return err
	}
	h, err := args.Int(4)
	if err != nil {
		return err
	}
	timeout, err := args.Int(5)
	if err != nil {
		return err
	}
	lineWidth, err := args.Int(6)
	if err != nil {
		return err
	}
	e.buildRect(uint32(packed), x, y, w, h, timeout, lineWidth)
	return nil
}

func (e *Engine) cmdLine(args Args) error {
	packed, err := args.Int(0)
	if err != nil {
		return err
	}
	lineWidth, err := args.Int(1)
	if err != nil {
		return err
	}
	x1, err := args.Int(2)
	if err != nil {
		return err
	}
	y1, err := args.Int(3)
	if err != nil {
		return err
	}
	x2, err := args.Int(4)
	if err != nil {
		return err
	}
	y2, err := args.Int(5)
	if err != nil {
		return err
	}
	timeout, err := args.Int(6)
	if err != nil {
		return err
	}
	e.buildLine(uint32(packed), lineWidth, x1, y1, x2, y2, timeout)
	return nil
}

func (e *Engine) cmdText(args Args) error {
	message, err := args.String(0)
	if err != nil {
		return err
	}
	packed, err := args.Int(1)
	if err != nil {
		return err
	}
	size, err := args.Int(2)
	if err != nil {
		return err
	}
	x, err := args.Int(3)
	if err != nil {
		return err
	}
	y, err := args.Int(4)
	if err != nil {
		return err
	}
	timeout, err := args.Int(5)
	if err != nil {
		return err
	}
	family, err := args.String(6)
	if err != nil {
		return err
	}
	centered, err := args.Bool(7)
	if err != nil {
		return err
	}
	shadow, err := args.Bool(8)
	if err != nil {
		return err
	}
	return e.buildText(message, uint32(packed), size, x, y, timeout, family, centered, shadow)
}

func (e *Engine) cmdImage(args Args) error {
	raw, err := args.Bytes(0)
	if err != nil {
		return err
	}
	x, err := args.Int(1)
	if err != nil {
		return err
	}
	y, err := args.Int(2)
	if err != nil {
		return err
	}
	timeout, err := args.Int(3)
	if err != nil {
		return err
	}
	return e.buildImage(raw, x, y, timeout)
}

func (e *Engine) cmdSetGroup(args Args) error {
	name, err := args.String(0)
	if err != nil {
		return err
	}
	model, err := args.Map(1)
	if err != nil {
		return err
	}
	e.setGroup(name, model)
	return nil
}

func (e *Engine) cmdClearGroup(args Args) error {
	name, err := args.String(0)
	if err != nil {
		return err
	}
	e.clearGroup(name)
	return nil
}

func (e *Engine) cmdFreezeGroup(args Args) error {
	name, err := args.String(0)
	if err != nil {
		return err
	}
	e.freezeGroup(name)
	return nil
}

func (e *Engine) cmdContinueGroup(args Args) error {
	name, err := args.String(0)
	if err != nil {
		return err
	}
	e.continueGroup(name)
	return nil
}

func (e *Engine) cmdRefreshGroup(args Args) error {
	name, err := args.String(0)
	if err != nil {
		return err
	}
	e.refreshGroup(name)
	return nil
}

func (e *Engine) cmdMoveGroup(args Args) error {
	name, err := args.String(0)
	if err != nil {
		return err
	}
	enable, err := args.Bool(1)
	if err != nil {
		return err
	}
	e.moveGroup(name, enable)
	return nil
}

func (e *Engine) cmdSetGroupZ(args Args) error {
	name, err := args.String(0)
	if err != nil {
		return err
	}
	z, err := args.Int(1)
	if err != nil {
		return err
	}
	e.setGroupZ(name, z)
	return nil
}

// setGroup makes name the current group and optionally binds a model to it.
// Binding while the group is frozen re-evaluates its template text
// immediately; active groups pick the model up on their next refresh.
func (e *Engine) setGroup(name string, model map[string]any) {
	e.stack.Push(name)
	if model == nil {
		return
	}
	m := ModelFromMap(model)
	e.models[name] = m
	if g, ok := e.frozen[name]; ok {
		e.updateGroupText(g.handle, m)
	}
}

// SetGroup makes name the implicit target for subsequent draw commands and
// optionally binds a text model (see the package documentation for the
// template grammar). Pass nil to only switch groups.
func (e *Engine) SetGroup(name string, model map[string]any) {
	if e.surface == nil {
		return
	}
	e.setGroup(name, model)
}

// ClearGroup removes a group regardless of its state.
func (e *Engine) ClearGroup(name string) {
	if e.surface == nil {
		return
	}
	e.clearGroup(name)
}

// FreezeGroup converts an active group into a persistent frozen one.
func (e *Engine) FreezeGroup(name string) {
	if e.surface == nil {
		return
	}
	e.freezeGroup(name)
}

// ContinueGroup releases a frozen group back to active with the default
// timeout.
func (e *Engine) ContinueGroup(name string) {
	if e.surface == nil {
		return
	}
	e.continueGroup(name)
}

// RefreshGroup rebuilds a frozen group and re-evaluates its template text.
func (e *Engine) RefreshGroup(name string) {
	if e.surface == nil {
		return
	}
	e.refreshGroup(name)
}

// MoveGroup enables or disables pointer following for a frozen group.
func (e *Engine) MoveGroup(name string, enable bool) {
	if e.surface == nil {
		return
	}
	e.moveGroup(name, enable)
}

// SetGroupZ restacks an active group.
func (e *Engine) SetGroupZ(name string, z int) {
	if e.surface == nil {
		return
	}
	e.setGroupZ(name, z)
}

// Rect draws a rectangle outline into the current group.
func (e *Engine) Rect(color uint32, x, y, w, h, timeout, lineWidth int) {
	if e.surface == nil {
		return
	}
	e.buildRect(color, x, y, w, h, timeout, lineWidth)
}

// Line draws a line segment into the current group.
func (e *Engine) Line(color uint32, lineWidth, x1, y1, x2, y2, timeout int) {
	if e.surface == nil {
		return
	}
	e.buildLine(color, lineWidth, x1, y1, x2, y2, timeout)
}

// Text draws a text item into the current group. The message may carry
// template placeholders evaluated against the group's bound model.
func (e *Engine) Text(message string, color uint32, size, x, y, timeout int, family string, centered, shadow bool) error {
	if e.surface == nil {
		return nil
	}
	return e.buildText(message, color, size, x, y, timeout, family, centered, shadow)
}

// Image draws an encoded image into the current group.
func (e *Engine) Image(raw []byte, x, y, timeout int) error {
	if e.surface == nil {
		return nil
	}
	return e.buildImage(raw, x, y, timeout)
}
