package overlay

import (
	"math"
	"runtime"
)

// Primitive builders: translation and per-primitive visual policy. Builders
// hold no state of their own — they decode wire values, apply clamps and
// fallbacks, materialize items on the surface and hand them to the registry
// for lifecycle management.

const (
	// minLineWidth is the minimum visual stroke weight, applied after the
	// wire value is scaled down by lineWidthScale.
	minLineWidth   = 1.0
	lineWidthScale = 10.0

	// MaxFontSize caps requested text sizes.
	MaxFontSize = 50
)

// penFor builds a Pen from wire color and line width values. Wire line
// widths are tenths of a pixel, clamped to a minimum visual weight.
func penFor(packed uint32, lineWidth int) Pen {
	return Pen{
		Color: DecodeColor(packed),
		Width: math.Max(minLineWidth, float64(lineWidth)/lineWidthScale),
	}
}

// fallbackFamily substitutes the platform fallback face when no family was
// requested. The default face is unreadable on darwin, so Menlo stands in.
func fallbackFamily(family, goos string) string {
	if family == "" && goos == "darwin" {
		return "Menlo"
	}
	return family
}

// textState records the template a text item was created with and the string
// it currently displays, so model rebinds can re-evaluate and detect change.
type textState struct {
	template string
	current  string
}

// buildRect materializes a rectangle outline and registers it under the
// implicit current group.
func (e *Engine) buildRect(packed uint32, x, y, w, h, timeout, lineWidth int) {
	item := e.surface.CreateRect(RectSpec{
		Rect: Rect{X: float64(x), Y: float64(y), W: float64(w), H: float64(h)},
		Pen:  penFor(packed, lineWidth),
	})
	e.finalize([]Item{item}, timeout, "")
}

// buildLine materializes a line segment and registers it under the implicit
// current group.
func (e *Engine) buildLine(packed uint32, lineWidth, x1, y1, x2, y2, timeout int) {
	item := e.surface.CreateLine(LineSpec{
		X1: float64(x1), Y1: float64(y1), X2: float64(x2), Y2: float64(y2),
		Pen: penFor(packed, lineWidth),
	})
	e.finalize([]Item{item}, timeout, "")
}

// buildText materializes a text item. The message is a template: when the
// current group has a bound model it is evaluated immediately, and the raw
// template is recorded on the item so later rebinds can re-evaluate it.
// Evaluation failure is a command fault — no primitive is created.
func (e *Engine) buildText(message string, packed uint32, size, x, y, timeout int, family string, centered, shadow bool) error {
	groupName := e.stack.Peek()
	display := message
	if m, ok := e.models[groupName]; ok {
		rendered, err := RenderTemplate(message, m)
		if err != nil {
			return err
		}
		display = rendered
	}

	if size > MaxFontSize {
		size = MaxFontSize
	}
	item := e.surface.CreateText(TextSpec{
		Text:   display,
		Color:  DecodeColor(packed),
		Font:   Font{Family: fallbackFamily(family, runtime.GOOS), Size: float64(size)},
		Shadow: shadow,
	})
	e.text[item] = &textState{template: message, current: display}

	// Anchor math. For centered text the given point is the middle of the
	// item; otherwise it is the top-left. The transform origin lands on the
	// item's visual center either way, so refresh animations scale in place.
	b := e.surface.Bounds(item)
	fx, fy := float64(x), float64(y)
	var ox, oy float64
	if centered {
		e.surface.SetPos(item, fx-b.W/2, fy-b.H/2)
		ox, oy = e.surface.MapFromScene(item, fx, fy)
	} else {
		e.surface.SetPos(item, fx, fy)
		ox, oy = e.surface.MapFromScene(item, fx+b.W/2, fy+b.H/2)
	}
	e.surface.SetTransformOrigin(item, ox, oy)

	e.finalize([]Item{item}, timeout, "")
	return nil
}

// buildImage decodes an image payload (raw encoded bytes; the wire may also
// carry them base64-packed, unwrapped by Args.Bytes) and materializes it at
// a fixed position. Decoded images are memoized by content.
func (e *Engine) buildImage(raw []byte, x, y, timeout int) error {
	img, err := e.decodeImage(raw)
	if err != nil {
		return err
	}
	item := e.surface.CreateImage(ImageSpec{Image: img, X: float64(x), Y: float64(y)})
	e.finalize([]Item{item}, timeout, "")
	return nil
}

// updateGroupText re-evaluates every template text item under a group,
// recursively through nested sub-groups, against a freshly bound model.
// Items whose rendered text changed are updated and, when the model requests
// it, animated. Items whose template no longer resolves keep their last
// displayed text.
func (e *Engine) updateGroupText(group Item, m *Model) {
	for _, child := range e.surface.Children(group) {
		if st, ok := e.text[child]; ok {
			rendered, err := RenderTemplate(st.template, m)
			if err != nil {
				Logger().Warn("overlay: template refresh failed", "template", st.template, "err", err)
				continue
			}
			if rendered != st.current {
				st.current = rendered
				e.surface.SetText(child, rendered)
				if m.Animate() {
					e.surface.Animate(child)
				}
			}
		}
		e.updateGroupText(child, m)
	}
}

// dropTextStates forgets template state for every text item under a group.
// Called before the group leaves the scene.
func (e *Engine) dropTextStates(group Item) {
	for _, child := range e.surface.Children(group) {
		delete(e.text, child)
		e.dropTextStates(child)
	}
}
