// Package scene provides an in-memory reference implementation of
// overlay.Surface: a retained container of items and groups with stacking
// order, positions and bounding boxes, but no pixels. It backs tests, the
// demo binary, and any deployment that composites the overlay elsewhere.
package scene

import (
	"sort"
	"sync"

	"github.com/gogpu/overlay"
)

// Kind discriminates item variants.
type Kind uint8

const (
	KindRect Kind = iota
	KindLine
	KindText
	KindImage
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindLine:
		return "line"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindGroup:
		return "group"
	}
	return "unknown"
}

// Item is one retained entity. Exported accessors are read-only views for
// tests and diagnostics; mutation goes through the Surface methods.
type Item struct {
	id   int
	kind Kind

	rect overlay.RectSpec
	line overlay.LineSpec
	text overlay.TextSpec
	img  overlay.ImageSpec

	x, y             float64
	z                int
	originX, originY float64

	parent   *Item
	children []*Item

	animations int
}

// Kind reports the item variant.
func (it *Item) Kind() Kind { return it.kind }

// Pos reports the item's position offset in its parent's coordinate space.
func (it *Item) Pos() (x, y float64) { return it.x, it.y }

// Z reports the item's stacking order.
func (it *Item) Z() int { return it.z }

// Text reports the displayed string of a text item.
func (it *Item) Text() string { return it.text.Text }

// TextSpec returns the creation spec of a text item.
func (it *Item) TextSpec() overlay.TextSpec { return it.text }

// RectSpec returns the creation spec of a rect item.
func (it *Item) RectSpec() overlay.RectSpec { return it.rect }

// LineSpec returns the creation spec of a line item.
func (it *Item) LineSpec() overlay.LineSpec { return it.line }

// ImageSpec returns the creation spec of an image item.
func (it *Item) ImageSpec() overlay.ImageSpec { return it.img }

// Origin reports the transform origin in local coordinates.
func (it *Item) Origin() (x, y float64) { return it.originX, it.originY }

// Animations reports how many highlight animations the item has received.
func (it *Item) Animations() int { return it.animations }

// Scene is the retained container. It implements overlay.Surface.
//
// The engine drives a Scene from its single scheduler worker, but external
// readers (tests, diagnostics endpoints) may inspect it from other
// goroutines, so all access is mutex-guarded.
type Scene struct {
	mu       sync.Mutex
	measurer Measurer
	nextID   int
	present  map[*Item]struct{}
	roots    []*Item
}

// Compile-time check that Scene implements the engine's Surface contract.
var _ overlay.Surface = (*Scene)(nil)

// SceneOption configures a Scene during creation.
type SceneOption func(*Scene)

// WithMeasurer sets the text measurement backend. Defaults to the builtin
// heuristic measurer; use NewGoTextMeasurer for real font metrics.
func WithMeasurer(m Measurer) SceneOption {
	return func(s *Scene) { s.measurer = m }
}

// New creates an empty scene.
func New(opts ...SceneOption) *Scene {
	s := &Scene{present: make(map[*Item]struct{})}
	for _, opt := range opts {
		opt(s)
	}
	if s.measurer == nil {
		s.measurer = NewBuiltinMeasurer()
	}
	return s
}

func (s *Scene) add(it *Item) *Item {
	s.nextID++
	it.id = s.nextID
	s.present[it] = struct{}{}
	s.roots = append(s.roots, it)
	return it
}

// CreateRect implements overlay.Surface.
func (s *Scene) CreateRect(spec overlay.RectSpec) overlay.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(&Item{kind: KindRect, rect: spec})
}

// CreateLine implements overlay.Surface.
func (s *Scene) CreateLine(spec overlay.LineSpec) overlay.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(&Item{kind: KindLine, line: spec})
}

// CreateText implements overlay.Surface.
func (s *Scene) CreateText(spec overlay.TextSpec) overlay.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(&Item{kind: KindText, text: spec})
}

// CreateImage implements overlay.Surface.
func (s *Scene) CreateImage(spec overlay.ImageSpec) overlay.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := s.add(&Item{kind: KindImage, img: spec})
	it.x, it.y = spec.X, spec.Y
	return it
}

// CreateGroup implements overlay.Surface. The new group sits at the scene
// origin; members keep their scene positions.
func (s *Scene) CreateGroup(items []overlay.Item) overlay.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.add(&Item{kind: KindGroup})
	for _, h := range items {
		if it := s.lookup(h); it != nil {
			s.reparent(it, g)
		}
	}
	return g
}

// AddToGroup implements overlay.Surface.
func (s *Scene) AddToGroup(group, item overlay.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.lookup(group)
	it := s.lookup(item)
	if g == nil || it == nil || g.kind != KindGroup {
		return
	}
	s.reparent(it, g)
}

// Disband implements overlay.Surface. Members are re-rooted with their scene
// positions preserved; the group itself leaves the scene.
func (s *Scene) Disband(group overlay.Item) []overlay.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.lookup(group)
	if g == nil || g.kind != KindGroup {
		return nil
	}
	members := make([]overlay.Item, 0, len(g.children))
	for _, child := range append([]*Item(nil), g.children...) {
		s.reparent(child, nil)
		members = append(members, child)
	}
	s.removeItem(g)
	return members
}

// Children implements overlay.Surface.
func (s *Scene) Children(group overlay.Item) []overlay.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.lookup(group)
	if g == nil || len(g.children) == 0 {
		return nil
	}
	out := make([]overlay.Item, len(g.children))
	for i, c := range g.children {
		out[i] = c
	}
	return out
}

// Remove implements overlay.Surface. Removing a group removes everything
// under it.
func (s *Scene) Remove(item overlay.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it := s.lookup(item); it != nil {
		s.removeItem(it)
	}
}

// SetPos implements overlay.Surface.
func (s *Scene) SetPos(item overlay.Item, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it := s.lookup(item); it != nil {
		it.x, it.y = x, y
	}
}

// SetZ implements overlay.Surface.
func (s *Scene) SetZ(item overlay.Item, z int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it := s.lookup(item); it != nil {
		it.z = z
	}
}

// Bounds implements overlay.Surface, reporting the local bounding rectangle.
func (s *Scene) Bounds(item overlay.Item) overlay.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := s.lookup(item)
	if it == nil {
		return overlay.Rect{}
	}
	return s.bounds(it)
}

func (s *Scene) bounds(it *Item) overlay.Rect {
	switch it.kind {
	case KindRect:
		return it.rect.Rect
	case KindLine:
		x1, y1, x2, y2 := it.line.X1, it.line.Y1, it.line.X2, it.line.Y2
		if x2 < x1 {
			x1, x2 = x2, x1
		}
		if y2 < y1 {
			y1, y2 = y2, y1
		}
		return overlay.Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
	case KindText:
		w, h := s.measurer.Measure(it.text.Text, it.text.Font)
		return overlay.Rect{W: w, H: h}
	case KindImage:
		b := it.img.Image.Bounds()
		return overlay.Rect{W: float64(b.Dx()), H: float64(b.Dy())}
	case KindGroup:
		var u overlay.Rect
		first := true
		for _, c := range it.children {
			cb := s.bounds(c)
			cb.X += c.x
			cb.Y += c.y
			if first {
				u = cb
				first = false
				continue
			}
			u = union(u, cb)
		}
		return u
	}
	return overlay.Rect{}
}

func union(a, b overlay.Rect) overlay.Rect {
	minX := min(a.X, b.X)
	minY := min(a.Y, b.Y)
	maxX := max(a.X+a.W, b.X+b.W)
	maxY := max(a.Y+a.H, b.Y+b.H)
	return overlay.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// MapFromScene implements overlay.Surface.
func (s *Scene) MapFromScene(item overlay.Item, x, y float64) (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := s.lookup(item)
	for it != nil {
		x -= it.x
		y -= it.y
		it = it.parent
	}
	return x, y
}

// SetTransformOrigin implements overlay.Surface.
func (s *Scene) SetTransformOrigin(item overlay.Item, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it := s.lookup(item); it != nil {
		it.originX, it.originY = x, y
	}
}

// SetText implements overlay.Surface.
func (s *Scene) SetText(item overlay.Item, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it := s.lookup(item); it != nil && it.kind == KindText {
		it.text.Text = text
	}
}

// Animate implements overlay.Surface.
func (s *Scene) Animate(item overlay.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it := s.lookup(item); it != nil {
		it.animations++
	}
}

// Roots returns the top-level items, bottom-to-top stacking order.
func (s *Scene) Roots() []*Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]*Item(nil), s.roots...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].z != out[j].z {
			return out[i].z < out[j].z
		}
		return out[i].id < out[j].id
	})
	return out
}

// Len reports the total number of retained items, groups included.
func (s *Scene) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.present)
}

// lookup resolves an opaque handle, returning nil for foreign or removed
// handles rather than panicking: the engine may legitimately hold a handle
// that a timer already raced away.
func (s *Scene) lookup(h overlay.Item) *Item {
	it, ok := h.(*Item)
	if !ok {
		return nil
	}
	if _, present := s.present[it]; !present {
		return nil
	}
	return it
}

// reparent moves an item under a new parent (or to the root set for nil),
// preserving its scene position.
func (s *Scene) reparent(it *Item, parent *Item) {
	offX, offY := s.sceneOffset(it.parent)
	newOffX, newOffY := s.sceneOffset(parent)

	s.detach(it)
	it.parent = parent
	if parent != nil {
		parent.children = append(parent.children, it)
	} else {
		s.roots = append(s.roots, it)
	}

	// Keep the item where it was on screen.
	it.x += offX - newOffX
	it.y += offY - newOffY
}

// sceneOffset accumulates an ancestry chain's position offsets.
func (s *Scene) sceneOffset(it *Item) (float64, float64) {
	var x, y float64
	for it != nil {
		x += it.x
		y += it.y
		it = it.parent
	}
	return x, y
}

// detach unlinks an item from its parent or the root set without removing
// it from the scene.
func (s *Scene) detach(it *Item) {
	if it.parent != nil {
		siblings := it.parent.children
		for i, c := range siblings {
			if c == it {
				it.parent.children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
		it.parent = nil
		return
	}
	for i, c := range s.roots {
		if c == it {
			s.roots = append(s.roots[:i], s.roots[i+1:]...)
			break
		}
	}
}

// removeItem drops an item and, for groups, its whole subtree.
func (s *Scene) removeItem(it *Item) {
	for _, c := range append([]*Item(nil), it.children...) {
		s.removeItem(c)
	}
	s.detach(it)
	delete(s.present, it)
}
