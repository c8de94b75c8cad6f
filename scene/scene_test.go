package scene

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/overlay"
)

func rectAt(s *Scene, x, y, w, h float64) overlay.Item {
	return s.CreateRect(overlay.RectSpec{
		Rect: overlay.Rect{X: x, Y: y, W: w, H: h},
		Pen:  overlay.Pen{Color: color.NRGBA{R: 0xFF, A: 0xFF}, Width: 1},
	})
}

func TestCreateAndRemove(t *testing.T) {
	s := New()
	r := rectAt(s, 0, 0, 10, 10)

	if got := s.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
	s.Remove(r)
	if got := s.Len(); got != 0 {
		t.Errorf("Len() after Remove = %d, want 0", got)
	}
	if got := s.Bounds(r); got != (overlay.Rect{}) {
		t.Errorf("Bounds on removed handle = %+v, want zero", got)
	}
}

func TestGroupingPreservesPositions(t *testing.T) {
	s := New()
	a := rectAt(s, 0, 0, 10, 10)
	b := rectAt(s, 0, 0, 10, 10)
	s.SetPos(a, 100, 50)
	s.SetPos(b, 200, 80)

	g := s.CreateGroup([]overlay.Item{a, b})

	// Reparenting under a group at origin does not move anything on screen.
	if x, y := a.(*Item).Pos(); x != 100 || y != 50 {
		t.Errorf("a at (%v, %v) after grouping, want (100, 50)", x, y)
	}

	// Moving the group shifts members in scene space but not locally.
	s.SetPos(g, 10, 20)
	if x, y := s.MapFromScene(a, 110, 70); x != 0 || y != 0 {
		t.Errorf("MapFromScene through moved group = (%v, %v), want (0, 0)", x, y)
	}

	// Disbanding re-roots members with their scene position absorbed.
	members := s.Disband(g)
	if len(members) != 2 {
		t.Fatalf("Disband returned %d members, want 2", len(members))
	}
	if x, y := a.(*Item).Pos(); x != 110 || y != 70 {
		t.Errorf("a at (%v, %v) after disband, want (110, 70)", x, y)
	}
	if got := s.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2 after group left the scene", got)
	}
}

func TestRemoveGroupRemovesSubtree(t *testing.T) {
	s := New()
	a := rectAt(s, 0, 0, 10, 10)
	b := rectAt(s, 0, 0, 10, 10)
	g := s.CreateGroup([]overlay.Item{a, b})

	s.Remove(g)
	if got := s.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}

func TestAddToGroup(t *testing.T) {
	s := New()
	a := rectAt(s, 0, 0, 10, 10)
	g := s.CreateGroup([]overlay.Item{a})
	b := rectAt(s, 0, 0, 10, 10)

	s.AddToGroup(g, b)
	if got := len(s.Children(g)); got != 2 {
		t.Errorf("group has %d children, want 2", got)
	}
	if got := len(s.Roots()); got != 1 {
		t.Errorf("%d roots, want 1", got)
	}
}

func TestGroupBounds(t *testing.T) {
	s := New()
	a := rectAt(s, 0, 0, 10, 10)
	b := rectAt(s, 0, 0, 20, 5)
	s.SetPos(a, 100, 100)
	s.SetPos(b, 150, 90)
	g := s.CreateGroup([]overlay.Item{a, b})

	got := s.Bounds(g)
	want := overlay.Rect{X: 100, Y: 90, W: 70, H: 20}
	if got != want {
		t.Errorf("Bounds(group) = %+v, want %+v", got, want)
	}
}

func TestLineBoundsNormalized(t *testing.T) {
	s := New()
	l := s.CreateLine(overlay.LineSpec{X1: 50, Y1: 40, X2: 10, Y2: 70})
	got := s.Bounds(l)
	want := overlay.Rect{X: 10, Y: 40, W: 40, H: 30}
	if got != want {
		t.Errorf("Bounds(line) = %+v, want %+v", got, want)
	}
}

func TestImageBounds(t *testing.T) {
	s := New()
	img := image.NewNRGBA(image.Rect(0, 0, 12, 7))
	it := s.CreateImage(overlay.ImageSpec{Image: img, X: 5, Y: 6})

	if x, y := it.(*Item).Pos(); x != 5 || y != 6 {
		t.Errorf("image at (%v, %v), want (5, 6)", x, y)
	}
	got := s.Bounds(it)
	if got.W != 12 || got.H != 7 {
		t.Errorf("Bounds(image) = %+v, want 12x7", got)
	}
}

func TestSetTextAndAnimate(t *testing.T) {
	s := New()
	it := s.CreateText(overlay.TextSpec{Text: "before"})

	s.SetText(it, "after")
	s.Animate(it)
	s.Animate(it)

	item := it.(*Item)
	if got := item.Text(); got != "after" {
		t.Errorf("Text() = %q, want %q", got, "after")
	}
	if got := item.Animations(); got != 2 {
		t.Errorf("Animations() = %d, want 2", got)
	}
}

func TestRootsStackingOrder(t *testing.T) {
	s := New()
	a := rectAt(s, 0, 0, 10, 10)
	b := rectAt(s, 0, 0, 10, 10)
	c := rectAt(s, 0, 0, 10, 10)
	s.SetZ(a, 5)
	s.SetZ(c, -1)

	roots := s.Roots()
	want := []overlay.Item{c, b, a}
	if len(roots) != 3 {
		t.Fatalf("%d roots, want 3", len(roots))
	}
	for i := range want {
		if roots[i] != want[i].(*Item) {
			t.Errorf("root %d out of stacking order", i)
		}
	}
}

func TestForeignHandlesIgnored(t *testing.T) {
	s := New()
	other := New()
	foreign := rectAt(other, 0, 0, 10, 10)

	// Operations on handles a scene does not own must be safe no-ops.
	s.Remove(foreign)
	s.SetPos(foreign, 1, 2)
	s.AddToGroup(foreign, foreign)
	if got := s.Children(foreign); got != nil {
		t.Errorf("Children(foreign) = %v, want nil", got)
	}
	if got := s.Disband(foreign); got != nil {
		t.Errorf("Disband(foreign) = %v, want nil", got)
	}
	s.Remove("not even an item")
}

func TestBuiltinMeasurerScalesWithContent(t *testing.T) {
	m := NewBuiltinMeasurer()
	font := overlay.Font{Size: 10}

	w1, h1 := m.Measure("ab", font)
	w2, _ := m.Measure("abcd", font)
	if w2 <= w1 {
		t.Errorf("longer text not wider: %v vs %v", w1, w2)
	}
	if h1 != 12 {
		t.Errorf("line height = %v, want 12", h1)
	}

	// Multi-byte runes count once.
	wa, _ := m.Measure("aa", font)
	wu, _ := m.Measure("ää", font)
	if wa != wu {
		t.Errorf("rune widths differ: %v vs %v", wa, wu)
	}
}
