package overlay

import (
	"image"
	"image/color"
)

// Item is an opaque handle to a visual entity owned by a Surface: a single
// primitive or a group of primitives. The engine never inspects an Item; it
// only passes handles back to the Surface that created them and uses them as
// map keys, so implementations must return comparable values (pointers are
// the usual choice).
type Item any

// Rect is an axis-aligned rectangle in scene coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Pen describes the outline style of a stroked primitive.
type Pen struct {
	Color color.NRGBA
	Width float64
}

// Font selects a typeface for text primitives. An empty Family requests the
// surface's default face.
type Font struct {
	Family string
	Size   float64
}

// RectSpec describes a rectangle primitive.
type RectSpec struct {
	Rect Rect
	Pen  Pen
}

// LineSpec describes a line primitive.
type LineSpec struct {
	X1, Y1, X2, Y2 float64
	Pen            Pen
}

// TextSpec describes a text primitive. Position is applied separately via
// SetPos after the engine has measured the item for anchor math.
type TextSpec struct {
	Text   string
	Color  color.NRGBA
	Font   Font
	Shadow bool
}

// ImageSpec describes an image primitive placed at a fixed position.
type ImageSpec struct {
	Image image.Image
	X, Y  float64
}

// Surface is the retained rendering collaborator the engine draws through.
// Implementations own the actual pixels — a compositor window, a test
// recorder, or the in-memory scene package. All methods are called from the
// engine's scheduler worker; implementations need not be safe for concurrent
// use by the engine, though they may add their own locking for external
// readers.
//
// Handles returned by the Create methods remain valid until passed to Remove
// or returned from Disband and subsequently removed.
type Surface interface {
	// CreateRect adds a stroked rectangle to the scene.
	CreateRect(spec RectSpec) Item
	// CreateLine adds a line segment to the scene.
	CreateLine(spec LineSpec) Item
	// CreateText adds a text item to the scene at origin.
	CreateText(spec TextSpec) Item
	// CreateImage adds an image to the scene.
	CreateImage(spec ImageSpec) Item

	// CreateGroup aggregates existing items into a group. The group is
	// itself an Item: it can be removed, restacked and repositioned as one.
	CreateGroup(items []Item) Item
	// AddToGroup re-parents an item into an existing group.
	AddToGroup(group, item Item)
	// Disband dissolves a group and returns its direct children, which stay
	// in the scene as individual items.
	Disband(group Item) []Item
	// Children returns the direct children of a group, or nil for a
	// non-group item.
	Children(group Item) []Item

	// Remove detaches an item (or a group and everything under it) from the
	// scene. The handle is dead afterwards.
	Remove(item Item)

	// SetPos moves an item so its local origin lands at (x, y) in scene
	// coordinates.
	SetPos(item Item, x, y float64)
	// SetZ adjusts stacking order; larger z renders on top.
	SetZ(item Item, z int)
	// Bounds reports the item's local bounding rectangle.
	Bounds(item Item) Rect
	// MapFromScene converts a scene-coordinate point into the item's local
	// coordinate space.
	MapFromScene(item Item, x, y float64) (float64, float64)
	// SetTransformOrigin sets the local point around which scale and
	// rotation transforms apply.
	SetTransformOrigin(item Item, x, y float64)

	// SetText replaces the displayed string of a text item.
	SetText(item Item, text string)
	// Animate triggers a transient highlight on a text item after a
	// template refresh changed its content.
	Animate(item Item)
}

// Window is the windowing collaborator: it tracks the target application
// window and the pointer, both in screen coordinates. It backs pointer-follow
// groups (overlay_move_group).
type Window interface {
	// Rect reports the target window's position and size.
	Rect() (x, y, w, h int)
	// NotifyPointer registers a pointer movement listener and returns a stop
	// function. The listener may be invoked from any goroutine; the engine
	// re-posts onto its scheduler before touching state.
	NotifyPointer(fn func(x, y int)) (stop func())
}
