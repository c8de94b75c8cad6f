package scene

import "github.com/gogpu/overlay"

// Measurer computes the rendered extent of a text item. The scene keeps
// measurement pluggable: the builtin heuristic needs no font files, while
// GoTextMeasurer shapes against a real typeface.
type Measurer interface {
	Measure(text string, font overlay.Font) (w, h float64)
}

// Builtin heuristic metrics, expressed as fractions of the font size.
// Close enough to common UI faces for anchor math in tests and headless use.
const (
	builtinAdvance    = 0.6
	builtinLineHeight = 1.2
)

// BuiltinMeasurer estimates text extent from rune count and font size with
// no font data. Deterministic, which is what tests want.
type BuiltinMeasurer struct{}

// NewBuiltinMeasurer creates the heuristic measurer.
func NewBuiltinMeasurer() *BuiltinMeasurer {
	return &BuiltinMeasurer{}
}

// Measure implements Measurer.
func (*BuiltinMeasurer) Measure(text string, font overlay.Font) (w, h float64) {
	runes := 0
	for range text {
		runes++
	}
	return float64(runes) * font.Size * builtinAdvance, font.Size * builtinLineHeight
}
