package scene

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/overlay"
)

// GoTextMeasurer measures text by shaping it against a real typeface with
// go-text/typesetting's HarfBuzz implementation. Use it when anchor math
// must match what a compositor-backed surface will actually render.
//
// GoTextMeasurer is safe for concurrent use; the shaper has internal
// mutable state so each call takes the measurer's lock.
type GoTextMeasurer struct {
	mu     sync.Mutex
	face   *font.Face
	shaper shaping.HarfbuzzShaper
}

// NewGoTextMeasurer parses TTF or OTF font data and returns a measurer
// shaping against it. The Font.Family requested per call is ignored — the
// scene has a single reference face; family selection belongs to the real
// rendering surface.
func NewGoTextMeasurer(fontData []byte) (*GoTextMeasurer, error) {
	face, err := font.ParseTTF(bytes.NewReader(fontData))
	if err != nil {
		return nil, err
	}
	return &GoTextMeasurer{face: face}, nil
}

// Measure implements Measurer.
func (m *GoTextMeasurer) Measure(text string, f overlay.Font) (w, h float64) {
	if text == "" {
		return 0, 0
	}
	runes := []rune(text)

	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: baseDirection(text),
		Face:      m.face,
		Size:      floatToFixed(f.Size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	})

	w = fixedToFloat(out.Advance)
	h = fixedToFloat(out.LineBounds.Ascent - out.LineBounds.Descent + out.LineBounds.Gap)
	return w, h
}

// baseDirection resolves the paragraph's base direction so RTL annotations
// measure correctly.
func baseDirection(text string) di.Direction {
	p := bidi.Paragraph{}
	_, _ = p.SetString(text)
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return di.DirectionLTR
	}
	run := ordering.Run(0)
	if run.Direction() == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript inspects the runes and returns the script of the first
// non-space character. Mixed-script strings measure under the first script;
// good enough for overlay annotations.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
