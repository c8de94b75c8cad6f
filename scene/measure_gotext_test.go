package scene

import (
	"testing"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"golang.org/x/image/math/fixed"
)

func TestNewGoTextMeasurerRejectsGarbage(t *testing.T) {
	if _, err := NewGoTextMeasurer([]byte("definitely not a font")); err == nil {
		t.Error("NewGoTextMeasurer accepted garbage font data")
	}
}

func TestBaseDirection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want di.Direction
	}{
		{"latin", "hello", di.DirectionLTR},
		{"hebrew", "שלום", di.DirectionRTL},
		{"arabic", "مرحبا", di.DirectionRTL},
		{"empty", "", di.DirectionLTR},
		{"digits", "1234", di.DirectionLTR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := baseDirection(tt.text); got != tt.want {
				t.Errorf("baseDirection(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectScript(t *testing.T) {
	tests := []struct {
		name string
		text string
		want language.Script
	}{
		{"latin", "abc", language.LookupScript('a')},
		{"leading space", "  xyz", language.LookupScript('x')},
		{"cyrillic", "привет", language.LookupScript('п')},
		{"all spaces", "   ", language.Latin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectScript([]rune(tt.text)); got != tt.want {
				t.Errorf("detectScript(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFixedConversionRoundTrip(t *testing.T) {
	sizes := []float64{0, 1, 12, 50, 13.5}
	for _, size := range sizes {
		if got := fixedToFloat(floatToFixed(size)); got != size {
			t.Errorf("round trip %v = %v", size, got)
		}
	}
	if floatToFixed(12) != fixed.I(12) {
		t.Errorf("floatToFixed(12) != fixed.I(12)")
	}
}
