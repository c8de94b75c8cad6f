package overlay

import "image/color"

// DecodeColor unpacks the wire color format into an NRGBA color.
// Senders encode colors as a single integer with the alpha channel in the
// top byte: 0xAARRGGBB.
func DecodeColor(packed uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(packed >> 16),
		G: uint8(packed >> 8),
		B: uint8(packed),
		A: uint8(packed >> 24),
	}
}

// EncodeColor packs an NRGBA color into the wire format 0xAARRGGBB.
func EncodeColor(c color.NRGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
