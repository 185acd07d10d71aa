// Package color converts between linear light and the sRGB encoding of the
// BGRA8UnormSrgb color target.
//
// The GPU blends in linear space and encodes to sRGB when a fragment is
// stored. The CPU rasterizer does the same through these lookup tables so
// both produce the same bytes up to rounding.
//
// References:
//   - sRGB specification: https://www.w3.org/Graphics/Color/sRGB
//   - GPU Gems 3, Chapter 24: https://developer.nvidia.com/gpugems/gpugems3/part-iv-image-effects/chapter-24-importance-being-linear
package color

import (
	stdcolor "image/color"
	"math"
)

// decodeLUT converts an sRGB byte [0-255] to linear float32 [0.0-1.0].
var decodeLUT [256]float32

// encodeLUT converts linear [0.0-1.0] to an sRGB byte with 12-bit input
// precision, which is sufficient for 8-bit output.
var encodeLUT [4096]uint8

func init() {
	for i := range decodeLUT {
		decodeLUT[i] = decodeExact(uint8(i)) //nolint:gosec // G115: i < 256
	}
	for i := range encodeLUT {
		encodeLUT[i] = encodeExact(float32(i) / 4095.0)
	}
}

// Decode converts an sRGB-encoded byte to linear light.
//
//	l := Decode(128) // ~0.2159 (not 0.5!)
func Decode(s uint8) float32 {
	return decodeLUT[s]
}

// Encode converts linear light to an sRGB-encoded byte. Input is clamped
// to [0.0, 1.0].
//
//	s := Encode(0.5) // 188 (not 128!)
func Encode(l float32) uint8 {
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	index := int(l*4095.0 + 0.5)
	if index > 4095 {
		index = 4095
	}
	return encodeLUT[index]
}

// decodeExact is the math.Pow reference for Decode.
func decodeExact(s uint8) float32 {
	sf := float64(s) / 255.0
	if sf <= 0.04045 {
		return float32(sf / 12.92)
	}
	return float32(math.Pow((sf+0.055)/1.055, 2.4))
}

// encodeExact is the math.Pow reference for Encode.
func encodeExact(l float32) uint8 {
	lf := math.Max(0, math.Min(1, float64(l)))
	var s float64
	if lf <= 0.0031308 {
		s = lf * 12.92
	} else {
		s = 1.055*math.Pow(lf, 1.0/2.4) - 0.055
	}
	srgb := int(s*255.0 + 0.5)
	if srgb < 0 {
		srgb = 0
	}
	if srgb > 255 {
		srgb = 255
	}
	return uint8(srgb) //nolint:gosec // G115: clamped to [0,255]
}

// EncodeNRGBA stores a straight-alpha linear color the way an sRGB color
// target does: RGB is sRGB-encoded, alpha stays linear.
func EncodeNRGBA(r, g, b, a float32) stdcolor.NRGBA {
	return stdcolor.NRGBA{
		R: Encode(r),
		G: Encode(g),
		B: Encode(b),
		A: unorm(a),
	}
}

// DecodeNRGBA is the inverse of EncodeNRGBA.
func DecodeNRGBA(c stdcolor.NRGBA) (r, g, b, a float32) {
	return Decode(c.R), Decode(c.G), Decode(c.B), float32(c.A) / 255
}

// unorm converts [0,1] to a byte with rounding.
func unorm(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255.0 + 0.5)
}
