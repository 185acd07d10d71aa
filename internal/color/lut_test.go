package color

import (
	stdcolor "image/color"
	"math"
	"testing"
)

func TestDecodeMatchesExact(t *testing.T) {
	for i := 0; i < 256; i++ {
		fast := Decode(uint8(i))
		slow := decodeExact(uint8(i))
		if diff := math.Abs(float64(fast - slow)); diff > 0.0001 {
			t.Errorf("sRGB %d: lut=%f, exact=%f", i, fast, slow)
		}
	}
}

func TestEncodeMatchesExact(t *testing.T) {
	maxError := 0
	for i := 0; i <= 1000; i++ {
		l := float32(i) / 1000.0
		diff := int(Encode(l)) - int(encodeExact(l))
		if diff < 0 {
			diff = -diff
		}
		maxError = max(maxError, diff)
	}
	// 12-bit LUT input allows one step of rounding error.
	if maxError > 1 {
		t.Errorf("max encode error %d exceeds 1", maxError)
	}
}

func TestRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		s := uint8(i)
		got := Encode(Decode(s))
		if d := int(got) - int(s); d < -1 || d > 1 {
			t.Errorf("round trip %d -> %d", s, got)
		}
	}
}

func TestKnownValues(t *testing.T) {
	tests := []struct {
		name   string
		linear float32
		want   uint8
	}{
		{"black", 0, 0},
		{"white", 1, 255},
		{"below zero", -0.5, 0},
		{"above one", 1.5, 255},
		{"mid linear", 0.5, 188},
		{"quarter", 0.25, 137},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.linear)
			if d := int(got) - int(tt.want); d < -1 || d > 1 {
				t.Errorf("Encode(%f) = %d, want ~%d", tt.linear, got, tt.want)
			}
		})
	}

	if got := Decode(128); math.Abs(float64(got)-0.21586) > 0.001 {
		t.Errorf("Decode(128) = %f, want ~0.2159", got)
	}
}

func TestEncodeNRGBA(t *testing.T) {
	got := EncodeNRGBA(0, 0, 1, 0.5)
	want := stdcolor.NRGBA{R: 0, G: 0, B: 255, A: 128}
	if got != want {
		t.Errorf("EncodeNRGBA(blue, .5) = %v, want %v", got, want)
	}

	r, g, b, a := DecodeNRGBA(stdcolor.NRGBA{R: 255, G: 0, B: 0, A: 255})
	if r != 1 || g != 0 || b != 0 || a != 1 {
		t.Errorf("DecodeNRGBA(red) = (%f, %f, %f, %f)", r, g, b, a)
	}
}

func BenchmarkEncode(b *testing.B) {
	var result uint8
	for i := 0; i < b.N; i++ {
		result = Encode(float32(i&0xFF) / 255.0)
	}
	_ = result
}

func BenchmarkEncodeExact(b *testing.B) {
	var result uint8
	for i := 0; i < b.N; i++ {
		result = encodeExact(float32(i&0xFF) / 255.0)
	}
	_ = result
}
