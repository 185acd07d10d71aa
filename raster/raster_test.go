// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/gogpu/composite"
)

const size = 400

// pixelAt returns the pixel covering the normalized device coordinate.
func pixelAt(img *image.NRGBA, x, y float32) [4]uint8 {
	p := ToPixel(composite.Pt(x, y), img.Rect.Dx(), img.Rect.Dy())
	c := img.NRGBAAt(int(p.X), int(p.Y))
	return [4]uint8{c.R, c.G, c.B, c.A}
}

func near(got, want [4]uint8, tol int) bool {
	for i := range got {
		d := int(got[i]) - int(want[i])
		if d < -tol || d > tol {
			return false
		}
	}
	return true
}

func TestRenderScenePixels(t *testing.T) {
	img, err := Render(composite.BuildScene(), size, size)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	tests := []struct {
		name string
		x, y float32
		want [4]uint8
	}{
		{"background", -0.9, -0.9, [4]uint8{0, 0, 0, 0}},
		{"white only", 0, 0.6, [4]uint8{255, 255, 255, 255}},
		{"blue only", 0.5, 0.2, [4]uint8{0, 0, 188, 64}},
		{"red only", 0.5, -0.2, [4]uint8{188, 0, 0, 64}},
		// blue then red, both at half alpha, over transparent black
		{"red over blue", 0.15, 0, [4]uint8{188, 0, 137, 96}},
		{"red over blue over white", 0, 0, [4]uint8{225, 137, 188, 159}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pixelAt(img, tt.x, tt.y)
			if !near(got, tt.want, 2) {
				t.Errorf("pixel at (%v, %v) = %v, want ~%v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRenderDrawOrderMatters(t *testing.T) {
	scene := composite.BuildScene()
	swapped := &composite.Scene{Meshes: []composite.TriangleMesh{
		scene.Meshes[0], scene.Meshes[2], scene.Meshes[1],
	}}

	a, err := Render(scene, size, size)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(swapped, size, size)
	if err != nil {
		t.Fatal(err)
	}

	// Blue over red instead of red over blue.
	got := pixelAt(b, 0.15, 0)
	if !near(got, [4]uint8{137, 0, 188, 96}, 2) {
		t.Errorf("swapped overlap = %v, want ~[137 0 188 96]", got)
	}
	if pixelAt(a, 0.15, 0) == got {
		t.Error("overlap pixel did not depend on draw order")
	}
}

func TestRenderDeterministic(t *testing.T) {
	a, err := Render(composite.BuildScene(), 64, 48)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(composite.BuildScene(), 64, 48)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("two renders of the same scene differ")
	}
}

func TestRenderBackground(t *testing.T) {
	img, err := Render(nil, 40, 40,
		WithClearColor(composite.White),
		WithGrid(10, composite.Color{A: 1}))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 0},
		{10, 3, 0},
		{3, 20, 0},
		{5, 5, 255},
		{39, 39, 255},
	}
	for _, tt := range tests {
		c := img.NRGBAAt(tt.x, tt.y)
		if c.R != tt.want || c.A != 255 {
			t.Errorf("pixel (%d, %d) = %v, want R=%d A=255", tt.x, tt.y, c, tt.want)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	for _, sz := range [][2]int{{0, 1}, {1, 0}, {-3, 10}} {
		if _, err := Render(composite.BuildScene(), sz[0], sz[1]); !errors.Is(err, composite.ErrInvalidDimensions) {
			t.Errorf("Render(%dx%d) = %v, want ErrInvalidDimensions", sz[0], sz[1], err)
		}
	}

	bad := composite.BuildScene()
	bad.Meshes[2].Indices[1] = 200
	if _, err := Render(bad, 8, 8); !errors.Is(err, composite.ErrIndexOutOfRange) {
		t.Errorf("Render(bad scene) = %v, want ErrIndexOutOfRange", err)
	}
}

func TestOver(t *testing.T) {
	tests := []struct {
		name     string
		dst, src composite.Color
		want     composite.Color
	}{
		{"opaque src", composite.TranslucentBlue, composite.White, composite.White},
		{"transparent src", composite.White, composite.Transparent, composite.White},
		{"half blue on clear", composite.Transparent, composite.TranslucentBlue, composite.Color{B: 0.5, A: 0.25}},
		{"half red on white", composite.White, composite.TranslucentRed, composite.Color{R: 1, G: 0.5, B: 0.5, A: 0.75}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Over(tt.dst, tt.src); got != tt.want {
				t.Errorf("Over(%v, %v) = %v, want %v", tt.dst, tt.src, got, tt.want)
			}
		})
	}
}

func TestToPixel(t *testing.T) {
	tests := []struct {
		in   composite.Point
		want composite.Point
	}{
		{composite.Pt(-1, 1), composite.Pt(0, 0)},
		{composite.Pt(1, -1), composite.Pt(200, 100)},
		{composite.Pt(0, 0), composite.Pt(100, 50)},
	}
	for _, tt := range tests {
		if got := ToPixel(tt.in, 200, 100); got != tt.want {
			t.Errorf("ToPixel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
