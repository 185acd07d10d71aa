// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"fmt"
	"image"
	stdcolor "image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/composite"
	"github.com/gogpu/composite/internal/color"
)

// Option configures Render.
type Option func(*config)

type config struct {
	clear     composite.Color
	gridCell  int
	gridColor composite.Color
}

// WithClearColor sets the color the image is cleared to before drawing.
// The default is transparent black, like the GPU render pass.
func WithClearColor(c composite.Color) Option {
	return func(cfg *config) {
		cfg.clear = c
	}
}

// WithGrid draws one-pixel grid lines every cell pixels over the clear
// color, the backdrop the triangles are composited on. A cell of zero or
// less disables the grid.
func WithGrid(cell int, line composite.Color) Option {
	return func(cfg *config) {
		cfg.gridCell = cell
		cfg.gridColor = line
	}
}

// Render rasterizes the scene into a width x height image. Meshes are drawn
// in scene order; pixel bytes are the sRGB-encoded contents of the color
// target.
func Render(scene *composite.Scene, width, height int, opts ...Option) (*image.NRGBA, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", composite.ErrInvalidDimensions, width, height)
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	drawBackground(dst, &cfg)

	z := vector.NewRasterizer(width, height)
	mask := image.NewAlpha(dst.Bounds())
	for i := 0; i < scene.Len(); i++ {
		coverage(z, mask, &scene.Meshes[i])
		blendMask(dst, mask, scene.Meshes[i].Color())
	}

	composite.Logger().Debug("raster: scene rendered",
		"width", width, "height", height, "meshes", scene.Len())
	return dst, nil
}

// drawBackground fills dst with the clear color and the optional grid.
func drawBackground(dst *image.NRGBA, cfg *config) {
	bg := image.NewUniform(encode(cfg.clear))
	draw.Draw(dst, dst.Bounds(), bg, image.Point{}, draw.Src)

	if cfg.gridCell <= 0 {
		return
	}
	line := image.NewUniform(encode(cfg.gridColor))
	b := dst.Bounds()
	for x := b.Min.X; x < b.Max.X; x += cfg.gridCell {
		draw.Draw(dst, image.Rect(x, b.Min.Y, x+1, b.Max.Y), line, image.Point{}, draw.Over)
	}
	for y := b.Min.Y; y < b.Max.Y; y += cfg.gridCell {
		draw.Draw(dst, image.Rect(b.Min.X, y, b.Max.X, y+1), line, image.Point{}, draw.Over)
	}
}

// coverage rasterizes one triangle's coverage into mask.
func coverage(z *vector.Rasterizer, mask *image.Alpha, m *composite.TriangleMesh) {
	b := mask.Bounds()
	z.Reset(b.Dx(), b.Dy())
	z.DrawOp = draw.Src

	for i, idx := range m.Indices {
		p := ToPixel(m.Vertices[idx].Position, b.Dx(), b.Dy())
		if i == 0 {
			z.MoveTo(p.X, p.Y)
		} else {
			z.LineTo(p.X, p.Y)
		}
	}
	z.ClosePath()
	z.Draw(mask, b, image.Opaque, image.Point{})
}

// blendMask blends src over dst wherever mask has coverage.
func blendMask(dst *image.NRGBA, mask *image.Alpha, src composite.Color) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cov := mask.AlphaAt(x, y).A
			if cov == 0 {
				continue
			}
			i := dst.PixOffset(x, y)
			px := stdcolor.NRGBA{R: dst.Pix[i], G: dst.Pix[i+1], B: dst.Pix[i+2], A: dst.Pix[i+3]}
			under := decode(px)
			out := Over(under, src)
			if cov < 0xff {
				out = lerp(under, out, float32(cov)/0xff)
			}
			e := encode(out)
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = e.R, e.G, e.B, e.A
		}
	}
}

// Over is the pipeline's blend equation: operation Add with src factor
// SrcAlpha and dst factor OneMinusSrcAlpha, applied to all four channels.
// Colors are linear with straight alpha.
func Over(dst, src composite.Color) composite.Color {
	sa := src.A
	inv := 1 - sa
	return composite.Color{
		R: src.R*sa + dst.R*inv,
		G: src.G*sa + dst.G*inv,
		B: src.B*sa + dst.B*inv,
		A: src.A*sa + dst.A*inv,
	}
}

// ToPixel maps a normalized device coordinate to pixel space: x in
// [-1, 1] spans the width left to right, y in [-1, 1] spans the height
// bottom to top.
func ToPixel(p composite.Point, width, height int) composite.Point {
	return composite.Point{
		X: (p.X + 1) / 2 * float32(width),
		Y: (1 - p.Y) / 2 * float32(height),
	}
}

// lerp averages a and b with weight t on b, like a multisample resolve.
func lerp(a, b composite.Color, t float32) composite.Color {
	return composite.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

func encode(c composite.Color) stdcolor.NRGBA {
	return color.EncodeNRGBA(c.R, c.G, c.B, c.A)
}

func decode(c stdcolor.NRGBA) composite.Color {
	r, g, b, a := color.DecodeNRGBA(c)
	return composite.Color{R: r, G: g, B: b, A: a}
}
