// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster renders a composite.Scene on the CPU.
//
// The output matches what the GPU pipeline stores in its BGRA8UnormSrgb
// color target: triangles are blended in linear space with the "over"
// equation (src factor SrcAlpha, dst factor OneMinusSrcAlpha, for both
// color and alpha), in scene order, and every stored pixel is sRGB-encoded.
// Edge coverage comes from golang.org/x/image/vector and is applied the way
// a multisample resolve averages samples, so interior pixels are identical
// to the GPU output and edge pixels differ only by sample placement.
//
// Render is used by the command line tool to write PNGs without a GPU and
// by tests as the reference for blend results.
package raster
