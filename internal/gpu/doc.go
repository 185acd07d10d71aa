//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu renders a composite.Scene with the gogpu/wgpu HAL.
//
// The package is split along the three setup and per-frame steps:
//
//   - TrianglePipeline: compiles the WGSL shader pair (validated with naga
//     first) into a render pipeline with "over" alpha blending, a
//     BGRA8UnormSrgb color target, MSAA 4x, and the interleaved
//     position/color vertex layout.
//   - UploadScene: packs each TriangleMesh into its own vertex and index
//     buffer. Indices are widened from uint8 to uint16 because WebGPU has
//     no 8-bit index format.
//   - Renderer: owns the pipeline and uploaded meshes, and encodes one
//     render pass per refresh request with one indexed draw per mesh, in
//     scene order.
//
// # Render Targets
//
// The MSAA color texture is owned by the Renderer and resized to the
// drawable. It resolves either to a caller-provided surface view
// (RenderFrame) or to an owned texture that is read back to the CPU
// (RenderOffscreen).
//
// # Frame State
//
// A Renderer is idle until RenderFrame is called, rendering while the frame
// is encoded and submitted, and idle again afterwards. Failures drop the
// frame and return an error; they never leave the renderer in the
// rendering state.
package gpu
