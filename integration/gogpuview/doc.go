//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gogpuview draws a composite.Scene into a gogpu window.
//
// The data flow is:
//
//	composite.Scene -> vertex/index buffers (once) -> render pass per redraw -> window surface
//
// # Usage
//
//	app := gogpu.NewApp(gogpu.DefaultConfig().
//	    WithSize(800, 600).
//	    WithContinuousRender(false)) // redraw only when the host asks
//
//	var view *gogpuview.View
//	app.OnDraw(func(dc *gogpu.Context) {
//	    if view == nil {
//	        view, _ = gogpuview.New(app.GPUContextProvider(), composite.BuildScene())
//	    }
//	    sw, sh := dc.SurfaceSize()
//	    _ = view.RenderDirect(dc.SurfaceView(), sw, sh)
//	})
//	app.OnClose(func() { _ = view.Close() })
//
// # Integration Without Circular Imports
//
// This package does not import gogpu. The device comes from a
// gpucontext.DeviceProvider whose Device() is a *wgpu.Device; its HAL
// device and queue drive the renderer. The pipeline targets the provider's
// SurfaceFormat(), so the MSAA attachment always matches the drawable. The
// drawable is the host's *wgpu.TextureView, passed in on every redraw.
package gogpuview
