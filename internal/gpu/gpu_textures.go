//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// targetSet holds the MSAA color texture the scene is drawn into and, in
// offscreen mode, the single-sample resolve texture that is read back.
//
//   - MSAA color: 4x samples, format, RenderAttachment
//   - Resolve:    1x sample,  format, RenderAttachment | CopySrc
//
// In surface mode the caller's drawable view is the resolve target and no
// resolve texture is created. format must then equal the drawable's format.
type targetSet struct {
	format      gputypes.TextureFormat
	msaaTex     hal.Texture
	msaaView    hal.TextureView
	resolveTex  hal.Texture
	resolveView hal.TextureView
	width       uint32
	height      uint32
}

// ensure creates or recreates the textures when the requested size or mode
// differs from the current one. If both match, this is a no-op.
func (ts *targetSet) ensure(device hal.Device, w, h uint32, offscreen bool) error {
	if w == 0 || h == 0 {
		return fmt.Errorf("target size %dx%d", w, h)
	}
	if ts.width == w && ts.height == h && ts.msaaTex != nil && (ts.resolveTex != nil) == offscreen {
		return nil
	}
	ts.destroy(device)

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}

	msaaTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "composite_msaa_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   SampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        ts.format,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create MSAA color texture: %w", err)
	}
	ts.msaaTex = msaaTex

	msaaView, err := device.CreateTextureView(msaaTex, &hal.TextureViewDescriptor{
		Label: "composite_msaa_color_view",
	})
	if err != nil {
		ts.destroy(device)
		return fmt.Errorf("create MSAA color view: %w", err)
	}
	ts.msaaView = msaaView

	if offscreen {
		resolveTex, err := device.CreateTexture(&hal.TextureDescriptor{
			Label:         "composite_resolve",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        ts.format,
			Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
		})
		if err != nil {
			ts.destroy(device)
			return fmt.Errorf("create resolve texture: %w", err)
		}
		ts.resolveTex = resolveTex

		resolveView, err := device.CreateTextureView(resolveTex, &hal.TextureViewDescriptor{
			Label: "composite_resolve_view",
		})
		if err != nil {
			ts.destroy(device)
			return fmt.Errorf("create resolve view: %w", err)
		}
		ts.resolveView = resolveView
	}

	ts.width = w
	ts.height = h
	slogger().Debug("gpu: render targets created", "width", w, "height", h, "format", ts.format, "offscreen", offscreen)
	return nil
}

// destroy releases all texture resources and resets dimensions.
func (ts *targetSet) destroy(device hal.Device) {
	if ts.resolveView != nil {
		device.DestroyTextureView(ts.resolveView)
		ts.resolveView = nil
	}
	if ts.resolveTex != nil {
		device.DestroyTexture(ts.resolveTex)
		ts.resolveTex = nil
	}
	if ts.msaaView != nil {
		device.DestroyTextureView(ts.msaaView)
		ts.msaaView = nil
	}
	if ts.msaaTex != nil {
		device.DestroyTexture(ts.msaaTex)
		ts.msaaTex = nil
	}
	ts.width = 0
	ts.height = 0
}
