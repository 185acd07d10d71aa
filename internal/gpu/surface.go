//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"

	"github.com/gogpu/composite"
	"github.com/gogpu/wgpu/hal"
)

// Surface is the drawable a frame is rendered into.
type Surface interface {
	// AcquireView returns the view of the current drawable and its size in
	// pixels. It returns an error wrapping composite.ErrSurfaceUnavailable
	// when no drawable is ready; the frame is then dropped.
	AcquireView() (view hal.TextureView, width, height uint32, err error)

	// Present shows the drawable once the frame's commands are submitted.
	Present() error
}

// ViewSurface is a Surface over a drawable view owned by a host that
// presents it itself (for example a gogpu app after its draw callback
// returns). Present is a no-op.
type ViewSurface struct {
	View   hal.TextureView
	Width  uint32
	Height uint32
}

// AcquireView implements Surface.
func (s *ViewSurface) AcquireView() (hal.TextureView, uint32, uint32, error) {
	if s == nil || s.View == nil {
		return nil, 0, 0, fmt.Errorf("%w: no drawable view", composite.ErrSurfaceUnavailable)
	}
	if s.Width == 0 || s.Height == 0 {
		return nil, 0, 0, fmt.Errorf("%w: drawable size %dx%d", composite.ErrSurfaceUnavailable, s.Width, s.Height)
	}
	return s.View, s.Width, s.Height, nil
}

// Present implements Surface.
func (s *ViewSurface) Present() error { return nil }
