//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuview

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/composite"
	"github.com/gogpu/composite/internal/gpu"
)

// Common errors returned by View operations.
var (
	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("gogpuview: nil DeviceProvider")

	// ErrNoHAL is returned when the provider's device is not a *wgpu.Device
	// backed by a HAL device and queue.
	ErrNoHAL = errors.New("gogpuview: provider device has no HAL backend")

	// ErrInvalidSurfaceView is returned when the surface view is neither a
	// *wgpu.TextureView nor a hal.TextureView.
	ErrInvalidSurfaceView = errors.New("gogpuview: unsupported surface view type")

	// ErrViewClosed is returned when operations are attempted on a closed view.
	ErrViewClosed = errors.New("gogpuview: view is closed")
)

// Stats reports the frame counters of a View.
type Stats = gpu.Stats

// View renders a fixed scene into the host's surface on every redraw.
//
// View is NOT safe for concurrent use; call it from the host's draw
// callback.
type View struct {
	renderer *gpu.Renderer
	log      *slog.Logger
	closed   bool
}

// New builds the pipeline for the provider's surface format and uploads
// scene on the provider's device. The provider should come from
// gogpu.App.GPUContextProvider(), whose Device() is a *wgpu.Device.
//
// Surfaces whose format is not BGRA8 fail with
// composite.ErrUnsupportedFormat.
func New(provider gpucontext.DeviceProvider, scene *composite.Scene, opts ...composite.Option) (*View, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	device, queue, err := halDevice(provider)
	if err != nil {
		return nil, err
	}
	return newView(device, queue, provider.SurfaceFormat(), scene, opts...)
}

// halDevice unwraps the HAL device and queue behind provider.Device().
func halDevice(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	dev, ok := provider.Device().(*wgpu.Device)
	if !ok || dev == nil {
		return nil, nil, fmt.Errorf("%w: Device is %T", ErrNoHAL, provider.Device())
	}
	device := dev.HalDevice()
	if device == nil {
		return nil, nil, fmt.Errorf("%w: nil hal.Device", ErrNoHAL)
	}
	queue := dev.HalQueue()
	if queue == nil {
		return nil, nil, fmt.Errorf("%w: nil hal.Queue", ErrNoHAL)
	}
	return device, queue, nil
}

func newView(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, scene *composite.Scene, opts ...composite.Option) (*View, error) {
	r, err := gpu.NewRendererFormat(device, queue, scene, format, opts...)
	if err != nil {
		return nil, fmt.Errorf("gogpuview: %w", err)
	}
	o := composite.NewOptions(opts...)
	return &View{
		renderer: r,
		log:      o.Log(),
	}, nil
}

// RenderDirect renders one frame into the host's surface view, usually
// gogpu.Context.SurfaceView(). A raw hal.TextureView is also accepted. The
// host presents the surface after its draw callback returns.
//
// A failed frame, including one with no usable view, is counted as
// dropped, logged at warn level and returned; the next redraw tries again.
func (v *View) RenderDirect(surfaceView any, width, height uint32) error {
	if v.closed {
		return ErrViewClosed
	}

	err := v.renderer.RenderFrame(&hostSurface{view: surfaceView, width: width, height: height})
	if err != nil {
		v.log.Warn("gogpuview: frame dropped", "width", width, "height", height, "err", err)
		return err
	}
	return nil
}

// Format returns the color format the view renders in.
func (v *View) Format() gputypes.TextureFormat {
	return v.renderer.Format()
}

// Stats returns the renderer's frame counters.
func (v *View) Stats() Stats {
	return v.renderer.Stats()
}

// Close releases the GPU resources of the view. Close is idempotent.
func (v *View) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	v.renderer.Destroy()
	return nil
}

// hostSurface is a gpu.Surface over a drawable handed in by the host.
// Unwrapping happens inside the frame so a bad view counts as a drop.
type hostSurface struct {
	view          any
	width, height uint32
}

// AcquireView implements gpu.Surface.
func (s *hostSurface) AcquireView() (hal.TextureView, uint32, uint32, error) {
	var view hal.TextureView
	switch tv := s.view.(type) {
	case nil:
	case *wgpu.TextureView:
		if tv != nil {
			view = tv.HalTextureView()
		}
	case hal.TextureView:
		view = tv
	default:
		return nil, 0, 0, fmt.Errorf("%w: %w: got %T", composite.ErrSurfaceUnavailable, ErrInvalidSurfaceView, s.view)
	}
	return (&gpu.ViewSurface{View: view, Width: s.width, Height: s.height}).AcquireView()
}

// Present implements gpu.Surface. The host presents.
func (s *hostSurface) Present() error { return nil }
