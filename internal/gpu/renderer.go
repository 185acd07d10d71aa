//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/composite"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// fenceTimeout bounds how long a frame waits for the GPU after submit.
const fenceTimeout = 5 * time.Second

// frameState is the renderer's two-state frame machine.
type frameState int

const (
	// stateIdle waits for a refresh request.
	stateIdle frameState = iota
	// stateRendering is encoding and submitting one frame.
	stateRendering
)

// String returns the state name.
func (s frameState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateRendering:
		return "rendering"
	default:
		return fmt.Sprintf("frameState(%d)", int(s))
	}
}

// passEncoder is the subset of hal.RenderPassEncoder used to record the
// scene. Tests substitute a recording implementation.
type passEncoder interface {
	SetPipeline(pipeline hal.RenderPipeline)
	SetVertexBuffer(slot uint32, buffer hal.Buffer, offset uint64)
	SetIndexBuffer(buffer hal.Buffer, format gputypes.IndexFormat, offset uint64)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)
}

var _ passEncoder = (hal.RenderPassEncoder)(nil)

// Stats reports frame counters of a Renderer.
type Stats struct {
	// FramesRendered counts frames that were submitted and presented.
	FramesRendered uint64
	// FramesDropped counts frames abandoned because of an error.
	FramesDropped uint64
	// LastDrawCalls is the number of indexed draws in the last rendered frame.
	LastDrawCalls int
}

// Renderer draws an uploaded scene with the triangle pipeline. The pipeline
// and mesh buffers are built once in NewRenderer and are read-only
// afterwards.
//
// RenderFrame and RenderOffscreen may be called from any goroutine, but a
// frame is never encoded concurrently with another: a refresh requested
// while a frame is in progress fails with ErrFrameInProgress.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	opts   composite.Options
	log    *slog.Logger

	pipeline *TrianglePipeline
	meshes   []MeshBuffers
	targets  targetSet

	mu     sync.Mutex
	idle   *sync.Cond // signaled on every return to stateIdle
	state  frameState
	closed bool
	stats  Stats
}

// NewRenderer builds a renderer for ColorFormat drawables.
func NewRenderer(device hal.Device, queue hal.Queue, scene *composite.Scene, opts ...composite.Option) (*Renderer, error) {
	return NewRendererFormat(device, queue, scene, ColorFormat, opts...)
}

// NewRendererFormat builds the pipeline for drawables of the given format,
// then uploads the scene. Both steps are startup work: any failure is
// returned and nothing is leaked. Formats rejected by CheckColorFormat fail
// with ErrUnsupportedFormat.
func NewRendererFormat(device hal.Device, queue hal.Queue, scene *composite.Scene, format gputypes.TextureFormat, opts ...composite.Option) (*Renderer, error) {
	if err := CheckColorFormat(format); err != nil {
		return nil, err
	}
	o := composite.NewOptions(opts...)
	r := &Renderer{
		device:  device,
		queue:   queue,
		opts:    o,
		log:     o.Log(),
		targets: targetSet{format: format},
	}
	r.idle = sync.NewCond(&r.mu)

	r.pipeline = NewTrianglePipeline(device, WithColorFormat(format))
	if err := r.pipeline.Build(); err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	meshes, err := UploadScene(device, queue, scene)
	if err != nil {
		r.pipeline.Destroy()
		return nil, fmt.Errorf("upload scene: %w", err)
	}
	r.meshes = meshes

	r.log.Info("composite: renderer ready", "meshes", len(meshes), "format", format)
	return r, nil
}

// Format returns the color format the renderer draws in.
func (r *Renderer) Format() gputypes.TextureFormat {
	return r.targets.format
}

// MeshCount returns the number of uploaded meshes.
func (r *Renderer) MeshCount() int {
	return len(r.meshes)
}

// Stats returns a snapshot of the frame counters.
func (r *Renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// begin moves the renderer from idle to rendering.
func (r *Renderer) begin() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return composite.ErrRendererClosed
	}
	if r.state != stateIdle {
		return composite.ErrFrameInProgress
	}
	r.state = stateRendering
	return nil
}

// finish returns the renderer to idle and records the frame outcome.
func (r *Renderer) finish(drawCalls int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = stateIdle
	r.idle.Broadcast()
	if err != nil {
		r.stats.FramesDropped++
		return
	}
	r.stats.FramesRendered++
	r.stats.LastDrawCalls = drawCalls
}

// RenderFrame renders one frame into the surface's current drawable:
// one render pass, the pipeline bound once, one indexed draw per mesh in
// scene order, then submit and present.
//
// A failure drops the frame and is returned; the renderer stays usable.
func (r *Renderer) RenderFrame(surface Surface) (err error) {
	if err := r.begin(); err != nil {
		return err
	}
	draws := 0
	defer func() { r.finish(draws, err) }()

	if surface == nil {
		return fmt.Errorf("%w: nil surface", composite.ErrSurfaceUnavailable)
	}
	view, w, h, err := surface.AcquireView()
	if err != nil {
		return fmt.Errorf("acquire drawable: %w", err)
	}
	if err := r.targets.ensure(r.device, w, h, false); err != nil {
		return fmt.Errorf("ensure targets: %w", err)
	}

	draws, err = r.encodeSubmit(view, nil)
	if err != nil {
		return err
	}
	if err := surface.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}

	r.log.Debug("composite: frame rendered", "width", w, "height", h, "draws", draws)
	return nil
}

// RenderOffscreen renders one frame into an owned texture of the given size
// and reads it back as straight-alpha RGBA. With the default ColorFormat
// the pixels are sRGB-encoded; otherwise they are the stored bytes.
func (r *Renderer) RenderOffscreen(width, height int) (img *image.NRGBA, err error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", composite.ErrInvalidDimensions, width, height)
	}
	if err := r.begin(); err != nil {
		return nil, err
	}
	draws := 0
	defer func() { r.finish(draws, err) }()

	w, h := uint32(width), uint32(height) //nolint:gosec // checked positive above
	if err := r.targets.ensure(r.device, w, h, true); err != nil {
		return nil, fmt.Errorf("ensure targets: %w", err)
	}

	img = image.NewNRGBA(image.Rect(0, 0, width, height))
	draws, err = r.encodeSubmit(r.targets.resolveView, img)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// recordScene records the per-mesh draws into rp and returns the number of
// draw calls issued.
func (r *Renderer) recordScene(rp passEncoder) int {
	rp.SetPipeline(r.pipeline.Pipeline())
	for i := range r.meshes {
		m := &r.meshes[i]
		rp.SetVertexBuffer(0, m.VertexBuffer, 0)
		rp.SetIndexBuffer(m.IndexBuffer, IndexFormat, 0)
		rp.DrawIndexed(m.IndexCount, 1, 0, 0, 0)
	}
	return len(r.meshes)
}

// encodeSubmit encodes the render pass resolving into resolveView, submits
// it and waits for the GPU. When readback is non-nil the resolve texture is
// copied to a staging buffer and decoded into it.
func (r *Renderer) encodeSubmit(resolveView hal.TextureView, readback *image.NRGBA) (int, error) {
	w, h := r.targets.width, r.targets.height

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "composite_encoder",
	})
	if err != nil {
		return 0, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("composite_frame"); err != nil {
		return 0, fmt.Errorf("begin encoding: %w", err)
	}

	cc := r.opts.ClearColor
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "composite_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:          r.targets.msaaView,
			ResolveTarget: resolveView,
			LoadOp:        gputypes.LoadOpClear,
			StoreOp:       gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: float64(cc.R), G: float64(cc.G), B: float64(cc.B), A: float64(cc.A),
			},
		}},
	})
	draws := r.recordScene(rp)
	rp.End()

	var stagingBuf hal.Buffer
	var alignedBytesPerRow uint32
	if readback != nil {
		// WebGPU requires BytesPerRow aligned to 256 bytes.
		const copyPitchAlignment = 256
		alignedBytesPerRow = (w*4 + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)

		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: r.targets.resolveTex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})

		stagingBuf, err = r.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "composite_staging",
			Size:  uint64(alignedBytesPerRow) * uint64(h),
			Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			encoder.DiscardEncoding()
			return 0, fmt.Errorf("create staging buffer: %w", err)
		}
		defer r.device.DestroyBuffer(stagingBuf)

		encoder.CopyTextureToBuffer(r.targets.resolveTex, stagingBuf, []hal.BufferTextureCopy{{
			BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
			TextureBase:  hal.ImageCopyTexture{Texture: r.targets.resolveTex, MipLevel: 0},
			Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		}})

		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: r.targets.resolveTex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageCopySrc,
				NewUsage: gputypes.TextureUsageRenderAttachment,
			},
		}})
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return 0, fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return 0, fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return 0, fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := r.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return 0, fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	if readback != nil {
		data := make([]byte, uint64(alignedBytesPerRow)*uint64(h))
		if err := r.queue.ReadBuffer(stagingBuf, 0, data); err != nil {
			return 0, fmt.Errorf("readback: %w", err)
		}
		decodeBGRA(readback, data, int(alignedBytesPerRow))
	}
	return draws, nil
}

// decodeBGRA copies row-padded BGRA pixels into dst, swapping to RGBA.
func decodeBGRA(dst *image.NRGBA, src []byte, srcStride int) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	for y := 0; y < h; y++ {
		s := src[y*srcStride : y*srcStride+w*4]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			d[x+0] = s[x+2]
			d[x+1] = s[x+1]
			d[x+2] = s[x+0]
			d[x+3] = s[x+3]
		}
	}
}

// Destroy releases all GPU resources held by the renderer in reverse
// creation order. A frame in progress is allowed to finish first. Safe to
// call multiple times; later frames fail with ErrRendererClosed.
func (r *Renderer) Destroy() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	// Closing first stops new frames from starting while we wait.
	r.closed = true
	for r.state == stateRendering {
		r.idle.Wait()
	}
	r.mu.Unlock()

	r.targets.destroy(r.device)
	for i := range r.meshes {
		r.meshes[i].destroy(r.device)
	}
	r.meshes = nil
	r.pipeline.Destroy()
}
