//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"

	"github.com/gogpu/composite"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// SampleCount is the MSAA sample count of the pipeline and its color
// attachment.
const SampleCount = 4

// ColorFormat is the default format of the single color target. Blending
// then happens on linear values and the target stores sRGB.
const ColorFormat = gputypes.TextureFormatBGRA8UnormSrgb

// CheckColorFormat reports whether the pipeline can render into format.
// Only the BGRA8 formats are supported: the readback path decodes BGRA and
// the MSAA resolve requires the attachment and the drawable to share one
// format.
func CheckColorFormat(format gputypes.TextureFormat) error {
	switch format {
	case gputypes.TextureFormatBGRA8UnormSrgb, gputypes.TextureFormatBGRA8Unorm:
		return nil
	default:
		return fmt.Errorf("%w: %v", composite.ErrUnsupportedFormat, format)
	}
}

// VertexLayout returns the vertex buffer layout for the triangle pipeline:
// one interleaved buffer in slot 0.
//
//	position (vec2<f32>) = 8 bytes  (location 0, offset 0)
//	color    (vec4<f32>) = 16 bytes (location 1, offset 8)
//
// Total = 24 bytes per vertex.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: composite.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: composite.PositionOffset, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x4, Offset: composite.ColorOffset, ShaderLocation: 1},
			},
		},
	}
}

// OverBlend returns the straight-alpha "over" blend state:
//
//	rgb = src.rgb*src.a + dst.rgb*(1-src.a)
//	a   = src.a*src.a   + dst.a*(1-src.a)
func OverBlend() gputypes.BlendState {
	over := gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorSrcAlpha,
		DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
		Operation: gputypes.BlendOperationAdd,
	}
	return gputypes.BlendState{Color: over, Alpha: over}
}

// TrianglePipeline owns the shader module, pipeline layout, and render
// pipeline used to draw flat-color triangles.
type TrianglePipeline struct {
	device hal.Device
	source ShaderSource
	format gputypes.TextureFormat

	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// PipelineOption configures a TrianglePipeline.
type PipelineOption func(*TrianglePipeline)

// WithShader replaces the embedded shader pair.
func WithShader(src ShaderSource) PipelineOption {
	return func(p *TrianglePipeline) {
		p.source = src
	}
}

// WithColorFormat sets the color target format. It must match the drawable
// the pipeline renders into.
func WithColorFormat(format gputypes.TextureFormat) PipelineOption {
	return func(p *TrianglePipeline) {
		p.format = format
	}
}

// NewTrianglePipeline creates a pipeline builder for device. GPU objects
// are not created until Build is called.
func NewTrianglePipeline(device hal.Device, opts ...PipelineOption) *TrianglePipeline {
	p := &TrianglePipeline{
		device: device,
		source: TriangleShader(),
		format: ColorFormat,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Descriptor returns the render pipeline descriptor for the given shader
// module, layout and color format. Exposed so the fixed state can be
// inspected without a device.
func Descriptor(shader hal.ShaderModule, layout hal.PipelineLayout, src ShaderSource, format gputypes.TextureFormat) *hal.RenderPipelineDescriptor {
	blend := OverBlend()
	return &hal.RenderPipelineDescriptor{
		Label:  "triangle_pipeline",
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: src.Vertex,
			Buffers:    VertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: src.Fragment,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: SampleCount,
			Mask:  0xFFFFFFFF,
		},
	}
}

// Build validates and compiles the shader and creates the render pipeline.
// It is idempotent. Any failure releases partially created objects and is
// returned wrapped in ErrShaderCompile or ErrPipelineCreation.
func (p *TrianglePipeline) Build() error {
	if p.pipeline != nil {
		return nil
	}
	if p.device == nil {
		return fmt.Errorf("%w: nil device", composite.ErrPipelineCreation)
	}
	if err := CheckColorFormat(p.format); err != nil {
		return fmt.Errorf("%w: %w", composite.ErrPipelineCreation, err)
	}
	if err := p.source.Validate(); err != nil {
		return err
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  p.source.Label,
		Source: hal.ShaderSource{WGSL: p.source.WGSL},
	})
	if err != nil {
		return fmt.Errorf("%w: create shader module: %w", composite.ErrShaderCompile, err)
	}
	p.shader = shader

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "triangle_pipe_layout",
	})
	if err != nil {
		p.Destroy()
		return fmt.Errorf("%w: create pipeline layout: %w", composite.ErrPipelineCreation, err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := p.device.CreateRenderPipeline(Descriptor(p.shader, p.pipeLayout, p.source, p.format))
	if err != nil {
		p.Destroy()
		return fmt.Errorf("%w: create render pipeline: %w", composite.ErrPipelineCreation, err)
	}
	p.pipeline = pipeline

	slogger().Debug("gpu: triangle pipeline created",
		"format", p.format, "samples", SampleCount, "stride", composite.VertexStride)
	return nil
}

// Format returns the color target format.
func (p *TrianglePipeline) Format() gputypes.TextureFormat {
	return p.format
}

// Pipeline returns the render pipeline, or nil before Build.
func (p *TrianglePipeline) Pipeline() hal.RenderPipeline {
	return p.pipeline
}

// Destroy releases all pipeline resources in reverse creation order.
// Safe to call multiple times.
func (p *TrianglePipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
