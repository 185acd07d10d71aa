//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/gogpu/composite"
	"github.com/gogpu/naga"
)

//go:embed shaders/triangle.wgsl
var triangleShaderSource string

// Shader entry points in triangle.wgsl.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// ShaderSource describes a WGSL module and its two entry points.
type ShaderSource struct {
	Label    string
	WGSL     string
	Vertex   string
	Fragment string
}

// TriangleShader returns the embedded shader pair used by the pipeline.
func TriangleShader() ShaderSource {
	return ShaderSource{
		Label:    "triangle_shader",
		WGSL:     triangleShaderSource,
		Vertex:   VertexEntryPoint,
		Fragment: FragmentEntryPoint,
	}
}

// Validate compiles the WGSL with naga so that syntax and type errors
// surface at startup as ErrShaderCompile, before any device call.
// The SPIR-V output is discarded; the HAL compiles WGSL for its own backend.
func (s ShaderSource) Validate() error {
	if s.WGSL == "" {
		return fmt.Errorf("%w: %s: empty source", composite.ErrShaderCompile, s.Label)
	}
	if s.Vertex == "" || s.Fragment == "" {
		return fmt.Errorf("%w: %s: missing entry point", composite.ErrShaderCompile, s.Label)
	}
	for _, entry := range []string{s.Vertex, s.Fragment} {
		if !strings.Contains(s.WGSL, "fn "+entry+"(") {
			return fmt.Errorf("%w: %s: entry point %q not found", composite.ErrShaderCompile, s.Label, entry)
		}
	}
	spirv, err := naga.Compile(s.WGSL)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", composite.ErrShaderCompile, s.Label, err)
	}
	slogger().Debug("gpu: shader validated", "label", s.Label, "spirv_bytes", len(spirv))
	return nil
}
