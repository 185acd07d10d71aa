//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/composite"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// IndexFormat is the GPU index format of uploaded meshes. Mesh indices are
// uint8 in the data model; WebGPU only accepts 16- and 32-bit indices.
const IndexFormat = gputypes.IndexFormatUint16

// copyAlignment is the size alignment WriteBuffer requires.
const copyAlignment = 4

// MeshBuffers holds the GPU-resident vertex and index buffers of one mesh.
type MeshBuffers struct {
	VertexBuffer hal.Buffer
	IndexBuffer  hal.Buffer
	VertexCount  uint32
	IndexCount   uint32
}

func (m *MeshBuffers) destroy(device hal.Device) {
	if m.IndexBuffer != nil {
		device.DestroyBuffer(m.IndexBuffer)
		m.IndexBuffer = nil
	}
	if m.VertexBuffer != nil {
		device.DestroyBuffer(m.VertexBuffer)
		m.VertexBuffer = nil
	}
}

// WidenIndices converts 8-bit mesh indices to little-endian uint16 and
// pads the result to a multiple of 4 bytes.
func WidenIndices(indices []byte) []byte {
	n := alignUp(len(indices)*2, copyAlignment)
	out := make([]byte, n)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(idx))
	}
	return out
}

func alignUp(n, a int) int {
	return (n + a - 1) &^ (a - 1)
}

// UploadScene validates the scene and uploads every mesh into its own
// vertex and index buffer, preserving scene order. On failure, buffers
// created so far are destroyed and the error wraps ErrBufferUpload or
// ErrIndexOutOfRange.
func UploadScene(device hal.Device, queue hal.Queue, scene *composite.Scene) ([]MeshBuffers, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("%w: nil device or queue", composite.ErrBufferUpload)
	}
	if scene == nil {
		return nil, fmt.Errorf("%w: nil scene", composite.ErrBufferUpload)
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}

	meshes := make([]MeshBuffers, 0, scene.Len())
	cleanup := func() {
		for i := range meshes {
			meshes[i].destroy(device)
		}
	}

	for i := range scene.Meshes {
		mesh := &scene.Meshes[i]

		vertBuf, err := createAndUploadBuffer(device, queue, fmt.Sprintf("mesh_%d_verts", i),
			mesh.VertexBytes(), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("%w: mesh %d vertex buffer: %w", composite.ErrBufferUpload, i, err)
		}

		idxBuf, err := createAndUploadBuffer(device, queue, fmt.Sprintf("mesh_%d_indices", i),
			WidenIndices(mesh.IndexBytes()), gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
		if err != nil {
			device.DestroyBuffer(vertBuf)
			cleanup()
			return nil, fmt.Errorf("%w: mesh %d index buffer: %w", composite.ErrBufferUpload, i, err)
		}

		meshes = append(meshes, MeshBuffers{
			VertexBuffer: vertBuf,
			IndexBuffer:  idxBuf,
			VertexCount:  composite.VerticesPerMesh,
			IndexCount:   composite.IndicesPerMesh,
		})
	}

	slogger().Debug("gpu: scene uploaded", "meshes", len(meshes))
	return meshes, nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func createAndUploadBuffer(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	size := uint64(alignUp(len(data), copyAlignment)) //nolint:gosec // mesh data is a few bytes
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if uint64(len(data)) < size {
		padded := make([]byte, size)
		copy(padded, data)
		data = padded
	}
	queue.WriteBuffer(buf, 0, data)
	return buf, nil
}
