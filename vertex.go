package composite

import (
	"encoding/binary"
	"math"
)

// Vertex layout constants. These must match the pipeline's vertex buffer
// layout and the WGSL vertex input.
const (
	// FloatsPerVertex is the number of float32 values per packed vertex.
	FloatsPerVertex = 6

	// VertexStride is the byte stride of one packed vertex.
	VertexStride = FloatsPerVertex * 4

	// PositionOffset is the byte offset of the position attribute.
	PositionOffset = 0

	// ColorOffset is the byte offset of the color attribute.
	ColorOffset = 2 * 4
)

// Vertex is one interleaved vertex: a 2D position and a straight-alpha color.
type Vertex struct {
	Position Point
	Color    Color
}

// Floats returns the vertex as its six packed float32 components.
func (v Vertex) Floats() [FloatsPerVertex]float32 {
	return [FloatsPerVertex]float32{
		v.Position.X, v.Position.Y,
		v.Color.R, v.Color.G, v.Color.B, v.Color.A,
	}
}

// PutVertex writes v into buf in little-endian order.
// buf must be at least VertexStride bytes.
func PutVertex(buf []byte, v Vertex) {
	_ = buf[VertexStride-1]
	for i, f := range v.Floats() {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
}

// ReadVertex decodes a vertex previously written by PutVertex.
func ReadVertex(buf []byte) Vertex {
	_ = buf[VertexStride-1]
	f := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return Vertex{
		Position: Point{X: f(0), Y: f(1)},
		Color:    Color{R: f(2), G: f(3), B: f(4), A: f(5)},
	}
}
