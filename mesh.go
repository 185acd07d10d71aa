package composite

import "fmt"

// Mesh size constants. Every mesh is a single triangle.
const (
	VerticesPerMesh = 3
	IndicesPerMesh  = 3
)

// TriangleMesh is a single triangle: three vertices sharing one flat color,
// and the index sequence 0, 1, 2 into those vertices.
type TriangleMesh struct {
	Vertices [VerticesPerMesh]Vertex
	Indices  [IndicesPerMesh]uint8
}

// NewTriangle creates a mesh from three positions and one flat color.
// The color is copied onto all three vertices.
func NewTriangle(a, b, c Point, color Color) TriangleMesh {
	return TriangleMesh{
		Vertices: [VerticesPerMesh]Vertex{
			{Position: a, Color: color},
			{Position: b, Color: color},
			{Position: c, Color: color},
		},
		Indices: [IndicesPerMesh]uint8{0, 1, 2},
	}
}

// Color returns the flat color of the mesh (the color of its first vertex).
func (m *TriangleMesh) Color() Color {
	return m.Vertices[0].Color
}

// Positions returns the three vertex positions in order.
func (m *TriangleMesh) Positions() [VerticesPerMesh]Point {
	return [VerticesPerMesh]Point{
		m.Vertices[0].Position,
		m.Vertices[1].Position,
		m.Vertices[2].Position,
	}
}

// VertexBytes packs the vertices into a new interleaved buffer of
// VerticesPerMesh*VertexStride bytes.
func (m *TriangleMesh) VertexBytes() []byte {
	buf := make([]byte, VerticesPerMesh*VertexStride)
	for i, v := range m.Vertices {
		PutVertex(buf[i*VertexStride:], v)
	}
	return buf
}

// IndexBytes packs the indices as 8-bit unsigned integers.
func (m *TriangleMesh) IndexBytes() []byte {
	return []byte{m.Indices[0], m.Indices[1], m.Indices[2]}
}

// Validate reports ErrIndexOutOfRange if any index does not reference one
// of the mesh's own vertices.
func (m *TriangleMesh) Validate() error {
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%w: index[%d]=%d, vertex count %d", ErrIndexOutOfRange, i, idx, len(m.Vertices))
		}
	}
	return nil
}
