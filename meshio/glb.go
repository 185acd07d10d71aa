// Package meshio exports a composite.Scene as binary glTF.
//
// Each triangle becomes one glTF mesh with a single triangle-list primitive
// (POSITION as vec3 with z = 0, COLOR_0 as float RGBA, uint8 indices) and
// one node, added to the default scene in draw order. All meshes share a
// double-sided material with alpha blending, so viewers composite them the
// same way the renderer does.
package meshio

import (
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/gogpu/composite"
)

// MaterialName is the name of the shared blended material.
const MaterialName = "composite_over"

// Document builds the glTF document for scene.
func Document(scene *composite.Scene) (*gltf.Document, error) {
	if err := scene.Validate(); err != nil {
		return nil, err
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "composite " + composite.Version
	doc.Materials = []*gltf.Material{{
		Name:        MaterialName,
		AlphaMode:   gltf.AlphaBlend,
		DoubleSided: true,
	}}

	for i := 0; i < scene.Len(); i++ {
		m := &scene.Meshes[i]

		positions := make([][3]float32, composite.VerticesPerMesh)
		colors := make([][4]float32, composite.VerticesPerMesh)
		for j, v := range m.Vertices {
			positions[j] = [3]float32{v.Position.X, v.Position.Y, 0}
			colors[j] = [4]float32{v.Color.R, v.Color.G, v.Color.B, v.Color.A}
		}
		indices := make([]uint8, composite.IndicesPerMesh)
		copy(indices, m.Indices[:])

		name := fmt.Sprintf("triangle_%d", i)
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: name,
			Primitives: []*gltf.Primitive{{
				// WriteIndices only takes 16 and 32 bit indices.
				Indices: gltf.Index(modeler.WriteAccessor(doc, gltf.TargetElementArrayBuffer, indices)),
				Attributes: gltf.PrimitiveAttributes{
					gltf.POSITION: modeler.WritePosition(doc, positions),
					gltf.COLOR_0:  modeler.WriteColor(doc, colors),
				},
				Material: gltf.Index(0),
				Mode:     gltf.PrimitiveTriangles,
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: name,
			Mesh: gltf.Index(len(doc.Meshes) - 1),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	composite.Logger().Debug("meshio: document built", "meshes", len(doc.Meshes))
	return doc, nil
}

// WriteGLB writes scene to w as a binary glTF (GLB) container.
func WriteGLB(w io.Writer, scene *composite.Scene) error {
	doc, err := Document(scene)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("meshio: encode glb: %w", err)
	}
	return nil
}

// ReadGLB decodes a GLB written by WriteGLB back into a scene. Meshes are
// returned in node order.
func ReadGLB(r io.Reader) (*composite.Scene, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("meshio: decode glb: %w", err)
	}

	scene := &composite.Scene{}
	for _, node := range doc.Nodes {
		if node.Mesh == nil {
			continue
		}
		mesh, err := readMesh(doc, doc.Meshes[*node.Mesh])
		if err != nil {
			return nil, fmt.Errorf("meshio: node %q: %w", node.Name, err)
		}
		scene.Meshes = append(scene.Meshes, mesh)
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

func readMesh(doc *gltf.Document, mesh *gltf.Mesh) (composite.TriangleMesh, error) {
	var out composite.TriangleMesh
	if len(mesh.Primitives) != 1 {
		return out, fmt.Errorf("expected 1 primitive, got %d", len(mesh.Primitives))
	}
	prim := mesh.Primitives[0]

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return out, fmt.Errorf("missing %s", gltf.POSITION)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return out, fmt.Errorf("read positions: %w", err)
	}

	colIdx, ok := prim.Attributes[gltf.COLOR_0]
	if !ok {
		return out, fmt.Errorf("missing %s", gltf.COLOR_0)
	}
	raw, err := modeler.ReadAccessor(doc, doc.Accessors[colIdx], nil)
	if err != nil {
		return out, fmt.Errorf("read colors: %w", err)
	}
	colors, ok := raw.([][4]float32)
	if !ok {
		return out, fmt.Errorf("unsupported %s type %T", gltf.COLOR_0, raw)
	}

	if prim.Indices == nil {
		return out, fmt.Errorf("missing indices")
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return out, fmt.Errorf("read indices: %w", err)
	}

	if len(positions) != composite.VerticesPerMesh || len(colors) != composite.VerticesPerMesh ||
		len(indices) != composite.IndicesPerMesh {
		return out, fmt.Errorf("not a triangle: %d positions, %d colors, %d indices",
			len(positions), len(colors), len(indices))
	}
	for i := range out.Vertices {
		c := colors[i]
		out.Vertices[i] = composite.Vertex{
			Position: composite.Pt(positions[i][0], positions[i][1]),
			Color:    composite.Color{R: c[0], G: c[1], B: c[2], A: c[3]},
		}
	}
	for i, idx := range indices {
		if idx > 0xff {
			return out, fmt.Errorf("%w: %d", composite.ErrIndexOutOfRange, idx)
		}
		out.Indices[i] = uint8(idx)
	}
	return out, nil
}
