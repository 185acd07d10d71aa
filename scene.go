package composite

import "fmt"

// Scene is an ordered list of triangle meshes. Order is draw order, which
// matters because blending is enabled: later meshes composite over earlier
// ones.
type Scene struct {
	Meshes []TriangleMesh
}

// BuildScene returns the fixed three-triangle scene:
//
//  1. opaque white, a tall thin triangle through the center
//  2. translucent blue, pointing left, upper half
//  3. translucent red, pointing left, lower half
//
// The result is a pure function of constants; every call returns a new
// Scene with bit-identical data.
func BuildScene() *Scene {
	return &Scene{
		Meshes: []TriangleMesh{
			NewTriangle(Pt(-0.2, 0.8), Pt(0.2, 0.8), Pt(0, -0.8), White),
			NewTriangle(Pt(0.6, 0.4), Pt(0.6, 0.1), Pt(-0.6, -0.2), TranslucentBlue),
			NewTriangle(Pt(0.6, -0.4), Pt(0.6, -0.1), Pt(-0.6, 0.2), TranslucentRed),
		},
	}
}

// Len returns the number of meshes.
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Meshes)
}

// Validate checks every mesh's index invariant. A nil scene is empty.
func (s *Scene) Validate() error {
	if s == nil {
		return nil
	}
	for i := range s.Meshes {
		if err := s.Meshes[i].Validate(); err != nil {
			return fmt.Errorf("mesh %d: %w", i, err)
		}
	}
	return nil
}
