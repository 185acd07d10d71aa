// Package composite draws three semi-transparent triangles with "over"
// alpha blending on top of the pure Go WebGPU stack.
//
// # Overview
//
// The package holds the data model shared by every renderer: [Vertex],
// [TriangleMesh] and [Scene]. [BuildScene] returns the fixed three-triangle
// scene; the GPU renderer in internal/gpu uploads it once and draws it on
// every refresh request, and the raster package renders the same scene on
// the CPU with identical blend math.
//
// # Vertex Layout
//
// Vertices are stored interleaved, six little-endian float32 values per
// vertex with no padding:
//
//	offset 0:  position (x, y)        attribute 0, float32x2
//	offset 8:  color    (r, g, b, a)  attribute 1, float32x4
//	stride:    24 bytes
//
// Colors use straight (non-premultiplied) alpha.
//
// # Coordinate System
//
// Positions are normalized device coordinates:
//   - Origin (0,0) at the center of the target
//   - X increases right, in [-1, 1]
//   - Y increases up, in [-1, 1]
//
// # Logging
//
// The package is silent by default. Call [SetLogger] to route diagnostics
// from composite and its sub-packages to a [log/slog] logger.
package composite

// Version is the current version of the module.
const Version = "0.1.0"
