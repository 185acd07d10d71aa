package composite

import "errors"

// Errors returned by composite and its renderers. Callers match them with
// errors.Is; renderers wrap them with the failing step.
var (
	// ErrShaderCompile is returned when the WGSL shader pair fails to
	// compile or the shader module cannot be created. Fatal at startup.
	ErrShaderCompile = errors.New("composite: shader compilation failed")

	// ErrPipelineCreation is returned when the render pipeline state cannot
	// be created. Fatal at startup.
	ErrPipelineCreation = errors.New("composite: pipeline creation failed")

	// ErrBufferUpload is returned when a vertex or index buffer cannot be
	// allocated or uploaded. Fatal at startup.
	ErrBufferUpload = errors.New("composite: buffer upload failed")

	// ErrSurfaceUnavailable is returned when no drawable is available for
	// the current frame. The frame is dropped.
	ErrSurfaceUnavailable = errors.New("composite: surface unavailable")

	// ErrFrameInProgress is returned when a refresh is requested while the
	// previous frame is still being encoded.
	ErrFrameInProgress = errors.New("composite: frame already in progress")

	// ErrRendererClosed is returned when rendering after Destroy.
	ErrRendererClosed = errors.New("composite: renderer closed")

	// ErrIndexOutOfRange is returned when a mesh index references a vertex
	// outside its own vertex buffer.
	ErrIndexOutOfRange = errors.New("composite: index out of range")

	// ErrInvalidDimensions is returned when a render target is smaller
	// than 1x1.
	ErrInvalidDimensions = errors.New("composite: invalid dimensions")

	// ErrUnsupportedFormat is returned when the host surface uses a color
	// format the pipeline cannot render into.
	ErrUnsupportedFormat = errors.New("composite: unsupported surface format")

	// ErrInvalidColor is returned by ParseHex for malformed hex colors.
	ErrInvalidColor = errors.New("composite: invalid hex color")
)
