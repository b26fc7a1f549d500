package compose

import "github.com/gogpu/gputypes"

// NodeContext is the per-execution bundle threaded through one graph
// traversal. It is constructed fresh by ExecutePipeline and never
// cached across executions.
type NodeContext struct {
	// Backend services all texture operations for this traversal.
	Backend Backend

	// Viewport is the render size queried from the backend at the start
	// of the execution.
	Viewport Viewport

	// Palette resolves surface color keys.
	Palette Palette

	// Scale multiplies pixel-based parameters, e.g. 0.5 when rendering
	// a half-resolution preview.
	Scale float64

	// Pool is the shared two-slot scratch allocator for short-lived
	// intermediate textures. Valid for this execution only.
	Pool *ScratchPool

	// Device is the GPU device handle from the backend;
	// NullDeviceHandle on CPU-only backends.
	Device DeviceHandle

	// Format is the texture format for intermediate textures.
	Format gputypes.TextureFormat
}
