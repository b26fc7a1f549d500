package compose

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Viewport is the size of the render area in pixels.
type Viewport struct {
	Width  int
	Height int
}

// Empty reports whether the viewport has no drawable area.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Texture represents a backend texture resource. A texture is either
// exclusively owned by one node for that node's lifetime, or borrowed
// from the scratch pool for the duration of a single execution.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int

	// Format returns the texture pixel format.
	Format() gputypes.TextureFormat

	// Destroy releases the resources associated with this texture.
	Destroy()
}

// DeviceHandle provides GPU device access from the host application.
//
// Key principle: compose RECEIVES the device from the host, it does
// NOT create one. CPU-only backends return NullDeviceHandle.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// compose-specific name for the interface while maintaining full
// compatibility with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for CPU-only rendering where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo returns unknown adapter metadata for the null device.
// The zero AdapterType is Discrete, so Unknown is set explicitly.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}

// Backend is the graphics contract the node graph renders through.
//
// A backend owns the visible canvas and allocates textures; the engine
// drives it with draw specifications (SurfaceSpec, ShapeSpec), effect
// specifications and blend specifications. Every call is synchronous
// from the engine's point of view: the backend's own command queue may
// be asynchronous, but that asynchrony is opaque to this layer.
//
// Backends are NOT safe for concurrent use. At most one pipeline
// execution may be in flight per backend instance.
type Backend interface {
	// Viewport returns the current canvas size.
	Viewport() Viewport

	// DeviceHandle returns the GPU device handle, or NullDeviceHandle
	// for CPU-only backends.
	DeviceHandle() DeviceHandle

	// TextureFormat returns the preferred texture format for
	// intermediate textures.
	TextureFormat() gputypes.TextureFormat

	// CreateTexture allocates a texture. The caller owns the result and
	// must call Destroy exactly once.
	CreateTexture(width, height int, format gputypes.TextureFormat) (Texture, error)

	// WriteTexture uploads tightly packed RGBA8 pixel data into dst.
	// len(pix) must be dst.Width()*dst.Height()*4.
	WriteTexture(dst Texture, pix []byte) error

	// Render draws a draw specification directly into dst.
	// Returns ErrUnsupported (possibly wrapped) if the backend cannot
	// service the specification, e.g. image patterns on a backend
	// without sampling support.
	Render(spec DrawSpec, dst Texture) error

	// ApplyEffect applies a single-input post-effect, reading src and
	// writing dst. src and dst must not alias.
	ApplyEffect(spec *EffectSpec, src, dst Texture) error

	// Blend combines two textures into dst according to the blend
	// specification. For BlendAlpha, top is composited over bottom; for
	// BlendMask, top is a greymap modulating bottom's alpha. dst must
	// not alias either input.
	Blend(spec *BlendSpec, bottom, top, dst Texture) error

	// CopyTexture copies src into dst unchanged (identity pass).
	CopyTexture(src, dst Texture) error

	// CompositeToCanvas writes src to the visible canvas, optionally
	// clearing it first.
	CompositeToCanvas(src Texture, clear bool) error
}
