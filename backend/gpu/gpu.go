// Package gpu is the GPU-backed backend: node textures and all raster
// work stay on the CPU (delegated to the soft backend), while the
// composited canvas is mirrored into a GPU texture drawn through the
// host application's gogpu context.
//
// The backend never creates a device of its own. The host attaches its
// gpucontext.DeviceProvider and TextureDrawer (for gogpu applications,
// App.GPUContextProvider and Context.AsTextureDrawer), and the backend
// uploads the composited pixels through them. Before Attach the backend
// behaves exactly like the CPU-only soft backend.
//
// Later phases can move the effect and blend passes onto the device;
// the engine only sees the Backend interface either way.
package gpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/backend/soft"
)

// Backend composites on the CPU and presents through the GPU.
//
// Not safe for concurrent use.
type Backend struct {
	raster *soft.Backend

	provider gpucontext.DeviceProvider
	drawer   gpucontext.TextureDrawer

	// canvas is the GPU mirror of the composited canvas, recreated
	// lazily when the composited size changes.
	canvas  gpucontext.Texture
	canvasW int
	canvasH int

	closed bool
}

// New creates a GPU backend with a canvas of the given size. The
// backend renders CPU-side immediately; call Attach to connect it to a
// host GPU context and enable canvas upload.
func New(width, height int) (*Backend, error) {
	raster, err := soft.New(width, height)
	if err != nil {
		return nil, err
	}
	return &Backend{raster: raster}, nil
}

// Attach connects the backend to a host GPU context. The provider
// carries the shared device and the drawer uploads and draws the
// canvas texture. Attaching again replaces the previous context; the
// canvas texture is recreated through the new drawer on the next
// composite.
func (b *Backend) Attach(provider gpucontext.DeviceProvider, drawer gpucontext.TextureDrawer) error {
	if b.closed {
		return ErrClosed
	}
	if provider == nil || drawer == nil {
		return ErrNotAttached
	}
	if b.drawer != nil && b.drawer != drawer {
		b.destroyCanvas()
	}
	b.provider = provider
	b.drawer = drawer
	info := provider.AdapterInfo()
	compose.Logger().Info("gpu context attached",
		"adapter", info.Name,
		"type", info.Type.String())
	return nil
}

// AttachApp connects the backend to a running gogpu application, using
// the app's shared device provider and the draw context's texture
// drawer. Call it from the draw callback setup, where the context is
// available.
func (b *Backend) AttachApp(app *gogpu.App, dc *gogpu.Context) error {
	if app == nil || dc == nil {
		return ErrNotAttached
	}
	return b.Attach(app.GPUContextProvider(), dc.AsTextureDrawer())
}

// Attached reports whether a host GPU context has been attached.
func (b *Backend) Attached() bool { return b.drawer != nil }

// Close releases the GPU canvas texture and detaches the host context.
// The backend must not be used after Close.
func (b *Backend) Close() {
	if b.closed {
		return
	}
	b.closed = true
	b.destroyCanvas()
	b.provider = nil
	b.drawer = nil
}

// Viewport implements compose.Backend.
func (b *Backend) Viewport() compose.Viewport { return b.raster.Viewport() }

// TextureFormat implements compose.Backend.
func (b *Backend) TextureFormat() gputypes.TextureFormat { return b.raster.TextureFormat() }

// DeviceHandle implements compose.Backend. Before Attach it returns
// NullDeviceHandle, same as a CPU-only backend; after Attach it hands
// out the host's own provider, so consumers share the host device.
func (b *Backend) DeviceHandle() compose.DeviceHandle {
	if b.provider == nil {
		return compose.NullDeviceHandle{}
	}
	return b.provider
}

// CreateTexture implements compose.Backend. Node textures stay on the
// CPU; only the final canvas crosses to the GPU.
func (b *Backend) CreateTexture(width, height int, format gputypes.TextureFormat) (compose.Texture, error) {
	return b.raster.CreateTexture(width, height, format)
}

// WriteTexture implements compose.Backend.
func (b *Backend) WriteTexture(dst compose.Texture, pix []byte) error {
	return b.raster.WriteTexture(dst, pix)
}

// Render implements compose.Backend.
func (b *Backend) Render(spec compose.DrawSpec, dst compose.Texture) error {
	return b.raster.Render(spec, dst)
}

// ApplyEffect implements compose.Backend.
func (b *Backend) ApplyEffect(spec *compose.EffectSpec, src, dst compose.Texture) error {
	return b.raster.ApplyEffect(spec, src, dst)
}

// Blend implements compose.Backend.
func (b *Backend) Blend(spec *compose.BlendSpec, bottom, top, dst compose.Texture) error {
	return b.raster.Blend(spec, bottom, top, dst)
}

// CopyTexture implements compose.Backend.
func (b *Backend) CopyTexture(src, dst compose.Texture) error {
	return b.raster.CopyTexture(src, dst)
}

// CompositeToCanvas implements compose.Backend. The CPU canvas is
// composited first, then mirrored to the GPU texture when a host
// context is attached.
func (b *Backend) CompositeToCanvas(src compose.Texture, clear bool) error {
	if b.closed {
		return ErrClosed
	}
	if err := b.raster.CompositeToCanvas(src, clear); err != nil {
		return err
	}
	if b.drawer == nil {
		return nil
	}
	return b.uploadCanvas(b.raster.Canvas())
}

// Present draws the GPU canvas texture into the host frame at the
// given position. CompositeToCanvas must have run at least once since
// Attach.
func (b *Backend) Present(x, y float32) error {
	if b.closed {
		return ErrClosed
	}
	if b.drawer == nil || b.canvas == nil {
		return ErrNotAttached
	}
	return b.drawer.DrawTexture(b.canvas, x, y)
}

// Canvas returns the CPU-side canvas image.
func (b *Backend) Canvas() *image.RGBA { return b.raster.Canvas() }

// CanvasTexture returns the GPU canvas texture, or nil before the
// first upload.
func (b *Backend) CanvasTexture() gpucontext.Texture { return b.canvas }

// Resize replaces the canvas. The GPU texture is recreated lazily on
// the next upload.
func (b *Backend) Resize(width, height int) error {
	return b.raster.Resize(width, height)
}

// uploadCanvas mirrors the composited pixels into the GPU canvas
// texture: in-place update when the size matches and the texture
// supports it, otherwise a fresh texture from the drawer's creator.
func (b *Backend) uploadCanvas(img *image.RGBA) error {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if b.canvas != nil && (b.canvasW != w || b.canvasH != h) {
		b.destroyCanvas()
	}
	if b.canvas != nil {
		if up, ok := b.canvas.(gpucontext.TextureUpdater); ok {
			if err := up.UpdateData(img.Pix); err != nil {
				return fmt.Errorf("gpu: canvas update failed: %w", err)
			}
			return nil
		}
		// Creator implementations without in-place update get a fresh
		// texture every frame.
		b.destroyCanvas()
	}
	tex, err := b.drawer.TextureCreator().NewTextureFromRGBA(w, h, img.Pix)
	if err != nil {
		return fmt.Errorf("gpu: canvas texture creation failed: %w", err)
	}
	b.canvas = tex
	b.canvasW = w
	b.canvasH = h
	return nil
}

// destroyCanvas releases the GPU canvas texture when the creator hands
// back the concrete gogpu type; foreign creators manage their own
// texture lifetime.
func (b *Backend) destroyCanvas() {
	if b.canvas == nil {
		return
	}
	if t, ok := b.canvas.(*gogpu.Texture); ok {
		t.Destroy()
	}
	b.canvas = nil
	b.canvasW = 0
	b.canvasH = 0
}

var _ compose.Backend = (*Backend)(nil)
