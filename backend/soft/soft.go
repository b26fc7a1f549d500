// Package soft is the pure-CPU backend: textures are straight-alpha
// RGBA8 pixel buffers, and every draw, effect and blend operation runs
// on the host. It has no GPU dependency and serves both headless
// rendering and tests.
package soft

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/compose"
)

// Backend is the software rendering backend. The canvas is an
// in-memory RGBA image retrievable with Canvas.
//
// Not safe for concurrent use.
type Backend struct {
	width  int
	height int
	canvas *image.RGBA
}

// New creates a software backend with a canvas of the given size.
func New(width, height int) (*Backend, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("soft: canvas %dx%d: %w", width, height, compose.ErrUnsupported)
	}
	return &Backend{
		width:  width,
		height: height,
		canvas: image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// Viewport implements compose.Backend.
func (b *Backend) Viewport() compose.Viewport {
	return compose.Viewport{Width: b.width, Height: b.height}
}

// DeviceHandle implements compose.Backend. The software backend is
// CPU-only.
func (b *Backend) DeviceHandle() compose.DeviceHandle {
	return compose.NullDeviceHandle{}
}

// TextureFormat implements compose.Backend.
func (b *Backend) TextureFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// CreateTexture implements compose.Backend.
func (b *Backend) CreateTexture(width, height int, format gputypes.TextureFormat) (compose.Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("soft: texture %dx%d: %w", width, height, compose.ErrUnsupported)
	}
	return &texture{
		width:  width,
		height: height,
		format: format,
		pix:    make([]byte, width*height*4),
	}, nil
}

// WriteTexture implements compose.Backend.
func (b *Backend) WriteTexture(dst compose.Texture, pix []byte) error {
	t, err := b.own(dst)
	if err != nil {
		return err
	}
	if len(pix) != len(t.pix) {
		return fmt.Errorf("soft: write of %d bytes into %dx%d texture: %w",
			len(pix), t.width, t.height, ErrSizeMismatch)
	}
	copy(t.pix, pix)
	return nil
}

// CopyTexture implements compose.Backend.
func (b *Backend) CopyTexture(src, dst compose.Texture) error {
	s, err := b.own(src)
	if err != nil {
		return err
	}
	d, err := b.own(dst)
	if err != nil {
		return err
	}
	if s.width != d.width || s.height != d.height {
		return fmt.Errorf("soft: copy %dx%d to %dx%d: %w",
			s.width, s.height, d.width, d.height, ErrSizeMismatch)
	}
	copy(d.pix, s.pix)
	return nil
}

// CompositeToCanvas implements compose.Backend. The source is alpha
// composited over the canvas, top-left aligned.
func (b *Backend) CompositeToCanvas(src compose.Texture, clear bool) error {
	s, err := b.own(src)
	if err != nil {
		return err
	}
	if clear {
		for i := range b.canvas.Pix {
			b.canvas.Pix[i] = 0
		}
	}
	w := min(s.width, b.width)
	h := min(s.height, b.height)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := s.offset(x, y)
			j := b.canvas.PixOffset(x, y)
			overPix(b.canvas.Pix[j:j+4:j+4], s.pix[i:i+4:i+4], 1)
		}
	}
	return nil
}

// Canvas returns the visible canvas image. The returned image is live:
// the next CompositeToCanvas overwrites it.
func (b *Backend) Canvas() *image.RGBA {
	return b.canvas
}

// Resize replaces the canvas with a new one of the given size. Node
// caches sized for the old viewport reallocate on the next execution.
func (b *Backend) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("soft: canvas %dx%d: %w", width, height, compose.ErrUnsupported)
	}
	b.width = width
	b.height = height
	b.canvas = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// own asserts that the texture belongs to this backend and is alive.
func (b *Backend) own(t compose.Texture) (*texture, error) {
	st, ok := t.(*texture)
	if !ok {
		return nil, fmt.Errorf("soft: texture %T: %w", t, ErrForeignTexture)
	}
	if st.destroyed {
		return nil, ErrTextureDestroyed
	}
	return st, nil
}

var _ compose.Backend = (*Backend)(nil)
