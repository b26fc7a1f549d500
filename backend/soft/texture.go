package soft

import (
	"image"

	"github.com/gogpu/gputypes"
)

// texture is a straight-alpha RGBA8 pixel buffer.
type texture struct {
	width     int
	height    int
	format    gputypes.TextureFormat
	pix       []byte
	destroyed bool
}

func (t *texture) Width() int                     { return t.width }
func (t *texture) Height() int                    { return t.height }
func (t *texture) Format() gputypes.TextureFormat { return t.format }

// Destroy releases the pixel buffer. Destroying twice is a no-op.
func (t *texture) Destroy() {
	t.pix = nil
	t.destroyed = true
}

func (t *texture) offset(x, y int) int {
	return (y*t.width + x) * 4
}

// image wraps the buffer as a standard library image sharing the same
// pixels.
func (t *texture) image() *image.RGBA {
	return &image.RGBA{
		Pix:    t.pix,
		Stride: t.width * 4,
		Rect:   image.Rect(0, 0, t.width, t.height),
	}
}
