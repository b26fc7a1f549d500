package soft

import (
	"fmt"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/compose"
)

// Render implements compose.Backend.
func (b *Backend) Render(spec compose.DrawSpec, dst compose.Texture) error {
	d, err := b.own(dst)
	if err != nil {
		return err
	}
	switch s := spec.(type) {
	case *compose.SurfaceSpec:
		return b.renderSurface(s, d)
	case *compose.ShapeSpec:
		return b.renderShape(s, d)
	default:
		return fmt.Errorf("soft: draw spec %T: %w", spec, compose.ErrUnsupported)
	}
}

func (b *Backend) renderSurface(s *compose.SurfaceSpec, d *texture) error {
	if s.Pattern == compose.PatternImage {
		return renderImage(s, d)
	}

	size := s.Size
	if size <= 0 {
		size = 1
	}
	thickness := s.Thickness
	sin, cos := math.Sincos(s.Angle)
	cx := float64(d.width) / 2
	cy := float64(d.height) / 2

	primary := packColor(s.Primary)
	secondary := packColor(s.Secondary)

	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			// Pattern coordinates: centered, rotated by Angle.
			fx := float64(x) + 0.5 - cx
			fy := float64(y) + 0.5 - cy
			u := fx*cos + fy*sin
			v := -fx*sin + fy*cos

			var fig bool
			switch s.Pattern {
			case compose.PatternSolid:
				fig = true
			case compose.PatternStripes:
				fig = wrap(u, size) < thickness
			case compose.PatternGrid:
				fig = wrap(u, size) < thickness || wrap(v, size) < thickness
			case compose.PatternDots:
				du := wrap(u, size) - size/2
				dv := wrap(v, size) - size/2
				fig = math.Hypot(du, dv) <= thickness/2
			case compose.PatternChecker:
				fig = (int(math.Floor(u/size))+int(math.Floor(v/size)))%2 == 0
			case compose.PatternWaves:
				w := v + math.Sin(u*2*math.Pi/size)*size/4
				fig = wrap(w, size) < thickness
			case compose.PatternRings:
				fig = wrap(math.Hypot(fx, fy), size) < thickness
			}

			i := d.offset(x, y)
			if fig {
				copy(d.pix[i:i+4], primary[:])
			} else {
				copy(d.pix[i:i+4], secondary[:])
			}
		}
	}
	return nil
}

// renderImage scales the source image to fill the texture.
func renderImage(s *compose.SurfaceSpec, d *texture) error {
	if s.Image == nil {
		return fmt.Errorf("soft: image pattern without image: %w", compose.ErrUnsupported)
	}
	dst := d.image()
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), s.Image, s.Image.Bounds(), draw.Src, nil)
	return nil
}

// wrap maps v into [0, period), handling negative coordinates.
func wrap(v, period float64) float64 {
	m := math.Mod(v, period)
	if m < 0 {
		m += period
	}
	return m
}

func packColor(c compose.RGBA) [4]byte {
	return [4]byte{
		byteOf(c.R),
		byteOf(c.G),
		byteOf(c.B),
		byteOf(c.A),
	}
}

func byteOf(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}
