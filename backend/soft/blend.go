package soft

import (
	"fmt"

	"github.com/gogpu/compose"
)

// Blend implements compose.Backend.
func (b *Backend) Blend(spec *compose.BlendSpec, bottom, top, dst compose.Texture) error {
	bo, err := b.own(bottom)
	if err != nil {
		return err
	}
	to, err := b.own(top)
	if err != nil {
		return err
	}
	d, err := b.own(dst)
	if err != nil {
		return err
	}
	if bo.width != d.width || bo.height != d.height ||
		to.width != d.width || to.height != d.height {
		return fmt.Errorf("soft: blend %v: %w", spec.Mode, ErrSizeMismatch)
	}

	opacity := clamp01(spec.Opacity)
	switch spec.Mode {
	case compose.BlendAlpha:
		for i := 0; i < len(d.pix); i += 4 {
			copy(d.pix[i:i+4], bo.pix[i:i+4])
			overPix(d.pix[i:i+4:i+4], to.pix[i:i+4:i+4], opacity)
		}
	case compose.BlendMask:
		for i := 0; i < len(d.pix); i += 4 {
			d.pix[i] = bo.pix[i]
			d.pix[i+1] = bo.pix[i+1]
			d.pix[i+2] = bo.pix[i+2]
			// The mask's red channel carries the coverage value.
			cov := float64(to.pix[i]) / 255 * opacity
			d.pix[i+3] = byte(float64(bo.pix[i+3])*cov + 0.5)
		}
	default:
		return fmt.Errorf("soft: blend mode %v: %w", spec.Mode, compose.ErrUnsupported)
	}
	return nil
}

// overPix composites the straight-alpha src pixel over dst in place,
// with src's alpha scaled by opacity.
func overPix(dst, src []byte, opacity float64) {
	sa := float64(src[3]) / 255 * opacity
	if sa <= 0 {
		return
	}
	da := float64(dst[3]) / 255
	oa := sa + da*(1-sa)
	if oa <= 0 {
		dst[0], dst[1], dst[2], dst[3] = 0, 0, 0, 0
		return
	}
	for c := 0; c < 3; c++ {
		sc := float64(src[c])
		dc := float64(dst[c])
		dst[c] = byte((sc*sa+dc*da*(1-sa))/oa + 0.5)
	}
	dst[3] = byte(oa*255 + 0.5)
}
