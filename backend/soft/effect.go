package soft

import (
	"fmt"
	"math"

	"github.com/gogpu/compose"
)

// ApplyEffect implements compose.Backend.
func (b *Backend) ApplyEffect(spec *compose.EffectSpec, src, dst compose.Texture) error {
	s, err := b.own(src)
	if err != nil {
		return err
	}
	d, err := b.own(dst)
	if err != nil {
		return err
	}
	if s.width != d.width || s.height != d.height {
		return fmt.Errorf("soft: effect %v %dx%d to %dx%d: %w",
			spec.Op, s.width, s.height, d.width, d.height, ErrSizeMismatch)
	}

	switch spec.Op {
	case compose.EffectBlur:
		boxBlur(s.pix, d.pix, s.width, s.height, spec.Radius)
	case compose.EffectVignette:
		vignette(s.pix, d.pix, s.width, s.height, spec.Strength, spec.Radius)
	case compose.EffectPixelate:
		pixelate(s.pix, d.pix, s.width, s.height, int(spec.Size))
	case compose.EffectGrain:
		grain(s.pix, d.pix, spec.Strength, spec.Seed)
	case compose.EffectColorMatrix:
		colorMatrix(s.pix, d.pix, spec.Matrix)
	case compose.EffectSharpen:
		sharpen(s.pix, d.pix, s.width, s.height, spec.Strength)
	default:
		return fmt.Errorf("soft: effect %v: %w", spec.Op, compose.ErrUnsupported)
	}
	return nil
}

// boxBlur approximates a Gaussian with three separable box passes, the
// usual trick: three boxes converge on a Gaussian of the requested
// sigma while staying linear in the pixel count.
func boxBlur(src, dst []byte, w, h int, sigma float64) {
	r := int(sigma * 3 / 2)
	if r < 1 {
		copy(dst, src)
		return
	}
	tmp := make([]byte, len(src))
	copy(dst, src)
	for pass := 0; pass < 3; pass++ {
		boxPassH(dst, tmp, w, h, r)
		boxPassV(tmp, dst, w, h, r)
	}
}

func boxPassH(src, dst []byte, w, h, r int) {
	for y := 0; y < h; y++ {
		row := y * w * 4
		for x := 0; x < w; x++ {
			var sum [4]int
			n := 0
			for k := -r; k <= r; k++ {
				xx := x + k
				if xx < 0 || xx >= w {
					continue
				}
				i := row + xx*4
				sum[0] += int(src[i])
				sum[1] += int(src[i+1])
				sum[2] += int(src[i+2])
				sum[3] += int(src[i+3])
				n++
			}
			i := row + x*4
			dst[i] = byte(sum[0] / n)
			dst[i+1] = byte(sum[1] / n)
			dst[i+2] = byte(sum[2] / n)
			dst[i+3] = byte(sum[3] / n)
		}
	}
}

func boxPassV(src, dst []byte, w, h, r int) {
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			var sum [4]int
			n := 0
			for k := -r; k <= r; k++ {
				yy := y + k
				if yy < 0 || yy >= h {
					continue
				}
				i := (yy*w + x) * 4
				sum[0] += int(src[i])
				sum[1] += int(src[i+1])
				sum[2] += int(src[i+2])
				sum[3] += int(src[i+3])
				n++
			}
			i := (y*w + x) * 4
			dst[i] = byte(sum[0] / n)
			dst[i+1] = byte(sum[1] / n)
			dst[i+2] = byte(sum[2] / n)
			dst[i+3] = byte(sum[3] / n)
		}
	}
}

// vignette darkens toward the corners. radius is the unaffected center
// extent relative to the smaller dimension.
func vignette(src, dst []byte, w, h int, strength, radius float64) {
	cx := float64(w) / 2
	cy := float64(h) / 2
	minDim := math.Min(float64(w), float64(h))
	maxDist := math.Hypot(cx, cy) / minDim
	if maxDist <= radius {
		copy(dst, src)
		return
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dn := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) / minDim
			t := clamp01((dn - radius) / (maxDist - radius))
			f := 1 - strength*smooth(t)
			i := (y*w + x) * 4
			dst[i] = byte(float64(src[i]) * f)
			dst[i+1] = byte(float64(src[i+1]) * f)
			dst[i+2] = byte(float64(src[i+2]) * f)
			dst[i+3] = src[i+3]
		}
	}
}

// pixelate replaces each size-by-size block with its average.
func pixelate(src, dst []byte, w, h, size int) {
	if size < 2 {
		copy(dst, src)
		return
	}
	for by := 0; by < h; by += size {
		for bx := 0; bx < w; bx += size {
			var sum [4]int
			n := 0
			for y := by; y < by+size && y < h; y++ {
				for x := bx; x < bx+size && x < w; x++ {
					i := (y*w + x) * 4
					sum[0] += int(src[i])
					sum[1] += int(src[i+1])
					sum[2] += int(src[i+2])
					sum[3] += int(src[i+3])
					n++
				}
			}
			var avg [4]byte
			for c := range avg {
				avg[c] = byte(sum[c] / n)
			}
			for y := by; y < by+size && y < h; y++ {
				for x := bx; x < bx+size && x < w; x++ {
					copy(dst[(y*w+x)*4:(y*w+x)*4+4], avg[:])
				}
			}
		}
	}
}

// grain adds seeded monochrome noise to the color channels.
func grain(src, dst []byte, strength float64, seed int64) {
	state := uint64(seed)*0x9e3779b97f4a7c15 + 0x2545f4914f6cdd1d
	for i := 0; i < len(src); i += 4 {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		// Uniform in [-1, 1].
		n := (float64(state>>11)/float64(1<<53))*2 - 1
		off := n * strength * 255
		dst[i] = clampByte(float64(src[i]) + off)
		dst[i+1] = clampByte(float64(src[i+1]) + off)
		dst[i+2] = clampByte(float64(src[i+2]) + off)
		dst[i+3] = src[i+3]
	}
}

// colorMatrix applies a 4x5 row-major matrix with offsets in the fifth
// column, channels normalized to [0,1].
func colorMatrix(src, dst []byte, m [20]float64) {
	for i := 0; i < len(src); i += 4 {
		r := float64(src[i]) / 255
		g := float64(src[i+1]) / 255
		b := float64(src[i+2]) / 255
		a := float64(src[i+3]) / 255
		dst[i] = byteOf(m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4])
		dst[i+1] = byteOf(m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9])
		dst[i+2] = byteOf(m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14])
		dst[i+3] = byteOf(m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19])
	}
}

// sharpen is an unsharp mask against a small box blur.
func sharpen(src, dst []byte, w, h int, strength float64) {
	blurred := make([]byte, len(src))
	tmp := make([]byte, len(src))
	boxPassH(src, tmp, w, h, 1)
	boxPassV(tmp, blurred, w, h, 1)
	for i := range src {
		if i%4 == 3 {
			dst[i] = src[i]
			continue
		}
		v := float64(src[i]) + strength*(float64(src[i])-float64(blurred[i]))
		dst[i] = clampByte(v)
	}
}

func clampByte(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v + 0.5)
}
