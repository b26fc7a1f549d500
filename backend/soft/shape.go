package soft

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gogpu/compose"
)

// renderShape rasterizes a greymap: every channel carries the coverage
// value, so the result works both as a visible grey image and as the
// top input of a mask blend.
func (b *Backend) renderShape(s *compose.ShapeSpec, d *texture) error {
	w := float64(d.width)
	h := float64(d.height)
	minDim := math.Min(w, h)

	cx := s.CenterX * w
	cy := s.CenterY * h
	radius := s.Radius * minDim
	softness := s.Softness * minDim

	var sample func(x, y float64) float64
	switch s.Shape {
	case compose.ShapeCircle:
		sample = func(x, y float64) float64 {
			return coverage(math.Hypot(x-cx, y-cy)-radius, softness)
		}

	case compose.ShapeRect:
		hw := s.Width * w / 2
		hh := s.Height * h / 2
		cr := math.Min(s.CornerRadius*minDim, math.Min(hw, hh))
		sample = func(x, y float64) float64 {
			return coverage(roundedBoxDist(x-cx, y-cy, hw, hh, cr), softness)
		}

	case compose.ShapeBlob:
		phases := blobPhases(s.Seed, s.Detail)
		sample = func(x, y float64) float64 {
			dx := x - cx
			dy := y - cy
			theta := math.Atan2(dy, dx)
			r := radius * (1 + blobOffset(theta, s.Amplitude, phases))
			return coverage(math.Hypot(dx, dy)-r, softness)
		}

	case compose.ShapeNoise:
		cells := s.Detail
		sample = func(x, y float64) float64 {
			n := valueNoise(x/w*float64(cells), y/h*float64(cells), s.Seed)
			return clamp01(0.5 + (n-0.5)*s.Amplitude)
		}

	case compose.ShapeLinearGradient:
		sin, cos := math.Sincos(s.Angle)
		extent := radius
		sample = func(x, y float64) float64 {
			proj := (x-cx)*cos + (y-cy)*sin
			return clamp01(0.5 - proj/(2*extent))
		}

	case compose.ShapeRadialGradient:
		sample = func(x, y float64) float64 {
			return clamp01(1 - math.Hypot(x-cx, y-cy)/radius)
		}

	case compose.ShapeBoxGradient:
		hw := s.Width * w / 2
		hh := s.Height * h / 2
		cr := math.Min(s.CornerRadius*minDim, math.Min(hw, hh))
		falloff := softness
		if falloff <= 0 {
			falloff = radius
		}
		sample = func(x, y float64) float64 {
			dist := roundedBoxDist(x-cx, y-cy, hw, hh, cr)
			if dist <= 0 {
				return 1
			}
			return clamp01(1 - dist/falloff)
		}

	default:
		return fmt.Errorf("soft: shape %v: %w", s.Shape, compose.ErrUnknownShape)
	}

	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			v := sample(float64(x)+0.5, float64(y)+0.5)
			if s.Cutout {
				v = 1 - v
			}
			g := byteOf(v)
			i := d.offset(x, y)
			d.pix[i] = g
			d.pix[i+1] = g
			d.pix[i+2] = g
			d.pix[i+3] = g
		}
	}
	return nil
}

// coverage converts a signed edge distance into [0,1] coverage,
// feathered over softness. Zero softness gives a hard edge.
func coverage(dist, softness float64) float64 {
	if softness <= 0 {
		if dist <= 0 {
			return 1
		}
		return 0
	}
	return clamp01(0.5 - dist/softness)
}

// roundedBoxDist is the signed distance to a rounded box centered at
// the origin with half extents hw, hh and corner radius cr.
func roundedBoxDist(dx, dy, hw, hh, cr float64) float64 {
	qx := math.Abs(dx) - hw + cr
	qy := math.Abs(dy) - hh + cr
	outside := math.Hypot(math.Max(qx, 0), math.Max(qy, 0))
	inside := math.Min(math.Max(qx, qy), 0)
	return outside + inside - cr
}

// blobPhases draws one random phase per harmonic from the seed.
func blobPhases(seed int64, detail int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	phases := make([]float64, detail)
	for i := range phases {
		phases[i] = rng.Float64() * 2 * math.Pi
	}
	return phases
}

// blobOffset sums the harmonics at angle theta. Higher harmonics decay
// so the silhouette stays smooth.
func blobOffset(theta, amplitude float64, phases []float64) float64 {
	var off float64
	for i, phase := range phases {
		k := float64(i + 2)
		off += math.Sin(theta*k+phase) / k
	}
	return off * amplitude
}

// valueNoise is seeded bilinear value noise over an integer lattice.
func valueNoise(x, y float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	tx := smooth(x - x0)
	ty := smooth(y - y0)

	v00 := latticeValue(int64(x0), int64(y0), seed)
	v10 := latticeValue(int64(x0)+1, int64(y0), seed)
	v01 := latticeValue(int64(x0), int64(y0)+1, seed)
	v11 := latticeValue(int64(x0)+1, int64(y0)+1, seed)

	top := v00 + (v10-v00)*tx
	bot := v01 + (v11-v01)*tx
	return top + (bot-top)*ty
}

// latticeValue hashes a lattice point into [0,1).
func latticeValue(x, y, seed int64) float64 {
	h := uint64(x)*0x9e3779b97f4a7c15 ^ uint64(y)*0xbf58476d1ce4e5b9 ^ uint64(seed)
	h ^= h >> 30
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return float64(h>>11) / float64(1<<53)
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
