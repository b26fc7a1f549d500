package compose

import "fmt"

// ShapeKind identifies the shape of a mask greymap.
type ShapeKind uint8

// Shape kind constants.
const (
	// ShapeCircle is a disc, optionally feathered.
	ShapeCircle ShapeKind = iota

	// ShapeRect is an axis-aligned rectangle with optional rounded
	// corners.
	ShapeRect

	// ShapeBlob is an organic disc whose radius is perturbed by seeded
	// harmonics.
	ShapeBlob

	// ShapeNoise is seeded value noise thresholded into a greymap.
	ShapeNoise

	// ShapeLinearGradient ramps from opaque to transparent along Angle.
	ShapeLinearGradient

	// ShapeRadialGradient ramps from opaque at the center to transparent
	// at Radius.
	ShapeRadialGradient

	// ShapeBoxGradient ramps from opaque inside the box to transparent
	// at Softness outside it.
	ShapeBoxGradient
)

// String returns a human-readable name for the shape kind.
func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "Circle"
	case ShapeRect:
		return "Rect"
	case ShapeBlob:
		return "Blob"
	case ShapeNoise:
		return "Noise"
	case ShapeLinearGradient:
		return "LinearGradient"
	case ShapeRadialGradient:
		return "RadialGradient"
	case ShapeBoxGradient:
		return "BoxGradient"
	default:
		return "Unknown"
	}
}

// valid reports whether the kind is one of the declared shapes.
func (k ShapeKind) valid() bool {
	return k <= ShapeBoxGradient
}

// MaskConfig describes one mask greymap: a shape kind, its geometry,
// and the shared cutout (invert) flag. Coordinates are normalized so a
// mask is independent of viewport resolution: centers in [0,1] of each
// viewport dimension, radii relative to the smaller dimension.
type MaskConfig struct {
	Shape ShapeKind

	// Cutout inverts the greymap: the shape becomes the transparent
	// region instead of the opaque one.
	Cutout bool

	// CenterX and CenterY position the shape, normalized to [0,1].
	// The zero value is mapped to the viewport center.
	CenterX float64
	CenterY float64

	// Radius for circle, blob, and radial gradient, relative to the
	// smaller viewport dimension. Zero selects 0.5.
	Radius float64

	// Width and Height for rectangle and box gradient, normalized to
	// the viewport dimensions. Zero selects 0.5.
	Width  float64
	Height float64

	// CornerRadius rounds rectangle corners, relative to the smaller
	// viewport dimension.
	CornerRadius float64

	// Softness feathers the shape edge, relative to the smaller
	// viewport dimension.
	Softness float64

	// Angle orients linear gradients, in radians.
	Angle float64

	// Amplitude is the blob perturbation strength relative to Radius,
	// and the noise contrast. Zero selects a shape default.
	Amplitude float64

	// Detail is the blob harmonic count or noise cell count. Zero
	// selects a shape default.
	Detail int

	// Seed selects the blob/noise variant.
	Seed int64
}

// spec builds the greymap draw specification. An unknown shape kind is
// fatal, same policy as surface patterns.
func (c MaskConfig) spec() (*ShapeSpec, error) {
	if !c.Shape.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, c.Shape)
	}

	s := &ShapeSpec{
		Shape:        c.Shape,
		Cutout:       c.Cutout,
		CenterX:      c.CenterX,
		CenterY:      c.CenterY,
		Radius:       c.Radius,
		Width:        c.Width,
		Height:       c.Height,
		CornerRadius: c.CornerRadius,
		Softness:     c.Softness,
		Angle:        c.Angle,
		Amplitude:    c.Amplitude,
		Detail:       c.Detail,
		Seed:         c.Seed,
	}

	if s.CenterX == 0 {
		s.CenterX = 0.5
	}
	if s.CenterY == 0 {
		s.CenterY = 0.5
	}
	if s.Radius <= 0 {
		s.Radius = 0.5
	}
	if s.Width <= 0 {
		s.Width = 0.5
	}
	if s.Height <= 0 {
		s.Height = 0.5
	}
	if s.Amplitude <= 0 {
		switch c.Shape {
		case ShapeBlob:
			s.Amplitude = 0.15
		case ShapeNoise:
			s.Amplitude = 1.0
		}
	}
	if s.Detail <= 0 {
		switch c.Shape {
		case ShapeBlob:
			s.Detail = 3
		case ShapeNoise:
			s.Detail = 8
		}
	}
	return s, nil
}
