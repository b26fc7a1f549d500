package compose

import (
	"fmt"
	"image"
)

// PatternKind identifies the pattern of a surface layer.
type PatternKind uint8

// Pattern kind constants.
const (
	// PatternSolid fills the surface with the primary color.
	PatternSolid PatternKind = iota

	// PatternStripes draws parallel bands of the primary color over the
	// secondary color.
	PatternStripes

	// PatternGrid draws horizontal and vertical lines of the primary
	// color over the secondary color.
	PatternGrid

	// PatternDots draws a regular lattice of primary-colored discs.
	PatternDots

	// PatternChecker alternates primary and secondary squares.
	PatternChecker

	// PatternWaves draws sinusoidal bands of the primary color.
	PatternWaves

	// PatternRings draws concentric primary-colored rings from the
	// surface center.
	PatternRings

	// PatternImage samples a user-supplied image scaled to the viewport.
	PatternImage
)

// String returns a human-readable name for the pattern kind.
func (k PatternKind) String() string {
	switch k {
	case PatternSolid:
		return "Solid"
	case PatternStripes:
		return "Stripes"
	case PatternGrid:
		return "Grid"
	case PatternDots:
		return "Dots"
	case PatternChecker:
		return "Checker"
	case PatternWaves:
		return "Waves"
	case PatternRings:
		return "Rings"
	case PatternImage:
		return "Image"
	default:
		return "Unknown"
	}
}

// valid reports whether the kind is one of the declared patterns.
func (k PatternKind) valid() bool {
	return k <= PatternImage
}

// SurfaceConfig describes one surface layer: a pattern kind, its
// geometry, and two palette color keys resolved at render time.
type SurfaceConfig struct {
	Pattern PatternKind

	// Primary and Secondary are palette keys for the two pattern colors.
	Primary   string
	Secondary string

	// Size is the pattern cell size in pixels (stripe period, grid cell,
	// dot pitch, checker square, wave length, ring pitch). Zero selects
	// a pattern default.
	Size float64

	// Thickness is the figure thickness in pixels. Zero selects a
	// pattern default.
	Thickness float64

	// Angle rotates the pattern coordinate frame, in radians.
	Angle float64

	// Image is the source for PatternImage and ignored otherwise.
	Image image.Image
}

// defaults per pattern; sized for a 1080p viewport before scaling.
const (
	defaultPatternSize      = 48.0
	defaultPatternThickness = 8.0
)

// spec resolves the configuration against the palette into a
// backend-consumable draw specification. An unknown pattern kind is
// fatal: there is no sensible fallback pattern.
func (c SurfaceConfig) spec(pal Palette, scale float64) (*SurfaceSpec, error) {
	if !c.Pattern.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPattern, c.Pattern)
	}
	if c.Pattern == PatternImage && c.Image == nil {
		return nil, fmt.Errorf("%w: image pattern without image", ErrUnknownPattern)
	}

	size := c.Size
	if size <= 0 {
		size = defaultPatternSize
	}
	thickness := c.Thickness
	if thickness <= 0 {
		thickness = defaultPatternThickness
	}

	return &SurfaceSpec{
		Pattern:   c.Pattern,
		Primary:   pal.Resolve(c.Primary),
		Secondary: pal.Resolve(c.Secondary),
		Size:      size * scale,
		Thickness: thickness * scale,
		Angle:     c.Angle,
		Image:     c.Image,
	}, nil
}
