package compose

import "image"

// DrawSpec is a draw specification a backend can render from nothing:
// either a surface pattern (SurfaceSpec) or a mask greymap (ShapeSpec).
// The set of implementations is closed; backends dispatch with an
// exhaustive type switch and reject anything else.
type DrawSpec interface {
	isDrawSpec()
}

// SurfaceSpec describes a surface pattern with both palette color keys
// already resolved to concrete colors. All lengths are in pixels at
// viewport resolution; Scale has already been applied by the node that
// built the spec.
type SurfaceSpec struct {
	Pattern PatternKind

	// Primary and Secondary are the resolved pattern colors.
	// Primary fills the figure (stripe, dot, line), Secondary the ground.
	Primary   RGBA
	Secondary RGBA

	// Size is the pattern cell size in pixels (stripe period, grid cell,
	// dot pitch, checker square, wave length, ring pitch).
	Size float64

	// Thickness is the figure thickness in pixels (stripe width, grid
	// line width, dot diameter, ring width).
	Thickness float64

	// Angle rotates the pattern coordinate frame, in radians.
	Angle float64

	// Image is the source for PatternImage and nil otherwise.
	Image image.Image
}

func (*SurfaceSpec) isDrawSpec() {}

// ShapeSpec describes a single-channel greymap: 0 = fully transparent
// (cutout region), 1 = fully opaque. Positions and radii are normalized
// to the viewport (center coordinates in [0,1] of width/height, radii
// relative to the smaller viewport dimension) so masks are resolution
// independent.
type ShapeSpec struct {
	Shape ShapeKind

	// Cutout inverts the greymap.
	Cutout bool

	// CenterX and CenterY position the shape, normalized to [0,1].
	CenterX float64
	CenterY float64

	// Radius is the circle/blob radius or gradient extent, relative to
	// the smaller viewport dimension.
	Radius float64

	// Width and Height are the rectangle/box extents, normalized to the
	// viewport dimensions.
	Width  float64
	Height float64

	// CornerRadius rounds rectangle corners, relative to the smaller
	// viewport dimension.
	CornerRadius float64

	// Softness feathers the shape edge, relative to the smaller viewport
	// dimension. Zero produces a hard edge.
	Softness float64

	// Angle orients linear gradients, in radians.
	Angle float64

	// Amplitude is the blob perturbation strength relative to Radius,
	// and the noise contrast for ShapeNoise.
	Amplitude float64

	// Detail is the blob harmonic count or noise cell count.
	Detail int

	// Seed selects the blob/noise variant.
	Seed int64
}

func (*ShapeSpec) isDrawSpec() {}

// EffectOp identifies a post-effect operation a backend can apply.
// The set is closed; backends dispatch with an exhaustive switch.
type EffectOp uint8

// Effect operation constants.
const (
	// EffectBlur is a Gaussian blur of Radius pixels.
	EffectBlur EffectOp = iota

	// EffectVignette darkens toward the edges; Strength in [0,1],
	// Radius is the unaffected center extent relative to the smaller
	// viewport dimension.
	EffectVignette

	// EffectPixelate averages Size-by-Size pixel blocks.
	EffectPixelate

	// EffectGrain adds seeded monochrome noise of Strength in [0,1].
	EffectGrain

	// EffectColorMatrix applies a 4x5 row-major color matrix
	// (offsets in elements 4, 9, 14, 19).
	EffectColorMatrix

	// EffectSharpen applies an unsharp kernel of Strength in [0,1].
	EffectSharpen
)

// String returns a human-readable name for the effect operation.
func (op EffectOp) String() string {
	switch op {
	case EffectBlur:
		return "Blur"
	case EffectVignette:
		return "Vignette"
	case EffectPixelate:
		return "Pixelate"
	case EffectGrain:
		return "Grain"
	case EffectColorMatrix:
		return "ColorMatrix"
	case EffectSharpen:
		return "Sharpen"
	default:
		return "Unknown"
	}
}

// EffectSpec is a concrete, backend-consumable effect description.
// Effect strategies (see the effect package) compile id + parameters
// into an EffectSpec, or into nil when the parameters resolve to a
// no-op. All pixel-based fields are pre-scaled for the viewport.
type EffectSpec struct {
	Op       EffectOp
	Radius   float64
	Strength float64
	Size     float64
	Seed     int64
	Matrix   [20]float64
}

// BlendMode selects how Blend combines its two inputs.
type BlendMode uint8

// Blend mode constants.
const (
	// BlendAlpha composites top over bottom with standard alpha blending.
	BlendAlpha BlendMode = iota

	// BlendMask treats top as a greymap modulating bottom's alpha:
	// greymap 0 cuts the pixel out, 1 leaves it opaque.
	BlendMask
)

// String returns a human-readable name for the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendAlpha:
		return "Alpha"
	case BlendMask:
		return "Mask"
	default:
		return "Unknown"
	}
}

// BlendSpec describes a dual-input blend operation.
type BlendSpec struct {
	Mode BlendMode

	// Opacity scales the top input's contribution, in [0,1].
	Opacity float64
}

// EffectParams carries the numeric parameters of one effect-chain
// entry, keyed by parameter name. Missing keys fall back to the
// effect's defaults.
type EffectParams map[string]float64

// Get returns the named parameter or def when absent.
func (p EffectParams) Get(name string, def float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return def
}

// EffectRegistry resolves effect ids to concrete effect specifications.
// It is a collaborator contract: the effect package provides the
// canonical closed-map implementation.
type EffectRegistry interface {
	// Recognized reports whether the id names a known effect, allowing
	// the single-effect node to fail fast at construction.
	Recognized(id string) bool

	// Compile builds the effect specification for the given parameters,
	// viewport and scale factor. A nil spec with a nil error means the
	// effect is disabled or its parameters resolve to a no-op; callers
	// substitute an identity copy. A non-nil error means the id is not
	// recognized.
	Compile(id string, params EffectParams, vp Viewport, scale float64) (*EffectSpec, error)
}
