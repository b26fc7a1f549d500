// Package effect provides the built-in post-effect registry: a closed
// set of effect kinds, each compiling string-keyed parameters into a
// backend-consumable specification.
//
// The registry is deliberately closed. Effects are identified by a Kind
// enum rather than open string dispatch; unknown ids fail at lookup
// instead of silently producing a pass-through.
package effect

import (
	"fmt"

	"github.com/gogpu/compose"
)

// Kind identifies one built-in effect.
type Kind uint8

// Effect kinds.
const (
	// Blur applies a Gaussian blur.
	Blur Kind = iota

	// Vignette darkens toward the viewport edges.
	Vignette

	// Pixelate averages square pixel blocks.
	Pixelate

	// Grain adds seeded monochrome noise.
	Grain

	// ColorMatrix adjusts saturation, brightness and contrast through a
	// 4x5 color matrix.
	ColorMatrix

	// Sharpen applies an unsharp kernel.
	Sharpen

	kindCount
)

// String returns the effect's string id, the one used in scene
// configurations.
func (k Kind) String() string {
	switch k {
	case Blur:
		return "blur"
	case Vignette:
		return "vignette"
	case Pixelate:
		return "pixelate"
	case Grain:
		return "grain"
	case ColorMatrix:
		return "color-matrix"
	case Sharpen:
		return "sharpen"
	default:
		return "unknown"
	}
}

// ParseKind resolves a string id to its Kind.
func ParseKind(id string) (Kind, bool) {
	for k := Kind(0); k < kindCount; k++ {
		if k.String() == id {
			return k, true
		}
	}
	return 0, false
}

// compiler turns parameters into a concrete specification, or nil when
// the parameters resolve to a no-op.
type compiler func(p compose.EffectParams, vp compose.Viewport, scale float64) *compose.EffectSpec

// Registry is the canonical closed-map effect registry.
type Registry struct {
	compilers map[Kind]compiler
}

// NewRegistry returns a registry with every built-in effect.
func NewRegistry() *Registry {
	return &Registry{compilers: map[Kind]compiler{
		Blur:        compileBlur,
		Vignette:    compileVignette,
		Pixelate:    compilePixelate,
		Grain:       compileGrain,
		ColorMatrix: compileColorMatrix,
		Sharpen:     compileSharpen,
	}}
}

// Recognized reports whether the id names a built-in effect.
func (r *Registry) Recognized(id string) bool {
	k, ok := ParseKind(id)
	if !ok {
		return false
	}
	_, ok = r.compilers[k]
	return ok
}

// Compile builds the specification for the given id. A nil spec with a
// nil error means the parameters resolve to a no-op.
func (r *Registry) Compile(id string, params compose.EffectParams, vp compose.Viewport, scale float64) (*compose.EffectSpec, error) {
	k, ok := ParseKind(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", compose.ErrUnknownEffect, id)
	}
	c, ok := r.compilers[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", compose.ErrUnknownEffect, id)
	}
	if scale <= 0 {
		scale = 1
	}
	return c(params, vp, scale), nil
}

var _ compose.EffectRegistry = (*Registry)(nil)
