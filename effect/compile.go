package effect

import "github.com/gogpu/compose"

// Parameter defaults. Pixel-based defaults are sized for a 1080p
// viewport before scaling.
const (
	defaultBlurRadius       = 8.0
	defaultVignetteStrength = 0.5
	defaultVignetteRadius   = 0.75
	defaultPixelateSize     = 8.0
	defaultGrainStrength    = 0.15
	defaultSharpenStrength  = 0.5
)

func compileBlur(p compose.EffectParams, _ compose.Viewport, scale float64) *compose.EffectSpec {
	radius := p.Get("radius", defaultBlurRadius) * scale
	// Sub-half-pixel blurs are indistinguishable from identity.
	if radius < 0.5 {
		return nil
	}
	return &compose.EffectSpec{Op: compose.EffectBlur, Radius: radius}
}

func compileVignette(p compose.EffectParams, _ compose.Viewport, _ float64) *compose.EffectSpec {
	strength := clamp01(p.Get("strength", defaultVignetteStrength))
	if strength == 0 {
		return nil
	}
	// Radius is relative to the smaller viewport dimension, so it is
	// resolution independent and unscaled.
	radius := p.Get("radius", defaultVignetteRadius)
	if radius < 0 {
		radius = 0
	}
	return &compose.EffectSpec{Op: compose.EffectVignette, Strength: strength, Radius: radius}
}

func compilePixelate(p compose.EffectParams, _ compose.Viewport, scale float64) *compose.EffectSpec {
	size := p.Get("size", defaultPixelateSize) * scale
	if size <= 1 {
		return nil
	}
	return &compose.EffectSpec{Op: compose.EffectPixelate, Size: size}
}

func compileGrain(p compose.EffectParams, _ compose.Viewport, _ float64) *compose.EffectSpec {
	strength := clamp01(p.Get("strength", defaultGrainStrength))
	if strength == 0 {
		return nil
	}
	return &compose.EffectSpec{
		Op:       compose.EffectGrain,
		Strength: strength,
		Seed:     int64(p.Get("seed", 0)),
	}
}

// compileColorMatrix builds a 4x5 color matrix from saturation,
// brightness and contrast parameters. Saturation uses the Rec. 709 luma
// weights; contrast pivots around mid-gray; brightness is an additive
// offset. All three at their defaults compile to a no-op.
func compileColorMatrix(p compose.EffectParams, _ compose.Viewport, _ float64) *compose.EffectSpec {
	sat := p.Get("saturation", 1)
	bright := p.Get("brightness", 0)
	contrast := p.Get("contrast", 1)
	if sat == 1 && bright == 0 && contrast == 1 {
		return nil
	}

	const lr, lg, lb = 0.2126, 0.7152, 0.0722
	inv := 1 - sat

	var m [20]float64
	m[0] = lr*inv + sat
	m[1] = lg * inv
	m[2] = lb * inv
	m[5] = lr * inv
	m[6] = lg*inv + sat
	m[7] = lb * inv
	m[10] = lr * inv
	m[11] = lg * inv
	m[12] = lb*inv + sat
	m[18] = 1

	offset := (1-contrast)/2 + bright
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m[row*5+col] *= contrast
		}
		m[row*5+4] = offset
	}
	return &compose.EffectSpec{Op: compose.EffectColorMatrix, Matrix: m}
}

func compileSharpen(p compose.EffectParams, _ compose.Viewport, _ float64) *compose.EffectSpec {
	strength := clamp01(p.Get("strength", defaultSharpenStrength))
	if strength == 0 {
		return nil
	}
	return &compose.EffectSpec{Op: compose.EffectSharpen, Strength: strength}
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
