package compose

// Palette maps named color keys to concrete colors. Palettes are
// resolved outside this package (semantic and primitive palette
// derivation is a collaborator concern); the engine only looks keys up.
type Palette map[string]RGBA

// Resolve returns the color for a key. Unknown keys resolve to opaque
// black with a logged warning so a typo in a scene config degrades
// visibly instead of failing the whole execution.
func (p Palette) Resolve(key string) RGBA {
	if c, ok := p[key]; ok {
		return c
	}
	Logger().Warn("palette key not found", "key", key)
	return Black
}

// Has reports whether the palette contains the key.
func (p Palette) Has(key string) bool {
	_, ok := p[key]
	return ok
}
