package compose

import "image"

// SceneConfig is the root of a declarative scene: an ordered list of
// layers, bottom to top. The engine consumes the tree as-is; schema
// parsing and validation happen upstream.
type SceneConfig struct {
	Layers []LayerConfig
}

// LayerConfig is one node of the scene-configuration tree. The set of
// implementations is closed: GroupLayer, SurfaceLayer, TextLayer,
// ImageLayer and ProcessorLayer.
type LayerConfig interface {
	isLayer()
}

// GroupLayer nests child layers and optionally masks the combined
// result. Children stack bottom to top, like root layers.
type GroupLayer struct {
	// Name tags the group's nodes for debugging; optional.
	Name string

	Children []LayerConfig

	// Mask, when set, clips the composited group through a greymap.
	Mask *MaskConfig
}

func (GroupLayer) isLayer() {}

// SurfaceLayer is a leaf drawing a procedural surface pattern.
type SurfaceLayer struct {
	Name    string
	Surface SurfaceConfig
}

func (SurfaceLayer) isLayer() {}

// TextLayer is a leaf drawing rasterized text.
type TextLayer struct {
	Name string
	Text TextConfig
}

func (TextLayer) isLayer() {}

// ImageLayer is a leaf drawing a user-supplied image scaled to the
// viewport. It renders through the image surface pattern, so it
// requires a backend with image sampling support.
type ImageLayer struct {
	Name  string
	Image image.Image
}

func (ImageLayer) isLayer() {}

// ProcessorLayer attaches an ordered list of modifiers to the nearest
// preceding sibling subtree. A processor with no valid preceding
// target is omitted from the graph with a logged warning; this is a
// deliberate ignore-malformed-attachment policy, not an error.
type ProcessorLayer struct {
	Name      string
	Modifiers []Modifier
}

func (ProcessorLayer) isLayer() {}

// Modifier is one entry of a processor: either an effect or a mask.
// The set of implementations is closed.
type Modifier interface {
	isModifier()
}

// EffectModifier applies one post-effect. Consecutive effect modifiers
// are combined into a single effect-chain node, preserving order.
type EffectModifier struct {
	Effect EffectConfig
}

func (EffectModifier) isModifier() {}

// MaskModifier clips the target through a greymap.
type MaskModifier struct {
	Mask MaskConfig
}

func (MaskModifier) isModifier() {}

// EffectConfig is one entry of an effect chain: a string effect id
// resolved through the effect registry, plus its parameters. Order is
// significant within a chain; each effect consumes the previous
// effect's output.
type EffectConfig struct {
	ID     string
	Params EffectParams
}
