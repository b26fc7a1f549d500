package compose

// NodeKind identifies the concrete type of a graph node. The set is
// closed; dispatch over kinds uses exhaustive switches rather than
// open-ended virtual hierarchies.
type NodeKind uint8

// Node kind constants.
const (
	// KindSurface renders a procedural surface pattern.
	KindSurface NodeKind = iota

	// KindMask renders a greymap from a shape configuration.
	KindMask

	// KindText rasterizes a text layer offscreen and uploads it.
	KindText

	// KindEffect applies one post-effect to an upstream node.
	KindEffect

	// KindEffectChain applies an ordered effect list to an upstream
	// node, ping-ponging through the scratch pool.
	KindEffectChain

	// KindMaskComposite blends a surface with a greymap.
	KindMaskComposite

	// KindOverlay stacks N layers with pairwise alpha blends.
	KindOverlay

	// KindOutput composites the final texture to the visible canvas.
	KindOutput
)

// String returns a human-readable name for the node kind.
func (k NodeKind) String() string {
	switch k {
	case KindSurface:
		return "Surface"
	case KindMask:
		return "Mask"
	case KindText:
		return "Text"
	case KindEffect:
		return "Effect"
	case KindEffectChain:
		return "EffectChain"
	case KindMaskComposite:
		return "MaskComposite"
	case KindOverlay:
		return "Overlay"
	case KindOutput:
		return "Output"
	default:
		return "Unknown"
	}
}

// Node is the common contract of every graph node.
//
// Node identifiers are stable for the lifetime of one graph; the
// builder never reuses an identifier for two different logical nodes.
type Node interface {
	// ID returns the node's stable identifier within its graph.
	ID() string

	// Kind returns the node's concrete kind.
	Kind() NodeKind

	// IsDirty reports whether the node must re-render before its output
	// can be reused. A node wrapping other nodes is transitively dirty
	// if it or any of its inputs is dirty.
	IsDirty() bool

	// Invalidate unconditionally marks the node dirty. Used when an
	// input parameter changes.
	Invalidate()

	// Inputs returns the upstream texture nodes, in input order.
	// Leaf render nodes return nil.
	Inputs() []TextureNode

	// Dispose releases the node's owned resources. A disposed node may
	// be reused; it will fully re-render first.
	Dispose()
}

// TextureNode is a node that produces a texture on demand: every
// render and compositor node. The output node is the only Node that is
// not a TextureNode.
type TextureNode interface {
	Node

	// Output returns the node's texture, rendering it first if the node
	// is dirty. The handle is valid for the current execution only.
	Output(ctx *NodeContext) (TextureHandle, error)

	// OutputTexture returns the cached owned texture, or nil if the
	// node has not rendered into an owned texture.
	OutputTexture() Texture
}

// IsRenderNode reports whether the node produces a texture without
// compositing multiple inputs: surface, mask, text and single-effect
// nodes.
func IsRenderNode(n Node) bool {
	switch n.Kind() {
	case KindSurface, KindMask, KindText, KindEffect:
		return true
	default:
		return false
	}
}

// IsCompositorNode reports whether the node combines one or more input
// node outputs into one texture.
func IsCompositorNode(n Node) bool {
	switch n.Kind() {
	case KindEffectChain, KindMaskComposite, KindOverlay:
		return true
	default:
		return false
	}
}

// IsOutputNode reports whether the node is the terminal canvas writer.
func IsOutputNode(n Node) bool {
	return n.Kind() == KindOutput
}

// anyDirty reports whether any of the nodes is dirty.
func anyDirty(nodes []TextureNode) bool {
	for _, n := range nodes {
		if n.IsDirty() {
			return true
		}
	}
	return false
}
