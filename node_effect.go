package compose

import "fmt"

// EffectNode applies a single post-effect to an upstream node's output.
//
// The effect id is validated at construction: an unrecognized id can
// never produce a meaningful pipeline, so NewEffectNode fails fast
// instead of deferring the error to render time. At render time a nil
// specification from the registry (effect disabled, or parameters
// resolving to a no-op) degrades to an identity copy.
type EffectNode struct {
	id       string
	owner    textureOwner
	input    TextureNode
	effectID string
	params   EffectParams
	registry EffectRegistry
}

// NewEffectNode creates a single-effect node. It returns
// ErrUnknownEffect (wrapped) when the registry does not recognize
// effectID, and ErrNilInput when input is nil.
func NewEffectNode(id string, input TextureNode, effectID string, params EffectParams, reg EffectRegistry) (*EffectNode, error) {
	if input == nil {
		return nil, fmt.Errorf("effect node %q: %w", id, ErrNilInput)
	}
	if reg == nil || !reg.Recognized(effectID) {
		return nil, fmt.Errorf("effect node %q: %w: %q", id, ErrUnknownEffect, effectID)
	}
	return &EffectNode{
		id:       id,
		owner:    newOwner(),
		input:    input,
		effectID: effectID,
		params:   params,
		registry: reg,
	}, nil
}

// ID implements Node.
func (n *EffectNode) ID() string { return n.id }

// Kind implements Node.
func (n *EffectNode) Kind() NodeKind { return KindEffect }

// IsDirty implements Node. Dirtiness propagates from the input: the
// node is dirty when its own flag or the input's flag is set.
func (n *EffectNode) IsDirty() bool { return n.owner.dirty || n.input.IsDirty() }

// Invalidate implements Node.
func (n *EffectNode) Invalidate() { n.owner.Invalidate() }

// Inputs implements Node.
func (n *EffectNode) Inputs() []TextureNode { return []TextureNode{n.input} }

// Dispose implements Node. Only the node's own texture is released;
// the input node belongs to the graph.
func (n *EffectNode) Dispose() { n.owner.Dispose() }

// OutputTexture implements TextureNode.
func (n *EffectNode) OutputTexture() Texture { return n.owner.OutputTexture() }

// SetParams replaces the effect parameters and invalidates the cached
// texture.
func (n *EffectNode) SetParams(params EffectParams) {
	n.params = params
	n.owner.Invalidate()
}

// Output implements TextureNode.
func (n *EffectNode) Output(ctx *NodeContext) (TextureHandle, error) {
	tex, err := n.owner.ensure(ctx)
	if err != nil {
		return TextureHandle{}, err
	}
	if !n.IsDirty() {
		return ownedHandle(tex), nil
	}

	in, err := n.input.Output(ctx)
	if err != nil {
		return TextureHandle{}, err
	}

	spec, err := n.registry.Compile(n.effectID, n.params, ctx.Viewport, ctx.Scale)
	if err != nil {
		return TextureHandle{}, fmt.Errorf("effect node %q: %w", n.id, err)
	}
	if spec == nil {
		// Disabled or no-op parameters: passthrough copy.
		err = ctx.Backend.CopyTexture(in.Texture, tex)
	} else {
		err = ctx.Backend.ApplyEffect(spec, in.Texture, tex)
	}
	if err != nil {
		return TextureHandle{}, err
	}
	n.owner.dirty = false
	return ownedHandle(tex), nil
}

var _ TextureNode = (*EffectNode)(nil)
