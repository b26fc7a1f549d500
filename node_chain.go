package compose

import "fmt"

// EffectChainNode applies an ordered effect list to an upstream node.
//
// Unknown ids and effects whose specification resolves to a no-op are
// skipped with a logged warning; the chain keeps going. Intermediate
// passes ping-pong through the scratch pool; the last valid effect
// writes directly into the owned texture, saving one copy. An empty or
// fully skipped chain degrades to an identity copy.
type EffectChainNode struct {
	id       string
	owner    textureOwner
	input    TextureNode
	effects  []EffectConfig
	registry EffectRegistry
}

// NewEffectChainNode creates an effect-chain node. An empty effect
// list is valid (identity transform). Effect ids are not validated
// here: chain entries are skippable by design, unlike the
// single-effect node.
func NewEffectChainNode(id string, input TextureNode, effects []EffectConfig, reg EffectRegistry) (*EffectChainNode, error) {
	if input == nil {
		return nil, fmt.Errorf("effect chain %q: %w", id, ErrNilInput)
	}
	return &EffectChainNode{
		id:       id,
		owner:    newOwner(),
		input:    input,
		effects:  effects,
		registry: reg,
	}, nil
}

// ID implements Node.
func (n *EffectChainNode) ID() string { return n.id }

// Kind implements Node.
func (n *EffectChainNode) Kind() NodeKind { return KindEffectChain }

// IsDirty implements Node.
func (n *EffectChainNode) IsDirty() bool { return n.owner.dirty || n.input.IsDirty() }

// Invalidate implements Node.
func (n *EffectChainNode) Invalidate() { n.owner.Invalidate() }

// Inputs implements Node.
func (n *EffectChainNode) Inputs() []TextureNode { return []TextureNode{n.input} }

// Dispose implements Node.
func (n *EffectChainNode) Dispose() { n.owner.Dispose() }

// OutputTexture implements TextureNode.
func (n *EffectChainNode) OutputTexture() Texture { return n.owner.OutputTexture() }

// SetEffects replaces the effect list and invalidates the cached
// texture.
func (n *EffectChainNode) SetEffects(effects []EffectConfig) {
	n.effects = effects
	n.owner.Invalidate()
}

// compile resolves the effect list into the specs that will actually
// run, skipping unknown ids and no-ops with a warning each.
func (n *EffectChainNode) compile(ctx *NodeContext) []*EffectSpec {
	specs := make([]*EffectSpec, 0, len(n.effects))
	for _, e := range n.effects {
		if n.registry == nil || !n.registry.Recognized(e.ID) {
			Logger().Warn("skipping unknown effect in chain", "chain", n.id, "effect", e.ID)
			continue
		}
		spec, err := n.registry.Compile(e.ID, e.Params, ctx.Viewport, ctx.Scale)
		if err != nil {
			Logger().Warn("skipping uncompilable effect in chain", "chain", n.id, "effect", e.ID, "err", err)
			continue
		}
		if spec == nil {
			Logger().Warn("skipping no-op effect in chain", "chain", n.id, "effect", e.ID)
			continue
		}
		specs = append(specs, spec)
	}
	return specs
}

// Output implements TextureNode.
func (n *EffectChainNode) Output(ctx *NodeContext) (TextureHandle, error) {
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

	specs := n.compile(ctx)
	if len(specs) == 0 {
		if err := ctx.Backend.CopyTexture(in.Texture, tex); err != nil {
			return TextureHandle{}, err
		}
		n.owner.dirty = false
		return ownedHandle(tex), nil
	}

	cur := in
	for i, spec := range specs {
		if i == len(specs)-1 {
			// Last valid effect writes straight into the owned texture,
			// eliminating one extra copy.
			if err := ctx.Backend.ApplyEffect(spec, cur.Texture, tex); err != nil {
				return TextureHandle{}, err
			}
			ctx.Pool.Release(cur)
			break
		}
		slot, err := ctx.Pool.Acquire()
		if err != nil {
			return TextureHandle{}, err
		}
		if err := ctx.Backend.ApplyEffect(spec, cur.Texture, slot.Texture); err != nil {
			return TextureHandle{}, err
		}
		ctx.Pool.Release(cur)
		cur = slot
	}

	n.owner.dirty = false
	return ownedHandle(tex), nil
}

var _ TextureNode = (*EffectChainNode)(nil)
