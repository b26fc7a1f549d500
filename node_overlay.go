package compose

import "fmt"

// OverlayNode stacks N layer nodes bottom-to-top with N-1 sequential
// pairwise alpha blends.
//
// With exactly one layer the node returns that layer's texture
// unchanged and issues no blend call. An earlier sibling
// implementation discarded every layer but the last instead of
// blending; this node is the blending variant, and the divergence is
// pinned by TestOverlayNodeBlendsLowerLayers rather than silently
// resolved.
type OverlayNode struct {
	id     string
	owner  textureOwner
	layers []TextureNode
}

// NewOverlayNode creates an overlay-composite node over the given
// layers, bottom to top. Zero layers is a construction error.
func NewOverlayNode(id string, layers []TextureNode) (*OverlayNode, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("overlay %q: %w", id, ErrNoLayers)
	}
	for _, l := range layers {
		if l == nil {
			return nil, fmt.Errorf("overlay %q: %w", id, ErrNilInput)
		}
	}
	return &OverlayNode{id: id, owner: newOwner(), layers: layers}, nil
}

// ID implements Node.
func (n *OverlayNode) ID() string { return n.id }

// Kind implements Node.
func (n *OverlayNode) Kind() NodeKind { return KindOverlay }

// IsDirty implements Node.
func (n *OverlayNode) IsDirty() bool { return n.owner.dirty || anyDirty(n.layers) }

// Invalidate implements Node.
func (n *OverlayNode) Invalidate() { n.owner.Invalidate() }

// Inputs implements Node.
func (n *OverlayNode) Inputs() []TextureNode { return n.layers }

// Dispose implements Node.
func (n *OverlayNode) Dispose() { n.owner.Dispose() }

// OutputTexture implements TextureNode. Nil in the single-layer case:
// the node passes its layer's texture through without owning one.
func (n *OverlayNode) OutputTexture() Texture { return n.owner.OutputTexture() }

// Output implements TextureNode.
func (n *OverlayNode) Output(ctx *NodeContext) (TextureHandle, error) {
	if len(n.layers) == 1 {
		h, err := n.layers[0].Output(ctx)
		if err != nil {
			return TextureHandle{}, err
		}
		n.owner.dirty = false
		return h, nil
	}

	tex, err := n.owner.ensure(ctx)
	if err != nil {
		return TextureHandle{}, err
	}
	if !n.IsDirty() {
		return ownedHandle(tex), nil
	}

	// Every layer is pulled before the first blend touches the scratch
	// pool. A layer's own render may cycle through the pool (an effect
	// chain ping-pongs both slots), so holding a slot across a pull
	// would let the layer overwrite the accumulated composite.
	handles := make([]TextureHandle, len(n.layers))
	for i, l := range n.layers {
		h, err := l.Output(ctx)
		if err != nil {
			return TextureHandle{}, err
		}
		handles[i] = h
	}

	cur := handles[0]
	spec := &BlendSpec{Mode: BlendAlpha, Opacity: 1}
	for i := 1; i < len(n.layers); i++ {
		top := handles[i]
		var dst TextureHandle
		if i == len(n.layers)-1 {
			dst = ownedHandle(tex)
		} else {
			dst, err = ctx.Pool.Acquire()
			if err != nil {
				return TextureHandle{}, err
			}
		}
		if err := ctx.Backend.Blend(spec, cur.Texture, top.Texture, dst.Texture); err != nil {
			return TextureHandle{}, err
		}
		// Intermediates are consumed as soon as the next blend has read
		// them.
		ctx.Pool.Release(cur)
		ctx.Pool.Release(top)
		cur = dst
	}

	n.owner.dirty = false
	return ownedHandle(tex), nil
}

var _ TextureNode = (*OverlayNode)(nil)
