package compose

import "fmt"

// MaskCompositeNode blends a surface with a greymap: the mask
// modulates the surface's alpha, cutting out the regions where the
// greymap is 0.
type MaskCompositeNode struct {
	id      string
	owner   textureOwner
	surface TextureNode
	mask    TextureNode
}

// NewMaskCompositeNode creates a mask-composite node over a surface
// input and a mask input.
func NewMaskCompositeNode(id string, surface, mask TextureNode) (*MaskCompositeNode, error) {
	if surface == nil || mask == nil {
		return nil, fmt.Errorf("mask composite %q: %w", id, ErrNilInput)
	}
	return &MaskCompositeNode{id: id, owner: newOwner(), surface: surface, mask: mask}, nil
}

// ID implements Node.
func (n *MaskCompositeNode) ID() string { return n.id }

// Kind implements Node.
func (n *MaskCompositeNode) Kind() NodeKind { return KindMaskComposite }

// IsDirty implements Node. Dirty when the node's own flag or either
// input's flag is set.
func (n *MaskCompositeNode) IsDirty() bool {
	return n.owner.dirty || n.surface.IsDirty() || n.mask.IsDirty()
}

// Invalidate implements Node.
func (n *MaskCompositeNode) Invalidate() { n.owner.Invalidate() }

// Inputs implements Node.
func (n *MaskCompositeNode) Inputs() []TextureNode {
	return []TextureNode{n.surface, n.mask}
}

// Dispose implements Node.
func (n *MaskCompositeNode) Dispose() { n.owner.Dispose() }

// OutputTexture implements TextureNode.
func (n *MaskCompositeNode) OutputTexture() Texture { return n.owner.OutputTexture() }

// Output implements TextureNode.
func (n *MaskCompositeNode) Output(ctx *NodeContext) (TextureHandle, error) {
	tex, err := n.owner.ensure(ctx)
	if err != nil {
		return TextureHandle{}, err
	}
	if !n.IsDirty() {
		return ownedHandle(tex), nil
	}

	surf, err := n.surface.Output(ctx)
	if err != nil {
		return TextureHandle{}, err
	}
	mask, err := n.mask.Output(ctx)
	if err != nil {
		return TextureHandle{}, err
	}

	spec := &BlendSpec{Mode: BlendMask, Opacity: 1}
	if err := ctx.Backend.Blend(spec, surf.Texture, mask.Texture, tex); err != nil {
		return TextureHandle{}, err
	}
	ctx.Pool.Release(surf)
	ctx.Pool.Release(mask)
	n.owner.dirty = false
	return ownedHandle(tex), nil
}

var _ TextureNode = (*MaskCompositeNode)(nil)
