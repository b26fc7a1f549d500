package compose

// MaskNode renders a shape greymap into its owned texture: 0 marks the
// transparent (cutout) region, 1 the opaque region.
type MaskNode struct {
	id    string
	owner textureOwner
	cfg   MaskConfig
}

// NewMaskNode creates a mask render node.
func NewMaskNode(id string, cfg MaskConfig) *MaskNode {
	return &MaskNode{id: id, owner: newOwner(), cfg: cfg}
}

// ID implements Node.
func (n *MaskNode) ID() string { return n.id }

// Kind implements Node.
func (n *MaskNode) Kind() NodeKind { return KindMask }

// IsDirty implements Node.
func (n *MaskNode) IsDirty() bool { return n.owner.dirty }

// Invalidate implements Node.
func (n *MaskNode) Invalidate() { n.owner.Invalidate() }

// Inputs implements Node. Mask nodes are leaves.
func (n *MaskNode) Inputs() []TextureNode { return nil }

// Dispose implements Node.
func (n *MaskNode) Dispose() { n.owner.Dispose() }

// OutputTexture implements TextureNode.
func (n *MaskNode) OutputTexture() Texture { return n.owner.OutputTexture() }

// SetConfig replaces the mask configuration and invalidates the cached
// texture.
func (n *MaskNode) SetConfig(cfg MaskConfig) {
	n.cfg = cfg
	n.owner.Invalidate()
}

// Output implements TextureNode. An unconstructable shape
// specification is fatal, same policy as surface nodes.
func (n *MaskNode) Output(ctx *NodeContext) (TextureHandle, error) {
	tex, err := n.owner.ensure(ctx)
	if err != nil {
		return TextureHandle{}, err
	}
	if !n.owner.dirty {
		return ownedHandle(tex), nil
	}

	spec, err := n.cfg.spec()
	if err != nil {
		return TextureHandle{}, err
	}
	if err := ctx.Backend.Render(spec, tex); err != nil {
		return TextureHandle{}, err
	}
	n.owner.dirty = false
	return ownedHandle(tex), nil
}

var _ TextureNode = (*MaskNode)(nil)
