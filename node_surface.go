package compose

// SurfaceNode renders a procedural surface pattern into its owned
// texture. Both palette color keys are resolved against the execution
// palette each time the node renders.
type SurfaceNode struct {
	id    string
	owner textureOwner
	cfg   SurfaceConfig
}

// NewSurfaceNode creates a surface render node.
func NewSurfaceNode(id string, cfg SurfaceConfig) *SurfaceNode {
	return &SurfaceNode{id: id, owner: newOwner(), cfg: cfg}
}

// ID implements Node.
func (n *SurfaceNode) ID() string { return n.id }

// Kind implements Node.
func (n *SurfaceNode) Kind() NodeKind { return KindSurface }

// IsDirty implements Node.
func (n *SurfaceNode) IsDirty() bool { return n.owner.dirty }

// Invalidate implements Node.
func (n *SurfaceNode) Invalidate() { n.owner.Invalidate() }

// Inputs implements Node. Surface nodes are leaves.
func (n *SurfaceNode) Inputs() []TextureNode { return nil }

// Dispose implements Node.
func (n *SurfaceNode) Dispose() { n.owner.Dispose() }

// OutputTexture implements TextureNode.
func (n *SurfaceNode) OutputTexture() Texture { return n.owner.OutputTexture() }

// SetConfig replaces the surface configuration and invalidates the
// cached texture.
func (n *SurfaceNode) SetConfig(cfg SurfaceConfig) {
	n.cfg = cfg
	n.owner.Invalidate()
}

// Output implements TextureNode. An unconstructable pattern
// specification is fatal for the node: there is no fallback pattern.
func (n *SurfaceNode) Output(ctx *NodeContext) (TextureHandle, error) {
	tex, err := n.owner.ensure(ctx)
	if err != nil {
		return TextureHandle{}, err
	}
	if !n.owner.dirty {
		return ownedHandle(tex), nil
	}

	spec, err := n.cfg.spec(ctx.Palette, ctx.Scale)
	if err != nil {
		return TextureHandle{}, err
	}
	if err := ctx.Backend.Render(spec, tex); err != nil {
		return TextureHandle{}, err
	}
	n.owner.dirty = false
	return ownedHandle(tex), nil
}

var _ TextureNode = (*SurfaceNode)(nil)
