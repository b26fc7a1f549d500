package compose

import "fmt"

// TextNode rasterizes a text block on the CPU and uploads the pixels
// into its owned texture. Glyph rendering never touches the backend's
// draw path: the node only needs WriteTexture.
type TextNode struct {
	id    string
	owner textureOwner
	cfg   TextConfig
}

// NewTextNode creates a cached text node.
func NewTextNode(id string, cfg TextConfig) *TextNode {
	return &TextNode{id: id, owner: newOwner(), cfg: cfg}
}

// ID implements Node.
func (n *TextNode) ID() string { return n.id }

// Kind implements Node.
func (n *TextNode) Kind() NodeKind { return KindText }

// IsDirty implements Node.
func (n *TextNode) IsDirty() bool { return n.owner.dirty }

// Invalidate implements Node.
func (n *TextNode) Invalidate() { n.owner.Invalidate() }

// Inputs implements Node. Text nodes are sources.
func (n *TextNode) Inputs() []TextureNode { return nil }

// Dispose implements Node.
func (n *TextNode) Dispose() { n.owner.Dispose() }

// OutputTexture implements TextureNode.
func (n *TextNode) OutputTexture() Texture { return n.owner.OutputTexture() }

// SetConfig replaces the text configuration and invalidates the cached
// texture.
func (n *TextNode) SetConfig(cfg TextConfig) {
	n.cfg = cfg
	n.owner.Invalidate()
}

// Output implements TextureNode.
func (n *TextNode) Output(ctx *NodeContext) (TextureHandle, error) {
	tex, err := n.owner.ensure(ctx)
	if err != nil {
		return TextureHandle{}, err
	}
	if !n.owner.dirty {
		return ownedHandle(tex), nil
	}

	img, err := rasterizeText(n.cfg, ctx.Viewport, ctx.Scale)
	if err != nil {
		return TextureHandle{}, fmt.Errorf("text node %q: %w", n.id, err)
	}
	if err := ctx.Backend.WriteTexture(tex, img.Pix); err != nil {
		return TextureHandle{}, err
	}
	n.owner.dirty = false
	return ownedHandle(tex), nil
}

var _ TextureNode = (*TextNode)(nil)
