package compose

import "fmt"

// OutputNode is the terminal node: it pulls the final texture from its
// input (recursively triggering the whole graph) and hands it to the
// backend's canvas composite. It has no outputs and is never itself
// pulled from.
type OutputNode struct {
	id    string
	input TextureNode

	// clear controls whether the canvas is cleared before compositing.
	clear bool
}

// NewOutputNode creates the terminal canvas writer over the graph's
// final texture node.
func NewOutputNode(id string, input TextureNode) (*OutputNode, error) {
	if input == nil {
		return nil, fmt.Errorf("output node %q: %w", id, ErrNilInput)
	}
	return &OutputNode{id: id, input: input, clear: true}, nil
}

// ID implements Node.
func (n *OutputNode) ID() string { return n.id }

// Kind implements Node.
func (n *OutputNode) Kind() NodeKind { return KindOutput }

// IsDirty implements Node. The output node holds no texture of its
// own; it is dirty exactly when its input is.
func (n *OutputNode) IsDirty() bool { return n.input.IsDirty() }

// Invalidate implements Node. Forwarded to the input, since the output
// node has no cache of its own.
func (n *OutputNode) Invalidate() { n.input.Invalidate() }

// Inputs implements Node.
func (n *OutputNode) Inputs() []TextureNode { return []TextureNode{n.input} }

// Dispose implements Node. No owned resources.
func (n *OutputNode) Dispose() {}

// SetClear controls whether the canvas is cleared before the final
// composite. Cleared by default.
func (n *OutputNode) SetClear(clear bool) { n.clear = clear }

// Render pulls the final texture and composites it to the visible
// canvas, then returns any pool-allocated texture to the scratch pool.
func (n *OutputNode) Render(ctx *NodeContext) error {
	h, err := n.input.Output(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Backend.CompositeToCanvas(h.Texture, n.clear); err != nil {
		return err
	}
	ctx.Pool.Release(h)
	return nil
}

var _ Node = (*OutputNode)(nil)
