package compose

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// textureOwner gives a node exclusive, long-lived ownership of one
// texture with dirty-flag caching and resize handling. Exactly one
// owned texture exists per owner, 1:1 with node identity.
//
// Embedding nodes clear the dirty flag only immediately after a
// successful render or composite, never before.
type textureOwner struct {
	tex      Texture
	dirty    bool
	viewport Viewport
	format   gputypes.TextureFormat
}

// newOwner returns an owner whose first ensure call will allocate.
// Owners start dirty: a node that has never rendered must render.
func newOwner() textureOwner {
	return textureOwner{dirty: true}
}

// ensure returns the owned texture for the context's viewport and
// format. If no texture exists, or the last allocation differs in size
// or format, the old texture is destroyed, a new one is allocated and
// the owner is forced dirty. Otherwise the existing texture is
// returned unchanged.
func (o *textureOwner) ensure(ctx *NodeContext) (Texture, error) {
	if o.tex != nil && o.viewport == ctx.Viewport && o.format == ctx.Format {
		return o.tex, nil
	}
	if o.tex != nil {
		o.tex.Destroy()
		o.tex = nil
	}
	t, err := ctx.Backend.CreateTexture(ctx.Viewport.Width, ctx.Viewport.Height, ctx.Format)
	if err != nil {
		return nil, fmt.Errorf("owned texture: %w", err)
	}
	o.tex = t
	o.viewport = ctx.Viewport
	o.format = ctx.Format
	o.dirty = true
	return t, nil
}

// Invalidate marks the cached texture stale. Used when an input
// parameter changes.
func (o *textureOwner) Invalidate() {
	o.dirty = true
}

// OutputTexture returns the owned texture, or nil before the first
// render or after Dispose.
func (o *textureOwner) OutputTexture() Texture {
	return o.tex
}

// Dispose destroys the owned texture and clears state. The owner ends
// dirty so a disposed-then-reused node is forced to rerender.
func (o *textureOwner) Dispose() {
	if o.tex != nil {
		o.tex.Destroy()
		o.tex = nil
	}
	o.viewport = Viewport{}
	o.format = gputypes.TextureFormatUndefined
	o.dirty = true
}
