package compose

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// TextureHandle is an ephemeral reference to a texture plus, for
// pool-backed textures, the parity slot it came from. Handles are
// valid for the current call only and must never be persisted by a
// node.
type TextureHandle struct {
	Texture Texture

	// Slot is the scratch-pool parity index (0 or 1), or -1 when the
	// texture is node-owned.
	Slot int
}

// Pooled reports whether the handle references a scratch-pool slot.
func (h TextureHandle) Pooled() bool {
	return h.Slot >= 0
}

// ownedHandle wraps a node-owned texture in a handle.
func ownedHandle(t Texture) TextureHandle {
	return TextureHandle{Texture: t, Slot: -1}
}

// ScratchPool is a two-slot arena for short-lived intermediate
// textures, addressed by a parity bit. Alternating acquisitions give
// ping-pong buffering: a pass never reads and writes the same slot.
//
// The pool is created fresh for each execution, shared within that
// execution only, and must not be touched by two concurrent
// executions.
type ScratchPool struct {
	backend  Backend
	viewport Viewport
	format   gputypes.TextureFormat
	slots    [2]Texture
	last     int
}

// NewScratchPool creates a pool sized to the viewport. Slot textures
// are allocated lazily on first acquisition.
func NewScratchPool(b Backend, vp Viewport, format gputypes.TextureFormat) *ScratchPool {
	return &ScratchPool{
		backend:  b,
		viewport: vp,
		format:   format,
		last:     1, // first Acquire returns slot 0
	}
}

// NextIndex returns the parity index not equal to i: 0 for 1, 1 for
// anything else.
func (p *ScratchPool) NextIndex(i int) int {
	if i == 1 {
		return 0
	}
	return 1
}

// Acquire returns a handle for the next parity slot, allocating the
// slot texture on first use. Fresh pools alternate 0, 1, 0, 1, ...
//
// The previous acquisition's slot stays readable until acquired again,
// which is exactly the guarantee ping-pong passes need.
func (p *ScratchPool) Acquire() (TextureHandle, error) {
	idx := p.NextIndex(p.last)
	if p.slots[idx] == nil {
		t, err := p.backend.CreateTexture(p.viewport.Width, p.viewport.Height, p.format)
		if err != nil {
			return TextureHandle{}, fmt.Errorf("scratch slot %d: %w", idx, err)
		}
		p.slots[idx] = t
	}
	p.last = idx
	return TextureHandle{Texture: p.slots[idx], Slot: idx}, nil
}

// Release returns a pool-backed handle to the pool. The two-slot arena
// reuses slots by parity, so this is bookkeeping only; owned handles
// are ignored.
func (p *ScratchPool) Release(h TextureHandle) {
	if !h.Pooled() {
		return
	}
	// Slot becomes the preferred next acquisition.
	p.last = p.NextIndex(h.Slot)
}

// Dispose destroys both slot textures. The pool must not be used
// afterwards.
func (p *ScratchPool) Dispose() {
	for i, t := range p.slots {
		if t != nil {
			t.Destroy()
			p.slots[i] = nil
		}
	}
}
