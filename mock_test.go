package compose

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// mockTexture counts destroys so tests can verify ownership rules.
type mockTexture struct {
	width    int
	height   int
	format   gputypes.TextureFormat
	destroys int
}

func (t *mockTexture) Width() int                     { return t.width }
func (t *mockTexture) Height() int                    { return t.height }
func (t *mockTexture) Format() gputypes.TextureFormat { return t.format }
func (t *mockTexture) Destroy()                       { t.destroys++ }

// mockBackend counts every call and records the last specs, so tests
// can assert exactly which operations an execution performed.
type mockBackend struct {
	viewport Viewport

	createCalls    int
	writeCalls     int
	renderCalls    int
	effectCalls    int
	blendCalls     int
	copyCalls      int
	compositeCalls int

	created []*mockTexture

	lastDraw   DrawSpec
	lastEffect *EffectSpec
	lastBlend  *BlendSpec
	blends     []blendCall
	effects    []*EffectSpec

	// ops records render, effect and blend calls in execution order.
	ops []string

	failCreate error
	failRender error
}

type blendCall struct {
	spec   BlendSpec
	bottom Texture
	top    Texture
	dst    Texture
}

func newMockBackend(w, h int) *mockBackend {
	return &mockBackend{viewport: Viewport{Width: w, Height: h}}
}

func (b *mockBackend) Viewport() Viewport         { return b.viewport }
func (b *mockBackend) DeviceHandle() DeviceHandle { return NullDeviceHandle{} }

func (b *mockBackend) TextureFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

func (b *mockBackend) CreateTexture(width, height int, format gputypes.TextureFormat) (Texture, error) {
	if b.failCreate != nil {
		return nil, b.failCreate
	}
	b.createCalls++
	t := &mockTexture{width: width, height: height, format: format}
	b.created = append(b.created, t)
	return t, nil
}

func (b *mockBackend) WriteTexture(dst Texture, pix []byte) error {
	b.writeCalls++
	return nil
}

func (b *mockBackend) Render(spec DrawSpec, dst Texture) error {
	if b.failRender != nil {
		return b.failRender
	}
	b.renderCalls++
	b.lastDraw = spec
	b.ops = append(b.ops, "render")
	return nil
}

func (b *mockBackend) ApplyEffect(spec *EffectSpec, src, dst Texture) error {
	b.effectCalls++
	b.lastEffect = spec
	b.effects = append(b.effects, spec)
	b.ops = append(b.ops, "effect")
	return nil
}

func (b *mockBackend) Blend(spec *BlendSpec, bottom, top, dst Texture) error {
	b.blendCalls++
	b.lastBlend = spec
	b.ops = append(b.ops, "blend")
	b.blends = append(b.blends, blendCall{spec: *spec, bottom: bottom, top: top, dst: dst})
	return nil
}

func (b *mockBackend) CopyTexture(src, dst Texture) error {
	b.copyCalls++
	return nil
}

func (b *mockBackend) CompositeToCanvas(src Texture, clear bool) error {
	b.compositeCalls++
	return nil
}

var _ Backend = (*mockBackend)(nil)

// newTestContext builds a fresh execution context over the mock.
func newTestContext(b *mockBackend) *NodeContext {
	return &NodeContext{
		Backend:  b,
		Viewport: b.viewport,
		Palette:  Palette{"ink": Black, "paper": White},
		Scale:    1,
		Pool:     NewScratchPool(b, b.viewport, b.TextureFormat()),
		Device:   NullDeviceHandle{},
		Format:   b.TextureFormat(),
	}
}

// stubNode is a hand-rolled TextureNode for wiring compositor tests.
type stubNode struct {
	id      string
	dirty   bool
	tex     *mockTexture
	outputs int
	inputs  []TextureNode
	err     error
}

func newStubNode(id string) *stubNode {
	return &stubNode{id: id, dirty: true, tex: &mockTexture{width: 8, height: 8}}
}

func (n *stubNode) ID() string            { return n.id }
func (n *stubNode) Kind() NodeKind        { return KindSurface }
func (n *stubNode) IsDirty() bool         { return n.dirty }
func (n *stubNode) Invalidate()           { n.dirty = true }
func (n *stubNode) Inputs() []TextureNode { return n.inputs }
func (n *stubNode) Dispose()              {}
func (n *stubNode) OutputTexture() Texture {
	return n.tex
}

func (n *stubNode) Output(ctx *NodeContext) (TextureHandle, error) {
	if n.err != nil {
		return TextureHandle{}, n.err
	}
	n.outputs++
	n.dirty = false
	return ownedHandle(n.tex), nil
}

var _ TextureNode = (*stubNode)(nil)

var errBoom = errors.New("boom")
