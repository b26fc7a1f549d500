package compose

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// stubRegistry maps effect ids straight to specs; a stored nil spec
// means the effect compiles to a no-op.
type stubRegistry struct {
	specs    map[string]*EffectSpec
	compiles int
}

func (r *stubRegistry) Recognized(id string) bool {
	_, ok := r.specs[id]
	return ok
}

func (r *stubRegistry) Compile(id string, params EffectParams, vp Viewport, scale float64) (*EffectSpec, error) {
	r.compiles++
	spec, ok := r.specs[id]
	if !ok {
		return nil, ErrUnknownEffect
	}
	return spec, nil
}

var _ EffectRegistry = (*stubRegistry)(nil)

// captureLogs routes the package logger into a buffer for the duration
// of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestNewEffectNodeValidation(t *testing.T) {
	reg := &stubRegistry{specs: map[string]*EffectSpec{"blur": {Op: EffectBlur, Radius: 4}}}
	input := newStubNode("in")

	if _, err := NewEffectNode("e", nil, "blur", nil, reg); !errors.Is(err, ErrNilInput) {
		t.Errorf("nil input: err = %v, want ErrNilInput", err)
	}
	if _, err := NewEffectNode("e", input, "nope", nil, reg); !errors.Is(err, ErrUnknownEffect) {
		t.Errorf("unknown id: err = %v, want ErrUnknownEffect", err)
	}
	if _, err := NewEffectNode("e", input, "blur", nil, nil); !errors.Is(err, ErrUnknownEffect) {
		t.Errorf("nil registry: err = %v, want ErrUnknownEffect", err)
	}
	if _, err := NewEffectNode("e", input, "blur", nil, reg); err != nil {
		t.Errorf("valid: err = %v", err)
	}
}

func TestEffectNodeAppliesEffect(t *testing.T) {
	b := newMockBackend(64, 64)
	ctx := newTestContext(b)
	reg := &stubRegistry{specs: map[string]*EffectSpec{"blur": {Op: EffectBlur, Radius: 4}}}
	n, err := NewEffectNode("e", newStubNode("in"), "blur", nil, reg)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := n.Output(ctx); err != nil {
		t.Fatalf("Output: %v", err)
	}
	if b.effectCalls != 1 || b.copyCalls != 0 {
		t.Errorf("effect/copy calls = %d/%d, want 1/0", b.effectCalls, b.copyCalls)
	}
	if b.lastEffect.Op != EffectBlur {
		t.Errorf("op = %v, want Blur", b.lastEffect.Op)
	}
}

func TestEffectNodeNoOpFallsBackToCopy(t *testing.T) {
	b := newMockBackend(64, 64)
	ctx := newTestContext(b)
	reg := &stubRegistry{specs: map[string]*EffectSpec{"blur": nil}}
	n, _ := NewEffectNode("e", newStubNode("in"), "blur", nil, reg)

	if _, err := n.Output(ctx); err != nil {
		t.Fatalf("Output: %v", err)
	}
	if b.copyCalls != 1 || b.effectCalls != 0 {
		t.Errorf("copy/effect calls = %d/%d, want 1/0", b.copyCalls, b.effectCalls)
	}
}

func TestEffectNodeDirtyPropagatesFromInput(t *testing.T) {
	b := newMockBackend(64, 64)
	ctx := newTestContext(b)
	reg := &stubRegistry{specs: map[string]*EffectSpec{"blur": {Op: EffectBlur, Radius: 4}}}
	input := newStubNode("in")
	n, _ := NewEffectNode("e", input, "blur", nil, reg)

	n.Output(ctx)
	if n.IsDirty() {
		t.Fatal("dirty after render")
	}

	// Invalidating the input makes the effect node transitively dirty.
	input.Invalidate()
	if !n.IsDirty() {
		t.Fatal("input invalidation did not propagate")
	}
	n.Output(ctx)
	if b.effectCalls != 2 {
		t.Errorf("effectCalls = %d, want 2", b.effectCalls)
	}
	if input.outputs != 2 {
		t.Errorf("input outputs = %d, want 2", input.outputs)
	}
}

func TestEffectChainEmptyIsIdentity(t *testing.T) {
	b := newMockBackend(64, 64)
	ctx := newTestContext(b)
	n, err := NewEffectChainNode("c", newStubNode("in"), nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := n.Output(ctx); err != nil {
		t.Fatalf("Output: %v", err)
	}
	if b.copyCalls != 1 || b.effectCalls != 0 {
		t.Errorf("copy/effect calls = %d/%d, want 1/0", b.copyCalls, b.effectCalls)
	}
}

func TestEffectChainSkipsUnknownWithWarning(t *testing.T) {
	logs := captureLogs(t)
	b := newMockBackend(64, 64)
	ctx := newTestContext(b)
	reg := &stubRegistry{specs: map[string]*EffectSpec{
		"blur": {Op: EffectBlur, Radius: 4},
		"noop": nil,
	}}
	n, _ := NewEffectChainNode("c", newStubNode("in"), []EffectConfig{
		{ID: "bogus"},
		{ID: "noop"},
		{ID: "blur"},
	}, reg)

	if _, err := n.Output(ctx); err != nil {
		t.Fatalf("Output: %v", err)
	}
	// Only the blur survives; it writes straight into the owned texture.
	if b.effectCalls != 1 || b.copyCalls != 0 {
		t.Errorf("effect/copy calls = %d/%d, want 1/0", b.effectCalls, b.copyCalls)
	}

	out := logs.String()
	if !strings.Contains(out, "bogus") {
		t.Errorf("no warning for unknown effect, logs:\n%s", out)
	}
	if !strings.Contains(out, "noop") {
		t.Errorf("no warning for no-op effect, logs:\n%s", out)
	}
	if got := strings.Count(out, "level=WARN"); got != 2 {
		t.Errorf("warnings = %d, want 2", got)
	}
}

// An unknown id in the middle of the chain must not disturb the order
// of the surviving effects around it.
func TestEffectChainKeepsOrderAroundSkippedEffect(t *testing.T) {
	logs := captureLogs(t)
	b := newMockBackend(64, 64)
	ctx := newTestContext(b)
	reg := &stubRegistry{specs: map[string]*EffectSpec{
		"blur":    {Op: EffectBlur, Radius: 4},
		"sharpen": {Op: EffectSharpen, Strength: 0.5},
	}}
	n, _ := NewEffectChainNode("c", newStubNode("in"), []EffectConfig{
		{ID: "blur"},
		{ID: "bogus"},
		{ID: "sharpen"},
	}, reg)

	if _, err := n.Output(ctx); err != nil {
		t.Fatalf("Output: %v", err)
	}
	if b.effectCalls != 2 {
		t.Fatalf("effectCalls = %d, want 2", b.effectCalls)
	}
	if b.effects[0].Op != EffectBlur || b.effects[1].Op != EffectSharpen {
		t.Errorf("applied ops = %v then %v, want Blur then Sharpen",
			b.effects[0].Op, b.effects[1].Op)
	}
	// Two surviving passes: one scratch slot plus the owned destination.
	if b.createCalls != 2 {
		t.Errorf("createCalls = %d, want 2", b.createCalls)
	}

	out := logs.String()
	if !strings.Contains(out, "bogus") {
		t.Errorf("no warning for unknown effect, logs:\n%s", out)
	}
	if got := strings.Count(out, "level=WARN"); got != 1 {
		t.Errorf("warnings = %d, want 1", got)
	}
}

func TestEffectChainPingPongsThroughPool(t *testing.T) {
	b := newMockBackend(64, 64)
	ctx := newTestContext(b)
	reg := &stubRegistry{specs: map[string]*EffectSpec{
		"a": {Op: EffectBlur, Radius: 1},
		"b": {Op: EffectSharpen, Strength: 0.5},
		"c": {Op: EffectGrain, Strength: 0.1},
	}}
	n, _ := NewEffectChainNode("c", newStubNode("in"), []EffectConfig{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}, reg)

	h, err := n.Output(ctx)
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if b.effectCalls != 3 {
		t.Errorf("effectCalls = %d, want 3", b.effectCalls)
	}
	if h.Pooled() {
		t.Error("chain output is pool-backed, want owned")
	}
	// Three passes need at most the two ping-pong slots plus the owned
	// destination: owned texture + input stub is external, so the mock
	// saw 1 owned + 2 scratch allocations.
	if b.createCalls != 3 {
		t.Errorf("createCalls = %d, want 3", b.createCalls)
	}

	// A second execution with a clean input is a cache hit.
	if _, err := n.Output(ctx); err != nil {
		t.Fatal(err)
	}
	if b.effectCalls != 3 {
		t.Errorf("cache hit re-applied effects: effectCalls = %d", b.effectCalls)
	}
}
