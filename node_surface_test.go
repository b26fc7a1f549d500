package compose

import (
	"errors"
	"testing"
)

func TestSurfaceNodeRendersAndCaches(t *testing.T) {
	b := newMockBackend(64, 64)
	ctx := newTestContext(b)
	n := NewSurfaceNode("s", SurfaceConfig{Pattern: PatternChecker, Primary: "ink", Secondary: "paper"})

	h, err := n.Output(ctx)
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if h.Pooled() {
		t.Error("surface output is pool-backed, want owned")
	}
	if b.renderCalls != 1 {
		t.Fatalf("renderCalls = %d, want 1", b.renderCalls)
	}
	spec, ok := b.lastDraw.(*SurfaceSpec)
	if !ok {
		t.Fatalf("lastDraw = %T, want *SurfaceSpec", b.lastDraw)
	}
	if spec.Pattern != PatternChecker {
		t.Errorf("pattern = %v, want Checker", spec.Pattern)
	}
	if spec.Primary != Black || spec.Secondary != White {
		t.Errorf("colors = %v/%v, want black/white", spec.Primary, spec.Secondary)
	}

	// Second pull is a cache hit: no backend calls at all.
	if _, err := n.Output(ctx); err != nil {
		t.Fatalf("cached Output: %v", err)
	}
	if b.renderCalls != 1 {
		t.Errorf("cache hit re-rendered: renderCalls = %d", b.renderCalls)
	}
	if n.IsDirty() {
		t.Error("node dirty after successful render")
	}
}

func TestSurfaceNodeInvalidateRerenders(t *testing.T) {
	b := newMockBackend(64, 64)
	ctx := newTestContext(b)
	n := NewSurfaceNode("s", SurfaceConfig{Pattern: PatternSolid, Primary: "ink"})

	n.Output(ctx)
	n.Invalidate()
	n.Output(ctx)
	if b.renderCalls != 2 {
		t.Errorf("renderCalls = %d, want 2", b.renderCalls)
	}

	// SetConfig also invalidates.
	n.SetConfig(SurfaceConfig{Pattern: PatternStripes, Primary: "ink"})
	n.Output(ctx)
	if b.renderCalls != 3 {
		t.Errorf("renderCalls = %d, want 3", b.renderCalls)
	}
}

func TestSurfaceNodeResizeRerenders(t *testing.T) {
	b := newMockBackend(64, 64)
	ctx := newTestContext(b)
	n := NewSurfaceNode("s", SurfaceConfig{Pattern: PatternSolid, Primary: "ink"})

	n.Output(ctx)

	ctx.Viewport = Viewport{Width: 128, Height: 128}
	if _, err := n.Output(ctx); err != nil {
		t.Fatalf("Output after resize: %v", err)
	}
	if b.renderCalls != 2 {
		t.Errorf("renderCalls = %d, want 2", b.renderCalls)
	}
}

func TestSurfaceNodeUnknownPatternFatal(t *testing.T) {
	b := newMockBackend(64, 64)
	ctx := newTestContext(b)
	n := NewSurfaceNode("s", SurfaceConfig{Pattern: PatternKind(99)})

	_, err := n.Output(ctx)
	if !errors.Is(err, ErrUnknownPattern) {
		t.Fatalf("err = %v, want ErrUnknownPattern", err)
	}
	if b.renderCalls != 0 {
		t.Errorf("renderCalls = %d, want 0", b.renderCalls)
	}
	// The failed node stays dirty for the next attempt.
	if !n.IsDirty() {
		t.Error("node not dirty after failed render")
	}
}

func TestSurfaceNodeScaleAppliesToPixelParams(t *testing.T) {
	b := newMockBackend(64, 64)
	ctx := newTestContext(b)
	ctx.Scale = 0.5
	n := NewSurfaceNode("s", SurfaceConfig{
		Pattern: PatternStripes, Primary: "ink", Size: 40, Thickness: 10,
	})

	n.Output(ctx)
	spec := b.lastDraw.(*SurfaceSpec)
	if spec.Size != 20 || spec.Thickness != 5 {
		t.Errorf("scaled size/thickness = %v/%v, want 20/5", spec.Size, spec.Thickness)
	}
}

func TestMaskNodeRendersShapeSpec(t *testing.T) {
	b := newMockBackend(64, 64)
	ctx := newTestContext(b)
	n := NewMaskNode("m", MaskConfig{Shape: ShapeCircle, Cutout: true, Radius: 0.25})

	if _, err := n.Output(ctx); err != nil {
		t.Fatalf("Output: %v", err)
	}
	spec, ok := b.lastDraw.(*ShapeSpec)
	if !ok {
		t.Fatalf("lastDraw = %T, want *ShapeSpec", b.lastDraw)
	}
	if spec.Shape != ShapeCircle || !spec.Cutout {
		t.Errorf("spec = %+v, want cutout circle", spec)
	}
	if spec.CenterX != 0.5 || spec.CenterY != 0.5 {
		t.Errorf("center defaults = %v,%v, want 0.5,0.5", spec.CenterX, spec.CenterY)
	}

	// Cache hit.
	n.Output(ctx)
	if b.renderCalls != 1 {
		t.Errorf("renderCalls = %d, want 1", b.renderCalls)
	}
}

func TestMaskNodeUnknownShapeFatal(t *testing.T) {
	b := newMockBackend(64, 64)
	ctx := newTestContext(b)
	n := NewMaskNode("m", MaskConfig{Shape: ShapeKind(42)})

	if _, err := n.Output(ctx); !errors.Is(err, ErrUnknownShape) {
		t.Fatalf("err = %v, want ErrUnknownShape", err)
	}
}
