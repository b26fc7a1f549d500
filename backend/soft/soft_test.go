package soft

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/compose"
)

func newTestBackend(t *testing.T, w, h int) *Backend {
	t.Helper()
	b, err := New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func mustTexture(t *testing.T, b *Backend, w, h int) compose.Texture {
	t.Helper()
	tex, err := b.CreateTexture(w, h, b.TextureFormat())
	if err != nil {
		t.Fatal(err)
	}
	return tex
}

func pixelAt(tex compose.Texture, x, y int) [4]byte {
	st := tex.(*texture)
	i := st.offset(x, y)
	return [4]byte{st.pix[i], st.pix[i+1], st.pix[i+2], st.pix[i+3]}
}

func TestNewRejectsBadDimensions(t *testing.T) {
	if _, err := New(0, 10); !errors.Is(err, compose.ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestWriteAndCopyTexture(t *testing.T) {
	b := newTestBackend(t, 4, 4)
	src := mustTexture(t, b, 2, 2)
	dst := mustTexture(t, b, 2, 2)

	pix := make([]byte, 2*2*4)
	for i := range pix {
		pix[i] = byte(i)
	}
	if err := b.WriteTexture(src, pix); err != nil {
		t.Fatal(err)
	}
	if err := b.WriteTexture(src, pix[:3]); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("short write: err = %v, want ErrSizeMismatch", err)
	}

	if err := b.CopyTexture(src, dst); err != nil {
		t.Fatal(err)
	}
	if pixelAt(dst, 1, 1) != pixelAt(src, 1, 1) {
		t.Error("copy did not carry pixels")
	}

	other := mustTexture(t, b, 3, 3)
	if err := b.CopyTexture(src, other); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("size mismatch: err = %v", err)
	}
}

func TestForeignAndDestroyedTextures(t *testing.T) {
	b := newTestBackend(t, 4, 4)

	if err := b.WriteTexture(foreignTexture{}, nil); !errors.Is(err, ErrForeignTexture) {
		t.Errorf("foreign: err = %v, want ErrForeignTexture", err)
	}

	tex := mustTexture(t, b, 2, 2)
	tex.Destroy()
	err := b.WriteTexture(tex, make([]byte, 16))
	if !errors.Is(err, ErrTextureDestroyed) {
		t.Errorf("destroyed: err = %v, want ErrTextureDestroyed", err)
	}
	// The backend sentinel carries the engine-level disposed sentinel.
	if !errors.Is(err, compose.ErrDisposed) {
		t.Errorf("destroyed: err = %v, want wrapped ErrDisposed", err)
	}
}

type foreignTexture struct{}

func (foreignTexture) Width() int                     { return 1 }
func (foreignTexture) Height() int                    { return 1 }
func (foreignTexture) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }
func (foreignTexture) Destroy()                       {}

func TestRenderSolidPattern(t *testing.T) {
	b := newTestBackend(t, 8, 8)
	tex := mustTexture(t, b, 8, 8)

	spec := &compose.SurfaceSpec{Pattern: compose.PatternSolid, Primary: compose.RGB(1, 0, 0)}
	if err := b.Render(spec, tex); err != nil {
		t.Fatal(err)
	}
	want := [4]byte{255, 0, 0, 255}
	if got := pixelAt(tex, 0, 0); got != want {
		t.Errorf("corner = %v, want %v", got, want)
	}
	if got := pixelAt(tex, 7, 7); got != want {
		t.Errorf("corner = %v, want %v", got, want)
	}
}

func TestRenderCheckerPattern(t *testing.T) {
	b := newTestBackend(t, 8, 8)
	tex := mustTexture(t, b, 8, 8)

	spec := &compose.SurfaceSpec{
		Pattern:   compose.PatternChecker,
		Primary:   compose.White,
		Secondary: compose.Black,
		Size:      4,
	}
	if err := b.Render(spec, tex); err != nil {
		t.Fatal(err)
	}
	// Cells on opposite sides of a 4px boundary differ.
	a := pixelAt(tex, 1, 1)
	c := pixelAt(tex, 5, 1)
	if a == c {
		t.Errorf("checker cells equal: %v", a)
	}
}

func TestRenderImagePattern(t *testing.T) {
	b := newTestBackend(t, 8, 8)
	tex := mustTexture(t, b, 8, 8)

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 0, G: 255, B: 0, A: 255})
		}
	}
	spec := &compose.SurfaceSpec{Pattern: compose.PatternImage, Image: src}
	if err := b.Render(spec, tex); err != nil {
		t.Fatal(err)
	}
	got := pixelAt(tex, 4, 4)
	if got[1] != 255 || got[3] != 255 {
		t.Errorf("pixel = %v, want green", got)
	}

	// Image pattern without an image is unsupported.
	if err := b.Render(&compose.SurfaceSpec{Pattern: compose.PatternImage}, tex); !errors.Is(err, compose.ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

func TestRenderCircleMask(t *testing.T) {
	b := newTestBackend(t, 32, 32)
	tex := mustTexture(t, b, 32, 32)

	spec := &compose.ShapeSpec{
		Shape:   compose.ShapeCircle,
		CenterX: 0.5, CenterY: 0.5,
		Radius: 0.4,
	}
	if err := b.Render(spec, tex); err != nil {
		t.Fatal(err)
	}
	if got := pixelAt(tex, 16, 16); got[0] != 255 {
		t.Errorf("center = %v, want opaque", got)
	}
	if got := pixelAt(tex, 0, 0); got[0] != 0 {
		t.Errorf("corner = %v, want transparent", got)
	}
}

func TestRenderCircleMaskCutout(t *testing.T) {
	b := newTestBackend(t, 32, 32)
	tex := mustTexture(t, b, 32, 32)

	spec := &compose.ShapeSpec{
		Shape:   compose.ShapeCircle,
		Cutout:  true,
		CenterX: 0.5, CenterY: 0.5,
		Radius: 0.4,
	}
	if err := b.Render(spec, tex); err != nil {
		t.Fatal(err)
	}
	if got := pixelAt(tex, 16, 16); got[0] != 0 {
		t.Errorf("center = %v, want cut out", got)
	}
	if got := pixelAt(tex, 0, 0); got[0] != 255 {
		t.Errorf("corner = %v, want opaque", got)
	}
}

func TestRenderRadialGradient(t *testing.T) {
	b := newTestBackend(t, 32, 32)
	tex := mustTexture(t, b, 32, 32)

	spec := &compose.ShapeSpec{
		Shape:   compose.ShapeRadialGradient,
		CenterX: 0.5, CenterY: 0.5,
		Radius: 0.5,
	}
	if err := b.Render(spec, tex); err != nil {
		t.Fatal(err)
	}
	center := pixelAt(tex, 16, 16)[0]
	mid := pixelAt(tex, 24, 16)[0]
	edge := pixelAt(tex, 31, 16)[0]
	if !(center > mid && mid > edge) {
		t.Errorf("gradient not monotonic: %d, %d, %d", center, mid, edge)
	}
}

func TestBlendAlphaOver(t *testing.T) {
	b := newTestBackend(t, 2, 2)
	bottom := mustTexture(t, b, 2, 2)
	top := mustTexture(t, b, 2, 2)
	dst := mustTexture(t, b, 2, 2)

	b.Render(&compose.SurfaceSpec{Pattern: compose.PatternSolid, Primary: compose.RGB(1, 0, 0)}, bottom)
	b.Render(&compose.SurfaceSpec{Pattern: compose.PatternSolid, Primary: compose.RGBA{G: 1, A: 0.5}}, top)

	spec := &compose.BlendSpec{Mode: compose.BlendAlpha, Opacity: 1}
	if err := b.Blend(spec, bottom, top, dst); err != nil {
		t.Fatal(err)
	}
	got := pixelAt(dst, 0, 0)
	// Half-transparent green over opaque red: both channels present,
	// result fully opaque.
	if got[3] != 255 {
		t.Errorf("alpha = %d, want 255", got[3])
	}
	if got[0] == 0 || got[1] == 0 {
		t.Errorf("pixel = %v, want red and green mixed", got)
	}
	if got[0] <= got[1]-30 || got[1] <= 60 {
		t.Errorf("pixel = %v, unexpected mix", got)
	}
}

func TestBlendMaskModulatesAlpha(t *testing.T) {
	b := newTestBackend(t, 2, 2)
	bottom := mustTexture(t, b, 2, 2)
	mask := mustTexture(t, b, 2, 2)
	dst := mustTexture(t, b, 2, 2)

	b.Render(&compose.SurfaceSpec{Pattern: compose.PatternSolid, Primary: compose.RGB(0, 0, 1)}, bottom)
	// Mask: fully opaque greymap everywhere except we zero one pixel.
	b.Render(&compose.SurfaceSpec{Pattern: compose.PatternSolid, Primary: compose.White}, mask)
	mt := mask.(*texture)
	i := mt.offset(1, 1)
	mt.pix[i], mt.pix[i+1], mt.pix[i+2], mt.pix[i+3] = 0, 0, 0, 0

	spec := &compose.BlendSpec{Mode: compose.BlendMask, Opacity: 1}
	if err := b.Blend(spec, bottom, mask, dst); err != nil {
		t.Fatal(err)
	}
	if got := pixelAt(dst, 0, 0); got[3] != 255 || got[2] != 255 {
		t.Errorf("kept pixel = %v, want opaque blue", got)
	}
	if got := pixelAt(dst, 1, 1); got[3] != 0 {
		t.Errorf("masked pixel alpha = %d, want 0", got[3])
	}
}

func TestApplyEffectPixelate(t *testing.T) {
	b := newTestBackend(t, 8, 8)
	src := mustTexture(t, b, 8, 8)
	dst := mustTexture(t, b, 8, 8)

	b.Render(&compose.SurfaceSpec{
		Pattern: compose.PatternChecker, Primary: compose.White, Secondary: compose.Black, Size: 1,
	}, src)

	spec := &compose.EffectSpec{Op: compose.EffectPixelate, Size: 8}
	if err := b.ApplyEffect(spec, src, dst); err != nil {
		t.Fatal(err)
	}
	// One block covering the whole texture: every pixel is the average.
	first := pixelAt(dst, 0, 0)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if pixelAt(dst, x, y) != first {
				t.Fatalf("pixel %d,%d = %v, want uniform %v", x, y, pixelAt(dst, x, y), first)
			}
		}
	}
	if first[0] == 0 || first[0] == 255 {
		t.Errorf("average = %v, want mid-gray", first)
	}
}

func TestApplyEffectColorMatrixIdentity(t *testing.T) {
	b := newTestBackend(t, 4, 4)
	src := mustTexture(t, b, 4, 4)
	dst := mustTexture(t, b, 4, 4)

	b.Render(&compose.SurfaceSpec{Pattern: compose.PatternSolid, Primary: compose.RGB(0.2, 0.4, 0.6)}, src)

	var m [20]float64
	m[0], m[6], m[12], m[18] = 1, 1, 1, 1
	spec := &compose.EffectSpec{Op: compose.EffectColorMatrix, Matrix: m}
	if err := b.ApplyEffect(spec, src, dst); err != nil {
		t.Fatal(err)
	}
	if pixelAt(dst, 2, 2) != pixelAt(src, 2, 2) {
		t.Errorf("identity matrix changed %v to %v", pixelAt(src, 2, 2), pixelAt(dst, 2, 2))
	}
}

func TestApplyEffectGrainDeterministic(t *testing.T) {
	b := newTestBackend(t, 8, 8)
	src := mustTexture(t, b, 8, 8)
	d1 := mustTexture(t, b, 8, 8)
	d2 := mustTexture(t, b, 8, 8)

	b.Render(&compose.SurfaceSpec{Pattern: compose.PatternSolid, Primary: compose.RGB(0.5, 0.5, 0.5)}, src)

	spec := &compose.EffectSpec{Op: compose.EffectGrain, Strength: 0.3, Seed: 7}
	if err := b.ApplyEffect(spec, src, d1); err != nil {
		t.Fatal(err)
	}
	if err := b.ApplyEffect(spec, src, d2); err != nil {
		t.Fatal(err)
	}
	if pixelAt(d1, 3, 3) != pixelAt(d2, 3, 3) {
		t.Error("same seed produced different noise")
	}
	if pixelAt(d1, 0, 0) == pixelAt(src, 0, 0) && pixelAt(d1, 5, 5) == pixelAt(src, 5, 5) {
		t.Error("grain changed nothing")
	}
}

func TestApplyEffectBlurSoftensEdge(t *testing.T) {
	b := newTestBackend(t, 16, 16)
	src := mustTexture(t, b, 16, 16)
	dst := mustTexture(t, b, 16, 16)

	// Hard vertical edge: black left half, white right half.
	b.Render(&compose.SurfaceSpec{
		Pattern: compose.PatternStripes, Primary: compose.White, Secondary: compose.Black,
		Size: 32, Thickness: 16,
	}, src)

	spec := &compose.EffectSpec{Op: compose.EffectBlur, Radius: 3}
	if err := b.ApplyEffect(spec, src, dst); err != nil {
		t.Fatal(err)
	}
	// Pixels near the former edge are neither pure white nor black.
	got := pixelAt(dst, 8, 8)
	if got[0] == 0 || got[0] == 255 {
		t.Errorf("edge pixel = %v, want blurred gray", got)
	}
}

func TestCompositeToCanvas(t *testing.T) {
	b := newTestBackend(t, 4, 4)
	tex := mustTexture(t, b, 4, 4)
	b.Render(&compose.SurfaceSpec{Pattern: compose.PatternSolid, Primary: compose.RGB(1, 0, 1)}, tex)

	if err := b.CompositeToCanvas(tex, true); err != nil {
		t.Fatal(err)
	}
	c := b.Canvas().RGBAAt(2, 2)
	if c.R != 255 || c.B != 255 || c.A != 255 {
		t.Errorf("canvas pixel = %v, want magenta", c)
	}
}

func TestResizeReplacesCanvas(t *testing.T) {
	b := newTestBackend(t, 4, 4)
	if err := b.Resize(8, 2); err != nil {
		t.Fatal(err)
	}
	if vp := b.Viewport(); vp.Width != 8 || vp.Height != 2 {
		t.Errorf("viewport = %+v, want 8x2", vp)
	}
	if got := b.Canvas().Bounds(); got.Dx() != 8 || got.Dy() != 2 {
		t.Errorf("canvas bounds = %v", got)
	}
}
