package compose

import (
	"fmt"
	"image"
	stddraw "image/draw"
	"math"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// rasterizeText renders the configured text block into a transparent
// RGBA image the size of the viewport. Anchoring, multi-line layout,
// letter spacing and rotation all happen here on the CPU; the result is
// uploaded to the backend as pixel data.
func rasterizeText(cfg TextConfig, vp Viewport, scale float64) (*image.RGBA, error) {
	cfg = cfg.withDefaults()
	if scale <= 0 {
		scale = 1
	}

	fnt := lookupFont(cfg.Family, cfg.Weight)
	if fnt == nil {
		return nil, fmt.Errorf("text: no font available for family %q", cfg.Family)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    cfg.Size * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: creating face: %w", err)
	}
	defer face.Close()

	img := image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height))
	if cfg.Text == "" {
		return img, nil
	}

	lines := strings.Split(cfg.Text, "\n")
	spacing := fixed.Int26_6(cfg.LetterSpacing * scale * 64)

	widths := make([]fixed.Int26_6, len(lines))
	var maxWidth fixed.Int26_6
	for i, line := range lines {
		widths[i] = measureLine(face, line, spacing)
		if widths[i] > maxWidth {
			maxWidth = widths[i]
		}
	}

	m := face.Metrics()
	lineAdvance := fixed.Int26_6(cfg.Size * scale * cfg.LineHeight * 64)
	blockHeight := m.Ascent + m.Descent + fixed.Int26_6(len(lines)-1)*lineAdvance

	ax, ay := cfg.Anchor.fractions()
	px := cfg.X * float64(vp.Width)
	py := cfg.Y * float64(vp.Height)
	left := fixed.Int26_6(px*64) - fixed.Int26_6(ax*float64(maxWidth))
	top := fixed.Int26_6(py*64) - fixed.Int26_6(ay*float64(blockHeight))

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(cfg.Color.Color()),
		Face: face,
	}
	for i, line := range lines {
		// Lines shorter than the block are aligned inside it by the same
		// horizontal anchor fraction.
		d.Dot.X = left + fixed.Int26_6(ax*float64(maxWidth-widths[i]))
		d.Dot.Y = top + m.Ascent + fixed.Int26_6(i)*lineAdvance
		drawLine(d, line, spacing)
	}

	if cfg.Rotation == 0 {
		return img, nil
	}
	return rotateAbout(img, cfg.Rotation, px, py), nil
}

// measureLine returns the advance width of a line including the extra
// per-rune letter spacing.
func measureLine(face font.Face, line string, spacing fixed.Int26_6) fixed.Int26_6 {
	if spacing == 0 {
		return font.MeasureString(face, line)
	}
	var w fixed.Int26_6
	n := 0
	for _, r := range line {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		w += adv
		n++
	}
	if n > 1 {
		w += fixed.Int26_6(n-1) * spacing
	}
	return w
}

// drawLine draws one line at the drawer's current dot. With zero letter
// spacing the whole string goes through one DrawString call; otherwise
// runes are placed one at a time with the spacing added between them.
func drawLine(d *font.Drawer, line string, spacing fixed.Int26_6) {
	if spacing == 0 {
		d.DrawString(line)
		return
	}
	first := true
	for _, r := range line {
		if !first {
			d.Dot.X += spacing
		}
		d.DrawString(string(r))
		first = false
	}
}

// rotateAbout returns a copy of src rotated by angle radians around the
// pivot point, resampled bilinearly into an image of the same size.
func rotateAbout(src *image.RGBA, angle, px, py float64) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	sin, cos := math.Sincos(angle)
	m := f64.Aff3{
		cos, -sin, px - cos*px + sin*py,
		sin, cos, py - sin*px - cos*py,
	}
	draw.BiLinear.Transform(dst, m, src, src.Bounds(), stddraw.Over, nil)
	return dst
}
