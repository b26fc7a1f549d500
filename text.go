package compose

// Anchor selects which point of the text block is pinned to the
// configured position. Nine-way: top/center/bottom x left/center/right.
type Anchor uint8

// Anchor constants.
const (
	AnchorTopLeft Anchor = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorCenterLeft
	AnchorCenter
	AnchorCenterRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

// String returns a human-readable name for the anchor.
func (a Anchor) String() string {
	switch a {
	case AnchorTopLeft:
		return "TopLeft"
	case AnchorTopCenter:
		return "TopCenter"
	case AnchorTopRight:
		return "TopRight"
	case AnchorCenterLeft:
		return "CenterLeft"
	case AnchorCenter:
		return "Center"
	case AnchorCenterRight:
		return "CenterRight"
	case AnchorBottomLeft:
		return "BottomLeft"
	case AnchorBottomCenter:
		return "BottomCenter"
	case AnchorBottomRight:
		return "BottomRight"
	default:
		return "Unknown"
	}
}

// fractions returns the anchor as horizontal and vertical fractions in
// {0, 0.5, 1}: (0,0) is top-left, (1,1) is bottom-right.
func (a Anchor) fractions() (ax, ay float64) {
	switch a % 3 {
	case 0:
		ax = 0
	case 1:
		ax = 0.5
	case 2:
		ax = 1
	}
	switch a / 3 {
	case 0:
		ay = 0
	case 1:
		ay = 0.5
	default:
		ay = 1
	}
	return ax, ay
}

// FontWeight selects a registered font variant.
type FontWeight uint8

// Font weight constants.
const (
	WeightRegular FontWeight = iota
	WeightBold
	WeightItalic
)

// String returns a human-readable name for the weight.
func (w FontWeight) String() string {
	switch w {
	case WeightRegular:
		return "Regular"
	case WeightBold:
		return "Bold"
	case WeightItalic:
		return "Italic"
	default:
		return "Unknown"
	}
}

// TextConfig describes one text layer. The text is rasterized offscreen
// on the CPU and uploaded into the node's owned texture.
type TextConfig struct {
	// Text is the string to draw. Newlines split the text into multiple
	// lines; the block is positioned as a whole according to Anchor.
	Text string

	// Family is a registered font family name. Empty selects the
	// built-in default face for the configured weight.
	Family string

	// Size is the font size in pixels. Zero selects 32.
	Size float64

	// Weight selects the font variant.
	Weight FontWeight

	// LetterSpacing adds extra advance between glyphs, in pixels.
	LetterSpacing float64

	// LineHeight is the line pitch as a multiple of Size. Zero selects
	// 1.25.
	LineHeight float64

	// Color is the fill color. Text colors are literal, not palette
	// keys.
	Color RGBA

	// X and Y position the anchor point, normalized to [0,1] of the
	// viewport.
	X float64
	Y float64

	// Anchor selects which point of the text block sits at (X, Y).
	Anchor Anchor

	// Rotation rotates the block about the anchor point, in radians.
	Rotation float64
}

// withDefaults returns the config with zero values replaced.
func (c TextConfig) withDefaults() TextConfig {
	if c.Size <= 0 {
		c.Size = 32
	}
	if c.LineHeight <= 0 {
		c.LineHeight = 1.25
	}
	if c.Color == (RGBA{}) {
		c.Color = White
	}
	return c
}
