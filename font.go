package compose

import (
	"fmt"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// fontKey identifies one registered font variant.
type fontKey struct {
	family string
	weight FontWeight
}

var (
	fontMu       sync.RWMutex
	fontRegistry = map[fontKey]*sfnt.Font{}

	builtinOnce sync.Once
	builtin     map[FontWeight]*sfnt.Font
)

// RegisterFont parses TTF/OTF data and registers it under the given
// family name and weight. Registering the same family and weight again
// replaces the previous font. Safe for concurrent use.
func RegisterFont(family string, weight FontWeight, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("compose: parsing font %q: %w", family, err)
	}
	fontMu.Lock()
	fontRegistry[fontKey{family, weight}] = f
	fontMu.Unlock()
	return nil
}

// builtinFonts lazily parses the bundled Go fonts. Parse cannot fail
// on the embedded data, so errors are ignored.
func builtinFonts() map[FontWeight]*sfnt.Font {
	builtinOnce.Do(func() {
		builtin = make(map[FontWeight]*sfnt.Font, 3)
		if f, err := opentype.Parse(goregular.TTF); err == nil {
			builtin[WeightRegular] = f
		}
		if f, err := opentype.Parse(gobold.TTF); err == nil {
			builtin[WeightBold] = f
		}
		if f, err := opentype.Parse(goitalic.TTF); err == nil {
			builtin[WeightItalic] = f
		}
	})
	return builtin
}

// lookupFont resolves a family and weight to a parsed font. Fallback
// order: exact match, the family's regular variant, the built-in face
// for the weight, the built-in regular face.
func lookupFont(family string, weight FontWeight) *sfnt.Font {
	fontMu.RLock()
	f := fontRegistry[fontKey{family, weight}]
	if f == nil && weight != WeightRegular {
		f = fontRegistry[fontKey{family, WeightRegular}]
	}
	fontMu.RUnlock()
	if f != nil {
		return f
	}
	if family != "" {
		Logger().Warn("font family not registered, using builtin", "family", family)
	}
	b := builtinFonts()
	if f := b[weight]; f != nil {
		return f
	}
	return b[WeightRegular]
}
