// palette.go — Color mode selection and PLTE/tRNS payloads.
package pngenc

import "github.com/xob0t/gridpaint/pkg/csscolor"

// ColorMode is the PNG color type used for the whole image.
type ColorMode uint8

const (
	ModeIndexed        ColorMode = 3 // one palette index per pixel, PLTE + tRNS
	ModeTrueColorAlpha ColorMode = 6 // literal RGBA per pixel
)

// MaxIndexedColors is the largest palette written in indexed mode.
const MaxIndexedColors = 255

// ChooseMode picks the color mode for a palette of n colors.
func ChooseMode(n int) ColorMode {
	if n <= MaxIndexedColors {
		return ModeIndexed
	}
	return ModeTrueColorAlpha
}

// BytesPerPixel is the pixel size in the raw scanline stream.
func (m ColorMode) BytesPerPixel() int {
	if m == ModeTrueColorAlpha {
		return 4
	}
	return 1
}

func (m ColorMode) String() string {
	switch m {
	case ModeIndexed:
		return "indexed"
	case ModeTrueColorAlpha:
		return "truecolor+alpha"
	}
	return "invalid"
}

// Palette is a resolved palette together with the mode it implies.
// Colors keeps the caller's order; entry i is grid index i.
type Palette struct {
	Mode   ColorMode
	Colors []csscolor.RGBA32
}

// BuildPalette decides the color mode for colors.
func BuildPalette(colors []csscolor.RGBA32) Palette {
	return Palette{Mode: ChooseMode(len(colors)), Colors: colors}
}

// PLTE returns the RGB triples of the palette, or nil in truecolor mode.
func (p Palette) PLTE() []byte {
	if p.Mode != ModeIndexed {
		return nil
	}
	b := make([]byte, 0, 3*len(p.Colors))
	for _, c := range p.Colors {
		b = append(b, c.R(), c.G(), c.B())
	}
	return b
}

// TRNS returns one alpha byte per palette entry, or nil in truecolor mode.
func (p Palette) TRNS() []byte {
	if p.Mode != ModeIndexed {
		return nil
	}
	b := make([]byte, len(p.Colors))
	for i, c := range p.Colors {
		b[i] = c.A()
	}
	return b
}
