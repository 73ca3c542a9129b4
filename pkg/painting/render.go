// render.go — Turn a painting into pixels: PNG bytes or an in-memory image.
package painting

import (
	"fmt"
	"image"
	"math"

	"github.com/xob0t/gridpaint/pkg/csscolor"
	"github.com/xob0t/gridpaint/pkg/pngenc"
)

// CellSize returns the pixel size of one cell after multiplying by scale.
// A scale below 1 counts as 1. Products that do not fit in an int saturate
// at math.MaxInt, which the encoder rejects as too large.
func (p *Painting) CellSize(scale int) (cw, ch int) {
	scale = max(scale, 1)
	return scaleDim(p.CellWidth, scale), scaleDim(p.CellHeight, scale)
}

func scaleDim(v, scale int) int {
	if v > math.MaxInt/scale {
		return math.MaxInt
	}
	return v * scale
}

// EncodePNG encodes the painting at the given export scale. A nil enc uses
// the default encoder.
func (p *Painting) EncodePNG(enc *pngenc.Encoder, scale int) ([]byte, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}
	if enc == nil {
		enc = &pngenc.Encoder{}
	}
	cw, ch := p.CellSize(scale)
	return enc.Encode(p.Grid, p.Palette, cw, ch)
}

// Image renders the painting at the given export scale.
func (p *Painting) Image(scale int) (*image.NRGBA, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}
	colors, err := csscolor.ParseAll(p.Palette)
	if err != nil {
		return nil, err
	}

	cw, ch := p.CellSize(scale)
	w, h := p.Size()
	if _, _, err := pngenc.ScaledSize(w, h, cw, ch); err != nil {
		return nil, err
	}
	img := image.NewNRGBA(image.Rect(0, 0, w*cw, h*ch))

	for y, row := range p.Grid {
		for x, idx := range row {
			if idx < 0 || idx >= len(colors) {
				return nil, fmt.Errorf("%w: cell (%d,%d) is %d, palette has %d colors",
					pngenc.ErrIndexOutOfRange, x, y, idx, len(colors))
			}
			// Non-premultiplied: transparent entries keep their RGB.
			c := colors[idx].NRGBA()
			for py := y * ch; py < (y+1)*ch; py++ {
				for px := x * cw; px < (x+1)*cw; px++ {
					img.SetNRGBA(px, py, c)
				}
			}
		}
	}
	return img, nil
}

// ResolvedPalette returns the palette's colors and the mode the encoder will use.
func (p *Painting) ResolvedPalette() ([]csscolor.RGBA32, pngenc.ColorMode, error) {
	colors, err := csscolor.ParseAll(p.Palette)
	if err != nil {
		return nil, 0, err
	}
	return colors, pngenc.ChooseMode(len(colors)), nil
}
