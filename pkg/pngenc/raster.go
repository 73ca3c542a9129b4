// raster.go — Expands the color-index grid into filtered PNG scanlines.
package pngenc

import (
	"encoding/binary"
	"fmt"
)

// Filter type None, the only one written. Every scanline still carries it.
const ftNone = 0

// gridSize returns the width and height of grid. All rows must be the same length.
func gridSize(grid [][]int) (w, h int, err error) {
	h = len(grid)
	if h == 0 {
		return 0, 0, nil
	}
	w = len(grid[0])
	for y, row := range grid {
		if len(row) != w {
			return 0, 0, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedGrid, y, len(row), w)
		}
	}
	return w, h, nil
}

// Rasterize renders grid at cw×ch pixels per cell. The result holds
// len(grid)*ch scanlines, each a filter byte followed by the pixels:
// one palette index per pixel in indexed mode, big-endian RGBA otherwise.
func Rasterize(grid [][]int, pal Palette, cw, ch int) ([]byte, error) {
	if cw < 1 || ch < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCellSize, cw, ch)
	}
	w, h, err := gridSize(grid)
	if err != nil {
		return nil, err
	}
	if _, _, err := ScaledSize(w, h, cw, ch); err != nil {
		return nil, err
	}
	if w == 0 || h == 0 {
		return []byte{}, nil
	}

	bpp := pal.Mode.BytesPerPixel()
	cellBytes := cw * bpp
	stride := 1 + w*cellBytes
	n := len(pal.Colors)
	out := make([]byte, h*ch*stride)

	for y, row := range grid {
		top := y * ch * stride
		line := out[top : top+stride]
		line[0] = ftNone
		pix := line[1:]

		for x, idx := range row {
			if idx < 0 || idx >= n {
				return nil, fmt.Errorf("%w: cell (%d,%d) is %d, palette has %d colors", ErrIndexOutOfRange, x, y, idx, n)
			}
			cell := pix[x*cellBytes : (x+1)*cellBytes]
			if pal.Mode == ModeIndexed {
				for i := range cell {
					cell[i] = byte(idx)
				}
				continue
			}
			c := uint32(pal.Colors[idx])
			for i := 0; i < len(cell); i += 4 {
				binary.BigEndian.PutUint32(cell[i:], c)
			}
		}

		// The remaining rows of the cell block are identical.
		for r := 1; r < ch; r++ {
			copy(out[top+r*stride:top+(r+1)*stride], line)
		}
	}
	return out, nil
}
