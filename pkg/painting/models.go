// Package painting holds the grid painting model: a grid of palette indices,
// the ordered palette they refer to, and the pixel size of one cell.
package painting

import (
	"errors"
	"fmt"
)

// ErrInvalidPainting is returned for paintings whose shape is inconsistent.
var ErrInvalidPainting = errors.New("invalid painting")

// Painting is the on-disk and over-the-wire form of a grid painting.
// Width and Height are optional; when set they must match Grid.
type Painting struct {
	Name       string   `json:"name,omitempty" toml:"name,omitempty"`
	Width      int      `json:"width,omitempty" toml:"width,omitempty"`
	Height     int      `json:"height,omitempty" toml:"height,omitempty"`
	CellWidth  int      `json:"cellWidth" toml:"cellWidth"`
	CellHeight int      `json:"cellHeight" toml:"cellHeight"`
	Palette    []string `json:"palette" toml:"palette"`
	Grid       [][]int  `json:"grid" toml:"grid"`
}

// DefaultPalette is used when a painting does not carry its own.
var DefaultPalette = []string{
	"transparent",
	"#ffffff", "#c0c0c0", "#808080", "#000000",
	"#ff0000", "#800000", "#ffff00", "#808000",
	"#00ff00", "#008000", "#00ffff", "#008080",
	"#0000ff", "#000080", "#ff00ff", "#800080",
}

// New returns a w×h painting with every cell set to fill.
func New(w, h int, palette []string, fill int) *Painting {
	p := &Painting{
		Width:      w,
		Height:     h,
		CellWidth:  1,
		CellHeight: 1,
		Palette:    palette,
	}
	p.Clear(fill)
	return p
}

// Clear sets every cell to index, keeping the dimensions.
func (p *Painting) Clear(index int) {
	w, h := p.Width, p.Height
	if w == 0 && h == 0 {
		w, h = p.Size()
	}
	p.Grid = make([][]int, h)
	for y := range p.Grid {
		row := make([]int, w)
		for x := range row {
			row[x] = index
		}
		p.Grid[y] = row
	}
	p.Width, p.Height = w, h
}

// Size returns the grid dimensions in cells.
func (p *Painting) Size() (w, h int) {
	if len(p.Grid) == 0 {
		return 0, 0
	}
	return len(p.Grid[0]), len(p.Grid)
}

// Check reports shape problems that would make the painting unencodable.
// Out-of-range color indices are reported by the encoder itself.
func (p *Painting) Check() error {
	if p.CellWidth < 1 || p.CellHeight < 1 {
		return fmt.Errorf("%w: cell size %dx%d", ErrInvalidPainting, p.CellWidth, p.CellHeight)
	}
	w, h := p.Size()
	for y, row := range p.Grid {
		if len(row) != w {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidPainting, y, len(row), w)
		}
	}
	if p.Width != 0 && p.Width != w {
		return fmt.Errorf("%w: width is %d but grid has %d columns", ErrInvalidPainting, p.Width, w)
	}
	if p.Height != 0 && p.Height != h {
		return fmt.Errorf("%w: height is %d but grid has %d rows", ErrInvalidPainting, p.Height, h)
	}
	return nil
}

// applyDefaults fills in zero values after decoding.
func applyDefaults(p *Painting) {
	if p.CellWidth == 0 {
		p.CellWidth = 1
	}
	if p.CellHeight == 0 {
		p.CellHeight = 1
	}
	if p.Palette == nil {
		p.Palette = append([]string(nil), DefaultPalette...)
	}
}
