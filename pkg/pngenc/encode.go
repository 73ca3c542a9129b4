// Package pngenc writes grid paintings as 8-bit PNG files.
//
// A painting is a grid of palette indices plus an ordered palette. Palettes of
// up to 255 colors are written as indexed images with PLTE and tRNS chunks in
// palette order; larger palettes are written as truecolor with alpha. Each grid
// cell becomes a block of cellWidth×cellHeight identical pixels.
//
// Encoding is a pure function of its inputs: nothing is shared between calls,
// and on error no bytes are produced.
package pngenc

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/xob0t/gridpaint/pkg/csscolor"
)

// maxDimension is the largest width or height PNG allows (2^31-1).
const maxDimension = math.MaxInt32

// Encoder configures PNG encoding. The zero value compresses with
// ZlibCompressor at BestCompression.
type Encoder struct {
	Compressor Compressor
}

func (e *Encoder) compressor() Compressor {
	if e == nil || e.Compressor == nil {
		return ZlibCompressor{Level: BestCompression}
	}
	return e.Compressor
}

// Encode resolves palette with csscolor.Parse and encodes the painting.
func (e *Encoder) Encode(grid [][]int, palette []string, cellWidth, cellHeight int) ([]byte, error) {
	colors, err := csscolor.ParseAll(palette)
	if err != nil {
		return nil, err
	}
	return e.EncodeRGBA(grid, colors, cellWidth, cellHeight)
}

// EncodeRGBA encodes a painting whose palette is already resolved.
func (e *Encoder) EncodeRGBA(grid [][]int, colors []csscolor.RGBA32, cellWidth, cellHeight int) ([]byte, error) {
	if cellWidth < 1 || cellHeight < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCellSize, cellWidth, cellHeight)
	}
	w, h, err := gridSize(grid)
	if err != nil {
		return nil, err
	}
	width, height, err := ScaledSize(w, h, cellWidth, cellHeight)
	if err != nil {
		return nil, err
	}

	pal := BuildPalette(colors)
	raw, err := Rasterize(grid, pal, cellWidth, cellHeight)
	if err != nil {
		return nil, err
	}
	zdata, err := e.compressor().Compress(raw)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}

	ihdr, err := newIHDR(width, height, pal.Mode).MarshalBinary()
	if err != nil {
		return nil, err
	}
	type chunk struct {
		t       ChunkType
		payload []byte
	}
	chunks := []chunk{{TypeIHDR, ihdr}}
	// An empty PLTE is invalid, so a palette-less image carries neither chunk.
	if pal.Mode == ModeIndexed && len(colors) > 0 {
		chunks = append(chunks, chunk{TypePLTE, pal.PLTE()}, chunk{TypeTRNS, pal.TRNS()})
	}
	chunks = append(chunks, chunk{TypeIDAT, zdata})

	var buf bytes.Buffer
	buf.Grow(len(Signature) + 25 + 2*12 + 4*len(colors) + 12 + len(zdata) + len(iend))
	if _, err := buf.WriteString(Signature); err != nil {
		return nil, err
	}
	for _, c := range chunks {
		if _, err := writeChunk(&buf, c.t, c.payload); err != nil {
			return nil, err
		}
	}
	if _, err := buf.Write(iend); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo writes the encoded painting to w. Nothing is written if encoding fails.
func (e *Encoder) EncodeTo(w io.Writer, grid [][]int, palette []string, cellWidth, cellHeight int) error {
	b, err := e.Encode(grid, palette, cellWidth, cellHeight)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Encode encodes a painting with the default Encoder.
func Encode(grid [][]int, palette []string, cellWidth, cellHeight int) ([]byte, error) {
	var e Encoder
	return e.Encode(grid, palette, cellWidth, cellHeight)
}

// EncodeRGBA encodes a painting with a resolved palette using the default Encoder.
func EncodeRGBA(grid [][]int, colors []csscolor.RGBA32, cellWidth, cellHeight int) ([]byte, error) {
	var e Encoder
	return e.EncodeRGBA(grid, colors, cellWidth, cellHeight)
}

// ScaledSize returns the pixel size of a w×h cell grid at cw×ch pixels per
// cell, or ErrImageTooLarge when PNG or memory limits are exceeded. Every
// product is bounds-checked before it is taken.
func ScaledSize(w, h, cw, ch int) (uint32, uint32, error) {
	if w < 0 || h < 0 || cw < 1 || ch < 1 {
		return 0, 0, fmt.Errorf("%w: %dx%d cells of %dx%d", ErrInvalidCellSize, w, h, cw, ch)
	}
	if (w > 0 && cw > maxDimension/w) || (h > 0 && ch > maxDimension/h) {
		return 0, 0, fmt.Errorf("%w: %dx%d cells of %dx%d pixels", ErrImageTooLarge, w, h, cw, ch)
	}
	width, height := w*cw, h*ch
	// The raw stream (up to 4 bytes per pixel plus filter bytes) must also be
	// addressable in memory.
	if width > 0 && height > math.MaxInt/8/width {
		return 0, 0, fmt.Errorf("%w: %dx%d pixels", ErrImageTooLarge, width, height)
	}
	return uint32(width), uint32(height), nil
}
