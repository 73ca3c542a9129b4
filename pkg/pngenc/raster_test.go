package pngenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xob0t/gridpaint/pkg/csscolor"
)

func TestRasterize_IndexedBlocks(t *testing.T) {
	grid := [][]int{
		{0, 1},
		{2, 0},
	}
	pal := BuildPalette(grayRamp(3))

	raw, err := Rasterize(grid, pal, 3, 2)
	require.NoError(t, err)

	want := []byte{
		0, 0, 0, 0, 1, 1, 1,
		0, 0, 0, 0, 1, 1, 1,
		0, 2, 2, 2, 0, 0, 0,
		0, 2, 2, 2, 0, 0, 0,
	}
	assert.Equal(t, want, raw)
}

func TestRasterize_TrueColor(t *testing.T) {
	colors := grayRamp(300)
	colors[299] = 0xDEADBEEF
	grid := [][]int{{299, 0}}

	raw, err := Rasterize(grid, BuildPalette(colors), 2, 1)
	require.NoError(t, err)

	want := []byte{
		0,
		0xDE, 0xAD, 0xBE, 0xEF, 0xDE, 0xAD, 0xBE, 0xEF,
		0x00, 0x00, 0x00, 0xFF, 0x00, 0x00, 0x00, 0xFF,
	}
	assert.Equal(t, want, raw)
}

func TestRasterize_ScanlineLayout(t *testing.T) {
	assert := assert.New(t)

	grid := [][]int{{1, 1, 1}, {1, 1, 1}}
	raw, err := Rasterize(grid, BuildPalette(grayRamp(2)), 4, 5)
	assert.NoError(err)

	stride := 1 + 3*4
	assert.Len(raw, 2*5*stride)
	for y := 0; y < 10; y++ {
		assert.Equal(byte(ftNone), raw[y*stride], "filter byte of row %d", y)
	}
}

func TestRasterize_Empty(t *testing.T) {
	pal := BuildPalette(grayRamp(2))
	for _, grid := range [][][]int{nil, {}, {{}, {}}} {
		raw, err := Rasterize(grid, pal, 2, 2)
		assert.NoError(t, err)
		assert.Empty(t, raw)
		assert.NotNil(t, raw)
	}
}

func TestRasterize_IndexOutOfRange(t *testing.T) {
	pal := BuildPalette([]csscolor.RGBA32{0x000000FF, 0xFFFFFFFF})

	for _, idx := range []int{2, 3, -1} {
		_, err := Rasterize([][]int{{0, idx}}, pal, 1, 1)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", idx)
	}
}

func TestRasterize_RaggedGrid(t *testing.T) {
	_, err := Rasterize([][]int{{0, 0}, {0}}, BuildPalette(grayRamp(1)), 1, 1)
	assert.ErrorIs(t, err, ErrRaggedGrid)
}

func TestRasterize_InvalidCellSize(t *testing.T) {
	pal := BuildPalette(grayRamp(1))
	for _, size := range [][2]int{{0, 1}, {1, 0}, {-2, 3}} {
		_, err := Rasterize([][]int{{0}}, pal, size[0], size[1])
		assert.ErrorIs(t, err, ErrInvalidCellSize)
	}
}
