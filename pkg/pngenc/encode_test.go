package pngenc

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xob0t/gridpaint/pkg/csscolor"
)

var (
	testPalette = []string{"transparent", "#ff0000", "rgba(0,128,255,0.5)", "hsl(120, 100%, 50%)", "navy"}
	testGrid    = [][]int{
		{0, 1, 2, 3},
		{4, 3, 2, 1},
		{1, 1, 0, 0},
	}
)

func inflate(t *testing.T, zdata []byte) []byte {
	t.Helper()
	zr, err := zlib.NewReader(bytes.NewReader(zdata))
	require.NoError(t, err)
	raw, err := io.ReadAll(zr)
	require.NoError(t, err)
	return raw
}

// assertRoundTrip decodes b with image/png and compares every pixel against
// the grid expanded by the cell size.
func assertRoundTrip(t *testing.T, b []byte, grid [][]int, colors []csscolor.RGBA32, cw, ch int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)

	bounds := img.Bounds()
	require.Equal(t, len(grid[0])*cw, bounds.Dx())
	require.Equal(t, len(grid)*ch, bounds.Dy())

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			want := colors[grid[y/ch][x/cw]].NRGBA()
			got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if want != got {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestEncode_IndexedLayout(t *testing.T) {
	assert := assert.New(t)

	b, err := Encode(testGrid, testPalette, 2, 3)
	require.NoError(t, err)

	chunks := splitChunks(t, b)
	assert.Equal([]string{"IHDR", "PLTE", "tRNS", "IDAT", "IEND"}, chunkTypes(chunks))

	ihdr, _ := newIHDR(8, 9, ModeIndexed).MarshalBinary()
	assert.Equal(ihdr, chunks[0].Payload)
	assert.Equal([]byte{
		0x00, 0x00, 0x00,
		0xFF, 0x00, 0x00,
		0x00, 0x80, 0xFF,
		0x00, 0xFF, 0x00,
		0x00, 0x00, 0x80,
	}, chunks[1].Payload)
	assert.Equal([]byte{0x00, 0xFF, 0x7F, 0xFF, 0xFF}, chunks[2].Payload)
	assert.Empty(chunks[4].Payload)
	assert.Equal(iend, b[len(b)-len(iend):])

	raw := inflate(t, chunks[3].Payload)
	assert.Len(raw, 9*(1+8))
}

func TestEncode_IndexedRoundTrip(t *testing.T) {
	colors, err := csscolor.ParseAll(testPalette)
	require.NoError(t, err)

	b, err := Encode(testGrid, testPalette, 3, 2)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	_, paletted := img.(*image.Paletted)
	assert.True(t, paletted, "expected a paletted image, got %T", img)

	assertRoundTrip(t, b, testGrid, colors, 3, 2)
}

func TestEncode_TrueColorRoundTrip(t *testing.T) {
	palette := make([]string, 300)
	for i := range palette {
		palette[i] = fmt.Sprintf("#%02x%02x%02x%02x", i%256, (i*7)%256, (i*13)%256, 255-i%200)
	}
	grid := [][]int{
		{0, 299, 150},
		{256, 1, 255},
	}

	b, err := Encode(grid, palette, 2, 2)
	require.NoError(t, err)

	chunks := splitChunks(t, b)
	assert.Equal(t, []string{"IHDR", "IDAT", "IEND"}, chunkTypes(chunks))
	assert.Equal(t, byte(ModeTrueColorAlpha), chunks[0].Payload[9])

	colors, err := csscolor.ParseAll(palette)
	require.NoError(t, err)
	assertRoundTrip(t, b, grid, colors, 2, 2)
}

func TestEncode_EmptyGrid(t *testing.T) {
	assert := assert.New(t)

	b, err := Encode(nil, nil, 1, 1)
	require.NoError(t, err)

	chunks := splitChunks(t, b)
	assert.Equal([]string{"IHDR", "IDAT", "IEND"}, chunkTypes(chunks))
	assert.Equal([]byte{0, 0, 0, 0, 0, 0, 0, 0}, chunks[0].Payload[:8])
	assert.Empty(inflate(t, chunks[2].Payload))

	// A palette still yields PLTE and tRNS.
	b, err = Encode([][]int{}, []string{"red"}, 4, 4)
	require.NoError(t, err)
	chunks = splitChunks(t, b)
	assert.Equal([]string{"IHDR", "PLTE", "tRNS", "IDAT", "IEND"}, chunkTypes(chunks))
	assert.Empty(inflate(t, chunks[3].Payload))
}

func TestEncode_Deterministic(t *testing.T) {
	first, err := Encode(testGrid, testPalette, 5, 5)
	require.NoError(t, err)
	second, err := Encode(testGrid, testPalette, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncode_IndexEqualToPaletteLength(t *testing.T) {
	grid := [][]int{{0, len(testPalette)}}
	b, err := Encode(grid, testPalette, 1, 1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Nil(t, b)
}

func TestEncode_UnsupportedColor(t *testing.T) {
	b, err := Encode(testGrid, []string{"red", "not-a-color"}, 1, 1)
	assert.ErrorIs(t, err, csscolor.ErrUnsupportedColorFormat)
	assert.Nil(t, b)
}

func TestEncode_InvalidCellSize(t *testing.T) {
	_, err := Encode(testGrid, testPalette, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidCellSize)
}

func TestEncode_TooLarge(t *testing.T) {
	_, err := EncodeRGBA([][]int{{0, 0}}, []csscolor.RGBA32{0}, 1<<30, 1)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

type failingCompressor struct{ err error }

func (f failingCompressor) Compress([]byte) ([]byte, error) { return nil, f.err }

func TestEncode_CompressorFailure(t *testing.T) {
	boom := errors.New("out of memory")
	enc := &Encoder{Compressor: failingCompressor{err: boom}}

	var buf bytes.Buffer
	err := enc.EncodeTo(&buf, testGrid, testPalette, 1, 1)

	assert.ErrorIs(t, err, boom)
	var encErr *EncodingError
	assert.True(t, errors.As(err, &encErr))
	assert.Zero(t, buf.Len(), "no partial output on failure")
}

func TestEncoder_CompressionLevels(t *testing.T) {
	colors, err := csscolor.ParseAll(testPalette)
	require.NoError(t, err)

	for _, level := range []CompressionLevel{BestCompression, DefaultCompression, BestSpeed, NoCompression} {
		enc := &Encoder{Compressor: ZlibCompressor{Level: level}}
		b, err := enc.EncodeRGBA(testGrid, colors, 4, 4)
		require.NoError(t, err, level.String())
		assertRoundTrip(t, b, testGrid, colors, 4, 4)
	}
}

func TestParseCompressionLevel(t *testing.T) {
	assert := assert.New(t)

	for _, level := range []CompressionLevel{BestCompression, DefaultCompression, BestSpeed, NoCompression} {
		got, err := ParseCompressionLevel(level.String())
		assert.NoError(err)
		assert.Equal(level, got)
	}
	got, err := ParseCompressionLevel("")
	assert.NoError(err)
	assert.Equal(BestCompression, got)

	_, err = ParseCompressionLevel("ultra")
	assert.Error(err)
}

func TestScaledSize_Overflow(t *testing.T) {
	// 8 * (MaxInt/4+1) wraps to zero in 64-bit arithmetic.
	huge := math.MaxInt/4 + 1

	for _, tc := range []struct{ w, h, cw, ch int }{
		{8, 1, huge, 1},
		{1, 8, 1, huge},
		{4, 1, math.MaxInt, 1},
		{2, 1, maxDimension/2 + 1, 1},
	} {
		_, _, err := ScaledSize(tc.w, tc.h, tc.cw, tc.ch)
		assert.ErrorIs(t, err, ErrImageTooLarge, "%+v", tc)
	}

	w, h, err := ScaledSize(3, 2, 4, 5)
	require.NoError(t, err)
	assert.Equal(t, uint32(12), w)
	assert.Equal(t, uint32(10), h)

	w, h, err = ScaledSize(0, 0, math.MaxInt, math.MaxInt)
	require.NoError(t, err)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestEncode_HugeCellSizeFails(t *testing.T) {
	huge := math.MaxInt/4 + 1
	grid := [][]int{{0, 0, 0, 0, 0, 0, 0, 0}}

	b, err := EncodeRGBA(grid, []csscolor.RGBA32{0xFF0000FF}, huge, 1)
	assert.ErrorIs(t, err, ErrImageTooLarge)
	assert.Nil(t, b)

	raw, err := Rasterize(grid, BuildPalette([]csscolor.RGBA32{0xFF0000FF}), huge, 1)
	assert.ErrorIs(t, err, ErrImageTooLarge)
	assert.Nil(t, raw)
}

func TestCompressionLevel_ZeroIsBest(t *testing.T) {
	var level CompressionLevel
	assert.Equal(t, BestCompression, level)
	assert.Equal(t, "best", level.String())

	raw := bytes.Repeat([]byte("gridpaint scanline "), 512)
	zero, err := ZlibCompressor{}.Compress(raw)
	require.NoError(t, err)
	best, err := ZlibCompressor{Level: BestCompression}.Compress(raw)
	require.NoError(t, err)
	assert.Equal(t, best, zero)
}
