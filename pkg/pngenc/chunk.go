// chunk.go — PNG chunk framing: length, type, payload and CRC-32.
package pngenc

import (
	"encoding/binary"
	"io"

	"github.com/xob0t/gridpaint/pkg/crc"
)

// Signature is the fixed 8-byte PNG file header.
const Signature = "\x89PNG\r\n\x1a\n"

// ChunkType is a 4-byte ASCII chunk name packed big-endian.
type ChunkType uint32

func chunkType(name string) ChunkType {
	return ChunkType(binary.BigEndian.Uint32([]byte(name)))
}

// Critical and transparency chunk types written by the encoder.
var (
	TypeIHDR = chunkType("IHDR")
	TypePLTE = chunkType("PLTE")
	TypeTRNS = chunkType("tRNS")
	TypeIDAT = chunkType("IDAT")
	TypeIEND = chunkType("IEND")
)

func (t ChunkType) String() string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(t))
	return string(b[:])
}

// iend is the complete IEND record; its CRC never changes.
var iend = []byte{0, 0, 0, 0, 'I', 'E', 'N', 'D', 0xAE, 0x42, 0x60, 0x82}

// EncodeChunk returns the wire form of a chunk:
// length(4) | type(4) | payload | crc32(type|payload)(4), all big-endian.
func EncodeChunk(t ChunkType, payload []byte) []byte {
	out := make([]byte, 8+len(payload)+4)
	binary.BigEndian.PutUint32(out[0:4], uint32(len(payload)))
	binary.BigEndian.PutUint32(out[4:8], uint32(t))
	copy(out[8:], payload)
	binary.BigEndian.PutUint32(out[8+len(payload):], crc.Checksum(out[4:8+len(payload)]))
	return out
}

// writeChunk streams a chunk to w without copying the payload.
func writeChunk(w io.Writer, t ChunkType, payload []byte) (int64, error) {
	var header [8]byte
	var footer [4]byte

	binary.BigEndian.PutUint32(header[0:4], uint32(len(payload)))
	binary.BigEndian.PutUint32(header[4:8], uint32(t))
	sum := crc.Update(crc.Checksum(header[4:8]), payload)
	binary.BigEndian.PutUint32(footer[:], sum)

	hn, err := w.Write(header[:])
	if err != nil {
		return int64(hn), err
	}
	pn, err := w.Write(payload)
	if err != nil {
		return int64(hn + pn), err
	}
	fn, err := w.Write(footer[:])
	return int64(hn + pn + fn), err
}

// Fixed IHDR fields; this encoder writes nothing else.
const (
	bitDepth8          = 8
	compressionDeflate = 0
	filterAdaptive     = 0
	interlaceNone      = 0
)

// IHDR is the image header chunk payload.
type IHDR struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         ColorMode
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

func newIHDR(width, height uint32, mode ColorMode) IHDR {
	return IHDR{
		Width:             width,
		Height:            height,
		BitDepth:          bitDepth8,
		ColorType:         mode,
		CompressionMethod: compressionDeflate,
		FilterMethod:      filterAdaptive,
		InterlaceMethod:   interlaceNone,
	}
}

// MarshalBinary returns the 13-byte IHDR payload.
func (h IHDR) MarshalBinary() ([]byte, error) {
	b := make([]byte, 13)
	binary.BigEndian.PutUint32(b[0:4], h.Width)
	binary.BigEndian.PutUint32(b[4:8], h.Height)
	b[8] = h.BitDepth
	b[9] = byte(h.ColorType)
	b[10] = h.CompressionMethod
	b[11] = h.FilterMethod
	b[12] = h.InterlaceMethod
	return b, nil
}
