// compress.go — DEFLATE collaborator for the IDAT stream.
package pngenc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// Compressor turns the raw scanline stream into the zlib-wrapped DEFLATE
// data stored in IDAT. Implementations must not retain raw.
type Compressor interface {
	Compress(raw []byte) ([]byte, error)
}

// CompressionLevel trades compression speed for output size. The zero value
// is BestCompression.
type CompressionLevel int

const (
	BestCompression CompressionLevel = iota
	DefaultCompression
	BestSpeed
	NoCompression
)

func (l CompressionLevel) zlib() int {
	switch l {
	case NoCompression:
		return zlib.NoCompression
	case BestSpeed:
		return zlib.BestSpeed
	case DefaultCompression:
		return zlib.DefaultCompression
	default:
		return zlib.BestCompression
	}
}

func (l CompressionLevel) String() string {
	switch l {
	case NoCompression:
		return "none"
	case BestSpeed:
		return "speed"
	case DefaultCompression:
		return "default"
	default:
		return "best"
	}
}

// ParseCompressionLevel accepts the names printed by CompressionLevel.String.
func ParseCompressionLevel(s string) (CompressionLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "best", "":
		return BestCompression, nil
	case "default":
		return DefaultCompression, nil
	case "speed", "fast":
		return BestSpeed, nil
	case "none", "store":
		return NoCompression, nil
	}
	return 0, fmt.Errorf("unknown compression level %q: use best, default, speed or none", s)
}

// ZlibCompressor compresses with a zlib stream at Level.
type ZlibCompressor struct {
	Level CompressionLevel
}

// Compress implements Compressor.
func (c ZlibCompressor) Compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, c.Level.zlib())
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(raw); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
