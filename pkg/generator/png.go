// png.go — PNG writer.
package generator

import (
	"fmt"
	"io"

	"github.com/xob0t/gridpaint/pkg/pngenc"
)

// writePNG encodes the painting as PNG at the configured scale and compression.
func writePNG(w io.Writer, cfg Config) error {
	enc := &pngenc.Encoder{Compressor: pngenc.ZlibCompressor{Level: cfg.Compression}}
	b, err := cfg.Painting.EncodePNG(enc, cfg.Scale)
	if err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write PNG: %w", err)
	}
	return nil
}
