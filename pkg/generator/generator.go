// Package generator exports grid paintings to image files.
//
// PNG output goes through the indexed PNG encoder; every other raster format
// is produced from the rendered painting.
package generator

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xob0t/gridpaint/pkg/painting"
	"github.com/xob0t/gridpaint/pkg/pngenc"
)

// DefaultOutput is the file name used when none is given.
const DefaultOutput = "painting.png"

// Config holds parameters for an export.
type Config struct {
	Painting    *painting.Painting
	Scale       int                     // Multiplies the cell size (default: 1)
	Compression pngenc.CompressionLevel // PNG only (default: BestCompression)
}

// Generate writes the painting to output. The format is inferred from the file extension:
//   - ".png" → indexed or truecolor PNG
//   - ".jpg", ".gif", ".bmp", ".tif" → rendered image
//
// The file is only created once encoding has succeeded.
func Generate(output string, cfg Config) error {
	if output == "" {
		output = DefaultOutput
	}

	var buf bytes.Buffer
	if err := GenerateToWriter(&buf, filepath.Ext(output), cfg); err != nil {
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}

// GenerateToWriter writes the painting to w. The format is specified by ext (".png", ".gif", ...).
// This is useful for in-memory generation (e.g., WASM).
func GenerateToWriter(w io.Writer, ext string, cfg Config) error {
	if cfg.Painting == nil {
		return fmt.Errorf("no painting to export")
	}

	switch ext = strings.ToLower(ext); ext {
	case ".png":
		return writePNG(w, cfg)
	default:
		return writeImage(w, ext, cfg)
	}
}
