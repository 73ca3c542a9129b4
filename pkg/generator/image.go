// image.go — Non-PNG raster formats via imaging.
package generator

import (
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedFormat is returned for output extensions no encoder handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Extensions lists every output extension Generate accepts.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff"}

// writeImage renders the painting and encodes it in the format named by ext.
func writeImage(w io.Writer, ext string, cfg Config) error {
	format, err := imaging.FormatFromExtension(ext)
	if err != nil || format == imaging.PNG {
		return fmt.Errorf("%w %q: use one of %v", ErrUnsupportedFormat, ext, Extensions)
	}

	img, err := cfg.Painting.Image(cfg.Scale)
	if err != nil {
		return fmt.Errorf("render painting: %w", err)
	}
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}
