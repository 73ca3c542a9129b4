// loader.go — Load paintings from JSON or TOML files.
package painting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Supported painting file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// FormatFromPath infers the painting format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported painting format %q: use .json or .toml", ext)
	}
}

// Load reads and parses a painting file.
func Load(path string) (*Painting, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read painting: %w", err)
	}
	p, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a painting, applies defaults and checks its shape.
func Parse(data []byte, format string) (*Painting, error) {
	var p Painting
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parse painting JSON: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &p); err != nil {
			return nil, fmt.Errorf("parse painting TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported painting format %q", format)
	}

	applyDefaults(&p)
	if err := p.Check(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save writes p to path in the format implied by its extension.
func Save(path string, p *Painting) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(p, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write painting: %w", err)
	}
	return nil
}

// Marshal encodes p as JSON or TOML.
func Marshal(p *Painting, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(p, "", "  ")
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(p); err != nil {
			return nil, fmt.Errorf("encode painting TOML: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported painting format %q", format)
}
