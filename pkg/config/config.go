// Package config persists CLI defaults in a TOML file under the user's
// config directory.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/xob0t/gridpaint/pkg/pngenc"
)

const (
	appName    = "gridpaint"
	configFile = "config.toml"
)

// Config holds export defaults. Command-line flags override them.
type Config struct {
	CellWidth   int
	CellHeight  int
	Scale       int
	Compression string
	Output      string
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		CellWidth:   1,
		CellHeight:  1,
		Scale:       1,
		Compression: pngenc.BestCompression.String(),
		Output:      "painting.png",
	}
}

// Dir returns $XDG_CONFIG_HOME/gridpaint, falling back to ~/.config/gridpaint.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName)
}

// Path returns the location of the config file.
func Path() string {
	return filepath.Join(Dir(), configFile)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	conf := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return conf, nil
	}
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return Default(), fmt.Errorf("read config %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

// Save writes conf to path, creating the directory if needed.
func Save(path string, conf Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(conf); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.CellWidth < 1 || c.CellHeight < 1 {
		return fmt.Errorf("cell size must be at least 1x1, got %dx%d", c.CellWidth, c.CellHeight)
	}
	if c.Scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", c.Scale)
	}
	_, err := pngenc.ParseCompressionLevel(c.Compression)
	return err
}

// CompressionLevel returns the parsed compression setting.
func (c Config) CompressionLevel() pngenc.CompressionLevel {
	l, err := pngenc.ParseCompressionLevel(c.Compression)
	if err != nil {
		return pngenc.BestCompression
	}
	return l
}
