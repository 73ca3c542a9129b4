// gridpaint — Grid painting exporter.
//
// Usage:
//
//	gridpaint -i <painting> [-o <file>] [options]
//	gridpaint palette -i <painting>
//	gridpaint new -o <painting> [--width N] [--height N]
//	gridpaint init
//	gridpaint serve [--port 8080]
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/xob0t/gridpaint/clients/server"
	"github.com/xob0t/gridpaint/pkg/config"
	"github.com/xob0t/gridpaint/pkg/generator"
	"github.com/xob0t/gridpaint/pkg/painting"
	"github.com/xob0t/gridpaint/pkg/pngenc"
)

func main() {
	log.SetFlags(0)

	conf, cerr := config.Load(config.Path())
	if cerr != nil {
		log.Printf("Warning: %v (using defaults)", cerr)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "palette":
		err = runPalette(os.Args[2:])
	case "new":
		err = runNew(os.Args[2:], conf)
	case "init":
		err = runInit(os.Args[2:])
	case "serve":
		err = server.RunServe(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		// Default: export mode (all flags on root).
		err = run(os.Args[1:], conf)
	}
	if err != nil {
		fatal(err)
	}
}

func run(args []string, conf config.Config) error {
	fs := flag.NewFlagSet("gridpaint", flag.ExitOnError)

	var (
		input       string
		output      string
		scale       int
		compression string
	)

	fs.StringVar(&input, "i", "", "Painting file (.json or .toml)")
	fs.StringVar(&input, "input", "", "Painting file (.json or .toml)")
	fs.StringVar(&output, "o", conf.Output, "Output file, or - for stdout (PNG)")
	fs.StringVar(&output, "output", conf.Output, "Output file, or - for stdout (PNG)")
	fs.IntVar(&scale, "scale", conf.Scale, "Multiply the cell size")
	fs.StringVar(&compression, "compression", conf.Compression, "PNG compression: best, default, speed, none")

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	if input == "" {
		printUsage()
		return errors.New("painting file is required (-i)")
	}
	if scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", scale)
	}
	level, err := pngenc.ParseCompressionLevel(compression)
	if err != nil {
		return err
	}

	p, err := painting.Load(input)
	if err != nil {
		return err
	}
	for _, w := range p.Validate() {
		log.Printf("Warning: %s", w)
	}

	cfg := generator.Config{
		Painting:    p,
		Scale:       scale,
		Compression: level,
	}

	if output == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("refusing to write binary image data to a terminal")
		}
		var buf bytes.Buffer
		if err := generator.GenerateToWriter(&buf, ".png", cfg); err != nil {
			return err
		}
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}

	if err := generator.Generate(output, cfg); err != nil {
		return err
	}
	cw, ch := p.CellSize(scale)
	w, h := p.Size()
	log.Printf("Done: %s (%dx%d px)", output, w*cw, h*ch)
	return nil
}

func runPalette(args []string) error {
	fs := flag.NewFlagSet("palette", flag.ExitOnError)
	var input string
	fs.StringVar(&input, "i", "", "Painting file (.json or .toml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if input == "" {
		return errors.New("-i is required for palette command")
	}

	p, err := painting.Load(input)
	if err != nil {
		return err
	}
	colors, mode, err := p.ResolvedPalette()
	if err != nil {
		return err
	}

	fmt.Printf("Mode: %s (%d colors)\n", mode, len(colors))
	for i, c := range colors {
		fmt.Printf("%4d  %s  %s\n", i, c, p.Palette[i])
	}
	return nil
}

func runNew(args []string, conf config.Config) error {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	var (
		output        string
		width, height int
	)
	fs.StringVar(&output, "o", "painting.json", "Output painting file (.json or .toml)")
	fs.IntVar(&width, "width", 16, "Width in cells")
	fs.IntVar(&height, "height", 16, "Height in cells")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("painting must be at least 1x1 cells, got %dx%d", width, height)
	}

	p := painting.New(width, height, append([]string(nil), painting.DefaultPalette...), 0)
	p.CellWidth, p.CellHeight = conf.CellWidth, conf.CellHeight
	if err := painting.Save(output, p); err != nil {
		return err
	}
	fmt.Printf("Created: %s\n", output)
	return nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var output string
	var writeConfig bool
	fs.StringVar(&output, "o", "painting.json", "Output path for the sample painting")
	fs.BoolVar(&writeConfig, "config", false, "Also write the default config to "+config.Path())
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.WriteFile(output, []byte(painting.ExampleJSON()), 0644); err != nil {
		return fmt.Errorf("write painting: %w", err)
	}
	fmt.Printf("Created: %s\n", output)

	if writeConfig {
		if err := config.Save(config.Path(), config.Default()); err != nil {
			return err
		}
		fmt.Printf("Created: %s\n", config.Path())
	}

	png := strings.TrimSuffix(filepath.Base(output), filepath.Ext(output)) + ".png"
	fmt.Printf("Run: gridpaint -i %s -o %s\n", output, png)
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`gridpaint — Grid Painting Exporter (Pure Go)

USAGE:
    gridpaint -i <painting> [-o <file>] [options]
    gridpaint palette -i <painting>
    gridpaint new [-o <painting>] [--width N] [--height N]
    gridpaint init [-o <painting>] [--config]
    gridpaint serve [--port 8080]

EXPORT:
    -i, --input <path>       Painting file (.json or .toml)
    -o, --output <path>      Output file (.png .jpg .gif .bmp .tif), - for PNG on stdout
    --scale <n>              Multiply the cell size (default: 1)
    --compression <level>    PNG compression: best, default, speed, none (default: best)

PALETTE:
    gridpaint palette -i <path>    Print resolved colors and the PNG color mode

CONFIG:
    Defaults are read from $XDG_CONFIG_HOME/gridpaint/config.toml
    (keys: CellWidth, CellHeight, Scale, Compression, Output). Flags override them.

EXAMPLES:
    gridpaint init
    gridpaint -i painting.json -o heart.png
    gridpaint -i painting.json -o heart.png --scale 4
    gridpaint -i painting.toml -o - --compression speed > out.png
    gridpaint serve
`)
}
