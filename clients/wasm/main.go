//go:build js && wasm

// gridpaint WASM — Client-side exporter.
// Compiled with: GOOS=js GOARCH=wasm go build -o gridpaint.wasm ./clients/wasm/
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/xob0t/gridpaint/pkg/generator"
	"github.com/xob0t/gridpaint/pkg/painting"
	"github.com/xob0t/gridpaint/pkg/pngenc"
)

func main() {
	fmt.Println("gridpaint WASM loaded")

	// Register JS-callable functions.
	js.Global().Set("goExportPNG", js.FuncOf(exportPNG))
	js.Global().Set("goExport", js.FuncOf(export))
	js.Global().Set("goPalette", js.FuncOf(palette))
	js.Global().Set("goReady", js.ValueOf(true))

	// Block forever (WASM must not exit).
	select {}
}

// goExportPNG(paintingJSON, scale) — encode and return the PNG as a Uint8Array.
func exportPNG(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("error: need paintingJSON")
	}
	return encode(args[0].String(), scaleArg(args, 1), ".png")
}

// goExport(paintingJSON, scale, format) — like goExportPNG for any supported format.
func export(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf("error: need paintingJSON, scale, format")
	}
	format := strings.TrimPrefix(strings.ToLower(args[2].String()), ".")
	return encode(args[0].String(), scaleArg(args, 1), "."+format)
}

// goPalette(paintingJSON) — resolved palette as JSON {mode, colors}.
func palette(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("error: need paintingJSON")
	}
	p, err := painting.Parse([]byte(args[0].String()), painting.FormatJSON)
	if err != nil {
		return js.ValueOf("error: parse painting: " + err.Error())
	}
	colors, mode, err := p.ResolvedPalette()
	if err != nil {
		return js.ValueOf("error: " + err.Error())
	}

	hex := make([]string, len(colors))
	for i, c := range colors {
		hex[i] = c.String()
	}
	out, _ := json.Marshal(map[string]any{
		"mode":     mode.String(),
		"colors":   hex,
		"warnings": p.Validate(),
	})
	return js.ValueOf(string(out))
}

func encode(paintingJSON string, scale int, ext string) interface{} {
	p, err := painting.Parse([]byte(paintingJSON), painting.FormatJSON)
	if err != nil {
		return js.ValueOf("error: parse painting: " + err.Error())
	}

	var buf bytes.Buffer
	cfg := generator.Config{Painting: p, Scale: scale, Compression: pngenc.BestCompression}
	if err := generator.GenerateToWriter(&buf, ext, cfg); err != nil {
		return js.ValueOf("error: " + err.Error())
	}

	arr := js.Global().Get("Uint8Array").New(buf.Len())
	js.CopyBytesToJS(arr, buf.Bytes())
	return arr
}

func scaleArg(args []js.Value, i int) int {
	if i >= len(args) || args[i].Type() != js.TypeNumber {
		return 1
	}
	return max(args[i].Int(), 1)
}
