// Package server provides the gridpaint web editor and HTTP export API.
package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"os/exec"
	"runtime"
	"strings"

	"github.com/xob0t/gridpaint/pkg/csscolor"
	"github.com/xob0t/gridpaint/pkg/generator"
	"github.com/xob0t/gridpaint/pkg/painting"
	"github.com/xob0t/gridpaint/pkg/pngenc"
)

//go:embed web/*
var webContent embed.FS

// maxBody caps request bodies.
const maxBody = 32 << 20

// maxPixels caps the pixel count of one export (256 MiB of RGBA).
const maxPixels = 64 << 20

// ── Server ──

type srv struct {
	// export is generator.GenerateToWriter outside of tests.
	export func(w io.Writer, ext string, cfg generator.Config) error
}

// RunServe starts the web editor on the given port.
func RunServe(args []string) error {
	port := "8080"
	for i, a := range args {
		if (a == "--port" || a == "-p") && i+1 < len(args) {
			port = args[i+1]
		}
	}

	h, err := newHandler(&srv{export: generator.GenerateToWriter})
	if err != nil {
		return err
	}

	addr := ":" + port
	log.Printf("gridpaint editor → http://localhost%s", addr)

	// Open browser.
	go openBrowser("http://localhost" + addr)

	return http.ListenAndServe(addr, h)
}

func newHandler(s *srv) (http.Handler, error) {
	webFS, err := fs.Sub(webContent, "web")
	if err != nil {
		return nil, fmt.Errorf("embed web: %w", err)
	}

	mux := http.NewServeMux()

	// API routes.
	mux.HandleFunc("GET /api/example", s.handleExample)
	mux.HandleFunc("POST /api/export/png", s.handleExportPNG)
	mux.HandleFunc("POST /api/export/{format}", s.handleExport)
	mux.HandleFunc("POST /api/palette", s.handlePalette)
	mux.HandleFunc("POST /api/validate", s.handleValidate)

	// Static files.
	mux.Handle("/", http.FileServer(http.FS(webFS)))
	return mux, nil
}

// ── Requests ──

type exportRequest struct {
	Painting    json.RawMessage `json:"painting"`
	Scale       int             `json:"scale"`
	Compression string          `json:"compression"`
}

// decodePainting reads an exportRequest and parses the painting it carries.
func decodePainting(w http.ResponseWriter, r *http.Request) (*exportRequest, *painting.Painting, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		return nil, nil, fmt.Errorf("read request: %w", err)
	}
	var req exportRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, nil, fmt.Errorf("decode request: %w", err)
	}
	if len(req.Painting) == 0 || string(req.Painting) == "null" {
		return nil, nil, errors.New("request has no painting")
	}
	p, err := painting.Parse(req.Painting, painting.FormatJSON)
	if err != nil {
		return nil, nil, err
	}
	return &req, p, nil
}

// ── Export ──

func (s *srv) handleExportPNG(w http.ResponseWriter, r *http.Request) {
	s.exportAs(w, r, "png")
}

func (s *srv) handleExport(w http.ResponseWriter, r *http.Request) {
	s.exportAs(w, r, strings.ToLower(r.PathValue("format")))
}

func (s *srv) exportAs(w http.ResponseWriter, r *http.Request, format string) {
	req, p, err := decodePainting(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Scale < 0 {
		http.Error(w, fmt.Sprintf("scale must be positive, got %d", req.Scale), http.StatusBadRequest)
		return
	}
	level, err := pngenc.ParseCompressionLevel(req.Compression)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := checkPixels(p, req.Scale); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ext := "." + format
	var buf bytes.Buffer
	cfg := generator.Config{Painting: p, Scale: req.Scale, Compression: level}
	if err := s.export(&buf, ext, cfg); err != nil {
		log.Printf("export %s: %v", format, err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	name := p.Name
	if name == "" {
		name = "painting"
	}
	w.Header().Set("Content-Type", contentType(ext))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s%s"`, sanitizeFilename(name), ext))
	w.Write(buf.Bytes())
}

// checkPixels rejects exports whose image would exceed maxPixels.
func checkPixels(p *painting.Painting, scale int) error {
	w, h := p.Size()
	if w == 0 || h == 0 {
		return nil
	}
	cw, ch := p.CellSize(scale)
	if cw > maxPixels/w || ch > maxPixels/h {
		return fmt.Errorf("%w: %dx%d cells of %dx%d pixels", pngenc.ErrImageTooLarge, w, h, cw, ch)
	}
	if width, height := w*cw, h*ch; width > maxPixels/height {
		return fmt.Errorf("%w: %dx%d pixels, limit is %d", pngenc.ErrImageTooLarge, width, height, maxPixels)
	}
	return nil
}

// ── Palette ──

type paletteResponse struct {
	Mode   string   `json:"mode"`
	Colors []string `json:"colors"`
}

func (s *srv) handlePalette(w http.ResponseWriter, r *http.Request) {
	_, p, err := decodePainting(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	colors, mode, err := p.ResolvedPalette()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := paletteResponse{Mode: mode.String(), Colors: make([]string, len(colors))}
	for i, c := range colors {
		resp.Colors[i] = c.String()
	}
	writeJSON(w, resp)
}

func (s *srv) handleValidate(w http.ResponseWriter, r *http.Request) {
	_, p, err := decodePainting(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	warnings := p.Validate()
	if warnings == nil {
		warnings = []string{}
	}
	writeJSON(w, map[string][]string{"warnings": warnings})
}

func (s *srv) handleExample(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, painting.ExampleJSON())
}

// ── Helpers ──

// statusFor maps export errors to HTTP status codes: problems with the
// painting are the client's, compressor failures are ours.
func statusFor(err error) int {
	var encErr *pngenc.EncodingError
	switch {
	case errors.As(err, &encErr):
		return http.StatusInternalServerError
	case errors.Is(err, pngenc.ErrIndexOutOfRange),
		errors.Is(err, pngenc.ErrRaggedGrid),
		errors.Is(err, pngenc.ErrInvalidCellSize),
		errors.Is(err, pngenc.ErrImageTooLarge),
		errors.Is(err, csscolor.ErrUnsupportedColorFormat),
		errors.Is(err, painting.ErrInvalidPainting),
		errors.Is(err, generator.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func contentType(ext string) string {
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	switch ext {
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, `"`, "_")
	name = strings.ReplaceAll(name, " ", "_")
	return name
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	cmd.Start()
}
