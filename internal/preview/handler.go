package preview

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/inamate/flyinout/internal/document"
	"github.com/inamate/flyinout/internal/easing"
	"github.com/inamate/flyinout/internal/transition"
)

const (
	maxBodySize     = 1 << 20
	maxCachedPNGs   = 256
	maxViewportSize = 16384
)

// CurveRequest is the body of POST /curves/sample and /curves/path.png.
// Options override the preset's fields when both are given.
type CurveRequest struct {
	Preset    string               `json:"preset,omitempty"`
	Options   *document.OptionsDoc `json:"options,omitempty"`
	Viewport  document.ViewportDoc `json:"viewport"`
	FPS       int                  `json:"fps,omitempty"`
	Direction string               `json:"direction,omitempty"`
	Render    RenderOptions        `json:"render"`
}

// SampleResponse is the body returned by POST /curves/sample.
type SampleResponse struct {
	*Run
	Options document.OptionsDoc `json:"options"`
}

// Handler serves the curve inspection endpoints.
type Handler struct {
	catalog  *document.Catalog
	viewport document.ViewportDoc
	sampler  *Sampler

	mu   sync.Mutex
	pngs map[string][]byte
}

// NewHandler creates a handler. viewport supplies defaults for requests that
// leave fields out; maxFrames bounds every sampled direction.
func NewHandler(catalog *document.Catalog, viewport document.ViewportDoc, maxFrames int) *Handler {
	return &Handler{
		catalog:  catalog,
		viewport: viewport,
		sampler:  &Sampler{MaxFrames: maxFrames},
		pngs:     make(map[string][]byte),
	}
}

// Routes registers the handler's endpoints on r.
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/easings", h.Easings).Methods("GET")
	r.HandleFunc("/catalog", h.ListCatalog).Methods("GET")
	r.HandleFunc("/catalog/{name}", h.GetCatalogEntry).Methods("GET")
	r.HandleFunc("/curves/sample", h.Sample).Methods("POST", "OPTIONS")
	r.HandleFunc("/curves/path.png", h.PathPNG).Methods("POST", "OPTIONS")
}

// Easings handles GET /easings.
func (h *Handler) Easings(w http.ResponseWriter, r *http.Request) {
	out := make(map[string][]float64)
	for name, spec := range easing.Presets() {
		out[name] = spec.Slice()
	}
	writeJSON(w, http.StatusOK, out)
}

// ListCatalog handles GET /catalog.
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Entries())
}

// GetCatalogEntry handles GET /catalog/{name}.
func (h *Handler) GetCatalogEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.catalog.Get(mux.Vars(r)["name"])
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Sample handles POST /curves/sample.
func (h *Handler) Sample(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	req, doc, err := h.decode(w, r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	run, err := h.run(r, req, doc)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	slog.Debug("curve sampled", "id", run.ID, "enter", len(run.Enter), "leave", len(run.Leave))
	writeJSON(w, http.StatusOK, SampleResponse{Run: run, Options: doc})
}

// PathPNG handles POST /curves/path.png.
func (h *Handler) PathPNG(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	req, doc, err := h.decode(w, r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := req.Render.Check(req.Viewport.Width, req.Viewport.Height); err != nil {
		handleServiceError(w, err)
		return
	}

	key := cacheKey(doc, req.Viewport, req.Render)
	data, ok := h.cached(key)
	if !ok {
		// Only the curve is drawn; sampled frames are not needed.
		req.Direction = string(DirectionEnter)
		req.FPS = 1
		run, err := h.run(r, req, doc)
		if err != nil {
			handleServiceError(w, err)
			return
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, Render(run, req.Render)); err != nil {
			handleServiceError(w, err)
			return
		}
		data = buf.Bytes()
		h.store(key, data)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("ETag", `"`+key[:16]+`"`)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// decode reads the request body and resolves the preset and option
// overrides into a single, fully populated document. Viewport defaults are
// applied in place.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (CurveRequest, document.OptionsDoc, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req CurveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, document.OptionsDoc{}, &requestError{msg: "invalid request body"}
	}
	req.Viewport = req.Viewport.WithDefaults(h.viewport)
	if req.Viewport.Width > maxViewportSize || req.Viewport.Height > maxViewportSize {
		return req, document.OptionsDoc{}, fmt.Errorf("%w: viewport %vx%v exceeds %d",
			transition.ErrInvalidOptions, req.Viewport.Width, req.Viewport.Height, maxViewportSize)
	}

	doc, err := h.catalog.Resolve(req.Preset, req.Options)
	return req, doc, err
}

func (h *Handler) run(r *http.Request, req CurveRequest, doc document.OptionsDoc) (*Run, error) {
	dir, err := ParseDirection(req.Direction)
	if err != nil {
		return nil, err
	}
	return h.sampler.Sample(r.Context(), req.Viewport.NewViewport(), doc.ToOptions(), req.FPS, dir)
}

func (h *Handler) cached(key string) ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	data, ok := h.pngs[key]
	return data, ok
}

func (h *Handler) store(key string, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.pngs) >= maxCachedPNGs {
		clear(h.pngs)
	}
	h.pngs[key] = data
}

func cacheKey(doc document.OptionsDoc, vp document.ViewportDoc, render RenderOptions) string {
	data, _ := json.Marshal(struct {
		Options  document.OptionsDoc  `json:"options"`
		Viewport document.ViewportDoc `json:"viewport"`
		Render   RenderOptions        `json:"render"`
	}{doc, vp, render})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func handleServiceError(w http.ResponseWriter, err error) {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": reqErr.msg})
	case errors.Is(err, easing.ErrInvalidEasing),
		errors.Is(err, transition.ErrInvalidOptions),
		errors.Is(err, ErrTooManyFrames),
		errors.Is(err, ErrImageTooLarge):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, document.ErrUnknownPreset):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		slog.Error("preview error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
