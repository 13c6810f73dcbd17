package web

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/justestif/go-mindcanvas/internal/canvas"
)

// Composer builds canvases. Implemented by *canvas.Service.
type Composer interface {
	Compose(ctx context.Context, keyword string) *canvas.Canvas
}

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	composer   Composer
	templates  *Templates
	configured map[string]bool
	logger     *zap.Logger
}

// NewHandlers creates a new Handlers instance. configured reports which
// sections have a live provider, for the health endpoint.
func NewHandlers(composer Composer, templates *Templates, configured map[string]bool, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		composer:   composer,
		templates:  templates,
		configured: configured,
		logger:     logger,
	}
}

// Home handles the home page (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	c := h.composer.Compose(r.Context(), r.URL.Query().Get("keyword"))

	data := HomePageData{
		PageData: PageData{
			Title:       "MindCanvas",
			Flash:       h.providerFlash(),
			CurrentPath: r.URL.Path,
		},
		Keyword: c.Keyword,
		Canvas:  NewCanvasView(c),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, "home", data); err != nil {
		h.logger.Error("render failed", zap.String("template", "home"), zap.Error(err))
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
}

// Canvas renders only the canvas fragment (GET /canvas).
func (h *Handlers) Canvas(w http.ResponseWriter, r *http.Request) {
	c := h.composer.Compose(r.Context(), r.URL.Query().Get("keyword"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.RenderPartial(w, "canvas", NewCanvasView(c)); err != nil {
		h.logger.Error("render failed", zap.String("template", "canvas"), zap.Error(err))
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
}

// providerFlash returns a page notice when no section has a live provider.
func (h *Handlers) providerFlash() *FlashMessage {
	for _, ok := range h.configured {
		if ok {
			return nil
		}
	}
	return &FlashMessage{
		Type:    string(canvas.LevelWarning),
		Message: "No providers are configured, so every section shows fallback content. Set the API keys in .env to go live.",
	}
}

// CanvasJSON returns the canvas as JSON (GET /api/canvas).
func (h *Handlers) CanvasJSON(w http.ResponseWriter, r *http.Request) {
	c := h.composer.Compose(r.Context(), r.URL.Query().Get("keyword"))
	h.writeJSON(w, http.StatusOK, newCanvasResponse(c))
}

// Healthz reports liveness and which providers are configured (GET /healthz).
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"providers": h.configured,
	})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("writing response failed", zap.Error(err))
	}
}
