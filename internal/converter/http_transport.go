package converter

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Bahjat/castify/internal/castify"
	"github.com/Bahjat/castify/internal/model"
	"github.com/Bahjat/castify/internal/platform/errs"
)

const (
	requestTimeout = 45 * time.Second
	maxRequestBody = 1 << 20 // 1 MB
)

// Transport handles HTTP requests for cast generation and preview.
type Transport struct {
	service *Service
	logger  *slog.Logger
}

// NewTransport creates an HTTP transport backed by the given service.
func NewTransport(service *Service, logger *slog.Logger) *Transport {
	return &Transport{service: service, logger: logger}
}

// RegisterRoutes attaches the transport's handlers to the given mux.
func (t *Transport) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/generate-cast", t.handleGenerate)
	mux.HandleFunc("POST /api/preview-cast", t.handlePreview)
}

func (t *Transport) handleGenerate(w http.ResponseWriter, r *http.Request) {
	videoURL, ok := t.decodeRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := t.service.Generate(ctx, videoURL)
	if err != nil {
		t.renderAppError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, model.CastResponse{
		Success:    true,
		CastHash:   result.Hash,
		CastText:   result.Text,
		CastEmbeds: result.Embeds,
		CastURL:    castify.CastURL(result.Hash),
	})
}

func (t *Transport) handlePreview(w http.ResponseWriter, r *http.Request) {
	videoURL, ok := t.decodeRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	payload, err := t.service.Preview(ctx, videoURL)
	if err != nil {
		t.renderAppError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, model.PreviewResponse{
		Success:     true,
		CastText:    payload.Text,
		CastEmbeds:  payload.Embeds,
		ComposerURL: castify.ComposerURL(payload),
	})
}

// decodeRequest reads the JSON body and writes a 400 itself when it cannot.
// An empty videoUrl is passed through so the pipeline reports it.
func (t *Transport) decodeRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req model.ConversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.renderError(w, http.StatusBadRequest, "Invalid JSON sent.")
		return "", false
	}
	return strings.TrimSpace(req.VideoURL), true
}

func (t *Transport) renderAppError(w http.ResponseWriter, err error) {
	appErr := errs.Classify(err)
	t.renderError(w, appErr.StatusCode(), appErr.Message)
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message string) {
	t.renderJSON(w, status, model.ErrorResponse{Error: message})
}
