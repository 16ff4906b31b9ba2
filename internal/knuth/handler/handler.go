// ============================================================================
// knuth - Math Typesetting Service
// ============================================================================
//
// Package:     handler
// Description: HTTP API and live-preview websocket for the render service
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
	"github.com/msto63/knuth/foundation/texmath/registry"
	"github.com/msto63/knuth/internal/knuth/api"
	"github.com/msto63/knuth/internal/knuth/service"
	coreGrpc "github.com/msto63/knuth/pkg/core/grpc"
	"github.com/msto63/knuth/pkg/core/health"
	"github.com/msto63/knuth/pkg/core/logging"
)

// MaxBodySize limits request bodies
const MaxBodySize = 1 << 20

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status  string               `json:"status"`
	Version string               `json:"version"`
	Uptime  string               `json:"uptime"`
	Checks  []health.CheckResult `json:"checks,omitempty"`
}

// SymbolsResponse lists the supported commands
type SymbolsResponse struct {
	Symbols    []registry.Entry `json:"symbols"`
	Categories []string         `json:"categories"`
	Total      int              `json:"total"`
}

// Handler handles HTTP requests for the render API
type Handler struct {
	service   *service.Service
	health    *health.Registry
	ws        *WebSocketHandler
	logger    *logging.Logger
	startTime time.Time
	version   string
}

// NewHandler creates a new API handler. registry may be nil.
func NewHandler(version string, svc *service.Service, registry *health.Registry) *Handler {
	return &Handler{
		service:   svc,
		health:    registry,
		ws:        NewWebSocketHandler(svc),
		logger:    logging.New("knuth-http"),
		startTime: time.Now(),
		version:   version,
	}
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

	requestID := r.Header.Get(coreGrpc.RequestIDHeader)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	w.Header().Set(coreGrpc.RequestIDHeader, requestID)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	path := strings.Trim(r.URL.Path, "/")

	switch path {
	case "healthz":
		h.handleHealth(w, r)
	case "api/render":
		h.handleRender(w, r)
	case "api/parse":
		h.handleParse(w, r)
	case "api/symbols":
		h.handleSymbols(w, r)
	case "api/stats":
		h.handleStats(w, r)
	case "ws":
		h.ws.ServeHTTP(w, r)
	default:
		h.writeError(w, http.StatusNotFound, "not_found", "Unknown endpoint: /"+path, nil)
	}
}

func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use POST", nil)
		return
	}

	var req api.RenderRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.Render(r.Context(), service.RenderRequest{Input: req.Input, Style: req.Style})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, api.NewRenderResponse(result))
}

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use POST", nil)
		return
	}

	var req api.ParseRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.Parse(r.Context(), req.Input)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	resp, err := api.NewParseResponse(result)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSymbols(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", nil)
		return
	}

	reg := registry.Default()
	entries := reg.Entries()
	if category := r.URL.Query().Get("category"); category != "" {
		filtered := entries[:0:0]
		for _, e := range entries {
			if e.Category == category {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	h.writeJSON(w, http.StatusOK, SymbolsResponse{
		Symbols:    entries,
		Categories: reg.Categories(),
		Total:      len(entries),
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", nil)
		return
	}
	h.writeJSON(w, http.StatusOK, h.service.Stats(r.Context()))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", nil)
		return
	}

	resp := HealthResponse{
		Status:  string(health.StatusHealthy),
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	}
	if h.health != nil {
		report := h.health.Check(r.Context())
		resp.Status = string(report.Status)
		resp.Checks = report.Checks
	}

	status := http.StatusOK
	if resp.Status == string(health.StatusUnhealthy) {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, resp)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "Request body too large", nil)
			return false
		}
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body", nil)
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	h.writeJSON(w, status, resp)
}

// writeServiceError maps the error code to an HTTP status; parse and
// layout errors carry their position in the details
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	code := mdwerror.GetCode(err)
	if !code.IsUserError() {
		h.logger.Error("Request failed", "error", err)
	}
	h.writeError(w, code.HTTPStatus(), string(code), err.Error(), errorDetails(err))
}

func errorDetails(err error) map[string]string {
	var mp coreGrpc.MetadataProvider
	if errors.As(err, &mp) {
		return mp.Metadata()
	}
	return nil
}
