package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	mdwlog "github.com/msto63/knuth/foundation/core/log"
	"github.com/msto63/knuth/internal/knuth/api"
	"github.com/msto63/knuth/internal/knuth/service"
	"github.com/msto63/knuth/pkg/core/health"
	"github.com/msto63/knuth/pkg/core/logging"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	cfg := service.DefaultConfig()
	cfg.Logger = logging.Wrap(mdwlog.Discard())
	svc, err := service.NewService(cfg)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	t.Cleanup(svc.Close)

	reg := health.NewRegistry("knuth", "test")
	reg.Register(health.PingCheck("engine", svc.Ping))
	return NewHandler("test", svc, reg)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Render(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/api/render", `{"input":"x","style":"display"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing request id header")
	}

	var resp api.RenderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Style != "display" || resp.Text != "x" {
		t.Errorf("response = %+v", resp)
	}
	if !strings.Contains(resp.HTML, `class="mathit"`) {
		t.Errorf("HTML = %s", resp.HTML)
	}
}

func TestHandler_RenderErrors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name   string
		method string
		body   string
		status int
		code   string
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed, "method_not_allowed"},
		{"bad json", http.MethodPost, `{"input":`, http.StatusBadRequest, "invalid_request"},
		{"parse error", http.MethodPost, `{"input":"x^^2"}`, http.StatusBadRequest, "DOUBLE_SUPERSCRIPT"},
		{"bad style", http.MethodPost, `{"input":"x","style":"huge"}`, http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, "/api/render", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if resp.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
		})
	}
}

func TestHandler_RenderErrorDetails(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/api/render", `{"input":"x^^2"}`)
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Details["position"] == "" {
		t.Errorf("details = %v, want a position", resp.Details)
	}
}

func TestHandler_BodyTooLarge(t *testing.T) {
	h := newTestHandler(t)

	body := `{"input":"` + strings.Repeat("x", MaxBodySize) + `"}`
	rec := do(t, h, http.MethodPost, "/api/render", body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestHandler_Parse(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/api/parse", `{"input":"\\frac{a}{b}"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp api.ParseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !strings.HasPrefix(resp.Formatted, "frac") {
		t.Errorf("Formatted = %q", resp.Formatted)
	}
}

func TestHandler_Symbols(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/api/symbols", "")
	var all SymbolsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if all.Total == 0 || all.Total != len(all.Symbols) || len(all.Categories) == 0 {
		t.Fatalf("symbols = %+v", all)
	}

	rec = do(t, h, http.MethodGet, "/api/symbols?category=color", "")
	var colors SymbolsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &colors); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if colors.Total == 0 || colors.Total >= all.Total {
		t.Errorf("color total = %d of %d", colors.Total, all.Total)
	}
	for _, e := range colors.Symbols {
		if e.Category != "color" {
			t.Errorf("entry %+v in color listing", e)
		}
	}
}

func TestHandler_HealthAndStats(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var hr HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &hr); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if hr.Status != "healthy" || hr.Version != "test" || len(hr.Checks) != 1 {
		t.Errorf("health = %+v", hr)
	}

	do(t, h, http.MethodPost, "/api/render", `{"input":"y"}`)
	rec = do(t, h, http.MethodGet, "/api/stats", "")
	var stats service.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if stats.Renders != 1 {
		t.Errorf("renders = %d, want 1", stats.Renders)
	}
}

func TestHandler_Routing(t *testing.T) {
	h := newTestHandler(t)

	if rec := do(t, h, http.MethodGet, "/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d", rec.Code)
	}
	rec := do(t, h, http.MethodOptions, "/api/render", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("preflight status = %d, headers = %v", rec.Code, rec.Header())
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("request id = %q, want req-42", got)
	}
}

func TestWebSocket(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.DialContext(context.Background(), url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	exchange := func(msg string) map[string]interface{} {
		t.Helper()
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("WriteMessage() error = %v", err)
		}
		var resp map[string]interface{}
		if err := conn.ReadJSON(&resp); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		return resp
	}

	pong := exchange(`{"type":"ping","id":"1"}`)
	if pong["type"] != "pong" || pong["id"] != "1" {
		t.Errorf("ping reply = %v", pong)
	}
	session, _ := pong["session"].(string)
	if session == "" {
		t.Error("missing session id")
	}

	result := exchange(`{"type":"render","id":"2","payload":{"input":"x^2"}}`)
	if result["type"] != "result" || result["session"] != session {
		t.Fatalf("render reply = %v", result)
	}
	payload := result["payload"].(map[string]interface{})
	if payload["text"] != "x2" {
		t.Errorf("text = %v", payload["text"])
	}

	failed := exchange(`{"type":"render","payload":{"input":"x^^2"}}`)
	if failed["type"] != "error" {
		t.Fatalf("error reply = %v", failed)
	}
	if code := failed["payload"].(map[string]interface{})["code"]; code != "DOUBLE_SUPERSCRIPT" {
		t.Errorf("code = %v", code)
	}

	unknown := exchange(`{"type":"shout"}`)
	if code := unknown["payload"].(map[string]interface{})["code"]; code != "unknown_type" {
		t.Errorf("code = %v", code)
	}
}
