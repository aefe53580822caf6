package httpserver

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func performRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return payload
}

func assertErrorPayload(t *testing.T, rec *httptest.ResponseRecorder, exception string) map[string]any {
	t.Helper()
	payload := decodeBody(t, rec)
	if payload["title"] != "Bad Request! Consult the documentation" {
		t.Fatalf("unexpected title %v", payload["title"])
	}
	if payload["status"] != float64(http.StatusBadRequest) {
		t.Fatalf("unexpected status %v", payload["status"])
	}
	if payload["exception"] != exception {
		t.Fatalf("expected exception %s, got %v", exception, payload["exception"])
	}
	if payload["timestamp"] == nil {
		t.Fatalf("missing timestamp")
	}
	details, ok := payload["details"].([]any)
	if !ok || len(details) == 0 {
		t.Fatalf("expected non-empty details, got %v", payload["details"])
	}
	return payload
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter(logDiscard(), nil, Deps{})

	rec := performRequest(t, router, http.MethodGet, "/healthz", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestReadyz_NoDB(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter(logDiscard(), nil, Deps{})

	rec := performRequest(t, router, http.MethodGet, "/readyz", "")

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}
