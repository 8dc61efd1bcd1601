package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestHealthHandler_Liveness(t *testing.T) {
	e := echo.New()
	h := NewHealthHandler(nil)
	h.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	rec := httptest.NewRecorder()
	if err := h.Liveness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "OK" || resp["message"] != "Emotion AI Backend is running" || resp["timestamp"] != "2026-01-01T00:00:00Z" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	cases := []struct {
		name       string
		checks     map[string]Check
		wantStatus int
	}{
		{"all healthy", map[string]Check{"mongodb": ok, "redis": ok}, http.StatusOK},
		{"redis down", map[string]Check{"mongodb": ok, "redis": down}, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			h := NewHealthHandler(tc.checks)

			if err := h.Readiness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if len(resp.Dependencies) != len(tc.checks) {
				t.Fatalf("expected every dependency reported, got %+v", resp.Dependencies)
			}
			if tc.wantStatus != http.StatusOK && resp.Dependencies["redis"].Error == "" {
				t.Fatalf("expected redis error detail, got %+v", resp.Dependencies["redis"])
			}
		})
	}
}

func TestHealthHandler_Index(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	if err := NewHealthHandler(nil).Index(e.NewContext(httptest.NewRequest(http.MethodGet, "/api", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp apiIndexResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Welcome to Emotion AI API" || resp.Endpoints["health"] != "GET /health" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
