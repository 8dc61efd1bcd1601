package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/emotionai/emotion-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", domain.NewValidationError("Username must be at least 3 characters"), http.StatusBadRequest, "Username must be at least 3 characters"},
		{"conflict", domain.ErrUserExists, http.StatusBadRequest, "Username already exists"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials"},
		{"no reports", domain.ErrNoReports, http.StatusNotFound, "No reports found"},
		{"upstream", fmt.Errorf("%w: status 502", domain.ErrUpstream), http.StatusInternalServerError, "Prediction service error"},
		{"persistence", fmt.Errorf("%w: insert: timeout", domain.ErrPersistence), http.StatusInternalServerError, "Server error"},
		{"route", echo.ErrNotFound, http.StatusNotFound, "Route not found"},
		{"rate limit", echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, please try again later"), http.StatusTooManyRequests, "Too many requests, please try again later"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tc.wantMsg || resp.Message != tc.wantMsg {
				t.Fatalf("expected %q under both keys, got %+v", tc.wantMsg, resp)
			}
		})
	}
}

func TestHTTPErrorHandler_UnknownErrorDoesNotLeak(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("mongo: connection string secret"), c)

	if got := rec.Body.String(); got == "" || strings.Contains(got, "secret") {
		t.Fatalf("internal error detail leaked: %s", got)
	}
}
