package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 3 * time.Second

// Check probes one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

// HealthHandler serves GET /health (liveness) and GET /health/ready
// (readiness against the registered dependency checks).
type HealthHandler struct {
	checks map[string]Check
	now    func() time.Time
}

func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{checks: checks, now: time.Now}
}

// Liveness confirms the process is serving requests.
//
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  livenessResponse
// @Router   /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, livenessResponse{
		Status:    "OK",
		Message:   "Emotion AI Backend is running",
		Timestamp: h.now().UTC(),
	})
}

// Readiness pings every dependency and reports 503 if any is down.
//
// @Summary  Readiness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  readinessResponse
// @Failure  503  {object}  readinessResponse
// @Router   /health/ready [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, readinessResponse{Status: "degraded", Dependencies: deps})
	}
	return c.JSON(http.StatusOK, readinessResponse{Status: "ok", Dependencies: deps})
}

// Index lists the public endpoints.
//
// @Summary  API index
// @Tags     health
// @Produce  json
// @Success  200  {object}  apiIndexResponse
// @Router   /api [get]
func (h *HealthHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, apiIndexResponse{
		Message: "Welcome to Emotion AI API",
		Version: "1.0.0",
		Endpoints: map[string]any{
			"auth": map[string]string{
				"signup": "POST /api/auth/signup",
				"login":  "POST /api/auth/login",
			},
			"predictions": map[string]string{
				"predict":   "POST /api/predictions/predict",
				"reports":   "GET /api/predictions/reports",
				"userStats": "GET /api/predictions/user-stats",
			},
			"health": "GET /health",
		},
		Docs: "/swagger/index.html",
	})
}
