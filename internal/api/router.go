package api

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/emotionai/emotion-api/docs"
	"github.com/emotionai/emotion-api/internal/api/handler"
	"github.com/emotionai/emotion-api/internal/api/middleware"
	"github.com/emotionai/emotion-api/internal/api/site"
)

// multipartSlack covers the form fields and part headers around the audio
// payload, so an upload just over the limit still reaches the size check
// and gets a descriptive 400 instead of a bare 413.
const multipartSlack = 64 << 10

// RouterDeps carries everything NewRouter wires into the Echo instance.
type RouterDeps struct {
	Auth        *handler.AuthHandler
	Predictions *handler.PredictionHandler
	Health      *handler.HealthHandler

	// Limiter guards the auth routes. Nil disables rate limiting.
	Limiter    middleware.Limiter
	RateWindow time.Duration
	// TrustedProxies may set X-Forwarded-For. Without any, the client IP is
	// the TCP peer and forwarding headers are ignored.
	TrustedProxies []*net.IPNet

	AllowedOrigins []string
	MaxUploadBytes int64
	Logger         zerolog.Logger

	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// process-wide default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.IPExtractor = ipExtractor(deps.TrustedProxies)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     deps.AllowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "emotionai",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(site.Middleware())

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	if deps.Limiter != nil {
		auth.Use(middleware.RateLimit(deps.Limiter, deps.RateWindow, deps.Logger))
	}
	auth.POST("/signup", deps.Auth.Signup)
	auth.POST("/login", deps.Auth.Login)

	// --- Prediction routes ---
	predictions := e.Group("/api/predictions")
	predictions.POST("/predict", deps.Predictions.Predict,
		echomiddleware.BodyLimit(fmt.Sprintf("%dB", deps.MaxUploadBytes+multipartSlack)))
	predictions.GET("/reports", deps.Predictions.Reports)
	predictions.GET("/user-stats", deps.Predictions.UserStats)

	e.GET("/api", deps.Health.Index)

	// --- Health probes ---
	e.GET("/health", deps.Health.Liveness)
	e.GET("/health/ready", deps.Health.Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// ipExtractor decides where c.RealIP comes from. Rate limit keys depend on
// it, so client-supplied headers are only read behind a listed proxy.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, r := range trusted {
		opts = append(opts, echo.TrustIPRange(r))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
