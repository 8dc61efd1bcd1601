package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/emotionai/emotion-api/internal/api/metrics"
)

// Limiter decides whether a keyed request is within quota.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests over quota with 429, keyed by route and client
// IP. When the limiter itself fails the request is let through.
func RateLimit(limiter Limiter, retryAfter time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			ok, err := limiter.Allow(c.Request().Context(), route+":"+c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("path", route).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !ok {
				metrics.RateLimitedTotal.WithLabelValues(route).Inc()
				if retryAfter > 0 {
					c.Response().Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
				}
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, please try again later")
			}
			return next(c)
		}
	}
}
