package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinilab/auth-service/internal/api/metrics"
)

// Limiter decides whether one more attempt from key is within budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// LoginRateLimit throttles login attempts per client IP. When the limiter
// backend errors the request is let through: an unreachable Redis must not
// lock every user out.
func LoginRateLimit(limiter Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, retryAfter, err := limiter.Allow(c.Request().Context(), ip)
			if err != nil {
				log.Error().Err(err).Str("client_ip", ip).Msg("rate limiter unavailable")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.Inc()
				log.Warn().Str("client_ip", ip).Msg("login rate limit exceeded")
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
			}

			return next(c)
		}
	}
}
