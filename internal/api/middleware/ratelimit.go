package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kgl-groceries/produce-api/internal/api/metrics"
	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

// Limiter decides whether one more attempt from client is allowed.
type Limiter interface {
	Allow(ctx context.Context, client string) (bool, time.Duration, error)
}

// RateLimit throttles requests per client IP. When the limiter itself fails
// the request is let through and the failure logged.
func RateLimit(limiter Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, retry, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("ip", c.RealIP()).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !ok {
				metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(retry.Round(time.Second)/time.Second)))
				return domain.ErrRateLimited
			}
			return next(c)
		}
	}
}
