package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/tickethub/ticketing-api/internal/api/metrics"
	"github.com/tickethub/ticketing-api/internal/core/domain"
	"github.com/tickethub/ticketing-api/internal/ratelimit"
)

// LoginRateLimit gates the login route by client IP. It runs before any
// credential verification, so a throttled client costs no bcrypt work and
// learns nothing about account existence from response timing.
func LoginRateLimit(limiter ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				return err
			}
			if !allowed {
				metrics.LoginsThrottledTotal.Inc()
				return domain.ErrTooManyAttempts
			}
			return next(c)
		}
	}
}
