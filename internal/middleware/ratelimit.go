package middleware

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/config"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/ratelimit"
)

// RateLimiter applies a per-client token bucket to the routes it wraps.
func RateLimiter(cfg config.RateLimitConfig, scope string) echo.MiddlewareFunc {
	if ratelimit.NewLimiter(cfg) == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	var (
		mu       sync.Mutex
		limiters = map[string]*rate.Limiter{}
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()

			mu.Lock()
			limiter, ok := limiters[key]
			if !ok {
				limiter = ratelimit.NewLimiter(cfg)
				limiters[key] = limiter
			}
			allowed := limiter.Allow()
			mu.Unlock()

			if !allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"success": false,
					"error":   "rate_limited",
					"message": scope + " rate limit exceeded",
				})
			}

			return next(c)
		}
	}
}
