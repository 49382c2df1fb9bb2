package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/assetbay/assetbay/common/ratelimit"
)

// LimitChecker is what the middleware needs from the rate limiter
type LimitChecker interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*ratelimit.Result, error)
}

// RateLimitByIP guards a route group with a per-client fixed window. The
// window is keyed by scope and client IP. A limiter error fails open: the
// request proceeds rather than turning a Redis outage into a full outage.
func RateLimitByIP(limiter LimitChecker, scope string, limit int64, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := scope + ":" + c.RealIP()

			result, err := limiter.Allow(c.Request().Context(), key, limit, window)
			if err != nil {
				return next(c)
			}

			if !result.Allowed {
				c.Response().Header().Set(echo.HeaderRetryAfter, strconv.FormatInt(result.RetryAfterSeconds, 10))
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":               "rate_limit_exceeded",
					"retry_after_seconds": result.RetryAfterSeconds,
				})
			}

			return next(c)
		}
	}
}
