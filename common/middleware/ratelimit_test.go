package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetbay/assetbay/common/ratelimit"
)

type stubLimiter struct {
	result *ratelimit.Result
	err    error
	keys   []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (*ratelimit.Result, error) {
	s.keys = append(s.keys, key)
	return s.result, s.err
}

func newLimitedServer(limiter LimitChecker) *echo.Echo {
	e := echo.New()
	e.POST("/login", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RateLimitByIP(limiter, "auth", 10, time.Minute))
	return e
}

func TestRateLimitAllowed(t *testing.T) {
	limiter := &stubLimiter{result: &ratelimit.Result{Allowed: true, CurrentCount: 1, Limit: 10}}
	e := newLimitedServer(limiter)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, limiter.keys, 1)
	// Keys are scoped and carry the client address
	assert.Contains(t, limiter.keys[0], "auth:")
}

func TestRateLimitExceeded(t *testing.T) {
	limiter := &stubLimiter{result: &ratelimit.Result{Allowed: false, CurrentCount: 11, Limit: 10, RetryAfterSeconds: 42}}
	e := newLimitedServer(limiter)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get(echo.HeaderRetryAfter))
	assert.Contains(t, rec.Body.String(), "rate_limit_exceeded")
}

func TestRateLimitFailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}
	e := newLimitedServer(limiter)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
