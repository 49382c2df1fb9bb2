package ratelimit

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:embed rate_limit.lua
var rateLimitScript string

// Logger interface for logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}

// Result describes one limit check
type Result struct {
	Allowed           bool
	CurrentCount      int64
	Limit             int64
	RetryAfterSeconds int64
}

// Limiter applies fixed-window request limits backed by Redis. The counter
// and its expiry are updated atomically by an embedded Lua script, so
// concurrent checks against the same key never race.
type Limiter struct {
	redis  *redis.Client
	script *redis.Script
	log    Logger
}

// New creates a limiter with the embedded Lua script
func New(redisClient *redis.Client, log Logger) *Limiter {
	return &Limiter{
		redis:  redisClient,
		script: redis.NewScript(rateLimitScript),
		log:    log,
	}
}

// Allow counts one request against the keyed window and reports whether it
// fits under the limit. The key is scoped internally, callers pass a bare
// identifier such as "login:203.0.113.9".
func (l *Limiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (*Result, error) {
	windowSec := int64(window.Seconds())
	if windowSec < 1 {
		windowSec = 1
	}

	raw, err := l.script.Run(ctx, l.redis, []string{"ratelimit:" + key}, limit, windowSec).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed for %s: %w", key, err)
	}

	values, ok := raw.([]interface{})
	if !ok || len(values) != 3 {
		return nil, fmt.Errorf("unexpected rate limit script reply for %s: %v", key, raw)
	}

	allowed, _ := values[0].(int64)
	count, _ := values[1].(int64)
	ttl, _ := values[2].(int64)

	result := &Result{
		Allowed:      allowed == 1,
		CurrentCount: count,
		Limit:        limit,
	}
	if !result.Allowed {
		result.RetryAfterSeconds = ttl
		l.log.Warn("rate limit exceeded", "key", key, "count", count, "limit", limit, "retry_after_sec", ttl)
	}

	return result, nil
}
