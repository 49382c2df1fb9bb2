package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Logger interface for logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}

// Client wraps redis.Client with common operations and instrumentation
type Client struct {
	redis  *redis.Client
	logger Logger
}

// NewClient creates a new Redis client wrapper
func NewClient(redisClient *redis.Client, logger Logger) *Client {
	return &Client{
		redis:  redisClient,
		logger: logger,
	}
}

// GetUnderlying returns the underlying redis.Client for advanced operations
func (c *Client) GetUnderlying() *redis.Client {
	return c.redis
}

// Ping checks connectivity
func (c *Client) Ping(ctx context.Context) error {
	if err := c.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Set sets a key with optional expiration (0 = no expiration)
func (c *Client) Set(ctx context.Context, key, value string, expiry time.Duration) error {
	err := c.redis.Set(ctx, key, value, expiry).Err()
	if err != nil {
		c.logger.Error("redis SET failed", "key", key, "error", err)
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	c.logger.Debug("redis SET", "key", key)
	return nil
}

// Get retrieves a value by key. Returns ErrNotFound when the key is absent.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		c.logger.Debug("redis GET key not found", "key", key)
		return "", ErrNotFound
	}
	if err != nil {
		c.logger.Error("redis GET failed", "key", key, "error", err)
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	c.logger.Debug("redis GET", "key", key)
	return val, nil
}

// GetMultiple retrieves multiple keys using pipeline (single network round-trip).
// Keys that don't exist are omitted from the result.
func (c *Client) GetMultiple(ctx context.Context, keys []string) (map[string]string, error) {
	if len(keys) == 0 {
		return make(map[string]string), nil
	}

	pipe := c.redis.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))

	for i, key := range keys {
		cmds[i] = pipe.Get(ctx, key)
	}

	_, err := pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		c.logger.Error("redis pipeline GET failed", "key_count", len(keys), "error", err)
		return nil, fmt.Errorf("failed to get multiple keys: %w", err)
	}

	result := make(map[string]string)
	for i, cmd := range cmds {
		val, err := cmd.Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			c.logger.Warn("redis GET failed for key in pipeline", "key", keys[i], "error", err)
			continue
		}
		result[keys[i]] = val
	}

	c.logger.Debug("redis pipeline GET", "requested", len(keys), "found", len(result))
	return result, nil
}

// Delete removes keys
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	err := c.redis.Del(ctx, keys...).Err()
	if err != nil {
		c.logger.Error("redis DEL failed", "keys", keys, "error", err)
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	c.logger.Debug("redis DEL", "keys", keys)
	return nil
}

// AddToSortedSet adds a member scored for range lookups
func (c *Client) AddToSortedSet(ctx context.Context, key, member string, score float64) error {
	err := c.redis.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err()
	if err != nil {
		c.logger.Error("redis ZADD failed", "key", key, "error", err)
		return fmt.Errorf("failed to zadd to %s: %w", key, err)
	}
	c.logger.Debug("redis ZADD", "key", key, "member", member)
	return nil
}

// RemoveFromSortedSet removes a member
func (c *Client) RemoveFromSortedSet(ctx context.Context, key, member string) error {
	err := c.redis.ZRem(ctx, key, member).Err()
	if err != nil {
		c.logger.Error("redis ZREM failed", "key", key, "error", err)
		return fmt.Errorf("failed to zrem from %s: %w", key, err)
	}
	c.logger.Debug("redis ZREM", "key", key, "member", member)
	return nil
}

// RangeSortedSet returns all members ordered by score ascending
func (c *Client) RangeSortedSet(ctx context.Context, key string) ([]string, error) {
	members, err := c.redis.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		c.logger.Error("redis ZRANGE failed", "key", key, "error", err)
		return nil, fmt.Errorf("failed to zrange %s: %w", key, err)
	}
	c.logger.Debug("redis ZRANGE", "key", key, "count", len(members))
	return members, nil
}

// Pipeline batches multiple Redis operations for better performance
type Pipeline struct {
	pipe   redis.Pipeliner
	client *Client
}

// NewPipeline creates a new pipeline for batching operations
func (c *Client) NewPipeline() *Pipeline {
	return &Pipeline{
		pipe:   c.redis.Pipeline(),
		client: c,
	}
}

// Set queues a SET operation in the pipeline
func (p *Pipeline) Set(ctx context.Context, key, value string, expiry time.Duration) {
	p.pipe.Set(ctx, key, value, expiry)
}

// AddToSortedSet queues a ZADD operation in the pipeline
func (p *Pipeline) AddToSortedSet(ctx context.Context, key, member string, score float64) {
	p.pipe.ZAdd(ctx, key, redis.Z{Score: score, Member: member})
}

// Delete queues a DEL operation in the pipeline
func (p *Pipeline) Delete(ctx context.Context, keys ...string) {
	p.pipe.Del(ctx, keys...)
}

// RemoveFromSortedSet queues a ZREM operation in the pipeline
func (p *Pipeline) RemoveFromSortedSet(ctx context.Context, key, member string) {
	p.pipe.ZRem(ctx, key, member)
}

// Exec executes all queued operations in the pipeline
func (p *Pipeline) Exec(ctx context.Context) error {
	_, err := p.pipe.Exec(ctx)
	if err != nil {
		p.client.logger.Error("redis pipeline exec failed", "error", err)
		return fmt.Errorf("failed to execute pipeline: %w", err)
	}
	p.client.logger.Debug("redis pipeline executed successfully")
	return nil
}
