package ratelimit

import (
	"context"
	"time"

	"github.com/dmitrijs2005/nutriscan/internal/logging"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "nutriscan:ratelimit:"

type redisLimiter struct {
	client  *redis.Client
	logger  logging.Logger
	timeout time.Duration
}

// NewRedisLimiter connects to Redis and returns a Limiter shared by every
// server instance using the same database. The connection is verified with
// PING before returning.
func NewRedisLimiter(ctx context.Context, addr, password string, db int, logger logging.Logger) (Limiter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return newRedisLimiter(client, logger), nil
}

func newRedisLimiter(client *redis.Client, logger logging.Logger) *redisLimiter {
	return &redisLimiter{client: client, logger: logger, timeout: 250 * time.Millisecond}
}

// Allow fails open: a Redis error lets the request through.
func (l *redisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) Decision {
	if limit <= 0 {
		return Decision{Allowed: true}
	}
	if window <= 0 {
		window = time.Minute
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	redisKey := redisKeyPrefix + key
	counter, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		l.logger.Error(ctx, "redis rate limiter error", "op", "incr", "error", err)
		return Decision{Allowed: true}
	}
	if counter == 1 {
		if err := l.client.Expire(ctx, redisKey, window).Err(); err != nil {
			l.logger.Error(ctx, "redis rate limiter error", "op", "expire", "error", err)
		}
	}

	ttl, err := l.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl <= 0 {
		ttl = window
	}

	return Decision{
		Allowed:   int(counter) <= limit,
		Count:     int(counter),
		WindowEnd: time.Now().Add(ttl),
	}
}

func (l *redisLimiter) Close() {
	if l.client != nil {
		_ = l.client.Close()
	}
}
