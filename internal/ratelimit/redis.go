package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Redis is a fixed-window limiter whose counters are shared across instances.
// It fails open: if Redis is unreachable the attempt is allowed and a warning
// is logged, so a cache outage does not take logins down with it.
type Redis struct {
	client *redis.Client
	limit  int
	period time.Duration
	log    zerolog.Logger
}

// NewRedis returns a limiter allowing limit attempts per period for each key,
// backed by the given Redis client.
func NewRedis(client *redis.Client, limit int, period time.Duration, log zerolog.Logger) *Redis {
	if limit <= 0 {
		limit = 5
	}
	if period <= 0 {
		period = time.Minute
	}
	return &Redis{client: client, limit: limit, period: period, log: log}
}

// Allow increments the key's counter and reports whether the attempt is within
// budget. The TTL is set only on the first hit, giving fixed-window semantics.
func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:login:%s", key)

	count, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing attempt")
		return true, nil
	}
	if count == 1 {
		if err := r.client.Expire(ctx, redisKey, r.period).Err(); err != nil {
			r.log.Warn().Err(err).Str("key", key).Msg("failed to set rate limit window TTL")
		}
	}

	return count <= int64(r.limit), nil
}
