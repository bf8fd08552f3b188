// Package replay provides optional single-use tracking for one-time codes.
//
// The code scheme is stateless: a code stays valid for its whole window and
// nothing server-side forgets it after a successful verify. Whether that is
// acceptable is a policy decision, so single-use enforcement is opt-in. When
// enabled, a successful verify consumes the attempt in an external cache and
// any replay within the validity span is rejected.
package replay

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "identity:otp:used:"

// Guard records consumed verification attempts.
type Guard interface {
	// Consume marks the attempt as used and reports whether this call was the
	// first to do so. TTL should cover the remaining validity of the code.
	Consume(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// RedisGuard implements Guard on a shared redis instance, so enforcement
// holds across replicas.
type RedisGuard struct {
	client *redis.Client
}

// NewRedisGuard creates a redis-backed guard.
func NewRedisGuard(client *redis.Client) *RedisGuard {
	return &RedisGuard{client: client}
}

// Consume marks key as used via SETNX; the first caller wins.
func (g *RedisGuard) Consume(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return g.client.SetNX(ctx, keyPrefix+key, time.Now().Unix(), ttl).Result()
}

// Disabled is a Guard that never rejects, preserving the stateless contract.
type Disabled struct{}

// Consume always reports first use.
func (Disabled) Consume(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}
