// Package flood provides a Redis-backed fixed-window attempt limiter.
//
// It gates abuse-prone operations (such as second-factor code verification)
// by counting attempts per identifier within a rolling window. State lives in
// Redis so the limit holds across instances.
package flood

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLimitReached is returned by Register when the identifier is over its limit.
var ErrLimitReached = errors.New("flood: attempt limit reached")

// Guard limits the number of attempts per identifier within a time window.
type Guard interface {
	// Register counts one attempt and reports ErrLimitReached when over the limit.
	Register(ctx context.Context, identifier string) error
	// Clear removes the attempt counter for the identifier.
	Clear(ctx context.Context, identifier string) error
}

const (
	defaultWindow      = 5 * time.Minute
	defaultMaxAttempts = 6
)

// RedisGuard is a Guard backed by a Redis counter with expiry.
type RedisGuard struct {
	client      *redis.Client
	prefix      string
	window      time.Duration
	maxAttempts int64
}

// New creates a RedisGuard. Non-positive window or maxAttempts fall back to
// defaults (5 minutes, 6 attempts).
func New(client *redis.Client, window time.Duration, maxAttempts int64) *RedisGuard {
	if window <= 0 {
		window = defaultWindow
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	return &RedisGuard{
		client:      client,
		prefix:      "flood:",
		window:      window,
		maxAttempts: maxAttempts,
	}
}

// Register counts one attempt for the identifier.
//
// The first attempt in a window creates the counter with the window TTL, so
// the whole window expires together. The attempt that crosses the limit and
// all attempts after it return ErrLimitReached.
func (g *RedisGuard) Register(ctx context.Context, identifier string) error {
	fk := g.prefix + identifier

	count, err := g.client.Incr(ctx, fk).Result()
	if err != nil {
		return err
	}

	if count == 1 {
		if err := g.client.Expire(ctx, fk, g.window).Err(); err != nil {
			return err
		}
	}

	if count > g.maxAttempts {
		return ErrLimitReached
	}

	return nil
}

// Clear removes the attempt counter, typically after a successful attempt.
func (g *RedisGuard) Clear(ctx context.Context, identifier string) error {
	return g.client.Del(ctx, g.prefix+identifier).Err()
}

// Key builds a flood identifier from an operation name and a numeric subject.
func Key(operation string, subject int64) string {
	return operation + ":" + strconv.FormatInt(subject, 10)
}
