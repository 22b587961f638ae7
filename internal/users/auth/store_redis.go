// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/constants"
	"github.com/al3eon/api-yamdb/internal/platform/ctxutil"
)

// RedisAttemptLimiter implements AttemptLimiter with a fixed-window counter.
type RedisAttemptLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewAttemptLimiter creates a new Redis-backed AttemptLimiter.
func NewAttemptLimiter(client *redis.Client, limit int, window time.Duration) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{client: client, limit: int64(limit), window: window}
}

/*
Hit increments the attempt counter for username.

Description: INCR and EXPIRE NX run in one MULTI block, so the window starts
with the first attempt and is never extended by later ones. If Redis is
unreachable the attempt is allowed and a warning is logged; throttling is a
guard against mail flooding, not part of the sign-in contract.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: apperr.RateLimited when the budget is spent
*/
func (limiter *RedisAttemptLimiter) Hit(context context.Context, username string) error {

	// Use constants for key prefix
	key := constants.RedisPrefixSignupAttempts + strings.ToLower(username)

	pipeline := limiter.client.TxPipeline()
	counter := pipeline.Incr(context, key)
	pipeline.ExpireNX(context, key, limiter.window)
	ttl := pipeline.TTL(context, key)

	if _, err := pipeline.Exec(context); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "signup_limiter_unavailable",
			slog.String("username", username),
			slog.Any("error", fmt.Errorf("redis_signup_attempts_failed: %w", err)),
		)
		return nil
	}

	if counter.Val() > limiter.limit {
		retryAfter := int(ttl.Val().Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		return apperr.RateLimited(retryAfter)
	}

	return nil
}
