// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/taskora/internal/platform/constants"
)

// RedisTokenDenylist implements TokenDenylist using Redis.
//
// Entries carry a TTL equal to the remaining life of the revoked token, so
// the denylist stays small: an entry disappears exactly when the token it
// blocks would have expired anyway.
type RedisTokenDenylist struct {
	client *redis.Client
}

// NewTokenDenylist creates a new Redis-backed TokenDenylist.
func NewTokenDenylist(client *redis.Client) *RedisTokenDenylist {
	return &RedisTokenDenylist{client: client}
}

/*
Revoke records a token signature as invalid for the given duration.

Parameters:
  - context: context.Context
  - signature: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisTokenDenylist) Revoke(context context.Context, signature string, ttl time.Duration) error {
	key := constants.RedisPrefixDenylist + signature

	if err := repository.client.Set(context, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_denylist_revoke_failed: %w", err)
	}

	return nil
}

/*
IsRevoked reports whether a token signature has been denylisted.

Parameters:
  - context: context.Context
  - signature: string

Returns:
  - bool: true if present
  - error: Execution errors
*/
func (repository *RedisTokenDenylist) IsRevoked(context context.Context, signature string) (bool, error) {
	key := constants.RedisPrefixDenylist + signature

	count, err := repository.client.Exists(context, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis_denylist_lookup_failed: %w", err)
	}

	return count > 0, nil
}
