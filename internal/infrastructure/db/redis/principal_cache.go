package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/webtodo/todo-system/internal/core/domain"
	"github.com/webtodo/todo-system/internal/core/ports"
)

const principalTTL = 30 * time.Second

// PrincipalCache caches resolved principals in Redis in front of the account
// store, so the auth gate does not hit MongoDB on every request. Entries are
// short-lived and invalidated on account mutation, which bounds how long a
// revoked admin flag or deleted account keeps authenticating.
type PrincipalCache struct {
	client *redis.Client
	source ports.PrincipalDirectory
	ttl    time.Duration
	log    zerolog.Logger
}

func NewPrincipalCache(client *redis.Client, source ports.PrincipalDirectory, log zerolog.Logger) *PrincipalCache {
	return &PrincipalCache{
		client: client,
		source: source,
		ttl:    principalTTL,
		log:    log.With().Str("component", "principal_cache").Logger(),
	}
}

func principalKey(id int) string {
	return fmt.Sprintf("principal:%d", id)
}

// Resolve returns the cached principal when present, falling back to the
// underlying directory on a miss or any Redis failure. Cache errors degrade
// to a direct lookup rather than failing the request.
func (c *PrincipalCache) Resolve(ctx context.Context, id int) (*domain.Principal, error) {
	key := principalKey(id)

	raw, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var p domain.Principal
		if jsonErr := json.Unmarshal([]byte(raw), &p); jsonErr == nil {
			return &p, nil
		}
		c.log.Warn().Str("key", key).Msg("dropping undecodable cache entry")
		c.client.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("cache read failed, resolving directly")
	}

	p, err := c.source.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	if encoded, jsonErr := json.Marshal(p); jsonErr == nil {
		if setErr := c.client.Set(ctx, key, encoded, c.ttl).Err(); setErr != nil {
			c.log.Warn().Err(setErr).Str("key", key).Msg("cache write failed")
		}
	}
	return p, nil
}

// Invalidate drops the cached entry for an account. Called after mutations
// that change identity or role so stale principals do not outlive the TTL.
func (c *PrincipalCache) Invalidate(ctx context.Context, id int) {
	if err := c.client.Del(ctx, principalKey(id)).Err(); err != nil {
		c.log.Warn().Err(err).Int("user_id", id).Msg("cache invalidation failed")
	}
}
