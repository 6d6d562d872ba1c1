package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/usermanager/user-management-api/internal/api/metrics"
)

const scopeTTL = 5 * time.Minute

// ScopeCache caches the set of client ids managed by each manager, backed by
// Redis. Key format: scope:clients:<manager_id>. Entries expire after
// scopeTTL and are invalidated explicitly when a client is created or
// deleted.
type ScopeCache struct {
	client *redis.Client
}

// NewScopeCache creates a ScopeCache wrapping the given Redis client.
func NewScopeCache(client *redis.Client) *ScopeCache {
	return &ScopeCache{client: client}
}

// GetClientIDs returns the cached client ids for a manager and whether an
// entry was present.
func (c *ScopeCache) GetClientIDs(ctx context.Context, managerID string) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, c.key(managerID)).Result()
	if errors.Is(err, redis.Nil) {
		metrics.ScopeCacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.ScopeCacheLookupsTotal.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("scope cache get: %w", err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		metrics.ScopeCacheLookupsTotal.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("scope cache decode: %w", err)
	}
	metrics.ScopeCacheLookupsTotal.WithLabelValues("hit").Inc()
	return ids, true, nil
}

// SetClientIDs stores the client-id set for a manager (expires after scopeTTL).
func (c *ScopeCache) SetClientIDs(ctx context.Context, managerID string, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("scope cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(managerID), raw, scopeTTL).Err()
}

// Invalidate drops the cached entry for a manager.
func (c *ScopeCache) Invalidate(ctx context.Context, managerID string) error {
	return c.client.Del(ctx, c.key(managerID)).Err()
}

func (c *ScopeCache) key(managerID string) string {
	return fmt.Sprintf("scope:clients:%s", managerID)
}
