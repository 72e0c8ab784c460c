// Package cache implements cache decorators over integration adapters.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chrisemayers/pos-backoffice/internal/application/usecase/reports"
)

const productNameKeyPrefix = "product:name:"

// CachedProductCatalog decorates a reports.ProductCatalog with a Redis
// lookaside cache. Only resolved names are cached; misses always go to the
// underlying catalog so newly registered products show up immediately.
// Cache failures degrade to the underlying catalog and are logged, never
// returned.
type CachedProductCatalog struct {
	inner  reports.ProductCatalog
	client *redis.Client
	ttl    time.Duration
}

// NewCachedProductCatalog creates a new cached product catalog instance.
func NewCachedProductCatalog(inner reports.ProductCatalog, client *redis.Client, ttl time.Duration) *CachedProductCatalog {
	return &CachedProductCatalog{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

// DisplayName resolves a product name, serving repeated lookups from Redis.
func (c *CachedProductCatalog) DisplayName(ctx context.Context, key string) (string, bool, error) {
	cacheKey := productNameKeyPrefix + key

	name, err := c.client.Get(ctx, cacheKey).Result()
	if err == nil {
		return name, true, nil
	}
	if !errors.Is(err, redis.Nil) {
		slog.Warn("product name cache read failed", "key", key, "error", err)
	}

	name, ok, err := c.inner.DisplayName(ctx, key)
	if err != nil || !ok {
		return name, ok, err
	}

	if err := c.client.Set(ctx, cacheKey, name, c.ttl).Err(); err != nil {
		slog.Warn("product name cache write failed", "key", key, "error", err)
	}
	return name, true, nil
}
