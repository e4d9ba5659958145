// Package cache provides a small in-process cache used to keep hot lookups,
// rooms in particular, off the database on every billing calculation.
package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/roomledger/roomledger/internal/config"
	"github.com/roomledger/roomledger/internal/logger"
)

// Cache is the interface all cache implementations must satisfy
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)
	Delete(ctx context.Context, key string)
	DeleteByPrefix(ctx context.Context, prefix string)
}

// InMemoryCache implements the Cache interface using patrickmn/go-cache
type InMemoryCache struct {
	store *gocache.Cache
	log   *logger.Logger
}

// NewInMemoryCache creates a cache with the configured default TTL and
// cleanup interval.
func NewInMemoryCache(cfg *config.Configuration, log *logger.Logger) *InMemoryCache {
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	cleanup := time.Duration(cfg.Cache.CleanupSeconds) * time.Second
	return &InMemoryCache{
		store: gocache.New(ttl, cleanup),
		log:   log,
	}
}

func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	c.store.Set(key, value, expiration)
}

func (c *InMemoryCache) Delete(ctx context.Context, key string) {
	c.store.Delete(key)
}

func (c *InMemoryCache) DeleteByPrefix(ctx context.Context, prefix string) {
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
		}
	}
}
