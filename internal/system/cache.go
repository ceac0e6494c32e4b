package system

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"accrete-server/internal/accrete"
	sharedredis "accrete-server/internal/shared/redis"

	"github.com/redis/go-redis/v9"
)

// Cache holds generated systems by GenerateParams.CacheKey. Generation is
// deterministic, so an entry never goes stale; the TTL only bounds memory.
type Cache interface {
	Get(ctx context.Context, key string) (*accrete.System, bool)
	Set(ctx context.Context, key string, sys *accrete.System)
}

// NewCache uses Redis when a client is given and an in-process map
// otherwise. A zero ttl keeps entries until evicted.
func NewCache(client *sharedredis.Client, ttl time.Duration, logger *slog.Logger) Cache {
	if client == nil || client.Client == nil {
		logger.Debug("Using in-memory system cache", "ttl", ttl)
		return newMemoryCache(ttl, defaultMemoryEntries)
	}
	logger.Debug("Using Redis system cache", "ttl", ttl)
	return &redisCache{client: client.Client, ttl: ttl, logger: logger}
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func (c *redisCache) Get(ctx context.Context, key string) (*accrete.System, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("System cache read failed", "component", "system_cache", "key", key, "error", err)
		}
		return nil, false
	}

	var sys accrete.System
	if err := json.Unmarshal(data, &sys); err != nil {
		c.logger.Warn("Discarding undecodable cache entry", "component", "system_cache", "key", key, "error", err)
		return nil, false
	}
	return &sys, true
}

func (c *redisCache) Set(ctx context.Context, key string, sys *accrete.System) {
	data, err := json.Marshal(sys)
	if err != nil {
		c.logger.Warn("Failed to encode system for cache", "component", "system_cache", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("System cache write failed", "component", "system_cache", "key", key, "error", err)
	}
}

const defaultMemoryEntries = 1024

type memoryEntry struct {
	sys     *accrete.System
	expires time.Time
}

type memoryCache struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func newMemoryCache(ttl time.Duration, maxEntries int) *memoryCache {
	return &memoryCache{
		entries:    make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *memoryCache) Get(_ context.Context, key string) (*accrete.System, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || (c.ttl > 0 && c.now().After(entry.expires)) {
		return nil, false
	}
	return entry.sys, true
}

func (c *memoryCache) Set(_ context.Context, key string, sys *accrete.System) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}
	c.entries[key] = memoryEntry{sys: sys, expires: c.now().Add(c.ttl)}
}

// evictLocked drops expired entries, or one arbitrary entry when none has
// expired.
func (c *memoryCache) evictLocked() {
	if c.ttl > 0 {
		now := c.now()
		for key, entry := range c.entries {
			if now.After(entry.expires) {
				delete(c.entries, key)
			}
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}
