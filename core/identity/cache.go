package identity

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedMetadata is a metadata lookup result with its fetch time.
type cachedMetadata struct {
	meta    *Metadata
	fetched time.Time
}

// metadataCache holds canonical metadata keyed by discovery-service key.
// Concurrent misses for the same key share one upstream request.
type metadataCache struct {
	mu      sync.RWMutex
	entries map[string]cachedMetadata
	ttl     time.Duration
	sf      singleflight.Group
	now     func() time.Time
}

func newMetadataCache(ttl time.Duration) *metadataCache {
	return &metadataCache{
		entries: make(map[string]cachedMetadata),
		ttl:     ttl,
		now:     time.Now,
	}
}

// expired returns true if the entry is older than the TTL. A zero TTL disables caching.
func (c *metadataCache) expired(e cachedMetadata) bool {
	if c.ttl == 0 {
		return true
	}
	return c.now().Sub(e.fetched) > c.ttl
}

// getOrFetch returns cached metadata for key or calls fetch. Errors are never cached.
func (c *metadataCache) getOrFetch(ctx context.Context, key string, fetch func(context.Context, string) (*Metadata, error)) (*Metadata, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && !c.expired(entry) {
		return entry.meta, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		entry, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && !c.expired(entry) {
			return entry.meta, nil
		}

		meta, err := fetch(ctx, key)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[key] = cachedMetadata{meta: meta, fetched: c.now()}
			c.mu.Unlock()
		}
		return meta, nil
	})
	if err != nil {
		return nil, err
	}
	meta, _ := result.(*Metadata)
	return meta, nil
}

// invalidate drops every cached entry.
func (c *metadataCache) invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cachedMetadata)
	c.mu.Unlock()
}
