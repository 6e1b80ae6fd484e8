package api

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Aman-CERP/feedlens/internal/feedback"
)

// Cache configuration defaults.
const (
	// DefaultCacheSize is the number of detailed records kept in memory.
	DefaultCacheSize = 256

	// DefaultCacheTTL is how long a cached response stays fresh.
	DefaultCacheTTL = 5 * time.Minute
)

// CachedClient wraps a Source with expiring LRU caches so that moving back
// and forth between the list and a details page does not refetch.
type CachedClient struct {
	inner   Source
	list    *expirable.LRU[struct{}, []feedback.Feedback]
	details *expirable.LRU[string, feedback.Detailed]
}

var _ Source = (*CachedClient)(nil)

// NewCachedClient wraps inner. Non-positive size or ttl fall back to defaults.
func NewCachedClient(inner Source, size int, ttl time.Duration) *CachedClient {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedClient{
		inner:   inner,
		list:    expirable.NewLRU[struct{}, []feedback.Feedback](1, nil, ttl),
		details: expirable.NewLRU[string, feedback.Detailed](size, nil, ttl),
	}
}

// List returns the cached list if fresh, otherwise fetches and caches it.
// Errors are never cached.
func (c *CachedClient) List(ctx context.Context) ([]feedback.Feedback, error) {
	if items, ok := c.list.Get(struct{}{}); ok {
		return items, nil
	}

	items, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	c.list.Add(struct{}{}, items)
	return items, nil
}

// Get returns the cached record for id if fresh, otherwise fetches it.
func (c *CachedClient) Get(ctx context.Context, id string) (feedback.Detailed, error) {
	if d, ok := c.details.Get(id); ok {
		return d, nil
	}

	d, err := c.inner.Get(ctx, id)
	if err != nil {
		return feedback.Detailed{}, err
	}

	c.details.Add(id, d)
	return d, nil
}

// Invalidate drops every cached entry so the next call hits the endpoint.
func (c *CachedClient) Invalidate() {
	c.list.Purge()
	c.details.Purge()
}
