package client

import (
	"context"
	"sync"
)

// Cache keys for the collections the client reads.
const (
	KeyInquiries    = "inquiries"
	KeyTestimonials = "testimonials"
)

// Cache holds fetched collections by key until they are invalidated. It is safe for
// concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]any
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]any)}
}

// Query returns the value cached under key, fetching and storing it on a miss.
// Failed fetches are not cached.
func Query[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	if v, ok := c.entries[key].(T); ok {
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()
	return v, nil
}

// Invalidate drops key so the next Query refetches it.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Has reports whether key is cached.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}
