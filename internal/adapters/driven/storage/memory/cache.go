package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/storedesk/storedesk-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.Cache = (*Cache)(nil)

// Cache is an in-memory implementation of driven.Cache.
type Cache struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewCache creates a new in-memory cache.
func NewCache() *Cache {
	return &Cache{
		values: make(map[string]string),
	}
}

// Get returns the value stored under key.
func (c *Cache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.values[key]
	return val, ok, nil
}

// Set stores value under key.
func (c *Cache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

// Delete removes key.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

// Clear removes every key with the given prefix.
func (c *Cache) Clear(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.values {
		if strings.HasPrefix(key, prefix) {
			delete(c.values, key)
		}
	}
	return nil
}
