package driven

import "context"

// Cache is keyed storage for transient page state such as the last
// selected record. It is injected into pages, never read ambiently.
type Cache interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key.
	Delete(ctx context.Context, key string) error

	// Clear removes every key with the given prefix. An empty prefix clears all.
	Clear(ctx context.Context, prefix string) error
}
