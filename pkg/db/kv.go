package db

import "context"

// KV is the synchronous key-value port the engine persists through. The
// persistence mechanism itself is supplied externally; each Save replaces the
// whole value under its key atomically, and no atomicity is required across
// keys.
type KV interface {
	// Get returns the raw value for key and whether a value exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Save replaces the value under key.
	Save(ctx context.Context, key string, value []byte) error
}
