// Package redis provides a Redis-backed implementation of the db.KV port for
// deployments where the engine's records should survive process restarts.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KV implements db.KV over a Redis client. Keys are namespaced with a
// configurable prefix so several environments can share one instance.
type KV struct {
	client *redis.Client
	prefix string
}

// NewKV creates a Redis-backed KV and verifies the connection.
func NewKV(ctx context.Context, addr, prefix string) (*KV, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return &KV{client: client, prefix: prefix}, nil
}

// NewKVFromClient wraps an existing client, used by tests.
func NewKVFromClient(client *redis.Client, prefix string) *KV {
	return &KV{client: client, prefix: prefix}
}

// Close releases the underlying connection pool.
func (kv *KV) Close() error {
	return kv.client.Close()
}

func (kv *KV) key(key string) string {
	if kv.prefix == "" {
		return key
	}
	return kv.prefix + ":" + key
}

// Get returns the raw value for key and whether a value exists.
func (kv *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := kv.client.Get(ctx, kv.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

// Save replaces the value under key. Values never expire; the engine owns
// record lifecycle explicitly.
func (kv *KV) Save(ctx context.Context, key string, value []byte) error {
	if err := kv.client.Set(ctx, kv.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}
