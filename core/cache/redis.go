package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Redis is the stateless-mode cache: values are JSON snapshots in the shared
// Redis store, so every instance observes the same cached state at the cost
// of a network round trip per access. Serialization gives copy semantics for
// free — callers always receive an independent value.
type Redis[T any] struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis creates a shared cache under the given namespace. ttl of zero
// keeps entries until explicitly deleted.
func NewRedis[T any](client *goredis.Client, namespace string, ttl time.Duration) *Redis[T] {
	return &Redis[T]{
		client: client,
		prefix: "gdps:cache:" + namespace + ":",
		ttl:    ttl,
	}
}

func (r *Redis[T]) Get(ctx context.Context, key any) (T, bool, error) {
	var zero T

	data, err := r.client.Get(ctx, r.prefix+Key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("cache get failed: %w", err)
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return zero, false, fmt.Errorf("failed to decode cached value: %w", err)
	}
	return value, true, nil
}

func (r *Redis[T]) Set(ctx context.Context, key any, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}
	if err := r.client.Set(ctx, r.prefix+Key(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

func (r *Redis[T]) Delete(ctx context.Context, key any) error {
	if err := r.client.Del(ctx, r.prefix+Key(key)).Err(); err != nil {
		return fmt.Errorf("cache delete failed: %w", err)
	}
	return nil
}
