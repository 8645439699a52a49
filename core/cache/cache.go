package cache

import (
	"context"
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"
)

// Cache is a key/value store for value snapshots. Keys of heterogeneous
// primitive type are canonicalized, so Set(1, v) and Get("1") address the
// same slot. All operations are total: deleting an absent key is a no-op and
// a miss is (zero, false, nil), never an error.
type Cache[T any] interface {
	Get(ctx context.Context, key any) (T, bool, error)
	Set(ctx context.Context, key any, value T) error
	Delete(ctx context.Context, key any) error
}

// Key canonicalizes a cache key to its string form. The network-backed cache
// stringifies keys anyway; the in-memory caches follow so that an int and its
// decimal string never occupy two slots.
func Key(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case int:
		return strconv.Itoa(k)
	case int64:
		return strconv.FormatInt(k, 10)
	case uint64:
		return strconv.FormatUint(k, 10)
	default:
		return fmt.Sprint(key)
	}
}

// GetOrLoad checks the cache and falls back to the loader on a miss, storing
// the loaded value for the next caller. Absent loader results are returned
// but not stored — negative caching is deliberately not done here.
func GetOrLoad[T any](ctx context.Context, c Cache[T], key any, load func(ctx context.Context) (T, bool, error)) (T, bool, error) {
	value, ok, err := c.Get(ctx, key)
	if err != nil {
		return value, false, err
	}
	if ok {
		return value, true, nil
	}

	value, ok, err = load(ctx)
	if err != nil || !ok {
		return value, ok, err
	}

	if err := c.Set(ctx, key, value); err != nil {
		return value, true, err
	}
	return value, true, nil
}

// New builds a cache for the configured deployment mode: a process-local LRU
// in stateful mode, a Redis-backed cache shared by every instance in
// stateless mode. The mode is fixed at startup.
//
// clone may be nil for values that are safe to share; when set, both variants
// hand out independent copies so callers cannot mutate cached state.
func New[T any](cfg Config, client *goredis.Client, namespace string, clone func(T) T) Cache[T] {
	if cfg.Mode == ModeStateless {
		return NewRedis[T](client, namespace, cfg.TTL())
	}
	return NewLRU[T](cfg.Capacity, clone)
}
