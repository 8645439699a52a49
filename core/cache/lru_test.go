package cache_test

import (
	"context"
	"testing"

	"gdps-backend/core/cache"

	"github.com/stretchr/testify/assert"
)

func TestLRU_EvictsOldestAtCapacity(t *testing.T) {
	ctx := context.Background()
	lru := cache.NewLRU[string](2, nil)

	assert.NoError(t, lru.Set(ctx, "a", "1"))
	assert.NoError(t, lru.Set(ctx, "b", "2"))
	assert.NoError(t, lru.Set(ctx, "c", "3"))

	_, ok, err := lru.Get(ctx, "a")
	assert.NoError(t, err)
	assert.False(t, ok, "oldest entry should have been evicted")

	v, ok, _ := lru.Get(ctx, "b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	v, ok, _ = lru.Get(ctx, "c")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
	assert.Equal(t, 2, lru.Len())
}

func TestLRU_GetRefreshesRecency(t *testing.T) {
	ctx := context.Background()
	lru := cache.NewLRU[int](2, nil)

	assert.NoError(t, lru.Set(ctx, "a", 1))
	assert.NoError(t, lru.Set(ctx, "b", 2))

	// Touch "a" so "b" becomes the coldest entry.
	_, ok, _ := lru.Get(ctx, "a")
	assert.True(t, ok)

	assert.NoError(t, lru.Set(ctx, "c", 3))

	_, ok, _ = lru.Get(ctx, "b")
	assert.False(t, ok, "least recently used entry should have been evicted")
	_, ok, _ = lru.Get(ctx, "a")
	assert.True(t, ok)
}

func TestLRU_SetExistingUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	lru := cache.NewLRU[int](2, nil)

	assert.NoError(t, lru.Set(ctx, "a", 1))
	assert.NoError(t, lru.Set(ctx, "b", 2))
	assert.NoError(t, lru.Set(ctx, "a", 10))

	assert.Equal(t, 2, lru.Len())
	v, ok, _ := lru.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestLRU_KeyCanonicalization(t *testing.T) {
	ctx := context.Background()
	lru := cache.NewLRU[string](4, nil)

	assert.NoError(t, lru.Set(ctx, 1, "one"))

	v, ok, err := lru.Get(ctx, "1")
	assert.NoError(t, err)
	assert.True(t, ok, "int 1 and string \"1\" must address the same slot")
	assert.Equal(t, "one", v)

	assert.NoError(t, lru.Set(ctx, "1", "uno"))
	assert.Equal(t, 1, lru.Len())
	v, _, _ = lru.Get(ctx, 1)
	assert.Equal(t, "uno", v)
}

func TestLRU_DeleteAbsentIsNoOp(t *testing.T) {
	ctx := context.Background()
	lru := cache.NewLRU[int](2, nil)

	assert.NoError(t, lru.Delete(ctx, "missing"))

	assert.NoError(t, lru.Set(ctx, "a", 1))
	assert.NoError(t, lru.Delete(ctx, "a"))
	assert.NoError(t, lru.Delete(ctx, "a"))
	_, ok, _ := lru.Get(ctx, "a")
	assert.False(t, ok)
	assert.Equal(t, 0, lru.Len())
}

func TestLRU_CloneIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	clone := func(v []int) []int {
		out := make([]int, len(v))
		copy(out, v)
		return out
	}
	lru := cache.NewLRU[[]int](2, clone)

	original := []int{1, 2, 3}
	assert.NoError(t, lru.Set(ctx, "a", original))

	// Mutating the slice handed in must not reach the cached snapshot.
	original[0] = 99

	got, ok, _ := lru.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, got)

	// Mutating the slice handed out must not reach the cached snapshot either.
	got[1] = 99
	again, _, _ := lru.Get(ctx, "a")
	assert.Equal(t, []int{1, 2, 3}, again)
}

func TestLRU_MinimumCapacity(t *testing.T) {
	ctx := context.Background()
	lru := cache.NewLRU[int](0, nil)

	assert.NoError(t, lru.Set(ctx, "a", 1))
	assert.NoError(t, lru.Set(ctx, "b", 2))

	assert.Equal(t, 1, lru.Len())
	_, ok, _ := lru.Get(ctx, "b")
	assert.True(t, ok)
}
