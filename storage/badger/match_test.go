package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/auctionlens/core"
	"github.com/poiesic/auctionlens/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var grandeurMatch = core.Match{
	ManufacturerID:   "hyundai",
	ManufacturerName: "현대",
	ModelID:          "grandeur",
	ModelName:        "그랜저",
	TrimID:           "grandeur-ig-fl-hev",
	TrimName:         "더 뉴 그랜저 IG 하이브리드 (19년~22년)",
}

const grandeurTitle = "[현대] 더 뉴 그랜저 2.5 하이브리드 (21년~23년)"

func newTestCache(t *testing.T, opts ...Option) storage.MatchCache {
	t.Helper()
	cache, err := NewMemoryMatchCache(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestMatchCache_PutGet(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	_, err := cache.Get(ctx, grandeurTitle)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, cache.Put(ctx, grandeurTitle, grandeurMatch))

	got, err := cache.Get(ctx, grandeurTitle)
	require.NoError(t, err)
	assert.Equal(t, grandeurMatch, got)

	t.Run("put replaces", func(t *testing.T) {
		replaced := core.Match{ManufacturerID: "hyundai", ManufacturerName: "현대"}
		require.NoError(t, cache.Put(ctx, grandeurTitle, replaced))
		got, err := cache.Get(ctx, grandeurTitle)
		require.NoError(t, err)
		assert.Equal(t, replaced, got)
	})

	t.Run("empty match is cached", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, "[쌍용] 렉스턴", core.Match{}))
		got, err := cache.Get(ctx, "[쌍용] 렉스턴")
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})
}

func TestMatchCache_PutManyCountClear(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	entries := make(map[string]core.Match)
	for i := range 25 {
		entries[fmt.Sprintf("[기아] K5 %d", i)] = core.Match{ManufacturerID: "kia", ModelID: "kia-k5"}
	}
	require.NoError(t, cache.PutMany(ctx, entries))
	require.NoError(t, cache.PutMany(ctx, nil))

	count, err := cache.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, count)

	got, err := cache.Get(ctx, "[기아] K5 7")
	require.NoError(t, err)
	assert.Equal(t, "kia-k5", got.ModelID)

	require.NoError(t, cache.Clear(ctx))
	count, err = cache.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMatchCache_Namespaces(t *testing.T) {
	ctx := context.Background()
	backend, err := OpenBackend("", true, nil)
	require.NoError(t, err)
	defer backend.Close()

	first, err := NewMatchCache(backend, WithNamespace(core.ID(1)))
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, grandeurTitle, grandeurMatch))
	require.NoError(t, first.Close())
	assert.False(t, backend.IsClosed(), "shared backend must stay open")

	t.Run("same namespace keeps entries", func(t *testing.T) {
		again, err := NewMatchCache(backend, WithNamespace(core.ID(1)))
		require.NoError(t, err)
		defer again.Close()

		got, err := again.Get(ctx, grandeurTitle)
		require.NoError(t, err)
		assert.Equal(t, grandeurMatch, got)
	})

	t.Run("new namespace drops stale entries", func(t *testing.T) {
		next, err := NewMatchCache(backend, WithNamespace(core.ID(2)))
		require.NoError(t, err)
		defer next.Close()

		_, err = next.Get(ctx, grandeurTitle)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		back, err := NewMatchCache(backend, WithNamespace(core.ID(1)))
		require.NoError(t, err)
		defer back.Close()
		_, err = back.Get(ctx, grandeurTitle)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestMatchCache_Persistence(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cache, err := OpenMatchCache(dir, WithNamespace(core.ID(7)))
	require.NoError(t, err)
	require.NoError(t, cache.Put(ctx, grandeurTitle, grandeurMatch))
	require.NoError(t, cache.Close())

	reopened, err := OpenMatchCache(dir, WithNamespace(core.ID(7)))
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, grandeurTitle)
	require.NoError(t, err)
	assert.Equal(t, grandeurMatch, got)
}

func TestMatchCache_Closed(t *testing.T) {
	ctx := context.Background()
	cache, err := NewMemoryMatchCache()
	require.NoError(t, err)
	require.NoError(t, cache.Close())
	require.NoError(t, cache.Close())

	_, err = cache.Get(ctx, grandeurTitle)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, cache.Put(ctx, grandeurTitle, grandeurMatch), storage.ErrStorageClosed)
}

func TestMatchCache_CancelledContext(t *testing.T) {
	cache := newTestCache(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cache.Get(ctx, grandeurTitle)
	assert.ErrorIs(t, err, context.Canceled)
}
