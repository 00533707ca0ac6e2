package taxonomy

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/auctionlens/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingSource(t *core.Taxonomy, err error, calls *atomic.Int32) SourceFunc {
	return func(ctx context.Context) (*core.Taxonomy, error) {
		calls.Add(1)
		return t, err
	}
}

func TestNewStore_RequiresSource(t *testing.T) {
	_, err := NewStore(nil)
	assert.ErrorIs(t, err, ErrSourceRequired)

	_, err = NewStore(StaticSource{}, WithTimeout(0))
	assert.ErrorIs(t, err, ErrInvalidTimeout)
}

func TestStore_LoadOnce(t *testing.T) {
	var calls atomic.Int32
	store, err := NewStore(countingSource(FixtureTaxonomy(), nil, &calls))
	require.NoError(t, err)
	assert.False(t, store.Loaded())

	first := store.Load(context.Background())
	second := store.Load(context.Background())

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, store.Loaded())
	assert.Len(t, first.Domestic, 4)
}

func TestStore_ConcurrentFirstLoadIsShared(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	source := SourceFunc(func(ctx context.Context) (*core.Taxonomy, error) {
		calls.Add(1)
		<-release
		return FixtureTaxonomy(), nil
	})
	store, err := NewStore(source)
	require.NoError(t, err)

	const callers = 16
	results := make([]*core.Taxonomy, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = store.Load(context.Background())
		}()
	}

	// Give the callers a moment to pile onto the in-flight fetch.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestStore_FailureCachesEmptyTaxonomy(t *testing.T) {
	var calls atomic.Int32
	store, err := NewStore(countingSource(nil, errors.New("connection refused"), &calls))
	require.NoError(t, err)

	tree := store.Load(context.Background())
	require.NotNil(t, tree)
	assert.True(t, tree.IsEmpty())

	store.Load(context.Background())
	assert.Equal(t, int32(1), calls.Load(), "failed load must not be retried by later callers")
	assert.Nil(t, store.FindManufacturerByLabel(context.Background(), "현대"))
}

func TestStore_CallerCancellationDoesNotPoisonCache(t *testing.T) {
	release := make(chan struct{})
	source := SourceFunc(func(ctx context.Context) (*core.Taxonomy, error) {
		select {
		case <-release:
			return FixtureTaxonomy(), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
	store, err := NewStore(source)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan *core.Taxonomy)
	go func() { done <- store.Load(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()
	abandoned := <-done
	assert.True(t, abandoned.IsEmpty())

	close(release)
	tree := store.Load(context.Background())
	assert.False(t, tree.IsEmpty())
}

func TestStore_TimeoutDegradesToEmpty(t *testing.T) {
	source := SourceFunc(func(ctx context.Context) (*core.Taxonomy, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	store, err := NewStore(source, WithTimeout(10*time.Millisecond))
	require.NoError(t, err)

	assert.True(t, store.Load(context.Background()).IsEmpty())
}

func TestStore_StrictValidation(t *testing.T) {
	invalid := FixtureTaxonomy()
	invalid.Import[0].ID = "hyundai"

	lenient, err := NewStore(StaticSource{Taxonomy: invalid})
	require.NoError(t, err)
	assert.False(t, lenient.Load(context.Background()).IsEmpty())

	strict, err := NewStore(StaticSource{Taxonomy: invalid}, WithStrictValidation(true))
	require.NoError(t, err)
	assert.True(t, strict.Load(context.Background()).IsEmpty())
}

func TestStore_FindManufacturerByLabel(t *testing.T) {
	store := NewFixtureStore()
	ctx := context.Background()

	t.Run("domestic", func(t *testing.T) {
		mfr := store.FindManufacturerByLabel(ctx, "기아")
		require.NotNil(t, mfr)
		assert.Equal(t, "kia", mfr.ID)
	})

	t.Run("import", func(t *testing.T) {
		mfr := store.FindManufacturerByLabel(ctx, "BMW")
		require.NotNil(t, mfr)
		assert.Equal(t, "bmw", mfr.ID)
	})

	t.Run("exact match only", func(t *testing.T) {
		assert.Nil(t, store.FindManufacturerByLabel(ctx, "현대자동차"))
		assert.Nil(t, store.FindManufacturerByLabel(ctx, ""))
	})
}

func TestStore_Brands(t *testing.T) {
	brands := NewFixtureStore().Brands(context.Background())

	assert.Equal(t, []string{"현대", "기아", "제네시스", "쉐보레"}, brands.Domestic)
	assert.Equal(t, []string{"BMW", "벤츠", "테슬라"}, brands.Import)
	assert.Len(t, brands.All(), 7)
}

func TestStore_Fingerprint(t *testing.T) {
	ctx := context.Background()
	store := NewFixtureStore()

	fp := store.Fingerprint(ctx)
	assert.NotZero(t, fp)
	assert.Equal(t, fp, NewFixtureStore().Fingerprint(ctx), "same document, same fingerprint")
	assert.Equal(t, fp, Fingerprint(FixtureTaxonomy()))

	changed := FixtureTaxonomy()
	changed.Import = changed.Import[:1]
	assert.NotEqual(t, fp, Fingerprint(changed))
	assert.Equal(t, Fingerprint(core.EmptyTaxonomy()), Fingerprint(nil))
}
