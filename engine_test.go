package auctionlens

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/auctionlens/config"
	"github.com/poiesic/auctionlens/core"
	"github.com/poiesic/auctionlens/filter"
	"github.com/poiesic/auctionlens/groups"
	"github.com/poiesic/auctionlens/storage/badger"
	"github.com/poiesic/auctionlens/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureSource() taxonomy.Source {
	return taxonomy.StaticSource{Taxonomy: taxonomy.FixtureTaxonomy()}
}

func newTestEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	e, err := NewEngine(append([]EngineOption{WithTaxonomySource(fixtureSource())}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func listings() []core.Listing {
	return []core.Listing{
		{
			Title:       "[기아] K5 디젤",
			Price:       core.NumericOf(1500),
			Year:        core.NumericOf(2021),
			Km:          core.NumericOf(30000),
			Fuel:        "디젤",
			AuctionName: "현대 경매장",
		},
		{
			Title:       "[현대] 아반떼",
			Price:       core.NumericOf(1000),
			Year:        core.NumericOf(2020),
			Km:          core.NumericOf(50000),
			Fuel:        "가솔린",
			AuctionName: "현대 경매장",
		},
	}
}

func TestNewEngine(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		e := newTestEngine(t)
		assert.NotNil(t, e.Taxonomy())
		assert.NotNil(t, e.Filter())
		assert.NotNil(t, e.Aggregator())
		assert.Equal(t, config.DefaultTaxonomySource, e.Config().Taxonomy.Source)
		assert.False(t, e.Taxonomy().Loaded(), "taxonomy is loaded lazily")
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Taxonomy.Source = ""
		_, err := NewEngine(WithConfig(cfg))
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("nil options fall back", func(t *testing.T) {
		e := newTestEngine(t, WithConfig(nil), WithLogger(nil))
		assert.NotNil(t, e.Config())
	})
}

func TestEngine_EndToEnd(t *testing.T) {
	e := newTestEngine(t)
	rows := listings()

	opts := e.Replace(rows)
	assert.Equal(t, []string{"가솔린", "디젤"}, opts.FuelTypes)
	assert.Equal(t, []string{"기아", "현대"}, opts.Brands)
	assert.Equal(t, 2020, opts.YearMin)
	assert.Equal(t, 2021, opts.YearMax)

	require.True(t, e.Aggregator().Ready())
	mode, err := e.Aggregator().FilterMode()
	require.NoError(t, err)
	assert.Equal(t, core.FilterModeFuel, mode)

	got := e.Query(rows, filter.Query{Active: core.ActiveFilters{Fuel: []string{"디젤"}}}, core.SortNone)
	require.Len(t, got, 1)
	assert.Equal(t, "[기아] K5 디젤", got[0].Title)

	t.Run("budget sort", func(t *testing.T) {
		got := e.Query(rows, filter.Query{Budget: &core.BudgetRange{Unbounded: true}}, core.SortBudget)
		require.Len(t, got, 2)
		assert.Equal(t, "[현대] 아반떼", got[0].Title)
	})

	t.Run("replace with empty set resets aggregator", func(t *testing.T) {
		opts := e.Replace(nil)
		assert.False(t, e.Aggregator().Ready())
		assert.Equal(t, filter.DefaultYearMin, opts.YearMin)
	})
}

func TestEngine_Parse(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	m := e.Parse(ctx, "[현대] 더 뉴 그랜저 2.5 하이브리드 (21년~23년)")
	assert.Equal(t, "hyundai", m.ManufacturerID)
	assert.Equal(t, "현대", m.ManufacturerName)
	assert.Equal(t, "grandeur", m.ModelID)
	assert.Equal(t, "그랜저", m.ModelName)

	first, err := e.Matcher(ctx)
	require.NoError(t, err)
	second, err := e.Matcher(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second, "matcher is built once per taxonomy")
}

func TestEngine_ParseWithConfiguredAlias(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Matcher.Aliases = map[string]string{"HYUNDAI": "현대"}
	e := newTestEngine(t, WithConfig(cfg))

	m := e.Parse(context.Background(), "HYUNDAI 아반떼 1.6")
	assert.Equal(t, "hyundai", m.ManufacturerID)
	assert.Equal(t, "avante", m.ModelID)
}

func TestEngine_ParseDegradesWithoutTaxonomy(t *testing.T) {
	e := newTestEngine(t, WithTaxonomySource(taxonomy.NewFileSource(filepath.Join(t.TempDir(), "missing.json"))))

	m := e.Parse(context.Background(), "[현대] 아반떼")
	assert.True(t, m.IsZero())
}

func TestEngine_Groups(t *testing.T) {
	e := newTestEngine(t)

	def, extract := e.Groups(core.FilterModeVehicleType)
	assert.Equal(t, groups.VehicleTypeGroups, def)
	assert.Equal(t, "렌터카", extract(&core.Listing{Title: "K5 렌트카"}))

	def, _ = e.Groups(core.FilterModeFuel)
	assert.Equal(t, groups.FuelGroups, def)
}

func TestEngine_Enrichment(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "cache")
	cfg := config.NewConfig(config.WithCacheDir(dir), config.WithPoolSize(2))
	e := newTestEngine(t, WithConfig(cfg))

	p, err := e.NewEnrichmentPipeline(ctx)
	require.NoError(t, err)
	defer p.Release()

	out, err := p.Enrich(ctx, listings())
	require.NoError(t, err)
	assert.Equal(t, "kia-k5", out[0].ModelID)
	assert.Equal(t, "avante", out[1].ModelID)

	_, err = os.Stat(dir)
	assert.NoError(t, err, "cache directory created on first use")

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())
	_, err = e.NewEnrichmentPipeline(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestEngine_ExternalCacheNotClosed(t *testing.T) {
	ctx := context.Background()
	cache, err := badger.NewMemoryMatchCache()
	require.NoError(t, err)
	defer cache.Close()

	e := newTestEngine(t, WithMatchCache(cache))
	p, err := e.NewEnrichmentPipeline(ctx)
	require.NoError(t, err)
	defer p.Release()

	_, err = p.Enrich(ctx, listings())
	require.NoError(t, err)
	require.NoError(t, e.Close())

	count, err := cache.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
