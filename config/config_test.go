package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/auctionlens/core"
	"github.com/poiesic/auctionlens/groups"
	"github.com/poiesic/auctionlens/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultTaxonomySource, cfg.Taxonomy.Source)
	assert.Equal(t, 30*time.Second, cfg.Taxonomy.Timeout)
	assert.Equal(t, 3, cfg.Taxonomy.Retries)
	assert.Empty(t, cfg.Cache.Dir)
	assert.GreaterOrEqual(t, cfg.Enrich.PoolSize, 1)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(
		WithTaxonomySource("https://example.com/search_tree.json"),
		WithTaxonomyTimeout(5*time.Second),
		WithCacheDir("/tmp/cache"),
		WithPoolSize(2),
	)

	assert.Equal(t, "https://example.com/search_tree.json", cfg.Taxonomy.Source)
	assert.Equal(t, 5*time.Second, cfg.Taxonomy.Timeout)
	assert.Equal(t, "/tmp/cache", cfg.Cache.Dir)
	assert.Equal(t, 2, cfg.Enrich.PoolSize)
}

func TestParse(t *testing.T) {
	data := []byte(`
taxonomy:
  source: https://cdn.example.com/search_tree.json
  timeout: 5s
  retries: 5
  strict: true
matcher:
  aliases:
    현대자동차: 현대
  variants:
    - alias: 그랜즈
      canonical: 그랜저
buckets:
  price:
    - label: 싼차
      min: 0
      max: 1000
      max_inclusive: true
    - label: 비싼차
      min: 1000
      min_exclusive: true
      unbounded: true
auction:
  default_mode: fuel
  modes:
    롯데 경매장: vehicleType
cache:
  dir: /var/cache/auctionlens
`)

	cfg, err := Parse(data)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5*time.Second, cfg.Taxonomy.Timeout)
	assert.Equal(t, 5, cfg.Taxonomy.Retries)
	assert.True(t, cfg.Taxonomy.Strict)
	assert.Equal(t, 200*time.Millisecond, cfg.Taxonomy.RetryDelay, "unset keys keep defaults")
	assert.Equal(t, "/var/cache/auctionlens", cfg.Cache.Dir)
	assert.Equal(t, core.FilterModeVehicleType, cfg.Auction.Modes["롯데 경매장"])

	t.Run("matcher tables extend the built-ins", func(t *testing.T) {
		tables := cfg.MatcherTables()
		label, ok := tables.ManufacturerLabel("현대자동차")
		assert.True(t, ok)
		assert.Equal(t, "현대", label)
		_, ok = tables.ManufacturerLabel("기아")
		assert.True(t, ok)
	})

	t.Run("filter options", func(t *testing.T) {
		assert.Len(t, cfg.FilterOptions(), 1)
	})

	t.Run("http source", func(t *testing.T) {
		assert.IsType(t, &taxonomy.HTTPSource{}, cfg.TaxonomySource())
	})
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unknown key", data: "taxonomy:\n  sauce: x\n"},
		{name: "bad duration", data: "taxonomy:\n  timeout: soon\n"},
		{name: "not yaml", data: "taxonomy: [unclosed\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auctionlens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("taxonomy:\n  source: local.json\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "local.json", cfg.Taxonomy.Source)
	assert.IsType(t, &taxonomy.FileSource{}, cfg.TaxonomySource())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvTaxonomy, "https://env.example.com/tree.json")
	t.Setenv(EnvCacheDir, "/env/cache")
	t.Setenv(EnvPoolSize, "3")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "https://env.example.com/tree.json", cfg.Taxonomy.Source)
	assert.Equal(t, "/env/cache", cfg.Cache.Dir)
	assert.Equal(t, 3, cfg.Enrich.PoolSize)

	t.Run("malformed pool size", func(t *testing.T) {
		t.Setenv(EnvPoolSize, "many")
		assert.ErrorIs(t, DefaultConfig().ApplyEnv(), ErrInvalidConfig)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing source", mutate: func(c *Config) { c.Taxonomy.Source = "" }},
		{name: "zero timeout", mutate: func(c *Config) { c.Taxonomy.Timeout = 0 }},
		{name: "zero retries", mutate: func(c *Config) { c.Taxonomy.Retries = 0 }},
		{name: "zero pool", mutate: func(c *Config) { c.Enrich.PoolSize = 0 }},
		{name: "bad mode", mutate: func(c *Config) { c.Auction.DefaultMode = "price" }},
		{name: "duplicate variant", mutate: func(c *Config) {
			c.Groups.Fuel = groups.Definition{
				{Label: "가솔린", Variants: []string{"휘발유"}},
				{Label: "휘발유", Variants: []string{"휘발유"}},
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestGroupFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, groups.FuelGroups, cfg.FuelGroups())
	assert.Equal(t, groups.VehicleTypeGroups, cfg.VehicleTypeGroups())

	custom := groups.Definition{{Label: "전기", Variants: []string{"EV"}}}
	cfg.Groups.Fuel = custom
	assert.Equal(t, custom, cfg.FuelGroups())
}
