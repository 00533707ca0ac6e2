// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/auctionlens/auction"
	"github.com/poiesic/auctionlens/filter"
	"github.com/poiesic/auctionlens/groups"
	"github.com/poiesic/auctionlens/matcher"
	"github.com/poiesic/auctionlens/taxonomy"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvTaxonomy = "AUCTIONLENS_TAXONOMY"
	EnvCacheDir = "AUCTIONLENS_CACHE_DIR"
	EnvPoolSize = "AUCTIONLENS_POOL_SIZE"
)

// DefaultTaxonomySource is the taxonomy document path used when none is set.
const DefaultTaxonomySource = "data/search_tree.json"

// Config is the complete runtime configuration.
type Config struct {
	Taxonomy TaxonomyConfig `yaml:"taxonomy"`
	Matcher  MatcherConfig  `yaml:"matcher"`
	Groups   GroupsConfig   `yaml:"groups"`
	Buckets  BucketsConfig  `yaml:"buckets"`
	Auction  auction.Config `yaml:"auction"`
	Cache    CacheConfig    `yaml:"cache"`
	Enrich   EnrichConfig   `yaml:"enrich"`
}

// TaxonomyConfig controls where and how the taxonomy is fetched.
type TaxonomyConfig struct {
	// Source is a file path or an http(s) URL.
	Source string `yaml:"source"`
	// Timeout bounds the whole fetch, retries included.
	Timeout time.Duration `yaml:"timeout"`
	// Retries is the number of HTTP attempts. Ignored for files.
	Retries    int           `yaml:"retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
	// Strict makes an invalid taxonomy a load failure instead of a warning.
	Strict bool `yaml:"strict"`
}

// MatcherConfig extends the built-in matcher tables.
type MatcherConfig struct {
	Aliases  map[string]string `yaml:"aliases"`
	Variants []matcher.Variant `yaml:"variants"`
}

// GroupsConfig overrides the group tables. Empty means built-in.
type GroupsConfig struct {
	Fuel        groups.Definition `yaml:"fuel"`
	VehicleType groups.Definition `yaml:"vehicle_type"`
}

// BucketsConfig overrides the bucket tables. Empty means built-in.
type BucketsConfig struct {
	Mileage filter.Buckets `yaml:"mileage"`
	Price   filter.Buckets `yaml:"price"`
}

// CacheConfig locates the persistent match cache. An empty Dir disables it.
type CacheConfig struct {
	Dir string `yaml:"dir"`
}

// EnrichConfig tunes batch enrichment.
type EnrichConfig struct {
	PoolSize         int `yaml:"pool_size"`
	ProgressInterval int `yaml:"progress_interval"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithTaxonomySource sets the taxonomy file path or URL.
func WithTaxonomySource(source string) ConfigOption {
	return func(c *Config) {
		c.Taxonomy.Source = source
	}
}

// WithTaxonomyTimeout sets the taxonomy fetch timeout.
func WithTaxonomyTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Taxonomy.Timeout = timeout
	}
}

// WithCacheDir enables the match cache in dir.
func WithCacheDir(dir string) ConfigOption {
	return func(c *Config) {
		c.Cache.Dir = dir
	}
}

// WithPoolSize sets the enrichment worker count.
func WithPoolSize(size int) ConfigOption {
	return func(c *Config) {
		c.Enrich.PoolSize = size
	}
}

// DefaultConfig returns a Config with the built-in tables and a local
// taxonomy file.
func DefaultConfig() *Config {
	return &Config{
		Taxonomy: TaxonomyConfig{
			Source:     DefaultTaxonomySource,
			Timeout:    30 * time.Second,
			Retries:    3,
			RetryDelay: 200 * time.Millisecond,
		},
		Auction: auction.DefaultConfig(),
		Enrich: EnrichConfig{
			PoolSize:         runtime.NumCPU(),
			ProgressInterval: 100,
		},
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithTaxonomySource("https://example.com/search_tree.json"),
//	    WithCacheDir("/var/cache/auctionlens"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// LoadFile reads a YAML file over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment. Unset variables leave
// the config untouched; a malformed pool size is reported.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvTaxonomy); ok && v != "" {
		c.Taxonomy.Source = v
	}
	if v, ok := os.LookupEnv(EnvCacheDir); ok {
		c.Cache.Dir = v
	}
	if v, ok := os.LookupEnv(EnvPoolSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvPoolSize, err)
		}
		c.Enrich.PoolSize = n
	}
	return nil
}

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if c.Taxonomy.Source == "" {
		return fmt.Errorf("%w: taxonomy source is required", ErrInvalidConfig)
	}
	if c.Taxonomy.Timeout <= 0 {
		return fmt.Errorf("%w: taxonomy timeout must be positive", ErrInvalidConfig)
	}
	if c.Taxonomy.Retries < 1 {
		return fmt.Errorf("%w: taxonomy retries must be at least 1", ErrInvalidConfig)
	}
	if c.Enrich.PoolSize < 1 {
		return fmt.Errorf("%w: enrich pool size must be at least 1", ErrInvalidConfig)
	}
	for name, table := range map[string]filter.Buckets{"mileage": c.Buckets.Mileage, "price": c.Buckets.Price} {
		if len(table) == 0 {
			continue
		}
		if err := table.Validate(); err != nil {
			return fmt.Errorf("%w: %s buckets: %w", ErrInvalidConfig, name, err)
		}
	}
	for name, def := range map[string]groups.Definition{"fuel": c.Groups.Fuel, "vehicle_type": c.Groups.VehicleType} {
		if len(def) == 0 {
			continue
		}
		res := groups.Validate(def)
		if res.Valid {
			continue
		}
		problems := res.Issues
		for _, d := range res.Duplicates {
			problems = append(problems, fmt.Sprintf("variant %q listed more than once", d))
		}
		return fmt.Errorf("%w: %s groups: %s", ErrInvalidConfig, name, strings.Join(problems, "; "))
	}
	if err := c.Auction.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// TaxonomySource builds the configured taxonomy source.
func (c *Config) TaxonomySource() taxonomy.Source {
	src := c.Taxonomy.Source
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return taxonomy.NewHTTPSource(src, taxonomy.WithRetry(c.Taxonomy.Retries, c.Taxonomy.RetryDelay))
	}
	return taxonomy.NewFileSource(src)
}

// StoreOptions returns the taxonomy store options implied by the config.
func (c *Config) StoreOptions() []taxonomy.Option {
	return []taxonomy.Option{
		taxonomy.WithTimeout(c.Taxonomy.Timeout),
		taxonomy.WithStrictValidation(c.Taxonomy.Strict),
	}
}

// MatcherTables returns the built-in tables extended with configured entries.
func (c *Config) MatcherTables() *matcher.Tables {
	if len(c.Matcher.Aliases) == 0 && len(c.Matcher.Variants) == 0 {
		return matcher.DefaultTables()
	}
	return matcher.DefaultTables().Extend(c.Matcher.Aliases, c.Matcher.Variants)
}

// FuelGroups returns the configured fuel groups or the built-in ones.
func (c *Config) FuelGroups() groups.Definition {
	if len(c.Groups.Fuel) > 0 {
		return c.Groups.Fuel
	}
	return groups.FuelGroups
}

// VehicleTypeGroups returns the configured vehicle-type groups or the
// built-in ones.
func (c *Config) VehicleTypeGroups() groups.Definition {
	if len(c.Groups.VehicleType) > 0 {
		return c.Groups.VehicleType
	}
	return groups.VehicleTypeGroups
}

// FilterOptions returns the filter engine options implied by the config.
func (c *Config) FilterOptions() []filter.Option {
	var opts []filter.Option
	if len(c.Buckets.Mileage) > 0 {
		opts = append(opts, filter.WithMileageBuckets(c.Buckets.Mileage))
	}
	if len(c.Buckets.Price) > 0 {
		opts = append(opts, filter.WithPriceBuckets(c.Buckets.Price))
	}
	return opts
}
