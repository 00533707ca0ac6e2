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

// Package auctionlens normalizes vehicle auction listings against a
// manufacturer/model/trim taxonomy and filters, sorts and summarizes them.
//
// Engine wires the components together: a taxonomy store, the title matcher,
// the filter engine with its sort resolver, the auction aggregator and an
// optional persistent match cache used by batch enrichment.
package auctionlens

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/poiesic/auctionlens/auction"
	"github.com/poiesic/auctionlens/config"
	"github.com/poiesic/auctionlens/core"
	"github.com/poiesic/auctionlens/enrich"
	"github.com/poiesic/auctionlens/filter"
	"github.com/poiesic/auctionlens/groups"
	"github.com/poiesic/auctionlens/matcher"
	"github.com/poiesic/auctionlens/sorting"
	"github.com/poiesic/auctionlens/storage"
	"github.com/poiesic/auctionlens/storage/badger"
	"github.com/poiesic/auctionlens/taxonomy"
)

// ErrClosed is returned by operations on a closed Engine.
var ErrClosed = errors.New("engine is closed")

// Engine ties the taxonomy store, title matcher, filter engine, auction
// aggregator and match cache to one configuration. The matcher is rebuilt
// whenever the taxonomy snapshot changes. An Engine is safe for concurrent
// use; Close releases a cache the Engine opened itself.
type Engine struct {
	cfg        *config.Config
	store      *taxonomy.Store
	tables     *matcher.Tables
	filter     *filter.Engine
	aggregator *auction.Aggregator
	logger     *slog.Logger

	mu         sync.Mutex
	matcher    *matcher.Matcher
	matcherIdx *taxonomy.Index
	cache      storage.MatchCache
	ownsCache  bool
	closed     bool
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	config *config.Config
	source taxonomy.Source
	cache  storage.MatchCache
	logger *slog.Logger
}

// WithConfig supplies the configuration. Default is config.DefaultConfig().
func WithConfig(cfg *config.Config) EngineOption {
	return func(o *engineOptions) {
		o.config = cfg
	}
}

// WithTaxonomySource overrides the configured taxonomy source.
func WithTaxonomySource(source taxonomy.Source) EngineOption {
	return func(o *engineOptions) {
		o.source = source
	}
}

// WithMatchCache supplies a match cache owned by the caller. It takes
// precedence over the configured cache directory and is not closed by Close.
func WithMatchCache(cache storage.MatchCache) EngineOption {
	return func(o *engineOptions) {
		o.cache = cache
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// NewEngine builds an Engine. The taxonomy is not fetched until first needed.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		config: config.DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.config == nil {
		options.config = config.DefaultConfig()
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	cfg := options.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	source := options.source
	if source == nil {
		source = cfg.TaxonomySource()
	}
	store, err := taxonomy.NewStore(source, append(cfg.StoreOptions(), taxonomy.WithLogger(options.logger))...)
	if err != nil {
		return nil, err
	}

	filterEngine, err := filter.NewEngine(append(cfg.FilterOptions(), filter.WithLogger(options.logger))...)
	if err != nil {
		return nil, err
	}

	aggregator, err := auction.NewAggregator(auction.WithConfig(cfg.Auction), auction.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:        cfg,
		store:      store,
		tables:     cfg.MatcherTables(),
		filter:     filterEngine,
		aggregator: aggregator,
		logger:     options.logger,
		cache:      options.cache,
	}, nil
}

// Close releases the match cache if the engine opened it.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	if e.ownsCache && e.cache != nil {
		if err := e.cache.Close(); err != nil {
			e.logger.Error("error closing match cache", "err", err)
			return err
		}
	}
	return nil
}

// Config returns the configuration in use.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Taxonomy returns the taxonomy store.
func (e *Engine) Taxonomy() *taxonomy.Store {
	return e.store
}

// Filter returns the filter engine.
func (e *Engine) Filter() *filter.Engine {
	return e.filter
}

// Aggregator returns the auction aggregator for the current listing set.
func (e *Engine) Aggregator() *auction.Aggregator {
	return e.aggregator
}

// Replace makes rows the current listing set: the aggregator is reset and
// rebuilt, and the filter options derived from rows are returned.
func (e *Engine) Replace(rows []core.Listing) filter.Options {
	e.aggregator.Reset()
	e.aggregator.Reindex(rows)
	return filter.InitializeOptions(rows)
}

// Query filters rows and orders the result. last names the ranged filter the
// user adjusted most recently.
func (e *Engine) Query(rows []core.Listing, q filter.Query, last core.SortDimension) []core.Listing {
	filtered := e.filter.Filter(rows, q)
	return sorting.Sort(filtered, q.Active, q.Budget, q.Years, last)
}

// Groups returns the group table and extractor for mode, honouring
// configured overrides.
func (e *Engine) Groups(mode core.FilterMode) (groups.Definition, groups.Extractor) {
	if mode == core.FilterModeVehicleType {
		return e.cfg.VehicleTypeGroups(), groups.ExtractVehicleType
	}
	return e.cfg.FuelGroups(), groups.ExtractFuelType
}

// Matcher returns a title matcher over the loaded taxonomy.
func (e *Engine) Matcher(ctx context.Context) (*matcher.Matcher, error) {
	index := e.store.Index(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.matcher != nil && e.matcherIdx == index {
		return e.matcher, nil
	}
	m, err := matcher.New(index, matcher.WithTables(e.tables), matcher.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}
	// An index handed to an abandoned caller is not the cached one.
	if e.store.Loaded() {
		e.matcher = m
		e.matcherIdx = index
	}
	return m, nil
}

// Parse resolves a single title. Failures degrade to an empty match.
func (e *Engine) Parse(ctx context.Context, title string) core.Match {
	m, err := e.Matcher(ctx)
	if err != nil {
		e.logger.Error("matcher unavailable", "err", err)
		return core.Match{}
	}
	return m.Parse(title)
}

// NewEnrichmentPipeline returns a pipeline over the loaded taxonomy, backed
// by the match cache when one is configured. opts are applied after the
// configured defaults.
func (e *Engine) NewEnrichmentPipeline(ctx context.Context, opts ...enrich.Option) (*enrich.Pipeline, error) {
	m, err := e.Matcher(ctx)
	if err != nil {
		return nil, err
	}
	cache, err := e.matchCache(ctx)
	if err != nil {
		return nil, err
	}

	base := []enrich.Option{
		enrich.WithPoolSize(e.cfg.Enrich.PoolSize),
		enrich.WithLogger(e.logger),
	}
	if cache != nil {
		base = append(base, enrich.WithCache(cache))
	}
	return enrich.NewPipeline(m, append(base, opts...)...)
}

// matchCache opens the configured cache on first use, bound to the loaded
// taxonomy's fingerprint.
func (e *Engine) matchCache(ctx context.Context) (storage.MatchCache, error) {
	fingerprint := e.store.Fingerprint(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}
	if e.cache != nil || e.cfg.Cache.Dir == "" {
		return e.cache, nil
	}

	cache, err := badger.OpenMatchCache(e.cfg.Cache.Dir,
		badger.WithNamespace(fingerprint),
		badger.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}
	e.logger.Debug("match cache opened", "dir", e.cfg.Cache.Dir, "namespace", fingerprint)
	e.cache = cache
	e.ownsCache = true
	return cache, nil
}
