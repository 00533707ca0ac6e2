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

package taxonomy

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/auctionlens/core"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeout = 30 * time.Second
	loadKey        = "taxonomy"
)

// Store loads a taxonomy once and serves it for its whole lifetime.
// There is no invalidation; create a new Store to pick up a new document.
type Store struct {
	source  Source
	timeout time.Duration
	strict  bool
	logger  *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	snap  *snapshot
}

type snapshot struct {
	taxonomy    *core.Taxonomy
	index       *Index
	brands      Brands
	fingerprint core.ID
}

// Brands lists manufacturer labels per category in declaration order.
type Brands struct {
	Domestic []string `json:"domestic"`
	Import   []string `json:"import"`
}

// All returns domestic labels followed by import labels.
func (b Brands) All() []string {
	all := make([]string, 0, len(b.Domestic)+len(b.Import))
	all = append(all, b.Domestic...)
	return append(all, b.Import...)
}

// Option configures a Store.
type Option func(*Store) error

// WithTimeout bounds the one-time fetch.
// Default is 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Store) error {
		if timeout <= 0 {
			return ErrInvalidTimeout
		}
		s.timeout = timeout
		return nil
	}
}

// WithStrictValidation rejects taxonomies that fail core.ValidateTaxonomy,
// caching an empty taxonomy instead. By default violations are only logged.
func WithStrictValidation(strict bool) Option {
	return func(s *Store) error {
		s.strict = strict
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStore creates a Store backed by source. Nothing is fetched until the
// first call to Load.
func NewStore(source Source, opts ...Option) (*Store, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	s := &Store{
		source:  source,
		timeout: defaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Load returns the taxonomy, fetching it on first use. Failures yield an empty
// taxonomy which is cached like a successful load. A caller whose ctx is done
// before the shared fetch completes receives an empty taxonomy without
// affecting what is cached.
func (s *Store) Load(ctx context.Context) *core.Taxonomy {
	return s.load(ctx).taxonomy
}

// Index returns the lookup index built alongside the taxonomy.
func (s *Store) Index(ctx context.Context) *Index {
	return s.load(ctx).index
}

// Brands returns the manufacturer labels of the loaded taxonomy.
func (s *Store) Brands(ctx context.Context) Brands {
	return s.load(ctx).brands
}

// FindManufacturerByLabel scans domestic then import manufacturers for an
// exact label match. Returns nil when none matches.
func (s *Store) FindManufacturerByLabel(ctx context.Context, label string) *core.Manufacturer {
	for _, manufacturers := range s.Load(ctx).Categories() {
		for i := range manufacturers {
			if manufacturers[i].Label == label {
				return &manufacturers[i]
			}
		}
	}
	return nil
}

// Fingerprint identifies the loaded taxonomy document. Caches keyed on match
// results use it to detect a changed taxonomy.
func (s *Store) Fingerprint(ctx context.Context) core.ID {
	return s.load(ctx).fingerprint
}

// Loaded reports whether the one-time load has completed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil
}

func (s *Store) cached() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Store) load(ctx context.Context) *snapshot {
	if snap := s.cached(); snap != nil {
		return snap
	}

	ch := s.group.DoChan(loadKey, func() (any, error) {
		if snap := s.cached(); snap != nil {
			return snap, nil
		}
		snap := s.fetch(context.WithoutCancel(ctx))
		s.mu.Lock()
		s.snap = snap
		s.mu.Unlock()
		return snap, nil
	})

	select {
	case res := <-ch:
		return res.Val.(*snapshot)
	case <-ctx.Done():
		s.logger.Warn("taxonomy load abandoned by caller", "err", ctx.Err())
		return newSnapshot(core.EmptyTaxonomy())
	}
}

func (s *Store) fetch(ctx context.Context) *snapshot {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	t, err := s.source.Fetch(ctx)
	if err != nil {
		s.logger.Error("failed to load taxonomy", "err", err)
		return newSnapshot(core.EmptyTaxonomy())
	}
	if t == nil {
		t = core.EmptyTaxonomy()
	}

	if err := core.ValidateTaxonomy(t); err != nil {
		if s.strict {
			s.logger.Error("rejecting invalid taxonomy", "err", err)
			return newSnapshot(core.EmptyTaxonomy())
		}
		s.logger.Warn("taxonomy failed validation", "err", err)
	}

	snap := newSnapshot(t)
	s.logger.Info("taxonomy loaded",
		"domestic", len(t.Domestic),
		"import", len(t.Import),
		"models", len(snap.index.ModelLabels()),
		"elapsed", time.Since(start))
	return snap
}

func newSnapshot(t *core.Taxonomy) *snapshot {
	snap := &snapshot{
		taxonomy:    t,
		index:       NewIndex(t),
		fingerprint: Fingerprint(t),
		brands: Brands{
			Domestic: make([]string, 0, len(t.Domestic)),
			Import:   make([]string, 0, len(t.Import)),
		},
	}
	for _, mfr := range t.Domestic {
		snap.brands.Domestic = append(snap.brands.Domestic, mfr.Label)
	}
	for _, mfr := range t.Import {
		snap.brands.Import = append(snap.brands.Import, mfr.Label)
	}
	return snap
}

// Fingerprint hashes the canonical JSON encoding of t.
func Fingerprint(t *core.Taxonomy) core.ID {
	if t == nil {
		t = core.EmptyTaxonomy()
	}
	data, err := json.Marshal(t)
	if err != nil {
		return 0
	}
	return core.IDFromContent(string(data))
}
