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

package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/auctionlens/core"
	"github.com/poiesic/auctionlens/storage"
)

// Parser resolves a listing title. *matcher.Matcher satisfies it.
type Parser interface {
	Parse(title string) core.Match
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(title string) core.Match

// Parse calls f(title).
func (f ParserFunc) Parse(title string) core.Match {
	return f(title)
}

// Stats summarizes one Enrich run.
type Stats struct {
	Rows      int           `json:"rows"`
	Skipped   int           `json:"skipped"`
	Titles    int           `json:"titles"`
	CacheHits int           `json:"cache_hits"`
	Matched   int           `json:"matched"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Pipeline enriches listings concurrently.
type Pipeline struct {
	parser           Parser
	cache            storage.MatchCache
	pool             *ants.Pool
	progressWriter   io.Writer
	progressInterval int
	logger           *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent matching.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidPoolSize, size)
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if p.pool != nil {
			p.pool.Release()
		}
		p.pool = pool
		return nil
	}
}

// WithCache consults and populates cache around the matcher.
func WithCache(cache storage.MatchCache) Option {
	return func(p *Pipeline) error {
		p.cache = cache
		return nil
	}
}

// WithProgress reports progress to w every interval titles.
func WithProgress(w io.Writer, interval int) Option {
	return func(p *Pipeline) error {
		if interval < 1 {
			interval = 1
		}
		p.progressWriter = w
		p.progressInterval = interval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an enrichment pipeline around parser.
func NewPipeline(parser Parser, opts ...Option) (*Pipeline, error) {
	if parser == nil {
		return nil, ErrParserRequired
	}

	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		parser: parser,
		pool:   pool,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	return p, nil
}

// Enrich returns copies of rows with ManufacturerID, ModelID and TrimID set
// from the matcher. Rows already carrying any of those are copied unchanged.
func (p *Pipeline) Enrich(ctx context.Context, rows []core.Listing) ([]core.Listing, error) {
	out, _, err := p.EnrichWithStats(ctx, rows)
	return out, err
}

// EnrichWithStats is Enrich that also reports run statistics.
func (p *Pipeline) EnrichWithStats(ctx context.Context, rows []core.Listing) ([]core.Listing, Stats, error) {
	start := time.Now()
	stats := Stats{Rows: len(rows)}

	// Distinct titles and the rows that carry them, in first-seen order.
	var titles []string
	slots := make(map[string]int)
	rowSlot := make([]int, len(rows))
	for i := range rows {
		rowSlot[i] = -1
		if rows[i].HasDerivedIDs() || rows[i].Title == "" {
			stats.Skipped++
			continue
		}
		slot, ok := slots[rows[i].Title]
		if !ok {
			slot = len(titles)
			slots[rows[i].Title] = slot
			titles = append(titles, rows[i].Title)
		}
		rowSlot[i] = slot
	}
	stats.Titles = len(titles)

	matches := make([]core.Match, len(titles))
	fresh := make([]bool, len(titles))
	var hits atomic.Int64

	var tracker *ProgressTracker
	if p.progressWriter != nil && len(titles) > 0 {
		tracker = NewProgressTracker(p.progressWriter, len(titles), p.progressInterval)
		tracker.Start()
	}

	var wg sync.WaitGroup
	var submitErr error
	for slot, title := range titles {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			match, cached := p.lookup(ctx, title)
			if cached {
				hits.Add(1)
			} else {
				fresh[slot] = true
			}
			matches[slot] = match
			if tracker != nil {
				tracker.Increment(1)
			}
		})
		if err != nil {
			wg.Done()
			submitErr = fmt.Errorf("submitting title %q: %w", title, err)
			break
		}
	}
	wg.Wait()

	if submitErr != nil {
		return nil, stats, submitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}
	if tracker != nil {
		tracker.Finish()
	}

	out := make([]core.Listing, len(rows))
	for i := range rows {
		slot := rowSlot[i]
		if slot < 0 {
			out[i] = rows[i].Clone()
			continue
		}
		out[i] = rows[i].WithMatch(matches[slot])
	}

	for _, m := range matches {
		if m.ModelID != "" {
			stats.Matched++
		}
	}
	stats.CacheHits = int(hits.Load())
	p.store(ctx, titles, matches, fresh)
	stats.Elapsed = time.Since(start)

	p.logger.Info("enrichment complete",
		"rows", stats.Rows,
		"skipped", stats.Skipped,
		"titles", stats.Titles,
		"cache_hits", stats.CacheHits,
		"matched", stats.Matched,
		"elapsed", stats.Elapsed)
	return out, stats, nil
}

// lookup returns the match for title and whether it came from the cache.
func (p *Pipeline) lookup(ctx context.Context, title string) (core.Match, bool) {
	if p.cache != nil {
		match, err := p.cache.Get(ctx, title)
		if err == nil {
			return match, true
		}
		if !errors.Is(err, storage.ErrNotFound) {
			p.logger.Warn("match cache read failed", "title", title, "err", err)
		}
	}
	return p.parser.Parse(title), false
}

// store writes freshly computed matches back to the cache. Failures are
// logged and otherwise ignored.
func (p *Pipeline) store(ctx context.Context, titles []string, matches []core.Match, fresh []bool) {
	if p.cache == nil {
		return
	}
	entries := make(map[string]core.Match)
	for i, title := range titles {
		if fresh[i] {
			entries[title] = matches[i]
		}
	}
	if len(entries) == 0 {
		return
	}
	if err := p.cache.PutMany(ctx, entries); err != nil {
		p.logger.Error("match cache write failed", "entries", len(entries), "err", err)
	}
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
