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

package auction

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/poiesic/auctionlens/core"
	"github.com/poiesic/auctionlens/groups"
)

// DesignatedHouse is the auction house whose presence switches the
// presentation to vehicle-type groups.
const DesignatedHouse = "오토허브 경매장"

// Config controls mode selection and logo availability.
type Config struct {
	// Modes maps an auction house to the filter mode it forces.
	Modes map[string]core.FilterMode `yaml:"modes"`
	// DefaultMode applies when no house listed in Modes is present.
	DefaultMode core.FilterMode `yaml:"default_mode"`
	// LogoNames lists houses with a logo asset.
	LogoNames []string `yaml:"logo_names"`
}

// DefaultConfig returns the stock mode and logo tables.
func DefaultConfig() Config {
	return Config{
		Modes:       map[string]core.FilterMode{DesignatedHouse: core.FilterModeVehicleType},
		DefaultMode: core.FilterModeFuel,
		LogoNames:   []string{"현대 경매장", "롯데 경매장", DesignatedHouse, "SK렌터카 경매장"},
	}
}

// Validate rejects unknown filter modes.
func (c Config) Validate() error {
	check := func(m core.FilterMode) error {
		if m != core.FilterModeVehicleType && m != core.FilterModeFuel {
			return fmt.Errorf("%w: %q", ErrInvalidMode, m)
		}
		return nil
	}
	if err := check(c.DefaultMode); err != nil {
		return err
	}
	for _, m := range c.Modes {
		if err := check(m); err != nil {
			return err
		}
	}
	return nil
}

// Info is the aggregate for a single auction house.
type Info struct {
	Name         string   `json:"name"`
	Count        int      `json:"count"`
	VehicleTypes []string `json:"vehicle_types"`
	FuelTypes    []string `json:"fuel_types"`
	Regions      []string `json:"regions"`
	HasLogo      bool     `json:"has_logo"`
}

type entry struct {
	count        int
	vehicleTypes map[string]struct{}
	fuelTypes    map[string]struct{}
	regions      map[string]struct{}
}

type snapshot struct {
	order   []string
	entries map[string]*entry
	total   int
}

// Aggregator indexes listings by auction house. Safe for concurrent use.
type Aggregator struct {
	mu     sync.RWMutex
	snap   *snapshot
	config Config
	logos  map[string]struct{}
	logger *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator) error

// WithConfig replaces the mode and logo tables.
func WithConfig(cfg Config) Option {
	return func(a *Aggregator) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		a.config = Config{
			Modes:       maps.Clone(cfg.Modes),
			DefaultMode: cfg.DefaultMode,
			LogoNames:   slices.Clone(cfg.LogoNames),
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAggregator returns an empty, not-ready aggregator.
func NewAggregator(opts ...Option) (*Aggregator, error) {
	a := &Aggregator{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	a.logos = make(map[string]struct{}, len(a.config.LogoNames))
	for _, name := range a.config.LogoNames {
		a.logos[name] = struct{}{}
	}
	return a, nil
}

// Reindex replaces all aggregates with those computed from rows. Rows without
// an auction name are skipped; if none remain the aggregator is not ready.
// Fuel and vehicle-type sets hold the declared row fields only, never values
// guessed from titles.
func (a *Aggregator) Reindex(rows []core.Listing) {
	next := &snapshot{entries: make(map[string]*entry)}
	for i := range rows {
		row := &rows[i]
		name := row.AuctionName
		if name == "" {
			continue
		}
		e, ok := next.entries[name]
		if !ok {
			e = &entry{
				vehicleTypes: make(map[string]struct{}),
				fuelTypes:    make(map[string]struct{}),
				regions:      make(map[string]struct{}),
			}
			next.entries[name] = e
			next.order = append(next.order, name)
		}
		e.count++
		next.total++
		if v := groups.DeclaredVehicleType(row); v != "" {
			e.vehicleTypes[v] = struct{}{}
		}
		if v := groups.DeclaredFuelType(row); v != "" {
			e.fuelTypes[v] = struct{}{}
		}
		if row.Region != "" {
			e.regions[row.Region] = struct{}{}
		}
	}
	if len(next.order) == 0 {
		next = nil
	}

	a.mu.Lock()
	a.snap = next
	a.mu.Unlock()

	if next == nil {
		a.logger.Debug("auction aggregate empty", "rows", len(rows))
		return
	}
	a.logger.Debug("auction aggregate rebuilt", "rows", len(rows), "auctions", len(next.order), "indexed", next.total)
}

// Reset clears all aggregates.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	a.snap = nil
	a.mu.Unlock()
}

// Ready reports whether the last Reindex saw at least one auction name.
func (a *Aggregator) Ready() bool {
	return a.current() != nil
}

func (a *Aggregator) current() *snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap
}

// Names returns auction houses in first-seen order.
func (a *Aggregator) Names() []string {
	s := a.current()
	if s == nil {
		return []string{}
	}
	return slices.Clone(s.order)
}

// NamesWithLogo returns the indexed auction houses that have a logo asset.
func (a *Aggregator) NamesWithLogo() []string {
	s := a.current()
	out := []string{}
	if s == nil {
		return out
	}
	for _, name := range s.order {
		if a.hasLogo(name) {
			out = append(out, name)
		}
	}
	return out
}

// HasLogo reports whether name has a logo asset, indexed or not.
func (a *Aggregator) HasLogo(name string) bool {
	return a.hasLogo(name)
}

func (a *Aggregator) hasLogo(name string) bool {
	_, ok := a.logos[name]
	return ok
}

// Info returns the aggregate for one auction house. Set-valued fields are sorted.
func (a *Aggregator) Info(name string) (Info, bool) {
	s := a.current()
	if s == nil {
		return Info{}, false
	}
	e, ok := s.entries[name]
	if !ok {
		return Info{}, false
	}
	return Info{
		Name:         name,
		Count:        e.count,
		VehicleTypes: sortedKeys(e.vehicleTypes),
		FuelTypes:    sortedKeys(e.fuelTypes),
		Regions:      sortedKeys(e.regions),
		HasLogo:      a.hasLogo(name),
	}, true
}

// Infos returns every aggregate in first-seen order.
func (a *Aggregator) Infos() []Info {
	names := a.Names()
	out := make([]Info, 0, len(names))
	for _, name := range names {
		if info, ok := a.Info(name); ok {
			out = append(out, info)
		}
	}
	return out
}

// TotalCount is the number of indexed rows, i.e. rows with an auction name.
func (a *Aggregator) TotalCount() int {
	s := a.current()
	if s == nil {
		return 0
	}
	return s.total
}

// CountsByName maps each auction house to its row count.
func (a *Aggregator) CountsByName() map[string]int {
	s := a.current()
	out := make(map[string]int)
	if s == nil {
		return out
	}
	for name, e := range s.entries {
		out[name] = e.count
	}
	return out
}

// FilterMode reports which group table applies to the current listing set.
// The first configured house present decides, in first-seen order.
func (a *Aggregator) FilterMode() (core.FilterMode, error) {
	s := a.current()
	if s == nil {
		return "", ErrNotReady
	}
	for _, name := range s.order {
		if mode, ok := a.config.Modes[name]; ok {
			return mode, nil
		}
	}
	return a.config.DefaultMode, nil
}

func sortedKeys(set map[string]struct{}) []string {
	return slices.Sorted(maps.Keys(set))
}
