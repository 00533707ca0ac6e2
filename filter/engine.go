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

package filter

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/poiesic/auctionlens/core"
	"github.com/poiesic/auctionlens/groups"
	"golang.org/x/text/cases"
)

var qualifierPattern = regexp.MustCompile(`\s*\([^)]*\)\s*`)

// Query bundles every criterion of one filter run.
type Query struct {
	Active core.ActiveFilters `json:"active"`
	// Search is matched case-insensitively against title, subtitle, region,
	// auction name and car number.
	Search string            `json:"search,omitempty"`
	Budget *core.BudgetRange `json:"budget,omitempty"`
	// Years is applied in addition to Active.Year.
	Years *core.YearRange `json:"years,omitempty"`
	IDs   *core.IDFilter  `json:"ids,omitempty"`
}

// IsEmpty reports whether the query restricts nothing.
func (q *Query) IsEmpty() bool {
	return q.Active.IsEmpty() && q.Search == "" && q.Budget == nil && q.Years == nil &&
		(q.IDs == nil || q.IDs.IsZero())
}

// Validate rejects inverted ranges.
func (q *Query) Validate() error {
	for _, r := range []*core.YearRange{q.Active.Year, q.Years} {
		if err := core.ValidateYearRange(r); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
		}
	}
	if err := core.ValidateBudgetRange(q.Budget); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return nil
}

// Engine filters listing sets. It is immutable and safe for concurrent use.
type Engine struct {
	mileage Buckets
	price   Buckets
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithMileageBuckets replaces the mileage bucket table.
func WithMileageBuckets(buckets Buckets) Option {
	return func(e *Engine) error {
		if err := buckets.Validate(); err != nil {
			return err
		}
		e.mileage = slices.Clone(buckets)
		return nil
	}
}

// WithPriceBuckets replaces the price bucket table.
func WithPriceBuckets(buckets Buckets) Option {
	return func(e *Engine) error {
		if err := buckets.Validate(); err != nil {
			return err
		}
		e.price = slices.Clone(buckets)
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates an Engine using the default bucket tables unless
// overridden.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		mileage: MileageBuckets,
		price:   PriceBuckets,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// MileageBuckets returns the mileage table in use.
func (e *Engine) MileageBuckets() Buckets {
	return slices.Clone(e.mileage)
}

// PriceBuckets returns the price table in use.
func (e *Engine) PriceBuckets() Buckets {
	return slices.Clone(e.price)
}

// Filter returns the rows satisfying q, in input order. The result is a new
// slice; rows is not modified.
func (e *Engine) Filter(rows []core.Listing, q Query) []core.Listing {
	if len(rows) == 0 {
		return []core.Listing{}
	}
	if q.IsEmpty() {
		return slices.Clone(rows)
	}

	p := e.compile(&q)
	out := make([]core.Listing, 0, len(rows))
	for i := range rows {
		if p.keep(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}

// Count returns how many rows satisfy q.
func (e *Engine) Count(rows []core.Listing, q Query) int {
	if q.IsEmpty() {
		return len(rows)
	}
	p := e.compile(&q)
	n := 0
	for i := range rows {
		if p.keep(&rows[i]) {
			n++
		}
	}
	return n
}

// plan is a Query resolved against the engine's tables for one run.
type plan struct {
	years, yearRange *core.YearRange
	auctions         []string
	regions          []string
	fuels            []string
	vehicleTypes     []string
	ids              *core.IDFilter
	budget           *core.BudgetRange
	mileage          Buckets
	mileageActive    bool
	price            Buckets
	priceActive      bool
	brands           []string
	models           []string
	submodels        []string
	search           string
	fold             func(string) string
}

func (e *Engine) compile(q *Query) *plan {
	p := &plan{
		years:        q.Active.Year,
		yearRange:    q.Years,
		auctions:     q.Active.AuctionHouse,
		regions:      q.Active.Region,
		fuels:        q.Active.Fuel,
		vehicleTypes: q.Active.VehicleType,
		budget:       q.Budget,
		brands:       q.Active.Brand,
		models:       stripQualifiers(q.Active.Model),
		submodels:    stripQualifiers(q.Active.Submodel),
	}
	if q.IDs != nil && !q.IDs.IsZero() {
		p.ids = q.IDs
	}

	p.mileage, p.mileageActive = e.resolve(e.mileage, q.Active.Mileage, "km")
	p.price, p.priceActive = e.resolve(e.price, q.Active.Price, "price")

	if q.Search != "" {
		// A Caser is stateful, so each run gets its own.
		folder := cases.Fold()
		p.fold = folder.String
		p.search = p.fold(q.Search)
	}
	return p
}

// resolve maps selected labels to buckets. Unknown labels select nothing.
func (e *Engine) resolve(table Buckets, labels []string, dimension string) (Buckets, bool) {
	if len(labels) == 0 {
		return nil, false
	}
	selected := make(Buckets, 0, len(labels))
	for _, label := range labels {
		if b, ok := table.Lookup(label); ok {
			selected = append(selected, b)
		} else {
			e.logger.Warn("unknown bucket label", "dimension", dimension, "label", label)
		}
	}
	return selected, true
}

func (p *plan) keep(row *core.Listing) bool {
	if p.years != nil && !inYears(row, p.years) {
		return false
	}
	if p.yearRange != nil && !inYears(row, p.yearRange) {
		return false
	}
	if !member(p.auctions, row.AuctionName) || !member(p.regions, row.Region) {
		return false
	}
	if len(p.fuels) > 0 && !slices.Contains(p.fuels, groups.ExtractFuelType(row)) {
		return false
	}
	if len(p.vehicleTypes) > 0 && !slices.Contains(p.vehicleTypes, groups.ExtractVehicleType(row)) {
		return false
	}
	if p.ids != nil && !matchIDs(row, p.ids) {
		return false
	}
	if p.budget != nil {
		price, ok := row.Price.Int()
		if !ok || !p.budget.Contains(price) {
			return false
		}
	}
	if p.mileageActive && !inAnyBucket(row.Km, p.mileage) {
		return false
	}
	if p.priceActive && !inAnyBucket(row.Price, p.price) {
		return false
	}
	if !brandMatches(row.Title, p.brands) ||
		!titleContainsAny(row.Title, p.models) ||
		!titleContainsAny(row.Title, p.submodels) {
		return false
	}
	if p.fold != nil && !p.searchMatches(row) {
		return false
	}
	return true
}

func (p *plan) searchMatches(row *core.Listing) bool {
	for _, field := range []string{row.Title, row.Subtitle, row.Region, row.AuctionName, row.CarNumber} {
		if field != "" && strings.Contains(p.fold(field), p.search) {
			return true
		}
	}
	return false
}

func inYears(row *core.Listing, r *core.YearRange) bool {
	year, ok := row.Year.Int()
	return ok && r.Contains(year)
}

func inAnyBucket(n core.Numeric, buckets Buckets) bool {
	v, ok := n.Int()
	if !ok {
		return false
	}
	for _, b := range buckets {
		if b.Contains(v) {
			return true
		}
	}
	return false
}

func matchIDs(row *core.Listing, ids *core.IDFilter) bool {
	if ids.ManufacturerID != "" && row.ManufacturerID != ids.ManufacturerID {
		return false
	}
	if ids.ModelID != "" && row.ModelID != ids.ModelID {
		return false
	}
	if ids.TrimID != "" && row.TrimID != ids.TrimID {
		return false
	}
	return true
}

// member reports whether value is selected; an empty selection admits all.
func member(selected []string, value string) bool {
	return len(selected) == 0 || slices.Contains(selected, value)
}

func titleContainsAny(title string, values []string) bool {
	if len(values) == 0 {
		return true
	}
	if title == "" {
		return false
	}
	for _, v := range values {
		if strings.Contains(title, v) {
			return true
		}
	}
	return false
}

// brandMatches compares brands against the bracketed manufacturer token, so
// "[미니] 쿠퍼 (BMW 엔진)" is not a BMW. Titles without a bracketed token fall
// back to a substring match.
func brandMatches(title string, brands []string) bool {
	if len(brands) == 0 {
		return true
	}
	if title == "" {
		return false
	}
	bracketed := brandPattern.MatchString(title)
	for _, b := range brands {
		b = strings.TrimSuffix(strings.TrimPrefix(b, "["), "]")
		if b == "" {
			continue
		}
		if bracketed {
			if strings.Contains(title, "["+b+"]") {
				return true
			}
		} else if strings.Contains(title, b) {
			return true
		}
	}
	return false
}

// StripQualifier removes parenthetical qualifiers such as production-year
// ranges from a model or trim label.
func StripQualifier(s string) string {
	return strings.TrimSpace(qualifierPattern.ReplaceAllString(s, ""))
}

func stripQualifiers(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = StripQualifier(v)
	}
	return out
}
