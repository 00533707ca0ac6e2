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

package matcher

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/poiesic/auctionlens/core"
	"github.com/poiesic/auctionlens/taxonomy"
	"golang.org/x/text/unicode/norm"
)

const (
	scoreExactYear  = 10
	scoreNearYear   = 5
	scoreKeywordHit = 3
	scoreKeywordMis = -2
	nearYearSpan    = 2
)

// Matcher parses listing titles against a taxonomy index.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	index  *taxonomy.Index
	tables *Tables
	logger *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithTables replaces the built-in lookup tables.
func WithTables(tables *Tables) Option {
	return func(m *Matcher) error {
		if tables == nil {
			return ErrTablesRequired
		}
		m.tables = tables
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// New creates a Matcher over index.
func New(index *taxonomy.Index, opts ...Option) (*Matcher, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	m := &Matcher{
		index:  index,
		tables: DefaultTables(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Debug exposes the intermediate values of a parse.
type Debug struct {
	Original     string     `json:"original"`
	Manufacturer string     `json:"manufacturer"`
	Remaining    string     `json:"remaining"`
	Normalized   string     `json:"normalized"`
	Match        core.Match `json:"match"`
}

// Parse resolves title into taxonomy identifiers. Unresolved parts are left
// empty; an unparseable title yields a zero Match.
func (m *Matcher) Parse(title string) core.Match {
	var result core.Match
	if strings.TrimSpace(title) == "" {
		return result
	}
	title = norm.NFC.String(title)

	label, remaining := m.extractManufacturer(title)
	if label != "" {
		if mfr, ok := m.index.Manufacturer(label); ok {
			result.ManufacturerID = mfr.ID
			result.ManufacturerName = mfr.Label
		}
	}

	entry, ok := m.findModel(remaining, label)
	if !ok && label != "" {
		entry, ok = m.findModel(title, label)
	}
	if !ok {
		return result
	}

	if result.ManufacturerID == "" {
		result.ManufacturerID = entry.Manufacturer.ID
		result.ManufacturerName = entry.Manufacturer.Label
	}
	result.ModelID = entry.Model.ID
	result.ModelName = entry.Model.Label

	if trim, ok := m.bestTrim(entry.Model.Trims, title); ok {
		result.TrimID = trim.ID
		result.TrimName = trim.Label
	}
	return result
}

// ParseDebug parses title and reports the intermediate values.
func (m *Matcher) ParseDebug(title string) Debug {
	normalized := norm.NFC.String(title)
	label, remaining := m.extractManufacturer(normalized)
	source := remaining
	if source == "" {
		source = normalized
	}
	return Debug{
		Original:     title,
		Manufacturer: label,
		Remaining:    remaining,
		Normalized:   m.normalize(source),
		Match:        m.Parse(title),
	}
}

// ModelName returns the alias-mapped model name of a title without
// consulting the taxonomy. Returns "" when the title has no model token.
func (m *Matcher) ModelName(title string) string {
	if strings.TrimSpace(title) == "" {
		return ""
	}
	title = norm.NFC.String(title)
	_, remaining := m.extractManufacturer(title)
	if remaining == "" {
		remaining = title
	}
	normalized := m.normalize(remaining)

	for _, v := range m.tables.variants {
		if strings.Contains(normalized, v.Alias) {
			return v.Canonical
		}
	}
	if first := firstWord(normalized); first != "" {
		return m.tables.canonicalModel(first)
	}
	return ""
}

func (m *Matcher) findModel(text, preferred string) (taxonomy.ModelEntry, bool) {
	normalized := m.normalize(text)

	for _, label := range m.index.ModelLabels() {
		if label == "" {
			continue
		}
		if strings.Contains(normalized, label) || strings.Contains(text, label) {
			return m.index.Prefer(label, preferred)
		}
	}

	for _, v := range m.tables.variants {
		if strings.Contains(normalized, v.Alias) || strings.Contains(text, v.Alias) {
			if entry, ok := m.index.Prefer(v.Canonical, preferred); ok {
				return entry, true
			}
		}
	}

	if first := firstWord(normalized); first != "" {
		return m.index.Prefer(m.tables.canonicalModel(first), preferred)
	}
	return taxonomy.ModelEntry{}, false
}

// bestTrim scores each trim against the unnormalized title. Ties go to the
// earlier trim; when nothing scores above zero the first trim is returned.
func (m *Matcher) bestTrim(trims []core.Trim, title string) (core.Trim, bool) {
	if len(trims) == 0 {
		return core.Trim{}, false
	}

	titleYear, hasTitleYear := yearToken(title)
	best, bestScore := 0, math.MinInt
	for i, trim := range trims {
		score := 0
		if trimYear, ok := yearToken(trim.Label); ok && hasTitleYear {
			if trimYear == titleYear {
				score += scoreExactYear
			} else if yearDistance(trimYear, titleYear) <= nearYearSpan {
				score += scoreNearYear
			}
		}
		for _, kw := range m.tables.keywords {
			if !containsKeyword(title, kw) {
				continue
			}
			if containsKeyword(trim.Label, kw) {
				score += scoreKeywordHit
			} else {
				score += scoreKeywordMis
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	if bestScore <= 0 {
		m.logger.Debug("no trim signal, using first trim", "title", title)
		return trims[0], true
	}
	return trims[best], true
}

func yearDistance(a, b string) int {
	x, _ := strconv.Atoi(a)
	y, _ := strconv.Atoi(b)
	if x > y {
		return x - y
	}
	return y - x
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
