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

package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier used for cache keys.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Category names the two top-level branches of the taxonomy.
type Category string

const (
	CategoryDomestic Category = "domestic"
	CategoryImport   Category = "import"
)

// Taxonomy is the read-only Manufacturer → Model → Trim reference tree.
type Taxonomy struct {
	Domestic []Manufacturer `json:"domestic"`
	Import   []Manufacturer `json:"import"`
}

// EmptyTaxonomy returns a well-formed taxonomy with no manufacturers.
func EmptyTaxonomy() *Taxonomy {
	return &Taxonomy{
		Domestic: []Manufacturer{},
		Import:   []Manufacturer{},
	}
}

// Categories returns the manufacturers of both categories in declaration order,
// domestic first.
func (t *Taxonomy) Categories() [][]Manufacturer {
	if t == nil {
		return nil
	}
	return [][]Manufacturer{t.Domestic, t.Import}
}

// IsEmpty reports whether the taxonomy holds no manufacturers at all.
func (t *Taxonomy) IsEmpty() bool {
	return t == nil || (len(t.Domestic) == 0 && len(t.Import) == 0)
}

// Manufacturer is the top level of the taxonomy.
type Manufacturer struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Models []Model `json:"models"`
}

// Model belongs to exactly one manufacturer.
type Model struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Trims []Trim `json:"trims"`
}

// Trim is the leaf level of the taxonomy. Labels usually embed a production
// year range such as "그랜저 하이브리드 (19년~22년)".
type Trim struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Match is the structured result of parsing a listing title.
// Every field is independently optional; an empty string means unresolved.
type Match struct {
	ManufacturerID   string `json:"manufacturer_id"`
	ManufacturerName string `json:"manufacturer_name"`
	ModelID          string `json:"model_id"`
	ModelName        string `json:"model_name"`
	TrimID           string `json:"trim_id"`
	TrimName         string `json:"trim_name"`
}

// IsZero reports whether nothing was resolved.
func (m Match) IsZero() bool {
	return m == Match{}
}

// Listing is a single vehicle auction row.
// Rows are value objects: nothing in this module mutates a caller's Listing.
type Listing struct {
	SellNumber  string  `json:"sell_number,omitempty"`
	Title       string  `json:"title"`
	Subtitle    string  `json:"subtitle,omitempty"`
	CarNumber   string  `json:"car_number,omitempty"`
	Price       Numeric `json:"price"`
	Year        Numeric `json:"year"`
	Km          Numeric `json:"km"`
	Fuel        string  `json:"fuel,omitempty"`
	AuctionName string  `json:"auction_name,omitempty"`
	Region      string  `json:"region,omitempty"`
	AuctionDate string  `json:"auction_date,omitempty"`

	// Alternative fields carrying the vehicle usage type, probed in this order.
	VehicleType string `json:"vehicleType,omitempty"`
	Usage       string `json:"usage,omitempty"`
	Type        string `json:"type,omitempty"`
	Purpose     string `json:"purpose,omitempty"`

	// Derived identifiers, populated by the matcher or an upstream service.
	ManufacturerID string `json:"manufacturer_id,omitempty"`
	ModelID        string `json:"model_id,omitempty"`
	TrimID         string `json:"trim_id,omitempty"`

	// Extra holds fields this module does not interpret.
	Extra map[string]any `json:"-"`
}

// HasDerivedIDs reports whether any taxonomy identifier is already present.
func (l *Listing) HasDerivedIDs() bool {
	return l.ManufacturerID != "" || l.ModelID != "" || l.TrimID != ""
}

// Clone returns a copy of the listing that shares no maps with l.
func (l Listing) Clone() Listing {
	if l.Extra != nil {
		extra := make(map[string]any, len(l.Extra))
		for k, v := range l.Extra {
			extra[k] = v
		}
		l.Extra = extra
	}
	return l
}

// WithMatch returns a copy of the listing carrying the identifiers from m.
func (l Listing) WithMatch(m Match) Listing {
	l = l.Clone()
	l.ManufacturerID = m.ManufacturerID
	l.ModelID = m.ModelID
	l.TrimID = m.TrimID
	return l
}

// YearRange is an inclusive [Min, Max] model-year window.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether year lies within the range, bounds included.
func (r YearRange) Contains(year int64) bool {
	return year >= int64(r.Min) && year <= int64(r.Max)
}

// BudgetRange is a price window in 만원. When Unbounded is set, Max is ignored.
type BudgetRange struct {
	Min       int64 `json:"min"`
	Max       int64 `json:"max"`
	Unbounded bool  `json:"unbounded,omitempty"`
}

// Contains reports whether price lies within the budget.
func (r BudgetRange) Contains(price int64) bool {
	if price < r.Min {
		return false
	}
	return r.Unbounded || price <= r.Max
}

// IDFilter narrows results by exact equality on the derived identifiers.
// Empty components impose no constraint.
type IDFilter struct {
	ManufacturerID string `json:"manufacturer_id,omitempty"`
	ModelID        string `json:"model_id,omitempty"`
	TrimID         string `json:"trim_id,omitempty"`
}

// IsZero reports whether the filter constrains nothing.
func (f IDFilter) IsZero() bool {
	return f == IDFilter{}
}

// ActiveFilters maps each categorical filter dimension to its selected values.
// An empty selection means no restriction, never "match nothing".
type ActiveFilters struct {
	Brand        []string   `json:"title" yaml:"brand"`
	Model        []string   `json:"model" yaml:"model"`
	Submodel     []string   `json:"submodel" yaml:"submodel"`
	Fuel         []string   `json:"fuel" yaml:"fuel"`
	VehicleType  []string   `json:"vehicle_type" yaml:"vehicle_type"`
	Mileage      []string   `json:"km" yaml:"km"`
	Price        []string   `json:"price" yaml:"price"`
	AuctionHouse []string   `json:"auction_name" yaml:"auction_name"`
	Region       []string   `json:"region" yaml:"region"`
	Year         *YearRange `json:"year,omitempty" yaml:"year,omitempty"`
}

// IsEmpty reports whether no dimension is restricted.
func (f *ActiveFilters) IsEmpty() bool {
	return len(f.Brand) == 0 && len(f.Model) == 0 && len(f.Submodel) == 0 &&
		len(f.Fuel) == 0 && len(f.VehicleType) == 0 && len(f.Mileage) == 0 &&
		len(f.Price) == 0 && len(f.AuctionHouse) == 0 && len(f.Region) == 0 &&
		f.Year == nil
}

// SortDimension records which ranged filter the user touched most recently.
type SortDimension string

const (
	SortNone    SortDimension = ""
	SortBudget  SortDimension = "budget"
	SortYear    SortDimension = "year"
	SortPrice   SortDimension = "price"
	SortMileage SortDimension = "km"
)

// FilterMode selects which group table the presentation layer should offer.
type FilterMode string

const (
	FilterModeVehicleType FilterMode = "vehicleType"
	FilterModeFuel        FilterMode = "fuel"
)
