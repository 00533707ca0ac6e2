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
	"regexp"
	"slices"

	"github.com/poiesic/auctionlens/core"
)

const (
	// DefaultYearMin is reported when no row carries a parseable year.
	DefaultYearMin = 2000
	// DefaultYearMax is reported when no row carries a parseable year.
	DefaultYearMax = 2026
)

var brandPattern = regexp.MustCompile(`\[(.*?)\]`)

// Options are the selectable values derived from a listing set.
type Options struct {
	FuelTypes []string `json:"fuel_types"`
	Brands    []string `json:"brands"`
	YearMin   int      `json:"year_min"`
	YearMax   int      `json:"year_max"`
}

// InitializeOptions derives filter options from rows: distinct fuel values
// and bracketed title brands, both sorted, and the model-year bounds.
func InitializeOptions(rows []core.Listing) Options {
	opts := Options{
		FuelTypes: []string{},
		Brands:    []string{},
		YearMin:   DefaultYearMin,
		YearMax:   DefaultYearMax,
	}

	fuels := make(map[string]struct{})
	brands := make(map[string]struct{})
	seenYear := false
	var minYear, maxYear int64

	for i := range rows {
		row := &rows[i]
		if row.Fuel != "" {
			fuels[row.Fuel] = struct{}{}
		}
		if sub := brandPattern.FindStringSubmatch(row.Title); sub != nil && sub[1] != "" {
			brands[sub[1]] = struct{}{}
		}
		if year, ok := row.Year.Int(); ok {
			if !seenYear || year < minYear {
				minYear = year
			}
			if !seenYear || year > maxYear {
				maxYear = year
			}
			seenYear = true
		}
	}

	for f := range fuels {
		opts.FuelTypes = append(opts.FuelTypes, f)
	}
	slices.Sort(opts.FuelTypes)
	for b := range brands {
		opts.Brands = append(opts.Brands, b)
	}
	slices.Sort(opts.Brands)

	if seenYear {
		opts.YearMin = int(minYear)
		opts.YearMax = int(maxYear)
	}
	return opts
}

// EmptyActiveFilters returns a selection with every dimension cleared.
func EmptyActiveFilters() core.ActiveFilters {
	return core.ActiveFilters{
		Brand:        []string{},
		Model:        []string{},
		Submodel:     []string{},
		Fuel:         []string{},
		VehicleType:  []string{},
		Mileage:      []string{},
		Price:        []string{},
		AuctionHouse: []string{},
		Region:       []string{},
	}
}
