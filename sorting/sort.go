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

package sorting

import (
	"cmp"
	"slices"

	"github.com/poiesic/auctionlens/core"
)

// Order describes how a listing set will be arranged.
type Order struct {
	Key        Key  `json:"key"`
	Descending bool `json:"descending,omitempty"`
}

// Key names the listing field an Order compares.
type Key string

const (
	KeyNone    Key = ""
	KeyPrice   Key = "price"
	KeyYear    Key = "year"
	KeyMileage Key = "km"
)

// Resolve picks the ordering for the given filter state without touching rows.
func Resolve(active core.ActiveFilters, budget *core.BudgetRange, years *core.YearRange, last core.SortDimension) Order {
	hasBudget := budget != nil
	hasYear := years != nil || active.Year != nil

	switch {
	case hasBudget && hasYear:
		if last == core.SortYear {
			return Order{Key: KeyYear, Descending: true}
		}
		return Order{Key: KeyPrice}
	case hasBudget:
		return Order{Key: KeyPrice}
	case hasYear:
		return Order{Key: KeyYear, Descending: true}
	}

	hasPrice := len(active.Price) > 0
	hasMileage := len(active.Mileage) > 0
	switch {
	case hasPrice && hasMileage:
		switch last {
		case core.SortPrice:
			return Order{Key: KeyPrice}
		case core.SortMileage:
			return Order{Key: KeyMileage}
		}
	case hasPrice:
		return Order{Key: KeyPrice}
	case hasMileage:
		return Order{Key: KeyMileage}
	}
	return Order{}
}

// Sort returns a newly allocated, stably ordered copy of rows.
func Sort(rows []core.Listing, active core.ActiveFilters, budget *core.BudgetRange, years *core.YearRange, last core.SortDimension) []core.Listing {
	return Apply(rows, Resolve(active, budget, years, last))
}

// Apply orders a copy of rows by o.
func Apply(rows []core.Listing, o Order) []core.Listing {
	out := slices.Clone(rows)
	if out == nil {
		out = []core.Listing{}
	}
	key := o.Key.extractor()
	if key == nil {
		return out
	}

	slices.SortStableFunc(out, func(a, b core.Listing) int {
		if o.Descending {
			return cmp.Compare(key(&b), key(&a))
		}
		return cmp.Compare(key(&a), key(&b))
	})
	return out
}

func (k Key) extractor() func(*core.Listing) int64 {
	switch k {
	case KeyPrice:
		return func(l *core.Listing) int64 { return l.Price.IntOrZero() }
	case KeyYear:
		return func(l *core.Listing) int64 { return l.Year.IntOrZero() }
	case KeyMileage:
		return func(l *core.Listing) int64 { return l.Km.IntOrZero() }
	}
	return nil
}
