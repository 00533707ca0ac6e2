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

import "fmt"

// Bucket is a labelled numeric range selectable as a filter value.
// Bounded buckets cover [Min, Max) unless MinExclusive or MaxInclusive
// adjust an end. Unbounded buckets cover everything from Min upward.
type Bucket struct {
	Label        string `yaml:"label" json:"label"`
	Min          int64  `yaml:"min" json:"min"`
	Max          int64  `yaml:"max" json:"max"`
	Unbounded    bool   `yaml:"unbounded" json:"unbounded,omitempty"`
	MinExclusive bool   `yaml:"min_exclusive" json:"min_exclusive,omitempty"`
	MaxInclusive bool   `yaml:"max_inclusive" json:"max_inclusive,omitempty"`
}

// Contains reports whether v falls inside the bucket.
func (b Bucket) Contains(v int64) bool {
	if b.MinExclusive {
		if v <= b.Min {
			return false
		}
	} else if v < b.Min {
		return false
	}
	if b.Unbounded {
		return true
	}
	if b.MaxInclusive {
		return v <= b.Max
	}
	return v < b.Max
}

// Buckets is an ordered bucket table.
type Buckets []Bucket

// Lookup finds the bucket with the given label.
func (bs Buckets) Lookup(label string) (Bucket, bool) {
	for _, b := range bs {
		if b.Label == label {
			return b, true
		}
	}
	return Bucket{}, false
}

// Labels returns the bucket labels in table order.
func (bs Buckets) Labels() []string {
	labels := make([]string, len(bs))
	for i, b := range bs {
		labels[i] = b.Label
	}
	return labels
}

// Validate checks for blank or repeated labels and inverted ranges.
func (bs Buckets) Validate() error {
	seen := make(map[string]struct{}, len(bs))
	for _, b := range bs {
		if b.Label == "" {
			return fmt.Errorf("%w: empty label", ErrInvalidBucket)
		}
		if _, dup := seen[b.Label]; dup {
			return fmt.Errorf("%w: duplicate label %q", ErrInvalidBucket, b.Label)
		}
		seen[b.Label] = struct{}{}
		if !b.Unbounded && b.Min > b.Max {
			return fmt.Errorf("%w: %q has min %d > max %d", ErrInvalidBucket, b.Label, b.Min, b.Max)
		}
	}
	return nil
}

// MileageBuckets are the default mileage ranges in km.
// "3만km 이하" includes 30000 itself, so the next bucket starts just above it.
var MileageBuckets = Buckets{
	{Label: "3만km 이하", Min: 0, Max: 30000, MaxInclusive: true},
	{Label: "3만km ~ 5만km", Min: 30000, Max: 50000, MinExclusive: true},
	{Label: "5만km ~ 10만km", Min: 50000, Max: 100000},
	{Label: "10만km ~ 15만km", Min: 100000, Max: 150000},
	{Label: "15만km ~ 20만km", Min: 150000, Max: 200000},
	{Label: "20만km 이상", Min: 200000, Unbounded: true},
}

// PriceBuckets are the default price ranges in 만원.
var PriceBuckets = Buckets{
	{Label: "500만원 이하", Min: 0, Max: 500, MaxInclusive: true},
	{Label: "500 ~ 1,000만원", Min: 500, Max: 1000, MinExclusive: true},
	{Label: "1,000 ~ 2,000만원", Min: 1000, Max: 2000},
	{Label: "2,000 ~ 3,000만원", Min: 2000, Max: 3000},
	{Label: "3,000만원 이상", Min: 3000, Unbounded: true},
}
