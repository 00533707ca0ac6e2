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

package groups

import (
	"slices"
	"strings"

	"github.com/poiesic/auctionlens/core"
)

// OtherLabel names the bucket for values outside every declared group.
const OtherLabel = "기타"

// Group is a display label and the raw values it covers.
type Group struct {
	Label    string   `yaml:"label" json:"label"`
	Variants []string `yaml:"variants" json:"variants"`
}

// Definition is an ordered set of groups. Earlier groups win when a value is
// listed more than once.
type Definition []Group

// Labels returns the group labels in declaration order.
func (d Definition) Labels() []string {
	labels := make([]string, len(d))
	for i, g := range d {
		labels[i] = g.Label
	}
	return labels
}

// Variants returns the variants of the group labelled label.
func (d Definition) Variants(label string) ([]string, bool) {
	for _, g := range d {
		if g.Label == label {
			return g.Variants, true
		}
	}
	return nil, false
}

// AllVariants returns every variant of every group, in declaration order.
func (d Definition) AllVariants() []string {
	var all []string
	for _, g := range d {
		all = append(all, g.Variants...)
	}
	return all
}

// FuelGroups groups the fuel values reported by general auction houses.
var FuelGroups = Definition{
	{Label: "가솔린", Variants: []string{"가솔린", "휘발유"}},
	{Label: "디젤", Variants: []string{"디젤", "경유"}},
	{Label: "하이브리드", Variants: []string{"하이브리드", "가솔린하이브리드"}},
	{Label: "LPG", Variants: []string{"LPG"}},
	{Label: "전기", Variants: []string{"전기"}},
}

// VehicleTypeGroups groups vehicle usage categories. Special-purpose usage is
// labelled 특수 so it cannot be confused with OtherLabel.
var VehicleTypeGroups = Definition{
	{Label: "렌터카", Variants: []string{"렌터카", "렌트카", "RENT", "대여", "렌탈"}},
	{Label: "자가용", Variants: []string{"자가용", "개인", "일반", "PRIVATE", "승용"}},
	{Label: "업무용", Variants: []string{"업무용", "사업용", "BUSINESS", "법인"}},
	{Label: "영업용", Variants: []string{"영업용", "택시", "화물", "운송업"}},
	{Label: "특수", Variants: []string{"기타", "수출용", "폐차", "ETC", "특수"}},
}

// Classify returns the label of the first group containing the trimmed value.
func Classify(raw string, def Definition) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	for _, g := range def {
		if slices.Contains(g.Variants, value) {
			return g.Label, true
		}
	}
	return "", false
}

// Label returns the group label of raw, or OtherLabel when it is ungrouped.
func Label(raw string, def Definition) string {
	if label, ok := Classify(raw, def); ok {
		return label
	}
	return OtherLabel
}

// InGroup reports whether value is listed under the group labelled label.
func InGroup(value, label string, def Definition) bool {
	variants, ok := def.Variants(label)
	return ok && slices.Contains(variants, value)
}

// Extractor pulls the raw value to classify out of a listing.
// An empty result means the row has no value and is skipped.
type Extractor func(row *core.Listing) string

// Counts tallies rows per group. Groups with no rows are absent.
type Counts struct {
	Groups map[string]int `json:"groups"`
	Other  int            `json:"other"`
}

// Total returns the number of counted rows.
func (c Counts) Total() int {
	total := c.Other
	for _, n := range c.Groups {
		total += n
	}
	return total
}

// LabelCount is one entry of an ordered tally.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Ordered returns the non-zero tallies in declaration order, with the other
// bucket last.
func (c Counts) Ordered(def Definition) []LabelCount {
	var out []LabelCount
	for _, g := range def {
		if n := c.Groups[g.Label]; n > 0 {
			out = append(out, LabelCount{Label: g.Label, Count: n})
		}
	}
	if c.Other > 0 {
		out = append(out, LabelCount{Label: OtherLabel, Count: c.Other})
	}
	return out
}

// CountsByGroup classifies every row and tallies the results.
func CountsByGroup(rows []core.Listing, def Definition, extract Extractor) Counts {
	counts := Counts{Groups: make(map[string]int)}
	for i := range rows {
		value := extract(&rows[i])
		if value == "" {
			continue
		}
		if label, ok := Classify(value, def); ok {
			counts.Groups[label]++
		} else {
			counts.Other++
		}
	}
	return counts
}

// MatchesActive reports whether value satisfies a group selection. Selections
// may name either group labels (including OtherLabel) or raw values.
// An empty selection matches everything.
func MatchesActive(value string, active []string, def Definition) bool {
	if len(active) == 0 {
		return true
	}
	if value == "" {
		return false
	}
	return slices.Contains(active, Label(value, def)) || slices.Contains(active, value)
}

// ExpandLabels replaces group labels in a selection with their variants, the
// form the filter engine compares raw row values against. Values that are not
// group labels pass through unchanged. Duplicates are dropped.
func ExpandLabels(selection []string, def Definition) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(v string) {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	for _, s := range selection {
		if variants, ok := def.Variants(s); ok {
			for _, v := range variants {
				add(v)
			}
			continue
		}
		add(s)
	}
	return out
}

// ForMode returns the definition and extractor used for mode.
// Unknown modes fall back to fuel.
func ForMode(mode core.FilterMode) (Definition, Extractor) {
	if mode == core.FilterModeVehicleType {
		return VehicleTypeGroups, ExtractVehicleType
	}
	return FuelGroups, ExtractFuelType
}
