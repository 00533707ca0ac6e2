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
	"fmt"
	"math"

	"github.com/poiesic/auctionlens/core"
)

// Stats summarizes how well a listing set is covered by a definition.
type Stats struct {
	TotalItems   int         `json:"total_items"`
	Counts       Counts      `json:"counts"`
	MostCommon   *LabelCount `json:"most_common,omitempty"`
	UniqueValues []string    `json:"unique_values"`
	// Coverage is the percentage of all rows whose value is grouped,
	// rounded to two decimals.
	Coverage float64 `json:"coverage"`
}

// Analyze computes Stats for rows under def. Use ForMode for the shipped
// definitions or pass a configured one.
func Analyze(rows []core.Listing, def Definition, extract Extractor) Stats {
	stats := Stats{
		TotalItems:   len(rows),
		Counts:       CountsByGroup(rows, def, extract),
		UniqueValues: []string{},
	}
	if len(rows) == 0 {
		return stats
	}

	seen := make(map[string]struct{})
	classified := 0
	for i := range rows {
		value := extract(&rows[i])
		if value == "" {
			continue
		}
		if _, ok := seen[value]; !ok {
			seen[value] = struct{}{}
			stats.UniqueValues = append(stats.UniqueValues, value)
		}
		if _, ok := Classify(value, def); ok {
			classified++
		}
	}

	for _, lc := range stats.Counts.Ordered(def) {
		if stats.MostCommon == nil || lc.Count > stats.MostCommon.Count {
			stats.MostCommon = &lc
		}
	}

	coverage := float64(classified) / float64(len(rows)) * 100
	stats.Coverage = math.Round(coverage*100) / 100
	return stats
}

// ValidationResult reports configuration problems in a Definition.
type ValidationResult struct {
	Valid         bool     `json:"valid"`
	Issues        []string `json:"issues"`
	Duplicates    []string `json:"duplicates"`
	TotalVariants int      `json:"total_variants"`
	TotalGroups   int      `json:"total_groups"`
}

// Validate checks def for empty groups, duplicate labels, variants listed
// more than once and groups that shadow OtherLabel.
func Validate(def Definition) ValidationResult {
	result := ValidationResult{
		Issues:      []string{},
		Duplicates:  []string{},
		TotalGroups: len(def),
	}
	variants := make(map[string]struct{})
	duplicates := make(map[string]struct{})
	labels := make(map[string]struct{})

	for _, g := range def {
		if g.Label == OtherLabel {
			result.Issues = append(result.Issues, fmt.Sprintf("group %q collides with the computed other bucket", g.Label))
		}
		if _, dup := labels[g.Label]; dup {
			result.Issues = append(result.Issues, fmt.Sprintf("group %q is declared more than once", g.Label))
		}
		labels[g.Label] = struct{}{}

		if len(g.Variants) == 0 {
			result.Issues = append(result.Issues, fmt.Sprintf("group %q has no variants", g.Label))
		}
		for _, v := range g.Variants {
			if _, ok := variants[v]; !ok {
				variants[v] = struct{}{}
				continue
			}
			if _, ok := duplicates[v]; !ok {
				duplicates[v] = struct{}{}
				result.Duplicates = append(result.Duplicates, v)
			}
		}
	}

	result.TotalVariants = len(variants)
	result.Valid = len(result.Issues) == 0 && len(result.Duplicates) == 0
	return result
}
