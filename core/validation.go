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

import "fmt"

// ValidateTaxonomy checks the structural invariants of a taxonomy.
//
// Validation rules:
//   - every id is non-empty and unique across the whole tree
//   - labels are unique among the children of one parent
//
// Labels may repeat across parents (two manufacturers can both have a "모닝").
func ValidateTaxonomy(t *Taxonomy) error {
	if t == nil {
		return fmt.Errorf("%w: taxonomy is nil", ErrInvalidTaxonomy)
	}

	seen := make(map[string]struct{})
	claim := func(id, where string) error {
		if id == "" {
			return fmt.Errorf("%w: %w: %s", ErrInvalidTaxonomy, ErrEmptyID, where)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %w: %q", ErrInvalidTaxonomy, ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
		return nil
	}

	for _, manufacturers := range t.Categories() {
		labels := make(map[string]struct{}, len(manufacturers))
		for _, mfr := range manufacturers {
			if err := claim(mfr.ID, "manufacturer "+mfr.Label); err != nil {
				return err
			}
			if err := uniqueLabel(labels, mfr.Label, "manufacturers"); err != nil {
				return err
			}

			modelLabels := make(map[string]struct{}, len(mfr.Models))
			for _, model := range mfr.Models {
				if err := claim(model.ID, "model "+model.Label); err != nil {
					return err
				}
				if err := uniqueLabel(modelLabels, model.Label, mfr.Label); err != nil {
					return err
				}

				trimLabels := make(map[string]struct{}, len(model.Trims))
				for _, trim := range model.Trims {
					if err := claim(trim.ID, "trim "+trim.Label); err != nil {
						return err
					}
					if err := uniqueLabel(trimLabels, trim.Label, model.Label); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func uniqueLabel(labels map[string]struct{}, label, parent string) error {
	if _, dup := labels[label]; dup {
		return fmt.Errorf("%w: %w: %q under %s", ErrInvalidTaxonomy, ErrDuplicateLabel, label, parent)
	}
	labels[label] = struct{}{}
	return nil
}

// ValidateYearRange rejects ranges whose minimum exceeds the maximum.
func ValidateYearRange(r *YearRange) error {
	if r == nil {
		return nil
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: year %d > %d", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// ValidateBudgetRange rejects bounded budgets whose minimum exceeds the maximum.
func ValidateBudgetRange(r *BudgetRange) error {
	if r == nil || r.Unbounded {
		return nil
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: budget %d > %d", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}
