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

package taxonomy

import "github.com/poiesic/auctionlens/core"

// ModelEntry pairs a model with the manufacturer that declares it.
type ModelEntry struct {
	Manufacturer *core.Manufacturer
	Model        *core.Model
}

// Index is a read-only lookup structure over a taxonomy.
// Pointers refer into the indexed taxonomy, which must not be modified.
type Index struct {
	manufacturers map[string]*core.Manufacturer
	models        map[string][]ModelEntry
	modelLabels   []string
}

// NewIndex builds an Index. Manufacturer labels resolve to the first declared
// manufacturer. Model labels keep every declaring manufacturer in declaration
// order, domestic before import.
func NewIndex(t *core.Taxonomy) *Index {
	ix := &Index{
		manufacturers: make(map[string]*core.Manufacturer),
		models:        make(map[string][]ModelEntry),
	}
	for _, manufacturers := range t.Categories() {
		for i := range manufacturers {
			mfr := &manufacturers[i]
			if _, ok := ix.manufacturers[mfr.Label]; !ok {
				ix.manufacturers[mfr.Label] = mfr
			}
			for j := range mfr.Models {
				model := &mfr.Models[j]
				if _, ok := ix.models[model.Label]; !ok {
					ix.modelLabels = append(ix.modelLabels, model.Label)
				}
				ix.models[model.Label] = append(ix.models[model.Label], ModelEntry{
					Manufacturer: mfr,
					Model:        model,
				})
			}
		}
	}
	return ix
}

// Manufacturer returns the manufacturer with the given label.
func (ix *Index) Manufacturer(label string) (*core.Manufacturer, bool) {
	mfr, ok := ix.manufacturers[label]
	return mfr, ok
}

// Models returns every entry declaring a model with the given label.
func (ix *Index) Models(label string) []ModelEntry {
	return ix.models[label]
}

// ModelLabels returns distinct model labels in first-declared order.
func (ix *Index) ModelLabels() []string {
	return ix.modelLabels
}

// Prefer returns the entry for label whose manufacturer is preferred, or the
// first entry when none is.
func (ix *Index) Prefer(label, preferred string) (ModelEntry, bool) {
	entries := ix.models[label]
	if len(entries) == 0 {
		return ModelEntry{}, false
	}
	if preferred != "" {
		for _, e := range entries {
			if e.Manufacturer.Label == preferred {
				return e, true
			}
		}
	}
	return entries[0], true
}
