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

// Package filter evaluates listing sets against categorical, ranged and
// free-text criteria.
//
// A row is kept when it passes every active dimension. Within a categorical
// dimension, matching any one selected value is enough. Empty selections,
// an empty search string and nil ranges impose no restriction, so an empty
// Query returns the input unchanged.
//
// Numeric fields are parsed with core.ParseInt; a value that does not parse
// fails every numeric predicate applied to it rather than aborting the run.
//
// The engine holds no per-call state and never modifies the rows it is given.
package filter
