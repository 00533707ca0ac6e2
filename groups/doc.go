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

// Package groups classifies raw fuel and vehicle-usage values into display
// groups.
//
// A Definition is an ordered list of groups, each owning a set of raw variant
// spellings. Values that belong to no group fall into the computed OtherLabel
// bucket, which is never declared as a group itself.
//
// Two definitions ship with the package: FuelGroups for general auction
// houses and VehicleTypeGroups for houses that report usage categories.
// ForMode selects between them for a core.FilterMode.
package groups
