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

// Package sorting orders filtered listings according to which ranged filters
// are active and which one the user adjusted last.
//
// Rules are checked in order and the first applicable one decides:
//
//  1. Budget and year both active: the last adjusted dimension wins, price
//     ascending by default.
//  2. Budget only: price ascending.
//  3. Year only: model year descending.
//  4. Price or mileage buckets selected: that key ascending.
//  5. Otherwise input order is kept.
//
// Unparseable keys sort as zero and ties keep their input order.
package sorting
