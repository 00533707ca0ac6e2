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

// Package matcher resolves free-text auction listing titles into taxonomy
// identifiers.
//
// Parsing runs in four steps:
//   - the manufacturer is taken from a leading "[X]" token or the first word
//     and mapped through an alias table
//   - the remaining text is normalized by stripping marketing prefixes,
//     production-year ranges, generation codes and displacement tokens
//   - a model is found by label containment, then by model-name variant,
//     then by the first normalized word
//   - the best trim of the matched model is scored against the original title
//
// The matcher is a best-effort heuristic. It never fails: titles it cannot
// resolve produce a zero core.Match.
package matcher
